package api

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// Server is a normalized server address.
type Server struct {
	Host string
	Port string
}

// BaseURL returns the https origin used to build request URLs.
func (s Server) BaseURL() string {
	return "https://" + net.JoinHostPort(s.Host, s.Port)
}

func (s Server) String() string {
	return net.JoinHostPort(s.Host, s.Port)
}

// ParseServer normalizes a user-supplied server address. Any scheme other than
// https is replaced with https, a missing scheme defaults to https, and a
// missing port defaults to 443 for jamfcloud hosts and 8443 otherwise.
func ParseServer(raw string) (Server, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Server{}, fmt.Errorf("%w: empty server address", ErrInvalidURL)
	}

	if i := strings.Index(raw, "://"); i >= 0 {
		raw = raw[i+len("://"):]
	}

	u, err := url.Parse("https://" + raw)
	if err != nil {
		return Server{}, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	host := u.Hostname()
	if host == "" {
		return Server{}, fmt.Errorf("%w: no host in %q", ErrInvalidURL, raw)
	}

	port := u.Port()
	if port == "" {
		port = "8443"
		if strings.Contains(host, "jamfcloud") {
			port = "443"
		}
	}

	return Server{Host: host, Port: port}, nil
}
