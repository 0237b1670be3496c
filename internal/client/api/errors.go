package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrInvalidURL         = errors.New("invalid URL provided")
	ErrInvalidCredentials = errors.New("invalid credentials provided")

	ErrBadRequest         = errors.New("error 400, bad request")
	ErrUnauthorized       = errors.New("error 401, unauthorized access")
	ErrForbidden          = errors.New("error 403, forbidden access")
	ErrNotFound           = errors.New("error 404, requested resource not found")
	ErrMethodNotAllowed   = errors.New("error 405, method not allowed for given resource")
	ErrInternalServer     = errors.New("error 500, internal server error encountered")
	ErrBadGateway         = errors.New("error 502, bad gateway")
	ErrServiceUnavailable = errors.New("error 503, service unavailable")
	ErrGatewayTimeout     = errors.New("error 504, gateway timeout")
	ErrUnknown            = errors.New("an unknown error has occurred")
)

// StatusError reports a response outside [200,300).
type StatusError struct {
	Code   int
	Method string
	URL    string
	Err    error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Method, e.URL, e.Err)
}

func (e *StatusError) Unwrap() error { return e.Err }

// TransportError reports a request that never produced a response.
type TransportError struct {
	Op  string
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsSuccess reports whether code is a 2xx status.
func IsSuccess(code int) bool {
	return code >= 200 && code < 300
}

// MapStatus returns the sentinel for an HTTP status code.
func MapStatus(code int) error {
	switch code {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusMethodNotAllowed:
		return ErrMethodNotAllowed
	case http.StatusInternalServerError:
		return ErrInternalServer
	case http.StatusBadGateway:
		return ErrBadGateway
	case http.StatusServiceUnavailable:
		return ErrServiceUnavailable
	case http.StatusGatewayTimeout:
		return ErrGatewayTimeout
	default:
		return ErrUnknown
	}
}
