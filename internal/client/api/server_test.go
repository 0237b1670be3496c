package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseServer(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"example.jamfcloud.com", "https://example.jamfcloud.com:443"},
		{"jss.corp.local", "https://jss.corp.local:8443"},
		{"http://jss.corp.local", "https://jss.corp.local:8443"},
		{"https://jss.corp.local:9443", "https://jss.corp.local:9443"},
		{"ftp://example.jamfcloud.com:8080/", "https://example.jamfcloud.com:8080"},
		{"  jss.corp.local  ", "https://jss.corp.local:8443"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			s, err := ParseServer(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.BaseURL())
		})
	}
}

func TestParseServer_Invalid(t *testing.T) {
	for _, raw := range []string{"", "https://", "https://:8443"} {
		_, err := ParseServer(raw)
		assert.ErrorIs(t, err, ErrInvalidURL, raw)
	}
}
