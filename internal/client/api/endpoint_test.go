package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEndpointBuild(t *testing.T) {
	tests := []struct {
		name     string
		endpoint Endpoint
		params   map[string]string
		want     string
	}{
		{
			name:     "all placeholders",
			endpoint: EndpointAuditGUID,
			params:   map[string]string{"managementId": "m-1", "username": "admin", "guid": "g-1"},
			want:     "/api/v2/local-admin-password/m-1/account/admin/g-1/audit",
		},
		{
			name:     "missing placeholder kept",
			endpoint: EndpointPassword,
			params:   map[string]string{"managementId": "m-1"},
			want:     "/api/v2/local-admin-password/m-1/account/{username}/password",
		},
		{
			name:     "no params",
			endpoint: EndpointSettings,
			want:     "/api/v2/local-admin-password/settings",
		},
		{
			name:     "unused params ignored",
			endpoint: EndpointHistory,
			params:   map[string]string{"managementId": "m-2", "extra": "x"},
			want:     "/api/v2/local-admin-password/m-2/history",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.endpoint.Build(tt.params))
		})
	}
}

func TestHasPlaceholder(t *testing.T) {
	assert.True(t, hasPlaceholder("/a/{x}/b"))
	assert.False(t, hasPlaceholder("/a/b"))
	assert.False(t, hasPlaceholder("/a/}{"))
}
