package api

import "strings"

// Endpoint is a server path template. Placeholders are written as {name}.
type Endpoint string

const (
	EndpointAuthToken       Endpoint = "/api/v1/auth/token"
	EndpointOAuthToken      Endpoint = "/api/oauth/token"
	EndpointInvalidateToken Endpoint = "/api/v1/auth/invalidate-token"

	EndpointComputers Endpoint = "/api/v1/computers-inventory"

	EndpointAccounts         Endpoint = "/api/v2/local-admin-password/{managementId}/accounts"
	EndpointAudit            Endpoint = "/api/v2/local-admin-password/{managementId}/account/{username}/audit"
	EndpointAuditGUID        Endpoint = "/api/v2/local-admin-password/{managementId}/account/{username}/{guid}/audit"
	EndpointPassword         Endpoint = "/api/v2/local-admin-password/{managementId}/account/{username}/password"
	EndpointPasswordGUID     Endpoint = "/api/v2/local-admin-password/{managementId}/account/{username}/{guid}/password"
	EndpointHistory          Endpoint = "/api/v2/local-admin-password/{managementId}/history"
	EndpointPendingRotations Endpoint = "/api/v2/local-admin-password/pending-rotations"
	EndpointSetPassword      Endpoint = "/api/v2/local-admin-password/{managementId}/set-password"
	EndpointSettings         Endpoint = "/api/v2/local-admin-password/settings"

	EndpointAPIIntegrations Endpoint = "/api/v1/api-integrations"
)

// Build substitutes every {key} present in params. Placeholders without a
// value are left untouched; the transport rejects such paths.
func (e Endpoint) Build(params map[string]string) string {
	path := string(e)
	for k, v := range params {
		path = strings.ReplaceAll(path, "{"+k+"}", v)
	}
	return path
}

func hasPlaceholder(path string) bool {
	open := strings.IndexByte(path, '{')
	return open >= 0 && strings.IndexByte(path[open:], '}') > 0
}
