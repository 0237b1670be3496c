// Package api talks to the device-management server's REST surface.
//
// # Overview
//
// The package provides:
//  1. Endpoint templates with {placeholder} substitution (see Endpoint).
//  2. A Transport that composes headers, injects the bearer token supplied by
//     a TokenProvider and classifies non-2xx responses into typed errors.
//  3. A REST client (see Client and RESTClient) covering computers inventory,
//     local admin password operations, settings and API integrations.
//
// # Error Handling
//
// Status failures are returned as *StatusError, which unwraps to one of the
// sentinel errors (ErrUnauthorized, ErrNotFound, ...) so callers can match
// them with errors.Is. Network and URL failures are returned as
// *TransportError. The transport never retries; retry policy belongs to the
// auth session and the batch layer.
package api
