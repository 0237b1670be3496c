// Package auth owns the bearer token used by every API call.
//
// A Session walks an explicit state machine:
//
//	Unauthenticated -> Authenticating -> Authenticated -> (Expired | Rejected) -> Authenticating
//
// Credentials come from a CredentialStore (the local vault) or from an
// interactive SecretPrompter. A cached credential that is answered with 401 is
// deleted from the store and replaced by a freshly prompted one exactly once;
// a 401 for a freshly entered credential is terminal.
package auth
