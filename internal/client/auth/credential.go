package auth

import "context"

// CredentialKey scopes a cached secret to a user on one server.
type CredentialKey struct {
	User string
	Host string
	Port string
}

func (k CredentialKey) String() string {
	return k.User + "@" + k.Host + ":" + k.Port
}

// CredentialStore is an opaque secret vault. Callers use it sequentially.
type CredentialStore interface {
	Get(ctx context.Context, key CredentialKey) (secret string, found bool, err error)
	Set(ctx context.Context, key CredentialKey, secret string) error
	Delete(ctx context.Context, key CredentialKey) error
}

// SecretPrompter asks the user for a secret without echoing it.
type SecretPrompter interface {
	PromptSecret(message string) (string, error)
}
