package auth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/lapsctl/internal/client/api"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Issuer exchanges a credential for a bearer token and revokes tokens.
type Issuer interface {
	Issue(ctx context.Context, user, secret string) (Token, error)
	Revoke(ctx context.Context, token string) error
}

// NewIssuer picks the client-credentials grant for API clients and basic
// authentication for users.
func NewIssuer(t *api.Transport, apiClient bool) Issuer {
	if apiClient {
		return &ClientCredentialsIssuer{transport: t, now: time.Now}
	}
	return &BasicIssuer{transport: t, now: time.Now}
}

// BasicIssuer posts basic credentials to the token endpoint.
type BasicIssuer struct {
	transport *api.Transport
	now       func() time.Time
}

type basicTokenResponse struct {
	Token   string `json:"token"`
	Expires string `json:"expires"`
}

func (b *BasicIssuer) Issue(ctx context.Context, user, secret string) (Token, error) {
	if user == "" || secret == "" {
		return Token{}, api.ErrInvalidCredentials
	}

	basic := base64.StdEncoding.EncodeToString([]byte(user + ":" + secret))
	headers := map[string]string{api.HeaderAuthorization: "Basic " + basic}

	data, _, err := b.transport.Send(ctx, http.MethodPost, string(api.EndpointAuthToken), headers, nil)
	if err != nil {
		return Token{}, err
	}

	var resp basicTokenResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return Token{}, fmt.Errorf("decode token response: %w", err)
	}
	if resp.Token == "" {
		return Token{}, fmt.Errorf("decode token response: %w", api.ErrInvalidCredentials)
	}

	var expires time.Time
	if resp.Expires != "" {
		if ts, err := time.Parse(time.RFC3339Nano, resp.Expires); err == nil {
			expires = ts
		}
	}

	return newToken(resp.Token, expires, b.now()), nil
}

func (b *BasicIssuer) Revoke(ctx context.Context, token string) error {
	return revoke(ctx, b.transport, token)
}

// ClientCredentialsIssuer runs the OAuth client-credentials grant for API
// clients. The client id is the user and the client secret is the secret.
type ClientCredentialsIssuer struct {
	transport *api.Transport
	now       func() time.Time
}

func (c *ClientCredentialsIssuer) Issue(ctx context.Context, clientID, secret string) (Token, error) {
	if clientID == "" || secret == "" {
		return Token{}, api.ErrInvalidCredentials
	}

	tokenURL := c.transport.URL(string(api.EndpointOAuthToken))
	cfg := clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: secret,
		TokenURL:     tokenURL,
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.transport.HTTPClient())
	tok, err := cfg.Token(ctx)
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) && re.Response != nil {
			code := re.Response.StatusCode
			return Token{}, &api.StatusError{Code: code, Method: http.MethodPost, URL: tokenURL, Err: api.MapStatus(code)}
		}
		return Token{}, &api.TransportError{Op: "post", URL: tokenURL, Err: err}
	}

	return newToken(tok.AccessToken, tok.Expiry, c.now()), nil
}

func (c *ClientCredentialsIssuer) Revoke(ctx context.Context, token string) error {
	return revoke(ctx, c.transport, token)
}

func revoke(ctx context.Context, t *api.Transport, token string) error {
	headers := map[string]string{api.HeaderAuthorization: "Bearer " + token}
	_, _, err := t.Send(ctx, http.MethodPost, string(api.EndpointInvalidateToken), headers, nil)
	return err
}
