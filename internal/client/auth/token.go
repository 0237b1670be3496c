package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// fallbackLifetime applies when neither the response nor the token itself
// carries an expiry.
const fallbackLifetime = 20 * time.Minute

// Token is a bearer token. It is replaced wholesale, never modified.
type Token struct {
	Value   string
	Expires time.Time
	Issued  time.Time
}

// Expired reports whether now is at or past the expiry.
func (t Token) Expired(now time.Time) bool {
	return !now.Before(t.Expires)
}

// newToken fills missing timestamps from the token's own JWT claims when it
// is a JWT, and from now otherwise. The signature is not verified; the claims
// are only used to schedule re-authentication.
func newToken(value string, expires time.Time, now time.Time) Token {
	tok := Token{Value: value, Expires: expires, Issued: now}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(value, &claims); err == nil {
		if tok.Expires.IsZero() && claims.ExpiresAt != nil {
			tok.Expires = claims.ExpiresAt.Time
		}
		if claims.IssuedAt != nil {
			tok.Issued = claims.IssuedAt.Time
		}
	}

	if tok.Expires.IsZero() {
		tok.Expires = now.Add(fallbackLifetime)
	}
	return tok
}
