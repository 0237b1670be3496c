package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/lapsctl/internal/client/api"
	"github.com/dmitrijs2005/lapsctl/internal/logging"
)

// ErrAuthentication wraps every terminal authentication failure.
var ErrAuthentication = errors.New("authentication failed")

// State is the authentication state of a Session.
type State int

const (
	StateUnauthenticated State = iota
	StateAuthenticating
	StateAuthenticated
	StateExpired
	StateRejected
)

func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	case StateExpired:
		return "expired"
	case StateRejected:
		return "rejected"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Session holds the current token and re-authenticates when it expires. It is
// safe for concurrent use; Token may be called from many workers at once.
type Session struct {
	mu sync.Mutex

	issuer   Issuer
	store    CredentialStore
	prompter SecretPrompter
	logger   logging.Logger
	key      CredentialKey
	noCache  bool
	now      func() time.Time

	state     State
	token     Token
	secret    string
	fromCache bool
}

// SessionOption customizes a Session.
type SessionOption func(*Session)

// WithoutCache disables reading and writing the credential store.
func WithoutCache() SessionOption {
	return func(s *Session) { s.noCache = true }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

func NewSession(issuer Issuer, store CredentialStore, prompter SecretPrompter, key CredentialKey, logger logging.Logger, opts ...SessionOption) *Session {
	s := &Session{
		issuer:   issuer,
		store:    store,
		prompter: prompter,
		logger:   logger,
		key:      key,
		now:      time.Now,
		state:    StateUnauthenticated,
	}
	for _, o := range opts {
		o(s)
	}
	if s.store == nil {
		s.noCache = true
	}
	return s
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Authenticate obtains a token unless the session already holds a valid one.
func (s *Session) Authenticate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateAuthenticated && !s.token.Expired(s.now()) {
		return nil
	}
	return s.authenticateLocked(ctx)
}

// Token returns a valid bearer token, re-authenticating first when the current
// one has expired.
func (s *Session) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateAuthenticated && s.token.Expired(s.now()) {
		s.state = StateExpired
		s.logger.Debug(ctx, "token expired", "key", s.key.String())
	}
	if s.state != StateAuthenticated {
		if err := s.authenticateLocked(ctx); err != nil {
			return "", err
		}
	}
	return s.token.Value, nil
}

// Close revokes the current token. Revocation failures are logged only.
func (s *Session) Close(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateAuthenticated {
		return
	}
	if err := s.issuer.Revoke(ctx, s.token.Value); err != nil {
		s.logger.Warn(ctx, "token invalidation failed", "error", err)
	}
	s.token = Token{}
	s.state = StateUnauthenticated
}

func (s *Session) authenticateLocked(ctx context.Context) error {
	if s.secret == "" {
		if err := s.loadSecret(ctx); err != nil {
			s.state = StateUnauthenticated
			return err
		}
	}

	retried := false
	s.state = StateAuthenticating

	for {
		switch s.state {
		case StateAuthenticating:
			tok, err := s.issuer.Issue(ctx, s.key.User, s.secret)
			if err != nil {
				s.logger.Debug(ctx, "token request rejected", "key", s.key.String(), "error", err)
				s.state = StateRejected
				s.token = Token{}
				if !errors.Is(err, api.ErrUnauthorized) || !s.fromCache || retried {
					s.secret = ""
					return fmt.Errorf("%w for %s: %w", ErrAuthentication, s.key.String(), err)
				}

				retried = true
				s.logger.Warn(ctx, "cached credential rejected, prompting", "key", s.key.String())
				if derr := s.store.Delete(ctx, s.key); derr != nil {
					s.logger.Warn(ctx, "failed to delete cached credential", "error", derr)
				}
				if err := s.promptSecret(); err != nil {
					s.secret = ""
					s.state = StateUnauthenticated
					return err
				}
				s.state = StateAuthenticating
				continue
			}

			s.token = tok
			s.state = StateAuthenticated

		case StateAuthenticated:
			if !s.fromCache && !s.noCache {
				if err := s.store.Set(ctx, s.key, s.secret); err != nil {
					s.logger.Warn(ctx, "failed to cache credential", "error", err)
				} else {
					s.fromCache = true
				}
			}
			s.logger.Debug(ctx, "authenticated", "key", s.key.String(), "expires", s.token.Expires)
			return nil

		default:
			return fmt.Errorf("%w: unexpected state %s", ErrAuthentication, s.state)
		}
	}
}

func (s *Session) loadSecret(ctx context.Context) error {
	if !s.noCache {
		secret, found, err := s.store.Get(ctx, s.key)
		switch {
		case err != nil:
			s.logger.Warn(ctx, "credential store unavailable", "error", err)
		case found && secret != "":
			s.secret = secret
			s.fromCache = true
			return nil
		}
	}
	return s.promptSecret()
}

func (s *Session) promptSecret() error {
	s.fromCache = false
	if s.prompter == nil {
		return fmt.Errorf("%w: no credential available for %s", ErrAuthentication, s.key.String())
	}
	secret, err := s.prompter.PromptSecret(fmt.Sprintf("Password for %s: ", s.key.String()))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAuthentication, err)
	}
	if secret == "" {
		return fmt.Errorf("%w: %w", ErrAuthentication, api.ErrInvalidCredentials)
	}
	s.secret = secret
	return nil
}
