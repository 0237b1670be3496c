// Package services composes authentication, identifier resolution, batching
// and the REST client into the operations the CLI exposes.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/lapsctl/internal/client/api"
	"github.com/dmitrijs2005/lapsctl/internal/client/batch"
	"github.com/dmitrijs2005/lapsctl/internal/client/resolver"
	"github.com/dmitrijs2005/lapsctl/internal/logging"
	"github.com/google/uuid"
)

var (
	ErrNoLocalAdmin = errors.New("local admin username must be provided")
	ErrInvalidGUID  = errors.New("guid must be a valid UUID")
	ErrNothingToDo  = errors.New("no identifiers provided")
)

// Authenticator establishes the session every call depends on.
type Authenticator interface {
	Authenticate(ctx context.Context) error
	Close(ctx context.Context)
}

// Resolver resolves one identifier.
type Resolver interface {
	Resolve(ctx context.Context, id resolver.Identifier) (resolver.DeviceRef, error)
}

// Pipeline wires the collaborators of one command invocation.
type Pipeline struct {
	Auth     Authenticator
	Resolver Resolver
	API      api.Client
	Batch    *batch.Coordinator
	Logger   logging.Logger

	// Generate produces new passwords for Rotate.
	Generate func() (string, error)
}

// Account selects a local admin account on a device. GUID is optional.
type Account struct {
	Username string
	GUID     string
}

func (a Account) validate() error {
	if a.Username == "" {
		return ErrNoLocalAdmin
	}
	if a.GUID != "" {
		if _, err := uuid.Parse(a.GUID); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidGUID, a.GUID)
		}
	}
	return nil
}

// Close ends the server session.
func (p *Pipeline) Close(ctx context.Context) {
	p.Auth.Close(ctx)
}

// ResolveOne authenticates and resolves a single identifier.
func (p *Pipeline) ResolveOne(ctx context.Context, raw string) (resolver.DeviceRef, error) {
	if err := p.Auth.Authenticate(ctx); err != nil {
		return resolver.DeviceRef{}, err
	}
	return p.Resolver.Resolve(ctx, resolver.Identifier{Raw: raw})
}

// resolveMany authenticates and resolves every identifier through the batch
// coordinator.
func (p *Pipeline) resolveMany(ctx context.Context, raws []string) (batch.Result[resolver.DeviceRef], error) {
	if len(raws) == 0 {
		return nil, ErrNothingToDo
	}
	if err := p.Auth.Authenticate(ctx); err != nil {
		return nil, err
	}
	return p.Batch.ResolveMany(ctx, raws)
}
