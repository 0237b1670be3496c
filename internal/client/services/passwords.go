package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/lapsctl/internal/client/batch"
	"github.com/dmitrijs2005/lapsctl/internal/client/resolver"
)

// Password is a password read from or written to one device.
type Password struct {
	Device   resolver.DeviceRef
	Password string
}

// Get reads the current password of acct on every device.
func (p *Pipeline) Get(ctx context.Context, raws []string, acct Account) (batch.Result[Password], error) {
	if err := acct.validate(); err != nil {
		return nil, err
	}
	refs, err := p.resolveMany(ctx, raws)
	if err != nil {
		return toPasswords(refs), err
	}

	return batch.ApplyToMany(ctx, p.Batch, refs, func(ctx context.Context, ref resolver.DeviceRef) (Password, error) {
		pw, err := p.API.Password(ctx, ref.ManagementID, acct.Username, acct.GUID)
		if err != nil {
			return Password{}, err
		}
		return Password{Device: ref, Password: pw}, nil
	})
}

// Set writes password for acct on every device.
func (p *Pipeline) Set(ctx context.Context, raws []string, acct Account, password string) (batch.Result[Password], error) {
	if err := acct.validate(); err != nil {
		return nil, err
	}
	if password == "" {
		return nil, errors.New("password must not be empty")
	}
	refs, err := p.resolveMany(ctx, raws)
	if err != nil {
		return toPasswords(refs), err
	}

	return batch.ApplyToMany(ctx, p.Batch, refs, func(ctx context.Context, ref resolver.DeviceRef) (Password, error) {
		if err := p.API.SetPassword(ctx, ref.ManagementID, acct.Username, password); err != nil {
			return Password{}, err
		}
		p.Logger.Info(ctx, "password set", "management_id", ref.ManagementID, "username", acct.Username)
		return Password{Device: ref, Password: password}, nil
	})
}

// Rotate replaces the password of acct on every device with a freshly
// generated one per device.
func (p *Pipeline) Rotate(ctx context.Context, raws []string, acct Account) (batch.Result[Password], error) {
	if err := acct.validate(); err != nil {
		return nil, err
	}
	refs, err := p.resolveMany(ctx, raws)
	if err != nil {
		return toPasswords(refs), err
	}

	return batch.ApplyToMany(ctx, p.Batch, refs, func(ctx context.Context, ref resolver.DeviceRef) (Password, error) {
		pw, err := p.Generate()
		if err != nil {
			return Password{}, fmt.Errorf("generate password: %w", err)
		}
		if err := p.API.SetPassword(ctx, ref.ManagementID, acct.Username, pw); err != nil {
			return Password{}, err
		}
		p.Logger.Info(ctx, "password rotated", "management_id", ref.ManagementID, "username", acct.Username)
		return Password{Device: ref, Password: pw}, nil
	})
}

// toPasswords carries resolution failures over when nothing resolved.
func toPasswords(refs batch.Result[resolver.DeviceRef]) batch.Result[Password] {
	if refs == nil {
		return nil
	}
	out := make(batch.Result[Password], len(refs))
	for k, o := range refs {
		out[k] = batch.Outcome[Password]{Value: Password{Device: o.Value}, Err: o.Err}
	}
	return out
}
