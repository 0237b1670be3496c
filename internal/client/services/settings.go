package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/lapsctl/internal/client/api"
)

var ErrNoChanges = errors.New("no settings changes requested")

// Settings returns the global LAPS settings.
func (p *Pipeline) Settings(ctx context.Context) (api.Settings, error) {
	if err := p.Auth.Authenticate(ctx); err != nil {
		return api.Settings{}, err
	}
	return p.API.Settings(ctx)
}

// Preview returns the settings as they would be after applying update.
func Preview(current api.Settings, update api.SettingsUpdate) api.Settings {
	next := current
	if update.AutoDeployEnabled != nil {
		next.AutoDeployEnabled = *update.AutoDeployEnabled
	}
	if update.AutoRotateEnabled != nil {
		next.AutoRotateEnabled = *update.AutoRotateEnabled
	}
	if update.PasswordRotationTime != nil {
		next.PasswordRotationTime = *update.PasswordRotationTime
	}
	if update.AutoRotateExpirationTime != nil {
		next.AutoRotateExpirationTime = *update.AutoRotateExpirationTime
	}
	return next
}

// UpdateSettings applies a partial change once confirm accepts the preview,
// then returns the settings the server reports afterwards. A nil confirm
// applies without asking.
func (p *Pipeline) UpdateSettings(ctx context.Context, update api.SettingsUpdate, confirm func(current, next api.Settings) (bool, error)) (api.Settings, bool, error) {
	if update.Empty() {
		return api.Settings{}, false, ErrNoChanges
	}

	current, err := p.Settings(ctx)
	if err != nil {
		return api.Settings{}, false, err
	}

	if confirm != nil {
		ok, err := confirm(current, Preview(current, update))
		if err != nil {
			return current, false, err
		}
		if !ok {
			return current, false, nil
		}
	}

	if err := p.API.UpdateSettings(ctx, update); err != nil {
		return current, false, fmt.Errorf("update settings: %w", err)
	}
	p.Logger.Info(ctx, "settings updated")

	after, err := p.API.Settings(ctx)
	if err != nil {
		p.Logger.Warn(ctx, "cannot re-read settings", "error", err)
		return Preview(current, update), true, nil
	}
	return after, true, nil
}

// Integrations lists the API integrations configured on the server.
func (p *Pipeline) Integrations(ctx context.Context) ([]api.APIIntegration, error) {
	if err := p.Auth.Authenticate(ctx); err != nil {
		return nil, err
	}
	return p.API.APIIntegrations(ctx)
}
