package services

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/lapsctl/internal/client/api"
	"github.com/dmitrijs2005/lapsctl/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateSettings_ConfirmedApplies(t *testing.T) {
	ev := &events{}
	fa := newFakeAPI(ev)
	fa.settings = api.Settings{PasswordRotationTime: 3600}
	p, _ := newPipeline(ev, fa, nil)

	enabled := true
	var previewed api.Settings
	after, applied, err := p.UpdateSettings(context.Background(), api.SettingsUpdate{AutoRotateEnabled: &enabled},
		func(_, next api.Settings) (bool, error) {
			previewed = next
			return true, nil
		})
	require.NoError(t, err)

	assert.True(t, applied)
	assert.True(t, previewed.AutoRotateEnabled)
	assert.Equal(t, 3600, previewed.PasswordRotationTime)
	assert.True(t, after.AutoRotateEnabled)
	assert.Len(t, fa.updates, 1)
}

func TestUpdateSettings_RereadFailureIsLogged(t *testing.T) {
	ev := &events{}
	fa := newFakeAPI(ev)
	fa.settings = api.Settings{PasswordRotationTime: 3600}
	fa.rereadErr = errors.New("gateway timeout")
	p, _ := newPipeline(ev, fa, nil)

	var logs bytes.Buffer
	p.Logger = logging.New(&logs, false)

	n := 7200
	after, applied, err := p.UpdateSettings(context.Background(), api.SettingsUpdate{PasswordRotationTime: &n}, nil)
	require.NoError(t, err)

	assert.True(t, applied)
	assert.Equal(t, 7200, after.PasswordRotationTime)
	assert.Contains(t, logs.String(), "cannot re-read settings")
	assert.Contains(t, logs.String(), "gateway timeout")
}

func TestUpdateSettings_Declined(t *testing.T) {
	ev := &events{}
	fa := newFakeAPI(ev)
	p, _ := newPipeline(ev, fa, nil)

	n := 10
	_, applied, err := p.UpdateSettings(context.Background(), api.SettingsUpdate{PasswordRotationTime: &n},
		func(api.Settings, api.Settings) (bool, error) { return false, nil })
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Empty(t, fa.updates)
}

func TestUpdateSettings_Empty(t *testing.T) {
	ev := &events{}
	p, _ := newPipeline(ev, newFakeAPI(ev), nil)

	_, _, err := p.UpdateSettings(context.Background(), api.SettingsUpdate{}, nil)
	assert.ErrorIs(t, err, ErrNoChanges)
}

func TestIntegrations(t *testing.T) {
	ev := &events{}
	fa := newFakeAPI(ev)
	fa.integrations = []api.APIIntegration{{ClientID: "c", DisplayName: "d"}}
	p, auth := newPipeline(ev, fa, nil)

	got, err := p.Integrations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fa.integrations, got)

	p.Close(context.Background())
	assert.True(t, auth.closed)
}
