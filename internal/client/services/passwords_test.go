package services

import (
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/lapsctl/internal/client/api"
	"github.com/dmitrijs2005/lapsctl/internal/client/batch"
	"github.com/dmitrijs2005/lapsctl/internal/client/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mgmtUUID = "550e8400-e29b-41d4-a716-446655440000"

func computer(id, name, serial, mgmt string) api.Computer {
	return api.Computer{
		ID:       id,
		General:  api.ComputerGeneral{Name: name, ManagementID: mgmt},
		Hardware: api.ComputerHardware{SerialNumber: serial},
	}
}

func TestRotate_PromptsBeforeRotating(t *testing.T) {
	ev := &events{}
	fa := newFakeAPI(ev)
	fa.computers[resolver.Filter(resolver.Identifier{Raw: "ABC123"})] = []api.Computer{
		computer("11", "lab-a", "ABC123", "m-a"),
		computer("12", "lab-b", "ABC123X", "m-b"),
	}
	pr := &recordingPrompter{ev: ev, choice: "12"}
	p, _ := newPipeline(ev, fa, pr)

	res, err := p.Rotate(context.Background(), []string{"ABC123", mgmtUUID}, Account{Username: "jamfadmin"})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Succeeded())
	assert.Equal(t, "m-b", res["ABC123"].Value.Device.ManagementID)
	assert.Equal(t, mgmtUUID, res[mgmtUUID].Value.Device.ManagementID)
	require.Len(t, pr.seen, 2)

	log := ev.list()
	assert.Equal(t, "auth", log[0])
	prompt := indexOf(log, "prompt")
	require.GreaterOrEqual(t, prompt, 0)
	assert.Less(t, prompt, indexOf(log, "set:m-b"))
	assert.Less(t, prompt, indexOf(log, "set:"+mgmtUUID))
	assert.Equal(t, 1, strings.Count(strings.Join(log, ","), "search"))

	assert.Equal(t, res["ABC123"].Value.Password, fa.setCalls["m-b"])
	assert.NotEqual(t, fa.setCalls["m-b"], fa.setCalls[mgmtUUID])
}

func TestGet_PartialFailure(t *testing.T) {
	ev := &events{}
	fa := newFakeAPI(ev)
	fa.passwords["m-1"] = "pw1"
	fa.computers[resolver.Filter(resolver.Identifier{Raw: "lab"})] = []api.Computer{computer("1", "lab", "S", "m-1")}
	p, _ := newPipeline(ev, fa, nil)

	res, err := p.Get(context.Background(), []string{"lab", "ghost", mgmtUUID}, Account{Username: "admin"})
	require.NoError(t, err)

	assert.Equal(t, "pw1", res["lab"].Value.Password)
	assert.ErrorIs(t, res["ghost"].Err, resolver.ErrNoMatch)
	assert.ErrorIs(t, res[mgmtUUID].Err, api.ErrNotFound)
	assert.Equal(t, 1, res.Succeeded())
}

func TestGet_NothingResolved(t *testing.T) {
	ev := &events{}
	p, _ := newPipeline(ev, newFakeAPI(ev), nil)

	res, err := p.Get(context.Background(), []string{"ghost"}, Account{Username: "admin"})
	assert.ErrorIs(t, err, batch.ErrNoneSucceeded)
	assert.ErrorIs(t, res["ghost"].Err, resolver.ErrNoMatch)
}

func TestSet_WritesEveryDevice(t *testing.T) {
	ev := &events{}
	fa := newFakeAPI(ev)
	fa.failSet["22222222-2222-2222-2222-222222222222"] = api.ErrForbidden
	p, _ := newPipeline(ev, fa, nil)

	res, err := p.Set(context.Background(),
		[]string{mgmtUUID, "22222222-2222-2222-2222-222222222222"},
		Account{Username: "admin"}, "N3w!")
	require.NoError(t, err)

	assert.Equal(t, "N3w!", fa.setCalls[mgmtUUID])
	assert.ErrorIs(t, res["22222222-2222-2222-2222-222222222222"].Err, api.ErrForbidden)
}

func TestAccountValidation(t *testing.T) {
	ev := &events{}
	p, _ := newPipeline(ev, newFakeAPI(ev), nil)
	ctx := context.Background()

	_, err := p.Get(ctx, []string{mgmtUUID}, Account{})
	assert.ErrorIs(t, err, ErrNoLocalAdmin)

	_, err = p.Rotate(ctx, []string{mgmtUUID}, Account{Username: "a", GUID: "nope"})
	assert.ErrorIs(t, err, ErrInvalidGUID)

	_, err = p.Set(ctx, nil, Account{Username: "a"}, "pw")
	assert.ErrorIs(t, err, ErrNothingToDo)

	assert.Empty(t, ev.list(), "validation happens before authentication")
}

func TestAuthFailureStopsEverything(t *testing.T) {
	ev := &events{}
	fa := newFakeAPI(ev)
	p, auth := newPipeline(ev, fa, nil)
	auth.err = api.ErrUnauthorized

	_, err := p.Rotate(context.Background(), []string{mgmtUUID}, Account{Username: "a"})
	assert.ErrorIs(t, err, api.ErrUnauthorized)
	assert.Equal(t, []string{"auth"}, ev.list())
}

func indexOf(s []string, v string) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}
