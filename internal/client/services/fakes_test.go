package services

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/lapsctl/internal/client/api"
	"github.com/dmitrijs2005/lapsctl/internal/client/batch"
	"github.com/dmitrijs2005/lapsctl/internal/client/resolver"
	"github.com/dmitrijs2005/lapsctl/internal/logging"
)

// events records the order in which collaborators were called.
type events struct {
	mu  sync.Mutex
	log []string
}

func (e *events) add(s string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.log = append(e.log, s)
}

func (e *events) list() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.log...)
}

type fakeAuth struct {
	ev     *events
	err    error
	closed bool
}

func (f *fakeAuth) Authenticate(context.Context) error {
	f.ev.add("auth")
	return f.err
}

func (f *fakeAuth) Close(context.Context) { f.closed = true }

type fakeAPI struct {
	ev *events

	mu           sync.Mutex
	computers    map[string][]api.Computer
	passwords    map[string]string
	setCalls     map[string]string
	failSet      map[string]error
	history      []api.HistoryEntry
	audit        []api.PasswordAuditEntry
	accounts     []api.Account
	pending      []api.PendingRotation
	settings     api.Settings
	updates      []api.SettingsUpdate
	rereadErr    error
	integrations []api.APIIntegration
	lookups      [][]string
}

func newFakeAPI(ev *events) *fakeAPI {
	return &fakeAPI{
		ev:        ev,
		computers: map[string][]api.Computer{},
		passwords: map[string]string{},
		setCalls:  map[string]string{},
		failSet:   map[string]error{},
	}
}

func (f *fakeAPI) SearchComputers(_ context.Context, filter string) ([]api.Computer, error) {
	f.ev.add("search")
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.computers[filter], nil
}

func (f *fakeAPI) ComputersByManagementIDs(_ context.Context, ids []string) ([]api.Computer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups = append(f.lookups, ids)
	out := make([]api.Computer, 0, len(ids))
	for _, id := range ids {
		out = append(out, api.Computer{General: api.ComputerGeneral{ManagementID: id, Name: "looked-" + id}})
	}
	return out, nil
}

func (f *fakeAPI) Password(_ context.Context, managementID, _, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	pw, ok := f.passwords[managementID]
	if !ok {
		return "", api.ErrNotFound
	}
	return pw, nil
}

func (f *fakeAPI) SetPassword(_ context.Context, managementID, _, password string) error {
	f.ev.add("set:" + managementID)
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failSet[managementID]; err != nil {
		return err
	}
	f.setCalls[managementID] = password
	return nil
}

func (f *fakeAPI) History(context.Context, string) ([]api.HistoryEntry, error) {
	return append([]api.HistoryEntry(nil), f.history...), nil
}

func (f *fakeAPI) Audit(context.Context, string, string, string) ([]api.PasswordAuditEntry, error) {
	return f.audit, nil
}

func (f *fakeAPI) Accounts(context.Context, string) ([]api.Account, error) {
	return f.accounts, nil
}

func (f *fakeAPI) PendingRotations(context.Context) ([]api.PendingRotation, error) {
	return append([]api.PendingRotation(nil), f.pending...), nil
}

func (f *fakeAPI) Settings(context.Context) (api.Settings, error) {
	if f.rereadErr != nil && len(f.updates) > 0 {
		return api.Settings{}, f.rereadErr
	}
	return f.settings, nil
}

func (f *fakeAPI) UpdateSettings(_ context.Context, u api.SettingsUpdate) error {
	f.updates = append(f.updates, u)
	f.settings = Preview(f.settings, u)
	return nil
}

func (f *fakeAPI) APIIntegrations(context.Context) ([]api.APIIntegration, error) {
	return f.integrations, nil
}

type recordingPrompter struct {
	ev     *events
	choice string
	seen   []resolver.Candidate
}

func (p *recordingPrompter) PromptChoice(_ string, c []resolver.Candidate) (string, error) {
	p.ev.add("prompt")
	p.seen = c
	return p.choice, nil
}

func newPipeline(ev *events, fa *fakeAPI, prompter resolver.Prompter) (*Pipeline, *fakeAuth) {
	auth := &fakeAuth{ev: ev}
	res := resolver.New(fa, prompter, logging.Nop())
	var seq atomic.Int32
	return &Pipeline{
		Auth:     auth,
		Resolver: res,
		API:      fa,
		Batch:    batch.New(res, fa, 2, 4, logging.Nop()),
		Logger:   logging.Nop(),
		Generate: func() (string, error) {
			return "gen-pass-" + strconv.Itoa(int(seq.Add(1))), nil
		},
	}, auth
}
