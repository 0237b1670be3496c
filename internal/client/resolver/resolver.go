package resolver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/dmitrijs2005/lapsctl/internal/client/api"
	"github.com/dmitrijs2005/lapsctl/internal/logging"
)

var (
	ErrNoMatch   = errors.New("no device found for identifier")
	ErrCancelled = errors.New("selection cancelled")
)

// ResolutionError ties a failure to the identifier that caused it.
type ResolutionError struct {
	Identifier string
	Err        error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve %q: %v", e.Identifier, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// Candidate is one of several devices matching an identifier.
type Candidate struct {
	JamfID       string
	Name         string
	Serial       string
	ManagementID string
}

// Prompter asks the user to pick one candidate. It returns the chosen
// JamfID as typed; io.EOF means the user gave up.
type Prompter interface {
	PromptChoice(identifier string, candidates []Candidate) (string, error)
}

// Searcher runs an inventory search.
type Searcher interface {
	SearchComputers(ctx context.Context, filter string) ([]api.Computer, error)
}

// Resolver turns identifiers into device references.
type Resolver struct {
	searcher Searcher
	prompter Prompter
	logger   logging.Logger

	promptMu sync.Mutex
}

func New(searcher Searcher, prompter Prompter, logger logging.Logger) *Resolver {
	return &Resolver{searcher: searcher, prompter: prompter, logger: logger}
}

// Resolve returns the device an identifier names. Management IDs pass
// through without a request. Ambiguous matches are settled by the prompter;
// concurrent callers take turns at the prompt.
func (r *Resolver) Resolve(ctx context.Context, id Identifier) (DeviceRef, error) {
	if ref, ok := FromOpaque(id); ok {
		return ref, nil
	}

	filter := Filter(id)
	r.logger.Debug(ctx, "searching inventory", "identifier", id.Raw, "kind", id.Kind().String())

	computers, err := r.searcher.SearchComputers(ctx, filter)
	if err != nil {
		return DeviceRef{}, &ResolutionError{Identifier: id.Raw, Err: err}
	}

	switch len(computers) {
	case 0:
		return DeviceRef{}, &ResolutionError{Identifier: id.Raw, Err: ErrNoMatch}
	case 1:
		c := computers[0]
		return DeviceRef{ManagementID: c.General.ManagementID, Name: c.General.Name}, nil
	}

	return r.choose(ctx, id, computers)
}

func (r *Resolver) choose(ctx context.Context, id Identifier, computers []api.Computer) (DeviceRef, error) {
	candidates := make([]Candidate, len(computers))
	byJamfID := make(map[string]api.Computer, len(computers))
	for i, c := range computers {
		candidates[i] = Candidate{
			JamfID:       c.ID,
			Name:         c.General.Name,
			Serial:       c.Hardware.SerialNumber,
			ManagementID: c.General.ManagementID,
		}
		byJamfID[c.ID] = c
	}

	if r.prompter == nil {
		return DeviceRef{}, &ResolutionError{Identifier: id.Raw, Err: fmt.Errorf("%d devices match: %w", len(computers), ErrCancelled)}
	}

	r.promptMu.Lock()
	defer r.promptMu.Unlock()

	for {
		if err := ctx.Err(); err != nil {
			return DeviceRef{}, &ResolutionError{Identifier: id.Raw, Err: err}
		}

		choice, err := r.prompter.PromptChoice(id.Raw, candidates)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, ErrCancelled) {
				return DeviceRef{}, &ResolutionError{Identifier: id.Raw, Err: ErrCancelled}
			}
			return DeviceRef{}, &ResolutionError{Identifier: id.Raw, Err: err}
		}

		c, ok := byJamfID[choice]
		if !ok {
			r.logger.Warn(ctx, "invalid selection", "identifier", id.Raw, "choice", choice)
			continue
		}
		return DeviceRef{ManagementID: c.General.ManagementID, Name: c.General.Name}, nil
	}
}
