package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/lapsctl/internal/client/api"
	"github.com/dmitrijs2005/lapsctl/internal/client/report"
	"github.com/dmitrijs2005/lapsctl/internal/client/resolver"
)

// History returns the password events of one device, sorted by event time.
func (p *Pipeline) History(ctx context.Context, raw string, order report.Order) (resolver.DeviceRef, []api.HistoryEntry, error) {
	ref, err := p.ResolveOne(ctx, raw)
	if err != nil {
		return ref, nil, err
	}
	entries, err := p.API.History(ctx, ref.ManagementID)
	if err != nil {
		return ref, nil, fmt.Errorf("history for %s: %w", raw, err)
	}
	report.SortHistory(entries, order)
	return ref, entries, nil
}

// AuditQuery selects what Audit reports.
type AuditQuery struct {
	Account Account
	Order   report.Order
	// NameClients replaces API client IDs in viewer columns with the
	// integration display names.
	NameClients bool
}

// Audit returns every password generation of an account with one row per
// view, sorted by expiration time.
func (p *Pipeline) Audit(ctx context.Context, raw string, q AuditQuery) (resolver.DeviceRef, []report.AuditRow, error) {
	if err := q.Account.validate(); err != nil {
		return resolver.DeviceRef{}, nil, err
	}
	ref, err := p.ResolveOne(ctx, raw)
	if err != nil {
		return ref, nil, err
	}

	entries, err := p.API.Audit(ctx, ref.ManagementID, q.Account.Username, q.Account.GUID)
	if err != nil {
		return ref, nil, fmt.Errorf("audit for %s: %w", raw, err)
	}
	rows := report.ExpandAudit(entries)

	if q.NameClients {
		integrations, err := p.API.APIIntegrations(ctx)
		if err != nil {
			p.Logger.Warn(ctx, "cannot map API client names", "error", err)
		} else {
			report.AnnotateViewers(rows, report.NewClientNames(integrations))
		}
	}

	report.SortAudit(rows, q.Order)
	return ref, rows, nil
}

// Accounts lists the LAPS capable accounts of one device.
func (p *Pipeline) Accounts(ctx context.Context, raw string) (resolver.DeviceRef, []api.Account, error) {
	ref, err := p.ResolveOne(ctx, raw)
	if err != nil {
		return ref, nil, err
	}
	accounts, err := p.API.Accounts(ctx, ref.ManagementID)
	if err != nil {
		return ref, nil, fmt.Errorf("accounts for %s: %w", raw, err)
	}
	return ref, accounts, nil
}

// PendingQuery selects what Pending reports.
type PendingQuery struct {
	// Identifiers restricts the result to these devices when not empty.
	Identifiers []string
	MapNames    bool
	Order       report.Order
}

// Pending lists the accounts waiting for a rotation.
func (p *Pipeline) Pending(ctx context.Context, q PendingQuery) ([]report.PendingRow, error) {
	if err := p.Auth.Authenticate(ctx); err != nil {
		return nil, err
	}

	rotations, err := p.API.PendingRotations(ctx)
	if err != nil {
		return nil, fmt.Errorf("pending rotations: %w", err)
	}

	known := map[string]string{}
	if len(q.Identifiers) > 0 {
		refs, err := p.Batch.ResolveMany(ctx, q.Identifiers)
		if err != nil {
			return nil, err
		}
		ids := make(map[string]struct{}, len(refs))
		for _, o := range refs {
			if o.Err == nil {
				ids[o.Value.ManagementID] = struct{}{}
				if o.Value.Name != "" {
					known[o.Value.ManagementID] = o.Value.Name
				}
			}
		}
		rotations = report.FilterPending(rotations, ids)
	}

	var names map[string]string
	if q.MapNames && len(rotations) > 0 {
		names, err = p.mapNames(ctx, rotations, known)
		if err != nil {
			return nil, err
		}
	}

	report.SortPending(rotations, q.Order)
	return report.PendingRows(rotations, names), nil
}

func (p *Pipeline) mapNames(ctx context.Context, rotations []api.PendingRotation, known map[string]string) (map[string]string, error) {
	var missing []string
	for _, r := range rotations {
		if _, ok := known[r.User.ClientManagementID]; !ok {
			missing = append(missing, r.User.ClientManagementID)
		}
	}
	if len(missing) == 0 {
		return known, nil
	}

	looked, err := p.Batch.LookupDisplayNames(ctx, missing)
	if err != nil {
		return nil, fmt.Errorf("map computer names: %w", err)
	}
	for id, name := range looked {
		known[id] = name
	}
	return known, nil
}
