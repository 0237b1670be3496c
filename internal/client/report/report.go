// Package report shapes API responses into rows for display.
package report

import (
	"cmp"
	"slices"
	"time"

	"github.com/dmitrijs2005/lapsctl/internal/client/api"
)

// Order is a sort direction.
type Order int

const (
	Ascending Order = iota
	Descending
)

// AuditRow is one view of one password generation, or the generation alone
// when nobody viewed it.
type AuditRow struct {
	Password       string
	DateLastSeen   *time.Time
	ExpirationTime *time.Time
	DateSeen       *time.Time
	ViewedBy       string
}

// ClientNames maps API client IDs to their display names.
type ClientNames map[string]string

// NewClientNames indexes integrations by client ID.
func NewClientNames(integrations []api.APIIntegration) ClientNames {
	names := make(ClientNames, len(integrations))
	for _, in := range integrations {
		if in.ClientID != "" {
			names[in.ClientID] = in.DisplayName
		}
	}
	return names
}

// ExpandAudit emits one row per view event and exactly one row with empty
// view fields for a generation that has none.
func ExpandAudit(entries []api.PasswordAuditEntry) []AuditRow {
	var rows []AuditRow
	for _, e := range entries {
		base := AuditRow{
			Password:       e.Password,
			DateLastSeen:   e.DateLastSeen,
			ExpirationTime: e.ExpirationTime,
		}
		if len(e.Audits) == 0 {
			rows = append(rows, base)
			continue
		}
		for _, ev := range e.Audits {
			row := base
			seen := ev.DateSeen
			row.DateSeen = &seen
			row.ViewedBy = ev.ViewedBy
			rows = append(rows, row)
		}
	}
	return rows
}

// AnnotateViewers replaces viewer IDs that name an API client. Other viewers
// are left alone.
func AnnotateViewers(rows []AuditRow, names ClientNames) {
	for i := range rows {
		if name, ok := names[rows[i].ViewedBy]; ok && name != "" {
			rows[i].ViewedBy = name
		}
	}
}

// SortAudit orders rows by expiration time.
func SortAudit(rows []AuditRow, order Order) {
	slices.SortStableFunc(rows, func(a, b AuditRow) int {
		return directed(compareTimes(a.ExpirationTime, b.ExpirationTime), order)
	})
}

// SortHistory orders entries by event time.
func SortHistory(entries []api.HistoryEntry, order Order) {
	slices.SortStableFunc(entries, func(a, b api.HistoryEntry) int {
		return directed(compareTimes(a.EventTime, b.EventTime), order)
	})
}

// SortPending orders rotations by creation date.
func SortPending(rotations []api.PendingRotation, order Order) {
	slices.SortStableFunc(rotations, func(a, b api.PendingRotation) int {
		return directed(a.CreatedDate.Compare(b.CreatedDate), order)
	})
}

// compareTimes treats a missing time as older than any present one.
func compareTimes(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return a.Compare(*b)
}

func directed(c int, order Order) int {
	if order == Descending {
		return cmp.Compare(0, c)
	}
	return c
}
