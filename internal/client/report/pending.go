package report

import (
	"time"

	"github.com/dmitrijs2005/lapsctl/internal/client/api"
)

// PendingRow is a pending rotation with the device name filled in when known.
type PendingRow struct {
	ManagementID string
	ComputerName string
	Username     string
	GUID         string
	UserSource   string
	CreatedDate  time.Time
}

// FilterPending keeps rotations for the given management IDs. An empty set
// keeps everything.
func FilterPending(rotations []api.PendingRotation, managementIDs map[string]struct{}) []api.PendingRotation {
	if len(managementIDs) == 0 {
		return rotations
	}
	out := make([]api.PendingRotation, 0, len(rotations))
	for _, r := range rotations {
		if _, ok := managementIDs[r.User.ClientManagementID]; ok {
			out = append(out, r)
		}
	}
	return out
}

// PendingRows converts rotations to rows. names may be nil.
func PendingRows(rotations []api.PendingRotation, names map[string]string) []PendingRow {
	rows := make([]PendingRow, len(rotations))
	for i, r := range rotations {
		rows[i] = PendingRow{
			ManagementID: r.User.ClientManagementID,
			ComputerName: names[r.User.ClientManagementID],
			Username:     r.User.Username,
			GUID:         r.User.GUID,
			UserSource:   r.User.UserSource,
			CreatedDate:  r.CreatedDate,
		}
	}
	return rows
}
