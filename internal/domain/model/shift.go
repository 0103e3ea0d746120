// Package model holds the server-owned record shapes exchanged with the
// guard-ops backend. The client keeps no copy of these beyond the
// current request/response; staleness is resolved by re-fetching.
package model

import "time"

// ShiftStatus enumerates the backend's shift lifecycle states.
type ShiftStatus string

const (
	ShiftActive    ShiftStatus = "active"
	ShiftCompleted ShiftStatus = "completed"
)

// Shift is a guard's open work period at a site, bounded by start/end
// events.
type Shift struct {
	ID        string      `json:"id"`
	GuardID   string      `json:"guard_id"`
	SiteID    string      `json:"site_id"`
	Status    ShiftStatus `json:"status"`
	StartedAt time.Time   `json:"started_at"`
	EndedAt   *time.Time  `json:"ended_at,omitempty"`
}

// Active reports whether the shift is still open.
func (s Shift) Active() bool { return s.EndedAt == nil && s.Status != ShiftCompleted }
