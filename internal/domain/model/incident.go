package model

import (
	"net/url"
	"time"
)

// IncidentStatus enumerates the backend's incident workflow states.
type IncidentStatus string

const (
	IncidentOpen          IncidentStatus = "open"
	IncidentInvestigating IncidentStatus = "investigating"
	IncidentResolved      IncidentStatus = "resolved"
)

// IncidentSeverity enumerates reported severities.
type IncidentSeverity string

const (
	SeverityLow      IncidentSeverity = "low"
	SeverityMedium   IncidentSeverity = "medium"
	SeverityHigh     IncidentSeverity = "high"
	SeverityCritical IncidentSeverity = "critical"
)

// Incident is an entry in the site incident register.
type Incident struct {
	ID          string           `json:"id"`
	SiteID      string           `json:"site_id"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Severity    IncidentSeverity `json:"severity"`
	Status      IncidentStatus   `json:"status"`
	ReportedBy  string           `json:"reported_by,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   *time.Time       `json:"updated_at,omitempty"`
}

// IncidentDraft is the payload for reporting a new incident.
type IncidentDraft struct {
	SiteID      string           `json:"site_id"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Severity    IncidentSeverity `json:"severity"`
}

// IncidentUpdate is the payload for updating an existing incident.
// Nil fields are omitted and left unchanged by the backend.
type IncidentUpdate struct {
	Title       *string           `json:"title,omitempty"`
	Description *string           `json:"description,omitempty"`
	Severity    *IncidentSeverity `json:"severity,omitempty"`
	Status      *IncidentStatus   `json:"status,omitempty"`
}

// IncidentFilter narrows incident listings by site and/or status.
type IncidentFilter struct {
	SiteID string
	Status IncidentStatus
}

// Values renders the filter as query parameters, omitting empty fields.
func (f IncidentFilter) Values() url.Values {
	q := url.Values{}
	if f.SiteID != "" {
		q.Set("site_id", f.SiteID)
	}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	return q
}
