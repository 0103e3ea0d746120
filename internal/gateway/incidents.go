package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/millio-space/guardops/internal/domain/model"
)

// Incidents lists the site incident register, filterable by site/status.
func (c *Client) Incidents(ctx context.Context, filter model.IncidentFilter) ([]model.Incident, error) {
	var incidents []model.Incident
	_, err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/incidents/",
		query:  filter.Values(),
		out:    &incidents,
	})
	return incidents, err
}

// CreateIncident reports a new incident to the register.
func (c *Client) CreateIncident(ctx context.Context, draft model.IncidentDraft) (model.Incident, error) {
	var incident model.Incident
	_, err := c.do(ctx, call{
		method:   http.MethodPost,
		path:     "/incidents/",
		jsonBody: draft,
		out:      &incident,
	})
	return incident, err
}

// UpdateIncident updates an incident in the register.
func (c *Client) UpdateIncident(ctx context.Context, id string, update model.IncidentUpdate) (model.Incident, error) {
	var incident model.Incident
	_, err := c.do(ctx, call{
		method:   http.MethodPut,
		path:     "/incidents/" + url.PathEscape(id),
		jsonBody: update,
		out:      &incident,
	})
	return incident, err
}

// PatrolIncidents lists the patrol incident log. This is a separate
// resource from the incident register, not an alternate path for it.
func (c *Client) PatrolIncidents(ctx context.Context) ([]model.Incident, error) {
	var incidents []model.Incident
	_, err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/patrol/incidents/",
		out:    &incidents,
	})
	return incidents, err
}

// CreatePatrolIncident records an incident in the patrol log.
func (c *Client) CreatePatrolIncident(ctx context.Context, draft model.IncidentDraft) (model.Incident, error) {
	var incident model.Incident
	_, err := c.do(ctx, call{
		method:   http.MethodPost,
		path:     "/patrol/incidents/",
		jsonBody: draft,
		out:      &incident,
	})
	return incident, err
}
