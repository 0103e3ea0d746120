package gateway

import (
	"context"
	"net/http"

	"github.com/millio-space/guardops/internal/domain/model"
)

// AnalyticsSummary fetches the operations roll-up.
func (c *Client) AnalyticsSummary(ctx context.Context) (model.AnalyticsSummary, error) {
	var summary model.AnalyticsSummary
	_, err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/analytics/summary",
		out:    &summary,
	})
	return summary, err
}

// IncidentCountBySite fetches per-site incident tallies.
func (c *Client) IncidentCountBySite(ctx context.Context) ([]model.SiteIncidentCount, error) {
	var counts []model.SiteIncidentCount
	_, err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/analytics/incidents/by-site",
		out:    &counts,
	})
	return counts, err
}
