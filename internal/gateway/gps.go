package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/millio-space/guardops/internal/domain/model"
)

// ReportLocation submits a position fix for the authenticated guard.
func (c *Client) ReportLocation(ctx context.Context, fix model.LocationFix) error {
	_, err := c.do(ctx, call{
		method:   http.MethodPost,
		path:     "/gps/location",
		jsonBody: fix,
	})
	return err
}

// TriggerSOS raises an emergency alert. The backend takes the position
// and message as query parameters with an empty body.
func (c *Client) TriggerSOS(ctx context.Context, lat, lng float64, message string) (model.SOSAlert, error) {
	query := url.Values{
		"latitude":  {strconv.FormatFloat(lat, 'f', -1, 64)},
		"longitude": {strconv.FormatFloat(lng, 'f', -1, 64)},
		"message":   {message},
	}

	var alert model.SOSAlert
	_, err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/gps/sos",
		query:  query,
		out:    &alert,
	})
	return alert, err
}

// ActiveAlerts lists unacknowledged SOS alerts.
func (c *Client) ActiveAlerts(ctx context.Context) ([]model.SOSAlert, error) {
	var alerts []model.SOSAlert
	_, err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/gps/alerts/active",
		out:    &alerts,
	})
	return alerts, err
}

// AcknowledgeAlert marks an SOS alert as handled.
func (c *Client) AcknowledgeAlert(ctx context.Context, alertID string) (model.SOSAlert, error) {
	var alert model.SOSAlert
	_, err := c.do(ctx, call{
		method: http.MethodPut,
		path:   "/gps/alerts/" + url.PathEscape(alertID) + "/acknowledge",
		out:    &alert,
	})
	return alert, err
}
