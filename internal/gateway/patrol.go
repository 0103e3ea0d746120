package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/millio-space/guardops/internal/domain/model"
)

// CurrentShift returns the caller's active shift, or nil when none is
// open. The backend represents "no active shift" as a 404; that is an
// absent result here, never a failure.
func (c *Client) CurrentShift(ctx context.Context) (*model.Shift, error) {
	var shift model.Shift
	found, err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     "/patrol/shifts/current",
		out:      &shift,
		optional: true,
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &shift, nil
}

// StartShift opens a shift at the given site.
func (c *Client) StartShift(ctx context.Context, siteID string) (model.Shift, error) {
	var shift model.Shift
	_, err := c.do(ctx, call{
		method:   http.MethodPost,
		path:     "/patrol/shifts",
		jsonBody: map[string]string{"site_id": siteID},
		out:      &shift,
	})
	return shift, err
}

// EndShift closes the given shift.
func (c *Client) EndShift(ctx context.Context, shiftID string) (model.Shift, error) {
	var shift model.Shift
	_, err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/patrol/shifts/" + url.PathEscape(shiftID) + "/end",
		out:    &shift,
	})
	return shift, err
}

// Checkpoints lists the patrol checkpoints, optionally filtered by site.
func (c *Client) Checkpoints(ctx context.Context, siteID string) ([]model.Checkpoint, error) {
	query := url.Values{}
	if siteID != "" {
		query.Set("site_id", siteID)
	}

	var checkpoints []model.Checkpoint
	_, err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/patrol/checkpoints/",
		query:  query,
		out:    &checkpoints,
	})
	return checkpoints, err
}

// LogCheckpointVisit records a checkpoint visit against the open shift.
func (c *Client) LogCheckpointVisit(ctx context.Context, visit model.CheckpointVisit) (model.ShiftLog, error) {
	var entry model.ShiftLog
	_, err := c.do(ctx, call{
		method:   http.MethodPost,
		path:     "/patrol/shifts/logs/",
		jsonBody: visit,
		out:      &entry,
	})
	return entry, err
}
