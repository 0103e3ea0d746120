package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/millio-space/guardops/internal/domain/model"
)

// Sites lists the guarded sites visible to the caller.
func (c *Client) Sites(ctx context.Context) ([]model.Site, error) {
	var sites []model.Site
	_, err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/sites/",
		out:    &sites,
	})
	return sites, err
}

// AssignUserToSite assigns a user to a site. Requires a supervisor or
// admin role; a guard gets a forbidden error back from the backend.
func (c *Client) AssignUserToSite(ctx context.Context, siteID, userID string) error {
	_, err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/sites/" + url.PathEscape(siteID) + "/users/" + url.PathEscape(userID),
	})
	return err
}

// UnassignUserFromSite removes a user's site assignment.
func (c *Client) UnassignUserFromSite(ctx context.Context, siteID, userID string) error {
	_, err := c.do(ctx, call{
		method: http.MethodDelete,
		path:   "/sites/" + url.PathEscape(siteID) + "/users/" + url.PathEscape(userID),
	})
	return err
}
