package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/millio-space/guardops/config"
	"github.com/millio-space/guardops/internal/apperrors"
	"github.com/millio-space/guardops/internal/domain/auth"
)

// loginResponse is the credential exchange answer. Current deployments
// return access_token; older ones returned token.
type loginResponse struct {
	AccessToken string `json:"access_token"`
	Token       string `json:"token"`
	TokenType   string `json:"token_type"`
}

func (r loginResponse) bearer() string {
	if r.AccessToken != "" {
		return r.AccessToken
	}
	return r.Token
}

// Login exchanges username/password for a bearer token using the
// deployment's declared encoding. The session store owns persisting and
// decoding the result.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	req := call{
		method: http.MethodPost,
		path:   "/auth/login",
	}

	switch c.loginEncoding {
	case config.LoginEncodingJSON:
		req.jsonBody = map[string]string{
			"username": username,
			"password": password,
		}
	default:
		req.formBody = url.Values{
			"username": {username},
			"password": {password},
		}
	}

	var resp loginResponse
	req.out = &resp
	if _, err := c.do(ctx, req); err != nil {
		return "", err
	}
	if resp.bearer() == "" {
		return "", apperrors.MalformedResponse(
			"login response carried no token",
			errors.New("empty access_token"),
		)
	}
	return resp.bearer(), nil
}

// Me fetches the identity behind the current credential.
func (c *Client) Me(ctx context.Context) (auth.Identity, error) {
	var identity auth.Identity
	_, err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/auth/me",
		out:    &identity,
	})
	return identity, err
}
