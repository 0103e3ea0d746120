// Package gateway is the typed façade over the guard-ops backend's REST
// surface. Every operation attaches the current bearer credential, uses
// the endpoint's declared encoding, and classifies the outcome into the
// apperrors taxonomy. It is a transport, not a policy layer: callers
// supply already-validated domain parameters.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/millio-space/guardops/config"
	"github.com/millio-space/guardops/internal/apperrors"
)

// maxErrorBody caps how much of an error response is read for message
// extraction.
const maxErrorBody = 1 << 20

// TokenSource supplies the current bearer credential. The session store
// implements it; the gateway only ever reads.
type TokenSource interface {
	// Token returns the current bearer token and whether one is held.
	Token() (string, bool)
}

// Config captures runtime configuration for the gateway client.
type Config struct {
	BaseURL       string
	LoginEncoding config.LoginEncoding
	Timeout       time.Duration
	Client        *http.Client
	Logger        *slog.Logger
}

// Client performs the REST exchanges. Safe for concurrent use; calls
// from independent screens carry no ordering guarantee.
type Client struct {
	baseURL       string
	loginEncoding config.LoginEncoding
	tokens        TokenSource
	client        *http.Client
	logger        *slog.Logger

	mu             sync.RWMutex
	onUnauthorized func()
}

// NewClient builds a gateway client. Callers should pass a sanitized
// config; tokens may not be nil.
func NewClient(cfg Config, tokens TokenSource) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("gateway base url is required")
	}
	if tokens == nil {
		return nil, errors.New("gateway token source is required")
	}

	encoding := cfg.LoginEncoding
	if encoding == "" {
		encoding = config.LoginEncodingForm
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:       baseURL,
		loginEncoding: encoding,
		tokens:        tokens,
		client:        hc,
		logger:        logger,
	}, nil
}

// OnUnauthorized registers the handler invoked whenever any call answers
// 401. Credential rejection is a transport-layer fact, so this is the one
// place the gateway reaches back into session state: the session store
// registers its invalidation here.
func (c *Client) OnUnauthorized(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = fn
}

// call describes one exchange. Exactly one of jsonBody/formBody may be
// set; out is decoded from a 2xx body when non-nil.
type call struct {
	method   string
	path     string
	query    url.Values
	jsonBody any
	formBody url.Values
	out      any
	// optional maps a 404 answer to an absent result instead of a
	// failure (documented optional-resource endpoints only).
	optional bool
}

// do performs the exchange and classifies the outcome. The returned bool
// reports whether a result was present (false only for optional 404s).
func (c *Client) do(ctx context.Context, req call) (bool, error) {
	httpReq, authed, err := c.buildRequest(ctx, req)
	if err != nil {
		return false, err
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return false, apperrors.Unreachable("backend unreachable", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return true, c.decodeSuccess(resp, req.out)
	}

	if resp.StatusCode == http.StatusNotFound && req.optional {
		if derr := drainAndClose(resp); derr != nil {
			c.logger.WarnContext(ctx, "discard optional 404 body failed", "path", req.path, "error", derr)
		}
		return false, nil
	}

	return false, c.classifyFailure(ctx, req, resp, authed)
}

// buildRequest assembles the exchange. The returned bool reports whether
// a bearer credential was attached.
func (c *Client) buildRequest(ctx context.Context, req call) (*http.Request, bool, error) {
	target := c.baseURL + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	var body io.Reader
	contentType := ""
	switch {
	case req.formBody != nil:
		body = strings.NewReader(req.formBody.Encode())
		contentType = "application/x-www-form-urlencoded"
	case req.jsonBody != nil:
		encoded, err := json.Marshal(req.jsonBody)
		if err != nil {
			return nil, false, fmt.Errorf("encode %s %s body: %w", req.method, req.path, err)
		}
		body = bytes.NewReader(encoded)
		contentType = "application/json"
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, body)
	if err != nil {
		return nil, false, fmt.Errorf("create %s %s request: %w", req.method, req.path, err)
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", uuid.NewString())

	token, authed := c.tokens.Token()
	if authed {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	return httpReq, authed, nil
}

func (c *Client) decodeSuccess(resp *http.Response, out any) error {
	if out == nil {
		return drainAndClose(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		_ = resp.Body.Close()
		return apperrors.MalformedResponse("backend returned an unreadable response", err)
	}
	// Drain anything trailing the decoded value so the connection can be
	// reused.
	return drainAndClose(resp)
}

func (c *Client) classifyFailure(ctx context.Context, req call, resp *http.Response, authed bool) error {
	message, fields := extractErrorMessage(resp)
	if message == "" {
		message = strings.TrimSpace(resp.Status)
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		// Only a 401 to a request that carried the held credential means
		// that credential was rejected. An unauthenticated 401 (a failed
		// login exchange) is the caller's failure to handle.
		if authed {
			c.logger.WarnContext(ctx, "credential rejected by backend",
				"method", req.method, "path", req.path)
			c.fireUnauthorized()
		}
		return apperrors.AuthRejected(message)
	case resp.StatusCode == http.StatusForbidden:
		return apperrors.Forbidden(message)
	case resp.StatusCode == http.StatusNotFound:
		return apperrors.NotFound(message)
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		appErr := apperrors.Validation(message)
		appErr.Status = resp.StatusCode
		appErr.Fields = fields
		return appErr
	default:
		appErr := apperrors.Internal(message)
		appErr.Status = resp.StatusCode
		return appErr
	}
}

func (c *Client) fireUnauthorized() {
	c.mu.RLock()
	fn := c.onUnauthorized
	c.mu.RUnlock()
	if fn != nil {
		fn()
	}
}

// errorEnvelope is the backend's error body shape. detail is either a
// plain string or an array of field rejections.
type errorEnvelope struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
}

type fieldDetail struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

// extractErrorMessage pulls a best-effort human message and any field
// errors out of an error response body. Malformed bodies yield an empty
// message; the caller falls back to the status text.
func extractErrorMessage(resp *http.Response) (string, []apperrors.FieldError) {
	body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	_ = resp.Body.Close()
	if readErr != nil || len(body) == 0 {
		return "", nil
	}

	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", nil
	}
	if envelope.Message != "" {
		return envelope.Message, nil
	}
	if len(envelope.Detail) == 0 {
		return "", nil
	}

	var plain string
	if err := json.Unmarshal(envelope.Detail, &plain); err == nil {
		return plain, nil
	}

	var details []fieldDetail
	if err := json.Unmarshal(envelope.Detail, &details); err != nil || len(details) == 0 {
		return "", nil
	}

	fields := make([]apperrors.FieldError, 0, len(details))
	parts := make([]string, 0, len(details))
	for _, d := range details {
		field := fieldName(d.Loc)
		fields = append(fields, apperrors.FieldError{Field: field, Message: d.Msg})
		if field != "" {
			parts = append(parts, field+": "+d.Msg)
		} else {
			parts = append(parts, d.Msg)
		}
	}
	return strings.Join(parts, "; "), fields
}

// fieldName takes the last string element of a detail location path,
// skipping the leading "body"/"query" segment.
func fieldName(loc []any) string {
	for i := len(loc) - 1; i >= 0; i-- {
		if s, ok := loc[i].(string); ok && s != "body" && s != "query" {
			return s
		}
	}
	return ""
}

func drainAndClose(resp *http.Response) error {
	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		closeErr := resp.Body.Close()
		if closeErr != nil {
			return errors.Join(
				fmt.Errorf("drain response body: %w", err),
				fmt.Errorf("close response body: %w", closeErr),
			)
		}
		return fmt.Errorf("drain response body: %w", err)
	}
	if err := resp.Body.Close(); err != nil {
		return fmt.Errorf("close response body: %w", err)
	}
	return nil
}
