package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/millio-space/guardops/internal/domain/model"
)

// Messages lists the caller's inbox.
func (c *Client) Messages(ctx context.Context) ([]model.Message, error) {
	var messages []model.Message
	_, err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/messages/",
		out:    &messages,
	})
	return messages, err
}

// UnreadMessages lists unread inbox messages.
func (c *Client) UnreadMessages(ctx context.Context) ([]model.Message, error) {
	var messages []model.Message
	_, err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/messages/unread/",
		out:    &messages,
	})
	return messages, err
}

// SendMessage delivers a message to another console user.
func (c *Client) SendMessage(ctx context.Context, draft model.MessageDraft) (model.Message, error) {
	var message model.Message
	_, err := c.do(ctx, call{
		method:   http.MethodPost,
		path:     "/messages/",
		jsonBody: draft,
		out:      &message,
	})
	return message, err
}

// MarkMessageRead flags an inbox message as read.
func (c *Client) MarkMessageRead(ctx context.Context, messageID string) (model.Message, error) {
	var message model.Message
	_, err := c.do(ctx, call{
		method: http.MethodPut,
		path:   "/messages/" + url.PathEscape(messageID) + "/read",
		out:    &message,
	})
	return message, err
}
