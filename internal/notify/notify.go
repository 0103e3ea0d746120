// Package notify defines the UI notification sink the core reports
// user-visible outcomes through. Presentation is the consumer's problem.
package notify

import (
	"context"
	"log/slog"
)

// Kind classifies a notification for presentation.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

// Notification is one user-visible message.
type Notification struct {
	Kind Kind
	Text string
}

// Sink accepts notifications for presentation.
type Sink interface {
	Notify(ctx context.Context, n Notification)
}

// SlogSink renders notifications through the structured logger, the
// terminal console's presentation layer.
type SlogSink struct {
	logger *slog.Logger
}

// NewSlogSink creates a logger-backed sink.
func NewSlogSink(logger *slog.Logger) *SlogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogSink{logger: logger}
}

func (s *SlogSink) Notify(ctx context.Context, n Notification) {
	switch n.Kind {
	case KindError:
		s.logger.ErrorContext(ctx, n.Text, "kind", string(n.Kind))
	default:
		s.logger.InfoContext(ctx, n.Text, "kind", string(n.Kind))
	}
}
