package webhook

import (
	"context"

	"payfunnels/internal/provider/base"

	"github.com/rs/zerolog/log"
)

// Sink hands inbound deliveries to the workflow engine
type Sink interface {
	Emit(ctx context.Context, evt TriggerEvent) error
}

// SinkFunc adapts a function to Sink
type SinkFunc func(ctx context.Context, evt TriggerEvent) error

func (f SinkFunc) Emit(ctx context.Context, evt TriggerEvent) error { return f(ctx, evt) }

// LogSink writes deliveries to the log only
type LogSink struct{}

func (LogSink) Emit(_ context.Context, evt TriggerEvent) error {
	log.Info().
		Str("delivery_id", evt.ID).
		Str("path", evt.Path).
		Interface("items", evt.Items).
		Msg("trigger event")
	return nil
}

// ForwardSink posts deliveries as JSON to a workflow engine endpoint
type ForwardSink struct {
	client *base.HTTPClient
}

// NewForwardSink creates a sink posting to targetURL
func NewForwardSink(targetURL string, timeoutSec int) *ForwardSink {
	client := base.NewHTTPClient("forward", timeoutSec)
	client.SetBaseURL(targetURL)
	return &ForwardSink{client: client}
}

func (s *ForwardSink) Emit(ctx context.Context, evt TriggerEvent) error {
	_, err := s.client.PostJSON(ctx, "", evt, nil)
	return err
}
