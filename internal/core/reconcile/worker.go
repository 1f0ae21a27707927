package reconcile

import (
	"context"
	"time"

	"payfunnels/internal/webhook"

	"github.com/rs/zerolog/log"
)

// Activator is the part of the subscription manager the worker drives
type Activator interface {
	Activate(ctx context.Context, webhookURL string, event webhook.Event) error
}

// Worker periodically confirms the webhook subscription and recreates it
// when Payfunnels no longer knows it. It must be the only caller of the
// manager while it runs.
type Worker struct {
	manager    Activator
	webhookURL string
	event      webhook.Event
	pollEvery  time.Duration
}

func NewWorker(manager Activator, webhookURL string, event webhook.Event, pollEvery time.Duration) *Worker {
	if pollEvery == 0 {
		pollEvery = 5 * time.Minute
	}
	return &Worker{manager: manager, webhookURL: webhookURL, event: event, pollEvery: pollEvery}
}

// Run blocks until ctx is cancelled
func (w *Worker) Run(ctx context.Context) {
	log.Info().
		Dur("poll_every", w.pollEvery).
		Msg("reconcile worker: started")
	t := time.NewTicker(w.pollEvery)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("reconcile worker: stopping")
			return
		case <-t.C:
			w.tick(ctx)
		}
	}
}

func (w *Worker) tick(ctx context.Context) {
	if err := w.manager.Activate(ctx, w.webhookURL, w.event); err != nil {
		// Next tick tries again; the stored id is untouched on failure.
		log.Error().Err(err).Msg("reconcile worker: activation failed")
	}
}
