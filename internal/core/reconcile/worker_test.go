package reconcile

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"payfunnels/internal/webhook"
)

type countingActivator struct {
	calls atomic.Int32
	err   error
}

func (c *countingActivator) Activate(context.Context, string, webhook.Event) error {
	c.calls.Add(1)
	return c.err
}

func TestWorkerTicksUntilCancelled(t *testing.T) {
	act := &countingActivator{err: errors.New("remote down")}
	w := NewWorker(act, "https://host/payfunnels-webhook", webhook.EventNewCustomer, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for act.calls.Load() < 2 {
		select {
		case <-deadline:
			t.Fatal("worker did not tick")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestNewWorkerDefaultInterval(t *testing.T) {
	w := NewWorker(&countingActivator{}, "u", webhook.DefaultEvent, 0)
	if w.pollEvery != 5*time.Minute {
		t.Fatalf("got %s", w.pollEvery)
	}
}
