package webhook

import (
	"context"
	"fmt"
	"strings"

	"payfunnels/internal/provider"
	"payfunnels/internal/provider/payfunnels"
	"payfunnels/internal/store/repositories"

	"github.com/rs/zerolog/log"
)

// Static data keys holding the subscription of a node
const (
	KeyWebhookID = "webhookId"
	KeyEvent     = "event"
)

// SubscriptionAPI is the remote side of the subscription lifecycle
type SubscriptionAPI interface {
	GetSubscription(ctx context.Context, cred provider.Credentials, id string) (map[string]any, error)
	Subscribe(ctx context.Context, cred provider.Credentials, webhookURL, event string) (string, error)
	Unsubscribe(ctx context.Context, cred provider.Credentials, id string) error
}

// Subscription is the locally persisted view of the remote subscription
type Subscription struct {
	RemoteID string `json:"webhookId,omitempty"`
	Event    string `json:"event,omitempty"`
}

// Active reports whether a remote id is persisted
func (s Subscription) Active() bool {
	return s.RemoteID != ""
}

// Manager keeps at most one remote subscription per node in step with the
// node's static data. Calls for one node must not run concurrently.
type Manager struct {
	api   SubscriptionAPI
	store repositories.StaticDataRepository
	cred  provider.Credentials
}

// NewManager creates a subscription manager
func NewManager(api SubscriptionAPI, store repositories.StaticDataRepository, cred provider.Credentials) *Manager {
	return &Manager{api: api, store: store, cred: cred}
}

// Current reads the persisted subscription
func (m *Manager) Current(ctx context.Context) (Subscription, error) {
	id, _, err := m.store.Get(ctx, KeyWebhookID)
	if err != nil {
		return Subscription{}, fmt.Errorf("read webhook id: %w", err)
	}
	event, _, err := m.store.Get(ctx, KeyEvent)
	if err != nil {
		return Subscription{}, fmt.Errorf("read webhook event: %w", err)
	}
	return Subscription{RemoteID: id, Event: event}, nil
}

// CheckExists reports whether the persisted subscription is still known
// remotely. Without a persisted id no call is made. Any remote failure or
// id mismatch yields false. State is never modified.
func (m *Manager) CheckExists(ctx context.Context) (bool, error) {
	sub, err := m.Current(ctx)
	if err != nil {
		return false, err
	}
	if !sub.Active() {
		return false, nil
	}
	if err := m.cred.Validate(); err != nil {
		return false, err
	}

	body, err := m.api.GetSubscription(ctx, m.cred, sub.RemoteID)
	if err != nil {
		log.Warn().
			Err(err).
			Str("webhook_id", sub.RemoteID).
			Msg("webhook subscription lookup failed, treating as absent")
		return false, nil
	}
	if !payfunnels.MatchesSubscription(body, sub.RemoteID) {
		log.Info().
			Str("webhook_id", sub.RemoteID).
			Msg("webhook subscription not found remotely")
		return false, nil
	}
	return true, nil
}

// Create registers webhookURL for event and persists the returned id.
// Remote failures and responses without an id are returned as errors and
// leave the stored state untouched.
func (m *Manager) Create(ctx context.Context, webhookURL string, event Event) error {
	if strings.TrimSpace(webhookURL) == "" {
		return provider.ValidationError("webhook url is required")
	}
	event, err := ParseEvent(string(event))
	if err != nil {
		return err
	}
	if err := m.cred.Validate(); err != nil {
		return err
	}

	id, err := m.api.Subscribe(ctx, m.cred, webhookURL, string(event))
	if err != nil {
		return err
	}

	// The id goes first: it is the only handle a later Delete can use.
	if err := m.store.Set(ctx, KeyWebhookID, id); err != nil {
		log.Error().
			Err(err).
			Str("webhook_id", id).
			Msg("remote subscription created but id could not be stored")
		return fmt.Errorf("store webhook id: %w", err)
	}
	if err := m.store.Set(ctx, KeyEvent, string(event)); err != nil {
		return fmt.Errorf("store webhook event: %w", err)
	}

	log.Info().
		Str("webhook_id", id).
		Str("event", string(event)).
		Msg("webhook subscription created")
	return nil
}

// Delete removes the remote subscription. With nothing persisted it is a
// no-op. On remote failure the stored state is kept so a later check or
// delete can still find the subscription.
func (m *Manager) Delete(ctx context.Context) error {
	sub, err := m.Current(ctx)
	if err != nil {
		return err
	}
	if !sub.Active() {
		return nil
	}
	if err := m.cred.Validate(); err != nil {
		return err
	}

	if err := m.api.Unsubscribe(ctx, m.cred, sub.RemoteID); err != nil {
		log.Error().
			Err(err).
			Str("webhook_id", sub.RemoteID).
			Msg("webhook subscription delete failed")
		return fmt.Errorf("delete webhook %s: %w", sub.RemoteID, err)
	}

	if err := m.store.Delete(ctx, KeyWebhookID, KeyEvent); err != nil {
		return fmt.Errorf("clear webhook state: %w", err)
	}

	log.Info().
		Str("webhook_id", sub.RemoteID).
		Msg("webhook subscription deleted")
	return nil
}

// Activate runs the host activation sequence: create a subscription only
// when the persisted one is not confirmed remotely.
func (m *Manager) Activate(ctx context.Context, webhookURL string, event Event) error {
	exists, err := m.CheckExists(ctx)
	if err != nil {
		return err
	}
	if exists {
		log.Info().Msg("webhook subscription already active")
		return nil
	}
	return m.Create(ctx, webhookURL, event)
}
