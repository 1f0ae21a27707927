package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"payfunnels/internal/webhook"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Publisher publishes inbound deliveries on a redis channel for a workflow
// engine subscribed to it
type Publisher struct {
	client  *goredis.Client
	channel string
}

func NewPublisher(client *goredis.Client, channel string) *Publisher {
	return &Publisher{client: client, channel: channel}
}

func (p *Publisher) Emit(ctx context.Context, evt webhook.TriggerEvent) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("encode trigger event: %w", err)
	}

	receivers, err := p.client.Publish(ctx, p.channel, payload).Result()
	if err != nil {
		return fmt.Errorf("publish trigger event: %w", err)
	}

	log.Debug().
		Str("channel", p.channel).
		Str("delivery_id", evt.ID).
		Int64("receivers", receivers).
		Msg("trigger event published")
	return nil
}
