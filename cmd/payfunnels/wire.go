package main

import (
	"context"
	"fmt"

	"payfunnels/internal/config"
	"payfunnels/internal/store/memory"
	"payfunnels/internal/store/postgres"
	storeredis "payfunnels/internal/store/redis"
	"payfunnels/internal/store/repositories"
	"payfunnels/internal/store/sqlite"
	"payfunnels/internal/webhook"

	"github.com/rs/zerolog/log"
)

// openStaticData opens the static data backend selected by STORE_DRIVER.
// The returned func releases it.
func openStaticData(ctx context.Context, c config.Cfg) (repositories.StaticDataRepository, func(), error) {
	noop := func() {}

	switch c.Store.Driver {
	case "", "memory":
		log.Warn().Msg("using in-memory static data; the webhook id is lost on restart")
		return memory.NewStaticData(), noop, nil

	case "postgres":
		if c.Store.DSN == "" {
			return nil, noop, fmt.Errorf("DB_DSN is required for the postgres store")
		}
		pool, err := postgres.Open(ctx, c.Store.DSN)
		if err != nil {
			return nil, noop, err
		}
		repo := postgres.NewRepo(pool)
		if err := repo.Migrate(ctx); err != nil {
			repo.Close()
			return nil, noop, fmt.Errorf("migrate: %w", err)
		}
		return closable(postgres.NewStaticDataRepository(repo, c.App.NodeID))

	case "redis":
		if c.Store.RedisAddr == "" {
			return nil, noop, fmt.Errorf("REDIS_ADDR is required for the redis store")
		}
		client, err := storeredis.Open(ctx, c.Store.RedisAddr)
		if err != nil {
			return nil, noop, err
		}
		return closable(storeredis.NewStaticDataRepository(client, c.App.NodeID))

	case "sqlite":
		db, err := sqlite.Open(c.Store.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		return closable(sqlite.NewStaticDataRepository(db, c.App.NodeID))

	default:
		return nil, noop, fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}
}

// closable pairs a repository with the release of its connection
func closable(store repositories.StaticDataRepository) (repositories.StaticDataRepository, func(), error) {
	return store, func() {
		if c, ok := store.(repositories.Closer); ok {
			if err := c.Close(); err != nil {
				log.Warn().Err(err).Msg("closing static data store")
			}
		}
	}, nil
}

// openSink builds the workflow engine hand-off selected by SINK
func openSink(ctx context.Context, c config.Cfg) (webhook.Sink, func(), error) {
	noop := func() {}

	switch c.Sink.Kind {
	case "", "log":
		return webhook.LogSink{}, noop, nil

	case "forward":
		if c.Sink.ForwardURL == "" {
			return nil, noop, fmt.Errorf("SINK_FORWARD_URL is required for the forward sink")
		}
		return webhook.NewForwardSink(c.Sink.ForwardURL, c.Payfunnels.TimeoutSec), noop, nil

	case "redis":
		if c.Store.RedisAddr == "" {
			return nil, noop, fmt.Errorf("REDIS_ADDR is required for the redis sink")
		}
		client, err := storeredis.Open(ctx, c.Store.RedisAddr)
		if err != nil {
			return nil, noop, err
		}
		return storeredis.NewPublisher(client, c.Sink.RedisChannel), func() { _ = client.Close() }, nil

	default:
		return nil, noop, fmt.Errorf("unknown SINK %q", c.Sink.Kind)
	}
}

// newManager opens static data and builds the subscription manager
func newManager(ctx context.Context) (*webhook.Manager, func(), error) {
	store, closeStore, err := openStaticData(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return webhook.NewManager(newClient(), store, cfg.Credentials()), closeStore, nil
}
