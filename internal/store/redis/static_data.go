package redis

import (
	"context"
	"errors"

	"payfunnels/internal/store/repositories"

	goredis "github.com/redis/go-redis/v9"
)

// staticDataRepository keeps one hash per node: payfunnels:node:<id>
type staticDataRepository struct {
	client *goredis.Client
	key    string
}

// NewStaticDataRepository scopes a redis hash to nodeID
func NewStaticDataRepository(client *goredis.Client, nodeID string) repositories.StaticDataRepository {
	return &staticDataRepository{client: client, key: "payfunnels:node:" + nodeID}
}

func (r *staticDataRepository) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.HGet(ctx, r.key, key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (r *staticDataRepository) Set(ctx context.Context, key, value string) error {
	return r.client.HSet(ctx, r.key, key, value).Err()
}

func (r *staticDataRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.client.HDel(ctx, r.key, keys...).Err()
}

func (r *staticDataRepository) Close() error {
	return r.client.Close()
}
