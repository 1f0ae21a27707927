package postgres

import (
	"context"
	"errors"

	"payfunnels/internal/store/repositories"

	"github.com/jackc/pgx/v5"
)

// staticDataRepository stores node static data in node_static_data
type staticDataRepository struct {
	repo   *Repo
	nodeID string
}

// NewStaticDataRepository scopes the static data table to nodeID
func NewStaticDataRepository(repo *Repo, nodeID string) repositories.StaticDataRepository {
	return &staticDataRepository{repo: repo, nodeID: nodeID}
}

func (r *staticDataRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.repo.db.QueryRow(ctx, `
		SELECT value FROM node_static_data
		 WHERE node_id = $1 AND key = $2`,
		r.nodeID, key,
	).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (r *staticDataRepository) Set(ctx context.Context, key, value string) error {
	_, err := r.repo.db.Exec(ctx, `
		INSERT INTO node_static_data (node_id, key, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (node_id, key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		r.nodeID, key, value,
	)
	return err
}

func (r *staticDataRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := r.repo.db.Exec(ctx, `
		DELETE FROM node_static_data
		 WHERE node_id = $1 AND key = ANY($2)`,
		r.nodeID, keys,
	)
	return err
}

func (r *staticDataRepository) Close() error {
	return r.repo.Close()
}
