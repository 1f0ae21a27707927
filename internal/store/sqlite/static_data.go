package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"payfunnels/internal/store/repositories"
)

// StaticDataRepository stores node static data through database/sql
type StaticDataRepository struct {
	db     *sql.DB
	nodeID string
}

func NewStaticDataRepository(db *sql.DB, nodeID string) *StaticDataRepository {
	return &StaticDataRepository{db: db, nodeID: nodeID}
}

var _ repositories.StaticDataRepository = (*StaticDataRepository)(nil)

func (r *StaticDataRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM node_static_data WHERE node_id = ? AND key = ?`,
		r.nodeID, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (r *StaticDataRepository) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO node_static_data (node_id, key, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (node_id, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		r.nodeID, key, value, time.Now().Unix(),
	)
	return err
}

func (r *StaticDataRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(keys)), ",")
	args := make([]any, 0, len(keys)+1)
	args = append(args, r.nodeID)
	for _, k := range keys {
		args = append(args, k)
	}

	_, err := r.db.ExecContext(ctx,
		`DELETE FROM node_static_data WHERE node_id = ? AND key IN (`+placeholders+`)`,
		args...,
	)
	return err
}

func (r *StaticDataRepository) Close() error {
	return r.db.Close()
}
