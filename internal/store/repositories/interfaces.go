package repositories

import "context"

// StaticDataRepository is the per-node static data the host keeps across
// executions. Implementations are scoped to a single node instance.
type StaticDataRepository interface {
	// Get returns the value of key and whether it is set.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes keys in one operation. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error
}

// Closer is implemented by repositories holding external connections.
type Closer interface {
	Close() error
}
