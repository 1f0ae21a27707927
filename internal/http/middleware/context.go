package middlewarex

import (
	"context"
	"net/http"
)

type ctxKey string

const (
	ctxNodeID ctxKey = "node_id"
)

func WithNodeID(ctx context.Context, nodeID string) context.Context {
	return context.WithValue(ctx, ctxNodeID, nodeID)
}

func NodeID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxNodeID).(string)
	return v, ok && v != ""
}

// NodeScope tags every request with the node instance served by this process
func NodeScope(nodeID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(WithNodeID(r.Context(), nodeID)))
		})
	}
}
