package httpx

import (
	"encoding/json"
	"net/http"

	middlewarex "payfunnels/internal/http/middleware"
	"payfunnels/internal/node"
	"payfunnels/internal/webhook"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// RouterDependencies holds all dependencies for the HTTP router
type RouterDependencies struct {
	Sink          webhook.Sink
	Subscriptions *webhook.Manager
	NodeID        string

	// AdminToken, when set, guards the operator endpoints
	AdminToken string
}

// NewRouter creates the HTTP router serving the trigger endpoint
func NewRouter(deps RouterDependencies) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	if deps.NodeID != "" {
		r.Use(middlewarex.NodeScope(deps.NodeID))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
	})

	// Node metadata for the host's parameter UI
	r.Get("/describe", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"node":   node.Description(),
			"events": webhook.Events,
		})
	})

	if deps.Subscriptions != nil {
		r.Group(func(r chi.Router) {
			if deps.AdminToken != "" {
				r.Use(middlewarex.AdminToken(deps.AdminToken))
			}
			r.Get("/subscription", func(w http.ResponseWriter, r *http.Request) {
				sub, err := deps.Subscriptions.Current(r.Context())
				if err != nil {
					http.Error(w, "static data unavailable", http.StatusInternalServerError)
					return
				}
				writeJSON(w, http.StatusOK, sub)
			})
		})
	}

	// Inbound Payfunnels deliveries
	r.Post(webhook.Path, webhook.Receive(deps.Sink))

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
