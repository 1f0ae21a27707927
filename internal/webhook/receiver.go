package webhook

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	middlewarex "payfunnels/internal/http/middleware"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Path is the inbound webhook endpoint registered with Payfunnels
const Path = "/payfunnels-webhook"

// TriggerEvent is one inbound delivery handed to the workflow engine
type TriggerEvent struct {
	ID         string    `json:"id"`
	NodeID     string    `json:"nodeId,omitempty"`
	Path       string    `json:"path"`
	ReceivedAt time.Time `json:"receivedAt"`
	Items      []any     `json:"items"`
}

// Receive accepts Payfunnels deliveries and forwards the body unchanged to
// sink. A JSON array becomes one item per element; any other value is a
// single item.
func Receive(sink Sink) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "read failed", http.StatusBadRequest)
			return
		}

		items, err := bodyItems(body)
		if err != nil {
			log.Warn().Err(err).Int("body_length", len(body)).Msg("rejected webhook with invalid JSON body")
			http.Error(w, "bad payload", http.StatusBadRequest)
			return
		}

		evt := TriggerEvent{
			ID:         uuid.NewString(),
			Path:       r.URL.Path,
			ReceivedAt: time.Now().UTC(),
			Items:      items,
		}
		evt.NodeID, _ = middlewarex.NodeID(r.Context())
		if err := sink.Emit(r.Context(), evt); err != nil {
			log.Error().Err(err).Str("delivery_id", evt.ID).Msg("failed to start workflow")
			http.Error(w, "workflow start failed", http.StatusInternalServerError)
			return
		}

		log.Info().
			Str("delivery_id", evt.ID).
			Int("items", len(items)).
			Msg("webhook received")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Workflow was started"})
	}
}

// bodyItems decodes body into workflow items. An empty body is one empty object.
func bodyItems(body []byte) ([]any, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return []any{map[string]any{}}, nil
	}

	var v any
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if arr, ok := v.([]any); ok {
		return arr, nil
	}
	return []any{v}, nil
}
