package payfunnels

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"payfunnels/internal/provider"
)

// IdentifierFields lists the response fields that may carry a webhook
// subscription id, in priority order. Older API versions answer with "id".
var IdentifierFields = []string{"webhook_id", "id"}

// SubscribeReq is the body of a webhook subscription request
type SubscribeReq struct {
	URL   string `json:"url"`
	Event string `json:"event"`
}

// UnsubscribeReq is the body of a webhook deletion request
type UnsubscribeReq struct {
	ID string `json:"id"`
}

// GetSubscription fetches the remote subscription record for id
func (c *Client) GetSubscription(ctx context.Context, cred provider.Credentials, id string) (map[string]any, error) {
	resp, err := c.httpClient.Get(ctx, "/subscription/"+url.PathEscape(id), nil, cred.AuthHeaders())
	if err != nil {
		return nil, err
	}

	var out map[string]any
	if err := decodeNumbers(resp.Body, &out); err != nil {
		return nil, &provider.ProviderError{
			Code:    provider.ErrResponseParse,
			Message: "failed to parse subscription response",
			Err:     err,
		}
	}
	return out, nil
}

// Subscribe registers webhookURL for event and returns the remote id
func (c *Client) Subscribe(ctx context.Context, cred provider.Credentials, webhookURL, event string) (string, error) {
	resp, err := c.httpClient.PostJSON(ctx, "/subscribe", SubscribeReq{URL: webhookURL, Event: event}, cred.AuthHeaders())
	if err != nil {
		return "", fmt.Errorf("payfunnels webhook creation failed: %w", err)
	}

	var out map[string]any
	if err := decodeNumbers(resp.Body, &out); err != nil {
		return "", provider.RemoteProtocolError("payfunnels webhook creation failed: response is not a JSON object")
	}

	id, ok := SubscriptionID(out)
	if !ok {
		return "", provider.RemoteProtocolError("payfunnels webhook creation failed: no webhook ID returned")
	}

	logOperation("webhook_subscribe").
		Str("webhook_id", id).
		Str("event", event).
		Msg("Payfunnels operation")

	return id, nil
}

// Unsubscribe deletes the remote subscription id
func (c *Client) Unsubscribe(ctx context.Context, cred provider.Credentials, id string) error {
	if _, err := c.httpClient.DeleteJSON(ctx, "/unsubscribe", UnsubscribeReq{ID: id}, cred.AuthHeaders()); err != nil {
		return err
	}

	logOperation("webhook_unsubscribe").
		Str("webhook_id", id).
		Msg("Payfunnels operation")

	return nil
}

// SubscriptionID returns the first non-empty identifier field of body
func SubscriptionID(body map[string]any) (string, bool) {
	for _, field := range IdentifierFields {
		if id := identifierString(body[field]); id != "" {
			return id, true
		}
	}
	return "", false
}

// MatchesSubscription reports whether any identifier field of body equals id
func MatchesSubscription(body map[string]any, id string) bool {
	if body == nil || id == "" {
		return false
	}
	for _, field := range IdentifierFields {
		if identifierString(body[field]) == id {
			return true
		}
	}
	return false
}

func identifierString(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case json.Number:
		return id.String()
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	default:
		return ""
	}
}

func decodeNumbers(body []byte, v any) error {
	if len(body) == 0 {
		return fmt.Errorf("empty body")
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	return dec.Decode(v)
}
