package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"payfunnels/internal/config"
	httpx "payfunnels/internal/http"
	"payfunnels/internal/node"
	"payfunnels/internal/provider/payfunnels"
	"payfunnels/internal/store/memory"
	"payfunnels/internal/webhook"
)

// fakePayfunnels serves the subset of the integration API the connector uses
type fakePayfunnels struct {
	mu       sync.Mutex
	webhooks map[string]string
	requests []string
}

func (f *fakePayfunnels) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()

	record := func(r *http.Request) {
		f.mu.Lock()
		f.requests = append(f.requests, r.Method+" "+r.URL.Path)
		f.mu.Unlock()
		if r.URL.Path != "/authenticate" && r.Header.Get("Authorization") != "acc_1" {
			t.Errorf("%s %s: missing Authorization", r.Method, r.URL.Path)
		}
	}

	mux.HandleFunc("/payments", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		w.Write([]byte(`[{"id":"pay_1"},{"id":"pay_2"}]`))
	})
	mux.HandleFunc("/payments/refund", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["id"] == "pay_missing" {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"payment not found"}`))
			return
		}
		w.Write([]byte(`{"status":"refunded"}`))
	})
	mux.HandleFunc("/subscribe", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.mu.Lock()
		f.webhooks["wh_100"] = body["event"]
		f.mu.Unlock()
		w.Write([]byte(`{"webhook_id":"wh_100"}`))
	})
	mux.HandleFunc("/subscription/", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		id := strings.TrimPrefix(r.URL.Path, "/subscription/")
		f.mu.Lock()
		_, ok := f.webhooks[id]
		f.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"webhook_id": id})
	})
	mux.HandleFunc("/unsubscribe", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.mu.Lock()
		delete(f.webhooks, body["id"])
		f.mu.Unlock()
		w.Write([]byte(`{}`))
	})
	mux.HandleFunc("/authenticate", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		w.Write([]byte(`{"success":true}`))
	})
	return mux
}

func newIntegration(t *testing.T) (*fakePayfunnels, config.Cfg) {
	t.Helper()
	fake := &fakePayfunnels{webhooks: map[string]string{}}
	srv := httptest.NewServer(fake.handler(t))
	t.Cleanup(srv.Close)

	cfg := config.Cfg{
		App:        config.AppCfg{Env: "test", Port: "0", NodeID: "node_1"},
		Payfunnels: config.PayfunnelsCfg{ID: "acc_1", APIKey: "secret", BaseURL: srv.URL, TimeoutSec: 5},
		Webhook:    config.WebhookCfg{BaseURL: "https://hooks.example.com", Event: "payment_failed"},
	}
	return fake, cfg
}

// TestActionBatch runs a mixed batch through the dispatcher against the fake API
func TestActionBatch(t *testing.T) {
	_, cfg := newIntegration(t)
	client := payfunnels.New(cfg.Payfunnels.BaseURL, cfg.Payfunnels.TimeoutSec)

	if err := client.TestCredentials(context.Background(), cfg.Credentials()); err != nil {
		t.Fatalf("credential test: %v", err)
	}

	inputs := []node.Parameters{
		{"resource": "payment", "operation": "list"},
		{"resource": "payment", "operation": "refund", "id": "pay_missing", "amount": 5},
		{"resource": "payment", "operation": "refund", "id": "pay_1", "amount": 5, "reason": "duplicate"},
	}

	items, err := node.NewDispatcher(client).Execute(context.Background(), cfg.Credentials(), inputs, node.ExecuteOptions{ContinueOnFail: true})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(items) != 4 {
		t.Fatalf("expected 4 items (2 payments, 1 error, 1 refund), got %d", len(items))
	}

	wantPaired := []int{0, 0, 1, 2}
	for i, it := range items {
		if it.PairedItem != wantPaired[i] {
			t.Errorf("item %d paired with %d, want %d", i, it.PairedItem, wantPaired[i])
		}
	}
	if _, ok := items[2].JSON.(map[string]any)["error"]; !ok {
		t.Errorf("expected error item, got %#v", items[2].JSON)
	}

	// Strict mode stops on the same failure
	items, err = node.NewDispatcher(client).Execute(context.Background(), cfg.Credentials(), inputs, node.ExecuteOptions{})
	var itemErr *node.ItemError
	if err == nil || len(items) != 2 {
		t.Fatalf("expected strict failure after 2 items, got %d items, %v", len(items), err)
	}
	if !errors.As(err, &itemErr) || itemErr.Index != 1 {
		t.Errorf("expected failure at index 1, got %v", err)
	}
}

// TestWebhookLifecycle activates the trigger, receives a delivery and deactivates
func TestWebhookLifecycle(t *testing.T) {
	fake, cfg := newIntegration(t)
	ctx := context.Background()

	client := payfunnels.New(cfg.Payfunnels.BaseURL, cfg.Payfunnels.TimeoutSec)
	manager := webhook.NewManager(client, memory.NewStaticData(), cfg.Credentials())

	event, err := webhook.ParseEvent(cfg.Webhook.Event)
	if err != nil {
		t.Fatalf("event: %v", err)
	}
	if err := manager.Activate(ctx, cfg.WebhookURL(webhook.Path), event); err != nil {
		t.Fatalf("activate: %v", err)
	}
	if fake.webhooks["wh_100"] != "payment_failed" {
		t.Fatalf("remote subscription not created: %v", fake.webhooks)
	}

	exists, err := manager.CheckExists(ctx)
	if err != nil || !exists {
		t.Fatalf("subscription should exist, got %v, %v", exists, err)
	}

	var delivered []webhook.TriggerEvent
	sink := webhook.SinkFunc(func(_ context.Context, evt webhook.TriggerEvent) error {
		delivered = append(delivered, evt)
		return nil
	})
	router := httpx.NewRouter(httpx.RouterDependencies{Sink: sink, Subscriptions: manager})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, webhook.Path, strings.NewReader(`{"event":"payment_failed","payment_id":"pay_9"}`)))
	if rr.Code != http.StatusOK || len(delivered) != 1 {
		t.Fatalf("delivery failed: status %d, %d events", rr.Code, len(delivered))
	}

	if err := manager.Delete(ctx); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(fake.webhooks) != 0 {
		t.Errorf("remote subscription should be gone: %v", fake.webhooks)
	}

	exists, _ = manager.CheckExists(ctx)
	if exists {
		t.Error("check after delete should report false")
	}
}
