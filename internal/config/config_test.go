package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"APP_PORT", "STORE_DRIVER", "SINK", "WEBHOOK_EVENT", "PAYFUNNELS_BASE_URL", "HTTP_TIMEOUT_SEC"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	if cfg.App.Port != "8080" {
		t.Errorf("port %q", cfg.App.Port)
	}
	if cfg.App.NodeID == "" {
		t.Error("node id should have a default")
	}
	if cfg.Payfunnels.BaseURL != "https://api.payfunnels.com/n8n-integration" {
		t.Errorf("base url %q", cfg.Payfunnels.BaseURL)
	}
	if cfg.Webhook.Event != "payment_successful" {
		t.Errorf("event %q", cfg.Webhook.Event)
	}
	if cfg.Store.Driver != "memory" || cfg.Sink.Kind != "log" {
		t.Errorf("store %q sink %q", cfg.Store.Driver, cfg.Sink.Kind)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PAYFUNNELS_ID", " acc_1 ")
	t.Setenv("PAYFUNNELS_API_KEY", "secret")
	t.Setenv("STORE_DRIVER", "SQLite")
	t.Setenv("WEBHOOK_BASE_URL", "https://hooks.example.com/")
	t.Setenv("HTTP_TIMEOUT_SEC", "5")

	cfg := Load()

	cred := cfg.Credentials()
	if cred.ID != "acc_1" || cred.APIKey != "secret" {
		t.Errorf("unexpected credentials %+v", cred)
	}
	if cfg.Store.Driver != "sqlite" {
		t.Errorf("driver should be lower-cased, got %q", cfg.Store.Driver)
	}
	if cfg.Payfunnels.TimeoutSec != 5 {
		t.Errorf("timeout %d", cfg.Payfunnels.TimeoutSec)
	}
	if got := cfg.WebhookURL("/payfunnels-webhook"); got != "https://hooks.example.com/payfunnels-webhook" {
		t.Errorf("webhook url %q", got)
	}
}
