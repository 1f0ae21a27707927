package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"payfunnels/internal/config"
	"payfunnels/internal/node"
	"payfunnels/internal/provider/base"
	"payfunnels/internal/webhook"
)

func TestReadInputsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.yaml")
	data := `
- resource: payment
  operation: refund
  id: pay_1
  amount: 12.5
- resource: subscription
  operation: cancel
  subscriptionId: sub_1
  cancellationOption: custom_date
  cancelDate: "2024-01-01T00:00:00Z"
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	inputs, err := readInputs(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(inputs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(inputs))
	}
	if amount, err := base.Params(inputs[0]).Float("amount"); err != nil || amount != 12.5 {
		t.Errorf("amount %v, %v", amount, err)
	}
	if _, err := node.ParseAction(inputs[1]); err != nil {
		t.Errorf("second record should parse: %v", err)
	}
}

func TestReadInputsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.json")
	if err := os.WriteFile(path, []byte(`[{"resource":"oneTimeSetupFees","limit":10}]`), 0o600); err != nil {
		t.Fatal(err)
	}

	inputs, err := readInputs(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(inputs) != 1 || inputs[0]["resource"] != "oneTimeSetupFees" {
		t.Fatalf("unexpected inputs %v", inputs)
	}
}

func TestRunInputsFromFlags(t *testing.T) {
	runFile, runResource, runOperation = "", "payment", "refund"
	runParams = []string{"id=pay_1", "amount=3"}
	defer func() { runResource, runOperation, runParams = "", "", nil }()

	inputs, err := runInputs()
	if err != nil {
		t.Fatalf("inputs: %v", err)
	}
	a, err := node.ParseAction(inputs[0])
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if r, ok := a.(node.PaymentRefund); !ok || r.ID != "pay_1" || r.Amount != 3 {
		t.Errorf("unexpected action %#v", a)
	}

	runParams = []string{"novalue"}
	if _, err := runInputs(); err == nil {
		t.Error("expected error for malformed --param")
	}
}

func TestOpenStaticDataAndSink(t *testing.T) {
	ctx := context.Background()

	store, closeStore, err := openStaticData(ctx, config.Cfg{Store: config.StoreCfg{Driver: "memory"}})
	if err != nil || store == nil {
		t.Fatalf("memory store: %v", err)
	}
	closeStore()

	if _, _, err := openStaticData(ctx, config.Cfg{Store: config.StoreCfg{Driver: "etcd"}}); err == nil {
		t.Error("expected error for unknown driver")
	}
	if _, _, err := openStaticData(ctx, config.Cfg{Store: config.StoreCfg{Driver: "postgres"}}); err == nil {
		t.Error("expected error for postgres without DSN")
	}

	sink, _, err := openSink(ctx, config.Cfg{})
	if err != nil {
		t.Fatalf("default sink: %v", err)
	}
	if _, ok := sink.(webhook.LogSink); !ok {
		t.Errorf("default sink should be LogSink, got %T", sink)
	}
	if _, _, err := openSink(ctx, config.Cfg{Sink: config.SinkCfg{Kind: "forward"}}); err == nil {
		t.Error("expected error for forward sink without url")
	}
}
