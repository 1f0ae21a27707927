package node

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"payfunnels/internal/provider"
)

func TestParseActionDefaults(t *testing.T) {
	a, err := ParseAction(Parameters{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pl, ok := a.(PaymentList)
	if !ok {
		t.Fatalf("expected PaymentList, got %T", a)
	}
	if pl.Limit != DefaultLimit || pl.Page != DefaultPage || pl.Search != "" {
		t.Errorf("unexpected params %+v", pl.ListParams)
	}
}

func TestParseActionVariants(t *testing.T) {
	tests := []struct {
		params Parameters
		want   any
	}{
		{Parameters{"resource": "payment", "operation": "list"}, PaymentList{}},
		{Parameters{"resource": "payment", "operation": "refund", "id": "p", "amount": 1}, PaymentRefund{}},
		{Parameters{"resource": "subscription", "operation": "list"}, SubscriptionList{}},
		{Parameters{"resource": "subscription", "operation": "cancel", "subscriptionId": "s"}, SubscriptionCancel{}},
		{Parameters{"resource": "oneTimeSetupFees", "operation": "list"}, SetupFeesList{}},
	}

	for _, tt := range tests {
		a, err := ParseAction(tt.params)
		if err != nil {
			t.Errorf("%v: unexpected error %v", tt.params, err)
			continue
		}
		if a.Resource() != Resource(tt.params["resource"].(string)) || a.Operation() != Operation(tt.params["operation"].(string)) {
			t.Errorf("%v: got %s.%s", tt.params, a.Resource(), a.Operation())
		}
		switch tt.want.(type) {
		case PaymentList:
			_, ok := a.(PaymentList)
			checkVariant(t, ok, a)
		case PaymentRefund:
			_, ok := a.(PaymentRefund)
			checkVariant(t, ok, a)
		case SubscriptionList:
			_, ok := a.(SubscriptionList)
			checkVariant(t, ok, a)
		case SubscriptionCancel:
			_, ok := a.(SubscriptionCancel)
			checkVariant(t, ok, a)
		case SetupFeesList:
			_, ok := a.(SetupFeesList)
			checkVariant(t, ok, a)
		}
	}
}

func checkVariant(t *testing.T, ok bool, a Action) {
	t.Helper()
	if !ok {
		t.Errorf("unexpected variant %T", a)
	}
}

func TestParseActionUnsupported(t *testing.T) {
	tests := []Parameters{
		{"resource": "payment", "operation": "cancel"},
		{"resource": "oneTimeSetupFees", "operation": "refund"},
		{"resource": "invoice", "operation": "list"},
	}
	for _, p := range tests {
		if _, err := ParseAction(p); !provider.HasCode(err, provider.ErrUnsupported) {
			t.Errorf("%v: expected unsupported, got %v", p, err)
		}
	}
}

func TestParseActionValidation(t *testing.T) {
	tests := []struct {
		name   string
		params Parameters
	}{
		{"refund without id", Parameters{"operation": "refund", "amount": 1}},
		{"refund without amount", Parameters{"operation": "refund", "id": "p"}},
		{"refund bad reason", Parameters{"operation": "refund", "id": "p", "amount": 1, "reason": "bored"}},
		{"limit zero", Parameters{"limit": 0}},
		{"page negative", Parameters{"page": -1}},
		{"cancel without id", Parameters{"resource": "subscription", "operation": "cancel"}},
		{"cancel bad option", Parameters{"resource": "subscription", "operation": "cancel", "subscriptionId": "s", "cancellationOption": "later"}},
		{"custom date missing", Parameters{"resource": "subscription", "operation": "cancel", "subscriptionId": "s", "cancellationOption": "custom_date"}},
		{"custom date invalid", Parameters{"resource": "subscription", "operation": "cancel", "subscriptionId": "s", "cancellationOption": "custom_date", "cancelDate": "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseAction(tt.params); !provider.HasCode(err, provider.ErrInvalidParameter) {
				t.Fatalf("expected invalid parameter, got %v", err)
			}
		})
	}
}

func TestSubscriptionCancelCustomDate(t *testing.T) {
	a, err := ParseAction(Parameters{
		"resource":           "subscription",
		"operation":          "cancel",
		"subscriptionId":     "s1",
		"cancellationOption": "custom_date",
		"cancelDate":         "2024-01-01T00:00:00Z",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	api := &fakeAPI{response: map[string]any{}}
	if _, err := a.Call(context.Background(), api, cred); err != nil {
		t.Fatalf("call: %v", err)
	}
	req := api.cancels[0]
	if req.CancelDate == nil || *req.CancelDate != 1704067200 {
		t.Fatalf("unexpected cancelDate %v", req.CancelDate)
	}
}

func TestSubscriptionCancelIgnoresDateForOtherOptions(t *testing.T) {
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	a := SubscriptionCancel{SubscriptionID: "s1", CancellationOption: CancelEndOfPeriod, CancelDate: &ts}

	api := &fakeAPI{response: map[string]any{}}
	if _, err := a.Call(context.Background(), api, cred); err != nil {
		t.Fatalf("call: %v", err)
	}
	if api.cancels[0].CancelDate != nil {
		t.Error("cancelDate must only be sent for custom_date")
	}
}

func TestSetupFeesListNeverSearches(t *testing.T) {
	a, err := ParseAction(Parameters{"resource": "oneTimeSetupFees", "search": "x@y.z"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	api := &fakeAPI{response: []any{}}
	if _, err := a.Call(context.Background(), api, cred); err != nil {
		t.Fatalf("call: %v", err)
	}
	if api.lists[0].Search != "" {
		t.Error("setup fees list must not carry a search filter")
	}
}

func TestListSearchSentAsGiven(t *testing.T) {
	tests := []struct {
		name   string
		search any
		want   string
	}{
		{"plain", "a@b.co", "a@b.co"},
		{"padded", " a@b.co ", " a@b.co "},
		{"whitespace only", "   ", "   "},
		{"empty", "", ""},
		{"absent", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := Parameters{"resource": "payment", "operation": "list"}
			if tt.search != nil {
				params["search"] = tt.search
			}
			a, err := ParseAction(params)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			api := &fakeAPI{response: []any{}}
			if _, err := a.Call(context.Background(), api, cred); err != nil {
				t.Fatalf("call: %v", err)
			}
			if got := api.lists[0].Search; got != tt.want {
				t.Errorf("search sent as %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNumericIdentifiersKeepAllDigits(t *testing.T) {
	a, err := ParseAction(Parameters{"operation": "refund", "id": float64(12345678), "amount": 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := a.(PaymentRefund).ID; got != "12345678" {
		t.Errorf("refund id sent as %q", got)
	}

	a, err = ParseAction(Parameters{"resource": "subscription", "operation": "cancel", "subscriptionId": json.Number("900000000001")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := a.(SubscriptionCancel).SubscriptionID; got != "900000000001" {
		t.Errorf("subscription id sent as %q", got)
	}
}

func TestCancelDateEpochMillis(t *testing.T) {
	a, err := ParseAction(Parameters{
		"resource":           "subscription",
		"operation":          "cancel",
		"subscriptionId":     "s1",
		"cancellationOption": "custom_date",
		"cancelDate":         float64(1704067200000),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	api := &fakeAPI{response: map[string]any{}}
	if _, err := a.Call(context.Background(), api, cred); err != nil {
		t.Fatalf("call: %v", err)
	}
	if d := api.cancels[0].CancelDate; d == nil || *d != 1704067200 {
		t.Fatalf("unexpected cancelDate %v", d)
	}
}
