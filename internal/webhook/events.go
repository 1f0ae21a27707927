package webhook

import (
	"strings"

	"payfunnels/internal/provider"
)

// Event is a Payfunnels webhook event type
type Event string

const (
	EventFirstRecurringPayment Event = "first_recurring_payment"
	EventNewCustomer           Event = "new_customer"
	EventSetupFeesCreated      Event = "setupfees_created"
	EventSetupFeesDeleted      Event = "setupfees_deleted"
	EventSetupFeesUpdated      Event = "setupfees_updated"
	EventPaymentFailed         Event = "payment_failed"
	EventInvoiceCreated        Event = "invoice_created"
	EventInvoiceDeleted        Event = "invoice_deleted"
	EventInvoiceUpdated        Event = "invoice_updated"
	EventPaymentSuccessful     Event = "payment_successful"
)

// DefaultEvent is selected when the trigger has no event configured
const DefaultEvent = EventPaymentSuccessful

// EventDef describes an event option of the trigger
type EventDef struct {
	Value       Event  `json:"value"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Events lists every event the trigger can subscribe to
var Events = []EventDef{
	{EventFirstRecurringPayment, "First Recurring Payment", "Trigger when a first recurring payment is made"},
	{EventNewCustomer, "New Customer Created", "Trigger when a new customer is created"},
	{EventSetupFeesCreated, "One Time Setup Fees Created", "Triggers when a new one time setup fees is created"},
	{EventSetupFeesDeleted, "One Time Setup Fees Deleted", "Triggers when one time setup fees is deleted"},
	{EventSetupFeesUpdated, "One Time Setup Fees Updated", "Triggers when a one time setup fees is updated"},
	{EventPaymentFailed, "Payment Failed", "Trigger when a payment fails"},
	{EventInvoiceCreated, "Payment Link Created", "Trigger when a payment link is created"},
	{EventInvoiceDeleted, "Payment Link Deleted", "Trigger when a payment link is deleted"},
	{EventInvoiceUpdated, "Payment Link Updated", "Trigger when a payment link is updated"},
	{EventPaymentSuccessful, "Payment Succeeded", "Trigger when a payment is successful"},
}

// ParseEvent validates s against the known events. An empty value selects
// DefaultEvent.
func ParseEvent(s string) (Event, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultEvent, nil
	}
	for _, e := range Events {
		if string(e.Value) == s {
			return e.Value, nil
		}
	}
	return "", provider.ValidationError("unknown webhook event %q", s)
}
