package node

import (
	"context"
	"time"

	"payfunnels/internal/provider"
	"payfunnels/internal/provider/base"
	"payfunnels/internal/provider/payfunnels"
)

// Resource identifies a top-level API entity
type Resource string

const (
	ResourcePayment      Resource = "payment"
	ResourceSubscription Resource = "subscription"
	ResourceSetupFees    Resource = "oneTimeSetupFees"
)

// Operation identifies an action on a resource
type Operation string

const (
	OpList   Operation = "list"
	OpRefund Operation = "refund"
	OpCancel Operation = "cancel"
)

// Refund reasons accepted by the API
const (
	ReasonDuplicate           = "duplicate"
	ReasonFraudulent          = "fraudulent"
	ReasonRequestedByCustomer = "requested_by_customer"
)

// Cancellation options accepted by the API
const (
	CancelImmediate   = "immediate"
	CancelEndOfPeriod = "end_of_the_period"
	CancelCustomDate  = "custom_date"
)

const (
	DefaultLimit = 50
	DefaultPage  = 1
)

var (
	refundReasons       = []string{ReasonDuplicate, ReasonFraudulent, ReasonRequestedByCustomer}
	cancellationOptions = []string{CancelImmediate, CancelEndOfPeriod, CancelCustomDate}
)

// API is the subset of the Payfunnels client used by actions.
type API interface {
	ListPayments(ctx context.Context, cred provider.Credentials, q payfunnels.ListQuery) (any, error)
	RefundPayment(ctx context.Context, cred provider.Credentials, req payfunnels.RefundReq) (any, error)
	ListSubscriptions(ctx context.Context, cred provider.Credentials, q payfunnels.ListQuery) (any, error)
	CancelSubscription(ctx context.Context, cred provider.Credentials, req payfunnels.CancelReq) (any, error)
	ListSetupFees(ctx context.Context, cred provider.Credentials, q payfunnels.ListQuery) (any, error)
}

// Action is one validated (resource, operation) variant. Each variant makes
// exactly one remote call.
type Action interface {
	Resource() Resource
	Operation() Operation
	Call(ctx context.Context, api API, cred provider.Credentials) (any, error)
}

// ListParams are shared by every list operation.
type ListParams struct {
	Limit  int
	Page   int
	Search string
}

func (p ListParams) query() payfunnels.ListQuery {
	return payfunnels.ListQuery{Limit: p.Limit, Page: p.Page, Search: p.Search}
}

// PaymentList lists payments, optionally filtered by customer email.
type PaymentList struct{ ListParams }

func (PaymentList) Resource() Resource   { return ResourcePayment }
func (PaymentList) Operation() Operation { return OpList }
func (a PaymentList) Call(ctx context.Context, api API, cred provider.Credentials) (any, error) {
	return api.ListPayments(ctx, cred, a.query())
}

// PaymentRefund refunds a payment. The amount is not checked locally.
type PaymentRefund struct {
	ID     string
	Amount float64
	Reason string
}

func (PaymentRefund) Resource() Resource   { return ResourcePayment }
func (PaymentRefund) Operation() Operation { return OpRefund }
func (a PaymentRefund) Call(ctx context.Context, api API, cred provider.Credentials) (any, error) {
	return api.RefundPayment(ctx, cred, payfunnels.RefundReq{ID: a.ID, Amount: a.Amount, Reason: a.Reason})
}

// SubscriptionList lists subscriptions, optionally filtered by customer email.
type SubscriptionList struct{ ListParams }

func (SubscriptionList) Resource() Resource   { return ResourceSubscription }
func (SubscriptionList) Operation() Operation { return OpList }
func (a SubscriptionList) Call(ctx context.Context, api API, cred provider.Credentials) (any, error) {
	return api.ListSubscriptions(ctx, cred, a.query())
}

// SubscriptionCancel cancels a subscription. CancelDate is set only for
// the custom_date option.
type SubscriptionCancel struct {
	SubscriptionID     string
	CancellationOption string
	CancelDate         *time.Time
}

func (SubscriptionCancel) Resource() Resource   { return ResourceSubscription }
func (SubscriptionCancel) Operation() Operation { return OpCancel }
func (a SubscriptionCancel) Call(ctx context.Context, api API, cred provider.Credentials) (any, error) {
	req := payfunnels.CancelReq{ID: a.SubscriptionID, CancellationOption: a.CancellationOption}
	if a.CancellationOption == CancelCustomDate && a.CancelDate != nil {
		secs := base.UnixSeconds(*a.CancelDate)
		req.CancelDate = &secs
	}
	return api.CancelSubscription(ctx, cred, req)
}

// SetupFeesList lists one-time setup fees. No search filter exists.
type SetupFeesList struct {
	Limit int
	Page  int
}

func (SetupFeesList) Resource() Resource   { return ResourceSetupFees }
func (SetupFeesList) Operation() Operation { return OpList }
func (a SetupFeesList) Call(ctx context.Context, api API, cred provider.Credentials) (any, error) {
	return api.ListSetupFees(ctx, cred, payfunnels.ListQuery{Limit: a.Limit, Page: a.Page})
}

// ParseAction builds the variant selected by the "resource" and
// "operation" parameters, applying declared defaults.
func ParseAction(params Parameters) (Action, error) {
	p := base.Params(params)

	resource := Resource(p.String("resource"))
	if resource == "" {
		resource = ResourcePayment
	}
	operation := Operation(p.String("operation"))
	if operation == "" {
		operation = OpList
	}
	if !Supports(resource, operation) {
		return nil, &provider.ProviderError{
			Code:    provider.ErrUnsupported,
			Message: "operation " + string(operation) + " is not supported for resource " + string(resource),
		}
	}

	switch {
	case resource == ResourcePayment && operation == OpList:
		lp, err := parseList(p, true)
		if err != nil {
			return nil, err
		}
		return PaymentList{lp}, nil

	case resource == ResourcePayment && operation == OpRefund:
		return parseRefund(p)

	case resource == ResourceSubscription && operation == OpList:
		lp, err := parseList(p, true)
		if err != nil {
			return nil, err
		}
		return SubscriptionList{lp}, nil

	case resource == ResourceSubscription && operation == OpCancel:
		return parseCancel(p)

	default: // oneTimeSetupFees.list
		lp, err := parseList(p, false)
		if err != nil {
			return nil, err
		}
		return SetupFeesList{Limit: lp.Limit, Page: lp.Page}, nil
	}
}

func parseList(p base.Params, withSearch bool) (ListParams, error) {
	limit, err := p.Int("limit", DefaultLimit)
	if err != nil {
		return ListParams{}, err
	}
	page, err := p.Int("page", DefaultPage)
	if err != nil {
		return ListParams{}, err
	}
	if err := base.ValidatePaging(limit, page); err != nil {
		return ListParams{}, err
	}

	lp := ListParams{Limit: limit, Page: page}
	if withSearch {
		lp.Search = p.String("search")
	}
	return lp, nil
}

func parseRefund(p base.Params) (PaymentRefund, error) {
	id, err := p.RequiredString("id")
	if err != nil {
		return PaymentRefund{}, err
	}
	amount, err := p.Float("amount")
	if err != nil {
		return PaymentRefund{}, err
	}
	reason := p.String("reason")
	if reason == "" {
		reason = ReasonRequestedByCustomer
	}
	if err := base.ValidateOption("reason", reason, refundReasons); err != nil {
		return PaymentRefund{}, err
	}
	return PaymentRefund{ID: id, Amount: amount, Reason: reason}, nil
}

func parseCancel(p base.Params) (SubscriptionCancel, error) {
	id, err := p.RequiredString("subscriptionId")
	if err != nil {
		return SubscriptionCancel{}, err
	}
	option := p.String("cancellationOption")
	if option == "" {
		option = CancelImmediate
	}
	if err := base.ValidateOption("cancellationOption", option, cancellationOptions); err != nil {
		return SubscriptionCancel{}, err
	}

	a := SubscriptionCancel{SubscriptionID: id, CancellationOption: option}
	if option == CancelCustomDate {
		if p.String("cancelDate") == "" {
			return SubscriptionCancel{}, provider.ValidationError("parameter %q is required when cancellationOption is %s", "cancelDate", CancelCustomDate)
		}
		t, err := base.ParseCalendarTime(p["cancelDate"])
		if err != nil {
			return SubscriptionCancel{}, err
		}
		a.CancelDate = &t
	}
	return a, nil
}
