package payfunnels

import (
	"context"
	"net/url"
	"strconv"

	"payfunnels/internal/provider"
	"payfunnels/internal/provider/base"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultBaseURL is the fixed integration endpoint of the Payfunnels API.
const DefaultBaseURL = "https://api.payfunnels.com/n8n-integration"

// Client implements the Payfunnels REST calls used by the connector
type Client struct {
	httpClient *base.HTTPClient
}

// New creates a client against baseURL. An empty baseURL selects DefaultBaseURL.
func New(baseURL string, timeoutSec int) *Client {
	httpClient := base.NewHTTPClient("payfunnels", timeoutSec)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient.SetBaseURL(baseURL)

	return &Client{httpClient: httpClient}
}

// HTTP exposes the underlying transport
func (c *Client) HTTP() *base.HTTPClient {
	return c.httpClient
}

// ListQuery carries the paging and search parameters of list calls.
type ListQuery struct {
	Limit  int
	Page   int
	Search string
}

func (q ListQuery) values() url.Values {
	v := url.Values{}
	v.Set("limit", strconv.Itoa(q.Limit))
	v.Set("page", strconv.Itoa(q.Page))
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	return v
}

// RefundReq is the body of a payment refund
type RefundReq struct {
	ID     string  `json:"id"`
	Amount float64 `json:"amount"`
	Reason string  `json:"reason"`
}

// CancelReq is the body of a subscription cancellation
type CancelReq struct {
	ID                 string `json:"id"`
	CancellationOption string `json:"cancellationOption"`
	CancelDate         *int64 `json:"cancelDate,omitempty"`
}

// ListPayments returns the decoded /payments response
func (c *Client) ListPayments(ctx context.Context, cred provider.Credentials, q ListQuery) (any, error) {
	return c.list(ctx, cred, "/payments", q)
}

// ListSubscriptions returns the decoded /subscriptions response
func (c *Client) ListSubscriptions(ctx context.Context, cred provider.Credentials, q ListQuery) (any, error) {
	return c.list(ctx, cred, "/subscriptions", q)
}

// ListSetupFees returns the decoded /setupfees response. Search is not
// supported by this resource and is dropped.
func (c *Client) ListSetupFees(ctx context.Context, cred provider.Credentials, q ListQuery) (any, error) {
	q.Search = ""
	return c.list(ctx, cred, "/setupfees", q)
}

// RefundPayment refunds a payment
func (c *Client) RefundPayment(ctx context.Context, cred provider.Credentials, req RefundReq) (any, error) {
	resp, err := c.httpClient.PostJSON(ctx, "/payments/refund", req, cred.AuthHeaders())
	if err != nil {
		return nil, err
	}

	logOperation("payment_refund").
		Str("payment_id", req.ID).
		Float64("amount", req.Amount).
		Str("reason", req.Reason).
		Msg("Payfunnels operation")

	return resp.Decode()
}

// CancelSubscription cancels a subscription
func (c *Client) CancelSubscription(ctx context.Context, cred provider.Credentials, req CancelReq) (any, error) {
	resp, err := c.httpClient.PostJSON(ctx, "/subscriptions/cancel", req, cred.AuthHeaders())
	if err != nil {
		return nil, err
	}

	logOperation("subscription_cancel").
		Str("subscription_id", req.ID).
		Str("cancellation_option", req.CancellationOption).
		Msg("Payfunnels operation")

	return resp.Decode()
}

func (c *Client) list(ctx context.Context, cred provider.Credentials, endpoint string, q ListQuery) (any, error) {
	resp, err := c.httpClient.Get(ctx, endpoint, q.values(), cred.AuthHeaders())
	if err != nil {
		return nil, err
	}
	return resp.Decode()
}

// logOperation starts an info entry for a remote operation
func logOperation(operation string) *zerolog.Event {
	return log.Info().
		Str("provider", "payfunnels").
		Str("operation", operation)
}
