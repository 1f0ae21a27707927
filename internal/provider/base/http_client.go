package base

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"payfunnels/internal/provider"

	"github.com/rs/zerolog/log"
)

// HTTPClient provides common HTTP functionality for the connector
type HTTPClient struct {
	client  *http.Client
	baseURL string
	name    string // client name for logging
}

// NewHTTPClient creates a new HTTP client with default settings
func NewHTTPClient(name string, timeoutSec int) *HTTPClient {
	if timeoutSec == 0 {
		timeoutSec = 30 // default timeout
	}

	return &HTTPClient{
		client: &http.Client{
			Timeout: time.Duration(timeoutSec) * time.Second,
		},
		name: name,
	}
}

// SetBaseURL sets the base URL for all requests
func (c *HTTPClient) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

// BaseURL returns the configured base URL
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// Get makes a GET request with optional query parameters
func (c *HTTPClient) Get(ctx context.Context, endpoint string, query url.Values, headers map[string]string) (*HTTPResponse, error) {
	return c.Do(ctx, http.MethodGet, endpoint, query, nil, headers)
}

// PostJSON makes a POST request with JSON payload
func (c *HTTPClient) PostJSON(ctx context.Context, endpoint string, payload any, headers map[string]string) (*HTTPResponse, error) {
	return c.Do(ctx, http.MethodPost, endpoint, nil, payload, headers)
}

// DeleteJSON makes a DELETE request with JSON payload
func (c *HTTPClient) DeleteJSON(ctx context.Context, endpoint string, payload any, headers map[string]string) (*HTTPResponse, error) {
	return c.Do(ctx, http.MethodDelete, endpoint, nil, payload, headers)
}

// Do sends a single request. Network failures and non-2xx answers are
// returned as *provider.ProviderError.
func (c *HTTPClient) Do(ctx context.Context, method, endpoint string, query url.Values, payload any, headers map[string]string) (*HTTPResponse, error) {
	var bodyReader io.Reader
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal JSON payload: %w", err)
		}
		bodyReader = bytes.NewReader(body)
	}

	target := c.baseURL + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Set default headers
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", fmt.Sprintf("Payfunnels-Connector/%s", c.name))
	if bodyReader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// Add custom headers
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	// Log the request (without headers, they carry the credential id)
	log.Debug().
		Str("client", c.name).
		Str("method", method).
		Str("url", c.baseURL+endpoint).
		Msg("making HTTP request")

	resp, err := c.client.Do(req)
	if err != nil {
		log.Error().
			Str("client", c.name).
			Str("method", method).
			Str("url", c.baseURL+endpoint).
			Err(err).
			Msg("HTTP request failed")
		return nil, &provider.ProviderError{
			Code:        provider.ErrRequestFailed,
			Message:     fmt.Sprintf("%s %s failed", method, endpoint),
			ProviderErr: err.Error(),
			Err:         err,
		}
	}

	httpResp, err := c.handleResponse(resp)
	if err != nil {
		return nil, err
	}

	if !httpResp.IsSuccess() {
		return httpResp, &provider.ProviderError{
			Code:        provider.ErrAPIError,
			Message:     fmt.Sprintf("%s %s returned status %d", method, endpoint, httpResp.StatusCode),
			ProviderErr: httpResp.String(),
			StatusCode:  httpResp.StatusCode,
		}
	}

	return httpResp, nil
}

// handleResponse processes the HTTP response
func (c *HTTPClient) handleResponse(resp *http.Response) (*HTTPResponse, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &provider.ProviderError{
			Code:    provider.ErrRequestFailed,
			Message: "failed to read response body",
			Err:     err,
		}
	}

	httpResp := &HTTPResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
	}

	// Log response (without sensitive data in body)
	log.Debug().
		Str("client", c.name).
		Int("status_code", resp.StatusCode).
		Int("body_length", len(body)).
		Msg("received HTTP response")

	return httpResp, nil
}

// HTTPResponse represents an HTTP response
type HTTPResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// IsSuccess checks if the response indicates success (2xx status code)
func (r *HTTPResponse) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Decode returns the body as a generic JSON value. An empty body decodes
// to an empty object.
func (r *HTTPResponse) Decode() (any, error) {
	if len(bytes.TrimSpace(r.Body)) == 0 {
		return map[string]any{}, nil
	}
	var v any
	dec := json.NewDecoder(bytes.NewReader(r.Body))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil, &provider.ProviderError{
			Code:    provider.ErrResponseParse,
			Message: "failed to parse response body",
			Err:     err,
		}
	}
	return v, nil
}

// String returns the response body as a string
func (r *HTTPResponse) String() string {
	return string(r.Body)
}
