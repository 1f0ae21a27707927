package provider

import (
	"errors"
	"fmt"
)

// Credential field definitions for connector setup
type CredentialField struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Type        string `json:"type"` // text, password
	Required    bool   `json:"required"`
	Placeholder string `json:"placeholder,omitempty"`
	Hint        string `json:"hint,omitempty"`
}

// Common error type for every failure surfaced by the connector
type ProviderError struct {
	Code        string `json:"code"`
	Message     string `json:"message"`
	ProviderErr string `json:"provider_error,omitempty"`
	StatusCode  int    `json:"status_code,omitempty"`

	// Err is the underlying cause, if any
	Err error `json:"-"`
}

func (e *ProviderError) Error() string {
	if e.ProviderErr != "" {
		return e.Message + ": " + e.ProviderErr
	}
	return e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Error codes
const (
	ErrInvalidCredentials = "invalid_credentials"
	ErrRequestFailed      = "request_failed"
	ErrAPIError           = "api_error"
	ErrResponseParse      = "response_parse_failed"
	ErrMissingIdentifier  = "missing_identifier"
	ErrInvalidParameter   = "invalid_parameter"
	ErrUnsupported        = "operation_not_supported"
)

// CredentialError reports missing or unusable credentials.
func CredentialError(message string) *ProviderError {
	return &ProviderError{Code: ErrInvalidCredentials, Message: message}
}

// RemoteProtocolError reports a response that lacks a field the connector depends on.
func RemoteProtocolError(message string) *ProviderError {
	return &ProviderError{Code: ErrMissingIdentifier, Message: message}
}

// ValidationError reports a missing or malformed action parameter.
func ValidationError(format string, args ...any) *ProviderError {
	return &ProviderError{Code: ErrInvalidParameter, Message: fmt.Sprintf(format, args...)}
}

// HasCode reports whether err is a ProviderError carrying code.
func HasCode(err error, code string) bool {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Code == code
	}
	return false
}

// IsTransport reports whether err came from the network or a non-2xx response.
func IsTransport(err error) bool {
	return HasCode(err, ErrRequestFailed) || HasCode(err, ErrAPIError)
}
