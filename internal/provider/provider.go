package provider

import "strings"

// Credentials are supplied by the host for each execution.
// Only ID is sent on action and webhook calls; APIKey is used by the
// credential test alone.
type Credentials struct {
	ID     string
	APIKey string
}

// Validate checks both fields are present before any call is made.
func (c Credentials) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return CredentialError("credential id is required")
	}
	if strings.TrimSpace(c.APIKey) == "" {
		return CredentialError("credential api key is required")
	}
	return nil
}

// AuthHeaders returns the headers carried by every authenticated call.
func (c Credentials) AuthHeaders() map[string]string {
	return map[string]string{"Authorization": c.ID}
}

// String never exposes the secret fields.
func (c Credentials) String() string {
	if c.ID == "" {
		return "Credentials{}"
	}
	return "Credentials{ID: ***}"
}
