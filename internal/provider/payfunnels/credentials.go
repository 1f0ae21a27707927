package payfunnels

import (
	"context"

	"payfunnels/internal/provider"
)

const (
	CredentialName    = "payfunnelsApi"
	CredentialDisplay = "Payfunnels API"
	DocumentationURL  = "https://api.payfunnels.com/api/docs"
)

// RequiredCredentialFields returns required credential fields for Payfunnels
func RequiredCredentialFields() []provider.CredentialField {
	return []provider.CredentialField{
		{
			Name:        "id",
			DisplayName: "ID",
			Type:        "text",
			Required:    true,
			Placeholder: "Enter your ID",
			Hint:        "You can find the ID from the Billings -> Integrations -> n8n from the payfunnels dashboard.",
		},
		{
			Name:        "apiKey",
			DisplayName: "API Key",
			Type:        "password",
			Required:    true,
			Placeholder: "Enter your API key",
			Hint:        "You can find the API key from the Billings -> Integrations -> n8n from the payfunnels dashboard.",
		},
	}
}

// authenticateReq is the body of the credential test call
type authenticateReq struct {
	ID     string `json:"id"`
	APIKey string `json:"apiKey"`
}

// TestCredentials verifies id and apiKey against /authenticate. It is the
// only call that transmits the api key.
func (c *Client) TestCredentials(ctx context.Context, cred provider.Credentials) error {
	if err := cred.Validate(); err != nil {
		return err
	}

	if _, err := c.httpClient.PostJSON(ctx, "/authenticate", authenticateReq{ID: cred.ID, APIKey: cred.APIKey}, nil); err != nil {
		return &provider.ProviderError{
			Code:        provider.ErrInvalidCredentials,
			Message:     "credential test failed",
			ProviderErr: err.Error(),
			Err:         err,
		}
	}

	logOperation("credential_test").Msg("Payfunnels operation")
	return nil
}
