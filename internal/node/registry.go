package node

import (
	"payfunnels/internal/provider/payfunnels"

	"github.com/rs/zerolog/log"
)

// ParamDef describes one action parameter for the host's parameter UI
type ParamDef struct {
	Name        string   `json:"name"`
	DisplayName string   `json:"display_name"`
	Type        string   `json:"type"` // string, number, options, dateTime
	Required    bool     `json:"required"`
	Default     any      `json:"default,omitempty"`
	MinValue    *int     `json:"min_value,omitempty"`
	Options     []string `json:"options,omitempty"`
	Description string   `json:"description,omitempty"`

	// ShowWhen restricts the parameter to other parameter values
	ShowWhen map[string][]string `json:"show_when,omitempty"`
}

// OperationDef describes one operation of a resource
type OperationDef struct {
	Operation   Operation  `json:"operation"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Action      string     `json:"action"`
	Params      []ParamDef `json:"params"`
}

// ResourceDef groups the operations of a resource
type ResourceDef struct {
	Resource   Resource       `json:"resource"`
	Name       string         `json:"name"`
	Operations []OperationDef `json:"operations"`
}

// NodeDescription is what the host needs to render and dispatch the node
type NodeDescription struct {
	Name        string        `json:"name"`
	DisplayName string        `json:"display_name"`
	Description string        `json:"description"`
	Version     int           `json:"version"`
	Credential  string        `json:"credential"`
	Resources   []ResourceDef `json:"resources"`
}

func intPtr(v int) *int { return &v }

func listParams(withSearch bool) []ParamDef {
	params := []ParamDef{
		{Name: "limit", DisplayName: "Limit", Type: "number", Default: DefaultLimit, MinValue: intPtr(1), Description: "Max number of results to return"},
		{Name: "page", DisplayName: "Page", Type: "number", Default: DefaultPage, MinValue: intPtr(1), Description: "Page number"},
	}
	if withSearch {
		params = append(params, ParamDef{Name: "search", DisplayName: "Email", Type: "string", Default: "", Description: "Search by customer email"})
	}
	return params
}

var resources = []ResourceDef{
	{
		Resource: ResourcePayment,
		Name:     "Payment",
		Operations: []OperationDef{
			{Operation: OpList, Name: "List", Description: "List payments", Action: "List payments", Params: listParams(true)},
			{
				Operation:   OpRefund,
				Name:        "Refund",
				Description: "Refund a payment",
				Action:      "Refund payment",
				Params: []ParamDef{
					{Name: "id", DisplayName: "Payment ID", Type: "string", Required: true, Description: "The ID of the payment to refund"},
					{Name: "amount", DisplayName: "Amount", Type: "number", Required: true, Default: 0, Description: "Amount to refund"},
					{Name: "reason", DisplayName: "Reason", Type: "options", Required: true, Default: ReasonRequestedByCustomer, Options: refundReasons},
				},
			},
		},
	},
	{
		Resource: ResourceSubscription,
		Name:     "Subscription",
		Operations: []OperationDef{
			{Operation: OpList, Name: "List", Description: "List subscriptions", Action: "List subscriptions", Params: listParams(true)},
			{
				Operation:   OpCancel,
				Name:        "Cancel",
				Description: "Cancel a subscription",
				Action:      "Cancel subscription",
				Params: []ParamDef{
					{Name: "subscriptionId", DisplayName: "Subscription ID", Type: "string", Required: true},
					{Name: "cancellationOption", DisplayName: "Cancellation Option", Type: "options", Required: true, Default: CancelImmediate, Options: cancellationOptions},
					{
						Name:        "cancelDate",
						DisplayName: "Cancel Date",
						Type:        "dateTime",
						Required:    true,
						ShowWhen:    map[string][]string{"cancellationOption": {CancelCustomDate}},
					},
				},
			},
		},
	},
	{
		Resource: ResourceSetupFees,
		Name:     "One Time Setup Fee",
		Operations: []OperationDef{
			{
				Operation:   OpList,
				Name:        "List",
				Description: "Retrieves a list of one time setup fees based on filters like page and limit",
				Action:      "List one time setup fees",
				Params:      listParams(false),
			},
		},
	},
}

// Description returns the node metadata
func Description() NodeDescription {
	return NodeDescription{
		Name:        "payfunnels",
		DisplayName: "Payfunnels",
		Description: "Payfunnels",
		Version:     1,
		Credential:  payfunnels.CredentialName,
		Resources:   resources,
	}
}

// Supports checks if an operation is declared for a resource
func Supports(resource Resource, operation Operation) bool {
	for _, r := range resources {
		if r.Resource != resource {
			continue
		}
		for _, op := range r.Operations {
			if op.Operation == operation {
				return true
			}
		}
	}
	return false
}

// LogDescription logs the available operations at startup
func LogDescription() {
	for _, r := range resources {
		log.Info().
			Str("resource", string(r.Resource)).
			Strs("operations", operationsToStrings(r.Operations)).
			Msg("registered Payfunnels resource")
	}
}

// operationsToStrings converts operation definitions to strings for logging
func operationsToStrings(ops []OperationDef) []string {
	var strs []string
	for _, op := range ops {
		strs = append(strs, string(op.Operation))
	}
	return strs
}
