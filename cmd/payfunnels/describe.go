package main

import (
	"payfunnels/internal/node"
	"payfunnels/internal/provider/payfunnels"
	"payfunnels/internal/webhook"

	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Print the action node, trigger events and credential fields",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printJSON(map[string]any{
			"node":   node.Description(),
			"events": webhook.Events,
			"credential": map[string]any{
				"name":          payfunnels.CredentialName,
				"display_name":  payfunnels.CredentialDisplay,
				"documentation": payfunnels.DocumentationURL,
				"fields":        payfunnels.RequiredCredentialFields(),
			},
		})
	},
}
