package main

import (
	"encoding/json"
	"fmt"
	"os"

	"payfunnels/internal/webhook"

	"github.com/spf13/cobra"
)

var webhookCmd = &cobra.Command{
	Use:   "webhook",
	Short: "Manage the Payfunnels webhook subscription of this node",
}

var webhookCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Report whether the stored subscription still exists remotely",
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, closeStore, err := newManager(cmd.Context())
		if err != nil {
			return err
		}
		defer closeStore()

		exists, err := manager.CheckExists(cmd.Context())
		if err != nil {
			return err
		}
		sub, err := manager.Current(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(map[string]any{"exists": exists, "subscription": sub})
	},
}

var webhookEvent string

var webhookCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Subscribe the trigger endpoint to an event",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Webhook.BaseURL == "" {
			return fmt.Errorf("WEBHOOK_BASE_URL is required")
		}
		eventName := cfg.Webhook.Event
		if webhookEvent != "" {
			eventName = webhookEvent
		}
		event, err := webhook.ParseEvent(eventName)
		if err != nil {
			return err
		}

		manager, closeStore, err := newManager(cmd.Context())
		if err != nil {
			return err
		}
		defer closeStore()

		if err := manager.Create(cmd.Context(), cfg.WebhookURL(webhook.Path), event); err != nil {
			return err
		}
		sub, err := manager.Current(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(sub)
	},
}

var webhookDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the stored subscription",
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, closeStore, err := newManager(cmd.Context())
		if err != nil {
			return err
		}
		defer closeStore()

		return manager.Delete(cmd.Context())
	},
}

func init() {
	webhookCreateCmd.Flags().StringVar(&webhookEvent, "event", "", "event to subscribe to (defaults to WEBHOOK_EVENT)")
	webhookCmd.AddCommand(webhookCheckCmd, webhookCreateCmd, webhookDeleteCmd)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
