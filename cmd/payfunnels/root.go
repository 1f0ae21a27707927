package main

import (
	"payfunnels/internal/config"
	"payfunnels/internal/logger"
	"payfunnels/internal/provider/payfunnels"

	"github.com/spf13/cobra"
)

var cfg config.Cfg

var rootCmd = &cobra.Command{
	Use:           "payfunnels",
	Short:         "Payfunnels connector for workflow automation",
	Long:          "Runs Payfunnels actions, manages the webhook subscription and serves the trigger endpoint.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		logger.Init(cfg.Log.Level, cfg.Log.Format)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, runCmd, webhookCmd, credentialsCmd, describeCmd)
}

// newClient builds the API client from the loaded configuration
func newClient() *payfunnels.Client {
	return payfunnels.New(cfg.Payfunnels.BaseURL, cfg.Payfunnels.TimeoutSec)
}
