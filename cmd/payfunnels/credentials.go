package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var credentialsCmd = &cobra.Command{
	Use:   "credentials",
	Short: "Work with the Payfunnels API credentials",
}

var credentialsTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Verify PAYFUNNELS_ID and PAYFUNNELS_API_KEY against the API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newClient().TestCredentials(cmd.Context(), cfg.Credentials()); err != nil {
			return err
		}
		fmt.Println("credentials ok")
		return nil
	},
}

func init() {
	credentialsCmd.AddCommand(credentialsTestCmd)
}
