package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"payfunnels/internal/node"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	runFile           string
	runResource       string
	runOperation      string
	runParams         []string
	runContinueOnFail bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute Payfunnels actions for a batch of input records",
	Long: "Reads records from a YAML or JSON list (-f) or builds a single record from flags, " +
		"runs one action per record and prints the output items as JSON.",
	RunE: func(cmd *cobra.Command, args []string) error {
		inputs, err := runInputs()
		if err != nil {
			return err
		}

		dispatcher := node.NewDispatcher(newClient())
		items, err := dispatcher.Execute(cmd.Context(), cfg.Credentials(), inputs, node.ExecuteOptions{
			ContinueOnFail: runContinueOnFail,
		})

		var itemErr *node.ItemError
		if err != nil && !errors.As(err, &itemErr) {
			return err
		}
		if perr := printJSON(items); perr != nil {
			return perr
		}
		return err
	},
}

func init() {
	runCmd.Flags().StringVarP(&runFile, "file", "f", "", "YAML or JSON list of parameter records")
	runCmd.Flags().StringVar(&runResource, "resource", "", "resource of a single record (payment, subscription, oneTimeSetupFees)")
	runCmd.Flags().StringVar(&runOperation, "operation", "", "operation of a single record (list, refund, cancel)")
	runCmd.Flags().StringArrayVarP(&runParams, "param", "p", nil, "parameter of a single record as key=value")
	runCmd.Flags().BoolVar(&runContinueOnFail, "continue-on-fail", false, "emit an error item for failed records instead of stopping")
}

// runInputs collects the records from the file or the single-record flags
func runInputs() ([]node.Parameters, error) {
	if runFile != "" {
		return readInputs(runFile)
	}

	params := node.Parameters{}
	if runResource != "" {
		params["resource"] = runResource
	}
	if runOperation != "" {
		params["operation"] = runOperation
	}
	for _, kv := range runParams {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --param %q, want key=value", kv)
		}
		params[k] = v
	}
	return []node.Parameters{params}, nil
}

func readInputs(path string) ([]node.Parameters, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var records []map[string]any
	if err := yaml.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	inputs := make([]node.Parameters, 0, len(records))
	for _, r := range records {
		inputs = append(inputs, node.Parameters(r))
	}
	return inputs, nil
}
