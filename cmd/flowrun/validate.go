package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ivaflow/flowcore/flow"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <flow.json>",
		Short: "Check a flow definition for structural errors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadFlow(args[0])
			if err != nil {
				return err
			}
			if err := f.Validate(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d nodes, %d edges, entryNode %q — valid\n", f.ID, len(f.Nodes), len(f.Edges), f.EntryNode)
			return nil
		},
	}
}

func loadFlow(path string) (*flow.Flow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var f flow.Flow
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &f, nil
}
