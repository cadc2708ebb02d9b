package cli

import (
	"encoding/json"
	"fmt"

	"github.com/lacquerai/jsonl-split/pkg/schema"
	"github.com/spf13/cobra"
)

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "schema",
		Short:  "Output JSON schemas",
		Long:   `Output the JSON schemas of the config file and of the run summary printed with --output json.`,
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := schema.GetSchema()
			if err != nil {
				return fmt.Errorf("error generating schema: %w", err)
			}

			outputBytes, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return fmt.Errorf("error marshaling output: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(outputBytes))
			return nil
		},
	}
}
