package main

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kosarica/catalog-service/internal/schema"
	"github.com/kosarica/catalog-service/internal/types"
)

var schemaKind string

// schemaCmd prints the JSON schema of a raw payload
var schemaCmd = &cobra.Command{
	Use:     "schema",
	Short:   "Print the JSON schema of a raw record",
	Example: `  catalog-service schema --kind publication`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := schema.ForKind(types.RecordKind(strings.ToLower(schemaKind)))
		if err != nil {
			return err
		}
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(s)
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)

	schemaCmd.Flags().StringVar(&schemaKind, "kind", "", "Record kind: publication or offer (required)")
	schemaCmd.MarkFlagRequired("kind")
}
