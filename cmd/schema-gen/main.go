// Schema Generator
//
// Generates JSON Schema files for the raw catalog payloads and the decoded
// records, for consumers that validate payloads outside Go.
//
// Usage:
//
//	go run ./cmd/schema-gen [--out dir]
//
// Output:
//
//	<dir>/raw.json
//	<dir>/catalog.json
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kosarica/catalog-service/internal/schema"
)

func main() {
	var outputDir string

	cmd := &cobra.Command{
		Use:          "schema-gen",
		Short:        "Write JSON Schema files for raw and decoded catalog types",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			written, err := schema.WriteGroups(outputDir)
			for _, path := range written {
				fmt.Fprintf(cmd.OutOrStdout(), "Generated %s\n", path)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Schema generation complete!")
			return nil
		},
	}
	cmd.Flags().StringVar(&outputDir, "out", "./schemas", "output directory")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
