package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ptype-e2e/internal/scenario"
)

func newExportCommand(app *App) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the catalogue as YAML",
		Long: `Export the active catalogue to YAML, either to stdout or to a file.
The exported file round-trips: it can be fed back through --catalogue.

Example:
  ptype-e2e export -o scenarios.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputPath != "" {
				if err := scenario.WriteCatalogue(outputPath, app.Catalogue); err != nil {
					fmt.Fprintf(os.Stderr, "Error: %v\n", err)
					return NewExitError(1)
				}
				return nil
			}

			data, err := scenario.MarshalCatalogue(app.Catalogue)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return NewExitError(1)
			}
			cmd.OutOrStdout().Write(data)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write YAML to this file instead of stdout")
	return cmd
}
