package cli

import (
	"github.com/spf13/cobra"
)

func newListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the scenario catalogue",
		Long: `List every scenario in the catalogue, in declaration order, with its
step count and description.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Printer.Catalogue(app.Catalogue)
			return nil
		},
	}
}
