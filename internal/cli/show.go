package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newShowCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <scenario>",
		Short: "Show a scenario's full step sequence",
		Long: `Show one scenario's ordered steps with their variant fields.

Example:
  ptype-e2e show "Main Menu Navigation"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := app.Catalogue.Get(args[0])
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return NewExitError(1)
			}
			app.Printer.Scenario(sc)
			return nil
		},
	}
}
