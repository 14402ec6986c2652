package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ptype-e2e/internal/scenario"
)

func newRunCommand(app *App) *cobra.Command {
	var (
		runAll        bool
		baseURL       string
		headless      bool
		resultsPath   string
		screenshotDir string
	)

	cmd := &cobra.Command{
		Use:   "run [scenario...]",
		Short: "Run scenarios against a live game instance",
		Long: `Run the named scenarios (or every scenario with --all) against a running
P-Type instance. Steps execute strictly in declaration order; a scenario
stops at its first failing step, and the run continues with the next
scenario. Results are printed and persisted to the results file.

Examples:
  ptype-e2e run "Main Menu Navigation"
  ptype-e2e run --all --base-url http://localhost:4173`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if runAll == (len(args) > 0) {
				fmt.Fprintln(os.Stderr, "Error: name scenarios to run, or pass --all (not both)")
				return NewExitError(1)
			}

			// Flag overrides on top of loaded config.
			if baseURL != "" {
				app.Config.BaseURL = baseURL
			}
			if cmd.Flags().Changed("headless") {
				app.Config.Browser.Headless = headless
			}
			if resultsPath != "" {
				app.Config.Results.Path = resultsPath
			}
			if screenshotDir != "" {
				app.Config.Screenshots.Dir = screenshotDir
			}

			// Resolve every name before touching a browser, so a typo
			// fails fast with a not-found error.
			var selected []scenario.Scenario
			if runAll {
				selected = app.Catalogue.All()
			} else {
				for _, name := range args {
					sc, err := app.Catalogue.Get(name)
					if err != nil {
						fmt.Fprintf(os.Stderr, "Error: %v\n", err)
						return NewExitError(1)
					}
					selected = append(selected, sc)
				}
			}

			ctx := cmd.Context()
			r, cleanup, err := app.NewRunner(ctx, app.Config, app.Logger)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return NewExitError(1)
			}
			defer func() {
				if closeErr := cleanup(); closeErr != nil {
					app.Logger.Warn("browser shutdown failed", zap.Error(closeErr))
				}
			}()

			r.SetProgressCallback(app.Printer.Progress)
			report := r.RunAll(ctx, selected)
			app.Printer.Summary(report)

			if err := app.NewReportWriter(app.Config.Results.Path).Write(report); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return NewExitError(1)
			}

			if !report.AllPassed() {
				return NewExitError(1)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&runAll, "all", false, "run every scenario in the catalogue")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "rebase scenarios onto this game address")
	cmd.Flags().BoolVar(&headless, "headless", true, "run the browser headless")
	cmd.Flags().StringVar(&resultsPath, "results", "", "results file path")
	cmd.Flags().StringVar(&screenshotDir, "screenshots", "", "screenshot output directory")

	return cmd
}
