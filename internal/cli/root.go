package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"ptype-e2e/internal/config"
	"ptype-e2e/internal/scenario"
)

// ExecuteResult carries the outcome of a CLI invocation for callers that
// cannot os.Exit, such as tests.
type ExecuteResult struct {
	ExitCode int
	Err      error
}

// Execute runs the CLI with os.Args and exits the process with the
// resulting code. This is the entry point used by main.
func Execute() {
	result := Run(NewApp(), os.Args[1:])
	if result.Err != nil {
		if _, ok := IsExitError(result.Err); !ok {
			fmt.Fprintf(os.Stderr, "Error: %v\n", result.Err)
		}
	}
	os.Exit(result.ExitCode)
}

// Run executes the CLI against the given App and arguments and returns the
// exit code instead of terminating the process.
func Run(app *App, args []string) ExecuteResult {
	cmd := NewRootCommand(app)
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		if code, ok := IsExitError(err); ok {
			return ExecuteResult{ExitCode: code, Err: err}
		}
		return ExecuteResult{ExitCode: 1, Err: err}
	}
	return ExecuteResult{ExitCode: 0}
}

// NewRootCommand builds the root command and its subcommands around the App.
func NewRootCommand(app *App) *cobra.Command {
	var (
		verbose       bool
		configPath    string
		cataloguePath string
	)

	root := &cobra.Command{
		Use:   "ptype-e2e",
		Short: "End-to-end test harness for the P-Type typing game",
		Long: `ptype-e2e holds the P-Type scenario catalogue and runs it against a live
game instance through a browser execution agent.

Scenarios are ordered sequences of declarative steps (navigate, click, type,
press_key, wait, screenshot, snapshot, evaluate, console_messages) executed
strictly in order. Start the game dev server first, then:

  ptype-e2e list
  ptype-e2e run --all`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.Logger == nil {
				logger, err := buildLogger(verbose)
				if err != nil {
					return fmt.Errorf("failed to initialize logger: %w", err)
				}
				app.Logger = logger
			}

			if app.Config == nil {
				cfg, err := loadConfig(configPath)
				if err != nil {
					return err
				}
				app.Config = cfg
			}
			if verbose {
				app.Config.Output.Verbose = true
			}

			if cataloguePath != "" {
				c, err := scenario.LoadCatalogue(cataloguePath)
				if err != nil {
					return err
				}
				app.Catalogue = c
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Logger != nil {
				_ = app.Logger.Sync()
			}
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file path (overrides discovery)")
	root.PersistentFlags().StringVar(&cataloguePath, "catalogue", "", "YAML catalogue file to use instead of the builtin scenarios")

	root.AddCommand(newListCommand(app))
	root.AddCommand(newShowCommand(app))
	root.AddCommand(newRunCommand(app))
	root.AddCommand(newExportCommand(app))

	return root
}

func buildLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

func loadConfig(path string) (*config.Config, error) {
	loader := config.NewLoader()
	if path != "" {
		return loader.LoadFromFile(path)
	}
	return loader.Load()
}
