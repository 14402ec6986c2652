// Package cli implements the ptype-e2e command line interface.
//
// Commands enumerate the scenario catalogue (list, show), execute scenarios
// against a running game (run), and export the catalogue as YAML (export).
// The [App] struct carries injected dependencies so command behavior is
// testable without a real browser: tests swap [App.NewRunner] for a mock
// factory and [App.Printer] for a buffer-backed printer.
package cli

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"ptype-e2e/internal/agent"
	"ptype-e2e/internal/config"
	"ptype-e2e/internal/report"
	"ptype-e2e/internal/runner"
	"ptype-e2e/internal/scenario"
)

// ScenarioRunner is the interface run commands use to execute scenarios.
// The [runner.Runner] type implements it; tests use mocks.
type ScenarioRunner interface {
	SetProgressCallback(runner.ProgressCallback)
	RunAll(ctx context.Context, scenarios []scenario.Scenario) runner.RunReport
}

// RunnerFactory creates a [ScenarioRunner] bound to a live browser. The
// returned cleanup function shuts the browser down and must be called when
// the run finishes.
type RunnerFactory func(ctx context.Context, cfg *config.Config, log *zap.Logger) (ScenarioRunner, func() error, error)

// ReportWriter persists an aggregate run report. The [report.Writer] type
// implements it.
type ReportWriter interface {
	Write(report runner.RunReport) error
}

// App carries the dependencies commands operate on.
type App struct {
	// Catalogue is the scenario registry: the builtin one by default, or a
	// YAML file loaded via the --catalogue flag.
	Catalogue *scenario.Catalogue

	// Printer renders human-readable output.
	Printer *report.Printer

	// Config is the loaded configuration, after flag overrides.
	Config *config.Config

	// Logger is the zap logger built during command setup.
	Logger *zap.Logger

	// NewRunner builds the scenario runner for run commands.
	NewRunner RunnerFactory

	// NewReportWriter builds the results persister for a given path.
	NewReportWriter func(path string) ReportWriter
}

// NewApp creates an App with production dependencies and the builtin
// catalogue. Config and Logger are populated during root command setup.
func NewApp() *App {
	return &App{
		Catalogue: scenario.Default(),
		Printer:   report.NewPrinter(),
		NewRunner: newBrowserRunner,
		NewReportWriter: func(path string) ReportWriter {
			return report.NewWriter(path)
		},
	}
}

// newBrowserRunner is the production [RunnerFactory]: it launches a browser
// agent and wraps it in a sequential runner.
func newBrowserRunner(ctx context.Context, cfg *config.Config, log *zap.Logger) (ScenarioRunner, func() error, error) {
	browser := agent.New(agent.Options{
		BinaryPath:        cfg.Browser.BinaryPath,
		Headless:          cfg.Browser.Headless,
		ViewportWidth:     cfg.Browser.ViewportWidth,
		ViewportHeight:    cfg.Browser.ViewportHeight,
		NavigationTimeout: cfg.Browser.NavigationTimeout(),
		TypeDelay:         cfg.Browser.TypeDelay(),
		ScreenshotDir:     cfg.Screenshots.Dir,
	}, log)

	if err := browser.Start(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to start browser: %w", err)
	}
	return runner.New(browser, cfg.BaseURL, log), browser.Close, nil
}
