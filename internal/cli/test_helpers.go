package cli

import (
	"bytes"
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"ptype-e2e/internal/config"
	"ptype-e2e/internal/report"
	"ptype-e2e/internal/runner"
	"ptype-e2e/internal/scenario"
)

// MockScenarioRunner is a test implementation of [ScenarioRunner] that
// records the scenarios it was asked to run and fabricates results without a
// browser.
type MockScenarioRunner struct {
	// RanScenarios records the scenarios passed to RunAll, in order.
	RanScenarios []scenario.Scenario

	// FailScenario names a scenario whose result should be marked failed.
	// Empty means every scenario passes.
	FailScenario string

	progress runner.ProgressCallback
}

func (m *MockScenarioRunner) SetProgressCallback(cb runner.ProgressCallback) {
	m.progress = cb
}

func (m *MockScenarioRunner) RunAll(_ context.Context, scenarios []scenario.Scenario) runner.RunReport {
	m.RanScenarios = append(m.RanScenarios, scenarios...)

	rep := runner.RunReport{
		RunID:     "mock-run",
		StartTime: time.Now().UTC(),
	}
	for _, sc := range scenarios {
		passed := sc.Name != m.FailScenario
		res := runner.ScenarioResult{
			RunID:  "mock-run",
			Name:   sc.Name,
			Passed: passed,
		}
		if !passed {
			res.FailedStep = 1
		}
		if m.progress != nil {
			m.progress(runner.Event{Kind: runner.EventScenarioStarted, Scenario: sc.Name, StepCount: len(sc.Steps)})
		}
		rep.Scenarios = append(rep.Scenarios, res)
		if passed {
			rep.Passed++
		} else {
			rep.Failed++
		}
	}
	rep.Total = len(rep.Scenarios)
	return rep
}

// MockReportWriter is a test implementation of [ReportWriter] that captures
// the written report in memory.
type MockReportWriter struct {
	Written []runner.RunReport
	Err     error
}

func (m *MockReportWriter) Write(report runner.RunReport) error {
	if m.Err != nil {
		return m.Err
	}
	m.Written = append(m.Written, report)
	return nil
}

// testEnv bundles a fully mocked App with handles on its mocks and the
// captured terminal output.
type testEnv struct {
	App          *App
	Runner       *MockScenarioRunner
	ReportWriter *MockReportWriter
	Out          *bytes.Buffer

	// FactoryErr, when set, makes the runner factory fail.
	FactoryErr error
	// CleanupCalled reports whether the factory's cleanup ran.
	CleanupCalled bool
}

// newTestEnv builds an App wired entirely to mocks: builtin catalogue,
// buffer-backed printer, default config, nop logger, mock runner factory, and
// an in-memory report writer.
func newTestEnv() *testEnv {
	env := &testEnv{
		Runner:       &MockScenarioRunner{},
		ReportWriter: &MockReportWriter{},
		Out:          &bytes.Buffer{},
	}

	env.App = &App{
		Catalogue: scenario.Default(),
		Printer:   report.NewPrinterWithWriter(env.Out),
		Config:    config.DefaultConfig(),
		Logger:    zap.NewNop(),
		NewRunner: func(_ context.Context, _ *config.Config, _ *zap.Logger) (ScenarioRunner, func() error, error) {
			if env.FactoryErr != nil {
				return nil, nil, env.FactoryErr
			}
			cleanup := func() error {
				env.CleanupCalled = true
				return nil
			}
			return env.Runner, cleanup, nil
		},
		NewReportWriter: func(string) ReportWriter {
			return env.ReportWriter
		},
	}
	return env
}

var errBrowserUnavailable = errors.New("launch chrome: no usable browser found")
