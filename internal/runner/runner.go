// Package runner executes scenarios against a live game instance.
//
// The runner owns sequencing only: it walks a scenario's steps strictly in
// declaration order, waits for each step's effect to complete before issuing
// the next, and stops a scenario at the first failing step (UI state is
// order-dependent, so later steps are meaningless after a failure). The
// actual browser work is delegated to a [StepAgent]; the agent package
// provides the production implementation.
//
// Key types:
//   - [Runner] - sequential scenario executor
//   - [StepAgent] - interface to the browser execution agent
//   - [ScenarioResult] / [RunReport] - execution outcomes
//   - [ProgressCallback] / [Event] - live progress reporting hooks
package runner

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ptype-e2e/internal/agent"
	"ptype-e2e/internal/scenario"
)

// StepAgent is the interface to the browser execution agent.
//
// Each method performs one step action and returns when its external effect
// has completed. The [agent.Browser] type implements this interface; tests
// use mocks.
type StepAgent interface {
	Navigate(ctx context.Context, url string) error
	Click(ctx context.Context, locator string) error
	TypeText(ctx context.Context, locator, text string, paced bool) error
	PressKey(ctx context.Context, key string) error
	Wait(ctx context.Context, seconds float64) error
	Screenshot(ctx context.Context, path string) error
	Snapshot(ctx context.Context) (string, error)
	Evaluate(ctx context.Context, expression string) (any, error)
	ConsoleMessages(ctx context.Context, errorsOnly bool) ([]agent.ConsoleMessage, error)
}

// ProgressCallback receives [Event] values as execution progresses. The
// callback is optional and is invoked synchronously from the run loop.
type ProgressCallback func(Event)

// EventKind tags a progress [Event].
type EventKind string

const (
	EventScenarioStarted EventKind = "scenario_started"
	EventStepStarted     EventKind = "step_started"
	EventStepPassed      EventKind = "step_passed"
	EventStepFailed      EventKind = "step_failed"
	EventScenarioPassed  EventKind = "scenario_passed"
	EventScenarioFailed  EventKind = "scenario_failed"
)

// Event is a single progress notification.
type Event struct {
	Kind     EventKind
	Scenario string

	// StepIndex is 1-based; StepCount is the scenario's total. Both are
	// zero for scenario-level events.
	StepIndex int
	StepCount int

	// Step is set for step-level events.
	Step *scenario.Step

	// Result is set for step_passed and step_failed.
	Result *StepResult
}

// Runner executes scenarios sequentially through a [StepAgent].
type Runner struct {
	agent    StepAgent
	log      *zap.Logger
	baseURL  string
	progress ProgressCallback
}

// New creates a Runner. The logger may be nil.
//
// baseURL, when non-empty, rebases navigate steps that target the canonical
// dev server address ([scenario.BaseURL]) onto another host, so the builtin
// catalogue can run against staging deployments unchanged.
func New(a StepAgent, baseURL string, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{agent: a, baseURL: baseURL, log: log}
}

// SetProgressCallback configures an optional progress callback, typically
// wired to the terminal printer.
func (r *Runner) SetProgressCallback(cb ProgressCallback) {
	r.progress = cb
}

func (r *Runner) emit(ev Event) {
	if r.progress != nil {
		r.progress(ev)
	}
}

// RunScenario executes one scenario's steps strictly in order.
//
// Execution is fail-fast: the first step error fails the scenario and the
// remaining steps are marked skipped. Context cancellation aborts the run
// with the current step recorded as failed.
func (r *Runner) RunScenario(ctx context.Context, sc scenario.Scenario) ScenarioResult {
	result := ScenarioResult{
		RunID:       uuid.NewString(),
		Name:        sc.Name,
		Description: sc.Description,
		StartTime:   time.Now().UTC(),
		Steps:       make([]StepResult, 0, len(sc.Steps)),
	}
	r.emit(Event{Kind: EventScenarioStarted, Scenario: sc.Name, StepCount: len(sc.Steps)})
	r.log.Info("scenario started", zap.String("scenario", sc.Name), zap.Int("steps", len(sc.Steps)))

	failedAt := -1
	for i, step := range sc.Steps {
		if failedAt >= 0 {
			result.Steps = append(result.Steps, StepResult{
				Index:       i + 1,
				Action:      step.Action,
				Description: step.Description,
				Status:      StepSkipped,
			})
			continue
		}

		r.emit(Event{Kind: EventStepStarted, Scenario: sc.Name, StepIndex: i + 1, StepCount: len(sc.Steps), Step: &step})

		start := time.Now()
		detail, err := r.executeStep(ctx, step)
		sr := StepResult{
			Index:       i + 1,
			Action:      step.Action,
			Description: step.Description,
			Detail:      detail,
			Status:      StepPassed,
			DurationMs:  time.Since(start).Milliseconds(),
		}
		if err != nil {
			sr.Status = StepFailed
			sr.Error = err.Error()
			failedAt = i
			r.log.Warn("step failed",
				zap.String("scenario", sc.Name),
				zap.Int("step", i+1),
				zap.String("action", string(step.Action)),
				zap.Error(err))
		}
		result.Steps = append(result.Steps, sr)

		kind := EventStepPassed
		if err != nil {
			kind = EventStepFailed
		}
		r.emit(Event{Kind: kind, Scenario: sc.Name, StepIndex: i + 1, StepCount: len(sc.Steps), Step: &step, Result: &sr})
	}

	result.DurationMs = time.Since(result.StartTime).Milliseconds()
	result.Passed = failedAt < 0
	if failedAt >= 0 {
		result.FailedStep = failedAt + 1
		r.emit(Event{Kind: EventScenarioFailed, Scenario: sc.Name})
	} else {
		r.emit(Event{Kind: EventScenarioPassed, Scenario: sc.Name})
	}
	r.log.Info("scenario finished",
		zap.String("scenario", sc.Name),
		zap.Bool("passed", result.Passed),
		zap.Int64("duration_ms", result.DurationMs))
	return result
}

// RunAll executes the given scenarios in order, continuing past scenario
// failures so one broken flow does not hide the state of the rest.
func (r *Runner) RunAll(ctx context.Context, scenarios []scenario.Scenario) RunReport {
	report := RunReport{
		RunID:     uuid.NewString(),
		StartTime: time.Now().UTC(),
		Scenarios: make([]ScenarioResult, 0, len(scenarios)),
	}
	for _, sc := range scenarios {
		res := r.RunScenario(ctx, sc)
		report.Scenarios = append(report.Scenarios, res)
		if res.Passed {
			report.Passed++
		} else {
			report.Failed++
		}
		if ctx.Err() != nil {
			break
		}
	}
	report.Total = len(report.Scenarios)
	report.DurationMs = time.Since(report.StartTime).Milliseconds()
	return report
}

// executeStep dispatches one step to the agent and returns an optional
// human-readable detail for the report.
func (r *Runner) executeStep(ctx context.Context, step scenario.Step) (string, error) {
	switch step.Action {
	case scenario.ActionNavigate:
		return "", r.agent.Navigate(ctx, r.rebase(step.URL))
	case scenario.ActionClick:
		return "", r.agent.Click(ctx, step.Locator)
	case scenario.ActionType:
		return "", r.agent.TypeText(ctx, step.Locator, step.Text, step.Paced)
	case scenario.ActionPressKey:
		return "", r.agent.PressKey(ctx, step.Key)
	case scenario.ActionWait:
		return "", r.agent.Wait(ctx, step.Seconds)
	case scenario.ActionScreenshot:
		return "", r.agent.Screenshot(ctx, step.Path)
	case scenario.ActionSnapshot:
		html, err := r.agent.Snapshot(ctx)
		if err != nil {
			return "", err
		}
		return formatSnapshotDetail(html), nil
	case scenario.ActionEvaluate:
		got, err := r.agent.Evaluate(ctx, step.Expression)
		if err != nil {
			return "", err
		}
		return checkExpectation(step.Expect, got)
	case scenario.ActionConsoleMessages:
		msgs, err := r.agent.ConsoleMessages(ctx, step.ErrorsOnly)
		if err != nil {
			return "", err
		}
		return checkConsole(msgs, step.ErrorsOnly)
	default:
		// Catalogue validation rejects unknown actions before execution.
		return "", &unknownActionError{action: step.Action}
	}
}

// rebase rewrites navigate URLs from the canonical dev address onto the
// configured base URL.
func (r *Runner) rebase(url string) string {
	if r.baseURL == "" || r.baseURL == scenario.BaseURL {
		return url
	}
	if strings.HasPrefix(url, scenario.BaseURL) {
		return r.baseURL + strings.TrimPrefix(url, scenario.BaseURL)
	}
	return url
}

type unknownActionError struct {
	action scenario.Action
}

func (e *unknownActionError) Error() string {
	return "unknown action " + string(e.action)
}
