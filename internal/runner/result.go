package runner

import (
	"time"

	"ptype-e2e/internal/scenario"
)

// StepStatus is the outcome of a single step.
type StepStatus string

const (
	StepPassed  StepStatus = "passed"
	StepFailed  StepStatus = "failed"
	StepSkipped StepStatus = "skipped"
)

// StepResult is the outcome of one executed (or skipped) step.
type StepResult struct {
	// Index is the 1-based position of the step within its scenario.
	Index int `yaml:"index" json:"index"`

	// Action and Description identify the step.
	Action      scenario.Action `yaml:"action" json:"action"`
	Description string          `yaml:"description,omitempty" json:"description,omitempty"`

	// Status is passed, failed, or skipped. Steps after a failure are
	// skipped, never executed.
	Status StepStatus `yaml:"status" json:"status"`

	// Detail carries step-specific observations (captured values, message
	// counts). Empty for most action kinds.
	Detail string `yaml:"detail,omitempty" json:"detail,omitempty"`

	// Error is the failure message for failed steps.
	Error string `yaml:"error,omitempty" json:"error,omitempty"`

	// DurationMs is the wall-clock step duration.
	DurationMs int64 `yaml:"duration_ms" json:"duration_ms"`
}

// ScenarioResult is the outcome of one scenario execution.
type ScenarioResult struct {
	// RunID uniquely identifies this execution.
	RunID string `yaml:"run_id" json:"run_id"`

	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	StartTime  time.Time `yaml:"start_time" json:"start_time"`
	DurationMs int64     `yaml:"duration_ms" json:"duration_ms"`

	// Passed is true when every step passed.
	Passed bool `yaml:"passed" json:"passed"`

	// FailedStep is the 1-based index of the failing step, 0 when passed.
	FailedStep int `yaml:"failed_step,omitempty" json:"failed_step,omitempty"`

	Steps []StepResult `yaml:"steps" json:"steps"`
}

// RunReport aggregates the results of a multi-scenario run.
type RunReport struct {
	// RunID uniquely identifies the whole run.
	RunID string `yaml:"run_id" json:"run_id"`

	StartTime  time.Time `yaml:"start_time" json:"start_time"`
	DurationMs int64     `yaml:"duration_ms" json:"duration_ms"`

	Total  int `yaml:"total" json:"total"`
	Passed int `yaml:"passed" json:"passed"`
	Failed int `yaml:"failed" json:"failed"`

	Scenarios []ScenarioResult `yaml:"scenarios" json:"scenarios"`
}

// AllPassed reports whether every scenario in the run passed.
func (r RunReport) AllPassed() bool {
	return r.Failed == 0 && r.Total > 0
}
