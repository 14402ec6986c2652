// Package scenario defines the end-to-end test scenario catalogue for P-Type.
//
// A [Scenario] is a named, ordered sequence of declarative [Step] values
// describing one complete interaction with the running game. The package
// holds the data only: no navigation, DOM interaction, or network calls
// happen here. All side effects described by the steps are performed by an
// execution agent that interprets the catalogue (see the agent and runner
// packages).
//
// Key types:
//   - [Scenario] - a named, ordered step sequence
//   - [Step] - a single declarative action/assertion, tagged by [Action]
//   - [Expect] - the expected outcome of an evaluate step
//   - [Catalogue] - the immutable, enumerable scenario registry
//
// The builtin catalogue is available via [Default]. Custom catalogues can be
// loaded from YAML via [LoadCatalogue].
package scenario

import "fmt"

// Action identifies the kind of a [Step].
//
// The action values match the command surface of the browser execution agent
// (navigate-to-URL, click-by-locator, type-text, press-key, wait,
// capture-screenshot, take-DOM-snapshot, evaluate-expression, read-console).
type Action string

const (
	// ActionNavigate loads a URL in the page.
	ActionNavigate Action = "navigate"
	// ActionClick clicks the element identified by a locator.
	ActionClick Action = "click"
	// ActionType enters text into the element identified by a locator.
	ActionType Action = "type"
	// ActionPressKey sends a single key press to the page.
	ActionPressKey Action = "press_key"
	// ActionWait pauses execution for a number of seconds.
	ActionWait Action = "wait"
	// ActionScreenshot captures the page to an image file.
	ActionScreenshot Action = "screenshot"
	// ActionSnapshot captures the serialized DOM of the page.
	ActionSnapshot Action = "snapshot"
	// ActionEvaluate runs a JavaScript expression in the page context and
	// compares the result against the step's expectation.
	ActionEvaluate Action = "evaluate"
	// ActionConsoleMessages reads collected browser console messages.
	ActionConsoleMessages Action = "console_messages"
)

// knownActions lists every valid action kind, used for validation.
var knownActions = map[Action]bool{
	ActionNavigate:        true,
	ActionClick:           true,
	ActionType:            true,
	ActionPressKey:        true,
	ActionWait:            true,
	ActionScreenshot:      true,
	ActionSnapshot:        true,
	ActionEvaluate:        true,
	ActionConsoleMessages: true,
}

// IsValid reports whether the action is a known kind.
func (a Action) IsValid() bool {
	return knownActions[a]
}

// Step is a single declarative action within a scenario.
//
// Step is a tagged record: Action selects the variant and determines which of
// the remaining fields are meaningful. Unused fields are zero and omitted
// from serialized form. Locators are opaque strings (typically CSS attribute
// selectors) passed through to the execution agent unmodified.
type Step struct {
	// Action is the step kind. Required.
	Action Action `yaml:"action" json:"action"`

	// Description is a human-readable summary of the step's intent.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// URL is the navigation target. Used by navigate.
	URL string `yaml:"url,omitempty" json:"url,omitempty"`

	// Locator identifies the target element. Used by click and type.
	Locator string `yaml:"locator,omitempty" json:"locator,omitempty"`

	// Text is the literal text to enter. Used by type.
	Text string `yaml:"text,omitempty" json:"text,omitempty"`

	// Paced requests character-by-character input pacing. Used by type.
	// The per-character delay is execution-agent configuration, not
	// scenario data.
	Paced bool `yaml:"paced,omitempty" json:"paced,omitempty"`

	// Key is the key identifier (e.g. "Escape", "Enter"). Used by press_key.
	Key string `yaml:"key,omitempty" json:"key,omitempty"`

	// Seconds is the pause duration. Used by wait.
	Seconds float64 `yaml:"seconds,omitempty" json:"seconds,omitempty"`

	// Path is the destination file path. Used by screenshot. The runner is
	// responsible for actual file creation.
	Path string `yaml:"path,omitempty" json:"path,omitempty"`

	// Expression is a JavaScript expression evaluated in the page context.
	// Used by evaluate.
	Expression string `yaml:"expression,omitempty" json:"expression,omitempty"`

	// Expect is the expected outcome of the expression. Used by evaluate.
	Expect *Expect `yaml:"expect,omitempty" json:"expect,omitempty"`

	// ErrorsOnly restricts console reading to error messages. Used by
	// console_messages. When true, any collected error message fails the
	// step; when false, messages are recorded without a pass criterion.
	ErrorsOnly bool `yaml:"errors_only,omitempty" json:"errors_only,omitempty"`
}

// Validate checks that the step has a known action and the fields its
// variant requires.
func (s Step) Validate() error {
	if !s.Action.IsValid() {
		return fmt.Errorf("unknown action %q", s.Action)
	}
	switch s.Action {
	case ActionNavigate:
		if s.URL == "" {
			return fmt.Errorf("navigate step requires a url")
		}
	case ActionClick:
		if s.Locator == "" {
			return fmt.Errorf("click step requires a locator")
		}
	case ActionType:
		if s.Locator == "" {
			return fmt.Errorf("type step requires a locator")
		}
		if s.Text == "" {
			return fmt.Errorf("type step requires text")
		}
	case ActionPressKey:
		if s.Key == "" {
			return fmt.Errorf("press_key step requires a key")
		}
	case ActionWait:
		if s.Seconds <= 0 {
			return fmt.Errorf("wait step requires a positive duration")
		}
	case ActionScreenshot:
		if s.Path == "" {
			return fmt.Errorf("screenshot step requires a path")
		}
	case ActionEvaluate:
		if s.Expression == "" {
			return fmt.Errorf("evaluate step requires an expression")
		}
		if s.Expect == nil {
			return fmt.Errorf("evaluate step requires an expectation")
		}
		if err := s.Expect.Validate(); err != nil {
			return fmt.Errorf("evaluate expectation: %w", err)
		}
	}
	return nil
}

// clone returns a deep copy of the step.
func (s Step) clone() Step {
	out := s
	if s.Expect != nil {
		e := *s.Expect
		out.Expect = &e
	}
	return out
}

// Scenario is a named, ordered sequence of steps describing one end-to-end
// interaction with the application under test.
//
// Step order is significant and must be preserved: steps are applied
// sequentially against stateful application UI. Every scenario is
// self-contained; there is no shared setup state between scenarios.
type Scenario struct {
	// Name uniquely identifies the scenario within a catalogue.
	Name string `yaml:"name" json:"name"`

	// Description summarizes what the scenario verifies.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Steps is the ordered action sequence. Order equals declaration order.
	Steps []Step `yaml:"steps" json:"steps"`
}

// Validate checks the scenario name and every step.
func (s Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("scenario has no name")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("scenario %q has no steps", s.Name)
	}
	for i, step := range s.Steps {
		if err := step.Validate(); err != nil {
			return fmt.Errorf("scenario %q step %d: %w", s.Name, i+1, err)
		}
	}
	return nil
}

// Clone returns a deep copy of the scenario. Callers receive copies from the
// catalogue accessors so the registry itself stays immutable.
func (s Scenario) Clone() Scenario {
	out := s
	out.Steps = make([]Step, len(s.Steps))
	for i, step := range s.Steps {
		out.Steps[i] = step.clone()
	}
	return out
}
