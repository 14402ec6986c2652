package scenario

import (
	"errors"
	"fmt"
)

// Sentinel errors for catalogue construction and lookup.
var (
	// ErrScenarioNotFound indicates a lookup key does not match any
	// registered scenario name. This is the only failure mode of a
	// catalogue read: Get never returns a default or partial scenario.
	ErrScenarioNotFound = errors.New("scenario not found")

	// ErrDuplicateName indicates two scenarios in a catalogue share a name.
	// Scenario names are unique keys into the catalogue.
	ErrDuplicateName = errors.New("duplicate scenario name")
)

// Catalogue is a stable, enumerable registry of named scenarios.
//
// A catalogue is immutable after construction: reads are safe from any
// number of concurrent callers with no locking, and the accessors return
// deep copies so callers cannot mutate the registry through them.
// Enumeration order is declaration order, not alphabetical.
type Catalogue struct {
	ordered []Scenario
	byName  map[string]int
}

// New builds a catalogue from the given scenarios, preserving their order.
//
// Every scenario must validate and names must be unique; otherwise New
// returns an error and no catalogue.
func New(scenarios ...Scenario) (*Catalogue, error) {
	c := &Catalogue{
		ordered: make([]Scenario, 0, len(scenarios)),
		byName:  make(map[string]int, len(scenarios)),
	}
	for _, s := range scenarios {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if _, exists := c.byName[s.Name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, s.Name)
		}
		c.byName[s.Name] = len(c.ordered)
		c.ordered = append(c.ordered, s.Clone())
	}
	return c, nil
}

// mustNew builds a catalogue and panics on error. Reserved for the builtin
// catalogue, where a failure is a programming error.
func mustNew(scenarios ...Scenario) *Catalogue {
	c, err := New(scenarios...)
	if err != nil {
		panic(fmt.Sprintf("scenario: invalid builtin catalogue: %v", err))
	}
	return c
}

// Get returns the scenario registered under name.
//
// Returns an error wrapping [ErrScenarioNotFound] if the name is absent.
func (c *Catalogue) Get(name string) (Scenario, error) {
	idx, ok := c.byName[name]
	if !ok {
		return Scenario{}, fmt.Errorf("%w: %q", ErrScenarioNotFound, name)
	}
	return c.ordered[idx].Clone(), nil
}

// All returns every scenario in declaration order.
//
// The result is stable across repeated calls: same order, same length, no
// duplication. The returned slice is a deep copy.
func (c *Catalogue) All() []Scenario {
	out := make([]Scenario, len(c.ordered))
	for i, s := range c.ordered {
		out[i] = s.Clone()
	}
	return out
}

// Names returns the scenario names in declaration order.
func (c *Catalogue) Names() []string {
	names := make([]string, len(c.ordered))
	for i, s := range c.ordered {
		names[i] = s.Name
	}
	return names
}

// Len returns the number of registered scenarios.
func (c *Catalogue) Len() int {
	return len(c.ordered)
}
