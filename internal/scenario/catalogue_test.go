package scenario

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testScenario(name string) Scenario {
	return Scenario{
		Name:        name,
		Description: "test scenario",
		Steps: []Step{
			{Action: ActionNavigate, Description: "open", URL: "http://localhost:5173"},
			{Action: ActionWait, Description: "settle", Seconds: 1},
		},
	}
}

func TestNew_PreservesOrder(t *testing.T) {
	c, err := New(testScenario("c"), testScenario("a"), testScenario("b"))
	require.NoError(t, err)

	// Declaration order, not alphabetical.
	assert.Equal(t, []string{"c", "a", "b"}, c.Names())
}

func TestNew_DuplicateName(t *testing.T) {
	_, err := New(testScenario("dup"), testScenario("dup"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestNew_InvalidScenario(t *testing.T) {
	tests := []struct {
		name     string
		scenario Scenario
		wantErr  string
	}{
		{
			name:     "empty name",
			scenario: Scenario{Steps: []Step{{Action: ActionSnapshot}}},
			wantErr:  "no name",
		},
		{
			name:     "no steps",
			scenario: Scenario{Name: "empty"},
			wantErr:  "no steps",
		},
		{
			name: "unknown action",
			scenario: Scenario{Name: "bad", Steps: []Step{
				{Action: Action("hover")},
			}},
			wantErr: "unknown action",
		},
		{
			name: "navigate without url",
			scenario: Scenario{Name: "bad", Steps: []Step{
				{Action: ActionNavigate},
			}},
			wantErr: "requires a url",
		},
		{
			name: "evaluate without expectation",
			scenario: Scenario{Name: "bad", Steps: []Step{
				{Action: ActionEvaluate, Expression: "1 + 1"},
			}},
			wantErr: "requires an expectation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.scenario)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCatalogue_GetMatchesAll(t *testing.T) {
	c := Default()

	// Every name obtainable from All resolves through Get to a value
	// identical by content.
	for _, want := range c.All() {
		got, err := c.Get(want.Name)
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff(want, got), "Get(%q) differs from All()", want.Name)
	}
}

func TestCatalogue_GetNotFound(t *testing.T) {
	c := Default()

	got, err := c.Get("No Such Scenario")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrScenarioNotFound)
	assert.Contains(t, err.Error(), "No Such Scenario")

	// No partial or default scenario comes back.
	assert.Equal(t, Scenario{}, got)
}

func TestCatalogue_AllStable(t *testing.T) {
	c := Default()

	first := c.All()
	second := c.All()

	assert.Len(t, first, c.Len())
	assert.Empty(t, cmp.Diff(first, second), "All() must be stable across calls")

	seen := make(map[string]bool, len(first))
	for _, sc := range first {
		assert.False(t, seen[sc.Name], "duplicate scenario %q", sc.Name)
		seen[sc.Name] = true
	}
}

func TestCatalogue_AccessorsReturnCopies(t *testing.T) {
	c, err := New(testScenario("immutable"))
	require.NoError(t, err)

	got, err := c.Get("immutable")
	require.NoError(t, err)
	got.Steps[0].URL = "http://mutated.invalid"
	got.Steps[0].Description = "mutated"

	again, err := c.Get("immutable")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5173", again.Steps[0].URL)

	all := c.All()
	all[0].Steps[1].Seconds = 99
	assert.Equal(t, 1.0, c.All()[0].Steps[1].Seconds)
}

func TestCatalogue_ExpectCopied(t *testing.T) {
	sc := Scenario{
		Name: "expect-copy",
		Steps: []Step{{
			Action:     ActionEvaluate,
			Expression: "document.title",
			Expect:     Literal("P-Type"),
		}},
	}
	c, err := New(sc)
	require.NoError(t, err)

	got, err := c.Get("expect-copy")
	require.NoError(t, err)
	got.Steps[0].Expect.Value = "mutated"

	again, err := c.Get("expect-copy")
	require.NoError(t, err)
	assert.Equal(t, "P-Type", again.Steps[0].Expect.Value)
}

func TestCatalogue_LookupAfterConstructionErrors(t *testing.T) {
	// A failed New leaves no catalogue to read from.
	c, err := New(testScenario("ok"), Scenario{Name: "bad"})
	require.Error(t, err)
	assert.Nil(t, c)
	assert.False(t, errors.Is(err, ErrScenarioNotFound))
}
