package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ptype-e2e/internal/scenario"
)

func TestListCommand(t *testing.T) {
	env := newTestEnv()

	result := Run(env.App, []string{"list"})

	assert.Equal(t, 0, result.ExitCode)
	out := env.Out.String()
	assert.Contains(t, out, "Scenarios (8)")
	assert.Contains(t, out, "Main Menu Navigation")
	assert.Contains(t, out, "Console Health")
}

func TestShowCommand(t *testing.T) {
	env := newTestEnv()

	result := Run(env.App, []string{"show", "Main Menu Navigation"})

	assert.Equal(t, 0, result.ExitCode)
	assert.Contains(t, env.Out.String(), "navigate")
	assert.Contains(t, env.Out.String(), "http://localhost:5173")
}

func TestShowCommand_UnknownScenario(t *testing.T) {
	env := newTestEnv()

	result := Run(env.App, []string{"show", "No Such Scenario"})

	assert.Equal(t, 1, result.ExitCode)
	code, ok := IsExitError(result.Err)
	require.True(t, ok)
	assert.Equal(t, 1, code)
}

func TestRunCommand_SingleScenario(t *testing.T) {
	env := newTestEnv()

	result := Run(env.App, []string{"run", "Main Menu Navigation"})

	assert.Equal(t, 0, result.ExitCode)
	require.Len(t, env.Runner.RanScenarios, 1)
	assert.Equal(t, "Main Menu Navigation", env.Runner.RanScenarios[0].Name)
	assert.True(t, env.CleanupCalled)
	require.Len(t, env.ReportWriter.Written, 1)
	assert.Equal(t, 1, env.ReportWriter.Written[0].Total)
}

func TestRunCommand_All(t *testing.T) {
	env := newTestEnv()

	result := Run(env.App, []string{"run", "--all"})

	assert.Equal(t, 0, result.ExitCode)
	assert.Len(t, env.Runner.RanScenarios, 8)
	// Declaration order is preserved end to end.
	names := make([]string, len(env.Runner.RanScenarios))
	for i, sc := range env.Runner.RanScenarios {
		names[i] = sc.Name
	}
	assert.Equal(t, scenario.Default().Names(), names)
	assert.Contains(t, env.Out.String(), "8 passed, 0 failed of 8")
}

func TestRunCommand_FailureExitsNonZero(t *testing.T) {
	env := newTestEnv()
	env.Runner.FailScenario = "Mode Selection"

	result := Run(env.App, []string{"run", "--all"})

	assert.Equal(t, 1, result.ExitCode)
	// The report is still written and printed on failure.
	require.Len(t, env.ReportWriter.Written, 1)
	assert.Equal(t, 1, env.ReportWriter.Written[0].Failed)
	assert.Contains(t, env.Out.String(), "7 passed, 1 failed of 8")
}

func TestRunCommand_UnknownScenarioFailsBeforeBrowser(t *testing.T) {
	env := newTestEnv()

	result := Run(env.App, []string{"run", "No Such Scenario"})

	assert.Equal(t, 1, result.ExitCode)
	assert.Empty(t, env.Runner.RanScenarios)
	assert.False(t, env.CleanupCalled)
}

func TestRunCommand_RequiresSelection(t *testing.T) {
	env := newTestEnv()

	// Neither names nor --all.
	result := Run(env.App, []string{"run"})
	assert.Equal(t, 1, result.ExitCode)

	// Both names and --all.
	env = newTestEnv()
	result = Run(env.App, []string{"run", "--all", "Mode Selection"})
	assert.Equal(t, 1, result.ExitCode)
	assert.Empty(t, env.Runner.RanScenarios)
}

func TestRunCommand_FactoryFailure(t *testing.T) {
	env := newTestEnv()
	env.FactoryErr = errBrowserUnavailable

	result := Run(env.App, []string{"run", "--all"})

	assert.Equal(t, 1, result.ExitCode)
	assert.Empty(t, env.ReportWriter.Written)
}

func TestRunCommand_FlagOverrides(t *testing.T) {
	env := newTestEnv()

	result := Run(env.App, []string{
		"run", "--all",
		"--base-url", "http://localhost:4173",
		"--headless=false",
		"--results", "custom-results.yaml",
		"--screenshots", "shots",
	})

	assert.Equal(t, 0, result.ExitCode)
	assert.Equal(t, "http://localhost:4173", env.App.Config.BaseURL)
	assert.False(t, env.App.Config.Browser.Headless)
	assert.Equal(t, "custom-results.yaml", env.App.Config.Results.Path)
	assert.Equal(t, "shots", env.App.Config.Screenshots.Dir)
}

func TestExportCommand_Stdout(t *testing.T) {
	env := newTestEnv()

	cmd := NewRootCommand(env.App)
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"export"})
	require.NoError(t, cmd.Execute())

	parsed, err := scenario.ParseCatalogue(stdout.Bytes())
	require.NoError(t, err)
	assert.Equal(t, scenario.Default().Names(), parsed.Names())
}

func TestExportCommand_File(t *testing.T) {
	env := newTestEnv()
	path := filepath.Join(t.TempDir(), "scenarios.yaml")

	result := Run(env.App, []string{"export", "-o", path})
	require.Equal(t, 0, result.ExitCode)

	loaded, err := scenario.LoadCatalogue(path)
	require.NoError(t, err)
	assert.Equal(t, scenario.Default().Len(), loaded.Len())
}

func TestCatalogueFlag_LoadsFileCatalogue(t *testing.T) {
	env := newTestEnv()

	// Export the builtin catalogue, then run against the exported file.
	path := filepath.Join(t.TempDir(), "scenarios.yaml")
	require.NoError(t, scenario.WriteCatalogue(path, scenario.Default()))

	result := Run(env.App, []string{"--catalogue", path, "list"})
	assert.Equal(t, 0, result.ExitCode)
	assert.Contains(t, env.Out.String(), "Scenarios (8)")
}

func TestCatalogueFlag_MissingFile(t *testing.T) {
	env := newTestEnv()

	result := Run(env.App, []string{"--catalogue", filepath.Join(t.TempDir(), "absent.yaml"), "list"})
	assert.Equal(t, 1, result.ExitCode)
	require.Error(t, result.Err)
}

func TestConfigFlag_LoadsExplicitFile(t *testing.T) {
	env := newTestEnv()
	env.App.Config = nil // let the root command load it

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base_url: http://flagged:5173\n"), 0o644))

	result := Run(env.App, []string{"--config", path, "list"})
	require.Equal(t, 0, result.ExitCode)
	require.NotNil(t, env.App.Config)
	assert.Equal(t, "http://flagged:5173", env.App.Config.BaseURL)
}
