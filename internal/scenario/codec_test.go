package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarioRoundTrip(t *testing.T) {
	// Serializing and reparsing must preserve every field, for every
	// scenario in the builtin catalogue.
	for _, sc := range Default().All() {
		sc := sc
		t.Run(sc.Name, func(t *testing.T) {
			data, err := MarshalScenario(sc)
			require.NoError(t, err)

			got, err := ParseScenario(data)
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(sc, got))
		})
	}
}

func TestCatalogueRoundTrip(t *testing.T) {
	c := Default()

	data, err := MarshalCatalogue(c)
	require.NoError(t, err)

	got, err := ParseCatalogue(data)
	require.NoError(t, err)

	assert.Equal(t, c.Names(), got.Names())
	assert.Empty(t, cmp.Diff(c.All(), got.All()))
}

func TestParseCatalogue_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "not yaml",
			yaml:    "{scenarios: [",
			wantErr: "failed to parse",
		},
		{
			name: "unknown action",
			yaml: `
scenarios:
  - name: bad
    steps:
      - action: hover
        locator: "#x"
`,
			wantErr: "unknown action",
		},
		{
			name: "duplicate names",
			yaml: `
scenarios:
  - name: twice
    steps:
      - action: snapshot
  - name: twice
    steps:
      - action: snapshot
`,
			wantErr: "duplicate scenario name",
		},
		{
			name: "wait without duration",
			yaml: `
scenarios:
  - name: bad
    steps:
      - action: wait
`,
			wantErr: "positive duration",
		},
		{
			name: "predicate with unknown operator",
			yaml: `
scenarios:
  - name: bad
    steps:
      - action: evaluate
        expression: "1"
        expect:
          kind: predicate
          op: "~="
          threshold: 1
`,
			wantErr: "unknown comparison operator",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalogue([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseScenario(t *testing.T) {
	data := []byte(`
name: smoke
description: quick check
steps:
  - action: navigate
    url: http://localhost:5173
  - action: type
    locator: '[data-testid="typing-input"]'
    text: nova
    paced: true
  - action: evaluate
    expression: document.title
    expect:
      kind: literal
      value: P-Type
`)
	sc, err := ParseScenario(data)
	require.NoError(t, err)

	assert.Equal(t, "smoke", sc.Name)
	require.Len(t, sc.Steps, 3)
	assert.True(t, sc.Steps[1].Paced)
	require.NotNil(t, sc.Steps[2].Expect)
	assert.Equal(t, ExpectLiteral, sc.Steps[2].Expect.Kind)
	assert.Equal(t, "P-Type", sc.Steps[2].Expect.Value)
}

func TestLoadWriteCatalogue(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "catalogue.yaml")

	require.NoError(t, WriteCatalogue(path, Default()))

	// Atomic write leaves no temp file behind.
	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	got, err := LoadCatalogue(path)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(Default().All(), got.All()))
}

func TestLoadCatalogue_MissingFile(t *testing.T) {
	_, err := LoadCatalogue(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read catalogue")
}
