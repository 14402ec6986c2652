package report

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"ptype-e2e/internal/runner"
)

// Writer persists run reports to a YAML results file.
type Writer struct {
	path string
}

// NewWriter creates a Writer targeting the given results file path.
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// Write serializes the report and writes it atomically (write to temp, then
// rename), creating parent directories as needed. Each run replaces the
// previous results file.
func (w *Writer) Write(report runner.RunReport) error {
	data, err := yaml.Marshal(&report)
	if err != nil {
		return fmt.Errorf("failed to marshal run report: %w", err)
	}

	if dir := filepath.Dir(w.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create results directory: %w", err)
		}
	}

	tmpPath := w.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write run report: %w", err)
	}
	if err := os.Rename(tmpPath, w.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write run report: %w", err)
	}
	return nil
}

// Read loads a previously written run report. Used by tests and tooling that
// inspects past runs.
func Read(path string) (runner.RunReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return runner.RunReport{}, fmt.Errorf("failed to read run report: %w", err)
	}
	var report runner.RunReport
	if err := yaml.Unmarshal(data, &report); err != nil {
		return runner.RunReport{}, fmt.Errorf("failed to parse run report: %w", err)
	}
	return report, nil
}
