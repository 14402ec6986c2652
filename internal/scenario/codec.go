package scenario

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// catalogueFile is the on-disk YAML shape of a catalogue.
type catalogueFile struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// MarshalCatalogue serializes a catalogue to YAML in declaration order.
func MarshalCatalogue(c *Catalogue) ([]byte, error) {
	data, err := yaml.Marshal(&catalogueFile{Scenarios: c.All()})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal catalogue: %w", err)
	}
	return data, nil
}

// ParseCatalogue deserializes a YAML catalogue and validates it: every
// scenario must validate and names must be unique.
func ParseCatalogue(data []byte) (*Catalogue, error) {
	var file catalogueFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalogue YAML: %w", err)
	}
	return New(file.Scenarios...)
}

// MarshalScenario serializes a single scenario to YAML.
func MarshalScenario(s Scenario) ([]byte, error) {
	data, err := yaml.Marshal(&s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal scenario %q: %w", s.Name, err)
	}
	return data, nil
}

// ParseScenario deserializes and validates a single YAML scenario.
func ParseScenario(data []byte) (Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Scenario{}, fmt.Errorf("failed to parse scenario YAML: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Scenario{}, err
	}
	return s, nil
}

// LoadCatalogue reads and validates a YAML catalogue file. This is how a
// custom catalogue replaces the builtin one (see the --catalogue CLI flag).
func LoadCatalogue(path string) (*Catalogue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalogue: %w", err)
	}
	c, err := ParseCatalogue(data)
	if err != nil {
		return nil, fmt.Errorf("catalogue %s: %w", path, err)
	}
	return c, nil
}

// WriteCatalogue writes a catalogue to a YAML file atomically
// (write to temp, then rename).
func WriteCatalogue(path string, c *Catalogue) error {
	data, err := MarshalCatalogue(c)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create catalogue directory: %w", err)
		}
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write catalogue: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write catalogue: %w", err)
	}
	return nil
}
