package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// ConfigPathEnv names the environment variable that pins an explicit config
// file path, bypassing discovery.
const ConfigPathEnv = "PTYPE_E2E_CONFIG_PATH"

// Loader loads configuration from files and environment variables.
//
// Create instances with [NewLoader], then call [Loader.Load] for discovery
// or [Loader.LoadFromFile] for an explicit path.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new [Loader] with defaults and environment binding
// configured.
func NewLoader() *Loader {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("base_url", defaults.BaseURL)
	v.SetDefault("browser.binary_path", defaults.Browser.BinaryPath)
	v.SetDefault("browser.headless", defaults.Browser.Headless)
	v.SetDefault("browser.viewport_width", defaults.Browser.ViewportWidth)
	v.SetDefault("browser.viewport_height", defaults.Browser.ViewportHeight)
	v.SetDefault("browser.navigation_timeout_ms", defaults.Browser.NavigationTimeoutMs)
	v.SetDefault("browser.type_delay_ms", defaults.Browser.TypeDelayMs)
	v.SetDefault("screenshots.dir", defaults.Screenshots.Dir)
	v.SetDefault("results.path", defaults.Results.Path)
	v.SetDefault("output.verbose", defaults.Output.Verbose)

	v.SetEnvPrefix("PTYPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Loader{v: v}
}

// Load loads configuration using the documented discovery order.
//
// If PTYPE_E2E_CONFIG_PATH is set, that file is loaded and must exist.
// Otherwise the loader searches the user config directory and the working
// directory; a missing config file is not an error, defaults and environment
// overrides still apply.
func (l *Loader) Load() (*Config, error) {
	if explicit := os.Getenv(ConfigPathEnv); explicit != "" {
		return l.LoadFromFile(explicit)
	}

	for _, path := range searchPaths() {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return l.LoadFromFile(path)
	}

	return l.unmarshal()
}

// LoadFromFile loads configuration from an explicit YAML file path.
// Environment overrides still take priority over file values.
func (l *Loader) LoadFromFile(path string) (*Config, error) {
	l.v.SetConfigFile(path)
	if err := l.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return l.unmarshal()
}

func (l *Loader) unmarshal() (*Config, error) {
	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// searchPaths returns config file candidates in priority order.
func searchPaths() []string {
	var paths []string
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "ptype-e2e", "config.yaml"))
	}
	paths = append(paths, "ptype-e2e.yaml")
	return paths
}
