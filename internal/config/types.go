// Package config provides configuration loading and management for ptype-e2e.
//
// Configuration is loaded using Viper, supporting YAML config files and
// environment variable overrides. The package provides sensible defaults that
// run the builtin catalogue against a local Vite dev server out of the box.
//
// Key types:
//   - [Config] is the root configuration container with all settings
//   - [Loader] handles Viper-based configuration loading
//   - [BrowserConfig] controls how the browser execution agent is launched
//
// Configuration priority (highest to lowest):
//  1. Environment variables (PTYPE_ prefix)
//  2. Config file specified by PTYPE_E2E_CONFIG_PATH
//  3. User config directory (~/.config/ptype-e2e/config.yaml and platform
//     equivalents)
//  4. ./ptype-e2e.yaml in the working directory
//  5. [DefaultConfig] defaults
package config

import "time"

// Config represents the root configuration structure.
//
// This is the main configuration container loaded by [Loader] and used
// throughout the application. Use [DefaultConfig] to get sensible defaults.
type Config struct {
	// BaseURL is the address of the running game the scenarios target.
	// Navigate steps carrying the canonical dev URL are rebased onto this
	// address at run time.
	BaseURL string `mapstructure:"base_url"`

	// Browser controls how the execution agent launches Chrome.
	Browser BrowserConfig `mapstructure:"browser"`

	// Screenshots controls where screenshot steps write their files.
	Screenshots ScreenshotConfig `mapstructure:"screenshots"`

	// Results controls where run reports are persisted.
	Results ResultsConfig `mapstructure:"results"`

	// Output contains terminal output settings.
	Output OutputConfig `mapstructure:"output"`
}

// BrowserConfig contains browser launch and interaction settings.
type BrowserConfig struct {
	// BinaryPath is the Chrome/Chromium binary to launch. Empty means the
	// rod launcher picks one (downloading a managed build if necessary).
	// Can be overridden with the PTYPE_BROWSER_BINARY_PATH environment
	// variable.
	BinaryPath string `mapstructure:"binary_path"`

	// Headless controls whether the browser runs without a window.
	// Default: true.
	Headless bool `mapstructure:"headless"`

	// ViewportWidth and ViewportHeight set the emulated viewport.
	// Defaults: 1280x800.
	ViewportWidth  int `mapstructure:"viewport_width"`
	ViewportHeight int `mapstructure:"viewport_height"`

	// NavigationTimeoutMs bounds navigate steps. Default: 30000.
	NavigationTimeoutMs int `mapstructure:"navigation_timeout_ms"`

	// TypeDelayMs is the per-character delay for paced type steps.
	// Default: 75.
	TypeDelayMs int `mapstructure:"type_delay_ms"`
}

// NavigationTimeout returns the navigation timeout as a duration.
func (b BrowserConfig) NavigationTimeout() time.Duration {
	if b.NavigationTimeoutMs <= 0 {
		return 30 * time.Second
	}
	return time.Duration(b.NavigationTimeoutMs) * time.Millisecond
}

// TypeDelay returns the paced-typing delay as a duration.
func (b BrowserConfig) TypeDelay() time.Duration {
	if b.TypeDelayMs <= 0 {
		return 75 * time.Millisecond
	}
	return time.Duration(b.TypeDelayMs) * time.Millisecond
}

// ScreenshotConfig controls screenshot file placement.
type ScreenshotConfig struct {
	// Dir is prepended to relative screenshot step paths.
	// Default: ".ptype-e2e/screenshots".
	Dir string `mapstructure:"dir"`
}

// ResultsConfig controls run report persistence.
type ResultsConfig struct {
	// Path is the YAML file run reports are written to.
	// Default: ".ptype-e2e/results.yaml".
	Path string `mapstructure:"path"`
}

// OutputConfig contains terminal output settings.
type OutputConfig struct {
	// Verbose enables debug-level logging.
	Verbose bool `mapstructure:"verbose"`
}

// DefaultConfig returns a new [Config] with sensible defaults.
//
// The defaults target the P-Type Vite dev server on localhost and run the
// browser headless, so `ptype-e2e run --all` works without any configuration
// file when the game is up.
func DefaultConfig() *Config {
	return &Config{
		BaseURL: "http://localhost:5173",
		Browser: BrowserConfig{
			Headless:            true,
			ViewportWidth:       1280,
			ViewportHeight:      800,
			NavigationTimeoutMs: 30000,
			TypeDelayMs:         75,
		},
		Screenshots: ScreenshotConfig{
			Dir: ".ptype-e2e/screenshots",
		},
		Results: ResultsConfig{
			Path: ".ptype-e2e/results.yaml",
		},
	}
}
