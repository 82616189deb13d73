// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap/zapcore"

	"github.com/jeranaias/tikibar/internal/progress"
	"github.com/jeranaias/tikibar/internal/render"
	"github.com/jeranaias/tikibar/internal/styles"
	"github.com/jeranaias/tikibar/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete tikibar configuration.
type Config struct {
	Display  DisplayConfig  `toml:"display"`
	Progress ProgressConfig `toml:"progress"`
	Log      LogConfig      `toml:"log"`
	Metrics  MetricsConfig  `toml:"metrics"`
}

// DisplayConfig controls the render loop.
type DisplayConfig struct {
	// RefreshMS is the interval between frames in milliseconds
	RefreshMS int `toml:"refresh_ms"`
	// Output is "stderr" or "stdout"
	Output string `toml:"output"`
}

// ProgressConfig holds defaults for new indicators.
type ProgressConfig struct {
	Width   int    `toml:"width"`
	Bar     string `toml:"bar"`
	Spinner string `toml:"spinner"`
	// Template is a preset name or a raw template source
	Template  string `toml:"template"`
	ETAWindow int    `toml:"eta_window"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level       string `toml:"level"`
	Development bool   `toml:"development"`
	// File receives logs; empty disables logging while the display runs
	File string `toml:"file"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `toml:"enabled"`
	Addr    string `toml:"addr"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default refresh interval, in milliseconds (about 15 frames per second).
const DefaultRefreshMS = 1000 / 15

// Limits enforced by Validate.
const (
	MaxRefreshMS = 10000
	MaxWidth     = 1000
	MaxETAWindow = 1000
)

// Default returns a configuration with all defaults applied.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			RefreshMS: DefaultRefreshMS,
			Output:    "stderr",
		},
		Progress: ProgressConfig{
			Width:     styles.DefaultWidth,
			Bar:       styles.DefaultBar,
			Spinner:   styles.DefaultSpinner,
			Template:  styles.DefaultTemplate,
			ETAWindow: render.DefaultETACapacity,
		},
		Log: LogConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Addr: "127.0.0.1:9464",
		},
	}
}

// SetDefaults fills zero values with defaults.
func (c *Config) SetDefaults() {
	d := Default()
	if c.Display.RefreshMS == 0 {
		c.Display.RefreshMS = d.Display.RefreshMS
	}
	if c.Display.Output == "" {
		c.Display.Output = d.Display.Output
	}
	if c.Progress.Width == 0 {
		c.Progress.Width = d.Progress.Width
	}
	if c.Progress.Bar == "" {
		c.Progress.Bar = d.Progress.Bar
	}
	if c.Progress.Spinner == "" {
		c.Progress.Spinner = d.Progress.Spinner
	}
	if c.Progress.Template == "" {
		c.Progress.Template = d.Progress.Template
	}
	if c.Progress.ETAWindow == 0 {
		c.Progress.ETAWindow = d.Progress.ETAWindow
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Metrics.Addr == "" {
		c.Metrics.Addr = d.Metrics.Addr
	}
}

// =============================================================================
// DERIVED VALUES
// =============================================================================

// Refresh returns the refresh interval as a duration.
func (d DisplayConfig) Refresh() time.Duration {
	return time.Duration(d.RefreshMS) * time.Millisecond
}

// Writer returns the file the display draws to.
func (d DisplayConfig) Writer() *os.File {
	if strings.EqualFold(d.Output, "stdout") {
		return os.Stdout
	}
	return os.Stderr
}

// Options converts the section into progress options. Template names a
// preset when one exists and is compiled as a raw template otherwise.
func (p ProgressConfig) Options() []progress.Option {
	opts := []progress.Option{
		progress.WithWidth(p.Width),
		progress.WithBarStyle(p.Bar),
		progress.WithSpinnerStyle(p.Spinner),
		progress.WithETAWindow(p.ETAWindow),
	}
	if _, err := styles.TemplateSource(p.Template); err == nil {
		opts = append(opts, progress.WithTemplateStyle(p.Template))
	} else {
		opts = append(opts, progress.WithTemplate(p.Template))
	}
	return opts
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the tikibar configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".tikibar"), nil
}

// DefaultPath returns the path to the default TOML config file.
func DefaultPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// =============================================================================
// LOAD AND SAVE
// =============================================================================

// Load reads the TOML file at path, or DefaultPath when path is empty.
// A missing file yields the defaults. Environment overrides are applied
// last, then the result is validated.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := Default()
	if _, err := os.Stat(path); err == nil {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes the TOML file at path over cfg. Unknown keys are an
// error.
func LoadTOML(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// Encode writes cfg to w as a commented TOML document.
func Encode(w io.Writer, cfg *Config) error {
	if _, err := io.WriteString(w, "# tikibar configuration file\n\n"); err != nil {
		return err
	}
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// Save writes cfg as TOML to path.
func Save(cfg *Config, path string) error {
	var buf bytes.Buffer
	if err := Encode(&buf, cfg); err != nil {
		return err
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors as
// ValidateErrors.
func (c *Config) Validate() error {
	var errs ValidateErrors
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if c.Display.RefreshMS < 1 || c.Display.RefreshMS > MaxRefreshMS {
		add("display.refresh_ms", "must be between 1 and %d, got %d", MaxRefreshMS, c.Display.RefreshMS)
	}
	switch strings.ToLower(c.Display.Output) {
	case "stderr", "stdout":
	default:
		add("display.output", "invalid output '%s', must be one of: stderr, stdout", c.Display.Output)
	}

	if c.Progress.Width < 0 || c.Progress.Width > MaxWidth {
		add("progress.width", "must be between 0 and %d, got %d", MaxWidth, c.Progress.Width)
	}
	if _, err := styles.Bar(c.Progress.Bar); err != nil {
		add("progress.bar", "unknown bar '%s', must be one of: %s", c.Progress.Bar, strings.Join(styles.BarNames(), ", "))
	}
	if _, err := styles.Spinner(c.Progress.Spinner); err != nil {
		add("progress.spinner", "unknown spinner '%s', must be one of: %s", c.Progress.Spinner, strings.Join(styles.SpinnerNames(), ", "))
	}
	if _, err := styles.TemplateSource(c.Progress.Template); err != nil {
		if _, err := render.CompileTemplate(c.Progress.Template); err != nil {
			add("progress.template", "not a preset and not a valid template: %v", err)
		}
	}
	if c.Progress.ETAWindow < 1 || c.Progress.ETAWindow > MaxETAWindow {
		add("progress.eta_window", "must be between 1 and %d, got %d", MaxETAWindow, c.Progress.ETAWindow)
	}

	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		add("log.level", "invalid level '%s'", c.Log.Level)
	}

	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		add("metrics.addr", "required when metrics are enabled")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - TIKIBAR_REFRESH_MS: overrides display.refresh_ms
//   - TIKIBAR_ETA_WINDOW: overrides progress.eta_window
//   - TIKIBAR_WIDTH: overrides progress.width
//   - TIKIBAR_BAR: overrides progress.bar
//   - TIKIBAR_SPINNER: overrides progress.spinner
//   - TIKIBAR_TEMPLATE: overrides progress.template
//   - TIKIBAR_LOG_LEVEL: overrides log.level
//   - TIKIBAR_LOG_FILE: overrides log.file
//
// Numeric values that fail to parse are ignored.
func (c *Config) ApplyEnvOverrides() {
	setInt := func(name string, dst *int) {
		if v := os.Getenv(name); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}
	setString := func(name string, dst *string) {
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}

	setInt("TIKIBAR_REFRESH_MS", &c.Display.RefreshMS)
	setInt("TIKIBAR_ETA_WINDOW", &c.Progress.ETAWindow)
	setInt("TIKIBAR_WIDTH", &c.Progress.Width)
	setString("TIKIBAR_BAR", &c.Progress.Bar)
	setString("TIKIBAR_SPINNER", &c.Progress.Spinner)
	setString("TIKIBAR_TEMPLATE", &c.Progress.Template)
	setString("TIKIBAR_LOG_LEVEL", &c.Log.Level)
	setString("TIKIBAR_LOG_FILE", &c.Log.File)
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance, loading it from
// DefaultPath on first access. A load failure falls back to defaults.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load("")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
			cfg = Default()
		}
		globalConfigMu.Lock()
		if globalConfig == nil {
			globalConfig = cfg
		}
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}
