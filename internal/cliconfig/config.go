// Package cliconfig holds the histpun CLI configuration and its three
// sources: config file, environment, and flags. Flags win over environment,
// environment wins over file; precedence is enforced with the changed-flags
// map the command builds from cobra.
package cliconfig

import (
	"fmt"
	"path/filepath"
	"time"
)

// Config holds CLI configuration for histpun.
type Config struct {
	InputDir   string
	MapsDir    string
	OutDir     string
	LayoutPath string

	LogLevel string

	Watch    bool
	Debounce time.Duration

	// Derived during Validate.
	RawDir     string
	DecodedDir string
}

// DefaultConfig returns a Config with default values: everything in the
// current directory, the layout built in.
func DefaultConfig() Config {
	return Config{
		InputDir: ".",
		OutDir:   ".",
		LogLevel: "info",
		Debounce: 500 * time.Millisecond,
	}
}

// Validate checks the configuration and sets derived defaults. The maps
// directory falls back to the input directory, matching the original
// dataset layout where the codebook maps sit next to the card files.
func (c *Config) Validate() error {
	if c.InputDir == "" {
		return fmt.Errorf("input-dir is required")
	}
	if c.MapsDir == "" {
		c.MapsDir = c.InputDir
	}
	if c.OutDir == "" {
		c.OutDir = "."
	}
	if c.Debounce <= 0 {
		return fmt.Errorf("debounce must be positive")
	}

	c.RawDir = filepath.Join(c.OutDir, "csv_raw_formatted")
	c.DecodedDir = filepath.Join(c.OutDir, "csv_decoded")
	return nil
}

// GeneralPath returns the general histpun report path.
func (c *Config) GeneralPath() string { return filepath.Join(c.OutDir, "histpun_output.csv") }

// InstCourtPath returns the institution-by-court report path.
func (c *Config) InstCourtPath() string { return filepath.Join(c.OutDir, "histpun_inst_court.csv") }

// InstCountyPath returns the institution-by-county report path.
func (c *Config) InstCountyPath() string { return filepath.Join(c.OutDir, "histpun_inst_county.csv") }

// configSetter helps apply configuration values while respecting flag
// precedence. It only applies values if the corresponding flag hasn't been
// explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not
// changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false. Used for environment
// variables.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
