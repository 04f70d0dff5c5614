package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables
// (HISTPUN_*). It respects flags that have been explicitly set (changed
// map). Returns an error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("input-dir", os.Getenv("HISTPUN_INPUT_DIR"), &cfg.InputDir)
	s.setString("maps-dir", os.Getenv("HISTPUN_MAPS_DIR"), &cfg.MapsDir)
	s.setString("out-dir", os.Getenv("HISTPUN_OUT_DIR"), &cfg.OutDir)
	s.setString("layout", os.Getenv("HISTPUN_LAYOUT"), &cfg.LayoutPath)
	s.setString("log-level", os.Getenv("HISTPUN_LOG_LEVEL"), &cfg.LogLevel)

	s.setBoolFromString("watch", os.Getenv("HISTPUN_WATCH"), &cfg.Watch)

	return s.setDuration("debounce", os.Getenv("HISTPUN_DEBOUNCE"), &cfg.Debounce)
}
