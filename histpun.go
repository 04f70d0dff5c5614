// Package histpun converts fixed-width historical inmate-record files into
// decoded CSV datasets and builds the histpun aggregate tally reports.
//
// Example usage:
//
//	cfg := histpun.DefaultConfig()
//	cfg.InputDir = "/path/to/cards"
//	cfg.MapsDir = "/path/to/maps"
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//	if err := histpun.Run(context.Background(), cfg); err != nil {
//	    log.Fatal(err)
//	}
package histpun

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/nyrecords/histpun/internal/cliconfig"
	"github.com/nyrecords/histpun/internal/pipeline"
)

// Config holds the configuration for the histpun pipeline.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config = cliconfig.Config

// DefaultConfig returns a Config with sensible default values.
// At minimum, set InputDir (and MapsDir if the lookup maps live elsewhere)
// and call Validate before Run.
func DefaultConfig() Config {
	return cliconfig.DefaultConfig()
}

// Run executes the full pipeline once: parse, decode, and the three tally
// reports. It returns on the first stage failure.
func Run(ctx context.Context, cfg Config) error {
	r, err := pipeline.NewRunner(cfg, pipeline.Logger())
	if err != nil {
		return err
	}
	return r.Run(ctx)
}

// Watch runs the pipeline and reruns it whenever the inputs change, until
// the context is cancelled.
func Watch(ctx context.Context, cfg Config) error {
	r, err := pipeline.NewRunner(cfg, pipeline.Logger())
	if err != nil {
		return err
	}
	return r.Watch(ctx)
}

// Logger returns the package-level zerolog logger used by the pipeline.
func Logger() zerolog.Logger {
	return pipeline.Logger()
}
