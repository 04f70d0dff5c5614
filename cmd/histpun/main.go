package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/nyrecords/histpun/internal/cliconfig"
	"github.com/nyrecords/histpun/internal/pipeline"
)

const helpDescription = `
Convert fixed-width historical inmate-record files into decoded CSV
datasets and build the histpun aggregate tally reports.

Highlights:
  - Slices 80-column card images by the codebook layout, preserving raw
    codes byte for byte and normalizing dates to ISO form.
  - Decodes every coded field against the JSON lookup maps and the built-in
    codebook tables; unresolved codes are flagged and counted.
  - Emits the general histpun tally plus institution-by-court and
    institution-by-county cross tabs, deterministically ordered.
  - Configure via file, environment (HISTPUN_*), or flags.
`

var exampleUsage = strings.TrimSpace(`
  histpun --input-dir ./cards --maps-dir ./maps --out-dir ./out
  histpun parse --input-dir ./cards --out-dir ./out
  histpun --watch --input-dir ./cards
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	log := pipeline.Logger()

	newRunner := func() (*pipeline.Runner, error) {
		return pipeline.NewRunner(cfg, pipeline.Logger())
	}

	root := &cobra.Command{
		Use:     "histpun",
		Short:   "Decode fixed-width inmate records and build histpun tally reports",
		Long:    strings.TrimSpace(helpDescription),
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load config file first (default $HOME/.histpun/config.toml),
			// then environment, then flag overrides.
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := pipeline.SetLevel(cfg.LogLevel); err != nil {
				return fmt.Errorf("log level: %w", err)
			}

			log.Debug().Interface("config", cfg).Msg("configuration")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newRunner()
			if err != nil {
				return err
			}
			ctx, stop := signalContext()
			defer stop()
			if cfg.Watch {
				return r.Watch(ctx)
			}
			return r.Run(ctx)
		},
	}

	parseCmd := &cobra.Command{
		Use:   "parse",
		Short: "Slice the fixed-width card files into raw-formatted CSVs",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newRunner()
			if err != nil {
				return err
			}
			ctx, stop := signalContext()
			defer stop()
			_, err = r.Parse(ctx)
			return err
		},
	}

	decodeCmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode the raw-formatted CSVs against the lookup tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newRunner()
			if err != nil {
				return err
			}
			ctx, stop := signalContext()
			defer stop()
			_, err = r.Decode(ctx)
			return err
		},
	}

	tallyCmd := &cobra.Command{
		Use:   "tally",
		Short: "Build the three histpun aggregate reports from the decoded CSVs",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newRunner()
			if err != nil {
				return err
			}
			ctx, stop := signalContext()
			defer stop()
			_, err = r.Tally(ctx)
			return err
		},
	}

	root.AddCommand(parseCmd, decodeCmd, tallyCmd)

	// Flags
	pf := root.PersistentFlags()
	pf.StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.histpun/config.toml)")
	pf.StringVar(&cfg.InputDir, "input-dir", cfg.InputDir, "directory containing the fixed-width .txt card files")
	pf.StringVar(&cfg.MapsDir, "maps-dir", cfg.MapsDir, "directory containing the *_map.json lookup tables (defaults to input-dir)")
	pf.StringVar(&cfg.OutDir, "out-dir", cfg.OutDir, "directory for stage outputs and reports")
	pf.StringVar(&cfg.LayoutPath, "layout", cfg.LayoutPath, "TOML layout override for other codebook years")
	pf.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (trace, debug, info, warn, error)")

	root.Flags().BoolVar(&cfg.Watch, "watch", cfg.Watch, "rerun the pipeline when inputs change")
	root.Flags().DurationVar(&cfg.Debounce, "debounce", cfg.Debounce, "quiet period before a watched change triggers a rerun")

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("histpun")
		os.Exit(1)
	}
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
