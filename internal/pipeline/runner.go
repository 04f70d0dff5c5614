// Package pipeline sequences the histpun stages: parse the fixed-width card
// files, decode them against the lookup tables, then build the three
// aggregate reports. Each stage persists its output before the next starts
// and any failure aborts the run.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/nyrecords/histpun/internal/cliconfig"
	"github.com/nyrecords/histpun/internal/decode"
	"github.com/nyrecords/histpun/internal/fixedwidth"
	"github.com/nyrecords/histpun/internal/lookup"
	"github.com/nyrecords/histpun/internal/schema"
	"github.com/nyrecords/histpun/internal/tabular"
	"github.com/nyrecords/histpun/internal/tally"
)

const (
	rawSuffix     = "_rawformatted.csv"
	decodedSuffix = "_decoded.csv"
)

// Runner executes pipeline stages against a validated configuration.
type Runner struct {
	cfg    cliconfig.Config
	layout schema.Layout
	log    zerolog.Logger
	status *StatusRepository
}

// NewRunner builds a Runner. The configuration must already be validated;
// the layout override is loaded here so a bad layout fails before any stage
// runs.
func NewRunner(cfg cliconfig.Config, log zerolog.Logger) (*Runner, error) {
	layout := schema.Default()
	if cfg.LayoutPath != "" {
		var err error
		layout, err = schema.Load(cfg.LayoutPath)
		if err != nil {
			return nil, err
		}
	}
	return &Runner{
		cfg:    cfg,
		layout: layout,
		log:    log,
		status: NewStatusRepository(cfg.OutDir),
	}, nil
}

// Run executes every stage in order and writes the run summary. Batch
// semantics: the first failing stage aborts the run.
func (r *Runner) Run(ctx context.Context) error {
	st := Status{StartedAt: time.Now().UTC()}

	parseSt, err := r.Parse(ctx)
	if err != nil {
		return fmt.Errorf("parse stage: %w", err)
	}
	st.Parse = parseSt

	decodeSt, err := r.Decode(ctx)
	if err != nil {
		return fmt.Errorf("decode stage: %w", err)
	}
	st.Decode = decodeSt

	tallySt, err := r.Tally(ctx)
	if err != nil {
		return fmt.Errorf("tally stage: %w", err)
	}
	st.Tally = tallySt

	st.FinishedAt = time.Now().UTC()
	if err := r.status.Save(st); err != nil {
		return fmt.Errorf("save run summary: %w", err)
	}
	r.log.Info().
		Int("records", st.Decode.Records).
		Int("unresolved_codes", st.Decode.UnresolvedTotal).
		Dur("elapsed", st.FinishedAt.Sub(st.StartedAt)).
		Msg("pipeline complete")
	return nil
}

// Parse reads every .txt card file under the input directory and writes one
// raw-formatted CSV per input file.
func (r *Runner) Parse(ctx context.Context) (ParseStatus, error) {
	var st ParseStatus

	paths, err := filepath.Glob(filepath.Join(r.cfg.InputDir, "*.txt"))
	if err != nil {
		return st, err
	}
	if len(paths) == 0 {
		return st, fmt.Errorf("no .txt files in %s", r.cfg.InputDir)
	}
	if err := os.MkdirAll(r.cfg.RawDir, 0o755); err != nil {
		return st, err
	}

	parser := fixedwidth.New(r.layout, r.log)
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return st, err
		}
		table, stats, err := parser.ParseFile(path)
		if err != nil {
			return st, err
		}
		out := filepath.Join(r.cfg.RawDir, baseName(path)+rawSuffix)
		if err := table.WriteCSV(out); err != nil {
			return st, err
		}
		st.Files++
		st.Records += stats.Records
		st.Padded += stats.Padded
		st.Skipped += stats.Skipped
		r.log.Info().Str("file", path).Str("out", out).
			Int("records", stats.Records).Int("padded", stats.Padded).
			Msg("parsed")
	}
	return st, nil
}

// Decode reads every raw-formatted CSV, applies the lookup tables, and
// writes the decoded CSVs. One decoder is shared across files so unresolved
// codes are counted for the whole run.
func (r *Runner) Decode(ctx context.Context) (DecodeStatus, error) {
	var st DecodeStatus

	maps, err := lookup.LoadDir(r.cfg.MapsDir)
	if err != nil {
		return st, err
	}

	paths, err := filepath.Glob(filepath.Join(r.cfg.RawDir, "*"+rawSuffix))
	if err != nil {
		return st, err
	}
	if len(paths) == 0 {
		return st, fmt.Errorf("no raw-formatted files in %s", r.cfg.RawDir)
	}
	if err := os.MkdirAll(r.cfg.DecodedDir, 0o755); err != nil {
		return st, err
	}

	dec := decode.New(maps, r.log)
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return st, err
		}
		table, err := tabular.ReadCSV(path)
		if err != nil {
			return st, err
		}
		decoded := dec.DecodeTable(table)
		base := strings.TrimSuffix(filepath.Base(path), rawSuffix)
		out := filepath.Join(r.cfg.DecodedDir, base+decodedSuffix)
		if err := decoded.WriteCSV(out); err != nil {
			return st, err
		}
		st.Files++
		st.Records += decoded.Len()
		r.log.Info().Str("file", path).Str("out", out).
			Int("records", decoded.Len()).Msg("decoded")
	}

	tracker := dec.Tracker()
	st.UnresolvedTotal = tracker.Total()
	if st.UnresolvedTotal > 0 {
		st.Unresolved = tracker.Misses()
		r.log.Warn().Int("total", st.UnresolvedTotal).
			Strs("fields", tracker.Fields()).
			Msg("unresolved codes decoded as Unknown")
	}
	return st, nil
}

// Tally reads the decoded CSVs once and writes the three aggregate reports.
func (r *Runner) Tally(ctx context.Context) (TallyStatus, error) {
	var st TallyStatus

	if err := ctx.Err(); err != nil {
		return st, err
	}
	ds, stats, err := tally.Load(r.cfg.DecodedDir)
	if err != nil {
		return st, err
	}
	st.Records = stats.Records
	st.Undated = stats.Undated

	outputs := []struct {
		path    string
		columns []string
		rows    []tally.Row
	}{
		{r.cfg.GeneralPath(), tally.GeneralColumns, ds.General()},
		{r.cfg.InstCourtPath(), tally.InstCourtColumns, ds.InstCourt()},
		{r.cfg.InstCountyPath(), tally.InstCountyColumns, ds.InstCounty()},
	}
	for _, o := range outputs {
		if err := tally.WriteCSV(o.path, o.columns, o.rows); err != nil {
			return st, err
		}
		st.Outputs = append(st.Outputs, o.path)
		r.log.Info().Str("out", o.path).Int("rows", len(o.rows)).Msg("tally written")
	}
	return st, nil
}

// baseName strips the directory and extension from an input path.
func baseName(path string) string {
	b := filepath.Base(path)
	return strings.TrimSuffix(b, filepath.Ext(b))
}
