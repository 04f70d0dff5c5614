// Package fixedwidth slices raw inmate-record card images into named string
// fields and normalizes their date columns. Non-date fields are preserved
// byte for byte, leading zeros and padding included, so the interim table
// can be re-sliced back into the original line.
package fixedwidth

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/nyrecords/histpun/internal/schema"
	"github.com/nyrecords/histpun/internal/tabular"
)

// ReceiveDateField is the layout field every full-date pivot is anchored
// to. Layouts that use the birth pivot must include it.
const ReceiveDateField = "DateReceived"

// Stats summarizes one file's parse for the run report.
type Stats struct {
	Lines   int `json:"lines"`
	Records int `json:"records"`
	Padded  int `json:"padded"`
	Skipped int `json:"skipped"`
}

// Parser slices fixed-width lines according to a layout.
type Parser struct {
	layout schema.Layout
	log    zerolog.Logger
}

// New returns a Parser for the given layout. The layout must have been
// validated by the caller.
func New(layout schema.Layout, log zerolog.Logger) *Parser {
	return &Parser{layout: layout, log: log}
}

// ParseFile reads one Latin-1 fixed-width file and returns the interim
// table: one row per record, one column per layout field, date columns
// normalized to ISO form. Short lines are right-padded with spaces and
// counted; blank lines are skipped.
func (p *Parser) ParseFile(path string) (*tabular.Table, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, err
	}
	defer f.Close()

	table := tabular.New(p.layout.Names())
	var stats Stats

	sc := bufio.NewScanner(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	width := p.layout.Width()
	for sc.Scan() {
		stats.Lines++
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			stats.Skipped++
			continue
		}
		runes := []rune(line)
		if len(runes) < width {
			stats.Padded++
			p.log.Debug().Str("file", path).Int("line", stats.Lines).
				Int("len", len(runes)).Msg("short line padded")
			runes = append(runes, []rune(strings.Repeat(" ", width-len(runes)))...)
		}

		row := p.sliceLine(runes)
		p.normalizeDates(row)
		if err := table.Append(row); err != nil {
			return nil, stats, fmt.Errorf("%s line %d: %w", path, stats.Lines, err)
		}
		stats.Records++
	}
	if err := sc.Err(); err != nil {
		return nil, stats, fmt.Errorf("read %s: %w", path, err)
	}
	return table, stats, nil
}

// sliceLine cuts one padded line into layout-ordered raw cells.
func (p *Parser) sliceLine(runes []rune) []string {
	row := make([]string, len(p.layout.Fields))
	for i, f := range p.layout.Fields {
		row[i] = string(runes[f.Start:f.End])
	}
	return row
}

// normalizeDates rewrites the date cells in place. Century-pivoted fields
// come first so the birth pivot can read the normalized receive date.
func (p *Parser) normalizeDates(row []string) {
	received := ""
	for i, f := range p.layout.Fields {
		if f.Kind != schema.KindDate || f.Pivot == schema.PivotBirth {
			continue
		}
		row[i] = Normalize(row[i], f.Format)
		if f.Name == ReceiveDateField {
			received = row[i]
		}
	}
	for i, f := range p.layout.Fields {
		if f.Kind == schema.KindDate && f.Pivot == schema.PivotBirth {
			row[i] = NormalizeBirth(row[i], received)
		}
	}
}
