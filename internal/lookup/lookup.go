// Package lookup loads the static code-to-label tables used to decode
// inmate records: eight external JSON maps plus the small codebook tables
// that were never split out into files. Tables are loaded once and read
// only after that.
package lookup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/nyrecords/histpun/internal/fixedwidth"
)

// Unknown is the sentinel label for missing or unresolvable codes.
const Unknown = "Unknown"

// Table maps a code to its human-readable label.
type Table map[string]string

// Maps holds the external JSON lookup tables, one per coded domain.
type Maps struct {
	Institution Table
	County      Table
	Crime       Table
	Country     Table
	Psych       Table
	Religion    Table
	Sex         Table
	ReturnType  Table
}

// mapFiles lists the required JSON files and their destinations.
func (m *Maps) mapFiles() map[string]*Table {
	return map[string]*Table{
		"institution_map.json": &m.Institution,
		"county_map.json":      &m.County,
		"crime_map.json":       &m.Crime,
		"country_map.json":     &m.Country,
		"psych_map.json":       &m.Psych,
		"religion_map.json":    &m.Religion,
		"sex_map.json":         &m.Sex,
		"return_type_map.json": &m.ReturnType,
	}
}

// LoadDir reads all eight lookup maps from dir. Every file is required;
// a missing or malformed map fails the decode stage rather than silently
// decoding everything to Unknown.
func LoadDir(dir string) (*Maps, error) {
	var m Maps
	for name, dst := range m.mapFiles() {
		path := filepath.Join(dir, name)
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("lookup map %s: %w", name, err)
		}
		if err := json.Unmarshal(b, dst); err != nil {
			return nil, fmt.Errorf("lookup map %s: %w", path, err)
		}
	}
	return &m, nil
}

// Tracker resolves codes against tables and records every miss for
// data-quality review. Each distinct (field, code) miss is logged once at
// warn level; totals end up in the run summary.
type Tracker struct {
	mu     sync.Mutex
	log    zerolog.Logger
	misses map[string]map[string]int
}

// NewTracker returns a Tracker logging through the given logger.
func NewTracker(log zerolog.Logger) *Tracker {
	return &Tracker{log: log, misses: map[string]map[string]int{}}
}

// Resolve cleans the raw cell and looks it up. Missing markers and codes
// absent from the table both resolve to Unknown; only real codes that fail
// the lookup count as misses.
func (t *Tracker) Resolve(table Table, field, raw string) string {
	code := fixedwidth.CleanMarker(raw)
	if code == "" {
		return Unknown
	}
	if label, ok := table[code]; ok {
		return label
	}
	t.miss(field, code)
	return Unknown
}

// Miss records an unresolved (field, code) pair directly. The decoder uses
// it for composite codes that bypass Resolve.
func (t *Tracker) Miss(field, code string) { t.miss(field, code) }

func (t *Tracker) miss(field, code string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	byCode := t.misses[field]
	if byCode == nil {
		byCode = map[string]int{}
		t.misses[field] = byCode
	}
	if byCode[code] == 0 {
		t.log.Warn().Str("field", field).Str("code", code).Msg("unresolved code")
	}
	byCode[code]++
}

// Misses returns the per-field unresolved-code counts.
func (t *Tracker) Misses() map[string]map[string]int {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[string]map[string]int, len(t.misses))
	for field, byCode := range t.misses {
		cp := make(map[string]int, len(byCode))
		for code, n := range byCode {
			cp[code] = n
		}
		out[field] = cp
	}
	return out
}

// Fields returns the fields with unresolved codes, sorted.
func (t *Tracker) Fields() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	fields := make([]string, 0, len(t.misses))
	for f := range t.misses {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// Total returns the total number of unresolved lookups.
func (t *Tracker) Total() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, byCode := range t.misses {
		for _, c := range byCode {
			n += c
		}
	}
	return n
}
