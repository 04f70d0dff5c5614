// Package tally rolls the decoded records up into histpun aggregate
// reports: per-year counts qualified by race, gender, age category, crime
// category, institution, court, and county.
package tally

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/nyrecords/histpun/internal/tabular"
)

// record is a decoded record projected down to the fields the reducers
// group by. Only records with a parseable DateReceived make it in; a year
// cannot be assigned otherwise.
type record struct {
	Year          int
	Race          string
	Gender        string
	Religion      string
	AgeCategory   string
	CrimeCategory string
	Institution   string
	County        string
	Court         string
}

// Dataset holds all dated decoded records across input files.
type Dataset struct {
	records []record
	dropped int
}

// Stats reports what Load kept and dropped.
type Stats struct {
	Records int `json:"records"`
	Undated int `json:"undated"`
}

// Load reads every *_decoded.csv under dir and concatenates them.
// filepath.Glob returns sorted paths, so concatenation order is stable.
func Load(dir string) (*Dataset, Stats, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*_decoded.csv"))
	if err != nil {
		return nil, Stats{}, err
	}
	if len(paths) == 0 {
		return nil, Stats{}, fmt.Errorf("no decoded files matching *_decoded.csv in %s", dir)
	}

	ds := &Dataset{}
	for _, path := range paths {
		t, err := tabular.ReadCSV(path)
		if err != nil {
			return nil, Stats{}, err
		}
		ds.addTable(t)
	}
	return ds, Stats{Records: len(ds.records), Undated: ds.dropped}, nil
}

// FromTable builds a Dataset from an in-memory decoded table.
func FromTable(tables ...*tabular.Table) *Dataset {
	ds := &Dataset{}
	for _, t := range tables {
		ds.addTable(t)
	}
	return ds
}

func (d *Dataset) addTable(t *tabular.Table) {
	col := func(name string) int { return t.ColumnIndex(name) }
	var (
		iReceived = col("DateReceived")
		iDOB      = col("DateOfBirth")
		iRace     = col("RaceName")
		iSex      = col("SexName")
		iReligion = col("ReligionName")
		iCrime    = col("Crime")
		iInst     = col("Institution")
		iCounty   = col("County")
		iCourt    = col("CourtCommittedByName")
	)
	cell := func(row []string, i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return row[i]
	}

	for _, row := range t.Rows {
		received, err := time.Parse("2006-01-02", cell(row, iReceived))
		if err != nil {
			d.dropped++
			continue
		}
		d.records = append(d.records, record{
			Year:          received.Year(),
			Race:          cell(row, iRace),
			Gender:        cell(row, iSex),
			Religion:      cell(row, iReligion),
			AgeCategory:   ageCategory(cell(row, iDOB), received),
			CrimeCategory: crimeCategory(cell(row, iCrime)),
			Institution:   cell(row, iInst),
			County:        cell(row, iCounty),
			Court:         cell(row, iCourt),
		})
	}
}

// Len returns the number of dated records.
func (d *Dataset) Len() int { return len(d.records) }

// ageCategory classifies a record as juvenile (under 18 at reception) or
// adult, or "" when the birth date is missing. Age is whole years as
// floor(days/365), matching the published tallies.
func ageCategory(dob string, received time.Time) string {
	born, err := time.Parse("2006-01-02", dob)
	if err != nil {
		return ""
	}
	days := int(received.Sub(born).Hours() / 24)
	if days/365 < 18 {
		return "juvenile"
	}
	return "adult"
}

// crimeCategory reduces a decoded crime label to its base offense: the text
// before the first comma, lowercased.
func crimeCategory(crime string) string {
	base, _, _ := strings.Cut(crime, ",")
	return strings.ToLower(strings.TrimSpace(base))
}

// sourceKey names the source dataset for one reception year.
func sourceKey(year int) string { return fmt.Sprintf("NYInmateRecords%d", year) }

// years returns the distinct reception years, ascending.
func (d *Dataset) years() []int {
	seen := map[int]bool{}
	for _, r := range d.records {
		seen[r.Year] = true
	}
	ys := make([]int, 0, len(seen))
	for y := range seen {
		ys = append(ys, y)
	}
	sort.Ints(ys)
	return ys
}

// forYear returns the records received in the given year.
func (d *Dataset) forYear(year int) []record {
	var out []record
	for _, r := range d.records {
		if r.Year == year {
			out = append(out, r)
		}
	}
	return out
}
