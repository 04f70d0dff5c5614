package tally

import (
	"reflect"
	"testing"

	"github.com/nyrecords/histpun/internal/tabular"
)

// decodedTable builds a minimal decoded table: only the columns the
// reducers read.
func decodedTable(t *testing.T, rows ...map[string]string) *tabular.Table {
	t.Helper()
	columns := []string{
		"DateReceived", "DateOfBirth", "RaceName", "SexName", "ReligionName",
		"Crime", "Institution", "County", "CourtCommittedByName",
	}
	table := tabular.New(columns)
	for _, values := range rows {
		row := make([]string, len(columns))
		for i, c := range columns {
			row[i] = values[c]
		}
		if err := table.Append(row); err != nil {
			t.Fatal(err)
		}
	}
	return table
}

func record1952(over map[string]string) map[string]string {
	base := map[string]string{
		"DateReceived":         "1952-06-12",
		"DateOfBirth":          "1934-01-01",
		"RaceName":             "White",
		"SexName":              "Male",
		"ReligionName":         "Catholic",
		"Crime":                "Burglary, degree 2nd",
		"Institution":          "Attica",
		"County":               "Erie",
		"CourtCommittedByName": "Preliminary Court",
	}
	for k, v := range over {
		base[k] = v
	}
	return base
}

func findRow(rows []Row, match func(Row) bool) (Row, bool) {
	for _, r := range rows {
		if match(r) {
			return r, true
		}
	}
	return Row{}, false
}

func TestInstCountyCrossTab(t *testing.T) {
	ds := FromTable(decodedTable(t,
		record1952(nil),
		record1952(map[string]string{"SexName": "Female"}),
		record1952(map[string]string{"Institution": "Sing Sing", "County": "Westchester"}),
	))

	rows := ds.InstCounty()

	cross, ok := findRow(rows, func(r Row) bool {
		return r.Institution == "attica" && r.County == "erie"
	})
	if !ok {
		t.Fatal("missing attica/erie cross-tab row")
	}
	if cross.Value != 2 {
		t.Errorf("attica/erie count = %d, want 2", cross.Value)
	}

	total, ok := findRow(rows, func(r Row) bool {
		return r.Race == "" && r.Gender == "" && r.Age == "" && r.Institution == "" && r.Complete == ""
	})
	if !ok {
		t.Fatal("missing total row")
	}
	if total.Value != 3 {
		t.Errorf("total = %d, want 3", total.Value)
	}
}

func TestGeneralSections(t *testing.T) {
	ds := FromTable(decodedTable(t,
		record1952(nil),
		record1952(map[string]string{"RaceName": "Black"}),
		// Juvenile: born 1936, received 1952 at age 16.
		record1952(map[string]string{"DateOfBirth": "1936-03-01"}),
		// No birth date: excluded from the age section.
		record1952(map[string]string{"DateOfBirth": ""}),
	))

	rows := ds.General()

	total := rows[0]
	if total.Year != 1952 || total.Value != 4 {
		t.Fatalf("total row = %+v, want year 1952 value 4", total)
	}

	// Race-by-gender is a partition: values sum to the total.
	sum := 0
	for _, r := range rows {
		if r.Complete == "race,gender" {
			sum += r.Value
		}
	}
	if sum != 4 {
		t.Errorf("race,gender sum = %d, want 4", sum)
	}

	white, ok := findRow(rows, func(r Row) bool { return r.Race == "white" && r.Gender == "male" })
	if !ok || white.Value != 3 {
		t.Errorf("white/male row = %+v ok=%v, want value 3", white, ok)
	}

	// Both juvenile and adult present, so the age rows carry the flag.
	juv, ok := findRow(rows, func(r Row) bool { return r.Age == "juvenile" })
	if !ok || juv.Value != 1 || juv.Complete != "age" {
		t.Errorf("juvenile row = %+v ok=%v, want value 1 complete age", juv, ok)
	}
	adult, ok := findRow(rows, func(r Row) bool { return r.Age == "adult" })
	if !ok || adult.Value != 2 {
		t.Errorf("adult row = %+v ok=%v, want value 2", adult, ok)
	}

	crime, ok := findRow(rows, func(r Row) bool { return r.Crime != "" })
	if !ok || crime.Crime != "burglary" || crime.Value != 4 {
		t.Errorf("crime row = %+v ok=%v, want burglary 4", crime, ok)
	}
}

func TestAgeFlagRequiresBothCategories(t *testing.T) {
	ds := FromTable(decodedTable(t, record1952(nil), record1952(nil)))

	rows := ds.General()
	adult, ok := findRow(rows, func(r Row) bool { return r.Age == "adult" })
	if !ok {
		t.Fatal("missing adult row")
	}
	if adult.Complete != "" {
		t.Errorf("Complete = %q, want empty without a juvenile row", adult.Complete)
	}
}

func TestInstCourt(t *testing.T) {
	ds := FromTable(decodedTable(t,
		record1952(nil),
		record1952(map[string]string{"CourtCommittedByName": "Court Not Stated"}),
	))

	rows := ds.InstCourt()

	cross, ok := findRow(rows, func(r Row) bool {
		return r.Institution == "attica" && r.Court == "preliminary court"
	})
	if !ok || cross.Value != 1 {
		t.Errorf("cross row = %+v ok=%v, want value 1", cross, ok)
	}
	instOnly, ok := findRow(rows, func(r Row) bool {
		return r.Institution == "attica" && r.Court == ""
	})
	if !ok || instOnly.Value != 2 {
		t.Errorf("institution-only row = %+v ok=%v, want value 2", instOnly, ok)
	}
}

func TestUndatedRecordsDropped(t *testing.T) {
	table := decodedTable(t,
		record1952(nil),
		record1952(map[string]string{"DateReceived": ""}),
		record1952(map[string]string{"DateReceived": "not-a-date"}),
	)

	ds := FromTable(table)
	if ds.Len() != 1 {
		t.Errorf("Len = %d, want 1", ds.Len())
	}
	if ds.dropped != 2 {
		t.Errorf("dropped = %d, want 2", ds.dropped)
	}
}

func TestReportsDeterministic(t *testing.T) {
	build := func() []Row {
		ds := FromTable(decodedTable(t,
			record1952(nil),
			record1952(map[string]string{"Institution": "Sing Sing", "County": "Westchester"}),
			record1952(map[string]string{"RaceName": "Black", "SexName": "Female"}),
			record1952(map[string]string{"DateReceived": "1953-02-01"}),
		))
		return ds.InstCounty()
	}

	first := build()
	for i := 0; i < 5; i++ {
		if next := build(); !reflect.DeepEqual(first, next) {
			t.Fatalf("run %d differs:\nfirst: %+v\nnext:  %+v", i, first, next)
		}
	}

	// Years come out ascending.
	lastYear := 0
	for _, r := range first {
		if r.Year < lastYear {
			t.Fatalf("years out of order: %d after %d", r.Year, lastYear)
		}
		lastYear = r.Year
	}
}

func TestCrimeCategory(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Burglary, degree 2nd", "burglary"},
		{"Unknown", "unknown"},
		{"", ""},
		{"Grand Larceny", "grand larceny"},
	}
	for _, tt := range tests {
		if got := crimeCategory(tt.in); got != tt.want {
			t.Errorf("crimeCategory(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
