package decode

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/nyrecords/histpun/internal/lookup"
	"github.com/nyrecords/histpun/internal/schema"
	"github.com/nyrecords/histpun/internal/tabular"
)

func testMaps() *lookup.Maps {
	return &lookup.Maps{
		Institution: lookup.Table{"07": "Attica", "14": "Sing Sing"},
		County:      lookup.Table{"15": "Erie"},
		Crime:       lookup.Table{"05": "Burglary", "40": "Robbery"},
		Country:     lookup.Table{"01": "United States"},
		Psych:       lookup.Table{"00": "Normal"},
		Religion:    lookup.Table{"1": "Catholic"},
		Sex:         lookup.Table{"1": "Male", "2": "Female"},
		ReturnType:  lookup.Table{"1": "Parole violator"},
	}
}

// interimTable builds an interim table over the default layout columns with
// the given cells set by name, everything else blank.
func interimTable(t *testing.T, rows ...map[string]string) *tabular.Table {
	t.Helper()
	names := schema.Default().Names()
	table := tabular.New(names)
	for _, values := range rows {
		row := make([]string, len(names))
		for name, v := range values {
			i := table.ColumnIndex(name)
			if i < 0 {
				t.Fatalf("unknown column %q", name)
			}
			row[i] = v
		}
		if err := table.Append(row); err != nil {
			t.Fatal(err)
		}
	}
	return table
}

func TestDecodeTable(t *testing.T) {
	in := interimTable(t, map[string]string{
		"ReceivingInstitutionCode": "07",
		"DateReceived":             "1952-06-12",
		"DateOfBirth":              "1934-01-01",
		"CrimeDetails":             "0510",
		"MinSentence":              "005",
		"MaxSentence":              "010",
		"CountyCommittedFrom":      "15",
		"CourtCommittedBy":         "2",
		"Race":                     "1",
		"AgeAtCommitment":          "18",
		"Religion":                 "1",
		"Sex":                      "1",
		"IdentifierNumber":         "A01234",
		"MilitaryService":          "0",
		"Education":                "8",
		"Occupation":               "8",
		"NarcoticsUse":             "2",
		"MaritalStatus":            "0",
		"PrevCriminalRecord":       "3",
		"CountryOfBirth":           "01",
		"NaturalizationStatus":     "1",
		"PsychiatricClassification": "00",
		"InstitutionOriginal":      "14",
		"ReturnType":               "1",
		"LatestReleaseDate":        "659",
		"CurrentInstitution":       "07",
	})

	d := New(testMaps(), zerolog.Nop())
	out := d.DecodeTable(in)

	if len(out.Columns) != len(Columns) {
		t.Fatalf("columns = %d, want %d", len(out.Columns), len(Columns))
	}
	for i, c := range Columns {
		if out.Columns[i] != c {
			t.Fatalf("column %d = %q, want %q", i, out.Columns[i], c)
		}
	}

	row := out.Rows[0]
	get := func(name string) string { return row[out.ColumnIndex(name)] }

	tests := []struct {
		column string
		want   string
	}{
		{"Institution", "Attica"},
		{"County", "Erie"},
		{"CourtCommittedByName", "County/Supreme Court – General Sessions"},
		{"Crime", "Burglary, degree 2nd"},
		{"CrimeAttemptedLabel", ""}, // column absent from this codebook year
		{"DateOfBirth", "1934-01-01"},
		{"DateReceived", "1952-06-12"},
		{"MinSentenceLabel", "5 yrs"},
		{"MaxSentenceLabel", "10 yrs"},
		{"AgeAtCommitment", "18"},
		{"RaceName", "White"},
		{"ReligionName", "Catholic"},
		{"SexName", "Male"},
		{"IdentifierNumber", "A01234"},
		{"MilitaryServiceLabel", "No military service"},
		{"EducationLevel", "8th grade"},
		{"OccupationName", "Laborer"},
		{"NarcoticsUseLabel", "Does not use narcotics"},
		{"MaritalStatusName", "Single"},
		{"PrevCriminalRecordLabel", "Local jail/penitentiary only"},
		{"CountryOfBirthName", "United States"},
		{"NaturalizationStatusLabel", "Alien"},
		{"PsychiatricClassificationLabel", "Normal"},
		{"InstitutionOriginalName", "Sing Sing"},
		{"ReturnTypeLabel", "Parole violator"},
		{"LatestReleaseDate", "1959-06"},
		{"CurrentInstitutionName", "Attica"},
	}
	for _, tt := range tests {
		if got := get(tt.column); got != tt.want {
			t.Errorf("%s = %q, want %q", tt.column, got, tt.want)
		}
	}

	if n := d.Tracker().Total(); n != 0 {
		t.Errorf("unresolved = %d, want 0 (misses: %v)", n, d.Tracker().Misses())
	}
}

func TestDecodeUnknownPolicy(t *testing.T) {
	in := interimTable(t, map[string]string{
		"ReceivingInstitutionCode": "99", // real code, not in table
		"CountyCommittedFrom":      "&",  // missing marker
	})

	d := New(testMaps(), zerolog.Nop())
	out := d.DecodeTable(in)
	row := out.Rows[0]
	get := func(name string) string { return row[out.ColumnIndex(name)] }

	if got := get("Institution"); got != lookup.Unknown {
		t.Errorf("Institution = %q, want Unknown", got)
	}
	if got := get("County"); got != lookup.Unknown {
		t.Errorf("County = %q, want Unknown", got)
	}

	// Only the unresolvable real code is reported for review.
	misses := d.Tracker().Misses()
	if misses["ReceivingInstitutionCode"]["99"] != 1 {
		t.Errorf("misses = %v, want ReceivingInstitutionCode/99", misses)
	}
	if _, ok := misses["CountyCommittedFrom"]; ok {
		t.Errorf("marker should not count as a miss: %v", misses)
	}
}

func TestDecodeTrimsPassthrough(t *testing.T) {
	in := interimTable(t, map[string]string{
		"AgeAtCommitment":  " 8",
		"IdentifierNumber": "A0123 ",
		"CheckDigit":       " ",
		"YearsResidenceNY": "05",
		"YearEnteredUS":    " 4",
		"MentalHygieneID":  " ",
	})

	d := New(testMaps(), zerolog.Nop())
	out := d.DecodeTable(in)
	row := out.Rows[0]
	get := func(name string) string { return row[out.ColumnIndex(name)] }

	tests := []struct {
		column string
		want   string
	}{
		{"AgeAtCommitment", "8"},
		{"IdentifierNumber", "A0123"},
		{"CheckDigit", ""},
		{"YearsResidenceNY", "05"}, // leading zeros survive, padding does not
		{"YearEnteredUSNum", "4"},
		{"MentalHygieneIDNum", ""},
	}
	for _, tt := range tests {
		if got := get(tt.column); got != tt.want {
			t.Errorf("%s = %q, want %q", tt.column, got, tt.want)
		}
	}
}

func TestDecodeCrime(t *testing.T) {
	d := New(testMaps(), zerolog.Nop())

	tests := []struct {
		details string
		want    string
	}{
		{"0510", "Burglary, degree 2nd"},
		{"052 ", "Burglary, degree 1st"},
		{"0530", "Burglary, degree 1st"},
		{"0500", "Burglary, degree 3rd"},
		{"05X0", "Burglary"}, // unknown degree keeps the base label
		{"&510", "Unknown"},
		{"05&0", "Unknown"},
		{"", "Unknown"},
		{"05", "Unknown"},   // no degree digit
		{"05  ", "Unknown"}, // blank degree column
		{"    ", "Unknown"}, // fully blank field
		{"9910", "Unknown"},
	}
	for _, tt := range tests {
		if got := d.decodeCrime(tt.details); got != tt.want {
			t.Errorf("decodeCrime(%q) = %q, want %q", tt.details, got, tt.want)
		}
	}

	// Only the real unresolvable code counts as a miss; blank parts never do.
	misses := d.Tracker().Misses()["CrimeDetails"]
	if len(misses) != 1 || misses["99"] != 1 {
		t.Errorf("misses = %v, want only 99", misses)
	}
}

func TestDecodeSentence(t *testing.T) {
	tests := []struct {
		years  string
		months string
		want   string
	}{
		{"005", "", "5 yrs"},
		{"001", "", "1 yr"},
		{"000", "", "0 months"},
		{"999", "", "100+ years"},
		{"920", "", "Transfer/Indeterminate"},
		{"950", "", "Transfer/Indeterminate"},
		{"2", "&&&", "Death/Indeterminate"},
		{"1", "T", "1 yr, 10 mos"},
		{"0", "E", "11 mos"},
		{"2", "1", "2 yrs, 1 mo"},
		{"abc", "", ""},
		{"", "", ""},
	}
	for _, tt := range tests {
		if got := decodeSentence(tt.years, tt.months); got != tt.want {
			t.Errorf("decodeSentence(%q, %q) = %q, want %q", tt.years, tt.months, got, tt.want)
		}
	}
}
