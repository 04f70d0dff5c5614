// Package decode turns the interim raw-formatted table into the decoded
// table: every coded column replaced by its codebook label, date columns in
// final ISO form, output columns in the documented order.
package decode

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/nyrecords/histpun/internal/fixedwidth"
	"github.com/nyrecords/histpun/internal/lookup"
	"github.com/nyrecords/histpun/internal/schema"
	"github.com/nyrecords/histpun/internal/tabular"
)

// Columns is the decoded table header, in the order downstream consumers
// document.
var Columns = []string{
	"Institution",
	"County",
	"CourtCommittedByName",
	"Crime",
	"CrimeAttemptedLabel",
	"DateOfBirth",
	"DateReceived",
	"MinSentenceLabel",
	"MaxSentenceLabel",
	"AgeAtCommitment",
	"RaceName",
	"ReligionName",
	"SexName",
	"IdentifierNumber",
	"CheckDigit",
	"YearsResidenceNY",
	"MilitaryServiceLabel",
	"EducationLevel",
	"OccupationName",
	"NarcoticsUseLabel",
	"MaritalStatusName",
	"PrevCriminalRecordLabel",
	"CountryOfBirthName",
	"YearEnteredUSNum",
	"NaturalizationStatusLabel",
	"PsychiatricClassificationLabel",
	"InstitutionOriginalName",
	"OriginalMonthYear",
	"MentalHygieneIDNum",
	"ReturnTypeLabel",
	"LatestReleaseDate",
	"LatestReturnDate",
	"CurrentInstitutionName",
}

// Decoder applies lookup tables and codebook rules to interim records.
type Decoder struct {
	maps    *lookup.Maps
	tracker *lookup.Tracker
	log     zerolog.Logger

	court   lookup.Table
	race    lookup.Table
	mil     lookup.Table
	edu     lookup.Table
	occ     lookup.Table
	narc    lookup.Table
	marital lookup.Table
	prev    lookup.Table
	nat     lookup.Table
	attempt lookup.Table
}

// New returns a Decoder over the given external maps. Unresolved codes are
// tracked and logged through log.
func New(maps *lookup.Maps, log zerolog.Logger) *Decoder {
	return &Decoder{
		maps:    maps,
		tracker: lookup.NewTracker(log),
		log:     log,
		court:   lookup.Court(),
		race:    lookup.Race(),
		mil:     lookup.MilitaryService(),
		edu:     lookup.Education(),
		occ:     lookup.Occupation(),
		narc:    lookup.NarcoticsUse(),
		marital: lookup.MaritalStatus(),
		prev:    lookup.PrevCriminalRecord(),
		nat:     lookup.NaturalizationStatus(),
		attempt: lookup.CrimeAttempted(),
	}
}

// Tracker exposes the unresolved-code tracker for the run summary.
func (d *Decoder) Tracker() *lookup.Tracker { return d.tracker }

// row reads cells from an interim row by column name, treating absent
// columns as empty.
type row struct {
	table *tabular.Table
	cells []string
}

func (r row) get(name string) string {
	i := r.table.ColumnIndex(name)
	if i < 0 || i >= len(r.cells) {
		return ""
	}
	return r.cells[i]
}

// DecodeTable decodes every interim row into the documented column order.
func (d *Decoder) DecodeTable(in *tabular.Table) *tabular.Table {
	out := tabular.New(Columns)
	for _, cells := range in.Rows {
		r := row{table: in, cells: cells}
		// Append cannot fail here: the row is built against Columns.
		_ = out.Append(d.decodeRow(r))
	}
	return out
}

func (d *Decoder) decodeRow(r row) []string {
	received := strings.TrimSpace(r.get("DateReceived"))
	return []string{
		d.tracker.Resolve(d.maps.Institution, "ReceivingInstitutionCode", r.get("ReceivingInstitutionCode")),
		d.tracker.Resolve(d.maps.County, "CountyCommittedFrom", r.get("CountyCommittedFrom")),
		d.tracker.Resolve(d.court, "CourtCommittedBy", r.get("CourtCommittedBy")),
		d.decodeCrime(r.get("CrimeDetails")),
		d.optional(d.attempt, "CrimeAttempted", r),
		fixedwidth.NormalizeBirth(r.get("DateOfBirth"), received),
		received,
		decodeSentence(r.get("MinSentence"), ""),
		decodeSentence(r.get("MaxSentence"), ""),
		strings.TrimSpace(r.get("AgeAtCommitment")),
		d.tracker.Resolve(d.race, "Race", r.get("Race")),
		d.tracker.Resolve(d.maps.Religion, "Religion", r.get("Religion")),
		d.tracker.Resolve(d.maps.Sex, "Sex", r.get("Sex")),
		strings.TrimSpace(r.get("IdentifierNumber")),
		strings.TrimSpace(r.get("CheckDigit")),
		strings.TrimSpace(r.get("YearsResidenceNY")),
		d.tracker.Resolve(d.mil, "MilitaryService", r.get("MilitaryService")),
		d.tracker.Resolve(d.edu, "Education", r.get("Education")),
		d.tracker.Resolve(d.occ, "Occupation", r.get("Occupation")),
		d.tracker.Resolve(d.narc, "NarcoticsUse", r.get("NarcoticsUse")),
		d.tracker.Resolve(d.marital, "MaritalStatus", r.get("MaritalStatus")),
		d.tracker.Resolve(d.prev, "PrevCriminalRecord", r.get("PrevCriminalRecord")),
		d.tracker.Resolve(d.maps.Country, "CountryOfBirth", r.get("CountryOfBirth")),
		strings.TrimSpace(r.get("YearEnteredUS")),
		d.tracker.Resolve(d.nat, "NaturalizationStatus", r.get("NaturalizationStatus")),
		d.tracker.Resolve(d.maps.Psych, "PsychiatricClassification", r.get("PsychiatricClassification")),
		d.tracker.Resolve(d.maps.Institution, "InstitutionOriginal", r.get("InstitutionOriginal")),
		fixedwidth.Normalize(r.get("OriginalMonthYear"), schema.FormatMYY),
		strings.TrimSpace(r.get("MentalHygieneID")),
		d.tracker.Resolve(d.maps.ReturnType, "ReturnType", r.get("ReturnType")),
		fixedwidth.Normalize(r.get("LatestReleaseDate"), schema.FormatMYY),
		fixedwidth.Normalize(r.get("LatestReturnDate"), schema.FormatMDDYY),
		d.tracker.Resolve(d.maps.Institution, "CurrentInstitution", r.get("CurrentInstitution")),
	}
}

// optional resolves a column that some codebook years do not carry; absent
// columns decode to empty rather than Unknown.
func (d *Decoder) optional(table lookup.Table, field string, r row) string {
	if r.table.ColumnIndex(field) < 0 {
		return ""
	}
	return d.tracker.Resolve(table, field, r.get(field))
}

// crimeDegrees maps the third CrimeDetails digit to a degree label.
var crimeDegrees = lookup.Table{
	"0": "3rd",
	"1": "2nd",
	"2": "1st",
	"3": "1st",
}

// decodeCrime splits CrimeDetails into a two-digit base code and a degree
// digit. Any missing marker or blank in either part means the crime is
// unknown; an unrecognized degree keeps the base label alone.
func (d *Decoder) decodeCrime(details string) string {
	var code, degree string
	if len(details) >= 2 {
		code = details[:2]
	} else {
		code = details
	}
	if len(details) >= 3 {
		degree = details[2:3]
	}
	code = strings.TrimSpace(code)
	degree = strings.TrimSpace(degree)
	if code == "" || degree == "" || strings.Contains(code, "&") || strings.Contains(degree, "&") {
		return lookup.Unknown
	}
	base, ok := d.maps.Crime[code]
	if !ok {
		d.tracker.Miss("CrimeDetails", code)
		return lookup.Unknown
	}
	deg, ok := crimeDegrees[degree]
	if !ok {
		return base
	}
	return base + ", degree " + deg
}
