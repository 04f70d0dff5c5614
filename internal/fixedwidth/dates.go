package fixedwidth

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/nyrecords/histpun/internal/schema"
)

var nonDigit = regexp.MustCompile(`\D`)

// Missing-value markers used throughout the codebook. A bare "9" doubles as
// a real key in a few small tables; marker cleaning wins, matching the
// original datasets.
func isMissingMarker(s string) bool {
	return s == "" || s == "&" || s == "9"
}

// CleanMarker trims a raw cell and maps the codebook missing markers to the
// empty string.
func CleanMarker(s string) string {
	s = strings.TrimSpace(s)
	if isMissingMarker(s) {
		return ""
	}
	return s
}

var (
	isoDate      = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	isoMonthYear = regexp.MustCompile(`^\d{4}-\d{2}$`)
)

// Stub reduces a raw codebook date to a two-digit-year stub: "yy-mm-dd" for
// MDDYY, "yy-mm" for MYY. The month may be one or two digits in the raw
// value, so valid inputs are 5-6 digits (MDDYY) or 3-4 digits (MYY).
// Anything else yields "".
func Stub(raw string, format schema.DateFormat) string {
	s := nonDigit.ReplaceAllString(raw, "")
	switch format {
	case schema.FormatMDDYY:
		var mm, dd, yy string
		switch len(s) {
		case 5:
			mm, dd, yy = s[0:1], s[1:3], s[3:5]
		case 6:
			mm, dd, yy = s[0:2], s[2:4], s[4:6]
		default:
			return ""
		}
		return fmt.Sprintf("%02d-%02d-%02d", atoi(yy), atoi(mm), atoi(dd))
	case schema.FormatMYY:
		var mm, yy string
		switch len(s) {
		case 3:
			mm, yy = s[0:1], s[1:3]
		case 4:
			mm, yy = s[0:2], s[2:4]
		default:
			return ""
		}
		return fmt.Sprintf("%02d-%02d", atoi(yy), atoi(mm))
	}
	return ""
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// PivotCentury turns a "yy-mm-dd" stub into "YYYY-mm-dd", placing the year
// in the 1900s. Returns "" for malformed stubs.
func PivotCentury(stub string) string {
	if len(stub) != 8 {
		return ""
	}
	yy := atoi(stub[:2])
	return fmt.Sprintf("%04d%s", 1900+yy, stub[2:])
}

// PivotBirth turns a "yy-mm-dd" stub into "YYYY-mm-dd" using the already
// pivoted receive date: a two-digit year later than the receive year's last
// two digits belongs to the 1800s.
func PivotBirth(stub, received string) string {
	if len(stub) != 8 || len(received) < 4 {
		return ""
	}
	recvYear, err := strconv.Atoi(received[:4])
	if err != nil {
		return ""
	}
	yy := atoi(stub[:2])
	century := 1900
	if yy > recvYear%100 {
		century = 1800
	}
	return fmt.Sprintf("%04d%s", century+yy, stub[2:])
}

// PivotMonthYear turns a "yy-mm" stub into "YYYY-mm" in the 1900s.
func PivotMonthYear(stub string) string {
	if len(stub) != 5 {
		return ""
	}
	yy := atoi(stub[:2])
	return fmt.Sprintf("%04d%s", 1900+yy, stub[2:])
}

// Normalize converts a raw date cell to its final ISO form for the given
// format, placing full dates in the 1900s. Already-normalized values pass
// through unchanged, so running a stage twice over its own output is a
// no-op.
func Normalize(raw string, format schema.DateFormat) string {
	raw = strings.TrimSpace(raw)
	switch format {
	case schema.FormatMDDYY:
		if isoDate.MatchString(raw) {
			return raw
		}
		return PivotCentury(Stub(CleanMarker(raw), format))
	case schema.FormatMYY:
		if isoMonthYear.MatchString(raw) {
			return raw
		}
		return PivotMonthYear(Stub(CleanMarker(raw), format))
	}
	return ""
}

// NormalizeBirth is Normalize for the birth-date pivot, which needs the
// normalized receive date to pick the century.
func NormalizeBirth(raw, received string) string {
	raw = strings.TrimSpace(raw)
	if isoDate.MatchString(raw) {
		return raw
	}
	return PivotBirth(Stub(CleanMarker(raw), schema.FormatMDDYY), received)
}
