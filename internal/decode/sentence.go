package decode

import (
	"fmt"
	"strconv"
	"strings"
)

// decodeSentence renders a sentence length from its year and month parts.
// Special codes come first: "&&&" months means death or an indeterminate
// sentence, "999" years means 100+ years, and year codes starting 92 or 95
// mark transfers and indeterminate terms. Month codes T and E stand for 10
// and 11 months.
func decodeSentence(years, months string) string {
	if months == "&&&" {
		return "Death/Indeterminate"
	}
	if years == "999" {
		return "100+ years"
	}
	if strings.HasPrefix(years, "92") || strings.HasPrefix(years, "95") {
		return "Transfer/Indeterminate"
	}

	yy, err := strconv.Atoi(strings.TrimSpace(years))
	if err != nil {
		return ""
	}

	var mm int
	switch months {
	case "T":
		mm = 10
	case "E":
		mm = 11
	default:
		mm, _ = strconv.Atoi(strings.TrimSpace(months))
	}

	var parts []string
	if yy > 0 {
		parts = append(parts, fmt.Sprintf("%d yr%s", yy, plural(yy)))
	}
	if mm > 0 {
		parts = append(parts, fmt.Sprintf("%d mo%s", mm, plural(mm)))
	}
	if len(parts) == 0 {
		return "0 months"
	}
	return strings.Join(parts, ", ")
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
