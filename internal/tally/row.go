package tally

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nyrecords/histpun/internal/tabular"
)

// Fixed histpun header values for this dataset.
const (
	country   = "United States"
	state     = "New York"
	statistic = "prisoners"
)

// Row is one histpun aggregate row. Which qualifier columns are written
// depends on the report; unused qualifiers stay empty.
type Row struct {
	Year        int
	Value       int
	Race        string
	Gender      string
	Age         string
	Crime       string
	Institution string
	County      string
	Court       string
	Complete    string
}

// Column orders for the three reports.
var (
	GeneralColumns = []string{
		"Country", "Year", "Statistic", "Value", "Source", "State",
		"Race", "Gender", "Age", "Crime", "Institution", "Complete",
	}
	InstCourtColumns = []string{
		"Country", "Year", "Statistic", "Value", "Source", "State",
		"Race", "Gender", "Age", "Crime", "Institution", "Court", "Complete",
	}
	InstCountyColumns = []string{
		"Country", "Year", "Statistic", "Value", "Source", "State",
		"Race", "Gender", "Age", "Crime", "Institution", "County", "Complete",
	}
)

// cell renders one named column of a row.
func (r Row) cell(column string) (string, error) {
	switch column {
	case "Country":
		return country, nil
	case "Year":
		return fmt.Sprintf("%d", r.Year), nil
	case "Statistic":
		return statistic, nil
	case "Value":
		return fmt.Sprintf("%d", r.Value), nil
	case "Source":
		return sourceKey(r.Year), nil
	case "State":
		return state, nil
	case "Race":
		return r.Race, nil
	case "Gender":
		return r.Gender, nil
	case "Age":
		return r.Age, nil
	case "Crime":
		return r.Crime, nil
	case "Institution":
		return r.Institution, nil
	case "County":
		return r.County, nil
	case "Court":
		return r.Court, nil
	case "Complete":
		return r.Complete, nil
	}
	return "", fmt.Errorf("unknown histpun column %q", column)
}

// WriteCSV persists rows under the given column order.
func WriteCSV(path string, columns []string, rows []Row) error {
	t := tabular.New(columns)
	for _, r := range rows {
		cells := make([]string, len(columns))
		for i, c := range columns {
			v, err := r.cell(c)
			if err != nil {
				return err
			}
			cells[i] = v
		}
		if err := t.Append(cells); err != nil {
			return err
		}
	}
	return t.WriteCSV(path)
}

// countBy tallies records under a composite key of up to two parts and
// returns the keys sorted, so every report section comes out in a stable
// order.
type counted struct {
	a, b string
	n    int
}

func countBy(recs []record, key func(record) (string, string)) []counted {
	counts := map[[2]string]int{}
	for _, r := range recs {
		a, b := key(r)
		counts[[2]string{a, b}]++
	}
	out := make([]counted, 0, len(counts))
	for k, n := range counts {
		out = append(out, counted{a: k[0], b: k[1], n: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].a != out[j].a {
			return out[i].a < out[j].a
		}
		return out[i].b < out[j].b
	})
	return out
}

func lower(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
