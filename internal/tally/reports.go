package tally

// General builds the main histpun report: for each reception year, the
// total prisoner count, race-by-gender counts, age-category counts, crime
// categories, and institutions.
func (d *Dataset) General() []Row {
	var rows []Row
	for _, year := range d.years() {
		recs := d.forYear(year)

		rows = append(rows, Row{Year: year, Value: len(recs)})

		for _, c := range countBy(recs, func(r record) (string, string) {
			return lower(r.Race), lower(r.Gender)
		}) {
			rows = append(rows, Row{
				Year: year, Value: c.n,
				Race: c.a, Gender: c.b,
				Complete: "race,gender",
			})
		}

		ages := countBy(recs, func(r record) (string, string) { return r.AgeCategory, "" })
		flag := ageCompleteFlag(ages)
		for _, c := range ages {
			if c.a == "" {
				continue
			}
			rows = append(rows, Row{Year: year, Value: c.n, Age: c.a, Complete: flag})
		}

		for _, c := range countBy(recs, func(r record) (string, string) { return r.CrimeCategory, "" }) {
			if c.a == "" {
				continue
			}
			rows = append(rows, Row{Year: year, Value: c.n, Crime: c.a})
		}

		for _, c := range countBy(recs, func(r record) (string, string) { return lower(r.Institution), "" }) {
			if c.a == "" {
				continue
			}
			rows = append(rows, Row{Year: year, Value: c.n, Institution: c.a})
		}
	}
	return rows
}

// InstCourt builds the institution-by-committing-court breakdown, with
// per-year totals and institution-only rows alongside the cross-tab.
func (d *Dataset) InstCourt() []Row {
	var rows []Row
	for _, year := range d.years() {
		recs := d.forYear(year)

		rows = append(rows, Row{Year: year, Value: len(recs)})

		for _, c := range countBy(recs, func(r record) (string, string) {
			return lower(r.Institution), lower(r.Court)
		}) {
			if c.a == "" || c.b == "" {
				continue
			}
			rows = append(rows, Row{Year: year, Value: c.n, Institution: c.a, Court: c.b})
		}

		for _, c := range countBy(recs, func(r record) (string, string) { return lower(r.Institution), "" }) {
			if c.a == "" {
				continue
			}
			rows = append(rows, Row{Year: year, Value: c.n, Institution: c.a})
		}
	}
	return rows
}

// InstCounty builds the institution-by-county breakdown. It carries the
// fullest set of sections: totals, race and gender singly and crossed,
// religion counts, age categories, the institution-county cross-tab, and
// institution-only rows.
func (d *Dataset) InstCounty() []Row {
	var rows []Row
	for _, year := range d.years() {
		recs := d.forYear(year)

		rows = append(rows, Row{Year: year, Value: len(recs)})

		for _, c := range countBy(recs, func(r record) (string, string) {
			return lower(r.Race), lower(r.Gender)
		}) {
			rows = append(rows, Row{
				Year: year, Value: c.n,
				Race: c.a, Gender: c.b,
				Complete: "race,gender",
			})
		}

		for _, c := range countBy(recs, func(r record) (string, string) { return lower(r.Race), "" }) {
			if c.a == "" {
				continue
			}
			rows = append(rows, Row{Year: year, Value: c.n, Race: c.a, Complete: "race"})
		}

		for _, c := range countBy(recs, func(r record) (string, string) { return lower(r.Gender), "" }) {
			if c.a == "" {
				continue
			}
			rows = append(rows, Row{Year: year, Value: c.n, Gender: c.a, Complete: "gender"})
		}

		// The religion section carries no qualifier column of its own in the
		// histpun schema; counts are emitted per religion in sorted order with
		// only the Complete flag set, as in the published tables.
		for _, c := range countBy(recs, func(r record) (string, string) { return r.Religion, "" }) {
			if c.a == "" {
				continue
			}
			rows = append(rows, Row{Year: year, Value: c.n, Complete: "religion"})
		}

		ages := countBy(recs, func(r record) (string, string) { return r.AgeCategory, "" })
		flag := ageCompleteFlag(ages)
		for _, c := range ages {
			if c.a == "" {
				continue
			}
			rows = append(rows, Row{Year: year, Value: c.n, Age: c.a, Complete: flag})
		}

		for _, c := range countBy(recs, func(r record) (string, string) {
			return lower(r.Institution), lower(r.County)
		}) {
			if c.a == "" || c.b == "" {
				continue
			}
			rows = append(rows, Row{Year: year, Value: c.n, Institution: c.a, County: c.b})
		}

		for _, c := range countBy(recs, func(r record) (string, string) { return lower(r.Institution), "" }) {
			if c.a == "" {
				continue
			}
			rows = append(rows, Row{Year: year, Value: c.n, Institution: c.a})
		}
	}
	return rows
}

// ageCompleteFlag reports "age" when both juvenile and adult categories are
// present for the year, meaning the breakdown covers everyone with a known
// birth date.
func ageCompleteFlag(ages []counted) string {
	var juvenile, adult bool
	for _, c := range ages {
		switch c.a {
		case "juvenile":
			juvenile = true
		case "adult":
			adult = true
		}
	}
	if juvenile && adult {
		return "age"
	}
	return ""
}
