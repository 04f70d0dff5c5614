// Package tabular holds the in-memory row table shared by the pipeline
// stages, plus its CSV persistence. All cells are strings; nothing here
// interprets values.
package tabular

import (
	"encoding/csv"
	"fmt"
	"os"
)

// Table is a row-oriented table with a fixed column header.
type Table struct {
	Columns []string
	Rows    [][]string
}

// New returns an empty table with the given column header.
func New(columns []string) *Table {
	return &Table{Columns: columns}
}

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Append adds a row. The row must match the header width.
func (t *Table) Append(row []string) error {
	if len(row) != len(t.Columns) {
		return fmt.Errorf("row has %d cells, header has %d", len(row), len(t.Columns))
	}
	t.Rows = append(t.Rows, row)
	return nil
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }

// ReadCSV loads a table from a CSV file written by WriteCSV.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("read %s: missing header row", path)
	}
	return &Table{Columns: records[0], Rows: records[1:]}, nil
}

// WriteCSV persists the table. The write is atomic (temp file then rename)
// so a failed run never leaves a truncated stage output behind.
func (t *Table) WriteCSV(path string) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.Write(t.Columns); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	for _, row := range t.Rows {
		if err := w.Write(row); err != nil {
			f.Close()
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
