package tabular

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAppendWidthCheck(t *testing.T) {
	table := New([]string{"A", "B"})
	if err := table.Append([]string{"1", "2"}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := table.Append([]string{"1"}); err == nil {
		t.Fatal("expected width error")
	}
	if table.Len() != 1 {
		t.Errorf("Len = %d, want 1", table.Len())
	}
}

func TestColumnIndex(t *testing.T) {
	table := New([]string{"A", "B"})
	if i := table.ColumnIndex("B"); i != 1 {
		t.Errorf("ColumnIndex(B) = %d, want 1", i)
	}
	if i := table.ColumnIndex("C"); i != -1 {
		t.Errorf("ColumnIndex(C) = %d, want -1", i)
	}
}

func TestCSVRoundTrip(t *testing.T) {
	table := New([]string{"Name", "Label"})
	// Cells with commas and padding must survive persistence untouched.
	rows := [][]string{
		{"crime", "Burglary, degree 2nd"},
		{"padded", "  07"},
	}
	for _, r := range rows {
		if err := table.Append(r); err != nil {
			t.Fatal(err)
		}
	}

	path := filepath.Join(t.TempDir(), "out.csv")
	if err := table.WriteCSV(path); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	got, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if strings.Join(got.Columns, "|") != "Name|Label" {
		t.Errorf("columns = %v", got.Columns)
	}
	for i, want := range rows {
		if strings.Join(got.Rows[i], "|") != strings.Join(want, "|") {
			t.Errorf("row %d = %v, want %v", i, got.Rows[i], want)
		}
	}
}

func TestWriteCSVLeavesNoTempFile(t *testing.T) {
	table := New([]string{"A"})
	_ = table.Append([]string{"1"})

	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")
	if err := table.WriteCSV(path); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file left behind: %v", err)
	}
}

func TestReadCSVMissingHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadCSV(path); err == nil {
		t.Fatal("expected error for empty file")
	}
}
