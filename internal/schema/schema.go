// Package schema defines the fixed-width record layout consumed by the
// parser: field names, zero-based byte ranges, and which fields carry dates
// in which native format. The built-in layout is the 80-column New York
// inmate codebook; alternate codebook years can be loaded from a TOML file.
package schema

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// Kind classifies how the parser treats a field.
type Kind string

const (
	// KindCode is an opaque coded value, preserved as sliced.
	KindCode Kind = "code"
	// KindDate is a date in a native codebook format, normalized on parse.
	KindDate Kind = "date"
)

// DateFormat names a native codebook date representation.
type DateFormat string

const (
	// FormatMDDYY is month, day, two-digit year packed into 5-6 digits.
	FormatMDDYY DateFormat = "MDDYY"
	// FormatMYY is month and two-digit year packed into 3-4 digits.
	FormatMYY DateFormat = "MYY"
)

// Pivot names the century rule applied after the two-digit year is read.
type Pivot string

const (
	// Pivot1900 places every value in the 1900s.
	Pivot1900 Pivot = "1900"
	// PivotBirth compares against the receive year: later two-digit years
	// belong to the 1800s, the rest to the 1900s.
	PivotBirth Pivot = "birth"
)

// Field is one fixed-width column: [Start, End) byte range within the line.
type Field struct {
	Name   string     `toml:"name"`
	Start  int        `toml:"start"`
	End    int        `toml:"end"`
	Kind   Kind       `toml:"kind"`
	Format DateFormat `toml:"format"`
	Pivot  Pivot      `toml:"pivot"`
}

// Width returns the field width in bytes.
func (f Field) Width() int { return f.End - f.Start }

// Layout is an ordered fixed-width record layout.
type Layout struct {
	Fields []Field `toml:"field"`
}

// Width returns the line width the layout expects, i.e. the end of the
// last field.
func (l Layout) Width() int {
	if len(l.Fields) == 0 {
		return 0
	}
	return l.Fields[len(l.Fields)-1].End
}

// Names returns the field names in layout order.
func (l Layout) Names() []string {
	names := make([]string, len(l.Fields))
	for i, f := range l.Fields {
		names[i] = f.Name
	}
	return names
}

// Validate checks that the layout is usable: at least one field, unique
// names, positive widths, contiguous non-overlapping ascending ranges, and
// date fields carrying a known format.
func (l Layout) Validate() error {
	if len(l.Fields) == 0 {
		return fmt.Errorf("layout has no fields")
	}
	seen := map[string]bool{}
	prevEnd := 0
	for i, f := range l.Fields {
		if f.Name == "" {
			return fmt.Errorf("field %d: name is required", i)
		}
		if seen[f.Name] {
			return fmt.Errorf("field %q: duplicate name", f.Name)
		}
		seen[f.Name] = true
		if f.Width() <= 0 {
			return fmt.Errorf("field %q: width must be positive (start %d, end %d)", f.Name, f.Start, f.End)
		}
		if f.Start < prevEnd {
			return fmt.Errorf("field %q: overlaps previous field (start %d < %d)", f.Name, f.Start, prevEnd)
		}
		prevEnd = f.End

		switch f.Kind {
		case KindCode, "":
		case KindDate:
			if f.Format != FormatMDDYY && f.Format != FormatMYY {
				return fmt.Errorf("field %q: unknown date format %q", f.Name, f.Format)
			}
			if f.Pivot != Pivot1900 && f.Pivot != PivotBirth {
				return fmt.Errorf("field %q: unknown pivot %q", f.Name, f.Pivot)
			}
		default:
			return fmt.Errorf("field %q: unknown kind %q", f.Name, f.Kind)
		}
	}
	return nil
}

// Load reads a layout override from a TOML file.
func Load(path string) (Layout, error) {
	var l Layout
	b, err := os.ReadFile(path)
	if err != nil {
		return l, err
	}
	if err := toml.Unmarshal(b, &l); err != nil {
		return l, fmt.Errorf("parse layout %s: %w", path, err)
	}
	if err := l.Validate(); err != nil {
		return l, fmt.Errorf("layout %s: %w", path, err)
	}
	return l, nil
}
