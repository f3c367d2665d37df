// Package sheet models worksheet content as rectangular grids of typed
// cells and caches per-workbook sheet reads for one extraction pass.
package sheet

import (
	"encoding/json"
	"strconv"
)

// Kind discriminates the three cell states.
type Kind int

const (
	// KindMissing marks an absent or blank cell.
	KindMissing Kind = iota
	// KindNumber is a raw numeric cell.
	KindNumber
	// KindText is a raw text cell.
	KindText
)

// Cell is a single worksheet cell value: missing, a number, or text.
type Cell struct {
	Kind   Kind
	Number float64
	Text   string
}

// Missing returns the missing-value marker.
func Missing() Cell {
	return Cell{Kind: KindMissing}
}

// NumberCell returns a numeric cell.
func NumberCell(v float64) Cell {
	return Cell{Kind: KindNumber, Number: v}
}

// TextCell returns a text cell.
func TextCell(s string) Cell {
	return Cell{Kind: KindText, Text: s}
}

// IsMissing reports whether c is the missing-value marker.
func (c Cell) IsMissing() bool {
	return c.Kind == KindMissing
}

// Equal reports whether two cells match: missing matches only missing,
// numbers compare numerically, text compares exactly, and a kind
// mismatch never matches.
func (c Cell) Equal(other Cell) bool {
	if c.Kind != other.Kind {
		return false
	}
	switch c.Kind {
	case KindMissing:
		return true
	case KindNumber:
		return c.Number == other.Number
	default:
		return c.Text == other.Text
	}
}

// String renders the cell for display: numbers in their shortest exact
// form, missing cells as the empty string.
func (c Cell) String() string {
	switch c.Kind {
	case KindNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case KindText:
		return c.Text
	default:
		return ""
	}
}

// MarshalJSON encodes missing as null, numbers as JSON numbers, and
// text as JSON strings.
func (c Cell) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case KindNumber:
		return json.Marshal(c.Number)
	case KindText:
		return json.Marshal(c.Text)
	default:
		return []byte("null"), nil
	}
}
