// Package cellref parses Excel-style cell references and ranges into
// numeric row/column coordinates.
package cellref

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrBadRange indicates a malformed cell reference or range string.
var ErrBadRange = errors.New("bad range")

// Point is a 1-based cell coordinate.
type Point struct {
	Row int
	Col int
}

var coordPattern = regexp.MustCompile(`^([A-Z]{1,2})([0-9]+)$`)

// CoordToPoint parses a single cell reference like "B3" or "AA12".
// Columns are one or two uppercase letters (A=1 .. Z=26, AA=27 .. ZZ=702).
func CoordToPoint(coord string) (Point, error) {
	m := coordPattern.FindStringSubmatch(coord)
	if m == nil {
		return Point{}, fmt.Errorf("%w: %q is not a cell reference like B3 or AA12", ErrBadRange, coord)
	}

	row, err := strconv.Atoi(m[2])
	if err != nil || row < 1 {
		return Point{}, fmt.Errorf("%w: %q has an invalid row number", ErrBadRange, coord)
	}

	letters := m[1]
	col := 0
	if len(letters) == 2 {
		col = 26 * int(letters[0]-'A'+1)
		col += int(letters[1] - 'A' + 1)
	} else {
		col = int(letters[0] - 'A' + 1)
	}

	return Point{Row: row, Col: col}, nil
}

// RangeToPoints parses a range string into its two corner coordinates.
// A bare cell reference yields the same point twice. The corners are
// returned in the order given, without reordering.
func RangeToPoints(rng string) (Point, Point, error) {
	parts := strings.Split(rng, ":")
	switch len(parts) {
	case 1:
		p, err := CoordToPoint(parts[0])
		if err != nil {
			return Point{}, Point{}, err
		}
		return p, p, nil
	case 2:
		a, err := CoordToPoint(parts[0])
		if err != nil {
			return Point{}, Point{}, err
		}
		b, err := CoordToPoint(parts[1])
		if err != nil {
			return Point{}, Point{}, err
		}
		return a, b, nil
	default:
		return Point{}, Point{}, fmt.Errorf("%w: %q contains more than one ':'", ErrBadRange, rng)
	}
}

// RangeSize returns the rectangle dimensions of a range string.
// The corners may be given in either order.
func RangeSize(rng string) (rows, cols int, err error) {
	a, b, err := RangeToPoints(rng)
	if err != nil {
		return 0, 0, err
	}
	return abs(b.Row-a.Row) + 1, abs(b.Col-a.Col) + 1, nil
}

// ColumnName is the inverse of the column encoding: 1 -> "A", 27 -> "AA".
// Only columns up to ZZ (702) are representable.
func ColumnName(col int) string {
	if col < 1 || col > 26*26+26 {
		return ""
	}
	first := (col - 1) / 26
	if first == 0 {
		return string(rune('A' + col - 1))
	}
	second := col - 26*first
	return string(rune('A'+first-1)) + string(rune('A'+second-1))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
