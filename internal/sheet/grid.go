package sheet

import "github.com/klytics/formkit/internal/cellref"

// Grid is a rectangular block of cells indexed [row][col], 0-based in
// Go but representing 1-based worksheet coordinates.
type Grid [][]Cell

// Rows returns the number of rows in the grid.
func (g Grid) Rows() int {
	return len(g)
}

// Cols returns the width of the grid. Grids are kept rectangular, so
// the first row is authoritative.
func (g Grid) Cols() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// PadTo grows the grid to at least rows x cols, filling the new
// trailing rows first and then the new trailing columns with the
// missing-value marker. Workbook readers drop trailing all-blank rows
// and columns, so a short read is recovered here rather than treated
// as a shape error.
func (g Grid) PadTo(rows, cols int) Grid {
	if cols < g.Cols() {
		cols = g.Cols()
	}

	out := make(Grid, 0, max(rows, len(g)))
	for _, row := range g {
		padded := make([]Cell, cols)
		copy(padded, row)
		for i := len(row); i < cols; i++ {
			padded[i] = Missing()
		}
		out = append(out, padded)
	}
	for len(out) < rows {
		blank := make([]Cell, cols)
		for i := range blank {
			blank[i] = Missing()
		}
		out = append(out, blank)
	}
	return out
}

// Section returns the sub-grid covering the rectangle between the two
// corner points (1-based, inclusive, either order). The grid must
// already cover the rectangle; callers pad first.
func (g Grid) Section(a, b cellref.Point) Grid {
	top, bottom := min(a.Row, b.Row), max(a.Row, b.Row)
	left, right := min(a.Col, b.Col), max(a.Col, b.Col)

	out := make(Grid, 0, bottom-top+1)
	for r := top; r <= bottom; r++ {
		out = append(out, g[r-1][left-1:right:right])
	}
	return out
}

// Equal reports whether two grids have the same dimensions and every
// cell pair matches under Cell.Equal.
func (g Grid) Equal(other Grid) bool {
	if g.Rows() != other.Rows() || g.Cols() != other.Cols() {
		return false
	}
	for r := range g {
		for c := range g[r] {
			if !g[r][c].Equal(other[r][c]) {
				return false
			}
		}
	}
	return true
}
