package sheet

import (
	"testing"

	"github.com/klytics/formkit/internal/cellref"
)

func TestCellEqual(t *testing.T) {
	cases := []struct {
		name string
		a, b Cell
		want bool
	}{
		{"missing vs missing", Missing(), Missing(), true},
		{"missing vs number", Missing(), NumberCell(0), false},
		{"number vs missing", NumberCell(0), Missing(), false},
		{"missing vs empty text", Missing(), TextCell(""), false},
		{"equal numbers", NumberCell(1.5), NumberCell(1.5), true},
		{"unequal numbers", NumberCell(1.5), NumberCell(2.5), false},
		{"equal text", TextCell("Total"), TextCell("Total"), true},
		{"unequal text", TextCell("Total"), TextCell("total"), false},
		{"number vs text", NumberCell(3), TextCell("3"), false},
	}

	for _, tc := range cases {
		if got := tc.a.Equal(tc.b); got != tc.want {
			t.Errorf("%s: Equal = %v, want %v", tc.name, got, tc.want)
		}
		// equality is symmetric
		if got := tc.b.Equal(tc.a); got != tc.want {
			t.Errorf("%s (reversed): Equal = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestCellString(t *testing.T) {
	if got := NumberCell(1250000).String(); got != "1250000" {
		t.Errorf("NumberCell(1250000).String() = %q", got)
	}
	if got := NumberCell(0.5).String(); got != "0.5" {
		t.Errorf("NumberCell(0.5).String() = %q", got)
	}
	if got := Missing().String(); got != "" {
		t.Errorf("Missing().String() = %q", got)
	}
}

func TestCellMarshalJSON(t *testing.T) {
	cases := []struct {
		cell Cell
		want string
	}{
		{Missing(), "null"},
		{NumberCell(2.5), "2.5"},
		{TextCell("EMEA"), `"EMEA"`},
	}
	for _, tc := range cases {
		data, err := tc.cell.MarshalJSON()
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != tc.want {
			t.Errorf("MarshalJSON = %s, want %s", data, tc.want)
		}
	}
}

func TestPadToGrowsWithMissing(t *testing.T) {
	g := Grid{
		{NumberCell(1), NumberCell(2)},
		{NumberCell(3)},
	}

	padded := g.PadTo(4, 3)
	if padded.Rows() != 4 || padded.Cols() != 3 {
		t.Fatalf("padded to %dx%d, want 4x3", padded.Rows(), padded.Cols())
	}

	// Original content preserved
	if !padded[0][0].Equal(NumberCell(1)) || !padded[0][1].Equal(NumberCell(2)) {
		t.Error("first row content changed")
	}
	// Ragged short row filled out
	if !padded[1][1].IsMissing() || !padded[1][2].IsMissing() {
		t.Error("short row should be padded with missing markers")
	}
	// New rows entirely missing
	for c := 0; c < 3; c++ {
		if !padded[3][c].IsMissing() {
			t.Errorf("new row cell %d should be missing", c)
		}
	}
}

func TestPadToNeverShrinks(t *testing.T) {
	g := Grid{
		{NumberCell(1), NumberCell(2), NumberCell(3)},
		{NumberCell(4), NumberCell(5), NumberCell(6)},
	}

	padded := g.PadTo(1, 1)
	if padded.Rows() != 2 || padded.Cols() != 3 {
		t.Errorf("PadTo must never shrink: got %dx%d", padded.Rows(), padded.Cols())
	}
}

func TestSection(t *testing.T) {
	g := Grid{
		{NumberCell(11), NumberCell(12), NumberCell(13)},
		{NumberCell(21), NumberCell(22), NumberCell(23)},
		{NumberCell(31), NumberCell(32), NumberCell(33)},
	}

	sub := g.Section(cellref.Point{Row: 2, Col: 2}, cellref.Point{Row: 3, Col: 3})
	if sub.Rows() != 2 || sub.Cols() != 2 {
		t.Fatalf("section is %dx%d, want 2x2", sub.Rows(), sub.Cols())
	}
	if !sub[0][0].Equal(NumberCell(22)) || !sub[1][1].Equal(NumberCell(33)) {
		t.Errorf("wrong section content: %v", sub)
	}

	// Corner order must not matter
	swapped := g.Section(cellref.Point{Row: 3, Col: 3}, cellref.Point{Row: 2, Col: 2})
	if !sub.Equal(swapped) {
		t.Error("section should be corner-order independent")
	}
}

func TestGridEqual(t *testing.T) {
	a := Grid{{TextCell("Quarter"), Missing()}, {NumberCell(1), NumberCell(2)}}
	b := Grid{{TextCell("Quarter"), Missing()}, {NumberCell(1), NumberCell(2)}}
	if !a.Equal(b) {
		t.Error("identical grids should be equal")
	}

	// One missing marker vs a number at the same cell
	c := Grid{{TextCell("Quarter"), NumberCell(9)}, {NumberCell(1), NumberCell(2)}}
	if a.Equal(c) || c.Equal(a) {
		t.Error("missing vs number must be unequal in both directions")
	}

	// Dimension mismatch
	d := Grid{{TextCell("Quarter"), Missing()}}
	if a.Equal(d) {
		t.Error("grids of different dimensions should be unequal")
	}
}
