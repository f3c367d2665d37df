// Package extract turns a validated workbook into a typed record of
// its declared variables.
package extract

import (
	"strconv"

	"github.com/klytics/formkit/internal/cellref"
	"github.com/klytics/formkit/internal/report"
	"github.com/klytics/formkit/internal/sheet"
	"github.com/klytics/formkit/internal/template"
)

const component = "extract"

// Record maps variable names to their extracted value grids. A grid's
// dimensions always equal the rectangle declared by the variable's
// range string.
type Record map[string]sheet.Grid

// numberSentinels are the text values a number-typed cell may hold to
// mean "no value". Each converts to the missing-value marker.
var numberSentinels = map[string]bool{
	"---":      true,
	"#VALUE!":  true,
	"#DIV/0!":  true,
	"Overflow": true,
}

// Variables extracts every declared variable from the target cache.
// Each variable is processed independently: a failure warns and moves
// on, so the final report names every broken variable. If any failed,
// the whole extraction fails once at the end.
func Variables(session *report.Session, target *sheet.Cache, def *template.Definition) (Record, error) {
	rec := make(Record, len(def.Variables))
	failed := 0

	for _, v := range def.Variables {
		switch v.EffectiveType() {
		case template.TypeNumber, template.TypeString:
		default:
			// A bad declared type is a broken template definition,
			// not user input: abort immediately.
			return nil, session.Errorf(component, report.CodeBadRangeType,
				"variable %q declares unknown type %q — expected %q or %q",
				v.Name, v.Type, template.TypeNumber, template.TypeString)
		}

		grid, err := target.ReadRange(v.Sheet, v.Range)
		if err != nil {
			session.Warnf(component, report.CodeFailedRangeRead,
				"could not read %s!%s for variable %q: %v", v.Sheet, v.Range, v.Name, err)
			failed++
			continue
		}

		grid, ok := coerce(session, v, grid)
		if !ok {
			failed++
			continue
		}
		rec[v.Name] = grid
	}

	if failed > 0 {
		return nil, session.Errorf(component, report.CodeFailedExtraction,
			"%d of %d variable(s) could not be extracted", failed, len(def.Variables))
	}
	return rec, nil
}

// coerce applies the variable's declared type to a raw grid. For
// number variables, sentinel text converts to the missing-value marker
// and any other text warns per cell and fails the variable. For string
// variables, numeric cells are stringified. Every cell is visited even
// after a failure so the report is complete.
func coerce(session *report.Session, v template.Variable, grid sheet.Grid) (sheet.Grid, bool) {
	a, b, _ := cellref.RangeToPoints(v.Range)
	topRow, leftCol := min(a.Row, b.Row), min(a.Col, b.Col)

	out := make(sheet.Grid, len(grid))
	ok := true
	for r, row := range grid {
		cells := make([]sheet.Cell, len(row))
		for c, cell := range row {
			switch v.EffectiveType() {
			case template.TypeNumber:
				converted, valid := coerceNumber(cell)
				if !valid {
					coord := cellref.ColumnName(leftCol+c) + strconv.Itoa(topRow+r)
					session.Warnf(component, report.CodeNonNumericValue,
						"variable %q: non-numeric value %q at %s!%s", v.Name, cell.Text, v.Sheet, coord)
					ok = false
				}
				cells[c] = converted
			default:
				cells[c] = coerceString(cell)
			}
		}
		out[r] = cells
	}
	return out, ok
}

func coerceNumber(cell sheet.Cell) (sheet.Cell, bool) {
	switch cell.Kind {
	case sheet.KindMissing, sheet.KindNumber:
		return cell, true
	default:
		if numberSentinels[cell.Text] {
			return sheet.Missing(), true
		}
		return cell, false
	}
}

func coerceString(cell sheet.Cell) sheet.Cell {
	if cell.Kind == sheet.KindNumber {
		return sheet.TextCell(cell.String())
	}
	return cell
}
