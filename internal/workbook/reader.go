// Package workbook reads .xlsx worksheets into typed cell grids.
package workbook

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/klytics/formkit/internal/sheet"
)

// Reader reads sheets from .xlsx files via excelize. It implements
// sheet.Reader.
type Reader struct{}

// NewReader returns a workbook reader.
func NewReader() *Reader {
	return &Reader{}
}

// ReadSheet reads one worksheet into a rectangular grid, preserving
// the numeric vs text distinction. Blank cells become the
// missing-value marker. excelize drops trailing all-blank rows, so the
// returned grid may be smaller than the nominal sheet extent; callers
// pad to their declared rectangle.
func (r *Reader) ReadSheet(path, sheetName string) (sheet.Grid, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s — is this a valid .xlsx file? %w", path, err)
	}
	defer f.Close()

	idx, err := f.GetSheetIndex(sheetName)
	if err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet %q not found in %s — available sheets: %v", sheetName, path, f.GetSheetList())
	}

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("could not read sheet %q: %w", sheetName, err)
	}

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	grid := make(sheet.Grid, len(rows))
	for i, row := range rows {
		cells := make([]sheet.Cell, width)
		for j := range cells {
			cells[j] = sheet.Missing()
		}
		for j, raw := range row {
			cells[j], err = r.cell(f, sheetName, i+1, j+1, raw)
			if err != nil {
				return nil, err
			}
		}
		grid[i] = cells
	}

	return grid, nil
}

// cell classifies one raw value. Cells typed as strings in the
// workbook stay text even when they look numeric; untyped cells fall
// back to a numeric parse.
func (r *Reader) cell(f *excelize.File, sheetName string, row, col int, raw string) (sheet.Cell, error) {
	if raw == "" {
		return sheet.Missing(), nil
	}

	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return sheet.Cell{}, fmt.Errorf("could not name cell (%d,%d) on %q: %w", row, col, sheetName, err)
	}

	ct, err := f.GetCellType(sheetName, name)
	if err != nil {
		return sheet.Cell{}, fmt.Errorf("could not inspect cell %s on %q: %w", name, sheetName, err)
	}

	switch ct {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeError:
		return sheet.TextCell(raw), nil
	}

	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return sheet.NumberCell(v), nil
	}
	return sheet.TextCell(raw), nil
}
