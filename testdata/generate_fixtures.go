//go:build ignore

// This program generates sample fixture files for FormKit: a blank
// form template, a correctly filled-in copy, and the matching template
// definition. Run from the repo root: go run testdata/generate_fixtures.go
package main

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

const definition = `name: quarterly-survey
blank_file: blank.xlsx
variables:
  - name: revenue
    sheet: Data
    range: B2:B5
  - name: region
    sheet: Data
    range: C2:C5
    type: string
  - name: notes
    sheet: Data
    range: D2
    type: string
fixed_values:
  - sheet: Data
    ranges: ["A1:D1", "A2:A5"]
`

func main() {
	if err := writeWorkbook("testdata/blank.xlsx", false); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating blank.xlsx: %v\n", err)
		os.Exit(1)
	}
	if err := writeWorkbook("testdata/filled.xlsx", true); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating filled.xlsx: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile("testdata/quarterly-survey.yaml", []byte(definition), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing definition: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Fixtures generated successfully.")
}

func writeWorkbook(path string, filled bool) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", "Data")

	// Fixed layout: header row and quarter labels
	headers := []string{"Quarter", "Revenue", "Region", "Notes"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue("Data", cell, h)
	}
	for i, q := range []string{"Q1", "Q2", "Q3", "Q4"} {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		f.SetCellValue("Data", cell, q)
	}

	if filled {
		for i, v := range []float64{1250000, 450000, 320000, 980000} {
			cell, _ := excelize.CoordinatesToCellName(2, i+2)
			f.SetCellValue("Data", cell, v)
		}
		for i, r := range []string{"EMEA", "APAC", "EMEA", "AMER"} {
			cell, _ := excelize.CoordinatesToCellName(3, i+2)
			f.SetCellValue("Data", cell, r)
		}
		f.SetCellValue("Data", "D2", "preliminary figures")
	}

	return f.SaveAs(path)
}
