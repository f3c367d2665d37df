package integrity

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/klytics/formkit/internal/report"
	"github.com/klytics/formkit/internal/template"
	"github.com/klytics/formkit/internal/workbook"
)

func writeWorkbook(t *testing.T, dir, name string, cells map[string]map[string]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	first := true
	for sheetName, content := range cells {
		if first {
			f.SetSheetName("Sheet1", sheetName)
			first = false
		} else {
			f.NewSheet(sheetName)
		}
		for cell, value := range content {
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				t.Fatal(err)
			}
		}
	}

	path := filepath.Join(dir, name)
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func headerCells() map[string]map[string]interface{} {
	return map[string]map[string]interface{}{
		"Data": {
			"A1": "Quarter", "B1": "Revenue", "C1": "Region",
			"A2": "Q1", "A3": "Q2", "A4": "Q3", "A5": "Q4",
		},
	}
}

func testDefinition(blank string) *template.Definition {
	return &template.Definition{
		BlankFile: blank,
		Variables: []template.Variable{
			{Name: "revenue", Sheet: "Data", Range: "B2:B5"},
		},
		FixedValues: []template.Fixed{
			{Sheet: "Data", Ranges: []string{"A1:C1", "A2:A5"}},
		},
	}
}

func TestCheckPassesOnUntouchedLayout(t *testing.T) {
	dir := t.TempDir()
	blank := writeWorkbook(t, dir, "blank.xlsx", headerCells())

	filled := headerCells()
	filled["Data"]["B2"] = 1250000.0
	filled["Data"]["B3"] = 450000.0
	target := writeWorkbook(t, dir, "filled.xlsx", filled)

	session := report.NewSession()
	res, err := Check(session, workbook.NewReader(), target, testDefinition(blank))
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if res.Target == nil || res.Blank == nil {
		t.Fatal("expected both caches in the result")
	}
	if len(session.Warnings()) != 0 {
		t.Errorf("unexpected warnings: %v", session.Warnings())
	}
}

func TestCheckReportsEveryModifiedRange(t *testing.T) {
	dir := t.TempDir()
	blank := writeWorkbook(t, dir, "blank.xlsx", headerCells())

	// Change one header character and one quarter label
	filled := headerCells()
	filled["Data"]["B1"] = "Revenu"
	filled["Data"]["A3"] = "Q2x"
	target := writeWorkbook(t, dir, "filled.xlsx", filled)

	session := report.NewSession()
	_, err := Check(session, workbook.NewReader(), target, testDefinition(blank))
	if err == nil {
		t.Fatal("expected ModifiedTemplate failure")
	}

	var fatal *report.Fatal
	if !errors.As(err, &fatal) {
		t.Fatalf("expected *report.Fatal, got %T", err)
	}
	if fatal.Code != report.CodeModifiedTemplate {
		t.Errorf("code = %q", fatal.Code)
	}

	warnings := session.Warnings()
	if len(warnings) != 2 {
		t.Fatalf("expected a warning per modified range, got %d: %v", len(warnings), warnings)
	}
	if !strings.Contains(warnings[0].Message, "Data!A1:C1") {
		t.Errorf("first warning should name the header range: %q", warnings[0].Message)
	}
	if !strings.Contains(warnings[1].Message, "Data!A2:A5") {
		t.Errorf("second warning should name the label range: %q", warnings[1].Message)
	}
}

func TestCheckSingleCharacterDifference(t *testing.T) {
	dir := t.TempDir()
	blank := writeWorkbook(t, dir, "blank.xlsx", headerCells())

	filled := headerCells()
	filled["Data"]["C1"] = "region" // lowercase r
	target := writeWorkbook(t, dir, "filled.xlsx", filled)

	session := report.NewSession()
	_, err := Check(session, workbook.NewReader(), target, testDefinition(blank))
	if err == nil {
		t.Fatal("a single changed character must fail the check")
	}

	warnings := session.Warnings()
	if len(warnings) != 1 || !strings.Contains(warnings[0].Message, "Data!A1:C1") {
		t.Errorf("warnings = %v", warnings)
	}
}

func TestCheckAggregatesMissingSheets(t *testing.T) {
	dir := t.TempDir()
	blank := writeWorkbook(t, dir, "blank.xlsx", headerCells())
	target := writeWorkbook(t, dir, "filled.xlsx", headerCells())

	def := testDefinition(blank)
	def.Variables = append(def.Variables,
		template.Variable{Name: "a", Sheet: "Ghost", Range: "A1"},
		template.Variable{Name: "b", Sheet: "Phantom", Range: "A1"},
	)

	session := report.NewSession()
	_, err := Check(session, workbook.NewReader(), target, def)
	if err == nil {
		t.Fatal("expected MissingSheets failure")
	}

	var fatal *report.Fatal
	if !errors.As(err, &fatal) {
		t.Fatalf("expected *report.Fatal, got %T", err)
	}
	if fatal.Code != report.CodeMissingSheets {
		t.Errorf("code = %q", fatal.Code)
	}
	// Both absent sheets must appear in the one message
	if !strings.Contains(fatal.Message, "Ghost") || !strings.Contains(fatal.Message, "Phantom") {
		t.Errorf("message should list every missing sheet: %q", fatal.Message)
	}
}

func TestCheckMissingBlankReference(t *testing.T) {
	dir := t.TempDir()
	target := writeWorkbook(t, dir, "filled.xlsx", headerCells())

	def := testDefinition(filepath.Join(dir, "absent.xlsx"))

	session := report.NewSession()
	_, err := Check(session, workbook.NewReader(), target, def)

	var fatal *report.Fatal
	if !errors.As(err, &fatal) {
		t.Fatalf("expected *report.Fatal, got %v", err)
	}
	if fatal.Code != report.CodeMissingTemplateFile {
		t.Errorf("code = %q", fatal.Code)
	}
}

func TestCheckMissingTemplateSheetIsImmediate(t *testing.T) {
	dir := t.TempDir()
	// Blank reference lacks the Data sheet entirely
	blank := writeWorkbook(t, dir, "blank.xlsx", map[string]map[string]interface{}{
		"Other": {"A1": "x"},
	})
	target := writeWorkbook(t, dir, "filled.xlsx", headerCells())

	session := report.NewSession()
	_, err := Check(session, workbook.NewReader(), target, testDefinition(blank))

	var fatal *report.Fatal
	if !errors.As(err, &fatal) {
		t.Fatalf("expected *report.Fatal, got %v", err)
	}
	if fatal.Code != report.CodeMissingTemplateSheet {
		t.Errorf("code = %q", fatal.Code)
	}
}
