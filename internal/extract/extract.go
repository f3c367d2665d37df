package extract

import (
	"os"

	"github.com/klytics/formkit/internal/integrity"
	"github.com/klytics/formkit/internal/report"
	"github.com/klytics/formkit/internal/sheet"
	"github.com/klytics/formkit/internal/template"
)

// Extract is the single entry point for one workbook: it verifies the
// file exists, checks template integrity against the blank reference,
// and extracts every declared variable using the same sheet cache. It
// returns the complete record or the session's fatal error; no partial
// record is ever returned.
func Extract(session *report.Session, reader sheet.Reader, file string, def *template.Definition) (Record, error) {
	if _, err := os.Stat(file); err != nil {
		return nil, session.Errorf(component, report.CodeMissingFile,
			"file not found: %s — check that the path is correct", file)
	}

	checked, err := integrity.Check(session, reader, file, def)
	if err != nil {
		return nil, err
	}

	rec, err := Variables(session, checked.Target, def)
	if err != nil {
		return nil, err
	}

	session.Succeed(component, report.CodeExtracted,
		"extracted %d variable(s) from %s", len(rec), file)
	return rec, nil
}
