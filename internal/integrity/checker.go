// Package integrity verifies that a filled-in workbook still matches
// its template: every referenced sheet exists, and every fixed region
// is identical to the canonical blank reference.
package integrity

import (
	"os"
	"strings"

	"github.com/klytics/formkit/internal/report"
	"github.com/klytics/formkit/internal/sheet"
	"github.com/klytics/formkit/internal/template"
)

const component = "integrity"

// Result holds the sheet caches built during a successful check. The
// target cache is reused by variable extraction so every sheet is read
// at most once per run.
type Result struct {
	Target *sheet.Cache
	Blank  *sheet.Cache
}

// Check runs the two-phase integrity protocol. Phase one loads every
// referenced sheet from the target workbook, reporting all missing
// sheets together; the blank reference is then loaded sheet by sheet,
// where any miss is an immediate configuration fault. Phase two
// compares every fixed range between target and blank, warning on each
// mismatch and failing once at the end if any region was modified.
func Check(session *report.Session, reader sheet.Reader, file string, def *template.Definition) (*Result, error) {
	sheets := def.SheetNames()

	target := sheet.NewCache(file)
	if missing := target.Load(reader, sheets); len(missing) > 0 {
		return nil, session.Errorf(component, report.CodeMissingSheets,
			"missing sheets in %s: %s", file, strings.Join(missing, ", "))
	}

	if _, err := os.Stat(def.BlankFile); err != nil {
		return nil, session.Errorf(component, report.CodeMissingTemplateFile,
			"blank reference workbook not found: %s — the template asset is broken", def.BlankFile)
	}

	blank := sheet.NewCache(def.BlankFile)
	for _, name := range sheets {
		// A sheet missing from the blank reference is a corrupt
		// template asset, not user input: fail on the first one.
		if err := blank.LoadOne(reader, name); err != nil {
			return nil, session.Errorf(component, report.CodeMissingTemplateSheet,
				"blank reference %s has no sheet %q: %v", def.BlankFile, name, err)
		}
	}

	modified := 0
	for _, fx := range def.FixedValues {
		for _, rng := range fx.Ranges {
			got, err := target.ReadRange(fx.Sheet, rng)
			if err != nil {
				return nil, session.Errorf(component, report.CodeBadRange,
					"fixed range %s!%s: %v", fx.Sheet, rng, err)
			}
			want, err := blank.ReadRange(fx.Sheet, rng)
			if err != nil {
				return nil, session.Errorf(component, report.CodeBadRange,
					"fixed range %s!%s in blank reference: %v", fx.Sheet, rng, err)
			}
			if !got.Equal(want) {
				session.Warnf(component, report.CodeModifiedTemplateRange,
					"fixed range %s!%s differs from the blank reference", fx.Sheet, rng)
				modified++
			}
		}
	}
	if modified > 0 {
		return nil, session.Errorf(component, report.CodeModifiedTemplate,
			"%d fixed range(s) were modified — the form layout must not be changed", modified)
	}

	session.Succeed(component, report.CodeTemplateVerified,
		"%s matches the template layout", file)
	return &Result{Target: target, Blank: blank}, nil
}
