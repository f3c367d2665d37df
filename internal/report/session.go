// Package report collects structured diagnostics for one extraction
// session. Components record successes and warnings as they go and
// obtain fatal errors that carry the full diagnostic history, so a
// user sees every violation from one run instead of fixing them one
// at a time.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Severity of a recorded diagnostic.
type Severity int

const (
	// SeverityInfo records a successful step.
	SeverityInfo Severity = iota
	// SeverityWarning records a recoverable, aggregable violation.
	SeverityWarning
	// SeverityFatal records the condition that aborted the session.
	SeverityFatal
)

// String returns the lowercase severity name.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityFatal:
		return "fatal"
	default:
		return "info"
	}
}

// MarshalJSON encodes the severity as its name.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Code identifies a diagnostic condition.
type Code string

// Diagnostic codes raised by the validation and extraction pipeline.
const (
	CodeMissingFile           Code = "missing_file"
	CodeMissingSheets         Code = "missing_sheets"
	CodeMissingTemplateFile   Code = "missing_template_file"
	CodeMissingTemplateSheet  Code = "missing_template_sheet"
	CodeModifiedTemplateRange Code = "modified_template_range"
	CodeModifiedTemplate      Code = "modified_template"
	CodeBadRange              Code = "bad_range"
	CodeBadRangeType          Code = "bad_range_type"
	CodeNonNumericValue       Code = "non_numeric_value"
	CodeFailedRangeRead       Code = "failed_range_read"
	CodeFailedExtraction      Code = "failed_extraction"
	CodeTemplateVerified      Code = "template_verified"
	CodeExtracted             Code = "extracted"
)

// Diagnostic is a single recorded event.
type Diagnostic struct {
	Severity  Severity `json:"severity"`
	Component string   `json:"component"`
	Code      Code     `json:"code"`
	Message   string   `json:"message"`
}

// Fatal is the error returned when a session aborts. It carries the
// aborting diagnostic plus everything recorded before it, so callers
// can render the complete report.
type Fatal struct {
	Diagnostic
	History []Diagnostic
}

// Error implements the error interface.
func (f *Fatal) Error() string {
	return fmt.Sprintf("%s: %s", f.Code, f.Message)
}

// Session accumulates diagnostics for one extraction call.
type Session struct {
	diags []Diagnostic
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{}
}

// Succeed records an informational diagnostic.
func (s *Session) Succeed(component string, code Code, format string, args ...interface{}) {
	s.record(SeverityInfo, component, code, format, args...)
}

// Warnf records a warning and continues. Warnings are the aggregable
// violations: every one is kept so the final fatal report names them all.
func (s *Session) Warnf(component string, code Code, format string, args ...interface{}) {
	s.record(SeverityWarning, component, code, format, args...)
}

// Errorf records a fatal diagnostic and returns the *Fatal that ends
// the session. The returned error carries the full history, warnings
// included.
func (s *Session) Errorf(component string, code Code, format string, args ...interface{}) error {
	d := s.record(SeverityFatal, component, code, format, args...)
	history := make([]Diagnostic, len(s.diags))
	copy(history, s.diags)
	return &Fatal{Diagnostic: d, History: history}
}

func (s *Session) record(sev Severity, component string, code Code, format string, args ...interface{}) Diagnostic {
	d := Diagnostic{
		Severity:  sev,
		Component: component,
		Code:      code,
		Message:   fmt.Sprintf(format, args...),
	}
	s.diags = append(s.diags, d)
	return d
}

// Diagnostics returns everything recorded so far, in order.
func (s *Session) Diagnostics() []Diagnostic {
	return s.diags
}

// Warnings returns only the warning-severity diagnostics.
func (s *Session) Warnings() []Diagnostic {
	var out []Diagnostic
	for _, d := range s.diags {
		if d.Severity == SeverityWarning {
			out = append(out, d)
		}
	}
	return out
}

// Render writes a human-readable report of every diagnostic: warnings
// in yellow, fatals in red, successes dimmed.
func (s *Session) Render(w io.Writer) {
	warnStyle := color.New(color.FgYellow)
	fatalStyle := color.New(color.FgRed, color.Bold)
	dim := color.New(color.FgHiBlack)

	for _, d := range s.diags {
		switch d.Severity {
		case SeverityWarning:
			warnStyle.Fprintf(w, "warning [%s/%s] %s\n", d.Component, d.Code, d.Message)
		case SeverityFatal:
			fatalStyle.Fprintf(w, "error [%s/%s] %s\n", d.Component, d.Code, d.Message)
		default:
			dim.Fprintf(w, "ok [%s/%s] %s\n", d.Component, d.Code, d.Message)
		}
	}
}
