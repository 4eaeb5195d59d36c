package diagnostic

import (
	"encoding/json"
	"fmt"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// Formatter formats diagnostics into different output formats
type Formatter interface {
	// Format formats diagnostics into a specific output format
	Format(diagnostics *Diagnostics) ([]byte, error)
}

// VSCodeFormatter formats diagnostics into VSCode-compatible format.
// Severities map to 1 (error), 2 (warning), 4 (hint); ranges are zero-based
// line/character pairs computed against the document text.
type VSCodeFormatter struct {
	DocText string
}

func NewVSCodeFormatter(docText string) *VSCodeFormatter {
	return &VSCodeFormatter{DocText: docText}
}

type vscodeRange struct {
	Start vscodePlace `json:"start"`
	End   vscodePlace `json:"end"`
}

type vscodePlace struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

type vscodeDiagnostic struct {
	Severity int         `json:"severity"`
	Message  string      `json:"message"`
	Range    vscodeRange `json:"range"`
}

// Format implements Formatter
func (f *VSCodeFormatter) Format(diagnostics *Diagnostics) ([]byte, error) {
	if diagnostics == nil {
		return nil, errors.Errorf("diagnostics is nil")
	}

	result := []vscodeDiagnostic{}
	appendAll := func(list []Diagnostic, severity int) {
		for _, d := range list {
			r := d.Location.GetRange(f.DocText)
			result = append(result, vscodeDiagnostic{
				Severity: severity,
				Message:  d.Message,
				Range: vscodeRange{
					Start: vscodePlace{Line: r.Start.Line, Character: r.Start.Character},
					End:   vscodePlace{Line: r.End.Line, Character: r.End.Character},
				},
			})
		}
	}

	appendAll(diagnostics.Errors, 1)
	appendAll(diagnostics.Warnings, 2)
	appendAll(diagnostics.Hints, 4)

	return json.Marshal(result)
}

// TextFormatter renders diagnostics as one "line:col severity: message" row
// per diagnostic, for terminal consumption.
type TextFormatter struct {
	DocText  string
	Filename string
}

func NewTextFormatter(docText, filename string) *TextFormatter {
	return &TextFormatter{DocText: docText, Filename: filename}
}

// Format implements Formatter
func (f *TextFormatter) Format(diagnostics *Diagnostics) ([]byte, error) {
	if diagnostics == nil {
		return nil, errors.Errorf("diagnostics is nil")
	}

	var b strings.Builder
	writeAll := func(list []Diagnostic, severity Severity) {
		for _, d := range list {
			line, col := d.Location.GetLineAndColumn(f.DocText)
			fmt.Fprintf(&b, "%s:%d:%d: %s: %s\n", f.Filename, line+1, col+1, severity, d.Message)
		}
	}

	writeAll(diagnostics.Errors, SeverityError)
	writeAll(diagnostics.Warnings, SeverityWarning)
	writeAll(diagnostics.Hints, SeverityHint)

	return []byte(b.String()), nil
}
