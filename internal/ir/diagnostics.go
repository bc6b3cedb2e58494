package ir

import (
	"calc/internal/diag"
	"calc/internal/query"
	"calc/internal/source"
)

// Diagnostics collects the problems reported by parsing and checking.
var Diagnostics = query.NewAccumulator[diag.Diagnostic]("Diagnostics")

// Reporter pushes reported diagnostics into the Diagnostics accumulator of
// the query executing on DB.
type Reporter struct {
	DB *query.Database
}

func (r Reporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	Diagnostics.Push(r.DB, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	})
}
