package diag

import (
	"slices"

	"calc/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(slices.Clone(d.Notes), Note{Span: sp, Msg: msg})
	return d
}

// Equal compares diagnostics field by field, notes included.
func (d Diagnostic) Equal(other Diagnostic) bool {
	return d.Severity == other.Severity &&
		d.Code == other.Code &&
		d.Message == other.Message &&
		d.Primary == other.Primary &&
		slices.Equal(d.Notes, other.Notes)
}
