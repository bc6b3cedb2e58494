package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"calc/internal/source"
)

// LocationJSON представляет местоположение в файле
type LocationJSON struct {
	File      string `json:"file" msgpack:"file"`
	StartByte uint32 `json:"start_byte" msgpack:"start_byte"`
	EndByte   uint32 `json:"end_byte" msgpack:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty" msgpack:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty" msgpack:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty" msgpack:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty" msgpack:"end_col,omitempty"`
}

// NoteJSON представляет дополнительную заметку
type NoteJSON struct {
	Message  string       `json:"message" msgpack:"message"`
	Location LocationJSON `json:"location" msgpack:"location"`
}

// DiagnosticJSON представляет одну диагностику
type DiagnosticJSON struct {
	Severity string       `json:"severity" msgpack:"severity"`
	Code     string       `json:"code" msgpack:"code"`
	Message  string       `json:"message" msgpack:"message"`
	Location LocationJSON `json:"location" msgpack:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty" msgpack:"notes,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics" msgpack:"diagnostics"`
	Count       int              `json:"count" msgpack:"count"`
	Dropped     int              `json:"dropped,omitempty" msgpack:"dropped,omitempty"`
}

func makeLocation(f *source.File, sp source.Span, withPositions bool) LocationJSON {
	loc := LocationJSON{File: f.Path, StartByte: sp.Start, EndByte: sp.End}
	if withPositions {
		start, end := f.Resolve(sp)
		loc.StartLine, loc.StartCol = start.Line, start.Col
		loc.EndLine, loc.EndCol = end.Line, end.Col
	}
	return loc
}

// BuildOutput формирует структуру вывода без сериализации.
func BuildOutput(reports []FileReport, opts MachineOpts) DiagnosticsOutput {
	out := DiagnosticsOutput{Diagnostics: []DiagnosticJSON{}}
	for _, r := range reports {
		items := r.Diagnostics
		dropped := r.Dropped
		if opts.Max > 0 && len(items) > opts.Max {
			dropped += len(items) - opts.Max
			items = items[:opts.Max]
		}
		out.Dropped += dropped
		for _, d := range items {
			dj := DiagnosticJSON{
				Severity: d.Severity.String(),
				Code:     d.Code.ID(),
				Message:  d.Message,
				Location: makeLocation(r.File, d.Primary, opts.IncludePositions),
			}
			if opts.IncludeNotes {
				for _, n := range d.Notes {
					dj.Notes = append(dj.Notes, NoteJSON{
						Message:  n.Msg,
						Location: makeLocation(r.File, n.Span, opts.IncludePositions),
					})
				}
			}
			out.Diagnostics = append(out.Diagnostics, dj)
		}
	}
	out.Count = len(out.Diagnostics)
	return out
}

// JSON пишет диагностики одним JSON-документом с отступами.
func JSON(w io.Writer, reports []FileReport, opts MachineOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(BuildOutput(reports, opts)); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// Msgpack пишет ту же структуру, что и JSON, в формате MessagePack.
func Msgpack(w io.Writer, reports []FileReport, opts MachineOpts) error {
	enc := msgpack.NewEncoder(w)
	if err := enc.Encode(BuildOutput(reports, opts)); err != nil {
		return fmt.Errorf("encode msgpack: %w", err)
	}
	return nil
}

// Write renders reports in the given format.
func Write(w io.Writer, format Format, reports []FileReport, pretty PrettyOpts, machine MachineOpts) error {
	switch format {
	case FormatPretty:
		return Pretty(w, reports, pretty)
	case FormatShort:
		return Short(w, reports)
	case FormatJSON:
		return JSON(w, reports, machine)
	case FormatMsgpack:
		return Msgpack(w, reports, machine)
	default:
		return fmt.Errorf("unsupported format %s", format)
	}
}
