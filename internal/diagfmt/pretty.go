package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"calc/internal/diag"
	"calc/internal/source"
)

type palette struct {
	err, warn, info, note, code, gutter, caret *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgBlue, color.Bold),
		code:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.code, p.gutter, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//	   2 | print f(1)
//	     |       ^~~~
//
// затем заметки в том же формате.
func Pretty(w io.Writer, reports []FileReport, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	var b strings.Builder
	for _, r := range reports {
		for _, d := range r.Diagnostics {
			fmt.Fprintf(&b, "%s: %s %s: %s\n",
				position(r.File, d.Primary),
				p.severity(d.Severity).Sprint(d.Severity.String()),
				p.code.Sprint(d.Code.ID()),
				d.Message)
			writeSnippet(&b, p, r.File, d.Primary)
			if opts.ShowNotes {
				for _, n := range d.Notes {
					fmt.Fprintf(&b, "  %s %s: %s\n", p.note.Sprint("note:"), position(r.File, n.Span), n.Msg)
					writeSnippet(&b, p, r.File, n.Span)
				}
			}
		}
		if r.Dropped > 0 {
			fmt.Fprintf(&b, "%s: %d more diagnostic(s) not shown\n", r.File.Path, r.Dropped)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// writeSnippet печатает строку исходника и подчёркивание ^~~~ под span.
// Многострочные span подчёркиваются до конца первой строки.
func writeSnippet(b *strings.Builder, p palette, f *source.File, sp source.Span) {
	start, end := f.Resolve(sp)
	line := f.GetLine(start.Line)
	col := min(int(start.Col)-1, len(line))
	endCol := len(line)
	if end.Line == start.Line {
		endCol = min(int(end.Col)-1, len(line))
	}
	if start.Line == 1 && strings.HasPrefix(line, string(source.BOM)) {
		n := len(source.BOM)
		line, col, endCol = line[n:], max(col-n, 0), max(endCol-n, 0)
	}

	num := fmt.Sprintf("%d", start.Line)
	pad := strings.Repeat(" ", len(num))
	fmt.Fprintf(b, " %s %s %s\n", p.gutter.Sprint(num), p.gutter.Sprint("|"), line)

	width := max(runewidth.StringWidth(line[col:max(endCol, col)]), 1)
	underline := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(b, " %s %s %s%s\n", pad, p.gutter.Sprint("|"), indentFor(line[:col]), p.caret.Sprint(underline))
}

// indentFor returns blanks occupying the same columns as prefix, keeping tabs.
func indentFor(prefix string) string {
	var b strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			b.WriteByte('\t')
			continue
		}
		b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return b.String()
}
