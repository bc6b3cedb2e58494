package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"calc/internal/diag"
	"calc/internal/source"
)

func sampleReport() []FileReport {
	f := source.NewFile("t.calc", []byte("fn f(a, b) = a + b\nprint f(1)\n"))
	d := diag.NewError(diag.SemaArityMismatch, source.SpanOf(25, 29), "function `f` expects 2 arguments, but 1 was given").
		WithNote(source.SpanOf(3, 4), "`f` is declared here")
	return []FileReport{{File: f, Diagnostics: []diag.Diagnostic{d}}}
}

func TestPrettyPlain(t *testing.T) {
	var buf bytes.Buffer
	if err := Pretty(&buf, sampleReport(), PrettyOpts{ShowNotes: true}); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"t.calc:2:7: ERROR SEM3002: function `f` expects 2 arguments, but 1 was given",
		" 2 | print f(1)",
		"   |       ^~~~",
		"  note: t.calc:1:4: `f` is declared here",
		" 1 | fn f(a, b) = a + b",
		"   |    ^",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Errorf("pretty output:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyReportsDropped(t *testing.T) {
	reports := sampleReport()
	reports[0].Dropped = 3
	var buf bytes.Buffer
	if err := Pretty(&buf, reports, PrettyOpts{}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "t.calc: 3 more diagnostic(s) not shown") {
		t.Errorf("missing dropped line:\n%s", buf.String())
	}
	if strings.Contains(buf.String(), "note:") {
		t.Error("notes must be hidden unless requested")
	}
}

func TestCaretUnderWideRunes(t *testing.T) {
	if got := indentFor("a\t漢"); got != " \t  " {
		t.Errorf("indentFor = %q", got)
	}
	f := source.NewFile("w.calc", []byte("print 漢(1)"))
	var b strings.Builder
	writeSnippet(&b, newPalette(false), f, source.SpanOf(6, 12))
	lines := strings.Split(b.String(), "\n")
	if len(lines) < 2 || lines[1] != "   |       ^~~~~" {
		t.Errorf("snippet:\n%s", b.String())
	}
}

func TestSnippetSkipsBOMAndCR(t *testing.T) {
	f := source.NewFile("bom.calc", []byte("\ufeffprint g(1)\r\nprint 2"))
	var b strings.Builder
	writeSnippet(&b, newPalette(false), f, source.SpanOf(9, 13))
	want := " 1 | print g(1)\n   |       ^~~~\n"
	if got := b.String(); got != want {
		t.Errorf("snippet:\n%q\nwant:\n%q", got, want)
	}
}

func TestShort(t *testing.T) {
	var buf bytes.Buffer
	if err := Short(&buf, sampleReport()); err != nil {
		t.Fatal(err)
	}
	want := "t.calc:2:7: ERROR SEM3002: function `f` expects 2 arguments, but 1 was given\n"
	if buf.String() != want {
		t.Errorf("short = %q", buf.String())
	}
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, sampleReport(), MachineOpts{IncludePositions: true, IncludeNotes: true}); err != nil {
		t.Fatal(err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Count != 1 || out.Diagnostics[0].Code != "SEM3002" {
		t.Fatalf("output = %+v", out)
	}
	loc := out.Diagnostics[0].Location
	if loc.StartByte != 25 || loc.EndByte != 29 || loc.StartLine != 2 || loc.StartCol != 7 {
		t.Errorf("location = %+v", loc)
	}
	if len(out.Diagnostics[0].Notes) != 1 {
		t.Errorf("notes = %+v", out.Diagnostics[0].Notes)
	}
}

func TestMachineMaxCountsDropped(t *testing.T) {
	reports := sampleReport()
	d := reports[0].Diagnostics[0]
	reports[0].Diagnostics = append(reports[0].Diagnostics, d, d)
	out := BuildOutput(reports, MachineOpts{Max: 1})
	if out.Count != 1 || out.Dropped != 2 {
		t.Errorf("count=%d dropped=%d", out.Count, out.Dropped)
	}
	if out.Diagnostics[0].Notes != nil || out.Diagnostics[0].Location.StartLine != 0 {
		t.Error("notes and positions are opt-in")
	}
}

func TestMsgpackOutput(t *testing.T) {
	var buf bytes.Buffer
	if err := Msgpack(&buf, sampleReport(), MachineOpts{}); err != nil {
		t.Fatal(err)
	}
	var out DiagnosticsOutput
	if err := msgpack.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Count != 1 || out.Diagnostics[0].Message != "function `f` expects 2 arguments, but 1 was given" {
		t.Errorf("output = %+v", out)
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatPretty, "SHORT": FormatShort, "json": FormatJSON, "msgpack": FormatMsgpack} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("sarif"); err == nil {
		t.Error("unknown format must fail")
	}
}
