package main

import (
	"fmt"
	"io"
	"os"

	"calc/internal/diag"
	"calc/internal/diagfmt"
	"calc/internal/driver"
	"calc/internal/source"
)

func reportFor(file *source.File, diags []diag.Diagnostic, limit int) diagfmt.FileReport {
	bag := diag.NewBag(limit)
	bag.AddAll(diags)
	return diagfmt.FileReport{File: file, Diagnostics: bag.Items(), Dropped: bag.Dropped()}
}

func writeDiagnostics(w io.Writer, s settings, reports []diagfmt.FileReport) error {
	return diagfmt.Write(w, s.format, reports,
		diagfmt.PrettyOpts{Color: s.color, ShowNotes: true},
		diagfmt.MachineOpts{IncludePositions: true, IncludeNotes: true})
}

// printTimings writes per-file phase timings and query counters to stderr.
func printTimings(path string, res driver.Result) {
	fmt.Fprintf(os.Stderr, "%s\n%s", path, res.Timing.Summary())
	if len(res.Queries) > 0 {
		fmt.Fprintf(os.Stderr, "queries:\n%s", res.Queries.Format())
	}
}

func hasErrors(reports []diagfmt.FileReport) bool {
	for _, r := range reports {
		if r.Dropped > 0 {
			return true
		}
		for _, d := range r.Diagnostics {
			if d.Severity >= diag.SevError {
				return true
			}
		}
	}
	return false
}
