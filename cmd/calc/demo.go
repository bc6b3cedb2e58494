package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"calc/internal/diagfmt"
	"calc/internal/driver"
)

const demoSource = `fn area_rectangle(w, h) = w * h
fn area_circle(r) = 3.14 * r * r
print area_rectangle(3, 4)
print area_circle(1)
print 11 * 2
`

// the edit changes area_circle only; area_rectangle stays cached
const demoEdited = `fn area_rectangle(w, h) = w * h
fn area_circle(r, pi) = pi * r * r
print area_rectangle(3, 4)
print area_circle(1)
print 11 * 2
`

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Compile a built-in program, edit one function and recompile",
	Args:  cobra.NoArgs,
	RunE:  runDemo,
}

func runDemo(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	cleanup, err := setupTracing(cmd, s.traceLevel)
	if err != nil {
		return err
	}
	defer cleanup()
	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()
	defer dumpRingOnPanic(cmd)

	out := cmd.OutOrStdout()
	heading := color.New(color.Bold)
	if s.color {
		heading.EnableColor()
	} else {
		heading.DisableColor()
	}

	sess := driver.NewSession("demo.calc", demoSource)
	for i, text := range []string{demoSource, demoEdited} {
		if i > 0 {
			sess.Edit(text)
		}
		res := sess.Run(cmd.Context())

		fmt.Fprintln(out, heading.Sprintf("== run %d (revision %d) ==", i+1, sess.DB().Revision()))
		fmt.Fprint(out, text)
		fmt.Fprintln(out)
		if err := printDemoDiagnostics(out, s, sess, res); err != nil {
			return err
		}
		fmt.Fprintln(out, heading.Sprint("queries:"))
		fmt.Fprint(out, res.Queries.Format())
		if s.timings {
			fmt.Fprint(out, res.Timing.Summary())
		}
		fmt.Fprintln(out)
	}
	return nil
}

func printDemoDiagnostics(out io.Writer, s settings, sess *driver.Session, res driver.Result) error {
	if len(res.Diagnostics) == 0 {
		fmt.Fprintln(out, "no diagnostics")
		return nil
	}
	report := reportFor(sess.File(), res.Diagnostics, s.maxDiagnostics)
	return diagfmt.Pretty(out, []diagfmt.FileReport{report}, diagfmt.PrettyOpts{Color: s.color, ShowNotes: true})
}
