package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"calc/internal/diagfmt"
	"calc/internal/driver"
	"calc/internal/ir"
	"calc/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file.calc>",
	Short: "Print the IR tree of a calc source",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	cleanup, err := setupTracing(cmd, s.traceLevel)
	if err != nil {
		return err
	}
	defer cleanup()
	defer dumpRingOnPanic(cmd)

	file, err := source.LoadFile(args[0])
	if err != nil {
		return err
	}
	sess := driver.NewSession(args[0], file.Text())
	res := sess.Run(cmd.Context())

	fmt.Fprint(cmd.OutOrStdout(), ir.Dump(sess.DB(), res.Program))
	if s.timings {
		printTimings(args[0], res)
	}
	if len(res.Diagnostics) == 0 {
		return nil
	}
	report := reportFor(sess.File(), res.Diagnostics, s.maxDiagnostics)
	if err := writeDiagnostics(cmd.ErrOrStderr(), s, []diagfmt.FileReport{report}); err != nil {
		return err
	}
	return errDiagnostics
}
