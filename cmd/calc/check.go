package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"calc/internal/diagfmt"
	"calc/internal/driver"
	"calc/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [file.calc|dir]...",
	Short: "Parse and type-check calc sources",
	Long: `Check parses and type-checks the given files. Directories are scanned
for *.calc files, which are checked in parallel. Without arguments the
[check].root of calc.toml (or the working directory) is checked.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|short|json|msgpack)")
	checkCmd.Flags().Int("jobs", 0, "parallel files in directory mode (0 = GOMAXPROCS)")
	checkCmd.Flags().String("ui", "auto", "progress view for directories (auto|on|off)")
}

func runCheck(cmd *cobra.Command, args []string) error {
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

	if len(args) == 0 {
		root := "."
		if s.manifest != nil {
			root = s.manifest.CheckRoot()
		}
		args = []string{root}
	}

	var reports []diagfmt.FileReport
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return fmt.Errorf("check %s: %w", arg, err)
		}
		if info.IsDir() {
			rs, err := checkDir(cmd, s, arg)
			if err != nil {
				return err
			}
			reports = append(reports, rs...)
			continue
		}
		r, err := checkFile(cmd, s, arg)
		if err != nil {
			return err
		}
		reports = append(reports, r)
	}

	if err := writeDiagnostics(cmd.OutOrStdout(), s, reports); err != nil {
		return err
	}
	if hasErrors(reports) {
		return errDiagnostics
	}
	if !s.quiet && !s.format.IsBinary() && s.format != diagfmt.FormatJSON {
		fmt.Fprintf(cmd.ErrOrStderr(), "checked %d file(s), no errors\n", len(reports))
	}
	return nil
}

func checkFile(cmd *cobra.Command, s settings, path string) (diagfmt.FileReport, error) {
	file, err := source.LoadFile(path)
	if err != nil {
		return diagfmt.FileReport{}, err
	}
	sess := driver.NewSession(path, file.Text())
	res := sess.Run(cmd.Context())
	if s.timings {
		printTimings(path, res)
	}
	return reportFor(sess.File(), res.Diagnostics, s.maxDiagnostics), nil
}

func checkDir(cmd *cobra.Command, s settings, dir string) ([]diagfmt.FileReport, error) {
	opts := driver.DirOptions{MaxDiagnostics: s.maxDiagnostics, Jobs: s.jobs}

	var (
		results []driver.FileResult
		err     error
	)
	if s.tui {
		files, lerr := driver.ListSourceFiles(dir)
		if lerr != nil {
			return nil, lerr
		}
		results, err = runDiagnoseDirWithUI(cmd.Context(), dir, files, opts)
	} else {
		results, err = driver.DiagnoseDir(cmd.Context(), dir, opts)
	}
	if err != nil {
		return nil, err
	}

	reports := make([]diagfmt.FileReport, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			return nil, r.Err
		}
		if s.timings {
			fmt.Fprintf(os.Stderr, "%s\n%s", r.Path, r.Timing.Summary())
		}
		reports = append(reports, diagfmt.FileReport{File: r.File, Diagnostics: r.Bag.Items(), Dropped: r.Bag.Dropped()})
	}
	return reports, nil
}
