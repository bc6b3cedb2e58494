package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"calc/internal/diagfmt"
	"calc/internal/project"
)

// settings are the effective options of one command: calc.toml values
// overridden by explicitly set flags.
type settings struct {
	color          bool
	quiet          bool
	timings        bool
	maxDiagnostics int
	format         diagfmt.Format
	jobs           int
	traceLevel     string
	tui            bool // прогресс-вью для каталогов
	manifest       *project.Manifest
}

func loadSettings(cmd *cobra.Command) (settings, error) {
	flags := cmd.Flags()
	var s settings

	manifest, err := loadManifest(cmd)
	if err != nil {
		return s, err
	}
	s.manifest = manifest

	colorMode, err := flags.GetString("color")
	if err != nil {
		return s, fmt.Errorf("failed to get color flag: %w", err)
	}
	if s.color, err = resolveColor(colorMode); err != nil {
		return s, err
	}
	if s.quiet, err = flags.GetBool("quiet"); err != nil {
		return s, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if s.timings, err = flags.GetBool("timings"); err != nil {
		return s, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if s.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return s, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if s.traceLevel, err = flags.GetString("trace-level"); err != nil {
		return s, fmt.Errorf("failed to get trace-level flag: %w", err)
	}

	formatName, uiName := "", ""
	if flags.Lookup("format") != nil {
		formatName, _ = flags.GetString("format")
	}
	if flags.Lookup("ui") != nil {
		uiName, _ = flags.GetString("ui")
	}
	if flags.Lookup("jobs") != nil {
		s.jobs, _ = flags.GetInt("jobs")
	}

	// манифест даёт значения по умолчанию, явные флаги важнее
	if manifest != nil {
		cfg := manifest.Config
		if !flags.Changed("max-diagnostics") && cfg.Check.MaxDiagnostics > 0 {
			s.maxDiagnostics = cfg.Check.MaxDiagnostics
		}
		if !flags.Changed("format") && cfg.Check.Format != "" {
			formatName = cfg.Check.Format
		}
		if !flags.Changed("jobs") && cfg.Check.Jobs > 0 {
			s.jobs = cfg.Check.Jobs
		}
		if !flags.Changed("ui") && cfg.Check.UI != "" {
			uiName = cfg.Check.UI
		}
		if !flags.Changed("trace-level") && cfg.Trace.Level != "" {
			s.traceLevel = cfg.Trace.Level
		}
	}
	if s.maxDiagnostics < 0 {
		return s, fmt.Errorf("--max-diagnostics must be >= 0")
	}
	if s.format, err = diagfmt.ParseFormat(formatName); err != nil {
		return s, err
	}
	if s.tui, err = resolveUI(uiName); err != nil {
		return s, err
	}
	// TUI делит терминал с текстовым выводом, поэтому с quiet и binary выключен
	s.tui = s.tui && !s.quiet && !s.format.IsBinary()
	return s, nil
}

func loadManifest(cmd *cobra.Command) (*project.Manifest, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		return project.LoadFile(path)
	}
	m, _, err := project.Load(".")
	return m, err
}

func resolveColor(mode string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "on", "always":
		return true, nil
	case "off", "never":
		return false, nil
	case "", "auto":
		return isTerminal(os.Stdout) && !color.NoColor, nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
}

// resolveUI maps a --ui / [check].ui value to whether the directory progress
// view runs. auto follows stdout, like --color.
func resolveUI(mode string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "", "auto":
		return isTerminal(os.Stdout), nil
	default:
		return false, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", mode)
	}
}
