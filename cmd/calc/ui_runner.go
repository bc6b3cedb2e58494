package main

import (
	"context"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"calc/internal/driver"
	"calc/internal/ui"
)

type dirOutcome struct {
	results []driver.FileResult
	err     error
}

// runDiagnoseDirWithUI checks dir while a progress view renders on stdout.
func runDiagnoseDirWithUI(ctx context.Context, dir string, files []string, opts driver.DirOptions) ([]driver.FileResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan dirOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.DiagnoseDir(ctx, dir, optsCopy)
		outcomeCh <- dirOutcome{results: res, err: err}
		close(events)
	}()

	display := func(path string) string {
		if rel, err := filepath.Rel(dir, path); err == nil {
			return filepath.ToSlash(rel)
		}
		return path
	}
	model := ui.NewProgressModel("checking "+dir, files, display, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	// UI мог выйти раньше (Ctrl+C): дочитываем события, чтобы воркеры не встали
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
