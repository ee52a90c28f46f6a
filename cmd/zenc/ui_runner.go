package main

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"zenc/internal/driver"
	"zenc/internal/ui"
)

type dirOutcome struct {
	result *driver.DirResult
	err    error
}

// parseDirWithUI runs driver.ParseDir while a Bubble Tea progress view
// consumes its per-file events.
func parseDirWithUI(ctx context.Context, out io.Writer, title, dir string, opts driver.Options) (*driver.DirResult, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("missing project config")
	}
	files, err := opts.Config.CollectSources(dir)
	if err != nil {
		return nil, fmt.Errorf("collect sources in %s: %w", dir, err)
	}
	events := make(chan driver.FileEvent, 256)
	outcomeCh := make(chan dirOutcome, 1)

	go func() {
		runOpts := opts
		runOpts.Progress = func(ev driver.FileEvent) { events <- ev }
		res, err := driver.ParseDir(ctx, dir, runOpts)
		outcomeCh <- dirOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(out))
	_, uiErr := program.Run()
	// UI мог завершиться раньше (ctrl+c): дочитываем события, чтобы воркеры не встали
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
