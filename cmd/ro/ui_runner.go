package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"ro/internal/driver"
	"ro/internal/pipeline"
	"ro/internal/source"
	"ro/internal/ui"
)

type parseDirOutcome struct {
	fs      *source.FileSet
	results []driver.ParseDirResult
	err     error
}

var (
	parseDirFunc  = driver.ParseDir
	runProgressUI = func(model tea.Model) error {
		_, err := tea.NewProgram(model, tea.WithOutput(os.Stderr)).Run()
		return err
	}
)

// runParseDirWithUI parses dir in the background while a progress view
// consumes its events. The view quits when the event channel is closed;
// quitting the view first cancels the parse.
func runParseDirWithUI(ctx context.Context, title, dir string, files []string, opts driver.ParseOptions, jobs int) (*source.FileSet, []driver.ParseDirResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan parseDirOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = pipeline.ChannelSink{Ch: events}
		fs, results, err := parseDirFunc(ctx, dir, optsCopy, jobs)
		outcomeCh <- parseDirOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	uiErr := runProgressUI(ui.NewProgressModel(title, files, events))
	// UI мог завершиться раньше (ctrl+c): останавливаем разбор и дочитываем события
	cancel()
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}
