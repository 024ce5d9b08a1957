package main

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"jlite/internal/driver"
	"jlite/internal/ui"
)

type batchOutcome struct {
	result *driver.BatchResult
	err    error
}

// runBatchWithUI runs the batch in the background and renders its progress
// events until the driver closes the channel.
func runBatchWithUI(ctx context.Context, out io.Writer, title string, paths []string, opts driver.Options) (*driver.BatchResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan batchOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.Run(ctx, paths, optsCopy)
		outcomeCh <- batchOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, paths, events)
	program := tea.NewProgram(model, tea.WithOutput(out))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
