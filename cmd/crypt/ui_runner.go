package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"crypt/internal/driver"
	"crypt/internal/ui"
)

type checkOutcome struct {
	results []driver.FileResult
	err     error
}

// runCheckWithUI runs driver.ParseFiles in the background and renders its
// progress events until the batch finishes.
func runCheckWithUI(ctx context.Context, title string, files []string, opts driver.ParseOptions, jobs int) ([]driver.FileResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.ParseFiles(ctx, files, optsCopy, jobs)
		outcomeCh <- checkOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	// вид мог закрыться раньше пакета: дочитываем события, чтобы не блокировать ParseFiles
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
