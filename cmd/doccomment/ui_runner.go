package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"doccomment/internal/driver"
	"doccomment/internal/source"
	"doccomment/internal/ui"
)

type parseOutcome struct {
	fs      *source.FileSet
	results []driver.FileResult
	err     error
}

// parseWithUI runs ParseFiles while a Bubble Tea view renders its events on stderr.
func parseWithUI(ctx context.Context, title string, files []string, opts driver.Options) (*source.FileSet, []driver.FileResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan parseOutcome, 1)

	go func() {
		o := opts
		o.Events = events
		fs, results, err := driver.ParseFiles(ctx, files, o)
		outcomeCh <- parseOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// вид мог закрыться раньше (Ctrl-C): останавливаем воркеры и дочитываем события
	cancel()
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if outcome.err == nil && uiErr != nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}
