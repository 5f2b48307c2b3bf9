// Package tui runs a tock session as a chat-style terminal interface.
package tui

import (
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/tock/internal/assistant"
	"github.com/Iron-Ham/tock/internal/storage"
)

// App wraps the Bubbletea program
type App struct {
	program   *tea.Program
	model     Model
	watcher   *storage.Watcher
	altScreen bool
	input     io.Reader
	output    io.Writer
}

// AppOption configures an App.
type AppOption func(*App)

// WithAltScreen runs the chat in the terminal's alternate screen.
func WithAltScreen(enabled bool) AppOption {
	return func(a *App) {
		a.altScreen = enabled
	}
}

// WithWatcher shows a warning banner when w reports a change the session did
// not make. The App does not close w.
func WithWatcher(w *storage.Watcher) AppOption {
	return func(a *App) {
		a.watcher = w
	}
}

// withIO replaces the terminal with in and out.
func withIO(in io.Reader, out io.Writer) AppOption {
	return func(a *App) {
		a.input = in
		a.output = out
	}
}

// New creates a new TUI application
func New(a *assistant.Assistant, opts Options, appOpts ...AppOption) *App {
	app := &App{model: NewModel(a, opts)}
	for _, opt := range appOpts {
		opt(app)
	}
	return app
}

// Run starts the chat and blocks until the user quits. It returns the error
// that ended the session, such as a failed save.
func (a *App) Run() error {
	var programOpts []tea.ProgramOption
	if a.altScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	if a.input != nil {
		programOpts = append(programOpts, tea.WithInput(a.input), tea.WithOutput(a.output))
	}
	a.program = tea.NewProgram(a.model, programOpts...)

	// Quit cleanly on termination so the final reply is still printed.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigChan)

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-sigChan:
			a.program.Send(tea.Quit())
		case <-done:
		}
	}()

	if a.watcher != nil {
		go a.forwardChanges(done)
	}

	final, err := a.program.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok {
		return m.Err()
	}
	return nil
}

func (a *App) forwardChanges(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case _, ok := <-a.watcher.Changes():
			if !ok {
				return
			}
			a.program.Send(fileChangedMsg{})
		case err, ok := <-a.watcher.Errors():
			if !ok {
				return
			}
			a.program.Send(watchErrMsg{err: err})
		}
	}
}
