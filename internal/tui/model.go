package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/tock/internal/assistant"
	"github.com/Iron-Ham/tock/internal/logging"
	"github.com/Iron-Ham/tock/internal/tui/keymap"
)

// StaleFunc reports whether the task file differs from what the session
// last read or wrote.
type StaleFunc func() (bool, error)

// Options configures the chat model.
type Options struct {
	// Title is shown in the header, usually the task file path.
	Title string
	// MaxTranscript caps the number of exchanges kept. Older ones scroll
	// away for good.
	MaxTranscript int
	// Stale is consulted when the task file changes on disk. Nil disables
	// the warning banner.
	Stale  StaleFunc
	Keymap *keymap.Keymap
	Logger *logging.Logger
}

// exchange is one turn of the conversation. The greeting has no input.
type exchange struct {
	input string
	reply string
	err   error
}

// Model is the Bubble Tea model of a chat session.
type Model struct {
	assistant *assistant.Assistant
	opts      Options
	logger    *logging.Logger

	input      textinput.Model
	viewport   viewport.Model
	transcript []exchange
	keys       *keymap.Keymap

	// history holds submitted lines, oldest first. historyPos indexes it
	// while recalling; len(history) means the line being typed, kept in
	// draft.
	history    []string
	historyPos int
	draft      string

	width  int
	height int
	ready  bool

	stale    bool
	quitting bool
	err      error
}

// NewModel returns a chat model that starts with the greeting.
func NewModel(a *assistant.Assistant, opts Options) Model {
	if opts.MaxTranscript < 1 {
		opts.MaxTranscript = 500
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}
	keys := opts.Keymap
	if keys == nil {
		keys = keymap.DefaultKeymap()
	}

	ti := textinput.New()
	ti.Placeholder = "todo read book"
	ti.Prompt = "> "
	ti.CharLimit = 1024
	ti.Focus()

	return Model{
		assistant:  a,
		opts:       opts,
		logger:     logger,
		input:      ti,
		viewport:   viewport.New(80, 20),
		transcript: []exchange{{reply: assistant.Greeting()}},
		keys:       keys,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Err returns the error that ended the session, if any.
func (m Model) Err() error {
	return m.err
}

// Transcript returns the replies shown so far, oldest first.
func (m Model) Transcript() []string {
	out := make([]string, len(m.transcript))
	for i, ex := range m.transcript {
		out[i] = ex.reply
	}
	return out
}

// Stale reports whether the warning banner is showing.
func (m Model) Stale() bool {
	return m.stale
}
