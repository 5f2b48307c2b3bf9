package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/tock/internal/tui/keymap"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeypress(msg)

	case fileChangedMsg:
		m.checkStale()
		m.layout()
		return m, nil

	case watchErrMsg:
		m.logger.Warn("task file watcher error", "error", msg.err.Error())
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	command, ok := m.keys.Lookup(msg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch command {
	case keymap.CmdQuit:
		m.quitting = true
		return m, tea.Quit
	case keymap.CmdSubmit:
		return m.submit()
	case keymap.CmdHistoryPrev:
		m.recall(-1)
	case keymap.CmdHistoryNext:
		m.recall(1)
	case keymap.CmdClear:
		m.transcript = m.transcript[:0]
		m.layout()
	case keymap.CmdScrollPageUp, keymap.CmdScrollPageDown:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	case keymap.CmdScrollToTop:
		m.viewport.GotoTop()
	case keymap.CmdScrollToBottom:
		m.viewport.GotoBottom()
	}
	return m, nil
}

// recall moves through the submitted lines like a shell history. Moving past
// the newest entry restores what was being typed.
func (m *Model) recall(step int) {
	pos := m.historyPos + step
	if pos < 0 || pos > len(m.history) {
		return
	}
	if m.historyPos == len(m.history) {
		m.draft = m.input.Value()
	}
	m.historyPos = pos
	if pos == len(m.history) {
		m.input.SetValue(m.draft)
	} else {
		m.input.SetValue(m.history[pos])
	}
	m.input.CursorEnd()
}

// submit hands the input line to the assistant and records the exchange.
func (m Model) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	if strings.TrimSpace(line) == "" {
		return m, nil
	}
	m.input.Reset()
	if n := len(m.history); n == 0 || m.history[n-1] != line {
		m.history = append(m.history, line)
	}
	m.historyPos = len(m.history)
	m.draft = ""

	reply := m.assistant.Handle(line)
	m.transcript = append(m.transcript, exchange{input: line, reply: reply.Message, err: reply.Err})
	if over := len(m.transcript) - m.opts.MaxTranscript; over > 0 {
		m.transcript = append(m.transcript[:0], m.transcript[over:]...)
	}

	if reply.Saved {
		m.stale = false
	}

	m.layout()
	m.viewport.GotoBottom()

	if reply.Fatal() {
		m.err = reply.Err
		m.quitting = true
		return m, tea.Quit
	}
	if reply.Exit {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) checkStale() {
	if m.opts.Stale == nil {
		return
	}
	stale, err := m.opts.Stale()
	if err != nil {
		m.logger.Warn("failed to compare task file", "error", err.Error())
		return
	}
	if stale && !m.stale {
		m.logger.Info("task file changed outside this session")
	}
	m.stale = stale
}

// layout sizes the viewport to the space left by the header, banner and
// input, and refreshes its content.
func (m *Model) layout() {
	if !m.ready {
		return
	}
	chrome := lipgloss.Height(m.renderHeader()) + lipgloss.Height(m.renderFooter())
	if m.stale {
		chrome += lipgloss.Height(m.renderBanner())
	}
	m.viewport.Width = m.width
	m.viewport.Height = max(m.height-chrome, 1)
	m.input.Width = max(m.width-4, 10)

	atBottom := m.viewport.AtBottom()
	m.viewport.SetContent(m.renderTranscript())
	if atBottom {
		m.viewport.GotoBottom()
	}
}
