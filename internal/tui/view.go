package tui

import (
	"strings"

	"github.com/Iron-Ham/tock/internal/tui/styles"
	"github.com/Iron-Ham/tock/internal/util"
)

const staleWarning = "Task file changed on disk. Your next change here will overwrite it."

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		if len(m.transcript) > 0 {
			return m.renderExchange(m.transcript[len(m.transcript)-1]) + "\n"
		}
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	var sb strings.Builder
	sb.WriteString(m.renderHeader())
	sb.WriteByte('\n')
	if m.stale {
		sb.WriteString(m.renderBanner())
		sb.WriteByte('\n')
	}
	sb.WriteString(m.viewport.View())
	sb.WriteByte('\n')
	sb.WriteString(m.renderFooter())
	return sb.String()
}

func (m Model) renderHeader() string {
	title := styles.Title.Render("tock")
	if m.opts.Title != "" {
		title += " " + styles.Subtitle.Render(m.opts.Title)
	}
	return styles.Header.Width(max(m.width, 1)).Render(util.TruncateANSI(title, max(m.width, 4)))
}

func (m Model) renderBanner() string {
	return styles.StaleBanner.Render(util.TruncateANSI(staleWarning, max(m.width-2, 4)))
}

func (m Model) renderFooter() string {
	entries := m.keys.Help()
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = styles.HelpKey.Render(e.Keys) + " " + e.Description
	}
	help := util.TruncateANSI(strings.Join(parts, "  "), max(m.width, 4))
	return m.input.View() + "\n" + styles.HelpBar.Render(help)
}

func (m Model) renderTranscript() string {
	parts := make([]string, len(m.transcript))
	for i, ex := range m.transcript {
		parts[i] = m.renderExchange(ex)
	}
	return strings.Join(parts, "\n\n")
}

func (m Model) renderExchange(ex exchange) string {
	reply := ex.reply
	if ex.err == nil {
		reply = styles.HighlightTasks(reply)
	}
	width := max(m.width-4, 20)
	body := styles.ReplyStyle(ex.err).Render(util.WrapANSI(reply, width))
	if ex.input == "" {
		return body
	}
	return styles.Prompt.Render("> ") + styles.UserLine.Render(ex.input) + "\n" + body
}
