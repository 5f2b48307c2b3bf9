// Package styles holds the lipgloss colors and styles shared by the chat
// interface and the line console.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/tock/internal/errors"
	"github.com/Iron-Ham/tock/internal/task"
)

var (
	// Colors - all colors meet WCAG AA contrast (4.5:1) on both black and dark surfaces
	PrimaryColor   = lipgloss.Color("#A78BFA") // Purple
	SecondaryColor = lipgloss.Color("#10B981") // Green
	WarningColor   = lipgloss.Color("#F59E0B") // Amber
	ErrorColor     = lipgloss.Color("#F87171") // Red
	MutedColor     = lipgloss.Color("#9CA3AF") // Gray
	SurfaceColor   = lipgloss.Color("#1F2937") // Dark surface
	TextColor      = lipgloss.Color("#F9FAFB") // Light text
	BorderColor    = lipgloss.Color("#6B7280") // Gray
	BlueColor      = lipgloss.Color("#60A5FA") // Blue
	PinkColor      = lipgloss.Color("#F472B6") // Pink

	Primary = lipgloss.NewStyle().Foreground(PrimaryColor)
	Muted   = lipgloss.NewStyle().Foreground(MutedColor)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor)

	Subtitle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true)

	Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(BorderColor)

	// Prompt precedes the user's input line.
	Prompt = lipgloss.NewStyle().
		Bold(true).
		Foreground(SecondaryColor)

	// UserLine echoes what the user typed in the transcript.
	UserLine = lipgloss.NewStyle().
			Foreground(TextColor)

	// Reply frames a successful answer.
	Reply = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(PrimaryColor).
		PaddingLeft(1)

	// ErrorReply frames a rejected command.
	ErrorReply = Reply.
			BorderForeground(ErrorColor).
			Foreground(ErrorColor)

	// WarningReply frames a command rejected for its input.
	WarningReply = Reply.
			BorderForeground(WarningColor).
			Foreground(WarningColor)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningMsg = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	// StaleBanner warns that the task file changed behind the session's back.
	StaleBanner = lipgloss.NewStyle().
			Foreground(TextColor).
			Background(WarningColor).
			Bold(true).
			Padding(0, 1)

	HelpBar = lipgloss.NewStyle().
		Foreground(MutedColor)

	HelpKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(SecondaryColor)

	StatusBar = lipgloss.NewStyle().
			Foreground(TextColor).
			Background(SurfaceColor).
			Padding(0, 1)
)

// KindColor returns the color used for a task kind's tag.
func KindColor(kind task.Kind) lipgloss.Color {
	switch kind {
	case task.KindTodo:
		return BlueColor
	case task.KindDeadline:
		return WarningColor
	case task.KindEvent:
		return PinkColor
	default:
		return MutedColor
	}
}

// ReplyStyle returns the frame for a reply that ended with err. Input
// mistakes get the warning frame; any other failure gets the error frame.
func ReplyStyle(err error) lipgloss.Style {
	switch {
	case err == nil:
		return Reply
	case errors.IsInputError(err):
		return WarningReply
	default:
		return ErrorReply
	}
}

// HighlightTasks colors the kind tags and done marks in rendered task text,
// leaving everything else untouched.
func HighlightTasks(text string) string {
	pairs := []string{
		"[X]", lipgloss.NewStyle().Foreground(SecondaryColor).Bold(true).Render("[X]"),
	}
	for _, kind := range []task.Kind{task.KindTodo, task.KindDeadline, task.KindEvent} {
		tag := kind.Tag()
		pairs = append(pairs, tag, lipgloss.NewStyle().Foreground(KindColor(kind)).Render(tag))
	}
	return strings.NewReplacer(pairs...).Replace(text)
}
