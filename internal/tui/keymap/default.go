package keymap

import tea "github.com/charmbracelet/bubbletea"

// DefaultKeymap returns the chat screen bindings.
func DefaultKeymap() *Keymap {
	return &Keymap{
		Name: "default",
		Bindings: []KeyBinding{
			{KeyType: tea.KeyEnter, Command: CmdSubmit, Description: "send", Category: "Input"},
			{KeyType: tea.KeyUp, Command: CmdHistoryPrev, Description: "previous command", Category: "Input"},
			{KeyType: tea.KeyDown, Command: CmdHistoryNext, Description: "next command", Category: "Input"},
			{KeyType: tea.KeyCtrlL, Command: CmdClear, Description: "clear", Category: "Input"},

			{KeyType: tea.KeyPgUp, Command: CmdScrollPageUp, Description: "page up", Category: "Scrolling"},
			{KeyType: tea.KeyPgDown, Command: CmdScrollPageDown, Description: "page down", Category: "Scrolling"},
			{KeyType: tea.KeyCtrlHome, Command: CmdScrollToTop, Description: "top", Category: "Scrolling"},
			{KeyType: tea.KeyCtrlEnd, Command: CmdScrollToBottom, Description: "bottom", Category: "Scrolling"},

			{KeyType: tea.KeyEsc, Command: CmdQuit, Description: "quit", Category: "Exit"},
			{KeyType: tea.KeyCtrlC, Command: CmdQuit, Description: "quit", Category: "Exit"},
		},
	}
}
