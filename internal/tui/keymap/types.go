// Package keymap maps key presses in the chat screen to named commands. Keys
// that match no binding belong to the input line.
package keymap

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Command is a named action a key binding triggers.
type Command string

const (
	CmdSubmit         Command = "submit"
	CmdQuit           Command = "quit"
	CmdHistoryPrev    Command = "history_prev"
	CmdHistoryNext    Command = "history_next"
	CmdScrollPageUp   Command = "scroll_page_up"
	CmdScrollPageDown Command = "scroll_page_down"
	CmdScrollToTop    Command = "scroll_to_top"
	CmdScrollToBottom Command = "scroll_to_bottom"
	CmdClear          Command = "clear"
)

// KeyBinding ties one key to a command.
type KeyBinding struct {
	// KeyType is the key. For printable keys use tea.KeyRunes and set Rune.
	KeyType tea.KeyType

	// Rune is the character for tea.KeyRunes bindings.
	Rune rune

	// Alt requires the alt modifier.
	Alt bool

	Command     Command
	Description string

	// Category groups bindings in the help line.
	Category string
}

// Matches reports whether msg is this binding's key.
func (kb KeyBinding) Matches(msg tea.KeyMsg) bool {
	if msg.Alt != kb.Alt {
		return false
	}
	if kb.KeyType != tea.KeyRunes {
		return msg.Type == kb.KeyType
	}
	return msg.Type == tea.KeyRunes && len(msg.Runes) == 1 && msg.Runes[0] == kb.Rune
}

// String returns the key as shown in help, e.g. "ctrl+l" or "alt+k".
func (kb KeyBinding) String() string {
	prefix := ""
	if kb.Alt {
		prefix = "alt+"
	}
	if kb.KeyType != tea.KeyRunes {
		return prefix + kb.KeyType.String()
	}
	if kb.Rune == ' ' {
		return prefix + "space"
	}
	return prefix + string(kb.Rune)
}

// Keymap is an ordered set of bindings. The first match wins.
type Keymap struct {
	Name     string
	Bindings []KeyBinding
}

// Lookup returns the command bound to msg.
func (km *Keymap) Lookup(msg tea.KeyMsg) (Command, bool) {
	for _, binding := range km.Bindings {
		if binding.Matches(msg) {
			return binding.Command, true
		}
	}
	return "", false
}

// BindingsForCommand returns every binding that triggers cmd, in order.
func (km *Keymap) BindingsForCommand(cmd Command) []KeyBinding {
	var result []KeyBinding
	for _, binding := range km.Bindings {
		if binding.Command == cmd {
			result = append(result, binding)
		}
	}
	return result
}

// Categories returns the binding categories in first-seen order.
func (km *Keymap) Categories() []string {
	seen := make(map[string]bool)
	var categories []string
	for _, binding := range km.Bindings {
		if binding.Category != "" && !seen[binding.Category] {
			seen[binding.Category] = true
			categories = append(categories, binding.Category)
		}
	}
	return categories
}

// HelpEntry is one item of the help line: the keys for a command and what
// it does.
type HelpEntry struct {
	Keys        string
	Description string
}

// Help lists each command once, with all its keys joined by "/", in binding
// order.
func (km *Keymap) Help() []HelpEntry {
	seen := make(map[Command]int)
	var entries []HelpEntry
	for _, binding := range km.Bindings {
		if i, ok := seen[binding.Command]; ok {
			entries[i].Keys += "/" + binding.String()
			continue
		}
		seen[binding.Command] = len(entries)
		entries = append(entries, HelpEntry{Keys: binding.String(), Description: binding.Description})
	}
	return entries
}
