// Package export writes a task list in formats meant for other tools: plain
// text, JSON, CSV and PDF.
//
// Exported tasks keep the 1-based index they have in the full list, so a
// filtered export still names the numbers that mark, unmark and delete
// expect.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gobwas/glob"

	"github.com/Iron-Ham/tock/internal/errors"
	"github.com/Iron-Ham/tock/internal/task"
)

// Format names an export format.
type Format string

const (
	// FormatText is the numbered listing the list command prints.
	FormatText Format = "text"
	// FormatJSON is an indented array of task objects.
	FormatJSON Format = "json"
	// FormatCSV is one row per task under a header row.
	FormatCSV Format = "csv"
	// FormatPDF is a printable A4 page.
	FormatPDF Format = "pdf"
)

// Formats returns the supported format names.
func Formats() []string {
	return []string{string(FormatText), string(FormatJSON), string(FormatCSV), string(FormatPDF)}
}

// ParseFormat resolves a format name, ignoring case.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	switch f {
	case FormatText, FormatJSON, FormatCSV, FormatPDF:
		return f, nil
	}
	return "", errors.NewValidationError(
		fmt.Sprintf("unknown export format %q (want one of: %s)", name, strings.Join(Formats(), ", "))).
		WithField("format").
		WithValue(name)
}

// Item is a task together with its position in the full list.
type Item struct {
	Index int
	Task  task.Task
}

// Items numbers tasks from 1.
func Items(tasks []task.Task) []Item {
	items := make([]Item, len(tasks))
	for i, t := range tasks {
		items[i] = Item{Index: i + 1, Task: t}
	}
	return items
}

// Filter returns the tasks whose description matches the glob pattern, in
// list order and with their original numbering. Matching is case-sensitive.
// An empty pattern keeps every task.
func Filter(tasks []task.Task, pattern string) ([]Item, error) {
	items := Items(tasks)
	if pattern == "" {
		return items, nil
	}

	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, errors.NewValidationError(fmt.Sprintf("invalid pattern %q", pattern)).
			WithField("match").
			WithValue(pattern).
			WithCause(err)
	}

	matched := items[:0]
	for _, item := range items {
		if g.Match(item.Task.Description()) {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

// entry is the flat shape of a task in JSON and CSV output.
type entry struct {
	Index       int    `json:"index"`
	Type        string `json:"type"`
	Done        bool   `json:"done"`
	Description string `json:"description"`
	Due         string `json:"due,omitempty"`
	Start       string `json:"start,omitempty"`
	End         string `json:"end,omitempty"`
}

func toEntry(item Item) entry {
	t := item.Task
	e := entry{
		Index:       item.Index,
		Type:        t.Kind().String(),
		Done:        t.Done(),
		Description: t.Description(),
	}
	switch t.Kind() {
	case task.KindDeadline:
		e.Due = t.Due().Format(task.DateInputLayout)
	case task.KindEvent:
		e.Start, e.End = t.Start(), t.End()
	}
	return e
}

// Write renders items to w in the given format.
func Write(w io.Writer, format Format, items []Item) error {
	switch format {
	case FormatText:
		return writeText(w, items)
	case FormatJSON:
		return writeJSON(w, items)
	case FormatCSV:
		return writeCSV(w, items)
	case FormatPDF:
		return writePDF(w, items)
	default:
		_, err := ParseFormat(string(format))
		return err
	}
}

func writeText(w io.Writer, items []Item) error {
	for _, item := range items {
		if _, err := fmt.Fprintf(w, "%d. %s\n", item.Index, item.Task); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, items []Item) error {
	entries := make([]entry, len(items))
	for i, item := range items {
		entries[i] = toEntry(item)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

var csvHeader = []string{"index", "type", "done", "description", "due", "start", "end"}

func writeCSV(w io.Writer, items []Item) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, item := range items {
		e := toEntry(item)
		row := []string{strconv.Itoa(e.Index), e.Type, strconv.FormatBool(e.Done), e.Description, e.Due, e.Start, e.End}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
