// Package task defines the task value types tracked by tock: plain todos,
// deadlines with a due date, and events with free-form start and end text.
//
// A Task is an immutable value. Completion is changed with [Task.WithDone],
// which returns a copy; owners store the copy back in place.
package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/Iron-Ham/tock/internal/errors"
)

// Date layouts used for deadline due dates.
const (
	// DateInputLayout is the layout accepted on the command line (YYYY-MM-DD).
	DateInputLayout = "2006-01-02"
	// DateDisplayLayout is the layout used when rendering and storing (D MMM YYYY).
	DateDisplayLayout = "2 Jan 2006"
)

// Kind discriminates the task variants.
type Kind int

const (
	// KindTodo is a task with no time attached.
	KindTodo Kind = iota
	// KindDeadline is a task due on a calendar date.
	KindDeadline
	// KindEvent is a task spanning a start and end.
	KindEvent
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindTodo:
		return "todo"
	case KindDeadline:
		return "deadline"
	case KindEvent:
		return "event"
	default:
		return "unknown"
	}
}

// Tag returns the bracketed type tag used in listings and storage.
func (k Kind) Tag() string {
	switch k {
	case KindTodo:
		return "[T]"
	case KindDeadline:
		return "[D]"
	case KindEvent:
		return "[E]"
	default:
		return "[?]"
	}
}

// KindFromTag resolves a bracketed type tag back to its Kind.
func KindFromTag(tag string) (Kind, bool) {
	switch tag {
	case "[T]":
		return KindTodo, true
	case "[D]":
		return KindDeadline, true
	case "[E]":
		return KindEvent, true
	default:
		return 0, false
	}
}

// Task is a single trackable item.
type Task struct {
	kind        Kind
	description string
	done        bool
	due         time.Time
	start       string
	end         string
}

// NewTodo creates a Todo. The description is trimmed and must not be empty.
func NewTodo(description string) (Task, error) {
	desc, err := checkDescription(description, KindTodo)
	if err != nil {
		return Task{}, err
	}
	return Task{kind: KindTodo, description: desc}, nil
}

// NewDeadline creates a Deadline due on the calendar date of due. Any time of
// day is discarded.
func NewDeadline(description string, due time.Time) (Task, error) {
	desc, err := checkDescription(description, KindDeadline)
	if err != nil {
		return Task{}, err
	}
	return Task{kind: KindDeadline, description: desc, due: truncateDay(due)}, nil
}

// NewEvent creates an Event. start and end are kept as trimmed text and are
// never parsed.
func NewEvent(description, start, end string) (Task, error) {
	desc, err := checkDescription(description, KindEvent)
	if err != nil {
		return Task{}, err
	}
	return Task{
		kind:        KindEvent,
		description: desc,
		start:       strings.TrimSpace(start),
		end:         strings.TrimSpace(end),
	}, nil
}

func checkDescription(description string, kind Kind) (string, error) {
	desc := strings.TrimSpace(description)
	if desc == "" {
		return "", errors.NewValidationError(MissingDescriptionMessage(kind)).
			WithField("description").
			WithCause(errors.ErrMissingDescription)
	}
	return desc, nil
}

// MissingDescriptionMessage is the user-facing text for an add command of the
// given kind without a description.
func MissingDescriptionMessage(kind Kind) string {
	article := "a"
	if kind == KindEvent {
		article = "an"
	}
	return fmt.Sprintf("OOPS!!! The description of %s %s cannot be empty.", article, kind)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Kind returns the task variant.
func (t Task) Kind() Kind { return t.kind }

// Description returns the task label.
func (t Task) Description() string { return t.description }

// Done reports whether the task is completed.
func (t Task) Done() bool { return t.done }

// Due returns the due date of a Deadline, or the zero time.
func (t Task) Due() time.Time { return t.due }

// Start returns the start text of an Event.
func (t Task) Start() string { return t.start }

// End returns the end text of an Event.
func (t Task) End() string { return t.end }

// WithDone returns a copy of t with the completion flag set to done.
func (t Task) WithDone(done bool) Task {
	t.done = done
	return t
}

// StatusMark returns "X" for a done task and a single space otherwise.
func (t Task) StatusMark() string {
	if t.done {
		return "X"
	}
	return " "
}

// String renders the task as shown in listings, e.g.
// "[D][ ] readbook (by: 3 Dec 2024)".
func (t Task) String() string {
	base := fmt.Sprintf("%s[%s] %s", t.kind.Tag(), t.StatusMark(), t.description)
	switch t.kind {
	case KindDeadline:
		return fmt.Sprintf("%s (by: %s)", base, t.due.Format(DateDisplayLayout))
	case KindEvent:
		return fmt.Sprintf("%s (from: %s to: %s)", base, t.start, t.end)
	default:
		return base
	}
}

// Equal reports whether two tasks carry the same kind, text, dates and flag.
func (t Task) Equal(other Task) bool {
	return t.kind == other.kind &&
		t.description == other.description &&
		t.done == other.done &&
		t.due.Equal(other.due) &&
		t.start == other.start &&
		t.end == other.end
}
