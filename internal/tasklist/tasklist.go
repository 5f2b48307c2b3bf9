// Package tasklist holds the ordered list of tasks and implements every
// command that reads or changes it.
//
// Commands take the full command line, leading keyword included, and return a
// [Result]. Input mistakes never escape as failures: they come back as a
// Result whose Err is an *errors.ValidationError or *errors.RangeError and
// whose Message is the text to show the user. A failed command leaves the
// list untouched.
//
// Tasks are addressed externally by 1-based position. Deleting a task
// renumbers every later task.
package tasklist

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/Iron-Ham/tock/internal/errors"
	"github.com/Iron-Ham/tock/internal/record"
	"github.com/Iron-Ham/tock/internal/task"
)

// Command markers.
const (
	byMarker   = "/by "
	fromMarker = "/from"
	toMarker   = "/to"
)

// User-facing messages.
const (
	emptyListMessage      = "There are no tasks as of now!"
	noMatchesMessage      = "There are no tasks with the given keyword"
	matchesHeader         = "Here are the matching tasks in your list:"
	missingKeywordMessage = "Please input the keyword!"
	deadlineFieldsMessage = "Please fill in all details (task description and date)!"
	eventFieldsMessage    = "Please fill in all details (task description, start and end time)!"
	dateFormatMessage     = "Please input date in YYYY-MM-DD format!"
)

// TaskList is the in-memory ordered collection of tasks. It owns its tasks by
// value; a mark or unmark writes an updated copy back to the same position.
// A TaskList is not safe for concurrent use.
type TaskList struct {
	tasks []task.Task
}

// New returns a list holding tasks in the given order.
func New(tasks ...task.Task) *TaskList {
	owned := make([]task.Task, len(tasks))
	copy(owned, tasks)
	return &TaskList{tasks: owned}
}

// Len returns the number of tasks.
func (l *TaskList) Len() int {
	return len(l.tasks)
}

// Tasks returns a copy of the tasks in list order.
func (l *TaskList) Tasks() []task.Task {
	out := make([]task.Task, len(l.tasks))
	copy(out, l.tasks)
	return out
}

// Get returns the task at 1-based position i.
func (l *TaskList) Get(i int) (task.Task, bool) {
	if i < 1 || i > len(l.tasks) {
		return task.Task{}, false
	}
	return l.tasks[i-1], true
}

// AddTodo handles "todo <description>".
func (l *TaskList) AddTodo(command string) Result {
	_, rest := splitKeyword(command)
	if err := checkStorable(rest); err != nil {
		return failure(err)
	}
	t, err := task.NewTodo(rest)
	if err != nil {
		return failure(err)
	}
	return l.add(t)
}

// AddDeadline handles "deadline <description> /by <YYYY-MM-DD>".
func (l *TaskList) AddDeadline(command string) Result {
	_, rest := splitKeyword(command)
	description, dateText, found := strings.Cut(rest, byMarker)
	if strings.TrimSpace(description) == "" {
		return failure(missingDescription(task.KindDeadline))
	}
	dateText = strings.TrimSpace(dateText)
	if !found || dateText == "" {
		return failure(errors.NewValidationError(deadlineFieldsMessage).
			WithField("date").
			WithCause(errors.ErrMissingFields))
	}
	due, err := time.Parse(task.DateInputLayout, dateText)
	if err != nil {
		return failure(errors.NewValidationError(dateFormatMessage).
			WithField("date").
			WithValue(dateText).
			WithCause(errors.ErrInvalidDate))
	}
	if err := checkStorable(description); err != nil {
		return failure(err)
	}

	t, err := task.NewDeadline(description, due)
	if err != nil {
		return failure(err)
	}
	return l.add(t)
}

// AddEvent handles "event <description> /from <start> /to <end>".
func (l *TaskList) AddEvent(command string) Result {
	_, rest := splitKeyword(command)
	description, span, foundFrom := strings.Cut(rest, fromMarker)
	if strings.TrimSpace(description) == "" {
		return failure(missingDescription(task.KindEvent))
	}
	start, end, foundTo := strings.Cut(span, toMarker)
	if !foundFrom || !foundTo || strings.TrimSpace(start) == "" || strings.TrimSpace(end) == "" {
		return failure(errors.NewValidationError(eventFieldsMessage).
			WithField("time").
			WithCause(errors.ErrMissingFields))
	}
	if err := checkStorable(description, start, end); err != nil {
		return failure(err)
	}

	t, err := task.NewEvent(description, start, end)
	if err != nil {
		return failure(err)
	}
	return l.add(t)
}

func (l *TaskList) add(t task.Task) Result {
	l.tasks = append(l.tasks, t)
	return success(fmt.Sprintf("Got it. I've added this task:\n%s\nNow you have %d tasks in the list.",
		t, len(l.tasks)), true)
}

// Mark handles "mark <n>".
func (l *TaskList) Mark(command string) Result {
	i, err := l.resolveIndex(command, "mark")
	if err != nil {
		return failure(err)
	}
	l.tasks[i] = l.tasks[i].WithDone(true)
	return success("Nice! I've marked this task as done:\n"+l.tasks[i].String(), true)
}

// Unmark handles "unmark <n>".
func (l *TaskList) Unmark(command string) Result {
	i, err := l.resolveIndex(command, "unmark")
	if err != nil {
		return failure(err)
	}
	l.tasks[i] = l.tasks[i].WithDone(false)
	return success("OK, I've marked this task as not done yet:\n"+l.tasks[i].String(), true)
}

// Delete handles "delete <n>". Later tasks move up one position.
func (l *TaskList) Delete(command string) Result {
	i, err := l.resolveIndex(command, "delete")
	if err != nil {
		return failure(err)
	}
	removed := l.tasks[i]
	l.tasks = append(l.tasks[:i], l.tasks[i+1:]...)
	return success(fmt.Sprintf("Noted. I've removed this task:\n%s\nNow you have %d tasks in the list.",
		removed, len(l.tasks)), true)
}

// Find handles "find <keyword>". Matching is a case-sensitive substring test
// against each task's rendered text; matches are numbered from 1.
func (l *TaskList) Find(command string) Result {
	_, keyword := splitKeyword(command)
	if keyword == "" {
		return failure(errors.NewValidationError(missingKeywordMessage).
			WithField("keyword").
			WithCause(errors.ErrMissingKeyword))
	}

	var matches []task.Task
	for _, t := range l.tasks {
		if strings.Contains(t.String(), keyword) {
			matches = append(matches, t)
		}
	}
	if len(matches) == 0 {
		return success(noMatchesMessage, false)
	}
	return success(matchesHeader+"\n"+listing(matches), false)
}

// StorageData returns the task file contents for the list: one record per
// task, no trailing newline.
func (l *TaskList) StorageData() string {
	return record.EncodeAll(l.tasks)
}

// Show handles "list". It always succeeds and never changes the list.
func (l *TaskList) Show() Result {
	return success(l.String(), false)
}

// String renders the numbered listing, or a fixed message when empty.
func (l *TaskList) String() string {
	if len(l.tasks) == 0 {
		return emptyListMessage
	}
	return listing(l.tasks)
}

func listing(tasks []task.Task) string {
	var sb strings.Builder
	for i, t := range tasks {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%d. %s", i+1, t)
	}
	return sb.String()
}

// resolveIndex returns the 0-based position named by the command argument.
// A missing argument is a validation error; anything else that does not name
// a present task (non-numeric, zero, negative, too large) is a range error.
func (l *TaskList) resolveIndex(command, verb string) (int, error) {
	_, arg := splitKeyword(command)
	if arg == "" {
		return 0, errors.NewValidationError(
			fmt.Sprintf("Please give the index of the task you wish to %s!", verb)).
			WithField("index").
			WithCause(errors.ErrMissingIndex)
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(l.tasks) {
		return 0, errors.NewRangeError(arg, len(l.tasks))
	}
	return n - 1, nil
}

// Keyword returns the command word of a line: everything before the first
// Unicode space, ignoring leading space.
func Keyword(command string) string {
	keyword, _ := splitKeyword(command)
	return keyword
}

// splitKeyword separates the leading command word from the trimmed remainder.
func splitKeyword(command string) (keyword, rest string) {
	command = strings.TrimLeftFunc(command, unicode.IsSpace)
	i := strings.IndexFunc(command, unicode.IsSpace)
	if i < 0 {
		return command, ""
	}
	return command[:i], strings.TrimSpace(command[i:])
}

func missingDescription(kind task.Kind) error {
	return errors.NewValidationError(task.MissingDescriptionMessage(kind)).
		WithField("description").
		WithCause(errors.ErrMissingDescription)
}

func checkStorable(texts ...string) error {
	for _, s := range texts {
		if record.ContainsDivider(s) {
			return errors.NewValidationError(
				fmt.Sprintf("Sorry, task details cannot contain %q!", record.Divider)).
				WithValue(strings.TrimSpace(s)).
				WithCause(errors.ErrReservedText)
		}
	}
	return nil
}
