// Package assistant turns command lines into replies. It owns the task list
// for a session, dispatches each line on its first word and saves the list
// after every successful change.
package assistant

import (
	"fmt"
	"sort"

	"github.com/Iron-Ham/tock/internal/errors"
	"github.com/Iron-Ham/tock/internal/logging"
	"github.com/Iron-Ham/tock/internal/tasklist"
)

const (
	greeting       = "Hello! I'm Tock\nWhat can I do for you?"
	farewell       = "Bye. Hope to see you again soon!"
	unknownMessage = "OOPS!!! I'm sorry, but I don't know what that means :-("

	saveFailureDetail = "the task file could not be written"
)

// Greeting is the first thing a session prints.
func Greeting() string { return greeting }

// Farewell is printed when the user says bye.
func Farewell() string { return farewell }

// Saver persists the task list.
type Saver interface {
	Save(list *tasklist.TaskList) error
}

// Reply is the outcome of one command line.
type Reply struct {
	// Message is always the text to show the user.
	Message string
	// Err is nil on success. Input mistakes are *errors.ValidationError or
	// *errors.RangeError; a failed save is an *errors.StorageError.
	Err error
	// Exit is set once the user has said bye.
	Exit bool
	// Saved is set when the command changed the list and it was written out.
	Saved bool
}

// Failed reports whether the command did not succeed.
func (r Reply) Failed() bool {
	return r.Err != nil
}

// Fatal reports whether the session should end because the task file could
// not be written.
func (r Reply) Fatal() bool {
	return errors.IsStorageError(r.Err)
}

type commandFunc func(a *Assistant, line string) tasklist.Result

var commands = map[string]commandFunc{
	"list": func(a *Assistant, _ string) tasklist.Result { return a.list.Show() },
	"todo": func(a *Assistant, line string) tasklist.Result {
		return a.list.AddTodo(line)
	},
	"deadline": func(a *Assistant, line string) tasklist.Result {
		return a.list.AddDeadline(line)
	},
	"event": func(a *Assistant, line string) tasklist.Result {
		return a.list.AddEvent(line)
	},
	"mark": func(a *Assistant, line string) tasklist.Result {
		return a.list.Mark(line)
	},
	"unmark": func(a *Assistant, line string) tasklist.Result {
		return a.list.Unmark(line)
	},
	"delete": func(a *Assistant, line string) tasklist.Result {
		return a.list.Delete(line)
	},
	"find": func(a *Assistant, line string) tasklist.Result {
		return a.list.Find(line)
	},
}

// Commands returns the recognised command words, including bye, sorted.
func Commands() []string {
	names := make([]string, 0, len(commands)+1)
	for name := range commands {
		names = append(names, name)
	}
	names = append(names, "bye")
	sort.Strings(names)
	return names
}

// Assistant handles the command lines of one session. It is not safe for
// concurrent use.
type Assistant struct {
	list   *tasklist.TaskList
	saver  Saver
	logger *logging.Logger
}

// New returns an Assistant working on list. A nil saver keeps changes in
// memory only; a nil logger discards logs.
func New(list *tasklist.TaskList, saver Saver, logger *logging.Logger) *Assistant {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Assistant{list: list, saver: saver, logger: logger}
}

// List returns the task list the assistant works on.
func (a *Assistant) List() *tasklist.TaskList {
	return a.list
}

// Handle runs one command line. Command words are case-sensitive.
func (a *Assistant) Handle(line string) Reply {
	keyword := tasklist.Keyword(line)
	logger := a.logger.WithCommand(keyword)
	logger.Debug("handling command", "line", line)

	if keyword == "bye" {
		return Reply{Message: farewell, Exit: true}
	}

	fn, ok := commands[keyword]
	if !ok {
		err := errors.NewValidationError(unknownMessage).
			WithValue(keyword).
			WithCause(errors.ErrUnknownCommand)
		logFailure(logger, "unknown command", err)
		return Reply{Message: unknownMessage, Err: err}
	}

	result := fn(a, line)
	if !result.OK() {
		logFailure(logger, "command rejected", result.Err, "outcome", result.Kind().String())
		return Reply{Message: result.Message, Err: result.Err}
	}

	if result.Changed() && a.saver != nil {
		if err := a.saver.Save(a.list); err != nil {
			logFailure(logger, "failed to save task list", err)
			detail := saveFailureDetail
			if errors.IsUserFacing(err) {
				detail = errors.UserMessage(err)
			}
			if !errors.IsStorageError(err) {
				err = errors.NewStorageError(detail, err)
			}
			return Reply{
				Message: fmt.Sprintf("%s\nBut I could not save your tasks: %s", result.Message, detail),
				Err:     err,
			}
		}
		logger.Debug("task list saved", "tasks", a.list.Len())
		return Reply{Message: result.Message, Saved: true}
	}

	return Reply{Message: result.Message}
}

// logFailure logs err at the level its severity calls for.
func logFailure(logger *logging.Logger, msg string, err error, args ...any) {
	args = append(args, "error", err.Error())
	switch errors.GetSeverity(err) {
	case errors.SeverityDebug:
		logger.Debug(msg, args...)
	case errors.SeverityInfo:
		logger.Info(msg, args...)
	case errors.SeverityWarning:
		logger.Warn(msg, args...)
	default:
		logger.Error(msg, args...)
	}
}
