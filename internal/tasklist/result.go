package tasklist

import "github.com/Iron-Ham/tock/internal/errors"

// Outcome classifies a Result without inspecting its message.
type Outcome int

const (
	// OutcomeOK means the command succeeded.
	OutcomeOK Outcome = iota
	// OutcomeValidation means the command line was incomplete or malformed.
	OutcomeValidation
	// OutcomeRange means the index argument did not resolve to a task.
	OutcomeRange
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeValidation:
		return "validation"
	case OutcomeRange:
		return "range"
	default:
		return "unknown"
	}
}

// Result is what every command returns. Message is always the text to show
// the user; Err is nil on success and otherwise an *errors.ValidationError or
// *errors.RangeError whose UserMessage equals Message.
type Result struct {
	Message string
	Err     error

	changed bool
}

func success(message string, changed bool) Result {
	return Result{Message: message, changed: changed}
}

func failure(err error) Result {
	return Result{Message: errors.UserMessage(err), Err: err}
}

// OK reports whether the command succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Changed reports whether the command modified the list and it should be
// persisted.
func (r Result) Changed() bool {
	return r.changed
}

// Kind classifies the result.
func (r Result) Kind() Outcome {
	var rangeErr *errors.RangeError
	switch {
	case r.Err == nil:
		return OutcomeOK
	case errors.As(r.Err, &rangeErr):
		return OutcomeRange
	default:
		return OutcomeValidation
	}
}
