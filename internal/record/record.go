// Package record converts tasks to and from the line-oriented text format of
// the task file.
//
// Each task occupies one line:
//
//	<TypeTag> | <Status> | <Description>[ | <Extra1>[ | <Extra2>]]
//
// TypeTag is [T], [D] or [E]. Status is "X" for a done task and a single space
// otherwise. A deadline carries its due date as Extra1 in "2 Jan 2006" layout;
// an event carries its start and end text as Extra1 and Extra2.
//
// Fields are joined with a fixed divider and nothing is escaped. Text that
// contains the divider is refused before it reaches a task, see [ContainsDivider].
package record

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Iron-Ham/tock/internal/errors"
	"github.com/Iron-Ham/tock/internal/task"
)

// Divider separates the fields of a record.
const Divider = " | "

const doneMark = "X"

// ContainsDivider reports whether s cannot be stored without ambiguity. Fields
// are stored trimmed and joined by [Divider], so a "|" set apart by a space at
// either end of s would merge with a neighbouring divider.
func ContainsDivider(s string) bool {
	return strings.Contains(" "+strings.TrimSpace(s)+" ", Divider)
}

// Encode renders a task as a single record line without a newline.
func Encode(t task.Task) string {
	fields := []string{t.Kind().Tag(), t.StatusMark(), t.Description()}
	switch t.Kind() {
	case task.KindDeadline:
		fields = append(fields, t.Due().Format(task.DateDisplayLayout))
	case task.KindEvent:
		fields = append(fields, t.Start(), t.End())
	}
	return strings.Join(fields, Divider)
}

// EncodeAll renders tasks one per line, in order, with no trailing newline.
func EncodeAll(tasks []task.Task) string {
	lines := make([]string, len(tasks))
	for i, t := range tasks {
		lines[i] = Encode(t)
	}
	return strings.Join(lines, "\n")
}

// Decode parses one record line. An unrecognised type tag yields an error
// matching errors.ErrUnknownTaskType; missing fields or an unreadable date
// yield errors.ErrMalformedRecord.
func Decode(line string) (task.Task, error) {
	fields := strings.Split(line, Divider)
	if len(fields) < 3 {
		return task.Task{}, malformed("expected at least 3 fields", len(fields))
	}

	kind, ok := task.KindFromTag(fields[0])
	if !ok {
		return task.Task{}, errors.NewStorageError("unrecognised type tag "+fields[0], errors.ErrUnknownTaskType)
	}

	var (
		t   task.Task
		err error
	)
	switch kind {
	case task.KindTodo:
		t, err = task.NewTodo(fields[2])
	case task.KindDeadline:
		if len(fields) < 4 {
			return task.Task{}, malformed("deadline record without a due date", len(fields))
		}
		due, perr := time.Parse(task.DateDisplayLayout, strings.TrimSpace(fields[3]))
		if perr != nil {
			return task.Task{}, errors.NewStorageError("unreadable due date "+fields[3], errors.ErrMalformedRecord)
		}
		t, err = task.NewDeadline(fields[2], due)
	case task.KindEvent:
		if len(fields) < 5 {
			return task.Task{}, malformed("event record without start and end", len(fields))
		}
		t, err = task.NewEvent(fields[2], fields[3], fields[4])
	}
	if err != nil {
		return task.Task{}, errors.NewStorageError("invalid description", errors.Join(errors.ErrMalformedRecord, err))
	}

	return t.WithDone(fields[1] == doneMark), nil
}

func malformed(message string, got int) error {
	return errors.NewStorageError(fmt.Sprintf("%s (got %d fields)", message, got), errors.ErrMalformedRecord)
}

// DecodeAll reads records from r in order. Blank lines are skipped. The first
// bad record aborts decoding; the returned *errors.StorageError carries its
// 1-based line number and no tasks are returned.
func DecodeAll(r io.Reader) ([]task.Task, error) {
	var tasks []task.Task
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		t, err := Decode(line)
		if err != nil {
			var storageErr *errors.StorageError
			if errors.As(err, &storageErr) {
				return nil, storageErr.WithLine(lineNo)
			}
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.NewStorageError("failed to scan task file", errors.Join(errors.ErrStorageRead, err))
	}
	return tasks, nil
}
