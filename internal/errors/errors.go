// Package errors provides centralized error definitions and error handling utilities
// for tock. It defines sentinel errors, semantic error types, error constructors
// with context wrapping, and error classification helpers.
//
// # Error Types
//
// Input errors are recovered inside the task list and travel back to the
// caller as values, never as failures of the session:
//   - ValidationError: missing description, missing index, malformed date, ...
//   - RangeError: a task index that does not resolve to a present task
//
// Storage errors are fatal to the operation that produced them:
//   - StorageError: file creation, read or write failure, undecodable records
//
// # Usage
//
// Creating errors:
//
//	err := errors.NewValidationError("Please input the keyword!").WithField("keyword")
//	err := errors.NewRangeError("7", 3)
//	err := errors.NewStorageError("failed to write task file", errors.ErrStorageWrite).WithPath(path)
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrUnknownTaskType) { ... }
//
//	var storageErr *errors.StorageError
//	if errors.As(err, &storageErr) { ... }
//
//	if errors.IsUserFacing(err) { ... }
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
	// SeverityCritical is for errors that require immediate attention.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Input sentinel errors. These are the causes attached to ValidationError and
// RangeError values produced by the task list.
var (
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
	// ErrMissingDescription indicates an add command without a description.
	ErrMissingDescription = New("missing description")
	// ErrMissingFields indicates an add command without its date or time fields.
	ErrMissingFields = New("missing fields")
	// ErrInvalidDate indicates a date that is not a YYYY-MM-DD calendar date.
	ErrInvalidDate = New("invalid date")
	// ErrMissingIndex indicates an index command without an index argument.
	ErrMissingIndex = New("missing index")
	// ErrMissingKeyword indicates a find command without a keyword.
	ErrMissingKeyword = New("missing keyword")
	// ErrReservedText indicates text containing the storage divider.
	ErrReservedText = New("text contains the storage divider")
	// ErrIndexOutOfRange indicates an index that does not resolve to a task.
	ErrIndexOutOfRange = New("index out of range")
	// ErrUnknownCommand indicates a command keyword nobody handles.
	ErrUnknownCommand = New("unknown command")
)

// Storage sentinel errors
var (
	// ErrStorageCreate indicates the task file or its directory could not be created.
	ErrStorageCreate = New("could not create task file")
	// ErrStorageRead indicates the task file could not be read.
	ErrStorageRead = New("could not read task file")
	// ErrStorageWrite indicates the task file could not be written.
	ErrStorageWrite = New("could not write task file")
	// ErrStorageLocked indicates another session holds the task file.
	ErrStorageLocked = New("task file is locked by another session")
	// ErrUnknownTaskType indicates a stored record with an unrecognised type tag.
	ErrUnknownTaskType = New("unknown task type")
	// ErrMalformedRecord indicates a stored record with missing or unreadable fields.
	ErrMalformedRecord = New("malformed task record")
)

// -----------------------------------------------------------------------------
// Base Error Interface
// -----------------------------------------------------------------------------

// TockError is the base interface for all tock errors.
type TockError interface {
	error

	// Unwrap returns the underlying error, if any.
	Unwrap() error

	// Is reports whether this error matches the target error.
	Is(target error) bool

	// Severity returns the severity level of this error.
	Severity() Severity

	// IsUserFacing returns true if the error message is safe to display
	// to end users.
	IsUserFacing() bool

	// UserMessage returns the bare message without type prefix or cause.
	UserMessage() string
}

// -----------------------------------------------------------------------------
// Base Error Implementation
// -----------------------------------------------------------------------------

// baseError provides common functionality for all error types.
type baseError struct {
	message    string
	cause      error
	severity   Severity
	userFacing bool
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

// IsUserFacing returns whether the error is safe to show users.
func (e *baseError) IsUserFacing() bool {
	return e.userFacing
}

// UserMessage returns the message the error was created with.
func (e *baseError) UserMessage() string {
	return e.message
}

// -----------------------------------------------------------------------------
// Input Errors
// -----------------------------------------------------------------------------

// ValidationError represents invalid command input. Its message is the exact
// text shown to the user.
//
// Example:
//
//	err := errors.NewValidationError("Please input the keyword!").WithField("keyword")
//	fmt.Println(err) // "validation error [field=keyword]: Please input the keyword!"
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:    message,
			severity:   SeverityWarning,
			userFacing: true,
		},
	}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the invalid value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// WithCause adds a cause to the error.
func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	prefix := "validation error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("validation error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	if target == ErrInvalidInput {
		return true
	}
	return e.baseError.Is(target)
}

// RangeError represents a task index outside 1..Size.
//
// Example:
//
//	err := errors.NewRangeError("7", 3)
//	fmt.Println(err.UserMessage()) // "There are only 3 tasks in the list!"
type RangeError struct {
	baseError
	Index string
	Size  int
}

// NewRangeError creates a RangeError for the raw index argument and the
// current number of tasks.
func NewRangeError(index string, size int) *RangeError {
	return &RangeError{
		baseError: baseError{
			message:    fmt.Sprintf("There are only %d tasks in the list!", size),
			cause:      ErrIndexOutOfRange,
			severity:   SeverityWarning,
			userFacing: true,
		},
		Index: index,
		Size:  size,
	}
}

// Error returns the formatted error message.
func (e *RangeError) Error() string {
	return fmt.Sprintf("range error [index=%s, size=%d]: %s", e.Index, e.Size, e.message)
}

// Is checks if this error matches the target.
func (e *RangeError) Is(target error) bool {
	if _, ok := target.(*RangeError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Storage Errors
// -----------------------------------------------------------------------------

// StorageError represents a failure of the task file. These are fatal to the
// operation that produced them.
//
// Example:
//
//	err := errors.NewStorageError("failed to decode task file", errors.ErrUnknownTaskType).
//		WithPath("data/tasks.txt").WithLine(4)
//	fmt.Println(err) // "storage error [path=data/tasks.txt, line=4]: failed to decode task file: unknown task type"
type StorageError struct {
	baseError
	Path string
	Line int
}

// NewStorageError creates a new StorageError.
func NewStorageError(message string, cause error) *StorageError {
	return &StorageError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityCritical,
			userFacing: true,
		},
	}
}

// WithPath adds the task file path to the error context.
func (e *StorageError) WithPath(path string) *StorageError {
	e.Path = path
	return e
}

// WithLine adds the 1-based line number of a bad record.
func (e *StorageError) WithLine(line int) *StorageError {
	e.Line = line
	return e
}

// WithSeverity sets the error severity.
func (e *StorageError) WithSeverity(s Severity) *StorageError {
	e.severity = s
	return e
}

// Error returns the formatted error message.
func (e *StorageError) Error() string {
	var parts []string
	if e.Path != "" {
		parts = append(parts, fmt.Sprintf("path=%s", e.Path))
	}
	if e.Line > 0 {
		parts = append(parts, fmt.Sprintf("line=%d", e.Line))
	}

	prefix := "storage error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("storage error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *StorageError) Is(target error) bool {
	if _, ok := target.(*StorageError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Error Classification Helpers
// -----------------------------------------------------------------------------

// IsUserFacing returns true if the error message is safe to display to end users.
//
// Example:
//
//	if errors.IsUserFacing(err) {
//	    display(errors.UserMessage(err))
//	} else {
//	    display("An internal error occurred")
//	    log.Error("internal error", "err", err)
//	}
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}

	var tockErr TockError
	if As(err, &tockErr) {
		return tockErr.IsUserFacing()
	}
	return false
}

// IsInputError returns true for errors caused by user input (validation or
// range), which never end a session.
func IsInputError(err error) bool {
	if err == nil {
		return false
	}
	var validation *ValidationError
	var rangeErr *RangeError
	return As(err, &validation) || As(err, &rangeErr)
}

// IsStorageError returns true if the error is a StorageError.
func IsStorageError(err error) bool {
	if err == nil {
		return false
	}
	var storageErr *StorageError
	return As(err, &storageErr)
}

// UserMessage returns the text to show a user for err. Tock errors yield their
// bare message; anything else yields err.Error().
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var tockErr TockError
	if As(err, &tockErr) {
		return tockErr.UserMessage()
	}
	return err.Error()
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't implement TockError.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}

	var tockErr TockError
	if As(err, &tockErr) {
		return tockErr.Severity()
	}
	return SeverityError
}

// -----------------------------------------------------------------------------
// Convenience Constructors
// -----------------------------------------------------------------------------

// Wrap wraps an error with additional context message.
//
// Example:
//
//	err := errors.Wrap(baseErr, "failed to save tasks")
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
