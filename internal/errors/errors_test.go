package errors

import (
	"errors"
	"fmt"
	"testing"
)

// -----------------------------------------------------------------------------
// Severity Tests
// -----------------------------------------------------------------------------

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		severity Severity
		want     string
	}{
		{SeverityDebug, "debug"},
		{SeverityInfo, "info"},
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{SeverityCritical, "critical"},
		{Severity(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.severity.String(); got != tt.want {
				t.Errorf("Severity.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

// -----------------------------------------------------------------------------
// ValidationError Tests
// -----------------------------------------------------------------------------

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			name: "basic error",
			err:  NewValidationError("Please input the keyword!"),
			want: "validation error: Please input the keyword!",
		},
		{
			name: "with field",
			err:  NewValidationError("Please input the keyword!").WithField("keyword"),
			want: "validation error [field=keyword]: Please input the keyword!",
		},
		{
			name: "with field, value and cause",
			err: NewValidationError("Please input date in YYYY-MM-DD format!").
				WithField("date").WithValue("tomorrow").WithCause(ErrInvalidDate),
			want: "validation error [field=date, value=tomorrow]: Please input date in YYYY-MM-DD format!: invalid date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidationError_Is(t *testing.T) {
	err := NewValidationError("missing").WithCause(ErrMissingDescription)

	if !Is(err, &ValidationError{}) {
		t.Error("Is(ValidationError{}) = false, want true")
	}
	if !Is(err, ErrInvalidInput) {
		t.Error("Is(ErrInvalidInput) = false, want true")
	}
	if !Is(err, ErrMissingDescription) {
		t.Error("Is(ErrMissingDescription) = false, want true")
	}
	if Is(err, ErrMissingIndex) {
		t.Error("Is(ErrMissingIndex) = true, want false")
	}
}

// -----------------------------------------------------------------------------
// RangeError Tests
// -----------------------------------------------------------------------------

func TestNewRangeError(t *testing.T) {
	err := NewRangeError("7", 3)

	if got := err.UserMessage(); got != "There are only 3 tasks in the list!" {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := err.Error(); got != "range error [index=7, size=3]: There are only 3 tasks in the list!" {
		t.Errorf("Error() = %q", got)
	}
	if !Is(err, ErrIndexOutOfRange) {
		t.Error("Is(ErrIndexOutOfRange) = false, want true")
	}
	if !Is(err, &RangeError{}) {
		t.Error("Is(RangeError{}) = false, want true")
	}
	if err.Severity() != SeverityWarning {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityWarning)
	}
}

// -----------------------------------------------------------------------------
// StorageError Tests
// -----------------------------------------------------------------------------

func TestStorageError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *StorageError
		want string
	}{
		{
			name: "basic error",
			err:  NewStorageError("failed to save", nil),
			want: "storage error: failed to save",
		},
		{
			name: "with path and cause",
			err:  NewStorageError("failed to save", ErrStorageWrite).WithPath("data/tasks.txt"),
			want: "storage error [path=data/tasks.txt]: failed to save: could not write task file",
		},
		{
			name: "with path and line",
			err:  NewStorageError("failed to decode", ErrUnknownTaskType).WithPath("t.txt").WithLine(4),
			want: "storage error [path=t.txt, line=4]: failed to decode: unknown task type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStorageError_Is(t *testing.T) {
	err := NewStorageError("load", ErrUnknownTaskType)
	wrapped := fmt.Errorf("session: %w", err)

	if !Is(wrapped, ErrUnknownTaskType) {
		t.Error("Is(ErrUnknownTaskType) = false, want true")
	}
	if !IsStorageError(wrapped) {
		t.Error("IsStorageError() = false, want true")
	}
	if err.Severity() != SeverityCritical {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityCritical)
	}
}

// -----------------------------------------------------------------------------
// Classification Tests
// -----------------------------------------------------------------------------

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"validation error", NewValidationError("x"), true},
		{"range error", NewRangeError("2", 1), true},
		{"storage error", NewStorageError("x", nil), true},
		{"standard error", errors.New("internal error"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUserFacing(tt.err); got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsInputError(t *testing.T) {
	if !IsInputError(NewValidationError("x")) {
		t.Error("validation error should be an input error")
	}
	if !IsInputError(NewRangeError("0", 0)) {
		t.Error("range error should be an input error")
	}
	if IsInputError(NewStorageError("x", nil)) {
		t.Error("storage error should not be an input error")
	}
	if IsInputError(nil) {
		t.Error("nil should not be an input error")
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"validation", NewValidationError("Please input the keyword!").WithField("keyword"), "Please input the keyword!"},
		{"wrapped range", fmt.Errorf("mark: %w", NewRangeError("9", 2)), "There are only 2 tasks in the list!"},
		{"plain", errors.New("boom"), "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetSeverity(t *testing.T) {
	if got := GetSeverity(nil); got != SeverityDebug {
		t.Errorf("GetSeverity(nil) = %v", got)
	}
	if got := GetSeverity(errors.New("x")); got != SeverityError {
		t.Errorf("GetSeverity(plain) = %v", got)
	}
	if got := GetSeverity(NewStorageError("x", nil).WithSeverity(SeverityError)); got != SeverityError {
		t.Errorf("GetSeverity(storage) = %v", got)
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "ctx") != nil {
		t.Error("Wrap(nil) should return nil")
	}
	if Wrapf(nil, "ctx %d", 1) != nil {
		t.Error("Wrapf(nil) should return nil")
	}

	err := Wrapf(ErrStorageWrite, "save %s", "tasks.txt")
	if err.Error() != "save tasks.txt: could not write task file" {
		t.Errorf("Wrapf() = %q", err.Error())
	}
	if !Is(err, ErrStorageWrite) {
		t.Error("wrapped error should match its cause")
	}
}
