// Package testutil provides testing utilities for tock tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// SampleRecords is a small valid task file: a done todo, a pending
// deadline and a pending event.
var SampleRecords = []string{
	"[T] | X | borrow book",
	"[D] |   | return book | 28 Feb 2025",
	"[E] |   | project meeting | Mon 2pm | 4pm",
}

// WriteTaskFile writes lines as a task file under a fresh temporary
// directory and returns its path. The directory is removed when the test
// completes.
func WriteTaskFile(t *testing.T, lines ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "data", "tasks.txt")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create task file directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		t.Fatalf("failed to write task file: %v", err)
	}
	return path
}

// ReadTaskFile returns the contents of the task file at path.
func ReadTaskFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read task file: %v", err)
	}
	return string(data)
}

// IsolateHome points the XDG config and data directories at temporary
// directories so tests never touch the real configuration or task file.
// It returns the config and data roots.
func IsolateHome(t *testing.T) (configHome, dataHome string) {
	t.Helper()

	configHome = filepath.Join(t.TempDir(), "config")
	dataHome = filepath.Join(t.TempDir(), "data")
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("XDG_DATA_HOME", dataHome)
	return configHome, dataHome
}
