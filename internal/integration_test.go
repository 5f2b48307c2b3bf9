// Package internal contains integration tests that drive the assistant, the
// task file storage, the watcher and the exporters together the way the
// console and chat sessions do.
package internal

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/Iron-Ham/tock/internal/assistant"
	"github.com/Iron-Ham/tock/internal/errors"
	"github.com/Iron-Ham/tock/internal/export"
	"github.com/Iron-Ham/tock/internal/logging"
	"github.com/Iron-Ham/tock/internal/storage"
	"github.com/Iron-Ham/tock/internal/testutil"
)

func openAssistant(t *testing.T, store *storage.Storage) *assistant.Assistant {
	t.Helper()

	list, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	return assistant.New(list, store, logging.NopLogger())
}

// TestSessionRoundTrip runs a full session and checks that a fresh load of
// the task file sees exactly the list the session ended with.
func TestSessionRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "tasks.txt")
	a := openAssistant(t, storage.New(path))

	for _, line := range []string{
		"todo borrow book",
		"deadline return book /by 2025-02-28",
		"event project meeting /from Mon 2pm /to 4pm",
		"mark 2",
		"delete 1",
		"todo join sports club",
	} {
		if reply := a.Handle(line); reply.Failed() {
			t.Fatalf("Handle(%q) failed: %s", line, reply.Message)
		}
	}

	reloaded := openAssistant(t, storage.New(path))
	if got, want := reloaded.List().String(), a.List().String(); got != want {
		t.Errorf("reloaded list =\n%s\nwant\n%s", got, want)
	}

	want := "[D] | X | return book | 28 Feb 2025\n" +
		"[E] |   | project meeting | Mon 2pm | 4pm\n" +
		"[T] |   | join sports club"
	if got := testutil.ReadTaskFile(t, path); got != want {
		t.Errorf("task file =\n%q\nwant\n%q", got, want)
	}
}

// TestRejectedCommandsLeaveFileUntouched checks that input mistakes neither
// change the list nor rewrite the task file.
func TestRejectedCommandsLeaveFileUntouched(t *testing.T) {
	path := testutil.WriteTaskFile(t, testutil.SampleRecords...)
	a := openAssistant(t, storage.New(path))

	for _, line := range []string{
		"todo",
		"deadline pay rent",
		"deadline pay rent /by 28-02-2025",
		"event party /from 2pm",
		"mark 0",
		"unmark four",
		"delete 99",
		"find",
		"todo a | b",
		"dance",
	} {
		reply := a.Handle(line)
		if !reply.Failed() {
			t.Errorf("Handle(%q) succeeded, want failure", line)
		}
		if reply.Fatal() {
			t.Errorf("Handle(%q) should not be fatal: %v", line, reply.Err)
		}
	}

	if a.List().Len() != len(testutil.SampleRecords) {
		t.Errorf("list has %d tasks, want %d", a.List().Len(), len(testutil.SampleRecords))
	}
	if got := testutil.ReadTaskFile(t, path); got != strings.Join(testutil.SampleRecords, "\n") {
		t.Errorf("task file changed: %q", got)
	}
}

// TestExternalEditIsStaleUntilNextSave mirrors the chat banner: an outside
// edit makes the store stale, and the next change overwrites it.
func TestExternalEditIsStaleUntilNextSave(t *testing.T) {
	path := testutil.WriteTaskFile(t, testutil.SampleRecords...)
	store := storage.New(path)
	a := openAssistant(t, store)

	if stale, err := store.Stale(); err != nil || stale {
		t.Fatalf("Stale() = %v, %v after load", stale, err)
	}

	if err := os.WriteFile(path, []byte("[T] |   | written elsewhere"), 0o644); err != nil {
		t.Fatal(err)
	}
	if stale, err := store.Stale(); err != nil || !stale {
		t.Fatalf("Stale() = %v, %v after external edit", stale, err)
	}

	reply := a.Handle("todo read book")
	if !reply.Saved {
		t.Fatalf("Handle() did not save: %s", reply.Message)
	}
	if stale, err := store.Stale(); err != nil || stale {
		t.Errorf("Stale() = %v, %v after save", stale, err)
	}
	if got := testutil.ReadTaskFile(t, path); strings.Contains(got, "written elsewhere") {
		t.Errorf("save should replace the external edit, got %q", got)
	}
}

// TestWatcherReportsSaves checks that a save made by a session is visible to
// a watcher on the same file.
func TestWatcherReportsSaves(t *testing.T) {
	path := testutil.WriteTaskFile(t)
	a := openAssistant(t, storage.New(path))

	w, err := storage.NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher() error: %v", err)
	}
	defer func() { _ = w.Close() }()

	if reply := a.Handle("todo read book"); !reply.Saved {
		t.Fatalf("Handle() did not save: %s", reply.Message)
	}

	select {
	case <-w.Changes():
	case err := <-w.Errors():
		t.Fatalf("watcher error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not report the save")
	}
}

// TestSaveFailureIsFatal checks that a list the session cannot write back
// ends the session with a storage error.
func TestSaveFailureIsFatal(t *testing.T) {
	mem := afero.NewMemMapFs()
	path := "/data/tasks.txt"
	if err := afero.WriteFile(mem, path, []byte(strings.Join(testutil.SampleRecords, "\n")), 0o644); err != nil {
		t.Fatal(err)
	}

	a := openAssistant(t, storage.New(path, storage.WithFs(afero.NewReadOnlyFs(mem))))
	reply := a.Handle("todo read book")

	if !reply.Fatal() {
		t.Fatalf("reply should be fatal, got %v", reply.Err)
	}
	if !errors.Is(reply.Err, errors.ErrStorageWrite) {
		t.Errorf("error = %v, want ErrStorageWrite", reply.Err)
	}
	if !strings.Contains(reply.Message, "Got it. I've added this task:") ||
		!strings.Contains(reply.Message, "But I could not save your tasks") {
		t.Errorf("message = %q", reply.Message)
	}
}

// TestExportFollowsListNumbering checks that filtered exports keep the
// numbers the console shows.
func TestExportFollowsListNumbering(t *testing.T) {
	path := testutil.WriteTaskFile(t, testutil.SampleRecords...)
	a := openAssistant(t, storage.New(path))
	if reply := a.Handle("todo return library card"); reply.Failed() {
		t.Fatalf("Handle() failed: %s", reply.Message)
	}

	items, err := export.Filter(a.List().Tasks(), "return*")
	if err != nil {
		t.Fatalf("Filter() error: %v", err)
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, export.FormatText, items); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	want := "2. [D][ ] return book (by: 28 Feb 2025)\n" +
		"4. [T][ ] return library card\n"
	if buf.String() != want {
		t.Errorf("export =\n%q\nwant\n%q", buf.String(), want)
	}
}
