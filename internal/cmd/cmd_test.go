package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/tock/internal/errors"
	"github.com/Iron-Ham/tock/internal/storage"
	"github.com/Iron-Ham/tock/internal/testutil"
)

// executeCommand runs the root command with args and stdin and returns the
// captured output. Viper and flag state from earlier runs is cleared first.
func executeCommand(t *testing.T, stdin string, args ...string) (output string, err error) {
	t.Helper()

	viper.Reset()
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err = rootCmd.Execute()
	return buf.String(), err
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "tock" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "tock")
	}

	// Compare by Name(), not Use which includes args
	expectedCmds := []string{"chat", "run", "list", "export", "config"}
	cmdMap := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		cmdMap[cmd.Name()] = true
	}
	for _, expected := range expectedCmds {
		if !cmdMap[expected] {
			t.Errorf("expected subcommand %q not found", expected)
		}
	}
}

func TestConsole(t *testing.T) {
	testutil.IsolateHome(t)
	path := testutil.WriteTaskFile(t, testutil.SampleRecords...)

	output, err := executeCommand(t, "todo join sports club\nmark 4\nlist\nbye\n", "--file", path)
	if err != nil {
		t.Fatalf("console error: %v\noutput: %s", err, output)
	}

	for _, want := range []string{
		"Hello! I'm Tock",
		"Got it. I've added this task:",
		"Nice! I've marked this task as done:",
		"4. [T][X] join sports club",
		"Bye. Hope to see you again soon!",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}

	data := testutil.ReadTaskFile(t, path)
	if !strings.HasSuffix(data, "[T] | X | join sports club") {
		t.Errorf("task file = %q", data)
	}
}

func TestConsole_CreatesMissingFile(t *testing.T) {
	_, dataHome := testutil.IsolateHome(t)

	output, err := executeCommand(t, "list\n")
	if err != nil {
		t.Fatalf("console error: %v", err)
	}
	if !strings.Contains(output, "There are no tasks as of now!") {
		t.Errorf("output = %q", output)
	}

	path := filepath.Join(dataHome, "tock", "tasks.txt")
	if _, err := os.Stat(path); err != nil {
		t.Errorf("default task file not created: %v", err)
	}
}

func TestConsole_LockHeld(t *testing.T) {
	testutil.IsolateHome(t)
	path := testutil.WriteTaskFile(t)

	lock, err := storage.AcquireLock(path)
	if err != nil {
		t.Fatalf("AcquireLock() error: %v", err)
	}
	defer func() { _ = lock.Release() }()

	_, err = executeCommand(t, "bye\n", "--file", path)
	if !errors.Is(err, errors.ErrStorageLocked) {
		t.Errorf("error = %v, want ErrStorageLocked", err)
	}
}

func TestRunCommand(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantOut   string
		wantErr   bool
		wantInput bool
		wantLast  string
	}{
		{
			name:     "todo",
			args:     []string{"todo", "read", "book"},
			wantOut:  "Now you have 4 tasks in the list.",
			wantLast: "[T] |   | read book",
		},
		{
			name:     "deadline",
			args:     []string{"deadline", "pay rent", "/by", "2025-03-01"},
			wantOut:  "[D][ ] pay rent (by: 1 Mar 2025)",
			wantLast: "[D] |   | pay rent | 1 Mar 2025",
		},
		{
			name:      "index out of range",
			args:      []string{"mark", "9"},
			wantOut:   "There are only 3 tasks in the list!",
			wantErr:   true,
			wantInput: true,
		},
		{
			name:      "unknown command",
			args:      []string{"blah"},
			wantOut:   "I don't know what that means",
			wantErr:   true,
			wantInput: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.IsolateHome(t)
			path := testutil.WriteTaskFile(t, testutil.SampleRecords...)

			args := append([]string{"--file", path, "run"}, tt.args...)
			output, err := executeCommand(t, "", args...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v\noutput: %s", err, tt.wantErr, output)
			}
			if tt.wantInput && !errors.IsInputError(err) {
				t.Errorf("error should be an input error, got %T", err)
			}
			if !strings.Contains(output, tt.wantOut) {
				t.Errorf("output = %q, want it to contain %q", output, tt.wantOut)
			}

			data := testutil.ReadTaskFile(t, path)
			if tt.wantLast != "" && !strings.HasSuffix(data, tt.wantLast) {
				t.Errorf("task file = %q, want last record %q", data, tt.wantLast)
			}
			if tt.wantErr && data != strings.Join(testutil.SampleRecords, "\n") {
				t.Errorf("rejected command changed the task file: %q", data)
			}
		})
	}
}

func TestRunCommand_MalformedFile(t *testing.T) {
	testutil.IsolateHome(t)
	path := testutil.WriteTaskFile(t, "[T] |   | fine", "[Q] |   | broken")

	_, err := executeCommand(t, "", "--file", path, "run", "list")
	if !errors.IsStorageError(err) {
		t.Fatalf("error = %v, want a storage error", err)
	}
	if !errors.Is(err, errors.ErrUnknownTaskType) {
		t.Errorf("error = %v, want ErrUnknownTaskType", err)
	}
	if got := testutil.ReadTaskFile(t, path); got != "[T] |   | fine\n[Q] |   | broken" {
		t.Errorf("failed load rewrote the task file: %q", got)
	}
}

func TestListCommand(t *testing.T) {
	testutil.IsolateHome(t)
	path := testutil.WriteTaskFile(t, testutil.SampleRecords...)

	output, err := executeCommand(t, "", "--file", path, "list")
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	want := "1. [T][X] borrow book\n" +
		"2. [D][ ] return book (by: 28 Feb 2025)\n" +
		"3. [E][ ] project meeting (from: Mon 2pm to: 4pm)\n"
	if output != want {
		t.Errorf("output = %q, want %q", output, want)
	}
}

func TestListCommand_Match(t *testing.T) {
	testutil.IsolateHome(t)
	path := testutil.WriteTaskFile(t, testutil.SampleRecords...)

	output, err := executeCommand(t, "", "--file", path, "list", "--match", "return*")
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if output != "2. [D][ ] return book (by: 28 Feb 2025)\n" {
		t.Errorf("output = %q", output)
	}

	output, err = executeCommand(t, "", "--file", path, "list", "--match", "swim*")
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if output != "There are no tasks with the given keyword\n" {
		t.Errorf("output = %q", output)
	}
}

func TestExportCommand_JSONFile(t *testing.T) {
	testutil.IsolateHome(t)
	path := testutil.WriteTaskFile(t, testutil.SampleRecords...)
	outPath := filepath.Join(t.TempDir(), "out", "tasks.json")

	output, err := executeCommand(t, "", "--file", path, "export", "--format", "json", "--output", outPath)
	if err != nil {
		t.Fatalf("export error: %v", err)
	}
	if !strings.Contains(output, "Exported 3 tasks") {
		t.Errorf("output = %q", output)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("failed to read export: %v", err)
	}
	var entries []map[string]any
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("export is not JSON: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	if entries[1]["due"] != "2025-02-28" {
		t.Errorf("due = %v, want 2025-02-28", entries[1]["due"])
	}
}

func TestExportCommand_ConfiguredFormat(t *testing.T) {
	testutil.IsolateHome(t)
	path := testutil.WriteTaskFile(t, testutil.SampleRecords...)
	t.Setenv("TOCK_EXPORT_FORMAT", "csv")

	output, err := executeCommand(t, "", "--file", path, "export")
	if err != nil {
		t.Fatalf("export error: %v", err)
	}
	if !strings.HasPrefix(output, "index,type,done,description,due,start,end\n") {
		t.Errorf("output = %q, want CSV", output)
	}
}

func TestExportCommand_BadFormat(t *testing.T) {
	testutil.IsolateHome(t)
	path := testutil.WriteTaskFile(t, testutil.SampleRecords...)

	_, err := executeCommand(t, "", "--file", path, "export", "--format", "xml")
	if !errors.IsInputError(err) {
		t.Errorf("error = %v, want an input error", err)
	}
}

func TestExportCommand_OutputUnderFile(t *testing.T) {
	testutil.IsolateHome(t)
	path := testutil.WriteTaskFile(t, testutil.SampleRecords...)
	outPath := filepath.Join(path, "tasks.json")

	_, err := executeCommand(t, "", "--file", path, "export", "--format", "json", "--output", outPath)
	if err == nil {
		t.Fatal("export under a regular file should fail")
	}
	if !strings.Contains(err.Error(), outPath) {
		t.Errorf("error should name the output path: %v", err)
	}
	if errors.IsInputError(err) {
		t.Errorf("error = %v, should not be an input error", err)
	}
}

func TestConfigCommands(t *testing.T) {
	configHome, _ := testutil.IsolateHome(t)
	configFile := filepath.Join(configHome, "tock", "config.yaml")

	if _, err := executeCommand(t, "", "config", "init"); err != nil {
		t.Fatalf("config init error: %v", err)
	}
	if _, err := os.Stat(configFile); err != nil {
		t.Fatalf("config file not created: %v", err)
	}
	if _, err := executeCommand(t, "", "config", "init"); err == nil {
		t.Error("second config init should fail")
	}

	output, err := executeCommand(t, "", "config", "set", "export.format", "csv")
	if err != nil {
		t.Fatalf("config set error: %v", err)
	}
	if !strings.Contains(output, "Set export.format = csv") {
		t.Errorf("output = %q", output)
	}

	output, err = executeCommand(t, "", "config", "show")
	if err != nil {
		t.Fatalf("config show error: %v", err)
	}
	if !strings.Contains(output, "format: csv") {
		t.Errorf("config show missing updated format:\n%s", output)
	}
	if !strings.Contains(output, configFile) {
		t.Errorf("config show should name %s:\n%s", configFile, output)
	}

	if _, err := executeCommand(t, "", "config", "reset", "export.format"); err != nil {
		t.Fatalf("config reset error: %v", err)
	}
	output, err = executeCommand(t, "", "config", "show")
	if err != nil {
		t.Fatalf("config show error: %v", err)
	}
	if !strings.Contains(output, "format: text") {
		t.Errorf("config reset did not restore the default:\n%s", output)
	}
}

func TestConfigSet_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown key", []string{"no.such.key", "1"}},
		{"bad bool", []string{"storage.lock", "maybe"}},
		{"bad int", []string{"tui.max_transcript", "lots"}},
		{"fails validation", []string{"export.format", "xml"}},
		{"below minimum", []string{"tui.max_transcript", "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configHome, _ := testutil.IsolateHome(t)

			args := append([]string{"config", "set"}, tt.args...)
			if _, err := executeCommand(t, "", args...); err == nil {
				t.Error("config set should fail")
			}
			if _, err := os.Stat(filepath.Join(configHome, "tock", "config.yaml")); !os.IsNotExist(err) {
				t.Error("rejected value should not be written")
			}
		})
	}
}

func TestConfigPath(t *testing.T) {
	configHome, _ := testutil.IsolateHome(t)

	output, err := executeCommand(t, "", "config", "path")
	if err != nil {
		t.Fatalf("config path error: %v", err)
	}
	if !strings.Contains(output, filepath.Join(configHome, "tock", "config.yaml")) {
		t.Errorf("output = %q", output)
	}
	if !strings.Contains(output, "TOCK_STORAGE_PATH") {
		t.Errorf("output should mention environment variables: %q", output)
	}
}

func TestConfigEdit(t *testing.T) {
	configHome, _ := testutil.IsolateHome(t)
	t.Setenv("EDITOR", "fake-editor")

	var gotName string
	var gotArgs []string
	origCommand := execCommand
	execCommand = func(name string, arg ...string) *exec.Cmd {
		gotName = name
		gotArgs = arg
		return exec.Command("true")
	}
	defer func() { execCommand = origCommand }()

	if _, err := executeCommand(t, "", "config", "edit"); err != nil {
		t.Fatalf("config edit error: %v", err)
	}

	configFile := filepath.Join(configHome, "tock", "config.yaml")
	if gotName != "fake-editor" {
		t.Errorf("editor = %q, want fake-editor", gotName)
	}
	if len(gotArgs) != 1 || gotArgs[0] != configFile {
		t.Errorf("editor args = %v, want [%s]", gotArgs, configFile)
	}
	if _, err := os.Stat(configFile); err != nil {
		t.Errorf("config edit should create the file first: %v", err)
	}
}
