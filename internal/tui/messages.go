package tui

// fileChangedMsg reports that the task file was touched on disk.
type fileChangedMsg struct{}

// watchErrMsg carries an error from the file watcher.
type watchErrMsg struct {
	err error
}
