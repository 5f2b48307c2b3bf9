package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Iron-Ham/tock/internal/storage"
	"github.com/Iron-Ham/tock/internal/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start a full-screen chat session",
	Long: `Start a chat session in a full-screen terminal interface.

Commands are the same as in the line console. Press esc or ctrl+c, or type
bye, to leave. A banner appears if the task file is changed by something
else while the chat is open.`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd, true)
	if err != nil {
		return err
	}
	defer s.Close()

	appOpts := []tui.AppOption{tui.WithAltScreen(s.cfg.TUI.AltScreen)}
	if w, err := storage.NewWatcher(s.store.Path()); err != nil {
		s.logger.Warn("task file watcher unavailable", "error", err.Error())
	} else {
		defer func() { _ = w.Close() }()
		appOpts = append(appOpts, tui.WithWatcher(w))
	}

	app := tui.New(s.assistant(), tui.Options{
		Title:         s.store.Path(),
		MaxTranscript: s.cfg.TUI.MaxTranscript,
		Stale:         s.store.Stale,
		Logger:        s.logger,
	}, appOpts...)
	return app.Run()
}
