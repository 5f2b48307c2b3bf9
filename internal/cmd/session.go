package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/tock/internal/assistant"
	"github.com/Iron-Ham/tock/internal/config"
	"github.com/Iron-Ham/tock/internal/logging"
	"github.com/Iron-Ham/tock/internal/storage"
	"github.com/Iron-Ham/tock/internal/tasklist"
)

// session is everything a command needs to work on the task file.
type session struct {
	cfg    *config.Config
	logger *logging.Logger
	store  *storage.Storage
	lock   *storage.Lock
	list   *tasklist.TaskList
}

// openSession loads the configuration, starts logging and loads the task
// file. Commands that change the list pass exclusive so a second session on
// the same file is refused while storage.lock is on.
func openSession(cmd *cobra.Command, exclusive bool) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	s := &session{cfg: cfg, logger: newLogger(cmd, cfg)}

	if exclusive && cfg.Storage.Lock {
		lock, err := storage.AcquireLock(cfg.Storage.Path)
		if err != nil {
			s.logger.Error("failed to lock task file", "error", err.Error())
			s.Close()
			return nil, err
		}
		s.lock = lock
	}

	s.store = storage.New(cfg.Storage.Path, storage.WithLogger(s.logger))
	s.list, err = s.store.Load()
	if err != nil {
		s.Close()
		return nil, err
	}

	s.logger.Info("session opened", "command", cmd.Name(), "tasks", s.list.Len())
	return s, nil
}

// newLogger builds the debug logger. Logging problems never stop a command;
// they fall back to discarding logs with a warning.
func newLogger(cmd *cobra.Command, cfg *config.Config) *logging.Logger {
	if !cfg.Logging.Enabled {
		return logging.NopLogger()
	}

	logger, err := logging.NewLoggerWithRotation(cfg.Logging.Dir, cfg.Logging.Level, logging.RotationConfig{
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		Compress:   cfg.Logging.Compress,
	})
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: logging disabled: %v\n", err)
		return logging.NopLogger()
	}
	return logger
}

func (s *session) assistant() *assistant.Assistant {
	return assistant.New(s.list, s.store, s.logger)
}

// Close releases the lock and closes the log.
func (s *session) Close() {
	if err := s.lock.Release(); err != nil {
		s.logger.Warn("failed to release task file lock", "error", err.Error())
	}
	_ = s.logger.Close()
}
