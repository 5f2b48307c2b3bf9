// Package storage persists a task list to a single flat text file.
//
// The file holds one record per line in the format of package record. A
// missing file is created empty on first load. Every save rewrites the whole
// file. Any unreadable record fails the whole load; there is no partial
// recovery.
package storage

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/Iron-Ham/tock/internal/errors"
	"github.com/Iron-Ham/tock/internal/logging"
	"github.com/Iron-Ham/tock/internal/record"
	"github.com/Iron-Ham/tock/internal/tasklist"
)

// Option configures a Storage.
type Option func(*Storage)

// WithFs sets the filesystem the task file lives on. The default is the OS
// filesystem.
func WithFs(fs afero.Fs) Option {
	return func(s *Storage) {
		s.fs = fs
	}
}

// WithLogger sets the logger used for load and save events.
func WithLogger(logger *logging.Logger) Option {
	return func(s *Storage) {
		s.logger = logger
	}
}

// Storage reads and writes one task file. It remembers the bytes it last
// read or wrote so that [Storage.Stale] can detect edits made by anything
// else. A Storage is not safe for concurrent use.
type Storage struct {
	path   string
	fs     afero.Fs
	logger *logging.Logger

	last   []byte
	synced bool
}

// New returns a Storage for the file at path.
func New(path string, opts ...Option) *Storage {
	s := &Storage{
		path:   path,
		fs:     afero.NewOsFs(),
		logger: logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithFile(path)
	return s
}

// Path returns the task file path.
func (s *Storage) Path() string {
	return s.path
}

// Load reads the task file into a new list. A missing file is created,
// together with its directory, and yields an empty list.
func (s *Storage) Load() (*tasklist.TaskList, error) {
	exists, err := afero.Exists(s.fs, s.path)
	if err != nil {
		return nil, s.fail("failed to check task file", errors.ErrStorageRead, err)
	}
	if !exists {
		if err := s.create(); err != nil {
			return nil, err
		}
		s.remember(nil)
		s.logger.Info("created empty task file")
		return tasklist.New(), nil
	}

	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		return nil, s.fail("failed to read task file", errors.ErrStorageRead, err)
	}

	tasks, err := record.DecodeAll(bytes.NewReader(data))
	if err != nil {
		var storageErr *errors.StorageError
		if errors.As(err, &storageErr) {
			storageErr.WithPath(s.path)
		}
		s.logger.Error("failed to decode task file", "error", err.Error())
		return nil, err
	}

	s.remember(data)
	s.logger.Debug("loaded task file", "tasks", len(tasks))
	return tasklist.New(tasks...), nil
}

func (s *Storage) create() error {
	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return s.fail("failed to create task file directory", errors.ErrStorageCreate, err)
	}
	f, err := s.fs.Create(s.path)
	if err != nil {
		return s.fail("failed to create task file", errors.ErrStorageCreate, err)
	}
	if err := f.Close(); err != nil {
		return s.fail("failed to create task file", errors.ErrStorageCreate, err)
	}
	return nil
}

// Save truncates the task file and writes the whole list to it.
func (s *Storage) Save(list *tasklist.TaskList) error {
	data := []byte(list.StorageData())

	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return s.fail("failed to create task file directory", errors.ErrStorageWrite, err)
	}

	f, err := s.fs.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return s.fail("failed to open task file for writing", errors.ErrStorageWrite, err)
	}

	_, writeErr := f.Write(data)
	closeErr := f.Close()
	if writeErr != nil {
		return s.fail("failed to write task file", errors.ErrStorageWrite, writeErr)
	}
	if closeErr != nil {
		return s.fail("failed to close task file", errors.ErrStorageWrite, closeErr)
	}

	s.remember(data)
	s.logger.Debug("saved task file", "tasks", list.Len(), "bytes", len(data))
	return nil
}

// Stale reports whether the file on disk no longer holds what this Storage
// last loaded or saved. Before the first Load or Save it reports false. A
// file removed since then is stale.
func (s *Storage) Stale() (bool, error) {
	if !s.synced {
		return false, nil
	}

	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, s.fail("failed to read task file", errors.ErrStorageRead, err)
	}
	return !bytes.Equal(data, s.last), nil
}

func (s *Storage) remember(data []byte) {
	s.last = bytes.Clone(data)
	s.synced = true
}

func (s *Storage) fail(message string, sentinel, cause error) error {
	err := errors.NewStorageError(message, errors.Join(sentinel, cause)).WithPath(s.path)
	s.logger.Error(message, "error", cause.Error())
	return err
}
