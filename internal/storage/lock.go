package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"github.com/Iron-Ham/tock/internal/errors"
)

// LockSuffix is appended to the task file path to name its lock file.
const LockSuffix = ".lock"

// Lock is an exclusive flock(2) on a task file's lock file. Only one session
// at a time may hold it.
type Lock struct {
	path string
	file *os.File
}

// LockPath returns the lock file path for the task file at path.
func LockPath(path string) string {
	return path + LockSuffix
}

// AcquireLock takes the lock for the task file at path without blocking. If
// another session holds it, the error matches errors.ErrStorageLocked.
func AcquireLock(path string) (*Lock, error) {
	lockPath := LockPath(path)
	if err := os.MkdirAll(filepath.Dir(lockPath), 0o755); err != nil {
		return nil, errors.NewStorageError("failed to create lock directory",
			errors.Join(errors.ErrStorageCreate, err)).WithPath(lockPath)
	}

	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, errors.NewStorageError("failed to open lock file",
			errors.Join(errors.ErrStorageCreate, err)).WithPath(lockPath)
	}

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		_ = f.Close()
		if errors.Is(err, unix.EWOULDBLOCK) {
			return nil, errors.NewStorageError(
				fmt.Sprintf("another tock session is using %s", path),
				errors.ErrStorageLocked).WithPath(lockPath).WithSeverity(errors.SeverityError)
		}
		return nil, errors.NewStorageError("failed to lock task file",
			errors.Join(errors.ErrStorageLocked, err)).WithPath(lockPath)
	}

	return &Lock{path: lockPath, file: f}, nil
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.path
}

// Release drops the lock and closes the lock file. The lock file itself is
// left in place. Releasing twice is a no-op.
func (l *Lock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}

	if err := unix.Flock(int(l.file.Fd()), unix.LOCK_UN); err != nil {
		_ = l.file.Close()
		l.file = nil
		return fmt.Errorf("funlock: %w", err)
	}

	err := l.file.Close()
	l.file = nil
	return err
}
