// Package logging provides structured logging for tock.
//
// Logs are JSON lines written through log/slog to debug.log inside the
// configured log directory. The terminal belongs to the conversation, so
// nothing is logged to stdout; with no directory the logger falls back to
// stderr.
//
// # Levels
//
// DEBUG, INFO, WARN and ERROR are recognised, case-insensitively. Anything
// else logs at INFO.
//
// # Context
//
// Child loggers carry attributes into every entry they write:
//
//	logger := logging.NewLogger(dir, "DEBUG")
//	fileLogger := logger.WithFile("/home/me/.local/share/tock/tasks.txt")
//	fileLogger.WithCommand("mark").Info("task updated", "index", 2)
//
// Output:
//
//	{"time":"...","level":"INFO","msg":"task updated","file":"/home/me/...","command":"mark","index":2}
//
// # Rotation
//
// [NewLoggerWithRotation] writes through a [RotatingWriter], which renames
// debug.log to debug.log.1 once it passes the size limit and keeps a fixed
// number of older backups, optionally gzip compressed.
//
// # Thread Safety
//
// [Logger] and [RotatingWriter] are safe for concurrent use. Child loggers
// share the parent's writer.
package logging
