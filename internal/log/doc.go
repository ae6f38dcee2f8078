// Package log builds the slog loggers used by problemreg.
//
// Loggers write to stderr at Warn level, or Debug in verbose mode, so that
// the console summary on stdout stays clean. Every logger is wrapped in a
// PathHandler which shortens the user's home directory to "~" in string
// attributes, keeping user names out of logs attached to bug reports.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	logger.Debug("export written", "path", "/home/alice/problems.json")
//	// path=~/problems.json
//
//	slog.SetDefault(logger)
package log
