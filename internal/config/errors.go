package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and can be checked with
// errors.Is().
var (
	// ErrNoOutputDir is returned when the output directory is empty.
	ErrNoOutputDir = errors.New("no output directory specified")

	// ErrNoFormat is returned when no export format is configured.
	ErrNoFormat = errors.New("no export format specified: use --format json,csv,txt")

	// ErrUnknownFormat is returned for a format other than json, csv, txt or md.
	ErrUnknownFormat = errors.New("unknown export format: must be one of json, csv, txt, md")

	// ErrDuplicateFormat is returned when a format is listed twice.
	ErrDuplicateFormat = errors.New("duplicate export format")

	// ErrNoFileName is returned when an enabled format has an empty file name.
	ErrNoFileName = errors.New("empty export file name")

	// ErrInvalidConcurrency is returned when the export concurrency is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrNoDBDir is returned when history is enabled without a database directory.
	ErrNoDBDir = errors.New("history enabled but no database directory specified")
)
