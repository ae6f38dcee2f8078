package report

import "errors"

// Export and verification errors.
var (
	// ErrUnknownFormat is returned when an export format is not recognized.
	ErrUnknownFormat = errors.New("unknown export format")

	// ErrDuplicateTarget is returned when two export targets share a path.
	ErrDuplicateTarget = errors.New("duplicate export target")

	// ErrBadHeader is returned when a CSV export does not start with the expected header.
	ErrBadHeader = errors.New("unexpected CSV header")

	// ErrInconsistent is returned when exported files disagree with each other.
	ErrInconsistent = errors.New("exports are inconsistent")
)
