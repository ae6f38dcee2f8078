package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Catalog validation errors.
// Each Issue of a ValidationError wraps one of these, so callers can use
// errors.Is on the ValidationError itself.
var (
	// ErrDuplicateID is returned when two problems share an id.
	ErrDuplicateID = errors.New("duplicate problem id")

	// ErrUnknownTask is returned when a problem's task is not one of
	// detection, localization, analysis or mitigation.
	ErrUnknownTask = errors.New("unknown task kind")

	// ErrMissingField is returned when a required field is empty.
	// Fields that do not apply must carry the "N/A" sentinel instead.
	ErrMissingField = errors.New("missing required field")

	// ErrUnknownDeployment is returned when the deployment is neither k8s nor docker.
	ErrUnknownDeployment = errors.New("unknown deployment")

	// ErrInvalidSolution is returned when the expected solution does not have
	// the shape its task requires or disagrees with the record.
	ErrInvalidSolution = errors.New("invalid expected solution")

	// ErrUnknownSystemLevel is returned when system_level is outside the
	// analysis enumeration and is not "N/A".
	ErrUnknownSystemLevel = errors.New("unknown system level")

	// ErrUnknownFaultCategory is returned when fault_category is outside the
	// analysis enumeration and is not "N/A".
	ErrUnknownFaultCategory = errors.New("unknown fault category")

	// ErrInvalidCharacter is returned when a field holds a character the
	// exports cannot carry unchanged: whitespace in an id, a carriage return
	// anywhere, or a line break outside expected_solution.
	ErrInvalidCharacter = errors.New("invalid character")

	// ErrEmptyCatalog is returned when the catalog holds no problems.
	ErrEmptyCatalog = errors.New("catalog contains no problems")
)

// Issue is a single validation failure tied to a catalog entry.
type Issue struct {
	// Index is the zero-based position of the entry in the catalog.
	Index int

	// ID is the entry's id, possibly empty.
	ID string

	// Err describes the failure and wraps one of the sentinel errors.
	Err error
}

// Error formats the issue with its position and id.
func (i Issue) Error() string {
	return fmt.Sprintf("problem #%d (%s): %v", i.Index+1, i.ID, i.Err)
}

// Unwrap returns the underlying error.
func (i Issue) Unwrap() error {
	return i.Err
}

// ValidationError collects every issue found while building a Registry.
type ValidationError struct {
	Issues []Issue
}

// Error lists all issues, one per line.
func (e *ValidationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "catalog validation failed with %d issue(s)", len(e.Issues))
	for _, issue := range e.Issues {
		sb.WriteString("\n  - ")
		sb.WriteString(issue.Error())
	}
	return sb.String()
}

// Unwrap exposes each issue to errors.Is and errors.As.
func (e *ValidationError) Unwrap() []error {
	errs := make([]error, len(e.Issues))
	for i, issue := range e.Issues {
		errs[i] = issue
	}
	return errs
}
