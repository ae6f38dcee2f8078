package model

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TaskKind is the category of question a problem poses about a faulty deployment.
type TaskKind string

const (
	// TaskDetection asks whether an anomaly exists in the deployed service.
	TaskDetection TaskKind = "detection"

	// TaskLocalization asks which service(s) hold the root cause.
	TaskLocalization TaskKind = "localization"

	// TaskAnalysis asks for the system level and fault type of the root cause.
	TaskAnalysis TaskKind = "analysis"

	// TaskMitigation asks the agent to fix the anomaly.
	TaskMitigation TaskKind = "mitigation"
)

// TaskKinds returns every task kind in report order.
// The returned slice is a fresh copy and may be modified by the caller.
func TaskKinds() []TaskKind {
	return []TaskKind{TaskDetection, TaskLocalization, TaskAnalysis, TaskMitigation}
}

// ParseTaskKind converts s into a TaskKind.
// It returns an error when s is not one of the four recognized kinds.
func ParseTaskKind(s string) (TaskKind, error) {
	kind := TaskKind(s)
	if !kind.IsValid() {
		return "", fmt.Errorf("unknown task kind %q", s)
	}
	return kind, nil
}

// IsValid reports whether k is one of the recognized task kinds.
func (k TaskKind) IsValid() bool {
	switch k {
	case TaskDetection, TaskLocalization, TaskAnalysis, TaskMitigation:
		return true
	default:
		return false
	}
}

// String returns the task kind identifier.
func (k TaskKind) String() string {
	return string(k)
}

// Title returns the capitalized task kind, e.g. "Detection".
func (k TaskKind) Title() string {
	return cases.Title(language.English).String(string(k))
}

// Upper returns the upper-case task kind used in section headers.
func (k TaskKind) Upper() string {
	return cases.Upper(language.English).String(string(k))
}
