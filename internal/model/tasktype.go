package model

import (
	"encoding/json"
	"fmt"
)

// System levels at which a fault can manifest.
const (
	SystemLevelHardware        = "Hardware"
	SystemLevelOperatingSystem = "Operating System"
	SystemLevelVirtualization  = "Virtualization"
	SystemLevelApplication     = "Application"
)

// Fault types accepted by analysis problems.
const (
	FaultMisconfiguration    = "Misconfiguration"
	FaultCodeDefect          = "Code Defect"
	FaultAuthenticationIssue = "Authentication Issue"
	FaultNetworkStorageIssue = "Network/Storage Issue"
	FaultOperationError      = "Operation Error"
	FaultDependencyProblem   = "Dependency Problem"
)

// TaskType is the static metadata describing one task kind.
type TaskType struct {
	// Kind is the task kind this descriptor belongs to. It is the key of the
	// JSON object and is therefore not serialized as a field.
	Kind TaskKind `json:"-"`

	// Description explains what the task asks for.
	Description string `json:"description"`

	// ExpectedSolutionFormat describes the shape of the expected solution.
	ExpectedSolutionFormat string `json:"expected_solution_format"`

	// Metric is the name of the metric the harness reports for this task.
	Metric string `json:"metric"`

	// SystemLevels is the closed set of valid system levels (analysis only).
	SystemLevels []string `json:"system_levels,omitempty"`

	// FaultTypes is the closed set of valid fault types (analysis only).
	FaultTypes []string `json:"fault_types,omitempty"`
}

// TaskTypes is the descriptor table in task-kind order.
// It serializes to a JSON object whose keys keep that order.
type TaskTypes []TaskType

// DefaultTaskTypes returns the descriptor table of the benchmark.
func DefaultTaskTypes() TaskTypes {
	return TaskTypes{
		{
			Kind:                   TaskDetection,
			Description:            "Detect anomalies in a deployed service",
			ExpectedSolutionFormat: `str: "Yes" or "No"`,
			Metric:                 "TTD (Time To Detect)",
		},
		{
			Kind:                   TaskLocalization,
			Description:            "Identify the service(s) where the root cause of the fault lies",
			ExpectedSolutionFormat: "list[str]: list of faulty service names",
			Metric:                 "TTL (Time To Localize)",
		},
		{
			Kind:                   TaskAnalysis,
			Description:            "Root cause analysis - identify system level and fault type",
			ExpectedSolutionFormat: `dict: {"system_level": "...", "fault_type": "..."}`,
			Metric:                 "TTA (Time To Analyze)",
			SystemLevels: []string{
				SystemLevelHardware,
				SystemLevelOperatingSystem,
				SystemLevelVirtualization,
				SystemLevelApplication,
			},
			FaultTypes: []string{
				FaultMisconfiguration,
				FaultCodeDefect,
				FaultAuthenticationIssue,
				FaultNetworkStorageIssue,
				FaultOperationError,
				FaultDependencyProblem,
			},
		},
		{
			Kind:                   TaskMitigation,
			Description:            "Mitigate/fix the detected anomaly",
			ExpectedSolutionFormat: "None (verified by system status check)",
			Metric:                 "TTM (Time To Mitigate)",
		},
	}
}

// Get returns the descriptor for kind.
func (t TaskTypes) Get(kind TaskKind) (TaskType, bool) {
	for _, tt := range t {
		if tt.Kind == kind {
			return tt, true
		}
	}
	return TaskType{}, false
}

// SystemLevels returns the system level enumeration of the analysis descriptor.
func (t TaskTypes) SystemLevels() []string {
	tt, _ := t.Get(TaskAnalysis)
	return tt.SystemLevels
}

// FaultTypes returns the fault type enumeration of the analysis descriptor.
func (t TaskTypes) FaultTypes() []string {
	tt, _ := t.Get(TaskAnalysis)
	return tt.FaultTypes
}

// MarshalJSON encodes the table as an object keyed by task kind.
func (t TaskTypes) MarshalJSON() ([]byte, error) {
	keys := make([]string, len(t))
	values := make([]any, len(t))
	for i, tt := range t {
		keys[i] = tt.Kind.String()
		values[i] = tt
	}
	return marshalOrdered(keys, values)
}

// UnmarshalJSON decodes an object keyed by task kind, keeping key order.
func (t *TaskTypes) UnmarshalJSON(data []byte) error {
	var out TaskTypes
	err := unmarshalOrdered(data, func(key string, raw json.RawMessage) error {
		kind, err := ParseTaskKind(key)
		if err != nil {
			return err
		}
		var tt TaskType
		if err := json.Unmarshal(raw, &tt); err != nil {
			return fmt.Errorf("task type %s: %w", key, err)
		}
		tt.Kind = kind
		out = append(out, tt)
		return nil
	})
	if err != nil {
		return err
	}
	*t = out
	return nil
}
