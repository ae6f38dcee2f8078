package model

import (
	"fmt"
	"strings"
)

// NotApplicable is the sentinel stored in fields that do not apply to a problem,
// such as the faulty service of a no-op baseline.
const NotApplicable = "N/A"

// Columns is the fixed column order of the CSV export.
// Every Problem carries a value for each column.
var Columns = []string{
	"id",
	"task",
	"app",
	"namespace",
	"faulty_service",
	"fault_type",
	"fault_description",
	"workload",
	"expected_solution",
	"system_level",
	"fault_category",
	"deployment",
}

// Problem is one evaluation scenario of the benchmark: a fault injected into a
// sample application and the task an agent has to solve about it.
type Problem struct {
	// ID uniquely identifies the problem across the registry.
	ID string `json:"id" yaml:"id"`

	// Task is the kind of question the problem poses.
	Task TaskKind `json:"task" yaml:"task"`

	// App is the display name of the sample application.
	App string `json:"app" yaml:"app"`

	// Namespace is the deployment namespace or grouping string.
	Namespace string `json:"namespace" yaml:"namespace"`

	// FaultyService is the component the fault targets, or NotApplicable.
	FaultyService string `json:"faulty_service" yaml:"faulty_service"`

	// FaultType is the short fault identifier (e.g. "misconfig_k8s").
	FaultType string `json:"fault_type" yaml:"fault_type"`

	// FaultDescription is free text describing the injected fault.
	FaultDescription string `json:"fault_description" yaml:"fault_description"`

	// Workload is the path or label of the traffic generator, or NotApplicable.
	Workload string `json:"workload" yaml:"workload"`

	// ExpectedSolution is the display-ready answer. Its shape depends on Task;
	// use Solution to obtain the typed form.
	ExpectedSolution string `json:"expected_solution" yaml:"expected_solution"`

	// SystemLevel is the architectural layer of the fault, or NotApplicable.
	SystemLevel string `json:"system_level" yaml:"system_level"`

	// FaultCategory is the analysis fault type, or NotApplicable.
	FaultCategory string `json:"fault_category" yaml:"fault_category"`

	// Deployment is the runtime substrate. Empty in a catalog means k8s.
	Deployment Deployment `json:"deployment" yaml:"deployment,omitempty"`
}

// Solution parses ExpectedSolution according to the problem's task kind.
func (p Problem) Solution() (Solution, error) {
	return ParseSolution(p.Task, p.ExpectedSolution)
}

// IsBaseline reports whether the problem injects no fault.
func (p Problem) IsBaseline() bool {
	return p.FaultyService == NotApplicable && p.SystemLevel == NotApplicable
}

// Row returns the problem's values in Columns order.
func (p Problem) Row() []string {
	return []string{
		p.ID,
		p.Task.String(),
		p.App,
		p.Namespace,
		p.FaultyService,
		p.FaultType,
		p.FaultDescription,
		p.Workload,
		p.ExpectedSolution,
		p.SystemLevel,
		p.FaultCategory,
		p.Deployment.String(),
	}
}

// MissingFields returns the column names whose values are empty.
func (p Problem) MissingFields() []string {
	var missing []string
	for i, v := range p.Row() {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, Columns[i])
		}
	}
	return missing
}

// ProblemFromRow builds a Problem from a CSV row in Columns order.
// The task and deployment are taken verbatim; validation is left to the caller.
func ProblemFromRow(row []string) (Problem, error) {
	if len(row) != len(Columns) {
		return Problem{}, fmt.Errorf("expected %d columns, got %d", len(Columns), len(row))
	}
	return Problem{
		ID:               row[0],
		Task:             TaskKind(row[1]),
		App:              row[2],
		Namespace:        row[3],
		FaultyService:    row[4],
		FaultType:        row[5],
		FaultDescription: row[6],
		Workload:         row[7],
		ExpectedSolution: row[8],
		SystemLevel:      row[9],
		FaultCategory:    row[10],
		Deployment:       Deployment(row[11]),
	}, nil
}
