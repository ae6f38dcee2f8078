package model

// Summary holds the tallies computed over a list of problems.
// Only Total, ByTask and ByApp are part of the JSON export; the remaining
// tallies feed the text report.
type Summary struct {
	// Total is the number of problems.
	Total int `json:"total"`

	// ByTask counts problems per task kind, in task-kind order, zeros included.
	ByTask Counts `json:"by_task"`

	// ByApp counts problems per application, sorted by application name.
	ByApp Counts `json:"by_app"`

	// BySystemLevel counts problems per system level, sorted.
	BySystemLevel Counts `json:"-"`

	// ByFaultCategory counts problems per fault category, sorted.
	ByFaultCategory Counts `json:"-"`

	// ByDeployment counts problems per deployment kind (k8s, docker).
	ByDeployment Counts `json:"-"`
}

// NewSummary computes the summary of problems.
func NewSummary(problems []Problem) Summary {
	taskKeys := make([]string, 0, 4)
	for _, k := range TaskKinds() {
		taskKeys = append(taskKeys, k.String())
	}
	deployKeys := make([]string, 0, 2)
	for _, d := range Deployments() {
		deployKeys = append(deployKeys, d.String())
	}

	return Summary{
		Total:           len(problems),
		ByTask:          CountBy(problems, TaskField, taskKeys),
		ByApp:           CountBy(problems, AppField, nil),
		BySystemLevel:   CountBy(problems, SystemLevelField, nil),
		ByFaultCategory: CountBy(problems, FaultCategoryField, nil),
		ByDeployment:    CountBy(problems, DeploymentField, deployKeys),
	}
}

// TaskCount returns the number of problems of the given kind.
func (s Summary) TaskCount(kind TaskKind) int {
	return s.ByTask.Get(kind.String())
}
