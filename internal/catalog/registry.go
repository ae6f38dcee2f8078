package catalog

import (
	"slices"

	"github.com/nao1215/problemreg/internal/model"
)

// Registry is the validated, immutable problem catalog.
// All accessors return copies, so a Registry can be shared freely between
// goroutines once constructed.
type Registry struct {
	problems  []model.Problem
	taskTypes model.TaskTypes
	index     map[string]int
	summary   model.Summary
}

// NewRegistry validates problems against taskTypes and freezes them.
// Entries without a deployment default to k8s. On failure the returned error
// is a *ValidationError listing every issue found.
func NewRegistry(problems []model.Problem, taskTypes model.TaskTypes) (*Registry, error) {
	if len(problems) == 0 {
		return nil, ErrEmptyCatalog
	}

	normalized := make([]model.Problem, len(problems))
	for i, p := range problems {
		if p.Deployment == "" {
			p.Deployment = model.DeploymentK8s
		}
		normalized[i] = p
	}

	if err := validate(normalized, taskTypes); err != nil {
		return nil, err
	}

	index := make(map[string]int, len(normalized))
	for i, p := range normalized {
		index[p.ID] = i
	}

	return &Registry{
		problems:  normalized,
		taskTypes: slices.Clone(taskTypes),
		index:     index,
		summary:   model.NewSummary(normalized),
	}, nil
}

// Problems returns all problems in declaration order.
func (r *Registry) Problems() []model.Problem {
	return slices.Clone(r.problems)
}

// TaskTypes returns the task-type descriptor table.
func (r *Registry) TaskTypes() model.TaskTypes {
	return slices.Clone(r.taskTypes)
}

// Len returns the number of problems.
func (r *Registry) Len() int {
	return len(r.problems)
}

// Summary returns the precomputed tallies of the registry.
func (r *Registry) Summary() model.Summary {
	return r.summary
}

// Lookup returns the problem with the given id.
func (r *Registry) Lookup(id string) (model.Problem, bool) {
	i, ok := r.index[id]
	if !ok {
		return model.Problem{}, false
	}
	return r.problems[i], true
}

// ByTask returns the problems of one task kind in declaration order.
func (r *Registry) ByTask(kind model.TaskKind) []model.Problem {
	return r.Filter(Filter{Task: kind})
}

// Apps returns the distinct application names, sorted.
func (r *Registry) Apps() []string {
	return r.summary.ByApp.Keys()
}

// Filter selects problems. Zero-valued fields match everything.
type Filter struct {
	Task          model.TaskKind
	App           string
	Deployment    model.Deployment
	FaultCategory string
}

// Match reports whether p satisfies every non-empty criterion.
func (f Filter) Match(p model.Problem) bool {
	if f.Task != "" && p.Task != f.Task {
		return false
	}
	if f.App != "" && p.App != f.App {
		return false
	}
	if f.Deployment != "" && p.Deployment != f.Deployment {
		return false
	}
	if f.FaultCategory != "" && p.FaultCategory != f.FaultCategory {
		return false
	}
	return true
}

// Filter returns the problems matching f in declaration order.
func (r *Registry) Filter(f Filter) []model.Problem {
	var out []model.Problem
	for _, p := range r.problems {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}
