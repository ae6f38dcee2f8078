package catalog

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/nao1215/problemreg/internal/model"
)

// validate checks every problem and collects all issues.
func validate(problems []model.Problem, taskTypes model.TaskTypes) error {
	levels := append(slices.Clone(taskTypes.SystemLevels()), model.NotApplicable)
	categories := append(slices.Clone(taskTypes.FaultTypes()), model.NotApplicable)

	var issues []Issue
	report := func(i int, p model.Problem, err error) {
		issues = append(issues, Issue{Index: i, ID: p.ID, Err: err})
	}

	seen := make(map[string]int, len(problems))
	for i, p := range problems {
		if missing := p.MissingFields(); len(missing) > 0 {
			report(i, p, fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", ")))
		}

		if err := validateCharacters(p); err != nil {
			report(i, p, err)
		}

		if p.ID != "" {
			if first, dup := seen[p.ID]; dup {
				report(i, p, fmt.Errorf("%w: also declared at #%d", ErrDuplicateID, first+1))
			} else {
				seen[p.ID] = i
			}
		}

		if _, err := model.ParseDeployment(p.Deployment.String()); err != nil {
			report(i, p, fmt.Errorf("%w: %q", ErrUnknownDeployment, p.Deployment))
		}

		if p.SystemLevel != "" && !slices.Contains(levels, p.SystemLevel) {
			report(i, p, fmt.Errorf("%w: %q", ErrUnknownSystemLevel, p.SystemLevel))
		}
		if p.FaultCategory != "" && !slices.Contains(categories, p.FaultCategory) {
			report(i, p, fmt.Errorf("%w: %q", ErrUnknownFaultCategory, p.FaultCategory))
		}

		if !p.Task.IsValid() {
			if p.Task != "" {
				report(i, p, fmt.Errorf("%w: %q", ErrUnknownTask, p.Task))
			}
			continue
		}
		if err := validateSolution(p); err != nil {
			report(i, p, fmt.Errorf("%w: %v", ErrInvalidSolution, err))
		}
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

// validateSolution checks the expected solution's shape and its agreement
// with the rest of the record.
func validateSolution(p model.Problem) error {
	if p.ExpectedSolution == "" {
		// Already reported as a missing field.
		return nil
	}

	sol, err := p.Solution()
	if err != nil {
		return err
	}

	switch p.Task {
	case model.TaskLocalization:
		if p.FaultyService != model.NotApplicable && !slices.Contains(sol.Services, p.FaultyService) {
			return fmt.Errorf("localization answer %v does not name faulty service %q", sol.Services, p.FaultyService)
		}
	case model.TaskAnalysis:
		if sol.Analysis.SystemLevel != p.SystemLevel {
			return fmt.Errorf("analysis system_level %q disagrees with record %q", sol.Analysis.SystemLevel, p.SystemLevel)
		}
		if sol.Analysis.FaultType != p.FaultCategory {
			return fmt.Errorf("analysis fault_type %q disagrees with record %q", sol.Analysis.FaultType, p.FaultCategory)
		}
	}
	return nil
}

// validateCharacters rejects text that would not survive a CSV round trip or
// that could be mistaken for record layout in the text report.
func validateCharacters(p model.Problem) error {
	if strings.ContainsFunc(p.ID, unicode.IsSpace) {
		return fmt.Errorf("%w: id %q contains whitespace", ErrInvalidCharacter, p.ID)
	}

	row := p.Row()
	for i, column := range model.Columns {
		value := row[i]
		if strings.ContainsRune(value, '\r') {
			return fmt.Errorf("%w: %s contains a carriage return", ErrInvalidCharacter, column)
		}
		if column != "expected_solution" && strings.ContainsRune(value, '\n') {
			return fmt.Errorf("%w: %s contains a line break", ErrInvalidCharacter, column)
		}
	}
	return nil
}
