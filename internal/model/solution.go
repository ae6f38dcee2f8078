package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Detection answers.
const (
	AnswerYes = "Yes"
	AnswerNo  = "No"
)

// AnalysisAnswer is the expected answer of an analysis problem.
type AnalysisAnswer struct {
	SystemLevel string `json:"system_level"`
	FaultType   string `json:"fault_type"`
}

// Solution is the typed form of a problem's expected solution.
// Task selects which of the remaining fields is meaningful:
//   - detection: Anomaly
//   - localization: Services
//   - analysis: Analysis
//   - mitigation: Remediation
type Solution struct {
	Task        TaskKind
	Anomaly     bool
	Services    []string
	Analysis    AnalysisAnswer
	Remediation string
}

// ParseSolution parses the display text of an expected solution for the given task kind.
func ParseSolution(kind TaskKind, text string) (Solution, error) {
	s := Solution{Task: kind}

	switch kind {
	case TaskDetection:
		switch text {
		case AnswerYes:
			s.Anomaly = true
		case AnswerNo:
			s.Anomaly = false
		default:
			return Solution{}, fmt.Errorf("detection solution must be %q or %q, got %q", AnswerYes, AnswerNo, text)
		}

	case TaskLocalization:
		if err := json.Unmarshal([]byte(text), &s.Services); err != nil {
			return Solution{}, fmt.Errorf("localization solution must be a list of service names: %w", err)
		}
		if len(s.Services) == 0 {
			return Solution{}, errors.New("localization solution must name at least one service")
		}
		for _, svc := range s.Services {
			if strings.TrimSpace(svc) == "" {
				return Solution{}, errors.New("localization solution contains an empty service name")
			}
		}

	case TaskAnalysis:
		dec := json.NewDecoder(bytes.NewReader([]byte(text)))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&s.Analysis); err != nil {
			return Solution{}, fmt.Errorf("analysis solution must be an object with system_level and fault_type: %w", err)
		}
		if s.Analysis.SystemLevel == "" || s.Analysis.FaultType == "" {
			return Solution{}, errors.New("analysis solution requires both system_level and fault_type")
		}

	case TaskMitigation:
		if strings.TrimSpace(text) == "" {
			return Solution{}, errors.New("mitigation solution must describe the remediation")
		}
		s.Remediation = text

	default:
		return Solution{}, fmt.Errorf("unknown task kind %q", kind)
	}

	return s, nil
}

// String renders the canonical display text of the solution.
func (s Solution) String() string {
	switch s.Task {
	case TaskDetection:
		if s.Anomaly {
			return AnswerYes
		}
		return AnswerNo
	case TaskLocalization:
		quoted := make([]string, len(s.Services))
		for i, svc := range s.Services {
			quoted[i] = quoteJSON(svc)
		}
		return "[" + strings.Join(quoted, ", ") + "]"
	case TaskAnalysis:
		return fmt.Sprintf(`{"system_level": %s, "fault_type": %s}`,
			quoteJSON(s.Analysis.SystemLevel), quoteJSON(s.Analysis.FaultType))
	case TaskMitigation:
		return s.Remediation
	default:
		return ""
	}
}

// quoteJSON returns s as a JSON string literal without HTML escaping.
func quoteJSON(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return `""`
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
