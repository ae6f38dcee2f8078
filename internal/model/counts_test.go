package model

import (
	"encoding/json"
	"testing"
)

func sampleProblems() []Problem {
	return []Problem{
		{ID: "a", Task: TaskDetection, App: "Social Network", SystemLevel: "Virtualization", FaultCategory: "Misconfiguration", Deployment: DeploymentK8s},
		{ID: "b", Task: TaskDetection, App: "Hotel Reservation", SystemLevel: "Application", FaultCategory: "Code Defect", Deployment: DeploymentK8s},
		{ID: "c", Task: TaskMitigation, App: "Hotel Reservation", SystemLevel: "Application", FaultCategory: "Code Defect", Deployment: DeploymentK8s},
		{ID: "d", Task: TaskDetection, App: "Flower (FL)", SystemLevel: "Application", FaultCategory: "Operation Error", Deployment: DeploymentDocker},
	}
}

// TestCountBySortedKeys tests that distinct values are sorted when no keys are given.
func TestCountBySortedKeys(t *testing.T) {
	t.Parallel()

	got := CountBy(sampleProblems(), AppField, nil)
	wantKeys := []string{"Flower (FL)", "Hotel Reservation", "Social Network"}

	keys := got.Keys()
	if len(keys) != len(wantKeys) {
		t.Fatalf("got keys %v, want %v", keys, wantKeys)
	}
	for i := range wantKeys {
		if keys[i] != wantKeys[i] {
			t.Errorf("key[%d] = %q, want %q", i, keys[i], wantKeys[i])
		}
	}
	if got.Get("Hotel Reservation") != 2 {
		t.Errorf("Hotel Reservation = %d, want 2", got.Get("Hotel Reservation"))
	}
	if got.Sum() != 4 {
		t.Errorf("Sum() = %d, want 4", got.Sum())
	}
}

// TestCountByFixedKeys tests that fixed keys keep their order and report zeros.
func TestCountByFixedKeys(t *testing.T) {
	t.Parallel()

	got := CountBy(sampleProblems(), TaskField, []string{"detection", "localization", "analysis", "mitigation"})

	want := Counts{
		{Key: "detection", Count: 3},
		{Key: "localization", Count: 0},
		{Key: "analysis", Count: 0},
		{Key: "mitigation", Count: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

// TestCountsJSONOrder tests that counts marshal as an ordered object and decode back.
func TestCountsJSONOrder(t *testing.T) {
	t.Parallel()

	c := Counts{{Key: "zeta", Count: 1}, {Key: "alpha", Count: 2}}

	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"zeta":1,"alpha":2}` {
		t.Errorf("marshal = %s", data)
	}

	var back Counts
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(back) != 2 || back[0].Key != "zeta" || back[1].Count != 2 {
		t.Errorf("unmarshal = %+v", back)
	}
}

// TestNewSummary tests the summary tallies.
func TestNewSummary(t *testing.T) {
	t.Parallel()

	s := NewSummary(sampleProblems())

	if s.Total != 4 {
		t.Errorf("Total = %d, want 4", s.Total)
	}
	if s.ByTask.Sum() != s.Total {
		t.Errorf("by_task sum %d != total %d", s.ByTask.Sum(), s.Total)
	}
	if s.ByApp.Sum() != s.Total {
		t.Errorf("by_app sum %d != total %d", s.ByApp.Sum(), s.Total)
	}
	if s.TaskCount(TaskDetection) != 3 {
		t.Errorf("detection = %d, want 3", s.TaskCount(TaskDetection))
	}
	if s.ByDeployment.Get("docker") != 1 || s.ByDeployment.Get("k8s") != 3 {
		t.Errorf("by deployment = %+v", s.ByDeployment)
	}
	if s.BySystemLevel.Keys()[0] != "Application" {
		t.Errorf("system levels not sorted: %v", s.BySystemLevel.Keys())
	}
}

// TestSummaryJSONFields tests that only the exported tallies appear in JSON.
func TestSummaryJSONFields(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(NewSummary(sampleProblems()))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"total", "by_task", "by_app"} {
		if _, ok := fields[key]; !ok {
			t.Errorf("missing %q", key)
		}
	}
	if len(fields) != 3 {
		t.Errorf("unexpected fields: %s", data)
	}
}
