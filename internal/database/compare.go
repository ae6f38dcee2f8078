package database

import (
	"slices"

	"github.com/nao1215/problemreg/internal/model"
)

// Delta is the change of one tally between two snapshots.
type Delta struct {
	Key      string `json:"key"`
	Previous int    `json:"previous"`
	Current  int    `json:"current"`
}

// Change returns Current minus Previous.
func (d Delta) Change() int {
	return d.Current - d.Previous
}

// Comparison holds the result of comparing two snapshots.
type Comparison struct {
	// Previous and Current identify the compared snapshots.
	Previous SnapshotMetadata `json:"previous"`
	Current  SnapshotMetadata `json:"current"`

	// CatalogChanged is true when the catalog digests differ.
	CatalogChanged bool `json:"catalog_changed"`

	// Added lists ids present only in Current, in Current's order.
	Added []string `json:"added,omitempty"`

	// Removed lists ids present only in Previous, in Previous's order.
	Removed []string `json:"removed,omitempty"`

	// UnchangedCount is the number of ids present in both.
	UnchangedCount int `json:"unchanged_count"`

	// ByTask and ByApp hold the tally changes.
	ByTask []Delta `json:"by_task"`
	ByApp  []Delta `json:"by_app"`
}

// Compare compares two snapshots.
func Compare(previous, current *Snapshot) *Comparison {
	result := &Comparison{
		Previous:       previous.Metadata(),
		Current:        current.Metadata(),
		CatalogChanged: previous.CatalogDigest != current.CatalogDigest,
		ByTask:         deltas(previous.ByTask, current.ByTask),
		ByApp:          deltas(previous.ByApp, current.ByApp),
	}

	previousIDs := make(map[string]bool, len(previous.ProblemIDs))
	for _, id := range previous.ProblemIDs {
		previousIDs[id] = true
	}
	currentIDs := make(map[string]bool, len(current.ProblemIDs))
	for _, id := range current.ProblemIDs {
		currentIDs[id] = true
	}

	for _, id := range current.ProblemIDs {
		if !previousIDs[id] {
			result.Added = append(result.Added, id)
		}
	}
	for _, id := range previous.ProblemIDs {
		if currentIDs[id] {
			result.UnchangedCount++
		} else {
			result.Removed = append(result.Removed, id)
		}
	}

	return result
}

// HasChanges reports whether the compared snapshots differ at all.
func (c *Comparison) HasChanges() bool {
	return c.CatalogChanged || len(c.Added) > 0 || len(c.Removed) > 0
}

// Metadata returns the listing view of a snapshot.
func (s *Snapshot) Metadata() SnapshotMetadata {
	return SnapshotMetadata{
		ID:            s.ID,
		CreatedAt:     s.CreatedAt,
		Total:         s.Total,
		CatalogDigest: s.CatalogDigest,
	}
}

// deltas pairs two tallies. Keys keep current's order; keys only in
// previous follow in previous's order.
func deltas(previous, current model.Counts) []Delta {
	keys := current.Keys()
	for _, k := range previous.Keys() {
		if !slices.Contains(keys, k) {
			keys = append(keys, k)
		}
	}

	result := make([]Delta, len(keys))
	for i, k := range keys {
		result[i] = Delta{Key: k, Previous: previous.Get(k), Current: current.Get(k)}
	}
	return result
}
