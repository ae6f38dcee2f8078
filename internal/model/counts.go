package model

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Count is one key of a tally and the number of problems that carry it.
type Count struct {
	Key   string
	Count int
}

// Counts is an ordered tally. It serializes to a JSON object whose keys
// keep slice order, so fixed-order and sorted tallies both render deterministically.
type Counts []Count

// Get returns the count for key, or zero when key is absent.
func (c Counts) Get(key string) int {
	for _, e := range c {
		if e.Key == key {
			return e.Count
		}
	}
	return 0
}

// Keys returns the tally keys in order.
func (c Counts) Keys() []string {
	keys := make([]string, len(c))
	for i, e := range c {
		keys[i] = e.Key
	}
	return keys
}

// Sum returns the total of all counts.
func (c Counts) Sum() int {
	total := 0
	for _, e := range c {
		total += e.Count
	}
	return total
}

// MarshalJSON encodes the tally as an ordered JSON object.
func (c Counts) MarshalJSON() ([]byte, error) {
	values := make([]any, len(c))
	for i, e := range c {
		values[i] = e.Count
	}
	return marshalOrdered(c.Keys(), values)
}

// UnmarshalJSON decodes a JSON object of integers, keeping key order.
func (c *Counts) UnmarshalJSON(data []byte) error {
	out := Counts{}
	err := unmarshalOrdered(data, func(key string, raw json.RawMessage) error {
		var n int
		if err := json.Unmarshal(raw, &n); err != nil {
			return fmt.Errorf("count %q: %w", key, err)
		}
		out = append(out, Count{Key: key, Count: n})
		return nil
	})
	if err != nil {
		return err
	}
	*c = out
	return nil
}

// CountBy tallies problems by the value returned from field.
// When keys is nil the distinct values are sorted lexicographically and used
// as keys; otherwise exactly the given keys are tallied in the given order,
// including keys with a zero count.
func CountBy(problems []Problem, field func(Problem) string, keys []string) Counts {
	tally := make(map[string]int)
	for _, p := range problems {
		tally[field(p)]++
	}

	if keys == nil {
		keys = make([]string, 0, len(tally))
		for k := range tally {
			keys = append(keys, k)
		}
		sort.Strings(keys)
	}

	out := make(Counts, len(keys))
	for i, k := range keys {
		out[i] = Count{Key: k, Count: tally[k]}
	}
	return out
}

// Field accessors used with CountBy.
var (
	TaskField          = func(p Problem) string { return p.Task.String() }
	AppField           = func(p Problem) string { return p.App }
	SystemLevelField   = func(p Problem) string { return p.SystemLevel }
	FaultCategoryField = func(p Problem) string { return p.FaultCategory }
	DeploymentField    = func(p Problem) string { return p.Deployment.String() }
)
