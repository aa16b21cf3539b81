// Package dashboard derives the filtered task view and owns the transient
// UI state: the single edit slot and the pending new-task form.
package dashboard

import (
	"fmt"

	"tada/internal/service"
)

// Filter selects which tasks are visible. Pure view state, never persisted.
type Filter int

const (
	FilterAll Filter = iota
	FilterActive
	FilterCompleted
)

func (f Filter) String() string {
	switch f {
	case FilterActive:
		return "active"
	case FilterCompleted:
		return "completed"
	default:
		return "all"
	}
}

// ParseFilter parses a filter name as given on the command line.
func ParseFilter(s string) (Filter, error) {
	switch s {
	case "", "all":
		return FilterAll, nil
	case "active":
		return FilterActive, nil
	case "completed", "done":
		return FilterCompleted, nil
	}
	return FilterAll, fmt.Errorf("unknown filter: %s", s)
}

// Apply returns the tasks matching the filter, preserving order. It is a
// pure function of its inputs and is recomputed on every observation.
func Apply(f Filter, tasks []service.Task) []service.Task {
	if f == FilterAll {
		return tasks
	}
	want := f == FilterCompleted
	var out []service.Task
	for _, t := range tasks {
		if t.Completed == want {
			out = append(out, t)
		}
	}
	return out
}
