package domain

import (
	"fmt"
	"slices"
	"strconv"
)

// Filter selects which tasks are shown.
type Filter int

const (
	FilterAll Filter = iota
	FilterCompleted
	FilterUncompleted
)

// Sort orders the task list.
type Sort int

const (
	SortNone Sort = iota // by ID
	SortType
	SortDifficulty
	SortCompletion // uncompleted first
)

var filterNames = []string{"all", "completed", "uncompleted"}

var sortNames = []string{"none", "type", "difficulty", "completion"}

func (f Filter) String() string {
	if f < 0 || int(f) >= len(filterNames) {
		return fmt.Sprintf("Filter(%d)", int(f))
	}
	return filterNames[f]
}

// Next returns the following filter, wrapping around.
func (f Filter) Next() Filter {
	return (f + 1) % Filter(len(filterNames))
}

// Matches reports whether the task passes the filter.
func (f Filter) Matches(t *Task) bool {
	switch f {
	case FilterCompleted:
		return t.Completed
	case FilterUncompleted:
		return !t.Completed
	default:
		return true
	}
}

func (s Sort) String() string {
	if s < 0 || int(s) >= len(sortNames) {
		return fmt.Sprintf("Sort(%d)", int(s))
	}
	return sortNames[s]
}

// Next returns the following sort, wrapping around.
func (s Sort) Next() Sort {
	return (s + 1) % Sort(len(sortNames))
}

// ParseFilter parses a filter from its number or name. Empty means all.
func ParseFilter(s string) (Filter, error) {
	if s == "" {
		return FilterAll, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n >= len(filterNames) {
			return 0, fmt.Errorf("filter must be between 0-%d, got %d", len(filterNames)-1, n)
		}
		return Filter(n), nil
	}
	name := normalizeName(s)
	for i, fn := range filterNames {
		if fn == name {
			return Filter(i), nil
		}
	}
	return 0, fmt.Errorf("invalid filter: %s (use all/completed/uncompleted)", s)
}

// ParseSort parses a sort from its number or name. Empty means none.
func ParseSort(s string) (Sort, error) {
	if s == "" {
		return SortNone, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n >= len(sortNames) {
			return 0, fmt.Errorf("sort must be between 0-%d, got %d", len(sortNames)-1, n)
		}
		return Sort(n), nil
	}
	name := normalizeName(s)
	for i, sn := range sortNames {
		if sn == name {
			return Sort(i), nil
		}
	}
	return 0, fmt.Errorf("invalid sort: %s (use none/type/difficulty/completion)", s)
}

// FilterTasks returns the tasks that pass f, preserving order.
func FilterTasks(tasks []*Task, f Filter) []*Task {
	out := make([]*Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// SortTasks orders tasks in place. The sort is stable: tasks with equal keys
// keep their relative order.
func SortTasks(tasks []*Task, s Sort) {
	slices.SortStableFunc(tasks, func(a, b *Task) int {
		switch s {
		case SortType:
			return int(a.Type) - int(b.Type)
		case SortDifficulty:
			return int(a.Difficulty) - int(b.Difficulty)
		case SortCompletion:
			return boolRank(a.Completed) - boolRank(b.Completed)
		default:
			return compareID(a.ID, b.ID)
		}
	})
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

func compareID(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
