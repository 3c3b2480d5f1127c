package domain

import "testing"

func ids(tasks []*Task) []int64 {
	out := make([]int64, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sampleTasks() []*Task {
	return []*Task{
		{ID: 1, Title: "a", Type: TypeTodo, Difficulty: DifficultyHard, Completed: true},
		{ID: 2, Title: "b", Type: TypeHabit, Difficulty: DifficultyEasy},
		{ID: 3, Title: "c", Type: TypeDaily, Difficulty: DifficultyHard, Completed: true},
		{ID: 4, Title: "d", Type: TypeHabit, Difficulty: DifficultyTrivial},
		{ID: 5, Title: "e", Type: TypeDaily, Difficulty: DifficultyEasy},
	}
}

func TestFilterTasks(t *testing.T) {
	tests := []struct {
		filter Filter
		want   []int64
	}{
		{FilterAll, []int64{1, 2, 3, 4, 5}},
		{FilterCompleted, []int64{1, 3}},
		{FilterUncompleted, []int64{2, 4, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.filter.String(), func(t *testing.T) {
			got := ids(FilterTasks(sampleTasks(), tt.filter))
			if !equalIDs(got, tt.want) {
				t.Errorf("FilterTasks(%v) = %v, want %v", tt.filter, got, tt.want)
			}
		})
	}
}

func TestFilterTasks_EmptyInput(t *testing.T) {
	got := FilterTasks(nil, FilterCompleted)
	if got == nil || len(got) != 0 {
		t.Errorf("FilterTasks(nil) = %v, want empty non-nil slice", got)
	}
}

func TestSortTasks_IsStable(t *testing.T) {
	tests := []struct {
		sort Sort
		want []int64
	}{
		{SortType, []int64{2, 4, 3, 5, 1}},
		{SortDifficulty, []int64{4, 2, 5, 1, 3}},
		{SortCompletion, []int64{2, 4, 5, 1, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.sort.String(), func(t *testing.T) {
			tasks := sampleTasks()
			SortTasks(tasks, tt.sort)
			if got := ids(tasks); !equalIDs(got, tt.want) {
				t.Errorf("SortTasks(%v) = %v, want %v", tt.sort, got, tt.want)
			}
		})
	}
}

func TestSortTasks_NoneOrdersByID(t *testing.T) {
	tasks := sampleTasks()
	tasks[0], tasks[4] = tasks[4], tasks[0]
	SortTasks(tasks, SortNone)
	if got := ids(tasks); !equalIDs(got, []int64{1, 2, 3, 4, 5}) {
		t.Errorf("SortTasks(none) = %v, want ascending IDs", got)
	}
}

func TestSortTasks_SingleAndEmpty(t *testing.T) {
	SortTasks(nil, SortType)

	one := []*Task{{ID: 9}}
	SortTasks(one, SortDifficulty)
	if one[0].ID != 9 {
		t.Errorf("single element changed: %v", ids(one))
	}
}

func TestParseFilterAndSort(t *testing.T) {
	if f, err := ParseFilter(""); err != nil || f != FilterAll {
		t.Errorf("ParseFilter(\"\") = %v, %v", f, err)
	}
	if f, err := ParseFilter("Uncompleted"); err != nil || f != FilterUncompleted {
		t.Errorf("ParseFilter(Uncompleted) = %v, %v", f, err)
	}
	if _, err := ParseFilter("3"); err == nil {
		t.Error("ParseFilter(3) should fail")
	}
	if s, err := ParseSort("difficulty"); err != nil || s != SortDifficulty {
		t.Errorf("ParseSort(difficulty) = %v, %v", s, err)
	}
	if s, err := ParseSort("3"); err != nil || s != SortCompletion {
		t.Errorf("ParseSort(3) = %v, %v", s, err)
	}
	if _, err := ParseSort("alphabetical"); err == nil {
		t.Error("ParseSort(alphabetical) should fail")
	}
}

func TestFilterSort_NextWraps(t *testing.T) {
	if FilterUncompleted.Next() != FilterAll {
		t.Error("FilterUncompleted.Next() should wrap to FilterAll")
	}
	if SortCompletion.Next() != SortNone {
		t.Error("SortCompletion.Next() should wrap to SortNone")
	}
}
