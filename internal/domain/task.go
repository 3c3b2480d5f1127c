package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// TaskType is the kind of a task.
type TaskType int

const (
	TypeHabit TaskType = iota
	TypeDaily
	TypeTodo
)

// Difficulty is the 0-4 difficulty scale of a task.
type Difficulty int

const (
	DifficultyTrivial Difficulty = iota
	DifficultyEasy
	DifficultyMedium // Default difficulty
	DifficultyHard
	DifficultyVeryHard
)

// Field limits, in runes.
const (
	MaxTitleLength       = 255
	MaxDescriptionLength = 511
)

// StreakWindow is how long after a completion the next one still extends the streak.
const StreakWindow = 24 * time.Hour

var taskTypeNames = []string{"Habit", "Daily", "To-Do"}

var difficultyNames = []string{"Trivial", "Easy", "Medium", "Hard", "Very Hard"}

// ValidTaskTypes contains all valid task types.
var ValidTaskTypes = []TaskType{TypeHabit, TypeDaily, TypeTodo}

// ValidDifficulties contains all valid difficulties.
var ValidDifficulties = []Difficulty{
	DifficultyTrivial, DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyVeryHard,
}

// IsValid checks if the type is a known task type.
func (t TaskType) IsValid() bool {
	return t >= TypeHabit && t <= TypeTodo
}

// Next returns the following task type, wrapping around.
func (t TaskType) Next() TaskType {
	return (t + 1) % TaskType(len(taskTypeNames))
}

func (t TaskType) String() string {
	if !t.IsValid() {
		return fmt.Sprintf("TaskType(%d)", int(t))
	}
	return taskTypeNames[t]
}

// IsValid checks if the difficulty is within 0-4.
func (d Difficulty) IsValid() bool {
	return d >= DifficultyTrivial && d <= DifficultyVeryHard
}

// Next returns the following difficulty, wrapping around.
func (d Difficulty) Next() Difficulty {
	return (d + 1) % Difficulty(len(difficultyNames))
}

func (d Difficulty) String() string {
	if !d.IsValid() {
		return fmt.Sprintf("Difficulty(%d)", int(d))
	}
	return difficultyNames[d]
}

// ParseTaskType parses a task type from its number or name ("habit", "daily", "todo").
func ParseTaskType(s string) (TaskType, error) {
	if n, err := strconv.Atoi(s); err == nil {
		t := TaskType(n)
		if !t.IsValid() {
			return 0, fmt.Errorf("task type must be between 0-2, got %d", n)
		}
		return t, nil
	}

	name := normalizeName(s)
	for _, t := range ValidTaskTypes {
		if normalizeName(t.String()) == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("invalid task type: %s (use 0-2 or habit/daily/todo)", s)
}

// ParseDifficulty parses a difficulty from its number or name.
func ParseDifficulty(s string) (Difficulty, error) {
	if n, err := strconv.Atoi(s); err == nil {
		d := Difficulty(n)
		if !d.IsValid() {
			return 0, fmt.Errorf("difficulty must be between 0-4, got %d", n)
		}
		return d, nil
	}

	name := normalizeName(s)
	for _, d := range ValidDifficulties {
		if normalizeName(d.String()) == name {
			return d, nil
		}
	}
	return 0, fmt.Errorf("invalid difficulty: %s (use 0-4 or trivial/easy/medium/hard/very-hard)", s)
}

// normalizeName lowercases s and drops separators so "Very Hard", "very-hard"
// and "VERY_HARD" compare equal.
func normalizeName(s string) string {
	r := strings.NewReplacer(" ", "", "-", "", "_", "")
	return r.Replace(strings.ToLower(strings.TrimSpace(s)))
}

// Task is a habit, daily or to-do tracked by the player.
type Task struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Difficulty    Difficulty `json:"difficulty"`
	Type          TaskType   `json:"type"`
	Completed     bool       `json:"completed"`
	Streak        int        `json:"streak"`
	LastCompleted *time.Time `json:"last_completed,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// NewTask creates an uncompleted task with no streak.
// Title and description are truncated to their limits.
func NewTask(title, description string, difficulty Difficulty, taskType TaskType) *Task {
	now := time.Now().UTC()
	return &Task{
		Title:       Truncate(title, MaxTitleLength),
		Description: Truncate(description, MaxDescriptionLength),
		Difficulty:  difficulty,
		Type:        taskType,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Validate returns the list of problems with the task, or nil.
func (t *Task) Validate() []string {
	return ValidateFields(t.Title, t.Description, t.Difficulty, t.Type)
}

// ValidateFields checks task fields before a Task is built from them.
// Titles and descriptions are drawn on a single line, so non-printable
// runes such as newlines and tabs are rejected.
func ValidateFields(title, description string, difficulty Difficulty, taskType TaskType) []string {
	var details []string

	if strings.TrimSpace(title) == "" {
		details = append(details, "title is required")
	}
	if RuneCount(title) > MaxTitleLength {
		details = append(details, fmt.Sprintf("title must be at most %d characters", MaxTitleLength))
	}
	if !Printable(title) {
		details = append(details, "title must not contain control characters")
	}
	if RuneCount(description) > MaxDescriptionLength {
		details = append(details, fmt.Sprintf("description must be at most %d characters", MaxDescriptionLength))
	}
	if !Printable(description) {
		details = append(details, "description must not contain control characters")
	}
	if !difficulty.IsValid() {
		details = append(details, "difficulty must be between 0 and 4")
	}
	if !taskType.IsValid() {
		details = append(details, "type must be between 0 and 2")
	}

	return details
}

// Complete marks the task done at now. A completion within StreakWindow of
// the previous one extends the streak; otherwise the streak restarts at 1.
func (t *Task) Complete(now time.Time) {
	if t.LastCompleted != nil && now.Sub(*t.LastCompleted) <= StreakWindow {
		t.Streak++
	} else {
		t.Streak = 1
	}

	t.Completed = true
	completedAt := now
	t.LastCompleted = &completedAt
	t.UpdatedAt = now
}

// Reset clears the completed flag. The streak is kept.
func (t *Task) Reset() {
	t.Completed = false
}

// Reward is the experience granted for completing the task at its current
// streak: difficulty*10, plus 10% of that per streak step. Trivial tasks
// earn nothing.
func (t *Task) Reward() int {
	base := int(t.Difficulty) * 10
	bonus := base * t.Streak / 10
	return base + bonus
}

// RuneCount returns the number of runes in s.
func RuneCount(s string) int {
	return len([]rune(s))
}

// Printable reports whether every rune of s is printable. Spaces count
// as printable; newlines, tabs and other control runes do not.
func Printable(s string) bool {
	for _, r := range s {
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}

// Truncate shortens s to at most max runes.
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
