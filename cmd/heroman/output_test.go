package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/heroman/heroman/internal/domain"
	"github.com/heroman/heroman/internal/service"
)

func sampleTask() *domain.Task {
	return &domain.Task{
		ID:         7,
		Title:      "Drink water",
		Difficulty: domain.DifficultyHard,
		Type:       domain.TypeDaily,
		Streak:     2,
		CreatedAt:  time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		UpdatedAt:  time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
	}
}

func TestPrintTask_TableFormat(t *testing.T) {
	var buf bytes.Buffer

	printTask(&buf, sampleTask(), false)

	output := buf.String()
	for _, want := range []string{"7", "Drink water", "Daily", "Hard", "Streak:", "no"} {
		if !strings.Contains(output, want) {
			t.Errorf("Output should contain %q, got:\n%s", want, output)
		}
	}
	if strings.Contains(output, "Description:") {
		t.Error("Output should omit an empty description")
	}
}

func TestPrintTask_JSONFormat(t *testing.T) {
	var buf bytes.Buffer

	printTask(&buf, sampleTask(), true)

	var parsed domain.Task
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("Output should be valid JSON: %v", err)
	}
	if parsed.ID != 7 || parsed.Difficulty != domain.DifficultyHard {
		t.Errorf("unexpected parsed task: %+v", parsed)
	}
}

func TestPrintTaskList_Empty(t *testing.T) {
	var buf bytes.Buffer
	printTaskList(&buf, nil, false)
	if !strings.Contains(buf.String(), "No tasks found") {
		t.Errorf("expected empty message, got %q", buf.String())
	}

	buf.Reset()
	printTaskList(&buf, nil, true)
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("expected empty JSON array, got %q", buf.String())
	}
}

func TestPrintTaskList_Table(t *testing.T) {
	var buf bytes.Buffer
	done := sampleTask()
	done.ID = 8
	done.Completed = true

	printTaskList(&buf, []*domain.Task{sampleTask(), done}, false)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header, rule and 2 rows, got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "ID") {
		t.Errorf("unexpected header %q", lines[0])
	}
	if !strings.Contains(lines[2], "[ ]") || !strings.Contains(lines[3], "[x]") {
		t.Errorf("unexpected checkboxes:\n%s", buf.String())
	}
}

func TestPrintToggle(t *testing.T) {
	task := sampleTask()
	var buf bytes.Buffer

	printToggle(&buf, &service.ToggleResult{Task: task, Completed: true, Reward: 44, Gold: 4}, false)
	if got := buf.String(); !strings.Contains(got, "+44 XP") || !strings.Contains(got, "+4 gold") {
		t.Errorf("unexpected completion output %q", got)
	}

	buf.Reset()
	printToggle(&buf, &service.ToggleResult{Task: task, Reward: -44, Gold: -4}, false)
	if got := buf.String(); !strings.Contains(got, "uncompleted") || !strings.Contains(got, "-44 XP") {
		t.Errorf("unexpected undo output %q", got)
	}
}

func TestPrintPlayer(t *testing.T) {
	var buf bytes.Buffer

	printPlayer(&buf, domain.NewPlayer(), false)

	if !strings.Contains(buf.String(), "50/50") {
		t.Errorf("expected health 50/50, got:\n%s", buf.String())
	}
}

func TestPrintError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		jsonOutput bool
		want       []string
	}{
		{"plain", errors.New("boom"), false, []string{"Error: boom"}},
		{"validation details", domain.NewValidationError([]string{"title is required"}), false,
			[]string{"Validation failed", "title is required"}},
		{"json code", domain.NewTaskNotFoundError(4), true, []string{`"code": "TASK_NOT_FOUND"`, "Task 4 not found"}},
		{"json details", domain.NewValidationError([]string{"bad type"}), true, []string{`"details"`, "bad type"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			printError(&buf, tt.err, tt.jsonOutput)
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output %q should contain %q", buf.String(), want)
				}
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input  string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly-10", 10, "exactly-10"},
		{"this is far too long", 10, "this is..."},
		{"héllo wörld", 8, "héllo..."},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := truncate(tt.input, tt.maxLen); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, expected %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}
