package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/heroman/heroman/internal/domain"
	"github.com/heroman/heroman/internal/service"
)

const timeLayout = "2006-01-02 15:04:05"

func writeJSON(w io.Writer, v interface{}) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}

// printTask prints a single task to the writer
func printTask(w io.Writer, task *domain.Task, jsonOutput bool) {
	if jsonOutput {
		writeJSON(w, task)
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%d\n", task.ID)
	fmt.Fprintf(tw, "Title:\t%s\n", task.Title)
	if task.Description != "" {
		fmt.Fprintf(tw, "Description:\t%s\n", task.Description)
	}
	fmt.Fprintf(tw, "Type:\t%s\n", task.Type)
	fmt.Fprintf(tw, "Difficulty:\t%s\n", task.Difficulty)
	fmt.Fprintf(tw, "Completed:\t%s\n", yesNo(task.Completed))
	fmt.Fprintf(tw, "Streak:\t%d\n", task.Streak)
	if task.LastCompleted != nil {
		fmt.Fprintf(tw, "Last Completed:\t%s\n", task.LastCompleted.Local().Format(timeLayout))
	}
	fmt.Fprintf(tw, "Created:\t%s\n", task.CreatedAt.Local().Format(timeLayout))
	fmt.Fprintf(tw, "Updated:\t%s\n", task.UpdatedAt.Local().Format(timeLayout))
	tw.Flush()
}

// printTaskList prints tasks as a table
func printTaskList(w io.Writer, tasks []*domain.Task, jsonOutput bool) {
	if jsonOutput {
		if tasks == nil {
			tasks = []*domain.Task{}
		}
		writeJSON(w, tasks)
		return
	}

	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks found")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tDONE\tTITLE\tTYPE\tDIFFICULTY\tSTREAK\n")
	fmt.Fprintf(tw, "--\t----\t-----\t----\t----------\t------\n")
	for _, task := range tasks {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%d\n",
			task.ID, checkbox(task.Completed), truncate(task.Title, 40), task.Type, task.Difficulty, task.Streak)
	}
	tw.Flush()
}

// printPlayer prints the player stats
func printPlayer(w io.Writer, p *domain.PlayerStats, jsonOutput bool) {
	if jsonOutput {
		writeJSON(w, p)
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Health:\t%d/%d\n", p.Health, domain.MaxHealth)
	fmt.Fprintf(tw, "Experience:\t%d\n", p.Experience)
	fmt.Fprintf(tw, "Level:\t%d\n", p.Level)
	fmt.Fprintf(tw, "Gold:\t%d\n", p.Gold)
	fmt.Fprintf(tw, "Strength:\t%d\n", p.Strength)
	fmt.Fprintf(tw, "Intelligence:\t%d\n", p.Intelligence)
	fmt.Fprintf(tw, "Constitution:\t%d\n", p.Constitution)
	fmt.Fprintf(tw, "Perception:\t%d\n", p.Perception)
	tw.Flush()
}

// printToggle prints the outcome of completing or reopening a task
func printToggle(w io.Writer, result *service.ToggleResult, jsonOutput bool) {
	if jsonOutput {
		writeJSON(w, result)
		return
	}

	if result.Completed {
		fmt.Fprintf(w, "Task %d completed! +%d XP, +%d gold (streak %d)\n",
			result.Task.ID, result.Reward, result.Gold, result.Task.Streak)
		return
	}
	fmt.Fprintf(w, "Task %d uncompleted. %d XP, %d gold\n", result.Task.ID, result.Reward, result.Gold)
}

// printError prints an error message. Validation details are listed
// after the message.
func printError(w io.Writer, err error, jsonOutput bool) {
	var details []string
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		details, _ = domainErr.Context["details"].([]string)
	}

	if jsonOutput {
		body := map[string]interface{}{"message": err.Error()}
		if domainErr != nil {
			body["code"] = string(domainErr.Code)
		}
		if len(details) > 0 {
			body["details"] = details
		}
		writeJSON(w, map[string]interface{}{"error": body})
		return
	}

	if len(details) > 0 {
		fmt.Fprintf(w, "Error: %s: %s\n", err.Error(), strings.Join(details, "; "))
		return
	}
	fmt.Fprintf(w, "Error: %s\n", err.Error())
}

// printSuccess prints a success message
func printSuccess(w io.Writer, message string, jsonOutput bool) {
	if jsonOutput {
		writeJSON(w, map[string]interface{}{"message": message})
		return
	}

	fmt.Fprintln(w, message)
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// truncate shortens s to maxLen runes, marking the cut with "..."
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
