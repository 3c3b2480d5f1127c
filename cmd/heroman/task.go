package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/heroman/heroman/internal/domain"
	"github.com/heroman/heroman/internal/service"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
	Long:  `Create, list, edit, complete and delete habits, dailies and to-dos.`,
}

var taskAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Create a new task",
	Long: `Create a new task with the given title.

Type can be a number (0-2) or name: habit (default), daily, todo.
Difficulty can be a number (0-4) or name:
  0 / trivial
  1 / easy
  2 / medium     (default)
  3 / hard
  4 / very-hard`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		description, _ := cmd.Flags().GetString("description")
		typeStr, _ := cmd.Flags().GetString("type")
		difficultyStr, _ := cmd.Flags().GetString("difficulty")

		input := service.CreateTaskInput{Title: args[0], Description: description}
		if typeStr != "" {
			t, err := parseTaskType(typeStr)
			if err != nil {
				handleError(err)
			}
			input.Type = t
		}
		if difficultyStr != "" {
			d, err := parseDifficulty(difficultyStr)
			if err != nil {
				handleError(err)
			}
			input.Difficulty = d
		}

		withApp(cmd.Context(), func(a *app) error {
			return runTaskAdd(cmd.Context(), os.Stdout, a.svc, input)
		})
	},
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long: `List tasks with optional filtering and sorting.

Filters: all, completed, uncompleted.
Sorts: none, type, difficulty, completion.
Without flags the [ui] filter and sort from the config file apply.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		filterStr, _ := cmd.Flags().GetString("filter")
		sortStr, _ := cmd.Flags().GetString("sort")

		withApp(cmd.Context(), func(a *app) error {
			filter, sort := a.cfg.Filter, a.cfg.Sort
			if cmd.Flags().Changed("filter") {
				f, err := domain.ParseFilter(filterStr)
				if err != nil {
					return domain.NewValidationError([]string{err.Error()})
				}
				filter = f
			}
			if cmd.Flags().Changed("sort") {
				s, err := domain.ParseSort(sortStr)
				if err != nil {
					return domain.NewValidationError([]string{err.Error()})
				}
				sort = s
			}
			return runTaskList(cmd.Context(), os.Stdout, a.svc, filter, sort)
		})
	},
}

var taskShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show task details",
	Long:  `Display detailed information about a task.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := parseID(args[0])
		if err != nil {
			handleError(err)
		}

		withApp(cmd.Context(), func(a *app) error {
			return runTaskShow(cmd.Context(), os.Stdout, a.svc, id)
		})
	},
}

var taskEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a task",
	Long:  `Edit a task's title, description, type or difficulty. Only the given flags change.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := parseID(args[0])
		if err != nil {
			handleError(err)
		}

		input, err := editInput(cmd)
		if err != nil {
			handleError(err)
		}

		withApp(cmd.Context(), func(a *app) error {
			return runTaskEdit(cmd.Context(), os.Stdout, a.svc, id, input)
		})
	},
}

var taskDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Complete or reopen a task",
	Long: `Toggle a task's completion.

Completing grants experience and gold and extends the streak when the
previous completion was less than a day ago. Running it again on a
completed task takes the reward back.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := parseID(args[0])
		if err != nil {
			handleError(err)
		}

		withApp(cmd.Context(), func(a *app) error {
			return runTaskDone(cmd.Context(), os.Stdout, a.svc, id)
		})
	},
}

var taskRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := parseID(args[0])
		if err != nil {
			handleError(err)
		}

		withApp(cmd.Context(), func(a *app) error {
			return runTaskRm(cmd.Context(), os.Stdout, a.svc, id)
		})
	},
}

func init() {
	rootCmd.AddCommand(taskCmd)

	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskShowCmd)
	taskCmd.AddCommand(taskEditCmd)
	taskCmd.AddCommand(taskDoneCmd)
	taskCmd.AddCommand(taskRmCmd)

	taskAddCmd.Flags().StringP("description", "d", "", "Task description")
	taskAddCmd.Flags().StringP("type", "t", "", "Task type (habit, daily, todo)")
	taskAddCmd.Flags().StringP("difficulty", "x", "", "Difficulty (0-4 or trivial/easy/medium/hard/very-hard)")

	taskListCmd.Flags().String("filter", "", "Filter (all, completed, uncompleted)")
	taskListCmd.Flags().String("sort", "", "Sort (none, type, difficulty, completion)")

	taskEditCmd.Flags().String("title", "", "New title")
	taskEditCmd.Flags().StringP("description", "d", "", "New description")
	taskEditCmd.Flags().StringP("type", "t", "", "New type")
	taskEditCmd.Flags().StringP("difficulty", "x", "", "New difficulty")
}

// withApp opens the tracker with a day rollover, runs fn and exits on error.
func withApp(ctx context.Context, fn func(a *app) error) {
	a, err := openApp(ctx, appOptions{Rollover: true})
	if err != nil {
		handleError(err)
	}
	err = fn(a)
	a.Close()
	handleError(err)
}

// editInput collects the changed edit flags.
func editInput(cmd *cobra.Command) (service.UpdateTaskInput, error) {
	var input service.UpdateTaskInput
	flags := cmd.Flags()

	if flags.Changed("title") {
		title, _ := flags.GetString("title")
		input.Title = &title
	}
	if flags.Changed("description") {
		description, _ := flags.GetString("description")
		input.Description = &description
	}
	if flags.Changed("type") {
		s, _ := flags.GetString("type")
		t, err := parseTaskType(s)
		if err != nil {
			return input, err
		}
		input.Type = t
	}
	if flags.Changed("difficulty") {
		s, _ := flags.GetString("difficulty")
		d, err := parseDifficulty(s)
		if err != nil {
			return input, err
		}
		input.Difficulty = d
	}

	if input == (service.UpdateTaskInput{}) {
		return input, domain.NewValidationError([]string{"nothing to change: use --title, --description, --type or --difficulty"})
	}
	return input, nil
}

func runTaskAdd(ctx context.Context, w io.Writer, svc *service.HabitService, input service.CreateTaskInput) error {
	task, err := svc.CreateTask(ctx, input)
	if err != nil {
		return err
	}
	printTask(w, task, jsonOutput)
	return nil
}

func runTaskList(ctx context.Context, w io.Writer, svc *service.HabitService, filter domain.Filter, sort domain.Sort) error {
	tasks, err := svc.ListTasks(ctx, filter, sort)
	if err != nil {
		return err
	}
	printTaskList(w, tasks, jsonOutput)
	return nil
}

func runTaskShow(ctx context.Context, w io.Writer, svc *service.HabitService, id int64) error {
	task, err := svc.GetTask(ctx, id)
	if err != nil {
		return err
	}
	printTask(w, task, jsonOutput)
	return nil
}

func runTaskEdit(ctx context.Context, w io.Writer, svc *service.HabitService, id int64, input service.UpdateTaskInput) error {
	task, err := svc.UpdateTask(ctx, id, input)
	if err != nil {
		return err
	}
	printTask(w, task, jsonOutput)
	return nil
}

func runTaskDone(ctx context.Context, w io.Writer, svc *service.HabitService, id int64) error {
	result, err := svc.ToggleTask(ctx, id, nowFunc())
	if err != nil {
		return err
	}
	printToggle(w, result, jsonOutput)
	return nil
}

func runTaskRm(ctx context.Context, w io.Writer, svc *service.HabitService, id int64) error {
	if err := svc.DeleteTask(ctx, id); err != nil {
		return err
	}
	printSuccess(w, fmt.Sprintf("Task %d deleted", id), jsonOutput)
	return nil
}
