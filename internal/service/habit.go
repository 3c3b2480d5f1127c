// Package service holds the habit tracker's business logic. The TUI, the
// CLI and the HTTP API all go through HabitService.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/heroman/heroman/internal/domain"
	"github.com/heroman/heroman/internal/storage"
)

// GoldDivisor converts a task reward into gold: gold = reward / GoldDivisor.
const GoldDivisor = 10

// MissedDailyDamage is the health lost per difficulty step for a daily left
// undone at rollover.
const MissedDailyDamage = 2

// HabitService handles task and player business logic.
type HabitService struct {
	store storage.Store
	log   zerolog.Logger
}

// NewHabitService creates a new HabitService.
func NewHabitService(store storage.Store, log zerolog.Logger) *HabitService {
	return &HabitService{store: store, log: log}
}

// CreateTaskInput contains the input for creating a task.
type CreateTaskInput struct {
	Title       string
	Description string
	Difficulty  *domain.Difficulty
	Type        *domain.TaskType
}

// UpdateTaskInput contains the fields to change. Nil fields are kept.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Difficulty  *domain.Difficulty
	Type        *domain.TaskType
}

// ToggleResult reports the outcome of ToggleTask.
type ToggleResult struct {
	Task      *domain.Task        `json:"task"`
	Player    *domain.PlayerStats `json:"player"`
	Completed bool                `json:"completed"`
	// Reward is the experience granted, negative when a completion was undone.
	Reward int `json:"reward"`
	Gold   int `json:"gold"`
}

// RolloverResult reports what a day rollover changed.
type RolloverResult struct {
	Ran    bool                `json:"ran"`
	Reset  int                 `json:"reset"`
	Missed int                 `json:"missed"`
	Damage int                 `json:"damage"`
	Player *domain.PlayerStats `json:"player"`
}

// CreateTask validates and stores a new task.
func (s *HabitService) CreateTask(ctx context.Context, input CreateTaskInput) (*domain.Task, error) {
	difficulty := domain.DifficultyMedium
	if input.Difficulty != nil {
		difficulty = *input.Difficulty
	}
	taskType := domain.TypeHabit
	if input.Type != nil {
		taskType = *input.Type
	}

	// Over-long input is rejected here rather than truncated by NewTask.
	if details := domain.ValidateFields(input.Title, input.Description, difficulty, taskType); len(details) > 0 {
		return nil, domain.NewValidationError(details)
	}

	task := domain.NewTask(input.Title, input.Description, difficulty, taskType)
	if err := s.store.Tasks().Create(ctx, task); err != nil {
		return nil, s.internal("create task", err)
	}

	s.log.Debug().Int64("task_id", task.ID).Str("title", task.Title).Msg("task created")
	return task, nil
}

// GetTask retrieves a task by ID.
func (s *HabitService) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	task, err := s.store.Tasks().Get(ctx, id)
	if err != nil {
		return nil, s.taskError(id, err)
	}
	return task, nil
}

// ListTasks returns the tasks that pass filter, ordered by sort.
func (s *HabitService) ListTasks(ctx context.Context, filter domain.Filter, sort domain.Sort) ([]*domain.Task, error) {
	tasks, err := s.store.Tasks().List(ctx)
	if err != nil {
		return nil, s.internal("list tasks", err)
	}

	tasks = domain.FilterTasks(tasks, filter)
	domain.SortTasks(tasks, sort)
	return tasks, nil
}

// UpdateTask applies a partial update to a task.
func (s *HabitService) UpdateTask(ctx context.Context, id int64, input UpdateTaskInput) (*domain.Task, error) {
	task, err := s.store.Tasks().Get(ctx, id)
	if err != nil {
		return nil, s.taskError(id, err)
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Difficulty != nil {
		task.Difficulty = *input.Difficulty
	}
	if input.Type != nil {
		task.Type = *input.Type
	}

	if details := task.Validate(); len(details) > 0 {
		return nil, domain.NewValidationError(details)
	}

	task.UpdatedAt = time.Now().UTC()
	if err := s.store.Tasks().Update(ctx, task); err != nil {
		return nil, s.taskError(id, err)
	}

	s.log.Debug().Int64("task_id", id).Msg("task updated")
	return task, nil
}

// DeleteTask removes a task.
func (s *HabitService) DeleteTask(ctx context.Context, id int64) error {
	if err := s.store.Tasks().Delete(ctx, id); err != nil {
		return s.taskError(id, err)
	}

	s.log.Debug().Int64("task_id", id).Msg("task deleted")
	return nil
}

// ToggleTask completes an open task or undoes a completed one.
//
// Completing applies the streak rule, then grants the task's reward as
// experience, reward/GoldDivisor gold and difficulty+1 health. Undoing
// revokes the reward of the current streak and steps the streak back, so
// toggling twice leaves the player where they started.
func (s *HabitService) ToggleTask(ctx context.Context, id int64, now time.Time) (*ToggleResult, error) {
	var result ToggleResult

	err := s.store.WithTx(ctx, func(tx storage.TxStore) error {
		task, err := tx.Tasks().Get(ctx, id)
		if err != nil {
			return err
		}
		player, err := loadOrInitPlayer(ctx, tx.Player())
		if err != nil {
			return err
		}

		if task.Completed {
			reward := task.Reward()
			gold := reward / GoldDivisor
			task.Reset()
			if task.Streak > 0 {
				task.Streak--
			}
			player.AddExperience(-reward)
			player.AddGold(-gold)
			result.Reward = -reward
			result.Gold = -gold
		} else {
			task.Complete(now)
			reward := task.Reward()
			gold := reward / GoldDivisor
			player.AddExperience(reward)
			player.AddGold(gold)
			player.Heal(int(task.Difficulty) + 1)
			result.Reward = reward
			result.Gold = gold
		}
		task.UpdatedAt = now.UTC()

		if err := tx.Tasks().Update(ctx, task); err != nil {
			return err
		}
		if err := tx.Player().Save(ctx, player); err != nil {
			return err
		}

		result.Task = task
		result.Player = player
		result.Completed = task.Completed
		return nil
	})
	if err != nil {
		return nil, s.taskError(id, err)
	}

	s.log.Debug().
		Int64("task_id", id).
		Bool("completed", result.Completed).
		Int("reward", result.Reward).
		Int("streak", result.Task.Streak).
		Msg("task toggled")
	return &result, nil
}

// Player returns the player save, creating the default one on first use.
func (s *HabitService) Player(ctx context.Context) (*domain.PlayerStats, error) {
	player, err := loadOrInitPlayer(ctx, s.store.Player())
	if err != nil {
		return nil, s.internal("load player", err)
	}
	return player, nil
}

// Rollover starts a new day for dailies. It runs at most once per calendar
// day of now's location: dailies completed before today are reopened, and
// every daily left open since the previous rollover damages the player by
// (difficulty+1)*MissedDailyDamage. The very first call only records the day.
func (s *HabitService) Rollover(ctx context.Context, now time.Time) (*RolloverResult, error) {
	today := startOfDay(now)
	var result RolloverResult

	err := s.store.WithTx(ctx, func(tx storage.TxStore) error {
		player, err := loadOrInitPlayer(ctx, tx.Player())
		if err != nil {
			return err
		}
		result.Player = player

		if player.LastRollover != nil && !player.LastRollover.Before(today) {
			return nil
		}
		first := player.LastRollover == nil
		result.Ran = true

		if !first {
			tasks, err := tx.Tasks().List(ctx)
			if err != nil {
				return err
			}
			for _, task := range tasks {
				if task.Type != domain.TypeDaily || !task.CreatedAt.Before(today) {
					continue
				}
				switch {
				case task.Completed && task.LastCompleted != nil && task.LastCompleted.Before(today):
					task.Reset()
					task.UpdatedAt = now.UTC()
					if err := tx.Tasks().Update(ctx, task); err != nil {
						return err
					}
					result.Reset++
				case !task.Completed:
					damage := (int(task.Difficulty) + 1) * MissedDailyDamage
					player.Damage(damage)
					result.Missed++
					result.Damage += damage
				}
			}
		}

		rolled := today.UTC()
		player.LastRollover = &rolled
		return tx.Player().Save(ctx, player)
	})
	if err != nil {
		return nil, s.internal("rollover", err)
	}

	if result.Ran {
		s.log.Info().
			Int("reset", result.Reset).
			Int("missed", result.Missed).
			Int("damage", result.Damage).
			Msg("daily rollover")
	}
	return &result, nil
}

func loadOrInitPlayer(ctx context.Context, repo storage.PlayerRepository) (*domain.PlayerStats, error) {
	player, err := repo.Load(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		player = domain.NewPlayer()
		if err := repo.Save(ctx, player); err != nil {
			return nil, err
		}
		return player, nil
	}
	if err != nil {
		return nil, err
	}
	return player, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// taskError maps storage errors for a task operation to domain errors.
func (s *HabitService) taskError(id int64, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return domain.NewTaskNotFoundError(id)
	}
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return s.internal("task operation", err)
}

func (s *HabitService) internal(op string, err error) error {
	s.log.Error().Err(err).Str("op", op).Msg("storage failure")
	return domain.NewInternalError(err)
}
