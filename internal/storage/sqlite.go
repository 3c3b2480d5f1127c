package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/heroman/heroman/internal/domain"
)

// MemoryDSN opens a private in-memory database.
const MemoryDSN = ":memory:"

// SQLiteStore implements the Store interface using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	closed bool
	tasks  *sqliteTaskRepository
	player *sqlitePlayerRepository
}

// OpenSQLite opens (creating if needed) the database at path and brings its
// schema up to date. Use MemoryDSN for a throwaway database.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if path != MemoryDSN {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	connStr := path
	if strings.Contains(path, "?") {
		connStr += "&"
	} else {
		connStr += "?"
	}
	connStr += "_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on&_synchronous=NORMAL"

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection: SQLite has a single writer, and every extra
	// connection to :memory: would see its own empty database.
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		tasks:  &sqliteTaskRepository{exec: db},
		player: &sqlitePlayerRepository{exec: db},
	}, nil
}

// Tasks returns the task repository.
func (s *SQLiteStore) Tasks() TaskRepository {
	return s.tasks
}

// Player returns the player repository.
func (s *SQLiteStore) Player() PlayerRepository {
	return s.player
}

// WithTx executes a function within a transaction.
func (s *SQLiteStore) WithTx(ctx context.Context, fn func(TxStore) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	txStore := &sqliteTxStore{
		tasks:  &sqliteTaskRepository{exec: tx},
		player: &sqlitePlayerRepository{exec: tx},
	}

	if err := fn(txStore); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

type sqliteTxStore struct {
	tasks  *sqliteTaskRepository
	player *sqlitePlayerRepository
}

func (s *sqliteTxStore) Tasks() TaskRepository {
	return s.tasks
}

func (s *sqliteTxStore) Player() PlayerRepository {
	return s.player
}

// dbExecutor is satisfied by both *sql.DB and *sql.Tx.
type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// ============================================================================
// Task Repository Implementation
// ============================================================================

const taskColumns = `id, title, description, difficulty, type, completed, streak, last_completed, created_at, updated_at`

type sqliteTaskRepository struct {
	exec dbExecutor
}

func (r *sqliteTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	query := `
		INSERT INTO tasks (title, description, difficulty, type, completed, streak, last_completed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.exec.ExecContext(ctx, query,
		task.Title,
		task.Description,
		int(task.Difficulty),
		int(task.Type),
		task.Completed,
		task.Streak,
		formatTimePtr(task.LastCompleted),
		formatTime(task.CreatedAt),
		formatTime(task.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read new task id: %w", err)
	}
	task.ID = id
	return nil
}

func (r *sqliteTaskRepository) Get(ctx context.Context, id int64) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`

	task, err := scanTask(r.exec.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

func (r *sqliteTaskRepository) List(ctx context.Context) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY id ASC`

	rows, err := r.exec.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []*domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}
	return tasks, nil
}

func (r *sqliteTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	query := `
		UPDATE tasks
		SET title = ?, description = ?, difficulty = ?, type = ?, completed = ?,
		    streak = ?, last_completed = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.exec.ExecContext(ctx, query,
		task.Title,
		task.Description,
		int(task.Difficulty),
		int(task.Type),
		task.Completed,
		task.Streak,
		formatTimePtr(task.LastCompleted),
		formatTime(task.UpdatedAt),
		task.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	return requireAffected(result)
}

func (r *sqliteTaskRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.exec.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return requireAffected(result)
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var task domain.Task
	var difficulty, taskType int
	var lastCompleted sql.NullString
	var createdAt, updatedAt string

	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&difficulty,
		&taskType,
		&task.Completed,
		&task.Streak,
		&lastCompleted,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	task.Difficulty = domain.Difficulty(difficulty)
	task.Type = domain.TaskType(taskType)
	task.LastCompleted = parseTimePtr(lastCompleted)
	task.CreatedAt = parseTime(createdAt)
	task.UpdatedAt = parseTime(updatedAt)

	return &task, nil
}

// ============================================================================
// Player Repository Implementation
// ============================================================================

type sqlitePlayerRepository struct {
	exec dbExecutor
}

func (r *sqlitePlayerRepository) Load(ctx context.Context) (*domain.PlayerStats, error) {
	query := `
		SELECT health, experience, level, gold, strength, intelligence, constitution, perception, last_rollover
		FROM player WHERE id = 1
	`

	var p domain.PlayerStats
	var lastRollover sql.NullString
	err := r.exec.QueryRowContext(ctx, query).Scan(
		&p.Health,
		&p.Experience,
		&p.Level,
		&p.Gold,
		&p.Strength,
		&p.Intelligence,
		&p.Constitution,
		&p.Perception,
		&lastRollover,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load player: %w", err)
	}

	p.LastRollover = parseTimePtr(lastRollover)
	return &p, nil
}

func (r *sqlitePlayerRepository) Save(ctx context.Context, p *domain.PlayerStats) error {
	query := `
		INSERT INTO player (id, health, experience, level, gold, strength, intelligence, constitution, perception, last_rollover)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
		    health = excluded.health,
		    experience = excluded.experience,
		    level = excluded.level,
		    gold = excluded.gold,
		    strength = excluded.strength,
		    intelligence = excluded.intelligence,
		    constitution = excluded.constitution,
		    perception = excluded.perception,
		    last_rollover = excluded.last_rollover
	`

	_, err := r.exec.ExecContext(ctx, query,
		p.Health,
		p.Experience,
		p.Level,
		p.Gold,
		p.Strength,
		p.Intelligence,
		p.Constitution,
		p.Perception,
		formatTimePtr(p.LastRollover),
	)
	if err != nil {
		return fmt.Errorf("failed to save player: %w", err)
	}
	return nil
}

// ============================================================================
// Helpers
// ============================================================================

func requireAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func parseTimePtr(s sql.NullString) *time.Time {
	if !s.Valid {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, s.String)
	if err != nil {
		return nil
	}
	return &t
}
