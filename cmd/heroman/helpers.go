package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/heroman/heroman/internal/config"
	"github.com/heroman/heroman/internal/domain"
	"github.com/heroman/heroman/internal/logging"
	"github.com/heroman/heroman/internal/service"
	"github.com/heroman/heroman/internal/storage"
)

var (
	errConfig  = errors.New("configuration error")
	errStorage = errors.New("database unavailable")
)

// appOptions controls how openApp prepares the tracker.
type appOptions struct {
	// Bind overrides the API address from config.
	Bind string
	// Console sends logs to stderr instead of the log file.
	Console bool
	// Rollover starts a new day for dailies before the command runs.
	Rollover bool
}

// app bundles the resolved config and the opened service for one command.
type app struct {
	cfg     *config.Config
	store   *storage.SQLiteStore
	svc     *service.HabitService
	log     zerolog.Logger
	closers []io.Closer
}

// loadConfig resolves the config from the global flags.
func loadConfig(bind string) (*config.Config, error) {
	cfg, err := config.Resolve(config.Options{
		ConfigPath: configPath,
		DBPath:     dbPath,
		Bind:       bind,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errConfig, err)
	}
	return cfg, nil
}

// openApp resolves config, sets up logging and opens the database.
func openApp(ctx context.Context, opts appOptions) (*app, error) {
	cfg, err := loadConfig(opts.Bind)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg}
	if opts.Console {
		a.log, err = logging.Console(os.Stderr, cfg.LogLevel)
	} else {
		var closer io.Closer
		a.log, closer, err = logging.OpenFile(cfg.LogFile, cfg.LogLevel)
		if closer != nil {
			a.closers = append(a.closers, closer)
		}
	}
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("%w: %w", errConfig, err)
	}

	a.store, err = storage.OpenSQLite(ctx, cfg.DBPath)
	if err != nil {
		a.log.Error().Err(err).Str("path", cfg.DBPath).Msg("failed to open database")
		a.Close()
		return nil, fmt.Errorf("%w: %w", errStorage, err)
	}
	a.closers = append(a.closers, a.store)
	a.svc = service.NewHabitService(a.store, a.log)

	if opts.Rollover {
		if _, err := a.svc.Rollover(ctx, nowFunc()); err != nil {
			a.Close()
			return nil, err
		}
	}
	return a, nil
}

// Close releases the database and the log file, newest first.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i].Close()
	}
	a.closers = nil
}

// nowFunc is the clock used by commands. Tests replace it.
var nowFunc = time.Now

// mapErrorToExitCode maps an error to the appropriate exit code
func mapErrorToExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, errConfig) {
		return ExitConfigError
	}
	if errors.Is(err, errStorage) {
		return ExitStorageUnavailable
	}

	// Check for domain errors
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		switch domainErr.Code {
		case domain.ErrCodeTaskNotFound:
			return ExitTaskNotFound
		case domain.ErrCodeValidationFailed:
			return ExitValidationFailed
		default:
			return ExitGeneralError
		}
	}

	return ExitGeneralError
}

// handleError handles an error by printing it and exiting with the appropriate code
func handleError(err error) {
	if err == nil {
		return
	}

	printError(os.Stderr, err, jsonOutput)
	os.Exit(mapErrorToExitCode(err))
}

// parseID parses a task ID argument.
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError([]string{fmt.Sprintf("invalid task id: %q", s)})
	}
	return id, nil
}

// parseDifficulty parses a difficulty flag into a validation error on failure.
func parseDifficulty(s string) (*domain.Difficulty, error) {
	d, err := domain.ParseDifficulty(s)
	if err != nil {
		return nil, domain.NewValidationError([]string{err.Error()})
	}
	return &d, nil
}

// parseTaskType parses a type flag into a validation error on failure.
func parseTaskType(s string) (*domain.TaskType, error) {
	t, err := domain.ParseTaskType(s)
	if err != nil {
		return nil, domain.NewValidationError([]string{err.Error()})
	}
	return &t, nil
}
