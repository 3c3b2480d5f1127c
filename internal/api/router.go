package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/heroman/heroman/internal/api/handler"
	"github.com/heroman/heroman/internal/api/middleware"
	"github.com/heroman/heroman/internal/service"
)

// Options tunes the router. A nil Now uses time.Now.
type Options struct {
	Now func() time.Time
}

// NewRouter creates and configures the HTTP router.
func NewRouter(svc *service.HabitService, log zerolog.Logger, opts Options) *chi.Mux {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	r := chi.NewRouter()

	// Global middleware chain
	r.Use(middleware.Recovery(log))
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Logging(log))
	r.Use(chimiddleware.RealIP)

	systemHandler := handler.NewSystemHandler()
	taskHandler := handler.NewTaskHandler(svc, now)
	playerHandler := handler.NewPlayerHandler(svc, now)

	r.Get("/v1/health", systemHandler.Health)

	r.Route("/v1/tasks", func(r chi.Router) {
		r.Get("/", taskHandler.ListTasks)
		r.Post("/", taskHandler.CreateTask)
		r.Get("/{id}", taskHandler.GetTask)
		r.Patch("/{id}", taskHandler.UpdateTask)
		r.Delete("/{id}", taskHandler.DeleteTask)
		r.Post("/{id}/toggle", taskHandler.ToggleTask)
	})

	r.Get("/v1/player", playerHandler.GetPlayer)
	r.Post("/v1/rollover", playerHandler.Rollover)

	return r
}
