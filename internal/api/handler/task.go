package handler

import (
	"net/http"
	"time"

	"github.com/heroman/heroman/internal/api/request"
	"github.com/heroman/heroman/internal/api/response"
	"github.com/heroman/heroman/internal/domain"
	"github.com/heroman/heroman/internal/service"
)

// TaskHandler handles task CRUD operations and completion toggles.
type TaskHandler struct {
	svc *service.HabitService
	now func() time.Time
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(svc *service.HabitService, now func() time.Time) *TaskHandler {
	return &TaskHandler{svc: svc, now: now}
}

// CreateTask handles POST /v1/tasks.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req request.CreateTaskRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, domain.NewValidationError([]string{"Invalid JSON body"}))
		return
	}

	input, errors := req.Validate()
	if len(errors) > 0 {
		response.Error(w, domain.NewValidationError(errors))
		return
	}

	task, err := h.svc.CreateTask(r.Context(), input)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Created(w, task)
}

// GetTask handles GET /v1/tasks/{id}.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, err := request.TaskID(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	task, err := h.svc.GetTask(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, task)
}

// ListTasks handles GET /v1/tasks.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	opts, errors := request.ParseListOptions(r)
	if len(errors) > 0 {
		response.Error(w, domain.NewValidationError(errors))
		return
	}

	tasks, err := h.svc.ListTasks(r.Context(), opts.Filter, opts.Sort)
	if err != nil {
		response.Error(w, err)
		return
	}

	if tasks == nil {
		tasks = []*domain.Task{}
	}
	response.OK(w, tasks)
}

// UpdateTask handles PATCH /v1/tasks/{id}.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, err := request.TaskID(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	var req request.UpdateTaskRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, domain.NewValidationError([]string{"Invalid JSON body"}))
		return
	}

	input, errors := req.Validate()
	if len(errors) > 0 {
		response.Error(w, domain.NewValidationError(errors))
		return
	}

	task, err := h.svc.UpdateTask(r.Context(), id, input)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, task)
}

// DeleteTask handles DELETE /v1/tasks/{id}.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := request.TaskID(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	if err := h.svc.DeleteTask(r.Context(), id); err != nil {
		response.Error(w, err)
		return
	}

	response.NoContent(w)
}

// ToggleTask handles POST /v1/tasks/{id}/toggle.
func (h *TaskHandler) ToggleTask(w http.ResponseWriter, r *http.Request) {
	id, err := request.TaskID(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	result, err := h.svc.ToggleTask(r.Context(), id, h.now())
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, result)
}
