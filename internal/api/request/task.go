package request

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/heroman/heroman/internal/domain"
	"github.com/heroman/heroman/internal/service"
)

// Choice is an enum value sent either as its number or its name,
// e.g. 3 or "hard".
type Choice string

// UnmarshalJSON accepts a JSON number or string.
func (c *Choice) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = Choice(s)
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected a number or name: %w", err)
	}
	*c = Choice(strconv.Itoa(n))
	return nil
}

// CreateTaskRequest represents a request to create a task.
type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Difficulty  *Choice `json:"difficulty,omitempty"`
	Type        *Choice `json:"type,omitempty"`
}

// Validate validates the create task request and converts it to service input.
func (r *CreateTaskRequest) Validate() (service.CreateTaskInput, []string) {
	var errors []string
	input := service.CreateTaskInput{Title: r.Title}

	if r.Title == "" {
		errors = append(errors, "title is required")
	}
	if r.Description != nil {
		input.Description = *r.Description
	}

	input.Difficulty, errors = parseDifficulty(r.Difficulty, errors)
	input.Type, errors = parseType(r.Type, errors)

	return input, errors
}

// UpdateTaskRequest represents a request to update a task.
type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Difficulty  *Choice `json:"difficulty,omitempty"`
	Type        *Choice `json:"type,omitempty"`
}

// Validate validates the update task request and converts it to service input.
func (r *UpdateTaskRequest) Validate() (service.UpdateTaskInput, []string) {
	var errors []string
	input := service.UpdateTaskInput{Title: r.Title, Description: r.Description}

	if r.Title != nil && *r.Title == "" {
		errors = append(errors, "title cannot be empty")
	}

	input.Difficulty, errors = parseDifficulty(r.Difficulty, errors)
	input.Type, errors = parseType(r.Type, errors)

	return input, errors
}

func parseDifficulty(c *Choice, errors []string) (*domain.Difficulty, []string) {
	if c == nil {
		return nil, errors
	}
	d, err := domain.ParseDifficulty(string(*c))
	if err != nil {
		return nil, append(errors, err.Error())
	}
	return &d, errors
}

func parseType(c *Choice, errors []string) (*domain.TaskType, []string) {
	if c == nil {
		return nil, errors
	}
	t, err := domain.ParseTaskType(string(*c))
	if err != nil {
		return nil, append(errors, err.Error())
	}
	return &t, errors
}

// DecodeJSON decodes JSON from request body into the given value.
func DecodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// TaskID extracts the {id} URL parameter.
func TaskID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError([]string{fmt.Sprintf("invalid task id: %q", raw)})
	}
	return id, nil
}

// ListOptions holds the filter and sort query parameters.
type ListOptions struct {
	Filter domain.Filter
	Sort   domain.Sort
}

// ParseListOptions extracts filter and sort from query parameters.
func ParseListOptions(r *http.Request) (ListOptions, []string) {
	var errors []string
	query := r.URL.Query()

	filter, err := domain.ParseFilter(query.Get("filter"))
	if err != nil {
		errors = append(errors, err.Error())
	}
	sort, err := domain.ParseSort(query.Get("sort"))
	if err != nil {
		errors = append(errors, err.Error())
	}

	return ListOptions{Filter: filter, Sort: sort}, errors
}
