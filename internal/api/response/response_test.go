package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/heroman/heroman/internal/domain"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		code domain.ErrorCode
		want int
	}{
		{domain.ErrCodeTaskNotFound, http.StatusNotFound},
		{domain.ErrCodeValidationFailed, http.StatusBadRequest},
		{domain.ErrCodeInternalError, http.StatusInternalServerError},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := StatusFor(tt.code); got != tt.want {
				t.Errorf("StatusFor(%s) = %d, want %d", tt.code, got, tt.want)
			}
		})
	}
}

func TestError_WrappedDomainError(t *testing.T) {
	rr := httptest.NewRecorder()
	err := errors.Join(errors.New("lookup"), domain.NewTaskNotFoundError(3))

	Error(rr, err)

	if rr.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rr.Code)
	}
	var resp ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error.Code != "TASK_NOT_FOUND" {
		t.Errorf("expected code TASK_NOT_FOUND, got %q", resp.Error.Code)
	}
}

func TestError_PlainErrorHidesCause(t *testing.T) {
	rr := httptest.NewRecorder()

	Error(rr, errors.New("disk on fire"))

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", rr.Code)
	}
	var resp ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error.Message != "An internal error occurred" {
		t.Errorf("unexpected message %q", resp.Error.Message)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
}
