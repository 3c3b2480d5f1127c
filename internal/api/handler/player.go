package handler

import (
	"net/http"
	"time"

	"github.com/heroman/heroman/internal/api/response"
	"github.com/heroman/heroman/internal/service"
)

// PlayerHandler handles the player save and day rollover.
type PlayerHandler struct {
	svc *service.HabitService
	now func() time.Time
}

// NewPlayerHandler creates a new PlayerHandler.
func NewPlayerHandler(svc *service.HabitService, now func() time.Time) *PlayerHandler {
	return &PlayerHandler{svc: svc, now: now}
}

// GetPlayer handles GET /v1/player.
func (h *PlayerHandler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	player, err := h.svc.Player(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, player)
}

// Rollover handles POST /v1/rollover.
func (h *PlayerHandler) Rollover(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.Rollover(r.Context(), h.now())
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, result)
}
