package handler

import (
	"encoding/json"
	"net/http"

	"finire/internal/middleware"
	"finire/internal/repository"
	"finire/internal/service"

	"go.uber.org/zap"
)

// Handler wires the HTTP and websocket surface to the services.
type Handler struct {
	journal  *service.JournalService
	reminder *service.ReminderService
	clock    service.Clock
	logger   *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(journal *service.JournalService, reminder *service.ReminderService, clock service.Clock, logger *zap.Logger) *Handler {
	return &Handler{
		journal:  journal,
		reminder: reminder,
		clock:    clock,
		logger:   logger,
	}
}

// Routes builds the authenticated API mux.
func (h *Handler) Routes(jwtSecret []byte, users repository.UserRepository) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/days", h.handleDays)
	mux.HandleFunc("POST /api/days/{day}/seal", h.handleSeal)
	mux.HandleFunc("GET /api/reminder", h.handleGetReminder)
	mux.HandleFunc("PUT /api/reminder", h.handleSetReminder)
	mux.HandleFunc("POST /api/reminder/enabled", h.handleReminderEnabled)
	mux.HandleFunc("GET /api/editor", h.handleEditor)

	return middleware.Auth(jwtSecret, users, h.logger)(mux)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}
