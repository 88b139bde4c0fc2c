package handler

import (
	"encoding/json"
	"net/http"

	"finire/internal/domain"
	"finire/internal/middleware"

	"go.uber.org/zap"
)

type setReminderRequest struct {
	Hour     int                    `json:"hour"`
	Minute   int                    `json:"minute"`
	Meridiem domain.Meridiem        `json:"meridiem"`
	Timezone string                 `json:"timezone"`
	Channel  domain.ReminderChannel `json:"channel"`
	ChatID   int64                  `json:"chatId"`
}

type reminderResponse struct {
	Exists   bool                   `json:"exists"`
	Hour     int                    `json:"hour,omitempty"`
	Minute   int                    `json:"minute"`
	Meridiem domain.Meridiem        `json:"meridiem,omitempty"`
	Timezone string                 `json:"timezone,omitempty"`
	Channel  domain.ReminderChannel `json:"channel,omitempty"`
	Enabled  bool                   `json:"enabled"`
}

func (h *Handler) handleGetReminder(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)

	pref, err := h.reminder.GetReminder(userID)
	if err != nil {
		h.logger.Error("Failed to load reminder", zap.String("user_id", userID), zap.Error(err))
		http.Error(w, "Failed to load reminder", http.StatusInternalServerError)
		return
	}
	if pref == nil {
		h.writeJSON(w, http.StatusOK, reminderResponse{Exists: false})
		return
	}

	hour, minute, meridiem, err := domain.ParseLocalTime(pref.TimeLocal)
	if err != nil {
		h.logger.Error("Stored reminder time is malformed",
			zap.String("user_id", userID),
			zap.String("time_local", pref.TimeLocal),
			zap.Error(err),
		)
		http.Error(w, "Failed to load reminder", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, reminderResponse{
		Exists:   true,
		Hour:     hour,
		Minute:   minute,
		Meridiem: meridiem,
		Timezone: pref.Timezone,
		Channel:  pref.Channel,
		Enabled:  pref.Enabled,
	})
}

func (h *Handler) handleSetReminder(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)

	var req setReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	err := h.reminder.SetReminder(userID, req.Hour, req.Minute, req.Meridiem, req.Timezone, req.Channel, req.ChatID)
	if err != nil {
		// Validation problems surface inline on the reminder form.
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

func (h *Handler) handleReminderEnabled(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)

	var req struct {
		Enabled bool `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.reminder.SetEnabled(userID, req.Enabled); err != nil {
		h.logger.Error("Failed to toggle reminder", zap.String("user_id", userID), zap.Error(err))
		http.Error(w, "Failed to update reminder", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]bool{"enabled": req.Enabled})
}
