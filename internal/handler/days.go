package handler

import (
	"net/http"
	"strconv"

	"finire/internal/domain"
	"finire/internal/middleware"

	"go.uber.org/zap"
)

// daysResponse is the day ledger plus the journey stats the timeline shows.
type daysResponse struct {
	Days       []domain.DaySlot `json:"days"`
	CurrentDay int              `json:"currentDay"`
	TotalWords int              `json:"totalWords"`
	SealedDays int              `json:"sealedDays"`
}

func newDaysResponse(slots []domain.DaySlot) daysResponse {
	resp := daysResponse{Days: slots}
	for _, s := range slots {
		if s.IsToday {
			resp.CurrentDay = s.DayNumber
		}
	}
	resp.TotalWords, resp.SealedDays = domain.JourneyStats(slots)
	return resp
}

func (h *Handler) handleDays(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)

	slots, err := h.journal.LoadDays(userID)
	if err != nil {
		h.logger.Error("Failed to load days", zap.String("user_id", userID), zap.Error(err))
		http.Error(w, "Failed to load days", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, newDaysResponse(slots))
}

func (h *Handler) handleSeal(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)

	dayNumber, err := strconv.Atoi(r.PathValue("day"))
	if err != nil {
		http.Error(w, "Invalid day number", http.StatusBadRequest)
		return
	}

	slots, err := h.journal.Seal(userID, dayNumber)
	if err != nil {
		h.logger.Error("Failed to seal day",
			zap.String("user_id", userID),
			zap.Int("day_number", dayNumber),
			zap.Error(err),
		)
		http.Error(w, "Failed to seal day", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, newDaysResponse(slots))
}
