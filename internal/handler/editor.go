package handler

import (
	"net/http"

	"finire/internal/domain"
	"finire/internal/middleware"
	"finire/internal/service"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// editorMessage is a client event in an editing session.
type editorMessage struct {
	Type      string `json:"type"` // "edit" or "seal"
	DayNumber int    `json:"dayNumber"`
	Content   string `json:"content,omitempty"`
}

type stateMessage struct {
	Type string `json:"type"`
	daysResponse
}

type wordCountMessage struct {
	Type      string `json:"type"`
	DayNumber int    `json:"dayNumber"`
	WordCount int    `json:"wordCount"`
}

// handleEditor runs one writing session over a websocket. Edits stream in,
// get debounced by the session's autosave controller and persist after the
// quiescence window; the live word count is acked immediately. Sealing in
// session returns the re-derived day state so the next day unlocks without
// a reload.
func (h *Handler) handleEditor(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("Websocket upgrade failed", zap.String("user_id", userID), zap.Error(err))
		return
	}
	defer conn.Close()

	slots, err := h.journal.LoadDays(userID)
	if err != nil {
		h.logger.Error("Failed to load days for editor", zap.String("user_id", userID), zap.Error(err))
		return
	}

	autosave := service.NewAutosaveController(h.journal, service.DefaultQuiescence, h.clock, h.logger)
	defer autosave.Stop()

	if err := conn.WriteJSON(stateMessage{Type: "state", daysResponse: newDaysResponse(slots)}); err != nil {
		return
	}

	for {
		var msg editorMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("Editor session ended unexpectedly", zap.String("user_id", userID), zap.Error(err))
			}
			return
		}
		if msg.DayNumber < 1 || msg.DayNumber > len(slots) {
			continue
		}

		switch msg.Type {
		case "edit":
			slot := &slots[msg.DayNumber-1]
			if !slot.Editable() {
				continue
			}
			slot.Content = msg.Content
			slot.WordCount = domain.CountWords(msg.Content)

			autosave.Record(userID, *slot, msg.Content)

			if err := conn.WriteJSON(wordCountMessage{
				Type:      "wordCount",
				DayNumber: slot.DayNumber,
				WordCount: slot.WordCount,
			}); err != nil {
				return
			}

		case "seal":
			sealed, err := h.journal.Seal(userID, msg.DayNumber)
			if err != nil {
				h.logger.Error("Failed to seal day in editor",
					zap.String("user_id", userID),
					zap.Int("day_number", msg.DayNumber),
					zap.Error(err),
				)
				continue
			}
			slots = sealed
			if err := conn.WriteJSON(stateMessage{Type: "state", daysResponse: newDaysResponse(slots)}); err != nil {
				return
			}
		}
	}
}
