package service

import (
	"sync"
	"time"

	"finire/internal/domain"

	"go.uber.org/zap"
)

// DefaultQuiescence is how long after the last edit an autosave fires.
const DefaultQuiescence = 500 * time.Millisecond

// EntrySaver is the slice of JournalService the autosave controller needs.
type EntrySaver interface {
	SaveEntry(userID string, dayNumber int, content string) (int, error)
}

// Timer is a cancelable pending callback.
type Timer interface {
	Stop() bool
}

// Clock schedules callbacks. Tests substitute a virtual clock so debounce
// behavior can be driven without real time.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// NewRealClock returns a Clock backed by time.AfterFunc.
func NewRealClock() Clock {
	return realClock{}
}

type pendingEdit struct {
	userID    string
	dayNumber int
	content   string
	slot      domain.DaySlot
}

// AutosaveController debounces editor changes for one editing session and
// reconciles them to the store. Each edit cancels and restarts the
// quiescence timer, so a burst of keystrokes produces exactly one save
// carrying the final content.
type AutosaveController struct {
	saver      EntrySaver
	quiescence time.Duration
	clock      Clock
	logger     *zap.Logger

	mu        sync.Mutex
	timer     Timer
	pending   *pendingEdit
	lastSaved map[int]string
}

// NewAutosaveController creates a controller for one editing session.
func NewAutosaveController(saver EntrySaver, quiescence time.Duration, clock Clock, logger *zap.Logger) *AutosaveController {
	return &AutosaveController{
		saver:      saver,
		quiescence: quiescence,
		clock:      clock,
		logger:     logger,
		lastSaved:  make(map[int]string),
	}
}

// Record notes an edit to a slot and (re)starts the quiescence timer.
// Edits to locked or sealed slots are ignored; the editor disables those
// surfaces, and this guard protects against events that slip through.
// An edit that matches what was last saved schedules nothing.
func (c *AutosaveController) Record(userID string, slot domain.DaySlot, content string) {
	if !slot.Editable() {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending == nil {
		if saved, ok := c.lastSaved[slot.DayNumber]; ok && saved == content {
			return
		}
	}

	c.pending = &pendingEdit{
		userID:    userID,
		dayNumber: slot.DayNumber,
		content:   content,
		slot:      slot,
	}

	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = c.clock.AfterFunc(c.quiescence, c.flush)
}

// Stop cancels any pending save without firing it. Used on session
// teardown; an abandoned edit is retried by the next session's first edit.
func (c *AutosaveController) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.pending = nil
}

func (c *AutosaveController) flush() {
	c.mu.Lock()
	edit := c.pending
	c.pending = nil
	c.timer = nil
	c.mu.Unlock()

	if edit == nil {
		return
	}
	// Stale timer after navigation or seal: re-check before writing.
	if !edit.slot.Editable() {
		return
	}

	wordCount, err := c.saver.SaveEntry(edit.userID, edit.dayNumber, edit.content)
	if err != nil {
		// Local state is not rolled back; the next edit retries with
		// current content.
		c.logger.Error("Autosave failed",
			zap.String("user_id", edit.userID),
			zap.Int("day_number", edit.dayNumber),
			zap.Error(err),
		)
		return
	}

	c.mu.Lock()
	c.lastSaved[edit.dayNumber] = edit.content
	c.mu.Unlock()

	c.logger.Debug("Autosave completed",
		zap.String("user_id", edit.userID),
		zap.Int("day_number", edit.dayNumber),
		zap.Int("word_count", wordCount),
	)
}
