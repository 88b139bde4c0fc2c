package service

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"finire/internal/domain"
	"finire/internal/testutil"

	"github.com/stretchr/testify/assert"
)

// fakeClock drives the debounce timer by hand.
type fakeClock struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

type fakeTimer struct {
	f       func()
	stopped bool
	fired   bool
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{f: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// advance fires every timer that is still pending.
func (c *fakeClock) advance() {
	c.mu.Lock()
	pending := make([]*fakeTimer, 0, len(c.timers))
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			t.fired = true
			pending = append(pending, t)
		}
	}
	c.mu.Unlock()

	for _, t := range pending {
		t.f()
	}
}

type savedEntry struct {
	userID    string
	dayNumber int
	content   string
}

// recordingSaver captures SaveEntry calls.
type recordingSaver struct {
	mu    sync.Mutex
	calls []savedEntry
	err   error
}

func (s *recordingSaver) SaveEntry(userID string, dayNumber int, content string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return 0, s.err
	}
	s.calls = append(s.calls, savedEntry{userID, dayNumber, content})
	return domain.CountWords(content), nil
}

func todaySlot(day int) domain.DaySlot {
	return domain.DaySlot{DayNumber: day, IsToday: true}
}

func newTestController(saver EntrySaver, clock Clock) *AutosaveController {
	return NewAutosaveController(saver, DefaultQuiescence, clock, testutil.NewTestLogger())
}

func TestAutosave_BurstOfEditsProducesOneSave(t *testing.T) {
	clock := &fakeClock{}
	saver := &recordingSaver{}
	c := newTestController(saver, clock)

	c.Record("user-1", todaySlot(1), "first")
	c.Record("user-1", todaySlot(1), "first dr")
	c.Record("user-1", todaySlot(1), "first draft done")

	assert.Empty(t, saver.calls, "nothing saved before the quiescence window")

	clock.advance()

	assert.Equal(t, []savedEntry{{"user-1", 1, "first draft done"}}, saver.calls)
}

func TestAutosave_EachQuiescencePeriodSavesOnce(t *testing.T) {
	clock := &fakeClock{}
	saver := &recordingSaver{}
	c := newTestController(saver, clock)

	c.Record("user-1", todaySlot(1), "morning pages")
	clock.advance()

	c.Record("user-1", todaySlot(1), "morning pages, continued")
	clock.advance()

	assert.Len(t, saver.calls, 2)
	assert.Equal(t, "morning pages, continued", saver.calls[1].content)
}

func TestAutosave_IgnoresNonEditableSlots(t *testing.T) {
	clock := &fakeClock{}
	saver := &recordingSaver{}
	c := newTestController(saver, clock)

	c.Record("user-1", domain.DaySlot{DayNumber: 2, IsToday: false, Locked: true}, "future day")
	c.Record("user-1", domain.DaySlot{DayNumber: 1, IsToday: true, Sealed: true}, "sealed day")

	clock.advance()

	assert.Empty(t, saver.calls)
	assert.Empty(t, clock.timers, "no timer scheduled for non-editable slots")
}

func TestAutosave_UnchangedContentSchedulesNothing(t *testing.T) {
	clock := &fakeClock{}
	saver := &recordingSaver{}
	c := newTestController(saver, clock)

	c.Record("user-1", todaySlot(1), "same words")
	clock.advance()
	assert.Len(t, saver.calls, 1)

	c.Record("user-1", todaySlot(1), "same words")
	clock.advance()

	assert.Len(t, saver.calls, 1, "no save for a slot with no pending change")
}

func TestAutosave_StopCancelsPendingSave(t *testing.T) {
	clock := &fakeClock{}
	saver := &recordingSaver{}
	c := newTestController(saver, clock)

	c.Record("user-1", todaySlot(1), "abandoned")
	c.Stop()
	clock.advance()

	assert.Empty(t, saver.calls)
}

func TestAutosave_FailedSaveRetriesOnNextEdit(t *testing.T) {
	clock := &fakeClock{}
	saver := &recordingSaver{err: fmt.Errorf("connection refused")}
	c := newTestController(saver, clock)

	c.Record("user-1", todaySlot(1), "lost words")
	clock.advance()
	assert.Empty(t, saver.calls)

	saver.err = nil
	c.Record("user-1", todaySlot(1), "lost words")
	clock.advance()

	assert.Equal(t, []savedEntry{{"user-1", 1, "lost words"}}, saver.calls)
}
