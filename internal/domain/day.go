package domain

import "time"

const (
	// TotalDays is the length of one journaling journey.
	TotalDays = 30

	// SealThreshold is the word count required before a day can be sealed.
	SealThreshold = 300
)

// DayRecord is the persisted entry for one day of a user's journey.
// Records are sparse: absent until the first autosave of that day.
type DayRecord struct {
	ID        int64
	UserID    string
	DayNumber int
	Content   string
	WordCount int
	Sealed    bool
	UpdatedAt time.Time
}

// DaySlot is the derived, in-memory view of one day: persisted data
// combined with the computed current/locked flags.
type DaySlot struct {
	DayNumber int    `json:"dayNumber"`
	Content   string `json:"content"`
	WordCount int    `json:"wordCount"`
	Sealed    bool   `json:"sealed"`
	IsToday   bool   `json:"isToday"`
	Locked    bool   `json:"locked"`
}

// Editable reports whether the slot accepts writes: only the current,
// unsealed day. Sealed content is immutable, so on a fully sealed journey
// the final slot is today but still not editable.
func (s DaySlot) Editable() bool {
	return s.IsToday && !s.Sealed
}

// CurrentDay returns the day the user should be writing: the day after the
// last sealed one, capped at totalDays.
func CurrentDay(records []DayRecord, totalDays int) int {
	lastSealed := 0
	for _, r := range records {
		if r.DayNumber < 1 || r.DayNumber > totalDays {
			continue
		}
		if r.Sealed && r.DayNumber > lastSealed {
			lastSealed = r.DayNumber
		}
	}
	current := lastSealed + 1
	if current > totalDays {
		current = totalDays
	}
	return current
}

// DeriveDaySlots builds the full, gapless 1..totalDays slot sequence from a
// sparse record set. Days without a record default to empty content.
// Duplicate records for the same day number should not exist (the store is
// unique on user/day), but if they do the most recently updated one wins;
// on equal timestamps the later record in the input wins.
func DeriveDaySlots(records []DayRecord, totalDays int) []DaySlot {
	byDay := make(map[int]DayRecord, len(records))
	for _, r := range records {
		if r.DayNumber < 1 || r.DayNumber > totalDays {
			continue
		}
		if prev, ok := byDay[r.DayNumber]; ok && r.UpdatedAt.Before(prev.UpdatedAt) {
			continue
		}
		byDay[r.DayNumber] = r
	}

	current := CurrentDay(records, totalDays)

	slots := make([]DaySlot, 0, totalDays)
	for i := 1; i <= totalDays; i++ {
		slot := DaySlot{
			DayNumber: i,
			IsToday:   i == current,
			Locked:    i > current,
		}
		if r, ok := byDay[i]; ok {
			slot.Content = r.Content
			slot.WordCount = r.WordCount
			slot.Sealed = r.Sealed
		}
		slots = append(slots, slot)
	}
	return slots
}

// JourneyStats summarizes progress across a slot sequence: words written on
// sealed days plus the unsealed current day, and the number of sealed days.
func JourneyStats(slots []DaySlot) (totalWords, sealedDays int) {
	for _, s := range slots {
		if s.Sealed {
			totalWords += s.WordCount
			sealedDays++
		} else if s.IsToday {
			totalWords += s.WordCount
		}
	}
	return totalWords, sealedDays
}
