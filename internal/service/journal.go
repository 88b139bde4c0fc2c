package service

import (
	"fmt"

	"finire/internal/domain"
	"finire/internal/repository"

	"go.uber.org/zap"
)

// JournalService handles the day ledger: loading slots, saving entries and
// the seal transition.
type JournalService struct {
	dayRepo repository.DayRepository
	logger  *zap.Logger
}

// NewJournalService creates a new journal service
func NewJournalService(dayRepo repository.DayRepository, logger *zap.Logger) *JournalService {
	return &JournalService{
		dayRepo: dayRepo,
		logger:  logger,
	}
}

// LoadDays returns the user's full derived slot sequence.
func (s *JournalService) LoadDays(userID string) ([]domain.DaySlot, error) {
	records, err := s.dayRepo.GetDays(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load days: %w", err)
	}
	return domain.DeriveDaySlots(records, domain.TotalDays), nil
}

// SaveEntry persists the entry text for a day, recomputing the word count.
// The store-side upsert refuses to touch a sealed row, so a stale save
// racing a seal cannot corrupt sealed content. Returns the saved count.
func (s *JournalService) SaveEntry(userID string, dayNumber int, content string) (int, error) {
	if dayNumber < 1 || dayNumber > domain.TotalDays {
		return 0, fmt.Errorf("day number %d out of range 1..%d", dayNumber, domain.TotalDays)
	}

	wordCount := domain.CountWords(content)
	if err := s.dayRepo.UpsertDay(userID, dayNumber, content, wordCount); err != nil {
		return 0, fmt.Errorf("failed to save day %d: %w", dayNumber, err)
	}
	return wordCount, nil
}

// Seal marks a day complete once its saved word count meets the threshold,
// which unlocks the next day. An under-threshold or already-sealed day is
// a silent no-op: the current slot sequence is returned unchanged. The
// check uses the last persisted word count, not any unsaved editor state.
//
// On success the transition is applied to the freshly loaded records and
// the slots re-derived locally; the single sealed-flag write is trusted
// rather than re-read.
func (s *JournalService) Seal(userID string, dayNumber int) ([]domain.DaySlot, error) {
	records, err := s.dayRepo.GetDays(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load days: %w", err)
	}

	slots := domain.DeriveDaySlots(records, domain.TotalDays)
	if dayNumber < 1 || dayNumber > len(slots) {
		return slots, nil
	}

	slot := slots[dayNumber-1]
	if slot.Sealed || slot.WordCount < domain.SealThreshold {
		s.logger.Debug("Seal ignored",
			zap.String("user_id", userID),
			zap.Int("day_number", dayNumber),
			zap.Int("word_count", slot.WordCount),
			zap.Bool("sealed", slot.Sealed),
		)
		return slots, nil
	}

	if err := s.dayRepo.SealDay(userID, dayNumber); err != nil {
		return nil, fmt.Errorf("failed to seal day %d: %w", dayNumber, err)
	}

	s.logger.Info("Day sealed",
		zap.String("user_id", userID),
		zap.Int("day_number", dayNumber),
		zap.Int("word_count", slot.WordCount),
	)

	for i := range records {
		if records[i].DayNumber == dayNumber {
			records[i].Sealed = true
		}
	}
	return domain.DeriveDaySlots(records, domain.TotalDays), nil
}
