package repository

import (
	"finire/internal/domain"
)

// DayRepository defines persistence for journal day records.
type DayRepository interface {
	GetDays(userID string) ([]domain.DayRecord, error)
	UpsertDay(userID string, dayNumber int, content string, wordCount int) error
	SealDay(userID string, dayNumber int) error
}

// ReminderRepository defines persistence for reminder preferences,
// at most one row per user.
type ReminderRepository interface {
	Get(userID string) (*domain.ReminderPreference, error)
	Upsert(pref domain.ReminderPreference) error
	SetEnabled(userID string, enabled bool) error
	ListEnabled() ([]domain.ReminderPreference, error)
}

// UserRepository defines the local identity mirror used to resolve user
// IDs to notification addresses.
type UserRepository interface {
	EnsureUser(userID, email string) error
	ListUsers() ([]domain.User, error)
}
