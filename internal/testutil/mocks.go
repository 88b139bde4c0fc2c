package testutil

import (
	"context"

	"finire/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockDayRepository is a mock for DayRepository
type MockDayRepository struct {
	mock.Mock
}

func (m *MockDayRepository) GetDays(userID string) ([]domain.DayRecord, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DayRecord), args.Error(1)
}

func (m *MockDayRepository) UpsertDay(userID string, dayNumber int, content string, wordCount int) error {
	args := m.Called(userID, dayNumber, content, wordCount)
	return args.Error(0)
}

func (m *MockDayRepository) SealDay(userID string, dayNumber int) error {
	args := m.Called(userID, dayNumber)
	return args.Error(0)
}

// MockReminderRepository is a mock for ReminderRepository
type MockReminderRepository struct {
	mock.Mock
}

func (m *MockReminderRepository) Get(userID string) (*domain.ReminderPreference, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReminderPreference), args.Error(1)
}

func (m *MockReminderRepository) Upsert(pref domain.ReminderPreference) error {
	args := m.Called(pref)
	return args.Error(0)
}

func (m *MockReminderRepository) SetEnabled(userID string, enabled bool) error {
	args := m.Called(userID, enabled)
	return args.Error(0)
}

func (m *MockReminderRepository) ListEnabled() ([]domain.ReminderPreference, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReminderPreference), args.Error(1)
}

// MockUserRepository is a mock for UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) EnsureUser(userID, email string) error {
	args := m.Called(userID, email)
	return args.Error(0)
}

func (m *MockUserRepository) ListUsers() ([]domain.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

// MockNotifier is a mock reminder delivery channel
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Send(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}
