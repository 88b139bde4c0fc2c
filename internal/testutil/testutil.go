package testutil

import (
	"time"

	"finire/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestPreference creates an enabled email reminder preference for tests
func NewTestPreference(userID, timeLocal, timezone string) domain.ReminderPreference {
	return domain.ReminderPreference{
		UserID:    userID,
		TimeLocal: timeLocal,
		Timezone:  timezone,
		Channel:   domain.ChannelEmail,
		Enabled:   true,
		UpdatedAt: time.Now(),
	}
}
