package domain

import (
	"fmt"
	"time"
)

// ReminderChannel selects how a reminder is delivered.
type ReminderChannel string

const (
	ChannelEmail    ReminderChannel = "email"
	ChannelTelegram ReminderChannel = "telegram"
)

// Valid reports whether the channel is one the dispatcher knows.
func (c ReminderChannel) Valid() bool {
	return c == ChannelEmail || c == ChannelTelegram
}

// Meridiem is the AM/PM half of a 12-hour clock time.
type Meridiem string

const (
	AM Meridiem = "AM"
	PM Meridiem = "PM"
)

// ReminderPreference is a user's stored daily reminder setting, at most one
// per user. TimeLocal is a 24-hour "HH:MM" string in the user's Timezone
// (IANA zone name, captured from the client when the reminder is set).
// ChatID is only set for the telegram channel.
type ReminderPreference struct {
	UserID    string
	TimeLocal string
	Timezone  string
	Channel   ReminderChannel
	ChatID    int64
	Enabled   bool
	UpdatedAt time.Time
}

// FormatLocalTime converts a 12-hour clock tuple to the stored 24-hour
// "HH:MM" form. Noon is "12:00", midnight is "00:00".
func FormatLocalTime(hour12, minute int, meridiem Meridiem) (string, error) {
	if hour12 < 1 || hour12 > 12 {
		return "", fmt.Errorf("hour %d out of range 1..12", hour12)
	}
	if minute < 0 || minute > 59 {
		return "", fmt.Errorf("minute %d out of range 0..59", minute)
	}
	if meridiem != AM && meridiem != PM {
		return "", fmt.Errorf("invalid meridiem %q", meridiem)
	}

	hour := hour12 % 12
	if meridiem == PM {
		hour += 12
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}

// ParseLocalTime converts a stored 24-hour "HH:MM" string back to the
// 12-hour tuple. Inverse of FormatLocalTime for all valid inputs.
func ParseLocalTime(s string) (hour12, minute int, meridiem Meridiem, err error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, "", fmt.Errorf("invalid time %q: %w", s, err)
	}
	hour, minute := t.Hour(), t.Minute()

	switch {
	case hour == 0:
		return 12, minute, AM, nil
	case hour < 12:
		return hour, minute, AM, nil
	case hour == 12:
		return 12, minute, PM, nil
	default:
		return hour - 12, minute, PM, nil
	}
}

// LocalClock renders now in the given IANA timezone as a 24-hour "HH:MM"
// string, the same granularity ReminderPreference.TimeLocal is stored at.
// An empty zone falls back to UTC.
func LocalClock(now time.Time, timezone string) (string, error) {
	if timezone == "" {
		timezone = "UTC"
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return "", fmt.Errorf("load timezone %q: %w", timezone, err)
	}
	return now.In(loc).Format("15:04"), nil
}
