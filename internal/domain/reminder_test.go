package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatLocalTime(t *testing.T) {
	tests := []struct {
		name     string
		hour12   int
		minute   int
		meridiem Meridiem
		expected string
	}{
		{name: "midnight", hour12: 12, minute: 0, meridiem: AM, expected: "00:00"},
		{name: "noon", hour12: 12, minute: 30, meridiem: PM, expected: "12:30"},
		{name: "morning", hour12: 8, minute: 0, meridiem: AM, expected: "08:00"},
		{name: "afternoon", hour12: 1, minute: 5, meridiem: PM, expected: "13:05"},
		{name: "late evening", hour12: 11, minute: 55, meridiem: PM, expected: "23:55"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatLocalTime(tt.hour12, tt.minute, tt.meridiem)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFormatLocalTime_InvalidInput(t *testing.T) {
	_, err := FormatLocalTime(0, 0, AM)
	assert.Error(t, err)

	_, err = FormatLocalTime(13, 0, PM)
	assert.Error(t, err)

	_, err = FormatLocalTime(8, 60, AM)
	assert.Error(t, err)

	_, err = FormatLocalTime(8, 0, "XM")
	assert.Error(t, err)
}

func TestParseLocalTime(t *testing.T) {
	tests := []struct {
		stored   string
		hour12   int
		minute   int
		meridiem Meridiem
	}{
		{stored: "00:00", hour12: 12, minute: 0, meridiem: AM},
		{stored: "08:15", hour12: 8, minute: 15, meridiem: AM},
		{stored: "12:00", hour12: 12, minute: 0, meridiem: PM},
		{stored: "13:05", hour12: 1, minute: 5, meridiem: PM},
		{stored: "23:59", hour12: 11, minute: 59, meridiem: PM},
	}

	for _, tt := range tests {
		t.Run(tt.stored, func(t *testing.T) {
			hour12, minute, meridiem, err := ParseLocalTime(tt.stored)
			assert.NoError(t, err)
			assert.Equal(t, tt.hour12, hour12)
			assert.Equal(t, tt.minute, minute)
			assert.Equal(t, tt.meridiem, meridiem)
		})
	}
}

func TestParseLocalTime_Invalid(t *testing.T) {
	for _, s := range []string{"", "8:00", "24:00", "12:60", "noonish"} {
		_, _, _, err := ParseLocalTime(s)
		assert.Error(t, err, "input %q", s)
	}
}

func TestLocalTime_RoundTrip(t *testing.T) {
	for hour12 := 1; hour12 <= 12; hour12++ {
		for _, minute := range []int{0, 5, 30, 55} {
			for _, meridiem := range []Meridiem{AM, PM} {
				name := fmt.Sprintf("%d:%02d %s", hour12, minute, meridiem)
				t.Run(name, func(t *testing.T) {
					stored, err := FormatLocalTime(hour12, minute, meridiem)
					assert.NoError(t, err)

					gotHour, gotMinute, gotMeridiem, err := ParseLocalTime(stored)
					assert.NoError(t, err)
					assert.Equal(t, hour12, gotHour)
					assert.Equal(t, minute, gotMinute)
					assert.Equal(t, meridiem, gotMeridiem)
				})
			}
		}
	}
}

func TestLocalClock(t *testing.T) {
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	utc, err := LocalClock(now, "UTC")
	assert.NoError(t, err)
	assert.Equal(t, "08:00", utc)

	berlin, err := LocalClock(now, "Europe/Berlin")
	assert.NoError(t, err)
	assert.Equal(t, "10:00", berlin) // CEST in June

	fallback, err := LocalClock(now, "")
	assert.NoError(t, err)
	assert.Equal(t, "08:00", fallback)

	_, err = LocalClock(now, "Not/AZone")
	assert.Error(t, err)
}
