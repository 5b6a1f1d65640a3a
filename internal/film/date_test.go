package film

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSessionDate(t *testing.T) {
	tests := []struct {
		text     string
		expected time.Time
	}{
		{"2025-08-07", time.Date(2025, 8, 7, 0, 0, 0, 0, time.UTC)},
		{"7 Aug 2025", time.Date(2025, 8, 7, 0, 0, 0, 0, time.UTC)},
		{"07 Aug 2025", time.Date(2025, 8, 7, 0, 0, 0, 0, time.UTC)},
		{"7 Aug", time.Date(2025, 8, 7, 0, 0, 0, 0, time.UTC)},
		{"Aug 7", time.Date(2025, 8, 7, 0, 0, 0, 0, time.UTC)},
		{"Thu 7 Aug", time.Date(2025, 8, 7, 0, 0, 0, 0, time.UTC)},
		{"not a date", time.Time{}},
		{"", time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseSessionDate(tt.text, 2025))
		})
	}
}

func TestParseSessionTime(t *testing.T) {
	tests := []struct {
		text   string
		hour   int
		minute int
		ok     bool
	}{
		{"7:00pm", 19, 0, true},
		{"6.15pm", 18, 15, true},
		{"6 pm", 18, 0, true},
		{"10am", 10, 0, true},
		{"12pm", 12, 0, true},
		{"12am", 0, 0, true},
		{"18:30", 18, 30, true},
		{"11:45 am", 11, 45, true},
		{"Unknown", 0, 0, false},
		{"", 0, 0, false},
		{"25:00", 0, 0, false},
		{"7", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			h, m, ok := ParseSessionTime(tt.text)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.hour, h)
				assert.Equal(t, tt.minute, m)
			}
		})
	}
}

func TestParseSessionDateTime(t *testing.T) {
	got := ParseSessionDateTime("7 Aug", "6:30pm", 2025, time.UTC)
	assert.Equal(t, time.Date(2025, 8, 7, 18, 30, 0, 0, time.UTC), got)

	assert.True(t, ParseSessionDateTime("garbage", "6:30pm", 2025, time.UTC).IsZero())
	assert.True(t, ParseSessionDateTime("7 Aug", "Unknown", 2025, time.UTC).IsZero())
}
