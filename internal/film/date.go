package film

import (
	"strconv"
	"strings"
	"time"
)

// ParseSessionDate attempts to parse a session's raw date text.
// Returns time.Time{} (zero value) if parsing fails.
// Supports formats: "2025-08-07", "7 Aug 2025", "7 Aug" (year supplied
// by the caller, normally the festival year).
func ParseSessionDate(dateText string, year int) time.Time {
	dateText = strings.TrimSpace(dateText)
	if dateText == "" {
		return time.Time{}
	}

	// Try "2025-08-07" format (schedule-grid pages carry ISO dates)
	t, err := time.Parse("2006-01-02", dateText)
	if err == nil {
		return t
	}

	// Try "7 Aug 2025" format
	t, err = time.Parse("2 Jan 2006", dateText)
	if err == nil {
		return t
	}

	// Try "07 Aug 2025" format
	t, err = time.Parse("02 Jan 2006", dateText)
	if err == nil {
		return t
	}

	// Try "7 Aug" format (ticket panels omit the year)
	t, err = time.Parse("2 Jan", dateText)
	if err == nil {
		return time.Date(year, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}

	// Try "Thu 7 Aug" format (ticket panels sometimes prefix the weekday)
	t, err = time.Parse("Mon 2 Jan", dateText)
	if err == nil {
		return time.Date(year, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}

	// Try "Aug 7" format
	t, err = time.Parse("Jan 2", dateText)
	if err == nil {
		return time.Date(year, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}

	return time.Time{}
}

// ParseSessionTime attempts to parse a session's raw time text into an hour
// and minute. Handles "6:30pm", "6.15pm", "6 pm", "6pm", "10am" and 24-hour
// "18:30". Returns ok=false if the text is not a recognizable time.
func ParseSessionTime(timeText string) (hour, minute int, ok bool) {
	s := strings.ToLower(strings.TrimSpace(timeText))
	if s == "" || s == strings.ToLower(UnknownTime) {
		return 0, 0, false
	}
	s = strings.ReplaceAll(s, ".", ":")
	s = strings.ReplaceAll(s, " ", "")

	meridiem := ""
	switch {
	case strings.HasSuffix(s, "pm"):
		meridiem = "pm"
		s = strings.TrimSuffix(s, "pm")
	case strings.HasSuffix(s, "am"):
		meridiem = "am"
		s = strings.TrimSuffix(s, "am")
	}

	hh, mm := s, "0"
	if i := strings.IndexByte(s, ':'); i >= 0 {
		hh, mm = s[:i], s[i+1:]
	}

	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0, 0, false
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return 0, 0, false
	}

	switch meridiem {
	case "pm":
		if h < 1 || h > 12 {
			return 0, 0, false
		}
		if h != 12 {
			h += 12
		}
	case "am":
		if h < 1 || h > 12 {
			return 0, 0, false
		}
		if h == 12 {
			h = 0
		}
	default:
		// 24-hour time requires an explicit minute component.
		if !strings.Contains(timeText, ":") || h < 0 || h > 23 {
			return 0, 0, false
		}
	}
	if m < 0 || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}

// ParseSessionDateTime combines a session's raw date and time text into a
// single timestamp in the given location. Returns the zero value when either
// part cannot be parsed.
func ParseSessionDateTime(dateText, timeText string, year int, loc *time.Location) time.Time {
	d := ParseSessionDate(dateText, year)
	if d.IsZero() {
		return time.Time{}
	}
	h, m, ok := ParseSessionTime(timeText)
	if !ok {
		return time.Time{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year(), d.Month(), d.Day(), h, m, 0, 0, loc)
}
