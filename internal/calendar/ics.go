// Package calendar exports harvested sessions as an iCalendar file so a
// shortlist of screenings can be dropped into any calendar app.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/darrenkjr/filmharvest/internal/film"
)

// Screenings run close to two hours with trailers and intros; the dataset
// carries runtimes as free text, so a fixed block is used instead.
const sessionDuration = 2 * time.Hour

// GenerateICS renders one VEVENT per record that has a parseable session
// date and time. year completes panel-style dates that omit it; loc is the
// festival's local timezone (UTC when nil). Records without a parseable
// session, including sessionless placeholders, are skipped.
func GenerateICS(records []film.CombinedRecord, year int, loc *time.Location) string {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//filmharvest//filmharvest//EN\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")

	now := time.Now().UTC()
	for _, rec := range records {
		start := film.ParseSessionDateTime(rec.SessionDate, rec.SessionTime, year, loc)
		if start.IsZero() {
			continue
		}
		writeEvent(&ics, rec, start, now)
	}

	ics.WriteString("END:VCALENDAR\r\n")
	return ics.String()
}

func writeEvent(ics *strings.Builder, rec film.CombinedRecord, start, stamp time.Time) {
	ics.WriteString("BEGIN:VEVENT\r\n")

	fmt.Fprintf(ics, "UID:filmharvest-%s-%s\r\n", rec.FilmID, formatICSTime(start))
	fmt.Fprintf(ics, "DTSTAMP:%s\r\n", formatICSTime(stamp))
	fmt.Fprintf(ics, "DTSTART:%s\r\n", formatICSTime(start))
	fmt.Fprintf(ics, "DTEND:%s\r\n", formatICSTime(start.Add(sessionDuration)))

	summary := rec.Title
	if rec.Director != "" {
		summary = fmt.Sprintf("%s (dir. %s)", rec.Title, rec.Director)
	}
	fmt.Fprintf(ics, "SUMMARY:%s\r\n", escapeICS(summary))

	var details []string
	if rec.Runtime != "" {
		details = append(details, fmt.Sprintf("Runtime: %s", rec.Runtime))
	}
	if rec.ViewerAdvice != "" {
		details = append(details, rec.ViewerAdvice)
	}
	if rec.Description != "" {
		details = append(details, rec.Description)
	}
	if rec.FilmURL != "" {
		details = append(details, rec.FilmURL)
	}
	if len(details) > 0 {
		fmt.Fprintf(ics, "DESCRIPTION:%s\r\n", escapeICS(strings.Join(details, "\n")))
	}

	if rec.SessionVenue != "" && rec.SessionVenue != film.UnknownVenue {
		fmt.Fprintf(ics, "LOCATION:%s\r\n", escapeICS(rec.SessionVenue))
	}
	if rec.FilmURL != "" {
		fmt.Fprintf(ics, "URL:%s\r\n", rec.FilmURL)
	}

	ics.WriteString("STATUS:CONFIRMED\r\n")
	ics.WriteString("SEQUENCE:0\r\n")
	ics.WriteString("TRANSP:OPAQUE\r\n")
	ics.WriteString("END:VEVENT\r\n")
}

// formatICSTime formats a time.Time as an iCalendar UTC datetime string.
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// escapeICS escapes special characters per RFC 5545.
func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
