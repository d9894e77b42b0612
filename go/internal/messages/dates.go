// Package messages handles message text with embedded proposed dates and
// per-team unread counts.
package messages

import (
	"fmt"
	"strings"
	"time"
)

const (
	datesHeader = "\n\n📅 Proposed Dates:\n"
	bullet      = "• "
	dateLayout  = "Monday, January 2"
	yearLayout  = "Monday, January 2, 2006"
)

// Parsed is a message split into its text and embedded date labels
type Parsed struct {
	Text     string   `json:"message_text"`
	Dates    []string `json:"embedded_dates"`
	HasDates bool     `json:"has_embedded_dates"`
}

// FormatDate renders a date relative to now: Today, Tomorrow, or a long date
// with the year only when it differs from now's
func FormatDate(date, now time.Time) string {
	date = date.In(now.Location())
	switch {
	case sameDay(date, now):
		return "Today"
	case sameDay(date, now.AddDate(0, 0, 1)):
		return "Tomorrow"
	case date.Year() != now.Year():
		return date.Format(yearLayout)
	default:
		return date.Format(dateLayout)
	}
}

// FormatWithDates appends a proposed dates section to text
func FormatWithDates(text string, dates []time.Time, now time.Time) string {
	if len(dates) == 0 {
		return text
	}
	lines := make([]string, len(dates))
	for i, d := range dates {
		lines[i] = bullet + FormatDate(d, now)
	}
	return text + datesHeader + strings.Join(lines, "\n")
}

// ParseWithDates splits a message produced by FormatWithDates
func ParseWithDates(full string) Parsed {
	idx := strings.Index(full, datesHeader)
	if idx < 0 {
		return Parsed{Text: full}
	}

	var dates []string
	rest := full[idx+len(datesHeader):]
	consumed := 0
	for _, line := range strings.SplitAfter(rest, "\n") {
		trimmed := strings.TrimSuffix(line, "\n")
		if !strings.HasPrefix(trimmed, bullet) || strings.TrimSpace(strings.TrimPrefix(trimmed, bullet)) == "" {
			break
		}
		dates = append(dates, strings.TrimSpace(strings.TrimPrefix(trimmed, bullet)))
		consumed += len(line)
	}
	if len(dates) == 0 {
		return Parsed{Text: full}
	}

	text := full[:idx] + rest[consumed:]
	return Parsed{
		Text:     strings.TrimSpace(text),
		Dates:    dates,
		HasDates: true,
	}
}

// ParseDates turns date labels back into times. Labels that cannot be read are skipped.
func ParseDates(labels []string, now time.Time) []time.Time {
	var out []time.Time
	for _, label := range labels {
		switch strings.ToLower(strings.TrimSpace(label)) {
		case "today":
			out = append(out, startOfDay(now))
			continue
		case "tomorrow":
			out = append(out, startOfDay(now.AddDate(0, 0, 1)))
			continue
		}
		if t, err := time.ParseInLocation(yearLayout, label, now.Location()); err == nil {
			out = append(out, t)
			continue
		}
		if t, err := time.ParseInLocation(dateLayout, label, now.Location()); err == nil {
			out = append(out, time.Date(now.Year(), t.Month(), t.Day(), 0, 0, 0, 0, now.Location()))
			continue
		}
		if t, err := time.ParseInLocation("2006-01-02", label, now.Location()); err == nil {
			out = append(out, t)
		}
	}
	return out
}

// Preview is a one-line summary noting how many dates are attached
func Preview(text string, dateCount int) string {
	switch {
	case dateCount <= 0:
		return text
	case dateCount == 1:
		return text + " (includes 1 date)"
	default:
		return fmt.Sprintf("%s (includes %d dates)", text, dateCount)
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
