package util

import (
	"strings"
	"time"
)

// dateLayouts are the timestamp shapes the loan service has been seen to emit
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate parses an ISO date or timestamp. The second result is false when
// s is empty or in no known layout.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders an ISO date the way Indian locales print short dates
// (day/month/year, no padding). Unparseable input renders as "-".
func FormatDate(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		return "-"
	}
	return FormatTime(t)
}

// FormatTime is FormatDate for an already parsed time
func FormatTime(t time.Time) string {
	return t.Format("2/1/2006")
}

// DateOnly truncates t to midnight UTC of its calendar day
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
