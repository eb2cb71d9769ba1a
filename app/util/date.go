package util

import (
	"fmt"
	"strings"
	"time"
)

// Accepted input layouts, tried in order. Display format first because the
// admin forms and the bulk-upload template both use DD-MM-YYYY.
var dateLayouts = []string{
	"02-01-2006",
	"2006-01-02",
}

const storageLayout = "2006-01-02"

// startOfDay normalizes any time to 00:00:00 local for date-only comparison.
func startOfDay(t time.Time) time.Time {
	localTime := t.Local()
	return time.Date(localTime.Year(), localTime.Month(), localTime.Day(), 0, 0, 0, 0, time.Local)
}

// Today returns the start of the current day in local time.
func Today() time.Time {
	return startOfDay(time.Now())
}

// ParseFlexibleDate parses a date given in DD-MM-YYYY or YYYY-MM-DD.
// Anything else is an error; unrecognized strings are never passed through.
func ParseFlexibleDate(s string) (time.Time, error) {
	s = strings.TrimSpace(strings.Trim(strings.TrimSpace(s), `"`))
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return startOfDay(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q, expected DD-MM-YYYY or YYYY-MM-DD", s)
}

// ToStorageDate normalizes either accepted input format to YYYY-MM-DD.
func ToStorageDate(s string) (string, error) {
	t, err := ParseFlexibleDate(s)
	if err != nil {
		return "", err
	}
	return t.Format(storageLayout), nil
}

// ToDisplayDate renders a date as DD-MM-YYYY for forms and tables.
func ToDisplayDate(t time.Time) string {
	return t.Format("02-01-2006")
}
