package timeutil

import (
	"fmt"
	"regexp"
	"time"
)

// LayoutDateKey is the YYYY-MM-DD form used as the primary key for journal
// days.
const LayoutDateKey = "2006-01-02"

var dateKeyPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ToDateKey renders the calendar day of v in local time.
func ToDateKey(v time.Time) string {
	return v.Local().Format(LayoutDateKey)
}

// ParseDateKey returns local midnight for a YYYY-MM-DD key. Parsing in the
// local location keeps the day stable across timezones; parsing the key as
// UTC can shift the calendar day for users west of Greenwich.
func ParseDateKey(key string) (time.Time, error) {
	if !dateKeyPattern.MatchString(key) {
		return time.Time{}, fmt.Errorf("invalid date key %q, want YYYY-MM-DD", key)
	}
	t, err := time.ParseInLocation(LayoutDateKey, key, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date key %q: %w", key, err)
	}
	return t, nil
}

// ValidDateKey reports whether key parses as a calendar day.
func ValidDateKey(key string) bool {
	_, err := ParseDateKey(key)
	return err == nil
}
