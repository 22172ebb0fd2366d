package domain

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date pins a calendar date to UTC midnight. Fio reports carry no
// time-of-day, so every date in the domain model goes through this.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Today returns the current UTC calendar date.
func Today() time.Time {
	now := time.Now().UTC()
	return Date(now.Date())
}

// ParseDate reads a Fio date value. The API suffixes dates with a zone
// offset ("2023-01-02+0000") which carries no information; only the
// first ten characters matter.
func ParseDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if len(s) > len(dateLayout) {
		s = s[:len(dateLayout)]
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", raw)
	}
	return t, nil
}

// FormatDate renders a date the way Fio request paths expect it.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}
