package util

import (
	"fmt"
	"strings"
	"time"
)

var loc = time.FixedZone("Asia/Kolkata", 5*3600+1800)

// Clock returns the current time. Services take one so tests can pin "now".
type Clock func() time.Time

func SetLocation(l *time.Location) {
	loc = l
}

func Location() *time.Location {
	return loc
}

func Now() time.Time {
	return time.Now().In(loc)
}

// ParseGroupExpiry combines the stored expiryDate (YYYY-MM-DD) and expiryTime (HH:MM).
// A group without an expiry date never expires; a missing time means end of day.
func ParseGroupExpiry(date, clock string) (time.Time, bool, error) {
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)
	if date == "" {
		return time.Time{}, false, nil
	}

	if clock == "" {
		d, err := time.ParseInLocation("2006-01-02", date, loc)
		if err != nil {
			return time.Time{}, false, fmt.Errorf("invalid expiry date %q", date)
		}
		return endOfDay(d), true, nil
	}

	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, loc)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("invalid expiry %q %q", date, clock)
	}
	return t, true, nil
}

// ParseDeadline accepts "YYYY-MM-DD HH:MM", "YYYY-MM-DD" (end of that day) or RFC3339.
func ParseDeadline(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	if t, err := time.ParseInLocation("2006-01-02 15:04", s, loc); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04", s, loc); err == nil {
		return t, nil
	}
	if d, err := time.ParseInLocation("2006-01-02", s, loc); err == nil {
		return endOfDay(d), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("cannot parse deadline %q", s)
}

func endOfDay(d time.Time) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, 23, 59, 59, 0, d.Location())
}
