package domain

import (
	"fmt"
	"time"
)

// Wire layouts for calendar days and clock times.
const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// ParseDate parses a YYYY-MM-DD calendar day in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return d, nil
}

// ParseClock parses a zero-padded HH:MM clock time on a fixed reference day so
// that two clock times compare by time of day only. "9:00" is rejected: stored
// clock times are matched by string equality.
func ParseClock(s string) (time.Time, error) {
	t, err := time.Parse(ClockLayout, s)
	if err != nil || t.Format(ClockLayout) != s {
		return time.Time{}, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	return t, nil
}

// FormatDate renders t as a calendar day.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DisplayTime renders an HH:MM clock time as "9:05 AM". Malformed input is returned as is.
func DisplayTime(s string) string {
	t, err := ParseClock(s)
	if err != nil {
		return s
	}
	return t.Format("3:04 PM")
}

// SameDayOrAfter reports whether day a is not earlier than day b, ignoring time of day.
func SameDayOrAfter(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	if ay != by {
		return ay > by
	}
	if am != bm {
		return am > bm
	}
	return ad >= bd
}
