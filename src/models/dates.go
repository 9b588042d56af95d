package models

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire layout for calendar dates
const DateLayout = "2006-01-02"

// CalendarDate returns midnight of t's local calendar day.
// Time-of-day carries no meaning for receivable dates.
func CalendarDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.In(time.Local).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// ParseDate parses a wire date into a local calendar date.
// Date-only values and RFC 3339 timestamps are accepted; for timestamps the
// calendar fields are taken as written so that "2024-01-10T00:00:00Z" stays
// on the 10th in every time zone.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}

	if t, err := time.ParseInLocation(DateLayout, s, time.Local); err == nil {
		return t, nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected %s or RFC 3339", s, DateLayout)
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local), nil
}

// AddDays moves a calendar date by n days using calendar arithmetic,
// so DST transitions never shift the resulting day.
func AddDays(date time.Time, n int) time.Time {
	return CalendarDate(date).AddDate(0, 0, n)
}

// BeforeDay reports whether a falls on an earlier calendar day than b
func BeforeDay(a, b time.Time) bool {
	return CalendarDate(a).Before(CalendarDate(b))
}

// WithinDays reports whether d lies in [from, to], inclusive, comparing
// calendar days. A nil bound is open.
func WithinDays(d time.Time, from, to *time.Time) bool {
	day := CalendarDate(d)
	if from != nil && day.Before(CalendarDate(*from)) {
		return false
	}
	if to != nil && day.After(CalendarDate(*to)) {
		return false
	}
	return true
}

// FormatDate renders a calendar date in DateLayout, or "" for the zero time
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}
