// Package dateutil handles the YYYY-MM-DD calendar dates used throughout
// the stored document. The format is zero-padded and ISO-ordered, so
// plain string comparison sorts dates correctly.
package dateutil

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Layout is the wire format for calendar dates.
const Layout = "2006-01-02"

// Parse parses a YYYY-MM-DD date.
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// Valid reports whether s is a well-formed YYYY-MM-DD date.
func Valid(s string) bool {
	_, err := time.Parse(Layout, s)
	return err == nil
}

// YearOf returns the "YYYY" part of a date string.
func YearOf(date string) string {
	if len(date) < 4 {
		return ""
	}
	return date[:4]
}

// MonthOf returns the "MM" part of a date string.
func MonthOf(date string) string {
	if len(date) < 7 {
		return ""
	}
	return date[5:7]
}

// InYear reports whether the date falls in the given "YYYY" year.
func InYear(date, year string) bool {
	return strings.HasPrefix(date, year)
}

// Weekday returns the weekday name ("Monday", ...) for a date.
func Weekday(date string) (string, error) {
	t, err := Parse(date)
	if err != nil {
		return "", err
	}
	return t.Weekday().String(), nil
}

// CountDays returns the inclusive day count of a date range: both
// endpoints count, so a single-day range is 1. The end date must not
// precede the start date.
func CountDays(start, end string) (int, error) {
	from, err := Parse(start)
	if err != nil {
		return 0, err
	}
	to, err := Parse(end)
	if err != nil {
		return 0, err
	}
	if to.Before(from) {
		return 0, fmt.Errorf("end date %s precedes start date %s", end, start)
	}
	return int(math.Ceil(to.Sub(from).Hours()/24)) + 1, nil
}
