package util

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// MinutesBetween returns the signed distance t2-t1 in minutes between two
// "HH:MM" clock strings. Malformed components count as zero so that a bad
// record can never abort a batch.
func MinutesBetween(t1, t2 string) int {
	h1, m1 := splitClock(t1)
	h2, m2 := splitClock(t2)
	return (h2-h1)*60 + m2 - m1
}

func splitClock(t string) (hour, minute int) {
	parts := strings.SplitN(t, ":", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	hour, _ = strconv.Atoi(parts[0])
	minute, _ = strconv.Atoi(parts[1])
	return hour, minute
}

// MinuteOfDay converts a "HH:MM" clock string to minutes since midnight.
func MinuteOfDay(t string) int {
	h, m := splitClock(t)
	return h*60 + m
}

// Round1 rounds to one decimal place, matching the precision of the
// rendered table cells.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Weekday returns the weekday name for an ISO "YYYY-MM-DD" date, or an
// empty string when the date does not parse.
func Weekday(date string) string {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return ""
	}
	return d.Weekday().String()
}

// IsWeekend reports whether the ISO date falls on a Saturday or Sunday.
func IsWeekend(date string) bool {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return false
	}
	return d.Weekday() == time.Saturday || d.Weekday() == time.Sunday
}

// ValidDate reports whether the string is a well-formed ISO date.
func ValidDate(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}
