// Package expiry implements card expiration date rules. A card is considered
// valid through the last instant of its expiry month.
package expiry

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// NormalizeYear maps a two-digit year onto 2000..2099. Four-digit years pass
// through unchanged.
func NormalizeYear(year int) int {
	if year >= 0 && year < 100 {
		return 2000 + year
	}
	return year
}

// EndOfMonth returns the last instant of the given month in loc.
func EndOfMonth(month, year int, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	firstNext := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc).AddDate(0, 1, 0)
	return firstNext.Add(-time.Nanosecond)
}

// ValidAt reports whether a card expiring month/year is still valid at now.
// Months outside 01..12 are invalid; two-digit years are taken as 2000+year.
func ValidAt(month, year int, now time.Time) bool {
	if month < 1 || month > 12 {
		return false
	}
	end := EndOfMonth(month, NormalizeYear(year), now.Location())
	return !now.After(end)
}

// ParseCardFace accepts "MM/YY" or "MMYY" and returns the month and two-digit
// year as integers.
func ParseCardFace(in string) (month, year int, err error) {
	s := strings.ReplaceAll(strings.TrimSpace(in), "/", "")
	if len(s) != 4 {
		return 0, 0, fmt.Errorf("card face must be MM/YY or MMYY")
	}
	for i := 0; i < 4; i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, 0, fmt.Errorf("card face must be digits")
		}
	}
	month, _ = strconv.Atoi(s[:2])
	if month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("month must be 01..12")
	}
	year, _ = strconv.Atoi(s[2:])
	return month, year, nil
}
