package util

import (
	"strconv"
	"strings"
	"time"
)

// ParsePeriod parses provider period labels. Supported forms are
// month-year labels ("Mar 2024"), fiscal years ("FY2024") and bare years.
// Returns (t, true) if any form matched.
func ParsePeriod(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse("Jan 2006", s); err == nil {
		return t, true
	}
	if t, err := time.Parse("January 2006", s); err == nil {
		return t, true
	}

	rest := s
	if len(s) > 2 && strings.EqualFold(s[:2], "FY") {
		rest = strings.TrimSpace(s[2:])
	}
	if y, err := strconv.Atoi(rest); err == nil && y >= 1900 && y <= 2200 {
		// fiscal years compare by their closing month
		return time.Date(y, time.March, 31, 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

// MostRecentFirst reports whether the labels are ordered newest to oldest.
// Labels that do not parse are skipped.
func MostRecentFirst(labels []string) bool {
	var prev time.Time
	seen := false
	for _, l := range labels {
		t, ok := ParsePeriod(l)
		if !ok {
			continue
		}
		if seen && t.After(prev) {
			return false
		}
		prev, seen = t, true
	}
	return true
}
