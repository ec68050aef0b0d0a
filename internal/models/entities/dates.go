package entities

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"Jan 2, 2006",
	"2 Jan 2006",
}

// ParseDate accepts the date layouts found in roster spreadsheets.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%q is not a recognised date", s)
}

// ParseAmount parses a non-negative currency amount, allowing thousands separators.
func ParseAmount(s string) (float64, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if clean == "" {
		return 0, fmt.Errorf("empty amount")
	}
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if v < 0 {
		return 0, fmt.Errorf("%q is negative", s)
	}
	return v, nil
}

// FormatAmount renders an amount without a trailing fraction when it is whole.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// InclusiveDays counts calendar days from start to end, both included.
// An end before start yields zero or a negative count.
func InclusiveDays(start, end time.Time) int {
	days := math.Floor(end.Sub(start).Hours() / 24)
	return int(days) + 1
}
