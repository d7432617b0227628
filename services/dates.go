package services

import (
	"math"
	"time"
)

// Date layouts accepted from user input, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"02 Jan 2006",
	"Jan 2, 2006",
}

func parseDate(input string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, input); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &InvalidDateError{Input: input}
}

// NormalizeDate converts an arbitrary date string into canonical
// YYYY-MM-DD form. Already-canonical input passes through unchanged.
func NormalizeDate(input string) (string, error) {
	t, err := parseDate(input)
	if err != nil {
		return "", err
	}
	return t.Format("2006-01-02"), nil
}

// DaysBetween returns the absolute day-count difference between two dates,
// rounding any partial day up to a whole day. It does not enforce ordering;
// callers validate end > start themselves.
func DaysBetween(start, end string) (int, error) {
	s, err := parseDate(start)
	if err != nil {
		return 0, err
	}
	e, err := parseDate(end)
	if err != nil {
		return 0, err
	}
	hours := math.Abs(e.Sub(s).Hours())
	return int(math.Ceil(hours / 24)), nil
}
