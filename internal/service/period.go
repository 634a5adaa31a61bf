package service

import (
	"errors"
	"fmt"
	"time"
)

// Period is a calendar window used for aggregate billing review.
type Period string

const (
	PeriodDay       Period = "day"
	PeriodWeek      Period = "week"
	PeriodFortnight Period = "fortnight"
	PeriodMonth     Period = "month"
)

var ErrUnknownPeriod = errors.New("unknown period")

// ParsePeriod validates a user-entered period keyword.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodDay, PeriodWeek, PeriodFortnight, PeriodMonth:
		return Period(s), nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownPeriod)
}

// PeriodBounds computes the half-open window [start, end) containing the
// given date. Weeks begin on Monday, so a Sunday date belongs to the week
// that started six days earlier. A fortnight is the previous ISO week plus
// the current one. A month runs to one second before the next first.
func PeriodBounds(p Period, date time.Time) (time.Time, time.Time) {
	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	switch p {
	case PeriodDay:
		return midnight, midnight.Add(24 * time.Hour)
	case PeriodWeek:
		start := mondayOnOrBefore(midnight)
		return start, start.AddDate(0, 0, 7)
	case PeriodFortnight:
		start := mondayOnOrBefore(midnight).AddDate(0, 0, -7)
		return start, start.AddDate(0, 0, 14)
	case PeriodMonth:
		first := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
		return first, first.AddDate(0, 1, 0).Add(-time.Second)
	}
	return midnight, midnight
}

func mondayOnOrBefore(midnight time.Time) time.Time {
	offset := (int(midnight.Weekday()) + 6) % 7
	return midnight.AddDate(0, 0, -offset)
}
