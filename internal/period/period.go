// Package period resolves query parameters into closed reporting windows.
//
// Every window is inclusive on both ends: Start is 00:00:00.000 of its first
// day and End is 23:59:59.999 of its last day, both in the supplied location.
package period

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"resto-backend/internal/apperr"
	"resto-backend/internal/timeutil"
)

// Range is a closed [Start, End] reporting window.
type Range struct {
	Start time.Time
	End   time.Time
}

// Days returns the number of calendar days the range covers.
func (r Range) Days() int {
	n := 0
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		n++
	}
	return n
}

// MonthToken is the YYYY-MM label of the month Start falls in.
func (r Range) MonthToken() string {
	return r.Start.Format(timeutil.MonthLayout)
}

// Contains reports whether t falls inside the window.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// ParseMonth parses a YYYY-MM token into the year and month it names.
func ParseMonth(token string) (int, time.Month, error) {
	parts := strings.Split(strings.TrimSpace(token), "-")
	if len(parts) != 2 {
		return 0, 0, &apperr.ValidationError{Message: fmt.Sprintf("invalid month %q, expected YYYY-MM", token)}
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, &apperr.ValidationError{Message: fmt.Sprintf("invalid month %q, expected YYYY-MM", token), Err: err}
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, &apperr.ValidationError{Message: fmt.Sprintf("invalid month %q, expected YYYY-MM", token), Err: err}
	}
	if month < 1 || month > 12 || year < 1 {
		return 0, 0, &apperr.ValidationError{Message: fmt.Sprintf("invalid month %q, expected YYYY-MM", token)}
	}
	return year, time.Month(month), nil
}

// Month returns the full calendar month. End is day 0 of the following month.
func Month(year int, month time.Month, loc *time.Location) Range {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, loc)
	return Range{Start: start, End: timeutil.EndOfDay(last)}
}

// FromMonthToken parses token and returns that month's range.
func FromMonthToken(token string, loc *time.Location) (Range, error) {
	year, month, err := ParseMonth(token)
	if err != nil {
		return Range{}, err
	}
	return Month(year, month, loc), nil
}

// LastDays returns the n-day window ending at the end of now's day.
func LastDays(now time.Time, n int) Range {
	if n < 1 {
		n = 1
	}
	end := timeutil.EndOfDay(now)
	start := timeutil.StartOfDay(now).AddDate(0, 0, -(n - 1))
	return Range{Start: start, End: end}
}

// PreviousMonth returns the calendar month immediately preceding r.Start.
func PreviousMonth(r Range) Range {
	prev := r.Start.AddDate(0, 0, -r.Start.Day()+1).AddDate(0, -1, 0)
	return Month(prev.Year(), prev.Month(), r.Start.Location())
}

// Day returns the single-day window for a YYYY-MM-DD date.
func Day(date string, loc *time.Location) (Range, error) {
	d, err := time.ParseInLocation(timeutil.DateLayout, strings.TrimSpace(date), loc)
	if err != nil {
		return Range{}, &apperr.ValidationError{Message: fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", date), Err: err}
	}
	return Range{Start: timeutil.StartOfDay(d), End: timeutil.EndOfDay(d)}, nil
}

// MonthOrLastDays resolves an optional month token, falling back to the
// trailing window of defaultDays ending today.
func MonthOrLastDays(token string, now time.Time, defaultDays int) (Range, error) {
	if strings.TrimSpace(token) == "" {
		return LastDays(now, defaultDays), nil
	}
	return FromMonthToken(token, now.Location())
}
