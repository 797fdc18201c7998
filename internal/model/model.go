package model

import (
	"fmt"
	"time"
)

// IsoLayout is the on-disk representation of a Date (YYYY-MM-DD).
const IsoLayout = "2006-01-02"

// Years that IsoLayout can write and read back.
const (
	MinStoredYear = 0
	MaxStoredYear = 9999
)

// Date is a calendar date without a time component.
//
// The zero value is not a valid date; construct dates with NewDate,
// ParseDate or FromTime.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// InvalidDateError is returned when a (year, month, day) triple does not
// name a real calendar date.
type InvalidDateError struct {
	Year  int
	Month int
	Day   int
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date: year=%d month=%d day=%d", e.Year, e.Month, e.Day)
}

// NewDate validates and returns the given date.
func NewDate(year int, month time.Month, day int) (Date, error) {
	if month < time.January || month > time.December {
		return Date{}, &InvalidDateError{Year: year, Month: int(month), Day: day}
	}
	if day < 1 || day > DaysIn(year, month) {
		return Date{}, &InvalidDateError{Year: year, Month: int(month), Day: day}
	}
	return Date{Year: year, Month: month, Day: day}, nil
}

// Storable reports whether d survives a String/ParseDate round trip.
func (d Date) Storable() bool {
	return d.Year >= MinStoredYear && d.Year <= MaxStoredYear
}

// ParseDate parses an ISO-8601 date string (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(IsoLayout, s)
	if err != nil {
		return Date{}, err
	}
	return FromTime(t), nil
}

// FromTime truncates t to its date in t's own location.
func FromTime(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Today returns the current local date.
func Today() Date {
	return FromTime(time.Now())
}

// DaysIn returns the number of days in the given month, honouring leap years.
func DaysIn(year int, month time.Month) int {
	// Day 0 of the following month normalizes to the last day of this one.
	return time.Date(year, month+1, 0, 12, 0, 0, 0, time.UTC).Day()
}

// Time returns the date at noon UTC, which keeps formatting stable.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 12, 0, 0, 0, time.UTC)
}

// Weekday returns the ISO weekday index, Monday=0 ... Sunday=6.
func (d Date) Weekday() int {
	return (int(d.Time().Weekday()) + 6) % 7
}

func (d Date) String() string {
	return d.Time().Format(IsoLayout)
}

// Event is a single named entry on a date.
type Event struct {
	Date Date
	Name string
}
