package utils

import (
	"time"

	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

// DaysInMonth returns the number of days in the given month of the proleptic
// Gregorian calendar.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the following month normalises to the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DaysInPreviousMonth returns the length of the calendar month before t's month.
func DaysInPreviousMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month(), 0, 0, 0, 0, 0, time.UTC).Day()
}

// DateOnly truncates t to midnight of its calendar date, keeping t's location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// CivilBefore reports whether the calendar date of a falls before that of b,
// ignoring time of day and location.
func CivilBefore(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	if ay != by {
		return ay < by
	}
	if am != bm {
		return am < bm
	}
	return ad < bd
}

// MonthsAndDaysBetween returns the whole calendar months and remainder days from
// start to end. When end's day of month is before start's, one month is given
// back and the days are borrowed from the calendar month preceding end. A start
// day that month does not have (e.g. the 31st) borrows nothing until end passes
// it, so days never run backwards within a month.
func MonthsAndDaysBetween(start, end time.Time) (months int, days int) {
	months = (end.Year()-start.Year())*12 + int(end.Month()-start.Month())

	startDay := start.Day()
	endDay := end.Day()
	if endDay >= startDay {
		return months, endDay - startDay
	}

	months--
	days = DaysInPreviousMonth(end) - startDay + endDay
	if days < 0 {
		days = 0
	}
	return months, days
}

// AddMonths adds n calendar months to t, clamping to the last day of the target
// month instead of overflowing into the next one (Jan 31 + 1 = Feb 28/29).
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := DaysInMonth(first.Year(), first.Month()); d > last {
		d = last
	}
	return first.AddDate(0, 0, d-1)
}

// DaysBetween returns the number of whole calendar days from start to end.
func DaysBetween(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours() / 24)
}

// ParseDate parses a YYYY-MM-DD date in UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// SimpleInterest returns principal * ratePercent * months / 100 rounded to two
// decimal places.
func SimpleInterest(principal, ratePercent decimal.Decimal, months int64) decimal.Decimal {
	return principal.
		Mul(ratePercent).
		Mul(decimal.NewFromInt(months)).
		Div(decimal.NewFromInt(100)).
		Round(2)
}
