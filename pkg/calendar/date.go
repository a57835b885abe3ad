// Package calendar provides whole-day Gregorian dates and the month
// arithmetic used for age calculations.
//
// Dates carry no time of day and no location. All conversions to and from
// time.Time happen at midnight UTC.
package calendar

import (
	"fmt"
	"time"

	dErrors "ageutil/pkg/domain-errors"
)

// ISOLayout is the textual form of a Date.
const ISOLayout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

// now is swapped in tests so Today is deterministic.
var now = time.Now

// Date is an immutable, valid Gregorian calendar date.
// The zero value is not a valid date and is used to mean "no date".
type Date struct {
	year  int
	month time.Month
	day   int
}

// New returns the date for year, month and day.
//
// Errors: returns CodeInvalidDate when month is outside 1-12 or day does not
// exist in that month.
func New(year int, month time.Month, day int) (Date, error) {
	if month < time.January || month > time.December {
		return Date{}, dErrors.New(dErrors.CodeInvalidDate,
			fmt.Sprintf("invalid date %04d-%02d-%02d: month out of range", year, int(month), day))
	}
	if day < 1 || day > DaysInMonth(year, month) {
		return Date{}, dErrors.New(dErrors.CodeInvalidDate,
			fmt.Sprintf("invalid date %04d-%02d-%02d: day out of range", year, int(month), day))
	}
	return Date{year: year, month: month, day: day}, nil
}

// MustNew is like New but panics on an invalid date. It is intended for
// literals in tests and static tables.
func MustNew(year int, month time.Month, day int) Date {
	d, err := New(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// FromTime returns the calendar date of t in t's location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{year: y, month: m, day: d}
}

// Today returns the current local date.
func Today() Date {
	return FromTime(now())
}

// Parse parses a date in ISO 8601 calendar form (2006-01-02).
//
// Errors: returns CodeInvalidDate for malformed or impossible dates.
func Parse(s string) (Date, error) {
	t, err := time.Parse(ISOLayout, s)
	if err != nil {
		return Date{}, dErrors.Wrap(err, dErrors.CodeInvalidDate, fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", s))
	}
	return FromTime(t), nil
}

func (d Date) Year() int         { return d.year }
func (d Date) Month() time.Month { return d.month }
func (d Date) Day() int          { return d.day }

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Time returns midnight UTC on d.
func (d Date) Time() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or
// after o.
func (d Date) Compare(o Date) int {
	switch {
	case d.year != o.year:
		return cmpInt(d.year, o.year)
	case d.month != o.month:
		return cmpInt(int(d.month), int(o.month))
	default:
		return cmpInt(d.day, o.day)
	}
}

func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }
func (d Date) After(o Date) bool  { return d.Compare(o) > 0 }

// AddDays returns the date n days after d; n may be negative.
func (d Date) AddDays(n int) Date {
	return FromTime(time.Date(d.year, d.month, d.day+n, 0, 0, 0, 0, time.UTC))
}

// DaysSince returns the number of days from o to d, negative when d is
// before o.
func (d Date) DaysSince(o Date) int {
	return int((d.Time().Unix() - o.Time().Unix()) / secondsPerDay)
}

// MarshalText implements encoding.TextMarshaler using ISOLayout.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Empty input yields the
// zero Date.
func (d *Date) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Earliest returns the earlier of a and b.
func Earliest(a, b Date) Date {
	if b.Before(a) {
		return b
	}
	return a
}

// Latest returns the later of a and b.
func Latest(a, b Date) Date {
	if b.After(a) {
		return b
	}
	return a
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
