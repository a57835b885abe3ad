package age

import (
	"time"

	"ageutil/pkg/calendar"
	dErrors "ageutil/pkg/domain-errors"
)

const daysPerYear = 365

// Window is the span of calendar dates during which a person falls inside a
// Predicate's age window. Lower is the first qualifying date and Upper the
// last; a nil end is open.
type Window struct {
	Lower *calendar.Date
	Upper *calendar.Date
}

// Calculator computes ages for one date of birth. It is not safe for
// concurrent mutation.
type Calculator struct {
	dob calendar.Date
	on  calendar.Date
}

// DateOfBirth returns a calculator for dob with today as the reference date.
//
// Errors: CodeInvalidArgument for a zero dob.
func DateOfBirth(dob calendar.Date) (*Calculator, error) {
	if dob.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidArgument, "date of birth is required")
	}
	return &Calculator{dob: dob, on: calendar.Today()}, nil
}

// DateOfBirthYMD is DateOfBirth for a year, month and day.
//
// Errors: CodeInvalidDate when the date does not exist.
func DateOfBirthYMD(year int, month time.Month, day int) (*Calculator, error) {
	dob, err := calendar.New(year, month, day)
	if err != nil {
		return nil, err
	}
	return DateOfBirth(dob)
}

// On sets the reference date. A zero d is accepted here and reported by the
// Age methods.
func (c *Calculator) On(d calendar.Date) *Calculator {
	c.on = d
	return c
}

// OnYMD is On for a year, month and day.
//
// Errors: CodeInvalidDate when the date does not exist.
func (c *Calculator) OnYMD(year int, month time.Month, day int) (*Calculator, error) {
	d, err := calendar.New(year, month, day)
	if err != nil {
		return nil, err
	}
	return c.On(d), nil
}

func (c *Calculator) DateOfBirth() calendar.Date   { return c.dob }
func (c *Calculator) ReferenceDate() calendar.Date { return c.on }

// Age returns whole years as elapsed days divided by 365. This ignores leap
// days, so around a birthday it can be one year ahead of the calendar age.
//
// Errors: CodeInvalidArgument when the reference date is the zero Date.
func (c *Calculator) Age() (int, error) {
	if err := c.checkReference(); err != nil {
		return 0, err
	}
	return floorDiv(c.on.DaysSince(c.dob), daysPerYear), nil
}

// AgeYM returns Age and the months past the last whole calendar year.
func (c *Calculator) AgeYM() (years, months int, err error) {
	years, months, _, err = c.AgeYMD()
	return years, months, err
}

// AgeYMD returns Age, the months past the last whole calendar year and the
// remaining days.
func (c *Calculator) AgeYMD() (years, months, days int, err error) {
	years, err = c.Age()
	if err != nil {
		return 0, 0, 0, err
	}
	span := calendar.Diff(c.dob, c.on)
	return years, floorMod(span.Months, 12), span.Days, nil
}

func (c *Calculator) checkReference() error {
	if c.on.IsZero() {
		return dErrors.New(dErrors.CodeInvalidArgument, "reference date is required")
	}
	return nil
}

// RangeFor returns the dates on which this person satisfies p. The reference
// date of p is not used. A nil p is unconstrained.
func (c *Calculator) RangeFor(p *Predicate) Window {
	var w Window
	if p == nil {
		return w
	}
	if p.lower != nil {
		d := c.dateAt(*p.lower)
		w.Lower = &d
	}
	if p.upper != nil {
		d := c.dateAt(*p.upper)
		w.Upper = &d
	}
	return w
}

// dateAt is the date on which this person reaches age s.
func (c *Calculator) dateAt(s Span) calendar.Date {
	return calendar.AddMonths(c.dob, s.totalMonths()).AddDays(s.dayOffset())
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}
