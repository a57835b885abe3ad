// Package age computes ages and age-based date windows relative to a date of
// birth.
//
// A Predicate describes an age window such as "5 years old" or "21 to 22" and
// turns it into the range of birth dates satisfying it on a reference date. A
// Calculator holds one date of birth and reports the exact age on a reference
// date, or the calendar dates during which that person falls inside a
// Predicate's window.
//
// Example:
//
//	p := age.Of(age.Years(5)).On(calendar.MustNew(1972, time.June, 16))
//	bounds, _ := p.Range() // born 1966-06-17 through 1967-06-16
package age

import (
	"fmt"
	"strings"
)

// Span is a relative age offset.
//
// ThroughMonthEnd marks an upper bound that runs through the last day of the
// computed month rather than ending on a fixed day; Days is ignored when it is
// set.
type Span struct {
	Years           int
	Months          int
	Days            int
	ThroughMonthEnd bool
}

// dayOffset is the signed day shift applied after whole months.
func (s Span) dayOffset() int {
	if s.ThroughMonthEnd {
		return -1
	}
	return s.Days
}

func (s Span) totalMonths() int {
	return s.Years*12 + s.Months
}

func (s Span) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%dy%dm", s.Years, s.Months)
	if s.ThroughMonthEnd {
		b.WriteString("-eom")
	} else {
		fmt.Fprintf(&b, "%dd", s.Days)
	}
	return b.String()
}

// Unit sets one component of an age given to Of or Predicate.To. Components
// that are not given are treated differently from zero: see Of.
type Unit func(*units)

type units struct {
	years, months, days *int
}

// Years sets the year component.
func Years(n int) Unit {
	return func(u *units) { u.years = &n }
}

// Months sets the month component.
func Months(n int) Unit {
	return func(u *units) { u.months = &n }
}

// Days sets the day component.
func Days(n int) Unit {
	return func(u *units) { u.days = &n }
}

func collect(opts []Unit) units {
	var u units
	for _, opt := range opts {
		opt(&u)
	}
	return u
}

func (u units) empty() bool {
	return u.years == nil && u.months == nil && u.days == nil
}

func valueOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

// lowerSpan is the youngest age inside the window: unset components are zero.
func (u units) lowerSpan() Span {
	return Span{
		Years:  valueOr(u.years, 0),
		Months: valueOr(u.months, 0),
		Days:   valueOr(u.days, 0),
	}
}

// upperSpan is the first age past the window. The finest unit that was given
// is rounded up to the next boundary, so "5 years" runs until the day before
// turning 6 and "5 years 3 months" until the day before 5 years 4 months.
func (u units) upperSpan() Span {
	s := Span{
		Years:  valueOr(u.years, 0),
		Months: valueOr(u.months, 0),
	}
	if u.years != nil && u.months == nil {
		s.Years++
	}
	if u.months != nil && u.days == nil {
		s.Months++
	}
	if u.days != nil {
		s.Days = *u.days
	} else {
		s.ThroughMonthEnd = true
	}
	return s
}
