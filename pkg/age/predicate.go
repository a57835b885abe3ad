package age

import (
	"fmt"
	"time"

	"ageutil/pkg/calendar"
	dErrors "ageutil/pkg/domain-errors"
)

// BirthBounds is the inclusive range of birth dates that satisfy a Predicate.
// The oldest permitted age gives the earliest birth date, so Upper (the
// maximum-age side) is the earlier date and Lower (the minimum-age side) the
// later one. A nil bound is open.
type BirthBounds struct {
	Upper *calendar.Date
	Lower *calendar.Date
}

// Predicate is an age window evaluated on a reference date.
//
// Adjusters mutate the predicate and return it for chaining. A Predicate is
// not safe for concurrent mutation.
type Predicate struct {
	lower *Span
	upper *Span
	on    calendar.Date
}

// Of returns a predicate for the given age. With no units the predicate is
// unconstrained. Otherwise the lower bound is the given age with missing
// units as zero, and the upper bound rounds the finest given unit up:
//
//	Of(Years(5))                      // 5y0m0d up to the day before 6y
//	Of(Years(0), Months(1))           // 1 month up to the day before 2 months
//	Of(Years(5), Months(0), Days(0))  // exactly 5y0m0d
//
// The reference date defaults to today.
func Of(opts ...Unit) *Predicate {
	p := &Predicate{on: calendar.Today()}
	u := collect(opts)
	if u.empty() {
		return p
	}
	lower, upper := u.lowerSpan(), u.upperSpan()
	p.lower, p.upper = &lower, &upper
	return p
}

// On sets the reference date.
func (p *Predicate) On(d calendar.Date) *Predicate {
	p.on = d
	return p
}

// OnYMD is On for a year, month and day.
//
// Errors: CodeInvalidDate when the date does not exist.
func (p *Predicate) OnYMD(year int, month time.Month, day int) (*Predicate, error) {
	d, err := calendar.New(year, month, day)
	if err != nil {
		return nil, err
	}
	return p.On(d), nil
}

// To replaces the upper bound with the given age, rounded up as in Of.
// With no units it is equivalent to OrOlder.
func (p *Predicate) To(opts ...Unit) *Predicate {
	u := collect(opts)
	if u.empty() {
		return p.OrOlder()
	}
	upper := u.upperSpan()
	p.upper = &upper
	return p
}

// OrOlder removes the maximum age.
func (p *Predicate) OrOlder() *Predicate {
	p.upper = nil
	return p
}

// OrYounger removes the minimum age.
func (p *Predicate) OrYounger() *Predicate {
	p.lower = nil
	return p
}

// Lower returns the minimum age span, if any.
func (p *Predicate) Lower() (Span, bool) {
	if p.lower == nil {
		return Span{}, false
	}
	return *p.lower, true
}

// Upper returns the first age past the window, if any.
func (p *Predicate) Upper() (Span, bool) {
	if p.upper == nil {
		return Span{}, false
	}
	return *p.upper, true
}

func (p *Predicate) ReferenceDate() calendar.Date { return p.on }

// IsUnconstrained reports whether both bounds are open.
func (p *Predicate) IsUnconstrained() bool {
	return p.lower == nil && p.upper == nil
}

func (p *Predicate) String() string {
	lower, upper := "*", "*"
	if p.lower != nil {
		lower = p.lower.String()
	}
	if p.upper != nil {
		upper = p.upper.String()
	}
	return fmt.Sprintf("age[%s,%s) on %s", lower, upper, p.on)
}

// Range returns the birth dates satisfying the predicate on its reference
// date.
//
// Errors: CodeInvalidArgument when no reference date is set;
// CodeInvalidDate when the reference date is Feb 29 and a bound lands in a
// non-leap year.
func (p *Predicate) Range() (BirthBounds, error) {
	if p.on.IsZero() {
		return BirthBounds{}, dErrors.New(dErrors.CodeInvalidArgument, "reference date is required")
	}
	var bounds BirthBounds
	if p.lower != nil {
		d, err := birthBound(p.on, *p.lower)
		if err != nil {
			return BirthBounds{}, err
		}
		bounds.Lower = &d
	}
	if p.upper != nil {
		d, err := birthBound(p.on, *p.upper)
		if err != nil {
			return BirthBounds{}, err
		}
		bounds.Upper = &d
	}
	return bounds, nil
}

// birthBound is the birth date of someone aged exactly s on on.
func birthBound(on calendar.Date, s Span) (calendar.Date, error) {
	d, err := calendar.New(on.Year()-s.Years, on.Month(), on.Day())
	if err != nil {
		return calendar.Date{}, dErrors.Wrap(err, dErrors.CodeInvalidDate,
			fmt.Sprintf("no birth date %d years before %s", s.Years, on))
	}
	d = d.AddDays(-s.dayOffset())
	return calendar.AddMonths(d, -s.Months), nil
}

// Check reports whether someone born on d satisfies the predicate on its
// reference date. Both bounds are inclusive.
//
// Errors: CodeInvalidArgument for a zero d, plus any error from Range.
func (p *Predicate) Check(d calendar.Date) (bool, error) {
	if d.IsZero() {
		return false, dErrors.New(dErrors.CodeInvalidArgument, "date cannot be empty")
	}
	bounds, err := p.Range()
	if err != nil {
		return false, err
	}
	return bounds.Contains(d), nil
}

// Contains is Check without the error: it returns false whenever Check fails.
func (p *Predicate) Contains(d calendar.Date) bool {
	ok, err := p.Check(d)
	return err == nil && ok
}

// Contains reports whether d lies within the bounds.
func (b BirthBounds) Contains(d calendar.Date) bool {
	return (b.Upper == nil || !d.Before(*b.Upper)) && (b.Lower == nil || !d.After(*b.Lower))
}
