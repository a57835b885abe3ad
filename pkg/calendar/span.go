package calendar

import "fmt"

// MonthSpan is a calendar difference expressed as whole months plus a day
// remainder. Days is never negative and is always shorter than the month the
// remainder fell into.
type MonthSpan struct {
	Months int
	Days   int
}

func (s MonthSpan) String() string {
	return fmt.Sprintf("%dm%dd", s.Months, s.Days)
}

// Diff returns the span from a to b. Months is negative when b is before a;
// Days is the same for Diff(a, b) and Diff(b, a).
//
// Whole months are counted from the earlier date's month: each month is
// consumed only once its full length in days has elapsed. Diff is empty when
// either date is the zero Date.
func Diff(a, b Date) MonthSpan {
	if a.IsZero() || b.IsZero() {
		return MonthSpan{}
	}
	days := b.DaysSince(a)
	if days == 0 {
		return MonthSpan{}
	}
	sign := 1
	if days < 0 {
		sign, days = -1, -days
	}

	lo := Earliest(a, b)
	year, month := lo.year, lo.month
	months := 0
	for {
		n := DaysInMonth(year, month)
		if days < n {
			break
		}
		days -= n
		year, month = nextMonth(year, month)
		months++
	}
	return MonthSpan{Months: months * sign, Days: days}
}

// AddMonths shifts d by months whole months, one month at a time.
//
// Moving forward adds the length of d's current month at each step; moving
// backward subtracts the length of the preceding month. The result therefore
// keeps the day-of-month only when no shorter month is crossed, and
// AddMonths(AddMonths(d, n), -n) is not always d. The zero Date is returned
// unchanged.
func AddMonths(d Date, months int) Date {
	if d.IsZero() {
		return d
	}
	for ; months > 0; months-- {
		d = d.AddDays(DaysInMonth(d.year, d.month))
	}
	for ; months < 0; months++ {
		year, month := previousMonth(d.year, d.month)
		d = d.AddDays(-DaysInMonth(year, month))
	}
	return d
}
