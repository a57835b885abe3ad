package calendar

import "time"

var daysInMonth = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// IsLeap reports whether year is a leap year in the proleptic Gregorian calendar.
func IsLeap(year int) bool {
	return year%4 == 0 && year%100 != 0 || year%400 == 0
}

// DaysInMonth returns the number of days in month of year, or 0 when month
// is outside January through December.
func DaysInMonth(year int, month time.Month) int {
	if month < time.January || month > time.December {
		return 0
	}
	if month == time.February && IsLeap(year) {
		return 29
	}
	return daysInMonth[month-1]
}

// nextMonth returns the year and month following year/month.
func nextMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}

// previousMonth returns the year and month preceding year/month.
func previousMonth(year int, month time.Month) (int, time.Month) {
	if month == time.January {
		return year - 1, time.December
	}
	return year, month - 1
}
