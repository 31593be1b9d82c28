package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// Date represents a calendar date as exchanged with the backend (yyyy-mm-dd)
type Date struct {
	Year  int
	Month int
	Day   int
}

// DateDifference represents the difference between two dates
type DateDifference struct {
	Months int
	Days   int
}

// ParseDate converts a yyyy-mm-dd formatted string into a Date struct.
// A trailing time part (2024-01-15T00:00:00Z) is ignored.
func ParseDate(dateStr string) (Date, error) {
	if i := strings.IndexByte(dateStr, 'T'); i >= 0 {
		dateStr = dateStr[:i]
	}
	parts := strings.Split(dateStr, "-")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("invalid date format, expected yyyy-mm-dd")
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return Date{}, fmt.Errorf("invalid year: %v", err)
	}

	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return Date{}, fmt.Errorf("invalid month: %v", err)
	}

	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return Date{}, fmt.Errorf("invalid day: %v", err)
	}

	if month < 1 || month > 12 {
		return Date{}, fmt.Errorf("month must be between 1 and 12")
	}

	if day < 1 || day > DaysInMonth(year, month) {
		return Date{}, fmt.Errorf("day must be between 1 and %d", DaysInMonth(year, month))
	}

	return Date{Year: year, Month: month, Day: day}, nil
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Before reports whether d is strictly earlier than other
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// DaysInMonth returns the number of days in a given month
func DaysInMonth(year, month int) int {
	if month == 2 {
		// Check for leap year
		if (year%4 == 0 && year%100 != 0) || (year%400 == 0) {
			return 29
		}
		return 28
	}

	// Months with 30 days: April, June, September, November
	if month == 4 || month == 6 || month == 9 || month == 11 {
		return 30
	}

	// All other months have 31 days
	return 31
}

// CalculateDateDifference computes the difference between two dates
// Returns (months, days) where both start and end dates are included
func CalculateDateDifference(startDate, endDate Date) (DateDifference, error) {
	if endDate.Before(startDate) {
		return DateDifference{}, fmt.Errorf("end date must be >= start date")
	}

	years := endDate.Year - startDate.Year
	months := endDate.Month - startDate.Month
	days := endDate.Day - startDate.Day + 1 // +1 to include both ends

	// If days < 0, borrow from months
	if days < 0 {
		months -= 1
		prevMonth := endDate.Month - 1
		prevYear := endDate.Year
		if prevMonth < 1 {
			prevMonth = 12
			prevYear -= 1
		}
		days = DaysInMonth(prevYear, prevMonth) + days
	}

	// If months are negative, borrow from years
	if months < 0 {
		years -= 1
		months += 12
	}

	months += 12 * years

	return DateDifference{Months: months, Days: days}, nil
}

// ValidateProjectDates checks a project's start date and optional end date
func ValidateProjectDates(start string, end *string) error {
	s, err := ParseDate(start)
	if err != nil {
		return fmt.Errorf("invalid start date: %v", err)
	}
	if end == nil || *end == "" {
		return nil
	}
	e, err := ParseDate(*end)
	if err != nil {
		return fmt.Errorf("invalid end date: %v", err)
	}
	if e.Before(s) {
		return fmt.Errorf("end date must be >= start date")
	}
	return nil
}

// ProjectDuration returns the inclusive duration between start and end, or
// false when either date is missing or malformed.
func ProjectDuration(start string, end *string) (DateDifference, bool) {
	if end == nil {
		return DateDifference{}, false
	}
	s, err := ParseDate(start)
	if err != nil {
		return DateDifference{}, false
	}
	e, err := ParseDate(*end)
	if err != nil {
		return DateDifference{}, false
	}
	diff, err := CalculateDateDifference(s, e)
	if err != nil {
		return DateDifference{}, false
	}
	return diff, true
}
