package calendar

import "strconv"

// MonthDays is the highest valid day number per month, february counts the
// leap day so a feb 29th event is accepted and simply skips common years
var MonthDays = [12]int{31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// DaySuffix returns the english ordinal suffix for a day of the month
func DaySuffix(day int) string {
	if day >= 11 && day <= 13 {
		return "th"
	}

	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

// FormatDayOrdinal renders a day number as "1st", "22nd" and so on
func FormatDayOrdinal(day int) string {
	return strconv.Itoa(day) + DaySuffix(day)
}

// ValidDayOfMonth reports whether the day number can occur in the month
func ValidDayOfMonth(month, day int) bool {
	if month < 1 || month > 12 {
		return false
	}

	return day >= 1 && day <= MonthDays[month-1]
}
