package roster

import (
	"fmt"
	"time"
)

// =============================================================================
// DATE - Calendar day as plain (year, month, day)
// =============================================================================

// Date is a calendar day. The engine never needs clock time or zones, so a
// plain value triple keeps comparisons exact and trivially sortable.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// Valid reports whether the day exists in its month (Feb 30, day 31 in a
// thirty-day month, etc.).
func (d Date) Valid() bool {
	return d.Day >= 1 && d.Day <= DaysInMonth(d.Year, d.Month) && d.Month >= time.January && d.Month <= time.December
}

func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

func (d Date) After(other Date) bool { return other.Before(d) }
func (d Date) Equal(other Date) bool { return d == other }
func (d Date) IsZero() bool { return d == Date{} }

// ConsecutiveWithin reports whether other is the calendar day immediately
// after d AND both fall in the same month. The handoff rule (adjust.go)
// only fires under this stricter condition: a 小 on the 30th followed by a
// 下 on the 1st of the next month does not qualify.
func (d Date) ConsecutiveWithin(other Date) bool {
	return d.Year == other.Year && d.Month == other.Month && other.Day == d.Day+1
}

// YearMonth returns the month bucket this date belongs to.
func (d Date) YearMonth() YearMonth {
	return YearMonth{Year: d.Year, Month: d.Month}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// =============================================================================
// YEAR MONTH - Reporting period key
// =============================================================================

// YearMonth is the monthly aggregation key. Ordered, comparable, and
// printable as "YYYY-MM" (the same shape as the source file names).
type YearMonth struct {
	Year  int
	Month time.Month
}

func (ym YearMonth) Before(other YearMonth) bool {
	if ym.Year != other.Year {
		return ym.Year < other.Year
	}
	return ym.Month < other.Month
}

func (ym YearMonth) After(other YearMonth) bool { return other.Before(ym) }

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, ym.Month)
}

// ParseYearMonth parses "YYYY-MM" (the roster file naming convention).
func ParseYearMonth(s string) (YearMonth, error) {
	var year, month int
	if _, err := fmt.Sscanf(s, "%d-%d", &year, &month); err != nil {
		return YearMonth{}, fmt.Errorf("invalid year-month %q: %w", s, err)
	}
	if month < 1 || month > 12 || year < 1 {
		return YearMonth{}, fmt.Errorf("invalid year-month %q", s)
	}
	return YearMonth{Year: year, Month: time.Month(month)}, nil
}

// =============================================================================
// WEEKDAY - Resolved from the roster's weekday-name header row
// =============================================================================

// Weekday is the resolved weekday of a record. Number follows the source
// convention: 0=Sunday .. 6=Saturday, -1 when the header text did not
// resolve. The holiday flag is independent of the weekday; weekends are
// derived here, holidays come from the header.
type Weekday struct {
	English string
	Number  int
}

// WeekdayUnknown is the sentinel for unresolvable weekday header text.
var WeekdayUnknown = Weekday{English: "Unknown", Number: -1}

func (w Weekday) IsWeekend() bool { return w.Number == 0 || w.Number == 6 }
func (w Weekday) IsUnknown() bool { return w.Number == -1 }
