/*
monthly.go - Monthly aggregation

PURPOSE:
  Folds one employee's adjusted records for one calendar month into the
  MonthlyAggregate: days on record, legal workdays, fulfilled work value,
  and the signed banked-rest balance.

THE BALANCE IDENTITY:
  Balance = FulfilledWorkValue - LegalWorkdayCount, exactly, in decimal
  arithmetic. Positive means the employee banked rest days; negative means
  they owe work.

PER-EMPLOYEE HOLIDAY COUNTING:
  LegalWorkdayCount subtracts only the holidays the employee was on record
  for. An employee absent on a holiday is not charged for it. Rosters have
  per-employee gaps, so holiday counting is per employee, not per
  calendar - a deliberate modeling choice inherited from the source data.

ABSENCE SEMANTICS:
  An employee with zero records in a month gets NO aggregate. Absence of
  an entry and a zero balance are different facts and callers must be able
  to tell them apart.
*/
package roster

import (
	"sort"

	"github.com/shopspring/decimal"
)

// =============================================================================
// MONTHLY AGGREGATE
// =============================================================================

// MonthlyAggregate is the derived monthly rollup for one employee. It is
// recomputed from records, never partially persisted.
type MonthlyAggregate struct {
	Employee  EmployeeKey
	YearMonth YearMonth

	TotalDaysOnRecord        int
	LegalHolidayDaysOnRecord int
	LegalWorkdayCount        int
	FulfilledWorkValue       decimal.Decimal
	Balance                  decimal.Decimal

	// First and last record dates in the month. Feed the career span in
	// the cross-period summary without re-reading raw records.
	FirstDate Date
	LastDate  Date

	// Facet counters for reporting.
	WorkDays           int
	RestDays           int
	NightShifts        int
	DayShifts          int
	HolidayWork        int
	WeekendWork        int
	SickLeaveDays      int
	MaternityLeaveDays int
	ShiftCodeCounts    map[string]int
}

// =============================================================================
// AGGREGATION
// =============================================================================

// AggregateMonth folds one employee's adjusted records for one month.
// Records must all belong to (employee, ym); the caller groups them.
// Returns ok=false for an empty record set: no data means no aggregate.
func AggregateMonth(employee EmployeeKey, ym YearMonth, records []DayRecord) (MonthlyAggregate, bool) {
	if len(records) == 0 {
		return MonthlyAggregate{}, false
	}

	agg := MonthlyAggregate{
		Employee:           employee,
		YearMonth:          ym,
		FulfilledWorkValue: decimal.Zero,
		ShiftCodeCounts:    make(map[string]int),
	}

	for _, r := range records {
		if agg.FirstDate.IsZero() || r.Date.Before(agg.FirstDate) {
			agg.FirstDate = r.Date
		}
		if r.Date.After(agg.LastDate) {
			agg.LastDate = r.Date
		}
		agg.TotalDaysOnRecord++
		agg.FulfilledWorkValue = agg.FulfilledWorkValue.Add(r.WorkValue)
		if r.IsHoliday {
			agg.LegalHolidayDaysOnRecord++
		}

		if r.IsWorkDay {
			agg.WorkDays++
			if r.IsHoliday {
				agg.HolidayWork++
			}
			if r.IsWeekend {
				agg.WeekendWork++
			}
		} else {
			agg.RestDays++
		}
		if r.IsNightShift {
			agg.NightShifts++
		} else if r.IsDayShift {
			agg.DayShifts++
		}
		switch r.Category {
		case CategorySickLeave:
			agg.SickLeaveDays++
		case CategoryMaternityLeave:
			agg.MaternityLeaveDays++
		}
		agg.ShiftCodeCounts[r.ShiftCode]++
	}

	agg.LegalWorkdayCount = agg.TotalDaysOnRecord - agg.LegalHolidayDaysOnRecord
	agg.Balance = agg.FulfilledWorkValue.Sub(decimal.NewFromInt(int64(agg.LegalWorkdayCount)))
	return agg, true
}

// monthGroupKey is the composite grouping key for the full-stream fold.
type monthGroupKey struct {
	Employee  EmployeeKey
	YearMonth YearMonth
}

// AggregateAll groups an adjusted record stream by (employee, month) and
// aggregates each group. Output is sorted by employee id/name, then month.
func AggregateAll(records []DayRecord) []MonthlyAggregate {
	groups := make(map[monthGroupKey][]DayRecord)
	for _, r := range records {
		k := monthGroupKey{Employee: r.Employee, YearMonth: r.Date.YearMonth()}
		groups[k] = append(groups[k], r)
	}

	aggregates := make([]MonthlyAggregate, 0, len(groups))
	for k, group := range groups {
		if agg, ok := AggregateMonth(k.Employee, k.YearMonth, group); ok {
			aggregates = append(aggregates, agg)
		}
	}

	sort.Slice(aggregates, func(i, j int) bool {
		a, b := aggregates[i], aggregates[j]
		if a.Employee.ID != b.Employee.ID {
			return a.Employee.ID < b.Employee.ID
		}
		if a.Employee.Name != b.Employee.Name {
			return a.Employee.Name < b.Employee.Name
		}
		return a.YearMonth.Before(b.YearMonth)
	})
	return aggregates
}
