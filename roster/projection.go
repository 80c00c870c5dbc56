/*
projection.go - Read-only reporting views over the aggregates

PURPOSE:
  Rankings, distributions and trend rollups consumed by the API and CLI.
  Everything here reads aggregate structures produced by monthly.go and
  summary.go (plus the adjusted record stream for distributions); nothing
  mutates engine state.

VIEWS:
  TopByBalance:        Employees ranked by cumulative banked-rest balance
  TopByWorkload:       Employees ranked by total fulfilled work value
  CategoryDistribution: Per shift-code and per category record counts,
                        with an explicit unknown-code audit counter
  YearlyTrend:         Per-year totals across all employees
  WeekendHolidayWork:  Weekend/holiday on-duty counts per employee
*/
package roster

import (
	"sort"

	"github.com/shopspring/decimal"
)

// =============================================================================
// RANKINGS
// =============================================================================

// BalanceRank is one row of the cumulative-balance ranking.
type BalanceRank struct {
	Employee          EmployeeKey
	CumulativeBalance decimal.Decimal
	Months            int
}

// TopByBalance ranks employees by cumulative balance, highest first.
// n <= 0 means no limit.
func TopByBalance(summaries []*EmployeeSummary, n int) []BalanceRank {
	ranks := make([]BalanceRank, 0, len(summaries))
	for _, s := range summaries {
		ranks = append(ranks, BalanceRank{
			Employee:          s.Employee,
			CumulativeBalance: s.CumulativeBalance,
			Months:            len(s.Months),
		})
	}
	sort.SliceStable(ranks, func(i, j int) bool {
		return ranks[i].CumulativeBalance.GreaterThan(ranks[j].CumulativeBalance)
	})
	return limit(ranks, n)
}

// WorkloadRank is one row of the fulfilled-work ranking.
type WorkloadRank struct {
	Employee           EmployeeKey
	FulfilledWorkValue decimal.Decimal
	WorkDays           int
}

// TopByWorkload ranks employees by total fulfilled work value across the
// whole aggregate stream, highest first. n <= 0 means no limit.
func TopByWorkload(aggregates []MonthlyAggregate, n int) []WorkloadRank {
	totals := make(map[EmployeeKey]*WorkloadRank)
	var order []EmployeeKey
	for _, agg := range aggregates {
		t, ok := totals[agg.Employee]
		if !ok {
			t = &WorkloadRank{Employee: agg.Employee, FulfilledWorkValue: decimal.Zero}
			totals[agg.Employee] = t
			order = append(order, agg.Employee)
		}
		t.FulfilledWorkValue = t.FulfilledWorkValue.Add(agg.FulfilledWorkValue)
		t.WorkDays += agg.WorkDays
	}

	ranks := make([]WorkloadRank, 0, len(order))
	for _, k := range order {
		ranks = append(ranks, *totals[k])
	}
	sort.SliceStable(ranks, func(i, j int) bool {
		return ranks[i].FulfilledWorkValue.GreaterThan(ranks[j].FulfilledWorkValue)
	})
	return limit(ranks, n)
}

// =============================================================================
// DISTRIBUTION
// =============================================================================

// Distribution counts shift codes and categories over a record stream.
// UnknownRecords surfaces unresolved codes for auditing; unknown codes
// never interrupt processing, so this counter is how they get noticed.
type Distribution struct {
	TotalRecords   int
	ByShiftCode    map[string]int
	ByCategory     map[Category]int
	UnknownRecords int
}

// CategoryDistribution tallies the adjusted record stream.
func CategoryDistribution(records []DayRecord) Distribution {
	dist := Distribution{
		ByShiftCode: make(map[string]int),
		ByCategory:  make(map[Category]int),
	}
	for _, r := range records {
		dist.TotalRecords++
		dist.ByShiftCode[r.ShiftCode]++
		dist.ByCategory[r.Category]++
		if !r.Known {
			dist.UnknownRecords++
		}
	}
	return dist
}

// =============================================================================
// TRENDS
// =============================================================================

// YearTrend is one calendar year summed across every employee.
type YearTrend struct {
	Year               int
	Employees          int
	LegalWorkdayCount  int
	FulfilledWorkValue decimal.Decimal
	Balance            decimal.Decimal
}

// YearlyTrend folds all summaries into per-year totals, ascending by year.
func YearlyTrend(summaries []*EmployeeSummary) []YearTrend {
	byYear := make(map[int]*YearTrend)
	for _, s := range summaries {
		for _, y := range s.Years {
			t, ok := byYear[y.Year]
			if !ok {
				t = &YearTrend{Year: y.Year, FulfilledWorkValue: decimal.Zero, Balance: decimal.Zero}
				byYear[y.Year] = t
			}
			t.Employees++
			t.LegalWorkdayCount += y.LegalWorkdayCount
			t.FulfilledWorkValue = t.FulfilledWorkValue.Add(y.FulfilledWorkValue)
			t.Balance = t.Balance.Add(y.Balance)
		}
	}

	trends := make([]YearTrend, 0, len(byYear))
	for _, t := range byYear {
		trends = append(trends, *t)
	}
	sort.Slice(trends, func(i, j int) bool { return trends[i].Year < trends[j].Year })
	return trends
}

// =============================================================================
// WEEKEND / HOLIDAY WORK
// =============================================================================

// OffHoursWork counts on-duty days falling on weekends and legal holidays.
type OffHoursWork struct {
	Employee    EmployeeKey
	WeekendDays int
	HolidayDays int
}

// WeekendHolidayWork tallies weekend and holiday duty per employee,
// sorted by weekend count descending.
func WeekendHolidayWork(records []DayRecord) []OffHoursWork {
	byEmployee := make(map[EmployeeKey]*OffHoursWork)
	var order []EmployeeKey
	for _, r := range records {
		if !r.IsWorkDay {
			continue
		}
		w, ok := byEmployee[r.Employee]
		if !ok {
			w = &OffHoursWork{Employee: r.Employee}
			byEmployee[r.Employee] = w
			order = append(order, r.Employee)
		}
		if r.IsWeekend {
			w.WeekendDays++
		}
		if r.IsHoliday {
			w.HolidayDays++
		}
	}

	out := make([]OffHoursWork, 0, len(order))
	for _, k := range order {
		out = append(out, *byEmployee[k])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].WeekendDays > out[j].WeekendDays })
	return out
}

func limit[T any](s []T, n int) []T {
	if n > 0 && len(s) > n {
		return s[:n]
	}
	return s
}
