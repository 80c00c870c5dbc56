/*
summary.go - Cross-period aggregation

PURPOSE:
  Combines one employee's monthly aggregates into yearly totals, a career
  span, and the cumulative banked-rest balance. The cumulative balance is
  a single left-to-right fold seeded with an optional external offset, so
  insertion-order bugs are structurally impossible: months are consumed in
  chronological order or the build fails.

INITIAL OFFSETS:
  Balances carried in from before the first roster file are seeded per
  employee. The seed data is keyed by display NAME - a deliberately loose
  join inherited from the source data (two employees sharing a name would
  collide). The engine accepts that risk as given rather than inventing a
  stronger identifier the data model does not guarantee. A missing entry
  is equivalent to offset zero.

INVARIANT:
  After processing period P:
    cumulative(P) == initialOffset + sum(balance of periods 1..P)
  exactly, in decimal arithmetic.
*/
package roster

import (
	"sort"

	"github.com/shopspring/decimal"
)

// =============================================================================
// OFFSET TABLE - Name-keyed initial banked-rest seeds
// =============================================================================

// OffsetTable maps employee display names to their carried-in balance.
// The zero value is usable and yields zero for every name.
type OffsetTable map[string]decimal.Decimal

// Lookup returns the offset for a name, zero when absent. Absence is not
// an error.
func (t OffsetTable) Lookup(name string) decimal.Decimal {
	if t == nil {
		return decimal.Zero
	}
	if v, ok := t[name]; ok {
		return v
	}
	return decimal.Zero
}

// =============================================================================
// EMPLOYEE SUMMARY
// =============================================================================

// MonthEntry is one month inside a summary, carrying the running
// cumulative balance through (and including) that month.
type MonthEntry struct {
	MonthlyAggregate
	Cumulative decimal.Decimal
}

// YearTotals sums the contained months of one year. Plain sums over the
// monthly aggregates; nothing is re-derived from raw records.
type YearTotals struct {
	Year               int
	Months             int
	LegalWorkdayCount  int
	FulfilledWorkValue decimal.Decimal
	Balance            decimal.Decimal
}

// EmployeeSummary is the full cross-period rollup for one employee.
type EmployeeSummary struct {
	Employee      EmployeeKey
	InitialOffset decimal.Decimal

	Months []MonthEntry // ascending by month
	Years  []YearTotals // ascending by year

	CumulativeBalance decimal.Decimal // offset + all monthly balances
	CareerFirstDate   Date
	CareerLastDate    Date
}

// CumulativeAt returns the running balance through ym inclusive. The
// second result is false when the employee has no month at or before ym;
// the cumulative then equals just the initial offset.
func (s *EmployeeSummary) CumulativeAt(ym YearMonth) (decimal.Decimal, bool) {
	cumulative := s.InitialOffset
	found := false
	for _, m := range s.Months {
		if m.YearMonth.After(ym) {
			break
		}
		cumulative = m.Cumulative
		found = true
	}
	return cumulative, found
}

// =============================================================================
// BUILD
// =============================================================================

// BuildEmployeeSummary folds monthly aggregates, which must all belong to
// one employee and be in ascending chronological order, into a summary.
// Misordered input returns an UnorderedPeriodsError: silently tolerating
// it would corrupt the cumulative fold.
func BuildEmployeeSummary(employee EmployeeKey, aggregates []MonthlyAggregate, initialOffset decimal.Decimal) (*EmployeeSummary, error) {
	summary := &EmployeeSummary{
		Employee:          employee,
		InitialOffset:     initialOffset,
		CumulativeBalance: initialOffset,
	}

	yearIndex := make(map[int]int)
	for i, agg := range aggregates {
		if agg.Employee != employee {
			return nil, ErrMixedEmployees
		}
		if i > 0 && !aggregates[i-1].YearMonth.Before(agg.YearMonth) {
			return nil, &UnorderedPeriodsError{
				Employee: employee,
				Previous: aggregates[i-1].YearMonth,
				Current:  agg.YearMonth,
				Index:    i,
			}
		}

		summary.CumulativeBalance = summary.CumulativeBalance.Add(agg.Balance)
		summary.Months = append(summary.Months, MonthEntry{
			MonthlyAggregate: agg,
			Cumulative:       summary.CumulativeBalance,
		})

		yi, ok := yearIndex[agg.YearMonth.Year]
		if !ok {
			yi = len(summary.Years)
			yearIndex[agg.YearMonth.Year] = yi
			summary.Years = append(summary.Years, YearTotals{
				Year:               agg.YearMonth.Year,
				FulfilledWorkValue: decimal.Zero,
				Balance:            decimal.Zero,
			})
		}
		year := &summary.Years[yi]
		year.Months++
		year.LegalWorkdayCount += agg.LegalWorkdayCount
		year.FulfilledWorkValue = year.FulfilledWorkValue.Add(agg.FulfilledWorkValue)
		year.Balance = year.Balance.Add(agg.Balance)

		if summary.CareerFirstDate.IsZero() || agg.FirstDate.Before(summary.CareerFirstDate) {
			summary.CareerFirstDate = agg.FirstDate
		}
		if agg.LastDate.After(summary.CareerLastDate) {
			summary.CareerLastDate = agg.LastDate
		}
	}

	return summary, nil
}

// BuildAllSummaries groups a sorted aggregate stream (as produced by
// AggregateAll) per employee and builds every summary, seeding each from
// the offset table. Output is sorted by employee id, then name.
func BuildAllSummaries(aggregates []MonthlyAggregate, offsets OffsetTable) ([]*EmployeeSummary, error) {
	grouped := make(map[EmployeeKey][]MonthlyAggregate)
	for _, agg := range aggregates {
		grouped[agg.Employee] = append(grouped[agg.Employee], agg)
	}

	keys := make([]EmployeeKey, 0, len(grouped))
	for k := range grouped {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].ID != keys[j].ID {
			return keys[i].ID < keys[j].ID
		}
		return keys[i].Name < keys[j].Name
	})

	summaries := make([]*EmployeeSummary, 0, len(keys))
	for _, k := range keys {
		months := grouped[k]
		sort.Slice(months, func(i, j int) bool { return months[i].YearMonth.Before(months[j].YearMonth) })
		summary, err := BuildEmployeeSummary(k, months, offsets.Lookup(k.Name))
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}
