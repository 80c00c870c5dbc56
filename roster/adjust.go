/*
adjust.go - Work-value rewrites that need calendar context

PURPOSE:
  The two rewrite rules that cannot run during per-cell normalization:

  1. Night-handoff rule: a 下 (handoff) day immediately after a 小 (small
     night shift) earns 0.5 instead of its base 1. "Immediately after"
     means calendar-consecutive within the same month; a gap or a month
     boundary leaves the base value untouched. A handoff with no
     qualifying predecessor keeps its table base of 1.

  2. Holiday-conditioned support/leave rule: any record in the support
     work or leave family earns 0 on a legal holiday and 1 otherwise,
     overriding its zero base entirely. This needs no adjacency, but it
     shares the "override after normalization" timing, so it lives here.

TWO-PASS STRUCTURE:
  Normalize everything first, then adjust per employee. The handoff rule
  needs lookbehind across records, and running both rules over a complete
  record set makes the pass idempotent: rule conditions key off shift
  code, category, holiday flag and date, never off the current work value.
  Adjusting an already-adjusted sequence is a no-op.

ORDERING CONTRACT:
  Input must be one employee's records in ascending date order over the
  whole reporting window (possibly spanning files). This is an explicit
  precondition: violation returns an error instead of silently producing
  wrong handoff credits.
*/
package roster

import "sort"

// =============================================================================
// ADJUSTER
// =============================================================================

// Adjuster applies the post-normalization work-value rewrites.
type Adjuster struct{}

func NewAdjuster() *Adjuster { return &Adjuster{} }

// Adjust rewrites work values over one employee's date-sorted records and
// returns a new slice; the input is not modified. Categories are never
// touched, only work values.
func (a *Adjuster) Adjust(records []DayRecord) ([]DayRecord, error) {
	if err := checkAdjustPreconditions(records); err != nil {
		return nil, err
	}

	adjusted := make([]DayRecord, len(records))
	copy(adjusted, records)

	for i := range adjusted {
		cur := &adjusted[i]

		// Holiday-conditioned support/leave rule. Evaluated per record,
		// independent of neighbors.
		if cur.Category.HolidayConditioned() {
			if cur.IsHoliday {
				cur.WorkValue = workZero
			} else {
				cur.WorkValue = workFull
			}
			continue
		}

		// Night-handoff rule.
		if cur.Category == CategoryNightHandoff && i > 0 {
			prev := adjusted[i-1]
			if prev.Category == CategoryNightSmall && prev.Date.ConsecutiveWithin(cur.Date) {
				cur.WorkValue = workHalf
			}
		}
	}

	return adjusted, nil
}

// AdjustAll groups a mixed record stream by employee, sorts each group by
// date, and adjusts every group. The returned stream is ordered by
// employee id/name, then date.
func (a *Adjuster) AdjustAll(records []DayRecord) ([]DayRecord, error) {
	groups := GroupByEmployee(records)

	keys := make([]EmployeeKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].ID != keys[j].ID {
			return keys[i].ID < keys[j].ID
		}
		return keys[i].Name < keys[j].Name
	})

	var out []DayRecord
	for _, k := range keys {
		group := groups[k]
		sort.Slice(group, func(i, j int) bool { return group[i].Date.Before(group[j].Date) })
		adjusted, err := a.Adjust(group)
		if err != nil {
			return nil, err
		}
		out = append(out, adjusted...)
	}
	return out, nil
}

// checkAdjustPreconditions verifies single-employee ascending-date input.
func checkAdjustPreconditions(records []DayRecord) error {
	for i := 1; i < len(records); i++ {
		if records[i].Employee != records[0].Employee {
			return ErrMixedEmployees
		}
		if records[i].Date.Before(records[i-1].Date) {
			return &UnsortedRecordsError{
				Employee: records[0].Employee,
				Previous: records[i-1].Date,
				Current:  records[i].Date,
				Index:    i,
			}
		}
	}
	return nil
}

// GroupByEmployee buckets records by their composite employee key.
func GroupByEmployee(records []DayRecord) map[EmployeeKey][]DayRecord {
	groups := make(map[EmployeeKey][]DayRecord)
	for _, r := range records {
		groups[r.Employee] = append(groups[r.Employee], r)
	}
	return groups
}
