package roster_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/roster-engine/roster"
)

func buildSummaries(t *testing.T, aggregates []roster.MonthlyAggregate) []*roster.EmployeeSummary {
	t.Helper()
	summaries, err := roster.BuildAllSummaries(aggregates, nil)
	if err != nil {
		t.Fatalf("BuildAllSummaries failed: %v", err)
	}
	return summaries
}

func TestTopByBalance_RanksHighestFirstAndLimits(t *testing.T) {
	// GIVEN: Three employees with distinct cumulative balances
	// WHEN: Ranking with a limit of 2
	// THEN: Highest first, list capped

	carol := roster.EmployeeKey{ID: 3, Name: "Carol"}
	summaries := buildSummaries(t, []roster.MonthlyAggregate{
		monthAgg(empAlice, ym(2024, time.January), "1"),
		monthAgg(empBob, ym(2024, time.January), "3"),
		monthAgg(carol, ym(2024, time.January), "-2"),
	})

	ranks := roster.TopByBalance(summaries, 2)
	if len(ranks) != 2 {
		t.Fatalf("ranks = %d, want 2", len(ranks))
	}
	if ranks[0].Employee != empBob {
		t.Errorf("top = %v, want Bob", ranks[0].Employee)
	}
	assertDecimal(t, ranks[0].CumulativeBalance, "3", "top balance")
	if ranks[1].Employee != empAlice {
		t.Errorf("second = %v, want Alice", ranks[1].Employee)
	}
}

func TestTopByWorkload_SumsAcrossMonths(t *testing.T) {
	// GIVEN: One employee with two months, another with one heavier month
	// WHEN: Ranking by workload without a limit
	// THEN: Totals span all months per employee

	a1 := monthAgg(empAlice, ym(2024, time.January), "0")
	a1.WorkDays = 10
	a2 := monthAgg(empAlice, ym(2024, time.February), "0")
	a2.WorkDays = 12
	b1 := monthAgg(empBob, ym(2024, time.January), "5")
	b1.WorkDays = 25

	ranks := roster.TopByWorkload([]roster.MonthlyAggregate{a1, a2, b1}, 0)
	if len(ranks) != 2 {
		t.Fatalf("ranks = %d, want 2", len(ranks))
	}
	// Alice: 20 + 20 = 40 fulfilled, Bob: 25.
	if ranks[0].Employee != empAlice || ranks[0].WorkDays != 22 {
		t.Errorf("top = %+v, want Alice with 22 workdays", ranks[0])
	}
	assertDecimal(t, ranks[0].FulfilledWorkValue, "40", "alice total fulfilled")
}

func TestCategoryDistribution_CountsCodesAndUnknowns(t *testing.T) {
	// GIVEN: Records with repeated codes and one unknown
	// WHEN: Tallying the distribution
	// THEN: Counts per code and category, unknowns surfaced separately

	records := []roster.DayRecord{
		record(t, empAlice, day(2024, time.March, 1), "白", false),
		record(t, empAlice, day(2024, time.March, 2), "白", false),
		record(t, empAlice, day(2024, time.March, 3), "休", false),
		record(t, empAlice, day(2024, time.March, 4), "???", false),
	}

	dist := roster.CategoryDistribution(records)
	if dist.TotalRecords != 4 {
		t.Errorf("total = %d, want 4", dist.TotalRecords)
	}
	if dist.ByShiftCode["白"] != 2 || dist.ByShiftCode["???"] != 1 {
		t.Errorf("by code = %v", dist.ByShiftCode)
	}
	if dist.ByCategory[roster.CategoryDay] != 2 {
		t.Errorf("by category = %v", dist.ByCategory)
	}
	if dist.UnknownRecords != 1 {
		t.Errorf("unknown = %d, want 1", dist.UnknownRecords)
	}
}

func TestYearlyTrend_SumsAcrossEmployees(t *testing.T) {
	// GIVEN: Two employees active in 2023, one continuing into 2024
	// WHEN: Folding the yearly trend
	// THEN: Years ascend and sum employees active in each

	summaries := buildSummaries(t, []roster.MonthlyAggregate{
		monthAgg(empAlice, ym(2023, time.December), "1"),
		monthAgg(empAlice, ym(2024, time.January), "0.5"),
		monthAgg(empBob, ym(2023, time.June), "-1"),
	})

	trends := roster.YearlyTrend(summaries)
	if len(trends) != 2 {
		t.Fatalf("trends = %d, want 2", len(trends))
	}
	if trends[0].Year != 2023 || trends[0].Employees != 2 {
		t.Errorf("2023 trend = %+v", trends[0])
	}
	assertDecimal(t, trends[0].Balance, "0", "2023 net balance")
	if trends[1].Year != 2024 || trends[1].Employees != 1 {
		t.Errorf("2024 trend = %+v", trends[1])
	}
	if trends[0].LegalWorkdayCount != 40 {
		t.Errorf("2023 workdays = %d, want 40", trends[0].LegalWorkdayCount)
	}
}

func TestWeekendHolidayWork_CountsOnDutyDaysOnly(t *testing.T) {
	// GIVEN: Alice works a weekend and a holiday; Bob rests on a holiday
	// WHEN: Tallying off-hours work
	// THEN: Rest days never count, only on-duty records

	weekendShift := record(t, empAlice, day(2024, time.March, 2), "白", false)
	weekendShift.IsWeekend = true

	records := []roster.DayRecord{
		weekendShift,
		record(t, empAlice, day(2024, time.March, 4), "小", true),
		record(t, empBob, day(2024, time.March, 4), "休", true),
	}

	work := roster.WeekendHolidayWork(records)
	if len(work) != 1 {
		t.Fatalf("entries = %d, want 1 (Bob never worked off-hours)", len(work))
	}
	if work[0].Employee != empAlice || work[0].WeekendDays != 1 || work[0].HolidayDays != 1 {
		t.Errorf("entry = %+v", work[0])
	}
}

// Guards the Balance/Fulfilled consistency of the monthAgg helper; the
// projections assume aggregates hold the balance identity.
func TestMonthAggHelper_HoldsBalanceIdentity(t *testing.T) {
	agg := monthAgg(empAlice, ym(2024, time.January), "1.5")
	identity := agg.FulfilledWorkValue.Sub(decimal.NewFromInt(int64(agg.LegalWorkdayCount)))
	if !agg.Balance.Equal(identity) {
		t.Errorf("helper violates balance identity: %s vs %s", agg.Balance, identity)
	}
}
