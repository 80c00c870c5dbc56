package roster_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/roster-engine/roster"
)

// =============================================================================
// BALANCE IDENTITY
// =============================================================================

func TestAggregateMonth_BalanceIsFulfilledMinusLegalWorkdays(t *testing.T) {
	// GIVEN: Any adjusted record mix
	// WHEN: Aggregating the month
	// THEN: Balance == FulfilledWorkValue - LegalWorkdayCount, exactly

	records := adjust(t, []roster.DayRecord{
		record(t, empAlice, day(2024, time.March, 1), "白", false),
		record(t, empAlice, day(2024, time.March, 2), "半", false),
		record(t, empAlice, day(2024, time.March, 3), "休", false),
		record(t, empAlice, day(2024, time.March, 4), "公休日", true),
		record(t, empAlice, day(2024, time.March, 5), "小", true),
	})

	agg, ok := roster.AggregateMonth(empAlice, ym(2024, time.March), records)
	if !ok {
		t.Fatal("expected aggregate")
	}

	identity := agg.FulfilledWorkValue.Sub(decimal.NewFromInt(int64(agg.LegalWorkdayCount)))
	if !agg.Balance.Equal(identity) {
		t.Errorf("balance %s != fulfilled %s - workdays %d",
			agg.Balance, agg.FulfilledWorkValue, agg.LegalWorkdayCount)
	}
	// 1 + 0.5 + 0 + 0 + 1 = 2.5 fulfilled; 5 days - 2 holidays = 3 workdays.
	assertDecimal(t, agg.Balance, "-0.5", "balance")
}

func TestAggregateMonth_HolidayCountingIsPerEmployee(t *testing.T) {
	// GIVEN: The same month where Alice has a record on the holiday and
	//        Bob does not
	// WHEN: Aggregating both
	// THEN: Only Alice's legal workday count subtracts the holiday; an
	//       employee absent on a holiday is not charged for it

	aliceRecords := []roster.DayRecord{
		record(t, empAlice, day(2024, time.May, 1), "休", true),
		record(t, empAlice, day(2024, time.May, 2), "白", false),
	}
	bobRecords := []roster.DayRecord{
		record(t, empBob, day(2024, time.May, 2), "白", false),
	}

	alice, _ := roster.AggregateMonth(empAlice, ym(2024, time.May), aliceRecords)
	bob, _ := roster.AggregateMonth(empBob, ym(2024, time.May), bobRecords)

	if alice.LegalHolidayDaysOnRecord != 1 || alice.LegalWorkdayCount != 1 {
		t.Errorf("alice: holidays=%d workdays=%d, want 1/1",
			alice.LegalHolidayDaysOnRecord, alice.LegalWorkdayCount)
	}
	if bob.LegalHolidayDaysOnRecord != 0 || bob.LegalWorkdayCount != 1 {
		t.Errorf("bob: holidays=%d workdays=%d, want 0/1",
			bob.LegalHolidayDaysOnRecord, bob.LegalWorkdayCount)
	}
}

// =============================================================================
// FACET COUNTERS
// =============================================================================

func TestAggregateMonth_FacetCounters(t *testing.T) {
	// GIVEN: A mixed month: day shifts, nights, rest, sick leave on a
	//        weekend holiday
	// WHEN: Aggregating
	// THEN: Every facet counter reflects its records

	records := []roster.DayRecord{
		record(t, empAlice, day(2024, time.March, 1), "白", false), // Friday
		record(t, empAlice, day(2024, time.March, 2), "小", true),  // Saturday holiday
		record(t, empAlice, day(2024, time.March, 3), "下", false),
		record(t, empAlice, day(2024, time.March, 4), "休", false),
		record(t, empAlice, day(2024, time.March, 5), "病假", false),
		record(t, empAlice, day(2024, time.March, 6), "产假", false),
	}
	// Weekend facet comes from the weekday header; patch the Saturday in.
	records[1].Weekday = roster.ResolveWeekday("星期六")
	records[1].IsWeekend = true

	agg, _ := roster.AggregateMonth(empAlice, ym(2024, time.March), records)

	if agg.WorkDays != 5 || agg.RestDays != 1 {
		t.Errorf("workdays=%d restdays=%d, want 5/1", agg.WorkDays, agg.RestDays)
	}
	if agg.NightShifts != 2 || agg.DayShifts != 1 {
		t.Errorf("nights=%d days=%d, want 2/1", agg.NightShifts, agg.DayShifts)
	}
	if agg.HolidayWork != 1 || agg.WeekendWork != 1 {
		t.Errorf("holidaywork=%d weekendwork=%d, want 1/1", agg.HolidayWork, agg.WeekendWork)
	}
	if agg.SickLeaveDays != 1 || agg.MaternityLeaveDays != 1 {
		t.Errorf("sick=%d maternity=%d, want 1/1", agg.SickLeaveDays, agg.MaternityLeaveDays)
	}
	if agg.ShiftCodeCounts["白"] != 1 || agg.ShiftCodeCounts["休"] != 1 {
		t.Errorf("shift code counts = %v", agg.ShiftCodeCounts)
	}
	if agg.FirstDate != day(2024, time.March, 1) || agg.LastDate != day(2024, time.March, 6) {
		t.Errorf("span = %s..%s", agg.FirstDate, agg.LastDate)
	}
}

// =============================================================================
// FULL-STREAM FOLD
// =============================================================================

func TestAggregateAll_GroupsByEmployeeAndMonth(t *testing.T) {
	// GIVEN: Records for two employees across two months
	// WHEN: AggregateAll
	// THEN: One aggregate per (employee, month), sorted by employee then
	//       month

	records := []roster.DayRecord{
		record(t, empBob, day(2024, time.April, 1), "白", false),
		record(t, empAlice, day(2024, time.March, 1), "白", false),
		record(t, empAlice, day(2024, time.April, 1), "白", false),
	}

	aggregates := roster.AggregateAll(records)
	if len(aggregates) != 3 {
		t.Fatalf("aggregates = %d, want 3", len(aggregates))
	}
	if aggregates[0].Employee != empAlice || aggregates[0].YearMonth != ym(2024, time.March) {
		t.Errorf("first aggregate = %v %s", aggregates[0].Employee, aggregates[0].YearMonth)
	}
	if aggregates[1].YearMonth != ym(2024, time.April) {
		t.Errorf("second aggregate month = %s", aggregates[1].YearMonth)
	}
	if aggregates[2].Employee != empBob {
		t.Errorf("third aggregate employee = %v", aggregates[2].Employee)
	}
}
