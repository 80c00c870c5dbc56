package roster_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/roster-engine/roster"
)

// monthAgg builds a minimal aggregate for cross-period tests. The fold
// only reads Employee, YearMonth, balances and the date span.
func monthAgg(emp roster.EmployeeKey, period roster.YearMonth, balance string) roster.MonthlyAggregate {
	return roster.MonthlyAggregate{
		Employee:           emp,
		YearMonth:          period,
		LegalWorkdayCount:  20,
		FulfilledWorkValue: dec(balance).Add(decimal.NewFromInt(20)),
		Balance:            dec(balance),
		FirstDate:          roster.NewDate(period.Year, period.Month, 1),
		LastDate:           roster.NewDate(period.Year, period.Month, 28),
	}
}

// =============================================================================
// CUMULATIVE FOLD
// =============================================================================

func TestBuildEmployeeSummary_CumulativeFoldSeededByOffset(t *testing.T) {
	// GIVEN: Monthly balances +0.5, -1, +2 and an initial offset of 2
	// WHEN: Building the summary
	// THEN: Cumulative runs 2.5, 1.5, 3.5 and the final balance is 3.5

	aggregates := []roster.MonthlyAggregate{
		monthAgg(empAlice, ym(2024, time.January), "0.5"),
		monthAgg(empAlice, ym(2024, time.February), "-1"),
		monthAgg(empAlice, ym(2024, time.March), "2"),
	}

	summary, err := roster.BuildEmployeeSummary(empAlice, aggregates, dec("2"))
	if err != nil {
		t.Fatalf("BuildEmployeeSummary failed: %v", err)
	}

	want := []string{"2.5", "1.5", "3.5"}
	for i, m := range summary.Months {
		assertDecimal(t, m.Cumulative, want[i], m.YearMonth.String()+" cumulative")
	}
	assertDecimal(t, summary.CumulativeBalance, "3.5", "final cumulative")
	assertDecimal(t, summary.InitialOffset, "2", "initial offset")
}

func TestBuildEmployeeSummary_NoMonths_CumulativeIsOffset(t *testing.T) {
	// GIVEN: No aggregates at all
	// WHEN: Building the summary
	// THEN: The cumulative balance is exactly the seed

	summary, err := roster.BuildEmployeeSummary(empAlice, nil, dec("1.5"))
	if err != nil {
		t.Fatalf("BuildEmployeeSummary failed: %v", err)
	}
	assertDecimal(t, summary.CumulativeBalance, "1.5", "cumulative with no months")
	if len(summary.Months) != 0 || len(summary.Years) != 0 {
		t.Errorf("months=%d years=%d, want empty", len(summary.Months), len(summary.Years))
	}
}

func TestBuildEmployeeSummary_GapsCarryBalanceForward(t *testing.T) {
	// GIVEN: January and April on record, February and March missing
	// WHEN: Building the summary
	// THEN: April's cumulative folds straight onto January's; a missing
	//       month contributes nothing

	aggregates := []roster.MonthlyAggregate{
		monthAgg(empAlice, ym(2024, time.January), "1"),
		monthAgg(empAlice, ym(2024, time.April), "0.5"),
	}

	summary, err := roster.BuildEmployeeSummary(empAlice, aggregates, decimal.Zero)
	if err != nil {
		t.Fatalf("BuildEmployeeSummary failed: %v", err)
	}
	assertDecimal(t, summary.Months[1].Cumulative, "1.5", "cumulative across gap")
}

// =============================================================================
// YEAR TOTALS AND CAREER SPAN
// =============================================================================

func TestBuildEmployeeSummary_YearTotalsAndCareerSpan(t *testing.T) {
	// GIVEN: Months in two calendar years
	// WHEN: Building the summary
	// THEN: Per-year totals sum their months and the career span covers
	//       first to last record date

	aggregates := []roster.MonthlyAggregate{
		monthAgg(empAlice, ym(2023, time.November), "1"),
		monthAgg(empAlice, ym(2023, time.December), "-0.5"),
		monthAgg(empAlice, ym(2024, time.January), "2"),
	}

	summary, err := roster.BuildEmployeeSummary(empAlice, aggregates, decimal.Zero)
	if err != nil {
		t.Fatalf("BuildEmployeeSummary failed: %v", err)
	}

	if len(summary.Years) != 2 {
		t.Fatalf("years = %d, want 2", len(summary.Years))
	}
	y2023 := summary.Years[0]
	if y2023.Year != 2023 || y2023.Months != 2 || y2023.LegalWorkdayCount != 40 {
		t.Errorf("2023 totals = %+v", y2023)
	}
	assertDecimal(t, y2023.Balance, "0.5", "2023 balance")
	assertDecimal(t, summary.Years[1].Balance, "2", "2024 balance")

	if summary.CareerFirstDate != day(2023, time.November, 1) {
		t.Errorf("career first = %s", summary.CareerFirstDate)
	}
	if summary.CareerLastDate != day(2024, time.January, 28) {
		t.Errorf("career last = %s", summary.CareerLastDate)
	}
}

func TestCumulativeAt_InclusiveOfRequestedMonth(t *testing.T) {
	// GIVEN: A summary over Jan..Mar
	// WHEN: Asking for the cumulative at each month and outside the span
	// THEN: The running balance includes the requested month; before the
	//       first month only the offset stands

	aggregates := []roster.MonthlyAggregate{
		monthAgg(empAlice, ym(2024, time.January), "0.5"),
		monthAgg(empAlice, ym(2024, time.February), "-1"),
		monthAgg(empAlice, ym(2024, time.March), "2"),
	}
	summary, err := roster.BuildEmployeeSummary(empAlice, aggregates, dec("2"))
	if err != nil {
		t.Fatalf("BuildEmployeeSummary failed: %v", err)
	}

	got, ok := summary.CumulativeAt(ym(2024, time.February))
	if !ok {
		t.Fatal("expected a cumulative for February")
	}
	assertDecimal(t, got, "1.5", "cumulative at February")

	got, ok = summary.CumulativeAt(ym(2023, time.December))
	if ok {
		t.Error("no month at or before December 2023")
	}
	assertDecimal(t, got, "2", "cumulative before first month is the offset")

	got, _ = summary.CumulativeAt(ym(2024, time.December))
	assertDecimal(t, got, "3.5", "cumulative after last month")
}

// =============================================================================
// ORDERING CONTRACT
// =============================================================================

func TestBuildEmployeeSummary_RejectsUnorderedPeriods(t *testing.T) {
	// GIVEN: Aggregates out of chronological order
	// WHEN: Building the summary
	// THEN: UnorderedPeriodsError with position context; silently
	//       tolerating misorder would corrupt the fold

	aggregates := []roster.MonthlyAggregate{
		monthAgg(empAlice, ym(2024, time.February), "1"),
		monthAgg(empAlice, ym(2024, time.January), "1"),
	}

	_, err := roster.BuildEmployeeSummary(empAlice, aggregates, decimal.Zero)
	if !errors.Is(err, roster.ErrUnorderedPeriods) {
		t.Fatalf("err = %v, want ErrUnorderedPeriods", err)
	}

	var unordered *roster.UnorderedPeriodsError
	if !errors.As(err, &unordered) {
		t.Fatal("expected UnorderedPeriodsError")
	}
	if unordered.Index != 1 || unordered.Current != ym(2024, time.January) {
		t.Errorf("context = %+v", unordered)
	}
}

func TestBuildEmployeeSummary_RejectsDuplicatePeriods(t *testing.T) {
	// GIVEN: The same month twice
	// WHEN: Building the summary
	// THEN: Rejected as unordered; strictly ascending months are required

	aggregates := []roster.MonthlyAggregate{
		monthAgg(empAlice, ym(2024, time.January), "1"),
		monthAgg(empAlice, ym(2024, time.January), "1"),
	}

	_, err := roster.BuildEmployeeSummary(empAlice, aggregates, decimal.Zero)
	if !errors.Is(err, roster.ErrUnorderedPeriods) {
		t.Fatalf("err = %v, want ErrUnorderedPeriods", err)
	}
}

func TestBuildEmployeeSummary_RejectsForeignAggregates(t *testing.T) {
	// GIVEN: An aggregate belonging to another employee
	// WHEN: Building the summary
	// THEN: ErrMixedEmployees

	aggregates := []roster.MonthlyAggregate{
		monthAgg(empBob, ym(2024, time.January), "1"),
	}

	_, err := roster.BuildEmployeeSummary(empAlice, aggregates, decimal.Zero)
	if !errors.Is(err, roster.ErrMixedEmployees) {
		t.Fatalf("err = %v, want ErrMixedEmployees", err)
	}
}

// =============================================================================
// OFFSET TABLE AND BULK BUILD
// =============================================================================

func TestOffsetTable_LookupDefaultsToZero(t *testing.T) {
	// GIVEN: An offset table and a nil table
	// THEN: Present names resolve, absent names and nil tables yield zero

	offsets := roster.OffsetTable{"Alice": dec("2.5")}
	assertDecimal(t, offsets.Lookup("Alice"), "2.5", "present name")
	assertDecimal(t, offsets.Lookup("Bob"), "0", "absent name")

	var none roster.OffsetTable
	assertDecimal(t, none.Lookup("Alice"), "0", "nil table")
}

func TestBuildAllSummaries_SeedsOffsetsByName(t *testing.T) {
	// GIVEN: Aggregates for two employees and an offset keyed by name
	// WHEN: Building all summaries
	// THEN: Offsets join on the display name; unseeded employees start
	//       from zero

	aggregates := []roster.MonthlyAggregate{
		monthAgg(empAlice, ym(2024, time.January), "1"),
		monthAgg(empBob, ym(2024, time.January), "1"),
	}
	offsets := roster.OffsetTable{"Bob": dec("-0.5")}

	summaries, err := roster.BuildAllSummaries(aggregates, offsets)
	if err != nil {
		t.Fatalf("BuildAllSummaries failed: %v", err)
	}
	assertDecimal(t, summaries[0].CumulativeBalance, "1", "alice unseeded")
	assertDecimal(t, summaries[1].CumulativeBalance, "0.5", "bob seeded")
}
