package roster_test

import (
	"testing"

	"github.com/warp/roster-engine/roster"
)

// =============================================================================
// CLASSIFICATION TABLE
// =============================================================================

func TestTable_KnownCodes_ResolveWithBaseValues(t *testing.T) {
	// GIVEN: The current classification table
	// WHEN: Classifying representative codes
	// THEN: Each resolves Known with its base work value and category

	table := roster.NewTable(roster.VersionCurrent)

	cases := []struct {
		code     string
		value    string
		category roster.Category
	}{
		{"休", "0", roster.CategoryRest},
		{"白", "1", roster.CategoryDay},
		{"半", "0.5", roster.CategoryDayHalf},
		{"小", "1", roster.CategoryNightSmall},
		{"大", "1", roster.CategoryNightBig},
		{"夜", "1", roster.CategoryNightWhole},
		{"下", "1", roster.CategoryNightHandoff},
		{"病假", "0", roster.CategorySickLeave},
		{"产假", "0", roster.CategoryMaternityLeave},
		{"公休日", "0", roster.CategoryLegalHolidayMarker},
		{"群力", "0", roster.CategoryGroupWork},
		{"ICU", "0", roster.CategoryICUWork},
		{"哺乳半", "0.75", roster.CategoryNursingHalf},
		{"哺乳休", "0.25", roster.CategoryNursingRest},
	}

	for _, tc := range cases {
		cls := table.Classify(tc.code)
		if !cls.Known {
			t.Errorf("%s: classified unknown", tc.code)
			continue
		}
		if cls.Definition.Category != tc.category {
			t.Errorf("%s: category %s, want %s", tc.code, cls.Definition.Category, tc.category)
		}
		assertDecimal(t, cls.Definition.WorkValue, tc.value, tc.code+" base value")
	}
}

func TestTable_UnknownCode_IsTaggedNotErrored(t *testing.T) {
	// GIVEN: A code the table has never seen
	// WHEN: Classifying it
	// THEN: The result is Known=false with a zero-value placeholder that
	//       still carries the raw code

	table := roster.NewTable(roster.VersionCurrent)

	cls := table.Classify("???")
	if cls.Known {
		t.Error("unknown code classified as known")
	}
	if cls.Definition.Code != "???" {
		t.Errorf("placeholder code = %q, want %q", cls.Definition.Code, "???")
	}
	if cls.Definition.Category != roster.CategoryUnknown {
		t.Errorf("placeholder category = %s, want %s", cls.Definition.Category, roster.CategoryUnknown)
	}
	assertDecimal(t, cls.Definition.WorkValue, "0", "placeholder value")
}

func TestTable_LegacyVersion_CreditsNursingHalfLower(t *testing.T) {
	// GIVEN: The legacy table version
	// WHEN: Classifying the nursing-half code
	// THEN: It carries 0.5 instead of the current 0.75

	legacy := roster.NewTable(roster.VersionLegacy)
	assertDecimal(t, legacy.Classify("哺乳半").Definition.WorkValue, "0.5", "legacy nursing half")

	current := roster.NewTable(roster.VersionCurrent)
	assertDecimal(t, current.Classify("哺乳半").Definition.WorkValue, "0.75", "current nursing half")
}

// =============================================================================
// CATEGORY FACETS
// =============================================================================

func TestCategory_OnDuty_OnlyRestHolidayMarkerAndUnknownAreOff(t *testing.T) {
	// GIVEN: Every category the table produces
	// THEN: Only rest, the legal-holiday marker and unknown are non-work;
	//       support work and leave keep the employee on duty despite their
	//       zero base value

	offDuty := map[roster.Category]bool{
		roster.CategoryRest:               true,
		roster.CategoryLegalHolidayMarker: true,
		roster.CategoryUnknown:            true,
	}

	table := roster.NewTable(roster.VersionCurrent)
	for _, code := range table.Codes() {
		cat := table.Classify(code).Definition.Category
		want := !offDuty[cat]
		if cat.IsOnDuty() != want {
			t.Errorf("%s (%s): IsOnDuty = %v, want %v", code, cat, cat.IsOnDuty(), want)
		}
	}
	if roster.CategoryUnknown.IsOnDuty() {
		t.Error("unknown category must not count as on duty")
	}
}

func TestCategory_HolidayConditioned_CoversSupportWorkAndLeave(t *testing.T) {
	// GIVEN: The support-work and leave categories
	// THEN: All are holiday-conditioned; shifts and rest are not

	conditioned := []roster.Category{
		roster.CategorySickLeave, roster.CategoryMarriageLeave, roster.CategoryMaternityLeave,
		roster.CategoryGroupWork, roster.CategoryFeverWard, roster.CategoryIsolationWard,
		roster.CategoryOphthalmology2, roster.CategoryICUWork, roster.CategoryNeurologyWork,
	}
	for _, c := range conditioned {
		if !c.HolidayConditioned() {
			t.Errorf("%s: expected holiday-conditioned", c)
		}
	}

	unconditioned := []roster.Category{
		roster.CategoryRest, roster.CategoryDay, roster.CategoryNightSmall,
		roster.CategoryNightHandoff, roster.CategoryNursingHalf, roster.CategoryUnknown,
	}
	for _, c := range unconditioned {
		if c.HolidayConditioned() {
			t.Errorf("%s: expected not holiday-conditioned", c)
		}
	}
}

// =============================================================================
// WEEKDAY TABLE
// =============================================================================

func TestResolveWeekday_MapsLabelsAndFlagsWeekends(t *testing.T) {
	// GIVEN: Roster weekday header labels
	// WHEN: Resolving them
	// THEN: Saturday and Sunday are weekends, unknown text resolves to
	//       the explicit unknown sentinel

	sat := roster.ResolveWeekday("星期六")
	if sat.English != "Saturday" || !sat.IsWeekend() {
		t.Errorf("星期六 resolved to %+v", sat)
	}
	sun := roster.ResolveWeekday("星期日")
	if sun.Number != 0 || !sun.IsWeekend() {
		t.Errorf("星期日 resolved to %+v", sun)
	}
	mon := roster.ResolveWeekday("星期一")
	if mon.IsWeekend() {
		t.Error("Monday flagged as weekend")
	}

	unknown := roster.ResolveWeekday("gibberish")
	if !unknown.IsUnknown() {
		t.Errorf("gibberish resolved to %+v, want unknown sentinel", unknown)
	}
}
