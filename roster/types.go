/*
Package roster provides the core attendance normalization and aggregation engine.

PURPOSE:
  This package turns raw monthly shift-roster cells into normalized per-day
  attendance records and folds those records into "banked rest day" balances
  per employee, per month, per year, and cumulatively across a multi-year
  span. It is a pure, in-memory batch engine: file parsing, persistence and
  presentation live in collaborator packages (ingest, store, api).

KEY CONCEPTS IN THIS FILE (types.go):
  - Category: What kind of duty a shift code represents
  - ShiftDefinition: A shift code with its base work value and category
  - Classification: The explicit Known/Unknown result of a table lookup
  - DayRecord: One normalized (employee, date) attendance record
  - EmployeeKey: Composite id+name key used for all grouping

DESIGN PRINCIPLES:
  1. Precision: Uses decimal.Decimal so halves and quarters are exact
  2. Totality: Unknown codes classify to a placeholder, never an error
  3. Explicitness: Unknown lookups are a tagged result, not a default object
  4. Immutability: Tables are built once; records are rewritten by copy

SEE ALSO:
  - table.go: The classification and weekday tables
  - normalize.go: Raw cell -> DayRecord
  - adjust.go: Work-value rewrites that need calendar context
  - monthly.go, summary.go: Aggregation over adjusted records
*/
package roster

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// CATEGORY - What kind of duty a shift code represents
// =============================================================================

type Category string

const (
	CategoryRest               Category = "rest"
	CategoryDay                Category = "day_shift"
	CategoryDayHalf            Category = "day_shift_half"
	CategoryNightSmall         Category = "night_shift_small"
	CategoryNightBig           Category = "night_shift_big"
	CategoryNightWhole         Category = "night_shift_whole"
	CategoryNightHandoff       Category = "night_shift_handoff"
	CategorySickLeave          Category = "sick_leave"
	CategoryMarriageLeave      Category = "marriage_leave"
	CategoryMaternityLeave     Category = "maternity_leave"
	CategoryLegalHolidayMarker Category = "legal_holiday"
	CategoryGroupWork          Category = "group_work"
	CategoryFeverWard          Category = "fever_ward"
	CategoryIsolationWard      Category = "isolation_ward"
	CategoryOphthalmology2     Category = "ophthalmology_2"
	CategoryICUWork            Category = "icu_work"
	CategoryNeurologyWork      Category = "neurology_work"
	CategoryNursingHalf        Category = "nursing_half"
	CategoryNursingRest        Category = "nursing_rest"
	CategoryUnknown            Category = "unknown"
)

// IsNightShift reports whether the category is any of the night-shift
// variants. The handoff day itself is the morning after a night shift and
// counts as part of the night rotation.
func (c Category) IsNightShift() bool {
	switch c {
	case CategoryNightSmall, CategoryNightBig, CategoryNightWhole, CategoryNightHandoff:
		return true
	}
	return false
}

// IsDayShift reports whether the category is a day-shift variant.
func (c Category) IsDayShift() bool {
	return c == CategoryDay || c == CategoryDayHalf
}

// IsLeave reports whether the category is a leave type.
func (c Category) IsLeave() bool {
	switch c {
	case CategorySickLeave, CategoryMarriageLeave, CategoryMaternityLeave:
		return true
	}
	return false
}

// IsSupportWork reports whether the category is a departmental support
// assignment (worked elsewhere, carried at zero base value in the table).
func (c Category) IsSupportWork() bool {
	switch c {
	case CategoryGroupWork, CategoryFeverWard, CategoryIsolationWard,
		CategoryOphthalmology2, CategoryICUWork, CategoryNeurologyWork:
		return true
	}
	return false
}

// IsOnDuty reports whether a record with this category counts as a workday.
// This is deliberately NOT "work value > 0": support work and leave start at
// a zero base value and only become positive after holiday adjustment, yet
// the employee is on the roster for that day. Only rest days, the legal
// holiday marker and unrecognized codes resolve to non-work.
func (c Category) IsOnDuty() bool {
	switch c {
	case CategoryRest, CategoryLegalHolidayMarker, CategoryUnknown:
		return false
	}
	return true
}

// HolidayConditioned reports whether the category belongs to the
// support-work-or-leave family whose work value is rewritten to 0 on a
// legal holiday and 1 otherwise (see adjust.go).
func (c Category) HolidayConditioned() bool {
	return c.IsSupportWork() || c.IsLeave()
}

// =============================================================================
// SHIFT DEFINITION - A code with its base work value
// =============================================================================

// ShiftDefinition maps one shift code to its base work value and category.
// Definitions are immutable: they are created once at table construction
// and shared by reference.
type ShiftDefinition struct {
	Code        string
	WorkValue   decimal.Decimal
	Category    Category
	Description string
}

// Classification is the result of a table lookup. Known is true when the
// code resolved to a real table entry; when false, Definition holds the
// synthetic zero-value placeholder for the raw code. Callers must branch on
// Known rather than duck-typing on placeholder fields.
type Classification struct {
	Known      bool
	Definition ShiftDefinition
}

// unknownDefinition builds the placeholder for an unrecognized code.
// Unknown codes are data-quality signals, not errors.
func unknownDefinition(code string) ShiftDefinition {
	return ShiftDefinition{
		Code:        code,
		WorkValue:   decimal.Zero,
		Category:    CategoryUnknown,
		Description: fmt.Sprintf("Unknown shift code: %s", code),
	}
}

// =============================================================================
// EMPLOYEE KEY - Composite id+name grouping key
// =============================================================================

// EmployeeKey identifies an employee in the dataset. The source keeps the
// pair because ids can be reused across roster generations while names can
// collide across ids; keeping both in a struct key preserves that risk
// explicitly instead of hiding it in string concatenation.
type EmployeeKey struct {
	ID   int
	Name string
}

func (k EmployeeKey) String() string {
	return fmt.Sprintf("%d-%s", k.ID, k.Name)
}

// =============================================================================
// DAY RECORD - One normalized (employee, date) cell
// =============================================================================

// DayRecord is one employee's attendance on one calendar day. Records are
// produced by the Normalizer and rewritten exactly once (work value only)
// by the Adjuster. (Employee, Date) is unique across a dataset.
type DayRecord struct {
	Employee EmployeeKey
	Date     Date

	Weekday   Weekday
	IsHoliday bool // legal-holiday flag from the roster header, not weekday-derived

	ShiftCode string
	WorkValue decimal.Decimal
	Category  Category
	Known     bool // false when the shift code did not resolve

	// Derived facets, fixed at normalization time.
	IsWorkDay    bool
	IsRestDay    bool
	IsWeekend    bool
	IsNightShift bool
	IsDayShift   bool
	IsLeave      bool
}

// =============================================================================
// WORK VALUES - The only fractions the engine deals in
// =============================================================================

var (
	workZero         = decimal.Zero
	workQuarter      = decimal.New(25, -2) // 0.25
	workHalf         = decimal.New(5, -1)  // 0.5
	workThreeQuarter = decimal.New(75, -2) // 0.75
	workFull         = decimal.New(1, 0)
)

// WorkValueFromString parses a stored work value. Used by the persistence
// layer; the engine itself only ever produces table values.
func WorkValueFromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}
