/*
table.go - Shift classification and weekday tables

PURPOSE:
  Static lookup tables mapping a raw shift code to its base work value and
  category, and a weekday header label to its resolved weekday. Both are
  total functions: unrecognized input yields an explicit Unknown result,
  never an error.

TABLE VERSIONS:
  The source data spans two generations of the roster with one disputed
  entry: the nursing-half code 哺乳半. The legacy table credits it 0.5 day;
  the current table credits 0.75 (two of its eight hours count as worked
  rest, four are actually worked, so the day nets six of eight hours).
  Both versions are available; VersionCurrent is the default.

BASE VALUES vs FINAL VALUES:
  Table values are BASE values. Two of them are conditional and rewritten
  after normalization (see adjust.go):
    - 下 (night handoff) base 1, becomes 0.5 after a consecutive 小
    - support work and leave codes base 0, become 0 or 1 by holiday flag

SEE ALSO:
  - types.go: ShiftDefinition, Classification, Category
  - normalize.go: The only consumer of Classify during normalization
*/
package roster

// =============================================================================
// TABLE VERSION
// =============================================================================

type TableVersion string

const (
	// VersionLegacy credits 哺乳半 at 0.5 day.
	VersionLegacy TableVersion = "legacy"
	// VersionCurrent credits 哺乳半 at 0.75 day.
	VersionCurrent TableVersion = "current"
)

// =============================================================================
// CLASSIFICATION TABLE
// =============================================================================

// Table is the immutable shift classification table. Build one with
// NewTable at startup and share it by reference; it is never mutated.
type Table struct {
	version     TableVersion
	definitions map[string]ShiftDefinition
}

// NewTable builds the classification table for the given version.
func NewTable(version TableVersion) *Table {
	nursingHalf := workThreeQuarter
	if version == VersionLegacy {
		nursingHalf = workHalf
	}

	defs := []ShiftDefinition{
		{Code: "休", WorkValue: workZero, Category: CategoryRest, Description: "Rest day"},
		{Code: "白", WorkValue: workFull, Category: CategoryDay, Description: "Day shift"},
		{Code: "半", WorkValue: workHalf, Category: CategoryDayHalf, Description: "Day shift (half)"},
		{Code: "小", WorkValue: workFull, Category: CategoryNightSmall, Description: "Night shift (small)"},
		{Code: "大", WorkValue: workFull, Category: CategoryNightBig, Description: "Night shift (big)"},
		{Code: "夜", WorkValue: workFull, Category: CategoryNightWhole, Description: "Night shift (whole)"},
		{Code: "下", WorkValue: workFull, Category: CategoryNightHandoff, Description: "Night shift handoff day"},
		{Code: "病假", WorkValue: workZero, Category: CategorySickLeave, Description: "Sick leave"},
		{Code: "婚假", WorkValue: workZero, Category: CategoryMarriageLeave, Description: "Marriage leave"},
		{Code: "产假", WorkValue: workZero, Category: CategoryMaternityLeave, Description: "Maternity leave"},
		{Code: "公休日", WorkValue: workZero, Category: CategoryLegalHolidayMarker, Description: "Legal holiday"},
		{Code: "群力", WorkValue: workZero, Category: CategoryGroupWork, Description: "Group work"},
		{Code: "发热病房", WorkValue: workZero, Category: CategoryFeverWard, Description: "Fever ward support"},
		{Code: "隔离", WorkValue: workZero, Category: CategoryIsolationWard, Description: "Isolation ward support"},
		{Code: "眼二", WorkValue: workZero, Category: CategoryOphthalmology2, Description: "Ophthalmology-2 support"},
		{Code: "ICU", WorkValue: workZero, Category: CategoryICUWork, Description: "ICU support"},
		{Code: "神内", WorkValue: workZero, Category: CategoryNeurologyWork, Description: "Neurology support"},
		{Code: "哺乳半", WorkValue: nursingHalf, Category: CategoryNursingHalf, Description: "Nursing half shift"},
		{Code: "哺乳休", WorkValue: workQuarter, Category: CategoryNursingRest, Description: "Nursing rest day"},
	}

	m := make(map[string]ShiftDefinition, len(defs))
	for _, d := range defs {
		m[d.Code] = d
	}
	return &Table{version: version, definitions: m}
}

// Version returns the table version this table was built with.
func (t *Table) Version() TableVersion { return t.version }

// Classify resolves a shift code. Total over strings: known codes return
// their definition with Known=true, anything else returns the synthetic
// zero-value placeholder with Known=false.
func (t *Table) Classify(code string) Classification {
	if def, ok := t.definitions[code]; ok {
		return Classification{Known: true, Definition: def}
	}
	return Classification{Known: false, Definition: unknownDefinition(code)}
}

// Codes returns all known shift codes. Used by reporting to separate known
// from unknown codes in distribution counts.
func (t *Table) Codes() []string {
	codes := make([]string, 0, len(t.definitions))
	for code := range t.definitions {
		codes = append(codes, code)
	}
	return codes
}

// =============================================================================
// WEEKDAY TABLE
// =============================================================================

// weekdayNames maps the roster header's weekday labels. 0=Sunday..6=Saturday.
var weekdayNames = map[string]Weekday{
	"星期一": {English: "Monday", Number: 1},
	"星期二": {English: "Tuesday", Number: 2},
	"星期三": {English: "Wednesday", Number: 3},
	"星期四": {English: "Thursday", Number: 4},
	"星期五": {English: "Friday", Number: 5},
	"星期六": {English: "Saturday", Number: 6},
	"星期日": {English: "Sunday", Number: 0},
}

// ResolveWeekday maps weekday header text to a Weekday. Unresolvable text
// yields WeekdayUnknown rather than an error; the record still counts.
func ResolveWeekday(text string) Weekday {
	if wd, ok := weekdayNames[text]; ok {
		return wd
	}
	return WeekdayUnknown
}
