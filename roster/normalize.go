/*
normalize.go - Raw roster cells to DayRecords

PURPOSE:
  The Day Normalizer. Takes one already-parsed roster table (three header
  rows plus one row per employee) and produces normalized DayRecords with
  resolved work values, categories and calendar facets.

INPUT SHAPE (from the ingest collaborator):
  Header row 1: day numbers      ("1", "2", ... for each calendar day)
  Header row 2: weekday names    ("星期三", ...)
  Header row 3: holiday flags    ("Y" marks a legal holiday)
  Each employee row: [id, name, cell-per-day...]

ERROR POLICY:
  Nothing here fails the batch. Malformed rows are skipped, impossible
  days are dropped, unknown codes and weekday text resolve to explicit
  sentinels. Every such event increments a Stats counter so callers can
  audit data quality without interrupting processing.

SEE ALSO:
  - adjust.go: Runs AFTER normalization, over per-employee sorted records
  - table.go: Classification delegated there
*/
package roster

import (
	"strconv"
	"strings"
)

// =============================================================================
// RAW INPUT - Already-parsed text cells
// =============================================================================

// RawRow is one employee row: column 0 is the numeric id, column 1 the
// display name, columns 2.. one cell per calendar day in header order.
type RawRow []string

// Header carries the three roster header rows, already split into cells
// and with the two leading label columns removed.
type Header struct {
	Days     []string
	Weekdays []string
	Holidays []string
}

// DayCount returns the number of day columns the header declares.
func (h Header) DayCount() int { return len(h.Days) }

// =============================================================================
// STATS - Data-quality counters (not errors)
// =============================================================================

// Stats counts the data-quality events of one normalization pass.
type Stats struct {
	Records         int
	SkippedRows     int
	EmptyCells      int
	DroppedCells    int // calendar-impossible or unparsable day numbers
	UnknownCodes    int
	UnknownWeekdays int
}

// Add merges another pass's counters into s.
func (s *Stats) Add(other Stats) {
	s.Records += other.Records
	s.SkippedRows += other.SkippedRows
	s.EmptyCells += other.EmptyCells
	s.DroppedCells += other.DroppedCells
	s.UnknownCodes += other.UnknownCodes
	s.UnknownWeekdays += other.UnknownWeekdays
}

// =============================================================================
// NORMALIZER
// =============================================================================

// Normalizer turns raw cells into DayRecords using a classification table.
// It is stateless apart from the shared immutable table and safe for
// concurrent use across employees.
type Normalizer struct {
	table *Table
}

func NewNormalizer(table *Table) *Normalizer {
	return &Normalizer{table: table}
}

// HeaderMatchesMonth reports whether the header declares exactly as many
// day columns as the month has days. A mismatch is worth a warning at the
// caller but does not stop processing.
func (n *Normalizer) HeaderMatchesMonth(header Header, ym YearMonth) bool {
	return header.DayCount() == DaysInMonth(ym.Year, ym.Month)
}

// NormalizeCell normalizes a single roster cell. Empty or whitespace-only
// cells produce no record and return false; that is an intentional gap in
// the roster, not a zero-value day.
func (n *Normalizer) NormalizeCell(employee EmployeeKey, raw string, date Date, weekdayText string, isHoliday bool) (DayRecord, bool) {
	code := strings.TrimSpace(raw)
	if code == "" {
		return DayRecord{}, false
	}

	cls := n.table.Classify(code)
	def := cls.Definition
	weekday := ResolveWeekday(strings.TrimSpace(weekdayText))

	return DayRecord{
		Employee:     employee,
		Date:         date,
		Weekday:      weekday,
		IsHoliday:    isHoliday,
		ShiftCode:    code,
		WorkValue:    def.WorkValue,
		Category:     def.Category,
		Known:        cls.Known,
		IsWorkDay:    def.Category.IsOnDuty(),
		IsRestDay:    !def.Category.IsOnDuty(),
		IsWeekend:    weekday.IsWeekend(),
		IsNightShift: def.Category.IsNightShift(),
		IsDayShift:   def.Category.IsDayShift(),
		IsLeave:      def.Category.IsLeave(),
	}, true
}

// NormalizeRow normalizes one employee row against the header for the
// given month. Rows without a parsable id or a non-blank name are skipped
// entirely (counted, not failed).
func (n *Normalizer) NormalizeRow(row RawRow, header Header, ym YearMonth) ([]DayRecord, Stats) {
	var stats Stats

	if len(row) < 3 {
		stats.SkippedRows++
		return nil, stats
	}
	id, err := strconv.Atoi(strings.TrimSpace(row[0]))
	name := strings.TrimSpace(row[1])
	if err != nil || id <= 0 || name == "" {
		stats.SkippedRows++
		return nil, stats
	}
	employee := EmployeeKey{ID: id, Name: name}

	var records []DayRecord
	for col, dayText := range header.Days {
		day, err := strconv.Atoi(strings.TrimSpace(dayText))
		if err != nil || day < 1 || day > 31 {
			stats.DroppedCells++
			continue
		}
		date := NewDate(ym.Year, ym.Month, day)
		if !date.Valid() {
			// Day number beyond the month's actual length, e.g. 31 in April.
			stats.DroppedCells++
			continue
		}

		cellIdx := col + 2
		if cellIdx >= len(row) {
			stats.EmptyCells++
			continue
		}

		weekdayText := ""
		if col < len(header.Weekdays) {
			weekdayText = header.Weekdays[col]
		}
		isHoliday := false
		if col < len(header.Holidays) {
			isHoliday = strings.TrimSpace(header.Holidays[col]) == "Y"
		}

		record, ok := n.NormalizeCell(employee, row[cellIdx], date, weekdayText, isHoliday)
		if !ok {
			stats.EmptyCells++
			continue
		}
		if !record.Known {
			stats.UnknownCodes++
		}
		if record.Weekday.IsUnknown() {
			stats.UnknownWeekdays++
		}
		records = append(records, record)
	}

	stats.Records = len(records)
	return records, stats
}

// NormalizeTable normalizes every employee row of one monthly roster.
func (n *Normalizer) NormalizeTable(rows []RawRow, header Header, ym YearMonth) ([]DayRecord, Stats) {
	var all []DayRecord
	var stats Stats
	for _, row := range rows {
		records, rowStats := n.NormalizeRow(row, header, ym)
		all = append(all, records...)
		stats.Add(rowStats)
	}
	return all, stats
}
