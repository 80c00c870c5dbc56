/*
Package ingest reads monthly roster CSV files and turns them into
normalized, adjusted day records ready for aggregation or storage.

PURPOSE:
  The engine core in package roster is pure: it sees cells, not files.
  This package owns the file-shaped concerns: CSV parsing, the YYYY-MM
  filename convention, directory scans, and the initial-offset seed file.

FILE FORMAT:
  Row 1: <label>, <label>, day numbers (1..N)
  Row 2: <label>, <label>, weekday names (星期一 .. 星期日)
  Row 3: <label>, <label>, holiday flags ("Y" or blank)
  Rows 4+: employee id, employee name, one shift code per day column

  The filename carries the period: 2024-03.csv is March 2024. The header
  day count should match the month's length; a mismatch is logged and
  processing continues with whatever columns exist.

SEE ALSO:
  - roster/normalize.go: Cell-level normalization rules
  - roster/adjust.go: Cross-day adjustments applied after loading
*/
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/warp/roster-engine/roster"
)

// MonthFile is one parsed roster file: its period plus the raw header
// and employee rows, before any normalization.
type MonthFile struct {
	Period roster.YearMonth
	Header roster.Header
	Rows   []roster.RawRow
}

// ParseReader parses roster CSV content for the given period.
func ParseReader(r io.Reader, period roster.YearMonth) (MonthFile, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows are normal, short ones are skipped later

	rows, err := cr.ReadAll()
	if err != nil {
		return MonthFile{}, fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(rows) < 3 {
		return MonthFile{}, fmt.Errorf("%s: roster needs 3 header rows, got %d rows", period, len(rows))
	}

	header := roster.Header{
		Days:     trimLeading(rows[0]),
		Weekdays: trimLeading(rows[1]),
		Holidays: trimLeading(rows[2]),
	}

	raw := make([]roster.RawRow, 0, len(rows)-3)
	for _, row := range rows[3:] {
		raw = append(raw, roster.RawRow(row))
	}

	return MonthFile{Period: period, Header: header, Rows: raw}, nil
}

// ParseFile parses one roster file, deriving the period from the
// YYYY-MM filename.
func ParseFile(path string) (MonthFile, error) {
	period, err := PeriodFromFilename(path)
	if err != nil {
		return MonthFile{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return MonthFile{}, fmt.Errorf("failed to open roster file: %w", err)
	}
	defer f.Close()

	mf, err := ParseReader(f, period)
	if err != nil {
		return MonthFile{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return mf, nil
}

// PeriodFromFilename extracts the YYYY-MM period from a roster filename
// such as "2024-03.csv" or "/data/2024-03.csv".
func PeriodFromFilename(path string) (roster.YearMonth, error) {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	ym, err := roster.ParseYearMonth(name)
	if err != nil {
		return roster.YearMonth{}, fmt.Errorf("filename %q does not carry a YYYY-MM period: %w", base, err)
	}
	return ym, nil
}

// trimLeading drops the two label columns a header row starts with.
func trimLeading(row []string) []string {
	if len(row) <= 2 {
		return nil
	}
	return row[2:]
}
