/*
Package sqlite provides a SQLite-backed implementation of roster.RecordStore.

PURPOSE:
  Durable storage for the normalized, adjusted day records so the API
  server can answer reporting queries without re-parsing source files.
  The same SQL shape works on PostgreSQL with minor dialect changes.

KEY TABLES:
  day_records:    One row per (employee, date); upsert on conflict so a
                  re-converted source month replaces stale rows
  import_batches: One row per ingestion run, for auditing what was loaded

UNIQUENESS:
  The unique index on (employee_id, employee_name, date) enforces the
  dataset invariant at the database level; SaveRecords upserts against it.

WORK VALUES:
  Stored as TEXT and parsed back through decimal so halves and quarters
  survive round-trips exactly. REAL columns would reintroduce the float
  drift the engine exists to avoid.

WAL MODE:
  Opened with WAL so the reporting API's readers do not block a running
  import.

USAGE:
  st, err := sqlite.New("./data/roster.db")
  if err != nil { ... }
  defer st.Close()
  err = st.SaveRecords(ctx, records)

SEE ALSO:
  - roster/store.go: Interface definition
  - roster/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/roster-engine/roster"
)

// Store implements roster.RecordStore using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Compile-time interface check.
var _ roster.RecordStore = (*Store)(nil)

// New creates a SQLite store at the given path. Use ":memory:" for an
// in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	-- Normalized, adjusted day records
	CREATE TABLE IF NOT EXISTS day_records (
		employee_id INTEGER NOT NULL,
		employee_name TEXT NOT NULL,
		date TEXT NOT NULL,           -- YYYY-MM-DD
		weekday_name TEXT NOT NULL,
		weekday_number INTEGER NOT NULL,
		is_holiday BOOLEAN NOT NULL,
		shift_code TEXT NOT NULL,
		work_value TEXT NOT NULL,     -- decimal string, never REAL
		category TEXT NOT NULL,
		known BOOLEAN NOT NULL,
		is_work_day BOOLEAN NOT NULL,
		is_rest_day BOOLEAN NOT NULL,
		is_weekend BOOLEAN NOT NULL,
		is_night_shift BOOLEAN NOT NULL,
		is_day_shift BOOLEAN NOT NULL,
		is_leave BOOLEAN NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- The dataset invariant: one record per (employee, date)
	CREATE UNIQUE INDEX IF NOT EXISTS idx_day_records_employee_date
		ON day_records(employee_id, employee_name, date);

	CREATE INDEX IF NOT EXISTS idx_day_records_date
		ON day_records(date);

	-- Ingestion audit trail
	CREATE TABLE IF NOT EXISTS import_batches (
		id TEXT PRIMARY KEY,
		source_dir TEXT NOT NULL,
		files_processed INTEGER NOT NULL,
		records INTEGER NOT NULL,
		skipped_rows INTEGER NOT NULL,
		dropped_cells INTEGER NOT NULL,
		unknown_codes INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// RECORD STORE (roster.RecordStore interface)
// =============================================================================

const upsertRecord = `
	INSERT INTO day_records
	(employee_id, employee_name, date, weekday_name, weekday_number, is_holiday,
	 shift_code, work_value, category, known, is_work_day, is_rest_day,
	 is_weekend, is_night_shift, is_day_shift, is_leave, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(employee_id, employee_name, date) DO UPDATE SET
		weekday_name=excluded.weekday_name,
		weekday_number=excluded.weekday_number,
		is_holiday=excluded.is_holiday,
		shift_code=excluded.shift_code,
		work_value=excluded.work_value,
		category=excluded.category,
		known=excluded.known,
		is_work_day=excluded.is_work_day,
		is_rest_day=excluded.is_rest_day,
		is_weekend=excluded.is_weekend,
		is_night_shift=excluded.is_night_shift,
		is_day_shift=excluded.is_day_shift,
		is_leave=excluded.is_leave,
		updated_at=excluded.updated_at
`

// SaveRecords upserts a batch atomically.
func (s *Store) SaveRecords(ctx context.Context, records []roster.DayRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, upsertRecord)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, r := range records {
		_, err := stmt.ExecContext(ctx,
			r.Employee.ID,
			r.Employee.Name,
			r.Date.String(),
			r.Weekday.English,
			r.Weekday.Number,
			r.IsHoliday,
			r.ShiftCode,
			r.WorkValue.String(),
			string(r.Category),
			r.Known,
			r.IsWorkDay,
			r.IsRestDay,
			r.IsWeekend,
			r.IsNightShift,
			r.IsDayShift,
			r.IsLeave,
			now,
		)
		if err != nil {
			return fmt.Errorf("failed to save record %s/%s: %w", r.Employee, r.Date, err)
		}
	}

	return tx.Commit()
}

const selectRecord = `
	SELECT employee_id, employee_name, date, weekday_name, weekday_number,
	       is_holiday, shift_code, work_value, category, known, is_work_day,
	       is_rest_day, is_weekend, is_night_shift, is_day_shift, is_leave
	FROM day_records
`

// LoadByEmployee returns one employee's records ascending by date.
func (s *Store) LoadByEmployee(ctx context.Context, employee roster.EmployeeKey) ([]roster.DayRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := selectRecord + ` WHERE employee_id = ? AND employee_name = ? ORDER BY date ASC`
	return s.queryRecords(ctx, query, employee.ID, employee.Name)
}

// LoadRange returns records with dates in [from, to].
func (s *Store) LoadRange(ctx context.Context, from, to roster.Date) ([]roster.DayRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := selectRecord + ` WHERE date >= ? AND date <= ?
		ORDER BY employee_id ASC, employee_name ASC, date ASC`
	return s.queryRecords(ctx, query, from.String(), to.String())
}

// LoadAll returns the whole dataset.
func (s *Store) LoadAll(ctx context.Context) ([]roster.DayRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := selectRecord + ` ORDER BY employee_id ASC, employee_name ASC, date ASC`
	return s.queryRecords(ctx, query)
}

// Employees lists the distinct employees on record.
func (s *Store) Employees(ctx context.Context) ([]roster.EmployeeKey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT employee_id, employee_name FROM day_records
		ORDER BY employee_id ASC, employee_name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var keys []roster.EmployeeKey
	for rows.Next() {
		var k roster.EmployeeKey
		if err := rows.Scan(&k.ID, &k.Name); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

func (s *Store) queryRecords(ctx context.Context, query string, args ...any) ([]roster.DayRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []roster.DayRecord
	for rows.Next() {
		var (
			r         roster.DayRecord
			dateStr   string
			workValue string
			category  string
		)
		err := rows.Scan(
			&r.Employee.ID,
			&r.Employee.Name,
			&dateStr,
			&r.Weekday.English,
			&r.Weekday.Number,
			&r.IsHoliday,
			&r.ShiftCode,
			&workValue,
			&category,
			&r.Known,
			&r.IsWorkDay,
			&r.IsRestDay,
			&r.IsWeekend,
			&r.IsNightShift,
			&r.IsDayShift,
			&r.IsLeave,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}

		r.Date, err = parseDate(dateStr)
		if err != nil {
			return nil, err
		}
		r.WorkValue, err = roster.WorkValueFromString(workValue)
		if err != nil {
			return nil, fmt.Errorf("corrupt work value %q: %w", workValue, err)
		}
		r.Category = roster.Category(category)
		records = append(records, r)
	}
	return records, rows.Err()
}

func parseDate(s string) (roster.Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return roster.Date{}, fmt.Errorf("corrupt date %q: %w", s, err)
	}
	return roster.NewDate(t.Year(), t.Month(), t.Day()), nil
}

// =============================================================================
// IMPORT BATCHES - Ingestion audit trail
// =============================================================================

// ImportBatch records one ingestion run.
type ImportBatch struct {
	ID             string
	SourceDir      string
	FilesProcessed int
	Stats          roster.Stats
	CreatedAt      time.Time
}

// RecordImport persists an import batch entry.
func (s *Store) RecordImport(ctx context.Context, batch ImportBatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO import_batches
		(id, source_dir, files_processed, records, skipped_rows, dropped_cells, unknown_codes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		batch.ID,
		batch.SourceDir,
		batch.FilesProcessed,
		batch.Stats.Records,
		batch.Stats.SkippedRows,
		batch.Stats.DroppedCells,
		batch.Stats.UnknownCodes,
		batch.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to record import batch: %w", err)
	}
	return nil
}
