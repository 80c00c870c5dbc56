/*
store.go - Persistence interface for normalized day records

PURPOSE:
  Defines the boundary between the engine and whatever holds the dataset.
  The engine computes aggregates from in-memory record slices; a store
  keeps the normalized, adjusted records between batch runs so reporting
  does not re-parse the source files.

UNIQUENESS CONTRACT:
  (Employee, Date) is unique across the dataset. SaveRecords for an
  already-stored pair replaces the previous record: a re-run of a
  corrected source month must win over stale data.

ORDERING CONTRACT:
  LoadByEmployee returns records in ascending date order, ready for the
  Adjuster and the cumulative fold. Implementations own that sort.

IMPLEMENTATIONS:
  - roster/store: in-memory, for tests and one-shot CLI runs
  - store/sqlite: durable, for the API server
*/
package roster

import "context"

// RecordStore persists normalized day records.
type RecordStore interface {
	// SaveRecords upserts a batch of records; an existing (employee, date)
	// pair is replaced.
	SaveRecords(ctx context.Context, records []DayRecord) error

	// LoadByEmployee returns one employee's records ascending by date.
	LoadByEmployee(ctx context.Context, employee EmployeeKey) ([]DayRecord, error)

	// LoadRange returns all records with dates in [from, to], ordered by
	// employee id/name then date.
	LoadRange(ctx context.Context, from, to Date) ([]DayRecord, error)

	// LoadAll returns the whole dataset, ordered by employee id/name then
	// date.
	LoadAll(ctx context.Context) ([]DayRecord, error)

	// Employees lists the distinct employee keys on record, sorted by id
	// then name.
	Employees(ctx context.Context) ([]EmployeeKey, error)
}
