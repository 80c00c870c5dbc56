/*
errors.go - Centralized error types for the roster engine

PURPOSE:
  All engine error types in one place. The engine distinguishes sharply
  between data-quality issues and contract violations:

  DATA QUALITY (never errors, surfaced as counters):
    - Unknown shift codes
    - Unresolvable weekday text
    - Malformed rows, calendar-impossible days
    - Missing initial-offset entries

  CONTRACT VIOLATIONS (fail loudly):
    - Unsorted records handed to the Adjuster
    - Unordered monthly aggregates handed to the summary fold

  A silent tolerance of misordering would corrupt the cumulative balance,
  so ordering preconditions are checked and reported, not assumed.
*/
package roster

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrUnsortedRecords is returned when the Adjuster receives records
	// that are not in ascending date order for one employee.
	ErrUnsortedRecords = errors.New("records not sorted ascending by date")

	// ErrUnorderedPeriods is returned when the cross-period fold receives
	// monthly aggregates out of chronological order.
	ErrUnorderedPeriods = errors.New("monthly aggregates not in chronological order")

	// ErrMixedEmployees is returned when a per-employee operation receives
	// records or aggregates belonging to more than one employee.
	ErrMixedEmployees = errors.New("records belong to more than one employee")
)

// =============================================================================
// STRUCTURED ERRORS - Carry position context
// =============================================================================

// UnorderedPeriodsError reports where the chronological precondition broke.
type UnorderedPeriodsError struct {
	Employee EmployeeKey
	Previous YearMonth
	Current  YearMonth
	Index    int
}

func (e *UnorderedPeriodsError) Error() string {
	return fmt.Sprintf("aggregates for %s out of order at index %d: %s after %s",
		e.Employee, e.Index, e.Current, e.Previous)
}

func (e *UnorderedPeriodsError) Unwrap() error { return ErrUnorderedPeriods }

// UnsortedRecordsError reports where the ascending-date precondition broke.
type UnsortedRecordsError struct {
	Employee EmployeeKey
	Previous Date
	Current  Date
	Index    int
}

func (e *UnsortedRecordsError) Error() string {
	return fmt.Sprintf("records for %s out of order at index %d: %s after %s",
		e.Employee, e.Index, e.Current, e.Previous)
}

func (e *UnsortedRecordsError) Unwrap() error { return ErrUnsortedRecords }
