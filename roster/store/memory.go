// Package store provides RecordStore implementations.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/roster-engine/roster"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/CLI runs)
// =============================================================================

type Memory struct {
	mu    sync.RWMutex
	byDay map[dayKey]roster.DayRecord
}

type dayKey struct {
	Employee roster.EmployeeKey
	Date     roster.Date
}

func NewMemory() *Memory {
	return &Memory{byDay: make(map[dayKey]roster.DayRecord)}
}

// SaveRecords upserts records; the last write for an (employee, date)
// pair wins, matching the re-run-a-corrected-month contract.
func (m *Memory) SaveRecords(_ context.Context, records []roster.DayRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range records {
		m.byDay[dayKey{Employee: r.Employee, Date: r.Date}] = r
	}
	return nil
}

func (m *Memory) LoadByEmployee(_ context.Context, employee roster.EmployeeKey) ([]roster.DayRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []roster.DayRecord
	for k, r := range m.byDay {
		if k.Employee == employee {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (m *Memory) LoadRange(_ context.Context, from, to roster.Date) ([]roster.DayRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []roster.DayRecord
	for _, r := range m.byDay {
		if !r.Date.Before(from) && !r.Date.After(to) {
			result = append(result, r)
		}
	}
	sortDataset(result)
	return result, nil
}

func (m *Memory) LoadAll(_ context.Context) ([]roster.DayRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]roster.DayRecord, 0, len(m.byDay))
	for _, r := range m.byDay {
		result = append(result, r)
	}
	sortDataset(result)
	return result, nil
}

func (m *Memory) Employees(_ context.Context) ([]roster.EmployeeKey, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[roster.EmployeeKey]bool)
	var keys []roster.EmployeeKey
	for k := range m.byDay {
		if !seen[k.Employee] {
			seen[k.Employee] = true
			keys = append(keys, k.Employee)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].ID != keys[j].ID {
			return keys[i].ID < keys[j].ID
		}
		return keys[i].Name < keys[j].Name
	})
	return keys, nil
}

// sortDataset orders by employee id/name, then date: the canonical
// dataset order every load method promises.
func sortDataset(records []roster.DayRecord) {
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.Employee.ID != b.Employee.ID {
			return a.Employee.ID < b.Employee.ID
		}
		if a.Employee.Name != b.Employee.Name {
			return a.Employee.Name < b.Employee.Name
		}
		return a.Date.Before(b.Date)
	})
}
