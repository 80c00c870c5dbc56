/*
handlers.go - HTTP API handlers for the roster reporting engine

PURPOSE:
  Exposes the computed roster aggregates via a read-only REST API.
  Handles HTTP request/response, JSON serialization, and delegates all
  computation to the roster package at dataset load time.

ENDPOINTS:
  Employees:
    GET /api/employees               List employees with career span
    GET /api/employees/{id}/summary  Full cross-period summary
    GET /api/employees/{id}/months   Per-month aggregates

  Months:
    GET /api/months/{ym}             All employees for one YYYY-MM

  Rankings:
    GET /api/rankings/balance?limit=   Banked-rest ranking
    GET /api/rankings/workload?limit=  Fulfilled-work ranking

  Reporting:
    GET /api/distribution            Shift code / category tally
    GET /api/trends/yearly           Per-year totals across employees

ARCHITECTURE:
  Handler holds an immutable Dataset computed once from the adjusted
  record stream. There is no mutation surface: re-importing source
  files and restarting (or calling Reload) is the only write path.

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Malformed id or period
  - 404: Unknown employee or empty month
  - 500: Internal errors

SEE ALSO:
  - dto.go: Response data structures
  - server.go: Router setup and middleware
  - roster/summary.go: The aggregates served here
*/
package api

import (
	"net/http"
	"sort"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/warp/roster-engine/roster"
)

// =============================================================================
// DATASET
// =============================================================================

// Dataset is everything the API serves, computed once from the adjusted
// record stream. All fields are read-only after construction.
type Dataset struct {
	Records    []roster.DayRecord
	Aggregates []roster.MonthlyAggregate
	Summaries  []*roster.EmployeeSummary
}

// BuildDataset derives the aggregate views from adjusted records.
func BuildDataset(records []roster.DayRecord, offsets roster.OffsetTable) (*Dataset, error) {
	aggregates := roster.AggregateAll(records)
	summaries, err := roster.BuildAllSummaries(aggregates, offsets)
	if err != nil {
		return nil, err
	}
	return &Dataset{
		Records:    records,
		Aggregates: aggregates,
		Summaries:  summaries,
	}, nil
}

// =============================================================================
// HANDLER
// =============================================================================

// Handler holds the served dataset. Safe for concurrent reads; Reload
// swaps the dataset atomically under the lock.
type Handler struct {
	mu      sync.RWMutex
	dataset *Dataset
	log     zerolog.Logger
}

// NewHandler creates a handler serving the given dataset.
func NewHandler(dataset *Dataset, log zerolog.Logger) *Handler {
	return &Handler{
		dataset: dataset,
		log:     log.With().Str("component", "api").Logger(),
	}
}

// Reload replaces the served dataset.
func (h *Handler) Reload(dataset *Dataset) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dataset = dataset
	h.log.Info().
		Int("records", len(dataset.Records)).
		Int("employees", len(dataset.Summaries)).
		Msg("dataset reloaded")
}

func (h *Handler) data() *Dataset {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.dataset
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployees returns all employees with their career span.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	ds := h.data()

	dtos := make([]EmployeeDTO, len(ds.Summaries))
	for i, s := range ds.Summaries {
		dtos[i] = toEmployeeDTO(s)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetEmployeeSummary returns the full cross-period summary for one
// employee id.
func (h *Handler) GetEmployeeSummary(w http.ResponseWriter, r *http.Request) {
	s, ok := h.findSummary(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toSummaryDTO(s))
}

// GetEmployeeMonths returns one employee's per-month aggregates.
func (h *Handler) GetEmployeeMonths(w http.ResponseWriter, r *http.Request) {
	s, ok := h.findSummary(w, r)
	if !ok {
		return
	}

	dtos := make([]MonthAggregateDTO, len(s.Months))
	for i, m := range s.Months {
		dtos[i] = toMonthDTO(m.MonthlyAggregate, m.Cumulative.String())
	}
	writeJSON(w, http.StatusOK, dtos)
}

// findSummary resolves the {id} route param to a summary, writing the
// error response itself when resolution fails. Duplicate ids with
// different names are a source-data defect; the first (name-ascending)
// match wins.
func (h *Handler) findSummary(w http.ResponseWriter, r *http.Request) (*roster.EmployeeSummary, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid employee id", err)
		return nil, false
	}

	for _, s := range h.data().Summaries {
		if s.Employee.ID == id {
			return s, true
		}
	}
	writeError(w, http.StatusNotFound, "Employee not found", nil)
	return nil, false
}

// =============================================================================
// MONTH HANDLERS
// =============================================================================

// GetMonth returns every employee's aggregate for one YYYY-MM period.
func (h *Handler) GetMonth(w http.ResponseWriter, r *http.Request) {
	ym, err := roster.ParseYearMonth(chi.URLParam(r, "ym"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period, want YYYY-MM", err)
		return
	}

	ds := h.data()
	var dtos []MonthAggregateDTO
	for _, agg := range ds.Aggregates {
		if agg.YearMonth != ym {
			continue
		}
		cumulative := ""
		if s := ds.summaryFor(agg.Employee); s != nil {
			if c, ok := s.CumulativeAt(ym); ok {
				cumulative = c.String()
			}
		}
		dtos = append(dtos, toMonthDTO(agg, cumulative))
	}
	if len(dtos) == 0 {
		writeError(w, http.StatusNotFound, "No records for period", nil)
		return
	}

	sort.SliceStable(dtos, func(i, j int) bool { return dtos[i].EmployeeID < dtos[j].EmployeeID })
	writeJSON(w, http.StatusOK, dtos)
}

func (ds *Dataset) summaryFor(employee roster.EmployeeKey) *roster.EmployeeSummary {
	for _, s := range ds.Summaries {
		if s.Employee == employee {
			return s
		}
	}
	return nil
}

// =============================================================================
// RANKING HANDLERS
// =============================================================================

// GetBalanceRanking returns employees ranked by cumulative banked rest.
// Query param limit caps the list, default 10, 0 means all.
func (h *Handler) GetBalanceRanking(w http.ResponseWriter, r *http.Request) {
	ranks := roster.TopByBalance(h.data().Summaries, limitParam(r))

	dtos := make([]BalanceRankDTO, len(ranks))
	for i, rk := range ranks {
		dtos[i] = BalanceRankDTO{
			Rank:              i + 1,
			EmployeeID:        rk.Employee.ID,
			EmployeeName:      rk.Employee.Name,
			CumulativeBalance: rk.CumulativeBalance.String(),
			Months:            rk.Months,
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetWorkloadRanking returns employees ranked by total fulfilled work.
func (h *Handler) GetWorkloadRanking(w http.ResponseWriter, r *http.Request) {
	ranks := roster.TopByWorkload(h.data().Aggregates, limitParam(r))

	dtos := make([]WorkloadRankDTO, len(ranks))
	for i, rk := range ranks {
		dtos[i] = WorkloadRankDTO{
			Rank:          i + 1,
			EmployeeID:    rk.Employee.ID,
			EmployeeName:  rk.Employee.Name,
			FulfilledWork: rk.FulfilledWorkValue.String(),
			WorkDays:      rk.WorkDays,
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

func limitParam(r *http.Request) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 10
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 10
	}
	return n
}

// =============================================================================
// REPORTING HANDLERS
// =============================================================================

// GetDistribution returns the shift code and category tally over the
// whole dataset.
func (h *Handler) GetDistribution(w http.ResponseWriter, r *http.Request) {
	dist := roster.CategoryDistribution(h.data().Records)

	byCategory := make(map[string]int, len(dist.ByCategory))
	for cat, n := range dist.ByCategory {
		byCategory[string(cat)] = n
	}
	writeJSON(w, http.StatusOK, DistributionDTO{
		TotalRecords:   dist.TotalRecords,
		ByShiftCode:    dist.ByShiftCode,
		ByCategory:     byCategory,
		UnknownRecords: dist.UnknownRecords,
	})
}

// GetYearlyTrend returns per-year totals across all employees.
func (h *Handler) GetYearlyTrend(w http.ResponseWriter, r *http.Request) {
	trends := roster.YearlyTrend(h.data().Summaries)

	dtos := make([]YearTrendDTO, len(trends))
	for i, t := range trends {
		dtos[i] = YearTrendDTO{
			Year:          t.Year,
			Employees:     t.Employees,
			LegalWorkdays: t.LegalWorkdayCount,
			FulfilledWork: t.FulfilledWorkValue.String(),
			Balance:       t.Balance.String(),
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}
