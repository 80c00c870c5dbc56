/*
dto.go - Data Transfer Objects for API responses

PURPOSE:
  Defines the JSON structures returned to clients. These types decouple
  the internal aggregate model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific formatting (decimal strings, date strings)
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Response: Wrappers around lists plus metadata

DECIMALS:
  All work values and balances are serialized as JSON strings ("1.5"),
  never floats. Clients that want arithmetic parse them; clients that
  want display print them as-is.

SEE ALSO:
  - handlers.go: Builds these from roster aggregates
  - roster/summary.go: The internal model these project
*/
package api

import (
	"github.com/warp/roster-engine/roster"
)

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// EmployeeDTO is one employee in the list endpoint, with career span.
type EmployeeDTO struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	FirstDate string `json:"first_date"`
	LastDate  string `json:"last_date"`
	Months    int    `json:"months"`
}

// MonthAggregateDTO is one employee-month rollup.
type MonthAggregateDTO struct {
	EmployeeID   int    `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Period       string `json:"period"` // YYYY-MM

	TotalDays         int    `json:"total_days"`
	LegalHolidayDays  int    `json:"legal_holiday_days"`
	LegalWorkdays     int    `json:"legal_workdays"`
	FulfilledWork     string `json:"fulfilled_work"`
	Balance           string `json:"balance"`
	CumulativeBalance string `json:"cumulative_balance,omitempty"`

	WorkDays           int            `json:"work_days"`
	RestDays           int            `json:"rest_days"`
	NightShifts        int            `json:"night_shifts"`
	DayShifts          int            `json:"day_shifts"`
	HolidayWork        int            `json:"holiday_work"`
	WeekendWork        int            `json:"weekend_work"`
	SickLeaveDays      int            `json:"sick_leave_days"`
	MaternityLeaveDays int            `json:"maternity_leave_days"`
	ShiftCodeCounts    map[string]int `json:"shift_code_counts"`
}

// YearTotalsDTO is one calendar year inside an employee summary.
type YearTotalsDTO struct {
	Year          int    `json:"year"`
	Months        int    `json:"months"`
	LegalWorkdays int    `json:"legal_workdays"`
	FulfilledWork string `json:"fulfilled_work"`
	Balance       string `json:"balance"`
}

// EmployeeSummaryDTO is the full cross-period rollup for one employee.
type EmployeeSummaryDTO struct {
	ID                int                 `json:"id"`
	Name              string              `json:"name"`
	InitialOffset     string              `json:"initial_offset"`
	CumulativeBalance string              `json:"cumulative_balance"`
	CareerFirstDate   string              `json:"career_first_date"`
	CareerLastDate    string              `json:"career_last_date"`
	Months            []MonthAggregateDTO `json:"months"`
	Years             []YearTotalsDTO     `json:"years"`
}

// BalanceRankDTO is one row of the banked-rest ranking.
type BalanceRankDTO struct {
	Rank              int    `json:"rank"`
	EmployeeID        int    `json:"employee_id"`
	EmployeeName      string `json:"employee_name"`
	CumulativeBalance string `json:"cumulative_balance"`
	Months            int    `json:"months"`
}

// WorkloadRankDTO is one row of the fulfilled-work ranking.
type WorkloadRankDTO struct {
	Rank          int    `json:"rank"`
	EmployeeID    int    `json:"employee_id"`
	EmployeeName  string `json:"employee_name"`
	FulfilledWork string `json:"fulfilled_work"`
	WorkDays      int    `json:"work_days"`
}

// DistributionDTO is the shift code / category tally.
type DistributionDTO struct {
	TotalRecords   int            `json:"total_records"`
	ByShiftCode    map[string]int `json:"by_shift_code"`
	ByCategory     map[string]int `json:"by_category"`
	UnknownRecords int            `json:"unknown_records"`
}

// YearTrendDTO is one year summed across all employees.
type YearTrendDTO struct {
	Year          int    `json:"year"`
	Employees     int    `json:"employees"`
	LegalWorkdays int    `json:"legal_workdays"`
	FulfilledWork string `json:"fulfilled_work"`
	Balance       string `json:"balance"`
}

// ErrorResponse is the standard error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toEmployeeDTO(s *roster.EmployeeSummary) EmployeeDTO {
	return EmployeeDTO{
		ID:        s.Employee.ID,
		Name:      s.Employee.Name,
		FirstDate: s.CareerFirstDate.String(),
		LastDate:  s.CareerLastDate.String(),
		Months:    len(s.Months),
	}
}

func toMonthDTO(agg roster.MonthlyAggregate, cumulative string) MonthAggregateDTO {
	return MonthAggregateDTO{
		EmployeeID:         agg.Employee.ID,
		EmployeeName:       agg.Employee.Name,
		Period:             agg.YearMonth.String(),
		TotalDays:          agg.TotalDaysOnRecord,
		LegalHolidayDays:   agg.LegalHolidayDaysOnRecord,
		LegalWorkdays:      agg.LegalWorkdayCount,
		FulfilledWork:      agg.FulfilledWorkValue.String(),
		Balance:            agg.Balance.String(),
		CumulativeBalance:  cumulative,
		WorkDays:           agg.WorkDays,
		RestDays:           agg.RestDays,
		NightShifts:        agg.NightShifts,
		DayShifts:          agg.DayShifts,
		HolidayWork:        agg.HolidayWork,
		WeekendWork:        agg.WeekendWork,
		SickLeaveDays:      agg.SickLeaveDays,
		MaternityLeaveDays: agg.MaternityLeaveDays,
		ShiftCodeCounts:    agg.ShiftCodeCounts,
	}
}

func toSummaryDTO(s *roster.EmployeeSummary) EmployeeSummaryDTO {
	months := make([]MonthAggregateDTO, len(s.Months))
	for i, m := range s.Months {
		months[i] = toMonthDTO(m.MonthlyAggregate, m.Cumulative.String())
	}
	years := make([]YearTotalsDTO, len(s.Years))
	for i, y := range s.Years {
		years[i] = YearTotalsDTO{
			Year:          y.Year,
			Months:        y.Months,
			LegalWorkdays: y.LegalWorkdayCount,
			FulfilledWork: y.FulfilledWorkValue.String(),
			Balance:       y.Balance.String(),
		}
	}
	return EmployeeSummaryDTO{
		ID:                s.Employee.ID,
		Name:              s.Employee.Name,
		InitialOffset:     s.InitialOffset.String(),
		CumulativeBalance: s.CumulativeBalance.String(),
		CareerFirstDate:   s.CareerFirstDate.String(),
		CareerLastDate:    s.CareerLastDate.String(),
		Months:            months,
		Years:             years,
	}
}
