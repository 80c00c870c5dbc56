package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/warp/roster-engine/internal/config"
	"github.com/warp/roster-engine/roster"
)

// convertCmd normalizes the roster files and writes the adjusted
// records plus monthly aggregates to the output directory. This is the
// batch path for feeding spreadsheets or downstream tooling.
func convertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert",
		Short: "Normalize roster files and write records + monthly aggregates",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			dataset, batch, err := loadDataset(cfg)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(cfg.Data.OutputDir, 0o755); err != nil {
				return fmt.Errorf("failed to create output dir: %w", err)
			}

			recordsPath := filepath.Join(cfg.Data.OutputDir, "records.json")
			if err := writeRecordsJSON(recordsPath, dataset.Records); err != nil {
				return err
			}

			aggPath := filepath.Join(cfg.Data.OutputDir, "monthly_aggregates.csv")
			if err := writeAggregatesCSV(aggPath, dataset.Aggregates); err != nil {
				return err
			}

			logger.Info().
				Str("batch_id", batch.ID).
				Int("records", len(dataset.Records)).
				Int("aggregates", len(dataset.Aggregates)).
				Str("output", cfg.Data.OutputDir).
				Msg("convert complete")

			fmt.Printf("Converted %d files: %d records, %d employee-months\n",
				batch.FilesProcessed, len(dataset.Records), len(dataset.Aggregates))
			fmt.Printf("  %s\n  %s\n", recordsPath, aggPath)
			if batch.Stats.UnknownCodes > 0 {
				fmt.Printf("  warning: %d cells carried unrecognized shift codes\n", batch.Stats.UnknownCodes)
			}
			return nil
		},
	}
}

// recordJSON is the flat export shape for one normalized day.
type recordJSON struct {
	EmployeeID   int    `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Date         string `json:"date"`
	Weekday      string `json:"weekday"`
	IsHoliday    bool   `json:"is_holiday"`
	ShiftCode    string `json:"shift_code"`
	WorkValue    string `json:"work_value"`
	Category     string `json:"category"`
	Known        bool   `json:"known"`
	IsWorkDay    bool   `json:"is_work_day"`
	IsNightShift bool   `json:"is_night_shift"`
	IsLeave      bool   `json:"is_leave"`
}

func writeRecordsJSON(path string, records []roster.DayRecord) error {
	out := make([]recordJSON, len(records))
	for i, r := range records {
		out[i] = recordJSON{
			EmployeeID:   r.Employee.ID,
			EmployeeName: r.Employee.Name,
			Date:         r.Date.String(),
			Weekday:      r.Weekday.English,
			IsHoliday:    r.IsHoliday,
			ShiftCode:    r.ShiftCode,
			WorkValue:    r.WorkValue.String(),
			Category:     string(r.Category),
			Known:        r.Known,
			IsWorkDay:    r.IsWorkDay,
			IsNightShift: r.IsNightShift,
			IsLeave:      r.IsLeave,
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}
	return nil
}

func writeAggregatesCSV(path string, aggregates []roster.MonthlyAggregate) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"employee_id", "employee_name", "period",
		"total_days", "legal_holiday_days", "legal_workdays",
		"fulfilled_work", "balance",
		"work_days", "rest_days", "night_shifts", "day_shifts",
		"holiday_work", "weekend_work", "sick_leave_days", "maternity_leave_days",
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, a := range aggregates {
		row := []string{
			strconv.Itoa(a.Employee.ID),
			a.Employee.Name,
			a.YearMonth.String(),
			strconv.Itoa(a.TotalDaysOnRecord),
			strconv.Itoa(a.LegalHolidayDaysOnRecord),
			strconv.Itoa(a.LegalWorkdayCount),
			a.FulfilledWorkValue.String(),
			a.Balance.String(),
			strconv.Itoa(a.WorkDays),
			strconv.Itoa(a.RestDays),
			strconv.Itoa(a.NightShifts),
			strconv.Itoa(a.DayShifts),
			strconv.Itoa(a.HolidayWork),
			strconv.Itoa(a.WeekendWork),
			strconv.Itoa(a.SickLeaveDays),
			strconv.Itoa(a.MaternityLeaveDays),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}
