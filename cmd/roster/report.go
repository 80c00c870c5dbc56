package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/warp/roster-engine/internal/config"
)

// reportCmd prints per-employee banked-rest summaries to stdout.
func reportCmd() *cobra.Command {
	var employeeID int

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print per-employee banked-rest summaries",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			dataset, _, err := loadDataset(cfg)
			if err != nil {
				return err
			}

			fmt.Printf("%-6s %-12s %-8s %-12s %-12s %-12s %s\n",
				"ID", "Name", "Months", "Workdays", "Fulfilled", "Balance", "Span")
			fmt.Println("---------------------------------------------------------------------------")

			for _, s := range dataset.Summaries {
				if employeeID > 0 && s.Employee.ID != employeeID {
					continue
				}

				legalWorkdays := 0
				for _, y := range s.Years {
					legalWorkdays += y.LegalWorkdayCount
				}
				fulfilled := decimal.Zero
				for _, y := range s.Years {
					fulfilled = fulfilled.Add(y.FulfilledWorkValue)
				}

				fmt.Printf("%-6d %-12s %-8d %-12d %-12s %-12s %s..%s\n",
					s.Employee.ID,
					s.Employee.Name,
					len(s.Months),
					legalWorkdays,
					fulfilled.String(),
					s.CumulativeBalance.String(),
					s.CareerFirstDate, s.CareerLastDate)

				if employeeID > 0 {
					fmt.Println()
					fmt.Printf("%-10s %-10s %-12s %-12s %s\n",
						"Period", "Workdays", "Fulfilled", "Balance", "Cumulative")
					for _, m := range s.Months {
						fmt.Printf("%-10s %-10d %-12s %-12s %s\n",
							m.YearMonth,
							m.LegalWorkdayCount,
							m.FulfilledWorkValue.String(),
							m.Balance.String(),
							m.Cumulative.String())
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&employeeID, "employee", 0, "show the monthly breakdown for one employee id")
	return cmd
}
