package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/onikukiraii/josan-roster/internal/calendar"
	"github.com/onikukiraii/josan-roster/internal/solver"
)

func diagnoseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diagnose <year-month>",
		Short: "Run static staffing diagnostics for a month without solving",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			yearMonth := args[0]

			dates, err := calendar.MonthDates(yearMonth)
			if err != nil {
				return err
			}
			dateStrs := make([]string, len(dates))
			for i, d := range dates {
				dateStrs[i] = calendar.FormatDate(d)
			}

			members, err := app.store.Members(yearMonth)
			if err != nil {
				return err
			}
			pediatricDates, err := app.store.PediatricDates(yearMonth)
			if err != nil {
				return err
			}
			requiredOff := solver.DeriveOffDayQuotas(members, len(dateStrs))

			messages := solver.DiagnoseStatic(members, dateStrs, pediatricDates, requiredOff)
			if len(messages) == 0 {
				fmt.Printf("%s: no static staffing problems detected\n", yearMonth)
				return nil
			}

			fmt.Printf("%s: %d problem(s) found\n", yearMonth, len(messages))
			for _, m := range messages {
				fmt.Printf("・%s\n", m)
			}
			return nil
		},
	}
}
