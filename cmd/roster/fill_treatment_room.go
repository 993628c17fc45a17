package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/onikukiraii/josan-roster/internal/calendar"
	"github.com/onikukiraii/josan-roster/internal/solver/postprocess"
)

func fillTreatmentRoomCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fill-treatment-room <schedule-id>",
		Short: "Backfill unassigned day-shift-capable members into treatment_room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scheduleID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("schedule-id must be a number: %w", err)
			}

			yearMonth, err := app.store.YearMonthForSchedule(scheduleID)
			if err != nil {
				return err
			}
			dates, err := calendar.MonthDates(yearMonth)
			if err != nil {
				return err
			}
			dateStrs := make([]string, len(dates))
			for i, d := range dates {
				dateStrs[i] = calendar.FormatDate(d)
			}

			assignments, err := app.store.LoadRoster(scheduleID)
			if err != nil {
				return err
			}
			members, err := app.store.Members(yearMonth)
			if err != nil {
				return err
			}

			filled := postprocess.FillTreatmentRoom(assignments, members, dateStrs)
			added := len(filled) - len(assignments)

			if err := app.store.ReplaceAssignments(scheduleID, filled); err != nil {
				return err
			}

			fmt.Printf("✓ treatment_room backfilled for schedule %d: %d assignment(s) added\n", scheduleID, added)
			return nil
		},
	}
}
