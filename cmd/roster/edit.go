package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/onikukiraii/josan-roster/internal/domain"
	"github.com/onikukiraii/josan-roster/internal/validator"
)

func editCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <schedule-id> <member-id> <date> <shift-type>",
		Short: "Apply a manual assignment edit and print any warnings",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			scheduleID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("schedule-id must be a number: %w", err)
			}
			memberID, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("member-id must be a number: %w", err)
			}
			date := args[2]
			shiftType := domain.ShiftType(args[3])

			if err := app.store.ApplyEdit(scheduleID, memberID, date, shiftType, false); err != nil {
				return err
			}

			assignments, err := app.store.LoadRoster(scheduleID)
			if err != nil {
				return err
			}
			members, err := app.store.AllMembers()
			if err != nil {
				return err
			}

			warnings, err := validator.CheckEdit(validator.Roster{Assignments: assignments, Members: members}, memberID, date)
			if err != nil {
				return err
			}

			fmt.Printf("✓ %s on %s set for member %d\n", shiftType, date, memberID)
			if len(warnings) == 0 {
				fmt.Println("  no warnings")
				return nil
			}
			for _, w := range warnings {
				fmt.Printf("  ⚠ %s\n", w)
			}
			return nil
		},
	}
}
