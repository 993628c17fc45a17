package main

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/onikukiraii/josan-roster/internal/solver"
	"github.com/onikukiraii/josan-roster/internal/store"
)

func generateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate <year-month>",
		Short: "Generate a monthly roster (e.g. 2025-01)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			yearMonth := args[0]

			holderID := uuid.NewString()
			if err := app.lock.Acquire(app.ctx, yearMonth, holderID); err != nil {
				if errors.Is(err, store.ErrGenerationInProgress) {
					return fmt.Errorf("%s is already being generated by another process", yearMonth)
				}
				return err
			}
			defer app.lock.Release(app.ctx, yearMonth, holderID)

			app.logger.Info("generating roster", zap.String("yearMonth", yearMonth))

			result, err := solver.Generate(app.store, yearMonth)
			if err != nil {
				var diag *solver.InfeasibleWithDiagnosis
				if errors.As(err, &diag) {
					fmt.Println(diag.Error())
					return err
				}
				return err
			}

			scheduleID, err := app.store.SaveSchedule(yearMonth, result)
			if err != nil {
				return fmt.Errorf("failed to save schedule: %w", err)
			}

			fmt.Printf("\n✓ Schedule %d generated for %s\n", scheduleID, yearMonth)
			fmt.Printf("  %d assignments, %d unfulfilled requests\n", len(result.Assignments), len(result.Unfulfilled))
			for _, u := range result.Unfulfilled {
				fmt.Printf("  - member %d: %s unfulfilled\n", u.MemberID, u.Date)
			}

			return nil
		},
	}
}
