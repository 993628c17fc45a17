// Package postprocess holds the treatment-room fill utility. It is never
// invoked from the primary Generate path (§9 open question); it exists for
// editors who want to backfill remaining day-shift-capable members into
// treatment_room after reviewing a generated roster.
package postprocess

import (
	"strconv"
	"time"

	"github.com/onikukiraii/josan-roster/internal/calendar"
	"github.com/onikukiraii/josan-roster/internal/domain"
)

// FillTreatmentRoom assigns treatment_room to every day-shift-capable
// member who has no assignment at all on a weekday or saturday date,
// mirroring the original system's standalone fill_treatment_room utility.
// Sunday/holiday dates are skipped since outpatient shifts, including
// treatment_room, do not operate that day (H15).
func FillTreatmentRoom(assignments []domain.Assignment, members []domain.Member, dates []string) []domain.Assignment {
	assigned := make(map[[2]string]bool, len(assignments))
	for _, a := range assignments {
		assigned[[2]string{memberKey(a.MemberID), a.Date}] = true
	}

	dayTypeByDate := make(map[string]domain.DayType, len(dates))
	for _, d := range dates {
		t, err := time.Parse("2006-01-02", d)
		if err != nil {
			continue
		}
		dayTypeByDate[d] = calendar.DayTypeOf(t)
	}

	filled := make([]domain.Assignment, len(assignments))
	copy(filled, assignments)

	for _, m := range members {
		if !m.HasCapability(domain.CapabilityDayShift) {
			continue
		}
		for _, d := range dates {
			if dayTypeByDate[d] == domain.DayTypeSundayHoliday {
				continue
			}
			key := [2]string{memberKey(m.ID), d}
			if assigned[key] {
				continue
			}
			filled = append(filled, domain.Assignment{
				MemberID:  m.ID,
				Date:      d,
				ShiftType: domain.ShiftTreatmentRoom,
			})
			assigned[key] = true
		}
	}

	return filled
}

func memberKey(id int) string {
	return strconv.Itoa(id)
}
