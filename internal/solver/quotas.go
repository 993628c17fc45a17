package solver

import (
	"github.com/onikukiraii/josan-roster/internal/calendar"
	"github.com/onikukiraii/josan-roster/internal/domain"
)

// nightDeductionThreshold is the balance+ceiling sum (§4.7) at or above
// which a full-time member's off-day quota is reduced by one day to burn
// off accumulated night-shift credit.
const nightDeductionThreshold = 8

// DeriveOffDayQuotas implements §4.7: the per-member required_off(m) used
// by H11. daysInMonth is |dates| for the month being generated.
func DeriveOffDayQuotas(members []domain.Member, daysInMonth int) map[int]int {
	base := calendar.BaseOffDays(daysInMonth)
	quotas := make(map[int]int, len(members))
	for _, m := range members {
		if m.IsPartTime() {
			quotas[m.ID] = daysInMonth - m.MaxNightShifts
			continue
		}
		required := base
		if m.NightShiftDeductionBalance+m.MaxNightShifts >= nightDeductionThreshold {
			required--
		}
		quotas[m.ID] = required
	}
	return quotas
}
