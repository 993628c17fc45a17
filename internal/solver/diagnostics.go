package solver

import (
	"fmt"
	"strings"

	"github.com/onikukiraii/josan-roster/internal/catalog"
	"github.com/onikukiraii/josan-roster/internal/domain"
)

// DiagnoseStatic implements §4.8: six analytical pre-checks run against the
// loaded inputs with no solver call. Returns nil if nothing is detected.
func DiagnoseStatic(members []domain.Member, dates []string, pediatricDates map[string]bool, requiredOff map[int]int) []string {
	dayTypes, err := dayTypesFor(dates)
	if err != nil {
		return nil
	}

	var problems []string
	problems = append(problems, diagnoseCatalogShortfalls(members, dates, dayTypes, pediatricDates)...)
	if msg := diagnoseNightSlotCapacity(members, dates); msg != "" {
		problems = append(problems, msg)
	}
	if msg := diagnoseNightLeaderCapacity(members, dates); msg != "" {
		problems = append(problems, msg)
	}
	if msg := diagnoseNightMidwifeCapacity(members, dates); msg != "" {
		problems = append(problems, msg)
	}
	if msg := diagnoseDayShiftCapacity(members, dates, requiredOff); msg != "" {
		problems = append(problems, msg)
	}
	problems = append(problems, diagnoseDeadEndMembers(members, dates, requiredOff)...)

	return problems
}

// diagnoseCatalogShortfalls is static-diagnostic check 1: for each catalog
// entry and day-type present this month with min_staff>0, count eligible
// members and flag a shortfall.
func diagnoseCatalogShortfalls(members []domain.Member, dates []string, dayTypes map[string]domain.DayType, pediatricDates map[string]bool) []string {
	presentDayTypes := map[domain.DayType]bool{}
	for _, d := range dates {
		presentDayTypes[dayTypes[d]] = true
	}

	var problems []string
	for _, req := range catalog.Requirements {
		for dt := range presentDayTypes {
			minStaff := req.Bounds(dt, false).Min
			if req.Shift == domain.ShiftMwOutpatient && anyPediatricDateHasType(dates, dayTypes, pediatricDates, dt) {
				if pb := req.Bounds(dt, true).Min; pb > minStaff {
					minStaff = pb
				}
			}
			if minStaff <= 0 {
				continue
			}
			eligible := eligibleMembers(members, req)
			if len(eligible) < minStaff {
				names := memberNames(eligible)
				nameList := "なし"
				if len(names) > 0 {
					nameList = strings.Join(names, "、")
				}
				problems = append(problems, fmt.Sprintf(
					"%sに配置可能なメンバーが%d名必要ですが、%d名しかいません（%s）。必要な能力: %s",
					req.Shift.Label(), minStaff, len(eligible), nameList, formatRequirements(req),
				))
			}
		}
	}
	return problems
}

func anyPediatricDateHasType(dates []string, dayTypes map[string]domain.DayType, pediatricDates map[string]bool, dt domain.DayType) bool {
	for _, d := range dates {
		if pediatricDates[d] && dayTypes[d] == dt {
			return true
		}
	}
	return false
}

func eligibleMembers(members []domain.Member, req catalog.Requirement) []domain.Member {
	var out []domain.Member
	for _, m := range members {
		if req.EligibleMember(m.Capabilities, m.Qualification) {
			out = append(out, m)
		}
	}
	return out
}

func memberNames(members []domain.Member) []string {
	names := make([]string, len(members))
	for i, m := range members {
		names[i] = m.Name
	}
	return names
}

func formatRequirements(req catalog.Requirement) string {
	var parts []string
	for _, c := range req.RequiredCapabilities {
		parts = append(parts, string(c))
	}
	if req.RequiredQualification != nil {
		parts = append(parts, req.RequiredQualification.Label())
	}
	if len(parts) == 0 {
		return "なし"
	}
	return strings.Join(parts, ", ")
}

// diagnoseNightSlotCapacity is check 2: total night-shift capacity
// (Σ max_night_shifts over night-capable members) must cover 2 slots/day
// (night + night_leader).
func diagnoseNightSlotCapacity(members []domain.Member, dates []string) string {
	totalSlots := len(dates) * 2
	capacity := 0
	for _, m := range members {
		if m.HasCapability(domain.CapabilityNightShift) || m.HasCapability(domain.CapabilityNightLeader) {
			capacity += m.MaxNightShifts
		}
	}
	if capacity < totalSlots {
		return fmt.Sprintf("夜勤対応可能なメンバーの夜勤上限合計が%d回ですが、必要な夜勤枠数は%d回です。", capacity, totalSlots)
	}
	return ""
}

// diagnoseNightLeaderCapacity is check 3: night_leader capacity for 1
// slot/day.
func diagnoseNightLeaderCapacity(members []domain.Member, dates []string) string {
	needed := len(dates)
	capacity := 0
	for _, m := range members {
		if m.HasCapability(domain.CapabilityNightLeader) {
			capacity += m.MaxNightShifts
		}
	}
	if capacity < needed {
		return fmt.Sprintf("夜勤リーダー対応可能なメンバーの夜勤上限合計が%d回ですが、必要な夜勤リーダー枠数は%d回です。", capacity, needed)
	}
	return ""
}

// diagnoseNightMidwifeCapacity is check 4: night-capable midwife capacity
// for the H8 midwife-on-night requirement, 1 slot/day.
func diagnoseNightMidwifeCapacity(members []domain.Member, dates []string) string {
	needed := len(dates)
	capacity := 0
	for _, m := range members {
		if m.Qualification != domain.QualificationMidwife {
			continue
		}
		if m.HasCapability(domain.CapabilityNightShift) || m.HasCapability(domain.CapabilityNightLeader) {
			capacity += m.MaxNightShifts
		}
	}
	if capacity < needed {
		return fmt.Sprintf("夜勤対応可能な助産師の夜勤上限合計が%d回ですが、毎日の夜勤に助産師が%d名必要です。", capacity, needed)
	}
	return ""
}

// diagnoseDayShiftCapacity is check 5: an approximation comparing the sum
// of catalog minimum day-shift headcounts against total day-shift
// person-days available once off-days and night shifts are subtracted.
func diagnoseDayShiftCapacity(members []domain.Member, dates []string, requiredOff map[int]int) string {
	dayTypes, err := dayTypesFor(dates)
	if err != nil {
		return ""
	}

	var requiredDayShiftSlots int
	for _, d := range dates {
		dt := dayTypes[d]
		for _, req := range catalog.Requirements {
			if req.Shift.IsNight() {
				continue
			}
			requiredDayShiftSlots += req.Bounds(dt, false).Min
		}
	}

	totalNightSlots := len(dates) * 2
	var availablePersonDays int
	for _, m := range members {
		availablePersonDays += len(dates) - requiredOff[m.ID]
	}
	availableDayShiftCapacity := availablePersonDays - totalNightSlots

	if requiredDayShiftSlots > availableDayShiftCapacity {
		return fmt.Sprintf(
			"日勤帯に必要な延べ人数が%d人日ですが、夜勤と公休を差し引いた稼働可能延べ人数は%d人日しかありません。",
			requiredDayShiftSlots, availableDayShiftCapacity,
		)
	}
	return ""
}

// diagnoseDeadEndMembers is check 6: members with no usable capability
// (neither day_shift nor night_shift), or night-only members whose ceiling
// cannot cover their required working days.
func diagnoseDeadEndMembers(members []domain.Member, dates []string, requiredOff map[int]int) []string {
	var problems []string
	for _, m := range members {
		hasDay := m.HasCapability(domain.CapabilityDayShift)
		hasNight := m.HasCapability(domain.CapabilityNightShift) || m.HasCapability(domain.CapabilityNightLeader)
		requiredWork := len(dates) - requiredOff[m.ID]

		switch {
		case !hasDay && !hasNight:
			problems = append(problems, fmt.Sprintf("%sは日勤・夜勤のいずれの能力も持たないため配置できません。", m.Name))
		case !hasDay && hasNight && m.MaxNightShifts < requiredWork:
			problems = append(problems, fmt.Sprintf(
				"%sは夜勤のみ対応可能ですが、必要な勤務日数%d日に対し夜勤上限が%d回しかありません。",
				m.Name, requiredWork, m.MaxNightShifts,
			))
		}
	}
	return problems
}
