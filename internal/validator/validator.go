// Package validator is the stateless post-edit warning checker (§4.10): a
// re-check of H6/H8/H9/H10/H17 against a persisted roster after a manual
// assignment edit. It never fails the edit; it only returns warnings.
package validator

import (
	"fmt"
	"time"

	"github.com/onikukiraii/josan-roster/internal/calendar"
	"github.com/onikukiraii/josan-roster/internal/domain"
)

const maxConsecutiveWorkDays = 5

// Roster is the minimal read model the validator needs: every assignment in
// the schedule plus the member roster it references.
type Roster struct {
	Assignments []domain.Assignment
	Members     map[int]domain.Member // by id
}

func (r Roster) shiftOn(memberID int, date string) (domain.ShiftType, bool) {
	for _, a := range r.Assignments {
		if a.MemberID == memberID && a.Date == date {
			return a.ShiftType, true
		}
	}
	return "", false
}

func (r Roster) assignmentsOn(date string) []domain.Assignment {
	var out []domain.Assignment
	for _, a := range r.Assignments {
		if a.Date == date {
			out = append(out, a)
		}
	}
	return out
}

func (r Roster) nightCount(memberID int) int {
	count := 0
	for _, a := range r.Assignments {
		if a.MemberID == memberID && a.ShiftType.IsNight() {
			count++
		}
	}
	return count
}

// CheckEdit recomputes every warning for (memberID, date) against roster,
// which already includes the freshly committed edit.
func CheckEdit(roster Roster, memberID int, date string) ([]string, error) {
	var warnings []string

	w, err := checkNightThenOff(roster, memberID, date)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, w...)

	warnings = append(warnings, checkMidwifeOnNight(roster, date)...)

	w, err = checkConsecutiveWork(roster, memberID, date)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, w...)

	warnings = append(warnings, checkNightCeiling(roster, memberID)...)
	warnings = append(warnings, checkNightFloor(roster, memberID)...)

	return warnings, nil
}

// checkNightThenOff is the H6 check: a night shift the day before (or the
// day of) forces an off-day the following day.
func checkNightThenOff(roster Roster, memberID int, date string) ([]string, error) {
	member := roster.Members[memberID]
	var warnings []string

	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("validator: invalid date %q: %w", date, err)
	}

	yesterday := calendar.FormatDate(d.AddDate(0, 0, -1))
	if yShift, ok := roster.shiftOn(memberID, yesterday); ok && yShift.IsNight() {
		if today, ok := roster.shiftOn(memberID, date); ok && !today.IsOff() {
			warnings = append(warnings, fmt.Sprintf("%s は前日に夜勤のため、本日は公休が必要です", member.Name))
		}
	}

	tomorrow := calendar.FormatDate(d.AddDate(0, 0, 1))
	if today, ok := roster.shiftOn(memberID, date); ok && today.IsNight() {
		if tShift, ok := roster.shiftOn(memberID, tomorrow); ok && !tShift.IsOff() {
			warnings = append(warnings, fmt.Sprintf("%s は本日夜勤のため、翌日は公休が必要です", member.Name))
		}
	}

	return warnings, nil
}

// checkMidwifeOnNight is the H8 check: if today is a night shift, at least
// one member working a night shift on this date must hold the midwife
// qualification.
func checkMidwifeOnNight(roster Roster, date string) []string {
	today := roster.assignmentsOn(date)
	hasNight := false
	hasMidwifeOnNight := false
	for _, a := range today {
		if !a.ShiftType.IsNight() {
			continue
		}
		hasNight = true
		if m, ok := roster.Members[a.MemberID]; ok && m.Qualification == domain.QualificationMidwife {
			hasMidwifeOnNight = true
		}
	}
	if hasNight && !hasMidwifeOnNight {
		d, err := time.Parse("2006-01-02", date)
		label := date
		if err == nil {
			label = d.Format("01/02")
		}
		return []string{fmt.Sprintf("%s の夜勤に助産師が配置されていません", label)}
	}
	return nil
}

// checkConsecutiveWork is the H9 check: walk backward and forward from date
// across non-off-day shifts; warn if the consecutive streak exceeds 5.
func checkConsecutiveWork(roster Roster, memberID int, date string) ([]string, error) {
	member := roster.Members[memberID]
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("validator: invalid date %q: %w", date, err)
	}

	consecutive := 1
	for cursor := d.AddDate(0, 0, -1); ; cursor = cursor.AddDate(0, 0, -1) {
		shift, ok := roster.shiftOn(memberID, calendar.FormatDate(cursor))
		if !ok || shift.IsOff() {
			break
		}
		consecutive++
	}
	for cursor := d.AddDate(0, 0, 1); ; cursor = cursor.AddDate(0, 0, 1) {
		shift, ok := roster.shiftOn(memberID, calendar.FormatDate(cursor))
		if !ok || shift.IsOff() {
			break
		}
		consecutive++
	}

	if consecutive > maxConsecutiveWorkDays {
		return []string{fmt.Sprintf("%s の連続勤務が %d 日になっています（上限%d日）", member.Name, consecutive, maxConsecutiveWorkDays)}, nil
	}
	return nil, nil
}

// checkNightCeiling is the H10 check: total night count across the whole
// schedule must not exceed max_night_shifts.
func checkNightCeiling(roster Roster, memberID int) []string {
	member := roster.Members[memberID]
	count := roster.nightCount(memberID)
	if count > member.MaxNightShifts {
		return []string{fmt.Sprintf("%s の夜勤回数が %d 回になっています（上限%d回）", member.Name, count, member.MaxNightShifts)}
	}
	return nil
}

// checkNightFloor is the H17 check: if min_night_shifts > 0, warn when the
// current total falls short.
func checkNightFloor(roster Roster, memberID int) []string {
	member := roster.Members[memberID]
	if member.MinNightShifts <= 0 {
		return nil
	}
	count := roster.nightCount(memberID)
	if count < member.MinNightShifts {
		return []string{fmt.Sprintf("%s の夜勤回数が %d 回になっています（確定%d回）", member.Name, count, member.MinNightShifts)}
	}
	return nil
}
