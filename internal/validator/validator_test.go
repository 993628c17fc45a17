package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onikukiraii/josan-roster/internal/domain"
)

func TestCheckEdit_NightThenOffWarning(t *testing.T) {
	// S-E: member m worked night on 2025-01-06 and ward on 2025-01-07.
	roster := Roster{
		Members: map[int]domain.Member{
			1: {ID: 1, Name: "山田", Qualification: domain.QualificationNurse, MaxNightShifts: 5},
		},
		Assignments: []domain.Assignment{
			{MemberID: 1, Date: "2025-01-06", ShiftType: domain.ShiftNight},
			{MemberID: 1, Date: "2025-01-07", ShiftType: domain.ShiftWard},
		},
	}

	warnings, err := CheckEdit(roster, 1, "2025-01-07")
	require.NoError(t, err)
	assert.Contains(t, warnings, "山田 は前日に夜勤のため、本日は公休が必要です")
}

func TestCheckEdit_NoWarningWhenRestedAfterNight(t *testing.T) {
	roster := Roster{
		Members: map[int]domain.Member{
			1: {ID: 1, Name: "佐藤", Qualification: domain.QualificationMidwife, MaxNightShifts: 5},
		},
		Assignments: []domain.Assignment{
			{MemberID: 1, Date: "2025-01-06", ShiftType: domain.ShiftNight},
			{MemberID: 1, Date: "2025-01-07", ShiftType: domain.ShiftDayOff},
		},
	}

	warnings, err := CheckEdit(roster, 1, "2025-01-07")
	require.NoError(t, err)
	assert.Empty(t, warnings)
}

func TestCheckEdit_MidwifeOnNightWarning(t *testing.T) {
	roster := Roster{
		Members: map[int]domain.Member{
			1: {ID: 1, Name: "鈴木", Qualification: domain.QualificationNurse, MaxNightShifts: 5},
		},
		Assignments: []domain.Assignment{
			{MemberID: 1, Date: "2025-01-06", ShiftType: domain.ShiftNight},
		},
	}

	warnings, err := CheckEdit(roster, 1, "2025-01-06")
	require.NoError(t, err)
	assert.Contains(t, warnings, "01/06 の夜勤に助産師が配置されていません")
}

func TestCheckEdit_NightCeilingWarning(t *testing.T) {
	roster := Roster{
		Members: map[int]domain.Member{
			1: {ID: 1, Name: "高橋", Qualification: domain.QualificationMidwife, MaxNightShifts: 2},
		},
		Assignments: []domain.Assignment{
			{MemberID: 1, Date: "2025-01-03", ShiftType: domain.ShiftNight},
			{MemberID: 1, Date: "2025-01-08", ShiftType: domain.ShiftNight},
			{MemberID: 1, Date: "2025-01-14", ShiftType: domain.ShiftNight},
		},
	}

	warnings, err := CheckEdit(roster, 1, "2025-01-14")
	require.NoError(t, err)
	assert.Contains(t, warnings, "高橋 の夜勤回数が 3 回になっています（上限2回）")
}

func TestCheckEdit_ConsecutiveWorkWarning(t *testing.T) {
	members := map[int]domain.Member{
		1: {ID: 1, Name: "伊藤", Qualification: domain.QualificationNurse, MaxNightShifts: 5},
	}
	assignments := []domain.Assignment{
		{MemberID: 1, Date: "2025-01-01", ShiftType: domain.ShiftWard},
		{MemberID: 1, Date: "2025-01-02", ShiftType: domain.ShiftWard},
		{MemberID: 1, Date: "2025-01-03", ShiftType: domain.ShiftWard},
		{MemberID: 1, Date: "2025-01-04", ShiftType: domain.ShiftWard},
		{MemberID: 1, Date: "2025-01-05", ShiftType: domain.ShiftWard},
		{MemberID: 1, Date: "2025-01-06", ShiftType: domain.ShiftWard},
	}
	roster := Roster{Members: members, Assignments: assignments}

	warnings, err := CheckEdit(roster, 1, "2025-01-06")
	require.NoError(t, err)
	assert.Contains(t, warnings, "伊藤 の連続勤務が 6 日になっています（上限5日）")
}
