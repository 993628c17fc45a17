package solver

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/onikukiraii/josan-roster/internal/domain"
)

func fullTimeMember(id int, balance int) domain.Member {
	return domain.Member{
		ID:                         id,
		Name:                       "member",
		EmploymentType:             domain.EmploymentFullTime,
		MaxNightShifts:             5,
		NightShiftDeductionBalance: balance,
	}
}

func TestDeriveOffDayQuotas_BaseCase(t *testing.T) {
	members := []domain.Member{fullTimeMember(1, 0)}
	quotas := DeriveOffDayQuotas(members, 31)
	assert.Equal(t, 10, quotas[1])
}

func TestDeriveOffDayQuotas_DeductionBalanceTriggersMinusOne(t *testing.T) {
	// S-B: balance=5, max_night_shifts=5 -> 5+5=10 >= 8 -> one fewer off day.
	members := []domain.Member{fullTimeMember(1, 5)}
	quotas := DeriveOffDayQuotas(members, 31)
	assert.Equal(t, 9, quotas[1])
}

func TestDeriveOffDayQuotas_PartTimeIsFloorFromNightAllotment(t *testing.T) {
	members := []domain.Member{{
		ID:             2,
		EmploymentType: domain.EmploymentPartTime,
		MaxNightShifts: 6,
	}}
	quotas := DeriveOffDayQuotas(members, 30)
	assert.Equal(t, 24, quotas[2])
}

// TestDeriveOffDayQuotas_MixedRoster diffs the full quota map at once so a
// future regression names every member whose quota shifted, not just the
// first mismatch.
func TestDeriveOffDayQuotas_MixedRoster(t *testing.T) {
	members := []domain.Member{
		fullTimeMember(1, 0),
		fullTimeMember(2, 5),
		{ID: 3, EmploymentType: domain.EmploymentPartTime, MaxNightShifts: 6},
	}
	want := map[int]int{1: 10, 2: 9, 3: 31 - 6}

	got := DeriveOffDayQuotas(members, 31)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("quota mismatch (-want +got):\n%s", diff)
	}
}
