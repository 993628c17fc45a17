package solver

import (
	"testing"
	"time"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onikukiraii/josan-roster/internal/domain"
	"github.com/onikukiraii/josan-roster/internal/solver/engine"
)

const constraintTestBudget = 2 * time.Second

// TestAddNgPairs_BothOnNightInfeasible is H7: two NG-paired members may
// never both hold a night-shift-type slot on the same date.
func TestAddNgPairs_BothOnNightInfeasible(t *testing.T) {
	b := cpmodel.NewCpModelBuilder()
	members := []domain.Member{{ID: 1}, {ID: 2}}
	dates := []string{"2025-01-01"}
	v := BuildVariables(b, members, dates)

	AddNgPairs(b, v, []domain.NgPair{domain.NewNgPair(1, 2)})
	b.AddEquality(v.XAt(1, dates[0], domain.ShiftNight), cpmodel.NewConstant(1))
	b.AddEquality(v.XAt(2, dates[0], domain.ShiftNight), cpmodel.NewConstant(1))

	result, err := engine.Solve(b, constraintTestBudget)
	require.NoError(t, err)
	assert.False(t, result.IsSolved(), "NG pair both on night should be infeasible")
}

// TestAddNgPairs_OneOnNightFeasible is the complementary case: one member of
// the NG pair on night, the other left unconstrained, stays feasible.
func TestAddNgPairs_OneOnNightFeasible(t *testing.T) {
	b := cpmodel.NewCpModelBuilder()
	members := []domain.Member{{ID: 1}, {ID: 2}}
	dates := []string{"2025-01-01"}
	v := BuildVariables(b, members, dates)

	AddNgPairs(b, v, []domain.NgPair{domain.NewNgPair(1, 2)})
	b.AddEquality(v.XAt(1, dates[0], domain.ShiftNight), cpmodel.NewConstant(1))

	result, err := engine.Solve(b, constraintTestBudget)
	require.NoError(t, err)
	assert.True(t, result.IsSolved())
}

// TestAddRookieWardStaffing_InfeasibleWithInsufficientHeadcount is H14: a
// rookie working a ward-family shift in a two-member pool can never reach
// the five-head minimum the reified constraint demands. H1 is added so each
// member holds exactly one shift and counts as one head.
func TestAddRookieWardStaffing_InfeasibleWithInsufficientHeadcount(t *testing.T) {
	b := cpmodel.NewCpModelBuilder()
	members := []domain.Member{
		{ID: 1, Capabilities: map[domain.CapabilityType]bool{domain.CapabilityRookie: true}},
		{ID: 2},
	}
	dates := []string{"2025-01-01"}
	v := BuildVariables(b, members, dates)

	AddExactlyOnePerDay(b, v)
	AddRookieWardStaffing(b, v)
	b.AddEquality(v.XAt(1, dates[0], domain.ShiftWard), cpmodel.NewConstant(1))
	b.AddEquality(v.XAt(2, dates[0], domain.ShiftWard), cpmodel.NewConstant(1))

	result, err := engine.Solve(b, constraintTestBudget)
	require.NoError(t, err)
	assert.False(t, result.IsSolved(), "rookie in ward with only 2 heads should be infeasible")
}

// TestAddRookieWardStaffing_FeasibleWhenRookieRests shows the indicator
// never fires when the rookie isn't in a ward-family shift that date.
func TestAddRookieWardStaffing_FeasibleWhenRookieRests(t *testing.T) {
	b := cpmodel.NewCpModelBuilder()
	members := []domain.Member{
		{ID: 1, Capabilities: map[domain.CapabilityType]bool{domain.CapabilityRookie: true}},
		{ID: 2},
	}
	dates := []string{"2025-01-01"}
	v := BuildVariables(b, members, dates)

	AddRookieWardStaffing(b, v)
	b.AddEquality(v.XAt(1, dates[0], domain.ShiftDayOff), cpmodel.NewConstant(1))

	result, err := engine.Solve(b, constraintTestBudget)
	require.NoError(t, err)
	assert.True(t, result.IsSolved())
}

// TestAddRookieWardStaffing_FeasibleWithFiveInWard confirms the other side
// of the threshold: five ward-family heads, rookie included, satisfies it.
func TestAddRookieWardStaffing_FeasibleWithFiveInWard(t *testing.T) {
	b := cpmodel.NewCpModelBuilder()
	members := []domain.Member{
		{ID: 1, Capabilities: map[domain.CapabilityType]bool{domain.CapabilityRookie: true}},
		{ID: 2}, {ID: 3}, {ID: 4}, {ID: 5},
	}
	dates := []string{"2025-01-01"}
	v := BuildVariables(b, members, dates)

	AddRookieWardStaffing(b, v)
	wardShifts := []domain.ShiftType{
		domain.ShiftWardLeader, domain.ShiftWard, domain.ShiftDelivery, domain.ShiftDeliveryCharge, domain.ShiftWard,
	}
	for i, id := range []int{1, 2, 3, 4, 5} {
		b.AddEquality(v.XAt(id, dates[0], wardShifts[i]), cpmodel.NewConstant(1))
	}

	result, err := engine.Solve(b, constraintTestBudget)
	require.NoError(t, err)
	assert.True(t, result.IsSolved(), "5 ward-family heads including the rookie should be feasible")
}
