package solver

import (
	"fmt"
	"sort"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/onikukiraii/josan-roster/internal/domain"
)

// Variables is the decision-variable tensor (§4.3): a boolean x[m][d][s] per
// (member, date, shift-type), plus an early[m][d] boolean for every member
// that carries the early_shift capability. Members and dates are remapped
// to compact 0..N-1 indices for dense array access while the original
// member id is preserved for output (§9 "Variable tensor").
type Variables struct {
	Members     []domain.Member
	MemberIndex map[int]int // original member id -> compact index

	Dates     []string // "YYYY-MM-DD", ascending
	DateIndex map[string]int

	Shifts     []domain.ShiftType // domain.AllShiftTypes order
	ShiftIndex map[domain.ShiftType]int

	X []MemberDay // [member][date][shift]

	EarlyCapable []bool              // len(Members)
	Early        [][]cpmodel.BoolVar // [member][date]; only populated when EarlyCapable[m]
}

// MemberDay holds one member's shift variables across all dates.
type MemberDay []ShiftRow

// ShiftRow holds one (member, date)'s variables across all shift types.
type ShiftRow []cpmodel.BoolVar

// BuildVariables constructs the decision-variable tensor for one solve.
// members and dates must already be in ascending order (caller's
// responsibility: ascending member id, ascending calendar date) so that
// model construction is deterministic (§9 "Deterministic order").
func BuildVariables(b *cpmodel.Builder, members []domain.Member, dates []string) *Variables {
	v := &Variables{
		Members:      members,
		MemberIndex:  make(map[int]int, len(members)),
		Dates:        dates,
		DateIndex:    make(map[string]int, len(dates)),
		Shifts:       domain.AllShiftTypes,
		ShiftIndex:   make(map[domain.ShiftType]int, len(domain.AllShiftTypes)),
		X:            make([]MemberDay, len(members)),
		EarlyCapable: make([]bool, len(members)),
		Early:        make([][]cpmodel.BoolVar, len(members)),
	}

	for i, m := range members {
		v.MemberIndex[m.ID] = i
	}
	for i, d := range dates {
		v.DateIndex[d] = i
	}
	for i, s := range v.Shifts {
		v.ShiftIndex[s] = i
	}

	for mi, m := range members {
		row := make(MemberDay, len(dates))
		for di, d := range dates {
			shiftRow := make(ShiftRow, len(v.Shifts))
			for si, s := range v.Shifts {
				shiftRow[si] = b.NewBoolVar().WithName(fmt.Sprintf("x_m%d_d%s_s%s", m.ID, d, s))
			}
			row[di] = shiftRow
		}
		v.X[mi] = row

		if m.HasCapability(domain.CapabilityEarlyShift) {
			v.EarlyCapable[mi] = true
			early := make([]cpmodel.BoolVar, len(dates))
			for di, d := range dates {
				early[di] = b.NewBoolVar().WithName(fmt.Sprintf("early_m%d_d%s", m.ID, d))
			}
			v.Early[mi] = early
		}
	}

	return v
}

// XAt returns x[m][d][s] for an original member id, a "YYYY-MM-DD" date,
// and a shift type.
func (v *Variables) XAt(memberID int, date string, s domain.ShiftType) cpmodel.BoolVar {
	return v.X[v.MemberIndex[memberID]][v.DateIndex[date]][v.ShiftIndex[s]]
}

// XVarsFor returns every x[m][d][s] for a fixed (date, shift) across all
// members, in ascending member-id order.
func (v *Variables) XVarsFor(date string, s domain.ShiftType) []cpmodel.BoolVar {
	di := v.DateIndex[date]
	si := v.ShiftIndex[s]
	out := make([]cpmodel.BoolVar, len(v.Members))
	for mi := range v.Members {
		out[mi] = v.X[mi][di][si]
	}
	return out
}

// SortedMemberIDs returns every member id in ascending order.
func SortedMemberIDs(members []domain.Member) []int {
	ids := make([]int, len(members))
	for i, m := range members {
		ids[i] = m.ID
	}
	sort.Ints(ids)
	return ids
}
