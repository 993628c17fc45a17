package solver

import (
	"time"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/onikukiraii/josan-roster/internal/domain"
	"github.com/onikukiraii/josan-roster/internal/solver/engine"
)

// RelaxationBudget is the 10-second per-probe wall-clock budget from §4.9.
const RelaxationBudget = 10 * time.Second

// RelaxableConstraint names one of the optional-hard constraints the
// relaxation diagnostics layer may drop one at a time. H1–H5 are
// structural and never appear here.
type RelaxableConstraint string

const (
	RelaxH6  RelaxableConstraint = "H6"
	RelaxH7  RelaxableConstraint = "H7"
	RelaxH8  RelaxableConstraint = "H8"
	RelaxH9  RelaxableConstraint = "H9"
	RelaxH10 RelaxableConstraint = "H10"
	RelaxH11 RelaxableConstraint = "H11"
	RelaxH14 RelaxableConstraint = "H14"
	RelaxH15 RelaxableConstraint = "H15"
	RelaxH16 RelaxableConstraint = "H16"
)

// relaxationOrder is the fixed order relaxation probes run in (§4.9).
var relaxationOrder = []RelaxableConstraint{
	RelaxH6, RelaxH7, RelaxH8, RelaxH9, RelaxH10, RelaxH11, RelaxH14, RelaxH15, RelaxH16,
}

var relaxationLabels = map[RelaxableConstraint]string{
	RelaxH6:  "夜勤翌日の休み(H6)",
	RelaxH7:  "NGペア制約(H7)",
	RelaxH8:  "夜勤助産師配置(H8)",
	RelaxH9:  "連続勤務日数上限(H9)",
	RelaxH10: "夜勤回数上限(H10)",
	RelaxH11: "公休日数(H11)",
	RelaxH14: "新人の病棟配置(H14)",
	RelaxH15: "日祝の外来休止(H15)",
	RelaxH16: "早番指名(H16)",
}

// Inputs bundles everything a model build needs, independent of which
// relaxation (if any) is applied.
type Inputs struct {
	Members        []domain.Member
	NgPairs        []domain.NgPair
	Requests       []domain.Request
	Dates          []string
	PediatricDates map[string]bool
	RequiredOff    map[int]int
}

// buildModel assembles H1–H17 (H12 hard) plus the S2/S3/S4 fairness
// objective, omitting the single relaxed constraint named by skip (empty
// string builds the full, unrelaxed model).
func buildModel(in Inputs, skip RelaxableConstraint) (*cpmodel.Builder, *Variables, error) {
	b := cpmodel.NewCpModelBuilder()
	v := BuildVariables(b, in.Members, in.Dates)

	dayTypes, err := dayTypesFor(in.Dates)
	if err != nil {
		return nil, nil, err
	}

	AddExactlyOnePerDay(b, v)
	AddStaffingBounds(b, v, dayTypes, in.PediatricDates)
	AddCapabilityGating(b, v)
	AddDayShiftEligibility(b, v)
	AddNightShiftEligibility(b, v)
	if skip != RelaxH6 {
		AddNightThenOff(b, v)
	}
	if skip != RelaxH7 {
		AddNgPairs(b, v, in.NgPairs)
	}
	if skip != RelaxH8 {
		AddMidwifeOnNight(b, v)
	}
	if skip != RelaxH9 {
		AddMaxConsecutiveWork(b, v)
	}
	if skip != RelaxH10 {
		AddNightCeiling(b, v)
	}
	if skip != RelaxH11 {
		AddOffDayQuota(b, v, in.RequiredOff)
	}
	AddRequestsHard(b, v, in.Requests)
	AddPaidLeaveGating(b, v, in.Requests)
	if skip != RelaxH14 {
		AddRookieWardStaffing(b, v)
	}
	if skip != RelaxH15 {
		AddSundayHolidayShutdown(b, v, dayTypes)
	}
	if skip != RelaxH16 {
		AddEarlyShiftDesignation(b, v, dayTypes)
	}
	AddNightFloor(b, v)

	night := AddNightEqualization(b, v)
	holiday := AddHolidayEqualization(b, v, dayTypes)
	early := AddEarlyEqualization(b, v)
	b.Minimize(FairnessObjective(night, holiday, early))

	return b, v, nil
}

// DiagnoseRelaxation implements §4.9: drop each optional-hard constraint in
// turn, re-solve with a 10s budget, and report every relaxation that
// achieves feasibility. Returns nil if none do.
func DiagnoseRelaxation(in Inputs) ([]string, error) {
	var messages []string
	for _, c := range relaxationOrder {
		b, _, err := buildModel(in, c)
		if err != nil {
			return nil, err
		}
		result, err := engine.Solve(b, RelaxationBudget)
		if err != nil {
			return nil, err
		}
		if result.IsSolved() {
			messages = append(messages, "relaxing "+relaxationLabels[c]+" would admit a solution")
		}
	}
	return messages, nil
}
