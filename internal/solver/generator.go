// Package solver is the constraint-model shift solver: decision-variable
// construction, the H1–H17/S1–S4 constraint library, the Step-1/Step-2
// generator orchestration, and the diagnostics run when both steps fail.
package solver

import (
	"fmt"
	"time"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/onikukiraii/josan-roster/internal/calendar"
	"github.com/onikukiraii/josan-roster/internal/domain"
	"github.com/onikukiraii/josan-roster/internal/solver/engine"
)

// PrimarySolveBudget is the 60s wall-clock budget for Step-1 and Step-2
// (§4.6). Baked into the algorithm, not configuration (§9).
const PrimarySolveBudget = 60 * time.Second

// GenerateResult is the output of a successful Generate call (§6).
type GenerateResult struct {
	Assignments  []domain.Assignment
	Unfulfilled  []domain.UnfulfilledRequest
}

// Generate runs the LOAD → STEP1 → STEP2 → DIAGNOSE state machine (§4.6)
// for one year-month against the given Loader.
func Generate(loader Loader, yearMonth string) (*GenerateResult, error) {
	members, err := loader.Members(yearMonth)
	if err != nil {
		return nil, fmt.Errorf("solver: load members: %w", err)
	}
	ngPairs, err := loader.NgPairs(yearMonth)
	if err != nil {
		return nil, fmt.Errorf("solver: load ng pairs: %w", err)
	}
	requests, err := loader.Requests(yearMonth)
	if err != nil {
		return nil, fmt.Errorf("solver: load requests: %w", err)
	}
	pediatricDates, err := loader.PediatricDates(yearMonth)
	if err != nil {
		return nil, fmt.Errorf("solver: load pediatric dates: %w", err)
	}

	monthDates, err := calendar.MonthDates(yearMonth)
	if err != nil {
		return nil, err
	}
	dates := make([]string, len(monthDates))
	for i, d := range monthDates {
		dates[i] = calendar.FormatDate(d)
	}

	members = sortMembersByID(members)
	requiredOff := DeriveOffDayQuotas(members, len(dates))

	in := Inputs{
		Members:        members,
		NgPairs:        ngPairs,
		Requests:       requests,
		Dates:          dates,
		PediatricDates: pediatricDates,
		RequiredOff:    requiredOff,
	}

	// STEP1_BUILD / STEP1_SOLVE: H12 hard, minimize fairness objective.
	b1, v1, err := buildModel(in, "")
	if err != nil {
		return nil, err
	}
	result1, err := engine.Solve(b1, PrimarySolveBudget)
	if err != nil {
		return nil, err
	}
	if result1.IsSolved() {
		assignments := extract(v1, result1)
		return &GenerateResult{Assignments: assignments, Unfulfilled: nil}, nil
	}

	// STEP2_BUILD / STEP2_SOLVE: H12 omitted, maximize fulfillment minus
	// fairness penalties.
	b2, v2, err := buildStep2Model(in)
	if err != nil {
		return nil, err
	}
	result2, err := engine.Solve(b2, PrimarySolveBudget)
	if err != nil {
		return nil, err
	}
	if result2.IsSolved() {
		assignments := extract(v2, result2)
		unfulfilled := unfulfilledRequests(v2, result2, requests)
		return &GenerateResult{Assignments: assignments, Unfulfilled: unfulfilled}, nil
	}

	// DIAGNOSE.
	staticMsgs := DiagnoseStatic(members, dates, pediatricDates, requiredOff)
	if len(staticMsgs) > 0 {
		return nil, &InfeasibleWithDiagnosis{Header: staticDiagnosisHeader, Bullets: staticMsgs}
	}

	relaxMsgs, err := DiagnoseRelaxation(in)
	if err != nil {
		return nil, err
	}
	if len(relaxMsgs) > 0 {
		return nil, &InfeasibleWithDiagnosis{Header: relaxationDiagnosisHeader, Bullets: relaxMsgs}
	}

	return nil, &InfeasibleGeneric{}
}

// buildStep2Model is STEP2_BUILD: identical to the full model except H12 is
// omitted and the objective maximizes fulfillment (S1) minus the S2/S3/S4
// fairness penalties.
func buildStep2Model(in Inputs) (*cpmodel.Builder, *Variables, error) {
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
	AddNightThenOff(b, v)
	AddNgPairs(b, v, in.NgPairs)
	AddMidwifeOnNight(b, v)
	AddMaxConsecutiveWork(b, v)
	AddNightCeiling(b, v)
	AddOffDayQuota(b, v, in.RequiredOff)
	AddPaidLeaveGating(b, v, in.Requests)
	AddRookieWardStaffing(b, v)
	AddSundayHolidayShutdown(b, v, dayTypes)
	AddEarlyShiftDesignation(b, v, dayTypes)
	AddNightFloor(b, v)

	night := AddNightEqualization(b, v)
	holiday := AddHolidayEqualization(b, v, dayTypes)
	early := AddEarlyEqualization(b, v)

	fulfilled := FulfillmentVars(v, in.Requests)
	objective := cpmodel.NewLinearExpr()
	for _, f := range fulfilled {
		objective.AddTerm(f, weightFulfillment)
	}
	fairness := FairnessObjective(night, holiday, early)
	objective.Add(negate(fairness))
	b.Maximize(objective)

	return b, v, nil
}

// negate flips the sign of every term in expr by folding it into a new
// expression scaled by -1, since LinearExpr has no built-in negation.
func negate(expr *cpmodel.LinearExpr) *cpmodel.LinearExpr {
	return cpmodel.NewLinearExpr().AddTerm(expr, -1)
}

// extract is orchestration step 8: for each (member, date) pick the unique
// shift type with x==1 and record the early flag.
func extract(v *Variables, result engine.Result) []domain.Assignment {
	var assignments []domain.Assignment
	for mi, m := range v.Members {
		for di, d := range v.Dates {
			for si, s := range v.Shifts {
				if result.BoolValue(v.X[mi][di][si]) {
					isEarly := v.EarlyCapable[mi] && result.BoolValue(v.Early[mi][di])
					assignments = append(assignments, domain.Assignment{
						MemberID:  m.ID,
						Date:      d,
						ShiftType: s,
						IsEarly:   isEarly,
					})
					break
				}
			}
		}
	}
	return assignments
}

// unfulfilledRequests walks each original request and reports it whenever
// its mapped-shift variable did not end up at 1 in the Step-2 solution.
func unfulfilledRequests(v *Variables, result engine.Result, requests []domain.Request) []domain.UnfulfilledRequest {
	var unfulfilled []domain.UnfulfilledRequest
	for _, r := range requests {
		mapped, ok := r.MappedShift()
		if !ok {
			continue
		}
		mi, ok := v.MemberIndex[r.MemberID]
		if !ok {
			continue
		}
		di, ok := v.DateIndex[r.Date]
		if !ok {
			continue
		}
		if !result.BoolValue(v.X[mi][di][v.ShiftIndex[mapped]]) {
			unfulfilled = append(unfulfilled, domain.UnfulfilledRequest{MemberID: r.MemberID, Date: r.Date})
		}
	}
	return unfulfilled
}

func sortMembersByID(members []domain.Member) []domain.Member {
	sorted := make([]domain.Member, len(members))
	copy(sorted, members)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j-1].ID > sorted[j].ID; j-- {
			sorted[j-1], sorted[j] = sorted[j], sorted[j-1]
		}
	}
	return sorted
}
