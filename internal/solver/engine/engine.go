// Package engine is a thin adapter over the CP-SAT Go binding
// (github.com/google/or-tools/ortools/sat/go/cpmodel), isolating the rest of
// internal/solver from the proto plumbing needed to run a bounded solve.
package engine

import (
	"fmt"
	"time"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"
	sppb "github.com/google/or-tools/ortools/sat/proto/satparameters"
	"google.golang.org/protobuf/proto"
)

// Status mirrors the subset of CP-SAT solver statuses this system cares
// about; everything else collapses to StatusOther.
type Status int

const (
	StatusUnknown Status = iota
	StatusOptimal
	StatusFeasible
	StatusInfeasible
	StatusOther
)

// Result is the decoded outcome of one bounded solve.
type Result struct {
	Status Status
	raw    *cmpb.CpSolverResponse
}

// IsSolved reports whether the solve produced a usable assignment.
func (r Result) IsSolved() bool {
	return r.Status == StatusOptimal || r.Status == StatusFeasible
}

// BoolValue returns the solution value of a boolean variable. Callers must
// only call this on a solved Result.
func (r Result) BoolValue(v cpmodel.BoolVar) bool {
	return cpmodel.SolutionBooleanValue(r.raw, v)
}

// IntValue returns the solution value of an integer variable.
func (r Result) IntValue(v cpmodel.IntVar) int64 {
	return cpmodel.SolutionIntegerValue(r.raw, v)
}

// Solve builds the model and solves it with a wall-clock budget. The 60s /
// 10s budgets named in the spec are passed in by the caller (generator.go,
// relax.go); this package has no opinion on their values.
func Solve(builder *cpmodel.Builder, budget time.Duration) (Result, error) {
	model, err := builder.Model()
	if err != nil {
		return Result{}, fmt.Errorf("engine: failed to instantiate model: %w", err)
	}

	params := &sppb.SatParameters{
		MaxTimeInSeconds: proto.Float64(budget.Seconds()),
	}
	resp, err := cpmodel.SolveCpModelWithParameters(model, params)
	if err != nil {
		return Result{}, fmt.Errorf("engine: solve failed: %w", err)
	}

	return Result{Status: decodeStatus(resp), raw: resp}, nil
}

func decodeStatus(resp *cmpb.CpSolverResponse) Status {
	switch resp.GetStatus() {
	case cmpb.CpSolverStatus_OPTIMAL:
		return StatusOptimal
	case cmpb.CpSolverStatus_FEASIBLE:
		return StatusFeasible
	case cmpb.CpSolverStatus_INFEASIBLE:
		return StatusInfeasible
	case cmpb.CpSolverStatus_UNKNOWN:
		return StatusUnknown
	default:
		return StatusOther
	}
}
