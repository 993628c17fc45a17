package solver

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/onikukiraii/josan-roster/internal/domain"
)

// Soft objective priority weights (§4.5). 100 far outweighs 10, which
// outweighs 5, which outweighs 3: satisfy requests first, then balance
// nights, then holidays, then early-shift designations.
const (
	weightFulfillment = 100
	weightNightDiff   = 10
	weightHolidayDiff = 5
	weightEarlyDiff   = 3
)

// Equalization is one S2/S3/S4 fairness axis: a per-member count, its
// max/min across the workforce, and the max-min diff folded into the
// objective.
type Equalization struct {
	Counts   []cpmodel.IntVar // per member, compact index order
	MaxVar   cpmodel.IntVar
	MinVar   cpmodel.IntVar
	DiffExpr *cpmodel.LinearExpr // MaxVar - MinVar
}

func buildEqualization(b *cpmodel.Builder, name string, counts []cpmodel.IntVar, upperBound int64) Equalization {
	maxVar := b.NewIntVar(0, upperBound).WithName(name + "_max")
	minVar := b.NewIntVar(0, upperBound).WithName(name + "_min")

	exprs := make([]cpmodel.LinearArgument, len(counts))
	for i, c := range counts {
		exprs[i] = c
	}
	b.AddMaxEquality(maxVar, exprs...)
	b.AddMinEquality(minVar, exprs...)

	diff := cpmodel.NewLinearExpr().AddTerm(maxVar, 1).AddTerm(minVar, -1)
	return Equalization{Counts: counts, MaxVar: maxVar, MinVar: minVar, DiffExpr: diff}
}

// AddNightEqualization builds S2: the max-min spread of per-member night
// counts across the whole workforce.
func AddNightEqualization(b *cpmodel.Builder, v *Variables) Equalization {
	counts := make([]cpmodel.IntVar, len(v.Members))
	for mi := range v.Members {
		var nights []cpmodel.LinearArgument
		for di := range v.Dates {
			for _, ns := range domain.NightShiftTypes {
				nights = append(nights, v.X[mi][di][v.ShiftIndex[ns]])
			}
		}
		count := b.NewIntVar(0, int64(len(v.Dates))).WithName("night_count")
		b.AddEquality(count, cpmodel.NewLinearExpr().AddSum(nights...))
		counts[mi] = count
	}
	return buildEqualization(b, "night", counts, int64(len(v.Dates)))
}

// AddHolidayEqualization builds S3: the max-min spread of per-member
// non-off assignment counts on sunday/holiday dates. Identically a
// constant-zero equalization if the month has no sunday/holiday dates.
func AddHolidayEqualization(b *cpmodel.Builder, v *Variables, dayTypes map[string]domain.DayType) Equalization {
	var holidayDates []string
	for _, d := range v.Dates {
		if dayTypes[d] == domain.DayTypeSundayHoliday {
			holidayDates = append(holidayDates, d)
		}
	}
	if len(holidayDates) == 0 {
		zero := b.NewConstant(0)
		return Equalization{MaxVar: zero, MinVar: zero, DiffExpr: cpmodel.NewLinearExpr()}
	}

	counts := make([]cpmodel.IntVar, len(v.Members))
	for mi := range v.Members {
		var worked []cpmodel.LinearArgument
		for _, d := range holidayDates {
			di := v.DateIndex[d]
			for _, s := range v.Shifts {
				if s.IsOff() {
					continue
				}
				worked = append(worked, v.X[mi][di][v.ShiftIndex[s]])
			}
		}
		count := b.NewIntVar(0, int64(len(holidayDates))).WithName("holiday_count")
		b.AddEquality(count, cpmodel.NewLinearExpr().AddSum(worked...))
		counts[mi] = count
	}
	return buildEqualization(b, "holiday", counts, int64(len(holidayDates)))
}

// AddEarlyEqualization builds S4: the max-min spread of per-member early
// designation counts. Zero equalization if no member carries the
// early_shift capability.
func AddEarlyEqualization(b *cpmodel.Builder, v *Variables) Equalization {
	var capableIdx []int
	for mi := range v.Members {
		if v.EarlyCapable[mi] {
			capableIdx = append(capableIdx, mi)
		}
	}
	if len(capableIdx) == 0 {
		zero := b.NewConstant(0)
		return Equalization{MaxVar: zero, MinVar: zero, DiffExpr: cpmodel.NewLinearExpr()}
	}

	counts := make([]cpmodel.IntVar, len(capableIdx))
	for k, mi := range capableIdx {
		var earlyVars []cpmodel.LinearArgument
		for di := range v.Dates {
			earlyVars = append(earlyVars, v.Early[mi][di])
		}
		count := b.NewIntVar(0, int64(len(v.Dates))).WithName("early_count")
		b.AddEquality(count, cpmodel.NewLinearExpr().AddSum(earlyVars...))
		counts[k] = count
	}
	return buildEqualization(b, "early", counts, int64(len(v.Dates)))
}

// FairnessObjective composes S2+S3+S4 into the shared "balance" portion of
// the objective, weighted 10/5/3 as required by §4.5.
func FairnessObjective(night, holiday, early Equalization) *cpmodel.LinearExpr {
	expr := cpmodel.NewLinearExpr()
	expr.AddTerm(night.MaxVar, weightNightDiff)
	expr.AddTerm(night.MinVar, -weightNightDiff)
	expr.AddTerm(holiday.MaxVar, weightHolidayDiff)
	expr.AddTerm(holiday.MinVar, -weightHolidayDiff)
	expr.AddTerm(early.MaxVar, weightEarlyDiff)
	expr.AddTerm(early.MinVar, -weightEarlyDiff)
	return expr
}

// FulfillmentVars builds the S1 fulfilled-request indicator variables for
// Step-2: one boolean per (member, date, mapped_shift) request tuple, tied
// to the corresponding x variable by direct reference (no new variable
// needed — the request is fulfilled exactly when x[m][d][mapped]==1).
func FulfillmentVars(v *Variables, requests []domain.Request) []cpmodel.LinearArgument {
	var vars []cpmodel.LinearArgument
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
		vars = append(vars, v.X[mi][di][v.ShiftIndex[mapped]])
	}
	return vars
}
