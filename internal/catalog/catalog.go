// Package catalog declares the static per-shift staffing table (§4.2): min
// and max headcount per day-type, required capabilities, and optional
// required qualification.
package catalog

import "github.com/onikukiraii/josan-roster/internal/domain"

// Bounds is the (min, max) headcount allowed for a shift on one day-type.
type Bounds struct {
	Min int
	Max int
}

// Requirement is one catalog entry: the staffing rule for a single shift
// type across all three day-types.
type Requirement struct {
	Shift             domain.ShiftType
	ByDayType         map[domain.DayType]Bounds
	RequiredCapabilities []domain.CapabilityType
	RequiredQualification *domain.Qualification
}

func qual(q domain.Qualification) *domain.Qualification { return &q }

// Requirements is the static staffing catalog (§4.2), in fixed declaration
// order. Shift types absent here (ward_free, outpatient_free, day_off,
// paid_leave) carry no catalog-derived solver demand.
var Requirements = []Requirement{
	{
		Shift: domain.ShiftOutpatientLeader,
		ByDayType: map[domain.DayType]Bounds{
			domain.DayTypeWeekday:       {1, 1},
			domain.DayTypeSaturday:      {1, 1},
			domain.DayTypeSundayHoliday: {0, 0},
		},
		RequiredCapabilities: []domain.CapabilityType{domain.CapabilityOutpatientLeader},
	},
	{
		Shift: domain.ShiftTreatmentRoom,
		ByDayType: map[domain.DayType]Bounds{
			domain.DayTypeWeekday:       {1, 5},
			domain.DayTypeSaturday:      {1, 5},
			domain.DayTypeSundayHoliday: {0, 0},
		},
	},
	{
		Shift: domain.ShiftBeauty,
		ByDayType: map[domain.DayType]Bounds{
			domain.DayTypeWeekday:       {1, 1},
			domain.DayTypeSaturday:      {1, 1},
			domain.DayTypeSundayHoliday: {0, 0},
		},
		RequiredCapabilities: []domain.CapabilityType{domain.CapabilityBeauty},
	},
	{
		Shift: domain.ShiftMwOutpatient,
		ByDayType: map[domain.DayType]Bounds{
			domain.DayTypeWeekday:       {1, 2},
			domain.DayTypeSaturday:      {1, 2},
			domain.DayTypeSundayHoliday: {0, 0},
		},
		RequiredCapabilities: []domain.CapabilityType{domain.CapabilityMwOutpatient},
	},
	{
		Shift: domain.ShiftWardLeader,
		ByDayType: map[domain.DayType]Bounds{
			domain.DayTypeWeekday:       {1, 1},
			domain.DayTypeSaturday:      {1, 1},
			domain.DayTypeSundayHoliday: {1, 1},
		},
		RequiredCapabilities: []domain.CapabilityType{domain.CapabilityWardLeader, domain.CapabilityWardStaff},
	},
	{
		Shift: domain.ShiftWard,
		ByDayType: map[domain.DayType]Bounds{
			domain.DayTypeWeekday:       {1, 5},
			domain.DayTypeSaturday:      {1, 5},
			domain.DayTypeSundayHoliday: {1, 3},
		},
		RequiredCapabilities: []domain.CapabilityType{domain.CapabilityWardStaff},
	},
	{
		Shift: domain.ShiftDelivery,
		ByDayType: map[domain.DayType]Bounds{
			domain.DayTypeWeekday:       {1, 1},
			domain.DayTypeSaturday:      {0, 1},
			domain.DayTypeSundayHoliday: {0, 1},
		},
		RequiredCapabilities:  []domain.CapabilityType{domain.CapabilityWardStaff},
		RequiredQualification: qual(domain.QualificationMidwife),
	},
	{
		Shift: domain.ShiftDeliveryCharge,
		ByDayType: map[domain.DayType]Bounds{
			domain.DayTypeWeekday:       {1, 1},
			domain.DayTypeSaturday:      {1, 1},
			domain.DayTypeSundayHoliday: {1, 1},
		},
		RequiredCapabilities:  []domain.CapabilityType{domain.CapabilityWardStaff},
		RequiredQualification: qual(domain.QualificationMidwife),
	},
	{
		Shift: domain.ShiftNightLeader,
		ByDayType: map[domain.DayType]Bounds{
			domain.DayTypeWeekday:       {1, 1},
			domain.DayTypeSaturday:      {1, 1},
			domain.DayTypeSundayHoliday: {1, 1},
		},
		RequiredCapabilities: []domain.CapabilityType{domain.CapabilityNightLeader},
	},
	{
		Shift: domain.ShiftNight,
		ByDayType: map[domain.DayType]Bounds{
			domain.DayTypeWeekday:       {1, 1},
			domain.DayTypeSaturday:      {1, 1},
			domain.DayTypeSundayHoliday: {1, 1},
		},
		RequiredCapabilities: []domain.CapabilityType{domain.CapabilityNightShift},
	},
}

// ByShift indexes Requirements by shift type for O(1) lookup.
var ByShift = func() map[domain.ShiftType]Requirement {
	m := make(map[domain.ShiftType]Requirement, len(Requirements))
	for _, r := range Requirements {
		m[r.Shift] = r
	}
	return m
}()

// Bounds returns the (min, max) for a requirement at a given day-type,
// applying the pediatric-doctor-day override (§4.2, §4.4 H2): on a
// pediatric-doctor day, mw_outpatient's minimum is raised to at least 2.
func (r Requirement) Bounds(dt domain.DayType, isPediatricDay bool) Bounds {
	b := r.ByDayType[dt]
	if r.Shift == domain.ShiftMwOutpatient && isPediatricDay && b.Min < 2 {
		b.Min = 2
	}
	return b
}

// EligibleMember reports whether a member satisfies this requirement's
// capability and qualification gates (H3).
func (r Requirement) EligibleMember(capabilities map[domain.CapabilityType]bool, qualification domain.Qualification) bool {
	for _, c := range r.RequiredCapabilities {
		if !capabilities[c] {
			return false
		}
	}
	if r.RequiredQualification != nil && qualification != *r.RequiredQualification {
		return false
	}
	return true
}
