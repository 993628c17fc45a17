package domain

import "time"

// Member is a staff member eligible for shift assignment. MaxNightShifts and
// MinNightShifts bound the monthly night count (H10, H17); NightShiftDeductionBalance
// feeds the off-day quota derivation (see internal/solver's DeriveOffDayQuotas).
type Member struct {
	ID                         int
	Name                       string
	Qualification              Qualification
	EmploymentType             EmploymentType
	MaxNightShifts             int
	MinNightShifts             int
	NightShiftDeductionBalance int
	Capabilities               map[CapabilityType]bool

	// Persistence-level fields, not consumed by the solver core.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasCapability reports whether m carries cap.
func (m Member) HasCapability(cap CapabilityType) bool {
	return m.Capabilities[cap]
}

// IsFullTime reports whether m is a full-time employee.
func (m Member) IsFullTime() bool { return m.EmploymentType == EmploymentFullTime }

// IsPartTime reports whether m is a part-time employee.
func (m Member) IsPartTime() bool { return m.EmploymentType == EmploymentPartTime }

// NgPair is an unordered pair of member ids, always stored with IDA < IDB,
// meaning the two must never both work a night shift on the same day (H7).
type NgPair struct {
	IDA int
	IDB int
}

// NewNgPair normalizes a and b so IDA < IDB, matching the persistence-layer
// check constraint carried over from the original entity model.
func NewNgPair(a, b int) NgPair {
	if a < b {
		return NgPair{IDA: a, IDB: b}
	}
	return NgPair{IDA: b, IDB: a}
}

// Request is a member's request for a single date (§3). At most one request
// may exist per (MemberID, Date).
type Request struct {
	MemberID int
	Date     string // "YYYY-MM-DD"
	Type     RequestType
}

// MappedShift returns the shift type H12/H13 force the member into when this
// request is honored as hard. day_shift_request has no mapped shift since it
// is not enforced by the core solver (see DESIGN.md open-question decision).
func (r Request) MappedShift() (ShiftType, bool) {
	switch r.Type {
	case RequestDayOff:
		return ShiftDayOff, true
	case RequestPaidLeave:
		return ShiftPaidLeave, true
	default:
		return "", false
	}
}
