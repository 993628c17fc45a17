package solver

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/onikukiraii/josan-roster/internal/calendar"
	"github.com/onikukiraii/josan-roster/internal/domain"
)

func monthDateStrings(t *testing.T, yearMonth string) []string {
	t.Helper()
	dates, err := calendar.MonthDates(yearMonth)
	if err != nil {
		t.Fatal(err)
	}
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = calendar.FormatDate(d)
	}
	return out
}

// TestDiagnoseStatic_SeedScenarioD mirrors S-D: a lone ward-capable nurse
// with max_nights=4 carries none of the specialist capabilities
// (outpatient_leader, beauty, mw_outpatient...) and cannot cover the
// month's day-shift person-day demand alone; both shortfalls should be
// reported.
func TestDiagnoseStatic_SeedScenarioD(t *testing.T) {
	member := domain.Member{
		ID:             1,
		Name:           "member",
		Qualification:  domain.QualificationNurse,
		EmploymentType: domain.EmploymentFullTime,
		MaxNightShifts: 4,
		Capabilities: map[domain.CapabilityType]bool{
			domain.CapabilityDayShift:  true,
			domain.CapabilityWardStaff: true,
		},
	}
	dates := monthDateStrings(t, "2025-01")
	requiredOff := DeriveOffDayQuotas([]domain.Member{member}, len(dates))

	messages := DiagnoseStatic([]domain.Member{member}, dates, map[string]bool{}, requiredOff)
	require := assert.New(t)
	require.NotEmpty(messages)

	joined := strings.Join(messages, "\n")
	require.Contains(joined, "外来L")
	require.Contains(joined, "日勤帯")
}

func TestDiagnoseStatic_NoProblemsForSeedScenarioA(t *testing.T) {
	var members []domain.Member
	for i := 1; i <= 15; i++ {
		members = append(members, fullCapabilityMember(i, 5))
	}
	dates := monthDateStrings(t, "2025-01")
	requiredOff := DeriveOffDayQuotas(members, len(dates))

	messages := DiagnoseStatic(members, dates, map[string]bool{}, requiredOff)
	assert.Empty(t, messages)
}
