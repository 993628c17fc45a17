package solver

import "strings"

// InfeasibleWithDiagnosis is raised when both Step-1 and Step-2 fail and
// either static or relaxation diagnostics produced actionable messages
// (§7). Callers surface this as a 422-class failure.
type InfeasibleWithDiagnosis struct {
	Header   string
	Bullets  []string
}

func (e *InfeasibleWithDiagnosis) Error() string {
	var b strings.Builder
	b.WriteString(e.Header)
	for _, line := range e.Bullets {
		b.WriteString("\n・")
		b.WriteString(line)
	}
	return b.String()
}

const (
	staticDiagnosisHeader     = "以下の問題が見つかりました:"
	relaxationDiagnosisHeader = "制約の組み合わせにより解が見つかりませんでした。"
)

// InfeasibleGeneric is raised when neither solve step nor either
// diagnostic stage yields anything actionable.
type InfeasibleGeneric struct{}

func (e *InfeasibleGeneric) Error() string {
	return "制約を満たす解が見つかりませんでした。"
}

// ValidationError signals a malformed request payload (field range
// violations), never a solver-core infeasibility.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
