package solver

import "github.com/onikukiraii/josan-roster/internal/domain"

// Loader is the narrow input contract the core consumes (§6). Every
// persistence, transport, or configuration concern lives behind this
// interface; the solver package never imports internal/store directly.
type Loader interface {
	Members(yearMonth string) ([]domain.Member, error)
	NgPairs(yearMonth string) ([]domain.NgPair, error)
	Requests(yearMonth string) ([]domain.Request, error)
	PediatricDates(yearMonth string) (map[string]bool, error)
}
