package calendar

import (
	"fmt"

	"github.com/teambition/rrule-go"
)

// ExpandPediatricDates expands an RRULE string describing the pediatric
// doctor's clinic days (e.g. "FREQ=WEEKLY;BYDAY=TU,FR") into the set of
// dates within yearMonth that the rule touches. This lets the loader carry
// a single recurrence rule in configuration instead of a hand-maintained
// per-month date list; the core solver still only ever sees the expanded
// "YYYY-MM-DD" set (§6 loader contract, pediatric_dates).
func ExpandPediatricDates(ruleStr string, yearMonth string) (map[string]bool, error) {
	if ruleStr == "" {
		return map[string]bool{}, nil
	}
	months, err := MonthDates(yearMonth)
	if err != nil {
		return nil, err
	}
	if len(months) == 0 {
		return map[string]bool{}, nil
	}

	start := months[0]
	end := months[len(months)-1].AddDate(0, 0, 1)

	opt, err := rrule.StrToROption(ruleStr)
	if err != nil {
		return nil, fmt.Errorf("calendar: invalid pediatric doctor rrule %q: %w", ruleStr, err)
	}
	// A rule without DTSTART is anchored at the first day of yearMonth.
	if opt.Dtstart.IsZero() {
		opt.Dtstart = start
	}
	r, err := rrule.NewRRule(*opt)
	if err != nil {
		return nil, fmt.Errorf("calendar: invalid pediatric doctor rrule %q: %w", ruleStr, err)
	}

	occurrences := r.Between(start, end, true)

	dates := make(map[string]bool, len(occurrences))
	for _, t := range occurrences {
		dates[FormatDate(t)] = true
	}
	return dates, nil
}
