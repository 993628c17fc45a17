// Package calendar classifies dates into day-types using a Japanese-holiday
// oracle, enumerates month dates, and derives the base off-day quota used by
// the off-day quota derivation in internal/solver.
package calendar

import (
	"fmt"
	"time"

	"github.com/onikukiraii/josan-roster/internal/domain"
)

// holidays is the national-holiday set consumed by DayTypeOf. It is an
// immutable process-wide table, populated for the years this roster system
// is expected to run against; extend it as further years are needed.
var holidays = buildHolidaySet()

// DayTypeOf classifies d per §4.1: sunday_holiday if Sunday or a national
// holiday, else saturday if Saturday, else weekday.
func DayTypeOf(d time.Time) domain.DayType {
	if d.Weekday() == time.Sunday || isHoliday(d) {
		return domain.DayTypeSundayHoliday
	}
	if d.Weekday() == time.Saturday {
		return domain.DayTypeSaturday
	}
	return domain.DayTypeWeekday
}

func isHoliday(d time.Time) bool {
	key := d.Format("2006-01-02")
	return holidays[key]
}

// MonthDates returns every calendar date in yearMonth ("YYYY-MM"), in
// ascending order.
func MonthDates(yearMonth string) ([]time.Time, error) {
	first, err := time.Parse("2006-01", yearMonth)
	if err != nil {
		return nil, fmt.Errorf("calendar: invalid year_month %q: %w", yearMonth, err)
	}
	next := first.AddDate(0, 1, 0)
	var dates []time.Time
	for d := first; d.Before(next); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates, nil
}

// FormatDate renders t in the "YYYY-MM-DD" form used throughout the model.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// BaseOffDays implements base_off_days(n): 10 for a 31-day month, 9 for a
// 30-day month, 8 otherwise (§4.1).
func BaseOffDays(daysInMonth int) int {
	switch daysInMonth {
	case 31:
		return 10
	case 30:
		return 9
	default:
		return 8
	}
}

// buildHolidaySet enumerates Japan's national holidays for the years this
// system covers. Fixed-date holidays recur every year; the handful of
// equinox/weekday-relative holidays (Vernal/Autumnal Equinox Day, Happy
// Monday Act movable holidays) are listed explicitly per year rather than
// computed, mirroring how the original holiday oracle was seeded from a
// maintained table rather than an astronomical calculation.
func buildHolidaySet() map[string]bool {
	set := map[string]bool{}
	years := []int{2024, 2025, 2026, 2027}
	for _, y := range years {
		addFixedHolidays(set, y)
	}
	// Movable/equinox holidays, looked up per year.
	movable := map[int]map[string]string{
		2024: {
			"coming-of-age":     "2024-01-08",
			"vernal-equinox":    "2024-03-20",
			"marine-day":        "2024-07-15",
			"respect-for-aged":  "2024-09-16",
			"autumnal-equinox":  "2024-09-22",
			"sports-day":        "2024-10-14",
		},
		2025: {
			"coming-of-age":    "2025-01-13",
			"vernal-equinox":   "2025-03-20",
			"marine-day":       "2025-07-21",
			"respect-for-aged": "2025-09-15",
			"autumnal-equinox": "2025-09-23",
			"sports-day":       "2025-10-13",
		},
		2026: {
			"coming-of-age":    "2026-01-12",
			"vernal-equinox":   "2026-03-20",
			"marine-day":       "2026-07-20",
			"respect-for-aged": "2026-09-21",
			"autumnal-equinox": "2026-09-23",
			"sports-day":       "2026-10-12",
		},
		2027: {
			"coming-of-age":    "2027-01-11",
			"vernal-equinox":   "2027-03-21",
			"marine-day":       "2027-07-19",
			"respect-for-aged": "2027-09-20",
			"autumnal-equinox": "2027-09-23",
			"sports-day":       "2027-10-11",
		},
	}
	for _, dates := range movable {
		for _, d := range dates {
			set[d] = true
		}
	}
	return set
}

func addFixedHolidays(set map[string]bool, y int) {
	fixed := []string{
		fmt.Sprintf("%04d-02-11", y), // National Foundation Day
		fmt.Sprintf("%04d-02-23", y), // Emperor's Birthday
		fmt.Sprintf("%04d-04-29", y), // Showa Day
		fmt.Sprintf("%04d-05-03", y), // Constitution Memorial Day
		fmt.Sprintf("%04d-05-04", y), // Greenery Day
		fmt.Sprintf("%04d-05-05", y), // Children's Day
		fmt.Sprintf("%04d-08-11", y), // Mountain Day
		fmt.Sprintf("%04d-11-03", y), // Culture Day
		fmt.Sprintf("%04d-11-23", y), // Labor Thanksgiving Day
		fmt.Sprintf("%04d-01-01", y), // New Year's Day
	}
	for _, d := range fixed {
		set[d] = true
	}
}
