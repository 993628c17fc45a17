package store

import (
	"context"
	"fmt"
	"time"

	"github.com/onikukiraii/josan-roster/internal/calendar"
	"github.com/onikukiraii/josan-roster/internal/domain"
	"github.com/onikukiraii/josan-roster/internal/solver"
)

// Store is the Postgres-backed implementation of solver.Loader, and the
// home for schedule persistence. It satisfies solver.Loader structurally;
// the core solver package never imports this one.
type Store struct {
	db                  *DB
	pediatricDoctorRule string
}

// NewStore wires db against an optional pediatric-doctor RRULE string (see
// SPEC_FULL.md §4.12); pass "" when the clinic has no recurring pediatric
// day.
func NewStore(db *DB, pediatricDoctorRule string) *Store {
	return &Store{db: db, pediatricDoctorRule: pediatricDoctorRule}
}

var _ solver.Loader = (*Store)(nil)

// Members returns every member row with its capability set, ordered by id.
func (s *Store) Members(yearMonth string) ([]domain.Member, error) {
	ctx := context.Background()
	rows, err := s.db.pool.Query(ctx, `
		SELECT id, name, qualification, employment_type, max_night_shifts,
		       min_night_shifts, night_shift_deduction_balance, created_at, updated_at
		FROM member
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	defer rows.Close()

	var members []domain.Member
	for rows.Next() {
		var m domain.Member
		if err := rows.Scan(&m.ID, &m.Name, &m.Qualification, &m.EmploymentType,
			&m.MaxNightShifts, &m.MinNightShifts, &m.NightShiftDeductionBalance,
			&m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		m.Capabilities = map[domain.CapabilityType]bool{}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating members: %w", err)
	}

	capRows, err := s.db.pool.Query(ctx, `SELECT member_id, capability FROM member_capability`)
	if err != nil {
		return nil, fmt.Errorf("failed to query member capabilities: %w", err)
	}
	defer capRows.Close()

	byID := make(map[int]*domain.Member, len(members))
	for i := range members {
		byID[members[i].ID] = &members[i]
	}
	for capRows.Next() {
		var memberID int
		var capability string
		if err := capRows.Scan(&memberID, &capability); err != nil {
			return nil, fmt.Errorf("failed to scan member capability: %w", err)
		}
		if m, ok := byID[memberID]; ok {
			m.Capabilities[domain.CapabilityType(capability)] = true
		}
	}
	if err := capRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating member capabilities: %w", err)
	}

	return members, nil
}

// NgPairs returns every member pair that must never share a night shift.
func (s *Store) NgPairs(yearMonth string) ([]domain.NgPair, error) {
	rows, err := s.db.pool.Query(context.Background(), `SELECT member_id_a, member_id_b FROM ng_pair`)
	if err != nil {
		return nil, fmt.Errorf("failed to query ng pairs: %w", err)
	}
	defer rows.Close()

	var pairs []domain.NgPair
	for rows.Next() {
		var a, b int
		if err := rows.Scan(&a, &b); err != nil {
			return nil, fmt.Errorf("failed to scan ng pair: %w", err)
		}
		pairs = append(pairs, domain.NewNgPair(a, b))
	}
	return pairs, rows.Err()
}

// Requests returns every member request whose date falls within yearMonth.
func (s *Store) Requests(yearMonth string) ([]domain.Request, error) {
	dates, err := calendar.MonthDates(yearMonth)
	if err != nil {
		return nil, err
	}
	start, end := dates[0], dates[len(dates)-1]

	rows, err := s.db.pool.Query(context.Background(), `
		SELECT member_id, date, type FROM request
		WHERE date BETWEEN $1 AND $2
		ORDER BY member_id, date
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query requests: %w", err)
	}
	defer rows.Close()

	var requests []domain.Request
	for rows.Next() {
		var r domain.Request
		var t time.Time
		var typ string
		if err := rows.Scan(&r.MemberID, &t, &typ); err != nil {
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		r.Date = calendar.FormatDate(t)
		r.Type = domain.RequestType(typ)
		requests = append(requests, r)
	}
	return requests, rows.Err()
}

// PediatricDates expands the configured pediatric-doctor RRULE for
// yearMonth (SPEC_FULL.md §4.12). An empty rule yields an empty set.
func (s *Store) PediatricDates(yearMonth string) (map[string]bool, error) {
	if s.pediatricDoctorRule == "" {
		return map[string]bool{}, nil
	}
	return calendar.ExpandPediatricDates(s.pediatricDoctorRule, yearMonth)
}

// SaveSchedule replaces any prior assignments for yearMonth with result's
// output, inside a single transaction. Regenerating a month is a cascade:
// old assignment and unfulfilled-request rows for that schedule are
// deleted before the new solve's rows are inserted (spec.md §3 lifecycle).
func (s *Store) SaveSchedule(yearMonth string, result *solver.GenerateResult) (int, error) {
	ctx := context.Background()
	tx, err := s.db.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var scheduleID int
	err = tx.QueryRow(ctx, `
		INSERT INTO schedule (year_month, status)
		VALUES ($1, 'draft')
		ON CONFLICT (year_month) DO UPDATE SET status = 'draft'
		RETURNING id
	`, yearMonth).Scan(&scheduleID)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert schedule: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM assignment WHERE schedule_id = $1`, scheduleID); err != nil {
		return 0, fmt.Errorf("failed to clear prior assignments: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM unfulfilled_request WHERE schedule_id = $1`, scheduleID); err != nil {
		return 0, fmt.Errorf("failed to clear prior unfulfilled requests: %w", err)
	}

	for _, a := range result.Assignments {
		if _, err := tx.Exec(ctx, `
			INSERT INTO assignment (schedule_id, member_id, date, shift_type, is_early)
			VALUES ($1, $2, $3, $4, $5)
		`, scheduleID, a.MemberID, a.Date, string(a.ShiftType), a.IsEarly); err != nil {
			return 0, fmt.Errorf("failed to insert assignment: %w", err)
		}
	}

	for _, u := range result.Unfulfilled {
		if _, err := tx.Exec(ctx, `
			INSERT INTO unfulfilled_request (schedule_id, member_id, date)
			VALUES ($1, $2, $3)
		`, scheduleID, u.MemberID, u.Date); err != nil {
			return 0, fmt.Errorf("failed to insert unfulfilled request: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit schedule: %w", err)
	}

	return scheduleID, nil
}

// AllMembers returns every member row with its capability set, keyed by id
// (ignores month scoping — used by the edit validator, which needs the
// full roster regardless of which month a schedule belongs to).
func (s *Store) AllMembers() (map[int]domain.Member, error) {
	members, err := s.Members("")
	if err != nil {
		return nil, err
	}
	byID := make(map[int]domain.Member, len(members))
	for _, m := range members {
		byID[m.ID] = m
	}
	return byID, nil
}

// YearMonthForSchedule looks up the year-month a schedule id belongs to.
func (s *Store) YearMonthForSchedule(scheduleID int) (string, error) {
	var yearMonth string
	err := s.db.pool.QueryRow(context.Background(),
		`SELECT year_month FROM schedule WHERE id = $1`, scheduleID).Scan(&yearMonth)
	if err != nil {
		return "", fmt.Errorf("failed to look up schedule %d: %w", scheduleID, err)
	}
	return yearMonth, nil
}

// ReplaceAssignments overwrites every assignment row for scheduleID with
// assignments, used by the treatment-room fill utility to persist its
// additions back onto an already-generated schedule.
func (s *Store) ReplaceAssignments(scheduleID int, assignments []domain.Assignment) error {
	ctx := context.Background()
	tx, err := s.db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM assignment WHERE schedule_id = $1`, scheduleID); err != nil {
		return fmt.Errorf("failed to clear assignments: %w", err)
	}

	for _, a := range assignments {
		if _, err := tx.Exec(ctx, `
			INSERT INTO assignment (schedule_id, member_id, date, shift_type, is_early)
			VALUES ($1, $2, $3, $4, $5)
		`, scheduleID, a.MemberID, a.Date, string(a.ShiftType), a.IsEarly); err != nil {
			return fmt.Errorf("failed to insert assignment: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// LoadRoster reads a persisted schedule's assignments back, ordered by
// member and date, for use as validator.Roster.Assignments.
func (s *Store) LoadRoster(scheduleID int) ([]domain.Assignment, error) {
	rows, err := s.db.pool.Query(context.Background(), `
		SELECT member_id, date, shift_type, is_early
		FROM assignment
		WHERE schedule_id = $1
		ORDER BY member_id, date
	`, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []domain.Assignment
	for rows.Next() {
		var a domain.Assignment
		var t time.Time
		var shiftType string
		if err := rows.Scan(&a.MemberID, &t, &shiftType, &a.IsEarly); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		a.Date = calendar.FormatDate(t)
		a.ShiftType = domain.ShiftType(shiftType)
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

// ApplyEdit persists a single member/date/shift override, the write side
// of the §4.10 edit validator — it never refuses the write, only reports
// warnings separately.
func (s *Store) ApplyEdit(scheduleID, memberID int, date string, shiftType domain.ShiftType, isEarly bool) error {
	_, err := s.db.pool.Exec(context.Background(), `
		INSERT INTO assignment (schedule_id, member_id, date, shift_type, is_early)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (schedule_id, member_id, date)
		DO UPDATE SET shift_type = EXCLUDED.shift_type, is_early = EXCLUDED.is_early
	`, scheduleID, memberID, date, string(shiftType), isEarly)
	if err != nil {
		return fmt.Errorf("failed to apply edit: %w", err)
	}
	return nil
}
