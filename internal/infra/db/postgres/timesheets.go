package postgres

import (
	"context"
	"time"

	"github.com/RKATechSolutions/crane-care/internal/domain/timesheet"
)

type TimesheetStore struct {
	db *DB
}

func NewTimesheetStore(db *DB) *TimesheetStore { return &TimesheetStore{db: db} }

func (s *TimesheetStore) Create(ctx context.Context, e timesheet.Entry) (int64, error) {
	var id int64
	err := s.db.Pool.QueryRow(ctx,
		`INSERT INTO timesheet_entries (technician, entry_date, hours, job_ref, notes)
		 VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, '')) RETURNING id`,
		e.Technician, e.Date, e.Hours, e.JobRef, e.Notes,
	).Scan(&id)
	return id, err
}

func (s *TimesheetStore) List(ctx context.Context, technician string, from, to time.Time) ([]timesheet.Entry, error) {
	rows, err := s.db.Pool.Query(ctx,
		`SELECT id, technician, entry_date, hours, COALESCE(job_ref, ''), COALESCE(notes, '')
		 FROM timesheet_entries
		 WHERE ($1 = '' OR technician = $1)
		   AND ($2::timestamptz IS NULL OR entry_date >= $2)
		   AND ($3::timestamptz IS NULL OR entry_date <= $3)
		 ORDER BY entry_date DESC`,
		technician, nullableTime(from), nullableTime(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []timesheet.Entry
	for rows.Next() {
		var e timesheet.Entry
		if err := rows.Scan(&e.ID, &e.Technician, &e.Date, &e.Hours, &e.JobRef, &e.Notes); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *TimesheetStore) CreateLeave(ctx context.Context, l timesheet.LeaveRequest) (int64, error) {
	var id int64
	err := s.db.Pool.QueryRow(ctx,
		`INSERT INTO leave_requests (technician, from_date, to_date, leave_type, status, reason)
		 VALUES ($1, $2, $3, $4, $5, NULLIF($6, '')) RETURNING id`,
		l.Technician, l.From, l.To, l.Type, timesheet.LeavePending, l.Reason,
	).Scan(&id)
	return id, err
}

func (s *TimesheetStore) ListLeave(ctx context.Context, technician string) ([]timesheet.LeaveRequest, error) {
	rows, err := s.db.Pool.Query(ctx,
		`SELECT id, technician, from_date, to_date, leave_type, status, COALESCE(reason, '')
		 FROM leave_requests
		 WHERE ($1 = '' OR technician = $1)
		 ORDER BY from_date DESC`, technician)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []timesheet.LeaveRequest
	for rows.Next() {
		var l timesheet.LeaveRequest
		if err := rows.Scan(&l.ID, &l.Technician, &l.From, &l.To, &l.Type, &l.Status, &l.Reason); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
