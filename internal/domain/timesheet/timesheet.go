package timesheet

import (
	"fmt"
	"strings"
	"time"
)

type Entry struct {
	ID         int64     `json:"id,omitempty"`
	Technician string    `json:"technician"`
	Date       time.Time `json:"date"`
	Hours      float64   `json:"hours"`
	JobRef     string    `json:"job_ref,omitempty"`
	Notes      string    `json:"notes,omitempty"`
}

type LeaveType string

const (
	LeaveAnnual     LeaveType = "annual"
	LeaveSick       LeaveType = "sick"
	LeaveUnpaid     LeaveType = "unpaid"
	LeaveTimeInLieu LeaveType = "time_in_lieu"
)

type LeaveStatus string

const (
	LeavePending  LeaveStatus = "pending"
	LeaveApproved LeaveStatus = "approved"
	LeaveDeclined LeaveStatus = "declined"
)

type LeaveRequest struct {
	ID         int64       `json:"id,omitempty"`
	Technician string      `json:"technician"`
	From       time.Time   `json:"from"`
	To         time.Time   `json:"to"`
	Type       LeaveType   `json:"type"`
	Status     LeaveStatus `json:"status"`
	Reason     string      `json:"reason,omitempty"`
}

func (e Entry) Validate() error {
	if strings.TrimSpace(e.Technician) == "" {
		return fmt.Errorf("technician is required")
	}
	if e.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	if e.Hours <= 0 || e.Hours > 24 {
		return fmt.Errorf("hours must be between 0 and 24")
	}
	return nil
}

func ValidLeaveType(t LeaveType) bool {
	switch t {
	case LeaveAnnual, LeaveSick, LeaveUnpaid, LeaveTimeInLieu:
		return true
	}
	return false
}

func (l LeaveRequest) Validate() error {
	if strings.TrimSpace(l.Technician) == "" {
		return fmt.Errorf("technician is required")
	}
	if l.From.IsZero() || l.To.IsZero() {
		return fmt.Errorf("from and to dates are required")
	}
	if l.To.Before(l.From) {
		return fmt.Errorf("to date is before from date")
	}
	if !ValidLeaveType(l.Type) {
		return fmt.Errorf("invalid leave type %q", l.Type)
	}
	return nil
}

// Overlaps reports whether two leave ranges share at least one day.
func (l LeaveRequest) Overlaps(other LeaveRequest) bool {
	return !l.To.Before(other.From) && !other.To.Before(l.From)
}
