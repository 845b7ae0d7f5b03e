package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/RKATechSolutions/crane-care/internal/domain/timesheet"
)

type TimesheetEntryRequest struct {
	Technician string  `json:"technician"`
	Date       string  `json:"date"`
	Hours      float64 `json:"hours"`
	JobRef     string  `json:"job_ref"`
	Notes      string  `json:"notes"`
}

func (h *Handlers) CreateTimesheetEntry(w http.ResponseWriter, r *http.Request) {
	var req TimesheetEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}

	e := timesheet.Entry{
		Technician: req.Technician,
		Date:       date,
		Hours:      req.Hours,
		JobRef:     req.JobRef,
		Notes:      req.Notes,
	}
	if err := e.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id, err := h.Timesheets.Create(r.Context(), e)
	if err != nil {
		h.Log.Error().Err(err).Str("technician", e.Technician).Msg("create timesheet entry failed")
		http.Error(w, "create timesheet entry failed", http.StatusBadGateway)
		return
	}
	h.writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *Handlers) ListTimesheetEntries(w http.ResponseWriter, r *http.Request) {
	from, _ := time.Parse("2006-01-02", r.URL.Query().Get("from"))
	to, _ := time.Parse("2006-01-02", r.URL.Query().Get("to"))

	out, err := h.Timesheets.List(r.Context(), r.URL.Query().Get("technician"), from, to)
	if err != nil {
		h.Log.Error().Err(err).Msg("list timesheet entries failed")
		http.Error(w, "list timesheet entries failed", http.StatusBadGateway)
		return
	}
	h.writeJSON(w, http.StatusOK, out)
}

type LeaveRequestBody struct {
	Technician string `json:"technician"`
	From       string `json:"from"`
	To         string `json:"to"`
	Type       string `json:"type"`
	Reason     string `json:"reason"`
}

func (h *Handlers) CreateLeaveRequest(w http.ResponseWriter, r *http.Request) {
	var req LeaveRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	from, errFrom := time.Parse("2006-01-02", req.From)
	to, errTo := time.Parse("2006-01-02", req.To)
	if errFrom != nil || errTo != nil {
		http.Error(w, "invalid from/to date", http.StatusBadRequest)
		return
	}

	l := timesheet.LeaveRequest{
		Technician: req.Technician,
		From:       from,
		To:         to,
		Type:       timesheet.LeaveType(req.Type),
		Reason:     req.Reason,
	}
	if err := l.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id, err := h.Timesheets.CreateLeave(r.Context(), l)
	if err != nil {
		h.Log.Error().Err(err).Str("technician", l.Technician).Msg("create leave request failed")
		http.Error(w, "create leave request failed", http.StatusBadGateway)
		return
	}
	h.writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *Handlers) ListLeaveRequests(w http.ResponseWriter, r *http.Request) {
	out, err := h.Timesheets.ListLeave(r.Context(), r.URL.Query().Get("technician"))
	if err != nil {
		h.Log.Error().Err(err).Msg("list leave requests failed")
		http.Error(w, "list leave requests failed", http.StatusBadGateway)
		return
	}
	h.writeJSON(w, http.StatusOK, out)
}
