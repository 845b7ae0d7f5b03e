package timesheet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	ts, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return ts
}

func TestEntryValidate(t *testing.T) {
	ok := Entry{Technician: "M. Okafor", Date: day("2026-08-14"), Hours: 7.5}
	require.NoError(t, ok.Validate())

	cases := []struct {
		name  string
		entry Entry
	}{
		{"no technician", Entry{Date: day("2026-08-14"), Hours: 8}},
		{"no date", Entry{Technician: "x", Hours: 8}},
		{"zero hours", Entry{Technician: "x", Date: day("2026-08-14")}},
		{"too many hours", Entry{Technician: "x", Date: day("2026-08-14"), Hours: 25}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, tc.entry.Validate())
		})
	}
}

func TestLeaveValidate(t *testing.T) {
	ok := LeaveRequest{Technician: "x", From: day("2026-09-01"), To: day("2026-09-05"), Type: LeaveAnnual}
	require.NoError(t, ok.Validate())

	bad := ok
	bad.To = day("2026-08-30")
	assert.Error(t, bad.Validate())

	bad = ok
	bad.Type = "holiday"
	assert.Error(t, bad.Validate())
}

func TestLeaveOverlaps(t *testing.T) {
	a := LeaveRequest{From: day("2026-09-01"), To: day("2026-09-05")}
	b := LeaveRequest{From: day("2026-09-05"), To: day("2026-09-10")}
	c := LeaveRequest{From: day("2026-09-06"), To: day("2026-09-10")}

	assert.True(t, a.Overlaps(b))
	assert.True(t, b.Overlaps(a))
	assert.False(t, a.Overlaps(c))
}
