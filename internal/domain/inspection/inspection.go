package inspection

import (
	"fmt"
	"strings"
	"time"
)

type Severity string

const (
	SeverityMinor    Severity = "minor"
	SeverityMajor    Severity = "major"
	SeverityCritical Severity = "critical"
)

type Status string

const (
	StatusOpen      Status = "open"
	StatusCompleted Status = "completed"
)

type Defect struct {
	ID             int64    `json:"id,omitempty"`
	Description    string   `json:"description"`
	Severity       Severity `json:"severity"`
	Recommendation string   `json:"recommendation,omitempty"`
}

type Inspection struct {
	ID         int64     `json:"id,omitempty"`
	AssetID    int64     `json:"asset_id"`
	Technician string    `json:"technician"`
	Date       time.Time `json:"date"`
	Status     Status    `json:"status"`
	Notes      string    `json:"notes,omitempty"`
	Summary    string    `json:"summary,omitempty"`
	Defects    []Defect  `json:"defects,omitempty"`
}

func ValidSeverity(s Severity) bool {
	switch s {
	case SeverityMinor, SeverityMajor, SeverityCritical:
		return true
	}
	return false
}

// Validate checks the shape of a new inspection before it is stored.
func (ins Inspection) Validate() error {
	if ins.AssetID <= 0 {
		return fmt.Errorf("asset_id is required")
	}
	if strings.TrimSpace(ins.Technician) == "" {
		return fmt.Errorf("technician is required")
	}
	for i, d := range ins.Defects {
		if strings.TrimSpace(d.Description) == "" {
			return fmt.Errorf("defect %d: description is required", i+1)
		}
		if !ValidSeverity(d.Severity) {
			return fmt.Errorf("defect %d: invalid severity %q", i+1, d.Severity)
		}
	}
	return nil
}

// DefectLines flattens findings into one line per defect, the form both the
// AI summariser and the job-management payload consume.
func DefectLines(defects []Defect) []string {
	out := make([]string, 0, len(defects))
	for _, d := range defects {
		line := fmt.Sprintf("[%s] %s", d.Severity, d.Description)
		if strings.TrimSpace(d.Recommendation) != "" {
			line += "; recommend: " + d.Recommendation
		}
		out = append(out, line)
	}
	return out
}
