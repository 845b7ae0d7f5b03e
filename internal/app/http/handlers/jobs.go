package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/RKATechSolutions/crane-care/internal/domain/inspection"
	"github.com/RKATechSolutions/crane-care/internal/infra/jobmgmt"
)

type CreateJobRequest struct {
	ClientRef string              `json:"client_ref"`
	AssetRef  string              `json:"asset_ref"`
	Summary   string              `json:"summary"`
	Defects   []inspection.Defect `json:"defects"`
}

// CreateJob raises a repair job in the job-management system from defect
// findings. Missing defects fail fast, before any network call.
func (h *Handlers) CreateJob(w http.ResponseWriter, r *http.Request) {
	var req CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if len(req.Defects) == 0 {
		http.Error(w, "defects are required", http.StatusBadRequest)
		return
	}
	for i, d := range req.Defects {
		if d.Description == "" || !inspection.ValidSeverity(d.Severity) {
			http.Error(w, "invalid defect at position "+strconv.Itoa(i+1), http.StatusBadRequest)
			return
		}
	}

	jr := jobmgmt.JobRequest{
		ClientRef: req.ClientRef,
		AssetRef:  req.AssetRef,
		Summary:   req.Summary,
	}
	for _, d := range req.Defects {
		jr.Defects = append(jr.Defects, jobmgmt.Defect{
			Description:    d.Description,
			Severity:       string(d.Severity),
			Recommendation: d.Recommendation,
		})
	}

	id, err := h.Jobs.CreateJob(r.Context(), jr)
	if err != nil {
		h.Log.Error().Err(err).Str("client_ref", req.ClientRef).Msg("create job failed")
		http.Error(w, "job creation failed", http.StatusBadGateway)
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *Handlers) ListJobs(w http.ResponseWriter, r *http.Request) {
	out, err := h.Jobs.ListJobs(r.Context())
	if err != nil {
		h.Log.Error().Err(err).Msg("list jobs failed")
		http.Error(w, "list jobs failed", http.StatusBadGateway)
		return
	}
	h.writeJSON(w, http.StatusOK, out)
}
