package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/RKATechSolutions/crane-care/internal/domain/inspection"
)

type CreateInspectionRequest struct {
	AssetID    int64               `json:"asset_id"`
	Technician string              `json:"technician"`
	Date       string              `json:"date"`
	Notes      string              `json:"notes"`
	Defects    []inspection.Defect `json:"defects"`
}

func (h *Handlers) CreateInspection(w http.ResponseWriter, r *http.Request) {
	var req CreateInspectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			http.Error(w, "invalid date", http.StatusBadRequest)
			return
		}
		date = parsed
	}

	ins := inspection.Inspection{
		AssetID:    req.AssetID,
		Technician: req.Technician,
		Date:       date,
		Notes:      req.Notes,
		Defects:    req.Defects,
	}
	if err := ins.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id, err := h.Inspections.Create(r.Context(), ins)
	if err != nil {
		h.Log.Error().Err(err).Int64("asset_id", req.AssetID).Msg("create inspection failed")
		http.Error(w, "create inspection failed", http.StatusBadGateway)
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *Handlers) ListInspections(w http.ResponseWriter, r *http.Request) {
	assetID, _ := strconv.ParseInt(r.URL.Query().Get("asset_id"), 10, 64)
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	out, err := h.Inspections.List(r.Context(), assetID, limit)
	if err != nil {
		h.Log.Error().Err(err).Msg("list inspections failed")
		http.Error(w, "list inspections failed", http.StatusBadGateway)
		return
	}
	h.writeJSON(w, http.StatusOK, out)
}

// CompleteInspection marks the inspection done. When findings exist an AI
// summary is requested best-effort: a summariser failure never blocks
// completion.
func (h *Handlers) CompleteInspection(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	ins, err := h.Inspections.Get(r.Context(), id)
	if err != nil {
		http.Error(w, "inspection not found", http.StatusNotFound)
		return
	}

	summary := ""
	if len(ins.Defects) > 0 {
		s, err := h.AI.SummariseDefects(r.Context(), strconv.FormatInt(ins.AssetID, 10), inspection.DefectLines(ins.Defects))
		if err != nil {
			h.Log.Warn().Err(err).Int64("inspection", id).Msg("ai summary failed, completing without it")
		} else {
			summary = s
		}
	}

	if err := h.Inspections.Complete(r.Context(), id, summary); err != nil {
		h.Log.Error().Err(err).Int64("inspection", id).Msg("complete inspection failed")
		http.Error(w, "complete inspection failed", http.StatusBadGateway)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{"id": id, "summary": summary})
}
