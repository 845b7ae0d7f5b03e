package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/RKATechSolutions/crane-care/internal/app/config"
	"github.com/RKATechSolutions/crane-care/internal/domain/quote/pdf"
	"github.com/RKATechSolutions/crane-care/internal/infra/ai"
	"github.com/RKATechSolutions/crane-care/internal/infra/db/postgres"
	"github.com/RKATechSolutions/crane-care/internal/infra/email"
	"github.com/RKATechSolutions/crane-care/internal/infra/jobmgmt"
)

type Handlers struct {
	Cfg config.Config
	Log zerolog.Logger

	PDF   pdf.Generator
	Email *email.Client
	Jobs  *jobmgmt.Client
	AI    *ai.Client

	Inspections *postgres.InspectionStore
	Assets      *postgres.AssetStore
	Clients     *postgres.ClientStore
	Timesheets  *postgres.TimesheetStore
}

func New(db *postgres.DB, cfg config.Config, gen pdf.Generator, log zerolog.Logger) *Handlers {
	return &Handlers{
		Cfg:         cfg,
		Log:         log,
		PDF:         gen,
		Email:       email.New(cfg.EmailAPIURL, cfg.EmailAPIKey, cfg.EmailFrom, log),
		Jobs:        jobmgmt.New(cfg.JobsAPIURL, cfg.JobsAPIToken, cfg.JobsAPISecret, cfg.JobsPageSize, cfg.JobsPageDelay, log),
		AI:          ai.New(cfg.AIBaseURL, cfg.AIAPIKey, cfg.AIModel, log),
		Inspections: postgres.NewInspectionStore(db),
		Assets:      postgres.NewAssetStore(db),
		Clients:     postgres.NewClientStore(db),
		Timesheets:  postgres.NewTimesheetStore(db),
	}
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.Log.Error().Err(err).Msg("write response failed")
	}
}
