package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/RKATechSolutions/crane-care/internal/app/config"
	"github.com/RKATechSolutions/crane-care/internal/app/http/handlers"
	"github.com/RKATechSolutions/crane-care/internal/app/http/middleware"
	"github.com/RKATechSolutions/crane-care/internal/domain/quote/pdf"
	"github.com/RKATechSolutions/crane-care/internal/infra/db/postgres"
)

func NewRouter(cfg config.Config, db *postgres.DB, gen pdf.Generator, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logging(&log))

	h := handlers.New(db, cfg, gen, log)

	r.Get("/health", h.Health)

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.InternalAuth(cfg.InternalToken))

		r.Post("/quotes/pdf", h.QuotePDF)
		r.Post("/quotes/email", h.EmailQuote)

		r.Post("/inspections", h.CreateInspection)
		r.Get("/inspections", h.ListInspections)
		r.Post("/inspections/{id}/complete", h.CompleteInspection)

		r.Post("/timesheets", h.CreateTimesheetEntry)
		r.Get("/timesheets", h.ListTimesheetEntries)
		r.Post("/leave", h.CreateLeaveRequest)
		r.Get("/leave", h.ListLeaveRequests)

		r.Get("/assets", h.ListAssets)
		r.Post("/assets/import", h.ImportAssets)
		r.Get("/clients", h.ListClients)

		r.Post("/jobs", h.CreateJob)
		r.Get("/jobs", h.ListJobs)
	})

	return r
}
