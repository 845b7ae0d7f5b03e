package app

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/RKATechSolutions/crane-care/internal/app/config"
	apphttp "github.com/RKATechSolutions/crane-care/internal/app/http"
	pdfgen "github.com/RKATechSolutions/crane-care/internal/domain/quote/pdf/gofpdf"
	"github.com/RKATechSolutions/crane-care/internal/infra/db/postgres"
)

func Run() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg := config.MustLoad()

	db, err := postgres.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}
	defer db.Close()

	router := apphttp.NewRouter(cfg, db, pdfgen.New(log), log)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info().Str("addr", cfg.HTTPAddr).Msg("listening")
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
