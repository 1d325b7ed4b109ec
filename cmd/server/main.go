// Command server runs the expense ledger HTTP API.
//
//	@title			Expense Ledger API
//	@version		1.0
//	@description	Employee expense advances: records, per-employee balances, charts and exports.
//	@BasePath		/
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gestion-frais/expense-ledger/internal/api"
	"github.com/gestion-frais/expense-ledger/internal/api/metrics"
	"github.com/gestion-frais/expense-ledger/internal/core/service"
	"github.com/gestion-frais/expense-ledger/internal/core/view"
	"github.com/gestion-frais/expense-ledger/internal/infrastructure/backend"
	"github.com/gestion-frais/expense-ledger/internal/infrastructure/chart"
	"github.com/gestion-frais/expense-ledger/internal/infrastructure/config"
	"github.com/gestion-frais/expense-ledger/internal/infrastructure/export"
	"github.com/gestion-frais/expense-ledger/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		l := logger.Init(logger.Options{})
		l.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "expense-ledger",
	})

	store, err := backend.OpenServerStore(ctx, cfg, logger.For("store"))
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.StoreBackend).Msg("failed to open record store")
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			log.Error().Err(err).Msg("failed to close record store")
		}
	}()

	svc := service.NewExpenseService(metrics.InstrumentStore(store.Name, store.Store), logger.For("service"))
	e := api.NewRouter(api.Deps{
		Service:     svc,
		Projector:   view.NewProjector(cfg.Currency.Locale, cfg.Currency.Suffix),
		Renderer:    chart.NewPNGRenderer(),
		Exporter:    export.NewPDFExporter(),
		Readiness:   store.Readiness,
		Logger:      logger.For("http"),
		CORSOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("backend", store.Name).Msg("expense api listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server error")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
