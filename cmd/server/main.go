package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/knowhub/sectiond/internal/api"
	"github.com/knowhub/sectiond/internal/config"
	"github.com/knowhub/sectiond/internal/fetch"
	"github.com/knowhub/sectiond/internal/ingest"
	"github.com/knowhub/sectiond/internal/store"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Open storage.
	sqldb, err := sql.Open("sqlite3", cfg.DBPath+"?_fk=1&_journal_mode=WAL")
	if err != nil {
		log.Error("open database", "error", err)
		os.Exit(1)
	}
	db := bun.NewDB(sqldb, sqlitedialect.New())
	st := store.New(db)
	if err := st.Init(ctx); err != nil {
		log.Error("init schema", "error", err)
		os.Exit(1)
	}

	// Initialize import pipeline.
	fetcher := fetch.NewClient(cfg.FetchTimeout, cfg.MaxFetchBytes)
	orch := ingest.NewOrchestrator(cfg, fetcher, st, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, st, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		fetcher.Close()
		db.Close()
	}()

	log.Info("starting sectiond", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
