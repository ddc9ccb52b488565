// Package main provides the HTTP API server for tripnotes.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"tripnotes/internal/config"
	"tripnotes/internal/fetch"
	"tripnotes/internal/llm"
	"tripnotes/internal/metrics"
	"tripnotes/internal/places"
	"tripnotes/internal/server"
	"tripnotes/internal/service"
	"tripnotes/internal/store"
	"tripnotes/internal/summarize"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger, cleanup := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
	defer func() { _ = cleanup() }()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	initCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	model, err := llm.NewModel(initCtx, cfg)
	if err != nil {
		logger.Error("failed to create model", "error", err)
		os.Exit(1)
	}

	embedder, err := llm.NewEmbedder(cfg)
	if err != nil {
		logger.Error("failed to create embedder", "error", err)
		os.Exit(1)
	}

	st, err := store.New(initCtx, store.Config{
		URL:       cfg.SurrealDBURL,
		Namespace: cfg.SurrealDBNamespace,
		Database:  cfg.SurrealDBDatabase,
		Username:  cfg.SurrealDBUser,
		Password:  cfg.SurrealDBPass,
		AuthLevel: cfg.SurrealDBAuthLevel,
	}, embedder, logger)
	if err != nil {
		logger.Error("failed to connect to store", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			logger.Error("failed to close store", "error", err)
		}
	}()

	if err := st.Init(initCtx); err != nil {
		logger.Error("failed to initialize schema", "error", err)
		os.Exit(1)
	}

	collector := metrics.NewCollector()

	deps := service.Deps{
		Fetcher:    fetch.New(initCtx, cfg),
		Summarizer: summarize.New(model, cfg),
		Store:      st,
		Files:      store.Files{ChunksDir: cfg.ChunksDir, SummariesDir: cfg.SummariesDir},
		Metrics:    collector,
	}
	if cfg.PlacesAPIKey != "" {
		deps.Places = places.NewClient(places.Config{
			APIKey:    cfg.PlacesAPIKey,
			Language:  cfg.PlacesLanguage,
			Region:    cfg.PlacesRegion,
			MaxPhotos: cfg.MaxPhotos,
		})
	} else {
		logger.Warn("no places API key configured, places stay name-only")
	}

	analyzer := service.NewAnalyzer(deps, cfg)
	searcher := service.NewSearcher(st, collector)

	srv := server.New(cfg.HTTPAddr, analyzer, searcher, collector, logger)
	if err := srv.Run(ctx); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
