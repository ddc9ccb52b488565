// Package cli provides the command-line interface for tripnotes.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"tripnotes/internal/config"
	"tripnotes/internal/fetch"
	"tripnotes/internal/llm"
	"tripnotes/internal/metrics"
	"tripnotes/internal/places"
	"tripnotes/internal/service"
	"tripnotes/internal/store"
	"tripnotes/internal/summarize"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose bool

	cfg        config.Config
	logger     *slog.Logger
	logCleanup func() error

	// Opened lazily by commands that persist or query documents.
	docStore  *store.Store
	collector = metrics.NewCollector()
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "tripnotes",
	Short: "Travel content analysis pipeline",
	Long: `Tripnotes turns travel videos, blog posts, and text notes into a
structured trip report: it fetches transcripts and page text, summarizes
them with an LLM, enriches every mentioned place with lookup details,
and stores the outcome for similarity search.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		cfg = config.Load()
		level := cfg.LogLevel
		if verbose {
			level = slog.LevelDebug
		}
		logger, logCleanup = config.SetupLogger(cfg.LogFile, level)
		slog.SetDefault(logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if docStore != nil {
			if err := docStore.Close(context.Background()); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close store: %v\n", err)
			}
		}
		if logCleanup != nil {
			_ = logCleanup()
		}
	},
}

// openStore connects to SurrealDB and initializes the schema. The handle is
// cached and closed by the root PostRun.
func openStore(ctx context.Context) (*store.Store, error) {
	if docStore != nil {
		return docStore, nil
	}

	embedder, err := llm.NewEmbedder(cfg)
	if err != nil {
		return nil, fmt.Errorf("init embedder: %w", err)
	}

	st, err := store.New(ctx, store.Config{
		URL:       cfg.SurrealDBURL,
		Namespace: cfg.SurrealDBNamespace,
		Database:  cfg.SurrealDBDatabase,
		Username:  cfg.SurrealDBUser,
		Password:  cfg.SurrealDBPass,
		AuthLevel: cfg.SurrealDBAuthLevel,
	}, embedder, logger)
	if err != nil {
		return nil, fmt.Errorf("connect to store: %w", err)
	}
	if err := st.Init(ctx); err != nil {
		_ = st.Close(ctx)
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	docStore = st
	return st, nil
}

// buildAnalyzer wires the full pipeline. withStore controls whether the
// outcome is persisted for later search.
func buildAnalyzer(ctx context.Context, withStore bool) (*service.Analyzer, error) {
	model, err := llm.NewModel(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("init model: %w", err)
	}

	deps := service.Deps{
		Fetcher:    fetch.New(ctx, cfg),
		Summarizer: summarize.New(model, cfg),
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
		slog.Warn("no places API key configured, places stay name-only")
	}

	if withStore {
		st, err := openStore(ctx)
		if err != nil {
			return nil, err
		}
		deps.Store = st
	}

	return service.NewAnalyzer(deps, cfg), nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(searchCmd)
}
