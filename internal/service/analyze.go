// Package service orchestrates the analysis pipeline: fetch, chunk,
// summarize, extract places, enrich, render, persist.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"tripnotes/internal/config"
	"tripnotes/internal/metrics"
	"tripnotes/internal/models"
	"tripnotes/internal/parser"
	"tripnotes/internal/report"
	"tripnotes/internal/store"
)

const maxURLs = 5

// Sentinel errors for request validation. Use errors.Is() in calling code.
var (
	ErrURLCount   = errors.New("between 1 and 5 URLs required")
	ErrEmptyQuery = errors.New("query must not be empty")
)

// Fetcher resolves URLs to text and optional video metadata.
type Fetcher interface {
	Text(ctx context.Context, url string) (string, error)
	VideoMetadata(ctx context.Context, url string) (title, channel string)
}

// Summarizer produces the final summary from content chunks.
type Summarizer interface {
	Summarize(ctx context.Context, chunks []models.Chunk) (string, error)
}

// PlaceSearcher enriches a place name with lookup details.
type PlaceSearcher interface {
	Search(ctx context.Context, name string) (models.PlaceInfo, error)
}

// DocumentStore persists analysis outcomes and answers similarity queries.
type DocumentStore interface {
	SaveAnalysis(ctx context.Context, summary string, videos []models.VideoInfo, places []models.PlaceInfo) error
	Query(ctx context.Context, text string, limit int) ([]models.ScoredDocument, error)
}

// Deps bundles the collaborators of an Analyzer. Places may be nil when no
// lookup API key is configured; Store may be nil when persistence is
// disabled. Both degrade rather than fail.
type Deps struct {
	Fetcher    Fetcher
	Summarizer Summarizer
	Places     PlaceSearcher
	Store      DocumentStore
	Files      store.Files
	Metrics    *metrics.Collector
}

// Analyzer runs the full pipeline for a set of URLs.
type Analyzer struct {
	deps          Deps
	chunkSize     int
	enrichWorkers int
}

func NewAnalyzer(deps Deps, cfg config.Config) *Analyzer {
	if deps.Metrics == nil {
		deps.Metrics = metrics.NewCollector()
	}
	return &Analyzer{
		deps:          deps,
		chunkSize:     cfg.ChunkSize,
		enrichWorkers: cfg.EnrichWorkers,
	}
}

// Analyze fetches every URL, summarizes the combined content, enriches the
// extracted places, and persists the outcome. Fetch and summarization
// failures abort the run; persistence and enrichment failures degrade with
// a warning.
func (a *Analyzer) Analyze(ctx context.Context, urls []string) (*models.AnalysisResult, error) {
	if len(urls) == 0 || len(urls) > maxURLs {
		return nil, fmt.Errorf("%w: got %d", ErrURLCount, len(urls))
	}

	started := time.Now()

	videos := a.collectMetadata(ctx, urls)

	var combined strings.Builder
	for i, url := range urls {
		fetchStart := time.Now()
		text, err := a.deps.Fetcher.Text(ctx, url)
		a.deps.Metrics.RecordTiming(metrics.OpFetch, time.Since(fetchStart))
		if err != nil {
			return nil, fmt.Errorf("fetch url %d: %w", i+1, err)
		}
		fmt.Fprintf(&combined, "--- Source %d: %s ---\n%s\n\n", i+1, url, text)
		slog.Info("content fetched", "url", url, "chars", len(text))
	}

	chunks := parser.SplitWords(combined.String(), a.chunkSize)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("no content fetched from %d urls", len(urls))
	}

	chunkTexts := make([]string, len(chunks))
	for i, c := range chunks {
		chunkTexts[i] = c.Content
	}
	if err := a.deps.Files.SaveChunks(chunkTexts); err != nil {
		slog.Warn("saving chunks failed", "error", err)
	}

	llmStart := time.Now()
	summary, err := a.deps.Summarizer.Summarize(ctx, chunks)
	a.deps.Metrics.RecordTiming(metrics.OpLLMGenerate, time.Since(llmStart))
	if err != nil {
		return nil, err
	}

	names := parser.ExtractPlaceNames(summary)
	slog.Info("places extracted", "count", len(names))

	places := a.enrichPlaces(ctx, names)

	elapsed := time.Since(started)
	rendered := report.Render(videos, summary, places, elapsed, urls)

	if path, err := a.deps.Files.SaveSummary(summary); err != nil {
		slog.Warn("saving summary failed", "error", err)
	} else {
		slog.Info("summary saved", "path", path)
	}

	if a.deps.Store != nil {
		saveStart := time.Now()
		if err := a.deps.Store.SaveAnalysis(ctx, summary, videos, places); err != nil {
			slog.Warn("saving analysis to store failed", "error", err)
		}
		a.deps.Metrics.RecordTiming(metrics.OpStoreSave, time.Since(saveStart))
	}

	return &models.AnalysisResult{
		FinalSummary:   summary,
		Videos:         videos,
		Places:         places,
		ProcessingTime: elapsed,
		Report:         rendered,
	}, nil
}

// collectMetadata resolves metadata for the video URLs, preserving input
// order. URLs without resolvable metadata are skipped.
func (a *Analyzer) collectMetadata(ctx context.Context, urls []string) []models.VideoInfo {
	var videos []models.VideoInfo
	for _, url := range urls {
		title, channel := a.deps.Fetcher.VideoMetadata(ctx, url)
		if title == "" {
			continue
		}
		videos = append(videos, models.VideoInfo{URL: url, Title: title, Channel: channel})
	}
	return videos
}

// enrichPlaces looks up every extracted name with a bounded worker pool.
// Results keep extraction order; a failed lookup degrades to a name-only
// record.
func (a *Analyzer) enrichPlaces(ctx context.Context, names []string) []models.PlaceInfo {
	results := make([]models.PlaceInfo, len(names))

	if a.deps.Places == nil {
		for i, name := range names {
			results[i] = models.PlaceInfo{Name: name}
		}
		return results
	}

	workers := a.enrichWorkers
	if workers < 1 {
		workers = 1
	}
	if workers > len(names) {
		workers = len(names)
	}

	idxChan := make(chan int, len(names))
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range idxChan {
				if ctx.Err() != nil {
					results[i] = models.PlaceInfo{Name: names[i]}
					continue
				}

				start := time.Now()
				info, err := a.deps.Places.Search(ctx, names[i])
				a.deps.Metrics.RecordTiming(metrics.OpPlacesLookup, time.Since(start))
				if err != nil {
					slog.Warn("place enrichment failed", "place", names[i], "error", err)
					results[i] = models.PlaceInfo{Name: names[i]}
					continue
				}
				results[i] = info
			}
		}()
	}

	for i := range names {
		idxChan <- i
	}
	close(idxChan)
	wg.Wait()

	return results
}
