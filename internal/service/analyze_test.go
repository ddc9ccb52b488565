package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"tripnotes/internal/config"
	"tripnotes/internal/metrics"
	"tripnotes/internal/models"
	"tripnotes/internal/store"
)

type fakeFetcher struct {
	texts    map[string]string
	titles   map[string]string
	channels map[string]string
	err      error
}

func (f *fakeFetcher) Text(_ context.Context, url string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.texts[url], nil
}

func (f *fakeFetcher) VideoMetadata(_ context.Context, url string) (string, string) {
	return f.titles[url], f.channels[url]
}

type fakeSummarizer struct {
	summary string
	err     error
	chunks  []models.Chunk
}

func (f *fakeSummarizer) Summarize(_ context.Context, chunks []models.Chunk) (string, error) {
	f.chunks = chunks
	if f.err != nil {
		return "", f.err
	}
	return f.summary, nil
}

type fakePlaces struct {
	mu      sync.Mutex
	queries []string
	failOn  string
}

func (f *fakePlaces) Search(_ context.Context, name string) (models.PlaceInfo, error) {
	f.mu.Lock()
	f.queries = append(f.queries, name)
	f.mu.Unlock()

	if name == f.failOn {
		return models.PlaceInfo{}, errors.New("lookup failed")
	}
	address := name + " address"
	return models.PlaceInfo{Name: name, FormattedAddress: &address}, nil
}

type fakeStore struct {
	savedSummary string
	savedVideos  []models.VideoInfo
	savedPlaces  []models.PlaceInfo
	saveErr      error
	queryDocs    []models.ScoredDocument
	queryErr     error
	lastQuery    string
	lastLimit    int
}

func (f *fakeStore) SaveAnalysis(_ context.Context, summary string, videos []models.VideoInfo, places []models.PlaceInfo) error {
	f.savedSummary = summary
	f.savedVideos = videos
	f.savedPlaces = places
	return f.saveErr
}

func (f *fakeStore) Query(_ context.Context, text string, limit int) ([]models.ScoredDocument, error) {
	f.lastQuery = text
	f.lastLimit = limit
	return f.queryDocs, f.queryErr
}

func testAnalyzer(t *testing.T, deps Deps) *Analyzer {
	t.Helper()
	dir := t.TempDir()
	deps.Files = store.Files{ChunksDir: dir + "/chunks", SummariesDir: dir + "/summaries"}
	if deps.Metrics == nil {
		deps.Metrics = metrics.NewCollector()
	}
	return NewAnalyzer(deps, config.Config{ChunkSize: 2048, EnrichWorkers: 4})
}

func TestAnalyze_FullPipeline(t *testing.T) {
	fetcher := &fakeFetcher{
		texts:    map[string]string{"https://youtu.be/abc123": "[00:00:01] 안녕하세요 오늘은 도쿄 여행입니다"},
		titles:   map[string]string{"https://youtu.be/abc123": "Tokyo Food Tour"},
		channels: map[string]string{"https://youtu.be/abc123": "Travel Kim"},
	}
	summarizer := &fakeSummarizer{
		summary: "Visited place: Tokyo Tower (4 Chome-2-8 Shibakoen) [00:05:12]\n" +
			"- Place description: iconic tower.\n" +
			"Visited place: Tsukiji Market\n" +
			"- Place description: fish market.",
	}
	placesAPI := &fakePlaces{}
	docStore := &fakeStore{}

	a := testAnalyzer(t, Deps{
		Fetcher:    fetcher,
		Summarizer: summarizer,
		Places:     placesAPI,
		Store:      docStore,
	})

	result, err := a.Analyze(context.Background(), []string{"https://youtu.be/abc123"})
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}

	if result.FinalSummary != summarizer.summary {
		t.Error("final summary not propagated")
	}
	if len(result.Videos) != 1 || result.Videos[0].Title != "Tokyo Food Tour" {
		t.Errorf("videos = %+v", result.Videos)
	}

	if len(result.Places) != 2 {
		t.Fatalf("got %d places, want 2", len(result.Places))
	}
	if result.Places[0].Name != "Tokyo Tower" || result.Places[1].Name != "Tsukiji Market" {
		t.Errorf("places out of extraction order: %+v", result.Places)
	}
	if !result.Places[0].Enriched() {
		t.Error("place should be enriched")
	}

	if !strings.Contains(result.Report, "=== Travel Summary ===") ||
		!strings.Contains(result.Report, "Tokyo Food Tour") {
		t.Error("report missing expected sections")
	}

	if docStore.savedSummary != summarizer.summary {
		t.Error("analysis not saved to store")
	}
	if len(docStore.savedPlaces) != 2 {
		t.Errorf("store got %d places", len(docStore.savedPlaces))
	}

	if len(summarizer.chunks) == 0 {
		t.Error("summarizer received no chunks")
	}
	if !strings.Contains(summarizer.chunks[0].Content, "도쿄") {
		t.Error("chunks do not carry the fetched transcript")
	}
}

func TestAnalyze_URLCountValidation(t *testing.T) {
	a := testAnalyzer(t, Deps{Fetcher: &fakeFetcher{}, Summarizer: &fakeSummarizer{summary: "s"}})

	if _, err := a.Analyze(context.Background(), nil); !errors.Is(err, ErrURLCount) {
		t.Errorf("empty urls: error = %v, want ErrURLCount", err)
	}

	six := []string{"a", "b", "c", "d", "e", "f"}
	if _, err := a.Analyze(context.Background(), six); !errors.Is(err, ErrURLCount) {
		t.Errorf("six urls: error = %v, want ErrURLCount", err)
	}
}

func TestAnalyze_FetchFailureAborts(t *testing.T) {
	fetchErr := errors.New("transcript unavailable")
	a := testAnalyzer(t, Deps{
		Fetcher:    &fakeFetcher{err: fetchErr},
		Summarizer: &fakeSummarizer{summary: "s"},
	})

	_, err := a.Analyze(context.Background(), []string{"https://youtu.be/abc123"})
	if !errors.Is(err, fetchErr) {
		t.Errorf("error = %v, want wrapped fetch error", err)
	}
}

func TestAnalyze_EnrichmentDegradesPerPlace(t *testing.T) {
	a := testAnalyzer(t, Deps{
		Fetcher: &fakeFetcher{texts: map[string]string{"u": "some travel content here"}},
		Summarizer: &fakeSummarizer{
			summary: "Visited place: Good Spot\nVisited place: Broken Spot\nVisited place: Other Spot",
		},
		Places: &fakePlaces{failOn: "Broken Spot"},
	})

	result, err := a.Analyze(context.Background(), []string{"u"})
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}

	if len(result.Places) != 3 {
		t.Fatalf("got %d places, want 3", len(result.Places))
	}
	if result.Places[1].Name != "Broken Spot" || result.Places[1].Enriched() {
		t.Errorf("failed lookup should degrade to name-only: %+v", result.Places[1])
	}
	if !result.Places[0].Enriched() || !result.Places[2].Enriched() {
		t.Error("other places should still be enriched")
	}
}

func TestAnalyze_NoPlacesClient(t *testing.T) {
	a := testAnalyzer(t, Deps{
		Fetcher:    &fakeFetcher{texts: map[string]string{"u": "content words here"}},
		Summarizer: &fakeSummarizer{summary: "Visited place: Somewhere"},
	})

	result, err := a.Analyze(context.Background(), []string{"u"})
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	if len(result.Places) != 1 || result.Places[0].Enriched() {
		t.Errorf("places = %+v, want single name-only record", result.Places)
	}
}

func TestAnalyze_StoreFailureIsNonFatal(t *testing.T) {
	a := testAnalyzer(t, Deps{
		Fetcher:    &fakeFetcher{texts: map[string]string{"u": "content words here"}},
		Summarizer: &fakeSummarizer{summary: "summary"},
		Store:      &fakeStore{saveErr: errors.New("db down")},
	})

	if _, err := a.Analyze(context.Background(), []string{"u"}); err != nil {
		t.Errorf("store failure should not abort the run: %v", err)
	}
}

func TestSearch(t *testing.T) {
	docStore := &fakeStore{queryDocs: []models.ScoredDocument{
		{Document: models.Document{ID: "1", Content: "doc"}, Score: 0.9},
	}}
	s := NewSearcher(docStore, nil)

	docs, err := s.Search(context.Background(), "tokyo", 0)
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(docs) != 1 {
		t.Errorf("got %d docs", len(docs))
	}
	if docStore.lastLimit != defaultSearchLimit {
		t.Errorf("limit = %d, want default %d", docStore.lastLimit, defaultSearchLimit)
	}

	if _, err := s.Search(context.Background(), "   ", 5); !errors.Is(err, ErrEmptyQuery) {
		t.Errorf("blank query: error = %v, want ErrEmptyQuery", err)
	}

	docStore.queryErr = store.ErrStoreNotFound
	if _, err := s.Search(context.Background(), "tokyo", 5); !errors.Is(err, store.ErrStoreNotFound) {
		t.Errorf("store error should pass through, got %v", err)
	}
}
