// Package fetch turns a user-supplied URL into plain text: video URLs
// become timestamped transcripts, .txt URLs are downloaded as-is, and
// everything else goes through readability extraction.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"tripnotes/internal/config"
)

const webpageTimeout = 30 * time.Second

// Fetcher resolves URLs to text content.
type Fetcher struct {
	httpClient  *http.Client
	transcripts TranscriptProvider
	youtube     *youtube.Service
	noembedURL  string
	languages   []string
	webpageMax  int
}

// New builds a Fetcher from configuration. The Data API client is only
// created when a key is present; its absence is not an error because
// metadata has a keyless fallback.
func New(ctx context.Context, cfg config.Config) *Fetcher {
	httpClient := &http.Client{Timeout: 30 * time.Second}

	f := &Fetcher{
		httpClient:  httpClient,
		transcripts: NewTimedTextClient(httpClient),
		noembedURL:  defaultNoembedURL,
		languages:   cfg.TranscriptLanguages,
		webpageMax:  cfg.WebpageMaxChars,
	}

	if cfg.YouTubeAPIKey != "" {
		svc, err := youtube.NewService(ctx, option.WithAPIKey(cfg.YouTubeAPIKey))
		if err != nil {
			slog.Warn("youtube data api unavailable, metadata falls back to noembed", "error", err)
		} else {
			f.youtube = svc
		}
	}

	return f
}

// Text fetches the content behind a URL according to its kind.
func (f *Fetcher) Text(ctx context.Context, rawURL string) (string, error) {
	switch Classify(rawURL) {
	case KindVideo:
		return f.VideoText(ctx, rawURL)
	case KindTextFile:
		return f.PlainText(ctx, rawURL)
	case KindWebpage:
		return f.WebpageText(ctx, rawURL)
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidURL, rawURL)
	}
}

// VideoText fetches the transcript for a video URL and renders it as
// timestamped lines, one entry per line.
func (f *Fetcher) VideoText(ctx context.Context, rawURL string) (string, error) {
	id, err := VideoID(rawURL)
	if err != nil {
		return "", err
	}

	entries, err := f.transcripts.Transcript(ctx, id, f.languages)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "[%s] %s\n", formatTimestamp(e.Start), e.Text)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// PlainText downloads a text file verbatim.
func (f *Fetcher) PlainText(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request for %s: %w", rawURL, err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &StatusError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", rawURL, err)
	}
	return strings.TrimSpace(string(body)), nil
}

// WebpageText extracts the readable article text from a webpage and
// truncates it to the configured maximum.
func (f *Fetcher) WebpageText(ctx context.Context, rawURL string) (string, error) {
	article, err := readability.FromURL(rawURL, webpageTimeout)
	if err != nil {
		return "", fmt.Errorf("extract text from %s: %w", rawURL, err)
	}

	text := strings.TrimSpace(article.TextContent)
	if runes := []rune(text); len(runes) > f.webpageMax {
		text = string(runes[:f.webpageMax])
	}
	return text, nil
}
