// Package summarize runs the two-stage map/reduce summarization: each
// chunk is summarized independently, then the chunk summaries are merged
// into one final report-ready summary.
package summarize

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"tripnotes/internal/config"
	"tripnotes/internal/models"
	"tripnotes/internal/parser"
)

// ErrSummarization indicates a model call failed during either stage.
var ErrSummarization = errors.New("summarization failed")

// CompletionModel generates a completion for a system/user prompt pair.
type CompletionModel interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string, maxTokens int) (string, error)
}

// Summarizer orchestrates chunk summaries and the final reduce pass.
type Summarizer struct {
	model           CompletionModel
	lang            string
	maxChunkTokens  int
	maxReduceTokens int
}

func New(model CompletionModel, cfg config.Config) *Summarizer {
	return &Summarizer{
		model:           model,
		lang:            cfg.SummaryLanguage,
		maxChunkTokens:  cfg.MaxChunkTokens,
		maxReduceTokens: cfg.MaxReduceTokens,
	}
}

// Summarize maps each chunk to an intermediate summary and reduces them
// into the final one. A chunk whose detected language differs from the
// target gets a translation instruction prepended to its prompt. Any
// model failure aborts the whole run.
func (s *Summarizer) Summarize(ctx context.Context, chunks []models.Chunk) (string, error) {
	if len(chunks) == 0 {
		return "", fmt.Errorf("%w: no content to summarize", ErrSummarization)
	}

	summaries := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		note := ""
		if detected := DetectLanguage(chunk.Content); detected != "" && detected != s.lang {
			note = parser.TranslationNote(s.lang)
		}

		start := time.Now()
		out, err := s.model.Generate(ctx, parser.ChunkSystemPrompt,
			parser.ChunkPrompt(chunk.Content, s.lang, note), s.maxChunkTokens)
		if err != nil {
			return "", fmt.Errorf("%w: chunk %d/%d: %v", ErrSummarization, i+1, len(chunks), err)
		}

		slog.Info("chunk summarized",
			"chunk", i+1,
			"total", len(chunks),
			"translated", note != "",
			"duration_ms", time.Since(start).Milliseconds())
		summaries = append(summaries, strings.TrimSpace(out))
	}

	combined := strings.Join(summaries, "\n\n")
	final, err := s.model.Generate(ctx, parser.ReduceSystemPrompt,
		parser.ReducePrompt(combined, s.lang), s.maxReduceTokens)
	if err != nil {
		return "", fmt.Errorf("%w: reduce: %v", ErrSummarization, err)
	}

	return strings.TrimSpace(final), nil
}
