package service

import (
	"context"
	"strings"
	"time"

	"tripnotes/internal/metrics"
	"tripnotes/internal/models"
)

const defaultSearchLimit = 5

// Searcher answers similarity queries against previously saved analyses.
type Searcher struct {
	store   DocumentStore
	metrics *metrics.Collector
}

func NewSearcher(store DocumentStore, collector *metrics.Collector) *Searcher {
	if collector == nil {
		collector = metrics.NewCollector()
	}
	return &Searcher{store: store, metrics: collector}
}

// Search returns the documents most similar to the query text. Errors from
// the store pass through unchanged so callers can match ErrStoreNotFound.
func (s *Searcher) Search(ctx context.Context, query string, limit int) ([]models.ScoredDocument, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	start := time.Now()
	docs, err := s.store.Query(ctx, query, limit)
	s.metrics.RecordTiming(metrics.OpStoreQuery, time.Since(start))
	return docs, err
}
