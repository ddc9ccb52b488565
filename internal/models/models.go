// Package models defines the value objects shared across the analysis
// pipeline. All of them are request-scoped: constructed and consumed within
// a single orchestration call, never retained afterwards.
package models

import "time"

// VideoInfo holds resolved metadata for one analyzed video URL.
// Title and Channel stay empty when metadata could not be resolved.
type VideoInfo struct {
	URL     string `json:"url"`
	Title   string `json:"title,omitempty"`
	Channel string `json:"channel,omitempty"`
}

// TranscriptEntry is one caption line as returned by the transcript provider.
type TranscriptEntry struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// Chunk is a bounded-size slice of combined source text sized for one
// completion call. Position is the zero-based order within the split.
type Chunk struct {
	Content  string `json:"content"`
	Position int    `json:"position"`
}

// Photo is a resolved place photo.
type Photo struct {
	URL         string `json:"url"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// Review is a single place review as returned by the places API.
type Review struct {
	Rating float64 `json:"rating"`
	Text   string  `json:"text"`
}

// PlaceInfo is an extracted place merged with optional enrichment data.
// Name is always present; when enrichment fails the record degrades to
// name-only with every other field zero.
type PlaceInfo struct {
	Name             string         `json:"name"`
	Description      *string        `json:"description,omitempty"`
	FormattedAddress *string        `json:"formatted_address,omitempty"`
	Rating           *float64       `json:"rating,omitempty"`
	Phone            *string        `json:"phone,omitempty"`
	Website          *string        `json:"website,omitempty"`
	PriceLevel       *int           `json:"price_level,omitempty"`
	OpeningHours     []string       `json:"opening_hours,omitempty"`
	Photos           []Photo        `json:"photos,omitempty"`
	BestReview       *string        `json:"best_review,omitempty"`
	EditorialSummary *string        `json:"editorial_summary,omitempty"`
	Raw              map[string]any `json:"google_info,omitempty"`
}

// Enriched reports whether any lookup data beyond the name is present.
func (p PlaceInfo) Enriched() bool {
	return p.FormattedAddress != nil || p.Rating != nil || p.Phone != nil ||
		p.Website != nil || p.PriceLevel != nil || len(p.OpeningHours) > 0 ||
		len(p.Photos) > 0 || p.BestReview != nil || p.EditorialSummary != nil
}

// AnalysisResult is the final outcome of one analyze request.
type AnalysisResult struct {
	FinalSummary   string
	Videos         []VideoInfo
	Places         []PlaceInfo
	ProcessingTime time.Duration
	Report         string
}

// Document type discriminators used in store metadata.
const (
	DocTypeVideoInfo = "video_info"
	DocTypePlaceInfo = "place_info"
	DocTypeSummary   = "summary"
)

// Document is one entry of the similarity-search store.
type Document struct {
	ID       string         `json:"id"`
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata"`
}

// ScoredDocument is a Document paired with its query similarity score.
type ScoredDocument struct {
	Document
	Score float64 `json:"score"`
}
