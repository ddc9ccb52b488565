package places

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tripnotes/internal/models"
)

func TestBestReview(t *testing.T) {
	str := func(s string) *string { return &s }

	tests := []struct {
		name    string
		reviews []models.Review
		want    *string
	}{
		{
			name: "longest five-star wins over longer lower-rated",
			reviews: []models.Review{
				{Rating: 5, Text: "short"},
				{Rating: 5, Text: "a longer review text"},
				{Rating: 3, Text: "longest review text of all"},
			},
			want: str("a longer review text"),
		},
		{
			name: "no five-star falls back to highest rating",
			reviews: []models.Review{
				{Rating: 3, Text: "three stars but very detailed review"},
				{Rating: 4, Text: "four"},
			},
			want: str("four"),
		},
		{
			name: "rating tie broken by length",
			reviews: []models.Review{
				{Rating: 4, Text: "good"},
				{Rating: 4, Text: "really good experience overall"},
			},
			want: str("really good experience overall"),
		},
		{
			name:    "no reviews",
			reviews: nil,
			want:    nil,
		},
		{
			name: "empty texts skipped",
			reviews: []models.Review{
				{Rating: 5, Text: "   "},
				{Rating: 4, Text: "has actual text"},
			},
			want: str("has actual text"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BestReview(tt.reviews)
			switch {
			case got == nil && tt.want == nil:
			case got == nil || tt.want == nil:
				t.Errorf("BestReview() = %v, want %v", got, tt.want)
			case *got != *tt.want:
				t.Errorf("BestReview() = %q, want %q", *got, *tt.want)
			}
		})
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{
		APIKey:     "test-key",
		Language:   "ko",
		Region:     "jp",
		MaxPhotos:  5,
		BaseURL:    srv.URL,
		HTTPClient: srv.Client(),
	})
}

func TestSearch_NoResults(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}`))
	})

	_, err := c.Search(context.Background(), "Nonexistent Place")
	if !errors.Is(err, ErrNoResults) {
		t.Errorf("error = %v, want ErrNoResults", err)
	}
}

func TestSearch_MapsDetails(t *testing.T) {
	var searchQuery, detailsFields string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/textsearch/"):
			searchQuery = r.URL.Query().Get("query")
			w.Write([]byte(`{"status":"OK","results":[{"place_id":"pid-123"}]}`))
		case strings.HasPrefix(r.URL.Path, "/details/"):
			detailsFields = r.URL.Query().Get("fields")
			w.Write([]byte(`{"status":"OK","result":{
				"name":"도쿄 타워",
				"formatted_address":"4 Chome-2-8 Shibakoen, Minato City",
				"formatted_phone_number":"+81 3-3433-5111",
				"website":"https://www.tokyotower.co.jp/",
				"rating":4.5,
				"price_level":2,
				"opening_hours":{"weekday_text":["Monday: 9AM-11PM","Tuesday: 9AM-11PM"]},
				"editorial_summary":{"overview":"Iconic lattice tower with observation decks."},
				"reviews":[
					{"rating":5,"text":"Great night view"},
					{"rating":5,"text":"Great night view, and the observation deck is worth it"},
					{"rating":4,"text":"Crowded but fun"}
				],
				"photos":[
					{"photo_reference":"ref1"},{"photo_reference":"ref2"},{"photo_reference":"ref3"},
					{"photo_reference":"ref4"},{"photo_reference":"ref5"},{"photo_reference":"ref6"}
				]
			}}`))
		}
	})

	info, err := c.Search(context.Background(), "Tokyo Tower")
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}

	if searchQuery != "Tokyo Tower" {
		t.Errorf("text search query = %q", searchQuery)
	}
	if !strings.Contains(detailsFields, "editorial_summary") {
		t.Errorf("details fields missing editorial_summary: %q", detailsFields)
	}

	if info.Name != "Tokyo Tower" {
		t.Errorf("Name = %q, want extraction name, not API name", info.Name)
	}
	if info.FormattedAddress == nil || !strings.Contains(*info.FormattedAddress, "Shibakoen") {
		t.Error("address not mapped")
	}
	if info.Rating == nil || *info.Rating != 4.5 {
		t.Error("rating not mapped")
	}
	if info.PriceLevel == nil || *info.PriceLevel != 2 {
		t.Error("price level not mapped")
	}
	if len(info.OpeningHours) != 2 {
		t.Errorf("opening hours = %v", info.OpeningHours)
	}
	if info.BestReview == nil || !strings.Contains(*info.BestReview, "worth it") {
		t.Error("best review should be the longest five-star text")
	}
	if len(info.Photos) != 5 {
		t.Errorf("got %d photos, want cap of 5", len(info.Photos))
	}
	if !strings.Contains(info.Photos[0].URL, "maxwidth=400") ||
		!strings.Contains(info.Photos[0].URL, "photoreference=ref1") {
		t.Errorf("photo URL = %q", info.Photos[0].URL)
	}
	if info.EditorialSummary == nil || !strings.Contains(*info.EditorialSummary, "Iconic") {
		t.Error("editorial summary not mapped")
	}
	if !info.Enriched() {
		t.Error("Enriched() = false for a place with details")
	}
	if info.Raw == nil {
		t.Error("raw payload not retained")
	}
}

func TestSearch_SparseDetails(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/textsearch/"):
			w.Write([]byte(`{"status":"OK","results":[{"place_id":"pid-9"}]}`))
		case strings.HasPrefix(r.URL.Path, "/details/"):
			w.Write([]byte(`{"status":"OK","result":{"name":"어딘가"}}`))
		}
	})

	info, err := c.Search(context.Background(), "Somewhere")
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if info.FormattedAddress != nil || info.Rating != nil || info.Phone != nil ||
		info.Website != nil || info.PriceLevel != nil || info.BestReview != nil {
		t.Errorf("optional fields should stay nil when absent: %+v", info)
	}
	if len(info.OpeningHours) != 0 || len(info.Photos) != 0 {
		t.Errorf("slices should stay empty when absent: %+v", info)
	}
}
