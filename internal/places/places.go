// Package places enriches extracted place names through the Google Places
// text search and details endpoints.
package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tripnotes/internal/models"
)

const defaultBaseURL = "https://maps.googleapis.com/maps/api/place"

// detailFields is the field mask requested from the details endpoint.
const detailFields = "name,formatted_address,formatted_phone_number,website," +
	"opening_hours,price_level,rating,reviews,photos,editorial_summary"

// ErrNoResults indicates the text search matched nothing for a name.
var ErrNoResults = errors.New("no places found")

// Client calls the Places API.
type Client struct {
	apiKey     string
	language   string
	region     string
	maxPhotos  int
	baseURL    string
	httpClient *http.Client
}

// Config carries the Places client settings. BaseURL and HTTPClient are
// overridable for tests and default to the real endpoint otherwise.
type Config struct {
	APIKey     string
	Language   string
	Region     string
	MaxPhotos  int
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(cfg Config) *Client {
	c := &Client{
		apiKey:     cfg.APIKey,
		language:   cfg.Language,
		region:     cfg.Region,
		maxPhotos:  cfg.MaxPhotos,
		baseURL:    cfg.BaseURL,
		httpClient: cfg.HTTPClient,
	}
	if c.baseURL == "" {
		c.baseURL = defaultBaseURL
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return c
}

type textSearchResponse struct {
	Status  string `json:"status"`
	Results []struct {
		PlaceID string `json:"place_id"`
	} `json:"results"`
}

type detailsResponse struct {
	Status string          `json:"status"`
	Result json.RawMessage `json:"result"`
}

type placeDetails struct {
	Name                 string   `json:"name"`
	FormattedAddress     string   `json:"formatted_address"`
	FormattedPhoneNumber string   `json:"formatted_phone_number"`
	Website              string   `json:"website"`
	Rating               *float64 `json:"rating"`
	PriceLevel           *int     `json:"price_level"`
	OpeningHours         *struct {
		WeekdayText []string `json:"weekday_text"`
	} `json:"opening_hours"`
	Reviews []struct {
		Rating float64 `json:"rating"`
		Text   string  `json:"text"`
	} `json:"reviews"`
	Photos []struct {
		PhotoReference string `json:"photo_reference"`
	} `json:"photos"`
	EditorialSummary *struct {
		Overview string `json:"overview"`
	} `json:"editorial_summary"`
}

// Search resolves a place name to enriched details: text search picks the
// top match, then a details request fills in the rest. Returns ErrNoResults
// when the name matches nothing.
func (c *Client) Search(ctx context.Context, name string) (models.PlaceInfo, error) {
	placeID, err := c.textSearch(ctx, name)
	if err != nil {
		return models.PlaceInfo{}, err
	}
	return c.details(ctx, name, placeID)
}

func (c *Client) textSearch(ctx context.Context, name string) (string, error) {
	q := url.Values{
		"query":    {name},
		"key":      {c.apiKey},
		"language": {c.language},
		"region":   {c.region},
	}

	var resp textSearchResponse
	if err := c.getJSON(ctx, "/textsearch/json", q, &resp); err != nil {
		return "", fmt.Errorf("text search %q: %w", name, err)
	}
	if len(resp.Results) == 0 {
		return "", fmt.Errorf("%w: %q", ErrNoResults, name)
	}
	return resp.Results[0].PlaceID, nil
}

func (c *Client) details(ctx context.Context, name, placeID string) (models.PlaceInfo, error) {
	q := url.Values{
		"place_id": {placeID},
		"fields":   {detailFields},
		"key":      {c.apiKey},
		"language": {c.language},
	}

	var resp detailsResponse
	if err := c.getJSON(ctx, "/details/json", q, &resp); err != nil {
		return models.PlaceInfo{}, fmt.Errorf("details for %q: %w", name, err)
	}
	if len(resp.Result) == 0 {
		return models.PlaceInfo{}, fmt.Errorf("%w: %q", ErrNoResults, name)
	}

	var d placeDetails
	if err := json.Unmarshal(resp.Result, &d); err != nil {
		return models.PlaceInfo{}, fmt.Errorf("decode details for %q: %w", name, err)
	}

	// Keep the raw payload alongside the typed fields so persisted
	// documents retain everything the API returned.
	var raw map[string]any
	if err := json.Unmarshal(resp.Result, &raw); err != nil {
		return models.PlaceInfo{}, fmt.Errorf("decode details for %q: %w", name, err)
	}

	info := models.PlaceInfo{
		Name:   name,
		Rating: d.Rating,
		Raw:    raw,
	}
	if d.FormattedAddress != "" {
		info.FormattedAddress = &d.FormattedAddress
	}
	if d.FormattedPhoneNumber != "" {
		info.Phone = &d.FormattedPhoneNumber
	}
	if d.Website != "" {
		info.Website = &d.Website
	}
	info.PriceLevel = d.PriceLevel
	if d.OpeningHours != nil {
		info.OpeningHours = d.OpeningHours.WeekdayText
	}
	if d.EditorialSummary != nil && d.EditorialSummary.Overview != "" {
		info.EditorialSummary = &d.EditorialSummary.Overview
		info.Description = &d.EditorialSummary.Overview
	}

	reviews := make([]models.Review, 0, len(d.Reviews))
	for _, r := range d.Reviews {
		reviews = append(reviews, models.Review{Rating: r.Rating, Text: r.Text})
	}
	info.BestReview = BestReview(reviews)

	for i, p := range d.Photos {
		if i >= c.maxPhotos {
			break
		}
		info.Photos = append(info.Photos, models.Photo{URL: c.PhotoURL(p.PhotoReference)})
	}

	return info, nil
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	reqURL := c.baseURL + path + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// PhotoURL builds the public photo URL for a photo reference.
func (c *Client) PhotoURL(photoReference string) string {
	return fmt.Sprintf("%s/photo?maxwidth=400&photoreference=%s&key=%s",
		c.baseURL, url.QueryEscape(photoReference), url.QueryEscape(c.apiKey))
}

// BestReview picks the review worth quoting: among five-star reviews the
// longest text wins; with no five-star reviews the highest (rating, length)
// pair wins. Returns nil when there are no reviews with text.
func BestReview(reviews []models.Review) *string {
	var best *models.Review
	var bestFive *models.Review

	for i := range reviews {
		r := &reviews[i]
		if strings.TrimSpace(r.Text) == "" {
			continue
		}
		if r.Rating == 5 {
			if bestFive == nil || len(r.Text) > len(bestFive.Text) {
				bestFive = r
			}
		}
		if best == nil || r.Rating > best.Rating ||
			(r.Rating == best.Rating && len(r.Text) > len(best.Text)) {
			best = r
		}
	}

	if bestFive != nil {
		best = bestFive
	}
	if best == nil {
		return nil
	}
	text := best.Text
	return &text
}
