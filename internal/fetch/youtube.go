package fetch

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strings"

	"tripnotes/internal/models"
)

const defaultTimedTextURL = "https://www.youtube.com/api/timedtext"

// TranscriptProvider fetches timed transcript entries for a video.
type TranscriptProvider interface {
	Transcript(ctx context.Context, videoID string, languages []string) ([]models.TranscriptEntry, error)
}

// TimedTextClient retrieves caption tracks from the timedtext endpoint.
// Tracks include auto-generated captions where manual ones are missing.
type TimedTextClient struct {
	httpClient *http.Client
	baseURL    string
}

func NewTimedTextClient(httpClient *http.Client) *TimedTextClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &TimedTextClient{httpClient: httpClient, baseURL: defaultTimedTextURL}
}

type timedText struct {
	XMLName xml.Name       `xml:"transcript"`
	Texts   []timedTextRow `xml:"text"`
}

type timedTextRow struct {
	Start float64 `xml:"start,attr"`
	Dur   float64 `xml:"dur,attr"`
	Body  string  `xml:",chardata"`
}

type trackList struct {
	XMLName xml.Name `xml:"transcript_list"`
	Tracks  []struct {
		LangCode string `xml:"lang_code,attr"`
	} `xml:"track"`
}

// Transcript tries the preferred languages in order, then falls back to
// whatever tracks the video lists. An empty response body means the track
// does not exist and the next candidate is tried.
func (c *TimedTextClient) Transcript(ctx context.Context, videoID string, languages []string) ([]models.TranscriptEntry, error) {
	tried := make(map[string]bool)

	for _, lang := range languages {
		tried[lang] = true
		entries, err := c.fetchTrack(ctx, videoID, lang)
		if err != nil {
			return nil, err
		}
		if len(entries) > 0 {
			return entries, nil
		}
	}

	listed, err := c.listTracks(ctx, videoID)
	if err != nil {
		return nil, err
	}
	for _, lang := range listed {
		if tried[lang] {
			continue
		}
		entries, err := c.fetchTrack(ctx, videoID, lang)
		if err != nil {
			return nil, err
		}
		if len(entries) > 0 {
			return entries, nil
		}
	}

	return nil, fmt.Errorf("%w: video %s", ErrTranscriptUnavailable, videoID)
}

func (c *TimedTextClient) fetchTrack(ctx context.Context, videoID, lang string) ([]models.TranscriptEntry, error) {
	q := url.Values{"v": {videoID}, "lang": {lang}}
	body, err := c.get(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, nil
	}

	var tt timedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return nil, fmt.Errorf("parse transcript for %s (%s): %w", videoID, lang, err)
	}

	entries := make([]models.TranscriptEntry, 0, len(tt.Texts))
	for _, row := range tt.Texts {
		text := html.UnescapeString(row.Body)
		text = strings.TrimSpace(strings.ReplaceAll(text, "\n", " "))
		if text == "" {
			continue
		}
		entries = append(entries, models.TranscriptEntry{
			Text:     text,
			Start:    row.Start,
			Duration: row.Dur,
		})
	}
	return entries, nil
}

func (c *TimedTextClient) listTracks(ctx context.Context, videoID string) ([]string, error) {
	q := url.Values{"v": {videoID}, "type": {"list"}}
	body, err := c.get(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, nil
	}

	var list trackList
	if err := xml.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("parse track list for %s: %w", videoID, err)
	}

	langs := make([]string, 0, len(list.Tracks))
	for _, t := range list.Tracks {
		langs = append(langs, t.LangCode)
	}
	return langs, nil
}

func (c *TimedTextClient) get(ctx context.Context, q url.Values) ([]byte, error) {
	reqURL := c.baseURL + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build timedtext request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("timedtext request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{URL: reqURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read timedtext response: %w", err)
	}
	return body, nil
}

// formatTimestamp renders seconds as HH:MM:SS.
func formatTimestamp(seconds float64) string {
	total := int(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
