package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
)

const defaultNoembedURL = "https://noembed.com/embed"

// VideoMetadata looks up the title and channel for a video URL. The Data API
// is preferred when a key was configured; noembed serves as a keyless
// fallback. Metadata is decorative, so every failure degrades to empty
// strings instead of an error.
func (f *Fetcher) VideoMetadata(ctx context.Context, rawURL string) (title, channel string) {
	id, err := VideoID(rawURL)
	if err != nil {
		return "", ""
	}

	if f.youtube != nil {
		resp, err := f.youtube.Videos.List([]string{"snippet"}).Id(id).Context(ctx).Do()
		if err == nil && len(resp.Items) > 0 && resp.Items[0].Snippet != nil {
			return resp.Items[0].Snippet.Title, resp.Items[0].Snippet.ChannelTitle
		}
		if err != nil {
			slog.Warn("video metadata lookup failed, trying fallback", "video_id", id, "error", err)
		}
	}

	return f.noembedMetadata(ctx, id)
}

func (f *Fetcher) noembedMetadata(ctx context.Context, videoID string) (title, channel string) {
	watchURL := "https://www.youtube.com/watch?v=" + videoID
	reqURL := f.noembedURL + "?url=" + url.QueryEscape(watchURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", ""
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		slog.Warn("noembed metadata lookup failed", "video_id", videoID, "error", err)
		return "", ""
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.Warn("noembed metadata lookup failed", "video_id", videoID,
			"error", fmt.Sprintf("status %d", resp.StatusCode))
		return "", ""
	}

	var meta struct {
		Title      string `json:"title"`
		AuthorName string `json:"author_name"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&meta); err != nil {
		slog.Warn("noembed metadata decode failed", "video_id", videoID, "error", err)
		return "", ""
	}
	return meta.Title, meta.AuthorName
}
