package fetch

import (
	"fmt"
	"net/url"
	"strings"
)

// Kind classifies what a URL points at.
type Kind int

const (
	KindUnknown Kind = iota
	KindVideo
	KindTextFile
	KindWebpage
)

func (k Kind) String() string {
	switch k {
	case KindVideo:
		return "video"
	case KindTextFile:
		return "text_file"
	case KindWebpage:
		return "webpage"
	default:
		return "unknown"
	}
}

// videoHosts are the hostnames treated as video URLs.
var videoHosts = map[string]bool{
	"youtube.com":   true,
	"youtu.be":      true,
	"m.youtube.com": true,
}

// Classify determines how a URL's content should be fetched: video for
// known video hosts, text_file for .txt paths, webpage for anything else
// served over http(s), unknown otherwise.
func Classify(rawURL string) Kind {
	u, err := url.Parse(rawURL)
	if err != nil {
		return KindUnknown
	}

	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")
	if videoHosts[host] {
		return KindVideo
	}
	if strings.HasSuffix(strings.ToLower(u.Path), ".txt") {
		return KindTextFile
	}
	if u.Scheme == "http" || u.Scheme == "https" {
		return KindWebpage
	}
	return KindUnknown
}

// VideoID resolves the video identifier from a video URL. Both the
// short-link form (youtu.be/<id>) and the query-parameter form
// (watch?v=<id>) are supported.
func VideoID(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidURL, rawURL)
	}

	if strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.") == "youtu.be" {
		id := strings.TrimPrefix(u.Path, "/")
		if i := strings.IndexByte(id, '/'); i >= 0 {
			id = id[:i]
		}
		if id != "" {
			return id, nil
		}
	}

	if id := u.Query().Get("v"); id != "" {
		return id, nil
	}

	return "", fmt.Errorf("%w: %s", ErrInvalidURL, rawURL)
}
