// YouTube oEmbed implementation of the source resolver
//
// Public metadata only; no API key or authenticated access involved.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
)

const youtubeBaseURL = "https://www.youtube.com"

// Known video URL shapes: watch pages, short links, embeds, legacy /v/ paths.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/)([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/embed/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/v/([a-zA-Z0-9_-]{11})`),
}

// VideoMetadata is the public metadata subset consumed from the oEmbed endpoint.
type VideoMetadata struct {
	Title  string `json:"title"`
	Author string `json:"author_name"`
}

// YouTubeService resolves platform references to video IDs and public metadata.
type YouTubeService struct {
	baseURL    string
	httpClient *http.Client
}

// NewYouTubeService creates a new source resolver.
func NewYouTubeService() *YouTubeService {
	return &YouTubeService{
		baseURL:    youtubeBaseURL,
		httpClient: newHTTPClient(),
	}
}

// ExtractVideoID matches known URL shapes and extracts the 11-character video ID.
func ExtractVideoID(reference string) (string, bool) {
	for _, pattern := range videoIDPatterns {
		if match := pattern.FindStringSubmatch(reference); match != nil {
			return match[1], true
		}
	}
	return "", false
}

// VideoInfo fetches public title/author metadata for a video ID via oEmbed.
//
// Advisory lookup: one best-effort attempt, nil on any failure (non-2xx,
// network error, malformed payload). Downstream stages work with or without
// this metadata, so it never returns an error.
func (y *YouTubeService) VideoInfo(ctx context.Context, videoID string) *VideoMetadata {
	watchURL := fmt.Sprintf("https://www.youtube.com/watch?v=%s", videoID)
	endpoint := fmt.Sprintf("%s/oembed?url=%s&format=json", y.baseURL, url.QueryEscape(watchURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil
	}

	resp, err := y.httpClient.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil
	}

	var meta VideoMetadata
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return nil
	}

	return &meta
}

// Resolve extracts a video ID from the reference and looks up its metadata.
//
// Returns the resolved metadata (nil when the reference is not a recognized
// video URL or the lookup failed) and the extracted video ID, if any.
func (y *YouTubeService) Resolve(ctx context.Context, reference string) (*VideoMetadata, string) {
	videoID, ok := ExtractVideoID(reference)
	if !ok {
		return nil, ""
	}
	return y.VideoInfo(ctx, videoID), videoID
}
