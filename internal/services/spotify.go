// Spotify API implementation of the catalog client
//
// Response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"setlift/internal/camelot"
	"setlift/internal/models"
	"setlift/internal/shared"
)

const spotifyBaseURL = "https://api.spotify.com/v1"

// qualifierPattern matches parenthetical/bracketed title qualifiers
// (remix and version annotations) stripped before searching.
var qualifierPattern = regexp.MustCompile(`\(.*?\)|\[.*?\]`)

// spotifyTrack represents a catalog track in search results.
type spotifyTrack struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Artists []struct {
		Name string `json:"name"`
	} `json:"artists"`
}

type searchResponse struct {
	Tracks struct {
		Items []spotifyTrack `json:"items"`
	} `json:"tracks"`
}

// AudioFeatures holds the audio analysis fields consumed by enrichment.
type AudioFeatures struct {
	Tempo  float64 `json:"tempo"`
	Key    int     `json:"key"`
	Mode   int     `json:"mode"`
	Energy float64 `json:"energy"`
}

// SpotifyService implements catalog search and audio-feature lookups.
type SpotifyService struct {
	tokens     TokenSource
	baseURL    string
	httpClient *http.Client
}

// NewSpotifyService creates a catalog client drawing tokens from the given source.
func NewSpotifyService(tokens TokenSource) *SpotifyService {
	return &SpotifyService{
		tokens:     tokens,
		baseURL:    spotifyBaseURL,
		httpClient: newHTTPClient(),
	}
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// doRequest performs an authenticated GET against the catalog API.
func (s *SpotifyService) doRequest(ctx context.Context, endpoint string, result any) error {
	token, err := s.tokens.GetValidToken(ctx)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// CleanTitle strips remix/version qualifiers from a track title for searching.
func CleanTitle(title string) string {
	return strings.TrimSpace(qualifierPattern.ReplaceAllString(title, ""))
}

// FindTrack searches the catalog for a track by artist and title.
//
// Returns the top match's ID, or "" with a nil error for a zero-result
// search. Transport failures return an error so callers can tell "no data"
// from "lookup failed"; enrichment treats both as unenriched.
func (s *SpotifyService) FindTrack(ctx context.Context, artist, title string) (string, error) {
	query := fmt.Sprintf("artist:%s track:%s", artist, CleanTitle(title))
	endpoint := fmt.Sprintf("/search?q=%s&type=track&limit=1", url.QueryEscape(query))

	var result searchResponse
	if err := s.doRequest(ctx, endpoint, &result); err != nil {
		return "", err
	}

	if len(result.Tracks.Items) == 0 {
		return "", nil
	}

	return result.Tracks.Items[0].ID, nil
}

// GetAudioFeatures fetches tempo, key, mode, and energy for a track ID.
func (s *SpotifyService) GetAudioFeatures(ctx context.Context, trackID string) (*AudioFeatures, error) {
	var features AudioFeatures
	endpoint := fmt.Sprintf("/audio-features/%s", trackID)
	if err := s.doRequest(ctx, endpoint, &features); err != nil {
		return nil, err
	}
	return &features, nil
}

// EnrichTrack looks up a track and converts its audio features to track metadata.
//
// Returns (nil, nil) when the catalog has no match and (nil, err) when a
// lookup failed; there is no partial enrichment of a single track.
func (s *SpotifyService) EnrichTrack(ctx context.Context, artist, title string) (*models.TrackEnrichment, error) {
	trackID, err := s.FindTrack(ctx, artist, title)
	if err != nil {
		return nil, err
	}
	if trackID == "" {
		return nil, nil
	}

	features, err := s.GetAudioFeatures(ctx, trackID)
	if err != nil {
		return nil, err
	}

	return &models.TrackEnrichment{
		BPM:    math.Round(features.Tempo),
		Key:    camelot.Convert(features.Key, features.Mode),
		Energy: features.Energy,
	}, nil
}
