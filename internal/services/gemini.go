// Gemini API implementation of [Generator]
//
// Speaks the generateContent REST surface directly; request/response shapes
// based on https://ai.google.dev/api/generate-content
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"setlift/internal/shared"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// DefaultModels is the ordered candidate list tried during extraction.
var DefaultModels = []string{"gemini-2.0-flash-exp", "gemini-1.5-flash"}

// Deterministic sampling: extraction must be reproducible, not creative.
type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generatePart struct {
	Text string `json:"text"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generateRequest struct {
	Contents         []generateContent `json:"contents"`
	GenerationConfig generationConfig  `json:"generationConfig"`
	Tools            []map[string]any  `json:"tools,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content generateContent `json:"content"`
	} `json:"candidates"`
}

// GeminiService implements [Generator] against the generative language API.
type GeminiService struct {
	apiKey     string
	models     []string
	baseURL    string
	httpClient *http.Client
}

// NewGeminiService creates a generative extraction client.
//
// The models slice is the ordered candidate list; when empty, [DefaultModels]
// is used.
func NewGeminiService(apiKey string, modelCandidates []string) (*GeminiService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: gemini api_key not configured", shared.ErrMissingCredentials)
	}

	if len(modelCandidates) == 0 {
		modelCandidates = DefaultModels
	}

	return &GeminiService{
		apiKey:     apiKey,
		models:     modelCandidates,
		baseURL:    geminiBaseURL,
		httpClient: newHTTPClient(),
	}, nil
}

// Generate invokes model candidates in order and returns the first output.
//
// A rate-limit signal aborts the whole list with [shared.ErrRateLimited]:
// candidates share one quota, so further attempts are futile. Any other
// per-model failure continues to the next candidate. An exhausted list
// yields [shared.ErrExtractionFailed] wrapping the last underlying error.
func (g *GeminiService) Generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error

	for _, model := range g.models {
		text, err := g.generateWith(ctx, model, prompt)
		if err == nil {
			return text, nil
		}

		if isRateLimited(err) {
			return "", fmt.Errorf("%w: quota exhausted on %s, retry later", shared.ErrRateLimited, model)
		}

		lastErr = err
	}

	return "", fmt.Errorf("%w: %v", shared.ErrExtractionFailed, lastErr)
}

// generateWith issues a single generation call against one model.
func (g *GeminiService) generateWith(ctx context.Context, model, prompt string) (string, error) {
	reqBody := generateRequest{
		Contents: []generateContent{{Parts: []generatePart{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     0.1,
			TopK:            1,
			TopP:            1,
			MaxOutputTokens: 8192,
		},
		// Search grounding: the prompt instructs the model to consult
		// authoritative tracklist sources.
		Tools: []map[string]any{{"google_search": map[string]any{}}},
	}

	data, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, model, g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: model %s status %d: %s", shared.ErrAPIRequest, model, resp.StatusCode, string(body))
	}

	var result generateResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Candidates) == 0 {
		return "", fmt.Errorf("%w: model %s returned no candidates", shared.ErrAPIRequest, model)
	}

	var text strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}

	if text.Len() == 0 {
		return "", fmt.Errorf("%w: model %s returned empty output", shared.ErrAPIRequest, model)
	}

	return text.String(), nil
}

// isRateLimited detects quota exhaustion from known error markers.
func isRateLimited(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "status 429") ||
		strings.Contains(msg, "RESOURCE_EXHAUSTED") ||
		strings.Contains(msg, "quota")
}
