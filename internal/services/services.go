package services

import (
	"context"
	"net/http"
	"time"
)

// defaultTimeout bounds every outbound call; no client blocks forever.
const defaultTimeout = 30 * time.Second

// Generator produces free-form text from a natural-language prompt.
//
// Implemented by [GeminiService]; the pipeline engine depends on this
// interface so tests can script responses.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// TokenSource issues valid catalog access tokens on demand.
//
// Implemented by the auth package's TokenManager.
type TokenSource interface {
	GetValidToken(ctx context.Context) (string, error)
	IsAuthenticated() bool
}

// newHTTPClient returns an [http.Client] with the shared per-call timeout.
func newHTTPClient() *http.Client {
	return &http.Client{Timeout: defaultTimeout}
}
