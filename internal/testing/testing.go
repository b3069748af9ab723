// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"setlift/internal/models"
)

// MemoryCredentialStore is an in-memory [auth.CredentialStore] for tests.
type MemoryCredentialStore struct {
	mu    sync.Mutex
	state *models.CredentialState

	// Failure injection
	FailGet   bool
	FailSet   bool
	FailClear bool

	SetCalls   int
	ClearCalls int
}

func (s *MemoryCredentialStore) Get() (*models.CredentialState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailGet {
		return nil, errors.New("store read failed")
	}
	if s.state == nil {
		return nil, nil
	}
	state := *s.state
	return &state, nil
}

func (s *MemoryCredentialStore) Set(state models.CredentialState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SetCalls++
	if s.FailSet {
		return errors.New("store write failed")
	}
	s.state = &state
	return nil
}

func (s *MemoryCredentialStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ClearCalls++
	if s.FailClear {
		return errors.New("store clear failed")
	}
	s.state = nil
	return nil
}

// ScriptedGenerator is a test double for [services.Generator] that replays
// canned responses in order.
type ScriptedGenerator struct {
	Responses []string
	Errs      []error

	mu      sync.Mutex
	Prompts []string
}

func (g *ScriptedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	i := len(g.Prompts)
	g.Prompts = append(g.Prompts, prompt)

	var err error
	if i < len(g.Errs) {
		err = g.Errs[i]
	}
	var resp string
	if i < len(g.Responses) {
		resp = g.Responses[i]
	}
	return resp, err
}

// MockEnricher is a test double for the per-track catalog enrichment boundary.
//
// Results are keyed by "artist - title"; missing keys yield (nil, nil),
// mirroring a track the catalog could not identify.
type MockEnricher struct {
	Results map[string]*models.TrackEnrichment
	Err     error

	mu       sync.Mutex
	inflight int
	peak     int
	Calls    []string
}

func (m *MockEnricher) EnrichTrack(ctx context.Context, artist, title string) (*models.TrackEnrichment, error) {
	key := artist + " - " + title

	m.mu.Lock()
	m.Calls = append(m.Calls, key)
	m.inflight++
	if m.inflight > m.peak {
		m.peak = m.inflight
	}
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.inflight--
		m.mu.Unlock()
	}()

	if m.Err != nil {
		return nil, m.Err
	}
	if m.Results == nil {
		return nil, nil
	}
	return m.Results[key], nil
}

// PeakConcurrency returns the maximum number of EnrichTrack calls observed in flight at once.
func (m *MockEnricher) PeakConcurrency() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.peak
}

// RoundTripFunc adapts a function to [http.RoundTripper] for stubbing HTTP clients.
type RoundTripFunc func(*http.Request) (*http.Response, error)

func (f RoundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}
