package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"setlift/internal/models"
	"setlift/internal/shared"

	"golang.org/x/oauth2"
)

const (
	spotifyAuthURL  = "https://accounts.spotify.com/authorize"
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
)

// RefreshMargin is how long before expiry a token is refreshed.
const RefreshMargin = 5 * time.Minute

// TokenManager implements the catalog token lifecycle over an injected [CredentialStore].
type TokenManager struct {
	config *oauth2.Config
	store  CredentialStore

	mu       sync.Mutex
	inflight *refreshCall
}

// refreshCall is a single-flight refresh shared by concurrent callers.
type refreshCall struct {
	done  chan struct{}
	token string
	err   error
}

// NewTokenManager creates a TokenManager with the given OAuth2 credentials and store.
func NewTokenManager(credentials map[string]string, store CredentialStore) (*TokenManager, error) {
	clientID, ok := credentials["client_id"]
	if !ok || clientID == "" {
		return nil, fmt.Errorf("%w: missing client_id", shared.ErrMissingCredentials)
	}

	clientSecret, ok := credentials["client_secret"]
	if !ok || clientSecret == "" {
		return nil, fmt.Errorf("%w: missing client_secret", shared.ErrMissingCredentials)
	}

	redirectURI, ok := credentials["redirect_uri"]
	if !ok || redirectURI == "" {
		redirectURI = "http://localhost:8080/callback"
	}

	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Scopes: []string{
			"user-read-private",
			"user-read-email",
		},
		Endpoint: oauth2.Endpoint{
			AuthURL:  spotifyAuthURL,
			TokenURL: spotifyTokenURL,
		},
	}

	return &TokenManager{config: config, store: store}, nil
}

// AuthURL returns the OAuth2 authorization URL for user login.
func (m *TokenManager) AuthURL(state string) string {
	return m.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// ExchangeCode trades an authorization code for an access/refresh token pair
// and persists the resulting credential state.
//
// Failure surfaces as a hard error; the caller must restart the handshake.
func (m *TokenManager) ExchangeCode(ctx context.Context, code string) error {
	token, err := m.config.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("%w: code exchange: %v", shared.ErrAuthFailed, err)
	}

	state := models.CredentialState{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ExpiresAt:    token.Expiry,
	}

	if err := m.store.Set(state); err != nil {
		return fmt.Errorf("failed to persist credentials: %w", err)
	}

	return nil
}

// GetValidToken returns an access token that is valid for at least [RefreshMargin].
//
// A near-expiry token triggers a refresh before returning; concurrent callers
// share one in-flight refresh. A failed refresh clears the stored state and
// returns [shared.ErrReauthRequired].
func (m *TokenManager) GetValidToken(ctx context.Context) (string, error) {
	state, err := m.store.Get()
	if err != nil {
		return "", fmt.Errorf("failed to read credentials: %w", err)
	}
	if state == nil {
		return "", shared.ErrNotAuthenticated
	}

	if !state.Expired(RefreshMargin) {
		return state.AccessToken, nil
	}

	m.mu.Lock()
	if call := m.inflight; call != nil {
		m.mu.Unlock()
		select {
		case <-call.done:
			return call.token, call.err
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	call := &refreshCall{done: make(chan struct{})}
	m.inflight = call
	m.mu.Unlock()

	call.token, call.err = m.refresh(ctx, *state)
	close(call.done)

	m.mu.Lock()
	m.inflight = nil
	m.mu.Unlock()

	return call.token, call.err
}

// refresh performs the refresh-token grant and persists the replacement state.
func (m *TokenManager) refresh(ctx context.Context, state models.CredentialState) (string, error) {
	source := m.config.TokenSource(ctx, &oauth2.Token{RefreshToken: state.RefreshToken})

	token, err := source.Token()
	if err != nil {
		// An unusable refresh token forces the user back through the handshake.
		if clearErr := m.store.Clear(); clearErr != nil {
			return "", fmt.Errorf("%w: refresh failed (%v) and state not cleared: %v", shared.ErrReauthRequired, err, clearErr)
		}
		return "", fmt.Errorf("%w: %v", shared.ErrReauthRequired, err)
	}

	refreshToken := token.RefreshToken
	if refreshToken == "" {
		refreshToken = state.RefreshToken
	}

	next := models.CredentialState{
		AccessToken:  token.AccessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    token.Expiry,
	}

	if err := m.store.Set(next); err != nil {
		return "", fmt.Errorf("failed to persist refreshed credentials: %w", err)
	}

	return token.AccessToken, nil
}

// IsAuthenticated reports whether credential state is present.
//
// Presence only; the state may still be near expiry and refreshed on first use.
func (m *TokenManager) IsAuthenticated() bool {
	state, err := m.store.Get()
	return err == nil && state != nil
}

// Logout deletes the persisted credential state.
func (m *TokenManager) Logout() error {
	if err := m.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}
