package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"setlift/internal/models"
)

// spotifyProvider keys the single catalog credential row.
const spotifyProvider = "spotify"

// CredentialRepository implements [auth.CredentialStore] backed by sqlite.
//
// Single-writer per process; the credentials table holds at most one row per
// provider and every refresh replaces the row wholesale.
type CredentialRepository struct {
	db *sql.DB
}

// NewCredentialRepository creates a new CredentialRepository with the given database connection
func NewCredentialRepository(db *sql.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

// Get reads the stored credential state.
// Returns (nil, nil) when no credentials are stored.
func (r *CredentialRepository) Get() (*models.CredentialState, error) {
	query := `
		SELECT access_token, refresh_token, expires_at
		FROM credentials
		WHERE provider = ?
	`

	var (
		accessToken  string
		refreshToken string
		expiresAt    int64
	)

	err := r.db.QueryRow(query, spotifyProvider).Scan(&accessToken, &refreshToken, &expiresAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query credentials: %w", err)
	}

	return &models.CredentialState{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.UnixMilli(expiresAt),
	}, nil
}

// Set replaces the stored credential state wholesale.
func (r *CredentialRepository) Set(state models.CredentialState) error {
	query := `
		INSERT INTO credentials (provider, access_token, refresh_token, expires_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(provider) DO UPDATE SET
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			expires_at = excluded.expires_at,
			updated_at = excluded.updated_at
	`

	_, err := r.db.Exec(query, spotifyProvider, state.AccessToken, state.RefreshToken, state.ExpiresAt.UnixMilli(), time.Now())
	if err != nil {
		return fmt.Errorf("failed to store credentials: %w", err)
	}

	return nil
}

// Clear deletes the stored credential state.
// Clearing an empty store is not an error.
func (r *CredentialRepository) Clear() error {
	_, err := r.db.Exec("DELETE FROM credentials WHERE provider = ?", spotifyProvider)
	if err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}

	return nil
}
