package auth

import "setlift/internal/models"

// CredentialStore persists catalog credential state.
//
// Get returns (nil, nil) when no credentials are stored; absence is the
// normal "not authenticated" state, not an error.
type CredentialStore interface {
	Get() (*models.CredentialState, error)
	Set(state models.CredentialState) error
	Clear() error
}
