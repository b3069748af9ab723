package repositories

import (
	"testing"
	"time"

	"setlift/internal/models"
	"setlift/internal/shared"
)

func setupDB(t *testing.T) *CredentialRepository {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return NewCredentialRepository(db)
}

func TestCredentialRepository(t *testing.T) {
	t.Run("Get On Empty Store", func(t *testing.T) {
		repo := setupDB(t)

		state, err := repo.Get()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if state != nil {
			t.Errorf("expected nil state, got %+v", state)
		}
	})

	t.Run("Set Then Get Round Trip", func(t *testing.T) {
		repo := setupDB(t)
		expires := time.Now().Add(time.Hour).Truncate(time.Millisecond)

		err := repo.Set(models.CredentialState{
			AccessToken:  "access",
			RefreshToken: "refresh",
			ExpiresAt:    expires,
		})
		if err != nil {
			t.Fatalf("set failed: %v", err)
		}

		state, err := repo.Get()
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if state == nil {
			t.Fatal("expected state")
		}
		if state.AccessToken != "access" || state.RefreshToken != "refresh" {
			t.Errorf("unexpected state: %+v", state)
		}
		if !state.ExpiresAt.Equal(expires) {
			t.Errorf("expected expiry %v, got %v", expires, state.ExpiresAt)
		}
	})

	t.Run("Set Replaces Wholesale", func(t *testing.T) {
		repo := setupDB(t)

		repo.Set(models.CredentialState{AccessToken: "first", RefreshToken: "r1", ExpiresAt: time.Now()})
		repo.Set(models.CredentialState{AccessToken: "second", RefreshToken: "r2", ExpiresAt: time.Now().Add(time.Hour)})

		state, err := repo.Get()
		if err != nil || state == nil {
			t.Fatalf("get failed: %v / %v", state, err)
		}
		if state.AccessToken != "second" || state.RefreshToken != "r2" {
			t.Errorf("expected replacement, got %+v", state)
		}
	})

	t.Run("Clear", func(t *testing.T) {
		repo := setupDB(t)

		repo.Set(models.CredentialState{AccessToken: "access", RefreshToken: "refresh", ExpiresAt: time.Now()})
		if err := repo.Clear(); err != nil {
			t.Fatalf("clear failed: %v", err)
		}

		state, err := repo.Get()
		if err != nil {
			t.Fatalf("get after clear failed: %v", err)
		}
		if state != nil {
			t.Error("expected nil state after clear")
		}

		// Clearing again is a no-op, not an error.
		if err := repo.Clear(); err != nil {
			t.Errorf("clear on empty store failed: %v", err)
		}
	})
}
