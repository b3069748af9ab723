package shared

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Credentials.Spotify.RedirectURI != "http://localhost:8080/callback" {
			t.Errorf("unexpected redirect URI %q", config.Credentials.Spotify.RedirectURI)
		}
		if len(config.Credentials.Gemini.Models) != 2 {
			t.Errorf("expected 2 default model candidates, got %v", config.Credentials.Gemini.Models)
		}
		if config.Database.Path != "setlift.db" {
			t.Errorf("unexpected database path %q", config.Database.Path)
		}
		if config.Server.Port != 8080 {
			t.Errorf("unexpected server port %d", config.Server.Port)
		}
	})

	t.Run("Save And Load Round Trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")

		config := DefaultConfig()
		config.Credentials.Spotify.ClientID = "client123"
		config.Credentials.Gemini.APIKey = "key456"

		if err := SaveConfig(path, config); err != nil {
			t.Fatalf("SaveConfig failed: %v", err)
		}

		loaded, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}

		if loaded.Credentials.Spotify.ClientID != "client123" {
			t.Errorf("expected client123, got %q", loaded.Credentials.Spotify.ClientID)
		}
		if loaded.Credentials.Gemini.APIKey != "key456" {
			t.Errorf("expected key456, got %q", loaded.Credentials.Gemini.APIKey)
		}
	})

	t.Run("LoadConfig Missing File", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("CreateConfigFile Refuses Overwrite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(path); err != nil {
			t.Fatalf("CreateConfigFile failed: %v", err)
		}
		if err := CreateConfigFile(path); err == nil {
			t.Error("expected error for existing file")
		}
	})

	t.Run("Spotify Map", func(t *testing.T) {
		creds := SpotifyConfig{ClientID: "id", ClientSecret: "secret", RedirectURI: "uri"}
		m := creds.Map()

		if m["client_id"] != "id" || m["client_secret"] != "secret" || m["redirect_uri"] != "uri" {
			t.Errorf("unexpected credential map %v", m)
		}
	})
}

func TestMigrations(t *testing.T) {
	t.Run("Run And Rollback", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		if err := RunMigrations(db); err != nil {
			t.Fatalf("RunMigrations failed: %v", err)
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM credentials").Scan(&count); err != nil {
			t.Fatalf("credentials table missing: %v", err)
		}

		// Reapplying is a no-op
		if err := RunMigrations(db); err != nil {
			t.Fatalf("rerunning migrations failed: %v", err)
		}

		if err := RollbackMigration(db); err != nil {
			t.Fatalf("RollbackMigration failed: %v", err)
		}
		if err := db.QueryRow("SELECT COUNT(*) FROM credentials").Scan(&count); err == nil {
			t.Error("expected credentials table to be dropped")
		}
	})
}

func TestLogger(t *testing.T) {
	t.Run("Writes To Provided Writer", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := NewLogger(buf)

		logger.Error("boom")

		if !strings.Contains(buf.String(), "boom") {
			t.Errorf("expected log output, got %q", buf.String())
		}
	})

	t.Run("WithLogger Adds Fields", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := WithLogger(NewLogger(buf), "component", "pipeline")

		logger.Error("boom")

		if !strings.Contains(buf.String(), "pipeline") {
			t.Errorf("expected component field, got %q", buf.String())
		}
	})
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if a == b {
		t.Error("expected unique IDs")
	}
	if len(a) != 36 {
		t.Errorf("expected UUID string, got %q", a)
	}
}

func TestMarshalJSON(t *testing.T) {
	data, err := MarshalJSON(map[string]int{"n": 1}, true)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(string(data), `"n": 1`) {
		t.Errorf("expected indented JSON, got %s", data)
	}
}
