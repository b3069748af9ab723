package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"setlift/internal/auth"
	"setlift/internal/repositories"
	"setlift/internal/services"
	"setlift/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	var manager *auth.TokenManager
	var spotify *services.SpotifyService
	var gemini *services.GeminiService

	if db, err := shared.NewDatabase(config.Database.Path); err == nil {
		shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
		store := repositories.NewCredentialRepository(db)
		if m, err := auth.NewTokenManager(config.Credentials.Spotify.Map(), store); err == nil {
			manager = m
			spotify = services.NewSpotifyService(m)
		}
	} else {
		logger.Warn("database unavailable, catalog features disabled", "error", err)
	}

	if g, err := services.NewGeminiService(config.Credentials.Gemini.APIKey, config.Credentials.Gemini.Models); err == nil {
		gemini = g
	}

	runner := NewRunner(RunnerOpts{
		Config:  config,
		Manager: manager,
		Spotify: spotify,
		Gemini:  gemini,
		YouTube: services.NewYouTubeService(),
		Logger:  logger,
	})

	app := &cli.Command{
		Name:     "setlift",
		Usage:    "Extract & enrich DJ set tracklists",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
