package main

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"setlift/internal/server"
	"setlift/internal/shared"
)

// loginTimeout bounds how long the login command waits for the redirect.
const loginTimeout = 5 * time.Minute

// AuthLogin runs the OAuth2 authorization-code flow against Spotify.
//
// Starts a loopback callback server, opens the authorization URL in the
// browser, waits for the redirect, and exchanges the code for tokens.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if r.manager == nil {
		return fmt.Errorf("%w: spotify client_id/client_secret not configured", shared.ErrMissingCredentials)
	}

	state := shared.GenerateID()
	handler := server.NewCallbackHandler(state)
	router := server.NewBasicRouter()
	router.Handler(handler)

	serveCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	addr := fmt.Sprintf("%s:%d", r.config.Server.Host, r.config.Server.Port)
	go func() {
		if err := server.Serve(serveCtx, addr, router); err != nil {
			r.logger.Error("callback server failed", "error", err)
		}
	}()

	authURL := r.manager.AuthURL(state)
	r.writePlain("Open this URL in your browser to authorize:\n\n%s\n\n", authURL)
	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warn("failed to open browser", "error", err)
	}

	select {
	case result := <-handler.Result():
		if result.Error() != nil {
			return fmt.Errorf("%w: %v", shared.ErrAuthFailed, result.Error())
		}
		if err := r.manager.ExchangeCode(ctx, result.Code); err != nil {
			return err
		}
	case <-time.After(loginTimeout):
		return fmt.Errorf("%w: timed out waiting for authorization", shared.ErrAuthFailed)
	case <-ctx.Done():
		return ctx.Err()
	}

	r.logger.Info("spotify authorization complete")
	return r.writePlain("✓ Spotify connected\n")
}

// AuthStatus reports whether stored Spotify credentials are present and usable.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	if r.manager == nil {
		return r.writePlain("✗ Spotify credentials not configured\n")
	}

	if !r.manager.IsAuthenticated() {
		r.writePlain("✗ Not authenticated\n")
		return r.writePlain("Run 'setlift auth login' to connect Spotify\n")
	}

	// A near-expiry token is refreshed here, so status doubles as a probe.
	if _, err := r.manager.GetValidToken(ctx); err != nil {
		r.writePlain("✗ Stored credentials unusable: %v\n", err)
		return r.writePlain("Run 'setlift auth login' to reauthorize\n")
	}

	return r.writePlain("✓ Authenticated with Spotify\n")
}

// AuthLogout deletes the stored Spotify credential state.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if r.manager == nil {
		return fmt.Errorf("%w: spotify client_id/client_secret not configured", shared.ErrMissingCredentials)
	}

	if err := r.manager.Logout(); err != nil {
		return err
	}

	return r.writePlain("✓ Logged out\n")
}
