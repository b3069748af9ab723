// Package server provides the loopback HTTP infrastructure for the catalog
// authorization flow.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
// [Middleware] wraps handlers in reverse order (last added executes first),
// following the standard Go pattern. The [BasicRouter] implementation uses
// [http.ServeMux] internally with method filtering.
//
// # OAuth Callback Handler
//
// [CallbackHandler] receives the OAuth2 authorization-code redirect.
// It validates the state parameter (CSRF protection) and delivers the
// authorization code through a channel; the caller performs the token
// exchange via the token lifecycle manager. Only one callback is processed
// to prevent replay.
//
// # Usage
//
// When the user runs the login command, a temporary HTTP server starts on the
// configured loopback address, handles the redirect, and shuts down after
// delivering the authorization code.
package server
