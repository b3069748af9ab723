// Package auth owns the catalog credential lifecycle.
//
// # State Machine
//
// Unauthenticated -> (code exchange) -> Valid -> (time passes) -> NearExpiry
// -> (refresh) -> Valid, or -> (refresh failure) -> Unauthenticated.
//
// [TokenManager] issues valid access tokens on demand, refreshing proactively
// five minutes before expiry. A failed refresh clears the persisted state so
// the caller must restart the authorization handshake; a stale token is never
// returned past the safety margin.
//
// Credential persistence is injected via [CredentialStore]; the sqlite
// implementation lives in the repositories package and tests substitute an
// in-memory store.
//
// # Concurrency
//
// Only one refresh is in flight per process. Callers that observe a
// near-expiry token while a refresh is outstanding await the same refresh
// instead of racing their own.
package auth
