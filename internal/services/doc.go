// Package services implements clients for the external APIs the extraction
// pipeline reconciles.
//
// # Catalog Client
//
// [SpotifyService] searches the catalog for tracks and fetches audio features
// over Bearer-authenticated GETs. Tokens come from an injected [TokenSource]
// (the auth package's TokenManager in production). Per-track enrichment
// composes search + audio features and converts the reported pitch class and
// mode to Camelot notation.
//
// "No data" and transport failure stay distinguishable at this boundary:
// a zero-result search yields ("", nil) while a failed request yields an
// error. The enrichment engine treats both as an unenriched track.
//
// # Generative Extraction Client
//
// [GeminiService] sends a retrieval-grounded prompt to the generative
// language API, iterating an ordered list of model candidates with
// deterministic sampling. Quota and 429 signals abort the whole candidate
// list via [shared.ErrRateLimited]; any other per-model failure moves on to
// the next candidate.
//
// # Source Resolver
//
// [YouTubeService] matches known video URL shapes and fetches public oEmbed
// metadata without authentication. The lookup is advisory: it returns nil on
// any failure and never an error, since downstream stages must work with or
// without it.
//
// # Error Handling
//
// Services use typed errors from the shared package:
//   - [shared.ErrNotAuthenticated] : no stored catalog credentials
//   - [shared.ErrReauthRequired] : token refresh failed, state cleared
//   - [shared.ErrRateLimited] : generative API quota exhausted
//   - [shared.ErrAPIRequest] : HTTP request failed
package services
