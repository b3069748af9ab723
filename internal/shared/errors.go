package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Authentication errors
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrReauthRequired   = fmt.Errorf("reauthorization required")
	ErrAuthFailed       = fmt.Errorf("authentication failed")

	// Extraction errors
	ErrRateLimited       = fmt.Errorf("rate limited")
	ErrNoInformation     = fmt.Errorf("no information found")
	ErrMalformedResponse = fmt.Errorf("malformed model response")
	ErrExtractionFailed  = fmt.Errorf("extraction unavailable")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
