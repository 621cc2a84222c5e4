package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain operations
var (
	// ErrMovieNotFound indicates the catalog has no movie with the requested id
	ErrMovieNotFound = errors.New("movie not found")

	// ErrCatalogUnreachable indicates the catalog API could not be reached
	ErrCatalogUnreachable = errors.New("catalog is unreachable")

	// ErrInvalidCredentials indicates the login acceptance rule rejected the input
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrMissingAPIKey indicates no catalog credential is configured
	ErrMissingAPIKey = errors.New("catalog api key is not configured")
)

// RemoteError reports a failed catalog call: transport failure, non-2xx
// status, or a body that does not decode into the expected shape.
type RemoteError struct {
	Op     string // "trending", "search", "detail"
	Status int    // HTTP status, 0 when no response was received
	Err    error
}

func (e *RemoteError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("catalog %s: status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("catalog %s: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// ValidationError reports input rejected by a local rule.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

func (e *ValidationError) Unwrap() error { return e.Err }
