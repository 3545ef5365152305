// Package apperr defines the error taxonomy shared by every adapter and
// handler in the ranking engine, so the HTTP layer can map failures to
// status codes without knowing which driver produced them.
package apperr

import "errors"

var (
	// ErrConfigMissing means a required environment variable was absent.
	ErrConfigMissing = errors.New("config: required value missing")
	// ErrStoreUnavailable means the graph, vector, or relational store
	// could not be reached or returned a connection-level failure.
	ErrStoreUnavailable = errors.New("store: unavailable")
	// ErrSchemaMissing means the store was reachable but lacked an
	// expected index, property, or table (schema-adaptive features treat
	// this as "nothing to do" rather than a hard failure).
	ErrSchemaMissing = errors.New("store: schema missing")
	// ErrNotFound means a requested entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrEmbedFailure means the embedding provider failed or timed out.
	ErrEmbedFailure = errors.New("embed: failure")
	// ErrValidation means caller-supplied input failed validation.
	ErrValidation = errors.New("validation error")
	// ErrTransient means a retryable, likely-temporary failure occurred.
	ErrTransient = errors.New("transient error")
)

// Kind classifies an error into one of the sentinel buckets above, falling
// back to ErrTransient for anything unrecognized so callers never have to
// special-case "unknown".
func Kind(err error) error {
	for _, k := range []error{
		ErrConfigMissing, ErrStoreUnavailable, ErrSchemaMissing,
		ErrNotFound, ErrEmbedFailure, ErrValidation, ErrTransient,
	} {
		if errors.Is(err, k) {
			return k
		}
	}
	return ErrTransient
}
