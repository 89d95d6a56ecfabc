package domain

import "errors"

// Domain errors represent catalog failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotLoaded indicates the catalog has not been loaded yet.
	ErrNotLoaded = errors.New("catalog not loaded")

	// ErrManifestUnavailable indicates the manifest could not be read or parsed.
	// A load without a manifest produces no catalog at all.
	ErrManifestUnavailable = errors.New("manifest unavailable")

	// ErrUnknownMainType indicates a main type outside the taxonomy.
	ErrUnknownMainType = errors.New("unknown main type")

	// ErrUnsupportedType indicates an unknown document source type.
	ErrUnsupportedType = errors.New("unsupported type")

	// Source Errors.

	// ErrSourceUnavailable indicates a document source could not be reached.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrRateLimited indicates the remote API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
