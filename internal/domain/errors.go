package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrNotFound indicates the requested catalog item does not exist
	ErrNotFound = errors.New("content not found")

	// ErrCatalogUnavailable indicates the catalog API is unreachable
	ErrCatalogUnavailable = errors.New("catalog API is unreachable")

	// ErrAuthFailed indicates the API key was rejected
	ErrAuthFailed = errors.New("catalog API key is invalid")
)
