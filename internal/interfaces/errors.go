// Package interfaces defines service contracts for Augur
package interfaces

import "errors"

// Shared failure kinds surfaced across services. Handlers map these to HTTP
// statuses; wrap with fmt.Errorf("...: %w", ...) to add context.
var (
	// ErrSymbolNotFound means no data exists at the raw symbol or any
	// configured suffix variant.
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrModelNotFound means no training record exists for a symbol.
	ErrModelNotFound = errors.New("model record not found")

	// ErrInsufficientHistory means the fetched series is too short to
	// split into train and test windows.
	ErrInsufficientHistory = errors.New("insufficient price history")

	// ErrUpstreamTimeout means an outbound provider call exceeded its
	// deadline.
	ErrUpstreamTimeout = errors.New("upstream timeout")
)
