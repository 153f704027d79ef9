package assets

import "errors"

// Sentinel errors for asset operations.
var (
	// ErrStyleNotFound indicates the requested theme is not registered with chroma.
	ErrStyleNotFound = errors.New("style not found")

	// ErrInvalidAssetName indicates the style name is empty or malformed.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrAssetRead indicates an I/O error occurred while reading a CSS file.
	ErrAssetRead = errors.New("failed to read asset")

	// ErrAssetTooLarge indicates a user CSS file exceeds MaxCSSSize.
	ErrAssetTooLarge = errors.New("asset too large")
)
