package catalogue

import "errors"

// Sentinel errors for library operations.
var (
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrInvalidAssetPath = errors.New("invalid asset path")
	ErrAssetLoad        = errors.New("failed to load asset")
)
