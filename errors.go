package sparks

import "errors"

// Sentinel errors for the sparks package.
var (
	// ErrNilFontSource is returned when an effect is created without a font source.
	ErrNilFontSource = errors.New("sparks: nil font source")

	// ErrClosed is returned when starting an effect that has been closed.
	ErrClosed = errors.New("sparks: effect closed")
)
