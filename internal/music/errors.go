package music

import "errors"

// ErrInvalidInput is wrapped by every validation failure in the composer
// packages. Use errors.Is to detect it.
var ErrInvalidInput = errors.New("invalid input")
