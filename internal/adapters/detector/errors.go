package detector

import "errors"

// Sentinel kinds for detector errors.
var (
	ErrEmptyScript   = errors.New("script has no frames")
	ErrInvalidScript = errors.New("invalid script file")
)
