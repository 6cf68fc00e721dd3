package calibration

import "errors"

// Sentinel kinds for calibration construction errors.
var (
	ErrUnknownMode      = errors.New("unknown calibration mode")
	ErrInvalidFOV       = errors.New("field of view outside (0, pi)")
	ErrInvalidLength    = errors.New("calibration length must be positive")
	ErrPointOutOfSchema = errors.New("calibration point outside landmark schema")
)
