package config

import "errors"

// Sentinel kinds for configuration loading and validation, so callers can
// distinguish a bad value from an unreadable source with errors.Is.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)
