package service

import "errors"

// Sentinel kinds for pipeline lifecycle errors.
var (
	ErrMissingCollaborator = errors.New("pipeline needs a video source, detector, and calibration model")
)
