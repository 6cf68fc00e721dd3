package pose

import "errors"

// Sentinel kinds for pose construction and lookup errors.
var (
	ErrUnknownSchema    = errors.New("unknown landmark schema")
	ErrLandmarkCount    = errors.New("landmark count does not match schema")
	ErrPointOutOfSchema = errors.New("point outside landmark schema")
	ErrNoSuchSubject    = errors.New("no such subject in frame")
)
