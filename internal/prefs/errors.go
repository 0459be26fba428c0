package prefs

import "errors"

var (
	// ErrEmptyKey is returned for a save key that normalizes to nothing.
	ErrEmptyKey = errors.New("empty save key")

	// ErrCorrupt is returned when the file is not a JSON object.
	ErrCorrupt = errors.New("preferences file is not a JSON object")
)
