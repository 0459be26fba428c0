package catalog

import "errors"

var (
	// ErrMissingKey is returned for a string key with no entry.
	ErrMissingKey = errors.New("missing string key")

	// ErrBadForm is returned for a hidden-list entry that is not a form id.
	ErrBadForm = errors.New("bad form id in hidden list")
)
