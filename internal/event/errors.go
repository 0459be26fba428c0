package event

import "errors"

var (
	// ErrNilListener is returned when a nil listener is registered.
	ErrNilListener = errors.New("listener cannot be nil")

	// ErrNoCapability is returned when a listener implements no sink.
	ErrNoCapability = errors.New("listener implements no event sink")
)
