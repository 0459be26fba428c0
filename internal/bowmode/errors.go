package bowmode

import "errors"

var (
	// ErrNotIdle is returned when an operation needs the controller idle.
	ErrNotIdle = errors.New("bow mode is active")

	// ErrUnknownMode is returned by ParseMode.
	ErrUnknownMode = errors.New("unknown hotkey mode")
)
