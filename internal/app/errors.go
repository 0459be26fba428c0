package app

import (
	"errors"
	"fmt"
)

var (
	// ErrNoWorld is returned when the application is built without a world.
	ErrNoWorld = errors.New("no game world")

	// ErrNoConfigPath is returned by operations that need a config file.
	ErrNoConfigPath = errors.New("no config file path")

	// ErrAlreadyRunning indicates the application is already running.
	ErrAlreadyRunning = errors.New("application already running")

	// ErrNotRunning indicates the application is not running.
	ErrNotRunning = errors.New("application not running")

	// ErrNoSave is returned by save hooks called with an empty save name.
	ErrNoSave = errors.New("no save name")

	// ErrUnknownItem is returned when no inventory item has the given name.
	ErrUnknownItem = errors.New("no such item")
)

// InitError reports a component that failed during bootstrap.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("init %s: %v", e.Component, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}
