package config

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMode is returned for an unknown hotkey mode.
	ErrInvalidMode = errors.New("invalid hotkey mode")

	// ErrInvalidValue is returned for a value of the wrong type or range.
	ErrInvalidValue = errors.New("invalid value")

	// ErrNoPath is returned when saving a store without a file.
	ErrNoPath = errors.New("config store has no file path")
)

// FieldError reports a field that fell back to its default.
type FieldError struct {
	Path  string
	Value any
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("config %s = %v: %v", e.Path, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
