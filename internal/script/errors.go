package script

import (
	"errors"
	"fmt"
)

var (
	// ErrTimeout is returned when a script runs past its deadline.
	ErrTimeout = errors.New("script timed out")

	// ErrExpectation is returned when expect() fails.
	ErrExpectation = errors.New("expectation failed")
)

// Error reports a failed script.
type Error struct {
	Script string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("script %s: %v", e.Script, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
