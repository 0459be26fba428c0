package input

import (
	"fmt"

	"github.com/dshills/quickdraw/internal/game"
)

// Event is one button-style event from the engine's input poll.
//
// Edge state follows the engine's convention: a down edge has a non-zero
// Value and zero Held time, an up edge has a zero Value and non-zero Held
// time, and a held button has both non-zero.
type Event struct {
	Device Device

	// Code is the device-local code (scan code, mouse button, pad button).
	Code int

	Value float32

	// Held is how long the button has been down, in seconds.
	Held float32

	// UserEvent is the control name the engine mapped this button to.
	UserEvent string

	// Synthetic marks events produced by the core rather than hardware.
	Synthetic bool
}

// Batch is one poll's worth of events, in delivery order.
type Batch []Event

// IsPressed reports whether the button is currently down.
func (e Event) IsPressed() bool {
	return e.Value > 0
}

// IsDown reports a press edge.
func (e Event) IsDown() bool {
	return e.Value > 0 && e.Held == 0
}

// IsUp reports a release edge.
func (e Event) IsUp() bool {
	return e.Value == 0 && e.Held > 0
}

// IsHeld reports a sustained press.
func (e Event) IsHeld() bool {
	return e.Value > 0 && e.Held > 0
}

// IsAttack reports whether the event drives the right-hand attack control.
func (e Event) IsAttack() bool {
	if e.UserEvent != "" {
		return e.UserEvent == game.AttackUserEvent
	}
	switch e.Device {
	case DeviceMouse:
		return Code(MouseOffset+e.Code) == MouseLeft
	case DeviceGamepad:
		return Code(e.Code) == PadRightTrigger
	default:
		return false
	}
}

// String formats the event for logs.
func (e Event) String() string {
	edge := "held"
	switch {
	case e.IsDown():
		edge = "down"
	case e.IsUp():
		edge = "up"
	case !e.IsPressed():
		edge = "idle"
	}
	src := ""
	if e.Synthetic {
		src = " synthetic"
	}
	return fmt.Sprintf("%s:%d %s held=%.2f%s", e.Device, e.Code, edge, e.Held, src)
}

// NewAttackEvent builds a synthetic attack event on the mouse's left button.
// A zero value with a positive held time is a release.
func NewAttackEvent(value, held float32) Event {
	return Event{
		Device:    DeviceMouse,
		Code:      0,
		Value:     value,
		Held:      held,
		UserEvent: game.AttackUserEvent,
		Synthetic: true,
	}
}
