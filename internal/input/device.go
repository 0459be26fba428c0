package input

import "fmt"

// Device identifies where a button event came from.
type Device int

const (
	DeviceKeyboard Device = iota
	DeviceMouse
	DeviceGamepad
)

// String returns the device name.
func (d Device) String() string {
	switch d {
	case DeviceKeyboard:
		return "keyboard"
	case DeviceMouse:
		return "mouse"
	case DeviceGamepad:
		return "gamepad"
	default:
		return fmt.Sprintf("device(%d)", int(d))
	}
}

// Class groups devices for hotkey purposes. Keyboard and mouse share a class.
type Class int

const (
	ClassKeyboard Class = iota
	ClassGamepad
	numClasses
)

// String returns the class name.
func (c Class) String() string {
	if c == ClassGamepad {
		return "gamepad"
	}
	return "keyboard"
}

// ClassOf returns the class a device belongs to.
func ClassOf(d Device) Class {
	if d == DeviceGamepad {
		return ClassGamepad
	}
	return ClassKeyboard
}

// Code is a button code within a class.
//
// Keyboard codes are DirectInput scan codes (0-255). Mouse buttons live in the
// keyboard class at MouseOffset+button. Gamepad codes are button indices.
type Code int

// Unassigned marks an empty hotkey slot.
const Unassigned Code = -1

// Code ranges.
const (
	KeyboardCodes = 256
	MouseOffset   = KeyboardCodes
	MouseCodes    = 8
	GamepadCodes  = 16

	classKeyboardSize = KeyboardCodes + MouseCodes
)

// Normalize maps a device-local code into its class namespace.
// It returns false for codes outside the device's range.
func Normalize(d Device, code int) (Code, bool) {
	switch d {
	case DeviceKeyboard:
		if code < 0 || code >= KeyboardCodes {
			return Unassigned, false
		}
		return Code(code), true
	case DeviceMouse:
		if code < 0 || code >= MouseCodes {
			return Unassigned, false
		}
		return Code(MouseOffset + code), true
	case DeviceGamepad:
		if code < 0 || code >= GamepadCodes {
			return Unassigned, false
		}
		return Code(code), true
	default:
		return Unassigned, false
	}
}

// classSize returns how many codes a class can hold.
func classSize(c Class) int {
	if c == ClassGamepad {
		return GamepadCodes
	}
	return classKeyboardSize
}

// Valid reports whether code fits the class namespace.
func (c Class) Valid(code Code) bool {
	return code >= 0 && int(code) < classSize(c)
}
