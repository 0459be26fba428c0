package input

import (
	"fmt"
	"strconv"
	"strings"
)

// Keyboard scan codes (DirectInput numbering).
const (
	KeyEscape    Code = 0x01
	Key1         Code = 0x02
	Key2         Code = 0x03
	Key3         Code = 0x04
	KeyTab       Code = 0x0F
	KeyQ         Code = 0x10
	KeyW         Code = 0x11
	KeyE         Code = 0x12
	KeyR         Code = 0x13
	KeyEnter     Code = 0x1C
	KeyLeftCtrl  Code = 0x1D
	KeyA         Code = 0x1E
	KeyS         Code = 0x1F
	KeyD         Code = 0x20
	KeyF         Code = 0x21
	KeyG         Code = 0x22
	KeyLeftShift Code = 0x2A
	KeyZ         Code = 0x2C
	KeyX         Code = 0x2D
	KeyC         Code = 0x2E
	KeyV         Code = 0x2F
	KeyB         Code = 0x30
	KeyLeftAlt   Code = 0x38
	KeySpace     Code = 0x39
	KeyCapsLock  Code = 0x3A
)

// Mouse buttons in the keyboard class namespace.
const (
	MouseLeft   Code = MouseOffset + 0
	MouseRight  Code = MouseOffset + 1
	MouseMiddle Code = MouseOffset + 2
)

// Gamepad button indices.
const (
	PadDPadUp Code = iota
	PadDPadDown
	PadDPadLeft
	PadDPadRight
	PadStart
	PadBack
	PadLeftThumb
	PadRightThumb
	PadLeftShoulder
	PadRightShoulder
	PadA
	PadB
	PadX
	PadY
	PadLeftTrigger
	PadRightTrigger
)

var keyNames = map[Code]string{
	KeyEscape: "Esc", Key1: "1", Key2: "2", Key3: "3", KeyTab: "Tab",
	KeyQ: "Q", KeyW: "W", KeyE: "E", KeyR: "R", KeyEnter: "Enter",
	KeyLeftCtrl: "LCtrl", KeyA: "A", KeyS: "S", KeyD: "D", KeyF: "F",
	KeyG: "G", KeyLeftShift: "LShift", KeyZ: "Z", KeyX: "X", KeyC: "C",
	KeyV: "V", KeyB: "B", KeyLeftAlt: "LAlt", KeySpace: "Space",
	KeyCapsLock: "CapsLock", MouseLeft: "Mouse1", MouseRight: "Mouse2",
	MouseMiddle: "Mouse3",
}

var padNames = [GamepadCodes]string{
	"DPadUp", "DPadDown", "DPadLeft", "DPadRight", "Start", "Back",
	"LS", "RS", "LB", "RB", "A", "B", "X", "Y", "LT", "RT",
}

// CodeName returns a short label for a code in the given class.
func CodeName(c Class, code Code) string {
	if code == Unassigned {
		return "-"
	}
	if c == ClassGamepad {
		if c.Valid(code) {
			return padNames[code]
		}
		return "?"
	}
	if name, ok := keyNames[code]; ok {
		return name
	}
	return fmt.Sprintf("0x%02X", int(code))
}

// ParseButton resolves a button name to a device and device-local code.
// It accepts the labels CodeName produces ("V", "Mouse1"), gamepad labels
// with a "pad:" prefix ("pad:RT") and raw scan codes ("0x2F", "47").
func ParseButton(name string) (Device, int, bool) {
	name = strings.TrimSpace(name)
	if rest, ok := strings.CutPrefix(strings.ToLower(name), "pad:"); ok {
		for i, n := range padNames {
			if strings.EqualFold(n, rest) {
				return DeviceGamepad, i, true
			}
		}
		if v, err := strconv.Atoi(rest); err == nil && ClassGamepad.Valid(Code(v)) {
			return DeviceGamepad, v, true
		}
		return DeviceKeyboard, 0, false
	}
	for code, n := range keyNames {
		if strings.EqualFold(n, name) {
			return splitKeyboard(code)
		}
	}
	v, err := strconv.ParseInt(name, 0, 32)
	if err != nil || !ClassKeyboard.Valid(Code(v)) {
		return DeviceKeyboard, 0, false
	}
	return splitKeyboard(Code(v))
}

func splitKeyboard(code Code) (Device, int, bool) {
	if code >= MouseOffset {
		return DeviceMouse, int(code - MouseOffset), true
	}
	return DeviceKeyboard, int(code), true
}
