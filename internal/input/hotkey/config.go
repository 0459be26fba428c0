package hotkey

import (
	"strings"

	"github.com/dshills/quickdraw/internal/input"
)

// ComboSize is the number of slots per device class.
const ComboSize = 3

// Combo is one class's slots. Unassigned slots are skipped.
type Combo [ComboSize]input.Code

// EmptyCombo has every slot unassigned.
var EmptyCombo = Combo{input.Unassigned, input.Unassigned, input.Unassigned}

// Config holds the keyboard and gamepad combos.
type Config struct {
	Keyboard Combo
	Gamepad  Combo
}

// DefaultConfig returns a config with nothing bound.
func DefaultConfig() Config {
	return Config{Keyboard: EmptyCombo, Gamepad: EmptyCombo}
}

// Combo returns the slots for class c.
func (c Config) Combo(class input.Class) Combo {
	if class == input.ClassGamepad {
		return c.Gamepad
	}
	return c.Keyboard
}

// Assigned returns the bound codes of the combo, in slot order.
func (c Combo) Assigned() []input.Code {
	out := make([]input.Code, 0, ComboSize)
	for _, code := range c {
		if code != input.Unassigned {
			out = append(out, code)
		}
	}
	return out
}

// IsEmpty reports whether no slot is bound.
func (c Combo) IsEmpty() bool {
	for _, code := range c {
		if code != input.Unassigned {
			return false
		}
	}
	return true
}

// Contains reports whether code is one of the bound slots.
func (c Combo) Contains(code input.Code) bool {
	if code == input.Unassigned {
		return false
	}
	for _, v := range c {
		if v == code {
			return true
		}
	}
	return false
}

// Label renders the combo like "LShift+V".
func (c Combo) Label(class input.Class) string {
	parts := make([]string, 0, ComboSize)
	for _, code := range c.Assigned() {
		parts = append(parts, input.CodeName(class, code))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, "+")
}

// ComboFromInts converts config values; negative and out-of-range values
// become Unassigned.
func ComboFromInts(class input.Class, values []int) Combo {
	combo := EmptyCombo
	for i := 0; i < ComboSize && i < len(values); i++ {
		code := input.Code(values[i])
		if class.Valid(code) {
			combo[i] = code
		}
	}
	return combo
}
