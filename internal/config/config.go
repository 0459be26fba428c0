package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dshills/quickdraw/internal/bowmode"
	"github.com/dshills/quickdraw/internal/config/loader"
	"github.com/dshills/quickdraw/internal/game"
	"github.com/dshills/quickdraw/internal/input"
	"github.com/dshills/quickdraw/internal/input/hotkey"
)

// Setting paths.
const (
	PathMode               = "hotkey.mode"
	PathKeyboard           = "hotkey.keyboard"
	PathGamepad            = "hotkey.gamepad"
	PathRequireExclusive   = "hotkey.require_exclusive"
	PathSmartThreshold     = "hotkey.smart_threshold"
	PathChosenBow          = "bow.chosen"
	PathPreferredArrow     = "bow.preferred_arrow"
	PathAutoDraw           = "bow.auto_draw"
	PathSheatheDelay       = "bow.sheathe_delay"
	PathSkipEquipAnimation = "patches.skip_equip_animation"
	PathHideItems          = "patches.hide_items"
	PathBlockUnequip       = "patches.block_unequip"
)

// Config is the persisted configuration.
type Config struct {
	Mode             bowmode.Mode
	Keyboard         [hotkey.ComboSize]int
	Gamepad          [hotkey.ComboSize]int
	RequireExclusive bool

	// SmartThreshold and SheatheDelay are in seconds.
	SmartThreshold float64

	ChosenBow      game.FormID
	PreferredArrow game.FormID
	AutoDraw       bool
	SheatheDelay   float64

	SkipEquipAnimation bool
	HideItems          bool
	BlockUnequip       bool
}

// Default returns the stock configuration: hold V.
func Default() Config {
	return Config{
		Mode:             bowmode.ModeHold,
		Keyboard:         [hotkey.ComboSize]int{int(input.KeyV), -1, -1},
		Gamepad:          [hotkey.ComboSize]int{-1, -1, -1},
		RequireExclusive: true,
		SmartThreshold:   bowmode.DefaultSmartThreshold.Seconds(),
		AutoDraw:         true,
		BlockUnequip:     true,
	}
}

// Hotkeys returns the detector bindings.
func (c Config) Hotkeys() hotkey.Config {
	return hotkey.Config{
		Keyboard: hotkey.ComboFromInts(input.ClassKeyboard, c.Keyboard[:]),
		Gamepad:  hotkey.ComboFromInts(input.ClassGamepad, c.Gamepad[:]),
	}
}

// Apply copies the controller-facing fields into s. Fields that are not
// persisted here (the hidden list) are left alone.
func (c Config) Apply(s bowmode.Settings) bowmode.Settings {
	s.Mode = c.Mode
	s.AutoDraw = c.AutoDraw
	s.SheatheDelay = seconds(c.SheatheDelay)
	s.SmartThreshold = seconds(c.SmartThreshold)
	s.ChosenBow = c.ChosenBow
	s.PreferredArrow = c.PreferredArrow
	s.SkipEquipAnimation = c.SkipEquipAnimation
	s.HideItems = c.HideItems
	s.BlockUnequip = c.BlockUnequip
	return s
}

func seconds(f float64) time.Duration {
	return time.Duration(f * float64(time.Second))
}

// Decode builds a Config from a loaded map. Fields that are missing keep
// their default silently; fields that are present but malformed keep their
// default and are reported.
func Decode(m map[string]any) (Config, []error) {
	c := Default()
	var errs []error
	field := func(path string, set func(v any) error) {
		v, ok := loader.Lookup(m, path)
		if !ok {
			return
		}
		if err := set(v); err != nil {
			errs = append(errs, &FieldError{Path: path, Value: v, Err: err})
		}
	}

	field(PathMode, func(v any) (err error) {
		c.Mode, err = decodeMode(v)
		return err
	})
	field(PathKeyboard, func(v any) (err error) {
		c.Keyboard, err = decodeCodes(v, input.ClassKeyboard)
		return err
	})
	field(PathGamepad, func(v any) (err error) {
		c.Gamepad, err = decodeCodes(v, input.ClassGamepad)
		return err
	})
	field(PathRequireExclusive, func(v any) (err error) {
		c.RequireExclusive, err = decodeBool(v)
		return err
	})
	field(PathSmartThreshold, func(v any) error {
		f, err := decodeSeconds(v)
		if err == nil && f == 0 {
			err = fmt.Errorf("%w: threshold must be positive", ErrInvalidValue)
		}
		if err != nil {
			return err
		}
		c.SmartThreshold = f
		return nil
	})
	field(PathChosenBow, func(v any) (err error) {
		c.ChosenBow, err = decodeFormID(v)
		return err
	})
	field(PathPreferredArrow, func(v any) (err error) {
		c.PreferredArrow, err = decodeFormID(v)
		return err
	})
	field(PathAutoDraw, func(v any) (err error) {
		c.AutoDraw, err = decodeBool(v)
		return err
	})
	field(PathSheatheDelay, func(v any) (err error) {
		c.SheatheDelay, err = decodeSeconds(v)
		return err
	})
	field(PathSkipEquipAnimation, func(v any) (err error) {
		c.SkipEquipAnimation, err = decodeBool(v)
		return err
	})
	field(PathHideItems, func(v any) (err error) {
		c.HideItems, err = decodeBool(v)
		return err
	})
	field(PathBlockUnequip, func(v any) (err error) {
		c.BlockUnequip, err = decodeBool(v)
		return err
	})
	return c, errs
}

// Encode returns the nested map written to the file.
func (c Config) Encode() map[string]any {
	m := make(map[string]any)
	for path, v := range c.Flatten() {
		loader.SetPath(m, path, v)
	}
	return m
}

// Flatten returns every setting keyed by path, in file representation.
func (c Config) Flatten() map[string]any {
	return map[string]any{
		PathMode:               c.Mode.String(),
		PathKeyboard:           c.Keyboard[:],
		PathGamepad:            c.Gamepad[:],
		PathRequireExclusive:   c.RequireExclusive,
		PathSmartThreshold:     c.SmartThreshold,
		PathChosenBow:          formString(c.ChosenBow),
		PathPreferredArrow:     formString(c.PreferredArrow),
		PathAutoDraw:           c.AutoDraw,
		PathSheatheDelay:       c.SheatheDelay,
		PathSkipEquipAnimation: c.SkipEquipAnimation,
		PathHideItems:          c.HideItems,
		PathBlockUnequip:       c.BlockUnequip,
	}
}

func formString(id game.FormID) string {
	if id == game.NoForm {
		return ""
	}
	return "0x" + id.String()
}

func decodeMode(v any) (bowmode.Mode, error) {
	switch x := v.(type) {
	case string:
		m, err := bowmode.ParseMode(x)
		if err != nil {
			return bowmode.ModeHold, fmt.Errorf("%w: %q", ErrInvalidMode, x)
		}
		return m, nil
	case int64:
		if m := bowmode.Mode(x); m.Valid() {
			return m, nil
		}
	}
	return bowmode.ModeHold, fmt.Errorf("%w: %v", ErrInvalidMode, v)
}

func decodeBool(v any) (bool, error) {
	switch x := v.(type) {
	case bool:
		return x, nil
	case int64:
		return x != 0, nil
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(x)); err == nil {
			return b, nil
		}
	}
	return false, fmt.Errorf("%w: want bool", ErrInvalidValue)
}

func decodeSeconds(v any) (float64, error) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case int64:
		f = float64(x)
	case string:
		p, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: want seconds", ErrInvalidValue)
		}
		f = p
	default:
		return 0, fmt.Errorf("%w: want seconds", ErrInvalidValue)
	}
	if f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: want non-negative seconds", ErrInvalidValue)
	}
	return f, nil
}

func decodeFormID(v any) (game.FormID, error) {
	switch x := v.(type) {
	case string:
		id, err := game.ParseFormID(x)
		if err != nil {
			return game.NoForm, fmt.Errorf("%w: %v", ErrInvalidValue, err)
		}
		return id, nil
	case int64:
		if x >= 0 && x <= math.MaxUint32 {
			return game.FormID(x), nil
		}
	}
	return game.NoForm, fmt.Errorf("%w: want form id", ErrInvalidValue)
}

// decodeCodes accepts a list (or a single code) of up to three codes.
// Unused slots are -1; codes outside the class range are rejected.
func decodeCodes(v any, class input.Class) ([hotkey.ComboSize]int, error) {
	out := [hotkey.ComboSize]int{-1, -1, -1}
	var items []any
	switch x := v.(type) {
	case []any:
		items = x
	case int64:
		items = []any{x}
	default:
		return out, fmt.Errorf("%w: want list of codes", ErrInvalidValue)
	}
	if len(items) > hotkey.ComboSize {
		return out, fmt.Errorf("%w: at most %d codes", ErrInvalidValue, hotkey.ComboSize)
	}
	for i, item := range items {
		n, ok := item.(int64)
		if !ok {
			return [hotkey.ComboSize]int{-1, -1, -1}, fmt.Errorf("%w: code %v", ErrInvalidValue, item)
		}
		if n != int64(input.Unassigned) && !class.Valid(input.Code(n)) {
			return [hotkey.ComboSize]int{-1, -1, -1}, fmt.Errorf("%w: code %d out of range", ErrInvalidValue, n)
		}
		out[i] = int(n)
	}
	return out, nil
}
