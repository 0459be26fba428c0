package bowmode

import (
	"fmt"
	"strings"
	"time"

	"github.com/dshills/quickdraw/internal/game"
)

// Mode selects how the hotkey drives bow mode.
type Mode int

const (
	// ModeHold keeps the bow while the hotkey is held.
	ModeHold Mode = iota
	// ModePress toggles bow mode on each press.
	ModePress
	// ModeSmart tells taps from holds by a time threshold.
	ModeSmart
)

// String returns the mode name used in config files.
func (m Mode) String() string {
	switch m {
	case ModeHold:
		return "hold"
	case ModePress:
		return "press"
	case ModeSmart:
		return "smart"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m >= ModeHold && m <= ModeSmart
}

// ParseMode parses a mode name or its numeric form ("0", "1", "2").
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hold", "0":
		return ModeHold, nil
	case "press", "toggle", "1":
		return ModePress, nil
	case "smart", "2":
		return ModeSmart, nil
	}
	return ModeHold, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Phase is the controller's coarse state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseEquipping
	PhaseActive
	PhaseExitPending
	PhaseRestoring
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseEquipping:
		return "equipping"
	case PhaseActive:
		return "active"
	case PhaseExitPending:
		return "exit-pending"
	case PhaseRestoring:
		return "restoring"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// PhaseChangeCallback is called after every phase transition.
type PhaseChangeCallback func(from, to Phase)

// Timing constants.
const (
	DefaultSmartThreshold = 180 * time.Millisecond
	DefaultMaxEquipWait   = 3 * time.Second

	// SkipAnimationWindow is how long the skip-equip-animation graph
	// variable stays set after entry.
	SkipAnimationWindow = 500 * time.Millisecond

	// SheatheFallback bounds the wait for the sheathe-complete tag.
	SheatheFallback = time.Second

	// UnequipReenable is how long after a restore the unequip gate stays
	// closed.
	UnequipReenable = 500 * time.Millisecond

	// MinReleaseHeld is the held time reported on a synthetic release when
	// the pump never accumulated any.
	MinReleaseHeld = 0.1

	postTapDelay = 100 * time.Millisecond
	postTapHold  = 150 * time.Millisecond
)

// GraphSkipEquipAnimation is the animation graph variable toggled by the
// skip-equip-animation option.
const GraphSkipEquipAnimation = "SkipEquipAnimation"

// Settings is the controller's configuration.
type Settings struct {
	Mode Mode

	// AutoDraw draws the bow on entry and pumps synthetic attack events
	// while the hotkey stays held in Hold style.
	AutoDraw bool

	// SheatheDelay is the Hold-style grace period between hotkey release
	// and restoration.
	SheatheDelay time.Duration

	// SmartThreshold separates a Smart tap from a hold.
	SmartThreshold time.Duration

	// MaxEquipWait bounds how long an exit waits for the bow's equip
	// animation before restoring anyway.
	MaxEquipWait time.Duration

	// ChosenBow is the persisted base item of the chosen bow. It seeds the
	// live instance lookup whenever none is remembered.
	ChosenBow game.FormID

	// PreferredArrow is equipped on entry and unequipped on exit when no
	// ammo was held before.
	PreferredArrow game.FormID

	SkipEquipAnimation bool
	BlockUnequip       bool

	// HideItems unequips worn armor whose base is in Hidden on entry.
	HideItems bool
	Hidden    []game.FormID
}

// DefaultSettings returns the stock settings.
func DefaultSettings() Settings {
	return Settings{
		Mode:           ModeHold,
		AutoDraw:       true,
		SmartThreshold: DefaultSmartThreshold,
		MaxEquipWait:   DefaultMaxEquipWait,
		BlockUnequip:   true,
	}
}

func (s Settings) normalized() Settings {
	if !s.Mode.Valid() {
		s.Mode = ModeHold
	}
	if s.SmartThreshold <= 0 {
		s.SmartThreshold = DefaultSmartThreshold
	}
	if s.MaxEquipWait <= 0 {
		s.MaxEquipWait = DefaultMaxEquipWait
	}
	if s.SheatheDelay < 0 {
		s.SheatheDelay = 0
	}
	return s
}
