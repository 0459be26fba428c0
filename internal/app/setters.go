package app

import (
	"github.com/dshills/quickdraw/internal/bowmode"
	"github.com/dshills/quickdraw/internal/config"
	"github.com/dshills/quickdraw/internal/equip"
	"github.com/dshills/quickdraw/internal/game"
	"github.com/dshills/quickdraw/internal/input/hotkey"
)

// apply pushes cfg into the detector and controller. Binding or mode
// changes reset the detector and the controller's hotkey runtime so no
// stale press survives the switch.
func (a *Application) apply(cfg config.Config) {
	prev := a.cfg
	a.cfg = cfg
	a.hotkeys = cfg.Hotkeys()

	s := cfg.Apply(a.controller.Settings())
	s.Hidden = a.hidden
	if a.override != nil {
		s.ChosenBow = a.override.ChosenBow
		s.PreferredArrow = a.override.PreferredArrow
	}
	a.controller.SetSettings(s)

	if prev.Mode != cfg.Mode || prev.Keyboard != cfg.Keyboard || prev.Gamepad != cfg.Gamepad ||
		prev.RequireExclusive != cfg.RequireExclusive {
		a.resetHotkeys()
	}
}

func (a *Application) resetHotkeys() {
	a.detector.Reset()
	a.controller.ResetHotkeyRuntime()
}

// update changes the stored config and applies the result. A failed save
// is logged; the in-memory change stands.
func (a *Application) update(fn func(*config.Config)) error {
	err := a.store.Update(config.SourceUI, fn)
	a.apply(a.store.Get())
	if err != nil {
		a.log.Warn().Err(err).Msg("config not saved")
	}
	return err
}

// SetMode changes the hotkey mode.
func (a *Application) SetMode(m bowmode.Mode) error {
	if !m.Valid() {
		return config.ErrInvalidMode
	}
	return a.update(func(c *config.Config) { c.Mode = m })
}

// SetKeyboardKeys binds up to three keyboard or mouse codes; -1 leaves a
// slot empty.
func (a *Application) SetKeyboardKeys(codes [hotkey.ComboSize]int) error {
	return a.update(func(c *config.Config) { c.Keyboard = codes })
}

// SetGamepadButtons binds up to three gamepad buttons; -1 leaves a slot
// empty.
func (a *Application) SetGamepadButtons(codes [hotkey.ComboSize]int) error {
	return a.update(func(c *config.Config) { c.Gamepad = codes })
}

// SetRequireExclusive toggles the exclusivity check.
func (a *Application) SetRequireExclusive(v bool) error {
	return a.update(func(c *config.Config) { c.RequireExclusive = v })
}

// SetAutoDraw toggles drawing the bow on entry.
func (a *Application) SetAutoDraw(v bool) error {
	return a.update(func(c *config.Config) { c.AutoDraw = v })
}

// SetSheatheDelay sets the exit grace period in seconds.
func (a *Application) SetSheatheDelay(seconds float64) error {
	if seconds < 0 {
		seconds = 0
	}
	return a.update(func(c *config.Config) { c.SheatheDelay = seconds })
}

// SetChosenBow marks r as the chosen bow. Only allowed while idle.
func (a *Application) SetChosenBow(r game.Ref) error {
	if err := a.controller.ChooseBow(r); err != nil {
		return err
	}
	base := a.controller.Settings().ChosenBow
	a.setOverride(func(e *prefsEntry) { e.ChosenBow = base })
	return a.update(func(c *config.Config) { c.ChosenBow = base })
}

// ClearChosenBow forgets the chosen bow and removes its marker.
func (a *Application) ClearChosenBow() error {
	if err := a.controller.ClearChosenBow(); err != nil {
		return err
	}
	a.setOverride(func(e *prefsEntry) { e.ChosenBow = game.NoForm })
	return a.update(func(c *config.Config) { c.ChosenBow = game.NoForm })
}

// ToggleChosenBow chooses r, or clears the choice when r is already
// chosen.
func (a *Application) ToggleChosenBow(r game.Ref) error {
	chosen, err := a.controller.ToggleChosenBow(r)
	if err != nil {
		return err
	}
	if !chosen {
		a.setOverride(func(e *prefsEntry) { e.ChosenBow = game.NoForm })
		return a.update(func(c *config.Config) { c.ChosenBow = game.NoForm })
	}
	base := a.controller.Settings().ChosenBow
	a.setOverride(func(e *prefsEntry) { e.ChosenBow = base })
	return a.update(func(c *config.Config) { c.ChosenBow = base })
}

// SetPreferredArrow sets the ammo equipped on entry; NoForm clears it.
func (a *Application) SetPreferredArrow(id game.FormID) error {
	a.setOverride(func(e *prefsEntry) { e.PreferredArrow = id })
	return a.update(func(c *config.Config) { c.PreferredArrow = id })
}

// SetMenuOpen marks input as blocked while a menu is up. The detector
// treats the combo as released and drops any pending confirmation.
func (a *Application) SetMenuOpen(open bool) {
	if a.menuOpen.Swap(open) != open {
		a.log.Debug().Bool("open", open).Msg("menu state")
	}
}

// MenuOpen reports whether input is blocked.
func (a *Application) MenuOpen() bool {
	return a.menuOpen.Load()
}

// RequestCapture arms a one-shot capture of the next pressed code.
func (a *Application) RequestCapture() {
	a.capture.Request()
}

// CancelCapture disarms a pending capture.
func (a *Application) CancelCapture() {
	a.capture.Cancel()
}

// CaptureArmed reports whether a capture is waiting.
func (a *Application) CaptureArmed() bool {
	return a.capture.Armed()
}

// PollCapture returns the captured code once. Keyboard and mouse codes
// are non-negative; gamepad button b is -(b+1).
func (a *Application) PollCapture() (int, bool) {
	return a.capture.Poll()
}

// ReloadConfig rereads the config file and applies it.
func (a *Application) ReloadConfig() error {
	if a.store.Path() == "" {
		return ErrNoConfigPath
	}
	if _, err := a.store.Load(); err != nil {
		return err
	}
	a.apply(a.store.Get())
	return nil
}

// Tagger returns the marker transform in use.
func (a *Application) Tagger() equip.Tagger {
	return a.controller.Tagger()
}
