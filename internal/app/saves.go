package app

import (
	"github.com/dshills/quickdraw/internal/bowmode"
	"github.com/dshills/quickdraw/internal/event"
	"github.com/dshills/quickdraw/internal/game"
	"github.com/dshills/quickdraw/internal/prefs"
)

type prefsEntry = prefs.Entry

// setOverride edits the loaded save's remembered choices, if any.
func (a *Application) setOverride(fn func(*prefsEntry)) {
	if a.override != nil {
		fn(a.override)
	}
}

// OnGameLoaded is called after a save finishes loading. Choices
// remembered for that save override the config; the chosen instance is
// re-tagged when it is in the inventory.
func (a *Application) OnGameLoaded(save string) {
	if a.controller.Phase() != bowmode.PhaseIdle {
		a.ForceExit()
	}
	a.save = prefs.NormalizeSaveKey(save)
	a.override = nil
	if e, ok := a.prefs.Get(a.save); ok {
		a.override = &e
		a.log.Info().Str("save", a.save).Stringer("bow", e.ChosenBow).Msg("save preferences applied")
		a.hub.Notify(event.TopicPrefsApplied, e)
	}
	a.apply(a.cfg)
	a.retagChosen()
}

// retagChosen puts the marker back on the chosen bow after a load.
func (a *Application) retagChosen() {
	if a.controller.Settings().ChosenBow == game.NoForm {
		return
	}
	if _, err := a.controller.RetagChosenBow(); err != nil {
		a.log.Debug().Err(err).Msg("chosen bow not re-tagged")
	}
}

// OnGameSaved records the current choices for save and writes the prefs
// file.
func (a *Application) OnGameSaved(save string) error {
	key := prefs.NormalizeSaveKey(save)
	if key == "" {
		return ErrNoSave
	}
	s := a.controller.Settings()
	if err := a.prefs.Upsert(key, s.ChosenBow, s.PreferredArrow); err != nil {
		return err
	}
	a.save = key
	if e, ok := a.prefs.Get(key); ok {
		a.override = &e
	}
	return a.prefs.Save()
}

// OnSaveDeleted forgets a deleted save.
func (a *Application) OnSaveDeleted(save string) error {
	key := prefs.NormalizeSaveKey(save)
	if key == "" {
		return ErrNoSave
	}
	if !a.prefs.Erase(key) {
		return nil
	}
	if key == a.save {
		a.override = nil
	}
	return a.prefs.Save()
}

// CurrentSave returns the normalized key of the loaded save.
func (a *Application) CurrentSave() string {
	return a.save
}
