package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/quickdraw/internal/bowmode"
	"github.com/dshills/quickdraw/internal/game"
	"github.com/dshills/quickdraw/internal/sim"
)

func displayName(t *testing.T, f *fixture, r game.Ref) string {
	t.Helper()
	it, ok := f.world.Actor().Item(r)
	require.True(t, ok)
	return it.DisplayName()
}

func TestSavePrefsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")

	f := newFixture(t, Options{PrefsPath: path})
	f.ready()
	assert.Contains(t, displayName(t, f, f.kit.HuntingBow), "(chosen)")
	require.NoError(t, f.app.SetPreferredArrow(sim.FormSteelArrow))
	require.NoError(t, f.app.OnGameSaved(`Saves\Save1.ess`))
	assert.Equal(t, "save1", f.app.CurrentSave())
	_, err := os.Stat(path)
	require.NoError(t, err)
	assert.ErrorIs(t, f.app.OnGameSaved(""), ErrNoSave)

	g := newFixture(t, Options{PrefsPath: path})
	assert.Equal(t, game.NoForm, g.app.Controller().Settings().ChosenBow)
	g.app.OnGameLoaded("save1.ESS")
	s := g.app.Controller().Settings()
	assert.Equal(t, sim.FormHuntingBow, s.ChosenBow)
	assert.Equal(t, sim.FormSteelArrow, s.PreferredArrow)
	assert.Contains(t, displayName(t, g, g.kit.HuntingBow), "(chosen)")

	// A config reload keeps the save's choices.
	require.NoError(t, g.app.SetAutoDraw(false))
	assert.Equal(t, sim.FormHuntingBow, g.app.Controller().Settings().ChosenBow)

	require.NoError(t, g.app.OnSaveDeleted("SAVE1"))
	assert.Zero(t, g.app.Prefs().Len())
	require.NoError(t, g.app.OnSaveDeleted("save1"))

	h := newFixture(t, Options{PrefsPath: path})
	h.app.OnGameLoaded("save1")
	assert.Equal(t, game.NoForm, h.app.Controller().Settings().ChosenBow)
}

func TestGameLoadDropsActiveBowMode(t *testing.T) {
	f := newFixture(t, Options{})
	f.ready()
	f.pressV()
	f.driver.Run(0.3)
	require.Equal(t, bowmode.PhaseActive, f.driver.Phase())

	f.app.OnGameLoaded("other")
	assert.Equal(t, bowmode.PhaseIdle, f.driver.Phase())
	assert.Contains(t, displayName(t, f, f.kit.HuntingBow), "(chosen)", "config bow re-tagged")
}

func TestToggleChosenBowPersists(t *testing.T) {
	f := newFixture(t, Options{})
	f.ready()

	require.NoError(t, f.app.ToggleChosenBow(f.kit.HuntingBow))
	assert.Equal(t, game.NoForm, f.app.Config().ChosenBow)
	assert.Equal(t, "Hunting Bow", displayName(t, f, f.kit.HuntingBow))

	require.NoError(t, f.app.ToggleChosenBow(f.kit.ElvenBow))
	assert.Equal(t, sim.FormElvenBow, f.app.Config().ChosenBow)
}

func TestGameLoadKeepsChosenCopy(t *testing.T) {
	f := newFixture(t, Options{})
	f.ready()
	second := f.world.Actor().Add(sim.ItemSpec{Base: sim.FormHuntingBow, Kind: game.KindWeapon, Weapon: game.WeaponBow, Name: "Hunting Bow"})
	require.NoError(t, f.app.SetChosenBow(second))

	f.app.OnGameLoaded("save1")
	assert.Equal(t, "Hunting Bow", displayName(t, f, f.kit.HuntingBow))
	assert.Equal(t, "Hunting Bow (chosen)", displayName(t, f, second))

	f.app.ForceExit()
	f.app.OnGameLoaded("save1")
	assert.Equal(t, "Hunting Bow", displayName(t, f, f.kit.HuntingBow))
	assert.Equal(t, "Hunting Bow (chosen)", displayName(t, f, second))

	f.pressV()
	f.driver.Run(0.3)
	require.Equal(t, bowmode.PhaseActive, f.driver.Phase())
	assert.Equal(t, second, f.right())
}
