package equip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/quickdraw/internal/game"
	"github.com/dshills/quickdraw/internal/sim"
)

func TestTaggerApply(t *testing.T) {
	tg := NewTagger("")
	tests := []struct {
		in, want string
	}{
		{"Hunting Bow", "Hunting Bow (chosen)"},
		{"Hunting Bow (chosen)", "Hunting Bow (chosen)"},
		{"Hunting Bow (Chosen)  ", "Hunting Bow (chosen)"},
		{"Elven Bow (Legendary)", "Elven Bow (chosen)"},
		{"Elven Bow (chosen) (Fine)", "Elven Bow (chosen)"},
		{"Elven Bow (Fine) (chosen)", "Elven Bow (chosen)"},
		{"Bow of Fire (Enchanted)", "Bow of Fire (Enchanted) (chosen)"},
		{"Longbow (Flawless)(chosen)", "Longbow (chosen)"},
		{"", "(chosen)"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			once := tg.Apply(tt.in)
			assert.Equal(t, tt.want, once)
			assert.Equal(t, once, tg.Apply(once), "apply must be idempotent")
		})
	}
}

func TestTaggerRemove(t *testing.T) {
	tg := NewTagger(" (chosen)")
	assert.Equal(t, "Hunting Bow", tg.Remove("Hunting Bow (chosen)"))
	assert.Equal(t, "Hunting Bow", tg.Remove("Hunting Bow"))
	assert.Equal(t, "Bow (Custom)", tg.Remove("Bow (Custom) (chosen)"))
	assert.Equal(t, "Elven Bow", tg.Remove("Elven Bow (Exquisite) (chosen)"))
	assert.Equal(t, "", tg.Remove(" (chosen)"))
	assert.True(t, tg.IsTagged("Bow (CHOSEN) (Epic)"))
	assert.False(t, tg.IsTagged("Bow (Epic)"))
}

func TestTaggerLocalizedMarker(t *testing.T) {
	tg := NewTagger(" [Auswahl]")
	assert.Equal(t, "Jagdbogen [Auswahl]", tg.Apply("Jagdbogen [auswahl]"))
	assert.Equal(t, "Jagdbogen", tg.Remove("Jagdbogen [Auswahl] (Legendary)"))
}

func TestTagAndUntagInstance(t *testing.T) {
	w := sim.NewWorld()
	a := w.Actor()
	s := sim.PopulateSample(a)
	tg := NewTagger("")

	bow, ok := a.Item(s.HuntingBow)
	require.True(t, ok)
	assert.True(t, tg.Tag(a, bow))

	bow, _ = a.Item(s.HuntingBow)
	assert.Equal(t, "Hunting Bow (chosen)", bow.CustomName)
	assert.False(t, tg.Tag(a, bow), "second tag is a no-op")

	assert.True(t, tg.Untag(a, bow))
	bow, _ = a.Item(s.HuntingBow)
	assert.Empty(t, bow.CustomName, "override deleted when only the base name is left")
	assert.Equal(t, "Hunting Bow", bow.DisplayName())
}

func TestUntagKeepsPlayerRename(t *testing.T) {
	w := sim.NewWorld()
	a := w.Actor()
	s := sim.PopulateSample(a)
	tg := NewTagger("")

	a.SetDisplayName(s.ElvenBow.Instance, "Moonlight (chosen)")
	bow, _ := a.Item(s.ElvenBow)
	assert.True(t, tg.Untag(a, bow))

	bow, _ = a.Item(s.ElvenBow)
	assert.Equal(t, "Moonlight", bow.CustomName)
}

func TestResolveChosenFallbacks(t *testing.T) {
	w := sim.NewWorld()
	a := w.Actor()
	s := sim.PopulateSample(a)
	tg := NewTagger("")
	st := NewState()

	_, _, err := ResolveChosen(a, st, tg)
	assert.ErrorIs(t, err, ErrNoChosenBow)

	bow, _ := a.Item(s.HuntingBow)
	require.NoError(t, Choose(a, st, tg, bow))

	it, src, err := ResolveChosen(a, st, tg)
	require.NoError(t, err)
	assert.Equal(t, ResolveExact, src)
	assert.Equal(t, s.HuntingBow, it.Ref)

	// A second stack of the same bow carries the tag after the first is sold.
	second := a.Add(sim.ItemSpec{Base: sim.FormHuntingBow, Kind: game.KindWeapon, Weapon: game.WeaponBow, Name: "Hunting Bow"})
	third := a.Add(sim.ItemSpec{Base: sim.FormHuntingBow, Kind: game.KindWeapon, Weapon: game.WeaponBow, Name: "Hunting Bow"})
	a.SetDisplayName(third.Instance, "Hunting Bow (chosen)")
	require.True(t, a.Remove(s.HuntingBow))

	it, src, err = ResolveChosen(a, st, tg)
	require.NoError(t, err)
	assert.Equal(t, ResolveTagged, src)
	assert.Equal(t, third, it.Ref)
	assert.Equal(t, third, st.Chosen)

	// Without any tag the first stack is picked and re-tagged.
	require.True(t, a.Remove(third))
	it, src, err = ResolveChosen(a, st, tg)
	require.NoError(t, err)
	assert.Equal(t, ResolveFirst, src)
	assert.Equal(t, second, it.Ref)
	tagged, _ := a.Item(second)
	assert.Equal(t, "Hunting Bow (chosen)", tagged.CustomName)

	require.True(t, a.Remove(second))
	_, _, err = ResolveChosen(a, st, tg)
	assert.ErrorIs(t, err, ErrNoChosenBow)
}

func TestChooseMovesMarker(t *testing.T) {
	w := sim.NewWorld()
	a := w.Actor()
	s := sim.PopulateSample(a)
	tg := NewTagger("")
	st := NewState()

	hunting, _ := a.Item(s.HuntingBow)
	elven, _ := a.Item(s.ElvenBow)
	require.NoError(t, Choose(a, st, tg, hunting))
	require.NoError(t, Choose(a, st, tg, elven))

	hunting, _ = a.Item(s.HuntingBow)
	elven, _ = a.Item(s.ElvenBow)
	assert.Empty(t, hunting.CustomName)
	assert.Equal(t, "Elven Bow (chosen)", elven.CustomName)
	assert.Equal(t, s.ElvenBow, st.Chosen)

	sword, _ := a.Item(s.Sword)
	assert.ErrorIs(t, Choose(a, st, tg, sword), ErrNotRanged)

	Unchoose(a, st, tg)
	elven, _ = a.Item(s.ElvenBow)
	assert.Empty(t, elven.CustomName)
	assert.True(t, st.Chosen.IsZero())
}
