package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/quickdraw/internal/game"
)

func TestBowPushesOffHandItemsOff(t *testing.T) {
	w := NewWorld()
	a := w.Actor()
	s := PopulateSample(a)
	em := w.Manager()

	em.Equip(a, s.Sword, game.SlotRight, game.FlagsImmediate)
	em.Equip(a, s.Shield, game.SlotDefault, game.FlagsImmediate)
	em.Equip(a, s.Helmet, game.SlotDefault, game.FlagsImmediate)

	shield, _ := a.Item(s.Shield)
	require.True(t, shield.Worn)

	em.Equip(a, s.HuntingBow, game.SlotRight, game.FlagsImmediate)

	right, ok := a.Equipped(game.SlotRight)
	require.True(t, ok)
	assert.Equal(t, s.HuntingBow, right)

	shield, _ = a.Item(s.Shield)
	helmet, _ := a.Item(s.Helmet)
	assert.False(t, shield.Worn)
	assert.True(t, helmet.Worn)
}

func TestTorchSharesLeftHand(t *testing.T) {
	w := NewWorld()
	a := w.Actor()
	s := PopulateSample(a)
	em := w.Manager()

	em.Equip(a, s.Torch, game.SlotLeft, game.FlagsImmediate)
	left, ok := a.Equipped(game.SlotLeft)
	require.True(t, ok)
	assert.Equal(t, s.Torch, left)

	em.Equip(a, s.Greatsword, game.SlotRight, game.FlagsImmediate)
	_, ok = a.Equipped(game.SlotLeft)
	assert.False(t, ok)
}

func TestAdvanceEmitsTagsInOrder(t *testing.T) {
	w := NewWorld()
	a := w.Actor()

	a.SetWeaponDrawn(true)
	assert.Empty(t, w.Advance(0.1))
	assert.Equal(t, []string{game.TagEquipComplete}, w.Advance(DefaultEquipDelay))

	a.SetWeaponDrawn(false)
	a.SetWeaponDrawn(false)
	assert.Equal(t, []string{game.TagSheatheComplete}, w.Advance(1))
}

func TestMissingSingletons(t *testing.T) {
	w := NewWorld()
	w.SetPlayerPresent(false)
	w.SetEquipManagerPresent(false)
	assert.Nil(t, w.Player())
	assert.Nil(t, w.EquipManager())

	w.SetPlayerPresent(true)
	assert.NotNil(t, w.Player())
}

func TestSwapWhileDrawnReplaysEquipTag(t *testing.T) {
	w := NewWorld()
	a := w.Actor()
	s := PopulateSample(a)
	em := w.Manager()

	em.Equip(a, s.Sword, game.SlotRight, game.FlagsImmediate)
	assert.Empty(t, w.Advance(1))

	a.SetWeaponDrawn(true)
	w.Advance(1)

	em.Equip(a, s.HuntingBow, game.SlotRight, game.FlagsImmediate)
	assert.Equal(t, []string{game.TagEquipComplete}, w.Advance(1))

	em.Equip(a, s.IronArrows, game.SlotDefault, game.FlagsImmediate)
	assert.Empty(t, w.Advance(1))
}
