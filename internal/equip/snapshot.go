package equip

import (
	"slices"

	"github.com/dshills/quickdraw/internal/game"
)

// CaptureWornArmorSnapshot lists every worn armor or off-hand light, in
// inventory order.
func CaptureWornArmorSnapshot(a game.Actor) []game.Ref {
	items := game.Items(a, game.Item.IsWornArmor)
	out := make([]game.Ref, 0, len(items))
	for _, it := range items {
		out = append(out, it.Ref)
	}
	return out
}

// DiffArmorSnapshot returns the entries of before that are missing from
// after, keeping before's order.
func DiffArmorSnapshot(before, after []game.Ref) []game.Ref {
	var out []game.Ref
	for _, r := range before {
		if !containsRef(after, r) {
			out = append(out, r)
		}
	}
	return out
}

// ApplyHiddenItemsPatch unequips worn armor whose base is in hidden (sorted
// ascending) and records it in s for restoration. Items already tracked are
// left alone. It returns the refs it unequipped.
func ApplyHiddenItemsPatch(a game.Actor, em game.EquipManager, hidden []game.FormID, s *State) []game.Ref {
	if a == nil || em == nil || len(hidden) == 0 {
		return nil
	}
	var hid []game.Ref
	for _, it := range a.Inventory(game.Item.IsWornArmor) {
		if _, ok := slices.BinarySearch(hidden, it.Base); !ok {
			continue
		}
		if containsRef(s.ArmorRestore, it.Ref) {
			continue
		}
		em.Unequip(a, it.Ref, game.SlotDefault, game.FlagsImmediate)
		s.TrackArmor(it.Ref)
		hid = append(hid, it.Ref)
	}
	return hid
}
