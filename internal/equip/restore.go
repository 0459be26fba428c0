package equip

import "github.com/dshills/quickdraw/internal/game"

// RestoreOptions tune Restore.
type RestoreOptions struct {
	// Bow is the bow to drop when both hands were empty before entry.
	Bow game.Ref

	// PreferredArrow is unequipped when no ammo was held before entry.
	PreferredArrow game.FormID

	Flags game.EquipFlags
}

// RestoreReport lists what Restore did, for logging and tests.
type RestoreReport struct {
	Right       game.Ref
	Left        game.Ref
	Ammo        game.Ref
	UnequipBow  bool
	UnequipAmmo game.Ref
	Armor       []game.Ref
	Missing     []game.Ref
}

// Restore re-equips the loadout recorded in s and clears the snapshot.
// Stale references fall back to any instance of the same base; items that no
// longer exist are reported in Missing and skipped.
func Restore(a game.Actor, em game.EquipManager, s *State, opts RestoreOptions) (RestoreReport, error) {
	var rep RestoreReport
	if a == nil || em == nil {
		return rep, ErrNoCollaborator
	}

	right, okRight := Lookup(a, s.PrevRight)
	left, okLeft := Lookup(a, s.PrevLeft)
	if !okRight && !s.PrevRight.IsZero() {
		rep.Missing = append(rep.Missing, s.PrevRight)
	}
	if !okLeft && !s.PrevLeft.IsZero() {
		rep.Missing = append(rep.Missing, s.PrevLeft)
	}

	if okRight {
		em.Equip(a, right.Ref, game.SlotRight, opts.Flags)
		rep.Right = right.Ref
	}
	if okLeft {
		em.Equip(a, left.Ref, game.SlotLeft, opts.Flags)
		rep.Left = left.Ref
	}
	if s.HandsWereEmpty() && !opts.Bow.IsZero() {
		if bow, ok := Lookup(a, opts.Bow); ok {
			em.Unequip(a, bow.Ref, game.SlotRight, opts.Flags)
			rep.UnequipBow = true
		}
	}

	current, hasAmmo := a.EquippedAmmo()
	switch {
	case !s.PrevAmmo.IsZero():
		if ammo, ok := Lookup(a, s.PrevAmmo); ok {
			if !hasAmmo || !current.Same(ammo.Ref) {
				em.Equip(a, ammo.Ref, game.SlotDefault, opts.Flags)
			}
			rep.Ammo = ammo.Ref
		} else {
			rep.Missing = append(rep.Missing, s.PrevAmmo)
		}
	case opts.PreferredArrow != game.NoForm && hasAmmo && current.Base == opts.PreferredArrow:
		em.Unequip(a, current, game.SlotDefault, opts.Flags)
		rep.UnequipAmmo = current
	}

	for _, r := range s.ArmorRestore {
		if rep.Left.Same(r) {
			continue
		}
		it, ok := Lookup(a, r)
		if !ok {
			rep.Missing = append(rep.Missing, r)
			continue
		}
		if it.Worn || it.WornLeft {
			continue
		}
		em.Equip(a, it.Ref, game.SlotDefault, opts.Flags)
		rep.Armor = append(rep.Armor, it.Ref)
	}

	s.ClearSnapshot()
	return rep, nil
}
