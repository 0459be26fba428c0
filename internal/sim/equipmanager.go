package sim

import (
	"sync"

	"github.com/dshills/quickdraw/internal/game"
)

// Op is a recorded equip-manager call kind.
type Op int

const (
	OpEquip Op = iota
	OpUnequip
)

// String returns the op name.
func (o Op) String() string {
	if o == OpUnequip {
		return "unequip"
	}
	return "equip"
}

// Call is one recorded equip-manager call.
type Call struct {
	Op    Op
	Ref   game.Ref
	Slot  game.Slot
	Flags game.EquipFlags
}

// EquipManager applies equip rules to a simulated Actor and records calls.
type EquipManager struct {
	mu    sync.Mutex
	calls []Call
}

// Calls returns a copy of the recorded calls.
func (m *EquipManager) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}

// ResetCalls forgets recorded calls.
func (m *EquipManager) ResetCalls() {
	m.mu.Lock()
	m.calls = nil
	m.mu.Unlock()
}

func (m *EquipManager) record(c Call) {
	m.mu.Lock()
	m.calls = append(m.calls, c)
	m.mu.Unlock()
}

// Equip implements game.EquipManager.
func (m *EquipManager) Equip(actor game.Actor, ref game.Ref, slot game.Slot, flags game.EquipFlags) {
	m.record(Call{Op: OpEquip, Ref: ref, Slot: slot, Flags: flags})
	a, ok := actor.(*Actor)
	if !ok {
		return
	}
	// Swapping the weapon in hand while drawn replays the draw animation.
	if a.equipLocked(ref, slot) && a.world != nil {
		a.world.emitAfter(a.world.EquipDelay, game.TagEquipComplete)
	}
}

// equipLocked applies the equip rules and reports whether a weapon went into
// a hand while drawn.
func (a *Actor) equipLocked(ref game.Ref, slot game.Slot) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	e := a.findLocked(ref)
	if e == nil {
		return false
	}
	switch e.Kind {
	case game.KindWeapon:
		if twoHanded(e) {
			a.clearSlotsLocked(e)
			a.right = e
			a.left = nil
			a.dropShieldsLocked()
			return a.drawn
		}
		if slot == game.SlotLeft {
			if a.right == e || twoHanded(a.right) {
				a.right = nil
			}
			a.left = e
			a.dropShieldsLocked()
			return a.drawn
		}
		if a.left == e {
			a.left = nil
		}
		a.right = e
		return a.drawn
	case game.KindLight:
		if twoHanded(a.right) {
			a.right = nil
		}
		a.left = e
		a.dropShieldsLocked()
	case game.KindArmor:
		if e.shield {
			if twoHanded(a.right) {
				a.right = nil
			}
			a.left = nil
		}
		e.Worn = true
	case game.KindAmmo:
		a.ammo = e
	}
	return false
}

// Unequip implements game.EquipManager.
func (m *EquipManager) Unequip(actor game.Actor, ref game.Ref, slot game.Slot, flags game.EquipFlags) {
	m.record(Call{Op: OpUnequip, Ref: ref, Slot: slot, Flags: flags})
	a, ok := actor.(*Actor)
	if !ok {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	e := a.findLocked(ref)
	if e == nil {
		return
	}
	switch slot {
	case game.SlotRight:
		if a.right == e {
			a.right = nil
		}
	case game.SlotLeft:
		if a.left == e {
			a.left = nil
		}
	default:
		a.clearSlotsLocked(e)
	}
}
