package sim

import (
	"sync"

	"github.com/dshills/quickdraw/internal/game"
)

type entry struct {
	game.Item
	shield bool
}

// Actor is a simulated player character.
type Actor struct {
	mu sync.Mutex

	entries []*entry
	right   *entry
	left    *entry
	ammo    *entry

	drawn  bool
	combat bool
	graph  map[string]bool

	world *World
}

func newActor(w *World) *Actor {
	return &Actor{graph: make(map[string]bool), world: w}
}

// ItemSpec describes an item to add.
type ItemSpec struct {
	Base   game.FormID
	Kind   game.Kind
	Weapon game.WeaponType
	Name   string
	Count  int
	Shield bool
}

// Add puts a new stack in the inventory and returns its ref.
func (a *Actor) Add(spec ItemSpec) game.Ref {
	a.mu.Lock()
	defer a.mu.Unlock()
	if spec.Count <= 0 {
		spec.Count = 1
	}
	e := &entry{
		Item: game.Item{
			Ref:    game.Ref{Base: spec.Base, Instance: game.NewInstanceID()},
			Kind:   spec.Kind,
			Weapon: spec.Weapon,
			Name:   spec.Name,
			Count:  spec.Count,
		},
		shield: spec.Shield,
	}
	a.entries = append(a.entries, e)
	return e.Ref
}

// Remove drops a stack from the inventory, unequipping it first.
func (a *Actor) Remove(r game.Ref) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i, e := range a.entries {
		if e.Ref.Same(r) {
			a.clearSlotsLocked(e)
			a.entries = append(a.entries[:i], a.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Inventory implements game.Actor.
func (a *Actor) Inventory(filter func(game.Item) bool) []game.Item {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]game.Item, 0, len(a.entries))
	for _, e := range a.entries {
		it := a.viewLocked(e)
		if filter == nil || filter(it) {
			out = append(out, it)
		}
	}
	return out
}

// Item returns the current view of one stack.
func (a *Actor) Item(r game.Ref) (game.Item, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if e := a.findLocked(r); e != nil {
		return a.viewLocked(e), true
	}
	return game.Item{}, false
}

func (a *Actor) viewLocked(e *entry) game.Item {
	it := e.Item
	switch e.Kind {
	case game.KindWeapon:
		it.Worn = a.right == e
		it.WornLeft = a.left == e
	case game.KindLight:
		it.WornLeft = a.left == e
	case game.KindAmmo:
		it.Worn = a.ammo == e
	}
	return it
}

// Equipped implements game.Actor. Shields are armor and are not reported.
func (a *Actor) Equipped(slot game.Slot) (game.Ref, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	var e *entry
	switch slot {
	case game.SlotRight:
		e = a.right
	case game.SlotLeft:
		e = a.left
	}
	if e == nil {
		return game.Ref{}, false
	}
	return e.Ref, true
}

// EquippedAmmo implements game.Actor.
func (a *Actor) EquippedAmmo() (game.Ref, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.ammo == nil {
		return game.Ref{}, false
	}
	return a.ammo.Ref, true
}

// SetDisplayName implements game.Actor.
func (a *Actor) SetDisplayName(id game.InstanceID, name string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, e := range a.entries {
		if e.Instance == id {
			e.CustomName = name
			return true
		}
	}
	return false
}

// IsWeaponDrawn implements game.Actor.
func (a *Actor) IsWeaponDrawn() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.drawn
}

// SetWeaponDrawn implements game.Actor and schedules the matching tag.
func (a *Actor) SetWeaponDrawn(drawn bool) {
	a.mu.Lock()
	changed := a.drawn != drawn
	a.drawn = drawn
	a.mu.Unlock()
	if !changed || a.world == nil {
		return
	}
	if drawn {
		a.world.emitAfter(a.world.EquipDelay, game.TagEquipComplete)
	} else {
		a.world.emitAfter(a.world.SheatheDelay, game.TagSheatheComplete)
	}
}

// IsInCombat implements game.Actor.
func (a *Actor) IsInCombat() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.combat
}

// SetInCombat toggles the combat flag.
func (a *Actor) SetInCombat(v bool) {
	a.mu.Lock()
	a.combat = v
	a.mu.Unlock()
}

// SetGraphVariableBool implements game.Actor.
func (a *Actor) SetGraphVariableBool(name string, value bool) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.graph[name] = value
	return true
}

// GraphVariable reads back a graph variable.
func (a *Actor) GraphVariable(name string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.graph[name]
}

func (a *Actor) findLocked(r game.Ref) *entry {
	var fallback *entry
	for _, e := range a.entries {
		if e.Base != r.Base {
			continue
		}
		if e.Instance == r.Instance {
			return e
		}
		if fallback == nil && r.Instance == game.NoInstance {
			fallback = e
		}
	}
	return fallback
}

func (a *Actor) clearSlotsLocked(e *entry) {
	if a.right == e {
		a.right = nil
	}
	if a.left == e {
		a.left = nil
	}
	if a.ammo == e {
		a.ammo = nil
	}
	e.Worn = false
	e.WornLeft = false
}

func twoHanded(e *entry) bool {
	if e == nil || e.Kind != game.KindWeapon {
		return false
	}
	switch e.Weapon {
	case game.WeaponTwoHand, game.WeaponBow, game.WeaponCrossbow:
		return true
	}
	return false
}

// dropShieldsLocked unequips worn shields.
func (a *Actor) dropShieldsLocked() {
	for _, e := range a.entries {
		if e.shield && e.Worn {
			e.Worn = false
		}
	}
}
