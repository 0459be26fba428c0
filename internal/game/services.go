package game

// Slot selects which hand an equip call targets.
type Slot int

const (
	// SlotDefault lets the equip manager pick (armor, ammo).
	SlotDefault Slot = iota
	SlotRight
	SlotLeft
)

// String returns the slot name.
func (s Slot) String() string {
	switch s {
	case SlotRight:
		return "right"
	case SlotLeft:
		return "left"
	default:
		return "default"
	}
}

// EquipFlags mirror the knobs of the engine's equip manager.
type EquipFlags struct {
	// Queue defers the change to the equip manager's own queue.
	Queue bool
	// Force prevents the player from unequipping the item afterwards.
	Force bool
	// PlaySound plays the equip/unequip sound.
	PlaySound bool
	// ApplyNow applies the change to the 3D model this frame.
	ApplyNow bool
}

// Flag presets used by the core.
var (
	FlagsImmediate = EquipFlags{ApplyNow: true}
	FlagsAudible   = EquipFlags{PlaySound: true, ApplyNow: true}
)

// Actor is the player character as seen by the core.
type Actor interface {
	// Inventory returns the entries accepted by filter (all when nil).
	Inventory(filter func(Item) bool) []Item

	// Equipped returns the item held in the given hand.
	Equipped(slot Slot) (Ref, bool)

	// EquippedAmmo returns the equipped ammo stack.
	EquippedAmmo() (Ref, bool)

	// SetDisplayName replaces the per-instance name override.
	// An empty name deletes the override.
	SetDisplayName(id InstanceID, name string) bool

	IsWeaponDrawn() bool
	SetWeaponDrawn(drawn bool)
	IsInCombat() bool

	// SetGraphVariableBool sets an animation graph variable.
	SetGraphVariableBool(name string, value bool) bool
}

// EquipManager issues equip and unequip commands.
type EquipManager interface {
	Equip(actor Actor, ref Ref, slot Slot, flags EquipFlags)
	Unequip(actor Actor, ref Ref, slot Slot, flags EquipFlags)
}

// World resolves the engine singletons. Either method may return nil while
// the engine is loading or between saves.
type World interface {
	Player() Actor
	EquipManager() EquipManager
}

// Items is a convenience wrapper that tolerates a nil actor.
func Items(a Actor, filter func(Item) bool) []Item {
	if a == nil {
		return nil
	}
	return a.Inventory(filter)
}
