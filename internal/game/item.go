package game

// Kind classifies an inventory entry.
type Kind int

const (
	KindOther Kind = iota
	KindWeapon
	KindArmor
	KindAmmo
	// KindLight covers torches, which occupy the off hand like a shield.
	KindLight
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindWeapon:
		return "weapon"
	case KindArmor:
		return "armor"
	case KindAmmo:
		return "ammo"
	case KindLight:
		return "light"
	default:
		return "other"
	}
}

// WeaponType refines KindWeapon entries.
type WeaponType int

const (
	WeaponNone WeaponType = iota
	WeaponOneHand
	WeaponTwoHand
	WeaponBow
	WeaponCrossbow
	WeaponStaff
)

// Item is a read-only view of one inventory entry.
type Item struct {
	Ref

	Kind   Kind
	Weapon WeaponType

	// Name is the base item's display name.
	Name string

	// CustomName is the per-instance display name override, or "".
	CustomName string

	Count int

	// Worn is set when the instance is equipped (right hand for weapons).
	Worn bool

	// WornLeft is set when the instance is equipped in the off hand.
	WornLeft bool
}

// DisplayName returns the per-instance override if present, else the base name.
func (i Item) DisplayName() string {
	if i.CustomName != "" {
		return i.CustomName
	}
	return i.Name
}

// IsRanged reports whether the item is a bow or crossbow.
func (i Item) IsRanged() bool {
	return i.Kind == KindWeapon && (i.Weapon == WeaponBow || i.Weapon == WeaponCrossbow)
}

// IsWornArmor reports whether the item is an equipped armor or light piece.
func (i Item) IsWornArmor() bool {
	return (i.Kind == KindArmor || i.Kind == KindLight) && (i.Worn || i.WornLeft)
}
