package game

// Animation graph tags the core reacts to.
const (
	// TagEquipComplete fires once a drawn weapon finishes its equip animation.
	TagEquipComplete = "EnableBumper"
	// TagSheatheComplete fires when the sheathe motion is done.
	TagSheatheComplete = "WeaponSheathe"
	// TagWeaponSwing fires at the strike frame of a melee attack.
	TagWeaponSwing = "weaponSwing"
	// TagAttackStop fires when an attack is reset or interrupted.
	TagAttackStop = "attackStop"
	// TagBowReset fires when a bow draw is cancelled.
	TagBowReset = "bowReset"
)

// AttackUserEvent is the control name carried by attack button events.
const AttackUserEvent = "Right Attack/Block"

// Power identifies a transformation power.
type Power int

const (
	PowerNone Power = iota
	PowerWerewolf
	PowerVampireLord
)

// String returns the power name.
func (p Power) String() string {
	switch p {
	case PowerWerewolf:
		return "werewolf"
	case PowerVampireLord:
		return "vampire-lord"
	default:
		return "none"
	}
}

// ParsePower parses a power name as returned by String.
func ParsePower(s string) (Power, bool) {
	for _, p := range []Power{PowerWerewolf, PowerVampireLord, PowerNone} {
		if p.String() == s {
			return p, true
		}
	}
	return PowerNone, false
}

// IsTransformation reports whether activating the power replaces equipment.
func (p Power) IsTransformation() bool {
	return p == PowerWerewolf || p == PowerVampireLord
}
