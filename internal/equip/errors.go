package equip

import "errors"

var (
	// ErrNoChosenBow is returned when no inventory instance matches the chosen bow.
	ErrNoChosenBow = errors.New("chosen bow not in inventory")

	// ErrNoCollaborator is returned when the player or equip manager is missing.
	ErrNoCollaborator = errors.New("player or equip manager unavailable")

	// ErrNotRanged is returned when a non-bow item is chosen.
	ErrNotRanged = errors.New("item is not a bow or crossbow")
)
