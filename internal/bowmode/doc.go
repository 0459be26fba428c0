// Package bowmode implements the quick-draw bow state machine.
//
// A Controller swaps the player's loadout for the chosen bow when the
// hotkey is accepted and puts it back afterwards. The hotkey detector feeds
// it press and release edges; the tick loop feeds it elapsed time and
// animation tags. Phases:
//
//	Idle         nothing swapped
//	Equipping    equip-manager calls for the bow in flight
//	Active       bow in hand
//	ExitPending  grace period or waiting for the bow's equip animation
//	Restoring    putting the previous loadout back (possibly after a sheathe)
//
// Three hotkey styles are supported. Hold keeps the bow while the hotkey is
// down. Press toggles. Smart decides per press: a hold past the threshold
// behaves like Hold, a tap during an exit grace period ends it at once.
//
// While auto-draw is on, holding the hotkey in Hold style draws the bow for
// the player by pumping synthetic attack events into the input stream. All
// timers are tick-driven; the controller never sleeps or spawns goroutines.
// Everything except AllowUnequip must be called from the tick context.
package bowmode
