// Package equip keeps the bookkeeping that makes bow mode reversible.
//
// On entry the controller records what the player held (right, left, ammo)
// and which worn armor the bow equip knocked off. On exit Restore puts all of
// it back, re-resolving every remembered instance against the live inventory
// because stacks can be dropped, sold or split while bow mode is active.
//
// The package also owns the "chosen" name tag: the chosen bow instance
// carries a visible marker in its display name, applied and removed through a
// pure string transform that never duplicates the marker or a quality suffix.
package equip
