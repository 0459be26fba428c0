// Package game defines the contract between the quick-draw core and the
// host game engine.
//
// The core never reaches into engine internals. It talks to the player actor,
// the equip manager and the animation graph only through the interfaces in
// this package, and every lookup may come back empty: a nil Actor or nil
// EquipManager means the collaborator is not available yet and the caller
// should try again on a later tick.
//
// # Identity
//
// Items are identified by a base FormID (the item type, stable across saves)
// plus an InstanceID (one concrete stack in the inventory). InstanceIDs are
// opaque uuids handed out by the inventory; they never change while the stack
// exists, even if the inventory reorders its entries between polls.
package game
