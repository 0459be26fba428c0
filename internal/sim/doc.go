// Package sim is an in-memory stand-in for the game engine.
//
// It implements the game contracts closely enough to exercise the core:
// two-handed weapons push off-hand items off, shields and torches share the
// left hand, equip and sheathe motions emit animation tags after a delay,
// and every equip-manager call is recorded.
package sim
