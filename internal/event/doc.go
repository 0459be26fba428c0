// Package event is the single dispatch point between the host's event
// sources and the core.
//
// Listeners register by capability rather than by type: anything with an
// OnInput method receives input batches, anything with an OnAnimationEvent
// method receives the player's animation tags, and anything with an OnNotice
// method receives core notices (phase changes, config reloads, captured
// bindings). One value may implement several capabilities and is registered
// once for each.
//
// Dispatch is synchronous and happens on the caller's goroutine, in
// registration order. A panicking listener is recovered and reported to the
// hub's panic handler; delivery continues with the next listener.
//
// # Topics
//
// Notices carry a dot-separated topic:
//
//	bowmode.phase      phase transition (payload PhaseChange)
//	config.reloaded    config file re-read (payload is the new config)
//	hotkey.captured    binding capture finished (payload Captured)
//	prefs.applied      per-save preferences applied (payload is the save key)
package event
