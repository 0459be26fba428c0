// Package input tracks raw button state and carries synthetic input.
//
// The engine delivers one Batch of button events per poll. The core keeps a
// State of what is held down per device class, lets the binding UI Capture
// the next pressed code, and queues synthetic attack events that are spliced
// in front of the next poll's real events.
//
// # Device classes
//
// Keyboard and mouse form a single class so a hotkey may mix them; gamepad
// buttons form the other. Mouse buttons are offset past the 256 keyboard scan
// codes inside the keyboard class.
//
// # Ordering
//
// Synthetic events queued during a tick are never seen by that tick. The
// next poll drains the queue and places its events ahead of the real ones:
//
//	batch = queue.Splice(realEvents)
package input
