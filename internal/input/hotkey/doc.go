// Package hotkey decides, tick by tick, whether the configured hotkey combo
// is accepted.
//
// A combo is up to three codes per device class that must all be down at
// once. With exclusivity required, a fresh press is only accepted after a
// short confirmation window during which no unrelated code is held; a tap
// that is released inside the window still counts.
package hotkey
