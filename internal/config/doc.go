// Package config holds the quick-draw configuration and its file store.
//
// The file is TOML with three sections:
//
//	[hotkey]
//	mode = "hold"              # hold, press or smart
//	keyboard = [47, -1, -1]    # DirectInput scan codes, mouse buttons at 256+
//	gamepad = [-1, -1, -1]     # pad button indices
//	require_exclusive = true
//	smart_threshold = 0.18     # seconds
//
//	[bow]
//	chosen = "0x00013985"      # base FormID of the chosen bow
//	preferred_arrow = ""
//	auto_draw = true
//	sheathe_delay = 0.0        # seconds
//
//	[patches]
//	skip_equip_animation = false
//	hide_items = false
//	block_unequip = true
//
// Every field is decoded on its own. A missing or malformed field takes its
// default and is reported as a FieldError; a bad field never prevents the
// rest of the file from loading. Environment variables prefixed QUICKDRAW_
// override the file (QUICKDRAW_HOTKEY_MODE=press).
package config
