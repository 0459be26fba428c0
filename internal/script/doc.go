// Package script runs Lua scenario scripts against a simulated game.
//
// Scripts get a small global API for driving the player and checking the
// result:
//
//	press("V")              -- hold a button (key name, "Mouse1", "pad:LB")
//	release("V")
//	tap("Mouse1", 0.1)      -- press, wait, release
//	tick(0.5)               -- advance time in seconds
//	anim("EnableBumper")    -- inject an animation tag
//	power("werewolf")
//	mode("smart")
//	equip("Iron Sword")     -- optional hand: "right", "left"
//	choose("Hunting Bow")
//	drawn(true); combat(false)
//	phase()                 -- "idle", "active", ...
//	equipped()              -- {right=, left=, ammo=, drawn=, combat=}
//	status()                -- {pumping=, bow_equipped=, exit_pending=, ...}
//	expect(phase() == "active", "bow mode entered")
//	log("message")
//
// Each Run uses a fresh interpreter with only the base, table, string and
// math libraries.
package script
