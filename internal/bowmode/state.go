package bowmode

import "time"

// smartState tracks a Smart-style press that is not yet a tap or a hold.
type smartState struct {
	pending bool
	held    float64
}

// exitState describes a scheduled exit. The delay timer starts only once
// the equip wait, if any, is over.
type exitState struct {
	pending      bool
	waitForEquip bool
	equipWait    float64
	delay        float64
	elapsed      float64
}

// attackHold is the auto-draw pump.
type attackHold struct {
	active bool
	held   float64
}

type tapStage int

const (
	tapNone tapStage = iota
	tapArmed
	tapHolding
	tapReleased
)

// postExitTap replays an attack that was spent cancelling an exit.
type postExitTap struct {
	stage     tapStage
	pressAt   time.Time
	releaseAt time.Time
	held      float64
}

// Status is a read-only view of the controller for hosts and tests.
type Status struct {
	Phase        Phase
	Mode         Mode
	Style        Mode
	HotkeyDown   bool
	BowEquipped  bool
	SmartPending bool
	SmartHeld    float64
	Pumping      bool
	PumpHeld     float64
	ExitPending  bool
	WaitForEquip bool
	ExitDelay    float64
	ExitElapsed  float64
	TapArmed     bool
	Sheathing    bool
}
