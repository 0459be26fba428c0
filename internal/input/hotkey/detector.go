package hotkey

import "github.com/dshills/quickdraw/internal/input"

// ConfirmDelay is the exclusivity confirmation window, in seconds.
const ConfirmDelay = 0.10

// Codes that may be held alongside the combo without breaking exclusivity.
var (
	keyboardAllow = []input.Code{input.KeyW, input.KeyA, input.KeyS, input.KeyD}
	gamepadAllow  = []input.Code{input.PadLeftThumb}
)

// Callbacks receive acceptance edges.
type Callbacks interface {
	OnHotkeyAcceptedPressed()
	OnHotkeyAcceptedReleased()
}

// CallbackFuncs adapts two funcs to Callbacks. Nil funcs are skipped.
type CallbackFuncs struct {
	Pressed  func()
	Released func()
}

func (f CallbackFuncs) OnHotkeyAcceptedPressed() {
	if f.Pressed != nil {
		f.Pressed()
	}
}

func (f CallbackFuncs) OnHotkeyAcceptedReleased() {
	if f.Released != nil {
		f.Released()
	}
}

// pending is a press waiting out the confirmation window.
type pending struct {
	active   bool
	class    input.Class
	timer    float64
	violated bool
	fresh    bool
}

// Runtime is the detector's per-tick transient state.
type Runtime struct {
	prev     [2]bool
	suppress bool
	pending  pending
}

// Reset clears all transient state. Call it whenever bindings change.
func (r *Runtime) Reset() {
	*r = Runtime{}
}

// SuppressUntilReleased forces acceptance off until the combo is fully let go.
func (r *Runtime) SuppressUntilReleased() {
	r.suppress = true
	r.pending = pending{}
}

// Suppressed reports whether the release latch is set.
func (r *Runtime) Suppressed() bool {
	return r.suppress
}

// Pending reports whether a press is waiting for confirmation.
func (r *Runtime) Pending() bool {
	return r.pending.active
}

// ComboDown reports whether every bound slot of combo is down.
// An empty combo is never down.
func ComboDown(st *input.State, class input.Class, combo Combo) bool {
	bound := false
	for _, code := range combo {
		if code == input.Unassigned {
			continue
		}
		if !st.IsDown(class, code) {
			return false
		}
		bound = true
	}
	return bound
}

// Exclusive reports whether nothing but combo members and allowed codes is
// down in class.
func Exclusive(st *input.State, class input.Class, combo Combo) bool {
	allow := keyboardAllow
	if class == input.ClassGamepad {
		allow = gamepadAllow
	}
	for _, code := range st.DownList(class) {
		if combo.Contains(code) || contains(allow, code) {
			continue
		}
		return false
	}
	return true
}

func contains(list []input.Code, code input.Code) bool {
	for _, v := range list {
		if v == code {
			return true
		}
	}
	return false
}

// Tick advances the detector by dt seconds and updates *accepted, invoking cb
// once per acceptance edge.
func Tick(dt float64, cfg Config, st *input.State, requireExclusive, inputBlocked bool, accepted *bool, rt *Runtime, cb Callbacks) {
	// live feeds edge tracking even while input is blocked, so a combo
	// held through a menu or loading screen is not a new press afterwards.
	var live, raw [2]bool
	live[input.ClassKeyboard] = ComboDown(st, input.ClassKeyboard, cfg.Keyboard)
	live[input.ClassGamepad] = ComboDown(st, input.ClassGamepad, cfg.Gamepad)
	if inputBlocked {
		rt.pending = pending{}
	} else {
		raw = live
	}
	anyRaw := raw[input.ClassKeyboard] || raw[input.ClassGamepad]

	if rt.suppress {
		if !live[input.ClassKeyboard] && !live[input.ClassGamepad] {
			rt.suppress = false
		}
		*accepted = false
		rt.prev = live
		return
	}

	var next bool
	switch {
	case !requireExclusive:
		next = anyRaw
	case *accepted:
		next = anyRaw
	default:
		next = confirm(dt, cfg, st, raw, rt)
	}
	rt.prev = live

	if next == *accepted {
		return
	}
	*accepted = next
	if cb == nil {
		return
	}
	if next {
		cb.OnHotkeyAcceptedPressed()
	} else {
		cb.OnHotkeyAcceptedReleased()
	}
}

// confirm runs the exclusivity window and reports whether the press is
// accepted this tick.
func confirm(dt float64, cfg Config, st *input.State, raw [2]bool, rt *Runtime) bool {
	if !rt.pending.active {
		for _, class := range []input.Class{input.ClassKeyboard, input.ClassGamepad} {
			if raw[class] && !rt.prev[class] {
				rt.pending = pending{
					active:   true,
					class:    class,
					violated: !Exclusive(st, class, cfg.Combo(class)),
					fresh:    true,
				}
				break
			}
		}
	}
	p := &rt.pending
	if !p.active {
		return false
	}
	if p.fresh {
		p.fresh = false
		return false
	}

	exclusive := Exclusive(st, p.class, cfg.Combo(p.class))
	if !raw[p.class] {
		ok := !p.violated && exclusive
		rt.pending = pending{}
		return ok
	}

	p.timer += dt
	p.violated = !exclusive
	if p.timer >= ConfirmDelay {
		ok := !p.violated
		rt.pending = pending{}
		return ok
	}
	return false
}

// Detector bundles the runtime and acceptance flag for one hotkey.
type Detector struct {
	rt       Runtime
	accepted bool
}

// NewDetector creates an idle detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Tick runs one detector step; see the package-level Tick.
func (d *Detector) Tick(dt float64, cfg Config, st *input.State, requireExclusive, inputBlocked bool, cb Callbacks) {
	Tick(dt, cfg, st, requireExclusive, inputBlocked, &d.accepted, &d.rt, cb)
}

// Accepted reports the current acceptance state.
func (d *Detector) Accepted() bool {
	return d.accepted
}

// Reset drops acceptance and runtime state without firing callbacks.
func (d *Detector) Reset() {
	d.accepted = false
	d.rt.Reset()
}

// SuppressUntilReleased arms the release latch.
func (d *Detector) SuppressUntilReleased() {
	d.rt.SuppressUntilReleased()
}

// Runtime exposes the runtime for inspection.
func (d *Detector) Runtime() *Runtime {
	return &d.rt
}
