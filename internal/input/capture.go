package input

import "sync/atomic"

// Capture records the next pressed code for the binding UI.
//
// The result packs both classes into one integer: keyboard and mouse codes
// are returned as-is, gamepad button b is returned as -(b+1).
type Capture struct {
	armed  atomic.Bool
	result atomic.Int64
	ready  atomic.Bool
}

// Request arms a one-shot capture and forgets any earlier result.
func (c *Capture) Request() {
	c.ready.Store(false)
	c.armed.Store(true)
}

// Cancel disarms a pending capture.
func (c *Capture) Cancel() {
	c.armed.Store(false)
}

// Armed reports whether a capture is waiting for input.
func (c *Capture) Armed() bool {
	return c.armed.Load()
}

// Poll returns the captured code once; later calls report false until the
// next Request completes.
func (c *Capture) Poll() (int, bool) {
	if !c.ready.CompareAndSwap(true, false) {
		return 0, false
	}
	return int(c.result.Load()), true
}

// Observe offers an event to the capture. It returns true when the event
// completed the capture.
func (c *Capture) Observe(ev Event) bool {
	if ev.Synthetic || !ev.IsDown() || !c.armed.Load() {
		return false
	}
	code, ok := Normalize(ev.Device, ev.Code)
	if !ok {
		return false
	}
	if !c.armed.CompareAndSwap(true, false) {
		return false
	}
	c.result.Store(int64(EncodeCapture(ClassOf(ev.Device), code)))
	c.ready.Store(true)
	return true
}

// EncodeCapture packs a class code into the shared namespace.
func EncodeCapture(c Class, code Code) int {
	if c == ClassGamepad {
		return -int(code) - 1
	}
	return int(code)
}

// DecodeCapture unpacks a value produced by EncodeCapture.
func DecodeCapture(v int) (Class, Code) {
	if v < 0 {
		return ClassGamepad, Code(-v - 1)
	}
	return ClassKeyboard, Code(v)
}
