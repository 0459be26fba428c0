package sim

import (
	"sort"
	"sync"

	"github.com/dshills/quickdraw/internal/input"
)

type buttonKey struct {
	device input.Device
	code   int
}

type buttonState struct {
	held      float32
	fresh     bool
	releasing bool
}

// Buttons turns press and release calls into per-poll event batches the
// way the engine reports them: a down edge on the first poll, a held
// event with a growing held time on each later poll, and an up edge
// carrying the total held time.
type Buttons struct {
	mu     sync.Mutex
	states map[buttonKey]*buttonState
}

// NewButtons creates a device with nothing held.
func NewButtons() *Buttons {
	return &Buttons{states: make(map[buttonKey]*buttonState)}
}

// Press starts holding a button. Pressing a held button does nothing.
func (b *Buttons) Press(d input.Device, code int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	k := buttonKey{d, code}
	if st, ok := b.states[k]; ok {
		st.releasing = false
		return
	}
	b.states[k] = &buttonState{fresh: true}
}

// Release lets go of a button on the next poll.
func (b *Buttons) Release(d input.Device, code int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if st, ok := b.states[buttonKey{d, code}]; ok {
		st.releasing = true
	}
}

// IsHeld reports whether a button is down.
func (b *Buttons) IsHeld(d input.Device, code int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	st, ok := b.states[buttonKey{d, code}]
	return ok && !st.releasing
}

// ReleaseAll lets go of every button on the next poll.
func (b *Buttons) ReleaseAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, st := range b.states {
		st.releasing = true
	}
}

// Poll returns this poll's events, dt seconds after the previous one.
// Events are ordered by device, then code.
func (b *Buttons) Poll(dt float64) input.Batch {
	b.mu.Lock()
	defer b.mu.Unlock()

	keys := make([]buttonKey, 0, len(b.states))
	for k := range b.states {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].device != keys[j].device {
			return keys[i].device < keys[j].device
		}
		return keys[i].code < keys[j].code
	})

	var out input.Batch
	step := float32(dt)
	for _, k := range keys {
		st := b.states[k]
		ev := input.Event{Device: k.device, Code: k.code}
		if st.fresh {
			st.fresh = false
			ev.Value = 1
			out = append(out, ev)
			if !st.releasing {
				continue
			}
			// Pressed and released between polls.
			ev.Value, ev.Held = 0, max(step, 0.001)
			out = append(out, ev)
			delete(b.states, k)
			continue
		}
		st.held += step
		ev.Held = st.held
		if st.releasing {
			delete(b.states, k)
		} else {
			ev.Value = 1
		}
		out = append(out, ev)
	}
	return out
}
