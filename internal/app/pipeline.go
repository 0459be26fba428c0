package app

import (
	"time"

	"github.com/dshills/quickdraw/internal/event"
	"github.com/dshills/quickdraw/internal/game"
	"github.com/dshills/quickdraw/internal/input"
)

// ProcessInput runs one tick for a poll's worth of events, dt seconds
// after the previous poll, and returns the batch the engine should see.
//
// Synthetic events queued during earlier ticks are spliced ahead of the
// real ones. Input state is updated from the real events before the
// detector and controller look at it. Attack presses the controller
// consumes are removed from the returned batch.
func (a *Application) ProcessInput(batch input.Batch, dt float64) input.Batch {
	if dt < 0 {
		dt = 0
	}
	a.clock = a.clock.Add(time.Duration(dt * float64(time.Second)))

	batch = a.synth.Splice(batch)
	a.input.Apply(batch)

	out := make(input.Batch, 0, len(batch))
	for _, ev := range batch {
		if a.capture.Observe(ev) {
			a.announceCapture(ev)
		}
		if a.controller.InterceptAttack(ev) {
			continue
		}
		out = append(out, ev)
	}

	a.sched.Poll(a.clock)
	blocked := a.menuOpen.Load() || a.world.Player() == nil
	a.detector.Tick(dt, a.hotkeys, a.input, a.cfg.RequireExclusive, blocked, a.controller)
	a.controller.Tick(dt)

	a.hub.DispatchInput(out)
	return out
}

func (a *Application) announceCapture(ev input.Event) {
	code, ok := input.Normalize(ev.Device, ev.Code)
	if !ok {
		return
	}
	class := input.ClassOf(ev.Device)
	a.hub.Notify(event.TopicCaptured, event.Captured{
		Code: input.EncodeCapture(class, code),
		Name: input.CodeName(class, code),
	})
}

// OnAnimationEvent delivers a player animation tag to every animation
// sink, the controller included. It reports whether any sink used it.
func (a *Application) OnAnimationEvent(tag string) bool {
	return a.hub.DispatchAnimation(tag) > 0
}

// OnPowerActivated is the hook for the player activating a power.
func (a *Application) OnPowerActivated(p game.Power) {
	a.controller.OnPowerActivated(p)
}

// AllowUnequip is the equip manager hook: it reports whether the engine
// may unequip r right now.
func (a *Application) AllowUnequip(r game.Ref) bool {
	return a.controller.AllowUnequip(r)
}

// ForceExit drops bow mode at once, without equip calls.
func (a *Application) ForceExit() {
	a.controller.ForceImmediateExit()
}
