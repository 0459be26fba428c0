package bowmode

import (
	"sync/atomic"
	"time"

	"github.com/dshills/quickdraw/internal/game"
)

// unequipGate refuses engine-initiated unequips of the bow while bow mode
// owns it. It is read from the equip-manager hook and written from the tick,
// so every field is atomic; no two fields need to change together.
type unequipGate struct {
	enabled  atomic.Bool
	blocked  atomic.Bool
	base     atomic.Uint32
	reopenAt atomic.Int64
}

func (g *unequipGate) close(r game.Ref) {
	g.base.Store(uint32(r.Base))
	g.reopenAt.Store(0)
	g.blocked.Store(true)
}

// reopen lets unequips through again from at onwards.
func (g *unequipGate) reopen(at time.Time) {
	g.reopenAt.Store(at.UnixNano())
}

func (g *unequipGate) open() {
	g.blocked.Store(false)
	g.reopenAt.Store(0)
}

func (g *unequipGate) allows(r game.Ref, now time.Time) bool {
	if !g.enabled.Load() || !g.blocked.Load() {
		return true
	}
	if uint32(r.Base) != g.base.Load() {
		return true
	}
	if at := g.reopenAt.Load(); at != 0 && now.UnixNano() >= at {
		g.blocked.Store(false)
		return true
	}
	return false
}
