package sim

import (
	"sort"
	"sync"

	"github.com/dshills/quickdraw/internal/game"
)

// Default animation timings, in seconds.
const (
	DefaultEquipDelay   = 0.4
	DefaultSheatheDelay = 0.6
)

type pendingTag struct {
	at  float64
	seq int
	tag string
}

// World owns the simulated player and equip manager.
type World struct {
	mu sync.Mutex

	player *Actor
	em     *EquipManager

	playerMissing bool
	emMissing     bool

	// Animate enables automatic animation tags after draw/sheathe.
	Animate      bool
	EquipDelay   float64
	SheatheDelay float64

	clock float64
	seq   int
	tags  []pendingTag
}

// NewWorld creates a world with an empty-handed player.
func NewWorld() *World {
	w := &World{
		Animate:      true,
		EquipDelay:   DefaultEquipDelay,
		SheatheDelay: DefaultSheatheDelay,
	}
	w.player = newActor(w)
	w.em = &EquipManager{}
	return w
}

// Player implements game.World.
func (w *World) Player() game.Actor {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.playerMissing {
		return nil
	}
	return w.player
}

// EquipManager implements game.World.
func (w *World) EquipManager() game.EquipManager {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.emMissing {
		return nil
	}
	return w.em
}

// Actor returns the concrete player even while it is hidden.
func (w *World) Actor() *Actor {
	return w.player
}

// Manager returns the concrete equip manager even while it is hidden.
func (w *World) Manager() *EquipManager {
	return w.em
}

// SetPlayerPresent hides or reveals the player singleton.
func (w *World) SetPlayerPresent(v bool) {
	w.mu.Lock()
	w.playerMissing = !v
	w.mu.Unlock()
}

// SetEquipManagerPresent hides or reveals the equip manager singleton.
func (w *World) SetEquipManagerPresent(v bool) {
	w.mu.Lock()
	w.emMissing = !v
	w.mu.Unlock()
}

func (w *World) emitAfter(delay float64, tag string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.Animate {
		return
	}
	w.seq++
	w.tags = append(w.tags, pendingTag{at: w.clock + delay, seq: w.seq, tag: tag})
}

// Advance moves the simulated clock and returns the tags that came due, in
// order.
func (w *World) Advance(dt float64) []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.clock += dt
	sort.Slice(w.tags, func(i, j int) bool {
		if w.tags[i].at == w.tags[j].at {
			return w.tags[i].seq < w.tags[j].seq
		}
		return w.tags[i].at < w.tags[j].at
	})
	var due []string
	n := 0
	for _, p := range w.tags {
		if p.at <= w.clock {
			due = append(due, p.tag)
			continue
		}
		w.tags[n] = p
		n++
	}
	w.tags = w.tags[:n]
	return due
}
