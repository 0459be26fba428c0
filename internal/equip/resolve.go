package equip

import "github.com/dshills/quickdraw/internal/game"

// ResolveSource says how the chosen bow was found.
type ResolveSource int

const (
	ResolveNone ResolveSource = iota
	// ResolveExact matched the remembered instance.
	ResolveExact
	// ResolveTagged matched another instance that still carries the marker.
	ResolveTagged
	// ResolveFirst fell back to the first instance of the base item.
	ResolveFirst
)

// String returns the source name.
func (r ResolveSource) String() string {
	switch r {
	case ResolveExact:
		return "exact"
	case ResolveTagged:
		return "tagged"
	case ResolveFirst:
		return "first"
	default:
		return "none"
	}
}

// ResolveChosen finds the live instance of the chosen bow: the remembered
// instance, else any instance still tagged, else the first instance of the
// base item. A fallback match is re-tagged and becomes the new s.Chosen.
func ResolveChosen(a game.Actor, s *State, t Tagger) (game.Item, ResolveSource, error) {
	if a == nil {
		return game.Item{}, ResolveNone, ErrNoCollaborator
	}
	if s.Chosen.IsZero() {
		return game.Item{}, ResolveNone, ErrNoChosenBow
	}
	base := s.Chosen.Base
	candidates := a.Inventory(func(it game.Item) bool {
		return it.Base == base && it.Count > 0
	})
	if len(candidates) == 0 {
		return game.Item{}, ResolveNone, ErrNoChosenBow
	}

	for _, it := range candidates {
		if it.Instance == s.Chosen.Instance {
			return it, ResolveExact, nil
		}
	}

	found, src := candidates[0], ResolveFirst
	for _, it := range candidates {
		if t.IsTagged(it.DisplayName()) {
			found, src = it, ResolveTagged
			break
		}
	}
	t.Tag(a, found)
	s.Chosen = found.Ref
	return found, src, nil
}

// Choose makes it the chosen bow, moving the marker from the previous chosen
// instance if that one is still in the inventory.
func Choose(a game.Actor, s *State, t Tagger, it game.Item) error {
	if a == nil {
		return ErrNoCollaborator
	}
	if !it.IsRanged() {
		return ErrNotRanged
	}
	if !s.Chosen.IsZero() && !s.Chosen.Same(it.Ref) {
		Unchoose(a, s, t)
	}
	t.Tag(a, it)
	s.Chosen = it.Ref
	return nil
}

// Unchoose strips the marker from every tagged instance of the chosen base
// and forgets the chosen bow.
func Unchoose(a game.Actor, s *State, t Tagger) {
	if s.Chosen.IsZero() {
		return
	}
	base := s.Chosen.Base
	for _, it := range game.Items(a, func(it game.Item) bool { return it.Base == base }) {
		if t.IsTagged(it.DisplayName()) {
			t.Untag(a, it)
		}
	}
	s.Chosen = game.Ref{}
}

// Lookup finds the live item for r: the exact instance if present, else any
// instance of r.Base.
func Lookup(a game.Actor, r game.Ref) (game.Item, bool) {
	if r.IsZero() {
		return game.Item{}, false
	}
	items := game.Items(a, func(it game.Item) bool { return it.Base == r.Base && it.Count > 0 })
	for _, it := range items {
		if it.Instance == r.Instance {
			return it, true
		}
	}
	if len(items) > 0 {
		return items[0], true
	}
	return game.Item{}, false
}

// UntagOthers strips the marker from every instance of keep.Base except
// keep itself and returns how many were changed.
func UntagOthers(a game.Actor, t Tagger, keep game.Ref) int {
	n := 0
	for _, it := range game.Items(a, func(it game.Item) bool { return it.Base == keep.Base }) {
		if it.Instance == keep.Instance || !t.IsTagged(it.DisplayName()) {
			continue
		}
		if t.Untag(a, it) {
			n++
		}
	}
	return n
}
