package equip

import "github.com/dshills/quickdraw/internal/game"

// State is the chosen-bow and previous-loadout record.
type State struct {
	// Chosen is the chosen bow's last known live instance.
	Chosen game.Ref

	// Previous loadout, captured at bow-mode entry.
	PrevRight game.Ref
	PrevLeft  game.Ref
	PrevAmmo  game.Ref

	// ArmorRestore lists armor knocked off by the bow equip or hidden on
	// purpose, in the order it was removed.
	ArmorRestore []game.Ref

	// Captured is set between CapturePrevious and ClearSnapshot.
	Captured bool
}

// NewState creates an empty state.
func NewState() *State {
	return &State{}
}

// CapturePrevious records what the actor holds right now.
func (s *State) CapturePrevious(a game.Actor) {
	s.PrevRight, _ = a.Equipped(game.SlotRight)
	s.PrevLeft, _ = a.Equipped(game.SlotLeft)
	if s.PrevLeft.Same(s.PrevRight) {
		s.PrevLeft = game.Ref{}
	}
	s.PrevAmmo, _ = a.EquippedAmmo()
	s.ArmorRestore = nil
	s.Captured = true
}

// HandsWereEmpty reports whether nothing was held before entry.
func (s *State) HandsWereEmpty() bool {
	return s.PrevRight.IsZero() && s.PrevLeft.IsZero()
}

// TrackArmor appends refs to the restore list, skipping ones already tracked.
func (s *State) TrackArmor(refs ...game.Ref) {
	for _, r := range refs {
		if !containsRef(s.ArmorRestore, r) {
			s.ArmorRestore = append(s.ArmorRestore, r)
		}
	}
}

// ClearSnapshot forgets the previous loadout but keeps the chosen bow.
func (s *State) ClearSnapshot() {
	s.PrevRight = game.Ref{}
	s.PrevLeft = game.Ref{}
	s.PrevAmmo = game.Ref{}
	s.ArmorRestore = nil
	s.Captured = false
}

// Reset returns the state to its zero value.
func (s *State) Reset() {
	*s = State{}
}

func containsRef(list []game.Ref, r game.Ref) bool {
	for _, v := range list {
		if v.Same(r) {
			return true
		}
	}
	return false
}
