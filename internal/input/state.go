package input

// State tracks which codes are down, per class.
//
// Each class keeps a flag per code plus an unordered list of the codes that
// are down, so exclusivity checks cost O(active keys). A code is in the list
// exactly when its flag is set.
//
// State is written from the input-processing context only. Readers on the
// same context may hold a DownList slice until the next write.
type State struct {
	down [numClasses][]bool
	list [numClasses][]Code
}

// NewState creates an empty input state.
func NewState() *State {
	s := &State{}
	for c := Class(0); c < numClasses; c++ {
		s.down[c] = make([]bool, classSize(c))
		s.list[c] = make([]Code, 0, 8)
	}
	return s
}

// OnButton records one button transition. Codes outside the device range are
// ignored.
func (s *State) OnButton(d Device, code int, isPressed, isDownEdge, isUpEdge bool) {
	norm, ok := Normalize(d, code)
	if !ok {
		return
	}
	c := ClassOf(d)
	switch {
	case isDownEdge || (isPressed && !isUpEdge):
		s.press(c, norm)
	case isUpEdge || !isPressed:
		s.release(c, norm)
	}
}

// Apply feeds every non-synthetic event of a batch into the state.
func (s *State) Apply(batch Batch) {
	for _, ev := range batch {
		if ev.Synthetic {
			continue
		}
		s.OnButton(ev.Device, ev.Code, ev.IsPressed(), ev.IsDown(), ev.IsUp())
	}
}

func (s *State) press(c Class, code Code) {
	if s.down[c][code] {
		return
	}
	s.down[c][code] = true
	s.list[c] = append(s.list[c], code)
}

func (s *State) release(c Class, code Code) {
	if !s.down[c][code] {
		return
	}
	s.down[c][code] = false
	l := s.list[c]
	for i, v := range l {
		if v == code {
			last := len(l) - 1
			l[i] = l[last]
			s.list[c] = l[:last]
			return
		}
	}
}

// IsDown reports whether code is down in class c.
func (s *State) IsDown(c Class, code Code) bool {
	if !c.Valid(code) {
		return false
	}
	return s.down[c][code]
}

// DownList returns the codes currently down in class c. The slice must not
// be modified and is only valid until the next OnButton.
func (s *State) DownList(c Class) []Code {
	if c < 0 || c >= numClasses {
		return nil
	}
	return s.list[c]
}

// Reset releases every code, e.g. after a menu swallowed the release edges.
func (s *State) Reset() {
	for c := Class(0); c < numClasses; c++ {
		for _, code := range s.list[c] {
			s.down[c][code] = false
		}
		s.list[c] = s.list[c][:0]
	}
}
