package engine

// Phase tags one of the ordered stages of a frame.
type Phase int

const (
	PhaseUpdateStart Phase = iota
	PhaseUpdate
	PhaseUpdateComplete

	numPhases
)

func (p Phase) String() string {
	switch p {
	case PhaseUpdateStart:
		return "update.start"
	case PhaseUpdate:
		return "update"
	case PhaseUpdateComplete:
		return "update.complete"
	default:
		return "unknown"
	}
}

func (p Phase) valid() bool { return p >= PhaseUpdateStart && p < numPhases }

// Listener receives the elapsed milliseconds since the previous frame.
type Listener func(delta float64)

// Handle identifies a registered listener. The zero Handle is never issued.
type Handle uint64

type entry struct {
	handle Handle
	fn     Listener
}

// listenerSet maps each phase to its listeners in registration order.
// Removal copies the slice, so a dispatch in progress keeps iterating over the
// list it started with.
type listenerSet struct {
	phases [numPhases][]entry
	next   Handle
}

func (s *listenerSet) add(p Phase, fn Listener) Handle {
	s.next++
	s.phases[p] = append(s.phases[p], entry{handle: s.next, fn: fn})
	return s.next
}

func (s *listenerSet) remove(p Phase, h Handle) bool {
	list := s.phases[p]
	for i, e := range list {
		if e.handle != h {
			continue
		}
		kept := make([]entry, 0, len(list)-1)
		kept = append(kept, list[:i]...)
		kept = append(kept, list[i+1:]...)
		s.phases[p] = kept
		return true
	}
	return false
}

func (s *listenerSet) emit(p Phase, delta float64) {
	for _, e := range s.phases[p] {
		e.fn(delta)
	}
}

func (s *listenerSet) count() int {
	n := 0
	for _, list := range s.phases {
		n += len(list)
	}
	return n
}

func (s *listenerSet) clear() {
	for p := range s.phases {
		s.phases[p] = nil
	}
}
