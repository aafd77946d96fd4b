package engine

// FrameID identifies a pending frame request. Zero means "no request".
type FrameID uint64

// Scheduler is the platform's per-frame callback source.
type Scheduler interface {
	// RequestFrame arranges for fn to be called once with a frame timestamp
	// in milliseconds.
	RequestFrame(fn func(timestamp float64)) FrameID
	// CancelFrame drops a request that has not run yet.
	CancelFrame(id FrameID)
}

type frameRequest struct {
	id FrameID
	fn func(float64)
}

// ManualScheduler queues frame requests until Advance is called. It drives
// headless runs and tests, and the TUI advances it from its tick messages.
type ManualScheduler struct {
	next     FrameID
	queue    []frameRequest
	inflight []frameRequest
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{queue: make([]frameRequest, 0, 4)}
}

func (s *ManualScheduler) RequestFrame(fn func(float64)) FrameID {
	s.next++
	s.queue = append(s.queue, frameRequest{id: s.next, fn: fn})
	return s.next
}

func (s *ManualScheduler) CancelFrame(id FrameID) {
	if id == 0 {
		return
	}
	for i, r := range s.queue {
		if r.id == id {
			s.queue = append(s.queue[:i:i], s.queue[i+1:]...)
			return
		}
	}
	// cancelled from inside Advance before its turn came
	for i := range s.inflight {
		if s.inflight[i].id == id {
			s.inflight[i].fn = nil
			return
		}
	}
}

// Pending returns the number of queued requests.
func (s *ManualScheduler) Pending() int { return len(s.queue) }

// Advance runs every request queued before the call, in request order, with
// the given timestamp. Requests made by those callbacks wait for the next
// Advance. It returns how many callbacks ran.
func (s *ManualScheduler) Advance(timestamp float64) int {
	s.inflight = s.queue
	s.queue = make([]frameRequest, 0, 4)
	ran := 0
	for i := range s.inflight {
		fn := s.inflight[i].fn
		if fn == nil {
			continue
		}
		s.inflight[i].fn = nil
		fn(timestamp)
		ran++
	}
	s.inflight = nil
	return ran
}
