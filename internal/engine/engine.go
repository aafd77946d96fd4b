package engine

import (
	"math"
	"time"

	"go.uber.org/zap"
)

// initialFrameTime matches the timestamp a fresh engine assumes for the frame
// before its first tick.
const initialFrameTime = 1.0

// State is the lifecycle stage of an Engine.
type State int

const (
	StateActive State = iota
	StateDestroyed
)

func (s State) String() string {
	if s == StateDestroyed {
		return "destroyed"
	}
	return "active"
}

// Engine is a start/stop-able frame driver. See the package documentation.
type Engine struct {
	render    func()
	scheduler Scheduler
	clock     func() float64
	log       *zap.Logger

	listeners listenerSet

	state        State
	isRunning    bool
	hasListeners bool
	inUpdate     bool
	prevTime     float64
	pending      FrameID
	frames       uint64
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for lifecycle messages.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithClock replaces the millisecond clock consulted when Update is given a
// zero timestamp.
func WithClock(clock func() float64) Option {
	return func(e *Engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// New builds an engine that calls render once per dispatched frame.
func New(render func(), scheduler Scheduler, opts ...Option) (*Engine, error) {
	if render == nil {
		return nil, ErrNilRenderer
	}
	if scheduler == nil {
		return nil, ErrNilScheduler
	}

	epoch := time.Now()
	e := &Engine{
		render:    render,
		scheduler: scheduler,
		clock:     func() float64 { return float64(time.Since(epoch)) / float64(time.Millisecond) },
		log:       zap.NewNop(),
		prevTime:  initialFrameTime,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

func (e *Engine) IsRunning() bool    { return e.isRunning }
func (e *Engine) HasListeners() bool { return e.hasListeners }
func (e *Engine) InUpdate() bool     { return e.inUpdate }
func (e *Engine) State() State       { return e.state }

// Frames returns how many frames have been dispatched.
func (e *Engine) Frames() uint64 { return e.frames }

// On registers fn for phase p. Listeners of one phase run in registration
// order. It returns 0 if the engine is destroyed or p is unknown.
func (e *Engine) On(p Phase, fn Listener) Handle {
	if e.state == StateDestroyed || fn == nil || !p.valid() {
		return 0
	}
	h := e.listeners.add(p, fn)
	e.checkListeners()
	return h
}

func (e *Engine) OnUpdateStart(fn Listener) Handle    { return e.On(PhaseUpdateStart, fn) }
func (e *Engine) OnUpdate(fn Listener) Handle         { return e.On(PhaseUpdate, fn) }
func (e *Engine) OnUpdateComplete(fn Listener) Handle { return e.On(PhaseUpdateComplete, fn) }

// Off removes the listener registered under h for phase p.
func (e *Engine) Off(p Phase, h Handle) bool {
	if !p.valid() || !e.listeners.remove(p, h) {
		return false
	}
	e.checkListeners()
	return true
}

func (e *Engine) RemoveUpdateStart(h Handle) bool    { return e.Off(PhaseUpdateStart, h) }
func (e *Engine) RemoveUpdate(h Handle) bool         { return e.Off(PhaseUpdate, h) }
func (e *Engine) RemoveUpdateComplete(h Handle) bool { return e.Off(PhaseUpdateComplete, h) }

// Remove drops h from whichever phase holds it.
func (e *Engine) Remove(h Handle) bool {
	for p := PhaseUpdateStart; p < numPhases; p++ {
		if e.Off(p, h) {
			return true
		}
	}
	return false
}

// Start begins requesting frames. It is a no-op while already running.
func (e *Engine) Start() {
	if e.state == StateDestroyed || e.isRunning {
		return
	}
	e.isRunning = true
	e.log.Debug("engine started", zap.Bool("has_listeners", e.hasListeners))
	e.request()
}

// Stop cancels the pending frame request. A frame already dispatching runs to
// completion.
func (e *Engine) Stop() {
	wasRunning := e.isRunning
	e.isRunning = false
	if e.pending != 0 {
		e.scheduler.CancelFrame(e.pending)
		e.pending = 0
	}
	if wasRunning {
		e.log.Debug("engine stopped", zap.Uint64("frames", e.frames))
	}
}

// Step advances exactly one frame without scheduling further frames. It only
// acts while the engine is stopped and not dispatching.
func (e *Engine) Step(timestamp float64) {
	if e.state == StateDestroyed || e.isRunning || e.inUpdate {
		return
	}
	e.tick(timestamp, true)
}

// Update dispatches one frame if all of the following hold:
//
//   - no dispatch is already in progress
//   - no frame request is pending
//   - at least one listener is registered
//   - timestamp is later than the previous one
//
// The timestamp is remembered whether or not the frame was dispatched. A zero
// timestamp is replaced by the engine clock. NaN and infinite timestamps are
// ignored and leave the previous timestamp in place.
func (e *Engine) Update(timestamp float64) {
	if e.state == StateDestroyed || math.IsNaN(timestamp) || math.IsInf(timestamp, 0) {
		return
	}
	now := timestamp
	if now == 0 {
		now = e.clock()
	}
	if delta := now - e.prevTime; !e.inUpdate && e.pending == 0 && e.hasListeners && delta > 0 {
		e.dispatch(delta)
	}
	e.prevTime = now
}

// Destroy stops the engine and drops every listener. All later calls are
// no-ops.
func (e *Engine) Destroy() {
	if e.state == StateDestroyed {
		return
	}
	e.Stop()
	e.listeners.clear()
	e.hasListeners = false
	e.state = StateDestroyed
	e.log.Debug("engine destroyed")
}

func (e *Engine) dispatch(delta float64) {
	e.inUpdate = true
	defer func() { e.inUpdate = false }()

	e.listeners.emit(PhaseUpdateStart, delta)
	e.listeners.emit(PhaseUpdate, delta)
	e.listeners.emit(PhaseUpdateComplete, delta)
	e.render()
	e.frames++
}

func (e *Engine) onFrame(timestamp float64) { e.tick(timestamp, false) }

// tick is one iteration of the frame loop. Without listeners, or once
// stopped, it does not re-request and the loop goes dormant.
func (e *Engine) tick(timestamp float64, runOnce bool) {
	e.pending = 0
	if !(e.isRunning || runOnce) || !e.hasListeners {
		return
	}
	e.Update(timestamp)
	if e.isRunning && !runOnce {
		e.request()
	}
}

func (e *Engine) request() {
	if e.pending != 0 || e.state == StateDestroyed {
		return
	}
	e.pending = e.scheduler.RequestFrame(e.onFrame)
}

// checkListeners recomputes hasListeners and wakes a running engine whose
// loop went dormant for lack of listeners.
func (e *Engine) checkListeners() {
	had := e.hasListeners
	e.hasListeners = e.listeners.count() > 0
	if !had && e.hasListeners && e.isRunning && !e.inUpdate {
		e.request()
	}
}
