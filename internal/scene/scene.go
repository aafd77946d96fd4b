// Package scene wires the pointer buffer, particle field and engine together.
//
// Pointer events start the engine; every frame the field chases the buffered
// pointer and the render hook runs. Once a frame ends with the whole field
// resting, the engine is stopped on the following frame unless new input
// arrived in between.
package scene

import (
	"github.com/san-kum/restfield/internal/engine"
	"github.com/san-kum/restfield/internal/input"
	"github.com/san-kum/restfield/internal/particle"
	"go.uber.org/zap"
)

type Scene struct {
	Buffer *input.PositionBuffer
	Field  *particle.Field
	Engine *engine.Engine

	sched    *engine.ManualScheduler
	onRender func()
	log      *zap.Logger

	inputSeq    uint64
	stopPending bool
	stops       int
}

type Option func(*Scene)

func WithLogger(l *zap.Logger) Option {
	return func(s *Scene) {
		if l != nil {
			s.log = l
		}
	}
}

// WithRender sets the hook called at the end of every dispatched frame.
func WithRender(fn func()) Option {
	return func(s *Scene) { s.onRender = fn }
}

// WithHover makes pointer moves count without a button held.
func WithHover() Option {
	return func(s *Scene) { s.Buffer.TrackHover = true }
}

func New(cfg particle.FieldConfig, sprites particle.SpriteFactory, opts ...Option) (*Scene, error) {
	s := &Scene{
		Buffer: input.NewPositionBuffer(),
		sched:  engine.NewManualScheduler(),
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	field, err := particle.NewField(cfg, sprites, particle.WithLogger(s.log.Named("field")))
	if err != nil {
		return nil, err
	}
	eng, err := engine.New(s.render, s.sched, engine.WithLogger(s.log.Named("engine")))
	if err != nil {
		return nil, err
	}
	eng.OnUpdate(s.update)

	s.Field = field
	s.Engine = eng
	return s, nil
}

// Resize rebuilds the field for a new surface size and animates one pass so
// the fresh grid gets drawn.
func (s *Scene) Resize(l particle.Layout) error {
	if err := s.Field.Initialize(l); err != nil {
		return err
	}
	s.touch()
	s.Engine.Start()
	return nil
}

func (s *Scene) PointerDown(x, y float64) {
	s.Buffer.Press(x, y)
	s.touch()
	s.Engine.Start()
}

func (s *Scene) PointerMove(x, y float64) {
	if !s.Buffer.Move(x, y) {
		return
	}
	s.touch()
	s.Engine.Start()
}

// PointerUp parks the pointer offscreen and keeps animating until the field
// has settled back.
func (s *Scene) PointerUp() {
	s.Buffer.Release()
	s.touch()
	s.Engine.Start()
}

// Frame delivers one platform frame at timestamp (ms). It returns the number
// of scheduler callbacks that ran.
func (s *Scene) Frame(timestamp float64) int {
	return s.sched.Advance(timestamp)
}

// Busy reports whether any frame work is queued.
func (s *Scene) Busy() bool { return s.sched.Pending() > 0 }

// Stops counts how many times the scene put the engine to sleep.
func (s *Scene) Stops() int { return s.stops }

func (s *Scene) Destroy() {
	s.Engine.Destroy()
	s.Field.Destroy()
}

func (s *Scene) touch() { s.inputSeq++ }

func (s *Scene) update(float64) {
	s.Field.Update(s.Buffer.Position())
}

func (s *Scene) render() {
	if s.onRender != nil {
		s.onRender()
	}
	if !s.Field.IsResting() || s.stopPending {
		return
	}
	s.stopPending = true
	seq := s.inputSeq
	s.sched.RequestFrame(func(float64) {
		s.stopPending = false
		if seq != s.inputSeq || !s.Field.IsResting() {
			return
		}
		s.Engine.Stop()
		s.stops++
		s.log.Debug("field at rest, engine stopped", zap.Uint64("frames", s.Engine.Frames()))
	})
}
