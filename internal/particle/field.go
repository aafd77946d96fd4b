package particle

import (
	"fmt"

	"github.com/san-kum/restfield/internal/vec"
	"go.uber.org/zap"
)

// State is the lifecycle stage of a Field.
type State int

const (
	StateUninitialized State = iota
	StateActive
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateActive:
		return "active"
	case StateDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// FieldConfig combines particle tuning with grid sizing.
type FieldConfig struct {
	Particle Config
	Grid     GridConfig
}

func DefaultFieldConfig() FieldConfig {
	return FieldConfig{Particle: DefaultConfig(), Grid: DefaultGridConfig()}
}

// Stats summarises a field after its last update.
type Stats struct {
	Particles       int
	Resting         int
	MaxDisplacement float64
}

// Field owns a grid of particles and aggregates their resting state.
type Field struct {
	cfg     FieldConfig
	factory SpriteFactory
	log     *zap.Logger

	particles []*Particle
	grid      Grid
	layout    Layout
	state     State
	canUpdate bool
	resting   bool
}

// FieldOption configures a Field.
type FieldOption func(*Field)

func WithLogger(l *zap.Logger) FieldOption {
	return func(f *Field) {
		if l != nil {
			f.log = l
		}
	}
}

// NewField validates cfg and returns an empty, uninitialized field.
func NewField(cfg FieldConfig, factory SpriteFactory, opts ...FieldOption) (*Field, error) {
	if factory == nil {
		return nil, ErrNilFactory
	}
	if err := cfg.Particle.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Grid.Validate(); err != nil {
		return nil, err
	}
	f := &Field{
		cfg:     cfg,
		factory: factory,
		log:     zap.NewNop(),
		resting: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Initialize replaces the current particles with a fresh grid covering l.
func (f *Field) Initialize(l Layout) error {
	if f.state == StateDestroyed {
		return ErrDestroyed
	}
	if err := l.validate(); err != nil {
		return err
	}

	f.clear()

	grid := GridFor(l, f.cfg.Grid)
	f.particles = make([]*Particle, 0, grid.Total())
	for row := 0; row < grid.Rows; row++ {
		for col := 0; col < grid.Cols; col++ {
			origin := vec.New(grid.CellCenter(col, row))
			f.particles = append(f.particles, NewParticle(origin, f.cfg.Particle, f.factory.NewSprite(origin)))
		}
	}

	f.grid = grid
	f.layout = l
	f.state = StateActive
	f.canUpdate = true
	f.resting = true

	f.log.Info("field initialized",
		zap.Int("cols", grid.Cols),
		zap.Int("rows", grid.Rows),
		zap.Float64("cell", grid.Cell),
		zap.Int("particles", grid.Total()),
		zap.Int("attempts", grid.Attempts),
	)
	return nil
}

// Update advances every particle toward or away from target. It does nothing
// unless the field is initialized.
func (f *Field) Update(target vec.Vector2) {
	if !f.canUpdate {
		return
	}
	resting := true
	for _, p := range f.particles {
		p.Update(target)
		if !p.IsResting() {
			resting = false
		}
	}
	f.resting = resting
}

// IsResting reports whether every particle rested on the last update. An
// empty field is always resting.
func (f *Field) IsResting() bool { return f.resting }

func (f *Field) CanUpdate() bool { return f.canUpdate }
func (f *Field) State() State    { return f.state }
func (f *Field) Grid() Grid      { return f.grid }
func (f *Field) Layout() Layout  { return f.layout }
func (f *Field) Len() int        { return len(f.particles) }

// Particles returns the particles in row-major order. Callers must not
// modify the slice.
func (f *Field) Particles() []*Particle { return f.particles }

func (f *Field) Stats() Stats {
	s := Stats{Particles: len(f.particles)}
	for _, p := range f.particles {
		if p.IsResting() {
			s.Resting++
		}
		if d := p.Displacement(); d > s.MaxDisplacement {
			s.MaxDisplacement = d
		}
	}
	return s
}

// Destroy releases every sprite. The field cannot be initialized again.
func (f *Field) Destroy() {
	if f.state == StateDestroyed {
		return
	}
	f.clear()
	f.state = StateDestroyed
	f.log.Debug("field destroyed")
}

func (f *Field) clear() {
	f.canUpdate = false
	for _, p := range f.particles {
		p.destroy()
	}
	f.particles = nil
}

func (f *Field) String() string {
	return fmt.Sprintf("Field(%s, %dx%d, %d particles)", f.state, f.grid.Cols, f.grid.Rows, len(f.particles))
}
