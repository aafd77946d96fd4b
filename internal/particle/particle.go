package particle

import (
	"fmt"

	"github.com/san-kum/restfield/internal/vec"
)

const (
	DefaultThreshold   = 140.0
	DefaultStepFactor  = 0.1
	DefaultRestEpsilon = 0.01
)

// Config holds the per-particle tuning shared across a field.
type Config struct {
	// Threshold is the radius inside which a target repels the particle.
	// Zero or less means the particle only ever returns to its origin.
	Threshold float64
	// StepFactor is the fraction of the force applied per update by the
	// linear integrator.
	StepFactor float64
	// RestEpsilon is the per-update movement below which a particle rests.
	RestEpsilon float64
	// Integrator advances the position; nil selects Linear{StepFactor}.
	Integrator Integrator
}

func DefaultConfig() Config {
	return Config{
		Threshold:   DefaultThreshold,
		StepFactor:  DefaultStepFactor,
		RestEpsilon: DefaultRestEpsilon,
	}
}

func (c Config) Validate() error {
	if !(c.StepFactor > 0) {
		return fmt.Errorf("%w: step factor must be positive, got %f", ErrInvalidConfig, c.StepFactor)
	}
	if !(c.RestEpsilon > 0) {
		return fmt.Errorf("%w: rest epsilon must be positive, got %f", ErrInvalidConfig, c.RestEpsilon)
	}
	return nil
}

func (c Config) integrator() Integrator {
	if c.Integrator != nil {
		return c.Integrator
	}
	return Linear{StepFactor: c.StepFactor}
}

// Particle is one point mass anchored at its origin.
type Particle struct {
	origin    vec.Vector2
	position  vec.Vector2
	force     vec.Vector2
	velocity  vec.Vector2
	threshold float64
	epsilon   float64
	resting   bool

	integ  Integrator
	sprite Sprite
}

// NewParticle places a particle at origin. A nil sprite draws nothing.
func NewParticle(origin vec.Vector2, cfg Config, sprite Sprite) *Particle {
	if sprite == nil {
		sprite = nopSprite{}
	}
	p := &Particle{
		origin:    origin,
		position:  origin,
		threshold: cfg.Threshold,
		epsilon:   cfg.RestEpsilon,
		integ:     cfg.integrator(),
		sprite:    sprite,
	}
	sprite.SetPosition(origin)
	return p
}

func (p *Particle) Origin() vec.Vector2   { return p.origin }
func (p *Particle) Position() vec.Vector2 { return p.position }
func (p *Particle) Threshold() float64    { return p.threshold }

// Force is the force computed by the last Update, before step scaling.
func (p *Particle) Force() vec.Vector2 { return p.force }

// IsResting reports whether the last Update moved the particle by less than
// the rest epsilon. It is false before the first Update.
func (p *Particle) IsResting() bool { return p.resting }

// Displacement is the distance from the origin.
func (p *Particle) Displacement() float64 { return p.position.Distance(p.origin) }

// Update computes the force exerted by target and advances one step.
func (p *Particle) Update(target vec.Vector2) {
	p.force = p.forceFrom(target)

	prev := p.position
	p.position = p.integ.Advance(p, p.force)
	p.resting = p.position.Distance(prev) < p.epsilon
	p.sprite.SetPosition(p.position)
}

// forceFrom points away from a target inside the threshold, with magnitude
// growing as the target closes in, and back to the origin otherwise. A target
// exactly on the particle pushes along +x.
func (p *Particle) forceFrom(target vec.Vector2) vec.Vector2 {
	delta := p.position.Sub(target)
	distance := delta.Len()
	if p.threshold > 0 && distance <= p.threshold {
		return vec.FromAngle(delta.Angle(), p.threshold-distance)
	}
	return p.origin.Sub(p.position)
}

// SetPosition moves the particle without computing a force. Its velocity is
// cleared and its resting flag is left alone.
func (p *Particle) SetPosition(pos vec.Vector2) {
	p.position = pos
	p.velocity = vec.Zero
	p.sprite.SetPosition(pos)
}

func (p *Particle) destroy() {
	p.sprite.Destroy()
	p.sprite = nopSprite{}
}
