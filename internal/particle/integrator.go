package particle

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/harmonica"
	"github.com/san-kum/restfield/internal/vec"
)

// Integrator turns a particle's force into its next position.
type Integrator interface {
	Advance(p *Particle, force vec.Vector2) vec.Vector2
}

// Linear moves a fixed fraction of the force each update.
type Linear struct {
	StepFactor float64
}

func (l Linear) Advance(p *Particle, force vec.Vector2) vec.Vector2 {
	return p.position.Add(force.Scale(l.StepFactor))
}

// Spring eases each particle toward position+force with a damped spring,
// carrying velocity between updates.
type Spring struct {
	spring harmonica.Spring
}

func NewSpring(fps int, frequency, damping float64) Spring {
	return Spring{spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping)}
}

func (s Spring) Advance(p *Particle, force vec.Vector2) vec.Vector2 {
	target := p.position.Add(force)
	x, vx := s.spring.Update(p.position.X, p.velocity.X, target.X)
	y, vy := s.spring.Update(p.position.Y, p.velocity.Y, target.Y)
	p.velocity = vec.New(vx, vy)
	return vec.New(x, y)
}

// IntegratorParams carries the settings any registered integrator may need.
type IntegratorParams struct {
	StepFactor      float64
	FPS             int
	SpringFrequency float64
	SpringDamping   float64
}

var integrators = map[string]func(IntegratorParams) Integrator{
	"linear": func(p IntegratorParams) Integrator { return Linear{StepFactor: p.StepFactor} },
	"spring": func(p IntegratorParams) Integrator {
		fps := p.FPS
		if fps <= 0 {
			fps = 60
		}
		return NewSpring(fps, p.SpringFrequency, p.SpringDamping)
	},
}

// NewIntegrator looks up an integrator by name.
func NewIntegrator(name string, params IntegratorParams) (Integrator, error) {
	fn, ok := integrators[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownIntegrator, name)
	}
	return fn(params), nil
}

// IntegratorNames lists the registered integrators in sorted order.
func IntegratorNames() []string {
	names := make([]string, 0, len(integrators))
	for name := range integrators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
