package viz

import (
	"github.com/san-kum/restfield/internal/particle"
	"github.com/san-kum/restfield/internal/vec"
)

// dot is the sprite a particle drives; the canvas is redrawn from the live
// dots every frame.
type dot struct {
	layer  *dotLayer
	origin vec.Vector2
	pos    vec.Vector2
	dead   bool
}

func (d *dot) SetPosition(p vec.Vector2) { d.pos = p }

func (d *dot) Destroy() {
	if d.dead {
		return
	}
	d.dead = true
	d.layer.dead++
}

// heat is the displacement as a fraction of threshold.
func (d *dot) heat(threshold float64) float64 {
	if threshold <= 0 {
		return 0
	}
	return d.pos.Distance(d.origin) / threshold
}

// dotLayer is the SpriteFactory handed to the field.
type dotLayer struct {
	dots []*dot
	dead int
}

var _ particle.SpriteFactory = (*dotLayer)(nil)

func (l *dotLayer) NewSprite(origin vec.Vector2) particle.Sprite {
	d := &dot{layer: l, origin: origin, pos: origin}
	l.dots = append(l.dots, d)
	return d
}

// live drops destroyed dots and returns the rest in creation order.
func (l *dotLayer) live() []*dot {
	if l.dead == 0 {
		return l.dots
	}
	kept := l.dots[:0]
	for _, d := range l.dots {
		if !d.dead {
			kept = append(kept, d)
		}
	}
	for i := len(kept); i < len(l.dots); i++ {
		l.dots[i] = nil
	}
	l.dots = kept
	l.dead = 0
	return l.dots
}

// draw plots every live dot onto c.
func (l *dotLayer) draw(c *Canvas, threshold float64) {
	c.Clear()
	for _, d := range l.live() {
		c.Plot(int(d.pos.X), int(d.pos.Y), d.heat(threshold))
	}
}
