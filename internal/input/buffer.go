// Package input samples pointer events into a position the field can chase.
package input

import "github.com/san-kum/restfield/internal/vec"

// Offscreen is where a released pointer is parked, far outside any field so
// it exerts no force.
var Offscreen = vec.New(-50000, -50000)

// PositionBuffer keeps the latest pointer coordinate and whether a button is
// held.
type PositionBuffer struct {
	pos    vec.Vector2
	active bool

	// TrackHover records moves even while no button is held.
	TrackHover bool
}

func NewPositionBuffer() *PositionBuffer {
	return &PositionBuffer{pos: Offscreen}
}

func (b *PositionBuffer) X() float64            { return b.pos.X }
func (b *PositionBuffer) Y() float64            { return b.pos.Y }
func (b *PositionBuffer) Position() vec.Vector2 { return b.pos }
func (b *PositionBuffer) IsActive() bool        { return b.active }

// Press starts capturing at (x, y).
func (b *PositionBuffer) Press(x, y float64) {
	b.active = true
	b.pos = vec.New(x, y)
}

// Move records (x, y) while captured. It reports whether the sample was kept.
func (b *PositionBuffer) Move(x, y float64) bool {
	if !b.active && !b.TrackHover {
		return false
	}
	b.pos = vec.New(x, y)
	return true
}

// Release ends capture and parks the pointer offscreen.
func (b *PositionBuffer) Release() {
	b.active = false
	b.Reset()
}

func (b *PositionBuffer) Reset() { b.pos = Offscreen }
