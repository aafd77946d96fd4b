// Package vec provides the two-dimensional vector used for particle and
// pointer coordinates.
package vec

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Vector2 is an (x, y) coordinate pair. It is a value type; every operation
// returns a new vector and leaves the receiver untouched.
type Vector2 struct {
	X, Y float64
}

// Zero is the origin of the coordinate system.
var Zero = Vector2{}

func New(x, y float64) Vector2 { return Vector2{X: x, Y: y} }

func (v Vector2) r2() r2.Vec { return r2.Vec{X: v.X, Y: v.Y} }

func fromR2(p r2.Vec) Vector2 { return Vector2{X: p.X, Y: p.Y} }

func (v Vector2) Add(o Vector2) Vector2 { return fromR2(r2.Add(v.r2(), o.r2())) }

func (v Vector2) Sub(o Vector2) Vector2 { return fromR2(r2.Sub(v.r2(), o.r2())) }

// Scale multiplies both coordinates by s. A non-finite factor yields Zero.
func (v Vector2) Scale(s float64) Vector2 {
	if math.IsNaN(s) || math.IsInf(s, 0) {
		return Zero
	}
	return fromR2(r2.Scale(s, v.r2()))
}

// Lerp moves v toward o by fraction f: f=0 returns v, f=1 returns o.
func (v Vector2) Lerp(o Vector2, f float64) Vector2 {
	return v.Add(o.Sub(v).Scale(f))
}

func (v Vector2) Equal(o Vector2) bool { return v.X == o.X && v.Y == o.Y }

// Len is the Euclidean norm.
func (v Vector2) Len() float64 { return r2.Norm(v.r2()) }

func (v Vector2) Distance(o Vector2) float64 { return v.Sub(o).Len() }

// Angle returns atan2(y, x). The zero vector has angle 0.
func (v Vector2) Angle() float64 {
	if v.X == 0 && v.Y == 0 {
		return 0
	}
	return math.Atan2(v.Y, v.X)
}

// FromAngle builds a vector of length r pointing at angle theta.
func FromAngle(theta, r float64) Vector2 {
	s, c := math.Sincos(theta)
	return Vector2{X: c * r, Y: s * r}
}

// IsFinite reports whether both coordinates are neither NaN nor Inf.
func (v Vector2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

func (v Vector2) String() string {
	return fmt.Sprintf("Vector2(%g, %g)", v.X, v.Y)
}
