// Package palette generates sine-wave rainbow gradients.
//
// Each channel follows sin(frequency*i + phase)*width + center, so the
// center/width pair picks how saturated the result is: 128/127 spans the full
// range, 230/25 gives pastels.
package palette

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultLength is the number of colors in each named gradient.
const DefaultLength = 50

// Params describes a gradient.
type Params struct {
	Frequency [3]float64
	Phase     [3]float64
	Center    float64
	Width     float64
	Length    int
}

var rainbow = Params{
	Frequency: [3]float64{.3, .3, .3},
	Phase:     [3]float64{0, 2, 4},
	Center:    128,
	Width:     127,
	Length:    DefaultLength,
}

func withTone(center, width float64) Params {
	p := rainbow
	p.Center = center
	p.Width = width
	return p
}

var named = map[string]Params{
	"bright": rainbow,
	"pastel": withTone(230, 25),
	"medium": withTone(230, 40),
	"dark":   withTone(230, 55),
}

// Names lists the built-in gradients.
func Names() []string {
	names := make([]string, 0, len(named))
	for n := range named {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Gradient is an ordered list of colors.
type Gradient []colorful.Color

// Named returns a built-in gradient. Unknown names fall back to "bright".
func Named(name string) Gradient {
	p, ok := named[strings.ToLower(name)]
	if !ok {
		p = rainbow
	}
	return Make(p)
}

// Make builds the gradient described by p.
func Make(p Params) Gradient {
	n := p.Length
	if n <= 0 {
		n = DefaultLength
	}
	g := make(Gradient, n)
	for i := range g {
		var ch [3]uint8
		for c := 0; c < 3; c++ {
			v := math.Floor(math.Sin(p.Frequency[c]*float64(i)+p.Phase[c])*p.Width + p.Center)
			ch[c] = clampByte(v)
		}
		g[i] = colorful.Color{R: float64(ch[0]) / 255, G: float64(ch[1]) / 255, B: float64(ch[2]) / 255}
	}
	return g
}

func clampByte(v float64) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return uint8(v)
	}
}

// Hex returns "#rrggbb" strings.
func (g Gradient) Hex() []string {
	out := make([]string, len(g))
	for i, c := range g {
		out[i] = c.Hex()
	}
	return out
}

// Packed returns 0xRRGGBB values.
func (g Gradient) Packed() []uint32 {
	out := make([]uint32, len(g))
	for i, c := range g {
		r, gg, b := c.RGB255()
		out[i] = uint32(r)<<16 | uint32(gg)<<8 | uint32(b)
	}
	return out
}

// At maps t in [0,1] onto the gradient, clamping outside values.
func (g Gradient) At(t float64) colorful.Color {
	if len(g) == 0 {
		return colorful.Color{}
	}
	if math.IsNaN(t) || t <= 0 {
		return g[0]
	}
	if t >= 1 {
		return g[len(g)-1]
	}
	return g[int(t*float64(len(g)-1)+0.5)]
}

// Blend mixes the gradient toward c by fraction f in Lab space.
func (g Gradient) Blend(c colorful.Color, f float64) Gradient {
	out := make(Gradient, len(g))
	for i, gc := range g {
		out[i] = gc.BlendLab(c, f).Clamped()
	}
	return out
}

// Random picks a color from the named gradient.
func Random(name string, rng *rand.Rand) colorful.Color {
	g := Named(name)
	return g[rng.Intn(len(g))]
}

// Swatch renders a gradient as "#rrggbb" strings joined by spaces, mostly for
// the CLI.
func (g Gradient) Swatch() string {
	return strings.Join(g.Hex(), " ")
}

func (p Params) String() string {
	return fmt.Sprintf("freq=%v phase=%v center=%g width=%g len=%d", p.Frequency, p.Phase, p.Center, p.Width, p.Length)
}
