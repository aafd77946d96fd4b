package particle

import (
	"testing"

	. "github.com/onsi/gomega"
	"github.com/san-kum/restfield/internal/vec"
)

type spriteLedger struct {
	sprites []*recordingSprite
}

func (l *spriteLedger) NewSprite(origin vec.Vector2) Sprite {
	s := &recordingSprite{pos: origin}
	l.sprites = append(l.sprites, s)
	return s
}

func (l *spriteLedger) live() int {
	n := 0
	for _, s := range l.sprites {
		if s.destroyed == 0 {
			n++
		}
	}
	return n
}

func newTestField(t *testing.T, threshold float64) (*Field, *spriteLedger) {
	t.Helper()
	cfg := DefaultFieldConfig()
	cfg.Particle.Threshold = threshold
	ledger := &spriteLedger{}
	f, err := NewField(cfg, ledger)
	if err != nil {
		t.Fatalf("NewField: %v", err)
	}
	return f, ledger
}

var offscreen = vec.New(-50000, -50000)

func TestNewFieldRejectsBadInput(t *testing.T) {
	g := NewWithT(t)

	_, err := NewField(DefaultFieldConfig(), nil)
	g.Expect(err).To(MatchError(ErrNilFactory))

	cfg := DefaultFieldConfig()
	cfg.Particle.StepFactor = 0
	_, err = NewField(cfg, NopSprites)
	g.Expect(err).To(MatchError(ErrInvalidConfig))

	cfg = DefaultFieldConfig()
	cfg.Grid.MaxParticles = 0
	_, err = NewField(cfg, NopSprites)
	g.Expect(err).To(MatchError(ErrInvalidConfig))
}

func TestFieldInitializeBuildsRowMajorGrid(t *testing.T) {
	g := NewWithT(t)
	f, ledger := newTestField(t, 3)

	g.Expect(f.State()).To(Equal(StateUninitialized))
	g.Expect(f.Initialize(Layout{Width: 3, Height: 2})).To(Succeed())

	g.Expect(f.State()).To(Equal(StateActive))
	g.Expect(f.CanUpdate()).To(BeTrue())
	g.Expect(f.IsResting()).To(BeTrue())
	g.Expect(f.Len()).To(Equal(6))
	g.Expect(ledger.sprites).To(HaveLen(6))

	origins := make([]vec.Vector2, 0, 6)
	for _, p := range f.Particles() {
		origins = append(origins, p.Origin())
	}
	g.Expect(origins).To(Equal([]vec.Vector2{
		vec.New(0.5, 0.5), vec.New(1.5, 0.5), vec.New(2.5, 0.5),
		vec.New(0.5, 1.5), vec.New(1.5, 1.5), vec.New(2.5, 1.5),
	}))
}

func TestFieldReinitializeReleasesPreviousSprites(t *testing.T) {
	g := NewWithT(t)
	f, ledger := newTestField(t, 3)

	g.Expect(f.Initialize(Layout{Width: 4, Height: 4})).To(Succeed())
	g.Expect(f.Initialize(Layout{Width: 2, Height: 2})).To(Succeed())

	g.Expect(ledger.sprites).To(HaveLen(20))
	g.Expect(ledger.live()).To(Equal(4))
	g.Expect(f.Len()).To(Equal(4))
}

func TestFieldInitializeRejectsBadLayout(t *testing.T) {
	g := NewWithT(t)
	f, _ := newTestField(t, 3)

	g.Expect(f.Initialize(Layout{Width: -1, Height: 5})).To(MatchError(ErrInvalidLayout))
	g.Expect(f.State()).To(Equal(StateUninitialized))
}

func TestFieldInitializeCapsHugeLayouts(t *testing.T) {
	for _, l := range []Layout{{Width: 1e300, Height: 3}, {Width: 1e6, Height: 1e6}} {
		g := NewWithT(t)
		f, ledger := newTestField(t, 3)

		g.Expect(f.Initialize(l)).To(Succeed())
		g.Expect(f.Len()).To(BeNumerically(">", 0))
		g.Expect(f.Len()).To(BeNumerically("<=", DefaultMaxParticles))
		g.Expect(ledger.live()).To(Equal(f.Len()))
	}
}

func TestFieldUpdateBeforeInitializeIsNoop(t *testing.T) {
	f, _ := newTestField(t, 3)
	f.Update(vec.New(1, 1))
	if f.Len() != 0 || !f.IsResting() {
		t.Errorf("uninitialized field changed: %v", f)
	}
}

func TestFieldRestingIsConjunction(t *testing.T) {
	g := NewWithT(t)
	f, _ := newTestField(t, 2)
	g.Expect(f.Initialize(Layout{Width: 20, Height: 1})).To(Succeed())

	// only the particles near x=1 are disturbed
	f.Update(vec.New(1, 0.5))
	g.Expect(f.IsResting()).To(BeFalse())

	stats := f.Stats()
	g.Expect(stats.Particles).To(Equal(20))
	g.Expect(stats.Resting).To(BeNumerically(">", 0))
	g.Expect(stats.Resting).To(BeNumerically("<", 20))

	all := true
	for _, p := range f.Particles() {
		all = all && p.IsResting()
	}
	g.Expect(f.IsResting()).To(Equal(all))
}

func TestFieldSettlesAfterPointerLeaves(t *testing.T) {
	g := NewWithT(t)
	f, _ := newTestField(t, 4)
	g.Expect(f.Initialize(Layout{Width: 16, Height: 8})).To(Succeed())

	for i := 0; i < 5; i++ {
		f.Update(vec.New(8, 4))
	}
	g.Expect(f.Stats().MaxDisplacement).To(BeNumerically(">", 0.5))

	frames := 0
	for frames = 1; frames < 500; frames++ {
		f.Update(offscreen)
		if f.IsResting() {
			break
		}
	}
	g.Expect(f.IsResting()).To(BeTrue())
	g.Expect(f.Stats().Resting).To(Equal(f.Len()))
}

func TestFieldEmptyIsResting(t *testing.T) {
	f, _ := newTestField(t, 3)
	if err := f.Initialize(Layout{}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	f.Update(vec.New(0, 0))
	if !f.IsResting() || f.Len() != 0 {
		t.Errorf("empty field: resting=%v len=%d", f.IsResting(), f.Len())
	}
}

func TestFieldDestroy(t *testing.T) {
	g := NewWithT(t)
	f, ledger := newTestField(t, 3)
	g.Expect(f.Initialize(Layout{Width: 3, Height: 3})).To(Succeed())

	f.Destroy()
	f.Destroy()

	g.Expect(f.State()).To(Equal(StateDestroyed))
	g.Expect(f.CanUpdate()).To(BeFalse())
	g.Expect(f.Len()).To(BeZero())
	g.Expect(ledger.live()).To(BeZero())
	for _, s := range ledger.sprites {
		g.Expect(s.destroyed).To(Equal(1))
	}

	f.Update(vec.New(1, 1))
	g.Expect(f.Initialize(Layout{Width: 3, Height: 3})).To(MatchError(ErrDestroyed))
}
