package engine

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Engine", func() {
	var (
		sched   *ManualScheduler
		eng     *Engine
		calls   []string
		renders int
	)

	record := func(name string) Listener {
		return func(float64) { calls = append(calls, name) }
	}

	BeforeEach(func() {
		calls = nil
		renders = 0
		sched = NewManualScheduler()
		var err error
		eng, err = New(func() {
			renders++
			calls = append(calls, "render")
		}, sched)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("construction", func() {
		It("rejects a nil render callback", func() {
			e, err := New(nil, sched)
			Expect(err).To(MatchError(ErrNilRenderer))
			Expect(e).To(BeNil())
		})

		It("rejects a nil scheduler", func() {
			_, err := New(func() {}, nil)
			Expect(err).To(MatchError(ErrNilScheduler))
		})

		It("starts idle with no listeners", func() {
			Expect(eng.IsRunning()).To(BeFalse())
			Expect(eng.HasListeners()).To(BeFalse())
			Expect(eng.InUpdate()).To(BeFalse())
			Expect(eng.State()).To(Equal(StateActive))
		})
	})

	Describe("listener registry", func() {
		It("tracks whether any phase has listeners", func() {
			h := eng.OnUpdateComplete(record("complete"))
			Expect(h).NotTo(BeZero())
			Expect(eng.HasListeners()).To(BeTrue())

			Expect(eng.RemoveUpdate(h)).To(BeFalse(), "wrong phase")
			Expect(eng.HasListeners()).To(BeTrue())

			Expect(eng.RemoveUpdateComplete(h)).To(BeTrue())
			Expect(eng.HasListeners()).To(BeFalse())
		})

		It("issues distinct handles for the same function", func() {
			fn := record("u")
			h1 := eng.OnUpdate(fn)
			h2 := eng.OnUpdate(fn)
			Expect(h1).NotTo(Equal(h2))

			Expect(eng.Remove(h1)).To(BeTrue())
			eng.Update(10)
			Expect(calls).To(Equal([]string{"u", "render"}))
		})

		It("ignores nil listeners", func() {
			Expect(eng.OnUpdate(nil)).To(BeZero())
			Expect(eng.HasListeners()).To(BeFalse())
		})
	})

	Describe("Update", func() {
		It("dispatches phases in order and then renders", func() {
			eng.OnUpdateComplete(record("complete"))
			eng.OnUpdate(record("update-1"))
			eng.OnUpdateStart(record("start"))
			eng.OnUpdate(record("update-2"))

			eng.Update(10)
			eng.Update(20)

			one := []string{"start", "update-1", "update-2", "complete", "render"}
			Expect(calls).To(Equal(append(append([]string{}, one...), one...)))
			Expect(eng.Frames()).To(BeEquivalentTo(2))
		})

		It("passes the elapsed time to every phase", func() {
			var deltas []float64
			eng.OnUpdateStart(func(d float64) { deltas = append(deltas, d) })
			eng.OnUpdate(func(d float64) { deltas = append(deltas, d) })

			eng.Update(11)
			Expect(deltas).To(Equal([]float64{10, 10}))
		})

		It("does nothing without listeners but remembers the timestamp", func() {
			eng.Update(50)
			Expect(renders).To(BeZero())
			Expect(eng.prevTime).To(Equal(50.0))
		})

		It("skips non-increasing timestamps", func() {
			eng.OnUpdate(record("u"))
			eng.Update(10)
			eng.Update(10)
			eng.Update(5)
			Expect(renders).To(Equal(1))
			Expect(eng.prevTime).To(Equal(5.0))
		})

		It("rejects re-entrant calls from a listener", func() {
			depth := 0
			eng.OnUpdate(func(float64) {
				depth++
				eng.Update(1000)
			})

			eng.Update(10)
			Expect(depth).To(Equal(1))
			Expect(renders).To(Equal(1))
			Expect(eng.InUpdate()).To(BeFalse())
		})

		It("rejects re-entrant calls from the render callback", func() {
			var e *Engine
			n := 0
			e, _ = New(func() {
				n++
				e.Update(1000)
			}, sched)
			e.OnUpdate(func(float64) {})

			e.Update(10)
			Expect(n).To(Equal(1))
		})

		It("does not dispatch while a frame request is pending", func() {
			eng.OnUpdate(record("u"))
			eng.Start()
			Expect(sched.Pending()).To(Equal(1))

			eng.Update(10)
			Expect(renders).To(BeZero())
		})

		It("uses the clock for a zero timestamp", func() {
			now := 0.0
			e, _ := New(func() { renders++ }, sched, WithClock(func() float64 { return now }))
			e.OnUpdate(func(float64) {})

			now = 40
			e.Update(0)
			Expect(renders).To(Equal(1))
			Expect(e.prevTime).To(Equal(40.0))
		})

		It("keeps negative timestamps instead of consulting the clock", func() {
			e, _ := New(func() { renders++ }, sched, WithClock(func() float64 { return 100 }))
			e.OnUpdate(func(float64) {})
			e.Update(1)
			Expect(renders).To(Equal(1))

			e.Update(-5)
			Expect(renders).To(Equal(1))
			Expect(e.prevTime).To(Equal(-5.0))
		})

		It("ignores non-finite timestamps", func() {
			eng.OnUpdate(record("u"))
			eng.Update(10)
			Expect(renders).To(Equal(1))

			for _, ts := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
				eng.Update(ts)
				Expect(eng.prevTime).To(Equal(10.0))
			}
			Expect(renders).To(Equal(1))

			eng.Update(20)
			Expect(renders).To(Equal(2))
			Expect(eng.prevTime).To(Equal(20.0))
		})
	})

	Describe("frame loop", func() {
		BeforeEach(func() {
			eng.OnUpdate(record("u"))
		})

		It("keeps requesting frames while running", func() {
			eng.Start()
			eng.Start()
			Expect(sched.Pending()).To(Equal(1))

			for ts := 10.0; ts <= 30; ts += 10 {
				Expect(sched.Advance(ts)).To(Equal(1))
			}
			Expect(renders).To(Equal(3))
			Expect(sched.Pending()).To(Equal(1))
		})

		It("cancels the pending request on stop", func() {
			eng.Start()
			sched.Advance(10)
			eng.Stop()

			Expect(eng.IsRunning()).To(BeFalse())
			Expect(sched.Pending()).To(BeZero())
			Expect(sched.Advance(20)).To(BeZero())
			Expect(renders).To(Equal(1))
		})

		It("finishes the in-flight frame when stopped by a listener", func() {
			eng.OnUpdateStart(func(float64) { eng.Stop() })
			eng.Start()
			sched.Advance(10)

			Expect(calls).To(Equal([]string{"u", "render"}))
			Expect(sched.Pending()).To(BeZero())
		})

		It("goes dormant when the last listener is removed and wakes on a new one", func() {
			e, _ := New(func() { renders++ }, sched)
			h := e.OnUpdate(func(float64) {})
			e.Start()
			e.Remove(h)

			sched.Advance(10)
			Expect(renders).To(BeZero())
			Expect(sched.Pending()).To(BeZero())
			Expect(e.IsRunning()).To(BeTrue())

			e.OnUpdate(func(float64) {})
			Expect(sched.Pending()).To(Equal(1))
			sched.Advance(20)
			Expect(renders).To(Equal(1))
		})
	})

	Describe("Step", func() {
		BeforeEach(func() {
			eng.OnUpdate(record("u"))
		})

		It("advances one frame without scheduling more", func() {
			eng.Step(10)
			Expect(renders).To(Equal(1))
			Expect(sched.Pending()).To(BeZero())
		})

		It("is ignored while running", func() {
			eng.Start()
			eng.Step(10)
			Expect(renders).To(BeZero())
		})

		It("is ignored from inside a dispatch", func() {
			eng.OnUpdate(func(float64) { eng.Step(500) })
			eng.Step(10)
			Expect(renders).To(Equal(1))
		})
	})

	Describe("Destroy", func() {
		It("stops and drops every listener", func() {
			eng.OnUpdate(record("u"))
			eng.Start()
			eng.Destroy()

			Expect(eng.State()).To(Equal(StateDestroyed))
			Expect(eng.IsRunning()).To(BeFalse())
			Expect(eng.HasListeners()).To(BeFalse())
			Expect(sched.Pending()).To(BeZero())

			Expect(eng.OnUpdate(record("late"))).To(BeZero())
			eng.Start()
			eng.Update(100)
			Expect(renders).To(BeZero())
		})
	})
})
