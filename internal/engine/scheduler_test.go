package engine

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ManualScheduler", func() {
	It("runs queued requests in order with the given timestamp", func() {
		s := NewManualScheduler()
		var got []float64
		s.RequestFrame(func(ts float64) { got = append(got, ts) })
		s.RequestFrame(func(ts float64) { got = append(got, ts+1) })

		Expect(s.Advance(5)).To(Equal(2))
		Expect(got).To(Equal([]float64{5, 6}))
		Expect(s.Pending()).To(BeZero())
	})

	It("defers requests made during Advance to the next call", func() {
		s := NewManualScheduler()
		n := 0
		var loop func(float64)
		loop = func(float64) {
			n++
			s.RequestFrame(loop)
		}
		s.RequestFrame(loop)

		s.Advance(1)
		s.Advance(2)
		Expect(n).To(Equal(2))
		Expect(s.Pending()).To(Equal(1))
	})

	It("honours cancellation before and during Advance", func() {
		s := NewManualScheduler()
		ran := map[string]bool{}
		a := s.RequestFrame(func(float64) { ran["a"] = true })
		var c FrameID
		s.RequestFrame(func(float64) {
			ran["b"] = true
			s.CancelFrame(c)
		})
		c = s.RequestFrame(func(float64) { ran["c"] = true })

		s.CancelFrame(a)
		s.CancelFrame(0)
		Expect(s.Advance(1)).To(Equal(1))
		Expect(ran).To(Equal(map[string]bool{"b": true}))
	})
})
