package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Driver", func() {
	var r *rig

	BeforeEach(func() {
		r = newRig()
		r.driver.Tick(0)
	})

	Context("while running", func() {
		It("advances simulated time by the clamped wall delta", func() {
			r.driver.Tick(ms(20))
			r.driver.Tick(ms(520))
			Expect(r.driver.SimTime()).To(BeNumerically("~", 0.07, 1e-12))
		})

		It("hands the composer the same time the audio sees", func() {
			r.driver.Tick(ms(33))
			last := r.audio.calls[len(r.audio.calls)-1]
			Expect(r.composer.lastSimTime).To(Equal(last.simTime))
		})

		It("fills the frame with telemetry for the snapshot", func() {
			r.driver.Tick(ms(16))
			f := r.driver.Frame()
			Expect(f.Telemetry.PulseRate).To(Equal(r.src.p.PulseFrequency))
			Expect(f.FlameLength).To(BeNumerically(">=", 120))
		})
	})

	Context("while paused", func() {
		BeforeEach(func() {
			r.driver.Tick(ms(16))
			r.src.p.Paused = true
		})

		It("freezes the clock and particles", func() {
			t0, n0 := r.driver.SimTime(), r.ps.Len()
			for i := 1; i <= 10; i++ {
				r.driver.Tick(ms(16 + i*16))
			}
			Expect(r.driver.SimTime()).To(Equal(t0))
			Expect(r.ps.Len()).To(Equal(n0))
		})

		It("keeps the overlay and audio live but not the scene", func() {
			scenes := r.composer.scenes
			r.driver.Tick(ms(32))
			r.driver.Tick(ms(48))
			Expect(r.composer.scenes).To(Equal(scenes))
			Expect(r.composer.overlays).To(Equal(scenes + 2))
			Expect(r.audio.calls).To(HaveLen(scenes + 2))
		})

		It("passes knob changes to audio at the frozen time", func() {
			t0 := r.driver.SimTime()
			r.src.p.FuelFlow = 0.3
			r.src.p.PulseFrequency = 75
			r.driver.Tick(ms(32))
			last := r.audio.calls[len(r.audio.calls)-1]
			Expect(last.p.FuelFlow).To(Equal(0.3))
			Expect(last.p.PulseFrequency).To(Equal(75.0))
			Expect(last.simTime).To(Equal(t0))
		})

		It("resumes from the frozen time without a jump", func() {
			t0 := r.driver.SimTime()
			r.driver.Tick(ms(2000))
			r.src.p.Paused = false
			r.driver.Tick(ms(2010))
			Expect(r.driver.SimTime()).To(BeNumerically("~", t0+0.01, 1e-12))
		})
	})

	Context("when the surface goes away", func() {
		It("skips frames until it is back", func() {
			r.surface.ready = false
			calls := len(r.audio.calls)
			Expect(r.driver.Tick(ms(16))).To(BeFalse())
			Expect(r.audio.calls).To(HaveLen(calls))

			r.surface.ready = true
			Expect(r.driver.Tick(ms(32))).To(BeTrue())
		})
	})

	Context("after Stop", func() {
		It("ignores further ticks", func() {
			r.driver.Stop()
			idx := r.driver.Frame().Index
			r.driver.Tick(ms(16))
			Expect(r.driver.Frame().Index).To(Equal(idx))
			Expect(r.driver.Stopped()).To(BeTrue())
		})
	})
})
