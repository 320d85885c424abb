package playback_test

import (
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/rodviz/internal/playback"
)

const interval = 20 * time.Millisecond

var _ = Describe("Controller", func() {
	var c *playback.Controller

	AfterEach(func() {
		c.Close()
	})

	Context("when created", func() {
		BeforeEach(func() {
			c = playback.New(10, playback.WithInterval(interval))
		})

		It("starts paused at the first step", func() {
			Expect(c.State()).To(Equal(playback.State{Position: 0, Length: 10, Running: false}))
		})

		It("falls back to the default interval for non-positive values", func() {
			d := playback.New(3, playback.WithInterval(0))
			Expect(d.Interval()).To(Equal(playback.DefaultInterval))
		})
	})

	Context("navigation", func() {
		BeforeEach(func() {
			c = playback.New(5, playback.WithInterval(interval))
		})

		It("steps forward and back within bounds", func() {
			c.StepBack()
			Expect(c.State().Position).To(Equal(0))

			for i := 0; i < 10; i++ {
				c.StepForward()
			}
			Expect(c.State().Position).To(Equal(4))

			c.StepBack()
			Expect(c.State().Position).To(Equal(3))
		})

		It("clamps seek targets", func() {
			c.Seek(-5)
			Expect(c.State().Position).To(Equal(0))

			c.Seek(1_000_000)
			Expect(c.State().Position).To(Equal(4))

			c.Seek(2)
			Expect(c.State().Position).To(Equal(2))
		})

		It("resets to the first step", func() {
			c.Seek(3)
			c.Play()
			c.Reset()
			Expect(c.State()).To(Equal(playback.State{Position: 0, Length: 5, Running: false}))
		})
	})

	Context("autoplay", func() {
		BeforeEach(func() {
			c = playback.New(4, playback.WithInterval(interval))
		})

		It("advances until the last step and stops", func() {
			c.Play()
			Expect(c.State().Running).To(BeTrue())

			Eventually(func() playback.State { return c.State() }, time.Second, 5*time.Millisecond).
				Should(Equal(playback.State{Position: 3, Length: 4, Running: false}))
		})

		It("does not move after pause", func() {
			c.Play()
			Eventually(func() int { return c.State().Position }, time.Second, time.Millisecond).
				Should(BeNumerically(">=", 1))
			c.Pause()
			paused := c.State().Position

			Consistently(func() int { return c.State().Position }, 4*interval, 5*time.Millisecond).
				Should(Equal(paused))
			Expect(c.State().Running).To(BeFalse())
		})

		It("does not move when paused before the first tick", func() {
			c.Play()
			c.Pause()

			Consistently(func() int { return c.State().Position }, 4*interval, 5*time.Millisecond).
				Should(Equal(0))
		})

		It("does not move after close", func() {
			c.Play()
			c.Close()

			Consistently(func() int { return c.State().Position }, 4*interval, 5*time.Millisecond).
				Should(Equal(0))

			c.Play()
			Expect(c.State().Running).To(BeFalse())
		})

		It("refuses to run from the last step", func() {
			c.Seek(3)
			c.Play()
			Expect(c.State().Running).To(BeFalse())
		})

		It("toggles between playing and paused", func() {
			c.Toggle()
			Expect(c.State().Running).To(BeTrue())
			c.Toggle()
			Expect(c.State().Running).To(BeFalse())
		})

		It("keeps running while stepping manually", func() {
			c.Play()
			c.StepForward()
			Expect(c.State().Running).To(BeTrue())

			Eventually(func() bool { return c.State().Running }, time.Second, 5*time.Millisecond).
				Should(BeFalse())
			Expect(c.State().Position).To(Equal(3))
		})

		It("stops on the next tick after seeking to the last step while running", func() {
			c.Play()
			c.Seek(3)
			Expect(c.State().Running).To(BeTrue())

			Eventually(func() bool { return c.State().Running }, time.Second, 5*time.Millisecond).
				Should(BeFalse())
			Expect(c.State().Position).To(Equal(3))
		})
	})

	Context("loading a new trace", func() {
		BeforeEach(func() {
			c = playback.New(50, playback.WithInterval(interval))
		})

		It("cancels running playback and resets to the new length", func() {
			c.Play()
			Eventually(func() int { return c.State().Position }, time.Second, time.Millisecond).
				Should(BeNumerically(">=", 2))

			c.Load(3)
			Expect(c.State()).To(Equal(playback.State{Position: 0, Length: 3, Running: false}))

			Consistently(func() int { return c.State().Position }, 4*interval, 5*time.Millisecond).
				Should(Equal(0))
		})

		It("handles an empty trace", func() {
			c.Load(0)
			c.StepForward()
			c.Play()
			Expect(c.State()).To(Equal(playback.State{Position: 0, Length: 0, Running: false}))
			Expect(c.State().AtEnd()).To(BeTrue())
		})
	})

	Context("change notifications", func() {
		var (
			mu     sync.Mutex
			states []playback.State
		)

		BeforeEach(func() {
			mu.Lock()
			states = nil
			mu.Unlock()
			c = playback.New(3, playback.WithInterval(interval), playback.WithOnChange(func(s playback.State) {
				mu.Lock()
				states = append(states, s)
				mu.Unlock()
			}))
		})

		It("reports every timer-driven advance", func() {
			c.Play()
			Eventually(func() []playback.State {
				mu.Lock()
				defer mu.Unlock()
				return append([]playback.State(nil), states...)
			}, time.Second, 5*time.Millisecond).Should(Equal([]playback.State{
				{Position: 0, Length: 3, Running: true},
				{Position: 1, Length: 3, Running: true},
				{Position: 2, Length: 3, Running: false},
			}))
		})
	})
})
