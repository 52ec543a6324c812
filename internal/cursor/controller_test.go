package cursor_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/cursorsim/internal/cursor"
	"github.com/san-kum/cursorsim/internal/effects"
	"github.com/san-kum/cursorsim/internal/motion"
	"github.com/san-kum/cursorsim/internal/smoothing"
)

type scaleEffect struct{ factor float64 }

func (e scaleEffect) Apply(s motion.State, dt float64, es *motion.EffectState) (motion.State, error) {
	s.Position = s.Position.Scale(e.factor)
	return s, nil
}

type shiftEffect struct{ by motion.Vec2 }

func (e shiftEffect) Apply(s motion.State, dt float64, es *motion.EffectState) (motion.State, error) {
	s.Position = s.Position.Add(e.by)
	return s, nil
}

// clockEffect reports its private time through the X coordinate.
type clockEffect struct{}

func (clockEffect) Apply(s motion.State, dt float64, es *motion.EffectState) (motion.State, error) {
	es.Time += dt
	s.Position.X = es.Time
	return s, nil
}

type hijackEffect struct{}

func (hijackEffect) Apply(s motion.State, dt float64, es *motion.EffectState) (motion.State, error) {
	s.Target = motion.Vec2{X: -9, Y: -9}
	s.Velocity = motion.Vec2{X: 2, Y: 3}
	return s, nil
}

var errBroken = errors.New("broken")

type failingEffect struct{}

func (failingEffect) Apply(s motion.State, dt float64, es *motion.EffectState) (motion.State, error) {
	return s, errBroken
}

type frameRecorder struct{ frames []motion.Frame }

func (r *frameRecorder) OnFrame(f motion.Frame) { r.frames = append(r.frames, f) }

var _ = Describe("Controller", func() {
	var ctrl *cursor.Controller

	BeforeEach(func() {
		ctrl = cursor.New(cursor.DefaultConfig())
	})

	It("starts at rest at the origin", func() {
		Expect(ctrl.Position()).To(Equal(motion.Vec2{}))
		Expect(ctrl.Velocity()).To(Equal(motion.Vec2{}))
		Expect(ctrl.Target()).To(Equal(motion.Vec2{}))
		Expect(ctrl.StrategyName()).To(Equal("lerp"))
		Expect(ctrl.Effects()).To(BeZero())
	})

	Describe("strategies", func() {
		It("applies lerp with the default damping", func() {
			ctrl.SetTarget(1, 0)
			Expect(ctrl.Update(0.1)).To(Succeed())
			Expect(ctrl.Position().X).To(BeNumerically("~", 1-math.Exp(-1), 1e-12))
			Expect(ctrl.Position().Y).To(BeZero())
		})

		It("applies spring with the default stiffness and damping", func() {
			cfg := cursor.DefaultConfig()
			cfg.Strategy = "spring"
			ctrl = cursor.New(cfg)

			ctrl.SetTarget(1, 0)
			Expect(ctrl.Update(0.01)).To(Succeed())
			Expect(ctrl.Velocity().X).To(BeNumerically("~", 1.5, 1e-12))
			Expect(ctrl.Position().X).To(BeNumerically("~", 0.015, 1e-12))
		})

		It("holds the start position on a zero-dt first easing frame", func() {
			cfg := cursor.DefaultConfig()
			cfg.Strategy = "easing"
			ctrl = cursor.New(cfg)

			ctrl.SetTarget(1, 1)
			Expect(ctrl.Update(0)).To(Succeed())
			Expect(ctrl.Position()).To(Equal(motion.Vec2{}))
			for i := 0; i < 20; i++ {
				Expect(ctrl.Update(0.02)).To(Succeed())
			}
			Expect(ctrl.Position().X).To(BeNumerically("~", 1, 1e-12))
			Expect(ctrl.Position().Y).To(BeNumerically("~", 1, 1e-12))
		})

		It("only uses the latest target set before an update", func() {
			ctrl.SetTarget(5, 5)
			ctrl.SetTarget(-1, 0)
			Expect(ctrl.Update(0.1)).To(Succeed())
			Expect(ctrl.Position().X).To(BeNumerically("<", 0))
			Expect(ctrl.Target()).To(Equal(motion.Vec2{X: -1}))
		})

		It("switches strategy at runtime", func() {
			ctrl.SetStrategy("spring")
			ctrl.SetTarget(1, 0)
			Expect(ctrl.Update(0.01)).To(Succeed())
			Expect(ctrl.Velocity().X).To(BeNumerically(">", 0))
		})
	})

	Describe("configuration errors", func() {
		It("fails update for an unknown strategy and keeps state", func() {
			cfg := cursor.DefaultConfig()
			cfg.Strategy = "bogus"
			ctrl = cursor.New(cfg)
			ctrl.SetTarget(1, 1)

			err := ctrl.Update(0.016)
			Expect(err).To(MatchError(motion.ErrUnknownStrategy))
			var ce *motion.ConfigError
			Expect(errors.As(err, &ce)).To(BeTrue())
			Expect(ce.Value).To(Equal("bogus"))
			Expect(ctrl.Position()).To(Equal(motion.Vec2{}))
			Expect(ctrl.Time()).To(BeZero())
		})

		It("fails update for an unknown easing function", func() {
			cfg := cursor.DefaultConfig()
			cfg.Strategy = "easing"
			cfg.Easing.Easing = "easeOutElastic"
			ctrl = cursor.New(cfg)
			ctrl.SetTarget(1, 1)

			Expect(ctrl.Update(0.016)).To(MatchError(motion.ErrUnknownEasing))
			Expect(ctrl.Position()).To(Equal(motion.Vec2{}))
		})

		It("does not commit when an effect fails", func() {
			ctrl.AddEffect(shiftEffect{by: motion.Vec2{X: 1}})
			ctrl.AddEffect(failingEffect{})
			ctrl.SetTarget(1, 1)

			Expect(ctrl.Update(0.016)).To(MatchError(errBroken))
			Expect(ctrl.Position()).To(Equal(motion.Vec2{}))
		})

		It("does not advance easing when an effect fails", func() {
			cfg := cursor.DefaultConfig()
			cfg.Strategy = "easing"
			cfg.Easing.Duration = 1
			clean := cursor.New(cfg)
			dirty := cursor.New(cfg)
			clean.SetTarget(1, 0)
			dirty.SetTarget(1, 0)

			dirty.AddEffect(failingEffect{})
			Expect(dirty.Update(0.5)).To(MatchError(errBroken))
			dirty.ClearEffects()

			Expect(clean.Update(0.1)).To(Succeed())
			Expect(dirty.Update(0.1)).To(Succeed())
			Expect(dirty.Position()).To(Equal(clean.Position()))

			s, err := dirty.Strategy("easing")
			Expect(err).NotTo(HaveOccurred())
			Expect(s.(*smoothing.Easing).Elapsed()).To(BeNumerically("~", 0.1, 1e-12))
		})

		It("names the failing effect", func() {
			ctrl.AddEffect(&effects.IdleDrift{Frequency: 1, MaxVelocity: 1, Pattern: effects.Pattern(42)})
			ctrl.SetTarget(1, 1)

			err := ctrl.Update(0.016)
			Expect(err).To(MatchError(motion.ErrUnknownPattern))
			Expect(err.Error()).To(HavePrefix("effect 0 (drift): "))
		})
	})

	Describe("position", func() {
		It("returns a copy", func() {
			ctrl.SetTarget(1, 0)
			Expect(ctrl.Update(0.1)).To(Succeed())

			p := ctrl.Position()
			p.X = 99
			Expect(ctrl.Position().X).NotTo(Equal(99.0))
		})
	})

	Describe("effect pipeline", func() {
		double := scaleEffect{factor: 2}
		shift := shiftEffect{by: motion.Vec2{X: 1}}

		It("applies effects in registration order", func() {
			ctrl.AddEffect(double)
			ctrl.AddEffect(shift)
			ctrl.SetTarget(1, 0)
			Expect(ctrl.Update(0.1)).To(Succeed())

			base := 1 - math.Exp(-1)
			s := motion.State{Position: motion.Vec2{X: base}, Target: motion.Vec2{X: 1}}
			a, _ := double.Apply(s, 0.1, &motion.EffectState{})
			b, _ := shift.Apply(a, 0.1, &motion.EffectState{})
			Expect(ctrl.Position().X).To(BeNumerically("~", b.Position.X, 1e-12))
			Expect(ctrl.Position().X).To(BeNumerically("~", base*2+1, 1e-12))
		})

		It("produces a different result when the order is swapped", func() {
			swapped := cursor.New(cursor.DefaultConfig())
			ctrl.AddEffect(double)
			ctrl.AddEffect(shift)
			swapped.AddEffect(shift)
			swapped.AddEffect(double)

			ctrl.SetTarget(1, 0)
			swapped.SetTarget(1, 0)
			Expect(ctrl.Update(0.1)).To(Succeed())
			Expect(swapped.Update(0.1)).To(Succeed())

			Expect(swapped.Position().X).NotTo(BeNumerically("~", ctrl.Position().X, 1e-6))
		})

		It("gives each registration of the same effect its own state", func() {
			shake := effects.NewHandShake()
			ctrl.AddEffect(shake)
			ctrl.AddEffect(shake)

			lerp := smoothing.NewLerp(smoothing.DefaultLerpConfig())
			target := motion.Vec2{X: 0.3, Y: 0.2}
			first := &motion.EffectState{}
			second := &motion.EffectState{}
			s := motion.State{Target: target}

			for i := 0; i < 5; i++ {
				ctrl.SetTarget(target.X, target.Y)
				Expect(ctrl.Update(0.016)).To(Succeed())

				s.Position, s.Velocity, _ = lerp.Update(s.Position, target, 0.016, s.Velocity)
				s, _ = shake.Apply(s, 0.016, first)
				s, _ = shake.Apply(s, 0.016, second)

				Expect(ctrl.Position().X).To(BeNumerically("~", s.Position.X, 1e-12))
				Expect(ctrl.Position().Y).To(BeNumerically("~", s.Position.Y, 1e-12))
			}
			Expect(first.Time).To(BeNumerically("~", 0.08, 1e-12))
			Expect(second.Time).To(BeNumerically("~", 0.08, 1e-12))
		})

		It("keeps separate clocks for isolated entries", func() {
			ctrl.AddEffect(clockEffect{})
			Expect(ctrl.Update(0.5)).To(Succeed())
			Expect(ctrl.Update(0.5)).To(Succeed())

			ctrl.AddEffect(clockEffect{})
			Expect(ctrl.Update(0.25)).To(Succeed())
			// Second entry overwrites X with its own clock.
			Expect(ctrl.Position().X).To(BeNumerically("~", 0.25, 1e-12))
		})

		It("discards state on clear and starts fresh on re-registration", func() {
			ctrl.AddEffect(clockEffect{})
			for i := 0; i < 3; i++ {
				Expect(ctrl.Update(0.1)).To(Succeed())
			}
			Expect(ctrl.Position().X).To(BeNumerically("~", 0.3, 1e-12))

			ctrl.ClearEffects()
			Expect(ctrl.Effects()).To(BeZero())

			ctrl.AddEffect(clockEffect{})
			Expect(ctrl.Update(0.1)).To(Succeed())
			Expect(ctrl.Position().X).To(BeNumerically("~", 0.1, 1e-12))
		})

		It("never lets an effect change the target", func() {
			ctrl.AddEffect(hijackEffect{})
			ctrl.SetTarget(0.5, 0.5)
			Expect(ctrl.Update(0.016)).To(Succeed())

			Expect(ctrl.Target()).To(Equal(motion.Vec2{X: 0.5, Y: 0.5}))
			Expect(ctrl.Velocity()).To(Equal(motion.Vec2{X: 2, Y: 3}))
		})
	})

	Describe("observers", func() {
		It("receives every committed frame", func() {
			rec := &frameRecorder{}
			ctrl.AddObserver(rec)
			ctrl.SetTarget(1, 0)

			Expect(ctrl.Update(0.1)).To(Succeed())
			Expect(ctrl.Update(0.1)).To(Succeed())
			ctrl.SetStrategy("bogus")
			Expect(ctrl.Update(0.1)).NotTo(Succeed())

			Expect(rec.frames).To(HaveLen(2))
			Expect(rec.frames[1].Time).To(BeNumerically("~", 0.2, 1e-12))
			Expect(rec.frames[1].Position).To(Equal(ctrl.Position()))
			Expect(rec.frames[1].Target).To(Equal(motion.Vec2{X: 1}))
		})
	})

	Describe("tuning", func() {
		It("sets a parameter on the active strategy", func() {
			ctrl.SetStrategy("spring")
			Expect(ctrl.Tune("stiffness", 40)).To(Succeed())

			s, err := ctrl.Strategy("spring")
			Expect(err).NotTo(HaveOccurred())
			Expect(s.(motion.Configurable).Params()).To(HaveKeyWithValue("stiffness", 40.0))
		})

		It("rejects unknown parameters and strategies", func() {
			Expect(errors.Is(ctrl.Tune("mass", 2), motion.ErrUnknownParam)).To(BeTrue())

			ctrl.SetStrategy("bogus")
			Expect(errors.Is(ctrl.Tune("damping", 1), motion.ErrUnknownStrategy)).To(BeTrue())
		})
	})

	Describe("reset", func() {
		It("zeroes state and keeps the pipeline", func() {
			ctrl.AddEffect(clockEffect{})
			ctrl.SetTarget(1, 1)
			Expect(ctrl.Update(0.4)).To(Succeed())

			ctrl.Reset()
			Expect(ctrl.Position()).To(Equal(motion.Vec2{}))
			Expect(ctrl.Target()).To(Equal(motion.Vec2{}))
			Expect(ctrl.Time()).To(BeZero())
			Expect(ctrl.Effects()).To(Equal(1))

			Expect(ctrl.Update(0.1)).To(Succeed())
			Expect(ctrl.Position().X).To(BeNumerically("~", 0.1, 1e-12))
		})
	})
})
