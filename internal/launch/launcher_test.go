package launch_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/t-aulia/glidesim/internal/launch"
	"github.com/t-aulia/glidesim/internal/vec"
)

type recordingListener struct {
	pulls    []float64
	forces   []float64
	launches []vec.Vec3
}

func (r *recordingListener) PullUpdated(distance, force float64) {
	r.pulls = append(r.pulls, distance)
	r.forces = append(r.forces, force)
}

func (r *recordingListener) Launched(velocity vec.Vec3) {
	r.launches = append(r.launches, velocity)
}

var _ = Describe("TensionCurve", func() {
	It("anchors the default curve at (0,0) and (1,1)", func() {
		curve := launch.DefaultTensionCurve()
		Expect(curve.Sample(0)).To(BeZero())
		Expect(curve.Sample(1)).To(Equal(1.0))
	})

	It("is monotonically non-decreasing", func() {
		curve := launch.DefaultTensionCurve()
		prev := -1.0
		for i := 0; i <= 100; i++ {
			v := curve.Sample(float64(i) / 100)
			Expect(v).To(BeNumerically(">=", prev))
			prev = v
		}
	})

	It("interpolates between control points", func() {
		curve := launch.DefaultTensionCurve()
		// midway between (0,0) and (0.5,0.7)
		Expect(curve.Sample(0.25)).To(BeNumerically("~", 0.35, 1e-9))
	})

	It("clamps samples outside [0,1]", func() {
		curve := launch.DefaultTensionCurve()
		Expect(curve.Sample(-0.5)).To(BeZero())
		Expect(curve.Sample(1.5)).To(Equal(1.0))
	})

	It("validates the default curve", func() {
		Expect(launch.DefaultTensionCurve().Validate()).To(Succeed())
	})

	It("rejects curves with bad anchors", func() {
		curve := launch.TensionCurve{Points: []launch.CurvePoint{
			{Pull: 0, Tension: 0.1},
			{Pull: 1, Tension: 1},
		}}
		Expect(curve.Validate()).NotTo(Succeed())
	})

	It("rejects non-monotonic curves", func() {
		curve := launch.TensionCurve{Points: []launch.CurvePoint{
			{Pull: 0, Tension: 0},
			{Pull: 0.5, Tension: 0.9},
			{Pull: 0.7, Tension: 0.4},
			{Pull: 1, Tension: 1},
		}}
		Expect(curve.Validate()).NotTo(Succeed())
	})
})

var _ = Describe("Launcher", func() {
	var (
		l        *launch.Launcher
		listener *recordingListener
		cfg      launch.Config
	)

	// launcher fires along +Z, so pulls move backward along -Z
	pullTo := func(dist float64) vec.Vec3 {
		return vec.Vec3{Z: -dist}
	}

	BeforeEach(func() {
		cfg = launch.DefaultConfig()
		l = launch.New(cfg, vec.Vec3{}, vec.IdentityBasis())
		listener = &recordingListener{}
		l.SetListener(listener)
	})

	It("starts idle", func() {
		Expect(l.Phase()).To(Equal(launch.Idle))
		Expect(l.PullDistance()).To(BeZero())
	})

	It("clamps the pull distance into [0, max]", func() {
		l.StartPull(vec.Vec3{})

		l.UpdatePull(pullTo(3))
		Expect(l.PullDistance()).To(Equal(3.0))

		l.UpdatePull(pullTo(100))
		Expect(l.PullDistance()).To(Equal(cfg.MaxPullDistance))

		// pushing forward projects negative and clamps to zero
		l.UpdatePull(pullTo(-4))
		Expect(l.PullDistance()).To(BeZero())
	})

	It("reports tension-scaled force on every update", func() {
		l.StartPull(vec.Vec3{})
		l.UpdatePull(pullTo(cfg.MaxPullDistance))

		Expect(listener.pulls).To(HaveLen(1))
		Expect(listener.forces[0]).To(BeNumerically("~", cfg.ForceMultiplier, 1e-9))
	})

	It("releases along forward with an upward component", func() {
		l.StartPull(vec.Vec3{})
		l.UpdatePull(pullTo(cfg.MaxPullDistance))

		velocity, ok := l.Release()
		Expect(ok).To(BeTrue())

		speed := cfg.ForceMultiplier // tension(1) = 1
		Expect(velocity.Z).To(BeNumerically("~", speed, 1e-9))
		Expect(velocity.Y).To(BeNumerically("~", launch.UpwardComponent*speed, 1e-9))
		Expect(velocity.X).To(BeZero())

		Expect(listener.launches).To(HaveLen(1))
		Expect(l.Phase()).To(Equal(launch.Idle))
	})

	It("releases at speed zero for a zero pull", func() {
		l.StartPull(vec.Vec3{})

		velocity, ok := l.Release()
		Expect(ok).To(BeTrue())
		Expect(velocity.Len()).To(BeZero())
	})

	It("cancel discards the gesture without launching", func() {
		l.StartPull(vec.Vec3{})
		l.UpdatePull(pullTo(2))

		l.Cancel()

		Expect(l.Phase()).To(Equal(launch.Idle))
		Expect(l.PullDistance()).To(BeZero())
		Expect(listener.launches).To(BeEmpty())
		// cancel resets the visual feedback
		Expect(listener.pulls[len(listener.pulls)-1]).To(BeZero())
	})

	It("ignores updates and releases while idle", func() {
		l.UpdatePull(pullTo(2))
		Expect(l.PullDistance()).To(BeZero())

		_, ok := l.Release()
		Expect(ok).To(BeFalse())
		Expect(listener.launches).To(BeEmpty())
	})

	It("ignores pulls once the plane has launched", func() {
		l.StartPull(vec.Vec3{})
		_, ok := l.Release()
		Expect(ok).To(BeTrue())

		l.StartPull(vec.Vec3{})
		Expect(l.Phase()).To(Equal(launch.Idle))
	})

	It("accepts a new pull cycle after re-attaching", func() {
		l.StartPull(vec.Vec3{})
		_, _ = l.Release()

		l.Attach()
		l.StartPull(vec.Vec3{})
		Expect(l.Phase()).To(Equal(launch.Pulling))
	})
})
