// Package sweep evaluates launch outcomes across a range of pull fractions,
// running the flights concurrently. Each run gets its own rig and its own
// seeded random source so results stay reproducible.
package sweep

import (
	"context"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/t-aulia/glidesim/internal/config"
	"github.com/t-aulia/glidesim/internal/sim"
	"github.com/t-aulia/glidesim/internal/telemetry"
)

// Point is the outcome of one launch in the sweep.
type Point struct {
	Pull     float64
	Distance float64
	AirTime  float64
	Landed   bool
}

// Run launches the configured plane at n evenly spaced pull fractions from
// 1/n to full pull and returns the outcomes in pull order.
func Run(ctx context.Context, cfg *config.Config, n int) ([]Point, error) {
	if n < 1 {
		n = 1
	}

	points := make([]Point, n)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			fraction := float64(i+1) / float64(n)

			rng := rand.New(rand.NewSource(cfg.Seed + int64(i)))
			rig := sim.NewRig(cfg.Plane.BodyConfig(), cfg.Plane.Coefficients(), cfg.Launcher, rng)

			velocity, _ := rig.Fire(fraction, cfg.Launcher.MaxPullDistance)

			s := sim.New(rig.Body)
			distance := telemetry.NewDistance()
			airTime := telemetry.NewAirTime()
			s.AddMetric(distance)
			s.AddMetric(airTime)

			runCfg := sim.Config{
				Dt:          cfg.Dt,
				MaxDuration: cfg.Duration,
				Validate:    true,
			}

			result, err := s.Run(ctx, velocity, runCfg)
			if err != nil {
				return err
			}

			points[i] = Point{
				Pull:     fraction,
				Distance: distance.Value(),
				AirTime:  airTime.Value(),
				Landed:   result.Landed,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return points, nil
}
