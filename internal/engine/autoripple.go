package engine

import (
	"context"
	"math/rand"
	"time"
)

// Injector is the one call collaborators need to disturb the line.
type Injector interface {
	AddRipple(x, y float64, strength ...float64) bool
	Surface() Surface
}

// AutoRipple drops a ripple at a random point of the surface every interval
// until ctx is done. It blocks; run it in its own goroutine.
func AutoRipple(ctx context.Context, inj Injector, interval time.Duration, rng *rand.Rand) {
	if interval <= 0 {
		return
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s := inj.Surface()
			if s.Width <= 0 || s.Height <= 0 {
				continue
			}
			x := rng.Float64() * s.Width
			// keep the disturbance within the middle half of the surface
			y := s.Height * (0.25 + rng.Float64()*0.5)
			inj.AddRipple(x, y)
		}
	}
}
