// Package wave holds the physics of the wave line: the baseline field, the
// two transient oscillator models, the registry that owns live transients and
// the drag gesture state machine.
//
// Rates are expressed per millisecond and distances in logical pixels.
// Nothing in this package is safe for concurrent use; callers serialise.
package wave

import (
	"errors"
	"fmt"
	"time"
)

// SpringDuration is the fixed lifetime of every SpringPoint.
const SpringDuration = 5000 * time.Millisecond

// MaxReleaseStrength caps the ripple strength produced by a drag release.
const MaxReleaseStrength = 3.0

const (
	// releaseRippleScale converts a release displacement into the ripple's
	// initial displacement.
	releaseRippleScale = 0.3
	// clickRippleScale does the same for clicks and injected ripples.
	clickRippleScale = 0.5
	// distanceUnit is the drag distance that adds one multiple of
	// DragRippleMultiplier to the release strength.
	distanceUnit = 100.0
)

// Params is the immutable set of physics constants.
type Params struct {
	WaveAmplitude   float64
	WaveFrequency   float64
	WaveSpeed       float64
	BreathSpeed     float64
	BreathAmplitude float64

	RippleDuration  time.Duration
	RippleSpeed     float64
	RippleStrength  float64
	RippleFrequency float64
	RippleDamping   float64
	RippleSpread    float64

	DragFalloffRate      float64
	DragStrength         float64
	DragRippleMultiplier float64

	SpringFrequency float64
	SpringDamping   float64
}

// DefaultParams returns the tuning the line was designed around.
func DefaultParams() Params {
	return Params{
		WaveAmplitude:   20,
		WaveFrequency:   0.008,
		WaveSpeed:       0.0008,
		BreathSpeed:     0.0003,
		BreathAmplitude: 8,

		RippleDuration:  10000 * time.Millisecond,
		RippleSpeed:     0.12,
		RippleStrength:  30,
		RippleFrequency: 0.012,
		RippleDamping:   0.0008,
		RippleSpread:    0.004,

		DragFalloffRate:      0.006,
		DragStrength:         0.5,
		DragRippleMultiplier: 1.5,

		SpringFrequency: 0.008,
		SpringDamping:   0.03,
	}
}

// ErrInvalidParams is wrapped by every Validate failure.
var ErrInvalidParams = errors.New("invalid wave params")

// Validate rejects values that would stall or blow up the simulation.
func (p Params) Validate() error {
	switch {
	case p.RippleDuration <= 0:
		return fmt.Errorf("%w: ripple duration must be positive, got %s", ErrInvalidParams, p.RippleDuration)
	case p.RippleSpeed <= 0:
		return fmt.Errorf("%w: ripple speed must be positive, got %v", ErrInvalidParams, p.RippleSpeed)
	case p.RippleDamping < 0 || p.SpringDamping < 0:
		return fmt.Errorf("%w: damping must not be negative", ErrInvalidParams)
	case p.RippleSpread < 0 || p.DragFalloffRate < 0:
		return fmt.Errorf("%w: spatial falloff must not be negative", ErrInvalidParams)
	case p.WaveSpeed < 0:
		return fmt.Errorf("%w: wave speed must not be negative, got %v", ErrInvalidParams, p.WaveSpeed)
	}
	return nil
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
