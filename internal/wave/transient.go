package wave

import (
	"math"
	"time"
)

// Ripple is a damped oscillation that starts at OriginX and travels outward
// at Params.RippleSpeed.
type Ripple struct {
	OriginX             float64
	InitialDisplacement float64
	Strength            float64
	Start               time.Time
	Duration            time.Duration
}

// SpringPoint is a stationary damped oscillation left behind where a drag
// was released.
type SpringPoint struct {
	OriginX      float64
	Displacement float64
	Start        time.Time
	Duration     time.Duration
}

// NewRipple stamps a ripple with the configured duration.
func NewRipple(p Params, originX, initialDisplacement, strength float64, now time.Time) Ripple {
	return Ripple{
		OriginX:             originX,
		InitialDisplacement: initialDisplacement,
		Strength:            strength,
		Start:               now,
		Duration:            p.RippleDuration,
	}
}

// NewSpringPoint stamps a spring point with SpringDuration.
func NewSpringPoint(originX, displacement float64, now time.Time) SpringPoint {
	return SpringPoint{
		OriginX:      originX,
		Displacement: displacement,
		Start:        now,
		Duration:     SpringDuration,
	}
}

// Expired reports whether the ripple has run its full duration.
func (r Ripple) Expired(now time.Time) bool {
	return now.Sub(r.Start) >= r.Duration
}

// Expired reports whether the spring has run its full duration.
func (s SpringPoint) Expired(now time.Time) bool {
	return now.Sub(s.Start) >= s.Duration
}

// RippleInfluence returns the vertical offset the ripple adds at x. The
// second result is false once the ripple is spent. Points the wavefront has
// not reached yet get exactly zero while the ripple stays active.
func RippleInfluence(p Params, r Ripple, x float64, now time.Time) (float64, bool) {
	if r.Duration <= 0 {
		return 0, false
	}
	elapsed := millis(now.Sub(r.Start))
	if elapsed/millis(r.Duration) >= 1 {
		return 0, false
	}

	distance := math.Abs(x - r.OriginX)
	wavefront := elapsed * p.RippleSpeed
	behind := wavefront - distance
	if behind < 0 {
		return 0, true
	}

	// time this point has been oscillating since the front passed it
	local := behind / p.RippleSpeed

	envelope := math.Exp(-local * p.RippleDamping)
	oscillation := math.Cos(local * p.RippleFrequency)
	spatial := math.Exp(-distance * p.RippleSpread)

	return r.InitialDisplacement * r.Strength * envelope * oscillation * spatial, true
}

// SpringInfluence returns the offset of a spring point at x. The spatial term
// is Gaussian so the bump stays local and never forms a cusp.
func SpringInfluence(p Params, s SpringPoint, x float64, now time.Time) (float64, bool) {
	elapsed := millis(now.Sub(s.Start))
	if elapsed > millis(s.Duration) {
		return 0, false
	}
	d := math.Abs(x-s.OriginX) * p.DragFalloffRate
	spatial := math.Exp(-d * d)
	envelope := math.Exp(-elapsed * p.SpringDamping)
	oscillation := math.Cos(elapsed * p.SpringFrequency)
	return s.Displacement * envelope * oscillation * spatial, true
}

// Kind tags the variant held by a Transient.
type Kind uint8

const (
	KindRipple Kind = iota + 1
	KindSpring
)

func (k Kind) String() string {
	switch k {
	case KindRipple:
		return "ripple"
	case KindSpring:
		return "spring"
	default:
		return "unknown"
	}
}

// Transient is a tagged union over the two perturbation models.
type Transient struct {
	Kind   Kind
	Ripple Ripple
	Spring SpringPoint
}

func RippleTransient(r Ripple) Transient {
	return Transient{Kind: KindRipple, Ripple: r}
}

func SpringTransient(s SpringPoint) Transient {
	return Transient{Kind: KindSpring, Spring: s}
}

// Influence dispatches to the variant's model.
func (t Transient) Influence(p Params, x float64, now time.Time) (float64, bool) {
	switch t.Kind {
	case KindRipple:
		return RippleInfluence(p, t.Ripple, x, now)
	case KindSpring:
		return SpringInfluence(p, t.Spring, x, now)
	}
	return 0, false
}

// Expired reports whether the registry should drop the transient.
func (t Transient) Expired(now time.Time) bool {
	switch t.Kind {
	case KindRipple:
		return t.Ripple.Expired(now)
	case KindSpring:
		return t.Spring.Expired(now)
	}
	return true
}
