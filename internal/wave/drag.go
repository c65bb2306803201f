package wave

import (
	"math"
	"time"
)

// Point is a position in logical pixels.
type Point struct {
	X, Y float64
}

// DragState is the gesture record. Start and Current are nil while idle.
type DragState struct {
	Active    bool
	Start     *Point
	Current   *Point
	StartTime time.Time
}

// Release is what a finished drag spawns.
type Release struct {
	At       Point
	Distance float64
	Spring   SpringPoint
	Ripple   Ripple
}

// DragController is the Idle -> Dragging -> Idle state machine. Deciding
// whether a press may start a drag (interactive targets) is the caller's job.
type DragController struct {
	state DragState
}

// Press starts a drag. A press while already dragging restarts the gesture.
func (d *DragController) Press(pt Point, now time.Time) {
	start, cur := pt, pt
	d.state = DragState{
		Active:    true,
		Start:     &start,
		Current:   &cur,
		StartTime: now,
	}
}

// Move updates the current point. It reports false while idle.
func (d *DragController) Move(pt Point) bool {
	if !d.state.Active {
		return false
	}
	cur := pt
	d.state.Current = &cur
	return true
}

// Release ends the gesture and computes the spring and ripple it leaves
// behind. ok is false when no drag was active or no point was recorded; the
// controller is idle afterwards either way.
func (d *DragController) Release(p Params, equilibriumY float64, now time.Time) (rel Release, ok bool) {
	st := d.state
	d.state = DragState{}
	if !st.Active || st.Start == nil || st.Current == nil {
		return Release{}, false
	}

	cur := *st.Current
	displacement := cur.Y - equilibriumY
	distance := math.Hypot(cur.X-st.Start.X, cur.Y-st.Start.Y)
	strength := ReleaseStrength(p, distance)

	return Release{
		At:       cur,
		Distance: distance,
		Spring:   NewSpringPoint(cur.X, displacement*p.DragStrength, now),
		Ripple:   NewRipple(p, cur.X, displacement*releaseRippleScale, strength, now),
	}, true
}

// Cancel drops the gesture without spawning anything.
func (d *DragController) Cancel() {
	d.state = DragState{}
}

func (d *DragController) Active() bool {
	return d.state.Active
}

// State returns a copy of the gesture record.
func (d *DragController) State() DragState {
	return d.state
}

// Pull is the live bend toward the pointer while dragging. The falloff is
// Gaussian so the curve stays smooth under the pointer.
func (d *DragController) Pull(p Params, x, baseY float64) float64 {
	if !d.state.Active || d.state.Current == nil {
		return 0
	}
	cur := d.state.Current
	dist := math.Abs(x-cur.X) * p.DragFalloffRate
	falloff := math.Exp(-dist * dist)
	return (cur.Y - baseY) * falloff * p.DragStrength
}

// ReleaseStrength grows with drag distance and is clamped to
// MaxReleaseStrength.
func ReleaseStrength(p Params, distance float64) float64 {
	if distance < 0 || math.IsNaN(distance) {
		distance = 0
	}
	return math.Min(p.DragRippleMultiplier*(1+distance/distanceUnit), MaxReleaseStrength)
}

// ClickRipple builds the ripple used for clicks and injected ripples: half
// the displacement from equilibrium, at the given strength.
func ClickRipple(p Params, x, y, equilibriumY, strength float64, now time.Time) Ripple {
	return NewRipple(p, x, (y-equilibriumY)*clickRippleScale, strength, now)
}
