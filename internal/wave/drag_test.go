package wave

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDragReleaseScenario(t *testing.T) {
	p := DefaultParams()
	var d DragController

	d.Press(Point{X: 0, Y: 200}, epoch)
	require.True(t, d.Active())
	require.True(t, d.Move(Point{X: 0, Y: 400}))

	rel, ok := d.Release(p, 300, at(250))
	require.True(t, ok)

	assert.Equal(t, Point{X: 0, Y: 400}, rel.At)
	assert.InDelta(t, 200.0, rel.Distance, 1e-9)

	assert.Equal(t, 0.0, rel.Spring.OriginX)
	assert.InDelta(t, 50.0, rel.Spring.Displacement, 1e-9)
	assert.Equal(t, SpringDuration, rel.Spring.Duration)
	assert.Equal(t, at(250), rel.Spring.Start)

	assert.Equal(t, 0.0, rel.Ripple.OriginX)
	assert.InDelta(t, 30.0, rel.Ripple.InitialDisplacement, 1e-9)
	assert.Equal(t, 3.0, rel.Ripple.Strength)
	assert.Equal(t, p.RippleDuration, rel.Ripple.Duration)

	st := d.State()
	assert.False(t, st.Active)
	assert.Nil(t, st.Start)
	assert.Nil(t, st.Current)
	assert.True(t, st.StartTime.IsZero())
}

func TestDragMoveWhileIdle(t *testing.T) {
	var d DragController
	assert.False(t, d.Move(Point{X: 10, Y: 10}))
	assert.Nil(t, d.State().Current)
}

func TestDragReleaseWithoutPress(t *testing.T) {
	var d DragController
	_, ok := d.Release(DefaultParams(), 300, epoch)
	assert.False(t, ok)
}

func TestDragReleaseWithoutCurrentPoint(t *testing.T) {
	d := DragController{state: DragState{Active: true, Start: &Point{X: 1, Y: 1}}}
	_, ok := d.Release(DefaultParams(), 300, epoch)
	assert.False(t, ok)
	assert.False(t, d.Active())
}

func TestDragCancel(t *testing.T) {
	var d DragController
	d.Press(Point{X: 3, Y: 4}, epoch)
	d.Cancel()
	assert.False(t, d.Active())
	_, ok := d.Release(DefaultParams(), 0, epoch)
	assert.False(t, ok)
}

func TestReleaseStrengthClamp(t *testing.T) {
	p := DefaultParams()
	assert.InDelta(t, 1.5, ReleaseStrength(p, 0), 1e-12)
	assert.InDelta(t, 2.25, ReleaseStrength(p, 50), 1e-12)
	for dist := 0.0; dist < 1e6; dist = dist*1.7 + 1 {
		require.LessOrEqual(t, ReleaseStrength(p, dist), MaxReleaseStrength)
	}
	assert.Equal(t, MaxReleaseStrength, ReleaseStrength(p, math.Inf(1)))
	assert.InDelta(t, 1.5, ReleaseStrength(p, math.NaN()), 1e-12)
}

func TestDragPull(t *testing.T) {
	p := DefaultParams()
	var d DragController
	assert.Zero(t, d.Pull(p, 0, 300))

	d.Press(Point{X: 100, Y: 400}, epoch)
	assert.InDelta(t, 50.0, d.Pull(p, 100, 300), 1e-9)

	far := d.Pull(p, 600, 300)
	near := d.Pull(p, 150, 300)
	assert.Less(t, far, near)
	assert.Greater(t, far, 0.0)

	// symmetric and smooth around the pointer
	assert.InDelta(t, d.Pull(p, 90, 300), d.Pull(p, 110, 300), 1e-9)
	left := d.Pull(p, 100-1e-4, 300)
	right := d.Pull(p, 100+1e-4, 300)
	assert.InDelta(t, left, right, 1e-9)
}
