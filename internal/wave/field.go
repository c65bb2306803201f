package wave

import (
	"math"
	"time"

	"github.com/iburimskiy/wave-line/internal/noise"
)

// Octave multipliers, chosen so the three layers never line up into an
// obviously periodic pattern.
var octaves = [...]struct {
	freq, time, amp float64
}{
	{1, 0.5, 1},
	{2, 0.3, 0.5},
	{0.5, 0.7, 0.3},
}

// breathScale converts the simulation accumulator into breath phase.
const breathScale = 1000

// Frame is everything HeightAt reads besides x. Drag and Registry may be nil.
type Frame struct {
	Midline  float64
	T        float64
	Now      time.Time
	Drag     *DragController
	Registry *Registry
}

// Field composes baseline, drag pull and transients into the curve height.
type Field struct {
	Params Params
	Noise  func(float64) float64
}

func NewField(p Params) *Field {
	return &Field{Params: p, Noise: noise.Noise1D}
}

// Baseline is the midline plus noise octaves plus breathing.
func (f *Field) Baseline(x, t, midline float64) float64 {
	p := f.Params
	y := midline
	for _, o := range octaves {
		y += f.Noise(x*p.WaveFrequency*o.freq+t*o.time) * p.WaveAmplitude * o.amp
	}
	return y + math.Sin(t*p.BreathSpeed*breathScale)*p.BreathAmplitude
}

// HeightAt samples the curve. It is a pure function of x and fr; calls may
// come in any order.
func (f *Field) HeightAt(x float64, fr Frame) float64 {
	y := f.Baseline(x, fr.T, fr.Midline)
	if fr.Drag != nil {
		y += fr.Drag.Pull(f.Params, x, y)
	}
	if fr.Registry != nil {
		y += fr.Registry.Sum(f.Params, x, fr.Now)
	}
	return y
}

// Sample fills dst with (x, y) pairs every step pixels from 0 to width
// inclusive and returns it.
func (f *Field) Sample(dst []Point, width, step float64, fr Frame) []Point {
	dst = dst[:0]
	if step <= 0 || width < 0 {
		return dst
	}
	for x := 0.0; x <= width; x += step {
		dst = append(dst, Point{X: x, Y: f.HeightAt(x, fr)})
	}
	return dst
}
