package engine

import "math"

// Surface is the drawing target: logical (window) size, the device scale
// factor and the backing store size derived from both.
type Surface struct {
	Width, Height float64
	Scale         float64

	BackingWidth, BackingHeight int
}

// NewSurface computes the backing store for a logical size at scale.
// Non-positive scales are treated as 1.
func NewSurface(width, height, scale float64) Surface {
	if scale <= 0 || math.IsNaN(scale) {
		scale = 1
	}
	width = math.Max(width, 0)
	height = math.Max(height, 0)
	return Surface{
		Width:         width,
		Height:        height,
		Scale:         scale,
		BackingWidth:  int(math.Ceil(width * scale)),
		BackingHeight: int(math.Ceil(height * scale)),
	}
}

// Equilibrium is the midline of the surface.
func (s Surface) Equilibrium() float64 {
	return s.Height / 2
}

// ToBacking maps a logical coordinate into backing store pixels.
func (s Surface) ToBacking(x, y float64) (float64, float64) {
	return x * s.Scale, y * s.Scale
}
