package game

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/wave-line/internal/engine"
	"github.com/iburimskiy/wave-line/internal/overlay"
	"github.com/iburimskiy/wave-line/internal/wave"
)

// renderer strokes the wave into an offscreen layer at full opacity and
// composites the layer with the configured alpha, so the round joints
// drawn over segment ends do not darken the line.
type renderer struct {
	lineColor  color.RGBA
	alpha      float32
	background color.RGBA
	lineWidth  float64

	surface engine.Surface
	geo     ebiten.GeoM
	layer   *ebiten.Image
}

func newRenderer(lineHex, backgroundHex string, alpha, lineWidth float64) (*renderer, error) {
	line, err := parseColor(lineHex)
	if err != nil {
		return nil, err
	}
	bg, err := parseColor(backgroundHex)
	if err != nil {
		return nil, err
	}
	r := &renderer{
		lineColor:  line,
		alpha:      float32(clamp01(alpha)),
		background: bg,
		lineWidth:  lineWidth,
	}
	r.resize(engine.NewSurface(0, 0, 1))
	return r, nil
}

// resize resets the transform to logical-to-backing scaling. The layer is
// reallocated on the next draw when the backing size changed.
func (r *renderer) resize(s engine.Surface) {
	if s.BackingWidth != r.surface.BackingWidth || s.BackingHeight != r.surface.BackingHeight {
		if r.layer != nil {
			r.layer.Deallocate()
			r.layer = nil
		}
	}
	r.surface = s
	r.geo.Reset()
	r.geo.Scale(s.Scale, s.Scale)
}

func (r *renderer) ensureLayer() *ebiten.Image {
	if r.layer == nil && r.surface.BackingWidth > 0 && r.surface.BackingHeight > 0 {
		r.layer = ebiten.NewImage(r.surface.BackingWidth, r.surface.BackingHeight)
	}
	return r.layer
}

func (r *renderer) drawWave(screen *ebiten.Image, pts []wave.Point) {
	screen.Fill(r.background)
	layer := r.ensureLayer()
	if layer == nil || len(pts) == 0 {
		return
	}
	layer.Clear()

	width := float32(r.lineWidth * r.surface.Scale)
	for i := 1; i < len(pts); i++ {
		x0, y0 := r.geo.Apply(pts[i-1].X, pts[i-1].Y)
		x1, y1 := r.geo.Apply(pts[i].X, pts[i].Y)
		vector.StrokeLine(layer, float32(x0), float32(y0), float32(x1), float32(y1), width, r.lineColor, true)
	}
	// round caps and joins
	for _, p := range pts {
		x, y := r.geo.Apply(p.X, p.Y)
		vector.DrawFilledCircle(layer, float32(x), float32(y), width/2, r.lineColor, true)
	}

	op := &ebiten.DrawImageOptions{}
	op.ColorScale.ScaleAlpha(r.alpha)
	screen.DrawImage(layer, op)
}

func (r *renderer) drawNav(screen *ebiten.Image, nav *overlay.Nav) {
	for _, l := range nav.Links() {
		b := l.El.Bounds
		x, y := r.geo.Apply(float64(b.Min.X), float64(b.Min.Y))
		w, h := float64(b.Dx())*r.surface.Scale, float64(b.Dy())*r.surface.Scale

		// darken toward the pressed-button shade as hover rises
		hv := clamp01(l.Hover())
		bg := color.RGBA{
			R: uint8(100 - 40*hv),
			G: uint8(120 - 40*hv),
			B: uint8(160 - 40*hv),
			A: uint8(160 + 95*hv),
		}
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), bg, false)
		border := withAlpha(color.RGBA{R: 150, G: 170, B: 200, A: 255}, 0.3+0.7*hv)
		vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 1, border, false)

		tx, ty := r.geo.Apply(float64(b.Min.X+6), float64(b.Min.Y))
		ebitenutil.DebugPrintAt(screen, l.El.Label, int(tx), int(ty))
	}
}

func (r *renderer) drawDebug(screen *ebiten.Image, st engine.Stats, uptime, tickCost time.Duration) {
	text := fmt.Sprintf("TPS %.0f  FPS %.0f  up %s\nripples %d  springs %d  drag %v\nt %.3f  tick %s",
		ebiten.ActualTPS(), ebiten.ActualFPS(), formatDuration(uptime),
		st.Ripples, st.Springs, st.Dragging,
		st.Time, tickCost.Round(time.Microsecond))
	vector.DrawFilledRect(screen, 8, 8, 260, 52, withAlpha(color.RGBA{A: 255}, 0.6), false)
	ebitenutil.DebugPrintAt(screen, text, 12, 10)
}
