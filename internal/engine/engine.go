// Package engine runs the wave line: it owns the simulation clock, the
// transient registry and the drag gesture, reacts to input events and
// samples the curve once per tick.
package engine

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/iburimskiy/wave-line/internal/input"
	"github.com/iburimskiy/wave-line/internal/overlay"
	"github.com/iburimskiy/wave-line/internal/wave"
)

// SurfaceID is the element the engine draws into.
const SurfaceID = "wave-canvas"

// nominalFrameMillis is the frame length the time accumulator assumes.
const nominalFrameMillis = 16

// Clock is the monotonic time source.
type Clock interface {
	Now() time.Time
}

// SystemClock reads time.Now, which carries a monotonic reading.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Host resolves elements by ID. *overlay.Document satisfies it.
type Host interface {
	ElementByID(id string) *overlay.Element
}

// Options are the non-physics knobs.
type Options struct {
	// Step is the horizontal sampling stride in logical pixels.
	Step float64
	// TapSlop is the drag distance up to which a release counts as a click.
	TapSlop float64
}

// Stats is a snapshot for the debug overlay.
type Stats struct {
	Ripples  int
	Springs  int
	Dragging bool
	Time     float64
	Ticks    uint64
	Running  bool
}

// Engine is the single owner of all mutable wave state. Every method is
// safe to call from any goroutine.
type Engine struct {
	mu sync.Mutex

	params   wave.Params
	opts     Options
	field    *wave.Field
	registry *wave.Registry
	drag     wave.DragController
	clock    Clock
	events   *input.Dispatcher
	logger   *zap.Logger

	surface Surface
	t       float64
	ticks   uint64
	points  []wave.Point

	initialized bool
	detach      []func()
}

// New builds an engine. It does nothing until Init.
func New(params wave.Params, opts Options, events *input.Dispatcher, clock Clock, logger *zap.Logger) *Engine {
	if clock == nil {
		clock = SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Step <= 0 {
		opts.Step = 3
	}
	return &Engine{
		params:   params,
		opts:     opts,
		field:    wave.NewField(params),
		registry: wave.NewRegistry(),
		clock:    clock,
		events:   events,
		logger:   logger.Named("engine"),
	}
}

// Init locates the surface, attaches the input listeners and starts the
// loop. It reports whether the engine is running afterwards; a second call
// or a missing surface is a no-op.
func (e *Engine) Init(host Host) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.initialized {
		return true
	}
	var el *overlay.Element
	if host != nil {
		el = host.ElementByID(SurfaceID)
	}
	if el == nil || el.Kind != overlay.KindCanvas {
		e.logger.Warn("Drawing surface not found; wave stays static", zap.String("id", SurfaceID))
		return false
	}

	if e.surface.Width == 0 && e.surface.Height == 0 {
		e.surface = NewSurface(float64(el.Bounds.Dx()), float64(el.Bounds.Dy()), 1)
	}

	if e.events != nil {
		e.detach = append(e.detach,
			e.events.Listen(input.PointerDown, e.handlePress),
			e.events.Listen(input.PointerMove, e.handleMove),
			e.events.Listen(input.PointerUp, e.handleRelease),
			e.events.Listen(input.PointerLeave, e.handleRelease),
			e.events.Listen(input.TouchStart, e.handleTouchStart),
			e.events.Listen(input.TouchMove, e.handleTouchMove),
			e.events.Listen(input.TouchEnd, e.handleRelease),
			e.events.Listen(input.TouchCancel, e.handleRelease),
		)
	}
	e.initialized = true
	e.logger.Info("Wave engine started",
		zap.Float64("width", e.surface.Width),
		zap.Float64("height", e.surface.Height),
		zap.Float64("scale", e.surface.Scale))
	return true
}

// Destroy stops the loop, detaches every listener and clears the init flag.
// Live transients are left to expire.
func (e *Engine) Destroy() {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, d := range e.detach {
		d()
	}
	e.detach = nil
	e.drag.Cancel()
	if e.initialized {
		e.logger.Info("Wave engine stopped", zap.Uint64("ticks", e.ticks))
	}
	e.initialized = false
}

// Running reports whether ticks advance the simulation.
func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.initialized
}

// AddRipple injects a ripple at a screen coordinate. y is turned into a
// displacement from the midline; strength defaults to 1. It reports false
// when the engine is not running.
func (e *Engine) AddRipple(x, y float64, strength ...float64) bool {
	s := 1.0
	if len(strength) > 0 {
		s = strength[0]
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.initialized {
		return false
	}
	e.addRippleLocked(x, y, s, e.clock.Now())
	return true
}

func (e *Engine) addRippleLocked(x, y, strength float64, now time.Time) {
	r := wave.ClickRipple(e.params, x, y, e.surface.Equilibrium(), strength, now)
	e.registry.AddRipple(r)
	e.logger.Debug("Ripple injected",
		zap.Float64("x", x),
		zap.Float64("displacement", r.InitialDisplacement),
		zap.Float64("strength", strength))
}

// Resize records a new logical size and scale factor. Time, transients and
// the drag gesture are untouched.
func (e *Engine) Resize(width, height, scale float64) Surface {
	s := NewSurface(width, height, scale)
	e.mu.Lock()
	defer e.mu.Unlock()
	if s != e.surface {
		e.logger.Debug("Surface resized",
			zap.Float64("width", s.Width),
			zap.Float64("height", s.Height),
			zap.Int("backing_width", s.BackingWidth),
			zap.Int("backing_height", s.BackingHeight))
	}
	e.surface = s
	return s
}

// Surface returns the current surface.
func (e *Engine) Surface() Surface {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.surface
}

// Tick is one iteration of the render loop: advance time, purge expired
// transients and resample the curve. It reports false while stopped.
func (e *Engine) Tick() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.initialized {
		return false
	}

	now := e.clock.Now()
	e.t += e.params.WaveSpeed * nominalFrameMillis
	e.ticks++
	if n := e.registry.Purge(now); n > 0 {
		e.logger.Debug("Transients expired", zap.Int("count", n))
	}

	e.points = e.field.Sample(e.points, e.surface.Width, e.opts.Step, wave.Frame{
		Midline:  e.surface.Equilibrium(),
		T:        e.t,
		Now:      now,
		Drag:     &e.drag,
		Registry: e.registry,
	})
	return true
}

// Points copies the latest sampled polyline into dst.
func (e *Engine) Points(dst []wave.Point) []wave.Point {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append(dst[:0], e.points...)
}

// HeightAt samples the curve at x for the current tick.
func (e *Engine) HeightAt(x float64) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.field.HeightAt(x, wave.Frame{
		Midline:  e.surface.Equilibrium(),
		T:        e.t,
		Now:      e.clock.Now(),
		Drag:     &e.drag,
		Registry: e.registry,
	})
}

func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	r, s := e.registry.Counts()
	return Stats{
		Ripples:  r,
		Springs:  s,
		Dragging: e.drag.Active(),
		Time:     e.t,
		Ticks:    e.ticks,
		Running:  e.initialized,
	}
}

// Transients appends a copy of every live transient to dst.
func (e *Engine) Transients(dst []wave.Transient) []wave.Transient {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.registry.Each(func(t wave.Transient) { dst = append(dst, t) })
	return dst
}

// DragState returns a copy of the gesture record.
func (e *Engine) DragState() wave.DragState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.drag.State()
}
