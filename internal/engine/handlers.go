package engine

import (
	"go.uber.org/zap"

	"github.com/iburimskiy/wave-line/internal/input"
	"github.com/iburimskiy/wave-line/internal/overlay"
	"github.com/iburimskiy/wave-line/internal/wave"
)

func (e *Engine) handlePress(ev input.Event) {
	if overlay.IsInteractive(ev.Target) {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.drag.Press(wave.Point{X: ev.X, Y: ev.Y}, e.clock.Now())
}

func (e *Engine) handleTouchStart(ev input.Event) {
	if ev.Touches != 1 {
		return
	}
	e.handlePress(ev)
}

func (e *Engine) handleMove(ev input.Event) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.drag.Move(wave.Point{X: ev.X, Y: ev.Y})
}

func (e *Engine) handleTouchMove(ev input.Event) {
	if ev.Touches != 1 {
		return
	}
	e.handleMove(ev)
}

func isRelease(k input.Kind) bool {
	return k == input.PointerUp || k == input.TouchEnd
}

// handleRelease ends a drag. The spring and ripple are spawned at the last
// recorded point, not at the release event's coordinates.
func (e *Engine) handleRelease(ev input.Event) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.drag.Active() {
		return
	}

	now := e.clock.Now()
	rel, ok := e.drag.Release(e.params, e.surface.Equilibrium(), now)
	if !ok {
		return
	}
	if rel.Distance <= e.opts.TapSlop {
		// a tap is a click; a leave or cancel without movement spawns nothing
		if isRelease(ev.Kind) {
			e.addRippleLocked(rel.At.X, rel.At.Y, 1, now)
		}
		return
	}

	e.registry.AddSpring(rel.Spring)
	e.registry.AddRipple(rel.Ripple)
	e.logger.Debug("Drag released",
		zap.Stringer("event", ev.Kind),
		zap.Float64("x", rel.At.X),
		zap.Float64("distance", rel.Distance),
		zap.Float64("strength", rel.Ripple.Strength))
}
