package game

import (
	"go.uber.org/zap"

	"github.com/iburimskiy/wave-line/internal/input"
	"github.com/iburimskiy/wave-line/internal/overlay"
)

type rippler interface {
	AddRipple(x, y float64, strength ...float64) bool
}

// navigator is the page-side collaborator: a completed click on a
// navigation word sends a ripple from the word's centre and records the
// destination. It knows nothing about the wave beyond AddRipple.
type navigator struct {
	nav    *overlay.Nav
	wave   rippler
	logger *zap.Logger

	pressed *overlay.Link
	hovered *overlay.Element
	current string
	detach  []func()
}

func newNavigator(nav *overlay.Nav, wave rippler, logger *zap.Logger) *navigator {
	return &navigator{nav: nav, wave: wave, logger: logger.Named("nav")}
}

func (n *navigator) attach(d *input.Dispatcher) {
	n.detach = append(n.detach,
		d.Listen(input.PointerDown, n.handlePress),
		d.Listen(input.TouchStart, n.handlePress),
		d.Listen(input.PointerUp, n.handleRelease),
		d.Listen(input.TouchEnd, n.handleRelease),
		d.Listen(input.PointerLeave, n.handleCancel),
		d.Listen(input.TouchCancel, n.handleCancel),
		d.Listen(input.PointerMove, n.handleMove),
	)
}

func (n *navigator) close() {
	for _, d := range n.detach {
		d()
	}
	n.detach = nil
}

func (n *navigator) handlePress(ev input.Event) {
	n.pressed = n.nav.LinkFor(ev.Target)
}

func (n *navigator) handleMove(ev input.Event) {
	n.hovered = ev.Target
}

func (n *navigator) handleCancel(input.Event) {
	n.pressed = nil
	n.hovered = nil
}

func (n *navigator) handleRelease(ev input.Event) {
	link := n.nav.LinkFor(ev.Target)
	pressed := n.pressed
	n.pressed = nil
	if link == nil || link != pressed {
		return
	}
	if link.El.HasClass(overlay.VoidWordClass) {
		x, y := link.El.Center()
		n.wave.AddRipple(x, y)
	}
	n.current = link.Href
	n.logger.Info("Navigate", zap.String("label", link.El.Label), zap.String("href", link.Href))
}
