package input

import (
	"sort"

	"github.com/iburimskiy/wave-line/internal/overlay"
)

// Source is the raw device state read once per tick. The ebiten-backed
// implementation lives with the game loop; tests use a fake.
type Source interface {
	CursorPosition() (x, y int)
	MousePressed() bool
	TouchIDs(dst []int) []int
	TouchPosition(id int) (x, y int)
	Focused() bool
}

type point struct{ x, y int }

// Poller diffs successive Source snapshots into events targeted at the
// element under the pointer.
type Poller struct {
	src Source
	doc *overlay.Document

	mouseDown bool
	inside    bool
	cursor    point
	primed    bool

	touches map[int]point
	ids     []int
}

func NewPoller(src Source, doc *overlay.Document) *Poller {
	return &Poller{
		src:     src,
		doc:     doc,
		inside:  true,
		touches: make(map[int]point),
	}
}

// Poll appends the events since the previous call to dst.
func (p *Poller) Poll(dst []Event) []Event {
	if !p.src.Focused() {
		return p.blur(dst)
	}
	dst = p.pollMouse(dst)
	return p.pollTouches(dst)
}

func (p *Poller) event(kind Kind, pt point, touches int) Event {
	x, y := float64(pt.x), float64(pt.y)
	return Event{Kind: kind, X: x, Y: y, Touches: touches, Target: p.doc.HitTest(x, y)}
}

func (p *Poller) within(pt point) bool {
	b := p.doc.Root.Bounds
	return pt.x >= b.Min.X && pt.y >= b.Min.Y && pt.x < b.Max.X && pt.y < b.Max.Y
}

func (p *Poller) pollMouse(dst []Event) []Event {
	x, y := p.src.CursorPosition()
	cur := point{x, y}
	moved := !p.primed || cur != p.cursor
	p.cursor, p.primed = cur, true

	inside := p.within(cur)
	pressed := p.src.MousePressed()

	switch {
	case !inside && p.inside:
		p.inside = false
		dst = append(dst, p.event(PointerLeave, cur, 0))
	case inside && !p.inside:
		p.inside = true
	}

	if pressed && !p.mouseDown {
		p.mouseDown = true
		if inside {
			dst = append(dst, p.event(PointerDown, cur, 0))
		}
		return dst
	}
	if moved && inside {
		dst = append(dst, p.event(PointerMove, cur, 0))
	}
	if !pressed && p.mouseDown {
		p.mouseDown = false
		dst = append(dst, p.event(PointerUp, cur, 0))
	}
	return dst
}

func (p *Poller) pollTouches(dst []Event) []Event {
	p.ids = p.src.TouchIDs(p.ids[:0])
	sort.Ints(p.ids)
	live := len(p.ids)

	seen := make(map[int]bool, live)
	for _, id := range p.ids {
		seen[id] = true
		x, y := p.src.TouchPosition(id)
		cur := point{x, y}
		prev, known := p.touches[id]
		p.touches[id] = cur
		switch {
		case !known:
			dst = append(dst, p.event(TouchStart, cur, live))
		case prev != cur:
			dst = append(dst, p.event(TouchMove, cur, live))
		}
	}

	ended := make([]int, 0)
	for id := range p.touches {
		if !seen[id] {
			ended = append(ended, id)
		}
	}
	sort.Ints(ended)
	for _, id := range ended {
		dst = append(dst, p.event(TouchEnd, p.touches[id], live))
		delete(p.touches, id)
	}
	return dst
}

// blur ends whatever gesture is in flight when the window loses focus.
func (p *Poller) blur(dst []Event) []Event {
	if p.mouseDown {
		p.mouseDown = false
		dst = append(dst, p.event(PointerLeave, p.cursor, 0))
	}
	if len(p.touches) > 0 {
		ids := make([]int, 0, len(p.touches))
		for id := range p.touches {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		for _, id := range ids {
			dst = append(dst, p.event(TouchCancel, p.touches[id], 0))
			delete(p.touches, id)
		}
	}
	return dst
}
