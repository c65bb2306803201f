package input

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/wave-line/internal/overlay"
)

type fakeSource struct {
	x, y    int
	pressed bool
	touches map[int]image.Point
	blurred bool
}

func newFakeSource() *fakeSource {
	return &fakeSource{touches: map[int]image.Point{}}
}

func (f *fakeSource) CursorPosition() (int, int) { return f.x, f.y }
func (f *fakeSource) MousePressed() bool         { return f.pressed }
func (f *fakeSource) Focused() bool              { return !f.blurred }

func (f *fakeSource) TouchIDs(dst []int) []int {
	for id := range f.touches {
		dst = append(dst, id)
	}
	return dst
}

func (f *fakeSource) TouchPosition(id int) (int, int) {
	p := f.touches[id]
	return p.X, p.Y
}

func kinds(evs []Event) []Kind {
	out := make([]Kind, len(evs))
	for i, e := range evs {
		out[i] = e.Kind
	}
	return out
}

func newTestPoller() (*Poller, *fakeSource, *overlay.Document) {
	doc := overlay.NewDocument(800, 600)
	doc.Root.Append(&overlay.Element{ID: "wave-canvas", Kind: overlay.KindCanvas, Bounds: doc.Root.Bounds})
	src := newFakeSource()
	src.x, src.y = 100, 100
	p := NewPoller(src, doc)
	p.Poll(nil) // prime cursor
	return p, src, doc
}

func TestDispatcherListenAndDetach(t *testing.T) {
	d := NewDispatcher()
	var got []string
	detachA := d.Listen(PointerDown, func(Event) { got = append(got, "a") })
	d.Listen(PointerDown, func(Event) { got = append(got, "b") })
	d.Listen(PointerUp, func(Event) { got = append(got, "up") })
	require.Equal(t, 3, d.Len())

	d.Dispatch(Event{Kind: PointerDown})
	assert.Equal(t, []string{"a", "b"}, got)

	detachA()
	detachA()
	assert.Equal(t, 2, d.Len())

	got = nil
	d.Dispatch(Event{Kind: PointerDown})
	d.Dispatch(Event{Kind: PointerUp})
	d.Dispatch(Event{Kind: TouchEnd})
	assert.Equal(t, []string{"b", "up"}, got)
}

func TestDispatcherHandlerMayDetachItself(t *testing.T) {
	d := NewDispatcher()
	calls := 0
	var detach func()
	detach = d.Listen(PointerMove, func(Event) {
		calls++
		detach()
	})
	d.Dispatch(Event{Kind: PointerMove})
	d.Dispatch(Event{Kind: PointerMove})
	assert.Equal(t, 1, calls)
	assert.Zero(t, d.Len())
}

func TestPollerMouseGesture(t *testing.T) {
	p, src, _ := newTestPoller()

	assert.Empty(t, p.Poll(nil), "no change, no events")

	src.pressed = true
	evs := p.Poll(nil)
	require.Equal(t, []Kind{PointerDown}, kinds(evs))
	assert.Equal(t, 100.0, evs[0].X)
	assert.Equal(t, "wave-canvas", evs[0].Target.ID)

	src.x, src.y = 120, 300
	evs = p.Poll(nil)
	require.Equal(t, []Kind{PointerMove}, kinds(evs))
	assert.Equal(t, 300.0, evs[0].Y)

	assert.Empty(t, p.Poll(nil), "holding still")

	src.pressed = false
	assert.Equal(t, []Kind{PointerUp}, kinds(p.Poll(nil)))
	assert.Empty(t, p.Poll(nil))
}

func TestPollerLeaveWhileDragging(t *testing.T) {
	p, src, _ := newTestPoller()
	src.pressed = true
	p.Poll(nil)

	src.x = -5
	assert.Equal(t, []Kind{PointerLeave}, kinds(p.Poll(nil)))

	src.x = -20
	assert.Empty(t, p.Poll(nil), "moves outside the window are not reported")

	src.pressed = false
	assert.Equal(t, []Kind{PointerUp}, kinds(p.Poll(nil)))

	src.x = 50
	assert.Equal(t, []Kind{PointerMove}, kinds(p.Poll(nil)))
}

func TestPollerSingleTouch(t *testing.T) {
	p, src, _ := newTestPoller()

	src.touches[7] = image.Pt(10, 20)
	evs := p.Poll(nil)
	require.Equal(t, []Kind{TouchStart}, kinds(evs))
	assert.Equal(t, 1, evs[0].Touches)

	src.touches[7] = image.Pt(10, 80)
	evs = p.Poll(nil)
	require.Equal(t, []Kind{TouchMove}, kinds(evs))
	assert.Equal(t, 80.0, evs[0].Y)

	delete(src.touches, 7)
	evs = p.Poll(nil)
	require.Equal(t, []Kind{TouchEnd}, kinds(evs))
	assert.Equal(t, 80.0, evs[0].Y, "end reports the last known position")
	assert.Zero(t, evs[0].Touches)
}

func TestPollerSecondTouchCarriesCount(t *testing.T) {
	p, src, _ := newTestPoller()
	src.touches[1] = image.Pt(10, 10)
	p.Poll(nil)

	src.touches[2] = image.Pt(50, 50)
	evs := p.Poll(nil)
	require.Equal(t, []Kind{TouchStart}, kinds(evs))
	assert.Equal(t, 2, evs[0].Touches)
}

func TestPollerBlurCancels(t *testing.T) {
	p, src, _ := newTestPoller()
	src.pressed = true
	src.touches[3] = image.Pt(5, 5)
	p.Poll(nil)

	src.blurred = true
	assert.Equal(t, []Kind{PointerLeave, TouchCancel}, kinds(p.Poll(nil)))
	assert.Empty(t, p.Poll(nil))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "pointerdown", PointerDown.String())
	assert.Equal(t, "touchcancel", TouchCancel.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
