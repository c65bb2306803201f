// Package overlay is the small element tree drawn above the wave: the canvas
// element the engine renders into, and navigation links and buttons that must
// keep their clicks.
package overlay

import "image"

// ElementKind says how an element behaves under the pointer.
type ElementKind int

const (
	KindContainer ElementKind = iota
	KindCanvas
	KindText
	KindLink
	KindButton
)

func (k ElementKind) String() string {
	switch k {
	case KindCanvas:
		return "canvas"
	case KindText:
		return "text"
	case KindLink:
		return "a"
	case KindButton:
		return "button"
	default:
		return "div"
	}
}

// Element is one node. Bounds are in logical pixels.
type Element struct {
	ID       string
	Kind     ElementKind
	Label    string
	Classes  []string
	Bounds   image.Rectangle
	Parent   *Element
	Children []*Element
}

// Append attaches child under e and returns child.
func (e *Element) Append(child *Element) *Element {
	child.Parent = e
	e.Children = append(e.Children, child)
	return child
}

// HasClass reports whether the class list contains name.
func (e *Element) HasClass(name string) bool {
	for _, c := range e.Classes {
		if c == name {
			return true
		}
	}
	return false
}

// Closest walks from e up through its ancestors and returns the first
// element of one of the given kinds.
func (e *Element) Closest(kinds ...ElementKind) *Element {
	for n := e; n != nil; n = n.Parent {
		for _, k := range kinds {
			if n.Kind == k {
				return n
			}
		}
	}
	return nil
}

// Center is the middle of the bounding box.
func (e *Element) Center() (float64, float64) {
	b := e.Bounds
	return float64(b.Min.X) + float64(b.Dx())/2, float64(b.Min.Y) + float64(b.Dy())/2
}

// IsInteractive reports whether a press on e belongs to a link or button,
// either e itself or one of its ancestors.
func IsInteractive(e *Element) bool {
	return e != nil && e.Closest(KindLink, KindButton) != nil
}

// Document is the root of the tree.
type Document struct {
	Root *Element
}

func NewDocument(width, height int) *Document {
	return &Document{Root: &Element{
		ID:     "document",
		Kind:   KindContainer,
		Bounds: image.Rect(0, 0, width, height),
	}}
}

// ElementByID does a depth-first search for id.
func (d *Document) ElementByID(id string) *Element {
	var find func(*Element) *Element
	find = func(e *Element) *Element {
		if e.ID == id {
			return e
		}
		for _, c := range e.Children {
			if f := find(c); f != nil {
				return f
			}
		}
		return nil
	}
	if d == nil || d.Root == nil {
		return nil
	}
	return find(d.Root)
}

// HitTest returns the topmost element containing (x, y): the deepest match,
// later siblings above earlier ones. Points outside the root fall back to the
// root so that every event has a target.
func (d *Document) HitTest(x, y float64) *Element {
	if d == nil || d.Root == nil {
		return nil
	}
	pt := image.Pt(int(x), int(y))
	var hit func(*Element) *Element
	hit = func(e *Element) *Element {
		for i := len(e.Children) - 1; i >= 0; i-- {
			if h := hit(e.Children[i]); h != nil {
				return h
			}
		}
		if pt.In(e.Bounds) {
			return e
		}
		return nil
	}
	if h := hit(d.Root); h != nil {
		return h
	}
	return d.Root
}

// Resize stretches the root and every full-window element to the new size.
func (d *Document) Resize(width, height int) {
	old := d.Root.Bounds
	r := image.Rect(0, 0, width, height)
	var walk func(*Element)
	walk = func(e *Element) {
		if e.Bounds == old {
			e.Bounds = r
		}
		for _, c := range e.Children {
			walk(c)
		}
	}
	walk(d.Root)
}
