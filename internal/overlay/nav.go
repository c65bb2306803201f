package overlay

import (
	"image"
	"strings"

	"github.com/charmbracelet/harmonica"
)

// Class carried by navigation words. A click on one of these sends a ripple
// through the line.
const VoidWordClass = "void-word"

// Layout of the navigation row. Glyphs of the debug font are 6px wide.
const (
	glyphWidth  = 6
	linkHeight  = 16
	linkPadding = 6
	linkGap     = 28
	navMargin   = 24
)

// LinkSpec describes one navigation entry.
type LinkSpec struct {
	Label string `mapstructure:"label" yaml:"label"`
	Href  string `mapstructure:"href" yaml:"href"`
}

// Link is a navigation entry with its animated hover level in [0, 1].
type Link struct {
	El   *Element
	Href string

	hover    float64
	velocity float64
	target   float64
}

// Hover returns the current hover level.
func (l *Link) Hover() float64 { return l.hover }

// Nav is the row of navigation words along the bottom of the window.
type Nav struct {
	container *Element
	links     []*Link
	spring    harmonica.Spring
}

// NewNav builds the nav container and its links inside doc. fps is the tick
// rate the hover spring is stepped at.
func NewNav(doc *Document, specs []LinkSpec, fps int) *Nav {
	n := &Nav{
		container: doc.Root.Append(&Element{ID: "void-nav", Kind: KindContainer}),
		spring:    harmonica.NewSpring(harmonica.FPS(fps), 8.0, 0.9),
	}
	for _, s := range specs {
		el := n.container.Append(&Element{
			ID:      "nav-" + slug(s.Label),
			Kind:    KindLink,
			Label:   s.Label,
			Classes: []string{VoidWordClass},
		})
		// the label is a child so that hits on it resolve through Closest
		el.Append(&Element{ID: el.ID + "-label", Kind: KindText, Label: s.Label})
		n.links = append(n.links, &Link{El: el, Href: s.Href})
	}
	n.Layout(doc.Root.Bounds.Dx(), doc.Root.Bounds.Dy())
	return n
}

// Layout places the links left to right along the bottom edge.
func (n *Nav) Layout(width, height int) {
	x := navMargin
	y := height - navMargin - linkHeight
	for _, l := range n.links {
		w := len(l.El.Label)*glyphWidth + 2*linkPadding
		l.El.Bounds = image.Rect(x, y, x+w, y+linkHeight)
		l.El.Children[0].Bounds = image.Rect(x+linkPadding, y, x+w-linkPadding, y+linkHeight)
		x += w + linkGap
	}
	if len(n.links) == 0 {
		n.container.Bounds = image.Rectangle{}
		return
	}
	n.container.Bounds = image.Rect(navMargin, y, x-linkGap, y+linkHeight)
}

func (n *Nav) Links() []*Link { return n.links }

// LinkFor resolves an event target to the link that owns it, or nil.
func (n *Nav) LinkFor(target *Element) *Link {
	if target == nil {
		return nil
	}
	el := target.Closest(KindLink)
	for _, l := range n.links {
		if l.El == el {
			return l
		}
	}
	return nil
}

// Update steps the hover springs toward the link under the cursor.
func (n *Nav) Update(hovered *Element) {
	active := n.LinkFor(hovered)
	for _, l := range n.links {
		l.target = 0
		if l == active {
			l.target = 1
		}
		l.hover, l.velocity = n.spring.Update(l.hover, l.velocity, l.target)
	}
}

func slug(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "-")
}
