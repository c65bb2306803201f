package overlay

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDocument() (*Document, *Nav) {
	doc := NewDocument(800, 600)
	doc.Root.Append(&Element{ID: "wave-canvas", Kind: KindCanvas, Bounds: doc.Root.Bounds})
	nav := NewNav(doc, []LinkSpec{
		{Label: "writing", Href: "/writing"},
		{Label: "about me", Href: "/about"},
	}, 60)
	return doc, nav
}

func TestElementByID(t *testing.T) {
	doc, _ := testDocument()
	require.NotNil(t, doc.ElementByID("wave-canvas"))
	assert.Equal(t, KindCanvas, doc.ElementByID("wave-canvas").Kind)
	assert.NotNil(t, doc.ElementByID("nav-about-me"))
	assert.Nil(t, doc.ElementByID("missing"))

	var nilDoc *Document
	assert.Nil(t, nilDoc.ElementByID("wave-canvas"))
}

func TestNavLayout(t *testing.T) {
	_, nav := testDocument()
	links := nav.Links()
	require.Len(t, links, 2)

	first := links[0].El.Bounds
	assert.Equal(t, image.Rect(24, 544, 24+7*6+12, 560), first)
	assert.Equal(t, first.Max.X+linkGap, links[1].El.Bounds.Min.X)
	assert.True(t, links[0].El.HasClass(VoidWordClass))
}

func TestHitTestPrefersDeepestTopmost(t *testing.T) {
	doc, nav := testDocument()
	link := nav.Links()[0]

	cx, cy := link.El.Center()
	hit := doc.HitTest(cx, cy)
	require.NotNil(t, hit)
	assert.Equal(t, KindText, hit.Kind, "label sits inside the link")
	assert.Same(t, link.El, hit.Closest(KindLink))

	hit = doc.HitTest(400, 100)
	assert.Equal(t, "wave-canvas", hit.ID)

	hit = doc.HitTest(-10, -10)
	assert.Same(t, doc.Root, hit)
}

func TestIsInteractive(t *testing.T) {
	doc, nav := testDocument()
	label := nav.Links()[0].El.Children[0]

	assert.True(t, IsInteractive(nav.Links()[0].El))
	assert.True(t, IsInteractive(label), "ancestor link counts")
	assert.False(t, IsInteractive(doc.ElementByID("wave-canvas")))
	assert.False(t, IsInteractive(nil))

	btn := doc.Root.Append(&Element{ID: "close", Kind: KindButton, Bounds: image.Rect(0, 0, 10, 10)})
	inner := btn.Append(&Element{Kind: KindText})
	assert.True(t, IsInteractive(inner))
}

func TestCenter(t *testing.T) {
	e := &Element{Bounds: image.Rect(10, 20, 30, 60)}
	x, y := e.Center()
	assert.Equal(t, 20.0, x)
	assert.Equal(t, 40.0, y)
}

func TestLinkForAndHoverSpring(t *testing.T) {
	doc, nav := testDocument()
	link := nav.Links()[1]
	assert.Same(t, link, nav.LinkFor(link.El.Children[0]))
	assert.Nil(t, nav.LinkFor(doc.ElementByID("wave-canvas")))
	assert.Nil(t, nav.LinkFor(nil))

	for i := 0; i < 120; i++ {
		nav.Update(link.El)
	}
	assert.InDelta(t, 1.0, link.Hover(), 0.05)
	assert.InDelta(t, 0.0, nav.Links()[0].Hover(), 1e-9)

	for i := 0; i < 120; i++ {
		nav.Update(nil)
	}
	assert.InDelta(t, 0.0, link.Hover(), 0.05)
}

func TestDocumentResize(t *testing.T) {
	doc, nav := testDocument()
	doc.Resize(1024, 768)
	nav.Layout(1024, 768)

	assert.Equal(t, image.Rect(0, 0, 1024, 768), doc.Root.Bounds)
	assert.Equal(t, image.Rect(0, 0, 1024, 768), doc.ElementByID("wave-canvas").Bounds)
	assert.Equal(t, 768-24-16, nav.Links()[0].El.Bounds.Min.Y)
}

func TestElementKindString(t *testing.T) {
	assert.Equal(t, "a", KindLink.String())
	assert.Equal(t, "button", KindButton.String())
	assert.Equal(t, "canvas", KindCanvas.String())
	assert.Equal(t, "div", KindContainer.String())
}
