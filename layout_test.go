package trellis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newLayoutParent returns an unsuspended detached panel of the given size.
func newLayoutParent(w, h int) *Control {
	p := NewPanel("parent")
	p.SetBounds(0, 0, w, h)
	p.ResumeLayout()
	return p
}

func docked(name string, d DockStyle, w, h int) *Control {
	c := NewPanel(name)
	c.SetBounds(0, 0, w, h)
	c.SetDock(d)
	return c
}

func TestDockFillTakesClientRect(t *testing.T) {
	p := newLayoutParent(200, 100)
	p.SetPadding(Uniform(5))
	fill := docked("fill", DockFill, 10, 10)
	next := docked("next", DockFill, 10, 10)
	p.Add(fill)
	p.AddAtBack(next)

	assert.Equal(t, p.ClientRectangle(), fill.Bounds())
	assert.Equal(t, Rect{5, 5, 190, 90}, fill.Bounds())
	assert.True(t, next.Bounds().IsEmpty(), "fill leaves no residual area")
}

func TestDockLeftPercent(t *testing.T) {
	p := newLayoutParent(200, 100)
	left := docked("left", DockLeft, 10, 10)
	left.SetDockPercent(0.5)
	fill := docked("fill", DockFill, 10, 10)
	p.Add(fill)
	p.Add(left)

	assert.Equal(t, Rect{0, 0, 100, 100}, left.Bounds())
	assert.Equal(t, Rect{100, 0, 100, 100}, fill.Bounds())
}

func TestDockingMargin(t *testing.T) {
	p := newLayoutParent(200, 100)
	left := docked("left", DockLeft, 40, 10)
	left.SetDockingMargin(10)
	fill := docked("fill", DockFill, 10, 10)
	p.Add(fill)
	p.Add(left)

	assert.Equal(t, Rect{0, 0, 40, 100}, left.Bounds())
	assert.Equal(t, Rect{50, 0, 150, 100}, fill.Bounds())
}

func TestDockEdges(t *testing.T) {
	cases := []struct {
		dock     DockStyle
		w, h     int
		want     Rect
		residual Rect
	}{
		{DockRight, 30, 10, Rect{170, 0, 30, 100}, Rect{0, 0, 170, 100}},
		{DockTop, 10, 20, Rect{0, 0, 200, 20}, Rect{0, 20, 200, 80}},
		{DockBottom, 10, 20, Rect{0, 80, 200, 20}, Rect{0, 0, 200, 80}},
		{DockCenter, 50, 20, Rect{75, 40, 50, 20}, Rect{0, 0, 200, 100}},
		{DockRightBottom, 30, 10, Rect{170, 90, 30, 10}, Rect{0, 0, 200, 100}},
		{DockLeftCenter, 30, 10, Rect{0, 45, 30, 10}, Rect{0, 0, 200, 100}},
		{DockTopRight, 30, 10, Rect{170, 0, 30, 10}, Rect{0, 0, 200, 100}},
		{DockBottomCenter, 30, 10, Rect{85, 90, 30, 10}, Rect{0, 0, 200, 100}},
	}
	for _, tc := range cases {
		p := newLayoutParent(200, 100)
		c := docked("c", tc.dock, tc.w, tc.h)
		fill := docked("fill", DockFill, 1, 1)
		p.Add(fill)
		p.Add(c)
		assert.Equal(t, tc.want, c.Bounds(), "dock %d", tc.dock)
		assert.Equal(t, tc.residual, fill.Bounds(), "residual for dock %d", tc.dock)
	}
}

func TestDockWidthKeepsVerticalGeometry(t *testing.T) {
	p := newLayoutParent(200, 100)
	c := NewPanel("c")
	c.SetBounds(3, 7, 10, 10)
	c.SetDock(DockWidth)
	p.Add(c)
	assert.Equal(t, Rect{0, 7, 200, 10}, c.Bounds())

	c.SetDock(DockHeight)
	assert.Equal(t, Rect{0, 0, 200, 100}, c.Bounds())
}

func TestDockRespectsMaximumSize(t *testing.T) {
	p := newLayoutParent(200, 100)
	c := docked("c", DockLeft, 10, 10)
	c.SetDockPercent(0.9)
	c.SetMaximumSize(Size{50, 0})
	p.Add(c)
	assert.Equal(t, 50, c.Bounds().Width)
}

func TestHiddenChildDoesNotClaimArea(t *testing.T) {
	p := newLayoutParent(200, 100)
	top := docked("top", DockTop, 10, 20)
	fill := docked("fill", DockFill, 1, 1)
	p.Add(fill)
	p.Add(top)
	require.Equal(t, Rect{0, 20, 200, 80}, fill.Bounds())

	top.SetVisible(false)
	assert.Equal(t, Rect{0, 0, 200, 100}, fill.Bounds())
}

func TestAnchoring(t *testing.T) {
	p := newLayoutParent(200, 100)
	br := NewPanel("br")
	br.SetBounds(150, 80, 40, 10)
	br.SetAnchor(AnchorBottom | AnchorRight)
	all := NewPanel("all")
	all.SetBounds(10, 10, 50, 50)
	all.SetAnchor(AnchorAll)
	tl := NewPanel("tl")
	tl.SetBounds(5, 5, 10, 10)
	p.Add(br)
	p.Add(all)
	p.Add(tl)

	p.SetSize(250, 120)
	assert.Equal(t, Rect{200, 100, 40, 10}, br.Bounds())
	assert.Equal(t, Rect{10, 10, 100, 70}, all.Bounds())
	assert.Equal(t, Rect{5, 5, 10, 10}, tl.Bounds())

	p.SetSize(200, 100)
	assert.Equal(t, Rect{150, 80, 40, 10}, br.Bounds())
	assert.Equal(t, Rect{10, 10, 50, 50}, all.Bounds())
}

func TestSuspendResumeDefersLayout(t *testing.T) {
	p := newLayoutParent(200, 100)
	c := NewPanel("c")
	c.SetBounds(0, 0, 10, 10)
	p.Add(c)
	resizes := 0
	c.OnResize = func(*Control) { resizes++ }

	p.SuspendLayout()
	p.SuspendLayout()
	c.SetDock(DockFill)
	assert.Equal(t, Rect{0, 0, 10, 10}, c.Bounds())
	assert.True(t, p.NeedsLayout())

	p.ResumeLayout()
	assert.Equal(t, Rect{0, 0, 10, 10}, c.Bounds(), "still suspended once")
	assert.Zero(t, resizes)

	p.ResumeLayout()
	assert.Equal(t, Rect{0, 0, 200, 100}, c.Bounds())
	assert.False(t, p.NeedsLayout())
	assert.Equal(t, 1, resizes, "the deferred requests collapse into one pass")
}

func TestResumeLayoutWithoutSuspend(t *testing.T) {
	p := newLayoutParent(10, 10)
	assert.NotPanics(t, p.ResumeLayout)

	d, _ := newTestDisplay(t, 10, 10)
	d.SetDebugMode(true)
	assert.Panics(t, p.ResumeLayout)
}

func TestOwnSizeChangeRerunsParentLayout(t *testing.T) {
	p := newLayoutParent(200, 100)
	fill := docked("fill", DockFill, 1, 1)
	auto := NewAutoSizePanel("auto")
	auto.SetDock(DockTop)
	p.Add(fill)
	p.Add(auto)
	require.Equal(t, Rect{0, 0, 200, 100}, fill.Bounds())

	item := NewPanel("item")
	item.SetBounds(0, 0, 50, 30)
	auto.Add(item)

	assert.Equal(t, Rect{0, 0, 200, 30}, auto.Bounds())
	assert.Equal(t, Rect{0, 30, 200, 70}, fill.Bounds(), "siblings see the new footprint")
}

type stripLayout struct {
	BaseBehavior
}

func (stripLayout) LayoutSelf(c *Control, area Rect) Rect {
	c.setBoundsCore(area.X, area.Y, 10, area.Height)
	return shrinkLeft(area, 10)
}

func TestSelfLayouterReplacesDocking(t *testing.T) {
	p := newLayoutParent(200, 100)
	fill := docked("fill", DockFill, 1, 1)
	strip := NewControl("strip", stripLayout{})
	strip.SetDock(DockFill)
	p.Add(fill)
	p.Add(strip)

	assert.Equal(t, Rect{0, 0, 10, 100}, strip.Bounds())
	assert.Equal(t, Rect{10, 0, 190, 100}, fill.Bounds())
}

func TestNestedLayoutUsesClientArea(t *testing.T) {
	p := newLayoutParent(200, 100)
	box := docked("box", DockFill, 1, 1)
	box.SetBorderWidth(1)
	box.SetPadding(Uniform(4))
	p.Add(box)
	inner := docked("inner", DockFill, 1, 1)
	box.Add(inner)

	assert.Equal(t, Rect{5, 5, 190, 90}, inner.Bounds())

	p.SetSize(300, 100)
	assert.Equal(t, Rect{5, 5, 290, 90}, inner.Bounds())
}

func TestNoOpLayoutFiresNoResize(t *testing.T) {
	p := newLayoutParent(200, 100)
	auto := NewAutoSizePanel("auto")
	auto.SetDock(DockTop)
	p.Add(auto)
	auto.Add(newBox("item", 0, 0, 50, 30))
	require.Equal(t, Rect{0, 0, 200, 30}, auto.Bounds())
	committed := auto.LastSize()

	resizes, moves := 0, 0
	auto.OnResize = func(*Control) { resizes++ }
	auto.OnMove = func(*Control) { moves++ }
	p.PerformLayout()

	assert.Zero(t, resizes, "the dock width survives the size phase")
	assert.Zero(t, moves)
	assert.Equal(t, Rect{0, 0, 200, 30}, auto.Bounds())
	assert.Equal(t, committed, auto.LastSize())
}

func TestLastGeometryAfterLayoutPass(t *testing.T) {
	p := newLayoutParent(200, 100)
	auto := NewAutoSizePanel("auto")
	auto.SetDock(DockBottom)
	p.Add(auto)
	require.Equal(t, Rect{0, 100, 200, 0}, auto.Bounds())

	resizes, moves := 0, 0
	auto.OnResize = func(*Control) { resizes++ }
	auto.OnMove = func(*Control) { moves++ }
	auto.Add(newBox("item", 0, 0, 50, 30))

	assert.Equal(t, Rect{0, 70, 200, 30}, auto.Bounds())
	assert.Equal(t, 1, resizes)
	assert.Equal(t, 1, moves)
	assert.Equal(t, Size{200, 0}, auto.LastSize(), "the move leaves the previous size alone")
	assert.Equal(t, Point{0, 100}, auto.LastLocation())
}

func TestSetAnchorRequestsLayout(t *testing.T) {
	p := newLayoutParent(200, 100)
	c := NewPanel("c")
	c.SetBounds(10, 10, 20, 20)
	p.Add(c)

	p.SuspendLayout()
	c.SetAnchor(AnchorRight)
	assert.True(t, p.NeedsLayout())
	p.ResumeLayout()
	assert.False(t, p.NeedsLayout())
	assert.Equal(t, Rect{10, 10, 20, 20}, c.Bounds(), "anchoring alone does not move the control")

	p.SuspendLayout()
	c.SetAnchor(AnchorRight)
	assert.False(t, p.NeedsLayout(), "an unchanged anchor is a no-op")
	p.ResumeLayout()

	p.SetSize(250, 100)
	assert.Equal(t, Rect{60, 10, 20, 20}, c.Bounds())
}
