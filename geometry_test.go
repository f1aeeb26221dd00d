package trellis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectOps(t *testing.T) {
	r := Rect{10, 20, 30, 40}
	assert.Equal(t, 40, r.Right())
	assert.Equal(t, 60, r.Bottom())
	assert.True(t, r.Contains(10, 20))
	assert.False(t, r.Contains(40, 20), "right edge is exclusive")
	assert.Equal(t, Rect{15, 25, 30, 40}, r.Offset(5, 5))

	assert.Equal(t, Rect{20, 30, 20, 30}, r.Intersect(Rect{20, 30, 100, 100}))
	assert.True(t, r.Intersect(Rect{40, 0, 10, 10}).IsEmpty())
	assert.False(t, r.Intersects(Rect{40, 20, 10, 10}))

	assert.Equal(t, Rect{0, 0, 40, 60}, r.Union(Rect{0, 0, 5, 5}))
	assert.Equal(t, r, r.Union(Rect{}))
	assert.Equal(t, r, Rect{}.Union(r))
}

func TestSpacing(t *testing.T) {
	s := Spacing{1, 2, 3, 4}
	assert.Equal(t, 4, s.Horizontal())
	assert.Equal(t, 6, s.Vertical())
	assert.Equal(t, Spacing{5, 5, 5, 5}, Uniform(5))
	assert.Equal(t, Point{3, 5}, Point{1, 2}.Add(Point{2, 3}))
	assert.Equal(t, Point{-1, -1}, Point{1, 2}.Sub(Point{2, 3}))
}

func TestSetBoundsClampsToMinMax(t *testing.T) {
	c := NewControl("c", nil)
	c.SetMinimumSize(Size{20, 10})
	c.SetMaximumSize(Size{100, 0})

	cases := []struct {
		w, h         int
		wantW, wantH int
	}{
		{5, 5, 20, 10},
		{50, 50, 50, 50},
		{500, 500, 100, 500},
		{-10, -10, 20, 10},
	}
	for _, tc := range cases {
		c.SetBounds(0, 0, tc.w, tc.h)
		s := c.Size()
		assert.Equal(t, Size{tc.wantW, tc.wantH}, s, "SetBounds(%d, %d)", tc.w, tc.h)
		assert.GreaterOrEqual(t, s.Width, c.MinimumSize().Width)
		assert.GreaterOrEqual(t, s.Height, c.MinimumSize().Height)
		assert.LessOrEqual(t, s.Width, c.MaximumSize().Width)
	}
}

func TestSetMinimumSizeReclamps(t *testing.T) {
	c := NewControl("c", nil)
	c.SetBounds(0, 0, 10, 10)
	c.SetMinimumSize(Size{30, 40})
	assert.Equal(t, Size{30, 40}, c.Size())
	c.SetMaximumSize(Size{35, 35})
	assert.Equal(t, Size{30, 40}, c.Size(), "minimum wins over a smaller maximum")
}

func TestSetBoundsRecordsLastGeometryAndFires(t *testing.T) {
	c := NewControl("c", nil)
	var moves, resizes int
	c.OnMove = func(*Control) { moves++ }
	c.OnResize = func(*Control) { resizes++ }

	c.SetBounds(10, 10, 50, 50)
	assert.Equal(t, 1, moves)
	assert.Equal(t, 1, resizes)

	c.SetLocation(20, 10)
	assert.Equal(t, Point{10, 10}, c.LastLocation())
	assert.Equal(t, 2, moves)
	assert.Equal(t, 1, resizes)

	c.SetSize(60, 50)
	assert.Equal(t, Size{50, 50}, c.LastSize())
	assert.Equal(t, 2, moves)
	assert.Equal(t, 2, resizes)

	c.SetBounds(20, 10, 60, 50)
	assert.Equal(t, 2, moves, "unchanged bounds are a no-op")
	assert.Equal(t, 2, resizes)
}

func TestClientRectangle(t *testing.T) {
	c := NewControl("c", nil)
	c.SetBounds(0, 0, 100, 80)
	c.SetMargin(Spacing{1, 2, 3, 4})
	c.SetBorderWidth(2)
	c.SetPadding(Uniform(5))

	assert.Equal(t, Rect{1 + 2 + 5, 2 + 2 + 5, 100 - 4 - 10 - 4, 80 - 6 - 10 - 4}, c.ClientRectangle())
	assert.Equal(t, Rect{0, 0, 100, 80}, c.Bounds(), "decorations do not move the bounds")
	assert.Equal(t, Rect{1, 2, 96, 74}, c.borderRect(c.Bounds()))

	c.SetBorderWidth(-3)
	assert.Equal(t, 0, c.BorderWidth())
}

func TestClientRectangleNeverNegative(t *testing.T) {
	c := NewControl("c", nil)
	c.SetBounds(0, 0, 4, 4)
	c.SetPadding(Uniform(10))
	assert.Equal(t, 0, c.ClientRectangle().Width)
	assert.Equal(t, 0, c.ClientRectangle().Height)
}

func TestPointTransforms(t *testing.T) {
	d, _ := newTestDisplay(t, 400, 400)
	form := NewForm("form")
	form.SetBounds(100, 50, 200, 200)
	d.Add(form)
	inner := NewPanel("inner")
	inner.SetBounds(10, 20, 50, 50)
	inner.SetPadding(Uniform(4))
	form.Add(inner)

	x, y := inner.PointToLocal(115, 75)
	assert.Equal(t, 5.0, x)
	assert.Equal(t, 5.0, y)

	x, y = inner.PointToClient(115, 75)
	assert.Equal(t, 1.0, x)
	assert.Equal(t, 1.0, y)

	x, y = inner.PointToScreen(5, 5)
	assert.Equal(t, 115.0, x)
	assert.Equal(t, 75.0, y)
}

func TestPointTransformsScaledAndScrolled(t *testing.T) {
	d, _ := newTestDisplay(t, 400, 400)
	form := NewForm("form")
	form.SetBounds(0, 0, 300, 300)
	d.Add(form)

	zoom := NewPanel("zoom")
	zoom.SetBounds(100, 100, 50, 50)
	zoom.SetScale(2)
	form.Add(zoom)

	x, y := zoom.PointToLocal(120, 140)
	assert.Equal(t, 10.0, x)
	assert.Equal(t, 20.0, y)
	x, y = zoom.PointToScreen(10, 20)
	assert.Equal(t, 120.0, x)
	assert.Equal(t, 140.0, y)

	scroll := NewScrollPanel("scroll")
	scroll.SetBounds(0, 0, 50, 50)
	form.Add(scroll)
	item := NewPanel("item")
	item.SetBounds(0, 100, 50, 50)
	scroll.Add(item)
	scroll.SetScrollOffset(Point{0, 80})

	x, y = item.PointToLocal(10, 30)
	assert.Equal(t, 10.0, x)
	assert.Equal(t, 10.0, y)
	x, y = item.PointToScreen(10, 10)
	assert.Equal(t, 10.0, x)
	assert.Equal(t, 30.0, y)
}

func TestSetScaleResetsNonPositive(t *testing.T) {
	c := NewControl("c", nil)
	c.SetScale(-1)
	assert.Equal(t, 1.0, c.ScaleFactor())
	c.SetScale(0.5)
	assert.Equal(t, 0.5, c.ScaleFactor())
}
