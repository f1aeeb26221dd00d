package trellis

// Bounds returns the control's rectangle in its parent's coordinates.
func (c *Control) Bounds() Rect { return c.bounds }

// Location returns the top-left corner in parent coordinates.
func (c *Control) Location() Point { return c.bounds.Location() }

// Size returns the current width and height.
func (c *Control) Size() Size { return c.bounds.Size() }

// LastLocation returns the location committed before the latest change.
func (c *Control) LastLocation() Point { return c.lastLocation }

// LastSize returns the size committed before the latest change.
func (c *Control) LastSize() Size { return c.lastSize }

// ClientRectangle returns the area inside margin, border and padding, in the
// control's own coordinates.
func (c *Control) ClientRectangle() Rect { return c.clientRect }

// MinimumSize returns the lower size bound.
func (c *Control) MinimumSize() Size { return c.minimumSize }

// MaximumSize returns the upper size bound. A zero component is unbounded.
func (c *Control) MaximumSize() Size { return c.maximumSize }

// Margin returns the outer spacing.
func (c *Control) Margin() Spacing { return c.margin }

// Padding returns the inner spacing.
func (c *Control) Padding() Spacing { return c.padding }

// BorderWidth returns the border thickness in pixels.
func (c *Control) BorderWidth() int { return c.borderWidth }

// SetBounds moves and resizes the control. Width and height are clamped into
// [MinimumSize, MaximumSize]; nothing happens when the clamped rectangle
// equals the current one. Otherwise the previous geometry is recorded, the
// client rectangle is recomputed, OnMove/OnResize fire for the dimensions
// that changed, the control is invalidated and the parent re-runs layout.
func (c *Control) SetBounds(x, y, width, height int) {
	if c.setBoundsCore(x, y, width, height) {
		c.requestLayout()
	}
}

// SetLocation moves the control, keeping its size.
func (c *Control) SetLocation(x, y int) {
	c.SetBounds(x, y, c.bounds.Width, c.bounds.Height)
}

// SetSize resizes the control, keeping its location.
func (c *Control) SetSize(width, height int) {
	c.SetBounds(c.bounds.X, c.bounds.Y, width, height)
}

// SetMinimumSize sets the lower size bound and re-clamps the current size.
func (c *Control) SetMinimumSize(s Size) {
	c.minimumSize = Size{max(0, s.Width), max(0, s.Height)}
	c.SetSize(c.bounds.Width, c.bounds.Height)
}

// SetMaximumSize sets the upper size bound and re-clamps the current size.
// A zero component leaves that dimension unbounded.
func (c *Control) SetMaximumSize(s Size) {
	c.maximumSize = Size{max(0, s.Width), max(0, s.Height)}
	c.SetSize(c.bounds.Width, c.bounds.Height)
}

// SetMargin changes the outer spacing. The bounds do not move.
func (c *Control) SetMargin(m Spacing) {
	if c.margin == m {
		return
	}
	c.margin = m
	c.decorationsChanged()
}

// SetPadding changes the inner spacing. The bounds do not move.
func (c *Control) SetPadding(p Spacing) {
	if c.padding == p {
		return
	}
	c.padding = p
	c.decorationsChanged()
}

// SetBorderWidth changes the border thickness. The bounds do not move.
func (c *Control) SetBorderWidth(w int) {
	w = max(0, w)
	if c.borderWidth == w {
		return
	}
	c.borderWidth = w
	c.decorationsChanged()
}

// clampSize clips a size into [minimumSize, maximumSize].
func (c *Control) clampSize(w, h int) (int, int) {
	if c.maximumSize.Width > 0 && w > c.maximumSize.Width {
		w = c.maximumSize.Width
	}
	if c.maximumSize.Height > 0 && h > c.maximumSize.Height {
		h = c.maximumSize.Height
	}
	w = max(w, c.minimumSize.Width, 0)
	h = max(h, c.minimumSize.Height, 0)
	return w, h
}

// setBoundsCore stores new geometry without requesting a layout pass.
// It reports whether anything changed.
func (c *Control) setBoundsCore(x, y, width, height int) bool {
	width, height = c.clampSize(width, height)
	nb := Rect{x, y, width, height}
	old := c.bounds
	if nb == old {
		return false
	}
	// Each component keeps its previous value until that component changes,
	// so a size phase followed by a layout move still reports the geometry
	// committed before the pass.
	if nb.Location() != old.Location() {
		c.lastLocation = old.Location()
	}
	if nb.Size() != old.Size() {
		c.lastSize = old.Size()
	}
	c.bounds = nb
	c.updateClientRect()

	// Whatever the control covered before now belongs to its parent again.
	if c.parent != nil {
		c.parent.markDirty()
	}
	if nb.Location() != old.Location() && c.OnMove != nil {
		c.OnMove(c)
	}
	if nb.Size() != old.Size() && c.OnResize != nil {
		c.OnResize(c)
	}
	c.Invalidate()
	return true
}

func (c *Control) updateClientRect() {
	inset := c.borderWidth
	c.clientRect = Rect{
		X:      c.margin.Left + inset + c.padding.Left,
		Y:      c.margin.Top + inset + c.padding.Top,
		Width:  max(0, c.bounds.Width-c.margin.Horizontal()-c.padding.Horizontal()-2*inset),
		Height: max(0, c.bounds.Height-c.margin.Vertical()-c.padding.Vertical()-2*inset),
	}
}

func (c *Control) decorationsChanged() {
	c.updateClientRect()
	c.Invalidate()
	if !c.inLayoutPass() {
		c.PerformLayout()
	}
}

// insets is the total thickness of margin, border and padding.
func (c *Control) insets() Size {
	return Size{
		Width:  c.margin.Horizontal() + c.padding.Horizontal() + 2*c.borderWidth,
		Height: c.margin.Vertical() + c.padding.Vertical() + 2*c.borderWidth,
	}
}

// borderRect returns the rectangle inside the margin, relative to bounds.
func (c *Control) borderRect(bounds Rect) Rect {
	return Rect{
		X:      bounds.X + c.margin.Left,
		Y:      bounds.Y + c.margin.Top,
		Width:  max(0, bounds.Width-c.margin.Horizontal()),
		Height: max(0, bounds.Height-c.margin.Vertical()),
	}
}

// --- Coordinate transforms ---

// ScaleFactor returns the scale applied when the control is composited and
// hit-tested. 1 means unscaled.
func (c *Control) ScaleFactor() float64 {
	if c.scale <= 0 {
		return 1
	}
	return c.scale
}

// SetScale sets the composite scale factor. Values <= 0 reset it to 1.
func (c *Control) SetScale(s float64) {
	if s <= 0 {
		s = 1
	}
	if c.scale == s {
		return
	}
	c.scale = s
	c.invalidateComposite()
}

// toLocal converts a point from parent coordinates into this control's local
// space, the space its children's bounds are expressed in.
func (c *Control) toLocal(x, y float64) (float64, float64, bool) {
	lx := x - float64(c.bounds.X)
	ly := y - float64(c.bounds.Y)
	if s := c.ScaleFactor(); s != 1 {
		lx /= s
		ly /= s
	}
	inside := lx >= 0 && ly >= 0 && lx < float64(c.bounds.Width) && ly < float64(c.bounds.Height)
	return lx + float64(c.scrollOffset.X), ly + float64(c.scrollOffset.Y), inside
}

// ancestry returns the chain from the outermost ancestor down to c.
func (c *Control) ancestry() []*Control {
	var chain []*Control
	for p := c; p != nil; p = p.parent {
		chain = append(chain, p)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// PointToLocal converts display coordinates into the control's coordinates
// (origin at its top-left corner, before scroll offset).
func (c *Control) PointToLocal(x, y float64) (float64, float64) {
	chain := c.ancestry()
	for _, p := range chain[:len(chain)-1] {
		x, y, _ = p.toLocal(x, y)
	}
	x -= float64(c.bounds.X)
	y -= float64(c.bounds.Y)
	if s := c.ScaleFactor(); s != 1 {
		x /= s
		y /= s
	}
	return x, y
}

// PointToClient converts display coordinates into client coordinates.
func (c *Control) PointToClient(x, y float64) (float64, float64) {
	lx, ly := c.PointToLocal(x, y)
	return lx - float64(c.clientRect.X), ly - float64(c.clientRect.Y)
}

// PointToScreen converts a point in the control's coordinates into display
// coordinates.
func (c *Control) PointToScreen(x, y float64) (float64, float64) {
	for p := c; p != nil; p = p.parent {
		if p != c {
			x -= float64(p.scrollOffset.X)
			y -= float64(p.scrollOffset.Y)
		}
		s := p.ScaleFactor()
		x = x*s + float64(p.bounds.X)
		y = y*s + float64(p.bounds.Y)
	}
	return x, y
}
