package trellis

// --- Appearance ---

// BackColor returns the background color.
func (c *Control) BackColor() Color { return c.backColor }

// SetBackColor sets the background color painted inside the border.
func (c *Control) SetBackColor(col Color) {
	if c.backColor == col {
		return
	}
	wasTransparent := c.backColor.IsTransparent()
	c.backColor = col
	if wasTransparent != col.IsTransparent() && c.parent != nil {
		c.parent.markDirty()
	}
	c.Invalidate()
}

// BorderColor returns the border color.
func (c *Control) BorderColor() Color { return c.borderColor }

// SetBorderColor sets the border color.
func (c *Control) SetBorderColor(col Color) {
	if c.borderColor == col {
		return
	}
	c.borderColor = col
	c.Invalidate()
}

// ForeColor returns the foreground color used by content painters.
func (c *Control) ForeColor() Color { return c.foreColor }

// SetForeColor sets the foreground color.
func (c *Control) SetForeColor(col Color) {
	if c.foreColor == col {
		return
	}
	c.foreColor = col
	c.Invalidate()
}

// Opacity returns the composite opacity in [0, 1].
func (c *Control) Opacity() float64 { return c.opacity }

// SetOpacity sets the composite opacity. A control with opacity below 1 is
// rendered into its own level bitmap so it can be blended as a whole.
func (c *Control) SetOpacity(o float64) {
	o = clamp01(o)
	if c.opacity == o {
		return
	}
	c.opacity = o
	c.invalidateComposite()
}

// Visible reports whether the control is painted and hit-tested.
func (c *Control) Visible() bool { return c.visible }

// SetVisible shows or hides the control. Hiding it releases focus and hover
// references that point into its subtree.
func (c *Control) SetVisible(v bool) {
	if c.visible == v {
		return
	}
	c.visible = v
	if c.parent != nil {
		c.parent.markDirty()
	}
	if !v && c.display != nil {
		c.display.releaseFocusIn(c)
		c.display.releaseReferences(c)
	}
	c.Invalidate()
	c.requestRender()
	c.requestLayout()
}

// Enabled reports whether the control itself is enabled.
func (c *Control) Enabled() bool { return c.enabled }

// EnabledInTree reports whether the control and all its ancestors are enabled.
func (c *Control) EnabledInTree() bool {
	for p := c; p != nil; p = p.parent {
		if !p.enabled {
			return false
		}
	}
	return true
}

// VisibleInTree reports whether the control and all its ancestors are visible.
func (c *Control) VisibleInTree() bool {
	for p := c; p != nil; p = p.parent {
		if !p.visible {
			return false
		}
	}
	return true
}

// SetEnabled enables or disables the control. Disabling it releases focus
// held inside its subtree.
func (c *Control) SetEnabled(v bool) {
	if c.enabled == v {
		return
	}
	c.enabled = v
	if !v && c.display != nil {
		c.display.releaseFocusIn(c)
	}
	c.Invalidate()
}

// --- Scrolling ---

// Scrolling reports whether the control renders its content into its own
// level bitmap and shows it through a scroll offset.
func (c *Control) Scrolling() bool { return c.scrolling }

// SetScrolling turns the control into a scrolling node or back.
func (c *Control) SetScrolling(v bool) {
	if c.scrolling == v {
		return
	}
	c.scrolling = v
	if !v {
		c.scrollOffset = Point{}
	}
	c.needsRedraw = true
	c.invalidateComposite()
}

// ScrollOffset returns the content position shown at the top-left corner.
func (c *Control) ScrollOffset() Point { return c.scrollOffset }

// SetScrollOffset scrolls the content. The offset is clamped so the viewport
// stays inside the content area. Only the composite changes: the level bitmap
// is reused as is.
func (c *Control) SetScrollOffset(p Point) {
	if !c.scrolling {
		return
	}
	content := c.ContentSize()
	p.X = max(0, min(p.X, content.Width-c.bounds.Width))
	p.Y = max(0, min(p.Y, content.Height-c.bounds.Height))
	if c.scrollOffset == p {
		return
	}
	c.scrollOffset = p
	c.invalidateComposite()
}

// ScrollBy moves the scroll offset by (dx, dy).
func (c *Control) ScrollBy(dx, dy int) {
	c.SetScrollOffset(c.scrollOffset.Add(Point{dx, dy}))
}

// ContentSize returns the size of the area a scrolling control renders: its
// own size grown to cover every visible child plus the trailing insets.
// Non-scrolling controls return their size.
func (c *Control) ContentSize() Size {
	s := c.bounds.Size()
	if !c.scrolling {
		return s
	}
	right := c.bounds.Width - c.clientRect.Right()
	bottom := c.bounds.Height - c.clientRect.Bottom()
	for _, child := range c.childrenZ {
		if !child.visible {
			continue
		}
		s.Width = max(s.Width, child.bounds.Right()+right)
		s.Height = max(s.Height, child.bounds.Bottom()+bottom)
	}
	return s
}

// --- Invalidation ---

// Invalidate marks the control for repaint and asks the display to schedule
// a render. Transparent controls mark their ancestors as well (see markDirty).
func (c *Control) Invalidate() {
	if c.disposed {
		return
	}
	c.markDirty()
	c.requestRender()
}

// markDirty marks c for repaint without scheduling a render. A marked control
// with a transparent background shows its parent through, so the walk goes on
// upwards until it reaches an opaque control or a level owner, which clears
// its own pixels before repainting.
func (c *Control) markDirty() {
	for p := c; p != nil && p.role != RoleDisplay; p = p.parent {
		p.needsRedraw = true
		if !p.backColor.IsTransparent() || p.ownsBitmap() {
			return
		}
	}
}

// NeedsRedraw reports whether the control is marked for repaint.
func (c *Control) NeedsRedraw() bool { return c.needsRedraw }

// invalidateComposite is used when only the way the control's level is
// composited changed (scale, opacity, scroll offset): the parent has to
// recomposite, the control's own pixels stay valid.
func (c *Control) invalidateComposite() {
	if c.parent != nil {
		c.parent.markDirty()
	}
	c.requestRender()
}

func (c *Control) requestRender() {
	if c.display != nil {
		c.display.scheduleRender()
	}
}

// --- Level bitmaps ---

// ownsBitmap reports whether the control is the redraw boundary of its own
// level: top-level controls, scrolling controls, and controls that are
// composited scaled or translucent.
func (c *Control) ownsBitmap() bool {
	if c.parent == nil || c.role == RoleDisplay {
		return false
	}
	return c.IsTopLevel() || c.scrolling || c.ScaleFactor() != 1 || c.opacity < 1
}

// LevelBitmap returns the control's level bitmap, or nil.
func (c *Control) LevelBitmap() Bitmap { return c.levelBitmap }

func (c *Control) levelSize() Size {
	return c.ContentSize()
}

// ensureBitmap makes sure the level bitmap matches the level size. It
// reports whether a fresh bitmap was allocated, in which case every pixel
// has to be painted.
func (c *Control) ensureBitmap() bool {
	want := c.levelSize()
	if want.Width <= 0 || want.Height <= 0 || c.display == nil {
		c.releaseBitmap()
		return false
	}
	if c.levelBitmap != nil && c.levelBitmap.Size() == want {
		return false
	}
	c.releaseBitmap()
	c.levelBitmap = c.display.backend.NewBitmap(want.Width, want.Height)
	return true
}

func (c *Control) releaseBitmap() {
	if c.levelBitmap == nil {
		return
	}
	c.levelBitmap.Dispose()
	c.levelBitmap = nil
}

// --- Redraw ---

// redrawLevel repaints the control's level bitmap. Nested levels below it are
// brought up to date first, so a nested level whose pixels changed has
// already marked its parent by the time that parent decides whether to
// repaint. It reports whether any pixel of the level changed.
func (c *Control) redrawLevel() bool {
	if c.disposed || !c.visible {
		return false
	}
	fresh := c.ensureBitmap()
	if c.levelBitmap == nil {
		return false
	}
	c.redrawNestedLevels()

	bs := c.levelBitmap.Size()
	full := Rect{0, 0, bs.Width, bs.Height}
	if !c.paint(c.levelBitmap.Surface(), full, full, fresh) {
		return false
	}
	if globalDebug {
		debugLogger().Debug("level repainted", "control", c.Name, "size", bs, "fresh", fresh)
	}
	if c.IsTopLevel() {
		c.display.backend.UploadBitmap(c.levelBitmap)
	} else if c.parent != nil {
		// The pixels this control is composited from changed.
		c.parent.markDirty()
	}
	return true
}

// redrawNestedLevels walks down to the nearest level owners below c and
// redraws them.
func (c *Control) redrawNestedLevels() {
	for _, child := range c.childrenInverseZ {
		if !child.visible {
			continue
		}
		if child.ownsBitmap() {
			child.redrawLevel()
			continue
		}
		child.redrawNestedLevels()
	}
}

// paint draws the control into s. bounds is the control's rectangle and clip
// the area it may touch, both in surface coordinates. With force set, or when
// the control needs redraw, the background is repainted and every descendant
// follows. It reports whether anything was drawn.
func (c *Control) paint(s Surface, bounds, clip Rect, force bool) bool {
	owns := c.ownsBitmap()
	if !owns && c.levelBitmap != nil {
		c.releaseBitmap()
	}
	repaint := force || c.needsRedraw
	drew := false
	if repaint {
		if owns {
			s.Clear(clip)
		}
		c.behavior().PaintBackground(c, s.Clip(clip), bounds)
		c.needsRedraw = false
		drew = true
	}

	client := c.paintClient(bounds)
	var damage Rect
	for _, child := range c.childrenInverseZ {
		if !child.visible {
			continue
		}
		cb := child.footprint().Offset(bounds.X, bounds.Y)
		childClip := clip.Intersect(cb).Intersect(client)
		if childClip.IsEmpty() {
			continue
		}
		// A front sibling over freshly painted pixels has to paint again.
		forceChild := repaint || damage.Intersects(childClip)
		if child.ownsBitmap() {
			if forceChild {
				c.compositeChild(s.Clip(childClip), child, cb)
				damage = damage.Union(childClip)
				drew = true
			}
			continue
		}
		if child.paint(s, cb, childClip, forceChild) {
			damage = damage.Union(childClip)
			drew = true
		}
	}

	if drew {
		fg := clip.Intersect(client)
		if !fg.IsEmpty() {
			c.behavior().PaintForeground(c, s.Clip(fg), client)
		}
	}
	return drew
}

// paintClient returns the client rectangle in surface coordinates. A
// scrolling control's client area covers its whole content.
func (c *Control) paintClient(bounds Rect) Rect {
	r := c.clientRect.Offset(bounds.X, bounds.Y)
	if c.scrolling && c.ownsBitmap() {
		content := c.ContentSize()
		r.Width = max(0, content.Width-c.clientRect.X-(c.bounds.Width-c.clientRect.Right()))
		r.Height = max(0, content.Height-c.clientRect.Y-(c.bounds.Height-c.clientRect.Bottom()))
	}
	return r
}

// footprint is the area the control covers in its parent's coordinates,
// after scaling.
func (c *Control) footprint() Rect {
	b := c.bounds
	if s := c.ScaleFactor(); s != 1 {
		b.Width = int(float64(b.Width) * s)
		b.Height = int(float64(b.Height) * s)
	}
	return b
}

// compositeChild draws child's level bitmap into s at dst, showing the
// viewport selected by the child's scroll offset.
func (c *Control) compositeChild(s Surface, child *Control, dst Rect) {
	if child.levelBitmap == nil {
		return
	}
	bs := child.levelBitmap.Size()
	src := Rect{child.scrollOffset.X, child.scrollOffset.Y, child.bounds.Width, child.bounds.Height}
	src = src.Intersect(Rect{0, 0, bs.Width, bs.Height})
	if src.IsEmpty() {
		return
	}
	sc := child.ScaleFactor()
	dst.Width = int(float64(src.Width) * sc)
	dst.Height = int(float64(src.Height) * sc)
	s.DrawBitmap(child.levelBitmap, src, dst, child.opacity)
}

// PaintDecorations fills the background and strokes the border inside the
// margin of bounds. BaseBehavior.PaintBackground calls it; custom behaviors
// can call it before adding their own background art.
func (c *Control) PaintDecorations(s Surface, bounds Rect) {
	r := c.borderRect(bounds)
	if r.IsEmpty() {
		return
	}
	s.Fill(r, c.backColor)
	if c.borderWidth > 0 {
		s.StrokeRect(r, c.borderWidth, c.borderColor)
	}
}
