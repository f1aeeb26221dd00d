package trellis

// --- Layout intent ---

// Dock returns the docking style.
func (c *Control) Dock() DockStyle { return c.dock }

// SetDock sets the docking style and re-runs the parent's layout.
func (c *Control) SetDock(d DockStyle) {
	if c.dock == d {
		return
	}
	c.dock = d
	c.requestLayout()
}

// DockingMargin returns the gap left after a primary edge dock.
func (c *Control) DockingMargin() int { return c.dockingMargin }

// SetDockingMargin sets the gap a primary edge dock leaves between itself and
// the residual area.
func (c *Control) SetDockingMargin(m int) {
	if c.dockingMargin == m {
		return
	}
	c.dockingMargin = m
	c.requestLayout()
}

// DockPercent returns the docked fraction of the incoming area.
func (c *Control) DockPercent() float64 { return c.dockPercent }

// SetDockPercent makes edge docks size themselves as a fraction of the
// incoming area. Zero keeps the current width or height.
func (c *Control) SetDockPercent(p float64) {
	if c.dockPercent == p {
		return
	}
	c.dockPercent = p
	c.requestLayout()
}

// Anchor returns the anchor edges.
func (c *Control) Anchor() AnchorStyles { return c.anchor }

// SetAnchor sets the parent edges a DockNone control follows when the
// parent's client area changes. The current bounds are not moved: anchoring
// only applies the difference between two committed client sizes.
func (c *Control) SetAnchor(a AnchorStyles) {
	if c.anchor == a {
		return
	}
	c.anchor = a
	c.requestLayout()
}

// --- Suspend / resume ---

// SuspendLayout defers layout passes until the matching ResumeLayout.
func (c *Control) SuspendLayout() {
	c.suspendLayoutCount++
}

// ResumeLayout undoes one SuspendLayout. When the count reaches zero and a
// layout was requested meanwhile, the deferred pass runs now.
func (c *Control) ResumeLayout() {
	if c.suspendLayoutCount == 0 {
		if globalDebug {
			panic("trellis debug: ResumeLayout without SuspendLayout on " + quoteName(c))
		}
		return
	}
	c.suspendLayoutCount--
	if c.suspendLayoutCount > 0 {
		return
	}
	c.constructing = false
	if c.needsLayout {
		c.PerformLayout()
	}
}

// IsLayoutSuspended reports whether layout requests are being deferred.
func (c *Control) IsLayoutSuspended() bool { return c.suspendLayoutCount > 0 }

// NeedsLayout reports whether a deferred layout pass is pending.
func (c *Control) NeedsLayout() bool { return c.needsLayout }

// inLayoutPass reports whether c or an ancestor is running a layout pass.
func (c *Control) inLayoutPass() bool {
	for p := c; p != nil; p = p.parent {
		if p.layingOut {
			return true
		}
	}
	return false
}

// requestLayout asks the parent to lay this control out again. Requests made
// while a pass is already running are absorbed by that pass.
func (c *Control) requestLayout() {
	if c.inLayoutPass() {
		return
	}
	if c.parent != nil {
		c.parent.PerformLayout()
		return
	}
	c.PerformLayout()
}

// --- Layout pass ---

// PerformLayout runs the size phase and the layout phase for this control's
// subtree, or records the request when layout is suspended.
//
// When sizing the children changes the control's own size, the parent's full
// layout runs instead: the siblings' docked areas depend on this control's
// final footprint.
func (c *Control) PerformLayout() {
	if c.disposed {
		return
	}
	if c.suspendLayoutCount > 0 {
		c.needsLayout = true
		return
	}
	c.needsLayout = false

	before := c.bounds.Size()
	c.layingOut = true
	c.sizeControl(c.parentClientSize())
	c.layingOut = false

	if c.bounds.Size() != before && c.parent != nil && !c.parent.inLayoutPass() &&
		c.parent.suspendLayoutCount == 0 {
		if globalDebug {
			debugLogger().Debug("own size changed while sizing children, re-running parent layout",
				"control", c.Name, "parent", c.parent.Name,
				"from", before, "to", c.bounds.Size())
		}
		c.parent.PerformLayout()
		return
	}

	c.layingOut = true
	c.layoutChildren()
	c.layingOut = false
}

// sizeToContent is the size-phase resize used by content-sized behaviors.
// Dimensions the dock style assigns in the layout phase keep their current
// value, so a pass that changes nothing fires no notifications.
func (c *Control) sizeToContent(width, height int) {
	if c.dockSetsWidth() {
		width = c.bounds.Width
	}
	if c.dockSetsHeight() {
		height = c.bounds.Height
	}
	c.setBoundsCore(c.bounds.X, c.bounds.Y, width, height)
}

func (c *Control) dockSetsWidth() bool {
	switch c.dock {
	case DockFill, DockWidth, DockTop, DockBottom:
		return true
	}
	return c.dockPercent > 0 && c.dock >= DockLeft && c.dock <= DockRightBottom
}

func (c *Control) dockSetsHeight() bool {
	switch c.dock {
	case DockFill, DockHeight, DockLeft, DockRight:
		return true
	}
	return c.dockPercent > 0 && c.dock >= DockTop && c.dock <= DockBottomRight
}

func (c *Control) parentClientSize() Size {
	if c.parent != nil {
		return c.parent.clientRect.Size()
	}
	return c.bounds.Size()
}

// sizeControl is the size phase: self, then visible children, then a final
// adjustment once the children are known.
func (c *Control) sizeControl(parentClient Size) {
	b := c.behavior()
	b.SizeSelf(c, parentClient)
	client := c.clientRect.Size()
	for _, child := range c.childrenZ {
		if child.visible {
			child.sizeControl(client)
		}
	}
	b.SizeAfterChildren(c)
}

// layoutChildren is the layout phase. Children are visited front to back so
// the front-most child gets first claim on the client area.
func (c *Control) layoutChildren() {
	if c.suspendLayoutCount > 0 {
		c.needsLayout = true
		return
	}
	c.needsLayout = false

	client := c.clientRect
	prev := client.Size()
	if c.hasCommitted {
		prev = c.committedClient
	}
	area := client
	for _, child := range c.childrenZ {
		if !child.visible {
			continue
		}
		if l, ok := child.Behavior.(SelfLayouter); ok {
			area = l.LayoutSelf(child, area)
			continue
		}
		area = child.layoutIn(area, prev, client.Size())
	}
	c.committedClient = client.Size()
	c.hasCommitted = true

	for _, child := range c.childrenZ {
		if child.visible {
			child.layoutChildren()
		}
	}
}

// layoutIn positions the control inside area according to its dock style and
// returns the area left for the next sibling. prevClient and curClient are
// the parent's previously committed and current client sizes.
func (c *Control) layoutIn(area Rect, prevClient, curClient Size) Rect {
	b := c.bounds
	residual := area

	dockedWidth := func() int {
		if c.dockPercent > 0 {
			return int(c.dockPercent * float64(area.Width))
		}
		return b.Width
	}
	dockedHeight := func() int {
		if c.dockPercent > 0 {
			return int(c.dockPercent * float64(area.Height))
		}
		return b.Height
	}

	switch c.dock {
	case DockNone:
		dw := curClient.Width - prevClient.Width
		dh := curClient.Height - prevClient.Height
		if c.anchor&AnchorRight != 0 {
			if c.anchor&AnchorLeft != 0 {
				b.Width += dw
			} else {
				b.X += dw
			}
		}
		if c.anchor&AnchorBottom != 0 {
			if c.anchor&AnchorTop != 0 {
				b.Height += dh
			} else {
				b.Y += dh
			}
		}

	case DockFill:
		b = area
		residual = Rect{X: area.X, Y: area.Y}

	case DockCenter:
		b.Width = min(b.Width, area.Width)
		b.Height = min(b.Height, area.Height)
		b.X = area.X + (area.Width-b.Width)/2
		b.Y = area.Y + (area.Height-b.Height)/2

	case DockWidth:
		b.X = area.X
		b.Width = area.Width

	case DockHeight:
		b.Y = area.Y
		b.Height = area.Height

	case DockLeft, DockLeftCenter, DockLeftTop, DockLeftBottom:
		b.Width, _ = c.clampSize(dockedWidth(), b.Height)
		b.X = area.X
		switch c.dock {
		case DockLeft:
			b.Y, b.Height = area.Y, area.Height
			residual = shrinkLeft(area, b.Width+c.dockingMargin)
		case DockLeftCenter:
			b.Y = area.Y + (area.Height-b.Height)/2
		case DockLeftTop:
			b.Y = area.Y
		case DockLeftBottom:
			b.Y = area.Bottom() - b.Height
		}

	case DockRight, DockRightCenter, DockRightTop, DockRightBottom:
		b.Width, _ = c.clampSize(dockedWidth(), b.Height)
		b.X = area.Right() - b.Width
		switch c.dock {
		case DockRight:
			b.Y, b.Height = area.Y, area.Height
			residual.Width = max(0, area.Width-b.Width-c.dockingMargin)
		case DockRightCenter:
			b.Y = area.Y + (area.Height-b.Height)/2
		case DockRightTop:
			b.Y = area.Y
		case DockRightBottom:
			b.Y = area.Bottom() - b.Height
		}

	case DockTop, DockTopCenter, DockTopLeft, DockTopRight:
		_, b.Height = c.clampSize(b.Width, dockedHeight())
		b.Y = area.Y
		switch c.dock {
		case DockTop:
			b.X, b.Width = area.X, area.Width
			residual = shrinkTop(area, b.Height+c.dockingMargin)
		case DockTopCenter:
			b.X = area.X + (area.Width-b.Width)/2
		case DockTopLeft:
			b.X = area.X
		case DockTopRight:
			b.X = area.Right() - b.Width
		}

	case DockBottom, DockBottomCenter, DockBottomLeft, DockBottomRight:
		_, b.Height = c.clampSize(b.Width, dockedHeight())
		b.Y = area.Bottom() - b.Height
		switch c.dock {
		case DockBottom:
			b.X, b.Width = area.X, area.Width
			residual.Height = max(0, area.Height-b.Height-c.dockingMargin)
		case DockBottomCenter:
			b.X = area.X + (area.Width-b.Width)/2
		case DockBottomLeft:
			b.X = area.X
		case DockBottomRight:
			b.X = area.Right() - b.Width
		}
	}

	// setBoundsCore re-clamps into [min, max] and fires move/resize for
	// whatever differs from the pre-layout rectangle.
	c.setBoundsCore(b.X, b.Y, b.Width, b.Height)
	return residual
}

func shrinkLeft(r Rect, by int) Rect {
	by = min(by, r.Width)
	return Rect{r.X + by, r.Y, r.Width - by, r.Height}
}

func shrinkTop(r Rect, by int) Rect {
	by = min(by, r.Height)
	return Rect{r.X, r.Y + by, r.Width, r.Height - by}
}
