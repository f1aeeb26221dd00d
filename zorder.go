package trellis

import "slices"

// TopMost reports whether the control is pinned to the front group of its
// siblings.
func (c *Control) TopMost() bool { return c.topMost }

// SetTopMost pins or unpins the control to the front group of its siblings
// and repositions it accordingly.
func (c *Control) SetTopMost(v bool) {
	if c.topMost == v {
		return
	}
	c.topMost = v
	if c.parent != nil {
		p := c.parent
		p.removeZ(c)
		p.insertZ(c, false)
		p.afterZChange(c)
	}
}

// frontIndex is the first Z slot child may occupy: 0 for topMost children,
// otherwise the slot right after the topMost group.
func (c *Control) frontIndex(child *Control) int {
	if child.topMost {
		return 0
	}
	return c.topMostCount()
}

// backIndex is the last Z slot child may occupy: the end of the topMost group
// for topMost children, otherwise the very end.
func (c *Control) backIndex(child *Control) int {
	if child.topMost {
		return c.topMostCount()
	}
	return len(c.childrenZ)
}

func (c *Control) topMostCount() int {
	n := 0
	for n < len(c.childrenZ) && c.childrenZ[n].topMost {
		n++
	}
	return n
}

// insertZ inserts child into both Z lists. The inverse list receives the
// mirrored insertion so it stays an exact reverse.
func (c *Control) insertZ(child *Control, atBack bool) {
	i := c.frontIndex(child)
	if atBack {
		i = c.backIndex(child)
	}
	c.insertZAt(child, i)
}

func (c *Control) insertZAt(child *Control, i int) {
	n := len(c.childrenZ)
	c.childrenZ = slices.Insert(c.childrenZ, i, child)
	c.childrenInverseZ = slices.Insert(c.childrenInverseZ, n-i, child)
}

// removeZ removes child from both Z lists and returns its former Z index,
// or -1 when it was not present.
func (c *Control) removeZ(child *Control) int {
	i := c.zIndexOf(child)
	if i < 0 {
		return -1
	}
	n := len(c.childrenZ)
	c.childrenZ = slices.Delete(c.childrenZ, i, i+1)
	c.childrenInverseZ = slices.Delete(c.childrenInverseZ, n-1-i, n-i)
	return i
}

func (c *Control) zIndexOf(child *Control) int {
	return slices.Index(c.childrenZ, child)
}

// ZIndex returns the control's position among its siblings (0 is front-most),
// or -1 without a parent.
func (c *Control) ZIndex() int {
	if c.parent == nil {
		return -1
	}
	return c.parent.zIndexOf(c)
}

// BringToFront moves child to the first slot its topMost flag allows. It
// returns true when child was already there, in which case nothing changes.
// Panics if child's parent is not this control.
func (c *Control) BringToFront(child *Control) bool {
	if child == nil || child.parent != c {
		panic("trellis: child's parent is not this control")
	}
	i := c.zIndexOf(child)
	c.removeZ(child)
	target := c.frontIndex(child)
	if i == target {
		c.insertZAt(child, i)
		return true
	}
	c.insertZAt(child, target)
	c.afterZChange(child)
	return false
}

// SendToBack moves child to the last slot its topMost flag allows. It returns
// true when child was already there.
// Panics if child's parent is not this control.
func (c *Control) SendToBack(child *Control) bool {
	if child == nil || child.parent != c {
		panic("trellis: child's parent is not this control")
	}
	i := c.zIndexOf(child)
	c.removeZ(child)
	target := c.backIndex(child)
	if i == target {
		c.insertZAt(child, i)
		return true
	}
	c.insertZAt(child, target)
	c.afterZChange(child)
	return false
}

// BringSelfToFront brings this control to the front of its siblings.
func (c *Control) BringSelfToFront() bool {
	if c.parent == nil {
		return true
	}
	return c.parent.BringToFront(c)
}

func (c *Control) afterZChange(child *Control) {
	if globalDebug {
		debugCheckZOrder(c)
	}
	// Paint order changed: everything under the child's footprint repaints.
	c.markDirty()
	child.Invalidate()
	if c.hasLayoutOrderedChild() {
		c.PerformLayout()
	}
}

// hasLayoutOrderedChild reports whether a visible child claims area in Z
// order, which makes the layout outcome depend on the sibling order.
func (c *Control) hasLayoutOrderedChild() bool {
	for _, child := range c.childrenZ {
		if !child.visible {
			continue
		}
		if child.dock != DockNone {
			return true
		}
		if _, ok := child.Behavior.(SelfLayouter); ok {
			return true
		}
	}
	return false
}
