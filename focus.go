package trellis

import "math"

// --- Focus flags ---

// Focusable reports whether the control can hold keyboard focus.
func (c *Control) Focusable() bool { return c.focusable }

// SetFocusable allows or forbids keyboard focus. Forbidding it on the focused
// control clears focus.
func (c *Control) SetFocusable(v bool) {
	c.focusable = v
	if !v && c.display != nil && c.display.focus == c {
		c.display.changeFocus(nil)
	}
}

// RejectFocus reports whether focus requests for the control are refused.
func (c *Control) RejectFocus() bool { return c.rejectFocus }

// SetRejectFocus makes focus requests that resolve to, or pass through, this
// control fail without changing the current focus.
func (c *Control) SetRejectFocus(v bool) { c.rejectFocus = v }

// GiveFocusToParent reports whether focus requests are redirected to the
// parent.
func (c *Control) GiveFocusToParent() bool { return c.giveFocusToParent }

// SetGiveFocusToParent redirects focus requests for this control to its
// parent. Such controls are skipped by tab traversal.
func (c *Control) SetGiveFocusToParent(v bool) { c.giveFocusToParent = v }

// TabOrder returns the control's position in tab traversal among its
// siblings.
func (c *Control) TabOrder() int { return c.tabOrder }

// SetTabOrder sets the tab traversal position. Controls added without an
// explicit tab order get the index they were added at.
func (c *Control) SetTabOrder(n int) { c.tabOrder = n }

// Focused reports whether the control holds focus.
func (c *Control) Focused() bool {
	return c.display != nil && c.display.focus == c
}

// ContainsFocus reports whether the control or a descendant holds focus.
func (c *Control) ContainsFocus() bool {
	return c.display != nil && c.display.focus != nil && isAncestor(c, c.display.focus)
}

// Focus asks the display to give this control focus.
func (c *Control) Focus() bool {
	if c.display == nil {
		return false
	}
	return c.display.SetFocus(c)
}

// --- Focus state machine ---

// Focus returns the focused control, or nil.
func (d *Display) Focus() *Control { return d.focus }

// SetFocus moves keyboard focus to target. Setting the current focus again
// succeeds without notifications, and nil clears focus.
//
// GiveFocusToParent redirections are followed first. When the resolved
// control, or any control along the redirect chain, rejects focus, the call
// fails and focus is left unchanged. A resolved control that is disabled,
// hidden, detached or not focusable clears focus and the call fails.
func (d *Display) SetFocus(target *Control) bool {
	if target == d.focus {
		return true
	}
	if target == nil {
		d.changeFocus(nil)
		return true
	}
	resolved := target
	for {
		if resolved.rejectFocus {
			return false
		}
		if !resolved.giveFocusToParent || resolved.parent == nil || resolved.parent.role == RoleDisplay {
			break
		}
		resolved = resolved.parent
	}
	if resolved == d.focus {
		return true
	}
	if resolved.display != d || resolved.role == RoleDisplay || !resolved.focusable ||
		!resolved.EnabledInTree() || !resolved.VisibleInTree() {
		d.changeFocus(nil)
		return false
	}
	d.changeFocus(resolved)
	return true
}

// changeFocus commits a focus change and fires the notifications: the old
// chain is deactivated up to its form boundary, the new chain is focused up
// to its own, and then every control, the display handlers and the event
// sink see the global focus-changed event.
func (d *Display) changeFocus(next *Control) {
	old := d.focus
	if old == next {
		return
	}
	d.focus = next
	if d.debug {
		d.logger.Debug("focus changed", "from", controlName(old), "to", controlName(next))
	}

	if old != nil {
		if old.OnDeactivated != nil {
			old.OnDeactivated(FocusContext{Control: old, Old: old, New: next})
		}
		walkFocusChain(old, func(p *Control) {
			if p.OnChildDeactivated != nil {
				p.OnChildDeactivated(FocusContext{Control: p, Old: old, New: next})
			}
		})
		old.Invalidate()
	}
	if next != nil {
		if next.OnFocused != nil {
			next.OnFocused(FocusContext{Control: next, Old: old, New: next})
		}
		walkFocusChain(next, func(p *Control) {
			if p.OnChildFocused != nil {
				p.OnChildFocused(FocusContext{Control: p, Old: old, New: next})
			}
		})
		next.Invalidate()
	}

	broadcastFocusChanged(d.root, old, next)
	for _, h := range d.handlers.focus {
		h.fn(FocusContext{Old: old, New: next})
	}
	d.emit(InteractionEvent{
		Type: EventFocusChanged, ControlID: controlID(next), Name: controlName(next),
		OldFocusID: controlID(old), NewFocusID: controlID(next),
	})
}

// walkFocusChain calls fn for each ancestor of c up to and including the
// nearest form or top-level control. A form that is itself c ends the chain.
func walkFocusChain(c *Control, fn func(p *Control)) {
	if c.role == RoleForm || c.IsTopLevel() {
		return
	}
	for p := c.parent; p != nil && p.role != RoleDisplay; p = p.parent {
		fn(p)
		if p.role == RoleForm || p.IsTopLevel() {
			return
		}
	}
}

func broadcastFocusChanged(c *Control, old, next *Control) {
	if c.OnFocusChanged != nil {
		c.OnFocusChanged(FocusContext{Control: c, Old: old, New: next})
	}
	for _, child := range c.childrenZ {
		broadcastFocusChanged(child, old, next)
	}
}

// --- Tab order ---

// isTabStop reports whether c can receive focus through tab traversal.
func (c *Control) isTabStop() bool {
	return c.focusable && !c.rejectFocus && !c.giveFocusToParent
}

// FindNextTabChild returns the tab stop among c's descendants that follows
// tab position current in the given direction: the visible, enabled child
// whose tab order is nearest to current, strictly after it. A child that is
// not focusable itself but contains tab stops stands in for its first one.
// Pass -1 (forward) or math.MaxInt32 (backward) to start from the ends.
// It returns nil when no tab stop follows.
func (c *Control) FindNextTabChild(current int, forward bool) *Control {
	var best *Control
	bestDist := math.MaxInt
	for _, child := range c.childrenZ {
		if !child.visible || !child.enabled {
			continue
		}
		dist := child.tabOrder - current
		if !forward {
			dist = current - child.tabOrder
		}
		if dist <= 0 || dist >= bestDist {
			continue
		}
		var candidate *Control
		switch {
		case child.isTabStop():
			candidate = child
		case !child.focusable && len(child.childrenZ) > 0:
			candidate = child.FindNextTabChild(tabStart(forward), forward)
		}
		if candidate != nil {
			best, bestDist = candidate, dist
		}
	}
	return best
}

func tabStart(forward bool) int {
	if forward {
		return -1
	}
	return math.MaxInt32
}

// SelectNextControl moves focus to the next tab stop after the focused
// control (or the previous one when forward is false), wrapping around
// inside the focused control's form. Without focus, traversal starts in the
// front-most top-level control. It reports whether focus moved.
func (d *Display) SelectNextControl(forward bool) bool {
	cur := d.focus
	var next *Control
	var scope *Control
	if cur == nil {
		for _, tl := range d.root.childrenZ {
			if tl.visible {
				scope = tl
				break
			}
		}
		if scope == nil {
			return false
		}
		if scope.isTabStop() && scope.enabled {
			return d.SetFocus(scope)
		}
	} else {
		scope = cur.Form()
		if scope == nil {
			scope = d.root
		}
		for p := cur; p != scope && p.parent != nil; p = p.parent {
			if next = p.parent.FindNextTabChild(p.tabOrder, forward); next != nil {
				break
			}
		}
	}
	if next == nil {
		next = scope.FindNextTabChild(tabStart(forward), forward)
	}
	if next == nil || next == cur {
		return false
	}
	return d.SetFocus(next)
}
