package trellis

// Theme styles controls as they join a display. Apply runs once for every
// newly attached control whose theming is enabled along its owner chain;
// NoTheme runs instead when it is not.
type Theme interface {
	Apply(c *Control)
	NoTheme(c *Control)
}

// ThemeFuncs adapts a pair of functions to the Theme interface. Nil fields
// are skipped.
type ThemeFuncs struct {
	ApplyFunc   func(c *Control)
	NoThemeFunc func(c *Control)
}

// Apply calls ApplyFunc.
func (t ThemeFuncs) Apply(c *Control) {
	if t.ApplyFunc != nil {
		t.ApplyFunc(c)
	}
}

// NoTheme calls NoThemeFunc.
func (t ThemeFuncs) NoTheme(c *Control) {
	if t.NoThemeFunc != nil {
		t.NoThemeFunc(c)
	}
}

// ThemingEnabled reports whether the control itself accepts theming.
func (c *Control) ThemingEnabled() bool { return c.themingEnabled }

// SetThemingEnabled opts the control, and every control whose owner chain
// passes through it, in or out of theming. It only affects controls that
// have not been themed yet.
func (c *Control) SetThemingEnabled(v bool) { c.themingEnabled = v }

// themingAllowed reports whether theming is enabled on c and along its
// owner chain.
func (c *Control) themingAllowed() bool {
	if !c.themingEnabled {
		return false
	}
	for p := c.ownerOrParent(); p != nil && p != c; p = p.ownerOrParent() {
		if !p.themingEnabled {
			return false
		}
	}
	return true
}

// applyThemeTree runs the theme for every control in the subtree that has not
// been themed yet. Parents are themed before their children.
func applyThemeTree(c *Control) {
	if c.theme == nil {
		return
	}
	if !c.themed {
		c.themed = true
		if c.themingAllowed() {
			c.theme.Apply(c)
		} else {
			c.theme.NoTheme(c)
		}
	}
	for _, child := range c.childrenZ {
		applyThemeTree(child)
	}
}
