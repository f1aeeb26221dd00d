package trellis

// Behavior is the capability set a widget variant plugs into a Control.
// The engine calls through it during sizing and painting and never needs to
// know the concrete widget type.
type Behavior interface {
	// SizeSelf lets a control size itself from its parent's client size
	// before its children are sized.
	SizeSelf(c *Control, parentClient Size)
	// SizeAfterChildren runs once every visible child has sized itself.
	SizeAfterChildren(c *Control)
	// PaintBackground paints the background and border into bounds.
	PaintBackground(c *Control, s Surface, bounds Rect)
	// PaintForeground paints content into the client rectangle after children.
	PaintForeground(c *Control, s Surface, client Rect)
}

// SelfLayouter replaces the docking step for a single control. LayoutSelf
// positions c inside area and returns the residual area for later siblings.
type SelfLayouter interface {
	LayoutSelf(c *Control, area Rect) Rect
}

// PointerHandler receives every pointer event routed to a control, after
// the control's own callbacks.
type PointerHandler interface {
	HandlePointer(ctx PointerContext)
}

// KeyHandler receives key events routed to a focused control. Returning true
// stops the event from bubbling to the parent.
type KeyHandler interface {
	HandleKey(ctx KeyContext) bool
}

// BaseBehavior is the default Behavior. Embed it to override a subset.
type BaseBehavior struct{}

func (BaseBehavior) SizeSelf(*Control, Size)  {}
func (BaseBehavior) SizeAfterChildren(*Control) {}

func (BaseBehavior) PaintBackground(c *Control, s Surface, bounds Rect) {
	c.PaintDecorations(s, bounds)
}

func (BaseBehavior) PaintForeground(*Control, Surface, Rect) {}

// nodeIDCounter is a plain counter (trellis is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Control is the single node type of the control tree. Widget variants differ
// by their Behavior and Role; geometry, layout, Z-order, invalidation and
// event state live here.
type Control struct {
	// Identity
	ID         uint32
	Name       string
	ThemeClass string
	Behavior   Behavior
	role       Role

	// Hierarchy. parent and owner are non-owning; childrenZ is front-to-back
	// and childrenInverseZ is its exact reverse.
	parent           *Control
	owner            *Control
	owned            []*Control
	childrenZ        []*Control
	childrenInverseZ []*Control
	display          *Display
	theme            Theme
	themed           bool

	// Geometry
	bounds       Rect
	margin       Spacing
	padding      Spacing
	borderWidth  int
	borderColor  Color
	backColor    Color
	foreColor    Color
	clientRect   Rect
	minimumSize  Size
	maximumSize  Size
	lastLocation Point
	lastSize     Size
	scale        float64
	opacity      float64

	// Layout intent
	dock          DockStyle
	dockingMargin int
	dockPercent   float64
	anchor        AnchorStyles

	// Layout state
	suspendLayoutCount int
	constructing       bool
	needsLayout        bool
	layingOut          bool
	committedClient    Size
	hasCommitted       bool

	// Flags
	visible           bool
	enabled           bool
	focusable         bool
	rejectFocus       bool
	giveFocusToParent bool
	topMost           bool
	themingEnabled    bool
	tabOrder          int

	// Redraw
	needsRedraw  bool
	scrolling    bool
	scrollOffset Point
	levelBitmap  Bitmap
	bitmapFresh  bool

	// Metadata
	UserData any

	// Per-control callbacks (nil by default)
	OnMove             func(c *Control)
	OnResize           func(c *Control)
	OnAttached         func(c, parent *Control)
	OnDetached         func(c, parent *Control)
	OnChildAdded       func(c, child *Control)
	OnChildRemoved     func(c, child *Control)
	OnPointerDown      func(PointerContext)
	OnPointerUp        func(PointerContext)
	OnPointerMove      func(PointerContext)
	OnPointerEnter     func(PointerContext)
	OnPointerLeave     func(PointerContext)
	OnClick            func(PointerContext)
	OnDoubleClick      func(PointerContext)
	OnWheel            func(PointerContext)
	OnKeyDown          func(KeyContext) bool
	OnKeyUp            func(KeyContext) bool
	OnKeyPress         func(KeyContext) bool
	OnFocused          func(FocusContext)
	OnDeactivated      func(FocusContext)
	OnChildFocused     func(FocusContext)
	OnChildDeactivated func(FocusContext)
	OnFocusChanged     func(FocusContext)

	disposed bool
}

// NewControl creates a control driven by b (BaseBehavior when nil). The
// control starts with layout suspended so it can be configured without wasted
// layout passes; attaching it with Add releases that suspension.
func NewControl(name string, b Behavior) *Control {
	if b == nil {
		b = BaseBehavior{}
	}
	c := &Control{
		ID:                 nextNodeID(),
		Name:               name,
		Behavior:           b,
		scale:              1,
		opacity:            1,
		anchor:             AnchorTopLeft,
		suspendLayoutCount: 1,
		constructing:       true,
		visible:            true,
		enabled:            true,
		themingEnabled:     true,
		tabOrder:           -1,
		foreColor:          ColorBlack,
	}
	return c
}

func (c *Control) behavior() Behavior {
	if c.Behavior == nil {
		return BaseBehavior{}
	}
	return c.Behavior
}

// Role returns the structural role of the control.
func (c *Control) Role() Role { return c.role }

// SetRole tags the control. RoleDisplay is reserved for the display root.
func (c *Control) SetRole(r Role) {
	if r == RoleDisplay {
		panic("trellis: RoleDisplay is reserved for the display root")
	}
	c.role = r
}

// --- Tree manipulation ---

// Add attaches child at the front of this control's Z order (behind any
// topMost siblings unless child is topMost itself).
// If child already has another parent, it is detached from it first.
// Panics if child is nil or child is an ancestor of this control (cycle).
func (c *Control) Add(child *Control) {
	c.add(child, false)
}

// AddAtBack attaches child at the back of the Z order.
func (c *Control) AddAtBack(child *Control) {
	c.add(child, true)
}

func (c *Control) add(child *Control, atBack bool) {
	if child == nil {
		panic("trellis: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(c, "Add (parent)")
		debugCheckDisposed(child, "Add (child)")
		if child.parent == c {
			panic("trellis debug: control " + quoteName(child) + " added twice to " + quoteName(c))
		}
	}
	if isAncestor(child, c) {
		panic("trellis: adding child would create a cycle")
	}
	if child.parent == c {
		return
	}
	if child.parent != nil {
		child.parent.Detach(child)
	}

	c.insertZ(child, atBack)
	child.parent = c
	if child.tabOrder < 0 {
		child.tabOrder = len(c.childrenZ) - 1
	}
	child.attachTo(c.display, c.theme)
	if child.constructing {
		child.constructing = false
		if child.suspendLayoutCount > 0 {
			child.suspendLayoutCount--
		}
	}

	if c.OnChildAdded != nil {
		c.OnChildAdded(c, child)
	}
	if child.OnAttached != nil {
		child.OnAttached(child, c)
	}
	applyThemeTree(child)

	c.PerformLayout()
	child.Invalidate()

	if globalDebug {
		debugCheckZOrder(c)
		debugCheckTreeDepth(child)
		debugCheckChildCount(c)
	}
}

// Remove detaches child and disposes its whole subtree: level bitmaps are
// released and any focus or hover reference into it is cleared.
// Panics if child's parent is not this control.
func (c *Control) Remove(child *Control) {
	c.detachChild(child, "Remove")
	child.dispose()
	c.afterChildRemoved(child)
}

// Detach removes child from this control but keeps its subtree intact so it
// can be added again elsewhere.
// Panics if child's parent is not this control.
func (c *Control) Detach(child *Control) {
	c.detachChild(child, "Detach")
	c.afterChildRemoved(child)
}

// RemoveFromParent removes and disposes this control. Controls without a
// parent are disposed directly.
func (c *Control) RemoveFromParent() {
	if c.parent == nil {
		c.Dispose()
		return
	}
	c.parent.Remove(c)
}

// DetachFromParent detaches this control from its parent.
// No-op if this control has no parent.
func (c *Control) DetachFromParent() {
	if c.parent == nil {
		return
	}
	c.parent.Detach(c)
}

func (c *Control) detachChild(child *Control, op string) {
	if globalDebug {
		debugCheckDisposed(c, op+" (parent)")
	}
	if child == nil || child.parent != c {
		panic("trellis: child's parent is not this control")
	}
	c.removeZ(child)
	child.parent = nil
	d := child.display
	child.attachTo(nil, child.theme)
	if d != nil {
		d.controlRemoved(child)
	}
	if child.OnDetached != nil {
		child.OnDetached(child, c)
	}
	if c.OnChildRemoved != nil {
		c.OnChildRemoved(c, child)
	}
	if globalDebug {
		debugCheckZOrder(c)
	}
}

func (c *Control) afterChildRemoved(child *Control) {
	// The pixels the child covered belong to this control again.
	c.markDirty()
	c.requestRender()
	c.PerformLayout()
}

// attachTo propagates the display and theme references down the subtree.
func (c *Control) attachTo(d *Display, t Theme) {
	c.display = d
	c.theme = t
	for _, child := range c.childrenZ {
		child.attachTo(d, t)
	}
}

// Parent returns the parent control, or nil when detached.
func (c *Control) Parent() *Control { return c.parent }

// Display returns the display this control is attached to, or nil.
func (c *Control) Display() *Display { return c.display }

// Children returns the children in front-to-back order. The returned slice
// MUST NOT be mutated by the caller.
func (c *Control) Children() []*Control { return c.childrenZ }

// ChildrenBackToFront returns the children in paint order. The returned
// slice MUST NOT be mutated by the caller.
func (c *Control) ChildrenBackToFront() []*Control { return c.childrenInverseZ }

// NumChildren returns the number of children.
func (c *Control) NumChildren() int { return len(c.childrenZ) }

// ChildAt returns the child at Z index i (0 is front-most).
func (c *Control) ChildAt(i int) *Control { return c.childrenZ[i] }

// IsTopLevel reports whether the control is a direct child of the display root.
func (c *Control) IsTopLevel() bool {
	return c.parent != nil && c.parent.role == RoleDisplay
}

// TopLevel returns the top-level ancestor (or c itself), or nil when c is
// not under a display root.
func (c *Control) TopLevel() *Control {
	for p := c; p != nil; p = p.parent {
		if p.IsTopLevel() {
			return p
		}
	}
	return nil
}

// Form returns the nearest RoleForm ancestor including c, falling back to the
// top-level ancestor.
func (c *Control) Form() *Control {
	for p := c; p != nil && p.role != RoleDisplay; p = p.parent {
		if p.role == RoleForm {
			return p
		}
	}
	return c.TopLevel()
}

// IsDescendantOf reports whether ancestor is c or one of c's ancestors.
func (c *Control) IsDescendantOf(ancestor *Control) bool {
	return isAncestor(ancestor, c)
}

// --- Ownership ---

// SetOwner records a non-owning cross reference, used for popups that live
// under the display root but logically belong to another control.
func (c *Control) SetOwner(owner *Control) {
	if c.owner == owner {
		return
	}
	if c.owner != nil {
		c.owner.owned = removeControl(c.owner.owned, c)
	}
	c.owner = owner
	if owner != nil {
		owner.owned = append(owner.owned, c)
	}
}

// Owner returns the owner set with SetOwner, or nil.
func (c *Control) Owner() *Control { return c.owner }

// ownerOrParent is the next link of the ownership chain.
func (c *Control) ownerOrParent() *Control {
	if c.owner != nil {
		return c.owner
	}
	return c.parent
}

// IsOwnedBy reports whether other appears in c's ownership chain, which
// follows the owner link when set and the parent link otherwise.
func (c *Control) IsOwnedBy(other *Control) bool {
	if other == nil {
		return false
	}
	for p := c.ownerOrParent(); p != nil; p = p.ownerOrParent() {
		if p == other {
			return true
		}
		if p == c {
			break
		}
	}
	return false
}

// --- Disposal ---

// Dispose removes this control from its parent and disposes the subtree.
func (c *Control) Dispose() {
	if c.disposed {
		return
	}
	if c.parent != nil {
		c.parent.Remove(c)
		return
	}
	c.dispose()
}

func (c *Control) dispose() {
	for _, child := range c.childrenZ {
		child.parent = nil
		child.dispose()
	}
	c.releaseBitmap()
	for _, o := range c.owned {
		o.owner = nil
	}
	c.owned = nil
	c.SetOwner(nil)
	c.childrenZ = nil
	c.childrenInverseZ = nil
	c.parent = nil
	c.display = nil
	c.disposed = true
	c.ID = 0
	c.UserData = nil
}

// IsDisposed returns true if this control has been disposed.
func (c *Control) IsDisposed() bool {
	return c.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is node or an ancestor of node.
func isAncestor(candidate, node *Control) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

func removeControl(s []*Control, c *Control) []*Control {
	for i, x := range s {
		if x == c {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = nil
			return s[:len(s)-1]
		}
	}
	return s
}

func quoteName(c *Control) string {
	return "\"" + c.Name + "\""
}
