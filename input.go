package trellis

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// --- Handler registry ---

type handlerEntry[F any] struct {
	id uint32
	fn F
}

const numPointerEvents = int(EventWheel) + 1

type handlerRegistry struct {
	pointer [numPointerEvents][]handlerEntry[func(PointerContext)]
	key     [3][]handlerEntry[func(KeyContext)]
	focus   []handlerEntry[func(FocusContext)]
	nextID  uint32
}

// CallbackHandle allows removing a registered display-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
// The entry is removed from the slice to avoid nil iteration waste.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch {
	case int(h.event) < numPointerEvents:
		h.reg.pointer[h.event] = removeHandler(h.reg.pointer[h.event], h.id)
	case h.event >= EventKeyDown && h.event <= EventKeyPress:
		i := h.event - EventKeyDown
		h.reg.key[i] = removeHandler(h.reg.key[i], h.id)
	case h.event == EventFocusChanged:
		h.reg.focus = removeHandler(h.reg.focus, h.id)
	}
}

func removeHandler[F any](s []handlerEntry[F], id uint32) []handlerEntry[F] {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = handlerEntry[F]{}
			return s[:len(s)-1]
		}
	}
	return s
}

func (r *handlerRegistry) addPointer(ev EventType, fn func(PointerContext)) CallbackHandle {
	r.nextID++
	r.pointer[ev] = append(r.pointer[ev], handlerEntry[func(PointerContext)]{id: r.nextID, fn: fn})
	return CallbackHandle{id: r.nextID, reg: r, event: ev}
}

func (r *handlerRegistry) addKey(ev EventType, fn func(KeyContext)) CallbackHandle {
	r.nextID++
	i := ev - EventKeyDown
	r.key[i] = append(r.key[i], handlerEntry[func(KeyContext)]{id: r.nextID, fn: fn})
	return CallbackHandle{id: r.nextID, reg: r, event: ev}
}

// --- Display-level event registration ---

// OnPointerDown registers a display-level callback for pointer down events.
// Display-level callbacks run before the control's own callbacks, for every
// event, including those routed to disabled controls.
func (d *Display) OnPointerDown(fn func(PointerContext)) CallbackHandle {
	return d.handlers.addPointer(EventPointerDown, fn)
}

// OnPointerUp registers a display-level callback for pointer up events.
func (d *Display) OnPointerUp(fn func(PointerContext)) CallbackHandle {
	return d.handlers.addPointer(EventPointerUp, fn)
}

// OnPointerMove registers a display-level callback for pointer move events.
func (d *Display) OnPointerMove(fn func(PointerContext)) CallbackHandle {
	return d.handlers.addPointer(EventPointerMove, fn)
}

// OnPointerEnter registers a display-level callback for pointer enter events.
// Fired when the pointer moves over a new control.
func (d *Display) OnPointerEnter(fn func(PointerContext)) CallbackHandle {
	return d.handlers.addPointer(EventPointerEnter, fn)
}

// OnPointerLeave registers a display-level callback for pointer leave events.
func (d *Display) OnPointerLeave(fn func(PointerContext)) CallbackHandle {
	return d.handlers.addPointer(EventPointerLeave, fn)
}

// OnClick registers a display-level callback for click events.
func (d *Display) OnClick(fn func(PointerContext)) CallbackHandle {
	return d.handlers.addPointer(EventClick, fn)
}

// OnDoubleClick registers a display-level callback for double-click events.
func (d *Display) OnDoubleClick(fn func(PointerContext)) CallbackHandle {
	return d.handlers.addPointer(EventDoubleClick, fn)
}

// OnWheel registers a display-level callback for wheel events.
func (d *Display) OnWheel(fn func(PointerContext)) CallbackHandle {
	return d.handlers.addPointer(EventWheel, fn)
}

// OnKeyDown registers a display-level callback for key down events. It runs
// before the focused control sees the key and cannot stop it.
func (d *Display) OnKeyDown(fn func(KeyContext)) CallbackHandle {
	return d.handlers.addKey(EventKeyDown, fn)
}

// OnKeyUp registers a display-level callback for key up events.
func (d *Display) OnKeyUp(fn func(KeyContext)) CallbackHandle {
	return d.handlers.addKey(EventKeyUp, fn)
}

// OnKeyPress registers a display-level callback for typed characters.
func (d *Display) OnKeyPress(fn func(KeyContext)) CallbackHandle {
	return d.handlers.addKey(EventKeyPress, fn)
}

// OnFocusChanged registers a display-level callback for focus transitions.
func (d *Display) OnFocusChanged(fn func(FocusContext)) CallbackHandle {
	d.handlers.nextID++
	d.handlers.focus = append(d.handlers.focus, handlerEntry[func(FocusContext)]{id: d.handlers.nextID, fn: fn})
	return CallbackHandle{id: d.handlers.nextID, reg: &d.handlers, event: EventFocusChanged}
}

// --- Hit testing ---

// FindControlOver returns the front-most visible control under the display
// point (x, y). The root is returned when no top-level control is hit, and
// nil when the point is outside the display.
func (d *Display) FindControlOver(x, y float64) *Control {
	return d.root.hitTest(x, y)
}

// hitTest takes (x, y) in the parent's local space.
func (c *Control) hitTest(x, y float64) *Control {
	if !c.visible || c.disposed {
		return nil
	}
	lx, ly, inside := c.toLocal(x, y)
	if !inside {
		return nil
	}
	if c.childAreaContains(lx, ly) {
		for _, child := range c.childrenZ {
			if hit := child.hitTest(lx, ly); hit != nil {
				return hit
			}
		}
	}
	return c
}

// childAreaContains reports whether the local point lies where children are
// painted: the client area, or the content client area of a scrolling level.
// Children reaching into the margin, border or padding are clipped there.
func (c *Control) childAreaContains(lx, ly float64) bool {
	r := c.clientRect
	if c.scrolling && c.ownsBitmap() {
		r = c.paintClient(Rect{})
	}
	return lx >= float64(r.X) && ly >= float64(r.Y) &&
		lx < float64(r.Right()) && ly < float64(r.Bottom())
}

// --- Pointer state machine ---

// PointerMove routes a pointer move to display coordinates (x, y). While a
// button is held on the hovered control, movement is a drag: the move goes to
// the held control and hover does not change. Otherwise Leave and Enter fire
// when the hovered control changes, then Move fires on the new one.
func (d *Display) PointerMove(x, y float64, mods KeyModifiers) {
	target := d.FindControlOver(x, y)
	if d.mouseDown != nil && d.mouseDown == d.mouseOver && target != d.mouseOver {
		d.firePointer(EventPointerMove, d.mouseDown, x, y, d.heldButton, mods, 0, 0)
		return
	}
	d.updateHover(target, x, y, mods)
	if target != nil {
		d.firePointer(EventPointerMove, target, x, y, d.heldButton, mods, 0, 0)
	}
}

// PointerDown routes a button press. The top-level control containing the
// target is brought to the front and the target is recorded as the pressed
// control.
func (d *Display) PointerDown(x, y float64, button MouseButton, mods KeyModifiers) {
	target := d.FindControlOver(x, y)
	d.updateHover(target, x, y, mods)
	if target != nil {
		if tl := target.TopLevel(); tl != nil {
			d.root.BringToFront(tl)
		}
	}
	d.mouseDown = target
	d.heldButton = button
	if target != nil {
		d.firePointer(EventPointerDown, target, x, y, button, mods, 0, 0)
	}
}

// PointerUp routes a button release to the pressed control, clears it, and
// re-evaluates hover at the release point.
func (d *Display) PointerUp(x, y float64, button MouseButton, mods KeyModifiers) {
	target := d.mouseDown
	if target == nil {
		target = d.FindControlOver(x, y)
	}
	d.mouseDown = nil
	if target != nil {
		d.firePointer(EventPointerUp, target, x, y, button, mods, 0, 0)
	}
	d.updateHover(d.FindControlOver(x, y), x, y, mods)
}

// Click routes a click. It only fires while the pointer is still over the
// control that received the press; the target is given focus first. It
// reports whether the click was delivered.
func (d *Display) Click(x, y float64, button MouseButton, mods KeyModifiers) bool {
	target := d.clickTarget(x, y)
	if target == nil {
		return false
	}
	d.SetFocus(target)
	d.firePointer(EventClick, target, x, y, button, mods, 0, 0)
	return true
}

// DoubleClick routes a double click under the same rule as Click.
func (d *Display) DoubleClick(x, y float64, button MouseButton, mods KeyModifiers) bool {
	target := d.clickTarget(x, y)
	if target == nil {
		return false
	}
	d.firePointer(EventDoubleClick, target, x, y, button, mods, 0, 0)
	return true
}

func (d *Display) clickTarget(x, y float64) *Control {
	if d.mouseDown == nil || d.mouseOver != d.mouseDown {
		return nil
	}
	if d.FindControlOver(x, y) != d.mouseDown {
		return nil
	}
	return d.mouseDown
}

// Wheel routes a wheel event to the hovered control. When the control does
// not handle wheel events itself, the nearest scrolling ancestor scrolls.
// It reports whether anything received the event.
func (d *Display) Wheel(x, y, dx, dy float64, mods KeyModifiers) bool {
	target := d.mouseOver
	if target == nil {
		return false
	}
	d.firePointer(EventWheel, target, x, y, MouseButtonLeft, mods, dx, dy)
	if target.OnWheel != nil || !target.EnabledInTree() {
		return true
	}
	if _, ok := target.Behavior.(PointerHandler); ok {
		return true
	}
	for p := target; p != nil && p.role != RoleDisplay; p = p.parent {
		if p.scrolling {
			p.ScrollBy(-int(dx*float64(d.wheelStep)), -int(dy*float64(d.wheelStep)))
			break
		}
	}
	return true
}

func (d *Display) updateHover(target *Control, x, y float64, mods KeyModifiers) {
	if target == d.mouseOver {
		return
	}
	old := d.mouseOver
	d.mouseOver = target
	if old != nil && !old.disposed {
		d.firePointer(EventPointerLeave, old, x, y, d.heldButton, mods, 0, 0)
	}
	if target != nil {
		d.firePointer(EventPointerEnter, target, x, y, d.heldButton, mods, 0, 0)
	}
}

// --- Keyboard ---

// KeyDown routes a key press to the focused control. The event bubbles to
// ancestors until a callback handles it. An unhandled Tab moves focus to the
// next tab stop (Shift+Tab to the previous one). It reports whether the key
// was handled.
func (d *Display) KeyDown(key Key, mods KeyModifiers) bool {
	handled := d.routeKey(KeyContext{Type: EventKeyDown, Key: key, Modifiers: mods})
	if !handled && key == ebiten.KeyTab {
		handled = d.SelectNextControl(mods&ModShift == 0)
	}
	return handled
}

// KeyUp routes a key release to the focused control.
func (d *Display) KeyUp(key Key, mods KeyModifiers) bool {
	return d.routeKey(KeyContext{Type: EventKeyUp, Key: key, Modifiers: mods})
}

// KeyPress routes a typed character to the focused control.
func (d *Display) KeyPress(r rune, mods KeyModifiers) bool {
	return d.routeKey(KeyContext{Type: EventKeyPress, Char: r, Modifiers: mods})
}

func (d *Display) routeKey(ctx KeyContext) bool {
	ctx.Target = d.focus
	for _, h := range d.handlers.key[ctx.Type-EventKeyDown] {
		h.fn(ctx)
	}
	d.emit(InteractionEvent{
		Type: ctx.Type, ControlID: controlID(d.focus), Name: controlName(d.focus),
		Key: ctx.Key, Char: ctx.Char, Modifiers: ctx.Modifiers,
	})
	if d.focus == nil || !d.focus.EnabledInTree() {
		return false
	}
	for c := d.focus; c != nil && c.role != RoleDisplay; c = c.parent {
		ctx.Control = c
		if c.dispatchKey(ctx) {
			return true
		}
	}
	return false
}

func (c *Control) dispatchKey(ctx KeyContext) bool {
	var fn func(KeyContext) bool
	switch ctx.Type {
	case EventKeyDown:
		fn = c.OnKeyDown
	case EventKeyUp:
		fn = c.OnKeyUp
	case EventKeyPress:
		fn = c.OnKeyPress
	}
	if fn != nil && fn(ctx) {
		return true
	}
	if h, ok := c.Behavior.(KeyHandler); ok {
		return h.HandleKey(ctx)
	}
	return false
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= ModMeta
	}
	return mods
}

// --- Event dispatch ---

func (d *Display) firePointer(ev EventType, c *Control, x, y float64, button MouseButton, mods KeyModifiers, wx, wy float64) {
	lx, ly := c.PointToLocal(x, y)
	ctx := PointerContext{
		Type: ev, Control: c, ID: c.ID, UserData: c.UserData,
		GlobalX: x, GlobalY: y, LocalX: lx, LocalY: ly,
		Button: button, Modifiers: mods, WheelX: wx, WheelY: wy,
	}
	// Display-level handlers first.
	for _, h := range d.handlers.pointer[ev] {
		h.fn(ctx)
	}
	// Per-control callback, only for enabled controls.
	if c.EnabledInTree() {
		if fn := c.pointerCallback(ev); fn != nil {
			fn(ctx)
		}
		if h, ok := c.Behavior.(PointerHandler); ok {
			h.HandlePointer(ctx)
		}
	}
	// ECS bridge.
	d.emit(InteractionEvent{
		Type: ev, ControlID: c.ID, Name: c.Name,
		GlobalX: x, GlobalY: y, LocalX: lx, LocalY: ly,
		Button: button, Modifiers: mods, WheelX: wx, WheelY: wy,
	})
}

func (c *Control) pointerCallback(ev EventType) func(PointerContext) {
	switch ev {
	case EventPointerDown:
		return c.OnPointerDown
	case EventPointerUp:
		return c.OnPointerUp
	case EventPointerMove:
		return c.OnPointerMove
	case EventPointerEnter:
		return c.OnPointerEnter
	case EventPointerLeave:
		return c.OnPointerLeave
	case EventClick:
		return c.OnClick
	case EventDoubleClick:
		return c.OnDoubleClick
	case EventWheel:
		return c.OnWheel
	}
	return nil
}

// --- ECS bridge ---

func (d *Display) emit(e InteractionEvent) {
	if d.sink == nil {
		return
	}
	d.sink.EmitEvent(e)
}

func controlID(c *Control) uint32 {
	if c == nil {
		return 0
	}
	return c.ID
}

func controlName(c *Control) string {
	if c == nil {
		return ""
	}
	return c.Name
}
