package trellis

// PointerContext carries pointer event data for control callbacks and
// display-level handlers.
type PointerContext struct {
	Type     EventType
	Control  *Control
	ID       uint32
	UserData any
	// Display coordinates of the pointer.
	GlobalX float64
	GlobalY float64
	// Coordinates relative to the control's top-left corner.
	LocalX    float64
	LocalY    float64
	Button    MouseButton
	Modifiers KeyModifiers
	// Wheel deltas (valid for EventWheel).
	WheelX float64
	WheelY float64
}

// KeyContext carries keyboard event data. Key events are delivered to the
// focused control and bubble up through its ancestors until a callback
// reports the event handled.
type KeyContext struct {
	Type EventType
	// Control is the control the callback is attached to.
	Control *Control
	// Target is the focused control the event was routed to.
	Target    *Control
	Key       Key
	Char      rune // valid for EventKeyPress
	Modifiers KeyModifiers
}

// FocusContext carries focus transition data.
type FocusContext struct {
	// Control is the control being notified.
	Control *Control
	// Old is the control that lost focus, or nil.
	Old *Control
	// New is the control that gained focus, or nil.
	New *Control
}

// EventSink is the interface for optional ECS integration. When set on a
// Display, routed interaction events are forwarded to it.
type EventSink interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries interaction data for the ECS bridge.
type InteractionEvent struct {
	Type      EventType
	ControlID uint32
	Name      string
	GlobalX   float64
	GlobalY   float64
	LocalX    float64
	LocalY    float64
	Button    MouseButton
	Modifiers KeyModifiers
	WheelX    float64
	WheelY    float64
	Key       Key
	Char      rune
	// Focus fields (valid for EventFocusChanged)
	OldFocusID uint32
	NewFocusID uint32
}
