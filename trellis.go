package trellis

import "github.com/hajimehoshi/ebiten/v2"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when the color reaches a Surface.
type Color struct {
	R, G, B, A float64
}

var (
	// ColorTransparent is the zero color. Controls with a transparent back
	// color propagate invalidation to their parent.
	ColorTransparent = Color{}
	ColorWhite       = Color{1, 1, 1, 1}
	ColorBlack       = Color{0, 0, 0, 1}
)

// IsTransparent reports whether the color has no alpha at all.
func (c Color) IsTransparent() bool {
	return c.A <= 0
}

// Point is an integer pixel position.
type Point struct {
	X, Y int
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns p translated by -q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Size is an integer width and height.
type Size struct {
	Width, Height int
}

// Rect is an axis-aligned integer rectangle. The coordinate system has its
// origin at the top-left, with Y increasing downward. The right and bottom
// edges are exclusive.
type Rect struct {
	X, Y, Width, Height int
}

// Location returns the top-left corner.
func (r Rect) Location() Point { return Point{r.X, r.Y} }

// Size returns the width and height.
func (r Rect) Size() Size { return Size{r.Width, r.Height} }

// Right returns the exclusive right edge.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int { return r.Y + r.Height }

// IsEmpty reports whether the rectangle covers no pixels.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether the point (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width &&
		y >= r.Y && y < r.Y+r.Height
}

// Offset returns r translated by (dx, dy).
func (r Rect) Offset(dx, dy int) Rect {
	return Rect{r.X + dx, r.Y + dy, r.Width, r.Height}
}

// Intersect returns the overlapping area of r and other. The result is the
// zero Rect when they do not overlap.
func (r Rect) Intersect(other Rect) Rect {
	x0 := max(r.X, other.X)
	y0 := max(r.Y, other.Y)
	x1 := min(r.Right(), other.Right())
	y1 := min(r.Bottom(), other.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{x0, y0, x1 - x0, y1 - y0}
}

// Intersects reports whether r and other share at least one pixel.
func (r Rect) Intersects(other Rect) bool {
	return !r.Intersect(other).IsEmpty()
}

// Union returns the smallest rectangle containing both r and other.
// Empty rectangles are ignored.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	x0 := min(r.X, other.X)
	y0 := min(r.Y, other.Y)
	x1 := max(r.Right(), other.Right())
	y1 := max(r.Bottom(), other.Bottom())
	return Rect{x0, y0, x1 - x0, y1 - y0}
}

// Spacing holds per-edge thickness for margins and padding.
type Spacing struct {
	Left, Top, Right, Bottom int
}

// Uniform returns a Spacing with the same thickness on every edge.
func Uniform(v int) Spacing {
	return Spacing{v, v, v, v}
}

// Horizontal returns Left + Right.
func (s Spacing) Horizontal() int { return s.Left + s.Right }

// Vertical returns Top + Bottom.
func (s Spacing) Vertical() int { return s.Top + s.Bottom }

// DockStyle selects how a control claims area from its parent during layout.
type DockStyle uint8

const (
	DockNone   DockStyle = iota // position from bounds and anchor
	DockFill                    // whole incoming area, residual becomes empty
	DockCenter                  // centered in the incoming area, residual unchanged
	DockWidth                   // full incoming width, vertical geometry kept
	DockHeight                  // full incoming height, horizontal geometry kept

	DockLeft       // left edge, consumes its width
	DockLeftCenter // left edge, vertically centered, floating
	DockLeftTop    // top-left corner, floating
	DockLeftBottom // bottom-left corner, floating

	DockRight       // right edge, consumes its width
	DockRightCenter // right edge, vertically centered, floating
	DockRightTop    // top-right corner, floating
	DockRightBottom // bottom-right corner, floating

	DockTop       // top edge, consumes its height
	DockTopCenter // top edge, horizontally centered, floating
	DockTopLeft   // top-left corner, floating
	DockTopRight  // top-right corner, floating

	DockBottom       // bottom edge, consumes its height
	DockBottomCenter // bottom edge, horizontally centered, floating
	DockBottomLeft   // bottom-left corner, floating
	DockBottomRight  // bottom-right corner, floating
)

// AnchorStyles is a bitmask of parent edges a DockNone control keeps its
// distance to when the parent is resized.
type AnchorStyles uint8

const (
	AnchorTop AnchorStyles = 1 << iota
	AnchorBottom
	AnchorLeft
	AnchorRight

	AnchorNone    AnchorStyles = 0
	AnchorTopLeft              = AnchorTop | AnchorLeft
	AnchorAll                  = AnchorTop | AnchorBottom | AnchorLeft | AnchorRight
)

// Role tags the structural kinds the engine needs to tell apart.
type Role uint8

const (
	RoleControl Role = iota // ordinary control
	RoleForm                // top-level form: focus notification boundary
	RoleDisplay             // the display root
)

// EventType identifies a kind of routed event.
type EventType uint8

const (
	EventPointerDown  EventType = iota // a pointer button was pressed
	EventPointerUp                     // a pointer button was released
	EventPointerMove                   // the pointer moved over (or dragged) a control
	EventPointerEnter                  // the pointer entered a control
	EventPointerLeave                  // the pointer left a control
	EventClick                         // press and click over the same control
	EventDoubleClick                   // double click over the pressed control
	EventWheel                         // wheel scrolled over the hovered control
	EventKeyDown                       // key pressed while a control has focus
	EventKeyUp                         // key released while a control has focus
	EventKeyPress                      // character typed while a control has focus
	EventFocusChanged                  // focus moved between controls
)

var eventTypeNames = [...]string{
	"pointer-down", "pointer-up", "pointer-move", "pointer-enter", "pointer-leave",
	"click", "double-click", "wheel", "key-down", "key-up", "key-press", "focus-changed",
}

func (e EventType) String() string {
	if int(e) < len(eventTypeNames) {
		return eventTypeNames[e]
	}
	return "unknown"
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// Key identifies a keyboard key. It shares Ebitengine's key codes so host
// adapters can pass them through untouched.
type Key = ebiten.Key
