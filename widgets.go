package trellis

import (
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Debug-font glyph metrics used by DrawText.
const (
	glyphWidth  = 6
	glyphHeight = 16
)

// NewPanel creates a plain container. Panels have a transparent background
// until a theme or SetBackColor gives them one.
func NewPanel(name string) *Control {
	c := NewControl(name, nil)
	c.ThemeClass = "panel"
	return c
}

// NewForm creates a top-level window control. A form is a focus
// notification boundary and, once added to a display, renders into its own
// level bitmap.
func NewForm(name string) *Control {
	c := NewControl(name, nil)
	c.role = RoleForm
	c.backColor = ColorWhite
	c.ThemeClass = "form"
	return c
}

// NewScrollPanel creates a scrolling container. Its children are rendered
// into a level bitmap as large as their extents and shown through the scroll
// offset; unhandled wheel events over it scroll it.
func NewScrollPanel(name string) *Control {
	c := NewControl(name, nil)
	c.scrolling = true
	c.ThemeClass = "scroll"
	return c
}

// --- Auto-size panel ---

type autoSizeBehavior struct {
	BaseBehavior
}

// NewAutoSizePanel creates a container that grows or shrinks to fit its
// undocked children once they have sized themselves.
func NewAutoSizePanel(name string) *Control {
	c := NewControl(name, autoSizeBehavior{})
	c.ThemeClass = "panel"
	return c
}

func (autoSizeBehavior) SizeAfterChildren(c *Control) {
	var extent Size
	for _, child := range c.childrenZ {
		if !child.visible || child.dock != DockNone {
			continue
		}
		extent.Width = max(extent.Width, child.bounds.Right()-c.clientRect.X)
		extent.Height = max(extent.Height, child.bounds.Bottom()-c.clientRect.Y)
	}
	in := c.insets()
	c.sizeToContent(extent.Width+in.Width, extent.Height+in.Height)
}

// --- Label ---

// Label paints a single line of text with the debug font.
type Label struct {
	*Control
	BaseBehavior
	text string
	// AutoSize makes the label size itself to its text.
	AutoSize bool
}

// NewLabel creates an auto-sized label.
func NewLabel(name, text string) *Label {
	l := &Label{text: text, AutoSize: true}
	l.Control = NewControl(name, l)
	l.ThemeClass = "label"
	return l
}

// Text returns the label text.
func (l *Label) Text() string { return l.text }

// SetText changes the text, resizing an auto-sized label.
func (l *Label) SetText(text string) {
	if l.text == text {
		return
	}
	l.text = text
	l.Invalidate()
	if l.AutoSize {
		l.requestLayout()
	}
}

// PreferredSize returns the size that fits the text inside the decorations.
func (l *Label) PreferredSize() Size {
	in := l.insets()
	return Size{
		Width:  utf8.RuneCountInString(l.text)*glyphWidth + in.Width,
		Height: glyphHeight + in.Height,
	}
}

func (l *Label) SizeSelf(c *Control, _ Size) {
	if !l.AutoSize {
		return
	}
	s := l.PreferredSize()
	c.sizeToContent(s.Width, s.Height)
}

func (l *Label) PaintForeground(_ *Control, s Surface, client Rect) {
	if l.text != "" {
		s.DrawText(l.text, client.X, client.Y)
	}
}

// --- Button ---

// Button is a focusable label that reports presses through OnPressed. It
// reacts to clicks and, while focused, to Enter and Space.
type Button struct {
	*Label
	hover     bool
	pressed   bool
	OnPressed func(b *Button)
}

// NewButton creates a button with the given caption.
func NewButton(name, caption string) *Button {
	b := &Button{Label: &Label{text: caption, AutoSize: true}}
	b.Control = NewControl(name, b)
	b.ThemeClass = "button"
	b.focusable = true
	b.SetPadding(Spacing{6, 2, 6, 2})
	b.backColor = Color{0.24, 0.49, 0.85, 1}
	return b
}

// Hovered reports whether the pointer is over the button.
func (b *Button) Hovered() bool { return b.hover }

// Pressed reports whether the button is held down.
func (b *Button) Pressed() bool { return b.pressed }

// Press fires OnPressed as if the button had been clicked.
func (b *Button) Press() {
	if b.OnPressed != nil && b.EnabledInTree() {
		b.OnPressed(b)
	}
}

// stateColor lightens the back color while hovered and darkens it while
// pressed, blending in Lab space so the hue stays put.
func (b *Button) stateColor() Color {
	base := b.backColor
	if base.IsTransparent() || (!b.hover && !b.pressed) {
		return base
	}
	from := colorful.Color{R: base.R, G: base.G, B: base.B}
	to, t := colorful.Color{R: 1, G: 1, B: 1}, 0.2
	if b.pressed {
		to, t = colorful.Color{}, 0.25
	}
	m := from.BlendLab(to, t).Clamped()
	return Color{R: m.R, G: m.G, B: m.B, A: base.A}
}

func (b *Button) PaintBackground(c *Control, s Surface, bounds Rect) {
	r := c.borderRect(bounds)
	if r.IsEmpty() {
		return
	}
	s.Fill(r, b.stateColor())
	if c.borderWidth > 0 {
		s.StrokeRect(r, c.borderWidth, c.borderColor)
	}
	if c.Focused() {
		s.StrokeRect(r, 1, c.foreColor)
	}
}

func (b *Button) HandlePointer(ctx PointerContext) {
	switch ctx.Type {
	case EventPointerEnter:
		b.hover = true
	case EventPointerLeave:
		b.hover = false
	case EventPointerDown:
		b.pressed = ctx.Button == MouseButtonLeft
	case EventPointerUp:
		b.pressed = false
	case EventClick:
		if ctx.Button == MouseButtonLeft {
			b.Press()
		}
		return
	default:
		return
	}
	b.Invalidate()
}

func (b *Button) HandleKey(ctx KeyContext) bool {
	if ctx.Type != EventKeyDown {
		return false
	}
	switch ctx.Key {
	case ebiten.KeyEnter, ebiten.KeyNumpadEnter, ebiten.KeySpace:
		b.Press()
		return true
	}
	return false
}
