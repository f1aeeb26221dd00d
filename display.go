package trellis

import (
	"log/slog"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	defaultDoubleClickInterval = 500 * time.Millisecond
	defaultWheelStep           = 16
	maxRedrawPasses            = 2
)

// DisplayConfig holds optional configuration for NewDisplay.
type DisplayConfig struct {
	// Width and Height set the initial display size.
	Width, Height int
	// Backend allocates level bitmaps. Defaults to NewEbitenBackend().
	Backend Backend
	// Theme styles every control attached under the display. Nil disables
	// theming.
	Theme Theme
	// Logger receives debug diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
	// DoubleClickInterval is the longest gap between two clicks that still
	// counts as a double click. Defaults to 500ms.
	DoubleClickInterval time.Duration
	// WheelStep is the number of pixels a scrolling control moves per wheel
	// notch. Defaults to 16.
	WheelStep int
	// Debug enables debug assertions and diagnostics.
	Debug bool
}

// Level describes one composited top-level control, back to front.
type Level struct {
	Control *Control
	Bitmap  Bitmap
	// Source is the area of Bitmap to show.
	Source Rect
	// Bounds is where the level goes, in display coordinates, before scaling.
	Bounds  Rect
	Opacity float64
	Scale   float64
}

// Display is the root of a control tree. It owns the root control, the
// renderer backend, and the router state: the hovered, pressed and focused
// controls.
type Display struct {
	root    *Control
	backend Backend
	theme   Theme
	logger  *slog.Logger
	sink    EventSink
	debug   bool

	renderPending bool

	// Router state. All three are weak references, cleared by controlRemoved.
	mouseOver  *Control
	mouseDown  *Control
	focus      *Control
	heldButton MouseButton

	handlers  handlerRegistry
	wheelStep int

	// Host and injected input.
	tracker     pointerTracker
	injectQueue []syntheticEvent
	hostInput   bool
	keyBuf      []ebiten.Key
	charBuf     []rune
	testRunner  *TestRunner

	// ScreenshotDir is where Screenshot writes PNG files. Defaults to
	// "screenshots".
	ScreenshotDir   string
	screenshotQueue []string

	// Work posted from other goroutines.
	postMu sync.Mutex
	posted []func()

	levelBuf []Level
}

// NewDisplay creates a display with an empty root control sized to the
// configured dimensions.
func NewDisplay(cfg DisplayConfig) *Display {
	if cfg.Backend == nil {
		cfg.Backend = NewEbitenBackend()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.DoubleClickInterval <= 0 {
		cfg.DoubleClickInterval = defaultDoubleClickInterval
	}
	if cfg.WheelStep <= 0 {
		cfg.WheelStep = defaultWheelStep
	}
	d := &Display{
		backend:   cfg.Backend,
		theme:     cfg.Theme,
		logger:    cfg.Logger.With("component", "trellis"),
		wheelStep: cfg.WheelStep,

		ScreenshotDir: "screenshots",
	}
	d.tracker = newPointerTracker(cfg.DoubleClickInterval)

	root := NewControl("display", nil)
	root.role = RoleDisplay
	root.constructing = false
	root.suspendLayoutCount = 0
	root.display = d
	root.theme = cfg.Theme
	root.themed = true
	d.root = root
	root.SetBounds(0, 0, cfg.Width, cfg.Height)

	d.SetDebugMode(cfg.Debug)
	return d
}

// Root returns the display's root control. Top-level controls are its
// direct children.
func (d *Display) Root() *Control { return d.root }

// Backend returns the renderer backend.
func (d *Display) Backend() Backend { return d.backend }

// Theme returns the theme controls are styled with, or nil.
func (d *Display) Theme() Theme { return d.theme }

// Logger returns the display's logger.
func (d *Display) Logger() *slog.Logger { return d.logger }

// Size returns the display size.
func (d *Display) Size() Size { return d.root.Size() }

// SetSize resizes the display. Top-level controls docked or anchored to the
// root follow.
func (d *Display) SetSize(width, height int) {
	d.root.SetBounds(0, 0, width, height)
}

// Add attaches a top-level control in front of the others.
func (d *Display) Add(c *Control) { d.root.Add(c) }

// AddAtBack attaches a top-level control behind the others.
func (d *Display) AddAtBack(c *Control) { d.root.AddAtBack(c) }

// Remove removes and disposes a top-level control.
func (d *Display) Remove(c *Control) { d.root.Remove(c) }

// TopLevels returns the top-level controls front to back. The returned
// slice MUST NOT be mutated by the caller.
func (d *Display) TopLevels() []*Control { return d.root.childrenZ }

// SetEventSink sets the optional ECS bridge.
func (d *Display) SetEventSink(sink EventSink) {
	d.sink = sink
}

// SetDebugMode enables or disables debug mode. When enabled, misuse of the
// tree API panics, Z-order lists are verified after every mutation, and
// layout and redraw diagnostics are logged at debug level.
func (d *Display) SetDebugMode(enabled bool) {
	d.debug = enabled
	globalDebug = enabled
	debugLog = d.logger
}

// --- Render scheduling ---

// RenderPending reports whether something was invalidated since the last
// Redraw. The flag is level-triggered: it stays set until Redraw runs.
func (d *Display) RenderPending() bool { return d.renderPending }

func (d *Display) scheduleRender() {
	if d.renderPending {
		return
	}
	d.renderPending = true
	d.backend.ScheduleRender()
}

// Redraw repaints every dirty level and clears the render-pending flag. A
// second pass runs when painting itself invalidated something. It reports
// whether any level changed.
func (d *Display) Redraw() bool {
	var t0 time.Time
	if d.debug {
		t0 = time.Now()
	}
	drew := false
	passes := 0
	for passes < maxRedrawPasses && d.renderPending {
		d.renderPending = false
		passes++
		for _, tl := range d.root.childrenInverseZ {
			if tl.redrawLevel() {
				drew = true
			}
		}
	}
	d.root.needsRedraw = false
	if d.debug && passes > 0 {
		d.logger.Debug("redraw", "passes", passes, "drew", drew, "elapsed", time.Since(t0))
	}
	return drew
}

// Levels returns the visible top-level controls back to front, with the
// bitmap and placement the compositor needs. The returned slice is reused by
// the next call.
func (d *Display) Levels() []Level {
	d.levelBuf = d.levelBuf[:0]
	for _, tl := range d.root.childrenInverseZ {
		if !tl.visible || tl.levelBitmap == nil || tl.opacity <= 0 {
			continue
		}
		bs := tl.levelBitmap.Size()
		src := Rect{tl.scrollOffset.X, tl.scrollOffset.Y, tl.bounds.Width, tl.bounds.Height}
		d.levelBuf = append(d.levelBuf, Level{
			Control: tl,
			Bitmap:  tl.levelBitmap,
			Source:  src.Intersect(Rect{0, 0, bs.Width, bs.Height}),
			Bounds:  tl.bounds,
			Opacity: tl.opacity,
			Scale:   tl.ScaleFactor(),
		})
	}
	return d.levelBuf
}

// Draw redraws pending levels and composites them onto screen.
func (d *Display) Draw(screen *ebiten.Image) {
	if d.renderPending {
		d.Redraw()
	}
	for _, l := range d.Levels() {
		img := EbitenImage(l.Bitmap)
		if img == nil || l.Source.IsEmpty() {
			continue
		}
		var op ebiten.DrawImageOptions
		op.GeoM.Translate(float64(-l.Source.X), float64(-l.Source.Y))
		op.GeoM.Scale(l.Scale, l.Scale)
		op.GeoM.Translate(float64(l.Bounds.X), float64(l.Bounds.Y))
		op.ColorScale.ScaleAlpha(float32(l.Opacity))
		screen.DrawImage(img.SubImage(rectToImage(l.Source)).(*ebiten.Image), &op)
	}
	d.flushScreenshots(screen)
}

// Update runs posted work, advances an attached test runner, then feeds one
// queued synthetic input event or, when a host is attached, the real input
// state through the router.
func (d *Display) Update() {
	d.drainPosted()
	if d.testRunner != nil {
		d.testRunner.step(d)
	}
	if d.processInjected() {
		return
	}
	if d.hostInput {
		d.pollInput()
	}
}

// --- Cross-goroutine work ---

// Post schedules fn to run on the UI goroutine at the start of the next
// Update. It is the only Display method that is safe to call from other
// goroutines.
func (d *Display) Post(fn func()) {
	if fn == nil {
		return
	}
	d.postMu.Lock()
	d.posted = append(d.posted, fn)
	d.postMu.Unlock()
}

func (d *Display) drainPosted() {
	d.postMu.Lock()
	work := d.posted
	d.posted = nil
	d.postMu.Unlock()
	for _, fn := range work {
		fn()
	}
}

// --- Weak reference maintenance ---

// controlRemoved is the node-removed notification: it runs whenever a
// subtree leaves the display and clears router references into it.
func (d *Display) controlRemoved(c *Control) {
	if d.debug {
		d.logger.Debug("control removed", "control", c.Name, "id", c.ID)
	}
	d.releaseReferences(c)
}

// releaseReferences clears hover, press and focus references that point
// into c's subtree.
func (d *Display) releaseReferences(c *Control) {
	if d.mouseOver != nil && isAncestor(c, d.mouseOver) {
		d.mouseOver = nil
	}
	if d.mouseDown != nil && isAncestor(c, d.mouseDown) {
		d.mouseDown = nil
	}
	if d.focus != nil && isAncestor(c, d.focus) {
		d.focus = nil
	}
}

// releaseFocusIn moves focus away from c's subtree with the usual
// notifications.
func (d *Display) releaseFocusIn(c *Control) {
	if d.focus != nil && isAncestor(c, d.focus) {
		d.changeFocus(nil)
	}
}

// MouseOver returns the control currently under the pointer, or nil.
func (d *Display) MouseOver() *Control { return d.mouseOver }

// MouseDownControl returns the control that received the current press, or
// nil when no button is held.
func (d *Display) MouseDownControl() *Control { return d.mouseDown }
