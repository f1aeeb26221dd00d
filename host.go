package trellis

import (
	"fmt"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// doubleClickSlop is how far apart, in pixels, two clicks may land and still
// form a double click.
const doubleClickSlop = 4.0

// pointerTracker turns raw pointer state (position, press, release) into the
// router's event sequence. A release over the pressed control produces
// Down, Click, Up; a second click within the double-click interval adds a
// DoubleClick after its Click.
type pointerTracker struct {
	x, y   float64
	hasPos bool
	down   bool
	button MouseButton

	clicks     int
	lastClick  time.Time
	lastClickX float64
	lastClickY float64
	interval   time.Duration
	now        func() time.Time
}

func newPointerTracker(interval time.Duration) pointerTracker {
	return pointerTracker{interval: interval, now: time.Now}
}

func (t *pointerTracker) move(d *Display, x, y float64, mods KeyModifiers) {
	if t.hasPos && x == t.x && y == t.y {
		return
	}
	t.x, t.y, t.hasPos = x, y, true
	d.PointerMove(x, y, mods)
}

func (t *pointerTracker) press(d *Display, x, y float64, button MouseButton, mods KeyModifiers) {
	t.move(d, x, y, mods)
	if t.down {
		return
	}
	t.down = true
	t.button = button
	d.PointerDown(x, y, button, mods)
}

func (t *pointerTracker) release(d *Display, x, y float64, mods KeyModifiers) {
	t.move(d, x, y, mods)
	if !t.down {
		return
	}
	t.down = false
	button := t.button
	if d.Click(x, y, button, mods) {
		now := t.now()
		if t.clicks == 1 && now.Sub(t.lastClick) <= t.interval &&
			math.Abs(x-t.lastClickX) <= doubleClickSlop && math.Abs(y-t.lastClickY) <= doubleClickSlop {
			d.DoubleClick(x, y, button, mods)
			t.clicks = 0
		} else {
			t.clicks = 1
			t.lastClick = now
			t.lastClickX, t.lastClickY = x, y
		}
	} else {
		t.clicks = 0
	}
	d.PointerUp(x, y, button, mods)
}

// SetClock replaces the time source used for double-click detection.
func (d *Display) SetClock(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	d.tracker.now = now
}

// --- Ebitengine host ---

var hostButtons = [...]struct {
	eb ebiten.MouseButton
	b  MouseButton
}{
	{ebiten.MouseButtonLeft, MouseButtonLeft},
	{ebiten.MouseButtonRight, MouseButtonRight},
	{ebiten.MouseButtonMiddle, MouseButtonMiddle},
}

// pollInput feeds the current Ebitengine input state through the router.
func (d *Display) pollInput() {
	mods := readModifiers()
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	d.tracker.move(d, x, y, mods)

	for _, hb := range hostButtons {
		if inpututil.IsMouseButtonJustPressed(hb.eb) {
			d.tracker.press(d, x, y, hb.b, mods)
		}
		if inpututil.IsMouseButtonJustReleased(hb.eb) && d.tracker.down && d.tracker.button == hb.b {
			d.tracker.release(d, x, y, mods)
		}
	}
	if wx, wy := ebiten.Wheel(); wx != 0 || wy != 0 {
		d.Wheel(x, y, wx, wy, mods)
	}

	d.keyBuf = inpututil.AppendJustPressedKeys(d.keyBuf[:0])
	for _, k := range d.keyBuf {
		d.KeyDown(k, mods)
	}
	d.keyBuf = inpututil.AppendJustReleasedKeys(d.keyBuf[:0])
	for _, k := range d.keyBuf {
		d.KeyUp(k, mods)
	}
	d.charBuf = ebiten.AppendInputChars(d.charBuf[:0])
	for _, r := range d.charBuf {
		d.KeyPress(r, mods)
	}
}

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// Resizable lets the user resize the window; the display follows.
	Resizable bool
	// ShowFPS adds an FPS label in the top-left corner.
	ShowFPS bool
	// ClearColor fills the screen behind the top-level controls.
	ClearColor Color
	// Update, when set, runs once per tick after input was routed.
	Update func() error
}

type host struct {
	display *Display
	cfg     RunConfig
	fps     *FPSLabel
}

// Run opens a window and drives the display from Ebitengine's game loop:
// input is routed every tick, dirty levels are redrawn and composited every
// frame. It blocks until the window closes.
func Run(d *Display, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	d.hostInput = true
	d.SetSize(cfg.Width, cfg.Height)

	h := &host{display: d, cfg: cfg}
	if cfg.ShowFPS {
		h.fps = NewFPSLabel("fps")
		h.fps.SetLocation(4, 4)
		d.Add(h.fps.Control)
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if err := ebiten.RunGame(h); err != nil {
		return fmt.Errorf("run game loop: %w", err)
	}
	return nil
}

func (h *host) Update() error {
	h.display.Update()
	if h.fps != nil {
		h.fps.Update(1 / float64(ebiten.TPS()))
	}
	if h.cfg.Update != nil {
		return h.cfg.Update()
	}
	return nil
}

func (h *host) Draw(screen *ebiten.Image) {
	if !h.cfg.ClearColor.IsTransparent() {
		screen.Fill(h.cfg.ClearColor.toRGBA())
	}
	h.display.Draw(screen)
}

func (h *host) Layout(outsideWidth, outsideHeight int) (int, int) {
	if h.cfg.Resizable {
		h.display.SetSize(outsideWidth, outsideHeight)
		return outsideWidth, outsideHeight
	}
	return h.cfg.Width, h.cfg.Height
}
