package trellis

type syntheticKind uint8

const (
	synthMove syntheticKind = iota
	synthPress
	synthRelease
	synthWheel
	synthKeyDown
	synthKeyUp
	synthChar
)

// syntheticEvent represents a single injected input event. Display
// coordinates are used, matching what a screenshot shows.
type syntheticEvent struct {
	kind   syntheticKind
	x, y   float64
	button MouseButton
	dx, dy float64
	key    Key
	char   rune
	mods   KeyModifiers
}

func (d *Display) inject(e syntheticEvent) {
	d.injectQueue = append(d.injectQueue, e)
}

// InjectMove queues a pointer move to (x, y). Between InjectPress and
// InjectRelease it drags.
func (d *Display) InjectMove(x, y float64) {
	d.inject(syntheticEvent{kind: synthMove, x: x, y: y})
}

// InjectPress queues a left-button press at (x, y). Queued events are
// consumed one per Update, and real input is skipped while any remain.
func (d *Display) InjectPress(x, y float64) {
	d.InjectPressButton(x, y, MouseButtonLeft)
}

// InjectPressButton queues a press of the given button at (x, y).
func (d *Display) InjectPressButton(x, y float64, button MouseButton) {
	d.inject(syntheticEvent{kind: synthPress, x: x, y: y, button: button})
}

// InjectRelease queues a release of the held button at (x, y).
func (d *Display) InjectRelease(x, y float64) {
	d.inject(syntheticEvent{kind: synthRelease, x: x, y: y})
}

// InjectClick is a convenience that queues a press followed by a release
// at the same point. Consumes two frames.
func (d *Display) InjectClick(x, y float64) {
	d.InjectPress(x, y)
	d.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and
// release at (toX, toY). The total sequence consumes `frames` frames.
// Minimum frames is 2 (press + release).
func (d *Display) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	d.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		d.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	d.InjectRelease(toX, toY)
}

// InjectWheel queues a wheel event at (x, y).
func (d *Display) InjectWheel(x, y, dx, dy float64) {
	d.inject(syntheticEvent{kind: synthWheel, x: x, y: y, dx: dx, dy: dy})
}

// InjectKey queues a key press and release with the given modifiers.
func (d *Display) InjectKey(key Key, mods KeyModifiers) {
	d.inject(syntheticEvent{kind: synthKeyDown, key: key, mods: mods})
	d.inject(syntheticEvent{kind: synthKeyUp, key: key, mods: mods})
}

// InjectText queues one typed character per rune of s.
func (d *Display) InjectText(s string) {
	for _, r := range s {
		d.inject(syntheticEvent{kind: synthChar, char: r})
	}
}

// processInjected pops one event from the inject queue and feeds it
// through the pointer tracker or the key router. Returns true if an event
// was consumed (real input should be skipped).
func (d *Display) processInjected() bool {
	if len(d.injectQueue) == 0 {
		return false
	}
	e := d.injectQueue[0]
	copy(d.injectQueue, d.injectQueue[1:])
	d.injectQueue = d.injectQueue[:len(d.injectQueue)-1]

	switch e.kind {
	case synthMove:
		d.tracker.move(d, e.x, e.y, e.mods)
	case synthPress:
		d.tracker.press(d, e.x, e.y, e.button, e.mods)
	case synthRelease:
		d.tracker.release(d, e.x, e.y, e.mods)
	case synthWheel:
		d.tracker.move(d, e.x, e.y, e.mods)
		d.Wheel(e.x, e.y, e.dx, e.dy, e.mods)
	case synthKeyDown:
		d.KeyDown(e.key, e.mods)
	case synthKeyUp:
		d.KeyUp(e.key, e.mods)
	case synthChar:
		d.KeyPress(e.char, e.mods)
	}
	return true
}

// PendingInjections returns the number of queued synthetic events.
func (d *Display) PendingInjections() int { return len(d.injectQueue) }
