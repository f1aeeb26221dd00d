package trellis

import (
	"fmt"
	"testing"
)

// fakeBackend records bitmap allocations, uploads and render requests.
type fakeBackend struct {
	bitmaps   []*fakeBitmap
	uploads   []*fakeBitmap
	schedules int
}

func (b *fakeBackend) NewBitmap(w, h int) Bitmap {
	bm := &fakeBitmap{size: Size{w, h}}
	b.bitmaps = append(b.bitmaps, bm)
	return bm
}

func (b *fakeBackend) UploadBitmap(bm Bitmap) {
	b.uploads = append(b.uploads, bm.(*fakeBitmap))
}

func (b *fakeBackend) ScheduleRender() { b.schedules++ }

func (b *fakeBackend) resetOps() {
	b.uploads = nil
	for _, bm := range b.bitmaps {
		bm.ops = nil
	}
}

// live returns the bitmaps that have not been disposed.
func (b *fakeBackend) live() []*fakeBitmap {
	var out []*fakeBitmap
	for _, bm := range b.bitmaps {
		if !bm.disposed {
			out = append(out, bm)
		}
	}
	return out
}

type fakeOp struct {
	kind  string
	rect  Rect
	clip  Rect
	color Color
	src   *fakeBitmap
	text  string
}

func (o fakeOp) String() string {
	return fmt.Sprintf("%s %v clip=%v", o.kind, o.rect, o.clip)
}

type fakeBitmap struct {
	size     Size
	ops      []fakeOp
	disposed bool
}

func (b *fakeBitmap) Size() Size { return b.size }

func (b *fakeBitmap) Surface() Surface {
	return &fakeSurface{bm: b, clip: Rect{0, 0, b.size.Width, b.size.Height}}
}

func (b *fakeBitmap) Dispose() { b.disposed = true }

func (b *fakeBitmap) count(kind string) int {
	n := 0
	for _, op := range b.ops {
		if op.kind == kind {
			n++
		}
	}
	return n
}

func (b *fakeBitmap) fills(c Color) []fakeOp {
	var out []fakeOp
	for _, op := range b.ops {
		if op.kind == "fill" && op.color == c {
			out = append(out, op)
		}
	}
	return out
}

type fakeSurface struct {
	bm   *fakeBitmap
	clip Rect
}

func (s *fakeSurface) Bounds() Rect { return s.clip }

func (s *fakeSurface) Clip(r Rect) Surface {
	return &fakeSurface{bm: s.bm, clip: s.clip.Intersect(r)}
}

func (s *fakeSurface) record(op fakeOp) {
	op.clip = s.clip
	s.bm.ops = append(s.bm.ops, op)
}

func (s *fakeSurface) Clear(r Rect) { s.record(fakeOp{kind: "clear", rect: r}) }

func (s *fakeSurface) Fill(r Rect, c Color) { s.record(fakeOp{kind: "fill", rect: r, color: c}) }

func (s *fakeSurface) StrokeRect(r Rect, _ int, c Color) {
	s.record(fakeOp{kind: "stroke", rect: r, color: c})
}

func (s *fakeSurface) DrawBitmap(b Bitmap, src, dst Rect, _ float64) {
	s.record(fakeOp{kind: "bitmap", rect: dst, src: b.(*fakeBitmap)})
}

func (s *fakeSurface) DrawText(text string, x, y int) {
	s.record(fakeOp{kind: "text", rect: Rect{X: x, Y: y}, text: text})
}

// newTestDisplay creates a display backed by a fakeBackend.
func newTestDisplay(t *testing.T, w, h int) (*Display, *fakeBackend) {
	t.Helper()
	b := &fakeBackend{}
	d := NewDisplay(DisplayConfig{Width: w, Height: h, Backend: b})
	t.Cleanup(func() {
		globalDebug = false
		debugLog = nil
	})
	return d, b
}

// newBox creates a plain control with the given bounds and an opaque color.
func newBox(name string, x, y, w, h int) *Control {
	c := NewControl(name, nil)
	c.SetBounds(x, y, w, h)
	c.SetBackColor(ColorWhite)
	return c
}

// eventLog collects event names in firing order.
type eventLog struct {
	events []string
}

func (l *eventLog) add(s string) { l.events = append(l.events, s) }

// pointer returns a callback that records "<prefix>:<event>".
func (l *eventLog) pointer(prefix string) func(PointerContext) {
	return func(ctx PointerContext) { l.add(prefix + ":" + ctx.Type.String()) }
}

// hook wires every pointer callback of c into the log.
func (l *eventLog) hook(c *Control) {
	fn := l.pointer(c.Name)
	c.OnPointerDown = fn
	c.OnPointerUp = fn
	c.OnPointerMove = fn
	c.OnPointerEnter = fn
	c.OnPointerLeave = fn
	c.OnClick = fn
	c.OnDoubleClick = fn
	c.OnWheel = fn
}

// without returns the events whose names do not end with one of suffixes.
func (l *eventLog) without(suffixes ...string) []string {
	var out []string
outer:
	for _, e := range l.events {
		for _, s := range suffixes {
			if len(e) >= len(s) && e[len(e)-len(s):] == s {
				continue outer
			}
		}
		out = append(out, e)
	}
	return out
}
