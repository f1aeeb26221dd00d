package trellis

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 values of a Control simultaneously.
// Create one via the convenience constructors (TweenBounds, TweenLocation,
// TweenOpacity, TweenBackColor) and call Update(dt) each frame. The group
// writes the values through the control's setters, so layout and
// invalidation follow as for any other change. If the target control is
// disposed, the group stops immediately.
//
// There is no global animation manager; users call Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	values [4]float64
	apply  func(v *[4]float64)
	target *Control
	Done   bool
}

// Update advances all tweens by dt seconds and applies the values to the
// target. If the target has been disposed, Done is set to true and no writes
// occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		g.values[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
	g.apply(&g.values)
}

func newTweenGroup(c *Control, from, to []float64, duration float32, fn ease.TweenFunc, apply func(v *[4]float64)) *TweenGroup {
	if fn == nil {
		fn = ease.Linear
	}
	g := &TweenGroup{count: len(from), target: c, apply: apply}
	for i := range from {
		g.tweens[i] = gween.New(float32(from[i]), float32(to[i]), duration, fn)
		g.values[i] = from[i]
	}
	return g
}

// TweenBounds creates a TweenGroup that animates the control's bounds to
// the given rectangle over the specified duration using the easing function.
func TweenBounds(c *Control, to Rect, duration float32, fn ease.TweenFunc) *TweenGroup {
	b := c.Bounds()
	return newTweenGroup(c,
		[]float64{float64(b.X), float64(b.Y), float64(b.Width), float64(b.Height)},
		[]float64{float64(to.X), float64(to.Y), float64(to.Width), float64(to.Height)},
		duration, fn, func(v *[4]float64) {
			c.SetBounds(round(v[0]), round(v[1]), round(v[2]), round(v[3]))
		})
}

// TweenLocation creates a TweenGroup that moves the control to (x, y).
func TweenLocation(c *Control, x, y int, duration float32, fn ease.TweenFunc) *TweenGroup {
	p := c.Location()
	return newTweenGroup(c,
		[]float64{float64(p.X), float64(p.Y)},
		[]float64{float64(x), float64(y)},
		duration, fn, func(v *[4]float64) {
			c.SetLocation(round(v[0]), round(v[1]))
		})
}

// TweenOpacity creates a TweenGroup that fades the control to the target
// opacity.
func TweenOpacity(c *Control, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(c,
		[]float64{c.Opacity()}, []float64{to},
		duration, fn, func(v *[4]float64) {
			c.SetOpacity(v[0])
		})
}

// TweenBackColor creates a TweenGroup that animates all four components of
// the background color to the target color.
func TweenBackColor(c *Control, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	from := c.BackColor()
	return newTweenGroup(c,
		[]float64{from.R, from.G, from.B, from.A},
		[]float64{to.R, to.G, to.B, to.A},
		duration, fn, func(v *[4]float64) {
			c.SetBackColor(Color{R: v[0], G: v[1], B: v[2], A: v[3]})
		})
}

func round(v float64) int {
	return int(math.Round(v))
}
