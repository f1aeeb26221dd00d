package trellis

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// FPSLabel is a label showing the current FPS and TPS.
// Call Update each tick; the text is refreshed every ~0.5 seconds.
type FPSLabel struct {
	*Label
	sinceUpdate float64
	// sample reports frames and ticks per second. Defaults to Ebitengine's
	// measured values.
	sample func() (fps, tps float64)
}

// NewFPSLabel creates an FPS label. The control is pinned on top of its
// siblings so it stays readable.
func NewFPSLabel(name string) *FPSLabel {
	f := &FPSLabel{Label: NewLabel(name, "FPS: 0.0 TPS: 0.0"), sample: ebitenRates}
	f.ThemeClass = "fps"
	f.topMost = true
	f.backColor = Color{0, 0, 0, 0.5}
	return f
}

func ebitenRates() (float64, float64) {
	return ebiten.ActualFPS(), ebiten.ActualTPS()
}

// Update advances the refresh timer by dt seconds.
func (f *FPSLabel) Update(dt float64) {
	f.sinceUpdate += dt
	if f.sinceUpdate < 0.5 {
		return
	}
	f.sinceUpdate = 0
	fps, tps := f.sample()
	f.SetText(fmt.Sprintf("FPS: %.1f TPS: %.1f", fps, tps))
}
