// Package trellis is a retained-mode UI control tree for [Ebitengine].
//
// Trellis keeps a tree of rectangular controls and does the bookkeeping a
// widget toolkit needs underneath its widgets: docking and anchoring layout,
// Z-order, dirty-region redraw into per-level bitmaps, hit-testing, pointer
// capture, keyboard focus and tab traversal.
//
// # Quick start
//
// The simplest way to get started is [Run], which opens a window and drives
// the display from Ebitengine's game loop:
//
//	d := trellis.NewDisplay(trellis.DisplayConfig{Width: 640, Height: 480})
//	form := trellis.NewForm("main")
//	form.SetBounds(40, 40, 300, 200)
//	d.Add(form)
//	trellis.Run(d, trellis.RunConfig{Title: "Demo", Width: 640, Height: 480})
//
// For full control, implement [ebiten.Game] yourself and call
// [Display.Update] and [Display.Draw] directly, or feed the router from any
// other input source through [Display.PointerDown], [Display.KeyDown] and
// friends.
//
// # Control tree
//
// Every element is a [Control]. Top-level controls are children of
// [Display.Root]. A control's behavior ([Behavior]) sizes and paints it;
// optional [PointerHandler] and [KeyHandler] implementations receive routed
// input. Each control keeps its children in two lists, front to back and
// back to front, and topmost children always stay in front of the others.
//
// # Layout
//
// Children are laid out in Z order. A docked child claims an edge, a corner
// or the center of the parent's remaining client area; an undocked child
// keeps its bounds and follows the parent's resizes on its anchored edges.
// [Control.SuspendLayout] and [Control.ResumeLayout] batch changes into a
// single pass.
//
// # Redraw
//
// [Control.Invalidate] marks a control dirty. Top-level controls, scrolling
// controls, and controls with a scale or opacity own a level bitmap; a
// redraw repaints only the dirty parts of each level and composites nested
// levels into their parents.
//
// # Theming
//
// A [Theme] styles controls once, when they first join a display. A
// [StyleSheet] loaded from TOML or YAML is the stock implementation.
//
// # Testing
//
// [Display.InjectClick], [Display.InjectKey] and the JSON scripts read by
// [LoadTestScript] drive the router one event per frame, and
// [Display.Screenshot] captures the composited frame.
//
// [Ebitengine]: https://ebitengine.org
package trellis
