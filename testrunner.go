package trellis

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string   `json:"action"`
	Label  string   `json:"label,omitempty"`
	X      float64  `json:"x,omitempty"`
	Y      float64  `json:"y,omitempty"`
	FromX  float64  `json:"fromX,omitempty"`
	FromY  float64  `json:"fromY,omitempty"`
	ToX    float64  `json:"toX,omitempty"`
	ToY    float64  `json:"toY,omitempty"`
	DX     float64  `json:"dx,omitempty"`
	DY     float64  `json:"dy,omitempty"`
	Frames int      `json:"frames,omitempty"`
	Button string   `json:"button,omitempty"`
	Key    string   `json:"key,omitempty"`
	Text   string   `json:"text,omitempty"`
	Mods   []string `json:"mods,omitempty"`

	// Resolved while loading.
	button MouseButton
	key    Key
	mods   KeyModifiers
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected input events and screenshots across frames
// for automated UI testing. Attach to a Display via SetTestRunner.
//
// A script is a JSON object with a "steps" array:
//
//	{"steps": [
//	  {"action": "click", "x": 40, "y": 30},
//	  {"action": "key", "key": "Tab", "mods": ["shift"]},
//	  {"action": "type", "text": "hello"},
//	  {"action": "wait", "frames": 10},
//	  {"action": "screenshot", "label": "after-typing"}
//	]}
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

var testActions = map[string]bool{
	"screenshot": true, "move": true, "press": true, "release": true,
	"click": true, "drag": true, "key": true, "type": true, "wheel": true,
	"wait": true,
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Display via SetTestRunner. Unknown actions, buttons,
// keys and modifiers are reported as errors.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i := range script.Steps {
		if err := script.Steps[i].resolve(); err != nil {
			return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

func (st *testStep) resolve() error {
	if !testActions[st.Action] {
		return fmt.Errorf("unknown action %q", st.Action)
	}
	switch strings.ToLower(st.Button) {
	case "", "left":
		st.button = MouseButtonLeft
	case "right":
		st.button = MouseButtonRight
	case "middle":
		st.button = MouseButtonMiddle
	default:
		return fmt.Errorf("unknown button %q", st.Button)
	}
	for _, m := range st.Mods {
		switch strings.ToLower(m) {
		case "shift":
			st.mods |= ModShift
		case "ctrl", "control":
			st.mods |= ModCtrl
		case "alt":
			st.mods |= ModAlt
		case "meta", "cmd", "super":
			st.mods |= ModMeta
		default:
			return fmt.Errorf("unknown modifier %q", m)
		}
	}
	if st.Action == "key" {
		var k ebiten.Key
		if err := k.UnmarshalText([]byte(st.Key)); err != nil {
			return fmt.Errorf("key %q: %w", st.Key, err)
		}
		st.key = k
	}
	return nil
}

// SetTestRunner attaches a TestRunner to the display. The runner's step
// method is called from Display.Update before input is processed each frame.
func (d *Display) SetTestRunner(runner *TestRunner) {
	d.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame. Called from Display.Update.
func (r *TestRunner) step(d *Display) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(d.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		d.Screenshot(st.Label)
	case "move":
		d.InjectMove(st.X, st.Y)
	case "press":
		d.InjectPressButton(st.X, st.Y, st.button)
	case "release":
		d.InjectRelease(st.X, st.Y)
	case "click":
		d.InjectPressButton(st.X, st.Y, st.button)
		d.InjectRelease(st.X, st.Y)
	case "drag":
		d.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "key":
		d.InjectKey(st.key, st.mods)
	case "type":
		d.InjectText(st.Text)
	case "wheel":
		d.InjectWheel(st.X, st.Y, st.DX, st.DY)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(d.injectQueue) == 0 {
		r.done = true
	}
}
