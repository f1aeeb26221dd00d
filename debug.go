package trellis

import (
	"fmt"
	"log/slog"
	"slices"
)

// globalDebug mirrors the most recently set Display debug flag so that
// control operations (which may run before a control is attached) can check
// it cheaply. Only valid with a single Display; multiple Displays with
// differing debug modes reflect whichever called SetDebugMode last.
var globalDebug bool

// debugLog is the logger of the Display that last called SetDebugMode.
var debugLog *slog.Logger

func debugLogger() *slog.Logger {
	if debugLog != nil {
		return debugLog
	}
	return slog.Default().With("component", "trellis")
}

// debugCheckDisposed panics with a descriptive message when a disposed
// control is used in a tree operation. In release mode callers skip this
// entirely.
func debugCheckDisposed(c *Control, op string) {
	if c.disposed {
		panic(fmt.Sprintf("trellis debug: %s on disposed control %q", op, c.Name))
	}
}

// debugCheckZOrder panics when the two Z lists of c are not exact reverses
// of each other or a child's parent link is wrong.
func debugCheckZOrder(c *Control) {
	if err := verifyZOrder(c); err != nil {
		panic("trellis debug: " + err.Error())
	}
}

func verifyZOrder(c *Control) error {
	n := len(c.childrenZ)
	if len(c.childrenInverseZ) != n {
		return fmt.Errorf("control %q: Z lists differ in length (%d vs %d)", c.Name, n, len(c.childrenInverseZ))
	}
	for i, child := range c.childrenZ {
		if c.childrenInverseZ[n-1-i] != child {
			return fmt.Errorf("control %q: inverse Z list is not the reverse at index %d", c.Name, i)
		}
		if child.parent != c {
			return fmt.Errorf("control %q: child %q has a different parent", c.Name, child.Name)
		}
		if slices.Index(c.childrenZ, child) != i {
			return fmt.Errorf("control %q: child %q appears twice", c.Name, child.Name)
		}
	}
	for i := 1; i < n; i++ {
		if c.childrenZ[i].topMost && !c.childrenZ[i-1].topMost {
			return fmt.Errorf("control %q: topmost child %q behind a regular sibling", c.Name, c.childrenZ[i].Name)
		}
	}
	return nil
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(c *Control) {
	depth := 0
	for p := c; p != nil; p = p.parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		debugLogger().Warn("tree depth exceeds threshold",
			"depth", depth, "threshold", debugMaxTreeDepth, "control", c.Name)
	}
}

// debugCheckChildCount warns if a control has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(c *Control) {
	if len(c.childrenZ) > debugMaxChildCount {
		debugLogger().Warn("child count exceeds threshold",
			"control", c.Name, "children", len(c.childrenZ), "threshold", debugMaxChildCount)
	}
}

// DumpTree logs the subtree rooted at c at debug level, one record per
// control, front to back.
func DumpTree(logger *slog.Logger, c *Control) {
	if logger == nil {
		logger = debugLogger()
	}
	dumpTree(logger, c, 0)
}

func dumpTree(logger *slog.Logger, c *Control, depth int) {
	logger.Debug("control",
		"depth", depth,
		"name", c.Name,
		"id", c.ID,
		"bounds", c.bounds,
		"client", c.clientRect,
		"dock", c.dock,
		"visible", c.visible,
		"needsRedraw", c.needsRedraw,
		"level", c.levelBitmap != nil,
	)
	for _, child := range c.childrenZ {
		dumpTree(logger, child, depth+1)
	}
}
