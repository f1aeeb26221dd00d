package trellis

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(cs []*Control) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Name
	}
	return out
}

func requireReversed(t *testing.T, c *Control) {
	t.Helper()
	want := slices.Clone(c.childrenZ)
	slices.Reverse(want)
	require.Equal(t, names(want), names(c.childrenInverseZ))
	require.NoError(t, verifyZOrder(c))
}

func TestAddInsertsAtFront(t *testing.T) {
	p := NewPanel("p")
	a, b, c := NewPanel("a"), NewPanel("b"), NewPanel("c")
	p.Add(a)
	p.Add(b)
	p.Add(c)

	assert.Equal(t, []string{"c", "b", "a"}, names(p.Children()))
	assert.Equal(t, []string{"a", "b", "c"}, names(p.ChildrenBackToFront()))
	assert.Equal(t, 0, c.ZIndex())
	assert.Equal(t, 2, a.ZIndex())
	requireReversed(t, p)
}

func TestAddAtBack(t *testing.T) {
	p := NewPanel("p")
	a, b := NewPanel("a"), NewPanel("b")
	p.Add(a)
	p.AddAtBack(b)
	assert.Equal(t, []string{"a", "b"}, names(p.Children()))
	requireReversed(t, p)
}

func TestTopMostStaysInFront(t *testing.T) {
	p := NewPanel("p")
	tip := NewPanel("tip")
	tip.SetTopMost(true)
	p.Add(tip)

	a, b := NewPanel("a"), NewPanel("b")
	p.Add(a)
	p.AddAtBack(b)
	assert.Equal(t, []string{"tip", "a", "b"}, names(p.Children()))

	// A regular sibling cannot pass a topmost one.
	assert.False(t, p.BringToFront(b))
	assert.Equal(t, []string{"tip", "b", "a"}, names(p.Children()))

	// A topmost sibling sent back stays in the front group.
	tip2 := NewPanel("tip2")
	tip2.SetTopMost(true)
	p.Add(tip2)
	assert.Equal(t, []string{"tip2", "tip", "b", "a"}, names(p.Children()))
	assert.False(t, p.SendToBack(tip2))
	assert.Equal(t, []string{"tip", "tip2", "b", "a"}, names(p.Children()))
	requireReversed(t, p)
}

func TestSetTopMostRepositions(t *testing.T) {
	p := NewPanel("p")
	a, b, c := NewPanel("a"), NewPanel("b"), NewPanel("c")
	p.Add(a)
	p.Add(b)
	p.Add(c)

	a.SetTopMost(true)
	assert.Equal(t, []string{"a", "c", "b"}, names(p.Children()))
	a.SetTopMost(false)
	assert.Equal(t, []string{"a", "c", "b"}, names(p.Children()))
	requireReversed(t, p)
}

func TestBringToFrontIdempotent(t *testing.T) {
	p := NewPanel("p")
	a, b, c := NewPanel("a"), NewPanel("b"), NewPanel("c")
	p.Add(a)
	p.Add(b)
	p.Add(c)

	assert.False(t, p.BringToFront(a))
	before := slices.Clone(p.childrenZ)
	beforeInv := slices.Clone(p.childrenInverseZ)

	assert.True(t, p.BringToFront(a))
	assert.Equal(t, before, p.childrenZ)
	assert.Equal(t, beforeInv, p.childrenInverseZ)
	requireReversed(t, p)
}

func TestSendToBack(t *testing.T) {
	p := NewPanel("p")
	a, b := NewPanel("a"), NewPanel("b")
	p.Add(a)
	p.Add(b)

	assert.False(t, p.SendToBack(b))
	assert.Equal(t, []string{"a", "b"}, names(p.Children()))
	assert.True(t, p.SendToBack(b))
	requireReversed(t, p)
}

func TestBringToFrontWrongParentPanics(t *testing.T) {
	p := NewPanel("p")
	q := NewPanel("q")
	orphan := NewPanel("orphan")
	q.Add(orphan)
	assert.Panics(t, func() { p.BringToFront(orphan) })
	assert.Panics(t, func() { p.SendToBack(orphan) })
}

func TestZOrderReverseAfterMutations(t *testing.T) {
	p := NewPanel("p")
	var kids []*Control
	for i := 0; i < 8; i++ {
		c := NewPanel(string(rune('a' + i)))
		kids = append(kids, c)
		if i%3 == 0 {
			c.SetTopMost(true)
		}
		if i%2 == 0 {
			p.Add(c)
		} else {
			p.AddAtBack(c)
		}
		requireReversed(t, p)
	}
	for i, c := range kids {
		switch i % 3 {
		case 0:
			p.BringToFront(c)
		case 1:
			p.SendToBack(c)
		case 2:
			p.Remove(c)
		}
		requireReversed(t, p)
	}
}

func TestBringSelfToFront(t *testing.T) {
	p := NewPanel("p")
	a, b := NewPanel("a"), NewPanel("b")
	p.Add(a)
	p.Add(b)
	assert.False(t, a.BringSelfToFront())
	assert.Equal(t, 0, a.ZIndex())

	assert.True(t, NewPanel("lonely").BringSelfToFront())
	assert.Equal(t, -1, NewPanel("lonely").ZIndex())
}

// sizeCounter counts size phases run on its control.
type sizeCounter struct {
	BaseBehavior
	n *int
}

func (s sizeCounter) SizeSelf(*Control, Size) { *s.n++ }

func TestBringToFrontRelayoutsOnlyDockedParents(t *testing.T) {
	p := newLayoutParent(200, 100)
	sized := 0
	a := NewControl("a", sizeCounter{n: &sized})
	a.SetBounds(0, 0, 20, 20)
	b := NewPanel("b")
	b.SetBounds(0, 0, 20, 20)
	p.Add(a)
	p.Add(b)

	sized = 0
	assert.False(t, p.BringToFront(a))
	assert.Zero(t, sized, "undocked siblings keep their bounds")

	b.SetDock(DockTop)
	sized = 0
	assert.False(t, p.BringToFront(b))
	assert.Equal(t, 1, sized, "docking order follows the Z order")
	assert.Equal(t, Rect{0, 0, 200, 20}, b.Bounds())
}
