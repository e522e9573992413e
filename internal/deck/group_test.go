package deck

import (
	"testing"

	"pgregory.net/rapid"
)

func newTestGroup(n int) (*SlideGroup, []*Node, *Title) {
	surfaces, nodes := Nodes(n)
	title := &Title{}
	return NewSlideGroup("g", "Group G", surfaces, title), nodes, title
}

func opaqueIndexes(nodes []*Node) []int {
	out := []int{}
	for i, n := range nodes {
		if n.Opacity == Opaque {
			out = append(out, i)
		}
	}
	return out
}

func TestReset_HidesSlidesAndPublishesTitle(t *testing.T) {
	t.Parallel()

	g, nodes, title := newTestGroup(3)
	g.Advance(Forward())
	g.Advance(Forward())
	g.Reset()
	if g.Cursor() != -1 {
		t.Fatalf("cursor after reset: %d", g.Cursor())
	}
	if got := opaqueIndexes(nodes); len(got) != 0 {
		t.Fatalf("expected all slides hidden; got %v", got)
	}
	if title.Value != "Group G" {
		t.Fatalf("title: %q", title.Value)
	}
	g.Reset()
	if g.Cursor() != -1 {
		t.Fatalf("reset is not idempotent")
	}
}

func TestAdvance_LengthTimesThenExhausted(t *testing.T) {
	t.Parallel()

	g, nodes, _ := newTestGroup(4)
	g.Reset()
	for i := 0; i < 4; i++ {
		if !g.Advance(Forward()) {
			t.Fatalf("advance %d returned false", i)
		}
		if got := opaqueIndexes(nodes); len(got) != 1 || got[0] != i {
			t.Fatalf("after advance %d expected only slide %d visible; got %v", i, i, got)
		}
	}
	if g.Cursor() != 3 {
		t.Fatalf("cursor: %d", g.Cursor())
	}
	if g.Advance(Forward()) {
		t.Fatalf("expected exhausted")
	}
	if g.Cursor() != 3 {
		t.Fatalf("exhausted advance moved cursor to %d", g.Cursor())
	}
	if got := opaqueIndexes(nodes); len(got) != 1 || got[0] != 3 {
		t.Fatalf("last slide should stay visible; got %v", got)
	}
}

func TestAdvance_Backward(t *testing.T) {
	t.Parallel()

	g, nodes, _ := newTestGroup(2)
	g.Reset()
	g.Advance(Forward())
	if !g.Advance(By(-1)) {
		t.Fatalf("expected backward move from 0 to succeed")
	}
	if g.Cursor() != -1 {
		t.Fatalf("cursor: %d", g.Cursor())
	}
	if got := opaqueIndexes(nodes); len(got) != 0 {
		t.Fatalf("expected nothing visible at -1; got %v", got)
	}
	if g.Advance(By(-1)) {
		t.Fatalf("expected backward exhaustion at -1")
	}
	if g.Cursor() != -1 {
		t.Fatalf("cursor moved below -1: %d", g.Cursor())
	}
}

func TestAdvance_ExplicitZeroIsNoOp(t *testing.T) {
	t.Parallel()

	g, nodes, _ := newTestGroup(2)
	g.Reset()
	g.Advance(Forward())
	writes := nodes[0].Writes
	if !g.Advance(By(0)) {
		t.Fatalf("explicit zero must succeed")
	}
	if g.Cursor() != 0 || nodes[0].Writes != writes {
		t.Fatalf("explicit zero changed state: cursor=%d writes=%d->%d", g.Cursor(), writes, nodes[0].Writes)
	}
}

func TestAdvance_LargeDeltas(t *testing.T) {
	t.Parallel()

	g, nodes, _ := newTestGroup(5)
	g.Reset()
	if !g.Advance(By(3)) || g.Cursor() != 2 {
		t.Fatalf("by 3: cursor %d", g.Cursor())
	}
	if g.Advance(By(10)) || g.Cursor() != 2 {
		t.Fatalf("overshoot must not move; cursor %d", g.Cursor())
	}
	if !g.Advance(By(-10)) || g.Cursor() != -1 {
		t.Fatalf("large backward step must clamp to -1; cursor %d", g.Cursor())
	}
	if got := opaqueIndexes(nodes); len(got) != 0 {
		t.Fatalf("expected nothing visible after clamping to -1; got %v", got)
	}
	if g.Advance(By(-10)) || g.Cursor() != -1 {
		t.Fatalf("backward step from -1 must report exhausted; cursor %d", g.Cursor())
	}
}

func TestAdvance_EmptyGroup(t *testing.T) {
	t.Parallel()

	g, _, _ := newTestGroup(0)
	g.Reset()
	if g.Advance(Forward()) {
		t.Fatalf("empty group must be exhausted immediately")
	}
	if _, ok := g.Visible(); ok {
		t.Fatalf("empty group has nothing visible")
	}
}

func TestAdvance_AtMostOneOpaque_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 8).Draw(rt, "n")
		g, nodes, _ := newTestGroup(n)
		g.Reset()
		steps := rapid.SliceOf(rapid.IntRange(-3, 3)).Draw(rt, "steps")
		for _, s := range steps {
			before := g.Cursor()
			moved := g.Advance(By(s))
			c := g.Cursor()
			if c < -1 || c > n-1 && c != -1 {
				rt.Fatalf("cursor %d out of range for %d slides", c, n)
			}
			if !moved && c != before {
				rt.Fatalf("failed advance moved cursor %d -> %d", before, c)
			}
			vis := opaqueIndexes(nodes)
			if len(vis) > 1 {
				rt.Fatalf("more than one opaque slide: %v", vis)
			}
			if i, ok := g.Visible(); ok && (len(vis) != 1 || vis[0] != i) {
				rt.Fatalf("visible slide %d does not match opacity %v", i, vis)
			}
		}
	})
}
