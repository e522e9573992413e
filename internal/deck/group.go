package deck

// Delta is a navigation step. The implicit forward step (click, Space, Enter) is distinct from
// an explicit numeric direction (arrow keys) even when both move by +1: only the implicit kind
// promotes across group boundaries.
type Delta struct {
	n        int
	explicit bool
}

// Forward is the implicit +1 step.
func Forward() Delta { return Delta{n: 1} }

// By is an explicit step of n slides. By(0) is a successful no-op.
func By(n int) Delta { return Delta{n: n, explicit: true} }

func (d Delta) N() int { return d.n }

func (d Delta) Explicit() bool { return d.explicit }

// cursorReset is the position before the first slide.
const cursorReset = -1

// SlideGroup owns one group's linear slide cursor and the opacity of its slides.
type SlideGroup struct {
	id     string
	title  string
	slides []Surface
	titles TitleSetter

	cursor int
}

func NewSlideGroup(id, title string, slides []Surface, titles TitleSetter) *SlideGroup {
	g := &SlideGroup{
		id:     id,
		title:  title,
		slides: append([]Surface(nil), slides...),
		titles: titles,
		cursor: cursorReset,
	}
	return g
}

func (g *SlideGroup) ID() string { return g.id }

func (g *SlideGroup) Title() string { return g.title }

func (g *SlideGroup) Len() int { return len(g.slides) }

func (g *SlideGroup) Cursor() int { return g.cursor }

// Visible returns the index of the slide currently shown, if any.
func (g *SlideGroup) Visible() (int, bool) {
	if g.cursor >= 0 && g.cursor < len(g.slides) {
		return g.cursor, true
	}
	return 0, false
}

// Reset hides every slide, moves the cursor before the first slide and publishes the title.
func (g *SlideGroup) Reset() {
	for _, s := range g.slides {
		s.SetOpacity(Transparent)
	}
	g.cursor = cursorReset
	if g.titles != nil {
		g.titles.SetTitle(g.title)
	}
}

// Advance moves the cursor by d. It returns false, leaving the cursor unchanged, when the move
// would run past the last slide (forward exhausted) or when stepping back from the reset
// position (backward exhausted). Larger backward steps stop at the reset position.
func (g *SlideGroup) Advance(d Delta) bool {
	if d.n == 0 {
		return true
	}
	if g.cursor == cursorReset && d.n < 0 {
		return false
	}
	n := len(g.slides)
	next := clamp(g.cursor+d.n, cursorReset, n+1)
	if next >= n {
		return false
	}
	g.opacity(g.cursor, Transparent)
	g.cursor = next
	g.opacity(g.cursor, Opaque)
	return true
}

func (g *SlideGroup) opacity(i int, o Opacity) {
	if i < 0 || i >= len(g.slides) {
		return
	}
	g.slides[i].SetOpacity(o)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
