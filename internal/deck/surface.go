// Package deck holds the interactive core of vigil: the drag-reorder selection list used on the
// setup screen, the per-group slide cursor and the presentation controller that promotes
// between groups.
//
// Rendering is not part of this package. The core only writes a small property set (opacity,
// display, offset, title) to surfaces supplied by the caller; the terminal and browser renderers
// read those properties back.
package deck

// Opacity is the visibility of a slide. Only 0 and 1 are used.
type Opacity int

const (
	Transparent Opacity = 0
	Opaque      Opacity = 1
)

// Offset is a 2-D translation in renderer units (terminal rows/cols, or pixels).
type Offset struct {
	X int
	Y int
}

// Surface is the property set the core mutates on list items, slides and groups.
type Surface interface {
	SetOpacity(Opacity)
	SetDisplay(shown bool)
	SetOffset(Offset)
}

// TitleSetter receives the display title when a group is reset.
type TitleSetter interface {
	SetTitle(title string)
}

// Node is an in-memory Surface. Renderers read its fields back after the core has run.
type Node struct {
	Opacity Opacity
	Shown   bool
	Offset  Offset

	// Writes counts property writes; tests use it to check that no-ops stay no-ops.
	Writes int
}

func (n *Node) SetOpacity(o Opacity) {
	n.Opacity = o
	n.Writes++
}

func (n *Node) SetDisplay(shown bool) {
	n.Shown = shown
	n.Writes++
}

func (n *Node) SetOffset(o Offset) {
	n.Offset = o
	n.Writes++
}

// Title is an in-memory TitleSetter.
type Title struct {
	Value string
}

func (t *Title) SetTitle(title string) { t.Value = title }

// TitleFunc adapts a function to TitleSetter.
type TitleFunc func(string)

func (f TitleFunc) SetTitle(title string) {
	if f != nil {
		f(title)
	}
}

// Nodes returns n fresh nodes as Surfaces together with the concrete nodes.
func Nodes(n int) ([]Surface, []*Node) {
	if n < 0 {
		n = 0
	}
	surfaces := make([]Surface, n)
	nodes := make([]*Node, n)
	for i := range nodes {
		nodes[i] = &Node{}
		surfaces[i] = nodes[i]
	}
	return surfaces, nodes
}
