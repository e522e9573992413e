package deck

import "vigil/internal/model"

// Stage wires a deck's groups to in-memory surfaces and a Controller. Renderers read the nodes
// back to decide what to draw.
type Stage struct {
	Controller *Controller
	Title      Title

	deck   *model.Deck
	groups map[string]*Node
	slides map[string][]*Node
}

func NewStage(d *model.Deck) *Stage {
	st := &Stage{
		deck:   d,
		groups: map[string]*Node{},
		slides: map[string][]*Node{},
	}
	var groups []*SlideGroup
	surfaces := map[string]Surface{}
	if d != nil {
		for _, g := range d.Groups {
			if _, dup := st.groups[g.ID]; dup {
				continue
			}
			slideSurfaces, nodes := Nodes(len(g.Slides))
			groupNode := &Node{}
			st.groups[g.ID] = groupNode
			st.slides[g.ID] = nodes
			surfaces[g.ID] = groupNode
			groups = append(groups, NewSlideGroup(g.ID, g.Title, slideSurfaces, &st.Title))
		}
	}
	st.Controller = NewController(groups, surfaces)
	return st
}

// Showing returns the displayed group and the index of its opaque slide. slide is -1 when the
// group is shown but none of its slides is visible yet.
func (st *Stage) Showing() (g *model.Group, slide int, ok bool) {
	for id, node := range st.groups {
		if !node.Shown {
			continue
		}
		grp, found := st.deck.FindGroup(id)
		if !found {
			continue
		}
		slide = -1
		for i, n := range st.slides[id] {
			if n.Opacity == Opaque {
				slide = i
				break
			}
		}
		return grp, slide, true
	}
	return nil, -1, false
}

// Position returns the 1-based index of the active group in the selection and its length.
func (st *Stage) Position() (int, int) {
	return st.Controller.GroupIndex() + 1, len(st.Controller.Order())
}
