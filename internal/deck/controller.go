package deck

type State int

const (
	NoGroup State = iota
	GroupActive
)

func (s State) String() string {
	switch s {
	case NoGroup:
		return "no-group"
	case GroupActive:
		return "group-active"
	default:
		return "unknown"
	}
}

// Controller tracks the active group of a presentation and dispatches navigation to it.
// The group cursor only moves forward; once it runs past the selection the presentation is over.
type Controller struct {
	groups   map[string]*SlideGroup
	surfaces map[string]Surface

	order  []string
	index  int
	active *SlideGroup

	// OnPromote, when set, is called after the controller leaves a group with the id of the
	// group it left and the id it activated ("" when the presentation ended).
	OnPromote func(from, to string)
}

// NewController indexes groups by id. surfaces maps a group id to the surface that is shown and
// hidden as the group becomes active; a group without a surface is still navigable.
func NewController(groups []*SlideGroup, surfaces map[string]Surface) *Controller {
	c := &Controller{
		groups:   make(map[string]*SlideGroup, len(groups)),
		surfaces: map[string]Surface{},
	}
	for _, g := range groups {
		if g == nil {
			continue
		}
		c.groups[g.ID()] = g
	}
	for id, s := range surfaces {
		if s != nil {
			c.surfaces[id] = s
		}
	}
	return c
}

// Known reports whether id names one of the controller's groups.
func (c *Controller) Known(id string) bool {
	_, ok := c.groups[id]
	return ok
}

// Start activates the first group of order. Unknown ids are dropped; an empty order leaves the
// controller in NoGroup for the rest of the session.
func (c *Controller) Start(order []string) {
	c.hide()
	c.order = c.order[:0]
	for _, id := range order {
		if c.Known(id) {
			c.order = append(c.order, id)
		}
	}
	c.index = 0
	c.active = nil
	if len(c.order) == 0 {
		return
	}
	c.activate(c.order[0])
}

// Step forwards d to the active group. An implicit step that exhausts the group promotes to the
// next group in the selection; explicit steps never leave the group.
func (c *Controller) Step(d Delta) {
	if c.active == nil {
		return
	}
	if c.active.Advance(d) || d.Explicit() {
		return
	}
	from := c.active.ID()
	c.hide()
	c.active = nil
	c.index++
	to := ""
	if c.index < len(c.order) {
		to = c.order[c.index]
		c.activate(to)
	}
	if c.OnPromote != nil {
		c.OnPromote(from, to)
	}
}

func (c *Controller) State() State {
	if c.active == nil {
		return NoGroup
	}
	return GroupActive
}

// Active returns the active group, or nil in NoGroup.
func (c *Controller) Active() *SlideGroup { return c.active }

// Order returns the effective selection, unknown ids removed.
func (c *Controller) Order() []string {
	return append([]string(nil), c.order...)
}

// GroupIndex is the group cursor: the index into Order of the active group. It equals
// len(Order()) once the presentation has ended.
func (c *Controller) GroupIndex() int { return c.index }

func (c *Controller) activate(id string) {
	g := c.groups[id]
	c.active = g
	g.Reset()
	if s := c.surfaces[id]; s != nil {
		s.SetOpacity(Opaque)
		s.SetDisplay(true)
	}
}

func (c *Controller) hide() {
	if c.active == nil {
		return
	}
	if s := c.surfaces[c.active.ID()]; s != nil {
		s.SetOpacity(Transparent)
		s.SetDisplay(false)
	}
}
