package deck

import (
	"fmt"
	"strings"
	"time"
)

// DefaultClickThreshold is the press duration under which a release without movement counts as
// a click (toggle) rather than a reorder.
const DefaultClickThreshold = 300 * time.Millisecond

// ListEntry seeds one item of a DragReorderList. Entries are given in initial slot order.
type ListEntry struct {
	ID       string
	Label    string
	Selected bool
	// Surface is optional; when set it receives offset writes as the item moves.
	Surface Surface
}

// Item is one selectable row of the setup list.
type Item struct {
	ID       string
	Label    string
	Selected bool
	// Slot is the item's position. Slots of all items form a permutation of 0..n-1.
	Slot int
	// Offset is the visual translation used while rendering. It is not authoritative for order.
	Offset Offset

	surface Surface
}

func (it *Item) setOffset(o Offset) {
	it.Offset = o
	if it.surface != nil {
		it.surface.SetOffset(o)
	}
}

type dragSession struct {
	item      *Item
	originY   int
	pressedAt time.Time
	swaps     int

	move *Subscription
	up   *Subscription
}

// DragReorderList orders a fixed set of items by vertical drag and toggles selection on short
// clicks. All items share one fixed height.
type DragReorderList struct {
	bus            *PointerBus
	itemHeight     int
	clickThreshold time.Duration

	items []*Item // index == Slot
	byID  map[string]*Item

	drag *dragSession

	// OnSwap, when set, is called after every swap with the dragged id and its new slot.
	OnSwap func(id string, slot int)
	// OnRelease, when set, is called after a drag ends with whether the release toggled selection.
	OnRelease func(id string, toggled bool)
}

// NewDragReorderList builds the list. bus may be nil, in which case callers drive PointerMove
// and EndDrag directly.
func NewDragReorderList(bus *PointerBus, itemHeight int, entries []ListEntry) (*DragReorderList, error) {
	if itemHeight <= 0 {
		itemHeight = 1
	}
	l := &DragReorderList{
		bus:            bus,
		itemHeight:     itemHeight,
		clickThreshold: DefaultClickThreshold,
		items:          make([]*Item, 0, len(entries)),
		byID:           make(map[string]*Item, len(entries)),
	}
	for i, e := range entries {
		id := strings.TrimSpace(e.ID)
		if id == "" {
			return nil, fmt.Errorf("list entry %d: empty id", i)
		}
		if _, dup := l.byID[id]; dup {
			return nil, fmt.Errorf("list entry %d: duplicate id %q", i, id)
		}
		it := &Item{
			ID:       id,
			Label:    e.Label,
			Selected: e.Selected,
			Slot:     i,
			surface:  e.Surface,
		}
		it.setOffset(Offset{Y: i * itemHeight})
		l.items = append(l.items, it)
		l.byID[id] = it
	}
	return l, nil
}

// SetClickThreshold overrides DefaultClickThreshold. Non-positive values are ignored.
func (l *DragReorderList) SetClickThreshold(d time.Duration) {
	if d > 0 {
		l.clickThreshold = d
	}
}

func (l *DragReorderList) ClickThreshold() time.Duration { return l.clickThreshold }

func (l *DragReorderList) ItemHeight() int { return l.itemHeight }

func (l *DragReorderList) Len() int { return len(l.items) }

// Items returns a snapshot of the items in slot order.
func (l *DragReorderList) Items() []Item {
	out := make([]Item, len(l.items))
	for i, it := range l.items {
		out[i] = *it
	}
	return out
}

// Item returns a snapshot of one item.
func (l *DragReorderList) Item(id string) (Item, bool) {
	it, ok := l.byID[id]
	if !ok {
		return Item{}, false
	}
	return *it, true
}

// Dragging reports the id of the item being dragged, if any.
func (l *DragReorderList) Dragging() (string, bool) {
	if l.drag == nil {
		return "", false
	}
	return l.drag.item.ID, true
}

// BeginDrag starts a drag session on id at the pointer's vertical position.
func (l *DragReorderList) BeginDrag(id string, startY int, at time.Time) error {
	it, ok := l.byID[id]
	if !ok {
		return errInvalidItem("begin drag", id)
	}
	if l.drag != nil {
		return errInvalidState("begin drag", "drag already active on "+l.drag.item.ID)
	}
	d := &dragSession{item: it, originY: startY, pressedAt: at}
	l.drag = d
	if l.bus != nil {
		d.move = l.bus.Subscribe(func(ev PointerEvent) {
			if ev.Kind == PointerMove {
				_ = l.PointerMove(ev.Y)
			}
		})
		d.up = l.bus.Subscribe(func(ev PointerEvent) {
			if ev.Kind == PointerUp {
				_ = l.EndDrag(ev.At)
			}
		})
	}
	return nil
}

// PointerMove applies as many neighbour swaps as the accumulated motion allows. Each swap
// consumes one item height of motion and advances the origin by the same amount.
func (l *DragReorderList) PointerMove(currentY int) error {
	d := l.drag
	if d == nil {
		return errInvalidState("pointer move", "no active drag")
	}
	last := len(l.items) - 1
	for {
		delta := (currentY - d.originY) / l.itemHeight
		if delta == 0 {
			return nil
		}
		slot := d.item.Slot
		if delta < 0 {
			if slot <= 0 {
				return nil
			}
			l.swap(slot-1, slot)
			d.originY -= l.itemHeight
		} else {
			if slot >= last {
				return nil
			}
			l.swap(slot, slot+1)
			d.originY += l.itemHeight
		}
		d.swaps++
		if l.OnSwap != nil {
			l.OnSwap(d.item.ID, d.item.Slot)
		}
	}
}

// EndDrag finishes the session. A release before the click threshold with no swaps toggles the
// item's selection; anything else is a pure reorder. Subscriptions are always released.
func (l *DragReorderList) EndDrag(at time.Time) error {
	d := l.drag
	if d == nil {
		return errInvalidState("end drag", "no active drag")
	}
	l.release()

	toggled := false
	if at.Sub(d.pressedAt) < l.clickThreshold && d.swaps == 0 {
		d.item.Selected = !d.item.Selected
		toggled = true
	}
	if l.OnRelease != nil {
		l.OnRelease(d.item.ID, toggled)
	}
	return nil
}

// AbortDrag ends an active session without toggling selection. Swaps already applied stay.
func (l *DragReorderList) AbortDrag() {
	if l.drag == nil {
		return
	}
	l.release()
}

func (l *DragReorderList) release() {
	d := l.drag
	l.drag = nil
	d.move.Cancel()
	d.up.Cancel()
}

// Toggle flips the selection of id.
func (l *DragReorderList) Toggle(id string) error {
	it, ok := l.byID[id]
	if !ok {
		return errInvalidItem("toggle", id)
	}
	if l.drag != nil {
		return errInvalidState("toggle", "drag in progress")
	}
	it.Selected = !it.Selected
	return nil
}

// Move shifts id by steps slots (negative is up), stopping at either end. It returns the number
// of slots actually moved.
func (l *DragReorderList) Move(id string, steps int) (int, error) {
	it, ok := l.byID[id]
	if !ok {
		return 0, errInvalidItem("move", id)
	}
	if l.drag != nil {
		return 0, errInvalidState("move", "drag in progress")
	}
	moved := 0
	for steps < 0 && it.Slot > 0 {
		l.swap(it.Slot-1, it.Slot)
		steps++
		moved--
	}
	for steps > 0 && it.Slot < len(l.items)-1 {
		l.swap(it.Slot, it.Slot+1)
		steps--
		moved++
	}
	return moved, nil
}

// Commit returns the selected ids in slot order.
func (l *DragReorderList) Commit() []string {
	out := []string{}
	for _, it := range l.items {
		if it.Selected {
			out = append(out, it.ID)
		}
	}
	return out
}

// swap exchanges the items in adjacent slots i and j, their offsets and their slot indexes.
func (l *DragReorderList) swap(i, j int) {
	a, b := l.items[i], l.items[j]
	ao, bo := a.Offset, b.Offset
	a.setOffset(bo)
	b.setOffset(ao)
	l.items[i], l.items[j] = b, a
	a.Slot, b.Slot = j, i
}
