package deck

import "time"

type PointerKind int

const (
	PointerMove PointerKind = iota
	PointerUp
)

func (k PointerKind) String() string {
	switch k {
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	default:
		return "unknown"
	}
}

// PointerEvent is a document-level pointer notification. Y is the vertical coordinate in the
// same units as the list's item height.
type PointerEvent struct {
	Kind PointerKind
	Y    int
	At   time.Time
}

type PointerHandler func(PointerEvent)

// PointerBus is a single-threaded subscription registry for document-level pointer events.
// It is owned by one event loop; it does no locking.
type PointerBus struct {
	next     int
	handlers map[int]PointerHandler
	order    []int
}

func NewPointerBus() *PointerBus {
	return &PointerBus{handlers: map[int]PointerHandler{}}
}

// Subscription removes its handler from the bus when cancelled. Cancel is idempotent.
type Subscription struct {
	bus *PointerBus
	id  int
}

func (s *Subscription) Cancel() {
	if s == nil || s.bus == nil {
		return
	}
	s.bus.remove(s.id)
	s.bus = nil
}

func (b *PointerBus) Subscribe(h PointerHandler) *Subscription {
	if b.handlers == nil {
		b.handlers = map[int]PointerHandler{}
	}
	b.next++
	id := b.next
	b.handlers[id] = h
	b.order = append(b.order, id)
	return &Subscription{bus: b, id: id}
}

// Dispatch delivers ev to the handlers subscribed at the time of the call, in subscription order.
// Handlers may cancel subscriptions (their own or others) while being dispatched; a cancelled
// handler that has not run yet is skipped.
func (b *PointerBus) Dispatch(ev PointerEvent) {
	ids := append([]int(nil), b.order...)
	for _, id := range ids {
		h, ok := b.handlers[id]
		if !ok {
			continue
		}
		h(ev)
	}
}

// Len reports the number of live subscriptions.
func (b *PointerBus) Len() int {
	return len(b.handlers)
}

func (b *PointerBus) remove(id int) {
	if _, ok := b.handlers[id]; !ok {
		return
	}
	delete(b.handlers, id)
	for i, v := range b.order {
		if v == id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}
