package web

import (
	"sync"
	"time"

	"vigil/internal/debuglog"
	"vigil/internal/deck"
	"vigil/internal/model"

	"github.com/google/uuid"
)

const DefaultSessionTTL = 2 * time.Hour

// session is one browser tab's presentation. The deck core is single-threaded, so every access
// to stage goes through mu.
type session struct {
	id        string
	selection string
	deck      *model.Deck
	hub       *hub

	mu       sync.Mutex
	stage    *deck.Stage
	lastSeen time.Time
}

// step applies d and wakes the session's event streams.
func (s *session) step(d deck.Delta) {
	s.mu.Lock()
	s.stage.Controller.Step(d)
	s.mu.Unlock()
	s.hub.broadcast()
}

type sessionStore struct {
	mu   sync.Mutex
	byID map[string]*session
	ttl  time.Duration
	now  func() time.Time
}

func newSessionStore(ttl time.Duration, now func() time.Time) *sessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if now == nil {
		now = time.Now
	}
	return &sessionStore{byID: map[string]*session{}, ttl: ttl, now: now}
}

// create starts a presentation of selection over d.
func (st *sessionStore) create(d *model.Deck, selection string) *session {
	stage := deck.NewStage(d)
	order := deck.ParseSelection(selection, d.Known)
	s := &session{
		id:        uuid.NewString(),
		selection: deck.JoinSelection(order),
		deck:      d,
		hub:       newHub(),
		stage:     stage,
	}
	stage.Controller.OnPromote = func(from, to string) {
		debuglog.Logf("web: session %s promote %s -> %q", s.id, from, to)
	}
	stage.Controller.Start(order)

	st.mu.Lock()
	defer st.mu.Unlock()
	now := st.now()
	st.sweepLocked(now)
	s.lastSeen = now
	st.byID[s.id] = s
	debuglog.Logf("web: session %s created selection=%q", s.id, s.selection)
	return s
}

// get returns a live session and marks it as seen.
func (st *sessionStore) get(id string) (*session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	now := st.now()
	st.sweepLocked(now)
	s, ok := st.byID[id]
	if !ok {
		return nil, false
	}
	s.lastSeen = now
	return s, true
}

// touch keeps a session alive while an event stream is attached to it.
func (st *sessionStore) touch(s *session) {
	st.mu.Lock()
	s.lastSeen = st.now()
	st.mu.Unlock()
}

func (st *sessionStore) len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.byID)
}

func (st *sessionStore) sweepLocked(now time.Time) {
	for id, s := range st.byID {
		if now.Sub(s.lastSeen) > st.ttl {
			delete(st.byID, id)
			debuglog.Logf("web: session %s expired", id)
		}
	}
}
