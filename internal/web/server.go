package web

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"vigil/internal/deck"
	"vigil/internal/model"

	"github.com/starfederation/datastar-go/datastar"
)

//go:embed templates/*.html
var assetsFS embed.FS

const stageSelector = "#stage"

type ServerConfig struct {
	Addr string
	Deck *model.Deck
	// SessionTTL is how long an idle presentation is kept. Zero means DefaultSessionTTL.
	SessionTTL time.Duration
	// Now is the clock used for session expiry; nil means time.Now.
	Now func() time.Time
}

type Server struct {
	mu   sync.RWMutex
	cfg  ServerConfig
	deck *model.Deck
	tmpl *template.Template

	sessions *sessionStore
}

func NewServer(cfg ServerConfig) (*Server, error) {
	cfg.Addr = strings.TrimSpace(cfg.Addr)
	if cfg.Addr == "" {
		return nil, errors.New("web: addr is empty")
	}
	if cfg.Deck == nil {
		return nil, errors.New("web: deck is nil")
	}
	tmpl, err := template.New("base").Funcs(template.FuncMap{
		"trim": strings.TrimSpace,
	}).ParseFS(assetsFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Server{
		cfg:      cfg,
		deck:     cfg.Deck,
		tmpl:     tmpl,
		sessions: newSessionStore(cfg.SessionTTL, cfg.Now),
	}, nil
}

func (s *Server) Addr() string { return s.cfg.Addr }

// SetDeck swaps the deck used for new presentations. Running sessions keep the deck they
// started with.
func (s *Server) SetDeck(d *model.Deck) {
	if d == nil {
		return
	}
	s.mu.Lock()
	s.deck = d
	s.mu.Unlock()
}

func (s *Server) currentDeck() *model.Deck {
	s.mu.RLock()
	d := s.deck
	s.mu.RUnlock()
	return d
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("POST /s/{sessionId}/step", s.handleStep)
	mux.HandleFunc("POST /s/{sessionId}/key", s.handleKey)
	mux.HandleFunc("GET /s/{sessionId}/events", s.handleEvents)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

type groupVM struct {
	ID     string
	Title  string
	Slides int
}

type indexVM struct {
	Title  string
	Groups []groupVM
}

type lineVM struct {
	HTML    template.HTML
	Visible bool
}

type stageVM struct {
	SessionID string
	Active    bool
	Title     string
	Position  int
	Total     int
	Lines     []lineVM
}

type presentVM struct {
	Title     string
	SessionID string
	Share     string
	Stage     stageVM
}

// handleHome presents ?p=<selection>. Without p it lists the deck's groups; the form submits
// checked ids as repeated g values, which are folded into a p link.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	d := s.currentDeck()
	if !q.Has(deck.SelectionKey) {
		if ids := q["g"]; len(ids) > 0 {
			sel := deck.JoinSelection(deck.ParseSelection(strings.Join(ids, "-"), d.Known))
			http.Redirect(w, r, "/?"+url.Values{deck.SelectionKey: {sel}}.Encode(), http.StatusSeeOther)
			return
		}
		vm := indexVM{Title: deckTitle(d)}
		for _, g := range d.Groups {
			vm.Groups = append(vm.Groups, groupVM{ID: g.ID, Title: g.Title, Slides: len(g.Slides)})
		}
		s.writeHTMLTemplate(w, "index", vm)
		return
	}

	sess := s.sessions.create(d, q.Get(deck.SelectionKey))
	vm := presentVM{
		Title:     deckTitle(d),
		SessionID: sess.id,
		Share:     "/?" + url.Values{deck.SelectionKey: {sess.selection}}.Encode(),
		Stage:     s.stageVM(sess),
	}
	s.writeHTMLTemplate(w, "present", vm)
}

func (s *Server) sessionFor(w http.ResponseWriter, r *http.Request) (*session, bool) {
	id := strings.TrimSpace(r.PathValue("sessionId"))
	if id == "" {
		http.Error(w, "missing session id", http.StatusBadRequest)
		return nil, false
	}
	sess, ok := s.sessions.get(id)
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return nil, false
	}
	return sess, true
}

// handleStep is the implicit forward step (click on the stage).
func (s *Server) handleStep(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFor(w, r)
	if !ok {
		return
	}
	sess.step(deck.Forward())
	s.patchStage(w, r, sess)
}

// handleKey maps browser key names to steps. Unknown keys are accepted and ignored.
func (s *Server) handleKey(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFor(w, r)
	if !ok {
		return
	}
	d, ok := deltaForKey(r.URL.Query().Get("k"))
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	sess.step(d)
	s.patchStage(w, r, sess)
}

func deltaForKey(k string) (deck.Delta, bool) {
	switch k {
	case " ", "Space", "Spacebar", "Enter":
		return deck.Forward(), true
	case "ArrowLeft":
		return deck.By(-1), true
	case "ArrowRight":
		return deck.By(1), true
	default:
		return deck.Delta{}, false
	}
}

// patchStage answers a datastar action with the updated stage.
func (s *Server) patchStage(w http.ResponseWriter, r *http.Request, sess *session) {
	html, err := s.renderTemplate("stage", s.stageVM(sess))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	sse := datastar.NewSSE(w, r)
	_ = sse.PatchElements(html, datastar.WithSelector(stageSelector), datastar.WithMode(datastar.ElementPatchModeOuter))
}

// handleEvents streams stage patches for one session until the client goes away.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFor(w, r)
	if !ok {
		return
	}
	sse := datastar.NewSSE(w, r)

	ch, cancel := sess.hub.subscribe()
	defer cancel()

	render := func() {
		html, err := s.renderTemplate("stage", s.stageVM(sess))
		if err != nil {
			_ = sse.ExecuteScript(fmt.Sprintf(`console.error(%q)`, err.Error()))
			return
		}
		_ = sse.PatchElements(html, datastar.WithSelector(stageSelector), datastar.WithMode(datastar.ElementPatchModeOuter))
	}
	render()

	keepAlive := time.NewTicker(25 * time.Second)
	defer keepAlive.Stop()

	for {
		select {
		case <-sse.Context().Done():
			return
		case <-keepAlive.C:
			s.sessions.touch(sess)
			_ = sse.PatchSignals([]byte(`{}`))
		case <-ch:
			render()
		}
	}
}

func (s *Server) stageVM(sess *session) stageVM {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	vm := stageVM{SessionID: sess.id}
	g, slide, ok := sess.stage.Showing()
	if !ok {
		return vm
	}
	vm.Active = true
	vm.Title = sess.stage.Title.Value
	vm.Position, vm.Total = sess.stage.Position()
	vm.Lines = make([]lineVM, len(g.Slides))
	for i, sl := range g.Slides {
		vm.Lines[i] = lineVM{HTML: renderSlideHTML(sl.Text), Visible: i == slide}
	}
	return vm
}

func (s *Server) renderTemplate(name string, data any) (string, error) {
	var b strings.Builder
	if err := s.tmpl.ExecuteTemplate(&b, name, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (s *Server) writeHTMLTemplate(w http.ResponseWriter, name string, data any) {
	html, err := s.renderTemplate(name, data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, html)
}

func deckTitle(d *model.Deck) string {
	if d != nil && strings.TrimSpace(d.Title) != "" {
		return d.Title
	}
	return "vigil"
}
