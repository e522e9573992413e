package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"vigil/internal/debuglog"
	"vigil/internal/deck"
	"vigil/internal/model"
	"vigil/internal/store"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// setupListTop is the first terminal row of the card list (header + blank line above it).
const setupListTop = 2

// SelectionRecorder appends committed selections to a history.
type SelectionRecorder interface {
	RecordSelection(ctx context.Context, selection, deckPath string) error
}

type SetupOptions struct {
	Deck     *model.Deck
	DeckPath string
	// Selection preselects and orders groups, e.g. the last committed selection.
	Selection string

	KV      store.KV
	History SelectionRecorder
	// Watcher, when set and started, reloads the deck on change.
	Watcher *store.DeckWatcher

	ItemHeight     int
	ClickThreshold time.Duration
	Now            func() time.Time
}

type SetupResult struct {
	Selection string
	Target    string
	Committed bool
}

type deckChangedMsg struct{}

type deckWatchErrMsg struct{ err error }

type setupModel struct {
	opts SetupOptions
	keys setupKeyMap
	help help.Model

	bus  *deck.PointerBus
	list *deck.DragReorderList

	focus  int
	width  int
	height int
	flash  string

	// pendingReload is set when the deck changed during a drag; the reload runs when the drag ends.
	pendingReload bool

	result SetupResult
}

func newSetupModel(opts SetupOptions) (*setupModel, error) {
	if opts.Deck == nil || len(opts.Deck.Groups) == 0 {
		return nil, fmt.Errorf("deck has no groups")
	}
	if opts.ItemHeight <= 0 {
		opts.ItemHeight = store.DefaultItemHeight
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	m := &setupModel{
		opts: opts,
		keys: defaultSetupKeys(),
		help: help.New(),
		bus:  deck.NewPointerBus(),
	}
	sel := deck.ParseSelection(opts.Selection, opts.Deck.Known)
	selected := map[string]bool{}
	for _, id := range sel {
		selected[id] = true
	}
	if err := m.rebuild(opts.Deck, sel, selected); err != nil {
		return nil, err
	}
	return m, nil
}

// rebuild replaces the list with d's groups: leading ids first (in that order), then the rest in
// deck order.
func (m *setupModel) rebuild(d *model.Deck, leading []string, selected map[string]bool) error {
	var entries []deck.ListEntry
	seen := map[string]bool{}
	add := func(id string) {
		g, ok := d.FindGroup(id)
		if !ok || seen[id] {
			return
		}
		seen[id] = true
		entries = append(entries, deck.ListEntry{ID: g.ID, Label: g.Title, Selected: selected[g.ID]})
	}
	for _, id := range leading {
		add(id)
	}
	for _, g := range d.Groups {
		add(g.ID)
	}
	l, err := deck.NewDragReorderList(m.bus, m.opts.ItemHeight, entries)
	if err != nil {
		return err
	}
	l.SetClickThreshold(m.opts.ClickThreshold)
	l.OnSwap = func(id string, slot int) {
		debuglog.Logf("setup: swap %s -> slot %d", id, slot)
	}
	l.OnRelease = func(id string, toggled bool) {
		debuglog.Logf("setup: release %s toggled=%v", id, toggled)
		if it, ok := l.Item(id); ok {
			m.focus = it.Slot
		}
	}
	m.list = l
	m.opts.Deck = d
	if m.focus >= l.Len() {
		m.focus = l.Len() - 1
	}
	if m.focus < 0 {
		m.focus = 0
	}
	return nil
}

func (m *setupModel) Init() tea.Cmd {
	return m.waitForDeckChange()
}

func (m *setupModel) waitForDeckChange() tea.Cmd {
	w := m.opts.Watcher
	if w == nil {
		return nil
	}
	done := w.Done()
	return func() tea.Msg {
		select {
		case <-done:
			return nil
		case <-w.Changed():
			return deckChangedMsg{}
		case err := <-w.Errors():
			return deckWatchErrMsg{err: err}
		}
	}
}

func (m *setupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.abortDrag("resize")
		return m, nil

	case tea.BlurMsg:
		m.abortDrag("focus lost")
		return m, nil

	case deckChangedMsg:
		if _, dragging := m.list.Dragging(); dragging {
			m.pendingReload = true
		} else {
			m.reload()
		}
		return m, m.waitForDeckChange()

	case deckWatchErrMsg:
		debuglog.Logf("setup: watch error: %v", msg.err)
		return m, m.waitForDeckChange()

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *setupModel) handleMouse(msg tea.MouseMsg) {
	now := m.opts.Now()
	_, dragging := m.list.Dragging()
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || dragging {
			return
		}
		id, slot, ok := m.itemAt(msg.Y)
		if !ok {
			return
		}
		m.focus = slot
		m.flash = ""
		if err := m.list.BeginDrag(id, msg.Y, now); err != nil {
			debuglog.Logf("setup: begin drag: %v", err)
			return
		}
		debuglog.Logf("setup: begin drag %s at y=%d", id, msg.Y)
	case tea.MouseActionMotion:
		if dragging {
			m.bus.Dispatch(deck.PointerEvent{Kind: deck.PointerMove, Y: msg.Y, At: now})
		}
	case tea.MouseActionRelease:
		if !dragging {
			return
		}
		m.bus.Dispatch(deck.PointerEvent{Kind: deck.PointerUp, Y: msg.Y, At: now})
		m.endDragSession()
	}
}

// abortDrag ends an active drag without toggling. No-op when idle.
func (m *setupModel) abortDrag(reason string) {
	if _, dragging := m.list.Dragging(); !dragging {
		return
	}
	m.list.AbortDrag()
	debuglog.Logf("setup: drag aborted (%s)", reason)
	m.endDragSession()
}

// endDragSession applies a deck reload deferred while the drag was active.
func (m *setupModel) endDragSession() {
	if !m.pendingReload {
		return
	}
	m.pendingReload = false
	m.reload()
}

// itemAt maps a terminal row to the card covering it.
func (m *setupModel) itemAt(y int) (string, int, bool) {
	if y < setupListTop {
		return "", 0, false
	}
	slot := (y - setupListTop) / m.list.ItemHeight()
	items := m.list.Items()
	if slot < 0 || slot >= len(items) {
		return "", 0, false
	}
	return items[slot].ID, slot, true
}

func (m *setupModel) focused() (deck.Item, bool) {
	items := m.list.Items()
	if m.focus < 0 || m.focus >= len(items) {
		return deck.Item{}, false
	}
	return items[m.focus], true
}

func (m *setupModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if _, dragging := m.list.Dragging(); dragging {
		if key.Matches(msg, m.keys.Quit) {
			m.abortDrag("key")
		}
		return nil
	}
	m.flash = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.focus > 0 {
			m.focus--
		}
	case key.Matches(msg, m.keys.Down):
		if m.focus < m.list.Len()-1 {
			m.focus++
		}
	case key.Matches(msg, m.keys.Toggle):
		if it, ok := m.focused(); ok {
			_ = m.list.Toggle(it.ID)
		}
	case key.Matches(msg, m.keys.MoveUp):
		if it, ok := m.focused(); ok {
			moved, _ := m.list.Move(it.ID, -1)
			m.focus += moved
		}
	case key.Matches(msg, m.keys.MoveDown):
		if it, ok := m.focused(); ok {
			moved, _ := m.list.Move(it.ID, 1)
			m.focus += moved
		}
	case key.Matches(msg, m.keys.Commit):
		return m.commit(store.CommitTargetTerminal)
	case key.Matches(msg, m.keys.Browser):
		return m.commit(store.CommitTargetBrowser)
	}
	return nil
}

// commit stores the chosen order and ends the setup program. An empty selection stays on the
// setup screen.
func (m *setupModel) commit(target string) tea.Cmd {
	ids := m.list.Commit()
	if len(ids) == 0 {
		m.flash = "Select at least one prayer (space or click)"
		return nil
	}
	sel := deck.JoinSelection(ids)
	ctx := context.Background()
	if m.opts.KV != nil {
		if err := m.opts.KV.Set(ctx, deck.SelectionKey, sel); err != nil {
			m.flash = "Could not save selection: " + err.Error()
			return nil
		}
	}
	if m.opts.History != nil {
		if err := m.opts.History.RecordSelection(ctx, sel, m.opts.DeckPath); err != nil {
			debuglog.Logf("setup: record selection: %v", err)
		}
	}
	if err := copyToClipboard(sel); err != nil {
		debuglog.Logf("setup: clipboard: %v", err)
	}
	debuglog.Logf("setup: commit %q target=%s", sel, target)
	m.result = SetupResult{Selection: sel, Target: target, Committed: true}
	return tea.Quit
}

func (m *setupModel) reload() {
	path := strings.TrimSpace(m.opts.DeckPath)
	if path == "" {
		return
	}
	start := time.Now()
	d, err := store.LoadDeck(path)
	if err != nil {
		m.flash = "Reload failed: " + err.Error()
		debuglog.Logf("setup: reload %s: %v", path, err)
		return
	}
	items := m.list.Items()
	leading := make([]string, 0, len(items))
	selected := map[string]bool{}
	for _, it := range items {
		leading = append(leading, it.ID)
		selected[it.ID] = it.Selected
	}
	if err := m.rebuild(d, leading, selected); err != nil {
		m.flash = "Reload failed: " + err.Error()
		return
	}
	debuglog.LogTiming("setup: reload", time.Since(start))
}

func (m *setupModel) View() string {
	width := m.width
	if width <= 0 {
		width = 60
	}
	var b strings.Builder

	title := "Choose prayers"
	if t := strings.TrimSpace(m.opts.Deck.Title); t != "" {
		title = t
	}
	count := len(m.list.Commit())
	b.WriteString(styleHeader().Render(title))
	b.WriteString(styleMuted().Render(fmt.Sprintf("  %d selected · drag to reorder, click to select", count)))
	b.WriteString("\n\n")

	dragID, dragging := m.list.Dragging()
	h := m.list.ItemHeight()
	for i, it := range m.list.Items() {
		card := m.renderCard(it, width, h, i == m.focus && !dragging, dragging && it.ID == dragID)
		b.WriteString(card)
		b.WriteString("\n")
	}

	if m.flash != "" {
		b.WriteString("\n")
		b.WriteString(styleFlash().Render(m.flash))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *setupModel) renderCard(it deck.Item, width, height int, focused, dragging bool) string {
	check := styleMuted().Render("[ ]")
	if it.Selected {
		check = lipgloss.NewStyle().Foreground(colorCheck).Bold(true).Render("[x]")
	}
	meta := ""
	if g, ok := m.opts.Deck.FindGroup(it.ID); ok {
		meta = styleMuted().Render(fmt.Sprintf(" · %s · %d lines", g.ID, len(g.Slides)))
	}
	inner := width - 2
	if height >= 3 {
		inner -= 2
	}
	label := ansi.Truncate(it.Label, max(inner-4-lipgloss.Width(meta), 4), "…")
	line := ansi.Truncate(check+" "+label+meta, max(inner, 1), "…")
	return cardStyle(width, height, focused, dragging).Render(line)
}
