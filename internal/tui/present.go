package tui

import (
	"fmt"
	"strings"

	"vigil/internal/debuglog"
	"vigil/internal/deck"
	"vigil/internal/model"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type PresentOptions struct {
	Deck      *model.Deck
	Selection string
	// Style is the glamour style name; empty or "auto" detects it from the terminal.
	Style string
}

type presentModel struct {
	deck  *model.Deck
	stage *deck.Stage
	style string

	keys     presentKeyMap
	help     help.Model
	progress progress.Model

	width  int
	height int
	// windowTitle is the last title sent to the terminal.
	windowTitle string
}

func newPresentModel(opts PresentOptions) *presentModel {
	d := opts.Deck
	if d == nil {
		d = &model.Deck{}
	}
	m := &presentModel{
		deck:     d,
		stage:    deck.NewStage(d),
		style:    markdownStyle(opts.Style),
		keys:     defaultPresentKeys(),
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
	m.stage.Controller.OnPromote = func(from, to string) {
		debuglog.Logf("present: promote %s -> %q", from, to)
	}
	m.stage.Controller.Start(deck.ParseSelection(opts.Selection, d.Known))
	debuglog.Logf("present: start order=%v state=%s", m.stage.Controller.Order(), m.stage.Controller.State())
	return m
}

func (m *presentModel) Init() tea.Cmd {
	return m.titleCmd()
}

// titleCmd updates the terminal window title when the displayed group changed.
func (m *presentModel) titleCmd() tea.Cmd {
	t := m.currentTitle()
	if t == m.windowTitle {
		return nil
	}
	m.windowTitle = t
	return tea.SetWindowTitle(t)
}

func (m *presentModel) currentTitle() string {
	if m.stage.Controller.State() == deck.GroupActive && m.stage.Title.Value != "" {
		return m.stage.Title.Value
	}
	if t := strings.TrimSpace(m.deck.Title); t != "" {
		return t
	}
	return "vigil"
}

func (m *presentModel) step(d deck.Delta) tea.Cmd {
	m.stage.Controller.Step(d)
	return m.titleCmd()
}

func (m *presentModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.progress.Width = max(msg.Width-4, 10)
		return m, nil

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			return m, m.step(deck.Forward())
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			return m, m.step(deck.Forward())
		case key.Matches(msg, m.keys.Back):
			return m, m.step(deck.By(-1))
		case key.Matches(msg, m.keys.Fwd):
			return m, m.step(deck.By(1))
		}
	}
	return m, nil
}

func (m *presentModel) View() string {
	width, height := m.width, m.height
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}

	if m.stage.Controller.State() == deck.NoGroup {
		hint := m.help.ShortHelpView([]key.Binding{m.keys.Quit})
		return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Bottom, hint)
	}

	g, slide, ok := m.stage.Showing()
	if !ok {
		return ""
	}
	pos, total := m.stage.Position()
	header := styleHeader().Render(g.Title) +
		styleMuted().Render(fmt.Sprintf("  %d/%d", pos, total))

	body := styleMuted().Render(g.Title)
	if slide >= 0 && slide < len(g.Slides) {
		body = renderSlide(g.Slides[slide].Text, m.style, min(width-4, 100))
	}

	pct := 0.0
	if n := len(g.Slides); n > 0 {
		pct = float64(slide+1) / float64(n)
	}
	footer := m.progress.ViewAs(pct) + "\n" + m.help.View(m.keys)

	bodyHeight := height - lipgloss.Height(header) - lipgloss.Height(footer)
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	body = lipgloss.Place(width, bodyHeight, lipgloss.Center, lipgloss.Center, body)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
