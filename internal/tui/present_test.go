package tui

import (
	"strings"
	"testing"

	"vigil/internal/deck"

	tea "github.com/charmbracelet/bubbletea"
)

func showing(m *presentModel) (string, int) {
	g, slide, ok := m.stage.Showing()
	if !ok {
		return "", -1
	}
	return g.ID, slide
}

func TestPresent_ImplicitStepsWalkSelection(t *testing.T) {
	t.Setenv("VIGIL_MD_STYLE", "notty")
	m := newPresentModel(PresentOptions{Deck: testDeck(), Selection: "b-a"})
	if cmd := m.Init(); cmd == nil {
		t.Fatalf("expected window title command")
	}
	if m.windowTitle != "Benedictus" {
		t.Fatalf("window title: %q", m.windowTitle)
	}

	want := []struct {
		id    string
		slide int
	}{
		{"b", 0},
		{"a", -1},
		{"a", 0},
		{"a", 1},
	}
	for i, w := range want {
		m.Update(tea.KeyMsg{Type: tea.KeySpace})
		id, slide := showing(m)
		if id != w.id || slide != w.slide {
			t.Fatalf("step %d: got %s/%d want %s/%d", i+1, id, slide, w.id, w.slide)
		}
	}
	if m.windowTitle != "Angelus" {
		t.Fatalf("window title after promotion: %q", m.windowTitle)
	}

	m.Update(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.stage.Controller.State() != deck.NoGroup {
		t.Fatalf("expected presentation to end")
	}
	if !strings.Contains(m.View(), "quit") {
		t.Fatalf("ended view should show the quit hint")
	}
}

func TestPresent_ArrowsStayInGroup(t *testing.T) {
	t.Setenv("VIGIL_MD_STYLE", "notty")
	m := newPresentModel(PresentOptions{Deck: testDeck(), Selection: "c-a"})

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if id, slide := showing(m); id != "c" || slide != 2 {
		t.Fatalf("right arrows must stop at the last line: %s/%d", id, slide)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if id, slide := showing(m); id != "c" || slide != 1 {
		t.Fatalf("left arrow: %s/%d", id, slide)
	}
	for i := 0; i < 5; i++ {
		m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	}
	if id, slide := showing(m); id != "c" || slide != -1 {
		t.Fatalf("left arrows must stop before the first line: %s/%d", id, slide)
	}
}

func TestPresent_EmptySelection(t *testing.T) {
	t.Setenv("VIGIL_MD_STYLE", "notty")
	m := newPresentModel(PresentOptions{Deck: testDeck(), Selection: "x-y"})
	if m.stage.Controller.State() != deck.NoGroup {
		t.Fatalf("unknown ids only should leave no group")
	}
	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	if m.stage.Controller.State() != deck.NoGroup {
		t.Fatalf("steps in no-group are no-ops")
	}
	m.Init()
	if m.windowTitle != "Office" {
		t.Fatalf("expected deck title as window title, got %q", m.windowTitle)
	}
}

func TestPresent_ViewRendersSlide(t *testing.T) {
	t.Setenv("VIGIL_MD_STYLE", "notty")
	m := newPresentModel(PresentOptions{Deck: testDeck(), Selection: "a"})
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	v := m.View()
	for _, want := range []string{"Angelus", "1/1", "a1"} {
		if !strings.Contains(v, want) {
			t.Fatalf("expected %q in view:\n%s", want, v)
		}
	}
	if strings.Contains(v, "a2") {
		t.Fatalf("only one line may be visible:\n%s", v)
	}
}

func TestMarkdownStyle(t *testing.T) {
	t.Setenv("VIGIL_MD_STYLE", "")
	t.Setenv("COLORFGBG", "0;15")
	if got := markdownStyle(""); got != "light" {
		t.Fatalf("COLORFGBG light: %q", got)
	}
	if got := markdownStyle("dracula"); got != "dracula" {
		t.Fatalf("configured style: %q", got)
	}
	t.Setenv("VIGIL_MD_STYLE", "dark")
	if got := markdownStyle("dracula"); got != "dark" {
		t.Fatalf("env override: %q", got)
	}
}
