package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Palette helpers. Colors are adaptive so cards stay readable on light and dark terminals; faint
// styling is only applied on dark backgrounds.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted          lipgloss.TerminalColor = ac("240", "243")
	colorSelectedBorder lipgloss.TerminalColor = ac("232", "255")
	colorCardBorder     lipgloss.TerminalColor = ac("250", "243")
	colorAccent         lipgloss.TerminalColor = ac("27", "62")
	colorAccentFg       lipgloss.TerminalColor = ac("255", "235")
	colorFlashErrorBg   lipgloss.TerminalColor = ac("196", "160")
	colorCheck          lipgloss.TerminalColor = ac("28", "42")
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleHeader() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
}

func styleFlash() lipgloss.Style {
	return lipgloss.NewStyle().Padding(0, 1).Background(colorFlashErrorBg).Foreground(colorAccentFg)
}

// cardStyle is the bordered card for one list item. height counts border rows.
func cardStyle(width, height int, focused, dragging bool) lipgloss.Style {
	border := colorCardBorder
	if focused || dragging {
		border = colorSelectedBorder
	}
	st := lipgloss.NewStyle().Width(max(width-2, 1))
	if height >= 3 {
		b := lipgloss.RoundedBorder()
		if dragging {
			b = lipgloss.ThickBorder()
		}
		st = st.Border(b).BorderForeground(border).Height(height - 2)
	} else {
		st = st.Height(height)
	}
	if dragging {
		st = st.Bold(true)
	}
	return st
}

// applyColorProfilePreference sets Lip Gloss's color profile for the interactive TUI. Only
// NO_COLOR disables color; otherwise TERM/COLORTERM may upgrade termenv's guess.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	profile := termenv.ColorProfile()
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") && (profile == termenv.Ascii || profile == termenv.ANSI) {
		profile = termenv.ANSI256
	}
	lipgloss.SetColorProfile(profile)
}
