package tui

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/muesli/termenv"
)

var (
	mdRendererMu sync.Mutex
	// Renderers are cached by style + wrap width. WithAutoStyle can block on terminal queries,
	// so the style is resolved once up front and passed explicitly.
	mdRenderers = map[string]*glamour.TermRenderer{}
)

// renderSlide renders one slide line as markdown, centered by the caller. Slides have no
// document margin so short lines sit exactly where the layout puts them.
func renderSlide(md, style string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}
	if style == "" {
		style = markdownStyle("")
	}

	key := style + ":" + strconv.Itoa(width)
	mdRendererMu.Lock()
	r := mdRenderers[key]
	mdRendererMu.Unlock()

	if r == nil {
		cfg := markdownStyleConfig(style)
		zero := uint(0)
		cfg.Document.Margin = &zero
		rr, err := glamour.NewTermRenderer(
			glamour.WithStyles(cfg),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		mdRendererMu.Lock()
		if existing := mdRenderers[key]; existing != nil {
			r = existing
		} else {
			mdRenderers[key] = rr
			r = rr
		}
		mdRendererMu.Unlock()
	}

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}

func markdownStyleConfig(name string) ansi.StyleConfig {
	switch name {
	case styles.LightStyle:
		return styles.LightStyleConfig
	case styles.NoTTYStyle:
		return styles.NoTTYStyleConfig
	case styles.DraculaStyle:
		return styles.DraculaStyleConfig
	case styles.TokyoNightStyle:
		return styles.TokyoNightStyleConfig
	case styles.PinkStyle:
		return styles.PinkStyleConfig
	default:
		return styles.DarkStyleConfig
	}
}

// markdownStyle resolves the glamour style. A configured theme wins; VIGIL_MD_STYLE overrides it
// for one run. Otherwise COLORFGBG is consulted before falling back to termenv's background
// detection.
func markdownStyle(configured string) string {
	if v := strings.ToLower(strings.TrimSpace(os.Getenv("VIGIL_MD_STYLE"))); v != "" {
		return v
	}
	if v := strings.ToLower(strings.TrimSpace(configured)); v != "" && v != "auto" {
		return v
	}
	// COLORFGBG is often "fg;bg" (e.g. "15;0" => dark bg).
	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			// Common xterm palette: 0-6 dark colors, 7-15 light colors.
			if bg >= 7 && bg != 8 {
				return styles.LightStyle
			}
			return styles.DarkStyle
		}
	}
	if termenv.HasDarkBackground() {
		return styles.DarkStyle
	}
	return styles.LightStyle
}
