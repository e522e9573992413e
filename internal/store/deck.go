package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"vigil/internal/model"

	"gopkg.in/yaml.v3"
)

// deckFile is the on-disk YAML shape. Group text is a block scalar; each non-empty line becomes
// one slide.
type deckFile struct {
	Title  string          `yaml:"title"`
	Groups []deckFileGroup `yaml:"groups"`
}

type deckFileGroup struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
	Text  string `yaml:"text"`
}

// LoadDeck reads a deck from a YAML file or from a directory of .md/.txt files.
func LoadDeck(path string) (*model.Deck, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("deck: no path (pass --deck or set VIGIL_DECK)")
	}
	st, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	var d *model.Deck
	if st.IsDir() {
		d, err = loadDeckDir(path)
	} else {
		var b []byte
		b, err = os.ReadFile(path)
		if err == nil {
			d, err = ParseDeckYAML(b)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("deck %s: %w", path, err)
	}
	return d, nil
}

func ParseDeckYAML(b []byte) (*model.Deck, error) {
	var f deckFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, err
	}
	d := &model.Deck{Title: strings.TrimSpace(f.Title), Groups: []model.Group{}}
	for _, g := range f.Groups {
		d.Groups = append(d.Groups, model.Group{
			ID:     strings.TrimSpace(g.ID),
			Title:  strings.TrimSpace(g.Title),
			Slides: model.SplitSlides(g.Text),
		})
	}
	if err := ValidateDeck(d); err != nil {
		return nil, err
	}
	return d, nil
}

// MarshalDeckYAML renders d back into the YAML deck format.
func MarshalDeckYAML(d *model.Deck) ([]byte, error) {
	f := deckFile{Title: d.Title}
	for _, g := range d.Groups {
		lines := make([]string, 0, len(g.Slides))
		for _, s := range g.Slides {
			lines = append(lines, s.Text)
		}
		f.Groups = append(f.Groups, deckFileGroup{ID: g.ID, Title: g.Title, Text: strings.Join(lines, "\n") + "\n"})
	}
	return yaml.Marshal(f)
}

// ValidateDeck checks ids are present, unique and safe to use in a selection string.
func ValidateDeck(d *model.Deck) error {
	seen := map[string]int{}
	for i, g := range d.Groups {
		if g.ID == "" {
			return fmt.Errorf("group %d: missing id", i)
		}
		if strings.ContainsAny(g.ID, "-.,; \t") {
			return fmt.Errorf("group %d: id %q must not contain separators (- . , ;) or spaces", i, g.ID)
		}
		if g.Title == "" {
			return fmt.Errorf("group %d (%s): missing title", i, g.ID)
		}
		if prev, dup := seen[g.ID]; dup {
			return fmt.Errorf("group %d: duplicate id %q (first used by group %d)", i, g.ID, prev)
		}
		seen[g.ID] = i
	}
	return nil
}

func loadDeckDir(dir string) (*model.Deck, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := []string{}
	for _, e := range ents {
		if e.IsDir() || strings.HasPrefix(e.Name(), "_") || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".md", ".txt":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	d := &model.Deck{Title: filepath.Base(dir), Groups: []model.Group{}}
	if b, err := os.ReadFile(filepath.Join(dir, "_title.md")); err == nil {
		if t := strings.TrimSpace(string(b)); t != "" {
			d.Title = t
		}
	}
	for _, name := range names {
		b, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		id := strings.TrimSuffix(name, filepath.Ext(name))
		id = strings.TrimLeft(id, "0123456789_-")
		if id == "" {
			id = strings.TrimSuffix(name, filepath.Ext(name))
		}
		title, body := splitHeading(string(b))
		if title == "" {
			title = id
		}
		d.Groups = append(d.Groups, model.Group{ID: id, Title: title, Slides: model.SplitSlides(body)})
	}
	if err := ValidateDeck(d); err != nil {
		return nil, err
	}
	return d, nil
}

// splitHeading pulls a leading "# Title" line off a text file.
func splitHeading(s string) (string, string) {
	s = strings.TrimLeft(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	first, rest, _ := strings.Cut(s, "\n")
	if t, ok := strings.CutPrefix(strings.TrimSpace(first), "# "); ok {
		return strings.TrimSpace(t), rest
	}
	return "", s
}
