package model

import "strings"

// Slide is one displayable line of a group.
type Slide struct {
	Text string `json:"text" yaml:"text"`
}

// Group is one named collection of ordered slides (a single prayer).
type Group struct {
	ID     string  `json:"id" yaml:"id"`
	Title  string  `json:"title" yaml:"title"`
	Slides []Slide `json:"slides" yaml:"slides"`
}

type Deck struct {
	Title  string  `json:"title,omitempty" yaml:"title,omitempty"`
	Groups []Group `json:"groups" yaml:"groups"`
}

func (d *Deck) FindGroup(id string) (*Group, bool) {
	if d == nil {
		return nil, false
	}
	id = strings.TrimSpace(id)
	for i := range d.Groups {
		if d.Groups[i].ID == id {
			return &d.Groups[i], true
		}
	}
	return nil, false
}

// Known reports whether id names a group in the deck. It is the filter used when
// parsing selection strings.
func (d *Deck) Known(id string) bool {
	_, ok := d.FindGroup(id)
	return ok
}

func (d *Deck) GroupIDs() []string {
	if d == nil {
		return []string{}
	}
	out := make([]string, 0, len(d.Groups))
	for _, g := range d.Groups {
		out = append(out, g.ID)
	}
	return out
}

// SplitSlides turns raw group text into one slide per non-empty, trimmed line.
func SplitSlides(text string) []Slide {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	out := []Slide{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, Slide{Text: line})
	}
	return out
}
