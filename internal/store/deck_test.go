package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleDeck = `title: Evening office
groups:
  - id: vespers
    title: Vespers
    text: |
      O God, come to my assistance.

      O Lord, make haste to help me.
  - id: compline
    title: Compline
    text: |
      May the Lord grant us a quiet night.
`

func TestParseDeckYAML(t *testing.T) {
	t.Parallel()

	d, err := ParseDeckYAML([]byte(sampleDeck))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d.Title != "Evening office" || len(d.Groups) != 2 {
		t.Fatalf("unexpected deck: %+v", d)
	}
	v := d.Groups[0]
	if v.ID != "vespers" || len(v.Slides) != 2 || v.Slides[1].Text != "O Lord, make haste to help me." {
		t.Fatalf("vespers: %+v", v)
	}
	if !d.Known("compline") || d.Known("lauds") {
		t.Fatalf("Known mismatch")
	}
}

func TestParseDeckYAML_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "missing id", in: "groups:\n  - title: A\n", want: "missing id"},
		{name: "missing title", in: "groups:\n  - id: a\n", want: "missing title"},
		{name: "duplicate", in: "groups:\n  - {id: a, title: A}\n  - {id: a, title: B}\n", want: "duplicate id"},
		{name: "separator in id", in: "groups:\n  - {id: a-b, title: A}\n", want: "separators"},
		{name: "bad yaml", in: "groups: [", want: ""},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseDeckYAML([]byte(tt.in))
			if err == nil {
				t.Fatalf("expected error")
			}
			if tt.want != "" && !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected %q in error; got %v", tt.want, err)
			}
		})
	}
}

func TestMarshalDeckYAML_RoundTrip(t *testing.T) {
	t.Parallel()

	d, err := ParseDeckYAML([]byte(sampleDeck))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	b, err := MarshalDeckYAML(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	d2, err := ParseDeckYAML(b)
	if err != nil {
		t.Fatalf("reparse: %v\n%s", err, b)
	}
	if len(d2.Groups) != 2 || len(d2.Groups[0].Slides) != 2 || d2.Groups[1].Title != "Compline" {
		t.Fatalf("round trip lost data: %+v", d2)
	}
}

func TestLoadDeck_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write := func(name, body string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	write("_title.md", "Morning\n")
	write("02-lauds.md", "# Lauds\nLine one\n\nLine two\n")
	write("01_angelus.txt", "The angel of the Lord declared unto Mary.\n")
	write("notes.json", "{}")

	d, err := LoadDeck(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if d.Title != "Morning" {
		t.Fatalf("title: %q", d.Title)
	}
	if len(d.Groups) != 2 {
		t.Fatalf("groups: %+v", d.Groups)
	}
	if d.Groups[0].ID != "angelus" || d.Groups[0].Title != "angelus" || len(d.Groups[0].Slides) != 1 {
		t.Fatalf("angelus: %+v", d.Groups[0])
	}
	if d.Groups[1].ID != "lauds" || d.Groups[1].Title != "Lauds" || len(d.Groups[1].Slides) != 2 {
		t.Fatalf("lauds: %+v", d.Groups[1])
	}
}

func TestLoadDeck_Errors(t *testing.T) {
	t.Parallel()

	if _, err := LoadDeck(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
	if _, err := LoadDeck(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
