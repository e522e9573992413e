package docs

import (
	"reflect"
	"testing"
)

func TestTopics(t *testing.T) {
	t.Parallel()

	want := []string{"config", "deck", "keys"}
	if got := Topics(); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	if body, ok := Get(" Deck "); !ok || len(body) == 0 {
		t.Fatalf("expected deck topic")
	}
	for _, bad := range []string{"", "nope", "../go", "deck.md"} {
		if _, ok := Get(bad); ok {
			t.Fatalf("expected %q to be unknown", bad)
		}
	}
}
