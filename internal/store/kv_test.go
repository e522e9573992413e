package store

import (
	"context"
	"testing"
)

func TestQueryKV(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	q := NewQueryKV("p=b-a&x=1")
	v, ok, err := q.Get(ctx, "p")
	if err != nil || !ok || v != "b-a" {
		t.Fatalf("get p: %q %v %v", v, ok, err)
	}
	if _, ok, _ := q.Get(ctx, "missing"); ok {
		t.Fatalf("expected missing key")
	}
	if err := q.Set(ctx, "p", "a.c"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got := q.Encode(); got != "p=a.c&x=1" {
		t.Fatalf("encode: %q", got)
	}

	bad := NewQueryKV("%zz")
	if _, ok, _ := bad.Get(ctx, "p"); ok {
		t.Fatalf("malformed query should read as empty")
	}
}

func TestStore_KVAndHistory(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := Store{Dir: t.TempDir()}

	if _, ok, err := s.Get(ctx, "p"); err != nil || ok {
		t.Fatalf("expected empty store; ok=%v err=%v", ok, err)
	}
	if err := s.Set(ctx, "p", "a-b"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set(ctx, "p", "b-a"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, ok, err := s.Get(ctx, "p")
	if err != nil || !ok || v != "b-a" {
		t.Fatalf("get: %q %v %v", v, ok, err)
	}

	for _, sel := range []string{"a", "a-b", "c-b-a"} {
		if err := s.RecordSelection(ctx, sel, "/decks/x.yaml"); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	recs, err := s.RecentSelections(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recs) != 2 || recs[0].Selection != "c-b-a" || recs[1].Selection != "a-b" {
		t.Fatalf("recent: %+v", recs)
	}
	if recs[0].Deck != "/decks/x.yaml" || recs[0].CreatedAt.IsZero() {
		t.Fatalf("record fields: %+v", recs[0])
	}
}

func TestStore_EmptyDir(t *testing.T) {
	t.Parallel()

	if err := (Store{}).Set(context.Background(), "p", "a"); err == nil {
		t.Fatalf("expected error for empty dir")
	}
}

var _ KV = Store{}
var _ KV = QueryKV{}
