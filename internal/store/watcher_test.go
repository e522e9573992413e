package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDeckWatcher_SignalsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deck.yaml")
	if err := os.WriteFile(path, []byte(sampleDeck), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	w, err := NewDeckWatcher(path, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer w.Stop()
	if err := w.Start(); err != ErrWatcherStarted {
		t.Fatalf("expected ErrWatcherStarted; got %v", err)
	}

	// Unrelated files in the same directory are ignored.
	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write other: %v", err)
	}
	select {
	case <-w.Changed():
		t.Fatalf("unexpected change for unrelated file")
	case <-time.After(150 * time.Millisecond):
	}

	if err := os.WriteFile(path, []byte(sampleDeck+"\n"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	select {
	case <-w.Changed():
	case <-time.After(3 * time.Second):
		t.Fatalf("timed out waiting for change")
	}
}

func TestDeckWatcher_DoneClosedOnStop(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "deck.yaml")
	if err := os.WriteFile(path, []byte(sampleDeck), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	w, err := NewDeckWatcher(path, 0)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	select {
	case <-w.Done():
	default:
		t.Fatalf("expected Done to be closed before Start")
	}
	if err := w.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	done := w.Done()
	select {
	case <-done:
		t.Fatalf("Done closed while running")
	default:
	}
	w.Stop()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Done not closed after Stop")
	}
}

func TestNewDeckWatcher_MissingPath(t *testing.T) {
	t.Parallel()

	if _, err := NewDeckWatcher(filepath.Join(t.TempDir(), "nope.yaml"), 0); err == nil {
		t.Fatalf("expected error")
	}
}
