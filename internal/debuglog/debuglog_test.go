package debuglog

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestSetOutput_WritesOnlyWhenEnabled(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)

	Logf("swap %s -> %d", "a", 2)
	LogTiming("load deck", 15*time.Millisecond)
	out := buf.String()
	if !strings.Contains(out, "[vigil] ") || !strings.Contains(out, "swap a -> 2") {
		t.Fatalf("unexpected output: %q", out)
	}
	if !strings.Contains(out, "load deck took 15ms") {
		t.Fatalf("missing timing line: %q", out)
	}

	SetOutput(nil)
	buf.Reset()
	Logf("dropped")
	if buf.Len() != 0 || Enabled() {
		t.Fatalf("expected disabled logger to drop output")
	}
}

func TestOpen_AppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	if err := Open(path); err != nil {
		t.Fatalf("open: %v", err)
	}
	Logf("hello %d", 1)
	Close()

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(b), "hello 1") {
		t.Fatalf("log file: %q", string(b))
	}
}
