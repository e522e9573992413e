// Package debuglog provides conditional debug logging for vigil.
//
// Logging is enabled by pointing VIGIL_DEBUG_LOG at a file:
//
//	VIGIL_DEBUG_LOG=/tmp/vigil.log vigil
//
// The TUI owns the terminal, so messages never go to stderr. When the variable is unset every
// function is a no-op.
package debuglog

import (
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

const envVar = "VIGIL_DEBUG_LOG"

var (
	mu      sync.Mutex
	enabled bool
	logger  *log.Logger
	closer  io.Closer
)

func init() {
	if p := strings.TrimSpace(os.Getenv(envVar)); p != "" {
		_ = Open(p)
	}
}

// Open appends debug output to path and enables logging.
func Open(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	SetOutput(f)
	mu.Lock()
	closer = f
	mu.Unlock()
	return nil
}

// SetOutput enables logging to w; a nil writer disables it.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if closer != nil {
		_ = closer.Close()
		closer = nil
	}
	if w == nil {
		enabled = false
		logger = nil
		return
	}
	enabled = true
	logger = log.New(w, "[vigil] ", log.Ltime|log.Lmicroseconds)
}

func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

// Logf writes a printf-style message if logging is enabled.
func Logf(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if !enabled {
		return
	}
	logger.Printf(format, args...)
}

// LogTiming writes how long name took.
func LogTiming(name string, d time.Duration) {
	Logf("%s took %v", name, d)
}

// Close releases the log file, if any, and disables logging.
func Close() {
	SetOutput(nil)
}
