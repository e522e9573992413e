package store

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const DefaultWatchDebounce = 150 * time.Millisecond

var ErrWatcherStarted = errors.New("watcher already started")

// DeckWatcher signals when a deck file (or any file in a deck directory) changes.
type DeckWatcher struct {
	path     string
	isDir    bool
	debounce time.Duration

	mu      sync.Mutex
	fsw     *fsnotify.Watcher
	timer   *time.Timer
	started bool
	done    chan struct{}

	changeCh chan struct{}
	errCh    chan error
}

func NewDeckWatcher(path string, debounce time.Duration) (*DeckWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	st, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}
	return &DeckWatcher{
		path:     abs,
		isDir:    st.IsDir(),
		debounce: debounce,
		changeCh: make(chan struct{}, 1),
		errCh:    make(chan error, 1),
	}, nil
}

func (w *DeckWatcher) Path() string { return w.path }

// Changed receives one value per debounced burst of changes.
func (w *DeckWatcher) Changed() <-chan struct{} { return w.changeCh }

// Errors receives watcher errors; it is never closed.
func (w *DeckWatcher) Errors() <-chan error { return w.errCh }

// Done is closed when the watcher stops. Before Start and after Stop it returns a closed channel.
func (w *DeckWatcher) Done() <-chan struct{} {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.started {
		ch := make(chan struct{})
		close(ch)
		return ch
	}
	return w.done
}

func (w *DeckWatcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return ErrWatcherStarted
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	// Watch the containing directory for single files: editors often save via rename.
	dir := w.path
	if !w.isDir {
		dir = filepath.Dir(w.path)
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return err
	}
	w.fsw = fsw
	w.done = make(chan struct{})
	w.started = true
	go w.loop(fsw, w.done)
	return nil
}

func (w *DeckWatcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.started {
		return
	}
	w.started = false
	close(w.done)
	_ = w.fsw.Close()
	w.fsw = nil
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

func (w *DeckWatcher) loop(fsw *fsnotify.Watcher, done <-chan struct{}) {
	target := filepath.Base(w.path)
	for {
		select {
		case <-done:
			return
		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if !w.isDir && filepath.Base(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			w.trigger()
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			select {
			case w.errCh <- err:
			default:
			}
		}
	}
}

func (w *DeckWatcher) trigger() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.started {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.notify)
}

func (w *DeckWatcher) notify() {
	w.mu.Lock()
	started := w.started
	w.mu.Unlock()
	if !started {
		return
	}
	select {
	case w.changeCh <- struct{}{}:
	default:
	}
}
