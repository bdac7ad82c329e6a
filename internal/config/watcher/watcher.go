// Package watcher reloads input configuration files when they change on
// disk.
//
// The Watcher observes the parent directory of every watched file through
// fsnotify, so editors that save by writing a temporary file and renaming
// it over the original are still seen as a single write. Bursts of events
// for one file are coalesced and delivered after a quiet period.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/ineffable/internal/logging"
)

// Watcher errors.
var (
	// ErrWatcherClosed indicates the watcher was stopped.
	ErrWatcherClosed = errors.New("watcher closed")

	// ErrNotWatching indicates the path is not being watched.
	ErrNotWatching = errors.New("path not being watched")
)

// DefaultDebounce is the quiet period before a burst of events is delivered.
const DefaultDebounce = 100 * time.Millisecond

// Operation represents a file operation type.
type Operation uint8

const (
	// OpWrite indicates the file was modified.
	OpWrite Operation = iota
	// OpCreate indicates the file was created.
	OpCreate
	// OpRemove indicates the file was removed.
	OpRemove
	// OpRename indicates the file was renamed away.
	OpRename
)

// String returns the string representation of the operation.
func (o Operation) String() string {
	switch o {
	case OpWrite:
		return "write"
	case OpCreate:
		return "create"
	case OpRemove:
		return "remove"
	case OpRename:
		return "rename"
	default:
		return "unknown"
	}
}

// Event represents a file change event.
type Event struct {
	// Path is the absolute path of the changed file.
	Path string

	// Op is the type of change.
	Op Operation

	// Time is when the last event of the burst was seen.
	Time time.Time
}

// Handler is called when a watched file changes.
type Handler func(Event)

// Watcher watches configuration files for changes.
type Watcher struct {
	mu       sync.Mutex
	fsw      *fsnotify.Watcher
	files    map[string]struct{}
	dirs     map[string]int
	handlers []Handler
	debounce time.Duration
	logger   *logging.Logger

	pending map[string]Event

	running bool
	closed  bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the debounce duration for rapid changes.
// Zero delivers every event as soon as it is seen.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger used for watch errors and handler panics.
func WithLogger(l *logging.Logger) Option {
	return func(w *Watcher) {
		w.logger = logging.OrNull(l)
	}
}

// New creates a watcher backed by an fsnotify instance.
func New(opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		fsw:      fsw,
		files:    make(map[string]struct{}),
		dirs:     make(map[string]int),
		debounce: DefaultDebounce,
		logger:   logging.Default().WithComponent("watcher"),
		pending:  make(map[string]Event),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Watch adds a file to the watch list. The file need not exist yet, but
// its directory must.
func (w *Watcher) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}
	if _, ok := w.files[abs]; ok {
		return nil
	}

	dir := filepath.Dir(abs)
	if w.dirs[dir] == 0 {
		if err := w.fsw.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	w.dirs[dir]++
	w.files[abs] = struct{}{}
	return nil
}

// Unwatch removes a file from the watch list.
func (w *Watcher) Unwatch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}
	if _, ok := w.files[abs]; !ok {
		return fmt.Errorf("%w: %s", ErrNotWatching, abs)
	}
	delete(w.files, abs)
	delete(w.pending, abs)

	dir := filepath.Dir(abs)
	w.dirs[dir]--
	if w.dirs[dir] <= 0 {
		delete(w.dirs, dir)
		return w.fsw.Remove(dir)
	}
	return nil
}

// WatchedFiles returns the watched paths in sorted order.
func (w *Watcher) WatchedFiles() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]string, 0, len(w.files))
	for p := range w.files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// OnChange registers a handler for file change events.
func (w *Watcher) OnChange(handler Handler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers = append(w.handlers, handler)
}

// Start begins delivering events until ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}
	if w.running {
		return nil
	}
	ctx, w.cancel = context.WithCancel(ctx)
	w.running = true

	w.wg.Add(1)
	go w.loop(ctx)
	return nil
}

// Stop stops the watcher and releases the fsnotify instance.
// A stopped watcher cannot be restarted.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.cancel != nil {
		w.cancel()
	}
	w.mu.Unlock()

	w.wg.Wait()

	w.mu.Lock()
	w.running = false
	w.mu.Unlock()
	return w.fsw.Close()
}

// IsRunning returns true if the watcher is delivering events.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running && !w.closed
}

func (w *Watcher) loop(ctx context.Context) {
	defer w.wg.Done()

	var flush <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.queueEvent(ev) {
				continue
			}
			if w.debounce == 0 {
				w.deliver()
				continue
			}
			flush = time.After(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error: %v", err)

		case <-flush:
			flush = nil
			w.deliver()
		}
	}
}

// queueEvent records ev when it concerns a watched file. Repeated events
// for the same file collapse into one.
func (w *Watcher) queueEvent(ev fsnotify.Event) bool {
	op, ok := convertOp(ev.Op)
	if !ok {
		return false
	}
	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, watched := w.files[abs]; !watched {
		return false
	}
	if prev, seen := w.pending[abs]; seen && prev.Op == OpCreate && op == OpWrite {
		op = OpCreate
	}
	w.pending[abs] = Event{Path: abs, Op: op, Time: time.Now()}
	return true
}

// deliver hands every pending event to the handlers. A remove or rename
// followed by the file reappearing is reported as a write.
func (w *Watcher) deliver() {
	w.mu.Lock()
	events := make([]Event, 0, len(w.pending))
	for _, ev := range w.pending {
		events = append(events, ev)
	}
	w.pending = make(map[string]Event)
	handlers := make([]Handler, len(w.handlers))
	copy(handlers, w.handlers)
	w.mu.Unlock()

	sort.Slice(events, func(i, j int) bool { return events[i].Path < events[j].Path })
	for _, ev := range events {
		if ev.Op == OpRemove || ev.Op == OpRename {
			if _, err := os.Stat(ev.Path); err == nil {
				ev.Op = OpWrite
			}
		}
		for _, h := range handlers {
			w.safeCallHandler(h, ev)
		}
	}
}

func (w *Watcher) safeCallHandler(h Handler, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("change handler panicked on %s: %v", ev.Path, r)
		}
	}()
	h(ev)
}

func convertOp(op fsnotify.Op) (Operation, bool) {
	switch {
	case op.Has(fsnotify.Create):
		return OpCreate, true
	case op.Has(fsnotify.Write):
		return OpWrite, true
	case op.Has(fsnotify.Remove):
		return OpRemove, true
	case op.Has(fsnotify.Rename):
		return OpRename, true
	default:
		return 0, false
	}
}
