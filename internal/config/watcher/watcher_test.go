package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dshills/ineffable/internal/action"
	"github.com/dshills/ineffable/internal/config/layer"
	"github.com/dshills/ineffable/internal/ineffable"
	"github.com/dshills/ineffable/internal/input/source"
	"github.com/dshills/ineffable/internal/logging"
	"github.com/dshills/ineffable/internal/report"
)

func newWatcher(t *testing.T, opts ...Option) *Watcher {
	t.Helper()
	opts = append([]Option{WithLogger(logging.Null)}, opts...)
	w, err := New(opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = w.Stop() })
	return w
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestOperation_String(t *testing.T) {
	tests := []struct {
		op   Operation
		want string
	}{
		{OpWrite, "write"},
		{OpCreate, "create"},
		{OpRemove, "remove"},
		{OpRename, "rename"},
		{Operation(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestNew_Options(t *testing.T) {
	w := newWatcher(t)
	if w.debounce != DefaultDebounce {
		t.Errorf("default debounce = %v, want %v", w.debounce, DefaultDebounce)
	}

	w = newWatcher(t, WithDebounce(10*time.Millisecond))
	if w.debounce != 10*time.Millisecond {
		t.Errorf("debounce = %v, want 10ms", w.debounce)
	}
}

func TestWatcher_WatchAndUnwatch(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "input.toml")
	writeFile(t, existing, "")
	missing := filepath.Join(dir, "later.toml")

	w := newWatcher(t)
	if err := w.Watch(existing); err != nil {
		t.Fatalf("Watch(existing): %v", err)
	}
	if err := w.Watch(missing); err != nil {
		t.Fatalf("Watch(missing file in existing dir): %v", err)
	}
	if err := w.Watch(existing); err != nil {
		t.Errorf("second Watch should be a no-op, got %v", err)
	}
	if got := w.WatchedFiles(); len(got) != 2 {
		t.Errorf("WatchedFiles() = %v, want 2 entries", got)
	}
	if w.dirs[dir] != 2 {
		t.Errorf("dir refcount = %d, want 2", w.dirs[dir])
	}

	if err := w.Watch(filepath.Join(dir, "nope", "x.toml")); err == nil {
		t.Error("Watch in a missing directory should fail")
	}

	if err := w.Unwatch(missing); err != nil {
		t.Errorf("Unwatch: %v", err)
	}
	if err := w.Unwatch(missing); !errors.Is(err, ErrNotWatching) {
		t.Errorf("second Unwatch error = %v, want ErrNotWatching", err)
	}
	if got := w.WatchedFiles(); len(got) != 1 || got[0] != existing {
		t.Errorf("WatchedFiles() = %v, want [%s]", got, existing)
	}
}

func TestWatcher_DeliversCoalescedWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.toml")
	other := filepath.Join(dir, "other.toml")
	writeFile(t, path, "a")

	w := newWatcher(t, WithDebounce(50*time.Millisecond))
	events := make(chan Event, 16)
	w.OnChange(func(ev Event) { events <- ev })
	if err := w.Watch(path); err != nil {
		t.Fatal(err)
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !w.IsRunning() {
		t.Fatal("IsRunning() = false after Start")
	}

	writeFile(t, other, "ignored")
	for i := 0; i < 3; i++ {
		writeFile(t, path, "b")
	}

	select {
	case ev := <-events:
		if ev.Path != path {
			t.Errorf("event path = %s, want %s", ev.Path, path)
		}
		if ev.Op != OpWrite {
			t.Errorf("event op = %v, want write", ev.Op)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no event delivered")
	}

	select {
	case ev := <-events:
		t.Errorf("burst produced a second event: %+v", ev)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_HandlerPanicIsContained(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.toml")
	writeFile(t, path, "a")

	w := newWatcher(t, WithDebounce(0))
	got := make(chan Event, 4)
	w.OnChange(func(Event) { panic("boom") })
	w.OnChange(func(ev Event) { got <- ev })
	if err := w.Watch(path); err != nil {
		t.Fatal(err)
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}

	writeFile(t, path, "b")
	select {
	case <-got:
	case <-time.After(3 * time.Second):
		t.Fatal("second handler never ran")
	}
}

func TestWatcher_StopAndCancel(t *testing.T) {
	w := newWatcher(t)
	ctx, cancel := context.WithCancel(context.Background())
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	cancel()

	if err := w.Stop(); err != nil {
		t.Errorf("Stop: %v", err)
	}
	if w.IsRunning() {
		t.Error("IsRunning() = true after Stop")
	}
	if err := w.Stop(); err != nil {
		t.Errorf("second Stop: %v", err)
	}
	if err := w.Watch(filepath.Join(t.TempDir(), "x.toml")); !errors.Is(err, ErrWatcherClosed) {
		t.Errorf("Watch after Stop error = %v, want ErrWatcherClosed", err)
	}
	if err := w.Start(context.Background()); !errors.Is(err, ErrWatcherClosed) {
		t.Errorf("Start after Stop error = %v, want ErrWatcherClosed", err)
	}
}

const spaceTOML = `
[bindings.Player]
Teleport = [ { Pulse = { JustPressed = ["Key.Space"] } } ]
`

const keyATOML = `
[bindings.Player]
Teleport = [ { Pulse = { JustPressed = ["Key.A"] } } ]
`

const misspelledTOML = `
[bindings.Player]
Teleport = [ { Pulse = { JustPressed = ["Key.Spcae"] } } ]
`

const wrongKindTOML = `
[bindings.Player]
Teleport = [ { Continuous = { Hold = ["Key.A"] } } ]
`

func newReloadFixture(t *testing.T) (*Reloader, *ineffable.Context, *layer.Stack, string, action.Handle[action.Pulse]) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.toml")
	writeFile(t, path, spaceTOML)

	reg := action.NewRegistry()
	teleport := action.MustDefine[action.Pulse](reg, "Player", "Teleport")
	ctx := ineffable.New(reg, ineffable.WithLogger(logging.Null))

	stack := layer.NewStack()
	stack.AddLayer(layer.NewLayer("defaults", layer.SourceBuiltin, layer.PriorityBuiltin))
	file := layer.NewLayer("user", layer.SourceFile, layer.PriorityFile)
	file.Path = path
	stack.AddLayer(file)

	r := NewReloader(nil, stack, ctx, logging.Null)
	if _, err := r.Reload(path); err != nil {
		t.Fatalf("initial Reload: %v", err)
	}
	return r, ctx, stack, path, teleport
}

func pressed(ctx *ineffable.Context, teleport action.Handle[action.Pulse], s source.Source) bool {
	ctx.Update(source.NewFrame(), 16*time.Millisecond)
	f := source.NewFrame()
	f.Press(s)
	ctx.Update(f, 16*time.Millisecond)
	return ctx.Pulsed(teleport)
}

func TestReloader_AppliesChangedFile(t *testing.T) {
	r, ctx, _, path, teleport := newReloadFixture(t)

	if !pressed(ctx, teleport, source.KeySpace) {
		t.Fatal("Space should teleport after the initial load")
	}

	writeFile(t, path, keyATOML)
	r.Handle(Event{Path: path, Op: OpWrite, Time: time.Now()})

	if pressed(ctx, teleport, source.KeySpace) {
		t.Error("Space still teleports after reload")
	}
	if !pressed(ctx, teleport, source.KeyA) {
		t.Error("A should teleport after reload")
	}
}

func TestReloader_RejectedKeepsPrevious(t *testing.T) {
	r, ctx, stack, path, teleport := newReloadFixture(t)
	before := ctx.Config()
	layerBefore := stack.Layer("user").Config

	writeFile(t, path, wrongKindTOML)
	rep, err := r.Reload(path)
	if !errors.Is(err, ineffable.ErrConfigRejected) {
		t.Fatalf("Reload error = %v, want ErrConfigRejected", err)
	}
	if !rep.HasErrors() {
		t.Error("report should carry the validation error")
	}
	if ctx.Config() != before {
		t.Error("context config changed after a rejected reload")
	}
	if stack.Layer("user").Config != layerBefore {
		t.Error("layer config not restored after a rejected reload")
	}
	if !pressed(ctx, teleport, source.KeySpace) {
		t.Error("previous bindings should stay live")
	}
}

func TestReloader_DecodeErrorKeepsPrevious(t *testing.T) {
	r, ctx, stack, path, teleport := newReloadFixture(t)
	before := ctx.Config()
	layerBefore := stack.Layer("user").Config

	writeFile(t, path, misspelledTOML)
	rep, err := r.Reload(path)
	if !errors.Is(err, ineffable.ErrConfigRejected) {
		t.Fatalf("Reload error = %v, want ErrConfigRejected", err)
	}
	if len(rep.WithCode(report.UnknownSource)) == 0 {
		t.Errorf("report should name the unknown source:\n%s", rep)
	}
	if ctx.Config() != before {
		t.Error("context config changed after a reload with decode errors")
	}
	if stack.Layer("user").Config != layerBefore {
		t.Error("layer config replaced after a reload with decode errors")
	}
	if !pressed(ctx, teleport, source.KeySpace) {
		t.Error("Space binding lost after a reload with decode errors")
	}
}

func TestReloader_ParseErrorKeepsPrevious(t *testing.T) {
	r, ctx, _, path, _ := newReloadFixture(t)
	before := ctx.Config()

	writeFile(t, path, "[bindings.Player\n")
	if _, err := r.Reload(path); err == nil {
		t.Fatal("Reload of malformed TOML should fail")
	}
	if ctx.Config() != before {
		t.Error("context config changed after a parse error")
	}
}

func TestReloader_UnknownFile(t *testing.T) {
	r, _, _, _, _ := newReloadFixture(t)
	if _, err := r.Reload(filepath.Join(t.TempDir(), "stray.toml")); !errors.Is(err, ErrNoLayer) {
		t.Errorf("Reload(stray) error = %v, want ErrNoLayer", err)
	}
}

func TestReloader_WithWatcher(t *testing.T) {
	r, ctx, _, path, teleport := newReloadFixture(t)

	w := newWatcher(t, WithDebounce(20*time.Millisecond))
	applied := make(chan struct{}, 4)
	w.OnChange(r.Handle)
	w.OnChange(func(Event) { applied <- struct{}{} })
	if err := w.Watch(path); err != nil {
		t.Fatal(err)
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}

	writeFile(t, path, keyATOML)
	select {
	case <-applied:
	case <-time.After(3 * time.Second):
		t.Fatal("reload never happened")
	}
	if !pressed(ctx, teleport, source.KeyA) {
		t.Error("A should teleport after the watched reload")
	}
	if cfg := ctx.Config(); len(cfg.Bindings("Player", "Teleport")) != 1 {
		t.Errorf("Teleport bindings = %d, want 1", len(cfg.Bindings("Player", "Teleport")))
	}
}
