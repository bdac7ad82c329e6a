package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"

	"github.com/dshills/ineffable/internal/action"
	"github.com/dshills/ineffable/internal/config"
	"github.com/dshills/ineffable/internal/config/layer"
	"github.com/dshills/ineffable/internal/config/loader"
	"github.com/dshills/ineffable/internal/config/notify"
	"github.com/dshills/ineffable/internal/config/watcher"
	"github.com/dshills/ineffable/internal/device/terminal"
	"github.com/dshills/ineffable/internal/hook"
	"github.com/dshills/ineffable/internal/ineffable"
	"github.com/dshills/ineffable/internal/input/binding"
	"github.com/dshills/ineffable/internal/input/source"
	"github.com/dshills/ineffable/internal/logging"
)

// DefaultConfigFile is used by demo when -config is not given and the file
// exists in the working directory.
const DefaultConfigFile = "input.toml"

const (
	flashFrames = 12
	gaugeWidth  = 21
	logLines    = 6
)

// demoDefaults are the shipped bindings of the demo actions.
func demoDefaults() *config.InputConfig {
	return config.NewBuilder().
		Bind("Demo", "Move", binding.Dual(
			binding.AxisHoldOf(binding.Any(source.KeyA, source.KeyLeft), binding.Any(source.KeyD, source.KeyRight)),
			binding.AxisHoldOf(binding.Any(source.KeyS, source.KeyDown), binding.Any(source.KeyW, source.KeyUp)),
		)).
		Bind("Demo", "Jump", binding.JustPressed(binding.Any(source.KeySpace))).
		Bind("Demo", "Dash", binding.DoubleClick(binding.Any(source.KeyF))).
		Bind("Demo", "Crouch", binding.Toggle(binding.JustPressed(binding.Any(source.KeyC)))).
		Bind("Demo", "Zoom", binding.Analog(source.AxisScrollWheelY)).
		Build()
}

func runDemo(args []string, _, stderr io.Writer) int {
	fs := flag.NewFlagSet("demo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "binding file layered over the demo defaults (default "+DefaultConfigFile+" if present)")
	registryPath := fs.String("registry", "", "file declaring actions; inferred from the bindings when empty")
	scriptPath := fs.String("script", "", "Lua script with on_pulse/on_activate/on_deactivate hooks")
	holdFor := fs.Duration("hold", terminal.DefaultHoldFor, "how long a key stays held after its last terminal event")
	tps := fs.Int("tps", 60, "updates per second")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: ineffable demo [-config file] [-registry file] [-script file.lua]\n\n")
		fmt.Fprintf(stderr, "Edits to the config file are applied live. Press Ctrl+C to quit.\n\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if *tps <= 0 {
		fmt.Fprintf(stderr, "Error: -tps must be positive\n")
		return exitUsage
	}
	if *configPath == "" && fileExists(DefaultConfigFile) {
		*configPath = DefaultConfigFile
	}

	tail := newLogTail(logLines)
	logger := logging.New(logging.Config{Level: logging.LevelInfo, Output: tail, Prefix: "demo"})
	if l, ok := loader.NewEnvLoader(loader.EnvPrefix).LogLevel(); ok {
		logger.SetLevel(l)
	}

	l := loader.New(nil)
	stack, err := demoStack(l, *configPath, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if errors.Is(err, ineffable.ErrConfigRejected) {
			return exitInvalid
		}
		return exitUsage
	}

	reg, regRep, err := loadRegistry(l, *registryPath, stack.Effective())
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}
	if regRep.HasErrors() {
		newPrinter(stderr).printReport(regRep)
		return exitInvalid
	}

	notifier := notify.New()
	defer notifier.Close()
	ctx := ineffable.New(reg,
		ineffable.WithLogger(logger.WithComponent("ineffable")),
		ineffable.WithMetrics(ineffable.NewMetrics()),
		ineffable.WithNotifier(notifier),
	)
	if rep, err := ctx.SetConfigFrom(stack.Effective(), "startup"); err != nil {
		newPrinter(stderr).printReport(rep)
		return exitInvalid
	}

	var runner *hook.Runner
	if *scriptPath != "" {
		runner = hook.NewRunner(ctx, hook.WithLogger(logger.WithComponent("script")))
		defer runner.Close()
		if err := runner.LoadFile(*scriptPath); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitUsage
		}
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *configPath != "" {
		w, err := watcher.New(watcher.WithLogger(logger.WithComponent("watcher")))
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitUsage
		}
		defer w.Stop()
		w.OnChange(watcher.NewReloader(l, stack, ctx, logger).Handle)
		if err := w.Watch(*configPath); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitUsage
		}
		if err := w.Start(runCtx); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitUsage
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to create terminal: %v\n", err)
		return exitUsage
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(stderr, "Error: failed to initialize terminal: %v\n", err)
		return exitUsage
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.EnableFocus()

	d := newDashboard(screen, ctx, tail)
	notifier.Subscribe(d.onChange)

	adapter := terminal.New(terminal.WithHoldFor(*holdFor))
	runCtx, cancel := context.WithCancel(runCtx)
	defer cancel()
	go pollEvents(screen, adapter, cancel)

	ticker := time.NewTicker(time.Second / time.Duration(*tps))
	defer ticker.Stop()
	last := time.Now()
	for {
		select {
		case <-runCtx.Done():
			return exitOK
		case now := <-ticker.C:
			ctx.Update(adapter.Snapshot(), now.Sub(last))
			last = now
			if runner != nil {
				runner.Dispatch()
			}
			d.draw()
		}
	}
}

// demoStack layers the demo defaults, INEFFABLE_* settings and the user's
// file.
func demoStack(l *loader.Loader, path string, stderr io.Writer) (*layer.Stack, error) {
	stack := layer.NewStack()
	stack.AddLayer(layer.NewSourceLayer(layer.SourceBuiltin, demoDefaults()))

	envCfg, envRep := loader.NewEnvLoader(loader.EnvPrefix).Settings()
	if !envRep.Empty() {
		newPrinter(stderr).printReport(envRep)
	}
	stack.AddLayer(layer.NewSourceLayer(layer.SourceEnv, envCfg))

	if path == "" {
		return stack, nil
	}
	cfg, rep, err := l.Load(path)
	if err != nil {
		return nil, err
	}
	if !rep.Empty() {
		newPrinter(stderr).printReport(rep)
	}
	if rep.HasErrors() {
		return nil, fmt.Errorf("%w: %s", ineffable.ErrConfigRejected, path)
	}
	user := layer.NewSourceLayer(layer.SourceUser, cfg)
	user.Path = path
	stack.AddLayer(user)
	return stack, nil
}

func pollEvents(screen tcell.Screen, adapter *terminal.Adapter, quit context.CancelFunc) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		if k, ok := ev.(*tcell.EventKey); ok && k.Key() == tcell.KeyCtrlC {
			quit()
			return
		}
		if _, ok := ev.(*tcell.EventResize); ok {
			screen.Sync()
		}
		adapter.HandleEvent(ev)
	}
}

// logTail keeps the last lines written to it.
type logTail struct {
	mu    sync.Mutex
	max   int
	lines []string
}

func newLogTail(n int) *logTail {
	return &logTail{max: n}
}

func (t *logTail) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		t.lines = append(t.lines, line)
	}
	if len(t.lines) > t.max {
		t.lines = t.lines[len(t.lines)-t.max:]
	}
	return len(p), nil
}

func (t *logTail) Lines() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.lines...)
}

type dashboard struct {
	screen tcell.Screen
	ctx    *ineffable.Context
	logs   *logTail
	flash  map[action.ID]uint64

	mu     sync.Mutex
	status string
	bad    bool
}

func newDashboard(screen tcell.Screen, ctx *ineffable.Context, logs *logTail) *dashboard {
	return &dashboard{
		screen: screen,
		ctx:    ctx,
		logs:   logs,
		flash:  make(map[action.ID]uint64),
		status: "waiting for input",
	}
}

func (d *dashboard) onChange(ch notify.Change) {
	d.mu.Lock()
	defer d.mu.Unlock()
	switch ch.Type {
	case notify.ChangeApplied:
		d.status = fmt.Sprintf("applied %s: %d warning(s)", ch.Source, len(ch.Report.Warnings()))
		d.bad = false
	case notify.ChangeRejected:
		d.status = fmt.Sprintf("rejected %s: %d error(s), previous bindings kept", ch.Source, len(ch.Report.Errors()))
		d.bad = true
	}
}

var (
	styleLabel = tcell.StyleDefault.Bold(true)
	styleDim   = tcell.StyleDefault.Foreground(tcellColor(colorDim))
	styleOn    = tcell.StyleDefault.Foreground(tcellColor(colorOK)).Bold(true)
	styleErr   = tcell.StyleDefault.Foreground(tcellColor(colorError))
)

func (d *dashboard) draw() {
	s := d.screen
	s.Clear()

	metas := d.ctx.Registry().All()
	width := 0
	for _, m := range metas {
		width = max(width, displayWidth(m.ID.String()))
	}

	drawText(s, 0, 0, styleLabel, "ineffable demo")
	drawText(s, 16, 0, styleDim, "Ctrl+C quits")

	frame := d.ctx.Frame()
	y := 2
	for _, m := range metas {
		x := drawText(s, 1, y, styleLabel, pad(m.ID.String(), width))
		x = drawText(s, x+2, y, styleDim, pad(m.Kind.String(), 10))
		d.drawValue(x+1, y, m, frame)
		y++
	}

	y++
	snap := d.ctx.Metrics().Snapshot()
	drawText(s, 1, y, styleDim, fmt.Sprintf("frame %d  pulses %d  activations %d  suppressed %d  update %s",
		snap.Frames, snap.Pulses, snap.Activations, snap.Suppressed, snap.LastUpdate))
	y++

	d.mu.Lock()
	status, bad := d.status, d.bad
	d.mu.Unlock()
	style := styleOn
	if bad {
		style = styleErr
	}
	drawText(s, 1, y, style, status)
	y += 2

	for _, line := range d.logs.Lines() {
		drawText(s, 1, y, styleDim, line)
		y++
	}
	s.Show()
}

func (d *dashboard) drawValue(x, y int, m action.Meta, frame uint64) {
	s := d.screen
	switch m.Kind {
	case action.KindPulse:
		if ok, _ := d.ctx.JustPulsed(m.ID); ok {
			d.flash[m.ID] = frame
		}
		if at, ok := d.flash[m.ID]; ok && frame-at < flashFrames {
			drawText(s, x, y, styleOn, "● pulse")
		} else {
			drawText(s, x, y, styleDim, "○")
		}
	case action.KindContinuous:
		on, _ := d.ctx.IsActive(m.ID)
		if on {
			charge, _ := d.ctx.ActiveDuration(m.ID)
			drawText(s, x, y, styleOn, fmt.Sprintf("● on %.2fs", charge.Seconds()))
		} else {
			drawText(s, x, y, styleDim, "○ off")
		}
	case action.KindSingleAxis:
		v, _ := d.ctx.Direction1D(m.ID)
		drawGauge(s, x, y, v)
	case action.KindDualAxis:
		v, _ := d.ctx.Direction2D(m.ID)
		x = drawText(s, x, y, styleDim, "x ")
		x = drawGauge(s, x, y, v.X)
		x = drawText(s, x+2, y, styleDim, "y ")
		drawGauge(s, x, y, v.Y)
	}
}

// drawGauge draws a bar growing from the centre toward the sign of v,
// colored from cool to hot by magnitude.
func drawGauge(s tcell.Screen, x, y int, v float64) int {
	half := gaugeWidth / 2
	n := int(math.Round(math.Min(math.Abs(v), 1) * float64(half)))
	cells := []rune(strings.Repeat("─", gaugeWidth))
	cells[half] = '┼'
	for i := 1; i <= n; i++ {
		if v < 0 {
			cells[half-i] = '█'
		} else {
			cells[half+i] = '█'
		}
	}
	c := colorAccent.BlendLab(colorError, math.Min(math.Abs(v), 1)).Clamped()
	x = drawText(s, x, y, tcell.StyleDefault.Foreground(tcellColor(c)), string(cells))
	return drawText(s, x+1, y, styleDim, fmt.Sprintf("%+.2f", v))
}

// drawText writes text one grapheme cluster at a time and returns the
// column after it.
func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) int {
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		r := g.Runes()
		s.SetContent(x, y, r[0], r[1:], style)
		x += g.Width()
	}
	return x
}

func tcellColor(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
