// Package main is a small ebiten game driven entirely by ineffable actions.
// A dot moves with the Player.Move axis, teleports to the mirrored position
// on Player.Teleport and doubles its speed while Player.Sprint is active.
// Bindings come from built-in defaults, optionally overridden by a file that
// is reloaded when it changes.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image/color"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/ineffable/internal/action"
	"github.com/dshills/ineffable/internal/config"
	"github.com/dshills/ineffable/internal/config/layer"
	"github.com/dshills/ineffable/internal/config/loader"
	"github.com/dshills/ineffable/internal/config/watcher"
	device "github.com/dshills/ineffable/internal/device/ebiten"
	"github.com/dshills/ineffable/internal/hook"
	"github.com/dshills/ineffable/internal/ineffable"
	"github.com/dshills/ineffable/internal/input/binding"
	"github.com/dshills/ineffable/internal/input/source"
	"github.com/dshills/ineffable/internal/logging"
)

const (
	screenWidth  = 640
	screenHeight = 480
	speed        = 160.0
	radius       = 12.0
	flashTicks   = 10
)

var (
	colorIdle   = colorful.Color{R: 0x3e / 255.0, G: 0x63 / 255.0, B: 0xdd / 255.0}
	colorSprint = colorful.Color{R: 0xe5 / 255.0, G: 0x48 / 255.0, B: 0x4d / 255.0}
	colorBack   = color.RGBA{0x18, 0x19, 0x1d, 0xff}
)

type actions struct {
	move     action.Handle[action.DualAxis]
	zoom     action.Handle[action.SingleAxis]
	sprint   action.Handle[action.Continuous]
	teleport action.Handle[action.Pulse]
	quit     action.Handle[action.Pulse]
}

func defineActions(reg *action.Registry) actions {
	return actions{
		move:     action.MustDefine[action.DualAxis](reg, "Player", "Move"),
		zoom:     action.MustDefine[action.SingleAxis](reg, "Player", "Zoom"),
		sprint:   action.MustDefine[action.Continuous](reg, "Player", "Sprint"),
		teleport: action.MustDefine[action.Pulse](reg, "Player", "Teleport"),
		quit:     action.MustDefine[action.Pulse](reg, "Game", "Quit"),
	}
}

func defaults(a actions) *config.InputConfig {
	return config.NewBuilder().
		DualAxis(a.move,
			binding.Dual(
				binding.AxisHoldOf(binding.Any(source.KeyA, source.KeyLeft), binding.Any(source.KeyD, source.KeyRight)),
				binding.AxisHoldOf(binding.Any(source.KeyS, source.KeyDown), binding.Any(source.KeyW, source.KeyUp)),
			),
			binding.Dual(binding.Analog(source.AxisLeftStickX), binding.Analog(source.AxisLeftStickY)),
		).
		SingleAxis(a.zoom, binding.Analog(source.AxisScrollWheelY).WithSensitivity(0.1)).
		Continuous(a.sprint,
			binding.Hold(binding.Any(source.KeyShiftLeft)),
			binding.Toggle(binding.JustPressed(binding.Any(source.GamepadLeftThumb))),
		).
		Pulse(a.teleport, binding.JustPressed(binding.Any(source.KeySpace, source.GamepadSouth))).
		Pulse(a.quit, binding.JustPressed(binding.Any(source.KeyEscape, source.GamepadStart))).
		Build()
}

type game struct {
	ctx    *ineffable.Context
	poller *device.Poller
	runner *hook.Runner
	act    actions

	x, y  float64
	scale float64
	flash int
}

func (g *game) Update() error {
	dt := time.Second / time.Duration(ebiten.TPS())
	g.ctx.Update(g.poller.Snapshot(), dt)
	if g.runner != nil {
		g.runner.Dispatch()
	}

	if g.ctx.Pulsed(g.act.quit) {
		return ebiten.Termination
	}

	v := g.ctx.Axis2D(g.act.move)
	step := speed * dt.Seconds()
	if g.ctx.Active(g.act.sprint) {
		step *= 2
	}
	g.x = clamp(g.x+v.X*step, 0, screenWidth)
	g.y = clamp(g.y-v.Y*step, 0, screenHeight)

	if g.ctx.Pulsed(g.act.teleport) {
		g.x, g.y = screenWidth-g.x, screenHeight-g.y
		g.flash = flashTicks
	} else if g.flash > 0 {
		g.flash--
	}

	g.scale = clamp(g.scale+g.ctx.Axis1D(g.act.zoom), 0.5, 3)
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(colorBack)

	charge := g.ctx.Charge(g.act.sprint).Seconds()
	c := colorIdle.BlendLab(colorSprint, min(charge, 1)).Clamped()
	if g.flash > 0 {
		c = c.BlendRgb(colorful.Color{R: 1, G: 1, B: 1}, float64(g.flash)/flashTicks)
	}
	vector.DrawFilledCircle(screen, float32(g.x), float32(g.y), float32(radius*g.scale), c, true)

	snap := g.ctx.Metrics().Snapshot()
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"move %+.2f %+.2f  sprint %.1fs  zoom %.2f\nframe %d  pulses %d  config reloads %d\nEsc quits",
		g.ctx.Axis2D(g.act.move).X, g.ctx.Axis2D(g.act.move).Y, charge, g.scale,
		snap.Frames, snap.Pulses, snap.ConfigsApplied))
}

func (g *game) Layout(int, int) (int, int) {
	return screenWidth, screenHeight
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "binding file layered over the built-in defaults")
	scriptPath := flag.String("script", "", "Lua script with on_pulse/on_activate/on_deactivate hooks")
	flag.Parse()

	logger := logging.New(logging.Config{Level: logging.LevelInfo, Output: os.Stderr, Prefix: "play"})
	if l, ok := loader.NewEnvLoader(loader.EnvPrefix).LogLevel(); ok {
		logger.SetLevel(l)
	}

	reg := action.NewRegistry()
	act := defineActions(reg)

	stack := layer.NewStack()
	stack.AddLayer(layer.NewSourceLayer(layer.SourceBuiltin, defaults(act)))

	l := loader.New(nil)
	if *configPath != "" {
		cfg, rep, err := l.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		if rep.HasErrors() {
			fmt.Fprintf(os.Stderr, "Error: %s rejected\n%s", *configPath, rep)
			return 1
		}
		rep.Log(logger)
		user := layer.NewSourceLayer(layer.SourceUser, cfg)
		user.Path = *configPath
		stack.AddLayer(user)
	}

	ctx := ineffable.New(reg,
		ineffable.WithLogger(logger.WithComponent("ineffable")),
		ineffable.WithMetrics(ineffable.NewMetrics()),
	)
	if rep, err := ctx.SetConfigFrom(stack.Effective(), "startup"); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n%s", err, rep)
		return 1
	}

	g := &game{
		ctx:    ctx,
		poller: device.New(),
		act:    act,
		x:      screenWidth / 2,
		y:      screenHeight / 2,
		scale:  1,
	}

	if *scriptPath != "" {
		g.runner = hook.NewRunner(ctx, hook.WithLogger(logger.WithComponent("script")))
		defer g.runner.Close()
		if err := g.runner.LoadFile(*scriptPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	if *configPath != "" {
		w, err := watcher.New(watcher.WithLogger(logger.WithComponent("watcher")))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer w.Stop()
		w.OnChange(watcher.NewReloader(l, stack, ctx, logger).Handle)
		if err := w.Watch(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		if err := w.Start(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("ineffable play")
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
