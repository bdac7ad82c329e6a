package hook

import (
	"fmt"
	"sync/atomic"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/ineffable/internal/action"
	"github.com/dshills/ineffable/internal/ineffable"
	"github.com/dshills/ineffable/internal/logging"
)

// Script entry points.
const (
	OnPulse      = "on_pulse"
	OnActivate   = "on_activate"
	OnDeactivate = "on_deactivate"
)

// APITable is the global table scripts use to read action state.
const APITable = "ineffable"

func entryPoint(k ineffable.TransitionKind) string {
	switch k {
	case ineffable.Pulsed:
		return OnPulse
	case ineffable.Activated:
		return OnActivate
	case ineffable.Deactivated:
		return OnDeactivate
	default:
		return ""
	}
}

// Runner feeds a context's transitions to Lua scripts.
type Runner struct {
	state    *State
	ctx      *ineffable.Context
	logger   *logging.Logger
	timeout  time.Duration
	calls    atomic.Int64
	failures atomic.Int64
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger for script errors and ineffable.log output.
func WithLogger(l *logging.Logger) Option {
	return func(r *Runner) {
		r.logger = logging.OrNull(l)
	}
}

// WithTimeout bounds every script call. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		if d >= 0 {
			r.timeout = d
		}
	}
}

// NewRunner creates a runner reading action state from ctx.
func NewRunner(ctx *ineffable.Context, opts ...Option) *Runner {
	r := &Runner{
		ctx:     ctx,
		logger:  logging.Default().WithComponent("hook"),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.state = NewState(r.timeout)
	r.state.SetModule(APITable, map[string]lua.LGFunction{
		"value":  r.luaValue,
		"active": r.luaActive,
		"charge": r.luaCharge,
		"frame":  r.luaFrame,
		"log":    r.luaLog,
	})
	return r
}

// LoadFile runs the script at path, defining its entry points.
func (r *Runner) LoadFile(path string) error {
	if err := r.state.DoFile(path); err != nil {
		return fmt.Errorf("load script %s: %w", path, err)
	}
	return nil
}

// LoadString runs code, defining its entry points. name labels errors.
func (r *Runner) LoadString(name, code string) error {
	if err := r.state.DoString(code); err != nil {
		return fmt.Errorf("load script %s: %w", name, err)
	}
	return nil
}

// Dispatch calls the entry point of every transition of the last frame
// and returns the number of calls made. Script errors are logged and
// counted; they never stop the remaining calls.
func (r *Runner) Dispatch() int {
	n := 0
	for _, t := range r.ctx.Transitions() {
		fn := entryPoint(t.Kind)
		if fn == "" {
			continue
		}
		found, err := r.state.Call(fn, lua.LString(t.Action.Group), lua.LString(t.Action.Name))
		if !found && err == nil {
			continue
		}
		n++
		r.calls.Add(1)
		if err != nil {
			r.failures.Add(1)
			r.logger.WithField("action", t.Action).Error("%s failed: %v", fn, err)
		}
	}
	return n
}

// Calls returns the number of entry point calls made.
func (r *Runner) Calls() int64 { return r.calls.Load() }

// Failures returns the number of entry point calls that failed.
func (r *Runner) Failures() int64 { return r.failures.Load() }

// Close releases the Lua state.
func (r *Runner) Close() error {
	return r.state.Close()
}

func checkID(L *lua.LState) action.ID {
	return action.NewID(L.CheckString(1), L.CheckString(2))
}

func (r *Runner) kindOf(L *lua.LState, id action.ID) action.Kind {
	meta, ok := r.ctx.Registry().Lookup(id)
	if !ok {
		L.RaiseError("unknown action %s", id)
	}
	return meta.Kind
}

// value(group, action) returns a number for SingleAxis, x and y for
// DualAxis, and a boolean for Continuous (active) and Pulse (pulsed).
func (r *Runner) luaValue(L *lua.LState) int {
	id := checkID(L)
	switch r.kindOf(L, id) {
	case action.KindSingleAxis:
		v, _ := r.ctx.Direction1D(id)
		L.Push(lua.LNumber(v))
		return 1
	case action.KindDualAxis:
		v, _ := r.ctx.Direction2D(id)
		L.Push(lua.LNumber(v.X))
		L.Push(lua.LNumber(v.Y))
		return 2
	case action.KindContinuous:
		v, _ := r.ctx.IsActive(id)
		L.Push(lua.LBool(v))
		return 1
	default:
		v, _ := r.ctx.JustPulsed(id)
		L.Push(lua.LBool(v))
		return 1
	}
}

// active(group, action) reports whether the action is doing anything this
// frame: held, pulsed, or deflected.
func (r *Runner) luaActive(L *lua.LState) int {
	id := checkID(L)
	var on bool
	switch r.kindOf(L, id) {
	case action.KindSingleAxis:
		v, _ := r.ctx.Direction1D(id)
		on = v != 0
	case action.KindDualAxis:
		v, _ := r.ctx.Direction2D(id)
		on = !v.IsZero()
	case action.KindContinuous:
		on, _ = r.ctx.IsActive(id)
	default:
		on, _ = r.ctx.JustPulsed(id)
	}
	L.Push(lua.LBool(on))
	return 1
}

// charge(group, action) returns how long a Continuous action has been
// active, in seconds.
func (r *Runner) luaCharge(L *lua.LState) int {
	id := checkID(L)
	d, err := r.ctx.ActiveDuration(id)
	if err != nil {
		L.RaiseError("%v", err)
	}
	L.Push(lua.LNumber(d.Seconds()))
	return 1
}

func (r *Runner) luaFrame(L *lua.LState) int {
	L.Push(lua.LNumber(r.ctx.Frame()))
	return 1
}

func (r *Runner) luaLog(L *lua.LState) int {
	r.logger.Info("%s", L.CheckString(1))
	return 0
}
