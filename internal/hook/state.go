// Package hook runs Lua scripts that react to action transitions.
//
// A script defines any of the global functions on_pulse, on_activate and
// on_deactivate. Each is called with the group and action name of the
// transition after every frame that produced one:
//
//	function on_pulse(group, action)
//	  if action == "Teleport" then
//	    local x, y = ineffable.value("Player", "Movement")
//	    ineffable.log(string.format("teleport toward %.1f,%.1f", x, y))
//	  end
//	end
//
// Scripts run in a restricted state: the io, os, debug and package
// libraries are not opened and loading code from strings or files is
// disabled.
package hook

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// DefaultTimeout bounds a single script call.
const DefaultTimeout = 50 * time.Millisecond

// ErrStateClosed is returned when using a closed state.
var ErrStateClosed = errors.New("lua state closed")

// State wraps a gopher-lua state opened with the safe libraries only.
// gopher-lua states are not goroutine-safe; State serializes access.
type State struct {
	L *lua.LState

	mu      sync.Mutex
	timeout time.Duration
	closed  bool
}

// NewState creates a restricted Lua state. A timeout of zero disables the
// per-call deadline.
func NewState(timeout time.Duration) *State {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(L)
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
	return &State{L: L, timeout: timeout}
}

func openSafeLibraries(L *lua.LState) {
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.fn))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
}

// DoString executes a chunk of Lua code.
func (s *State) DoString(code string) error {
	return s.run(func() error { return s.L.DoString(code) })
}

// DoFile executes a Lua file.
func (s *State) DoFile(path string) error {
	return s.run(func() error { return s.L.DoFile(path) })
}

// Call calls the global function fn with args. It reports false when fn is
// not defined as a function.
func (s *State) Call(fn string, args ...lua.LValue) (bool, error) {
	var found bool
	err := s.run(func() error {
		v := s.L.GetGlobal(fn)
		f, ok := v.(*lua.LFunction)
		if !ok {
			return nil
		}
		found = true
		return s.L.CallByParam(lua.P{Fn: f, NRet: 0, Protect: true}, args...)
	})
	return found, err
}

// SetModule installs funcs as the fields of the global table name.
func (s *State) SetModule(name string, funcs map[string]lua.LGFunction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.L.SetGlobal(name, s.L.SetFuncs(s.L.NewTable(), funcs))
}

func (s *State) run(fn func() error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}
	if s.timeout > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		s.L.SetContext(ctx)
		defer s.L.RemoveContext()
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// Close releases the Lua state.
func (s *State) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.L.Close()
	s.closed = true
	return nil
}
