package config

import (
	"reflect"
	"sort"
	"time"

	"github.com/dshills/ineffable/internal/action"
	"github.com/dshills/ineffable/internal/input/binding"
)

const (
	// DefaultDoubleClickTiming is the double-click window used when no
	// configuration sets one.
	DefaultDoubleClickTiming = 500 * time.Millisecond

	// DefaultPostAcceptanceDelay is the acceptance delay used when no
	// configuration sets one.
	DefaultPostAcceptanceDelay time.Duration = 0
)

type setting struct {
	value time.Duration
	set   bool
}

func (s setting) or(fallback time.Duration) time.Duration {
	if s.set {
		return s.value
	}
	return fallback
}

// InputConfig is an immutable binding configuration. The nil and zero
// values are empty configurations.
type InputConfig struct {
	doubleClick setting
	delay       setting
	bindings    map[string]map[string][]binding.Binding
}

// Empty returns a configuration with no bindings and no settings.
func Empty() *InputConfig {
	return &InputConfig{}
}

// DoubleClickTiming returns the configured double-click window and whether
// it was set.
func (c *InputConfig) DoubleClickTiming() (time.Duration, bool) {
	if c == nil {
		return 0, false
	}
	return c.doubleClick.value, c.doubleClick.set
}

// PostAcceptanceDelay returns the configured acceptance delay and whether
// it was set.
func (c *InputConfig) PostAcceptanceDelay() (time.Duration, bool) {
	if c == nil {
		return 0, false
	}
	return c.delay.value, c.delay.set
}

// Settings are the effective timing values of a configuration.
type Settings struct {
	DoubleClickTiming   time.Duration
	PostAcceptanceDelay time.Duration
}

// Resolved returns the effective settings, filling unset values with
// defaults.
func (c *InputConfig) Resolved() Settings {
	if c == nil {
		return Settings{DoubleClickTiming: DefaultDoubleClickTiming, PostAcceptanceDelay: DefaultPostAcceptanceDelay}
	}
	return Settings{
		DoubleClickTiming:   c.doubleClick.or(DefaultDoubleClickTiming),
		PostAcceptanceDelay: c.delay.or(DefaultPostAcceptanceDelay),
	}
}

// Bindings returns a copy of the bindings of group.act, or nil.
func (c *InputConfig) Bindings(group, act string) []binding.Binding {
	if c == nil {
		return nil
	}
	list, ok := c.bindings[group][act]
	if !ok {
		return nil
	}
	out := make([]binding.Binding, len(list))
	copy(out, list)
	return out
}

// BindingsFor returns a copy of the bindings of id.
func (c *InputConfig) BindingsFor(id action.ID) []binding.Binding {
	return c.Bindings(id.Group, id.Name)
}

// Has reports whether the configuration has an entry for group.act.
func (c *InputConfig) Has(group, act string) bool {
	if c == nil {
		return false
	}
	_, ok := c.bindings[group][act]
	return ok
}

// HasGroup reports whether the configuration binds any action of group.
func (c *InputConfig) HasGroup(group string) bool {
	if c == nil {
		return false
	}
	_, ok := c.bindings[group]
	return ok
}

// Groups returns the group names in sorted order.
func (c *InputConfig) Groups() []string {
	if c == nil {
		return nil
	}
	out := make([]string, 0, len(c.bindings))
	for g := range c.bindings {
		out = append(out, g)
	}
	sort.Strings(out)
	return out
}

// Actions returns the action names of group in sorted order.
func (c *InputConfig) Actions(group string) []string {
	if c == nil {
		return nil
	}
	acts := c.bindings[group]
	out := make([]string, 0, len(acts))
	for a := range acts {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}

// Each calls fn for every entry in sorted group, then action order. The
// slice passed to fn must not be modified.
func (c *InputConfig) Each(fn func(group, act string, bindings []binding.Binding)) {
	for _, g := range c.Groups() {
		for _, a := range c.Actions(g) {
			fn(g, a, c.bindings[g][a])
		}
	}
}

// Len returns the number of (group, action) entries.
func (c *InputConfig) Len() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, acts := range c.bindings {
		n += len(acts)
	}
	return n
}

// AllBindings returns every binding in Each order.
func (c *InputConfig) AllBindings() []binding.Binding {
	var out []binding.Binding
	c.Each(func(_, _ string, bs []binding.Binding) {
		out = append(out, bs...)
	})
	return out
}

// Equal reports whether two configurations have the same settings and
// bindings.
func (c *InputConfig) Equal(o *InputConfig) bool {
	if c == nil {
		c = Empty()
	}
	if o == nil {
		o = Empty()
	}
	if c.doubleClick != o.doubleClick || c.delay != o.delay {
		return false
	}
	if c.Len() != o.Len() {
		return false
	}
	for g, acts := range c.bindings {
		for a, list := range acts {
			other, ok := o.bindings[g][a]
			if !ok || !reflect.DeepEqual(list, other) {
				return false
			}
		}
	}
	return true
}

// clone returns a shallow structural copy; binding slices are copied so
// the result can be extended without touching c.
func (c *InputConfig) clone() *InputConfig {
	out := &InputConfig{bindings: make(map[string]map[string][]binding.Binding)}
	if c == nil {
		return out
	}
	out.doubleClick = c.doubleClick
	out.delay = c.delay
	for g, acts := range c.bindings {
		m := make(map[string][]binding.Binding, len(acts))
		for a, list := range acts {
			m[a] = append([]binding.Binding(nil), list...)
		}
		out.bindings[g] = m
	}
	return out
}

func (c *InputConfig) put(group, act string, list []binding.Binding) {
	if c.bindings == nil {
		c.bindings = make(map[string]map[string][]binding.Binding)
	}
	acts, ok := c.bindings[group]
	if !ok {
		acts = make(map[string][]binding.Binding)
		c.bindings[group] = acts
	}
	acts[act] = list
}
