package ineffable

import (
	"fmt"
	"sync"
	"time"

	"github.com/dshills/ineffable/internal/action"
	"github.com/dshills/ineffable/internal/config"
	"github.com/dshills/ineffable/internal/config/notify"
	"github.com/dshills/ineffable/internal/input/binding"
	"github.com/dshills/ineffable/internal/input/source"
	"github.com/dshills/ineffable/internal/input/tracker"
	"github.com/dshills/ineffable/internal/logging"
	"github.com/dshills/ineffable/internal/report"
)

// TransitionKind classifies a Transition.
type TransitionKind uint8

const (
	// Pulsed means a Pulse action fired this frame.
	Pulsed TransitionKind = iota
	// Activated means a Continuous action became active this frame.
	Activated
	// Deactivated means a Continuous action stopped being active this frame.
	Deactivated
)

// String returns the transition name.
func (k TransitionKind) String() string {
	switch k {
	case Pulsed:
		return "pulsed"
	case Activated:
		return "activated"
	case Deactivated:
		return "deactivated"
	default:
		return "unknown"
	}
}

// Transition is an edge event produced by the last Update.
type Transition struct {
	Action action.ID
	Kind   TransitionKind
}

// Context is the input engine. It is safe for concurrent use, so a
// configuration watcher may call SetConfig from its own goroutine while
// the game loop calls Update.
type Context struct {
	mu sync.RWMutex

	registry *action.Registry
	cfg      *config.InputConfig
	opts     tracker.Options
	states   map[action.ID]tracker.Tracker

	frame       uint64
	transitions []Transition

	logger   *logging.Logger
	metrics  *Metrics
	notifier *notify.Notifier

	initial *config.InputConfig
}

// Option configures a Context.
type Option func(*Context)

// WithLogger sets the logger. Nil silences the engine.
func WithLogger(l *logging.Logger) Option {
	return func(c *Context) {
		c.logger = logging.OrNull(l)
	}
}

// WithMetrics attaches a metrics collector.
func WithMetrics(m *Metrics) Option {
	return func(c *Context) {
		c.metrics = m
	}
}

// WithNotifier publishes configuration changes to n.
func WithNotifier(n *notify.Notifier) Option {
	return func(c *Context) {
		c.notifier = n
	}
}

// WithConfig applies cfg once the engine is built. A rejected cfg is
// logged and the engine starts with an empty configuration.
func WithConfig(cfg *config.InputConfig) Option {
	return func(c *Context) {
		c.initial = cfg
	}
}

// New creates an engine over reg with an empty configuration. A nil reg
// gets a fresh registry.
func New(reg *action.Registry, opts ...Option) *Context {
	if reg == nil {
		reg = action.NewRegistry()
	}
	c := &Context{
		registry: reg,
		cfg:      config.Empty(),
		states:   make(map[action.ID]tracker.Tracker),
		logger:   logging.Default().WithComponent("ineffable"),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.opts = trackerOptions(c.cfg)
	if c.initial != nil {
		_, _ = c.SetConfigFrom(c.initial, "initial")
		c.initial = nil
	}
	return c
}

// Registry returns the action registry.
func (c *Context) Registry() *action.Registry {
	return c.registry
}

// Metrics returns the attached metrics collector, or nil.
func (c *Context) Metrics() *Metrics {
	return c.metrics
}

// Register adds an action to the registry. Registering an existing action
// with the same kind is a no-op.
func (c *Context) Register(group, name string, kind action.Kind) (action.Meta, error) {
	existed := c.registry.Contains(action.NewID(group, name))
	meta, err := c.registry.Register(group, name, kind)
	if err != nil {
		return meta, err
	}
	if existed {
		c.logger.Warn("action %s registered twice", meta.ID)
	}
	return meta, nil
}

// Config returns the live configuration.
func (c *Context) Config() *config.InputConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg
}

// Frame returns the number of Update calls since the engine was created.
func (c *Context) Frame() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.frame
}

// SetConfig validates cfg and, when it has no errors, makes it the live
// configuration and resets every tracker. The returned report is never
// nil and may carry warnings. When cfg has errors the error wraps both
// ErrConfigRejected and the report, and the previous configuration stays
// live.
func (c *Context) SetConfig(cfg *config.InputConfig) (*report.Report, error) {
	return c.SetConfigFrom(cfg, "")
}

// SetConfigFrom is SetConfig with a source label, such as a file name,
// carried into logs and change notifications.
func (c *Context) SetConfigFrom(cfg *config.InputConfig, origin string) (*report.Report, error) {
	if cfg == nil {
		cfg = config.Empty()
	}
	rep := c.Validate(cfg)
	log := c.logger
	if origin != "" {
		log = log.WithField("source", origin)
	}

	if rep.HasErrors() {
		c.metrics.recordConfig(false)
		rep.Log(log)
		log.Error("input config rejected: %d error(s)", len(rep.Errors()))
		c.notifier.NotifyRejected(cfg, rep, origin)
		return rep, fmt.Errorf("%w: %w", ErrConfigRejected, rep)
	}

	rep.Log(log)

	c.mu.Lock()
	c.cfg = cfg
	c.opts = trackerOptions(cfg)
	c.states = make(map[action.ID]tracker.Tracker)
	for _, meta := range c.registry.All() {
		c.states[meta.ID] = c.newTracker(meta)
	}
	c.transitions = nil
	c.mu.Unlock()

	c.metrics.recordConfig(true)
	log.Info("input config applied: %d action(s), %d warning(s)", cfg.Len(), len(rep.Warnings()))
	c.notifier.NotifyApplied(cfg, rep, origin)
	return rep, nil
}

// Reset returns every tracker to its initial state, as if the live
// configuration had just been applied.
func (c *Context) Reset() {
	c.mu.Lock()
	for _, st := range c.states {
		st.Reset()
	}
	c.transitions = nil
	c.mu.Unlock()
	c.notifier.NotifyReset("reset")
}

func trackerOptions(cfg *config.InputConfig) tracker.Options {
	settings := cfg.Resolved()
	return tracker.Options{
		DoubleClick:     settings.DoubleClickTiming,
		AcceptanceDelay: settings.PostAcceptanceDelay,
		Blockers:        binding.BlockersOf(cfg.AllBindings()),
	}
}

// newTracker must be called with c.mu held.
func (c *Context) newTracker(meta action.Meta) tracker.Tracker {
	return tracker.New(meta.Kind, c.cfg.BindingsFor(meta.ID), c.opts)
}

// Update advances every action by one frame. A nil snap reads every
// source as 0. dt is the time elapsed since the previous Update.
func (c *Context) Update(snap source.Snapshot, dt time.Duration) {
	if snap == nil {
		snap = source.NewFrame()
	}
	start := time.Now()

	c.mu.Lock()
	c.frame++
	c.transitions = nil
	var suppressed uint64
	for _, meta := range c.registry.All() {
		st, ok := c.states[meta.ID]
		if !ok {
			st = c.newTracker(meta)
			c.states[meta.ID] = st
		}
		st.Update(snap, dt)
		suppressed += st.Suppressed()
		c.collect(meta.ID, st)
	}
	transitions := c.transitions
	c.mu.Unlock()

	c.metrics.recordFrame(time.Since(start), transitions, suppressed)
}

func (c *Context) collect(id action.ID, st tracker.Tracker) {
	switch t := st.(type) {
	case *tracker.Pulse:
		if t.JustPulsed() {
			c.transitions = append(c.transitions, Transition{Action: id, Kind: Pulsed})
		}
	case *tracker.Continuous:
		if t.JustActivated() {
			c.transitions = append(c.transitions, Transition{Action: id, Kind: Activated})
		}
		if t.JustDeactivated() {
			c.transitions = append(c.transitions, Transition{Action: id, Kind: Deactivated})
		}
	}
}

// Transitions returns the edge events of the last Update in registration
// order.
func (c *Context) Transitions() []Transition {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Transition, len(c.transitions))
	copy(out, c.transitions)
	return out
}
