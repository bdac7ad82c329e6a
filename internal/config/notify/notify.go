// Package notify delivers input configuration lifecycle events.
//
// A Notifier fans out Changes to observers whenever a configuration is
// applied to an engine, rejected by validation, or the engine's trackers
// are reset. Observers may subscribe to every change or only to changes
// that touch a particular action group.
package notify

import (
	"sync"

	"github.com/dshills/ineffable/internal/config"
	"github.com/dshills/ineffable/internal/report"
)

// ChangeType represents the type of configuration change.
type ChangeType int

const (
	// ChangeApplied indicates a configuration passed validation and is live.
	ChangeApplied ChangeType = iota

	// ChangeRejected indicates a configuration failed validation. The
	// previous configuration remains live.
	ChangeRejected

	// ChangeReset indicates all trackers were cleared without a new config.
	ChangeReset
)

// String returns the change type name.
func (c ChangeType) String() string {
	switch c {
	case ChangeApplied:
		return "applied"
	case ChangeRejected:
		return "rejected"
	case ChangeReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Change represents a configuration lifecycle event.
type Change struct {
	// Type is the type of change.
	Type ChangeType

	// Config is the configuration that was applied or rejected.
	// Nil for resets.
	Config *config.InputConfig

	// Report holds the validation findings. It may carry warnings even
	// for applied configurations.
	Report *report.Report

	// Source identifies where the change came from, such as a file path.
	Source string
}

// Groups returns the action groups bound by the change's configuration.
func (c Change) Groups() []string {
	if c.Config == nil {
		return nil
	}
	return c.Config.Groups()
}

// touches reports whether the change concerns group. Resets concern
// every group.
func (c Change) touches(group string) bool {
	if c.Type == ChangeReset {
		return true
	}
	if c.Config != nil && c.Config.HasGroup(group) {
		return true
	}
	if c.Report != nil {
		for _, p := range c.Report.Problems {
			if p.Group == group {
				return true
			}
		}
	}
	return false
}

// Observer is called when configuration changes occur.
type Observer func(change Change)

// Subscription represents an active observer subscription.
type Subscription struct {
	id       uint64
	notifier *Notifier
}

// Unsubscribe removes this subscription.
func (s *Subscription) Unsubscribe() {
	if s.notifier != nil {
		s.notifier.unsubscribe(s.id)
	}
}

// Notifier manages configuration change subscriptions.
type Notifier struct {
	mu sync.RWMutex

	// Observers that receive all changes
	globalObservers map[uint64]Observer

	// Observers keyed by action group
	groupObservers map[string]map[uint64]Observer

	nextID uint64

	async  bool
	buffer chan Change
	done   chan struct{}
	wg     sync.WaitGroup
	closed bool
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithAsync enables asynchronous notification delivery.
func WithAsync(bufferSize int) Option {
	return func(n *Notifier) {
		if bufferSize > 0 {
			n.async = true
			n.buffer = make(chan Change, bufferSize)
		}
	}
}

// New creates a new Notifier.
func New(opts ...Option) *Notifier {
	n := &Notifier{
		globalObservers: make(map[uint64]Observer),
		groupObservers:  make(map[string]map[uint64]Observer),
		done:            make(chan struct{}),
	}

	for _, opt := range opts {
		opt(n)
	}

	if n.async {
		n.wg.Add(1)
		go n.processAsync()
	}

	return n
}

// Subscribe registers an observer for all changes.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.globalObservers[id] = observer

	return &Subscription{id: id, notifier: n}
}

// SubscribeGroup registers an observer for changes whose configuration or
// report mentions group. Resets are delivered to every group observer.
func (n *Notifier) SubscribeGroup(group string, observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++

	if n.groupObservers[group] == nil {
		n.groupObservers[group] = make(map[uint64]Observer)
	}
	n.groupObservers[group][id] = observer

	return &Subscription{id: id, notifier: n}
}

// Notify sends a change notification to all relevant observers.
// A nil Notifier ignores the call.
func (n *Notifier) Notify(change Change) {
	if n == nil {
		return
	}
	n.mu.RLock()
	if n.closed {
		n.mu.RUnlock()
		return
	}
	n.mu.RUnlock()

	if n.async {
		select {
		case n.buffer <- change:
		case <-n.done:
		}
		return
	}

	n.deliverChange(change)
}

// NotifyApplied is a convenience method for applied configurations.
func (n *Notifier) NotifyApplied(cfg *config.InputConfig, rep *report.Report, source string) {
	n.Notify(Change{Type: ChangeApplied, Config: cfg, Report: rep, Source: source})
}

// NotifyRejected is a convenience method for rejected configurations.
func (n *Notifier) NotifyRejected(cfg *config.InputConfig, rep *report.Report, source string) {
	n.Notify(Change{Type: ChangeRejected, Config: cfg, Report: rep, Source: source})
}

// NotifyReset is a convenience method for tracker resets.
func (n *Notifier) NotifyReset(source string) {
	n.Notify(Change{Type: ChangeReset, Source: source})
}

// Close shuts down the notifier. It is safe to call Close multiple times.
func (n *Notifier) Close() {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.closed = true
	n.mu.Unlock()

	close(n.done)
	n.wg.Wait()
}

func (n *Notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	delete(n.globalObservers, id)

	for group, observers := range n.groupObservers {
		delete(observers, id)
		if len(observers) == 0 {
			delete(n.groupObservers, group)
		}
	}
}

func (n *Notifier) deliverChange(change Change) {
	n.mu.RLock()

	var observers []Observer
	for _, obs := range n.globalObservers {
		observers = append(observers, obs)
	}
	for group, groupObs := range n.groupObservers {
		if !change.touches(group) {
			continue
		}
		for _, obs := range groupObs {
			observers = append(observers, obs)
		}
	}

	n.mu.RUnlock()

	// Call observers outside the lock
	for _, obs := range observers {
		obs(change)
	}
}

func (n *Notifier) processAsync() {
	defer n.wg.Done()

	for {
		select {
		case change := <-n.buffer:
			n.deliverChange(change)
		case <-n.done:
			// Drain remaining buffered changes
			for {
				select {
				case change := <-n.buffer:
					n.deliverChange(change)
				default:
					return
				}
			}
		}
	}
}
