package config

import (
	"time"

	"github.com/dshills/ineffable/internal/action"
	"github.com/dshills/ineffable/internal/input/binding"
)

// Builder assembles an InputConfig. A Builder stays usable after Build;
// later calls do not affect configurations it already returned.
type Builder struct {
	cfg *InputConfig
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{cfg: Empty()}
}

// DoubleClickTiming sets the double-click window.
func (b *Builder) DoubleClickTiming(d time.Duration) *Builder {
	b.cfg.doubleClick = setting{value: d, set: true}
	return b
}

// PostAcceptanceDelay sets the acceptance delay.
func (b *Builder) PostAcceptanceDelay(d time.Duration) *Builder {
	b.cfg.delay = setting{value: d, set: true}
	return b
}

// Bind appends bindings to group.act. Binding an action with no bindings
// still creates its entry.
func (b *Builder) Bind(group, act string, bindings ...binding.Binding) *Builder {
	existing := b.cfg.bindings[group][act]
	b.cfg.put(group, act, append(existing, bindings...))
	return b
}

// BindID is Bind for an action ID.
func (b *Builder) BindID(id action.ID, bindings ...binding.Binding) *Builder {
	return b.Bind(id.Group, id.Name, bindings...)
}

// Build returns a copy of the configuration assembled so far.
func (b *Builder) Build() *InputConfig {
	return b.cfg.clone()
}

// Pulse binds a typed pulse action. The compiler rejects bindings of any
// other kind.
func (b *Builder) Pulse(h action.Handle[action.Pulse], bindings ...binding.PulseBinding) *Builder {
	for _, pb := range bindings {
		b.BindID(h.ID(), pb)
	}
	return b.ensure(h.ID())
}

// Continuous binds a typed continuous action.
func (b *Builder) Continuous(h action.Handle[action.Continuous], bindings ...binding.ContinuousBinding) *Builder {
	for _, cb := range bindings {
		b.BindID(h.ID(), cb)
	}
	return b.ensure(h.ID())
}

// SingleAxis binds a typed single-axis action.
func (b *Builder) SingleAxis(h action.Handle[action.SingleAxis], bindings ...binding.AxisBinding) *Builder {
	for _, ab := range bindings {
		b.BindID(h.ID(), ab)
	}
	return b.ensure(h.ID())
}

// DualAxis binds a typed dual-axis action.
func (b *Builder) DualAxis(h action.Handle[action.DualAxis], bindings ...binding.DualAxisBinding) *Builder {
	for _, db := range bindings {
		b.BindID(h.ID(), db)
	}
	return b.ensure(h.ID())
}

func (b *Builder) ensure(id action.ID) *Builder {
	if !b.cfg.Has(id.Group, id.Name) {
		b.cfg.put(id.Group, id.Name, nil)
	}
	return b
}
