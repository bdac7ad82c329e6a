package ineffable

import (
	"slices"
	"time"

	"github.com/dshills/ineffable/internal/action"
	"github.com/dshills/ineffable/internal/input/binding"
	"github.com/dshills/ineffable/internal/input/tracker"
)

// lookup returns the tracker of id after checking that its kind is one of
// want. The caller must hold c.mu for reading. The tracker is nil when
// the action was registered after the last Update.
func (c *Context) lookup(op string, id action.ID, want ...action.Kind) (tracker.Tracker, error) {
	meta, ok := c.registry.Lookup(id)
	if !ok {
		return nil, &QueryError{Op: op, Action: id, Err: ErrUnknownAction}
	}
	if !slices.Contains(want, meta.Kind) {
		return nil, &QueryError{Op: op, Action: id, Want: want, Got: meta.Kind, Err: ErrKindMismatch}
	}
	return c.states[id], nil
}

// Value returns the current value of an axis action.
func (c *Context) Value(id action.ID) (binding.Value, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	st, err := c.lookup("value", id, action.KindSingleAxis, action.KindDualAxis)
	if err != nil {
		return binding.Value{}, err
	}
	switch t := st.(type) {
	case *tracker.Axis:
		return binding.Value{Kind: action.KindSingleAxis, Axis: t.Value()}, nil
	case *tracker.DualAxis:
		return binding.Value{Kind: action.KindDualAxis, Vec: t.Value()}, nil
	}
	meta, _ := c.registry.Lookup(id)
	return binding.Value{Kind: meta.Kind}, nil
}

// Direction1D returns the value of a SingleAxis action.
func (c *Context) Direction1D(id action.ID) (float64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	st, err := c.lookup("direction 1D", id, action.KindSingleAxis)
	if err != nil {
		return 0, err
	}
	if t, ok := st.(*tracker.Axis); ok {
		return t.Value(), nil
	}
	return 0, nil
}

// Direction2D returns the value of a DualAxis action.
func (c *Context) Direction2D(id action.ID) (binding.Vec2, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	st, err := c.lookup("direction 2D", id, action.KindDualAxis)
	if err != nil {
		return binding.Vec2{}, err
	}
	if t, ok := st.(*tracker.DualAxis); ok {
		return t.Value(), nil
	}
	return binding.Vec2{}, nil
}

func (c *Context) continuous(op string, id action.ID) (*tracker.Continuous, error) {
	st, err := c.lookup(op, id, action.KindContinuous)
	if err != nil {
		return nil, err
	}
	t, _ := st.(*tracker.Continuous)
	return t, nil
}

// IsActive reports whether a Continuous action is active.
func (c *Context) IsActive(id action.ID) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, err := c.continuous("is active", id)
	if t == nil {
		return false, err
	}
	return t.Active(), nil
}

// JustActivated reports whether a Continuous action became active during
// the last Update.
func (c *Context) JustActivated(id action.ID) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, err := c.continuous("just activated", id)
	if t == nil {
		return false, err
	}
	return t.JustActivated(), nil
}

// JustDeactivated reports whether a Continuous action stopped being active
// during the last Update.
func (c *Context) JustDeactivated(id action.ID) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, err := c.continuous("just deactivated", id)
	if t == nil {
		return false, err
	}
	return t.JustDeactivated(), nil
}

// ActiveDuration returns how long a Continuous action has been active
// without interruption, or 0 when it is inactive.
func (c *Context) ActiveDuration(id action.ID) (time.Duration, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, err := c.continuous("active duration", id)
	if t == nil {
		return 0, err
	}
	return t.ActiveDuration(), nil
}

// JustPulsed reports whether a Pulse action fired during the last Update.
func (c *Context) JustPulsed(id action.ID) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	st, err := c.lookup("just pulsed", id, action.KindPulse)
	if err != nil {
		return false, err
	}
	if t, ok := st.(*tracker.Pulse); ok {
		return t.JustPulsed(), nil
	}
	return false, nil
}

// The typed queries below take handles whose kind was fixed at definition,
// so the only possible failure is a handle from another registry. Such
// handles read as inactive.

// Axis1D returns the value of a SingleAxis action.
func (c *Context) Axis1D(h action.Handle[action.SingleAxis]) float64 {
	v, _ := c.Direction1D(h.ID())
	return v
}

// Axis2D returns the value of a DualAxis action.
func (c *Context) Axis2D(h action.Handle[action.DualAxis]) binding.Vec2 {
	v, _ := c.Direction2D(h.ID())
	return v
}

// Active reports whether a Continuous action is active.
func (c *Context) Active(h action.Handle[action.Continuous]) bool {
	v, _ := c.IsActive(h.ID())
	return v
}

// Charge returns how long a Continuous action has been active.
func (c *Context) Charge(h action.Handle[action.Continuous]) time.Duration {
	v, _ := c.ActiveDuration(h.ID())
	return v
}

// Pulsed reports whether a Pulse action fired during the last Update.
func (c *Context) Pulsed(h action.Handle[action.Pulse]) bool {
	v, _ := c.JustPulsed(h.ID())
	return v
}
