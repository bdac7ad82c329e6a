package tracker

import "time"

// Gate enforces the minimum interval between two accepted activations.
// A zero delay admits everything.
type Gate struct {
	delay      time.Duration
	elapsed    time.Duration
	armed      bool
	suppressed uint64
}

// NewGate returns a gate with the given delay.
func NewGate(delay time.Duration) Gate {
	return Gate{delay: delay}
}

// Advance adds dt to the time since the last accepted activation.
func (g *Gate) Advance(dt time.Duration) {
	if dt > 0 && g.armed {
		g.elapsed += dt
	}
}

// Admit reports whether an activation is accepted now. An accepted
// activation restarts the interval; a rejected one is dropped and counted.
func (g *Gate) Admit() bool {
	if g.armed && g.elapsed < g.delay {
		g.suppressed++
		return false
	}
	g.armed = true
	g.elapsed = 0
	return true
}

// Suppressed returns how many activations were dropped.
func (g *Gate) Suppressed() uint64 {
	return g.suppressed
}

// Reset forgets the last accepted activation. The suppressed count is
// kept.
func (g *Gate) Reset() {
	g.armed = false
	g.elapsed = 0
}
