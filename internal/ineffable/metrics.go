package ineffable

import (
	"sync/atomic"
	"time"
)

// Metrics counts engine activity. All methods are safe for concurrent use.
type Metrics struct {
	frames          atomic.Uint64
	pulses          atomic.Uint64
	activations     atomic.Uint64
	deactivations   atomic.Uint64
	configsApplied  atomic.Uint64
	configsRejected atomic.Uint64
	suppressed      atomic.Uint64

	lastUpdate atomic.Int64
	peakUpdate atomic.Int64

	enabled atomic.Bool
}

// NewMetrics creates an enabled metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{}
	m.enabled.Store(true)
	return m
}

// SetEnabled enables or disables collection.
func (m *Metrics) SetEnabled(enabled bool) {
	m.enabled.Store(enabled)
}

// IsEnabled returns whether collection is enabled.
func (m *Metrics) IsEnabled() bool {
	return m.enabled.Load()
}

func (m *Metrics) recordFrame(latency time.Duration, transitions []Transition, suppressed uint64) {
	if m == nil || !m.enabled.Load() {
		return
	}
	m.frames.Add(1)
	for _, tr := range transitions {
		switch tr.Kind {
		case Pulsed:
			m.pulses.Add(1)
		case Activated:
			m.activations.Add(1)
		case Deactivated:
			m.deactivations.Add(1)
		}
	}
	m.suppressed.Store(suppressed)

	ns := latency.Nanoseconds()
	m.lastUpdate.Store(ns)
	for {
		current := m.peakUpdate.Load()
		if ns <= current {
			break
		}
		if m.peakUpdate.CompareAndSwap(current, ns) {
			break
		}
	}
}

func (m *Metrics) recordConfig(applied bool) {
	if m == nil || !m.enabled.Load() {
		return
	}
	if applied {
		m.configsApplied.Add(1)
	} else {
		m.configsRejected.Add(1)
	}
}

// MetricsSnapshot holds a point-in-time view of metrics.
type MetricsSnapshot struct {
	Frames          uint64
	Pulses          uint64
	Activations     uint64
	Deactivations   uint64
	ConfigsApplied  uint64
	ConfigsRejected uint64

	// Suppressed is the number of activations the acceptance delay dropped
	// since the live configuration was applied.
	Suppressed uint64

	LastUpdate time.Duration
	PeakUpdate time.Duration
}

// Snapshot returns a point-in-time view of all metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Frames:          m.frames.Load(),
		Pulses:          m.pulses.Load(),
		Activations:     m.activations.Load(),
		Deactivations:   m.deactivations.Load(),
		ConfigsApplied:  m.configsApplied.Load(),
		ConfigsRejected: m.configsRejected.Load(),
		Suppressed:      m.suppressed.Load(),
		LastUpdate:      time.Duration(m.lastUpdate.Load()),
		PeakUpdate:      time.Duration(m.peakUpdate.Load()),
	}
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.frames.Store(0)
	m.pulses.Store(0)
	m.activations.Store(0)
	m.deactivations.Store(0)
	m.configsApplied.Store(0)
	m.configsRejected.Store(0)
	m.suppressed.Store(0)
	m.lastUpdate.Store(0)
	m.peakUpdate.Store(0)
}
