package source

// Snapshot is a read-only view of every input's value for one frame.
// Implementations return 0 for sources they do not track.
type Snapshot interface {
	Value(s Source) float64
}

// SnapshotFunc adapts a function to a Snapshot.
type SnapshotFunc func(Source) float64

// Value calls f.
func (f SnapshotFunc) Value(s Source) float64 {
	return f(s)
}

// Read returns the value of s in snap. Key groups read as the largest
// value of their members. A nil snapshot reads 0.
func Read(snap Snapshot, s Source) float64 {
	if snap == nil {
		return 0
	}
	if s.Device() != DeviceKeyGroup {
		return snap.Value(s)
	}
	var best float64
	for _, m := range groupMembers[s] {
		if v := snap.Value(m); v > best {
			best = v
		}
	}
	return best
}

// Frame is a mutable, map-backed Snapshot. Device adapters fill a Frame
// each tick and hand it to the context.
type Frame struct {
	values map[Source]float64
}

// NewFrame creates an empty frame.
func NewFrame() *Frame {
	return &Frame{values: make(map[Source]float64)}
}

// Value returns the stored value of s, or 0.
func (f *Frame) Value(s Source) float64 {
	if f == nil {
		return 0
	}
	return f.values[s]
}

// Set stores v for s. Setting 0 removes the entry.
func (f *Frame) Set(s Source, v float64) *Frame {
	if v == 0 {
		delete(f.values, s)
		return f
	}
	f.values[s] = v
	return f
}

// Add accumulates v into s, for relative inputs such as wheel and
// motion deltas that may arrive several times per frame.
func (f *Frame) Add(s Source, v float64) *Frame {
	return f.Set(s, f.values[s]+v)
}

// Press sets every source to 1.
func (f *Frame) Press(sources ...Source) *Frame {
	for _, s := range sources {
		f.values[s] = 1
	}
	return f
}

// Release clears every source.
func (f *Frame) Release(sources ...Source) *Frame {
	for _, s := range sources {
		delete(f.values, s)
	}
	return f
}

// Reset clears every value.
func (f *Frame) Reset() {
	for s := range f.values {
		delete(f.values, s)
	}
}

// ClearDevice clears every value belonging to d.
func (f *Frame) ClearDevice(d Device) {
	for s := range f.values {
		if s.Device() == d {
			delete(f.values, s)
		}
	}
}

// Len returns the number of non-zero sources.
func (f *Frame) Len() int {
	if f == nil {
		return 0
	}
	return len(f.values)
}

// Active returns the sources with a non-zero value, in unspecified order.
func (f *Frame) Active() []Source {
	out := make([]Source, 0, len(f.values))
	for s := range f.values {
		out = append(out, s)
	}
	return out
}

// Clone returns an independent copy.
func (f *Frame) Clone() *Frame {
	c := &Frame{values: make(map[Source]float64, len(f.values))}
	for s, v := range f.values {
		c.values[s] = v
	}
	return c
}
