package binding

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/dshills/ineffable/internal/input/source"
)

const (
	// ActivationThreshold is the value above which a digital source is
	// considered pressed.
	ActivationThreshold = 0.5

	// Deadzone is the magnitude an analog source must exceed to count as
	// active when used as a boolean input without an explicit threshold.
	Deadzone = 0.1

	// PresetThreshold is the magnitude of the preset analog threshold.
	PresetThreshold = 0.75
)

// Input is a boolean reading of one source.
//
// For analog sources, Threshold selects the activation rule: a negative
// threshold is reached when value <= Threshold, a positive one when
// value >= Threshold, and zero means |value| > Deadzone. Threshold is
// ignored for digital sources.
type Input struct {
	Source    source.Source
	Threshold float64
}

// In returns an Input reading s with the default rule.
func In(s source.Source) Input {
	return Input{Source: s}
}

// AtLeast returns an analog Input active when s >= t.
func AtLeast(s source.Source, t float64) Input {
	return Input{Source: s, Threshold: math.Abs(t)}
}

// AtMost returns an analog Input active when s <= -|t|.
func AtMost(s source.Source, t float64) Input {
	return Input{Source: s, Threshold: -math.Abs(t)}
}

// Active reports whether the input is active in snap.
func (i Input) Active(snap source.Snapshot) bool {
	v := source.Read(snap, i.Source)
	if !i.Source.Analog() {
		return v > ActivationThreshold
	}
	switch {
	case i.Threshold < 0:
		return v <= i.Threshold
	case i.Threshold > 0:
		return v >= i.Threshold
	default:
		return math.Abs(v) > Deadzone
	}
}

// String returns the configuration syntax of the input, e.g. "Key.Space"
// or "Axis.LeftStickX<-0.5".
func (i Input) String() string {
	if !i.Source.Analog() || i.Threshold == 0 {
		return i.Source.String()
	}
	if i.Threshold < 0 {
		return i.Source.String() + "<" + strconv.FormatFloat(i.Threshold, 'g', -1, 64)
	}
	return i.Source.String() + ">" + strconv.FormatFloat(i.Threshold, 'g', -1, 64)
}

// Chord is a set of inputs that must all be active at once. An empty chord
// never activates.
type Chord []Input

// All returns a chord of the given sources.
func All(sources ...source.Source) Chord {
	c := make(Chord, len(sources))
	for i, s := range sources {
		c[i] = In(s)
	}
	return c
}

// Active reports whether every input of the chord is active.
func (c Chord) Active(snap source.Snapshot) bool {
	if len(c) == 0 {
		return false
	}
	for _, in := range c {
		if !in.Active(snap) {
			return false
		}
	}
	return true
}

// IsDummy reports whether the chord can never activate.
func (c Chord) IsDummy() bool {
	return len(c) == 0
}

// HasDuplicates reports whether an input appears more than once.
func (c Chord) HasDuplicates() bool {
	seen := make(map[Input]struct{}, len(c))
	for _, in := range c {
		if _, ok := seen[in]; ok {
			return true
		}
		seen[in] = struct{}{}
	}
	return false
}

// Contains reports whether every input of other is in c.
func (c Chord) Contains(other Chord) bool {
	for _, o := range other {
		found := false
		for _, in := range c {
			if in == o {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// key returns an order-independent identity for the chord's input set.
func (c Chord) key() string {
	parts := make([]string, 0, len(c))
	seen := make(map[Input]struct{}, len(c))
	for _, in := range c {
		if _, ok := seen[in]; ok {
			continue
		}
		seen[in] = struct{}{}
		parts = append(parts, in.String())
	}
	sort.Strings(parts)
	return strings.Join(parts, "+")
}

// distinct returns the number of distinct inputs.
func (c Chord) distinct() int {
	seen := make(map[Input]struct{}, len(c))
	for _, in := range c {
		seen[in] = struct{}{}
	}
	return len(seen)
}

// String joins the inputs with "+".
func (c Chord) String() string {
	parts := make([]string, len(c))
	for i, in := range c {
		parts[i] = in.String()
	}
	return strings.Join(parts, "+")
}

// Inputs is a list of alternative chords. It is active when any chord is
// active.
type Inputs []Chord

// Any returns Inputs where each source alone is an alternative.
func Any(sources ...source.Source) Inputs {
	in := make(Inputs, len(sources))
	for i, s := range sources {
		in[i] = Chord{In(s)}
	}
	return in
}

// Chords returns Inputs made of the given chords.
func Chords(chords ...Chord) Inputs {
	return Inputs(chords)
}

// Active reports whether any chord is active.
func (in Inputs) Active(snap source.Snapshot) bool {
	for _, c := range in {
		if c.Active(snap) {
			return true
		}
	}
	return false
}

// IsDummy reports whether no chord can ever activate.
func (in Inputs) IsDummy() bool {
	for _, c := range in {
		if !c.IsDummy() {
			return false
		}
	}
	return true
}
