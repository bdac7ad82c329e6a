package binding

import "github.com/dshills/ineffable/internal/input/source"

// Walk calls fn for every chord referenced by b, including chords nested in
// toggles, sequence steps and dual axes.
func Walk(b Binding, fn func(Chord)) {
	switch b := b.(type) {
	case PulseBinding:
		walkPulse(b, fn)
	case ContinuousBinding:
		walkInputs(b.Inputs, fn)
		walkPulse(b.Toggle, fn)
	case AxisBinding:
		walkAxis(b, fn)
	case DualAxisBinding:
		walkAxis(b.X, fn)
		walkAxis(b.Y, fn)
	}
}

func walkInputs(in Inputs, fn func(Chord)) {
	for _, c := range in {
		fn(c)
	}
}

func walkPulse(b PulseBinding, fn func(Chord)) {
	walkInputs(b.Inputs, fn)
	for _, s := range b.Steps {
		walkInputs(s, fn)
	}
}

func walkAxis(b AxisBinding, fn func(Chord)) {
	walkInputs(b.Negative, fn)
	walkInputs(b.Positive, fn)
	walkPulse(b.ToggleNegative, fn)
	walkPulse(b.TogglePositive, fn)
}

// Sources returns every distinct source referenced by b, in first-seen
// order. The analog source of an Analog axis binding is included.
func Sources(b Binding) []source.Source {
	var out []source.Source
	seen := make(map[source.Source]struct{})
	add := func(s source.Source) {
		if s == source.None {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	Walk(b, func(c Chord) {
		for _, in := range c {
			add(in.Source)
		}
	})
	switch b := b.(type) {
	case AxisBinding:
		add(b.Source)
	case DualAxisBinding:
		add(b.X.Source)
		add(b.Y.Source)
	}
	return out
}
