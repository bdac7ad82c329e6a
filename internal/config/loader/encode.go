package loader

import (
	"strings"
	"time"

	"github.com/dshills/ineffable/internal/config"
	"github.com/dshills/ineffable/internal/input/binding"
)

// Encode returns the descriptor document of cfg. Decoding the result
// yields an equal configuration.
func Encode(cfg *config.InputConfig) map[string]any {
	doc := make(map[string]any)
	if d, ok := cfg.DoubleClickTiming(); ok {
		doc[KeyDoubleClickTiming] = encodeDuration(d)
	}
	if d, ok := cfg.PostAcceptanceDelay(); ok {
		doc[KeyPostAcceptanceDelay] = encodeDuration(d)
	}

	groups := make(map[string]any)
	cfg.Each(func(group, act string, bindings []binding.Binding) {
		acts, ok := groups[group].(map[string]any)
		if !ok {
			acts = make(map[string]any)
			groups[group] = acts
		}
		list := make([]any, 0, len(bindings))
		for _, b := range bindings {
			if v := encodeBinding(b); v != nil {
				list = append(list, v)
			}
		}
		acts[act] = list
	})
	if len(groups) > 0 {
		doc[KeyBindings] = groups
	}
	return doc
}

func tagged(tag string, body any) map[string]any {
	return map[string]any{tag: body}
}

func encodeBinding(b binding.Binding) map[string]any {
	switch b := b.(type) {
	case binding.PulseBinding:
		return tagged("Pulse", encodePulse(b))
	case binding.ContinuousBinding:
		return tagged("Continuous", encodeContinuous(b))
	case binding.AxisBinding:
		return tagged("SingleAxis", encodeAxis(b))
	case binding.DualAxisBinding:
		return tagged("DualAxis", map[string]any{
			"x": encodeAxis(b.X),
			"y": encodeAxis(b.Y),
		})
	}
	return nil
}

func encodePulse(b binding.PulseBinding) map[string]any {
	switch b.Trigger {
	case binding.PulseJustPressed, binding.PulseJustReleased, binding.PulseDoubleClick:
		return tagged(b.Trigger.String(), encodeInputs(b.Inputs))
	case binding.PulseSequence:
		steps := make([]any, len(b.Steps))
		for i, s := range b.Steps {
			steps[i] = encodeInputs(s)
		}
		return tagged("Sequence", map[string]any{
			"timeout": encodeDuration(b.Timeout),
			"steps":   steps,
		})
	}
	return tagged("Dummy", map[string]any{})
}

func encodeContinuous(b binding.ContinuousBinding) map[string]any {
	switch b.Mode {
	case binding.ContinuousHold:
		return tagged("Hold", encodeInputs(b.Inputs))
	case binding.ContinuousToggle:
		return tagged("Toggle", encodePulse(b.Toggle))
	}
	return tagged("Dummy", map[string]any{})
}

func encodeAxis(b binding.AxisBinding) map[string]any {
	switch b.Mode {
	case binding.AxisHold:
		return tagged("Hold", map[string]any{
			"negative": encodeInputs(b.Negative),
			"positive": encodeInputs(b.Positive),
		})
	case binding.AxisAnalog:
		return tagged("Analog", map[string]any{
			"source":      b.Source.String(),
			"inverted":    b.Inversion == binding.Inverted,
			"sensitivity": b.Sensitivity,
		})
	case binding.AxisToggle:
		return tagged("Toggle", map[string]any{
			"negative": encodePulse(b.ToggleNegative),
			"positive": encodePulse(b.TogglePositive),
		})
	}
	return tagged("Dummy", map[string]any{})
}

func encodeInputs(in binding.Inputs) []any {
	out := make([]any, len(in))
	for i, chord := range in {
		terms := make([]string, len(chord))
		for j, input := range chord {
			terms[j] = input.String()
		}
		out[i] = strings.Join(terms, "+")
	}
	return out
}

// encodeDuration writes whole milliseconds as a number and anything finer
// as a duration string.
func encodeDuration(d time.Duration) any {
	if d%time.Millisecond == 0 {
		return int64(d / time.Millisecond)
	}
	return d.String()
}
