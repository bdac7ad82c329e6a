package loader

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dshills/ineffable/internal/action"
	"github.com/dshills/ineffable/internal/config"
	"github.com/dshills/ineffable/internal/input/binding"
	"github.com/dshills/ineffable/internal/input/source"
	"github.com/dshills/ineffable/internal/report"
)

// Document keys.
const (
	KeyDoubleClickTiming   = "double_click_timing"
	KeyPostAcceptanceDelay = "post_acceptance_delay"
	KeyBindings            = "bindings"
	KeyInclude             = "include"
	KeyActions             = "actions"
)

// Decode turns a descriptor document into a configuration. Every problem
// found is collected in the report; bindings that could not be decoded are
// left out of the configuration.
func Decode(doc map[string]any) (*config.InputConfig, *report.Report) {
	d := &decoder{rep: report.New(), index: -1}
	b := config.NewBuilder()

	for _, key := range sortedKeys(doc) {
		val := doc[key]
		switch normalize(key) {
		case "doubleclicktiming":
			if dur, ok := d.duration(val, KeyDoubleClickTiming); ok {
				b.DoubleClickTiming(dur)
			}
		case "postacceptancedelay":
			if dur, ok := d.duration(val, KeyPostAcceptanceDelay); ok {
				b.PostAcceptanceDelay(dur)
			}
		case "bindings":
			d.bindings(b, val)
		case "actions":
			// Read by DecodeRegistry.
		default:
			d.rep.Warnf(report.Decode, "", "", -1, key, "unknown key %q ignored", key)
		}
	}
	return b.Build(), d.rep
}

type decoder struct {
	rep   *report.Report
	group string
	act   string
	index int
}

func (d *decoder) fail(path, format string, args ...any) {
	d.rep.Errorf(report.Decode, d.group, d.act, d.index, path, format, args...)
}

func (d *decoder) bindings(b *config.Builder, val any) {
	groups, ok := val.(map[string]any)
	if !ok {
		d.fail(KeyBindings, "bindings must be a table of groups, got %s", typeName(val))
		return
	}
	for _, group := range sortedKeys(groups) {
		acts, ok := groups[group].(map[string]any)
		if !ok {
			d.rep.Errorf(report.Decode, group, "", -1, "", "group must be a table of actions, got %s", typeName(groups[group]))
			continue
		}
		for _, act := range sortedKeys(acts) {
			d.group, d.act = group, act
			b.Bind(group, act, d.list(acts[act])...)
		}
	}
	d.group, d.act, d.index = "", "", -1
}

func (d *decoder) list(val any) []binding.Binding {
	d.index = -1
	items, ok := val.([]any)
	if !ok {
		// A lone binding table is accepted as a list of one.
		if m, isMap := val.(map[string]any); isMap {
			items = []any{m}
		} else {
			d.fail("", "bindings must be a list, got %s", typeName(val))
			return nil
		}
	}
	out := make([]binding.Binding, 0, len(items))
	for i, item := range items {
		d.index = i
		if b := d.binding(item); b != nil {
			out = append(out, b)
		}
	}
	return out
}

// single returns the only key and value of a one-entry table.
func (d *decoder) single(val any, path, what string) (string, any, bool) {
	m, ok := val.(map[string]any)
	if !ok {
		d.fail(path, "%s must be a table, got %s", what, typeName(val))
		return "", nil, false
	}
	if len(m) != 1 {
		d.fail(path, "%s must have exactly one tag, got %d", what, len(m))
		return "", nil, false
	}
	for k, v := range m {
		return k, v, true
	}
	return "", nil, false
}

func (d *decoder) binding(val any) binding.Binding {
	tag, body, ok := d.single(val, "", "binding")
	if !ok {
		return nil
	}
	kind, err := action.ParseKind(tag)
	if err != nil {
		d.fail("", "unknown binding kind %q; want DualAxis, SingleAxis, Continuous or Pulse", tag)
		return nil
	}
	switch kind {
	case action.KindPulse:
		p, ok := d.pulse(body, "Pulse")
		if !ok {
			return nil
		}
		return p
	case action.KindContinuous:
		c, ok := d.continuous(body, "Continuous")
		if !ok {
			return nil
		}
		return c
	case action.KindSingleAxis:
		a, ok := d.axis(body, "SingleAxis")
		if !ok {
			return nil
		}
		return a
	default:
		return d.dual(body, "DualAxis")
	}
}

func (d *decoder) pulse(val any, path string) (binding.PulseBinding, bool) {
	tag, body, ok := d.single(val, path, "pulse binding")
	if !ok {
		return binding.PulseBinding{}, false
	}
	p := join(path, tag)
	switch normalize(tag) {
	case "justpressed":
		in, ok := d.inputs(body, p)
		return binding.JustPressed(in), ok
	case "justreleased":
		in, ok := d.inputs(body, p)
		return binding.JustReleased(in), ok
	case "doubleclick":
		in, ok := d.inputs(body, p)
		return binding.DoubleClick(in), ok
	case "sequence":
		return d.sequence(body, p)
	case "dummy":
		return binding.PulseBinding{}, true
	}
	d.fail(path, "unknown pulse trigger %q", tag)
	return binding.PulseBinding{}, false
}

func (d *decoder) sequence(val any, path string) (binding.PulseBinding, bool) {
	m, ok := val.(map[string]any)
	if !ok {
		d.fail(path, "sequence must be a table with timeout and steps, got %s", typeName(val))
		return binding.PulseBinding{}, false
	}
	timeout, ok := d.duration(m["timeout"], join(path, "timeout"))
	if !ok {
		return binding.PulseBinding{}, false
	}
	raw, ok := m["steps"].([]any)
	if !ok {
		d.fail(join(path, "steps"), "steps must be a list, got %s", typeName(m["steps"]))
		return binding.PulseBinding{}, false
	}
	steps := make([]binding.Inputs, 0, len(raw))
	good := true
	for i, step := range raw {
		in, ok := d.inputs(step, fmt.Sprintf("%s.steps[%d]", path, i))
		good = good && ok
		steps = append(steps, in)
	}
	return binding.Sequence(timeout, steps...), good
}

func (d *decoder) continuous(val any, path string) (binding.ContinuousBinding, bool) {
	tag, body, ok := d.single(val, path, "continuous binding")
	if !ok {
		return binding.ContinuousBinding{}, false
	}
	p := join(path, tag)
	switch normalize(tag) {
	case "hold":
		in, ok := d.inputs(body, p)
		return binding.Hold(in), ok
	case "toggle":
		pb, ok := d.pulse(body, p)
		return binding.Toggle(pb), ok
	case "dummy":
		return binding.ContinuousBinding{}, true
	}
	d.fail(path, "unknown continuous mode %q", tag)
	return binding.ContinuousBinding{}, false
}

func (d *decoder) axis(val any, path string) (binding.AxisBinding, bool) {
	tag, body, ok := d.single(val, path, "axis binding")
	if !ok {
		return binding.AxisBinding{}, false
	}
	p := join(path, tag)
	switch normalize(tag) {
	case "hold":
		m, ok := body.(map[string]any)
		if !ok {
			d.fail(p, "hold must be a table with negative and positive, got %s", typeName(body))
			return binding.AxisBinding{}, false
		}
		neg, okNeg := d.optionalInputs(m["negative"], join(p, "negative"))
		pos, okPos := d.optionalInputs(m["positive"], join(p, "positive"))
		return binding.AxisHoldOf(neg, pos), okNeg && okPos
	case "analog":
		return d.analog(body, p)
	case "toggle":
		m, ok := body.(map[string]any)
		if !ok {
			d.fail(p, "toggle must be a table with negative and positive, got %s", typeName(body))
			return binding.AxisBinding{}, false
		}
		var neg, pos binding.PulseBinding
		okNeg, okPos := true, true
		if v, has := m["negative"]; has {
			neg, okNeg = d.pulse(v, join(p, "negative"))
		}
		if v, has := m["positive"]; has {
			pos, okPos = d.pulse(v, join(p, "positive"))
		}
		return binding.AxisToggleOf(neg, pos), okNeg && okPos
	case "dummy":
		return binding.AxisBinding{}, true
	}
	d.fail(path, "unknown axis mode %q", tag)
	return binding.AxisBinding{}, false
}

func (d *decoder) analog(val any, path string) (binding.AxisBinding, bool) {
	var m map[string]any
	switch v := val.(type) {
	case string:
		m = map[string]any{"source": v}
	case map[string]any:
		m = v
	default:
		d.fail(path, "analog must be a source name or a table, got %s", typeName(val))
		return binding.AxisBinding{}, false
	}

	name, ok := m["source"].(string)
	if !ok {
		d.fail(join(path, "source"), "analog source must be a string, got %s", typeName(m["source"]))
		return binding.AxisBinding{}, false
	}
	src, err := source.Parse(name)
	if err != nil {
		d.rep.Errorf(report.UnknownSource, d.group, d.act, d.index, join(path, "source"), "%v", err)
		return binding.AxisBinding{}, false
	}
	b := binding.Analog(src)

	if v, has := m["inverted"]; has {
		inv, ok := v.(bool)
		if !ok {
			d.fail(join(path, "inverted"), "inverted must be true or false, got %s", typeName(v))
			return b, false
		}
		if inv {
			b = b.WithInversion(binding.Inverted)
		}
	}
	if v, has := m["sensitivity"]; has {
		s, ok := number(v)
		if !ok {
			d.fail(join(path, "sensitivity"), "sensitivity must be a number, got %s", typeName(v))
			return b, false
		}
		b = b.WithSensitivity(s)
	}
	return b, true
}

func (d *decoder) dual(val any, path string) binding.Binding {
	m, ok := val.(map[string]any)
	if !ok {
		d.fail(path, "dual axis must be a table with x and y, got %s", typeName(val))
		return nil
	}
	var x, y binding.AxisBinding
	okX, okY := true, true
	if v, has := m["x"]; has {
		x, okX = d.axis(v, join(path, "x"))
	}
	if v, has := m["y"]; has {
		y, okY = d.axis(v, join(path, "y"))
	}
	if !okX || !okY {
		return nil
	}
	return binding.Dual(x, y)
}

func (d *decoder) optionalInputs(val any, path string) (binding.Inputs, bool) {
	if val == nil {
		return nil, true
	}
	return d.inputs(val, path)
}

// inputs decodes a chord string or a list of chord strings.
func (d *decoder) inputs(val any, path string) (binding.Inputs, bool) {
	var items []any
	switch v := val.(type) {
	case string:
		items = []any{v}
	case []any:
		items = v
	default:
		d.fail(path, "inputs must be a list of strings, got %s", typeName(val))
		return nil, false
	}

	out := make(binding.Inputs, 0, len(items))
	good := true
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			d.fail(fmt.Sprintf("%s[%d]", path, i), "input must be a string, got %s", typeName(item))
			good = false
			continue
		}
		chord, err := ParseChord(s)
		if err != nil {
			code := report.Decode
			if errors.Is(err, source.ErrUnknownSource) {
				code = report.UnknownSource
			}
			d.rep.Errorf(code, d.group, d.act, d.index, fmt.Sprintf("%s[%d]", path, i), "%v", err)
			good = false
			continue
		}
		out = append(out, chord)
	}
	return out, good
}

// ParseChord parses "Key.ControlLeft+Key.S". An empty string is the
// empty chord.
func ParseChord(s string) (binding.Chord, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return binding.Chord{}, nil
	}
	terms := strings.Split(s, "+")
	chord := make(binding.Chord, 0, len(terms))
	for _, term := range terms {
		in, err := ParseInput(term)
		if err != nil {
			return nil, err
		}
		chord = append(chord, in)
	}
	return chord, nil
}

// ParseInput parses one input such as "Key.Space", "Axis.LeftStickX<-0.5"
// or "Axis.RightZ>preset".
func ParseInput(s string) (binding.Input, error) {
	s = strings.TrimSpace(s)
	idx := strings.IndexAny(s, "<>")
	if idx < 0 {
		src, err := source.Parse(s)
		if err != nil {
			return binding.Input{}, err
		}
		return binding.In(src), nil
	}

	src, err := source.Parse(strings.TrimSpace(s[:idx]))
	if err != nil {
		return binding.Input{}, err
	}
	rest := strings.TrimSpace(s[idx+1:])
	var t float64
	if strings.EqualFold(rest, "preset") {
		t = binding.PresetThreshold
	} else {
		t, err = strconv.ParseFloat(rest, 64)
		if err != nil || math.IsNaN(t) || math.IsInf(t, 0) {
			return binding.Input{}, fmt.Errorf("invalid threshold %q in %q", rest, s)
		}
	}
	if s[idx] == '<' {
		return binding.AtMost(src, t), nil
	}
	return binding.AtLeast(src, t), nil
}

// duration accepts milliseconds as a number or a Go duration string.
func (d *decoder) duration(val any, path string) (time.Duration, bool) {
	switch v := val.(type) {
	case string:
		dur, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			d.fail(path, "invalid duration %q", v)
			return 0, false
		}
		return dur, true
	case time.Duration:
		return v, true
	default:
		ms, ok := number(val)
		if !ok {
			d.fail(path, "duration must be milliseconds or a string such as \"250ms\", got %s", typeName(val))
			return 0, false
		}
		return time.Duration(ms * float64(time.Millisecond)), true
	}
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "nothing"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	case int, int64, uint64, float64:
		return "a number"
	case []any:
		return "a list"
	case map[string]any:
		return "a table"
	}
	return fmt.Sprintf("%T", v)
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("_", "", "-", "", " ", "").Replace(s)
}

func join(path, elem string) string {
	if path == "" {
		return elem
	}
	return path + "." + elem
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
