package ineffable

import (
	"fmt"
	"math"
	"time"

	"github.com/dshills/ineffable/internal/action"
	"github.com/dshills/ineffable/internal/config"
	"github.com/dshills/ineffable/internal/input/binding"
	"github.com/dshills/ineffable/internal/report"
)

// MinSequenceTimeout is the shortest sequence step timeout a person can
// realistically meet. Timeouts at or below it are rejected.
const MinSequenceTimeout = 25 * time.Millisecond

// Validate checks cfg against the engine's registry without applying it.
func (c *Context) Validate(cfg *config.InputConfig) *report.Report {
	return Validate(c.registry, cfg)
}

// Validate checks every binding of cfg against reg and collects all
// problems. It never stops at the first one.
func Validate(reg *action.Registry, cfg *config.InputConfig) *report.Report {
	rep := report.New()
	if reg == nil {
		reg = action.NewRegistry()
	}

	if d, ok := cfg.DoubleClickTiming(); ok && d <= 0 {
		rep.Errorf(report.InvalidSetting, "", "", -1, "double_click_timing",
			"double click timing must be positive, got %s", d)
	}
	if d, ok := cfg.PostAcceptanceDelay(); ok && d < 0 {
		rep.Errorf(report.InvalidSetting, "", "", -1, "post_acceptance_delay",
			"post acceptance delay must not be negative, got %s", d)
	}

	for _, group := range cfg.Groups() {
		if !reg.HasGroup(group) {
			rep.Errorf(report.UnknownGroup, group, "", -1, "",
				"group %q is not registered", group)
			continue
		}
		for _, name := range cfg.Actions(group) {
			meta, ok := reg.Lookup(action.NewID(group, name))
			if !ok {
				rep.Errorf(report.UnknownAction, group, name, -1, "",
					"action %q is not registered in group %q", name, group)
				continue
			}
			v := validator{rep: rep, group: group, act: name}
			v.bindings(meta.Kind, cfg.Bindings(group, name))
		}
	}
	return rep
}

type validator struct {
	rep   *report.Report
	group string
	act   string
	index int
}

func (v *validator) errorf(code report.Code, path, format string, args ...any) {
	v.rep.Errorf(code, v.group, v.act, v.index, path, format, args...)
}

func (v *validator) warnf(code report.Code, path, format string, args ...any) {
	v.rep.Warnf(code, v.group, v.act, v.index, path, format, args...)
}

func (v *validator) bindings(kind action.Kind, list []binding.Binding) {
	if len(list) == 0 {
		v.rep.Warnf(report.NoBindings, v.group, v.act, -1, "",
			"action has no bindings and will never trigger")
		return
	}
	for i, b := range list {
		v.index = i
		if b == nil {
			v.warnf(report.RootBindingIsDummy, "", "binding is empty and does nothing")
			continue
		}
		if b.Kind() != kind {
			v.errorf(report.WrongKind, "",
				"%s binding on %s action. %s action: %s Try: %s",
				b.Kind(), kind, kind, kind.Explain(), kind.Example())
			continue
		}
		v.binding(b)
	}
}

func (v *validator) binding(b binding.Binding) {
	switch b := b.(type) {
	case binding.PulseBinding:
		if b.Trigger == binding.PulseDummy {
			v.warnf(report.RootBindingIsDummy, "", "pulse binding is a dummy and does nothing")
			return
		}
		v.pulse(b, "")
	case binding.ContinuousBinding:
		v.continuous(b)
	case binding.AxisBinding:
		if b.Mode == binding.AxisDummy {
			v.warnf(report.RootBindingIsDummy, "", "axis binding is a dummy and does nothing")
			return
		}
		v.axis(b, "")
	case binding.DualAxisBinding:
		if b.X.Mode == binding.AxisDummy && b.Y.Mode == binding.AxisDummy {
			v.warnf(report.RootBindingIsDummy, "", "dual axis binding is a dummy and does nothing")
			return
		}
		v.axis(b.X, "x")
		v.axis(b.Y, "y")
	}
}

func (v *validator) continuous(b binding.ContinuousBinding) {
	switch b.Mode {
	case binding.ContinuousHold:
		v.inputs(b.Inputs, "hold")
	case binding.ContinuousToggle:
		if b.Toggle.Trigger == binding.PulseDummy {
			v.warnf(report.ConvolutedDummy, "toggle", "toggle wraps a dummy pulse binding and does nothing")
			return
		}
		v.pulse(b.Toggle, "toggle")
	default:
		v.warnf(report.RootBindingIsDummy, "", "continuous binding is a dummy and does nothing")
	}
}

func (v *validator) pulse(b binding.PulseBinding, path string) {
	switch b.Trigger {
	case binding.PulseSequence:
		seq := join(path, "sequence")
		if b.Timeout <= MinSequenceTimeout {
			v.errorf(report.SequenceUnrealisticTiming, seq,
				"sequence timeout %s is too short; it must be longer than %s", b.Timeout, MinSequenceTimeout)
		}
		switch len(b.Steps) {
		case 0:
			v.warnf(report.SequenceEmpty, seq, "sequence has no steps and will never fire")
			return
		case 1:
			v.warnf(report.SequenceSingleStep, seq,
				"sequence has a single step; use JustPressed instead")
		}
		for i, step := range b.Steps {
			v.inputs(step, fmt.Sprintf("%s.steps[%d]", seq, i))
		}
	case binding.PulseJustPressed, binding.PulseJustReleased, binding.PulseDoubleClick:
		v.inputs(b.Inputs, join(path, b.Trigger.String()))
	default:
		if path != "" {
			v.warnf(report.ConvolutedDummy, path, "nested pulse binding is a dummy")
		}
	}
}

func (v *validator) axis(b binding.AxisBinding, path string) {
	switch b.Mode {
	case binding.AxisHold:
		if b.Negative.IsDummy() && b.Positive.IsDummy() {
			v.warnf(report.ConvolutedDummy, join(path, "hold"), "axis hold has no inputs on either side")
			return
		}
		v.inputs(b.Negative, join(path, "negative"))
		v.inputs(b.Positive, join(path, "positive"))
	case binding.AxisAnalog:
		p := join(path, "analog")
		switch {
		case !b.Source.Valid():
			v.errorf(report.UnknownSource, p, "analog source %s does not exist", b.Source)
		case !b.Source.Analog():
			v.errorf(report.UnknownSource, p, "%s is not an analog source", b.Source)
		}
		if math.IsNaN(b.Sensitivity) || math.IsInf(b.Sensitivity, 0) {
			v.errorf(report.InvalidSensitivity, p, "sensitivity must be a finite number, got %v", b.Sensitivity)
		}
	case binding.AxisToggle:
		if b.ToggleNegative.IsDummy() && b.TogglePositive.IsDummy() {
			v.warnf(report.ConvolutedDummy, join(path, "toggle"), "axis toggle has no pulse on either side")
			return
		}
		v.pulse(b.ToggleNegative, join(path, "toggle.negative"))
		v.pulse(b.TogglePositive, join(path, "toggle.positive"))
	default:
		v.warnf(report.ConvolutedDummy, path, "nested axis binding is a dummy")
	}
}

func (v *validator) inputs(in binding.Inputs, path string) {
	for i, chord := range in {
		cp := fmt.Sprintf("%s[%d]", path, i)
		if chord.IsDummy() {
			v.warnf(report.ConvolutedDummy, cp, "empty chord never activates")
			continue
		}
		if chord.HasDuplicates() {
			v.warnf(report.ChordContainsDuplicates, cp, "chord %s lists the same input twice", chord)
		}
		for _, input := range chord {
			if !input.Source.Valid() {
				v.errorf(report.UnknownSource, cp, "input source %s does not exist", input.Source)
				continue
			}
			if input.Threshold != 0 && !input.Source.Analog() {
				v.warnf(report.ThresholdOnDigital, cp,
					"threshold on %s is ignored; only analog sources take a threshold", input.Source)
			}
		}
	}
}

func join(path, elem string) string {
	if path == "" {
		return elem
	}
	return path + "." + elem
}
