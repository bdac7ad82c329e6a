package loader

import (
	"fmt"

	"github.com/dshills/ineffable/internal/action"
	"github.com/dshills/ineffable/internal/config"
	"github.com/dshills/ineffable/internal/input/binding"
	"github.com/dshills/ineffable/internal/report"
)

// DecodeRegistry registers the actions declared under the actions key of
// doc into reg:
//
//	[actions.Player]
//	Teleport = "Pulse"
//	Movement = "DualAxis"
//
// Other keys are ignored, so the declarations can share a file with
// bindings. A nil reg is replaced by a new registry.
func DecodeRegistry(doc map[string]any, reg *action.Registry) (*action.Registry, *report.Report) {
	if reg == nil {
		reg = action.NewRegistry()
	}
	rep := report.New()

	raw, ok := doc[KeyActions]
	if !ok {
		rep.Warnf(report.Decode, "", "", -1, KeyActions, "no actions declared")
		return reg, rep
	}
	groups, ok := raw.(map[string]any)
	if !ok {
		rep.Errorf(report.Decode, "", "", -1, KeyActions, "actions must be a table of groups, got %s", typeName(raw))
		return reg, rep
	}

	for _, group := range sortedKeys(groups) {
		acts, ok := groups[group].(map[string]any)
		if !ok {
			rep.Errorf(report.Decode, group, "", -1, KeyActions, "group must be a table of action kinds, got %s", typeName(groups[group]))
			continue
		}
		for _, name := range sortedKeys(acts) {
			s, ok := acts[name].(string)
			if !ok {
				rep.Errorf(report.Decode, group, name, -1, KeyActions, "kind must be a string, got %s", typeName(acts[name]))
				continue
			}
			kind, err := action.ParseKind(s)
			if err != nil {
				rep.Errorf(report.Decode, group, name, -1, KeyActions, "%v", err)
				continue
			}
			if _, err := reg.Register(group, name, kind); err != nil {
				rep.Errorf(report.WrongKind, group, name, -1, KeyActions, "%v", err)
			}
		}
	}
	return reg, rep
}

// LoadRegistry reads the action declarations of the document at path.
func (l *Loader) LoadRegistry(path string, reg *action.Registry) (*action.Registry, *report.Report, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, nil, err
	}
	data, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading action declarations %s: %w", path, err)
	}
	doc, err := Unmarshal(path, data, format)
	if err != nil {
		return nil, nil, err
	}
	reg, rep := DecodeRegistry(doc, reg)
	return reg, rep, nil
}

// InferRegistry registers every action of cfg with the kind of its first
// non-dummy binding, or of its first binding when all are dummies. Actions
// without bindings are skipped.
func InferRegistry(cfg *config.InputConfig) *action.Registry {
	reg := action.NewRegistry()
	cfg.Each(func(group, act string, bindings []binding.Binding) {
		var chosen binding.Binding
		for _, b := range bindings {
			if b == nil {
				continue
			}
			if chosen == nil || (chosen.IsDummy() && !b.IsDummy()) {
				chosen = b
			}
		}
		if chosen != nil {
			_, _ = reg.Register(group, act, chosen.Kind())
		}
	})
	return reg
}
