package config

import (
	"fmt"
	"strings"

	"github.com/dshills/ineffable/internal/input/binding"
)

// MergeMode selects how a configuration is combined with the ones before
// it.
type MergeMode uint8

const (
	// MergeReplace replaces the binding list of every key the incoming
	// configuration mentions.
	MergeReplace MergeMode = iota
	// MergeAppend appends the incoming binding lists.
	MergeAppend
	// MergeBase discards everything accumulated so far.
	MergeBase
)

// String returns the mode name.
func (m MergeMode) String() string {
	switch m {
	case MergeReplace:
		return "replace"
	case MergeAppend:
		return "append"
	case MergeBase:
		return "base"
	default:
		return fmt.Sprintf("MergeMode(%d)", uint8(m))
	}
}

// ParseMergeMode parses "replace", "append" or "base".
func ParseMergeMode(s string) (MergeMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "replace":
		return MergeReplace, nil
	case "append":
		return MergeAppend, nil
	case "base":
		return MergeBase, nil
	}
	return 0, fmt.Errorf("unknown merge mode %q", s)
}

func mergeSettings(dst, src *InputConfig) {
	if src.doubleClick.set {
		dst.doubleClick = src.doubleClick
	}
	if src.delay.set {
		dst.delay = src.delay
	}
}

// MergeReplace returns a new configuration where, for every key other
// defines, other's bindings replace c's. Keys other does not define keep
// c's bindings.
func (c *InputConfig) MergeReplace(other *InputConfig) *InputConfig {
	out := c.clone()
	if other == nil {
		return out
	}
	mergeSettings(out, other)
	for g, acts := range other.bindings {
		for a, list := range acts {
			out.put(g, a, append([]binding.Binding(nil), list...))
		}
	}
	return out
}

// MergeAppend returns a new configuration where, for every key other
// defines, other's bindings follow c's.
func (c *InputConfig) MergeAppend(other *InputConfig) *InputConfig {
	out := c.clone()
	if other == nil {
		return out
	}
	mergeSettings(out, other)
	for g, acts := range other.bindings {
		for a, list := range acts {
			existing := out.bindings[g][a]
			out.put(g, a, append(existing, list...))
		}
	}
	return out
}

// Merge combines c with other according to mode.
func (c *InputConfig) Merge(other *InputConfig, mode MergeMode) *InputConfig {
	switch mode {
	case MergeAppend:
		return c.MergeAppend(other)
	case MergeBase:
		return other.clone()
	default:
		return c.MergeReplace(other)
	}
}

// Entry pairs a configuration with the mode used to fold it.
type Entry struct {
	Mode   MergeMode
	Config *InputConfig
}

// Fold merges entries in order, starting from an empty configuration.
func Fold(entries ...Entry) *InputConfig {
	acc := Empty()
	for _, e := range entries {
		acc = acc.Merge(e.Config, e.Mode)
	}
	return acc
}
