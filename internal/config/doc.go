// Package config holds the binding configuration of the input engine.
//
// An InputConfig maps (group, action) to an ordered list of bindings, plus
// two timing settings:
//
//   - DoubleClickTiming: the window for DoubleClick pulses (default 500ms)
//   - PostAcceptanceDelay: the minimum time between two accepted
//     activations of the same action (default 0)
//
// InputConfig values are immutable. Changing a configuration always
// produces a new value, so previous configurations stay valid and can be
// compared or re-applied.
//
// # Merging
//
// Configurations are combined key by key. For every (group, action):
//
//	MergeReplace  the incoming list replaces the existing one
//	MergeAppend   the incoming list is appended to the existing one
//	MergeBase     the accumulated configuration is discarded
//
// Keys the incoming configuration does not mention are left untouched.
// Settings from the incoming configuration win only when it sets them.
//
// # Sub-packages
//
//   - loader: reading and writing descriptor documents (TOML, YAML, JSON)
//   - layer: ordered configuration layers folded into one effective config
//   - watcher: file watching for live reload
//   - notify: change notification for applied and rejected configs
package config
