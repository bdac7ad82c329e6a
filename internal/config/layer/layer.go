// Package layer stacks input configurations by priority.
//
// Each layer holds one InputConfig together with the mode used to merge it
// onto the layers below. The stack folds its layers from lowest to highest
// priority into the effective configuration, so a user file can replace a
// few bindings of the shipped defaults while an append-mode layer adds
// alternatives without removing any.
package layer

import (
	"time"

	"github.com/dshills/ineffable/internal/config"
)

// Layer represents a single configuration layer.
type Layer struct {
	// Name identifies the layer (e.g., "user", "defaults").
	Name string

	// Priority determines merge order (higher overrides lower).
	Priority int

	// Source indicates where this layer was loaded from.
	Source Source

	// Path is the file path (if loaded from file).
	Path string

	// Mode selects how the layer merges onto the layers below it.
	Mode config.MergeMode

	// Config holds the layer's bindings and settings.
	Config *config.InputConfig

	// ModTime is when the source was last modified.
	ModTime time.Time

	// ReadOnly prevents modifications to this layer.
	ReadOnly bool
}

// NewLayer creates a new, empty configuration layer.
func NewLayer(name string, source Source, priority int) *Layer {
	return NewLayerWithConfig(name, source, priority, config.Empty())
}

// NewLayerWithConfig creates a new layer holding cfg.
func NewLayerWithConfig(name string, source Source, priority int, cfg *config.InputConfig) *Layer {
	if cfg == nil {
		cfg = config.Empty()
	}
	return &Layer{
		Name:     name,
		Source:   source,
		Priority: priority,
		Config:   cfg,
		ModTime:  time.Now(),
	}
}

// Clone returns a copy of the layer. Configurations are immutable, so the
// copy shares its Config.
func (l *Layer) Clone() *Layer {
	c := *l
	return &c
}

// Source indicates where a configuration layer came from.
type Source uint8

const (
	// SourceBuiltin represents the bindings shipped with the game.
	SourceBuiltin Source = iota
	// SourceUser represents the player's own binding file.
	SourceUser
	// SourceFile represents any other binding file.
	SourceFile
	// SourceEnv represents environment variables.
	SourceEnv
	// SourceArgs represents command-line arguments.
	SourceArgs
	// SourceSession represents in-memory session overrides.
	SourceSession
)

// String returns a human-readable name for the source.
func (s Source) String() string {
	switch s {
	case SourceBuiltin:
		return "builtin"
	case SourceUser:
		return "user"
	case SourceFile:
		return "file"
	case SourceEnv:
		return "environment"
	case SourceArgs:
		return "arguments"
	case SourceSession:
		return "session"
	default:
		return "unknown"
	}
}
