package layer

import "github.com/dshills/ineffable/internal/config"

// Standard priority levels for configuration layers.
// Higher values override lower values during merging.
const (
	// PriorityBuiltin is the lowest priority for shipped defaults.
	PriorityBuiltin = 0

	// PriorityUser is for the player's binding file.
	PriorityUser = 100

	// PriorityFile is for additional binding files.
	PriorityFile = 200

	// PriorityEnv is for environment variable overrides.
	PriorityEnv = 500

	// PriorityArgs is for command-line argument overrides.
	PriorityArgs = 600

	// PrioritySession is the highest priority for session overrides.
	PrioritySession = 1000
)

// Priority returns the standard priority of layers loaded from s.
func (s Source) Priority() int {
	switch s {
	case SourceUser:
		return PriorityUser
	case SourceFile:
		return PriorityFile
	case SourceEnv:
		return PriorityEnv
	case SourceArgs:
		return PriorityArgs
	case SourceSession:
		return PrioritySession
	}
	return PriorityBuiltin
}

// NewSourceLayer creates a layer named after s at its standard priority.
// Builtin layers are read-only.
func NewSourceLayer(s Source, cfg *config.InputConfig) *Layer {
	l := NewLayerWithConfig(s.String(), s, s.Priority(), cfg)
	l.ReadOnly = s == SourceBuiltin
	return l
}
