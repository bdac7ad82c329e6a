package action

import "errors"

// Registry errors.
var (
	// ErrEmptyName indicates a group or action name was empty.
	ErrEmptyName = errors.New("empty name")

	// ErrKindConflict indicates an action was re-registered with a different kind.
	ErrKindConflict = errors.New("action already registered with a different kind")

	// ErrUnknownKind indicates a kind name or value is not recognized.
	ErrUnknownKind = errors.New("unknown action kind")

	// ErrNotRegistered indicates an action is not in the registry.
	ErrNotRegistered = errors.New("action not registered")
)
