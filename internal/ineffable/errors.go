package ineffable

import (
	"errors"
	"fmt"

	"github.com/dshills/ineffable/internal/action"
)

// Engine errors.
var (
	// ErrConfigRejected indicates a configuration failed validation.
	ErrConfigRejected = errors.New("input config rejected")

	// ErrUnknownAction indicates a query named an unregistered action.
	ErrUnknownAction = errors.New("unknown action")

	// ErrKindMismatch indicates a query does not apply to the action's kind.
	ErrKindMismatch = errors.New("action kind mismatch")
)

// QueryError describes a failed query.
type QueryError struct {
	Op     string
	Action action.ID
	Want   []action.Kind
	Got    action.Kind
	Err    error
}

// Error implements error.
func (e *QueryError) Error() string {
	if errors.Is(e.Err, ErrKindMismatch) {
		return fmt.Sprintf("%s %s: %v: want %v, action is %s", e.Op, e.Action, e.Err, e.Want, e.Got)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Action, e.Err)
}

// Unwrap returns the underlying error.
func (e *QueryError) Unwrap() error {
	return e.Err
}
