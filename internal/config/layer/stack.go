package layer

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dshills/ineffable/internal/config"
)

// Stack errors.
var (
	// ErrLayerNotFound indicates no layer has the requested name.
	ErrLayerNotFound = errors.New("layer not found")

	// ErrReadOnly indicates a write to a read-only layer.
	ErrReadOnly = errors.New("layer is read-only")
)

// Stack manages configuration layers and provides the folded result.
type Stack struct {
	mu        sync.RWMutex
	layers    []*Layer            // Sorted by priority (ascending)
	effective *config.InputConfig // Cached fold
	dirty     bool
}

// NewStack creates an empty stack.
func NewStack() *Stack {
	return &Stack{dirty: true}
}

// AddLayer adds a layer to the stack, replacing any layer with the same
// name. Layers are kept sorted by priority; equal priorities keep
// insertion order.
func (s *Stack) AddLayer(layer *Layer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.index(layer.Name); i >= 0 {
		s.layers = append(s.layers[:i], s.layers[i+1:]...)
	}
	s.layers = append(s.layers, layer)
	s.sortLayers()
	s.dirty = true
}

// RemoveLayer removes a layer by name.
// Returns true if the layer was found and removed.
func (s *Stack) RemoveLayer(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(name)
	if i < 0 {
		return false
	}
	s.layers = append(s.layers[:i], s.layers[i+1:]...)
	s.dirty = true
	return true
}

// Layer returns a layer by name, or nil.
func (s *Stack) Layer(name string) *Layer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.index(name); i >= 0 {
		return s.layers[i]
	}
	return nil
}

// LayerByPath returns the layer loaded from path, or nil.
func (s *Stack) LayerByPath(path string) *Layer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, l := range s.layers {
		if l.Path != "" && l.Path == path {
			return l
		}
	}
	return nil
}

// Layers returns a copy of all layers sorted by priority.
func (s *Stack) Layers() []*Layer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Layer, len(s.layers))
	copy(out, s.layers)
	return out
}

// Len returns the number of layers.
func (s *Stack) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.layers)
}

// Effective folds every layer from lowest to highest priority.
// Results are cached until a layer is added, removed, or updated.
func (s *Stack) Effective() *config.InputConfig {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.dirty && s.effective != nil {
		return s.effective
	}

	entries := make([]config.Entry, len(s.layers))
	for i, l := range s.layers {
		entries[i] = config.Entry{Mode: l.Mode, Config: l.Config}
	}
	s.effective = config.Fold(entries...)
	s.dirty = false
	return s.effective
}

// Set replaces the configuration of a layer.
func (s *Stack) Set(name string, cfg *config.InputConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(name)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrLayerNotFound, name)
	}
	l := s.layers[i]
	if l.ReadOnly {
		return fmt.Errorf("%w: %s", ErrReadOnly, name)
	}
	if cfg == nil {
		cfg = config.Empty()
	}
	l.Config = cfg
	l.ModTime = time.Now()
	s.dirty = true
	return nil
}

// SetInSession merges cfg into the session layer, replacing the bindings
// of every action cfg mentions. The session layer is created on first use.
func (s *Stack) SetInSession(cfg *config.InputConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var session *Layer
	for _, l := range s.layers {
		if l.Source == SourceSession {
			session = l
			break
		}
	}
	if session == nil {
		session = NewSourceLayer(SourceSession, nil)
		s.layers = append(s.layers, session)
		s.sortLayers()
	}
	session.Config = session.Config.MergeReplace(cfg)
	session.ModTime = time.Now()
	s.dirty = true
}

// WhichLayer returns the name of the highest-priority layer that binds
// group.act, or "" if none does.
func (s *Stack) WhichLayer(group, act string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := len(s.layers) - 1; i >= 0; i-- {
		if s.layers[i].Config.Has(group, act) {
			return s.layers[i].Name
		}
	}
	return ""
}

// Invalidate marks the cached fold as stale.
func (s *Stack) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirty = true
}

// Clear removes all layers.
func (s *Stack) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.layers = nil
	s.effective = nil
	s.dirty = true
}

// sortLayers sorts layers by priority (ascending).
func (s *Stack) sortLayers() {
	sort.SliceStable(s.layers, func(i, j int) bool {
		return s.layers[i].Priority < s.layers[j].Priority
	})
}

// index must be called with the lock held.
func (s *Stack) index(name string) int {
	for i, l := range s.layers {
		if l.Name == name {
			return i
		}
	}
	return -1
}
