package action

import (
	"fmt"
	"sync"
)

// ID identifies an action by its group and name.
type ID struct {
	Group string
	Name  string
}

// NewID returns the ID for group and name.
func NewID(group, name string) ID {
	return ID{Group: group, Name: name}
}

// String returns "Group.Name".
func (id ID) String() string {
	return id.Group + "." + id.Name
}

// Meta describes a registered action.
type Meta struct {
	ID   ID
	Kind Kind
	// Index is the registration order of the action inside its group.
	Index int
}

// Def declares an action for RegisterGroup.
type Def struct {
	Name string
	Kind Kind
}

type group struct {
	name    string
	actions []Meta
	byName  map[string]int
}

// Registry records every action known to the process together with its
// kind. It is populated at startup and only grows afterwards.
type Registry struct {
	mu     sync.RWMutex
	groups map[string]*group
	order  []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		groups: make(map[string]*group),
	}
}

// Register adds an action. Registering an action that already exists with
// the same kind returns its existing Meta and a nil error. Registering it
// with a different kind returns ErrKindConflict.
func (r *Registry) Register(groupName, name string, kind Kind) (Meta, error) {
	if groupName == "" || name == "" {
		return Meta{}, fmt.Errorf("register %q.%q: %w", groupName, name, ErrEmptyName)
	}
	if !kind.Valid() {
		return Meta{}, fmt.Errorf("register %s.%s: %w", groupName, name, ErrUnknownKind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.groups[groupName]
	if !ok {
		g = &group{name: groupName, byName: make(map[string]int)}
		r.groups[groupName] = g
		r.order = append(r.order, groupName)
	}

	if idx, ok := g.byName[name]; ok {
		existing := g.actions[idx]
		if existing.Kind != kind {
			return existing, fmt.Errorf("register %s: %w (have %s, got %s)",
				existing.ID, ErrKindConflict, existing.Kind, kind)
		}
		return existing, nil
	}

	m := Meta{ID: ID{Group: groupName, Name: name}, Kind: kind, Index: len(g.actions)}
	g.byName[name] = m.Index
	g.actions = append(g.actions, m)
	return m, nil
}

// RegisterGroup registers every def under groupName. It stops at the first
// failure and returns the error; defs registered before it remain.
func (r *Registry) RegisterGroup(groupName string, defs ...Def) error {
	for _, d := range defs {
		if _, err := r.Register(groupName, d.Name, d.Kind); err != nil {
			return err
		}
	}
	return nil
}

// Contains reports whether id has been registered.
func (r *Registry) Contains(id ID) bool {
	_, ok := r.Lookup(id)
	return ok
}

// Lookup returns the metadata of a registered action.
func (r *Registry) Lookup(id ID) (Meta, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.groups[id.Group]
	if !ok {
		return Meta{}, false
	}
	idx, ok := g.byName[id.Name]
	if !ok {
		return Meta{}, false
	}
	return g.actions[idx], true
}

// HasGroup reports whether any action of the group has been registered.
func (r *Registry) HasGroup(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.groups[name]
	return ok
}

// Groups returns group names in registration order.
func (r *Registry) Groups() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Actions returns the actions of a group in registration order.
func (r *Registry) Actions(groupName string) []Meta {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.groups[groupName]
	if !ok {
		return nil
	}
	out := make([]Meta, len(g.actions))
	copy(out, g.actions)
	return out
}

// All returns every registered action, ordered by group registration
// order and then by index.
func (r *Registry) All() []Meta {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Meta
	for _, name := range r.order {
		out = append(out, r.groups[name].actions...)
	}
	return out
}

// Len returns the number of registered actions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, g := range r.groups {
		n += len(g.actions)
	}
	return n
}
