package action

// Marker is implemented by the zero-size types that tag a Handle with its
// kind.
type Marker interface {
	Kind() Kind
}

// Marker types for typed handles.
type (
	DualAxis   struct{}
	SingleAxis struct{}
	Continuous struct{}
	Pulse      struct{}
)

func (DualAxis) Kind() Kind   { return KindDualAxis }
func (SingleAxis) Kind() Kind { return KindSingleAxis }
func (Continuous) Kind() Kind { return KindContinuous }
func (Pulse) Kind() Kind      { return KindPulse }

// Handle is an action ID whose kind is known at compile time.
type Handle[K Marker] struct {
	id ID
}

// ID returns the underlying identifier.
func (h Handle[K]) ID() ID {
	return h.id
}

// Kind returns the kind encoded in the handle's type.
func (h Handle[K]) Kind() Kind {
	var k K
	return k.Kind()
}

// String returns "Group.Name".
func (h Handle[K]) String() string {
	return h.id.String()
}

// Define registers an action with the kind implied by K and returns a typed
// handle to it.
func Define[K Marker](r *Registry, group, name string) (Handle[K], error) {
	var k K
	m, err := r.Register(group, name, k.Kind())
	if err != nil {
		return Handle[K]{}, err
	}
	return Handle[K]{id: m.ID}, nil
}

// MustDefine is like Define but panics on error. It is intended for
// package-level declarations whose names are compile-time constants.
func MustDefine[K Marker](r *Registry, group, name string) Handle[K] {
	h, err := Define[K](r, group, name)
	if err != nil {
		panic(err)
	}
	return h
}
