package binding

import "github.com/dshills/ineffable/internal/input/source"

// Blockers records, for every bound chord, the bound chords that strictly
// contain it. While a containing chord is active the smaller chord is
// suppressed, so binding Ctrl+S does not also trigger S.
type Blockers struct {
	byKey map[string][]Chord
}

// NewBlockers indexes the given chords. Duplicates and dummies are
// ignored.
func NewBlockers(chords []Chord) *Blockers {
	uniq := make(map[string]Chord)
	var order []string
	for _, c := range chords {
		if c.IsDummy() {
			continue
		}
		k := c.key()
		if _, ok := uniq[k]; ok {
			continue
		}
		uniq[k] = c
		order = append(order, k)
	}

	b := &Blockers{byKey: make(map[string][]Chord)}
	for _, k := range order {
		c := uniq[k]
		for _, otherKey := range order {
			other := uniq[otherKey]
			if otherKey == k || other.distinct() <= c.distinct() {
				continue
			}
			if other.Contains(c) {
				b.byKey[k] = append(b.byKey[k], other)
			}
		}
	}
	return b
}

// BlockersOf indexes every chord referenced by the given bindings.
func BlockersOf(bindings []Binding) *Blockers {
	var chords []Chord
	for _, b := range bindings {
		Walk(b, func(c Chord) { chords = append(chords, c) })
	}
	return NewBlockers(chords)
}

// For returns the chords that block c.
func (b *Blockers) For(c Chord) []Chord {
	if b == nil {
		return nil
	}
	return b.byKey[c.key()]
}

// Len returns the number of chords that have at least one blocker.
func (b *Blockers) Len() int {
	if b == nil {
		return 0
	}
	return len(b.byKey)
}

// ActiveUnblocked reports whether c is active and none of its blockers is.
func ActiveUnblocked(c Chord, blockers []Chord, snap source.Snapshot) bool {
	if !c.Active(snap) {
		return false
	}
	for _, o := range blockers {
		if o.Active(snap) {
			return false
		}
	}
	return true
}
