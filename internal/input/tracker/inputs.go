package tracker

import (
	"github.com/dshills/ineffable/internal/input/binding"
	"github.com/dshills/ineffable/internal/input/source"
)

type chordState struct {
	chord    binding.Chord
	blockers []binding.Chord
	active   bool
	prev     bool
}

func (c *chordState) update(snap source.Snapshot) {
	c.prev = c.active
	c.active = binding.ActiveUnblocked(c.chord, c.blockers, snap)
}

// inputsState tracks the level of every alternative chord of an Inputs.
type inputsState []chordState

func newInputs(in binding.Inputs, blockers *binding.Blockers) inputsState {
	s := make(inputsState, 0, len(in))
	for _, c := range in {
		if c.IsDummy() {
			continue
		}
		s = append(s, chordState{chord: c, blockers: blockers.For(c)})
	}
	return s
}

func (s inputsState) update(snap source.Snapshot) {
	for i := range s {
		s[i].update(snap)
	}
}

func (s inputsState) active() bool {
	for _, c := range s {
		if c.active {
			return true
		}
	}
	return false
}

func (s inputsState) justPressed() bool {
	for _, c := range s {
		if c.active && !c.prev {
			return true
		}
	}
	return false
}

func (s inputsState) justReleased() bool {
	for _, c := range s {
		if !c.active && c.prev {
			return true
		}
	}
	return false
}

func (s inputsState) reset() {
	for i := range s {
		s[i].active = false
		s[i].prev = false
	}
}
