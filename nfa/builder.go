package nfa

import (
	"sort"
)

// Builder assembles an automaton state by state. The Compiler drives one
// Builder per compilation; tests and tools may use it directly to build
// automatons that no pattern produces.
//
// Edges are recorded as sets: adding the same edge twice has no effect.
type Builder struct {
	states []State
}

// NewBuilder creates a new builder with default capacity
func NewBuilder() *Builder {
	return NewBuilderWithCapacity(16)
}

// NewBuilderWithCapacity creates a builder with room for capacity states.
func NewBuilderWithCapacity(capacity int) *Builder {
	return &Builder{
		states: make([]State, 0, capacity),
	}
}

// AddState allocates a fresh state with no edges and returns its ID.
// IDs are handed out in increasing order and never reused.
func (b *Builder) AddState() StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{id: id})
	return id
}

// States returns the number of states allocated so far.
func (b *Builder) States() int {
	return len(b.states)
}

// AddChar records the edge from --r--> to.
func (b *Builder) AddChar(from StateID, r rune, to StateID) error {
	s, err := b.state(from)
	if err != nil {
		return err
	}
	for _, t := range s.chars {
		if t.Rune == r && t.Next == to {
			return nil
		}
	}
	s.chars = append(s.chars, Transition{Rune: r, Next: to})
	return nil
}

// AddWildcard records an edge from --any rune--> to.
func (b *Builder) AddWildcard(from, to StateID) error {
	s, err := b.state(from)
	if err != nil {
		return err
	}
	s.wildcard = appendUnique(s.wildcard, to)
	return nil
}

// AddEpsilon records an edge from --ε--> to.
func (b *Builder) AddEpsilon(from, to StateID) error {
	s, err := b.state(from)
	if err != nil {
		return err
	}
	s.epsilon = appendUnique(s.epsilon, to)
	return nil
}

func (b *Builder) state(id StateID) (*State, error) {
	if int(id) >= len(b.states) {
		return nil, &BuildError{Message: "state ID out of bounds", StateID: id}
	}
	return &b.states[id], nil
}

// Build freezes the recorded states into an Automaton and validates it.
// The builder must not be used afterwards.
func (b *Builder) Build(starts, accepts []StateID) (*Automaton, error) {
	for i := range b.states {
		s := &b.states[i]
		sort.Slice(s.chars, func(x, y int) bool {
			if s.chars[x].Rune != s.chars[y].Rune {
				return s.chars[x].Rune < s.chars[y].Rune
			}
			return s.chars[x].Next < s.chars[y].Next
		})
		s.wildcard = sortedUnique(s.wildcard)
		s.epsilon = sortedUnique(s.epsilon)
	}

	a := newAutomaton(b.states, starts, accepts)
	b.states = nil
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

func appendUnique(ids []StateID, id StateID) []StateID {
	for _, x := range ids {
		if x == id {
			return ids
		}
	}
	return append(ids, id)
}
