package nfa

import (
	"fmt"
	"sort"
	"sync"

	"github.com/coregx/thompson/internal/conv"
	"github.com/coregx/thompson/internal/sparse"
)

// StateID identifies an NFA state. IDs are dense indexes into the automaton's
// state arena, allocated by one Compiler in increasing order.
type StateID uint32

// InvalidState is the zero-value sentinel for "no state".
const InvalidState StateID = 0xFFFFFFFF

// Transition is a character edge: consume Rune, move to Next.
type Transition struct {
	Rune rune
	Next StateID
}

// State holds the outgoing edges of one NFA state. States carry no payload of
// their own; a state accepts when its ID is in the automaton's accept set.
type State struct {
	id StateID

	// chars is sorted by (Rune, Next) with no duplicates, so the targets for
	// one rune form a contiguous run.
	chars []Transition

	// wildcard targets are reachable on any input rune ('.').
	wildcard []StateID

	// epsilon targets are reachable without consuming input.
	epsilon []StateID
}

// ID returns the state's identifier.
func (s *State) ID() StateID {
	return s.id
}

// Transitions returns a copy of the state's character edges.
func (s *State) Transitions() []Transition {
	return append([]Transition(nil), s.chars...)
}

// Wildcard returns a copy of the targets reachable on any rune.
func (s *State) Wildcard() []StateID {
	return append([]StateID(nil), s.wildcard...)
}

// Epsilon returns a copy of the targets reachable without input.
func (s *State) Epsilon() []StateID {
	return append([]StateID(nil), s.epsilon...)
}

// Targets returns the states reachable from s by consuming r, including
// wildcard targets.
func (s *State) Targets(r rune) []StateID {
	var out []StateID
	for _, t := range s.chars {
		if t.Rune > r {
			break
		}
		if t.Rune == r {
			out = append(out, t.Next)
		}
	}
	return append(out, s.wildcard...)
}

// String returns a human-readable representation of the state.
func (s *State) String() string {
	return fmt.Sprintf("State(%d, chars: %d, wildcard: %v, epsilon: %v)",
		s.id, len(s.chars), s.wildcard, s.epsilon)
}

// Automaton is a compiled Thompson NFA.
//
// An Automaton is immutable once returned by the Compiler. Run, Describe,
// Summary and the accessors are safe for concurrent use; the only mutable
// member is a pool of per-call scratch sets, which is never shared between
// callers.
type Automaton struct {
	states  []State
	starts  []StateID
	accepts []StateID

	// isAccept is indexed by StateID.
	isAccept []bool

	scratch sync.Pool
}

func newAutomaton(states []State, starts, accepts []StateID) *Automaton {
	a := &Automaton{
		states:   states,
		starts:   sortedUnique(starts),
		accepts:  sortedUnique(accepts),
		isAccept: make([]bool, len(states)),
	}
	for _, id := range a.accepts {
		if int(id) < len(a.isAccept) {
			a.isAccept[id] = true
		}
	}
	a.scratch.New = func() any {
		return newCache(len(a.states))
	}
	return a
}

// States returns the number of states.
func (a *Automaton) States() int {
	return len(a.states)
}

// State returns the state with the given ID, or nil if out of range.
func (a *Automaton) State(id StateID) *State {
	if int(id) >= len(a.states) {
		return nil
	}
	return &a.states[id]
}

// Starts returns a copy of the start state IDs.
// Patterns always compile to exactly one start state.
func (a *Automaton) Starts() []StateID {
	return append([]StateID(nil), a.starts...)
}

// Accepts returns a copy of the accept state IDs.
// Patterns always compile to exactly one accept state.
func (a *Automaton) Accepts() []StateID {
	return append([]StateID(nil), a.accepts...)
}

// IsAccept reports whether id is an accept state.
func (a *Automaton) IsAccept(id StateID) bool {
	return int(id) < len(a.isAccept) && a.isAccept[id]
}

// Validate checks that every start, accept and transition target is a state
// of the automaton. The Compiler validates before returning, so this only
// fails for automatons assembled by hand through a Builder.
func (a *Automaton) Validate() error {
	n := len(a.states)
	inRange := func(id StateID) bool { return int(id) < n }

	if len(a.starts) == 0 {
		return &BuildError{Message: "no start state", StateID: InvalidState}
	}
	for _, id := range a.starts {
		if !inRange(id) {
			return &BuildError{Message: "start state out of bounds", StateID: id}
		}
	}
	for _, id := range a.accepts {
		if !inRange(id) {
			return &BuildError{Message: "accept state out of bounds", StateID: id}
		}
	}
	for i := range a.states {
		s := &a.states[i]
		if s.id != StateID(i) {
			return &BuildError{Message: fmt.Sprintf("state stored at index %d", i), StateID: s.id}
		}
		for _, t := range s.chars {
			if !inRange(t.Next) {
				return &BuildError{Message: fmt.Sprintf("invalid transition target %d", t.Next), StateID: s.id}
			}
		}
		for _, next := range s.wildcard {
			if !inRange(next) {
				return &BuildError{Message: fmt.Sprintf("invalid wildcard target %d", next), StateID: s.id}
			}
		}
		for _, next := range s.epsilon {
			if !inRange(next) {
				return &BuildError{Message: fmt.Sprintf("invalid epsilon target %d", next), StateID: s.id}
			}
		}
	}
	return nil
}

// EpsilonClosure returns ids plus every state reachable from them through
// epsilon edges alone, sorted by ID. Out-of-range IDs are ignored.
//
// The walk uses an explicit stack and a visited set, so it terminates on the
// epsilon cycles produced by nested repetition such as (a*)*.
func (a *Automaton) EpsilonClosure(ids []StateID) []StateID {
	c := a.getCache()
	defer a.putCache(c)

	c.cur.Clear()
	for _, id := range ids {
		if int(id) < len(a.states) {
			a.addClosure(c.cur, c, id)
		}
	}
	out := make([]StateID, 0, c.cur.Len())
	for _, v := range c.cur.Values() {
		out = append(out, StateID(v))
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// cache holds the per-call working sets of a simulation.
type cache struct {
	cur   *sparse.SparseSet
	next  *sparse.SparseSet
	stack []StateID
}

func newCache(states int) *cache {
	capacity := conv.IntToUint32(states)
	return &cache{
		cur:   sparse.NewSparseSet(capacity),
		next:  sparse.NewSparseSet(capacity),
		stack: make([]StateID, 0, 16),
	}
}

func (a *Automaton) getCache() *cache {
	return a.scratch.Get().(*cache)
}

func (a *Automaton) putCache(c *cache) {
	c.cur.Clear()
	c.next.Clear()
	c.stack = c.stack[:0]
	a.scratch.Put(c)
}

// addClosure inserts id and its epsilon-closure into set. The set doubles as
// the visited set: a state already present is neither re-inserted nor
// re-expanded.
func (a *Automaton) addClosure(set *sparse.SparseSet, c *cache, id StateID) {
	stack := append(c.stack[:0], id)
	for len(stack) > 0 {
		sid := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !set.Insert(uint32(sid)) {
			continue
		}
		for _, next := range a.states[sid].epsilon {
			if !set.Contains(uint32(next)) {
				stack = append(stack, next)
			}
		}
	}
	c.stack = stack
}

func sortedUnique(ids []StateID) []StateID {
	out := append([]StateID(nil), ids...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	w := 0
	for i, id := range out {
		if i > 0 && id == out[w-1] {
			continue
		}
		out[w] = id
		w++
	}
	return out[:w]
}

// String returns a short description of the automaton.
func (a *Automaton) String() string {
	return fmt.Sprintf("Automaton{states: %d, starts: %v, accepts: %v}",
		len(a.states), a.starts, a.accepts)
}
