package nfa

import (
	"unicode/utf8"

	"github.com/coregx/thompson/internal/sparse"
)

// Run reports whether the automaton accepts the whole of input.
//
// The simulation starts from the epsilon-closure of the start states and, for
// each code point of input, moves every live state along its character and
// wildcard edges and closes the result over epsilon edges again. Invalid
// UTF-8 advances one byte at a time as U+FFFD, the way a range loop over a
// string does. The walk stops early once no state is live.
//
// Run never modifies the automaton and is safe for concurrent use.
func (a *Automaton) Run(input string) bool {
	c := a.getCache()
	defer a.putCache(c)

	a.start(c)
	for _, r := range input {
		if !a.step(c, r) {
			return false
		}
	}
	return a.accepting(c.cur)
}

// RunBytes is Run for a byte slice. It decodes input in place, without
// converting it to a string.
func (a *Automaton) RunBytes(input []byte) bool {
	c := a.getCache()
	defer a.putCache(c)

	a.start(c)
	for len(input) > 0 {
		r, size := utf8.DecodeRune(input)
		if !a.step(c, r) {
			return false
		}
		input = input[size:]
	}
	return a.accepting(c.cur)
}

// start loads the closure of the start states into c.cur.
func (a *Automaton) start(c *cache) {
	c.cur.Clear()
	for _, id := range a.starts {
		a.addClosure(c.cur, c, id)
	}
}

// step advances c.cur over r and reports whether any state is still live.
func (a *Automaton) step(c *cache, r rune) bool {
	c.next.Clear()
	for _, v := range c.cur.Values() {
		s := &a.states[v]
		for _, t := range s.chars {
			if t.Rune > r {
				break
			}
			if t.Rune == r {
				a.addClosure(c.next, c, t.Next)
			}
		}
		for _, next := range s.wildcard {
			a.addClosure(c.next, c, next)
		}
	}
	c.cur, c.next = c.next, c.cur
	return !c.cur.IsEmpty()
}

func (a *Automaton) accepting(set *sparse.SparseSet) bool {
	for _, v := range set.Values() {
		if a.isAccept[v] {
			return true
		}
	}
	return false
}
