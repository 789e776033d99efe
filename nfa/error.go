// Package nfa builds Thompson NFAs from postfix token streams and simulates
// them in lock-step.
//
// Compilation pops and pushes fragments on an operand stack, one fragment per
// postfix token. States live in an arena indexed by StateID; a fragment only
// records which arena states it owns, so merging two fragments moves state
// ownership rather than copying or aliasing transition tables.
//
// Simulation keeps the epsilon-closed set of states reachable by the input
// consumed so far and advances that whole set one rune at a time. Work per
// rune is bounded by the number of states, so matching is linear in the
// input length whatever the pattern looks like.
package nfa

import (
	"fmt"
)

// BuildError reports a structural problem found while assembling an
// automaton through the Builder API.
type BuildError struct {
	Message string
	StateID StateID
}

// Error implements the error interface
func (e *BuildError) Error() string {
	if e.StateID != InvalidState {
		return fmt.Sprintf("NFA build error at state %d: %s", e.StateID, e.Message)
	}
	return fmt.Sprintf("NFA build error: %s", e.Message)
}
