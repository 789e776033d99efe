package nfa

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Stats holds structural counts of an automaton.
type Stats struct {
	States       int
	AcceptStates int

	// Transitions counts distinct (state, rune) keys, however many targets
	// each key has.
	Transitions int

	// WildcardTransitions counts states with at least one wildcard edge.
	WildcardTransitions int

	// EpsilonTransitions counts states with at least one epsilon edge.
	EpsilonTransitions int

	// Edges counts every individual edge of every kind.
	Edges int
}

// Stats computes the structural counts reported by Summary.
func (a *Automaton) Stats() Stats {
	st := Stats{
		States:       len(a.states),
		AcceptStates: len(a.accepts),
	}
	for i := range a.states {
		s := &a.states[i]
		for j, t := range s.chars {
			if j == 0 || s.chars[j-1].Rune != t.Rune {
				st.Transitions++
			}
		}
		if len(s.wildcard) > 0 {
			st.WildcardTransitions++
		}
		if len(s.epsilon) > 0 {
			st.EpsilonTransitions++
		}
		st.Edges += len(s.chars) + len(s.wildcard) + len(s.epsilon)
	}
	return st
}

// Summary returns a short report of the automaton's counts:
//
//	===== NFA summary =====
//	States: 4, accept states: 1, transitions: 2, null transitions: 1
func (a *Automaton) Summary() string {
	st := a.Stats()
	var b strings.Builder
	b.WriteString("===== NFA summary =====\n")
	fmt.Fprintf(&b, "States: %d, accept states: %d, transitions: %d, null transitions: %d",
		st.States, st.AcceptStates, st.Transitions, st.EpsilonTransitions)
	if st.WildcardTransitions > 0 {
		fmt.Fprintf(&b, ", wildcard transitions: %d", st.WildcardTransitions)
	}
	b.WriteByte('\n')
	return b.String()
}

// Describe returns a structural dump of the automaton: its states, start and
// accept states, then character, wildcard and null (epsilon) transitions.
// Every list is sorted by state ID, so the output is stable across runs.
// Empty wildcard and null sections are omitted.
func (a *Automaton) Describe() string {
	var b strings.Builder
	b.WriteString("===== NFA configuration =====\n")

	b.WriteString("States:")
	for i := range a.states {
		b.WriteByte(' ')
		b.WriteString(strconv.Itoa(i))
	}
	b.WriteString("\nStart states:")
	writeIDs(&b, a.starts)
	b.WriteString("\nAccept states:")
	writeIDs(&b, a.accepts)

	b.WriteString("\nTransitions:\n")
	for i := range a.states {
		s := &a.states[i]
		for j := 0; j < len(s.chars); {
			r := s.chars[j].Rune
			fmt.Fprintf(&b, "(%d, %s) ->", s.id, strconv.QuoteRune(r))
			for ; j < len(s.chars) && s.chars[j].Rune == r; j++ {
				fmt.Fprintf(&b, " %d", s.chars[j].Next)
			}
			b.WriteByte('\n')
		}
	}

	a.describeEdges(&b, "Wildcard transitions", func(s *State) []StateID { return s.wildcard })
	a.describeEdges(&b, "Null transitions", func(s *State) []StateID { return s.epsilon })
	return b.String()
}

func (a *Automaton) describeEdges(b *strings.Builder, title string, edges func(*State) []StateID) {
	header := false
	for i := range a.states {
		targets := edges(&a.states[i])
		if len(targets) == 0 {
			continue
		}
		if !header {
			fmt.Fprintf(b, "\n%s:\n", title)
			header = true
		}
		fmt.Fprintf(b, "%d ->", i)
		writeIDs(b, targets)
		b.WriteByte('\n')
	}
}

func writeIDs(b *strings.Builder, ids []StateID) {
	for _, id := range ids {
		b.WriteByte(' ')
		b.WriteString(strconv.FormatUint(uint64(id), 10))
	}
}

// WriteDOT writes the automaton as a Graphviz digraph. Accept states are
// drawn as double circles, epsilon edges are labelled ε and wildcard edges
// are labelled "any". Runes that are not printable, surrogates included, are
// labelled U+XXXX.
func (a *Automaton) WriteDOT(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "digraph NFA {")
	fmt.Fprintln(bw, "    rankdir=LR;")
	for i := range a.states {
		s := &a.states[i]
		shape := "circle"
		if a.isAccept[i] {
			shape = "doublecircle"
		}
		fmt.Fprintf(bw, "    s%d [shape=%s];\n", s.id, shape)
		for _, t := range s.chars {
			fmt.Fprintf(bw, "    s%d -> s%d [label=\"%s\"];\n", s.id, t.Next, dotLabel(t.Rune))
		}
		for _, next := range s.wildcard {
			fmt.Fprintf(bw, "    s%d -> s%d [label=\"any\"];\n", s.id, next)
		}
		for _, next := range s.epsilon {
			fmt.Fprintf(bw, "    s%d -> s%d [label=\"ε\"];\n", s.id, next)
		}
	}
	for i, id := range a.starts {
		fmt.Fprintf(bw, "    _start%d [shape=point]; _start%d -> s%d;\n", i, i, id)
	}
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}

// dotLabel renders r for a quoted DOT label, where only '"' and the
// backslash are escaped.
func dotLabel(r rune) string {
	switch {
	case r == '"' || r == '\\':
		return `\` + string(r)
	case utf8.ValidRune(r) && unicode.IsPrint(r):
		return string(r)
	default:
		return fmt.Sprintf("U+%04X", r)
	}
}
