// Package literal extracts literal byte strings from postfix token streams.
//
// Two facts about a pattern's language are useful before any automaton runs:
//   - its exact language, when that is a small finite set of strings, which
//     turns acceptance into a set lookup
//   - a set of prefixes every accepted input must start with, which lets a
//     prefilter reject inputs without simulating the automaton
//
// A Literal is one byte string. A Seq is a set of alternative literals; a nil
// *Seq means "no finite description", i.e. any string may appear.
package literal

import (
	"bytes"
	"sort"
)

// Literal is a byte string extracted from a pattern.
//
// Complete reports whether the literal is itself a whole member of the
// language. Prefix literals of an open-ended pattern such as "ab.*" are
// incomplete.
type Literal struct {
	Bytes    []byte
	Complete bool
}

// NewLiteral creates a new Literal from the given bytes and completeness flag.
func NewLiteral(b []byte, complete bool) Literal {
	return Literal{Bytes: b, Complete: complete}
}

// Len returns the length of the literal in bytes.
func (l Literal) Len() int {
	return len(l.Bytes)
}

// IsEmpty reports whether the literal is the empty string.
func (l Literal) IsEmpty() bool {
	return len(l.Bytes) == 0
}

// String returns a debug representation: literal{bytes, complete=...}.
func (l Literal) String() string {
	complete := "false"
	if l.Complete {
		complete = "true"
	}
	return "literal{" + string(l.Bytes) + ", complete=" + complete + "}"
}

// Seq is a set of alternative literals.
//
// Example:
//
//	seq := literal.NewSeq(
//	    literal.NewLiteral([]byte("foo"), true),
//	    literal.NewLiteral([]byte("bar"), true),
//	)
//	fmt.Println(seq.Len()) // Output: 2
type Seq struct {
	literals []Literal
}

// NewSeq creates a new sequence from the given literals.
func NewSeq(lits ...Literal) *Seq {
	return &Seq{literals: lits}
}

// Len returns the number of literals. A nil Seq has none.
func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.literals)
}

// Get returns the literal at index i. Panics if i is out of range.
func (s *Seq) Get(i int) Literal {
	return s.literals[i]
}

// Literals returns a copy of the literal list.
func (s *Seq) Literals() []Literal {
	if s == nil {
		return nil
	}
	return append([]Literal(nil), s.literals...)
}

// IsEmpty reports whether the sequence has no literals.
func (s *Seq) IsEmpty() bool {
	return s == nil || len(s.literals) == 0
}

// IsFinite reports whether the sequence describes a bounded set of strings.
// A nil Seq stands for an unbounded set.
func (s *Seq) IsFinite() bool {
	return s != nil
}

// AllComplete reports whether every literal is a whole member of the
// language. An empty sequence is not considered complete.
func (s *Seq) AllComplete() bool {
	if s.IsEmpty() {
		return false
	}
	for _, lit := range s.literals {
		if !lit.Complete {
			return false
		}
	}
	return true
}

// ContainsEmpty reports whether the empty string is one of the literals.
// A prefix set holding the empty string constrains nothing.
func (s *Seq) ContainsEmpty() bool {
	if s == nil {
		return false
	}
	for _, lit := range s.literals {
		if lit.IsEmpty() {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the sequence.
func (s *Seq) Clone() *Seq {
	if s == nil {
		return nil
	}
	cloned := make([]Literal, len(s.literals))
	for i, lit := range s.literals {
		cloned[i] = Literal{
			Bytes:    append([]byte(nil), lit.Bytes...),
			Complete: lit.Complete,
		}
	}
	return &Seq{literals: cloned}
}

// Dedup removes repeated byte strings. When duplicates disagree on Complete,
// the kept literal is complete. The first occurrence keeps its position.
func (s *Seq) Dedup() {
	if s.Len() < 2 {
		return
	}
	index := make(map[string]int, len(s.literals))
	kept := s.literals[:0]
	for _, lit := range s.literals {
		if i, ok := index[string(lit.Bytes)]; ok {
			kept[i].Complete = kept[i].Complete || lit.Complete
			continue
		}
		index[string(lit.Bytes)] = len(kept)
		kept = append(kept, lit)
	}
	s.literals = kept
}

// MakeInexact marks every literal incomplete.
func (s *Seq) MakeInexact() {
	if s == nil {
		return
	}
	for i := range s.literals {
		s.literals[i].Complete = false
	}
}

// Minimize drops literals that have a shorter literal of the set as a
// prefix. For prefix filtering "foo" already covers "foobar". Surviving
// literals are ordered by length, then bytes.
//
// Minimize changes the set of strings described, so it must only be applied
// to prefix sets, never to an exact language.
func (s *Seq) Minimize() {
	if s.IsEmpty() {
		return
	}
	sort.SliceStable(s.literals, func(i, j int) bool {
		a, b := s.literals[i].Bytes, s.literals[j].Bytes
		if len(a) != len(b) {
			return len(a) < len(b)
		}
		return bytes.Compare(a, b) < 0
	})

	kept := make([]Literal, 0, len(s.literals))
	for _, cur := range s.literals {
		redundant := false
		for _, k := range kept {
			if bytes.HasPrefix(cur.Bytes, k.Bytes) {
				redundant = true
				break
			}
		}
		if !redundant {
			kept = append(kept, cur)
		}
	}
	s.literals = kept
}

// LongestCommonPrefix returns the longest prefix shared by all literals, or
// an empty slice.
//
// Example:
//
//	seq := literal.NewSeq(
//	    literal.NewLiteral([]byte("hello"), true),
//	    literal.NewLiteral([]byte("help"), true),
//	)
//	fmt.Println(string(seq.LongestCommonPrefix())) // Output: hel
func (s *Seq) LongestCommonPrefix() []byte {
	if s.IsEmpty() {
		return []byte{}
	}
	prefix := s.literals[0].Bytes
	for _, lit := range s.literals[1:] {
		prefix = commonPrefix(prefix, lit.Bytes)
		if len(prefix) == 0 {
			return []byte{}
		}
	}
	return append([]byte(nil), prefix...)
}

func commonPrefix(a, b []byte) []byte {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:n]
}
