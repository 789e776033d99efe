// Package prefilter rejects inputs that cannot be accepted, before the
// automaton runs.
//
// Acceptance is a whole-input property, so every accepted input starts with
// one of the pattern's prefix literals (see package literal). A prefilter
// checks that cheaply:
//   - one literal → strings.HasPrefix
//   - several literals, all one byte long → a 256-entry byte table
//   - several literals → their longest common prefix, the first-byte table,
//     then an Aho-Corasick automaton confirming that some literal occurs in
//     the input
//
// A prefilter may answer true for inputs the pattern rejects, never false
// for inputs it accepts.
//
// Example:
//
//	postfix, _ := syntax.Parse("(get|post)/.*")
//	prefixes := literal.New(literal.DefaultConfig()).ExtractPrefixes(postfix)
//	pf := prefilter.New(prefixes)
//	pf.IsCandidate("delete/x") // false
package prefilter

import (
	"strings"

	"github.com/coregx/ahocorasick"

	"github.com/coregx/thompson/literal"
)

// Prefilter is a quick-reject test for whole-input acceptance.
type Prefilter interface {
	// IsCandidate reports whether input might be accepted. False is final;
	// true means the automaton has to decide.
	IsCandidate(input string) bool

	// Name identifies the strategy, for statistics and debugging.
	Name() string

	// HeapBytes returns the approximate heap memory held by the prefilter.
	HeapBytes() int
}

// New picks a prefilter for the given prefix set. It returns nil when the
// set gives no usable constraint: a nil or empty set, or one containing the
// empty string.
func New(prefixes *literal.Seq) Prefilter {
	if prefixes.IsEmpty() || prefixes.ContainsEmpty() {
		return nil
	}
	seq := prefixes.Clone()
	seq.Minimize()

	lits := seq.Literals()
	if len(lits) == 1 {
		return newPrefix(string(lits[0].Bytes))
	}

	single := true
	for _, lit := range lits {
		if lit.Len() != 1 {
			single = false
			break
		}
	}
	if single {
		return newByteSet(lits)
	}

	pf, err := newAhoCorasick(lits)
	if err != nil {
		// Fall back to the first-byte check alone.
		return newByteSet(lits)
	}
	return pf
}

// prefix accepts inputs starting with one literal.
type prefix struct {
	lit string
}

func newPrefix(lit string) *prefix {
	return &prefix{lit: lit}
}

func (p *prefix) IsCandidate(input string) bool {
	return strings.HasPrefix(input, p.lit)
}

func (p *prefix) Name() string {
	if len(p.lit) == 1 {
		return "byte"
	}
	return "prefix"
}

func (p *prefix) HeapBytes() int {
	return len(p.lit)
}

// byteSet accepts inputs whose first byte starts one of the literals.
type byteSet struct {
	first [256]bool
	count int
}

func newByteSet(lits []literal.Literal) *byteSet {
	bs := &byteSet{}
	for _, lit := range lits {
		b := lit.Bytes[0]
		if !bs.first[b] {
			bs.first[b] = true
			bs.count++
		}
	}
	return bs
}

func (bs *byteSet) IsCandidate(input string) bool {
	return len(input) > 0 && bs.first[input[0]]
}

func (bs *byteSet) Name() string {
	return "byteset"
}

func (bs *byteSet) HeapBytes() int {
	return 0
}

// ahoCorasick combines the literals' shared prefix and the first-byte table
// with a multi-literal automaton. The automaton only confirms that a literal
// occurs within the first maxLen bytes, which every input starting with a
// literal satisfies.
type ahoCorasick struct {
	common   string
	first    *byteSet
	auto     *ahocorasick.Automaton
	patterns int
	bytes    int
	maxLen   int
}

func newAhoCorasick(lits []literal.Literal) (*ahoCorasick, error) {
	common := literal.NewSeq(lits...).LongestCommonPrefix()

	builder := ahocorasick.NewBuilder()
	total, maxLen := 0, 0
	for _, lit := range lits {
		builder.AddPattern(lit.Bytes)
		total += lit.Len()
		maxLen = max(maxLen, lit.Len())
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &ahoCorasick{
		common:   string(common),
		first:    newByteSet(lits),
		auto:     auto,
		patterns: len(lits),
		bytes:    total,
		maxLen:   maxLen,
	}, nil
}

func (ac *ahoCorasick) IsCandidate(input string) bool {
	if !strings.HasPrefix(input, ac.common) || !ac.first.IsCandidate(input) {
		return false
	}
	if len(input) > ac.maxLen {
		input = input[:ac.maxLen]
	}
	return ac.auto.IsMatch([]byte(input))
}

func (ac *ahoCorasick) Name() string {
	return "ahocorasick"
}

// HeapBytes estimates the automaton's size from its patterns; the library
// does not report it.
func (ac *ahoCorasick) HeapBytes() int {
	return ac.bytes*8 + len(ac.common)
}
