package literal

import (
	"unicode/utf8"

	"github.com/coregx/thompson/syntax"
)

// ExtractorConfig limits how much literal information is kept.
type ExtractorConfig struct {
	// MaxLiterals caps the size of any extracted set. Cross products of
	// alternations grow fast; a set that would exceed the cap is given up
	// (exact language) or shortened (prefixes). Default: 64.
	MaxLiterals int

	// MaxLiteralLen caps the byte length of a literal. Exact literals
	// longer than this are given up; prefix literals are truncated.
	// Default: 64.
	MaxLiteralLen int
}

// DefaultConfig returns the default extractor configuration.
func DefaultConfig() ExtractorConfig {
	return ExtractorConfig{
		MaxLiterals:   64,
		MaxLiteralLen: 64,
	}
}

// Extractor derives literal sets from postfix token streams.
//
// It evaluates the stream with the same stack discipline as the NFA
// compiler, but each stack entry describes a fragment's language instead of
// its states:
//
//	"abc"        exact ["abc"]            prefixes ["abc"]
//	"ab|cd"      exact ["ab", "cd"]       prefixes ["ab", "cd"]
//	"a[bc]"      exact ["ab", "ac"]       prefixes ["ab", "ac"]
//	"ab.*"       exact nil                prefixes ["ab"]
//	"a?b"        exact ["ab", "b"]        prefixes ["b", "ab"]
//	".*ab"       exact nil                prefixes nil
//
// A literal U+FFFD is treated like '.', since invalid input bytes also
// decode to U+FFFD and would not contain its UTF-8 encoding.
type Extractor struct {
	config ExtractorConfig
}

// New creates an Extractor. Non-positive limits take their defaults.
func New(config ExtractorConfig) *Extractor {
	def := DefaultConfig()
	if config.MaxLiterals <= 0 {
		config.MaxLiterals = def.MaxLiterals
	}
	if config.MaxLiteralLen <= 0 {
		config.MaxLiteralLen = def.MaxLiteralLen
	}
	return &Extractor{config: config}
}

// Result is the literal information for a whole pattern.
type Result struct {
	// Exact is the complete language as a finite set, or nil when the
	// language is infinite or exceeds the configured limits.
	Exact *Seq

	// Prefixes holds strings at least one of which starts every accepted
	// input, minimized for prefix filtering. Nil when no such set is known.
	Prefixes *Seq
}

// info describes the language of one fragment.
type info struct {
	exact  *Seq
	prefix *Seq
}

// Extract evaluates postfix and returns its literal information. A malformed
// stream yields an empty Result, since it cannot compile either.
func (e *Extractor) Extract(postfix []syntax.Token) Result {
	if len(postfix) == 0 {
		eps := NewSeq(NewLiteral(nil, true))
		return Result{Exact: eps, Prefixes: eps.Clone()}
	}

	stack := make([]info, 0, 8)
	pop := func() (info, bool) {
		if len(stack) == 0 {
			return info{}, false
		}
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return top, true
	}

	for _, tok := range postfix {
		var cur info
		switch tok.Kind {
		case syntax.Literal:
			cur = e.literal(tok.Rune)
		case syntax.AnyChar:
			cur = info{}
		case syntax.Concat:
			b, ok1 := pop()
			a, ok2 := pop()
			if !ok1 || !ok2 {
				return Result{}
			}
			cur = e.concat(a, b)
		case syntax.Union:
			b, ok1 := pop()
			a, ok2 := pop()
			if !ok1 || !ok2 {
				return Result{}
			}
			cur = e.union(a, b)
		case syntax.Question:
			a, ok := pop()
			if !ok {
				return Result{}
			}
			cur = e.question(a)
		case syntax.Star:
			a, ok := pop()
			if !ok {
				return Result{}
			}
			cur = e.star(a)
		case syntax.Plus:
			a, ok := pop()
			if !ok {
				return Result{}
			}
			cur = e.plus(a)
		default:
			return Result{}
		}
		stack = append(stack, cur)
	}
	if len(stack) != 1 {
		return Result{}
	}

	res := Result{Exact: stack[0].exact, Prefixes: stack[0].prefix}
	if res.Prefixes != nil {
		res.Prefixes = res.Prefixes.Clone()
		res.Prefixes.Minimize()
	}
	return res
}

// ExtractPrefixes returns the minimized prefix set of postfix, or nil.
func (e *Extractor) ExtractPrefixes(postfix []syntax.Token) *Seq {
	return e.Extract(postfix).Prefixes
}

func (e *Extractor) literal(r rune) info {
	if r == utf8.RuneError {
		return info{}
	}
	b := utf8.AppendRune(nil, r)
	return info{
		exact:  NewSeq(NewLiteral(b, true)),
		prefix: NewSeq(NewLiteral(append([]byte(nil), b...), true)),
	}
}

func (e *Extractor) concat(a, b info) info {
	var out info
	if a.exact != nil && b.exact != nil {
		out.exact = e.cross(a.exact, b.exact, false)
	}

	switch {
	case a.exact != nil && b.prefix != nil:
		out.prefix = e.cross(a.exact, b.prefix, true)
		if out.prefix == nil {
			out.prefix = e.truncate(a.exact)
		}
	case a.exact != nil:
		out.prefix = e.truncate(a.exact)
	case a.prefix != nil:
		out.prefix = e.truncate(a.prefix)
	}
	return out
}

func (e *Extractor) union(a, b info) info {
	return info{
		exact:  e.merge(a.exact, b.exact),
		prefix: e.merge(a.prefix, b.prefix),
	}
}

func (e *Extractor) question(a info) info {
	var out info
	eps := NewSeq(NewLiteral(nil, true))
	if a.exact != nil {
		out.exact = e.merge(a.exact, eps)
	}
	// The empty prefix constrains nothing.
	return out
}

func (e *Extractor) star(a info) info {
	if onlyEmpty(a.exact) {
		return info{exact: a.exact.Clone(), prefix: a.exact.Clone()}
	}
	return info{}
}

func (e *Extractor) plus(a info) info {
	if onlyEmpty(a.exact) {
		return info{exact: a.exact.Clone(), prefix: a.exact.Clone()}
	}
	var out info
	if a.prefix != nil {
		out.prefix = a.prefix.Clone()
		out.prefix.MakeInexact()
	}
	return out
}

// cross returns every concatenation of a literal of a with one of b, or nil
// when the result exceeds the limits. With prefix set, results longer than
// MaxLiteralLen are truncated instead of given up.
func (e *Extractor) cross(a, b *Seq, prefix bool) *Seq {
	if a.Len()*b.Len() > e.config.MaxLiterals {
		return nil
	}
	out := make([]Literal, 0, a.Len()*b.Len())
	for _, x := range a.literals {
		for _, y := range b.literals {
			joined := make([]byte, 0, len(x.Bytes)+len(y.Bytes))
			joined = append(joined, x.Bytes...)
			joined = append(joined, y.Bytes...)
			lit := NewLiteral(joined, x.Complete && y.Complete)
			if len(joined) > e.config.MaxLiteralLen {
				if !prefix {
					return nil
				}
				lit = NewLiteral(joined[:e.config.MaxLiteralLen], false)
			}
			out = append(out, lit)
		}
	}
	seq := NewSeq(out...)
	seq.Dedup()
	return seq
}

// merge returns the union of a and b, or nil when either is unbounded or the
// union exceeds MaxLiterals.
func (e *Extractor) merge(a, b *Seq) *Seq {
	if a == nil || b == nil {
		return nil
	}
	seq := NewSeq(append(a.Literals(), b.Literals()...)...)
	seq.Dedup()
	if seq.Len() > e.config.MaxLiterals {
		return nil
	}
	return seq
}

// truncate copies s as an inexact prefix set, cutting literals at
// MaxLiteralLen.
func (e *Extractor) truncate(s *Seq) *Seq {
	out := s.Clone()
	for i := range out.literals {
		if len(out.literals[i].Bytes) > e.config.MaxLiteralLen {
			out.literals[i].Bytes = out.literals[i].Bytes[:e.config.MaxLiteralLen]
		}
		out.literals[i].Complete = false
	}
	out.Dedup()
	return out
}

func onlyEmpty(s *Seq) bool {
	if s == nil {
		return false
	}
	for _, lit := range s.literals {
		if !lit.IsEmpty() {
			return false
		}
	}
	return s.Len() > 0
}
