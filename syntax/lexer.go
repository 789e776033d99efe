package syntax

import (
	"unicode/utf8"
)

// Tokenize converts pattern text into an infix token stream with explicit
// Concat operators.
//
// Escapes: '\' followed by a metacharacter or by '\' yields a Literal for
// that character. A '\' before any other character is dropped and the
// character is lexed normally. A trailing lone '\' produces no token.
//
// Classes: "[abc]" becomes "(a|b|c)" and "[a-c]" becomes "(a|b|c)". A hyphen
// that is first or last in the class is a literal. Escapes work inside
// classes, so "[\]-]" holds ']' and '-'.
//
// The empty pattern yields an empty stream and is valid.
//
// Example:
//
//	tokens, _ := syntax.Tokenize("ab*")
//	fmt.Println(syntax.Format(tokens)) // Output: a·b*
func Tokenize(pattern string) ([]Token, error) {
	return TokenizeLimit(pattern, 0)
}

// TokenizeLimit is Tokenize with a state budget. It keeps a running count of
// the automaton states the tokens will need (see StateCost) and fails with
// ErrTooComplex, at the byte offset of the offending token or class, as soon
// as the count would pass maxStates. Class ranges are sized before they are
// expanded, so "[\x00-\U0010FFFF]" under a small budget is refused without
// materializing its members.
//
// A maxStates of zero or less disables the check.
func TokenizeLimit(pattern string, maxStates int) ([]Token, error) {
	l := &lexer{
		pattern: pattern,
		limit:   maxStates,
		tokens:  make([]Token, 0, len(pattern)),
	}
	if err := l.run(); err != nil {
		return nil, err
	}
	return insertConcat(l.tokens), nil
}

// TokenizeRef is Tokenize for a pattern that may be absent. A nil pattern
// fails with ErrNilPattern; a pointer to "" is the empty pattern.
func TokenizeRef(pattern *string) ([]Token, error) {
	if pattern == nil {
		return nil, patternError("", -1, ErrNilPattern)
	}
	return Tokenize(*pattern)
}

// StateCost returns the number of automaton states Thompson's construction
// allocates for one token of kind k: two for every operand and for every
// operator except Concat, which only links existing states.
func StateCost(k Kind) int {
	switch {
	case k == Literal, k == AnyChar:
		return 2
	case k == Union, k.IsUnary():
		return 2
	default:
		return 0
	}
}

// isMeta reports whether r has an operator meaning outside classes.
func isMeta(r rune) bool {
	switch r {
	case '(', ')', '[', ']', '?', '*', '+', '|', '.':
		return true
	}
	return false
}

// metaToken maps a rune outside a class to its token. A stray ']' has no
// operator meaning and stays a literal.
func metaToken(r rune) Token {
	switch r {
	case '(':
		return Op(LeftParen)
	case ')':
		return Op(RightParen)
	case '?':
		return Op(Question)
	case '*':
		return Op(Star)
	case '+':
		return Op(Plus)
	case '|':
		return Op(Union)
	case '.':
		return Op(AnyChar)
	default:
		return Lit(r)
	}
}

type lexer struct {
	pattern string
	limit   int
	states  int
	tokens  []Token
}

// charge adds cost states to the running count.
func (l *lexer) charge(pos, cost int) error {
	if l.limit <= 0 {
		return nil
	}
	l.states += cost
	if l.states > l.limit {
		return patternError(l.pattern, pos, ErrTooComplex)
	}
	return nil
}

func (l *lexer) emit(pos int, t Token) error {
	if err := l.charge(pos, StateCost(t.Kind)); err != nil {
		return err
	}
	l.tokens = append(l.tokens, t)
	return nil
}

func (l *lexer) run() error {
	pattern := l.pattern
	for pos := 0; pos < len(pattern); {
		r, size := utf8.DecodeRuneInString(pattern[pos:])
		switch r {
		case '\\':
			next := pos + size
			if next >= len(pattern) {
				pos = next
				continue
			}
			r2, size2 := utf8.DecodeRuneInString(pattern[next:])
			if isMeta(r2) || r2 == '\\' {
				if err := l.emit(pos, Lit(r2)); err != nil {
					return err
				}
				pos = next + size2
				continue
			}
			pos = next
		case '[':
			end, err := l.class(pos)
			if err != nil {
				return err
			}
			pos = end
		default:
			if err := l.emit(pos, metaToken(r)); err != nil {
				return err
			}
			pos += size
		}
	}
	return nil
}

// classMember is one character between the brackets of a class.
type classMember struct {
	r       rune
	escaped bool
}

func (m classMember) isHyphen() bool {
	return m.r == '-' && !m.escaped
}

// span is an inclusive run of code points inside a class.
type span struct {
	lo, hi rune
}

// class scans the class opening at pattern[open], appends its expansion and
// returns the offset just past the closing ']'.
func (l *lexer) class(open int) (int, error) {
	pattern := l.pattern
	var members []classMember
	pos := open + 1
	for {
		if pos >= len(pattern) {
			return 0, patternError(pattern, open, ErrUnterminatedClass)
		}
		r, size := utf8.DecodeRuneInString(pattern[pos:])
		if r == ']' {
			pos += size
			break
		}
		if r == '\\' {
			next := pos + size
			if next >= len(pattern) {
				return 0, patternError(pattern, open, ErrUnterminatedClass)
			}
			r2, size2 := utf8.DecodeRuneInString(pattern[next:])
			members = append(members, classMember{r: r2, escaped: true})
			pos = next + size2
			continue
		}
		members = append(members, classMember{r: r})
		pos += size
	}

	if len(members) == 0 {
		return 0, patternError(pattern, open, ErrEmptyClass)
	}

	spans := make([]span, 0, len(members))
	width := 0
	n := len(members)
	for i := 0; i < n; {
		m := members[i]
		if i+2 < n && members[i+1].isHyphen() {
			lo, hi := m, members[i+2]
			if lo.isHyphen() || hi.isHyphen() || lo.r > hi.r {
				return 0, patternError(pattern, open, ErrInvalidRange)
			}
			spans = append(spans, span{lo: lo.r, hi: hi.r})
			width += int(hi.r-lo.r) + 1
			i += 3
			continue
		}
		// A hyphen is literal only at either edge of the class.
		if m.isHyphen() && i != 0 && i != n-1 {
			return 0, patternError(pattern, open, ErrInvalidRange)
		}
		spans = append(spans, span{lo: m.r, hi: m.r})
		width++
		i++
	}

	// width members joined by width-1 unions.
	if err := l.charge(open, 2*width+2*(width-1)); err != nil {
		return 0, err
	}

	l.tokens = append(l.tokens, Op(LeftParen))
	first := true
	for _, sp := range spans {
		for r := sp.lo; r <= sp.hi; r++ {
			if !first {
				l.tokens = append(l.tokens, Op(Union))
			}
			l.tokens = append(l.tokens, Lit(r))
			first = false
		}
	}
	l.tokens = append(l.tokens, Op(RightParen))
	return pos, nil
}

// insertConcat makes juxtaposition explicit: a Concat goes between a token
// that can end an operand and a token that can start one.
func insertConcat(raw []Token) []Token {
	out := make([]Token, 0, 2*len(raw))
	for i, t := range raw {
		out = append(out, t)
		if i+1 < len(raw) && needsConcat(t, raw[i+1]) {
			out = append(out, Op(Concat))
		}
	}
	return out
}

func needsConcat(cur, next Token) bool {
	switch cur.Kind {
	case LeftParen, Union:
		return false
	}
	switch next.Kind {
	case Literal, AnyChar, LeftParen:
		return true
	}
	return false
}
