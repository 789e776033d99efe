// Package syntax turns pattern text into the token streams consumed by the
// Thompson compiler.
//
// The pipeline has two stages:
//   - Tokenize: pattern text → infix tokens, with escapes resolved, character
//     classes expanded into parenthesized unions, and concatenation made
//     explicit as a Concat operator
//   - ToPostfix: infix tokens → postfix tokens via the shunting-yard algorithm
//
// Supported grammar: literals, '.' (any single character), '|' (union),
// implicit concatenation, the postfix quantifiers '?', '*' and '+', '(' ')'
// grouping, '[...]' classes with 'x-y' ranges, and '\' escapes of any
// metacharacter or of the backslash itself.
//
// Example:
//
//	infix, err := syntax.Tokenize("a(b|c)*")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	postfix, err := syntax.ToPostfix(infix)
//	fmt.Println(syntax.Format(postfix)) // Output: abc|*·
package syntax

import (
	"fmt"
	"strings"
)

// Kind identifies the lexical category of a Token.
type Kind uint8

const (
	// Literal matches exactly one code point, carried in Token.Rune.
	Literal Kind = iota

	// AnyChar matches any single code point ('.').
	AnyChar

	// LeftParen opens a group.
	LeftParen

	// RightParen closes a group.
	RightParen

	// Union is the binary alternation operator ('|').
	Union

	// Concat is the binary concatenation operator. It never appears in
	// pattern text; the lexer inserts it between juxtaposed operands.
	Concat

	// Question is the postfix zero-or-one quantifier ('?').
	Question

	// Star is the postfix zero-or-more quantifier ('*').
	Star

	// Plus is the postfix one-or-more quantifier ('+').
	Plus
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case Literal:
		return "Literal"
	case AnyChar:
		return "AnyChar"
	case LeftParen:
		return "LeftParen"
	case RightParen:
		return "RightParen"
	case Union:
		return "Union"
	case Concat:
		return "Concat"
	case Question:
		return "Question"
	case Star:
		return "Star"
	case Plus:
		return "Plus"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// IsOperator reports whether the kind is one of the binary or postfix
// operators handled by the precedence table.
func (k Kind) IsOperator() bool {
	switch k {
	case Union, Concat, Question, Star, Plus:
		return true
	}
	return false
}

// IsUnary reports whether the kind is a postfix quantifier.
func (k Kind) IsUnary() bool {
	return k == Question || k == Star || k == Plus
}

// Precedence returns the binding rank used by ToPostfix. Higher binds tighter.
// Operand kinds and RightParen have rank 0.
//
//	LeftParen=1, Union=2, Concat=3, Question/Star/Plus=4
func Precedence(k Kind) int {
	switch k {
	case LeftParen:
		return 1
	case Union:
		return 2
	case Concat:
		return 3
	case Question, Star, Plus:
		return 4
	default:
		return 0
	}
}

// Token is a single lexical unit. Tokens are plain values; two tokens are the
// same token when they compare equal.
type Token struct {
	Kind Kind

	// Rune is the matched code point for Literal tokens and zero otherwise.
	Rune rune
}

// Lit returns a Literal token for r.
func Lit(r rune) Token {
	return Token{Kind: Literal, Rune: r}
}

// Op returns an operand-less token of the given kind.
func Op(k Kind) Token {
	return Token{Kind: k}
}

// String renders the token the way it would appear in a pattern, escaping
// literal metacharacters.
func (t Token) String() string {
	switch t.Kind {
	case Literal:
		if isMeta(t.Rune) || t.Rune == '\\' {
			return `\` + string(t.Rune)
		}
		return string(t.Rune)
	case AnyChar:
		return "."
	case LeftParen:
		return "("
	case RightParen:
		return ")"
	case Union:
		return "|"
	case Concat:
		// '.' is taken by AnyChar; '·' keeps postfix dumps unambiguous.
		return "·"
	case Question:
		return "?"
	case Star:
		return "*"
	case Plus:
		return "+"
	default:
		return t.Kind.String()
	}
}

// Format renders a token sequence as a compact string, one token after
// another. It is meant for debugging and tests.
func Format(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.String())
	}
	return b.String()
}
