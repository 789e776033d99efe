package syntax

import (
	"errors"
	"fmt"
)

// Pattern errors. Every failure of Tokenize, ToPostfix and the NFA compiler
// is an *InvalidPatternError wrapping exactly one of these.
var (
	// ErrNilPattern indicates an absent pattern (as opposed to the empty one).
	ErrNilPattern = errors.New("pattern is absent")

	// ErrUnterminatedClass indicates a '[' without a matching ']'.
	ErrUnterminatedClass = errors.New("unterminated character class")

	// ErrEmptyClass indicates a class with no members, "[]".
	ErrEmptyClass = errors.New("empty character class")

	// ErrInvalidRange indicates an inverted range such as [z-a], or a hyphen
	// in a position where it is neither a literal nor a range operator.
	ErrInvalidRange = errors.New("invalid character class range")

	// ErrUnbalancedParens indicates a ')' without '(' or a '(' never closed.
	ErrUnbalancedParens = errors.New("unbalanced parentheses")

	// ErrMissingOperand indicates an operator applied with too few operands.
	ErrMissingOperand = errors.New("operator is missing an operand")

	// ErrDanglingOperand indicates operands left over after the last operator.
	ErrDanglingOperand = errors.New("operands without a joining operator")

	// ErrTooComplex indicates the automaton would exceed the state budget.
	ErrTooComplex = errors.New("pattern too complex")

	// ErrUnknownToken indicates a token whose Kind is outside the closed set.
	ErrUnknownToken = errors.New("unknown token kind")
)

// InvalidPatternError reports a pattern that cannot be compiled.
// No partial result accompanies it.
type InvalidPatternError struct {
	// Pattern is the offending pattern text when known.
	Pattern string

	// Pos is the byte offset in Pattern (for lexer errors) or the token
	// index in the stream (for converter and compiler errors), or -1.
	Pos int

	// Err is one of the sentinel errors of this package.
	Err error
}

// Error implements the error interface.
func (e *InvalidPatternError) Error() string {
	switch {
	case e.Pattern != "" && e.Pos >= 0:
		return fmt.Sprintf("invalid pattern %q at %d: %v", e.Pattern, e.Pos, e.Err)
	case e.Pattern != "":
		return fmt.Sprintf("invalid pattern %q: %v", e.Pattern, e.Err)
	case e.Pos >= 0:
		return fmt.Sprintf("invalid pattern at %d: %v", e.Pos, e.Err)
	default:
		return fmt.Sprintf("invalid pattern: %v", e.Err)
	}
}

// Unwrap returns the underlying sentinel.
func (e *InvalidPatternError) Unwrap() error {
	return e.Err
}

func patternError(pattern string, pos int, err error) *InvalidPatternError {
	return &InvalidPatternError{Pattern: pattern, Pos: pos, Err: err}
}

// WithPattern returns err with Pattern filled in when err is an
// *InvalidPatternError that does not carry one yet. Other errors pass through.
func WithPattern(err error, pattern string) error {
	var pe *InvalidPatternError
	if errors.As(err, &pe) && pe.Pattern == "" {
		cp := *pe
		cp.Pattern = pattern
		return &cp
	}
	return err
}
