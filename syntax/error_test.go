package syntax

import (
	"errors"
	"fmt"
	"testing"
)

func TestInvalidPatternError_Error(t *testing.T) {
	tests := []struct {
		err  *InvalidPatternError
		want string
	}{
		{&InvalidPatternError{Pattern: "a(", Pos: 1, Err: ErrUnbalancedParens}, `invalid pattern "a(" at 1: unbalanced parentheses`},
		{&InvalidPatternError{Pattern: "a(", Pos: -1, Err: ErrUnbalancedParens}, `invalid pattern "a(": unbalanced parentheses`},
		{&InvalidPatternError{Pos: 3, Err: ErrMissingOperand}, "invalid pattern at 3: operator is missing an operand"},
		{&InvalidPatternError{Pos: -1, Err: ErrNilPattern}, "invalid pattern: pattern is absent"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestWithPattern(t *testing.T) {
	base := &InvalidPatternError{Pos: 2, Err: ErrMissingOperand}
	err := WithPattern(base, "a|")
	var pe *InvalidPatternError
	if !errors.As(err, &pe) || pe.Pattern != "a|" || pe.Pos != 2 {
		t.Fatalf("WithPattern() = %v", err)
	}
	if base.Pattern != "" {
		t.Error("WithPattern modified its argument")
	}

	// An error that already names its pattern keeps it.
	named := &InvalidPatternError{Pattern: "x", Pos: 0, Err: ErrEmptyClass}
	if got := WithPattern(named, "y"); got != error(named) {
		t.Errorf("WithPattern() replaced an existing pattern: %v", got)
	}

	other := fmt.Errorf("unrelated")
	if got := WithPattern(other, "y"); got != other {
		t.Errorf("WithPattern() changed an unrelated error: %v", got)
	}
}
