package syntax

import "testing"

func TestPrecedence(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{LeftParen, 1},
		{Union, 2},
		{Concat, 3},
		{Question, 4},
		{Star, 4},
		{Plus, 4},
		{Literal, 0},
		{AnyChar, 0},
		{RightParen, 0},
	}
	for _, tt := range tests {
		if got := Precedence(tt.kind); got != tt.want {
			t.Errorf("Precedence(%s) = %d, want %d", tt.kind, got, tt.want)
		}
	}
}

func TestKind_Predicates(t *testing.T) {
	for _, k := range []Kind{Union, Concat, Question, Star, Plus} {
		if !k.IsOperator() {
			t.Errorf("%s.IsOperator() = false", k)
		}
	}
	for _, k := range []Kind{Literal, AnyChar, LeftParen, RightParen} {
		if k.IsOperator() {
			t.Errorf("%s.IsOperator() = true", k)
		}
	}
	for _, k := range []Kind{Question, Star, Plus} {
		if !k.IsUnary() {
			t.Errorf("%s.IsUnary() = false", k)
		}
	}
	if Union.IsUnary() || Concat.IsUnary() {
		t.Error("binary operators reported as unary")
	}
}

func TestKind_String(t *testing.T) {
	if got := Kind(200).String(); got != "Kind(200)" {
		t.Errorf("String() = %q", got)
	}
	if got := Star.String(); got != "Star" {
		t.Errorf("String() = %q", got)
	}
}

func TestToken_String(t *testing.T) {
	tests := []struct {
		tok  Token
		want string
	}{
		{Lit('a'), "a"},
		{Lit('*'), `\*`},
		{Lit('\\'), `\\`},
		{Lit('-'), "-"},
		{Op(AnyChar), "."},
		{Op(Concat), "·"},
		{Op(Union), "|"},
		{Op(LeftParen), "("},
		{Token{Kind: Kind(50)}, "Kind(50)"},
	}
	for _, tt := range tests {
		if got := tt.tok.String(); got != tt.want {
			t.Errorf("%+v.String() = %q, want %q", tt.tok, got, tt.want)
		}
	}
}

func TestToken_Equality(t *testing.T) {
	if Lit('a') != Lit('a') {
		t.Error("equal literals compare unequal")
	}
	if Lit('a') == Lit('b') || Op(Star) == Op(Plus) {
		t.Error("distinct tokens compare equal")
	}
}
