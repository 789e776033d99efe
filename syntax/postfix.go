package syntax

import "fmt"

// ToPostfix reorders an infix token stream into postfix order using the
// shunting-yard algorithm and the Precedence table.
//
// Every operator pops operators of greater or equal precedence before it is
// pushed, so Union and Concat associate to the left and stacked quantifiers
// apply innermost first. LeftParen has the lowest rank and is only removed by
// its RightParen.
//
// Fails with ErrUnbalancedParens when a RightParen finds no LeftParen, or a
// LeftParen remains once input is exhausted.
//
// Example:
//
//	infix, _ := syntax.Tokenize("a|bc")
//	postfix, _ := syntax.ToPostfix(infix)
//	fmt.Println(syntax.Format(postfix)) // Output: abc·|
func ToPostfix(tokens []Token) ([]Token, error) {
	type pending struct {
		tok Token
		pos int
	}

	out := make([]Token, 0, len(tokens))
	stack := make([]pending, 0, 8)

	for i, t := range tokens {
		switch t.Kind {
		case Literal, AnyChar:
			out = append(out, t)

		case LeftParen:
			stack = append(stack, pending{tok: t, pos: i})

		case RightParen:
			for {
				if len(stack) == 0 {
					return nil, patternError("", i, ErrUnbalancedParens)
				}
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if top.tok.Kind == LeftParen {
					break
				}
				out = append(out, top.tok)
			}

		default:
			if !t.Kind.IsOperator() {
				return nil, patternError("", i, fmt.Errorf("%w: %s", ErrUnknownToken, t.Kind))
			}
			prec := Precedence(t.Kind)
			for len(stack) > 0 && Precedence(stack[len(stack)-1].tok.Kind) >= prec {
				out = append(out, stack[len(stack)-1].tok)
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, pending{tok: t, pos: i})
		}
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.tok.Kind == LeftParen {
			return nil, patternError("", top.pos, ErrUnbalancedParens)
		}
		out = append(out, top.tok)
	}
	return out, nil
}

// Parse runs Tokenize and ToPostfix and attaches the pattern text to any
// error.
func Parse(pattern string) ([]Token, error) {
	return ParseLimit(pattern, 0)
}

// ParseLimit is Parse with the state budget of TokenizeLimit.
func ParseLimit(pattern string, maxStates int) ([]Token, error) {
	infix, err := TokenizeLimit(pattern, maxStates)
	if err != nil {
		return nil, err
	}
	postfix, err := ToPostfix(infix)
	if err != nil {
		return nil, WithPattern(err, pattern)
	}
	return postfix, nil
}
