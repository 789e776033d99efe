package nfa

import (
	"fmt"

	"github.com/coregx/thompson/syntax"
)

// CompilerConfig configures NFA compilation behavior
type CompilerConfig struct {
	// MaxStates caps the number of states one compilation may allocate.
	// Character classes over wide ranges are the usual way to hit it.
	// Default: 1,000,000
	MaxStates int
}

// DefaultCompilerConfig returns a compiler configuration with sensible defaults
func DefaultCompilerConfig() CompilerConfig {
	return CompilerConfig{
		MaxStates: 1_000_000,
	}
}

// fragment is a partially built automaton with one entry and one exit.
// Its edges live in the Builder arena; states lists the arena states this
// fragment owns. Live fragments own disjoint states.
type fragment struct {
	start  StateID
	accept StateID
	states []StateID
}

// Compiler turns postfix token streams into automatons using Thompson's
// construction. The state counter belongs to the Compiler and restarts with
// every Compile call, so independent compilations never share numbering.
//
// A Compiler is not safe for concurrent use; create one per goroutine or
// use the package-level Compile.
type Compiler struct {
	config  CompilerConfig
	builder *Builder
	stack   []fragment
}

// NewCompiler creates a new NFA compiler with the given configuration
func NewCompiler(config CompilerConfig) *Compiler {
	if config.MaxStates <= 0 {
		config.MaxStates = DefaultCompilerConfig().MaxStates
	}
	return &Compiler{config: config}
}

// NewDefaultCompiler creates a new NFA compiler with default configuration
func NewDefaultCompiler() *Compiler {
	return NewCompiler(DefaultCompilerConfig())
}

// Compile builds an automaton from postfix tokens with the default
// configuration.
func Compile(postfix []syntax.Token) (*Automaton, error) {
	return NewDefaultCompiler().Compile(postfix)
}

// CompilePattern tokenizes, converts and compiles pattern in one step.
func CompilePattern(pattern string) (*Automaton, error) {
	return NewDefaultCompiler().CompilePattern(pattern)
}

// CompilePattern tokenizes, converts and compiles pattern in one step.
// MaxStates is already enforced while tokenizing, so a wide class range
// fails with ErrTooComplex before it is expanded.
func (c *Compiler) CompilePattern(pattern string) (*Automaton, error) {
	postfix, err := syntax.ParseLimit(pattern, c.config.MaxStates)
	if err != nil {
		return nil, err
	}
	a, err := c.Compile(postfix)
	if err != nil {
		return nil, syntax.WithPattern(err, pattern)
	}
	return a, nil
}

// Compile builds an automaton from a postfix token stream.
//
// Per token:
//   - Literal c: s0 --c--> s1
//   - AnyChar: s0 --any--> s1
//   - Concat: pop e2, e1; e1.accept --ε--> e2.start
//   - Union: pop e2, e1; start --ε--> e1.start, e2.start; e1.accept, e2.accept --ε--> accept
//   - Question: pop e; start --ε--> e.start, accept; e.accept --ε--> accept
//   - Star: pop e; start --ε--> e.start, accept; e.accept --ε--> start
//   - Plus: pop e; start --ε--> e.start; e.accept --ε--> accept; accept --ε--> start
//
// An empty stream compiles to s0 --ε--> s1, which accepts only "".
// Errors are *syntax.InvalidPatternError wrapping ErrMissingOperand when an
// operator finds too few fragments, ErrDanglingOperand when more than one
// fragment remains, ErrUnbalancedParens for a parenthesis in the stream, and
// ErrTooComplex when MaxStates would be exceeded.
func (c *Compiler) Compile(postfix []syntax.Token) (*Automaton, error) {
	c.builder = NewBuilderWithCapacity(2 * len(postfix))
	c.stack = c.stack[:0]
	defer func() {
		c.builder = nil
		c.stack = c.stack[:0]
	}()

	if len(postfix) == 0 {
		f, err := c.epsilon(0)
		if err != nil {
			return nil, err
		}
		return c.finish(f)
	}

	for i, tok := range postfix {
		var (
			f   fragment
			err error
		)
		switch tok.Kind {
		case syntax.Literal:
			f, err = c.literal(i, tok.Rune)
		case syntax.AnyChar:
			f, err = c.anyChar(i)
		case syntax.Concat:
			f, err = c.concat(i)
		case syntax.Union:
			f, err = c.union(i)
		case syntax.Question:
			f, err = c.question(i)
		case syntax.Star:
			f, err = c.star(i)
		case syntax.Plus:
			f, err = c.plus(i)
		case syntax.LeftParen, syntax.RightParen:
			err = invalid(i, syntax.ErrUnbalancedParens)
		default:
			err = invalid(i, fmt.Errorf("%w: %s", syntax.ErrUnknownToken, tok.Kind))
		}
		if err != nil {
			return nil, err
		}
		c.stack = append(c.stack, f)
	}

	if len(c.stack) != 1 {
		return nil, invalid(len(postfix), syntax.ErrDanglingOperand)
	}
	return c.finish(c.stack[0])
}

func (c *Compiler) finish(f fragment) (*Automaton, error) {
	// Every allocated state belongs to the last fragment standing.
	if len(f.states) != c.builder.States() {
		return nil, &BuildError{
			Message: fmt.Sprintf("final fragment owns %d of %d states", len(f.states), c.builder.States()),
			StateID: InvalidState,
		}
	}
	return c.builder.Build([]StateID{f.start}, []StateID{f.accept})
}

func invalid(pos int, err error) error {
	return &syntax.InvalidPatternError{Pos: pos, Err: err}
}

// fresh allocates a start/accept pair, enforcing the state budget.
func (c *Compiler) fresh(pos int) (start, accept StateID, err error) {
	if c.builder.States()+2 > c.config.MaxStates {
		return InvalidState, InvalidState, invalid(pos, syntax.ErrTooComplex)
	}
	return c.builder.AddState(), c.builder.AddState(), nil
}

func (c *Compiler) pop(pos int) (fragment, error) {
	if len(c.stack) == 0 {
		return fragment{}, invalid(pos, syntax.ErrMissingOperand)
	}
	f := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	return f, nil
}

// pop2 returns the two topmost fragments in push order.
func (c *Compiler) pop2(pos int) (e1, e2 fragment, err error) {
	if len(c.stack) < 2 {
		return fragment{}, fragment{}, invalid(pos, syntax.ErrMissingOperand)
	}
	e2, _ = c.pop(pos)
	e1, _ = c.pop(pos)
	return e1, e2, nil
}

func (c *Compiler) epsilon(pos int) (fragment, error) {
	s0, s1, err := c.fresh(pos)
	if err != nil {
		return fragment{}, err
	}
	if err := c.builder.AddEpsilon(s0, s1); err != nil {
		return fragment{}, err
	}
	return fragment{start: s0, accept: s1, states: []StateID{s0, s1}}, nil
}

func (c *Compiler) literal(pos int, r rune) (fragment, error) {
	s0, s1, err := c.fresh(pos)
	if err != nil {
		return fragment{}, err
	}
	if err := c.builder.AddChar(s0, r, s1); err != nil {
		return fragment{}, err
	}
	return fragment{start: s0, accept: s1, states: []StateID{s0, s1}}, nil
}

func (c *Compiler) anyChar(pos int) (fragment, error) {
	s0, s1, err := c.fresh(pos)
	if err != nil {
		return fragment{}, err
	}
	if err := c.builder.AddWildcard(s0, s1); err != nil {
		return fragment{}, err
	}
	return fragment{start: s0, accept: s1, states: []StateID{s0, s1}}, nil
}

func (c *Compiler) concat(pos int) (fragment, error) {
	e1, e2, err := c.pop2(pos)
	if err != nil {
		return fragment{}, err
	}
	if err := c.builder.AddEpsilon(e1.accept, e2.start); err != nil {
		return fragment{}, err
	}
	return fragment{
		start:  e1.start,
		accept: e2.accept,
		states: append(e1.states, e2.states...),
	}, nil
}

func (c *Compiler) union(pos int) (fragment, error) {
	e1, e2, err := c.pop2(pos)
	if err != nil {
		return fragment{}, err
	}
	start, accept, err := c.fresh(pos)
	if err != nil {
		return fragment{}, err
	}
	edges := [][2]StateID{
		{start, e1.start},
		{start, e2.start},
		{e1.accept, accept},
		{e2.accept, accept},
	}
	if err := c.link(edges); err != nil {
		return fragment{}, err
	}
	return fragment{start: start, accept: accept, states: own(start, accept, e1.states, e2.states)}, nil
}

func (c *Compiler) question(pos int) (fragment, error) {
	return c.wrap(pos, func(e fragment, start, accept StateID) [][2]StateID {
		return [][2]StateID{
			{start, e.start},
			{start, accept},
			{e.accept, accept},
		}
	})
}

func (c *Compiler) star(pos int) (fragment, error) {
	return c.wrap(pos, func(e fragment, start, accept StateID) [][2]StateID {
		return [][2]StateID{
			{start, e.start},
			{start, accept},
			{e.accept, start},
		}
	})
}

func (c *Compiler) plus(pos int) (fragment, error) {
	return c.wrap(pos, func(e fragment, start, accept StateID) [][2]StateID {
		return [][2]StateID{
			{start, e.start},
			{e.accept, accept},
			{accept, start},
		}
	})
}

// wrap pops one fragment, surrounds it with a fresh start/accept pair and
// adds the epsilon edges chosen by edges.
func (c *Compiler) wrap(pos int, edges func(e fragment, start, accept StateID) [][2]StateID) (fragment, error) {
	e, err := c.pop(pos)
	if err != nil {
		return fragment{}, err
	}
	start, accept, err := c.fresh(pos)
	if err != nil {
		return fragment{}, err
	}
	if err := c.link(edges(e, start, accept)); err != nil {
		return fragment{}, err
	}
	return fragment{start: start, accept: accept, states: own(start, accept, e.states)}, nil
}

func (c *Compiler) link(edges [][2]StateID) error {
	for _, e := range edges {
		if err := c.builder.AddEpsilon(e[0], e[1]); err != nil {
			return err
		}
	}
	return nil
}

// own builds the state list of a fragment that consumes the given lists.
// The first list is extended in place; its fragment is gone by now.
func own(start, accept StateID, consumed ...[]StateID) []StateID {
	out := append(consumed[0], start, accept)
	for _, s := range consumed[1:] {
		out = append(out, s...)
	}
	return out
}
