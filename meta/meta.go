package meta

import (
	"sync/atomic"

	"github.com/coregx/thompson/literal"
	"github.com/coregx/thompson/nfa"
	"github.com/coregx/thompson/prefilter"
	"github.com/coregx/thompson/syntax"
)

// Engine is a compiled pattern together with its chosen strategy.
//
// An Engine is immutable apart from its statistics counters, and is safe for
// concurrent use.
type Engine struct {
	pattern   string
	postfix   []syntax.Token
	automaton *nfa.Automaton
	strategy  Strategy

	// literals is the exact language, set for UseLiteralSet.
	literals map[string]struct{}

	// prefilter is set for UsePrefilter.
	prefilter *prefilter.Tracker

	runs                atomic.Uint64
	nfaRuns             atomic.Uint64
	literalSetRuns      atomic.Uint64
	prefilterRejections atomic.Uint64
}

// Stats is a snapshot of execution statistics.
type Stats struct {
	// Runs counts every Run and RunBytes call.
	Runs uint64

	// NFARuns counts runs decided by simulating the automaton.
	NFARuns uint64

	// LiteralSetRuns counts runs decided by set membership.
	LiteralSetRuns uint64

	// PrefilterRejections counts runs rejected by the prefilter.
	PrefilterRejections uint64
}

// Compile compiles a pattern with the default configuration.
//
// Steps:
//  1. Tokenize and convert to postfix
//  2. Build the Thompson automaton
//  3. Extract the exact language and prefix literals
//  4. Select a strategy
func Compile(pattern string) (*Engine, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// CompileWithConfig compiles a pattern with a custom configuration.
//
// Returns a *ConfigError if config is invalid, or a
// *syntax.InvalidPatternError if the pattern is.
func CompileWithConfig(pattern string, config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	postfix, err := syntax.ParseLimit(pattern, config.MaxStates)
	if err != nil {
		return nil, err
	}
	return compilePostfix(pattern, postfix, config)
}

// CompilePostfix builds an engine from an already converted token stream.
// The pattern text is only used in errors and String.
func CompilePostfix(pattern string, postfix []syntax.Token, config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return compilePostfix(pattern, postfix, config)
}

func compilePostfix(pattern string, postfix []syntax.Token, config Config) (*Engine, error) {
	compiler := nfa.NewCompiler(nfa.CompilerConfig{MaxStates: config.MaxStates})
	automaton, err := compiler.Compile(postfix)
	if err != nil {
		return nil, syntax.WithPattern(err, pattern)
	}

	e := &Engine{
		pattern:   pattern,
		postfix:   append([]syntax.Token(nil), postfix...),
		automaton: automaton,
		strategy:  UseNFA,
	}
	if !config.EnablePrefilter && !config.EnableLiteralSet {
		return e, nil
	}

	extractor := literal.New(literal.ExtractorConfig{
		MaxLiterals:   config.MaxLiterals,
		MaxLiteralLen: config.MaxLiteralLen,
	})
	res := extractor.Extract(postfix)
	strategy, pf := selectStrategy(res, config)
	e.strategy = strategy

	switch strategy {
	case UseLiteralSet:
		e.literals = make(map[string]struct{}, res.Exact.Len())
		for _, lit := range res.Exact.Literals() {
			e.literals[string(lit.Bytes)] = struct{}{}
		}
	case UsePrefilter:
		e.prefilter = prefilter.NewTracker(pf)
	}
	return e, nil
}

// Run reports whether the pattern accepts the whole of input.
func (e *Engine) Run(input string) bool {
	e.runs.Add(1)
	switch e.strategy {
	case UseLiteralSet:
		e.literalSetRuns.Add(1)
		_, ok := e.literals[input]
		return ok
	case UsePrefilter:
		if !e.prefilter.IsCandidate(input) {
			e.prefilterRejections.Add(1)
			return false
		}
	}
	e.nfaRuns.Add(1)
	return e.automaton.Run(input)
}

// RunBytes is Run for a byte slice.
func (e *Engine) RunBytes(input []byte) bool {
	e.runs.Add(1)
	switch e.strategy {
	case UseLiteralSet:
		e.literalSetRuns.Add(1)
		_, ok := e.literals[string(input)]
		return ok
	case UsePrefilter:
		if !e.prefilter.IsCandidate(string(input)) {
			e.prefilterRejections.Add(1)
			return false
		}
	}
	e.nfaRuns.Add(1)
	return e.automaton.RunBytes(input)
}

// Automaton returns the compiled automaton. Every strategy agrees with it.
func (e *Engine) Automaton() *nfa.Automaton {
	return e.automaton
}

// Postfix returns a copy of the postfix token stream the engine was built from.
func (e *Engine) Postfix() []syntax.Token {
	return append([]syntax.Token(nil), e.postfix...)
}

// Pattern returns the source pattern.
func (e *Engine) Pattern() string {
	return e.pattern
}

// Strategy returns the strategy chosen at compile time.
func (e *Engine) Strategy() Strategy {
	return e.strategy
}

// PrefilterName returns the prefilter in use, or "" if there is none or it
// has been retired as ineffective.
func (e *Engine) PrefilterName() string {
	if e.prefilter == nil || !e.prefilter.IsActive() {
		return ""
	}
	return e.prefilter.Name()
}

// LiteralCount returns the size of the exact language for UseLiteralSet, or 0.
func (e *Engine) LiteralCount() int {
	return len(e.literals)
}

// Stats returns a snapshot of execution statistics.
func (e *Engine) Stats() Stats {
	return Stats{
		Runs:                e.runs.Load(),
		NFARuns:             e.nfaRuns.Load(),
		LiteralSetRuns:      e.literalSetRuns.Load(),
		PrefilterRejections: e.prefilterRejections.Load(),
	}
}

// ResetStats resets execution statistics to zero. The prefilter's own
// effectiveness history is reset too.
func (e *Engine) ResetStats() {
	e.runs.Store(0)
	e.nfaRuns.Store(0)
	e.literalSetRuns.Store(0)
	e.prefilterRejections.Store(0)
	if e.prefilter != nil {
		e.prefilter.Reset()
	}
}
