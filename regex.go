// Package thompson compiles regular expressions into Thompson NFAs and
// decides whole-input acceptance by simulating them.
//
// Matching never backtracks: the automaton tracks every live state at once
// and advances them together, one code point at a time, so Run takes time
// linear in the input whatever the pattern looks like. Patterns such as
// (a*)* or (a|aa)*b that stall backtracking engines are handled in the same
// linear time.
//
// A pattern is accepted when the automaton can consume the whole input and
// end in an accept state; there is no searching for a match inside the
// input and no anchors are needed or supported.
//
// Basic usage:
//
//	re, err := thompson.Compile("(a|b)*abb")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(re.Run("babb")) // true
//	fmt.Println(re.Run("abba")) // false
//
// Supported syntax: literals, '.' (any single code point), '|', implicit
// concatenation, the postfix quantifiers '?', '*' and '+', '(' ')' grouping,
// '[abc]' and '[a-z]' classes, and '\' escapes of metacharacters.
//
// Not supported: backreferences, lookaround, anchors, capture groups, lazy
// quantifiers, counted repetition, negated or named classes.
//
// Invalid patterns fail with *InvalidPatternError; use errors.Is with the
// Err* sentinels to tell the causes apart.
package thompson

import (
	"github.com/coregx/thompson/meta"
	"github.com/coregx/thompson/nfa"
	"github.com/coregx/thompson/syntax"
)

// Regex is a compiled pattern.
//
// A Regex is safe to use concurrently from multiple goroutines, except for
// ResetStats.
//
// Example:
//
//	re := thompson.MustCompile("colou?r")
//	if re.Run("colour") {
//	    println("accepted")
//	}
type Regex struct {
	engine  *meta.Engine
	pattern string
}

// Config controls compilation limits and fast paths. See meta.Config.
type Config = meta.Config

// ConfigError reports an invalid Config field.
type ConfigError = meta.ConfigError

// RunStats is a snapshot of a Regex's execution counters.
type RunStats = meta.Stats

// InvalidPatternError reports a pattern that cannot be compiled.
type InvalidPatternError = syntax.InvalidPatternError

// Causes wrapped by InvalidPatternError.
var (
	ErrNilPattern        = syntax.ErrNilPattern
	ErrUnterminatedClass = syntax.ErrUnterminatedClass
	ErrEmptyClass        = syntax.ErrEmptyClass
	ErrInvalidRange      = syntax.ErrInvalidRange
	ErrUnbalancedParens  = syntax.ErrUnbalancedParens
	ErrMissingOperand    = syntax.ErrMissingOperand
	ErrDanglingOperand   = syntax.ErrDanglingOperand
	ErrTooComplex        = syntax.ErrTooComplex
)

// Compile compiles a pattern with the default configuration.
//
// The empty pattern is valid and accepts only the empty string.
//
// Example:
//
//	re, err := thompson.Compile("[a-c]+x")
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// CompileRef compiles a pattern that may be absent. A nil pattern fails
// with ErrNilPattern, unlike a pointer to "", which is the empty pattern.
func CompileRef(pattern *string) (*Regex, error) {
	if pattern == nil {
		return nil, &InvalidPatternError{Pos: -1, Err: ErrNilPattern}
	}
	return Compile(*pattern)
}

// MustCompile compiles a pattern and panics if it fails.
//
// This is useful for patterns known to be valid at compile time.
//
// Example:
//
//	var identifier = thompson.MustCompile("[a-z_][a-z0-9_]*")
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("thompson: Compile(`" + pattern + "`): " + err.Error())
	}
	return re
}

// CompileWithConfig compiles a pattern with a custom configuration.
//
// Example:
//
//	config := thompson.DefaultConfig()
//	config.MaxStates = 10_000 // refuse huge classes
//	re, err := thompson.CompileWithConfig("[a-z]+", config)
func CompileWithConfig(pattern string, config Config) (*Regex, error) {
	engine, err := meta.CompileWithConfig(pattern, config)
	if err != nil {
		return nil, err
	}
	return &Regex{engine: engine, pattern: pattern}, nil
}

// DefaultConfig returns the default configuration for compilation.
func DefaultConfig() Config {
	return meta.DefaultConfig()
}

// Run reports whether re accepts the whole of input.
func Run(re *Regex, input string) bool {
	return re.Run(input)
}

// Run reports whether the pattern accepts the whole of input.
//
// Input is read as UTF-8; each invalid byte counts as one U+FFFD code
// point, which only '.' accepts.
//
// Example:
//
//	re := thompson.MustCompile("a(b|c)*")
//	re.Run("abcb") // true
//	re.Run("xabc") // false
func (r *Regex) Run(input string) bool {
	return r.engine.Run(input)
}

// MatchString is Run under the name used by the standard library.
func (r *Regex) MatchString(s string) bool {
	return r.engine.Run(s)
}

// Match reports whether the pattern accepts the whole of b.
func (r *Regex) Match(b []byte) bool {
	return r.engine.RunBytes(b)
}

// String returns the source pattern.
func (r *Regex) String() string {
	return r.pattern
}

// Describe returns a structural dump of the automaton.
func (r *Regex) Describe() string {
	return r.engine.Automaton().Describe()
}

// Summary returns the automaton's state and transition counts.
func (r *Regex) Summary() string {
	return r.engine.Automaton().Summary()
}

// Automaton returns the compiled Thompson NFA.
func (r *Regex) Automaton() *nfa.Automaton {
	return r.engine.Automaton()
}

// Postfix returns the pattern's postfix token stream.
func (r *Regex) Postfix() []syntax.Token {
	return r.engine.Postfix()
}

// Strategy returns the name of the strategy Run uses.
func (r *Regex) Strategy() string {
	return r.engine.Strategy().String()
}

// Stats returns a snapshot of execution counters.
func (r *Regex) Stats() RunStats {
	return r.engine.Stats()
}

// ResetStats resets execution counters to zero.
func (r *Regex) ResetStats() {
	r.engine.ResetStats()
}

// QuoteMeta returns s with every metacharacter escaped; the result is a
// pattern accepting exactly s.
//
// Example:
//
//	thompson.QuoteMeta("1+1=2?") // `1\+1=2\?`
func QuoteMeta(s string) string {
	const special = `\.+*?()|[]`

	n := 0
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i], special) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	buf := make([]byte, 0, len(s)+n)
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i], special) {
			buf = append(buf, '\\')
		}
		buf = append(buf, s[i])
	}
	return string(buf)
}

func isSpecial(c byte, special string) bool {
	for i := 0; i < len(special); i++ {
		if c == special[i] {
			return true
		}
	}
	return false
}
