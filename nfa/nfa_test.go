package nfa

import (
	"strings"
	"sync"
	"testing"
)

func mustCompile(t testing.TB, pattern string) *Automaton {
	t.Helper()
	a, err := CompilePattern(pattern)
	if err != nil {
		t.Fatalf("CompilePattern(%q): %v", pattern, err)
	}
	return a
}

// TestAutomaton_Run covers the acceptance table for every operator.
func TestAutomaton_Run(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		want    bool
	}{
		// literals
		{"a", "a", true},
		{"a", "", false},
		{"a", "aa", false},
		{"abc", "abc", true},
		{"abc", "ab", false},
		{"abc", "abcd", false},

		// empty pattern
		{"", "", true},
		{"", "a", false},
		{"()", "", true},
		{"()", "a", false},

		// union
		{"a|b", "a", true},
		{"a|b", "b", true},
		{"a|b", "ab", false},
		{"a|b", "", false},
		{"ab|cd", "cd", true},
		{"ab|cd", "ad", false},
		{"a|b|c", "c", true},

		// quantifiers
		{"a?", "", true},
		{"a?", "a", true},
		{"a?", "aa", false},
		{"a*", "", true},
		{"a*", "aaaa", true},
		{"a*", "aab", false},
		{"a+", "", false},
		{"a+", "a", true},
		{"a+", "aaaa", true},
		{"ab*", "a", true},
		{"ab*", "abbb", true},
		{"ab*", "abab", false},

		// grouping
		{"(ab)*", "", true},
		{"(ab)*", "abab", true},
		{"(ab)*", "aba", false},
		{"(a|b)*c", "abbac", true},
		{"(a|b)*c", "abba", false},
		{"a(b|c)d", "acd", true},
		{"a(b|c)d", "ad", false},

		// wildcard
		{".", "x", true},
		{".", "", false},
		{".", "xy", false},
		{"a.c", "abc", true},
		{"a.c", "a\nc", true},
		{".*", "anything at all", true},
		{"a.*b", "a---b", true},
		{"a.*b", "a---c", false},

		// classes
		{"[abc]", "b", true},
		{"[abc]", "d", false},
		{"[a-c]x", "cx", true},
		{"[a-c]x", "dx", false},
		{"[a-cx-z]+", "azbycx", true},
		{"[-a]", "-", true},
		{"[a-]", "-", true},

		// escapes
		{`a\*`, "a*", true},
		{`a\*`, "aa", false},
		{`\.`, ".", true},
		{`\.`, "x", false},
		{`\\`, `\`, true},
		{`\(\)`, "()", true},

		// unicode literals
		{"é+", "ééé", true},
		{"日本", "日本", true},
		{"日.", "日本", true},
		{"[α-γ]", "β", true},
		{"[α-γ]", "δ", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.input, func(t *testing.T) {
			a := mustCompile(t, tt.pattern)
			if got := a.Run(tt.input); got != tt.want {
				t.Errorf("Run(%q) on %q = %v, want %v", tt.input, tt.pattern, got, tt.want)
			}
			if got := a.RunBytes([]byte(tt.input)); got != tt.want {
				t.Errorf("RunBytes(%q) on %q = %v, want %v", tt.input, tt.pattern, got, tt.want)
			}
		})
	}
}

// TestAutomaton_NestedRepetition checks that epsilon cycles from nested
// quantifiers terminate and still accept the right language.
func TestAutomaton_NestedRepetition(t *testing.T) {
	patterns := []string{"(a*)*", "(a+)*", "(a*)+", "(a?)*", "((a*)*)*", "(a*|b*)*"}
	for _, p := range patterns {
		t.Run(p, func(t *testing.T) {
			a := mustCompile(t, p)
			for _, in := range []string{"", "a", "aaaaaaaa"} {
				if !a.Run(in) {
					t.Errorf("%q should accept %q", p, in)
				}
			}
			if a.Run("c") {
				t.Errorf("%q should reject %q", p, "c")
			}
		})
	}
}

// TestAutomaton_LinearInput runs a pattern that would blow up a
// backtracking matcher.
func TestAutomaton_LinearInput(t *testing.T) {
	a := mustCompile(t, "(a|aa)*b")
	input := strings.Repeat("a", 10000)
	if a.Run(input) {
		t.Error("expected reject without trailing b")
	}
	if !a.Run(input + "b") {
		t.Error("expected accept with trailing b")
	}
}

func TestAutomaton_InvalidUTF8(t *testing.T) {
	a := mustCompile(t, "a.b")
	if !a.Run("a\xffb") {
		t.Error("invalid byte should step as one code point")
	}
	if !a.RunBytes([]byte("a\xffb")) {
		t.Error("RunBytes: invalid byte should step as one code point")
	}
	if a.Run("a\xff\xfeb") {
		t.Error("two invalid bytes are two code points")
	}
}

func TestAutomaton_Structure(t *testing.T) {
	tests := []struct {
		pattern string
		states  int
	}{
		{"", 2},
		{"a", 2},
		{"ab", 4},
		{"a|b", 6},
		{"a?", 4},
		{"a*", 4},
		{"a+", 4},
		{"[abc]", 10},
		{"(a|b)*c", 10},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			a := mustCompile(t, tt.pattern)
			if a.States() != tt.states {
				t.Errorf("States() = %d, want %d", a.States(), tt.states)
			}
			if n := len(a.Starts()); n != 1 {
				t.Errorf("len(Starts()) = %d, want 1", n)
			}
			if n := len(a.Accepts()); n != 1 {
				t.Errorf("len(Accepts()) = %d, want 1", n)
			}
			if err := a.Validate(); err != nil {
				t.Errorf("Validate: %v", err)
			}
		})
	}
}

func TestAutomaton_AcceptHasNoOutgoingCharEdges(t *testing.T) {
	for _, p := range []string{"a", "a|b", "(ab)*", "a+", ".?", "[a-z]+x"} {
		a := mustCompile(t, p)
		for _, id := range a.Accepts() {
			s := a.State(id)
			if len(s.Transitions()) != 0 || len(s.Wildcard()) != 0 {
				t.Errorf("%q: accept state %d consumes input", p, id)
			}
		}
	}
}

func TestAutomaton_EpsilonClosure(t *testing.T) {
	// a*: s0 -a-> s1, s2 -ε-> {0, 3}, s1 -ε-> 2
	a := mustCompile(t, "a*")
	got := a.EpsilonClosure(a.Starts())
	want := []StateID{0, 2, 3}
	if !equalIDs(got, want) {
		t.Errorf("EpsilonClosure(starts) = %v, want %v", got, want)
	}

	got = a.EpsilonClosure([]StateID{1})
	want = []StateID{0, 1, 2, 3}
	if !equalIDs(got, want) {
		t.Errorf("EpsilonClosure([1]) = %v, want %v", got, want)
	}

	if got := a.EpsilonClosure([]StateID{99}); len(got) != 0 {
		t.Errorf("out-of-range ID should be ignored, got %v", got)
	}
}

func TestAutomaton_Accessors(t *testing.T) {
	a := mustCompile(t, "a.")
	if a.State(InvalidState) != nil {
		t.Error("State(InvalidState) should be nil")
	}
	s := a.State(0)
	if s == nil || s.ID() != 0 {
		t.Fatalf("State(0) = %v", s)
	}
	if got := s.Targets('a'); !equalIDs(got, []StateID{1}) {
		t.Errorf("Targets('a') = %v, want [1]", got)
	}
	if got := s.Targets('b'); len(got) != 0 {
		t.Errorf("Targets('b') = %v, want none", got)
	}
	w := a.State(2)
	if got := w.Targets('z'); !equalIDs(got, []StateID{3}) {
		t.Errorf("wildcard Targets('z') = %v, want [3]", got)
	}

	// Accessors return copies.
	eps := a.State(1).Epsilon()
	eps[0] = 42
	if a.State(1).Epsilon()[0] == 42 {
		t.Error("Epsilon() exposed internal storage")
	}

	if !a.IsAccept(3) || a.IsAccept(0) || a.IsAccept(InvalidState) {
		t.Error("IsAccept mismatch")
	}
	if !strings.Contains(a.String(), "states: 4") {
		t.Errorf("String() = %q", a.String())
	}
}

// TestAutomaton_Concurrent runs one automaton from many goroutines.
// Run with -race.
func TestAutomaton_Concurrent(t *testing.T) {
	a := mustCompile(t, "(a|b)*abb")
	inputs := map[string]bool{
		"abb":      true,
		"aabb":     true,
		"babababb": true,
		"ab":       false,
		"abba":     false,
		"":         false,
	}

	var wg sync.WaitGroup
	errs := make(chan string, 64)
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				for in, want := range inputs {
					if got := a.Run(in); got != want {
						errs <- in
						return
					}
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for in := range errs {
		t.Errorf("concurrent Run(%q) returned wrong result", in)
	}
}

// TestCompile_ConcurrentCounters compiles in parallel; numbering must not
// leak between compilations.
func TestCompile_ConcurrentCounters(t *testing.T) {
	const n = 32
	var wg sync.WaitGroup
	results := make([]*Automaton, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			a, err := CompilePattern("(ab|c)*d")
			if err != nil {
				t.Error(err)
				return
			}
			results[i] = a
		}(i)
	}
	wg.Wait()

	want := results[0].Describe()
	for i, a := range results {
		if a == nil {
			continue
		}
		if got := a.Describe(); got != want {
			t.Errorf("compilation %d differs:\n%s\nwant:\n%s", i, got, want)
		}
	}
}

func TestBuilder_Manual(t *testing.T) {
	b := NewBuilder()
	s0 := b.AddState()
	s1 := b.AddState()
	s2 := b.AddState()

	if err := b.AddChar(s0, 'x', s1); err != nil {
		t.Fatal(err)
	}
	if err := b.AddChar(s0, 'x', s2); err != nil {
		t.Fatal(err)
	}
	// Duplicate edges are ignored.
	if err := b.AddChar(s0, 'x', s1); err != nil {
		t.Fatal(err)
	}
	if err := b.AddEpsilon(s1, s2); err != nil {
		t.Fatal(err)
	}
	if err := b.AddWildcard(s2, s2); err != nil {
		t.Fatal(err)
	}
	if err := b.AddEpsilon(99, s0); err == nil {
		t.Error("expected error for out-of-range source state")
	}

	a, err := b.Build([]StateID{s0}, []StateID{s2})
	if err != nil {
		t.Fatal(err)
	}
	if got := a.State(s0).Targets('x'); !equalIDs(got, []StateID{s1, s2}) {
		t.Errorf("Targets('x') = %v, want [1 2]", got)
	}
	if !a.Run("x") || !a.Run("xyz") || a.Run("") {
		t.Error("manual automaton accepts the wrong language")
	}
}

func TestBuilder_InvalidTargets(t *testing.T) {
	tests := []struct {
		name    string
		build   func(b *Builder) error
		starts  []StateID
		accepts []StateID
	}{
		{"no start", nil, nil, []StateID{0}},
		{"start out of range", nil, []StateID{5}, []StateID{0}},
		{"accept out of range", nil, []StateID{0}, []StateID{5}},
		{"char target out of range", func(b *Builder) error { return b.AddChar(0, 'a', 7) }, []StateID{0}, []StateID{0}},
		{"epsilon target out of range", func(b *Builder) error { return b.AddEpsilon(0, 7) }, []StateID{0}, []StateID{0}},
		{"wildcard target out of range", func(b *Builder) error { return b.AddWildcard(0, 7) }, []StateID{0}, []StateID{0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder()
			b.AddState()
			if tt.build != nil {
				if err := tt.build(b); err != nil {
					t.Fatalf("edge rejected too early: %v", err)
				}
			}
			_, err := b.Build(tt.starts, tt.accepts)
			if err == nil {
				t.Fatal("expected BuildError")
			}
			if _, ok := err.(*BuildError); !ok {
				t.Errorf("error type = %T, want *BuildError", err)
			}
		})
	}
}

func equalIDs(a, b []StateID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
