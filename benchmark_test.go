package thompson

import (
	"regexp"
	"strings"
	"testing"
)

// Nested repetition that backtracking engines handle in exponential time.
const pathologicalPattern = "(a|aa)*b"

var pathologicalInput = strings.Repeat("a", 64)

func BenchmarkPathological_Thompson(b *testing.B) {
	re := MustCompile(pathologicalPattern)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		re.Run(pathologicalInput)
	}
}

func BenchmarkPathological_GoStdlib(b *testing.B) {
	re := regexp.MustCompile("^(?:" + pathologicalPattern + ")$")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		re.MatchString(pathologicalInput)
	}
}

const routePattern = "(get|post|put|delete)/[a-z]*"

func BenchmarkRoute_Thompson(b *testing.B) {
	re := MustCompile(routePattern)
	inputs := []string{"get/users", "post/items", "patch/x", "options/"}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		re.Run(inputs[i%len(inputs)])
	}
}

func BenchmarkRoute_NFAOnly(b *testing.B) {
	config := DefaultConfig()
	config.EnablePrefilter = false
	config.EnableLiteralSet = false
	re, err := CompileWithConfig(routePattern, config)
	if err != nil {
		b.Fatal(err)
	}
	inputs := []string{"get/users", "post/items", "patch/x", "options/"}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		re.Run(inputs[i%len(inputs)])
	}
}

func BenchmarkRoute_GoStdlib(b *testing.B) {
	re := regexp.MustCompile("^(?:" + routePattern + ")$")
	inputs := []string{"get/users", "post/items", "patch/x", "options/"}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		re.MatchString(inputs[i%len(inputs)])
	}
}

func BenchmarkLiteralSet_Thompson(b *testing.B) {
	re := MustCompile("(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		re.Run("oct")
	}
}

func BenchmarkCompile(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Compile("(a|b)*abb[a-z]+"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRun_Long(b *testing.B) {
	re := MustCompile("(a|b)*abb")
	input := strings.Repeat("ab", 4096) + "abb"
	b.SetBytes(int64(len(input)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		re.Run(input)
	}
}
