// Package corpus reads acceptance test cases from YAML.
//
// A corpus is a YAML list of cases:
//
//	- pattern: "(a|b)*abb"
//	  accept: ["abb", "babb"]
//	  reject: ["", "abba"]
//
// A case with error set expects compilation to fail.
package corpus

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v2"
)

// Case is one pattern with the inputs it must accept and reject.
type Case struct {
	Pattern string   `yaml:"pattern"`
	Accept  []string `yaml:"accept,omitempty"`
	Reject  []string `yaml:"reject,omitempty"`

	// Error, when true, means the pattern must not compile.
	Error bool `yaml:"error,omitempty"`
}

// Runner is anything that decides acceptance of a string.
type Runner interface {
	Run(input string) bool
}

// Mismatch is an input whose outcome differs from the corpus.
type Mismatch struct {
	Pattern string
	Input   string
	Want    bool
}

func (m Mismatch) String() string {
	verdict := "reject"
	if m.Want {
		verdict = "accept"
	}
	return fmt.Sprintf("pattern %q should %s %q", m.Pattern, verdict, m.Input)
}

// Parse decodes a corpus document.
func Parse(src []byte) ([]Case, error) {
	var cases []Case
	if err := yaml.UnmarshalStrict(src, &cases); err != nil {
		return nil, fmt.Errorf("corpus: %w", err)
	}
	return cases, nil
}

// Load reads and decodes a corpus from r.
func Load(r io.Reader) ([]Case, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("corpus: %w", err)
	}
	return Parse(src)
}

// LoadFile reads and decodes the corpus file at path.
func LoadFile(path string) ([]Case, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("corpus: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Check runs every input of c through r and returns the inputs whose
// outcome is wrong.
func (c Case) Check(r Runner) []Mismatch {
	var out []Mismatch
	for _, in := range c.Accept {
		if !r.Run(in) {
			out = append(out, Mismatch{Pattern: c.Pattern, Input: in, Want: true})
		}
	}
	for _, in := range c.Reject {
		if r.Run(in) {
			out = append(out, Mismatch{Pattern: c.Pattern, Input: in, Want: false})
		}
	}
	return out
}

// Marshal encodes cases as a corpus document.
func Marshal(cases []Case) ([]byte, error) {
	return yaml.Marshal(cases)
}
