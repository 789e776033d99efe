// Command thompson compiles a pattern to a Thompson NFA and tests strings
// against it.
//
// Usage:
//
//	thompson                          interactive session
//	thompson -re 'a(b|c)*' abc abd    test each argument
//	thompson -re 'a(b|c)*' -dot       print the automaton in Graphviz format
//	thompson -cases corpus.yaml       check a YAML corpus, exit 1 on mismatch
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/coregx/thompson"
	"github.com/coregx/thompson/internal/corpus"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	logger := log.New(stderr, "thompson: ", 0)

	fs := flag.NewFlagSet("thompson", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		pattern     = fs.String("re", "", "pattern to compile (prompted for when empty)")
		casesPath   = fs.String("cases", "", "YAML corpus to check")
		dot         = fs.Bool("dot", false, "print the automaton as a Graphviz digraph and exit")
		describe    = fs.Bool("describe", false, "print the automaton's states and transitions and exit")
		maxStates   = fs.Int("max-states", thompson.DefaultConfig().MaxStates, "refuse patterns needing more automaton states")
		noPrefilter = fs.Bool("no-prefilter", false, "always simulate the automaton")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	config := thompson.DefaultConfig()
	config.MaxStates = *maxStates
	if *noPrefilter {
		config.EnablePrefilter = false
		config.EnableLiteralSet = false
	}
	if err := config.Validate(); err != nil {
		logger.Print(err)
		return 2
	}

	if *casesPath != "" {
		return runCorpus(*casesPath, config, stdout, logger)
	}

	s := newSession(stdin, stdout, config)
	if *pattern != "" {
		if err := s.setPattern(*pattern); err != nil {
			logger.Print(err)
			return 1
		}
	}

	if *dot || *describe || fs.NArg() > 0 {
		if s.re == nil {
			logger.Print("-re is required with -dot, -describe or input arguments")
			return 2
		}
		if *dot {
			if err := s.re.Automaton().WriteDOT(stdout); err != nil {
				logger.Print(err)
				return 1
			}
		}
		if *describe {
			fmt.Fprint(stdout, s.re.Describe())
		}
		for _, input := range fs.Args() {
			s.test(input)
		}
		return 0
	}

	if err := s.run(); err != nil {
		logger.Print(err)
		return 1
	}
	return 0
}

// runCorpus checks every case in the corpus at path and reports mismatches.
func runCorpus(path string, config thompson.Config, stdout io.Writer, logger *log.Logger) int {
	cases, err := corpus.LoadFile(path)
	if err != nil {
		logger.Print(err)
		return 1
	}

	failures := 0
	for _, c := range cases {
		re, err := thompson.CompileWithConfig(c.Pattern, config)
		switch {
		case c.Error && err == nil:
			logger.Printf("pattern %q compiled, expected an error", c.Pattern)
			failures++
			continue
		case c.Error:
			continue
		case err != nil:
			logger.Print(err)
			failures++
			continue
		}
		for _, m := range c.Check(re) {
			logger.Print(m)
			failures++
		}
	}

	fmt.Fprintf(stdout, "%d cases, %d failures\n", len(cases), failures)
	if failures > 0 {
		return 1
	}
	return 0
}
