package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/coregx/thompson"
	"github.com/coregx/thompson/internal/corpus"
)

// session is an interactive loop around one compiled pattern at a time.
type session struct {
	in     *bufio.Scanner
	out    io.Writer
	config thompson.Config

	re *thompson.Regex

	// tested records the inputs tried against re, for :save.
	tested corpus.Case
}

func newSession(in io.Reader, out io.Writer, config thompson.Config) *session {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	return &session{in: sc, out: out, config: config}
}

// readLine returns the next input line, or false at end of input.
func (s *session) readLine() (string, bool) {
	fmt.Fprint(s.out, "> ")
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSuffix(s.in.Text(), "\r"), true
}

// setPattern compiles pattern and makes it current.
func (s *session) setPattern(pattern string) error {
	re, err := thompson.CompileWithConfig(pattern, s.config)
	if err != nil {
		return err
	}
	s.re = re
	s.tested = corpus.Case{Pattern: pattern}
	return nil
}

// promptPattern asks until a non-blank pattern compiles. It returns false
// if input ends first.
func (s *session) promptPattern() bool {
	for {
		fmt.Fprintln(s.out, "Enter the regular expression: ")
		line, ok := s.readLine()
		if !ok {
			return false
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := s.setPattern(line); err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
			continue
		}
		return true
	}
}

// run drives the loop until :quit or end of input.
func (s *session) run() error {
	if s.re == nil && !s.promptPattern() {
		return nil
	}
	for {
		fmt.Fprintf(s.out, "Current regex: %s\nEnter the input string, type ':regex' to set a new regex pattern, or ':quit' to exit: \n", s.re)
		line, ok := s.readLine()
		if !ok {
			return s.in.Err()
		}

		name, arg, isCmd := parseCommand(line)
		if !isCmd {
			s.test(line)
			continue
		}

		switch name {
		case cmdQuit:
			fmt.Fprintln(s.out, "Bye!")
			return nil
		case cmdRegex:
			if arg == "" {
				if !s.promptPattern() {
					return nil
				}
				continue
			}
			if err := s.setPattern(arg); err != nil {
				fmt.Fprintf(s.out, "Error: %v\n", err)
			}
		case cmdSummary:
			fmt.Fprintln(s.out, s.re.Summary())
		case cmdDescribe:
			fmt.Fprintln(s.out, s.re.Describe())
		case cmdDot:
			if err := s.re.Automaton().WriteDOT(s.out); err != nil {
				return err
			}
		case cmdStats:
			st := s.re.Stats()
			fmt.Fprintf(s.out, "Strategy: %s, runs: %d, automaton runs: %d, literal set runs: %d, prefilter rejections: %d\n",
				s.re.Strategy(), st.Runs, st.NFARuns, st.LiteralSetRuns, st.PrefilterRejections)
		case cmdSave:
			if err := s.save(arg); err != nil {
				fmt.Fprintf(s.out, "Error: %v\n", err)
				continue
			}
			fmt.Fprintf(s.out, "Saved %d inputs to %s.\n", len(s.tested.Accept)+len(s.tested.Reject), arg)
		}
	}
}

func (s *session) test(input string) {
	if s.re.Run(input) {
		s.tested.Accept = append(s.tested.Accept, input)
		fmt.Fprintf(s.out, "String '%s' accepted.\n", input)
		return
	}
	s.tested.Reject = append(s.tested.Reject, input)
	fmt.Fprintf(s.out, "String '%s' rejected.\n", input)
}

// save writes the inputs tried so far as a one-case corpus file.
func (s *session) save(path string) error {
	if path == "" {
		return fmt.Errorf("usage: :save <file>")
	}
	data, err := corpus.Marshal([]corpus.Case{s.tested})
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
