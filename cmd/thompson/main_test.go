package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/coregx/thompson/internal/corpus"
)

func runCLI(t *testing.T, stdin string, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(args, strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line  string
		name  string
		arg   string
		isCmd bool
	}{
		{":quit", "quit", "", true},
		{"  :QUIT  ", "quit", "", true},
		{":Summary", "summary", "", true},
		{":regex", "regex", "", true},
		{":regex (a|b)*", "regex", "(a|b)*", true},
		{`:regex "[a-z]+`, "regex", `"[a-z]+`, true},
		{":save out.yaml", "save", "out.yaml", true},
		{":unknown", "", "", false},
		{"abc", "", "", false},
		{"", "", "", false},
		{"a:quit", "", "", false},
		{":", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			name, arg, ok := parseCommand(tt.line)
			if ok != tt.isCmd || name != tt.name || arg != tt.arg {
				t.Errorf("parseCommand(%q) = %q, %q, %v; want %q, %q, %v",
					tt.line, name, arg, ok, tt.name, tt.arg, tt.isCmd)
			}
		})
	}
}

func TestREPL(t *testing.T) {
	stdin := strings.Join([]string{
		"",          // blank patterns are asked again
		"(a|b)*abb", // pattern
		"abb",
		"abba",
		":summary",
		":regex a[",
		":regex x?",
		"",
		":quit",
		"never read",
	}, "\n")
	code, out, _ := runCLI(t, stdin)
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}

	want := []string{
		"Enter the regular expression: \n> Enter the regular expression: \n> ",
		"Current regex: (a|b)*abb\n",
		"String 'abb' accepted.",
		"String 'abba' rejected.",
		"===== NFA summary =====",
		"Error: invalid pattern",
		"Current regex: x?\n",
		"String '' accepted.",
		"Bye!",
	}
	last := 0
	for _, w := range want {
		i := strings.Index(out[last:], w)
		if i < 0 {
			t.Fatalf("output missing %q after offset %d:\n%s", w, last, out)
		}
		last += i + len(w)
	}
	if strings.Contains(out, "never read") {
		t.Error("input after :quit was processed")
	}
}

func TestREPL_EndOfInput(t *testing.T) {
	code, out, _ := runCLI(t, "ab\nab\nb")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(out, "String 'ab' accepted.") || !strings.Contains(out, "String 'b' rejected.") {
		t.Errorf("unexpected output:\n%s", out)
	}

	code, _, _ = runCLI(t, "")
	if code != 0 {
		t.Errorf("empty input: exit code = %d", code)
	}
}

func TestREPL_Save(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	stdin := "a+\na\naa\nb\n:save " + path + "\n:quit\n"
	code, out, _ := runCLI(t, stdin)
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(out, "Saved 3 inputs to") {
		t.Errorf("unexpected output:\n%s", out)
	}
	cases, err := corpus.LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(cases) != 1 || cases[0].Pattern != "a+" || len(cases[0].Accept) != 2 || len(cases[0].Reject) != 1 {
		t.Errorf("saved corpus = %+v", cases)
	}
}

func TestRun_Arguments(t *testing.T) {
	code, out, _ := runCLI(t, "", "-re", "a(b|c)*", "abc", "abd")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	want := "String 'abc' accepted.\nString 'abd' rejected.\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestRun_Dot(t *testing.T) {
	code, out, _ := runCLI(t, "", "-re", "ab", "-dot")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.HasPrefix(out, "digraph NFA {") {
		t.Errorf("output is not a digraph:\n%s", out)
	}

	code, _, errOut := runCLI(t, "", "-dot")
	if code != 2 || !strings.Contains(errOut, "-re is required") {
		t.Errorf("-dot without -re: code = %d, stderr = %q", code, errOut)
	}
}

func TestRun_Errors(t *testing.T) {
	code, _, errOut := runCLI(t, "", "-re", "(a")
	if code != 1 || !strings.HasPrefix(errOut, "thompson: ") {
		t.Errorf("bad pattern: code = %d, stderr = %q", code, errOut)
	}

	code, _, errOut = runCLI(t, "", "-max-states", "1", "-re", "a", "a")
	if code != 2 || !strings.Contains(errOut, "MaxStates") {
		t.Errorf("bad config: code = %d, stderr = %q", code, errOut)
	}

	code, _, _ = runCLI(t, "", "-no-such-flag")
	if code != 2 {
		t.Errorf("unknown flag: code = %d", code)
	}
}

func TestRun_Corpus(t *testing.T) {
	code, out, errOut := runCLI(t, "", "-cases", "../../testdata/corpus.yaml")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr:\n%s", code, errOut)
	}
	if !strings.HasSuffix(out, " 0 failures\n") {
		t.Errorf("output = %q", out)
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	src := "- pattern: a\n  accept: [b]\n- pattern: b\n  error: true\n"
	if err := os.WriteFile(bad, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	code, out, errOut = runCLI(t, "", "-cases", bad, "-no-prefilter")
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if out != "2 cases, 2 failures\n" {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(errOut, `pattern "a" should accept "b"`) {
		t.Errorf("stderr = %q", errOut)
	}
}
