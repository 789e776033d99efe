package main

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// command is a REPL line of the form ":name [argument]".
type command struct {
	Name string `parser:"':' @Keyword"`
	Arg  string `parser:"@Text?"`
}

// The argument is taken verbatim to the end of the line so that patterns
// are never split by the lexer.
var commandLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Space", Pattern: `[ \t]+`, Action: nil},
		{Name: "Colon", Pattern: `:`, Action: nil},
		{Name: "Keyword", Pattern: `[A-Za-z]+`, Action: lexer.Push("Arg")},
	},
	"Arg": {
		{Name: "Space", Pattern: `[ \t]+`, Action: nil},
		{Name: "Text", Pattern: `\S.*`, Action: nil},
	},
})

var commandParser = participle.MustBuild[command](
	participle.Lexer(commandLexer),
	participle.Elide("Space"),
)

// Commands understood by the REPL.
const (
	cmdQuit     = "quit"
	cmdRegex    = "regex"
	cmdSummary  = "summary"
	cmdDescribe = "describe"
	cmdDot      = "dot"
	cmdStats    = "stats"
	cmdSave     = "save"
)

// parseCommand reports the command on line, if any. Lines that do not name
// a known command are input strings.
func parseCommand(line string) (name, arg string, ok bool) {
	if !strings.HasPrefix(strings.TrimSpace(line), ":") {
		return "", "", false
	}
	cmd, err := commandParser.ParseString("", line)
	if err != nil {
		return "", "", false
	}
	name = strings.ToLower(cmd.Name)
	switch name {
	case cmdQuit, cmdRegex, cmdSummary, cmdDescribe, cmdDot, cmdStats, cmdSave:
		return name, strings.TrimSpace(cmd.Arg), true
	}
	return "", "", false
}
