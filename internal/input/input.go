// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package input

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/samber/oops"

	"github.com/holomush/starmap/internal/game"
)

// CodeParseFailed marks a line that does not match the command grammar.
const CodeParseFailed = "PARSE_FAILED"

var parser *participle.Parser[Command]

func init() {
	var err error
	parser, err = participle.Build[Command](
		participle.Lexer(commandLexer),
		participle.CaseInsensitive("Ident"),
		participle.UseLookahead(3),
	)
	if err != nil {
		panic(fmt.Sprintf("failed to build command parser: %v", err))
	}
}

// Parse parses a single command line.
func Parse(line string) (*Command, error) {
	cmd, err := parser.ParseString("", strings.TrimSpace(line))
	if err != nil {
		return nil, oops.In("input").
			Code(CodeParseFailed).
			With("line", line).
			Wrapf(err, "parsing command")
	}
	return cmd, nil
}

// Action converts the command to a game action. "pass" yields
// game.Unrecognized, which dispatch absorbs.
func (c *Command) Action() game.Action {
	switch {
	case c.Add != nil:
		return game.AddShip{Target: c.Add.Target}
	case c.Move != nil:
		return game.MoveShips{From: c.Move.From, To: c.Move.To}
	default:
		return game.Unrecognized{Raw: "pass"}
	}
}

// Decode turns a raw line into an actor name and an action. It never fails:
// input that does not parse becomes game.Unrecognized carrying the line.
func Decode(line string) (string, game.Action) {
	cmd, err := Parse(line)
	if err != nil {
		return "", game.Unrecognized{Raw: line}
	}
	return cmd.Actor, cmd.Action()
}

// Entry is one decoded script line.
type Entry struct {
	Line   int
	Actor  string
	Action game.Action
}

// ReadScript decodes every command line in r. Blank lines and lines starting
// with # are skipped.
func ReadScript(r io.Reader) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		actor, action := Decode(line)
		entries = append(entries, Entry{Line: n, Actor: actor, Action: action})
	}
	if err := scanner.Err(); err != nil {
		return nil, oops.In("input").With("line", n).Wrapf(err, "reading script")
	}
	return entries, nil
}
