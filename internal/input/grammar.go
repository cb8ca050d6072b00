// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package input decodes text commands into game actions.
package input

import (
	"github.com/alecthomas/participle/v2/lexer"
)

var commandLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `\d+`},
	{Name: "Arrow", Pattern: `->`},
	{Name: "Colon", Pattern: `:`},
	{Name: "Ident", Pattern: `[a-zA-Z_][\w-]*`},
	{Name: "whitespace", Pattern: `\s+`},
})

// Command is one parsed line.
//
// Grammar: [ actor ":" ] ( "add" INT | "move" INT [ "to" | "->" ] INT | "pass" )
type Command struct {
	Pos   lexer.Position `parser:""`
	Actor string         `parser:"(@Ident Colon)?"`
	Add   *AddCommand    `parser:"( @@"`
	Move  *MoveCommand   `parser:"| @@"`
	Pass  bool           `parser:"| @'pass' )"`
}

// AddCommand matches: "add" INT
type AddCommand struct {
	Target int `parser:"'add' @Int"`
}

// MoveCommand matches: "move" INT [ "to" | "->" ] INT
type MoveCommand struct {
	From int `parser:"'move' @Int ('to' | Arrow)?"`
	To   int `parser:"@Int"`
}
