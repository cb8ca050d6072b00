// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package game

import "fmt"

// ActionKind names an action variant. It is used as a metric label.
type ActionKind string

// Action kinds.
const (
	KindAddShip      ActionKind = "add_ship"
	KindMoveShips    ActionKind = "move_ships"
	KindUnrecognized ActionKind = "unrecognized"
)

// Action is a single player command. The set of variants is closed.
type Action interface {
	Kind() ActionKind
	fmt.Stringer
	action()
}

// AddShip spawns one unit on Target, paid from the body's stock.
type AddShip struct {
	Target int
}

// MoveShips sends a share of From's units to To.
type MoveShips struct {
	From int
	To   int
}

// Unrecognized carries input that decoded to no known action. Dispatching it
// is a no-op.
type Unrecognized struct {
	Raw string
}

func (AddShip) Kind() ActionKind      { return KindAddShip }
func (MoveShips) Kind() ActionKind    { return KindMoveShips }
func (Unrecognized) Kind() ActionKind { return KindUnrecognized }

func (a AddShip) String() string      { return fmt.Sprintf("add %d", a.Target) }
func (a MoveShips) String() string    { return fmt.Sprintf("move %d to %d", a.From, a.To) }
func (a Unrecognized) String() string { return fmt.Sprintf("unrecognized %q", a.Raw) }

func (AddShip) action()      {}
func (MoveShips) action()    {}
func (Unrecognized) action() {}
