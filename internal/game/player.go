// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package game

import (
	"context"
	"strings"

	"github.com/oklog/ulid/v2"
)

// Kind distinguishes human-controlled from autonomous players.
type Kind string

// Player kinds.
const (
	KindHuman Kind = "human"
	KindAI    Kind = "ai"
)

// ParseKind maps a case-insensitive name to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindHuman:
		return KindHuman, true
	case KindAI:
		return KindAI, true
	}
	return "", false
}

// Strategy chooses at most one action per tick for an autonomous player.
// A nil action means the player passes.
type Strategy interface {
	Name() string
	Decide(ctx context.Context, view View) (Action, error)
}

// Player is a controlling party. Players live for the whole session.
type Player struct {
	ID   PlayerID
	Name string
	Kind Kind
	// Home is the body the player was seeded on.
	Home int
	// Flagship identifies the free unit placed on Home at seeding.
	Flagship ulid.ULID
	// Strategy drives AI players and is nil for humans.
	Strategy Strategy
}

// IsAI reports whether the player acts on its own each tick.
func (p *Player) IsAI() bool {
	return p.Kind == KindAI
}

// PlayerSpec describes a player to seed.
type PlayerSpec struct {
	Name     string
	Kind     Kind
	Strategy Strategy
}

// View is the read-only picture of the map handed to a Strategy.
type View struct {
	Player      PlayerID
	Tick        uint64
	SpawnCost   float64
	MovePercent int
	Bodies      []Properties
}

// Mine returns the bodies owned by the viewing player.
func (v View) Mine() []Properties {
	var out []Properties
	for _, b := range v.Bodies {
		if b.OwnedBy(v.Player) {
			out = append(out, b)
		}
	}
	return out
}

// Others returns the bodies the viewing player does not own.
func (v View) Others() []Properties {
	var out []Properties
	for _, b := range v.Bodies {
		if !b.OwnedBy(v.Player) {
			out = append(out, b)
		}
	}
	return out
}
